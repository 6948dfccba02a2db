package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/folio/pkg/i18n"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	tree := i18n.Node{
		"title": i18n.Leaf("Contacto"),
		"form": i18n.Node{
			"email": i18n.Node{
				"label": i18n.Leaf("Correo electrónico"),
			},
		},
		"a": i18n.Leaf("x"),
	}

	tests := []struct {
		name string
		tree i18n.Tree
		key  string
		want string
	}{
		{"nested leaf", i18n.Node{"a": i18n.Node{"b": i18n.Leaf("hello")}}, "a.b", "hello"},
		{"missing segment", i18n.Node{"a": i18n.Node{"b": i18n.Leaf("hello")}}, "a.c", "a.c"},
		{"descend into leaf", i18n.Node{"a": i18n.Leaf("x")}, "a.b", "a.b"},
		{"key names a node", tree, "form.email", "form.email"},
		{"deep leaf", tree, "form.email.label", "Correo electrónico"},
		{"top level leaf", tree, "title", "Contacto"},
		{"empty key", tree, "", ""},
		{"trailing dot", tree, "title.", "title."},
		{"empty tree", i18n.Node{}, "title", "title"},
		{"nil tree", nil, "title", "title"},
		{"leaf tree", i18n.Leaf("x"), "a", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, i18n.Lookup(tt.tree, tt.key))
		})
	}
}

func TestFind(t *testing.T) {
	t.Parallel()

	tree := i18n.Node{"a": i18n.Node{"b": i18n.Leaf("")}}

	v, ok := i18n.Find(tree, "a.b")
	assert.True(t, ok)
	assert.Equal(t, "", v, "empty strings are valid translations")

	_, ok = i18n.Find(tree, "a")
	assert.False(t, ok)
}

func TestKeys(t *testing.T) {
	t.Parallel()

	tree := i18n.Node{
		"z": i18n.Leaf("last"),
		"form": i18n.Node{
			"name":  i18n.Node{"label": i18n.Leaf("Nombre")},
			"email": i18n.Node{"label": i18n.Leaf("Email")},
		},
	}

	assert.Equal(t, []string{"form.email.label", "form.name.label", "z"}, i18n.Keys(tree))
	assert.Empty(t, i18n.Keys(i18n.Node{}))
}

func TestFromValue(t *testing.T) {
	t.Parallel()

	t.Run("drops non string scalars and sequences", func(t *testing.T) {
		t.Parallel()

		tree, ok := i18n.FromValue(map[string]any{
			"title":   "Hola",
			"count":   3.0,
			"enabled": true,
			"nothing": nil,
			"list":    []any{"a", "b"},
			"nested":  map[string]any{"ok": "sí"},
		})
		assert.True(t, ok)
		assert.Equal(t, i18n.Node{
			"title":  i18n.Leaf("Hola"),
			"nested": i18n.Node{"ok": i18n.Leaf("sí")},
		}, tree)
		assert.Equal(t, "count", i18n.Lookup(tree, "count"))
		assert.Equal(t, "list", i18n.Lookup(tree, "list"))
	})

	t.Run("yaml style maps", func(t *testing.T) {
		t.Parallel()

		tree, ok := i18n.FromValue(map[any]any{"a": "x", 1: "ignored"})
		assert.True(t, ok)
		assert.Equal(t, i18n.Node{"a": i18n.Leaf("x")}, tree)
	})

	t.Run("unsupported root", func(t *testing.T) {
		t.Parallel()

		_, ok := i18n.FromValue(42)
		assert.False(t, ok)
	})
}

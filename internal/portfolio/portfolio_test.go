package portfolio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/internal/portfolio"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	c := portfolio.Default()
	require.NotNil(t, c)
	assert.Same(t, c, portfolio.Default())

	assert.Equal(t, "Fernando Rodriguez", c.Site.Name)
	assert.NotEmpty(t, c.Experiences)
	assert.NotEmpty(t, c.Skills)
	require.Len(t, c.Process, 4)
	assert.Equal(t, 1, c.Process[0].Order)
	assert.Len(t, c.Contact.Budget, 5)
	assert.Len(t, c.Contact.Timeline, 5)
}

func TestFeatured(t *testing.T) {
	t.Parallel()

	c := portfolio.Default()
	featured := c.Featured(portfolio.FeaturedLimit)
	assert.Len(t, featured, portfolio.FeaturedLimit)
	for _, p := range featured {
		assert.True(t, p.Featured, p.Slug)
	}
	assert.Len(t, c.Featured(1), 1)
	assert.Empty(t, c.Featured(0))
}

func TestByCategoryAndCounts(t *testing.T) {
	t.Parallel()

	c := portfolio.Default()
	assert.Len(t, c.ByCategory(portfolio.CategoryAll), len(c.Projects))
	assert.Len(t, c.ByCategory(""), len(c.Projects))

	for _, p := range c.ByCategory(portfolio.CategoryDevops) {
		assert.Equal(t, portfolio.CategoryDevops, p.Category)
	}

	counts := c.CategoryCounts()
	require.Len(t, counts, len(portfolio.Categories)+1)
	assert.Equal(t, portfolio.CategoryCount{Category: portfolio.CategoryAll, Count: len(c.Projects)}, counts[0])

	total := 0
	for _, cc := range counts[1:] {
		total += cc.Count
	}
	assert.Equal(t, len(c.Projects), total)

	assert.Equal(t, portfolio.CategoryBackend, portfolio.ParseCategory("backend"))
	assert.Equal(t, portfolio.CategoryAll, portfolio.ParseCategory("mobile"))
}

func TestProject(t *testing.T) {
	t.Parallel()

	c := portfolio.Default()
	p, ok := c.Project("api-gateway")
	require.True(t, ok)
	assert.Equal(t, "case_studies.api_gateway", p.CaseStudyKey())
	assert.Equal(t, "status.in_progress", p.Status.TranslationKey())

	p, ok = c.Project("design-system")
	require.True(t, ok)
	assert.Equal(t, "case_studies.default", p.CaseStudyKey())

	_, ok = c.Project("nope")
	assert.False(t, ok)
}

func TestText(t *testing.T) {
	t.Parallel()

	txt := portfolio.Text{"es": "Hola", "en": "Hello"}
	assert.Equal(t, "Hello", txt.In("en"))
	assert.Equal(t, "Hola", txt.In("fr"))
	assert.Equal(t, "Hello", portfolio.Text{"en": "Hello"}.In("es"))
	assert.Empty(t, portfolio.Text(nil).In("es"))
}

func TestOptions(t *testing.T) {
	t.Parallel()

	opts := portfolio.Default().Contact.Timeline
	assert.Contains(t, portfolio.Values(opts), "tbd")
	assert.Equal(t, "To be discussed", portfolio.Label(opts, "tbd", "en"))
	assert.Equal(t, "A discutir", portfolio.Label(opts, "tbd", "es"))
	assert.Equal(t, "custom", portfolio.Label(opts, "custom", "es"))
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", "site: [\n"},
		{"no name", "site: {}\n"},
		{"no slug", "site: {name: A}\nprojects:\n  - {category: backend, status: completed}\n"},
		{"duplicate slug", "site: {name: A}\nprojects:\n  - {slug: a, category: backend, status: completed}\n  - {slug: a, category: backend, status: completed}\n"},
		{"bad category", "site: {name: A}\nprojects:\n  - {slug: a, category: mobile, status: completed}\n"},
		{"bad status", "site: {name: A}\nprojects:\n  - {slug: a, category: backend, status: done}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := portfolio.Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, portfolio.ErrInvalidContent)
		})
	}
}

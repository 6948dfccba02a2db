package i18n

import (
	"sort"
	"strings"
)

// Tree is a translation tree: either a Leaf or a Node.
type Tree interface {
	isTree()
}

// Leaf is a translated string.
type Leaf string

// Node maps a key segment to a subtree.
type Node map[string]Tree

func (Leaf) isTree() {}
func (Node) isTree() {}

// Find resolves a dot-separated key in tree.
// It reports false when a segment is missing, when the walk has to descend
// into a Leaf, or when the key names a Node instead of a Leaf.
func Find(tree Tree, key string) (string, bool) {
	current := tree
	for part := range strings.SplitSeq(key, ".") {
		node, ok := current.(Node)
		if !ok {
			return "", false
		}
		next, ok := node[part]
		if !ok {
			return "", false
		}
		current = next
	}

	leaf, ok := current.(Leaf)
	if !ok {
		return "", false
	}
	return string(leaf), true
}

// Lookup resolves key in tree and falls back to the key itself when it does not
// resolve to a string.
func Lookup(tree Tree, key string) string {
	if v, ok := Find(tree, key); ok {
		return v
	}
	return key
}

// Keys returns every dot-separated key that resolves to a Leaf, sorted.
func Keys(tree Tree) []string {
	var keys []string
	var walk func(prefix string, t Tree)
	walk = func(prefix string, t Tree) {
		switch v := t.(type) {
		case Leaf:
			keys = append(keys, prefix)
		case Node:
			for k, sub := range v {
				next := k
				if prefix != "" {
					next = prefix + "." + k
				}
				walk(next, sub)
			}
		}
	}
	walk("", tree)
	sort.Strings(keys)
	return keys
}

// FromValue converts decoded JSON/YAML data into a Tree.
// Strings become leaves and string-keyed mappings become nodes; any other value
// (numbers, booleans, sequences, null) is dropped so that lookups of it fall back
// to the key. The second return value is false when v itself cannot be represented.
func FromValue(v any) (Tree, bool) {
	switch val := v.(type) {
	case string:
		return Leaf(val), true
	case map[string]any:
		node := make(Node, len(val))
		for k, sub := range val {
			if t, ok := FromValue(sub); ok {
				node[k] = t
			}
		}
		return node, true
	case map[any]any:
		node := make(Node, len(val))
		for k, sub := range val {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			if t, ok := FromValue(sub); ok {
				node[ks] = t
			}
		}
		return node, true
	default:
		return nil, false
	}
}

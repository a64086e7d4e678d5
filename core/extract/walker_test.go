package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSearch_FindsNestedObject tests that the walker locates an object
// arbitrarily nested under wrapper keys.
func TestSearch_FindsNestedObject(t *testing.T) {
	root := map[string]any{
		"meta": map[string]any{"version": 3},
		"configuration": map[string]any{
			"details": []any{
				map[string]any{"irrelevant": true},
				map[string]any{"config_id": "CFG-9"},
			},
		},
	}

	found := Search(root, func(obj map[string]any) bool {
		_, ok := Field(obj, []string{"config_id"})
		return ok
	})

	assert.NotNil(t, found)
	assert.Equal(t, "CFG-9", found["config_id"])
}

// TestSearch_ObjectBeforeChildren tests that a matching parent wins over a
// matching child.
func TestSearch_ObjectBeforeChildren(t *testing.T) {
	root := map[string]any{
		"config_id": "parent",
		"child":     map[string]any{"config_id": "child"},
	}

	val, ok := SearchValue(root, []string{"config_id"})
	assert.True(t, ok)
	assert.Equal(t, "parent", val)
}

// TestSearch_Deterministic tests that map siblings are visited in sorted key
// order, so repeated runs find the same object.
func TestSearch_Deterministic(t *testing.T) {
	root := map[string]any{
		"zebra": map[string]any{"config_id": "z"},
		"alpha": map[string]any{"config_id": "a"},
	}

	for i := 0; i < 20; i++ {
		val, ok := SearchValue(root, []string{"config_id"})
		assert.True(t, ok)
		assert.Equal(t, "a", val)
	}
}

// TestSearch_DepthBound tests that objects past the depth limit are not found.
func TestSearch_DepthBound(t *testing.T) {
	// Build a chain one level deeper than the limit.
	leaf := map[string]any{"config_id": "deep"}
	node := any(leaf)
	for i := 0; i <= MaxSearchDepth; i++ {
		node = map[string]any{"wrap": node}
	}

	_, ok := SearchValue(node, []string{"config_id"})
	assert.False(t, ok)

	// One wrapper fewer and it is reachable again.
	node = any(leaf)
	for i := 0; i < MaxSearchDepth; i++ {
		node = map[string]any{"wrap": node}
	}
	val, ok := SearchValue(node, []string{"config_id"})
	assert.True(t, ok)
	assert.Equal(t, "deep", val)
}

// TestSearch_CycleSafe tests that reference cycles terminate.
func TestSearch_CycleSafe(t *testing.T) {
	a := map[string]any{}
	b := map[string]any{"back": a}
	a["forward"] = b

	found := Search(a, func(obj map[string]any) bool { return false })
	assert.Nil(t, found)
}

// TestSearch_ScalarsAndNil tests that non-container roots are handled.
func TestSearch_ScalarsAndNil(t *testing.T) {
	for _, root := range []any{nil, 42, "text", true} {
		found := Search(root, func(obj map[string]any) bool { return true })
		assert.Nil(t, found)
	}
}

// TestSearch_StringMap tests that map[string]string nodes are matchable.
func TestSearch_StringMap(t *testing.T) {
	root := map[string]any{
		"attrs": map[string]string{"product_url": "https://example.com/p/1"},
	}
	val, ok := SearchValue(root, []string{"product_url"})
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/p/1", val)
}

// TestSearch_NamedMap tests that named map nodes are both matchable and
// descended into.
func TestSearch_NamedMap(t *testing.T) {
	type entry map[string]any
	root := map[string]any{
		"card": entry{
			"details": entry{"config_id": "cfg-7"},
		},
	}
	val, ok := SearchValue(root, []string{"config_id"})
	assert.True(t, ok)
	assert.Equal(t, "cfg-7", val)
}

package catalog

import (
	"testing"

	"catalog/navigator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeJSON_Envelopes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"bare array", `[{"id": 1, "name": "Sets"}]`},
		{"success envelope", `{"success": true, "data": [{"id": 1, "name": "Sets"}]}`},
		{"data envelope", `{"data": [{"id": 1, "name": "Sets"}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tree := NormalizeJSON([]byte(tc.payload))
			require.Len(t, tree, 1)
			assert.Equal(t, domain.CategoryID("1"), tree[0].ID)
			assert.Equal(t, "Sets", tree[0].Name)
		})
	}
}

func TestNormalizeJSON_MalformedYieldsEmptyForest(t *testing.T) {
	payloads := []string{
		"",
		"   ",
		"not json",
		"42",
		`"text"`,
		`{"foo": 1}`,
		`{"data": {"id": 1}}`,
		`{"success": false, "data": [{"id": 1, "name": "Sets"}]}`,
		`[1, "two", null]`,
	}

	for _, payload := range payloads {
		tree := NormalizeJSON([]byte(payload))
		assert.NotNil(t, tree, "payload %q", payload)
		assert.Empty(t, tree, "payload %q", payload)
	}
}

func TestNormalize_NamePrecedence(t *testing.T) {
	tree := NormalizeJSON([]byte(`[
		{"id": "a", "category_name": "From category_name", "name": "From name", "title": "From title"},
		{"id": "b", "category_name": "  ", "name": "From name", "title": "From title"},
		{"id": "c", "title": "From title"},
		{"id": "d", "name": 2024}
	]`))

	assert.Equal(t, []string{"From category_name", "From name", "From title", "2024"}, names(tree))
}

func TestNormalize_ChildrenPrecedence(t *testing.T) {
	tree := NormalizeJSON([]byte(`[
		{"id": "a", "name": "A",
			"children": [],
			"subcategories": [{"id": "a1", "name": "From subcategories"}],
			"childCategories": [{"id": "a2", "name": "From childCategories"}]},
		{"id": "b", "name": "B",
			"childCategories": [{"id": "b1", "name": "Only childCategories"}]},
		{"id": "c", "name": "C",
			"children": [{"id": "c1", "name": "From children"}],
			"subcategories": [{"id": "c2", "name": "Ignored"}]}
	]`))

	require.Len(t, tree, 3)
	assert.Equal(t, []string{"From subcategories"}, names(tree[0].Children))
	assert.Equal(t, []string{"Only childCategories"}, names(tree[1].Children))
	assert.Equal(t, []string{"From children"}, names(tree[2].Children))
}

func TestNormalize_IDs(t *testing.T) {
	tree, stats := NormalizeJSONWithStats([]byte(`[
		{"id": 9007199254740993, "name": "Big"},
		{"id": " s-1 ", "name": "Trimmed"},
		{"name": "Nameless id", "children": [{"title": "Nested"}]},
		{"id": "only-id"}
	]`))

	require.Len(t, tree, 4)
	assert.Equal(t, domain.CategoryID("9007199254740993"), tree[0].ID)
	assert.Equal(t, domain.CategoryID("s-1"), tree[1].ID)
	assert.Equal(t, domain.CategoryID("~2"), tree[2].ID)
	assert.Equal(t, domain.CategoryID("~2.0"), tree[2].Children[0].ID)
	assert.Equal(t, "only-id", tree[3].Name, "name falls back to the id")
	assert.Equal(t, 2, stats.Synthesized)
	assert.Equal(t, 5, stats.Kept)
}

func TestNormalize_DropsNodesWithoutIDAndName(t *testing.T) {
	tree, stats := NormalizeJSONWithStats([]byte(`[
		{"id": "keep", "name": "Keep", "children": [
			{"children": [{"id": "lost", "name": "Lost with its parent"}]},
			{"id": "sibling", "name": "Sibling"}
		]},
		{"title": ""},
		"junk"
	]`))

	require.Len(t, tree, 1)
	assert.Equal(t, []string{"Sibling"}, names(tree[0].Children))
	assert.Equal(t, 3, stats.Dropped)
	assert.Equal(t, 2, stats.Kept)
}

func TestNormalize_CountsDuplicateIDs(t *testing.T) {
	_, stats := NormalizeJSONWithStats([]byte(`[
		{"id": 1, "name": "A", "children": [{"id": 1, "name": "A again"}]},
		{"id": "1", "name": "A once more"}
	]`))

	assert.Equal(t, 2, stats.Duplicates)
	assert.Equal(t, 3, stats.Kept)
}

func TestNormalize_GoValues(t *testing.T) {
	raw := map[string]any{
		"success": true,
		"data": []map[string]any{
			{"id": 7, "name": "Seven", "children": []any{
				map[string]any{"id": 7.5, "title": "Seven and a half"},
			}},
		},
	}

	tree := Normalize(raw)
	require.Len(t, tree, 1)
	assert.Equal(t, domain.CategoryID("7"), tree[0].ID)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, domain.CategoryID("7.5"), tree[0].Children[0].ID)
}

func TestNormalize_KeepsDeepChains(t *testing.T) {
	var deepest map[string]any
	var root map[string]any
	for i := 0; i < 70; i++ {
		n := map[string]any{"id": i, "name": "level"}
		if root == nil {
			root = n
		} else {
			deepest["children"] = []any{n}
		}
		deepest = n
	}

	tree, stats := NormalizeWithStats([]any{root})
	assert.Equal(t, 70, tree.Count())
	assert.Equal(t, 70, stats.Kept)
	assert.Zero(t, stats.Dropped)
}

func TestNormalize_NilAndUnknownInput(t *testing.T) {
	assert.Empty(t, Normalize(nil))
	assert.Empty(t, Normalize(42))
	assert.Empty(t, Normalize(map[string]any{"success": true}))
}

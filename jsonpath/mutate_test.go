package jsonpath

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUpdateRootReplacesWholeDocument(t *testing.T) {
	n := mustParse(t, "$")
	got, err := Update(n, map[string]any{"a": 1}, map[string]any{"b": 2})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"b": 2}, got)
}

func TestUpdateNoMatchReturnsDocumentUnchanged(t *testing.T) {
	n := mustParse(t, "nope")
	doc := map[string]any{"a": 1}
	got, err := Update(n, doc, 99)
	require.NoError(t, err)
	require.Equal(t, doc, got)
}

func TestExcludeSliceSpanningSeveralElementsAvoidsStaleIndices(t *testing.T) {
	n := mustParse(t, "[1:3]")
	doc := []any{"a", "b", "c", "d"}
	got, err := Exclude(n, doc)
	require.NoError(t, err)
	require.Equal(t, []any{"a", "d"}, got)
}

func TestIncludeSliceSpanningSeveralElements(t *testing.T) {
	n := mustParse(t, "[1:3]")
	doc := []any{"a", "b", "c", "d"}
	got, err := Include(n, doc)
	require.NoError(t, err)
	require.Equal(t, []any{"b", "c"}, got)
}

func TestExcludeNestedFieldAcrossManySiblingsAtOnce(t *testing.T) {
	n := mustParse(t, "items[*].tag")
	doc := map[string]any{"items": []any{
		map[string]any{"tag": "x", "keep": 1},
		map[string]any{"tag": "y", "keep": 2},
		map[string]any{"tag": "z", "keep": 3},
	}}
	got, err := Exclude(n, doc)
	require.NoError(t, err)
	want := map[string]any{"items": []any{
		map[string]any{"keep": 1},
		map[string]any{"keep": 2},
		map[string]any{"keep": 3},
	}}
	require.Equal(t, want, got)
}

func TestIncludeRootRetainsWholeDocument(t *testing.T) {
	n := mustParse(t, "$")
	doc := map[string]any{"a": 1}
	got, err := Include(n, doc)
	require.NoError(t, err)
	require.Equal(t, doc, got)
}

func TestIncludeNoMatchYieldsNil(t *testing.T) {
	n := mustParse(t, "nope")
	got, err := Include(n, map[string]any{"a": 1})
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestExcludeThenIncludeArePartitionComplementary(t *testing.T) {
	n := mustParse(t, "items[*].tag")
	doc := map[string]any{"items": []any{
		map[string]any{"tag": "x", "keep": 1},
		map[string]any{"tag": "y", "keep": 2},
	}}

	excluded, err := Exclude(n, doc)
	require.NoError(t, err)
	included, err := Include(n, doc)
	require.NoError(t, err)

	require.Equal(t, map[string]any{"items": []any{
		map[string]any{"keep": 1},
		map[string]any{"keep": 2},
	}}, excluded)
	require.Equal(t, map[string]any{"items": []any{
		map[string]any{"tag": "x"},
		map[string]any{"tag": "y"},
	}}, included)
}

func TestStepsToPointerEscapesTildeAndSlash(t *testing.T) {
	steps := []step{{field: "a/b"}, {field: "c~d"}}
	require.Equal(t, "/a~1b/c~0d", stepsToPointer(steps))
}

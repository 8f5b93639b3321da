package jsonpath

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func values(t *testing.T, datums []Datum) []any {
	t.Helper()
	out := make([]any, len(datums))
	for i, d := range datums {
		out[i] = d.Value
	}
	return out
}

func fullPaths(t *testing.T, datums []Datum) []string {
	t.Helper()
	out := make([]string, len(datums))
	for i, d := range datums {
		out[i] = d.FullPathString()
	}
	return out
}

// Concrete scenario 1 (spec.md §8).
func TestFindDescendants(t *testing.T) {
	n := mustParse(t, "foo..baz")
	doc := map[string]any{"foo": map[string]any{"baz": 1, "bing": map[string]any{"baz": 2}}}
	got, err := Find(n, doc)
	require.NoError(t, err)
	require.Equal(t, []any{1, 2}, values(t, got))
	require.Equal(t, []string{"foo.baz", "foo.bing.baz"}, fullPaths(t, got))
}

// Concrete scenario 2.
func TestFindSlice(t *testing.T) {
	n := mustParse(t, "[1:]")
	doc := []any{1, 2, 3, 4}
	got, err := Find(n, doc)
	require.NoError(t, err)
	require.Equal(t, []any{2, 3, 4}, values(t, got))
	require.Equal(t, []string{"[1]", "[2]", "[3]"}, fullPaths(t, got))
}

// Concrete scenario 3.
func TestUpdateWhere(t *testing.T) {
	n := mustParse(t, "*.bar where baz")
	doc := map[string]any{
		"foo": map[string]any{"bar": map[string]any{"baz": 1}},
		"bar": map[string]any{"baz": 2},
	}
	got, err := Update(n, doc, 5)
	require.NoError(t, err)
	want := map[string]any{
		"foo": map[string]any{"bar": float64(5)},
		"bar": map[string]any{"baz": float64(2)},
	}
	require.Equal(t, want, got)
}

// Concrete scenario 4.
func TestExcludeDescendants(t *testing.T) {
	n := mustParse(t, "$..bar")
	doc := map[string]any{
		"outs":  map[string]any{"bar": 1, "ins": map[string]any{"bar": 9}},
		"outs2": map[string]any{"bar": 2},
	}
	got, err := Exclude(n, doc)
	require.NoError(t, err)
	want := map[string]any{
		"outs":  map[string]any{"ins": map[string]any{}},
		"outs2": map[string]any{},
	}
	require.Equal(t, want, got)
}

// Concrete scenario 5.
func TestFindAutoID(t *testing.T) {
	n := mustParse(t, "foo.baz.id")
	doc := map[string]any{"foo": map[string]any{"baz": map[string]any{"id": "hi"}}}
	got, err := FindWithOptions(n, doc, &Options{AutoIDField: "id"})
	require.NoError(t, err)
	require.Equal(t, []any{"hi"}, values(t, got))
}

func TestFindAutoIDSynthesized(t *testing.T) {
	n := mustParse(t, "foo.baz.id")
	doc := map[string]any{"foo": map[string]any{"baz": map[string]any{}}}
	got, err := FindWithOptions(n, doc, &Options{AutoIDField: "id"})
	require.NoError(t, err)
	require.Equal(t, []any{"foo.baz.id"}, values(t, got))
}

// Concrete scenario 6.
func TestFindFilter(t *testing.T) {
	n := mustParse(t, "objects[?cow>5&cat=2]")
	doc := map[string]any{"objects": []any{
		map[string]any{"cow": 8, "cat": 2},
		map[string]any{"cow": 7, "cat": 2},
		map[string]any{"cow": 2, "cat": 2},
		map[string]any{"cow": 5, "cat": 3},
		map[string]any{"cow": 8, "cat": 3},
	}}
	got, err := Find(n, doc)
	require.NoError(t, err)
	want := []any{
		map[string]any{"cow": 8, "cat": 2},
		map[string]any{"cow": 7, "cat": 2},
	}
	require.Equal(t, want, values(t, got))
}

// Concrete scenario 7.
func TestFindSort(t *testing.T) {
	n := mustParse(t, "objects[/cow]")
	doc := map[string]any{"objects": []any{
		map[string]any{"cow": 2},
		map[string]any{"cow": 1},
		map[string]any{"cow": 3},
	}}
	got, err := Find(n, doc)
	require.NoError(t, err)
	want := []any{
		map[string]any{"cow": 1},
		map[string]any{"cow": 2},
		map[string]any{"cow": 3},
	}
	require.Equal(t, want, values(t, got))
}

func TestFindIndexNegative(t *testing.T) {
	n := mustParse(t, "[-1]")
	got, err := Find(n, []any{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, []any{3}, values(t, got))
}

func TestFindUnionConcatenatesRegardlessOfShape(t *testing.T) {
	n := mustParse(t, "foo|bar")
	doc := map[string]any{"foo": 1, "bar": []any{2, 3}}
	got, err := Find(n, doc)
	require.NoError(t, err)
	require.Equal(t, []any{1, []any{2, 3}}, values(t, got))
}

func TestFindIntersectIsUnimplemented(t *testing.T) {
	n := Intersect{L: Fields{Names: []string{"foo"}}, R: Fields{Names: []string{"bar"}}}
	_, err := Find(n, map[string]any{})
	require.ErrorIs(t, err, ErrNotImplemented)
}

func TestFindNamedOperatorParent(t *testing.T) {
	n := mustParse(t, "foo.bar.`parent`")
	doc := map[string]any{"foo": map[string]any{"bar": 1}}
	got, err := Find(n, doc)
	require.NoError(t, err)
	require.Equal(t, []any{map[string]any{"bar": 1}}, values(t, got))
}

func TestFindRootIsReachableFromAnyFocus(t *testing.T) {
	n := mustParse(t, "foo..$")
	doc := map[string]any{"foo": map[string]any{"bar": 1}}
	got, err := Find(n, doc)
	require.NoError(t, err)
	// Root always yields the original document, regardless of focus.
	for _, d := range got {
		require.Equal(t, doc, d.Value)
	}
}

func TestFindBarePathPredicateIsExistenceOnly(t *testing.T) {
	n := mustParse(t, "[?cow]")
	got, err := Find(n, []any{map[string]any{"cow": false}, map[string]any{}})
	require.NoError(t, err)
	require.Equal(t, []any{map[string]any{"cow": false}}, values(t, got))
}

package jsonpath

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDatumFullPathStringNestedFields(t *testing.T) {
	n := mustParse(t, "a.b.c")
	got, err := Find(n, map[string]any{"a": map[string]any{"b": map[string]any{"c": 1}}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "a.b.c", got[0].FullPathString())
}

func TestDatumFullPathStringMixedFieldsAndIndex(t *testing.T) {
	n := mustParse(t, "a[0].b")
	got, err := Find(n, map[string]any{"a": []any{map[string]any{"b": 1}}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "a[0].b", got[0].FullPathString())
}

func TestDatumInContextGrowsOnTheLeft(t *testing.T) {
	inner := Datum{Value: 1, Path: Fields{Names: []string{"bar"}}}
	outer := &Datum{Value: map[string]any{}, Path: Fields{Names: []string{"foo"}}}
	d := inner.InContext(Fields{Names: []string{"bar"}}, outer)
	require.Equal(t, "foo.bar", d.FullPathString())
}

func TestDatumEqual(t *testing.T) {
	a := Datum{Value: 1, Path: Fields{Names: []string{"x"}}}
	b := Datum{Value: 1, Path: Fields{Names: []string{"x"}}}
	require.True(t, a.Equal(b))

	c := Datum{Value: 2, Path: Fields{Names: []string{"x"}}}
	require.False(t, a.Equal(c))
}

func TestDatumValuesEqualDeep(t *testing.T) {
	a := map[string]any{"k": []any{1, 2, map[string]any{"z": 3}}}
	b := map[string]any{"k": []any{1, 2, map[string]any{"z": 3}}}
	require.True(t, valuesEqual(a, b))

	c := map[string]any{"k": []any{1, 2, map[string]any{"z": 4}}}
	require.False(t, valuesEqual(a, c))
}

package jsonpath

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
)

// randomDocument builds a small bounded-depth JSON-ish document so that
// fuzzed documents stay shallow enough for Descendants traversal to
// terminate quickly and for test failures to stay legible.
func randomDocument(f *fuzz.Fuzzer, depth int) any {
	if depth <= 0 {
		var s string
		f.Fuzz(&s)
		return s
	}
	var kind int
	f.Fuzz(&kind)
	switch kind % 3 {
	case 0:
		var n float64
		f.Fuzz(&n)
		return n
	case 1:
		count := 1 + (kind % 3)
		arr := make([]any, count)
		for i := range arr {
			arr[i] = randomDocument(f, depth-1)
		}
		return arr
	default:
		count := 1 + (kind % 3)
		obj := map[string]any{}
		keys := []string{"a", "b", "c", "d"}
		for i := 0; i < count; i++ {
			obj[keys[i%len(keys)]] = randomDocument(f, depth-1)
		}
		return obj
	}
}

// containsValue reports whether haystack contains a value deeply equal
// to needle, using go-cmp rather than require.Contains' reflect.DeepEqual
// so that numeric/interface representations compare structurally.
func containsValue(haystack []any, needle any) bool {
	for _, h := range haystack {
		if cmp.Equal(h, needle) {
			return true
		}
	}
	return false
}

// find(Union(A,B), v) is the literal concatenation of find(A,v) and
// find(B,v), per spec.md's Open Question #3 resolution: no de-dup, no
// shape reconciliation, regardless of how v is shaped.
func TestFuzzUnionIsConcatenationOfOperands(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(1, 3)
	union := mustParse(t, "a|b")
	a := mustParse(t, "a")
	b := mustParse(t, "b")

	for i := 0; i < 25; i++ {
		doc := map[string]any{
			"a": randomDocument(f, 2),
			"b": randomDocument(f, 2),
		}
		gotUnion, err := Find(union, doc)
		require.NoError(t, err)
		gotA, err := Find(a, doc)
		require.NoError(t, err)
		gotB, err := Find(b, doc)
		require.NoError(t, err)

		require.Equal(t, append(values(t, gotA), values(t, gotB)...), values(t, gotUnion))
	}
}

// find(Descendants(A,B), v) always includes every match find(Child(A,B), v)
// produces -- Descendants generalizes Child by also recursing past the
// immediate children, per spec.md §4.D/E.
func TestFuzzDescendantsSupersetsChild(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(1, 3)
	descend := mustParse(t, "items..a")
	child := mustParse(t, "items.a")

	for i := 0; i < 25; i++ {
		doc := map[string]any{"items": randomDocument(f, 3)}
		gotDescend, err := Find(descend, doc)
		require.NoError(t, err)
		gotChild, err := Find(child, doc)
		require.NoError(t, err)

		descendValues := values(t, gotDescend)
		for _, v := range values(t, gotChild) {
			require.True(t, containsValue(descendValues, v), "descendants missing child match %v", v)
		}
	}
}

// exclude(p, v) and include(p, v) partition v's matched locations:
// excluding p from v drops exactly the fields include(p, v) keeps, and
// nothing else, for any document p actually matches fields of.
func TestFuzzExcludeIncludePartitionObjectFields(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(2, 4)
	p := mustParse(t, "a")

	for i := 0; i < 25; i++ {
		doc := map[string]any{
			"a": randomDocument(f, 1),
			"b": randomDocument(f, 1),
		}
		excluded, err := Exclude(p, doc)
		require.NoError(t, err)
		included, err := Include(p, doc)
		require.NoError(t, err)

		excludedMap, ok := excluded.(map[string]any)
		require.True(t, ok)
		includedMap, ok := included.(map[string]any)
		require.True(t, ok)

		_, stillHasA := excludedMap["a"]
		require.False(t, stillHasA)
		require.Equal(t, doc["b"], excludedMap["b"])

		require.Equal(t, doc["a"], includedMap["a"])
		_, includedHasB := includedMap["b"]
		require.False(t, includedHasB)
	}
}

// parse(n.String()) reproduces an AST equal to n, for each expression in
// a fixed list covering the grammar's field/child/descendant/union/
// index/slice/where forms.
func TestFuzzParseStringRoundTrips(t *testing.T) {
	exprs := []string{
		"a",
		"a.b",
		"a..b",
		"a|b",
		"a.b|c.d",
		"[0]",
		"[-2]",
		"[1:4]",
		"[*]",
		"a[0].b",
		"a where b",
	}
	for _, e := range exprs {
		n1 := mustParse(t, e)
		n2 := mustParse(t, n1.String())
		require.True(t, n1.Equal(n2), "round trip of %q via %q failed", e, n1.String())
	}
}

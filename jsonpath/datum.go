package jsonpath

import "strings"

// Datum is a value matched during evaluation together with the path
// fragment that reached it and, when known, a link to the parent match
// it was reached from. Contexts form an upward-linked immutable chain
// (spec §4.E / §9 "Datum-in-context tree"); FullPath walks that chain
// from this datum back to the root.
type Datum struct {
	Value   any
	Path    Node
	Context *Datum
}

// newRootDatum constructs the datum handed to a top-level Find call:
// value at the document root, path=This, no parent context.
func newRootDatum(v any) Datum {
	return Datum{Value: v, Path: This{}}
}

// InContext returns a new datum built from d's value, but reattached at
// path under the given parent context, so that its full_path grows on
// the left. The evaluator in find.go does not call it: Child and
// Descendants build the chain by evaluating R with the L-match as focus.
func (d Datum) InContext(path Node, context *Datum) Datum {
	return Datum{Value: d.Value, Path: path, Context: context}
}

// FullPath returns the AST fragment denoting the complete route from
// the document root to this datum: a left-associative Child chain
// built by walking Context from root to leaf.
func (d Datum) FullPath() Node {
	var chain []Node
	for cur := &d; cur != nil; cur = cur.Context {
		chain = append(chain, cur.Path)
	}
	// chain is leaf-to-root; reverse to root-to-leaf before folding.
	var path Node = Root{}
	first := true
	for i := len(chain) - 1; i >= 0; i-- {
		p := chain[i]
		if _, isThis := p.(This); isThis {
			continue
		}
		if first {
			path = p
			first = false
			continue
		}
		path = Child{L: path, R: p}
	}
	return path
}

// FullPathString renders FullPath in the compact dotted/bracketed form
// used by Fields' auto_id synthesis ("foo.bar", "foo[0]").
func (d Datum) FullPathString() string {
	return renderPath(d.FullPath())
}

// renderPath prints a path node the way concrete accessors read when
// chained: Root prints as nothing (so "$..foo" prints as "foo", not
// "$.foo"), Index/Slice print without a leading '.', everything else
// falls back to Node.String joined by '.'.
func renderPath(n Node) string {
	switch t := n.(type) {
	case Root:
		return ""
	case This:
		return "@"
	case Child:
		l := renderPath(t.L)
		r := renderPath(t.R)
		switch {
		case l == "":
			return r
		case r == "":
			return l
		case strings.HasPrefix(r, "["):
			return l + r
		default:
			return l + "." + r
		}
	case Index:
		return t.String()
	case Fields:
		return t.String()
	default:
		return n.String()
	}
}

// Equal compares Value (via equalScalar for scalars, deep structural
// equality for maps/slices), Path and Context.
func (d Datum) Equal(o Datum) bool {
	if !valuesEqual(d.Value, o.Value) {
		return false
	}
	if (d.Path == nil) != (o.Path == nil) {
		return false
	}
	if d.Path != nil && !d.Path.Equal(o.Path) {
		return false
	}
	if (d.Context == nil) != (o.Context == nil) {
		return false
	}
	if d.Context != nil {
		return d.Context.Equal(*o.Context)
	}
	return true
}

func valuesEqual(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bvv, present := bv[k]
			if !present || !valuesEqual(v, bvv) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return equalScalar(a, b)
	}
}

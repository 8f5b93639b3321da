package jsonpath

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is the sum type over JSONPath AST variants (spec §3 "AST node
// (P)"). Each concrete type below implements only Node; evaluation is
// done by the package-level Find/Update/Include/Exclude functions in
// find.go and mutate.go, which dispatch on the concrete type with a type
// switch. The one-interface-many-structs shape follows the teacher's
// elements.go, generalized from its template-segment sum type to this
// query-expression sum type.
type Node interface {
	// String returns the canonical textual form of the node.
	String() string
	// Equal reports structural equality with another node.
	Equal(other Node) bool
}

// Root is the document-root sentinel ('$').
type Root struct{}

func (Root) String() string { return "$" }
func (Root) Equal(o Node) bool {
	_, ok := o.(Root)
	return ok
}

// This refers to the datum currently being evaluated ('@'). The
// '`this`' form parses to NamedOperator{Name: "this"}, which Find
// evaluates the same way.
type This struct{}

func (This) String() string { return "@" }
func (This) Equal(o Node) bool {
	_, ok := o.(This)
	return ok
}

// Fields is one or more object field accessors; the literal "*" among
// Names means "every field present".
type Fields struct {
	Names []string
}

func (f Fields) String() string {
	quoted := make([]string, len(f.Names))
	for i, n := range f.Names {
		quoted[i] = quoteFieldName(n)
	}
	return strings.Join(quoted, ",")
}

func (f Fields) Equal(o Node) bool {
	of, ok := o.(Fields)
	if !ok || len(of.Names) != len(f.Names) {
		return false
	}
	for i := range f.Names {
		if f.Names[i] != of.Names[i] {
			return false
		}
	}
	return true
}

func quoteFieldName(n string) string {
	if n == "*" || isBareFieldName(n) {
		return n
	}
	return strconv.Quote(n)
}

func isBareFieldName(n string) bool {
	if n == "" {
		return false
	}
	for i, r := range n {
		if i == 0 {
			if !isIDStart(r) {
				return false
			}
			continue
		}
		if !isIDContinue(r) {
			return false
		}
	}
	return true
}

// Index is an array-element accessor at integer Value, which may be
// negative (counted from the end; see SPEC_FULL.md's resolution of
// spec.md's open question on negative indexing).
type Index struct {
	Value int
}

func (x Index) String() string { return fmt.Sprintf("[%d]", x.Value) }
func (x Index) Equal(o Node) bool {
	ox, ok := o.(Index)
	return ok && ox.Value == x.Value
}

// Slice is an array-slice accessor; a nil pointer means "not specified".
// Slice{} (all three nil) denotes "every element", equivalent to [*].
type Slice struct {
	Start *int
	End   *int
	Step  *int
}

func (s Slice) String() string {
	fmtPtr := func(p *int) string {
		if p == nil {
			return ""
		}
		return strconv.Itoa(*p)
	}
	if s.Start == nil && s.End == nil && s.Step == nil {
		return "[*]"
	}
	if s.Step == nil {
		return fmt.Sprintf("[%s:%s]", fmtPtr(s.Start), fmtPtr(s.End))
	}
	return fmt.Sprintf("[%s:%s:%s]", fmtPtr(s.Start), fmtPtr(s.End), fmtPtr(s.Step))
}

func (s Slice) Equal(o Node) bool {
	os, ok := o.(Slice)
	if !ok {
		return false
	}
	return intPtrEqual(s.Start, os.Start) && intPtrEqual(s.End, os.End) && intPtrEqual(s.Step, os.Step)
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Child is sequential composition: match L, then R at each match.
type Child struct {
	L, R Node
}

func (c Child) String() string { return c.L.String() + "." + c.R.String() }
func (c Child) Equal(o Node) bool {
	oc, ok := o.(Child)
	return ok && c.L.Equal(oc.L) && c.R.Equal(oc.R)
}

// Descendants matches L, then R at that location and recursively at
// every descendant of it.
type Descendants struct {
	L, R Node
}

func (d Descendants) String() string { return d.L.String() + ".." + d.R.String() }
func (d Descendants) Equal(o Node) bool {
	od, ok := o.(Descendants)
	return ok && d.L.Equal(od.L) && d.R.Equal(od.R)
}

// Where filters: yield each L-match whose predicate R matches (is
// non-empty) at the same subject L was evaluated at.
type Where struct {
	L, R Node
}

func (w Where) String() string { return w.L.String() + " where " + w.R.String() }
func (w Where) Equal(o Node) bool {
	ow, ok := o.(Where)
	return ok && w.L.Equal(ow.L) && w.R.Equal(ow.R)
}

// Union is the concatenation of L's and R's matches.
type Union struct {
	L, R Node
}

func (u Union) String() string { return u.L.String() + "|" + u.R.String() }
func (u Union) Equal(o Node) bool {
	ou, ok := o.(Union)
	return ok && u.L.Equal(ou.L) && u.R.Equal(ou.R)
}

// Intersect is reserved; Find returns ErrNotImplemented.
type Intersect struct {
	L, R Node
}

func (x Intersect) String() string { return x.L.String() + "&" + x.R.String() }
func (x Intersect) Equal(o Node) bool {
	ox, ok := o.(Intersect)
	return ok && x.L.Equal(ox.L) && x.R.Equal(ox.R)
}

// FilterOp is a comparison operator usable inside a bracket filter.
type FilterOp int

const (
	OpNone FilterOp = iota // bare path predicate, no comparison
	OpEq
	OpEqEq
	OpLt
	OpGt
	OpLe
	OpGe
)

func (op FilterOp) String() string {
	switch op {
	case OpEq:
		return "="
	case OpEqEq:
		return "=="
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	default:
		return ""
	}
}

// FilterTerm is one atomic clause of a bracket filter: a sub-path,
// optionally compared against a literal.
type FilterTerm struct {
	Path    Node
	Op      FilterOp
	Literal any // present iff Op != OpNone
}

func (t FilterTerm) String() string {
	if t.Op == OpNone {
		return t.Path.String()
	}
	return fmt.Sprintf("%s%s%s", t.Path.String(), t.Op.String(), literalString(t.Literal))
}

func (t FilterTerm) equal(o FilterTerm) bool {
	if t.Op != o.Op || !t.Path.Equal(o.Path) {
		return false
	}
	if t.Op == OpNone {
		return true
	}
	return equalScalar(t.Literal, o.Literal)
}

func literalString(v any) string {
	switch n := v.(type) {
	case string:
		return strconv.Quote(n)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", n)
	}
}

// Filter is the bracket predicate form '[?expr]': Terms are joined by
// '&' (conjunction); every term must be truthy for an element to match.
type Filter struct {
	Terms []FilterTerm
}

func (f Filter) String() string {
	parts := make([]string, len(f.Terms))
	for i, t := range f.Terms {
		parts[i] = t.String()
	}
	return "[?" + strings.Join(parts, "&") + "]"
}

func (f Filter) Equal(o Node) bool {
	of, ok := o.(Filter)
	if !ok || len(of.Terms) != len(f.Terms) {
		return false
	}
	for i := range f.Terms {
		if !f.Terms[i].equal(of.Terms[i]) {
			return false
		}
	}
	return true
}

// SortKey is one (direction, sub-path) pair of a bracketed sort form.
type SortKey struct {
	Path       Node
	Descending bool
}

func (k SortKey) String() string {
	if k.Descending {
		return "\\" + k.Path.String()
	}
	return "/" + k.Path.String()
}

// Sort is the bracketed sort form '[/k]' (ascending) / '[\k]'
// (descending); Keys compose lexicographically.
type Sort struct {
	Keys []SortKey
}

func (s Sort) String() string {
	parts := make([]string, len(s.Keys))
	for i, k := range s.Keys {
		parts[i] = k.String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (s Sort) Equal(o Node) bool {
	os, ok := o.(Sort)
	if !ok || len(os.Keys) != len(s.Keys) {
		return false
	}
	for i := range s.Keys {
		if s.Keys[i].Descending != os.Keys[i].Descending || !s.Keys[i].Path.Equal(os.Keys[i].Path) {
			return false
		}
	}
	return true
}

// NamedOperator is a back-tick enclosed special form; at minimum
// "this" and "parent" are recognized by Find.
type NamedOperator struct {
	Name string
}

func (n NamedOperator) String() string { return "`" + n.Name + "`" }
func (n NamedOperator) Equal(o Node) bool {
	on, ok := o.(NamedOperator)
	return ok && on.Name == n.Name
}

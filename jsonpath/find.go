package jsonpath

import "sort"

// evalContext carries the state that is constant across one Find call
// but needed by individual node kinds: the original document (Root
// must be reachable regardless of the currently focused subtree) and
// the active Options (auto_id_field resolution).
type evalContext struct {
	root any
	opts *Options
}

// Find enumerates every Datum the expression matches against v, using
// the process-wide auto_id_field setting.
func Find(n Node, v any) ([]Datum, error) {
	return FindWithOptions(n, v, nil)
}

// FindWithOptions is Find with an explicit per-call Options, overriding
// the global auto_id_field (spec.md §5/§9).
func FindWithOptions(n Node, v any, opts *Options) ([]Datum, error) {
	ctx := &evalContext{root: v, opts: opts}
	root := newRootDatum(v)
	return findNode(n, ctx, root)
}

// findNode dispatches on the concrete Node type, following the "tagged
// union dispatched by pattern match" design called for in spec.md §9
// rather than per-type methods, so the traversal helpers shared across
// variants (iterateChildren, below) live in one place instead of being
// duplicated per receiver.
func findNode(n Node, ctx *evalContext, focus Datum) ([]Datum, error) {
	switch t := n.(type) {
	case Root:
		return []Datum{{Value: ctx.root, Path: Root{}}}, nil
	case This:
		return []Datum{focus}, nil
	case Fields:
		return findFields(t, ctx, focus), nil
	case Index:
		return findIndex(t, focus), nil
	case Slice:
		return findSlice(t, focus), nil
	case Child:
		return findChild(t, ctx, focus)
	case Descendants:
		return findDescendants(t, ctx, focus)
	case Where:
		return findWhere(t, ctx, focus)
	case Union:
		l, err := findNode(t.L, ctx, focus)
		if err != nil {
			return nil, err
		}
		r, err := findNode(t.R, ctx, focus)
		if err != nil {
			return nil, err
		}
		return append(l, r...), nil
	case Intersect:
		return nil, ErrNotImplemented
	case Filter:
		return findFilter(t, ctx, focus)
	case Sort:
		return findSort(t, ctx, focus)
	case NamedOperator:
		return findNamedOperator(t, ctx, focus)
	default:
		return nil, wrapExec("find", "unrecognized node type %T", n)
	}
}

func findFields(f Fields, ctx *evalContext, focus Datum) []Datum {
	obj, ok := asObject(focus.Value)
	if !ok {
		return nil
	}
	for _, name := range f.Names {
		if name == "*" {
			out := make([]Datum, 0, len(obj))
			for k, v := range obj {
				out = append(out, Datum{Value: v, Path: Fields{Names: []string{k}}, Context: &focus})
			}
			return out
		}
	}
	aid := ctx.opts.autoIDField()
	var out []Datum
	for _, name := range f.Names {
		if v, present := obj[name]; present {
			out = append(out, Datum{Value: v, Path: Fields{Names: []string{name}}, Context: &focus})
			continue
		}
		if aid != "" && name == aid {
			d := Datum{Path: Fields{Names: []string{name}}, Context: &focus}
			d.Value = d.FullPathString()
			out = append(out, d)
		}
	}
	return out
}

func findIndex(x Index, focus Datum) []Datum {
	arr, ok := asArray(focus.Value)
	if !ok {
		return nil
	}
	i, ok := normalizeIndex(x.Value, len(arr))
	if !ok {
		return nil
	}
	return []Datum{{Value: arr[i], Path: Index{Value: i}, Context: &focus}}
}

func findSlice(s Slice, focus Datum) []Datum {
	if s.Start == nil && s.End == nil && s.Step == nil {
		switch focus.Value.(type) {
		case []any:
		default:
			return []Datum{{Value: focus.Value, Path: Index{Value: 0}, Context: &focus}}
		}
	}
	arr, ok := asArray(focus.Value)
	if !ok {
		return nil
	}
	step := 1
	if s.Step != nil {
		step = *s.Step
	}
	idxs := sliceIndices(len(arr), s.Start, s.End, step)
	out := make([]Datum, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, Datum{Value: arr[i], Path: Index{Value: i}, Context: &focus})
	}
	return out
}

func findChild(c Child, ctx *evalContext, focus Datum) ([]Datum, error) {
	lefts, err := findNode(c.L, ctx, focus)
	if err != nil {
		return nil, err
	}
	var out []Datum
	for _, dL := range lefts {
		rights, err := findNode(c.R, ctx, dL)
		if err != nil {
			return nil, err
		}
		out = append(out, rights...)
	}
	return out, nil
}

func findWhere(w Where, ctx *evalContext, focus Datum) ([]Datum, error) {
	lefts, err := findNode(w.L, ctx, focus)
	if err != nil {
		return nil, err
	}
	var out []Datum
	for _, dL := range lefts {
		matches, err := findNode(w.R, ctx, dL)
		if err != nil {
			return nil, err
		}
		if len(matches) > 0 {
			out = append(out, dL)
		}
	}
	return out, nil
}

func findDescendants(d Descendants, ctx *evalContext, focus Datum) ([]Datum, error) {
	lefts, err := findNode(d.L, ctx, focus)
	if err != nil {
		return nil, err
	}
	var out []Datum
	for _, dL := range lefts {
		matches, err := descendFind(d.R, ctx, dL)
		if err != nil {
			return nil, err
		}
		out = append(out, matches...)
	}
	return out, nil
}

// descendFind matches R at datum and, recursing only through genuine
// arrays/objects (never through Slice's scalar-to-list coercion, per
// spec.md §9 "Descendants recursion"), at every descendant of datum.
func descendFind(r Node, ctx *evalContext, datum Datum) ([]Datum, error) {
	out, err := findNode(r, ctx, datum)
	if err != nil {
		return nil, err
	}
	for _, child := range iterateChildren(datum) {
		sub, err := descendFind(r, ctx, child)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}

// iterateChildren enumerates the immediate array elements or object
// members of datum.Value as fresh Datums parented on datum, for use by
// Descendants. It never invokes Slice's scalar coercion.
func iterateChildren(datum Datum) []Datum {
	switch v := datum.Value.(type) {
	case []any:
		out := make([]Datum, len(v))
		for i, elem := range v {
			out[i] = Datum{Value: elem, Path: Index{Value: i}, Context: &datum}
		}
		return out
	case map[string]any:
		out := make([]Datum, 0, len(v))
		for k, elem := range v {
			out = append(out, Datum{Value: elem, Path: Fields{Names: []string{k}}, Context: &datum})
		}
		return out
	default:
		return nil
	}
}

func findFilter(f Filter, ctx *evalContext, focus Datum) ([]Datum, error) {
	candidates, err := filterCandidates(focus)
	if err != nil {
		return nil, err
	}
	var out []Datum
	for _, cand := range candidates {
		ok, err := filterTermsMatch(f.Terms, ctx, cand)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, cand)
		}
	}
	return out, nil
}

func filterCandidates(focus Datum) ([]Datum, error) {
	switch v := focus.Value.(type) {
	case []any:
		out := make([]Datum, len(v))
		for i, elem := range v {
			out[i] = Datum{Value: elem, Path: Index{Value: i}, Context: &focus}
		}
		return out, nil
	case map[string]any:
		out := make([]Datum, 0, len(v))
		for k, elem := range v {
			out = append(out, Datum{Value: elem, Path: Fields{Names: []string{k}}, Context: &focus})
		}
		return out, nil
	default:
		return nil, nil
	}
}

func filterTermsMatch(terms []FilterTerm, ctx *evalContext, cand Datum) (bool, error) {
	for _, term := range terms {
		matches, err := findNode(term.Path, ctx, cand)
		if err != nil {
			return false, err
		}
		if term.Op == OpNone {
			if len(matches) == 0 {
				return false, nil
			}
			continue
		}
		satisfied := false
		for _, m := range matches {
			if compareTerm(m.Value, term.Op, term.Literal) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false, nil
		}
	}
	return true, nil
}

func compareTerm(value any, op FilterOp, literal any) bool {
	switch op {
	case OpEq, OpEqEq:
		return equalScalar(value, literal)
	case OpLt, OpGt, OpLe, OpGe:
		cmp, ok := compareScalar(value, literal)
		if !ok {
			return false
		}
		switch op {
		case OpLt:
			return cmp < 0
		case OpGt:
			return cmp > 0
		case OpLe:
			return cmp <= 0
		case OpGe:
			return cmp >= 0
		}
	}
	return false
}

func findSort(s Sort, ctx *evalContext, focus Datum) ([]Datum, error) {
	elems, err := findNode(This{}, ctx, focus)
	if err != nil {
		return nil, err
	}
	children := iterateChildren(focus)
	if len(children) > 0 {
		elems = children
	}

	type keyed struct {
		datum Datum
		keys  []sortKeyValue
		idx   int
	}
	rows := make([]keyed, len(elems))
	for i, e := range elems {
		keys := make([]sortKeyValue, len(s.Keys))
		for ki, sk := range s.Keys {
			matches, err := findNode(sk.Path, ctx, e)
			if err != nil {
				return nil, err
			}
			if len(matches) > 0 {
				keys[ki] = sortKeyValue{present: true, value: matches[0].Value}
			}
		}
		rows[i] = keyed{datum: e, keys: keys, idx: i}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for ki, sk := range s.Keys {
			c := compareSortKeys(rows[i].keys[ki], rows[j].keys[ki])
			if sk.Descending {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return rows[i].idx < rows[j].idx
	})

	out := make([]Datum, len(rows))
	for i, r := range rows {
		out[i] = r.datum
	}
	return out, nil
}

type sortKeyValue struct {
	present bool
	value   any
}

// compareSortKeys orders two optional key values: missing sorts after
// present in ascending order (spec.md §4.F "Sort"); the caller negates
// the result for a descending key, which correspondingly puts missing
// before present in that direction.
func compareSortKeys(a, b sortKeyValue) int {
	if a.present && !b.present {
		return -1
	}
	if !a.present && b.present {
		return 1
	}
	if !a.present && !b.present {
		return 0
	}
	if c, ok := compareScalar(a.value, b.value); ok {
		return c
	}
	return 0
}

func findNamedOperator(op NamedOperator, ctx *evalContext, focus Datum) ([]Datum, error) {
	switch op.Name {
	case "this":
		return []Datum{focus}, nil
	case "parent":
		if focus.Context == nil {
			return nil, nil
		}
		return []Datum{*focus.Context}, nil
	default:
		return nil, wrapExec("find", "unknown named operator `%s`", op.Name)
	}
}

package jsonpath

import (
	"encoding/json"
	"sort"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/pkg/errors"
)

// step is one concrete, already-resolved hop of a matched Datum's
// FullPath: either an object field or an absolute (non-negative) array
// index. Update/Include/Exclude are implemented generically over these
// flattened step lists rather than per AST variant, per SPEC_FULL.md §7.
type step struct {
	isIndex bool
	field   string
	index   int
}

// pathSteps flattens a FullPath Child-chain (as produced by
// Datum.FullPath) into an ordered list of concrete steps, dropping the
// Root/This sentinels that carry no structural information.
func pathSteps(n Node) []step {
	var out []step
	var walk func(Node)
	walk = func(nd Node) {
		switch t := nd.(type) {
		case Root, This:
			return
		case Child:
			walk(t.L)
			walk(t.R)
		case Fields:
			if len(t.Names) == 1 {
				out = append(out, step{field: t.Names[0]})
			}
		case Index:
			out = append(out, step{isIndex: true, index: t.Value})
		}
	}
	walk(n)
	return out
}

// stepsToPointer renders steps as an RFC 6901 JSON Pointer, escaping '~' and
// '/' in field names as the spec requires.
func stepsToPointer(steps []step) string {
	var b strings.Builder
	for _, s := range steps {
		b.WriteByte('/')
		if s.isIndex {
			b.WriteString(itoa(s.index))
			continue
		}
		f := strings.ReplaceAll(s.field, "~", "~0")
		f = strings.ReplaceAll(f, "/", "~1")
		b.WriteString(f)
	}
	return b.String()
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var digits []byte
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

// Update returns a copy of v with every location matched by n replaced
// by replacement. A match at the document root (Root or This) replaces
// the whole document, per spec.md §4.G.
//
// The splice itself is expressed as RFC 6902 JSON Patch "replace"
// operations built from each match's full_path, applied with
// evanphx/json-patch instead of a hand-rolled tree walk (SPEC_FULL.md
// §4), reusing for document patching the exact dependency the teacher
// carries for patching Kubernetes objects.
func Update(n Node, v any, replacement any) (any, error) {
	matches, err := Find(n, v)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return v, nil
	}

	var ops []map[string]any
	for _, m := range matches {
		steps := pathSteps(m.FullPath())
		if len(steps) == 0 {
			// Root/This: the whole document is the match.
			return replacement, nil
		}
		ops = append(ops, map[string]any{
			"op":    "replace",
			"path":  stepsToPointer(steps),
			"value": replacement,
		})
	}

	docBytes, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "jsonpath: update: marshal document")
	}
	patchBytes, err := json.Marshal(ops)
	if err != nil {
		return nil, errors.Wrap(err, "jsonpath: update: marshal patch")
	}
	patch, err := jsonpatch.DecodePatch(patchBytes)
	if err != nil {
		return nil, errors.Wrap(err, "jsonpath: update: decode patch")
	}
	resultBytes, err := patch.Apply(docBytes)
	if err != nil {
		return nil, errors.Wrap(err, "jsonpath: update: apply patch")
	}
	var result any
	if err := json.Unmarshal(resultBytes, &result); err != nil {
		return nil, errors.Wrap(err, "jsonpath: update: unmarshal result")
	}
	return result, nil
}

// trieNode groups matched full_paths by shared prefix so that
// Include/Exclude can act on a whole match set at once instead of
// splicing one match at a time -- which is what avoids the classic
// stale-index bug when two matches fall in the same array (e.g. a
// Slice match spanning several elements).
type trieNode struct {
	leaf          bool
	fieldChildren map[string]*trieNode
	indexChildren map[int]*trieNode
}

func buildTrie(matches []Datum) (root *trieNode, wholeDocument bool) {
	root = &trieNode{}
	for _, m := range matches {
		steps := pathSteps(m.FullPath())
		if len(steps) == 0 {
			wholeDocument = true
			continue
		}
		insertSteps(root, steps)
	}
	return root, wholeDocument
}

func insertSteps(root *trieNode, steps []step) {
	cur := root
	for _, s := range steps {
		if cur.leaf {
			return // an ancestor is already fully matched; nothing finer to record
		}
		var child *trieNode
		if s.isIndex {
			if cur.indexChildren == nil {
				cur.indexChildren = map[int]*trieNode{}
			}
			child = cur.indexChildren[s.index]
			if child == nil {
				child = &trieNode{}
				cur.indexChildren[s.index] = child
			}
		} else {
			if cur.fieldChildren == nil {
				cur.fieldChildren = map[string]*trieNode{}
			}
			child = cur.fieldChildren[s.field]
			if child == nil {
				child = &trieNode{}
				cur.fieldChildren[s.field] = child
			}
		}
		cur = child
	}
	cur.leaf = true
}

// Exclude returns v with every location matched by n removed: object
// members deleted from their container, array indices deleted while
// preserving the relative order of what remains. Excluding Root/This
// yields nil, the language-appropriate "empty document" (spec.md §4.H).
func Exclude(n Node, v any) (any, error) {
	matches, err := Find(n, v)
	if err != nil {
		return nil, err
	}
	root, wholeDocument := buildTrie(matches)
	if wholeDocument {
		return nil, nil
	}
	return excludeApply(v, root), nil
}

func excludeApply(v any, node *trieNode) any {
	if node == nil {
		return v
	}
	switch val := v.(type) {
	case map[string]any:
		out := cloneObject(val)
		for name, child := range node.fieldChildren {
			if _, present := out[name]; !present {
				continue
			}
			if child.leaf {
				delete(out, name)
			} else {
				out[name] = excludeApply(out[name], child)
			}
		}
		return out
	case []any:
		out := cloneArray(val)
		drop := map[int]bool{}
		for idx, child := range node.indexChildren {
			if idx < 0 || idx >= len(out) {
				continue
			}
			if child.leaf {
				drop[idx] = true
			} else {
				out[idx] = excludeApply(out[idx], child)
			}
		}
		if len(drop) == 0 {
			return out
		}
		filtered := make([]any, 0, len(out)-len(drop))
		for i, e := range out {
			if drop[i] {
				continue
			}
			filtered = append(filtered, e)
		}
		return filtered
	default:
		return v
	}
}

// Include returns the smallest sub-document retaining exactly the
// locations n matches, together with the ancestry needed to reach them;
// sibling members/elements on no matched path are removed (spec.md
// §4.H). Matching Root/This retains the whole document; matching
// nothing yields nil.
func Include(n Node, v any) (any, error) {
	matches, err := Find(n, v)
	if err != nil {
		return nil, err
	}
	root, wholeDocument := buildTrie(matches)
	if wholeDocument {
		return v, nil
	}
	if len(root.fieldChildren) == 0 && len(root.indexChildren) == 0 {
		return nil, nil
	}
	return includeApply(v, root), nil
}

func includeApply(v any, node *trieNode) any {
	switch val := v.(type) {
	case map[string]any:
		out := map[string]any{}
		for name, child := range node.fieldChildren {
			actual, present := val[name]
			if !present {
				continue
			}
			if child.leaf {
				out[name] = actual
			} else {
				out[name] = includeApply(actual, child)
			}
		}
		return out
	case []any:
		indices := make([]int, 0, len(node.indexChildren))
		for idx := range node.indexChildren {
			indices = append(indices, idx)
		}
		sort.Ints(indices)
		out := make([]any, 0, len(indices))
		for _, idx := range indices {
			if idx < 0 || idx >= len(val) {
				continue
			}
			child := node.indexChildren[idx]
			if child.leaf {
				out = append(out, val[idx])
			} else {
				out = append(out, includeApply(val[idx], child))
			}
		}
		return out
	default:
		return v
	}
}

package jsonpath

import "encoding/json"

// asObject reports whether v is a JSON object under our value model and
// returns it as a map[string]any.
func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// asArray reports whether v is a JSON array under our value model.
func asArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

// cloneObject makes a shallow copy of m; the caller mutates only the
// top-level keys it intends to change.
func cloneObject(m map[string]any) map[string]any {
	c := make(map[string]any, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// cloneArray makes a shallow copy of a; the caller mutates only the
// elements it intends to change.
func cloneArray(a []any) []any {
	c := make([]any, len(a))
	copy(c, a)
	return c
}

// normalizeIndex converts a possibly-negative index (counted from the end,
// as the original Python implementation allows via native negative
// indexing) into an absolute index. It returns false if the resulting
// index is out of bounds.
func normalizeIndex(i, length int) (int, bool) {
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return 0, false
	}
	return i, true
}

// sliceIndices computes the list of absolute indices selected by a
// Python-style slice(start, end, step) over a sequence of the given
// length. A nil pointer means "not specified".
func sliceIndices(length int, start, end *int, step int) []int {
	if step == 0 {
		step = 1
	}

	clamp := func(i, lo, hi int) int {
		if i < lo {
			return lo
		}
		if i > hi {
			return hi
		}
		return i
	}

	var s, e int
	if step > 0 {
		if start != nil {
			s = *start
			if s < 0 {
				s += length
			}
			s = clamp(s, 0, length)
		} else {
			s = 0
		}
		if end != nil {
			e = *end
			if e < 0 {
				e += length
			}
			e = clamp(e, 0, length)
		} else {
			e = length
		}
	} else {
		if start != nil {
			s = *start
			if s < 0 {
				s += length
			}
			s = clamp(s, -1, length-1)
		} else {
			s = length - 1
		}
		if end != nil {
			e = *end
			if e < 0 {
				e += length
			}
			e = clamp(e, -1, length-1)
		} else {
			e = -1
		}
	}
	var out []int
	if step > 0 {
		for i := s; i < e; i += step {
			out = append(out, i)
		}
	} else {
		for i := s; i > e; i += step {
			out = append(out, i)
		}
	}
	return out
}

// equalScalar compares two decoded-JSON scalars for the purposes of filter
// comparisons. Numbers compare numerically regardless of whether they were
// decoded as float64 or json.Number; everything else compares with ==.
func equalScalar(a, b any) bool {
	an, aIsNum := asFloat(a)
	bn, bIsNum := asFloat(b)
	if aIsNum && bIsNum {
		return an == bn
	}
	return a == b
}

// compareScalar returns -1, 0, 1 if a<b, a==b, a>b respectively, and false
// if the two values are not ordered comparable under our value model.
func compareScalar(a, b any) (int, bool) {
	an, aIsNum := asFloat(a)
	bn, bIsNum := asFloat(b)
	if aIsNum && bIsNum {
		switch {
		case an < bn:
			return -1, true
		case an > bn:
			return 1, true
		default:
			return 0, true
		}
	}
	as, aIsStr := a.(string)
	bs, bIsStr := b.(string)
	if aIsStr && bIsStr {
		switch {
		case as < bs:
			return -1, true
		case as > bs:
			return 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

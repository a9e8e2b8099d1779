package value

import "strings"

// Compare defines the typed total order used by $gt/$gte/$lt/$lte. It
// returns ok=false for any pairing outside the within-type comparisons
// this engine contracts to support — callers must then treat the
// comparison operators as non-matching, per the contract's deliberate
// departure from BSON's full type-bracketed ordering.
func Compare(a, b Value) (cmp int, ok bool) {
	if a.kind != b.kind {
		return 0, false
	}
	switch a.kind {
	case KindNull:
		return 0, true
	case KindNumber:
		switch {
		case a.n < b.n:
			return -1, true
		case a.n > b.n:
			return 1, true
		default:
			return 0, true
		}
	case KindString:
		return strings.Compare(a.s, b.s), true
	case KindArray:
		return compareArrays(a.arr, b.arr)
	case KindMap:
		return compareMaps(a.m, b.m)
	default:
		return 0, false
	}
}

func compareArrays(a, b []Value) (int, bool) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		switch {
		case i >= len(a):
			return -1, true // a exhausted first: a is shorter, so a < b
		case i >= len(b):
			return 1, true
		}
		if Equal(a[i], b[i]) {
			continue
		}
		c, ok := Compare(a[i], b[i])
		if !ok {
			return 0, false
		}
		return c, true
	}
	return 0, true
}

func compareMaps(a, b *OrderedMap) (int, bool) {
	aKeys, bKeys := a.Keys(), b.Keys()
	n := len(aKeys)
	if len(bKeys) > n {
		n = len(bKeys)
	}
	for i := 0; i < n; i++ {
		switch {
		case i >= len(aKeys):
			return -1, true
		case i >= len(bKeys):
			return 1, true
		}
		ak, bk := aKeys[i], bKeys[i]
		if ak != bk {
			return strings.Compare(ak, bk), true
		}
		av, _ := a.Get(ak)
		bv, _ := b.Get(bk)
		if Equal(av, bv) {
			continue
		}
		c, ok := Compare(av, bv)
		if !ok {
			return 0, false
		}
		return c, true
	}
	return 0, true
}

package value

// Equal is the deep structural equality used throughout the matcher:
// symmetric and transitive over the value model, and reflexive except
// that a Function value (and a NaN number) is never equal to anything,
// itself included. Map equality ignores insertion order; Array
// equality is order-sensitive.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindString:
		return a.s == b.s
	case KindRegex:
		return a.re.Pattern == b.re.Pattern && a.re.Flags == b.re.Flags
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if a.m.Len() != b.m.Len() {
			return false
		}
		equal := true
		a.m.Range(func(key string, av Value) bool {
			bv, ok := b.m.Get(key)
			if !ok || !Equal(av, bv) {
				equal = false
				return false
			}
			return true
		})
		return equal
	case KindFunction:
		// Host callables carry no comparable identity in this model.
		return false
	default:
		return false
	}
}

package value

// OrderedMap is a string-keyed map that preserves insertion order.
// Map comparisons in the typed-ordering operators (§4.4 of the
// matching contract) depend on that order, so the value model carries
// a parallel key slice alongside the lookup table rather than relying
// on a bare Go map.
type OrderedMap struct {
	keys   []string
	values map[string]Value
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]Value)}
}

// Set inserts or overwrites key. Overwriting an existing key keeps its
// original position in Keys().
func (m *OrderedMap) Set(key string, v Value) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value for key and whether it was present.
func (m *OrderedMap) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *OrderedMap) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Keys returns the keys in insertion order. Callers must not mutate
// the returned slice.
func (m *OrderedMap) Keys() []string { return m.keys }

// Len reports the number of entries.
func (m *OrderedMap) Len() int { return len(m.keys) }

// Range calls fn for each entry in insertion order, stopping early if
// fn returns false.
func (m *OrderedMap) Range(fn func(key string, v Value) bool) {
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// Clone returns a deep-enough copy: a new backing map and key slice,
// sharing the immutable Values themselves.
func (m *OrderedMap) Clone() *OrderedMap {
	out := &OrderedMap{
		keys:   append([]string(nil), m.keys...),
		values: make(map[string]Value, len(m.values)),
	}
	for k, v := range m.values {
		out.values[k] = v
	}
	return out
}

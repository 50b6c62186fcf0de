package registry

// table is a two-level capability index: outer format key to inner format
// key to an ordered entry list. Entry order is insertion order and encodes
// declared preference, so nothing here ever sorts or deduplicates.
type table[V any] map[string]map[string][]V

func (t table[V]) add(outer, inner string, v V) {
	m := t[outer]
	if m == nil {
		m = make(map[string][]V)
		t[outer] = m
	}
	m[inner] = append(m[inner], v)
}

// inner returns the inner mapping for an outer key, or an empty map when
// the key is absent. Never nil.
func (t table[V]) inner(outer string) map[string][]V {
	if m, ok := t[outer]; ok {
		return m
	}
	return map[string][]V{}
}

func (t table[V]) outerKeys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	return keys
}

// clone walks the full structure building new maps and new lists while
// keeping the same leaf values. Mutating one copy's structure never
// affects the other.
func (t table[V]) clone() table[V] {
	out := make(table[V], len(t))
	for outer, m := range t {
		for inner, list := range m {
			for _, v := range list {
				out.add(outer, inner, v)
			}
		}
	}
	return out
}

// pairCount counts the (outer, inner) format pairs present.
func (t table[V]) pairCount() int {
	n := 0
	for _, m := range t {
		n += len(m)
	}
	return n
}

package node

// orderedMap preserves insertion order of its keys. It is filled once during
// materialization and read-only afterwards.
type orderedMap[V any] struct {
	keys   []string
	values map[string]V
}

func newOrderedMap[V any](capacity int) *orderedMap[V] {
	return &orderedMap[V]{
		keys:   make([]string, 0, capacity),
		values: make(map[string]V, capacity),
	}
}

// put inserts key. It returns false, leaving the map unchanged, when key is
// already present.
func (m *orderedMap[V]) put(key string, value V) bool {
	if _, exists := m.values[key]; exists {
		return false
	}
	m.keys = append(m.keys, key)
	m.values[key] = value
	return true
}

func (m *orderedMap[V]) get(key string) (V, bool) {
	value, ok := m.values[key]
	return value, ok
}

// list returns the values in insertion order.
func (m *orderedMap[V]) list() []V {
	out := make([]V, 0, len(m.keys))
	for _, key := range m.keys {
		out = append(out, m.values[key])
	}
	return out
}

func (m *orderedMap[V]) size() int {
	return len(m.keys)
}

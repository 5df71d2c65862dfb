package vm

// ---------------------------------------------------------------------------
// PropertyMap: namespace-aware associative container keyed by QName
// ---------------------------------------------------------------------------

type propEntry[V any] struct {
	ns    Namespace
	value V
}

// PropertyMap stores values keyed by qualified name. Entries sharing a
// local name keep their namespaces in insertion order, which makes
// multiname resolution deterministic: the earliest-inserted namespace in
// the candidate set wins.
type PropertyMap[V any] struct {
	entries map[string][]propEntry[V]
}

// NewPropertyMap creates an empty property map.
func NewPropertyMap[V any]() *PropertyMap[V] {
	return &PropertyMap[V]{entries: make(map[string][]propEntry[V])}
}

// Get returns the value stored under an exact qualified name.
func (m *PropertyMap[V]) Get(name QName) (V, bool) {
	for _, e := range m.entries[name.LocalName()] {
		if e.ns == name.Namespace() {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

// Contains reports whether an exact qualified name is present.
func (m *PropertyMap[V]) Contains(name QName) bool {
	_, ok := m.Get(name)
	return ok
}

// Set stores a value under a qualified name, replacing any existing entry
// for the same namespace in place.
func (m *PropertyMap[V]) Set(name QName, value V) {
	bucket := m.entries[name.LocalName()]
	for i, e := range bucket {
		if e.ns == name.Namespace() {
			bucket[i].value = value
			return
		}
	}
	m.entries[name.LocalName()] = append(bucket, propEntry[V]{ns: name.Namespace(), value: value})
}

// GetForMultiname returns the first entry whose namespace is in the
// multiname's candidate set.
func (m *PropertyMap[V]) GetForMultiname(mn *Multiname) (V, bool) {
	_, v, ok := m.GetWithNamespaceForMultiname(mn)
	return v, ok
}

// GetWithNamespaceForMultiname resolves a multiname against the stored
// entries and additionally reports which namespace matched, so the caller
// can reconstruct the fully qualified name.
func (m *PropertyMap[V]) GetWithNamespaceForMultiname(mn *Multiname) (Namespace, V, bool) {
	var zero V
	name, ok := mn.LocalName()
	if !ok {
		return Namespace{}, zero, false
	}
	for _, e := range m.entries[name] {
		if mn.ContainsNamespace(e.ns) {
			return e.ns, e.value, true
		}
	}
	return Namespace{}, zero, false
}

// Len returns the number of stored entries.
func (m *PropertyMap[V]) Len() int {
	n := 0
	for _, bucket := range m.entries {
		n += len(bucket)
	}
	return n
}

// Each calls fn for every stored entry. Iteration order across local
// names is unspecified; within one local name it follows insertion order.
func (m *PropertyMap[V]) Each(fn func(name QName, value V)) {
	for local, bucket := range m.entries {
		for _, e := range bucket {
			fn(NewQName(e.ns, local), e.value)
		}
	}
}

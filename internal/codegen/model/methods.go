package model

// MethodSet is an insertion-ordered set of wire method names.
type MethodSet struct {
	names []string
	seen  map[string]struct{}
}

func NewMethodSet() *MethodSet {
	return &MethodSet{seen: make(map[string]struct{})}
}

// Add appends name unless it is already present and reports whether it was added.
func (m *MethodSet) Add(name string) bool {
	if _, ok := m.seen[name]; ok {
		return false
	}
	m.seen[name] = struct{}{}
	m.names = append(m.names, name)
	return true
}

func (m *MethodSet) Contains(name string) bool {
	_, ok := m.seen[name]
	return ok
}

func (m *MethodSet) Len() int {
	return len(m.names)
}

// Names returns the method names in first-seen order.
func (m *MethodSet) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

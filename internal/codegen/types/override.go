package types

// Override is a partial descriptor. Nil fields carry no opinion and leave the
// target untouched when merged.
type Override struct {
	Name       *string
	Array      *bool
	Optional   *bool
	Nullable   *bool
	Dependency *string
	Binding    *Binding
}

// Rename returns an override that maps a name onto a target type with an
// explicit dependency ("" meaning none).
func Rename(name, dependency string) Override {
	return Override{Name: &name, Dependency: &dependency}
}

// WithBinding returns a copy of o carrying b.
func (o Override) WithBinding(b Binding) Override {
	o.Binding = &b
	return o
}

// OverrideTable maps schema type names to overrides.
type OverrideTable map[string]Override

// Apply merges the entry registered for d.Name into d and reports whether one
// existed.
func (t OverrideTable) Apply(d *Descriptor) bool {
	o, ok := t[d.Name]
	if !ok {
		return false
	}
	d.Merge(o)
	return true
}

// Resolve builds a descriptor for name and applies the table to it.
func (t OverrideTable) Resolve(name string) Descriptor {
	d := New(name)
	t.Apply(&d)
	return d
}

// Clone returns a shallow copy; entries themselves are immutable values.
func (t OverrideTable) Clone() OverrideTable {
	out := make(OverrideTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Package types holds the normalized representation of a single type
// occurrence in the meta-model, and the override table used to map schema
// type names onto target types.
package types

// Dynamic is the placeholder name for values that are not modelled
// structurally (unknown shapes, unmapped unions, self references). It is
// mapped to a concrete target type through the override table.
const Dynamic = "json"

// Descriptor describes one type occurrence.
//
// Optional and Nullable are independent: Optional means the key may be absent
// from a payload, Nullable means the key is present but may hold null.
type Descriptor struct {
	Name       string
	Array      bool
	Optional   bool
	Nullable   bool
	Dependency string // include required to use the type, e.g. `"Range.hpp"` or `<string>`
	Binding    Binding
}

// New returns a descriptor for name with default flags and the
// declaration-file dependency derived from the name.
func New(name string) Descriptor {
	return Descriptor{Name: name, Dependency: DefaultDependency(name)}
}

// NewWithDependency returns a descriptor with an explicit dependency.
func NewWithDependency(name, dependency string) Descriptor {
	return Descriptor{Name: name, Dependency: dependency}
}

// DefaultDependency is the generated header of a declaration named name.
func DefaultDependency(name string) string {
	if name == "" {
		return ""
	}
	return `"` + name + `.hpp"`
}

// IsDefOptional reports whether a presence check is needed at all.
func (d Descriptor) IsDefOptional() bool {
	return d.Optional || d.Nullable
}

// ValueType renders the stored value type without the optional wrapper.
func (d Descriptor) ValueType() string {
	if d.Array {
		return "std::vector<" + d.Name + ">"
	}
	return d.Name
}

// String renders the full declared type: optional outermost, then array,
// then the base name.
func (d Descriptor) String() string {
	t := d.ValueType()
	if d.IsDefOptional() {
		t = "std::optional<" + t + ">"
	}
	return t
}

// Merge overwrites every field for which o has an opinion.
func (d *Descriptor) Merge(o Override) {
	if o.Name != nil {
		d.Name = *o.Name
	}
	if o.Array != nil {
		d.Array = *o.Array
	}
	if o.Optional != nil {
		d.Optional = *o.Optional
	}
	if o.Nullable != nil {
		d.Nullable = *o.Nullable
	}
	if o.Dependency != nil {
		d.Dependency = *o.Dependency
	}
	if o.Binding != nil {
		d.Binding = *o.Binding
	}
}

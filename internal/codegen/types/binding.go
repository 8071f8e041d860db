package types

import "github.com/Alia5/lspgen/internal/codegen/common"

// Hook renders the assignment of one field in one wire direction.
// field is the wire key; the member identifier is common.MemberName(field).
// The returned text is already indented with idt and newline terminated.
type Hook func(d Descriptor, idt common.Indent, field string) string

// BindingKind tags how a descriptor is (de)serialized.
type BindingKind uint8

const (
	// BindingDefault uses direct field assignment.
	BindingDefault BindingKind = iota
	// BindingCustom replaces the assignment with the hooks of the binding.
	BindingCustom
)

func (k BindingKind) String() string {
	switch k {
	case BindingDefault:
		return "default"
	case BindingCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Binding is the wire strategy of a descriptor. The zero value is the default
// strategy. A custom binding may leave one direction nil, in which case that
// direction falls back to the default.
type Binding struct {
	Kind     BindingKind
	Name     string
	ToWire   Hook
	FromWire Hook
}

// Custom builds a named custom binding.
func Custom(name string, toWire, fromWire Hook) Binding {
	return Binding{Kind: BindingCustom, Name: name, ToWire: toWire, FromWire: fromWire}
}

// Encoder returns the encode hook, or nil for the default strategy.
func (b Binding) Encoder() Hook {
	if b.Kind != BindingCustom {
		return nil
	}
	return b.ToWire
}

// Decoder returns the decode hook, or nil for the default strategy.
func (b Binding) Decoder() Hook {
	if b.Kind != BindingCustom {
		return nil
	}
	return b.FromWire
}

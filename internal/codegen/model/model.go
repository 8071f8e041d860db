// Package model defines the declaration model shared by the resolver and the
// code emitters: structures with their properties and bases, enumerations and
// the reserved method names.
package model

import "github.com/Alia5/lspgen/internal/codegen/types"

// Property is a single field of a structure.
type Property struct {
	Name          string
	Type          types.Descriptor
	Documentation string
	// LiteralValue, when set, turns the property into a compile-time constant:
	// it is declared but never serialized.
	LiteralValue *string
}

// IsConstant reports whether the property is a compile-time constant.
func (p *Property) IsConstant() bool {
	return p.LiteralValue != nil
}

// Structure is a named aggregate declaration.
type Structure struct {
	Name          string
	Documentation string
	// Extends lists super types and mixins in schema order. It may contain
	// duplicates and names that are not structures of this model.
	Extends    []types.Descriptor
	Properties []*Property
	// Bases holds the registered structures named by Extends, filled once the
	// whole schema is registered.
	Bases []*Structure
}

func NewStructure(name string) *Structure {
	return &Structure{Name: name}
}

func (s *Structure) AddProperty(p *Property) {
	s.Properties = append(s.Properties, p)
}

// Property returns the own property called name, or nil.
func (s *Structure) Property(name string) *Property {
	for _, p := range s.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// PropertyNames returns the set of own property names.
func (s *Structure) PropertyNames() map[string]bool {
	names := make(map[string]bool, len(s.Properties))
	for _, p := range s.Properties {
		names[p.Name] = true
	}
	return names
}

// UniqueExtends returns Extends with repeated names dropped, order preserved.
func (s *Structure) UniqueExtends() []types.Descriptor {
	seen := make(map[string]bool, len(s.Extends))
	out := make([]types.Descriptor, 0, len(s.Extends))
	for _, e := range s.Extends {
		if seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		out = append(out, e)
	}
	return out
}

// LinkBase appends base to Bases unless it is already linked.
func (s *Structure) LinkBase(base *Structure) bool {
	for _, b := range s.Bases {
		if b == base {
			return false
		}
	}
	s.Bases = append(s.Bases, base)
	return true
}

// HasArray reports whether any stored property is an array.
func (s *Structure) HasArray() bool {
	for _, p := range s.Properties {
		if p.Type.Array {
			return true
		}
	}
	return false
}

// HasOptional reports whether any stored property is optional or nullable.
func (s *Structure) HasOptional() bool {
	for _, p := range s.Properties {
		if p.Type.IsDefOptional() {
			return true
		}
	}
	return false
}

// Ancestors returns every structure reachable through Bases, depth first,
// each one once.
func (s *Structure) Ancestors() []*Structure {
	var out []*Structure
	seen := map[*Structure]bool{s: true}
	var walk func(st *Structure)
	walk = func(st *Structure) {
		for _, b := range st.Bases {
			if seen[b] {
				continue
			}
			seen[b] = true
			out = append(out, b)
			walk(b)
		}
	}
	walk(s)
	return out
}

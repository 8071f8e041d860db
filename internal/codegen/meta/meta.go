package meta

import "github.com/Alia5/lspgen/internal/codegen/model"

// Metadata holds all resolved declarations needed for code generation.
// Shared between the generator orchestrator and language-specific emitters.
type Metadata struct {
	Version      string // meta-model version, if the document declares one
	Structures   []*model.Structure
	Enumerations []*model.Enumeration
	Methods      *model.MethodSet
}

// Structure returns the structure called name, or nil.
func (m *Metadata) Structure(name string) *model.Structure {
	for _, s := range m.Structures {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Enumeration returns the enumeration called name, or nil.
func (m *Metadata) Enumeration(name string) *model.Enumeration {
	for _, e := range m.Enumerations {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// UnitKind classifies an emitted output unit.
type UnitKind int

const (
	UnitStructure UnitKind = iota
	UnitEnumeration
	UnitMethods
	UnitSource
	UnitBuild
)

func (k UnitKind) String() string {
	switch k {
	case UnitStructure:
		return "structure"
	case UnitEnumeration:
		return "enumeration"
	case UnitMethods:
		return "methods"
	case UnitSource:
		return "source"
	case UnitBuild:
		return "build"
	default:
		return "unknown"
	}
}

// Unit is one output file, path relative to the output directory.
type Unit struct {
	Path    string
	Kind    UnitKind
	Content []byte
}

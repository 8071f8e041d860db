package cpp

import (
	"fmt"
	"log/slog"
	"path"

	"github.com/Alia5/lspgen/internal/codegen/common"
	"github.com/Alia5/lspgen/internal/codegen/meta"
)

// Options controls the emitted C++.
type Options struct {
	// Namespace is the nested namespace wrapping every declaration; it also
	// names the include sub-directory.
	Namespace  []string
	IndentUnit string
	// Version is stamped into file headers; empty means the generator version.
	Version string
}

// DefaultNamespace is used when no namespace is configured.
func DefaultNamespace() []string {
	return []string{"slsp", "types"}
}

func (o Options) withDefaults() (Options, error) {
	if o.Namespace == nil {
		o.Namespace = DefaultNamespace()
	}
	if o.IndentUnit == "" {
		o.IndentUnit = "\t"
	}
	if o.Version == "" {
		v, err := common.GetVersion()
		if err != nil {
			return o, fmt.Errorf("get version: %w", err)
		}
		o.Version = v
	}
	return o, nil
}

// IncludeDir is the header directory relative to the output root.
func (o Options) IncludeDir() string {
	return path.Join(append([]string{"include"}, o.Namespace...)...)
}

// HeaderPath is the output path of the declaration named name.
func (o Options) HeaderPath(name string) string {
	return path.Join(o.IncludeDir(), name+".hpp")
}

// includeName is how sources include the header of name.
func (o Options) includeName(name string) string {
	return `"` + path.Join(append(append([]string{}, o.Namespace...), name+".hpp")...) + `"`
}

// Output paths of the aggregate units.
const (
	StructuresSource   = "src/structures.cpp"
	EnumerationsSource = "src/enumerations.cpp"
	MethodsHeader      = "methods.hpp"
	ManifestFile       = "generated.cmake"
)

// Generate renders every output unit for md in memory.
func Generate(logger *slog.Logger, md *meta.Metadata, opts Options) ([]meta.Unit, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	logger.Debug("Rendering C++ units", "version", opts.Version, "namespace", opts.Namespace)

	e := &emitter{opts: opts, root: common.NewIndent(opts.IndentUnit)}
	var units []meta.Unit

	for _, en := range md.Enumerations {
		content, err := e.enumerationHeader(en)
		if err != nil {
			return nil, fmt.Errorf("render enumeration %s: %w", en.Name, err)
		}
		units = append(units, meta.Unit{Path: opts.HeaderPath(en.Name), Kind: meta.UnitEnumeration, Content: content})
	}

	for _, s := range md.Structures {
		content, err := e.structureHeader(s)
		if err != nil {
			return nil, fmt.Errorf("render structure %s: %w", s.Name, err)
		}
		units = append(units, meta.Unit{Path: opts.HeaderPath(s.Name), Kind: meta.UnitStructure, Content: content})
	}

	if md.Methods != nil {
		content, err := e.methodsHeader(md.Methods)
		if err != nil {
			return nil, fmt.Errorf("render methods: %w", err)
		}
		units = append(units, meta.Unit{Path: path.Join(opts.IncludeDir(), MethodsHeader), Kind: meta.UnitMethods, Content: content})
	}

	structSrc, err := e.structuresSource(md.Structures)
	if err != nil {
		return nil, fmt.Errorf("render structure bindings: %w", err)
	}
	units = append(units, meta.Unit{Path: StructuresSource, Kind: meta.UnitSource, Content: structSrc})

	enumSrc, err := e.enumerationsSource(md.Enumerations)
	if err != nil {
		return nil, fmt.Errorf("render enumeration bindings: %w", err)
	}
	units = append(units, meta.Unit{Path: EnumerationsSource, Kind: meta.UnitSource, Content: enumSrc})

	manifest, err := e.manifest(units)
	if err != nil {
		return nil, fmt.Errorf("render manifest: %w", err)
	}
	units = append(units, meta.Unit{Path: ManifestFile, Kind: meta.UnitBuild, Content: manifest})

	logger.Info("Rendered C++ units", "units", len(units))
	return units, nil
}

type emitter struct {
	opts Options
	root common.Indent
}

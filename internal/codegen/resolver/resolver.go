// Package resolver turns a raw meta-model document into the declaration
// model: it interprets the type algebra, applies overrides and union
// resolutions, synthesizes structures for inline literals and links
// inheritance.
package resolver

import (
	"log/slog"

	"github.com/Alia5/lspgen/internal/codegen/meta"
	"github.com/Alia5/lspgen/internal/codegen/model"
	"github.com/Alia5/lspgen/internal/codegen/types"
	"github.com/Alia5/lspgen/internal/metamodel"
)

// Config is the explicit configuration of a resolver run.
type Config struct {
	// Overrides maps schema type names onto target descriptors.
	Overrides types.OverrideTable
	// Unions maps a union lookup key (see UnionKey) to a type name.
	Unions map[string]string
	// StringLiteralConstants turns string-literal properties into constants.
	StringLiteralConstants bool
}

type pendingLiteral struct {
	name string
	node *metamodel.Structure
}

// Resolver owns the registries of one run. It is not safe for concurrent use
// and must not be reused across documents.
type Resolver struct {
	cfg       Config
	overrides types.OverrideTable
	logger    *slog.Logger

	structures     map[string]*model.Structure
	structureOrder []string
	enums          map[string]*model.Enumeration
	enumOrder      []string
	methods        *model.MethodSet

	pending     []pendingLiteral
	diagnostics []Diagnostic
	version     string
}

func New(cfg Config, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	overrides := cfg.Overrides.Clone()
	return &Resolver{
		cfg:        cfg,
		overrides:  overrides,
		logger:     logger,
		structures: make(map[string]*model.Structure),
		enums:      make(map[string]*model.Enumeration),
		methods:    model.NewMethodSet(),
	}
}

// Process registers every declaration of doc and links inheritance.
func (r *Resolver) Process(doc *metamodel.Document) *meta.Metadata {
	r.version = doc.MetaData.Version
	for i := range doc.Enumerations {
		r.RegisterEnum(&doc.Enumerations[i])
	}
	for i := range doc.Structures {
		r.RegisterStructure(&doc.Structures[i], "")
	}
	for _, req := range doc.Requests {
		r.RegisterMethod(req.Method)
	}
	for _, n := range doc.Notifications {
		r.RegisterMethod(n.Method)
	}
	r.ResolveExtends()
	return r.Metadata()
}

// RegisterStructure registers node under overrideName, or under its own name
// when overrideName is empty, together with every structure synthesized for
// its inline literals.
func (r *Resolver) RegisterStructure(node *metamodel.Structure, overrideName string) *model.Structure {
	name := overrideName
	if name == "" {
		name = node.Name
	}
	s := r.register(node, name)
	for len(r.pending) > 0 {
		next := r.pending[0]
		r.pending = r.pending[1:]
		r.register(next.node, next.name)
	}
	return s
}

func (r *Resolver) register(node *metamodel.Structure, name string) *model.Structure {
	s := model.NewStructure(name)
	s.Documentation = node.Documentation

	for _, list := range [][]*metamodel.TypeNode{node.Extends, node.Mixins} {
		for _, ext := range list {
			if ext == nil || ext.Name == "" {
				r.record(UnrecognizedTypeShape, name, "extends entry without a name")
				continue
			}
			s.Extends = append(s.Extends, r.overrides.Resolve(ext.Name))
		}
	}

	for i := range node.Properties {
		s.AddProperty(r.resolveProperty(name, &node.Properties[i]))
	}

	if _, ok := r.structures[name]; ok {
		r.record(DuplicateRegistration, name, "structure registered again")
	} else {
		r.structureOrder = append(r.structureOrder, name)
	}
	r.structures[name] = s
	return s
}

// RegisterEnum registers an enumeration and makes its name resolvable as a
// type unless an override for it already exists.
func (r *Resolver) RegisterEnum(node *metamodel.Enumeration) *model.Enumeration {
	e := model.NewEnumeration(node.Name, r.overrides.Resolve(node.Type.Name))
	e.Documentation = node.Documentation
	for _, v := range node.Values {
		var value *string
		if text, ok := v.ValueText(); ok {
			value = &text
		}
		ev := model.NewEnumValue(v.Name, value)
		ev.Documentation = v.Documentation
		e.AddValue(ev)
	}

	if _, ok := r.overrides[node.Name]; !ok {
		r.overrides[node.Name] = types.Rename(node.Name, types.DefaultDependency(node.Name))
	}
	e.Finalize()

	if _, ok := r.enums[node.Name]; ok {
		r.record(DuplicateRegistration, node.Name, "enumeration registered again")
	} else {
		r.enumOrder = append(r.enumOrder, node.Name)
	}
	r.enums[node.Name] = e
	return e
}

// RegisterMethod records a wire method name and reports whether it was new.
func (r *Resolver) RegisterMethod(name string) bool {
	if name == "" {
		return false
	}
	return r.methods.Add(name)
}

// ResolveExtends links the bases of every registered structure. It may be
// called again after further registrations.
func (r *Resolver) ResolveExtends() {
	for _, name := range r.structureOrder {
		s := r.structures[name]
		s.Bases = nil
		for _, ext := range s.UniqueExtends() {
			if ext.Name == s.Name {
				continue
			}
			base, ok := r.structures[ext.Name]
			if !ok {
				r.record(UnresolvedReference, s.Name, "extends "+ext.Name)
				continue
			}
			s.LinkBase(base)
		}
	}
}

// Metadata snapshots the registries in registration order.
func (r *Resolver) Metadata() *meta.Metadata {
	md := &meta.Metadata{
		Version:      r.version,
		Structures:   make([]*model.Structure, 0, len(r.structureOrder)),
		Enumerations: make([]*model.Enumeration, 0, len(r.enumOrder)),
		Methods:      r.methods,
	}
	for _, name := range r.structureOrder {
		md.Structures = append(md.Structures, r.structures[name])
	}
	for _, name := range r.enumOrder {
		md.Enumerations = append(md.Enumerations, r.enums[name])
	}
	return md
}

func (r *Resolver) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(r.diagnostics))
	copy(out, r.diagnostics)
	return out
}

func (r *Resolver) Summary() Summary {
	s := Summary{
		Structures:   len(r.structureOrder),
		Enumerations: len(r.enumOrder),
		Methods:      r.methods.Len(),
		Diagnostics:  make(map[DiagnosticKind]int),
	}
	for _, d := range r.diagnostics {
		s.Diagnostics[d.Kind]++
	}
	return s
}

func (r *Resolver) record(kind DiagnosticKind, subject, detail string) {
	d := Diagnostic{Kind: kind, Subject: subject, Detail: detail}
	r.diagnostics = append(r.diagnostics, d)
	if kind == UnmappedUnion {
		r.logger.Warn("Union has no resolution entry, using dynamic type", "subject", subject, "key", detail)
		return
	}
	r.logger.Debug("Resolution diagnostic", "kind", kind.String(), "subject", subject, "detail", detail)
}

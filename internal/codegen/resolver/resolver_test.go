package resolver

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/lspgen/internal/codegen/types"
	"github.com/Alia5/lspgen/internal/metamodel"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testOverrides() types.OverrideTable {
	return types.OverrideTable{
		"integer":  types.Rename("int", ""),
		"uinteger": types.Rename("unsigned int", ""),
		"boolean":  types.Rename("bool", ""),
		"string":   types.Rename("std::string", "<string>"),
		"json":     types.Rename("nlohmann::json", `"nlohmann/json.hpp"`),
		"LSPAny":   types.Rename("nlohmann::json", `"nlohmann/json.hpp"`),
	}
}

func base(name string) *metamodel.TypeNode {
	return &metamodel.TypeNode{Kind: metamodel.KindBase, Name: name}
}

func ref(name string) *metamodel.TypeNode {
	return &metamodel.TypeNode{Kind: metamodel.KindReference, Name: name}
}

func or(items ...*metamodel.TypeNode) *metamodel.TypeNode {
	return &metamodel.TypeNode{Kind: metamodel.KindOr, Items: items}
}

func array(el *metamodel.TypeNode) *metamodel.TypeNode {
	return &metamodel.TypeNode{Kind: metamodel.KindArray, Element: el}
}

func structure(name string, props ...metamodel.Property) *metamodel.Structure {
	return &metamodel.Structure{Name: name, Properties: props}
}

func prop(name string, t *metamodel.TypeNode, optional bool) metamodel.Property {
	return metamodel.Property{Name: name, Type: t, Optional: optional}
}

func TestOptionalityMatrix(t *testing.T) {
	r := New(Config{Overrides: testOverrides()}, testLogger())
	s := r.RegisterStructure(structure("Sample",
		prop("plain", base("integer"), false),
		prop("opt", base("integer"), true),
		prop("null", or(base("integer"), base("null")), false),
		prop("both", or(base("null"), base("integer")), true),
	), "")

	tests := []struct {
		prop     string
		optional bool
		nullable bool
		rendered string
	}{
		{"plain", false, false, "int"},
		{"opt", true, false, "std::optional<int>"},
		{"null", false, true, "std::optional<int>"},
		{"both", true, true, "std::optional<int>"},
	}
	for _, tt := range tests {
		t.Run(tt.prop, func(t *testing.T) {
			p := s.Property(tt.prop)
			require.NotNil(t, p)
			assert.Equal(t, tt.optional, p.Type.Optional)
			assert.Equal(t, tt.nullable, p.Type.Nullable)
			assert.Equal(t, tt.rendered, p.Type.String())
			assert.Equal(t, "", p.Type.Dependency)
		})
	}
	assert.Empty(t, r.Diagnostics())
}

func TestNullableUnionCollapsesToMember(t *testing.T) {
	r := New(Config{Overrides: testOverrides()}, testLogger())
	s := r.RegisterStructure(structure("Hover",
		prop("range", or(ref("Range"), base("null")), false),
		prop("items", or(array(ref("Location")), base("null")), false),
	), "")

	rng := s.Property("range").Type
	assert.Equal(t, "Range", rng.Name)
	assert.True(t, rng.Nullable)
	assert.Equal(t, `"Range.hpp"`, rng.Dependency)

	items := s.Property("items").Type
	assert.Equal(t, "Location", items.Name)
	assert.True(t, items.Array)
	assert.True(t, items.Nullable)
	assert.Equal(t, "std::optional<std::vector<Location>>", items.String())
}

func TestUnionResolution(t *testing.T) {
	unions := map[string]string{
		UnionKey([]*metamodel.TypeNode{ref("TextEdit"), ref("InsertReplaceEdit")}): "TextEdit",
	}
	r := New(Config{Overrides: testOverrides(), Unions: unions}, testLogger())
	s := r.RegisterStructure(structure("CompletionItem",
		prop("textEdit", or(ref("InsertReplaceEdit"), ref("TextEdit")), true),
		prop("documentation", or(base("string"), ref("MarkupContent")), true),
		prop("tags", array(or(ref("A"), ref("B"))), false),
	), "")

	edit := s.Property("textEdit").Type
	assert.Equal(t, "TextEdit", edit.Name)
	assert.True(t, edit.Optional)

	doc := s.Property("documentation").Type
	assert.Equal(t, "nlohmann::json", doc.Name)
	assert.Equal(t, `"nlohmann/json.hpp"`, doc.Dependency)

	tags := s.Property("tags").Type
	assert.Equal(t, "nlohmann::json", tags.Name)
	assert.True(t, tags.Array)

	diags := r.Diagnostics()
	require.Len(t, diags, 2)
	assert.Equal(t, UnmappedUnion, diags[0].Kind)
	assert.Equal(t, "CompletionItem.documentation", diags[0].Subject)
	assert.Equal(t, "MarkupContent|string", diags[0].Detail)
	assert.Equal(t, 2, r.Summary().Diagnostics[UnmappedUnion])
}

func TestUnionKeyIsOrderIndependent(t *testing.T) {
	a := UnionKey([]*metamodel.TypeNode{ref("B"), base("string"), array(ref("A"))})
	b := UnionKey([]*metamodel.TypeNode{array(ref("A")), ref("B"), base("string")})
	assert.Equal(t, a, b)
	assert.Equal(t, "A[]|B|string", a)

	nested := UnionKey([]*metamodel.TypeNode{or(ref("Y"), ref("X")), &metamodel.TypeNode{Kind: metamodel.KindStringLiteral}})
	assert.Equal(t, "(X|Y)|string", nested)
}

func TestSelfReferenceBecomesDynamic(t *testing.T) {
	r := New(Config{Overrides: testOverrides()}, testLogger())
	s := r.RegisterStructure(structure("SelectionRange",
		prop("parent", ref("SelectionRange"), true),
	), "")

	p := s.Property("parent").Type
	assert.Equal(t, "nlohmann::json", p.Name)
	assert.True(t, p.Optional)
}

func TestLiteralSynthesis(t *testing.T) {
	inner := `{"properties": [{"name": "deep", "type": {"kind": "base", "name": "boolean"}}]}`
	outer := `{"properties": [
		{"name": "x", "type": {"kind": "base", "name": "integer"}},
		{"name": "nested", "optional": true, "type": {"kind": "literal", "value": ` + inner + `}}
	]}`
	r := New(Config{Overrides: testOverrides()}, testLogger())
	r.RegisterStructure(structure("Owner",
		prop("opts", &metamodel.TypeNode{Kind: metamodel.KindLiteral, Value: []byte(outer)}, true),
	), "")
	md := r.Metadata()

	require.Len(t, md.Structures, 3)
	assert.Equal(t, "Owner", md.Structures[0].Name)
	assert.Equal(t, "Owner_opts", md.Structures[1].Name)
	assert.Equal(t, "Owner_opts_nested", md.Structures[2].Name)

	opts := md.Structures[0].Property("opts").Type
	assert.Equal(t, "Owner_opts", opts.Name)
	assert.True(t, opts.Optional)
	assert.Equal(t, `"Owner_opts.hpp"`, opts.Dependency)

	deep := md.Structures[2].Property("deep").Type
	assert.Equal(t, "bool", deep.Name)
}

func TestStringLiterals(t *testing.T) {
	node := &metamodel.TypeNode{Kind: metamodel.KindStringLiteral, Value: []byte(`"create"`)}

	r := New(Config{Overrides: testOverrides()}, testLogger())
	s := r.RegisterStructure(structure("CreateFile", prop("kind", node, false)), "")
	p := s.Property("kind")
	assert.Equal(t, "std::string", p.Type.Name)
	assert.False(t, p.IsConstant())

	r = New(Config{Overrides: testOverrides(), StringLiteralConstants: true}, testLogger())
	s = r.RegisterStructure(structure("CreateFile", prop("kind", node, false)), "")
	p = s.Property("kind")
	require.True(t, p.IsConstant())
	assert.Equal(t, `"create"`, *p.LiteralValue)

	s = r.RegisterStructure(structure("Names", prop("values", array(node), false)), "")
	assert.Equal(t, "std::vector<std::string>", s.Property("values").Type.String())
}

func TestDependencyOnlyOverrideKeepsArray(t *testing.T) {
	overrides := testOverrides()
	overrides["URI"] = types.Override{Dependency: ptr(`"uri.hh"`)}
	r := New(Config{Overrides: overrides}, testLogger())
	s := r.RegisterStructure(structure("Folders", prop("uris", array(base("URI")), false)), "")

	d := s.Property("uris").Type
	assert.Equal(t, "URI", d.Name)
	assert.True(t, d.Array)
	assert.Equal(t, `"uri.hh"`, d.Dependency)
}

func ptr[T any](v T) *T { return &v }

func TestUnrecognizedShapesDegrade(t *testing.T) {
	r := New(Config{Overrides: testOverrides()}, testLogger())
	s := r.RegisterStructure(structure("Odd",
		prop("m", &metamodel.TypeNode{Kind: metamodel.KindMap, Key: base("string"), Value: []byte(`{"kind":"base","name":"integer"}`)}, false),
		prop("tup", &metamodel.TypeNode{Kind: metamodel.KindTuple, Items: []*metamodel.TypeNode{base("integer"), base("integer")}}, false),
		prop("missing", nil, true),
	), "")

	for _, name := range []string{"m", "tup", "missing"} {
		assert.Equal(t, "nlohmann::json", s.Property(name).Type.Name, name)
	}
	assert.True(t, s.Property("missing").Type.Optional)
	assert.Equal(t, 3, r.Summary().Diagnostics[UnrecognizedTypeShape])

	var details []string
	for _, d := range r.Diagnostics() {
		details = append(details, d.Detail)
	}
	assert.Equal(t, []string{"map keyed by string", "tuple of 2 items", "missing type"}, details)
}

func TestEnumRegistration(t *testing.T) {
	r := New(Config{Overrides: testOverrides()}, testLogger())
	e := r.RegisterEnum(&metamodel.Enumeration{
		Name: "TraceValue",
		Type: *base("string"),
		Values: []metamodel.EnumerationEntry{
			{Name: "Off", Value: []byte(`"off"`)},
			{Name: "Verbose", Value: []byte(`"verbose"`)},
		},
	})
	require.Len(t, e.Values, 3)
	assert.True(t, e.Values[0].IsSentinel())
	assert.Equal(t, "std::string", e.ValueType.Name)
	assert.Equal(t, "off", *e.Values[1].Value)

	kind := r.RegisterEnum(&metamodel.Enumeration{
		Name:   "SymbolKind",
		Type:   *base("uinteger"),
		Values: []metamodel.EnumerationEntry{{Name: "File", Value: []byte(`1`)}},
	})
	require.Len(t, kind.Values, 1)
	assert.Equal(t, "1", *kind.Values[0].Value)
	assert.True(t, kind.IntegerValued())

	s := r.RegisterStructure(structure("InitializeParams", prop("trace", ref("TraceValue"), true)), "")
	trace := s.Property("trace").Type
	assert.Equal(t, "TraceValue", trace.Name)
	assert.Equal(t, `"TraceValue.hpp"`, trace.Dependency)
}

func TestEnumDoesNotReplaceUserOverride(t *testing.T) {
	overrides := testOverrides()
	overrides["ErrorCodes"] = types.Rename("int", "")
	r := New(Config{Overrides: overrides}, testLogger())
	r.RegisterEnum(&metamodel.Enumeration{Name: "ErrorCodes", Type: *base("integer")})

	s := r.RegisterStructure(structure("ResponseError", prop("code", ref("ErrorCodes"), false)), "")
	assert.Equal(t, "int", s.Property("code").Type.Name)

	r.RegisterEnum(&metamodel.Enumeration{Name: "TraceValue", Type: *base("string")})
	_, leaked := overrides["TraceValue"]
	assert.False(t, leaked, "caller table must not be mutated")
}

func TestDuplicateRegistrationLastWriteWins(t *testing.T) {
	r := New(Config{Overrides: testOverrides()}, testLogger())
	r.RegisterStructure(structure("A", prop("old", base("integer"), false)), "")
	r.RegisterStructure(structure("B"), "")
	r.RegisterStructure(structure("A", prop("new", base("integer"), false)), "")

	md := r.Metadata()
	require.Len(t, md.Structures, 2)
	assert.Equal(t, "A", md.Structures[0].Name)
	assert.NotNil(t, md.Structures[0].Property("new"))
	assert.Nil(t, md.Structures[0].Property("old"))

	diags := r.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, DuplicateRegistration, diags[0].Kind)
}

func TestRegisterUnderOverrideName(t *testing.T) {
	r := New(Config{Overrides: testOverrides()}, testLogger())
	s := r.RegisterStructure(structure("Original"), "Renamed")
	assert.Equal(t, "Renamed", s.Name)
	assert.NotNil(t, r.Metadata().Structure("Renamed"))
	assert.Nil(t, r.Metadata().Structure("Original"))
}

func TestResolveExtends(t *testing.T) {
	r := New(Config{Overrides: testOverrides()}, testLogger())
	r.RegisterStructure(structure("Base"), "")
	r.RegisterStructure(&metamodel.Structure{Name: "Mixin"}, "")
	r.RegisterStructure(&metamodel.Structure{
		Name:    "Derived",
		Extends: []*metamodel.TypeNode{ref("Base"), ref("Missing"), ref("Base")},
		Mixins:  []*metamodel.TypeNode{ref("Mixin"), ref("Derived")},
	}, "")

	r.ResolveExtends()
	r.ResolveExtends()

	d := r.Metadata().Structure("Derived")
	require.Len(t, d.Extends, 5)
	require.Len(t, d.Bases, 2)
	assert.Equal(t, "Base", d.Bases[0].Name)
	assert.Equal(t, "Mixin", d.Bases[1].Name)

	var unresolved int
	for _, diag := range r.Diagnostics() {
		if diag.Kind == UnresolvedReference {
			unresolved++
			assert.Equal(t, "extends Missing", diag.Detail)
		}
	}
	assert.Equal(t, 2, unresolved)
}

func TestProcess(t *testing.T) {
	doc, err := metamodel.Load([]byte(`{
		"metaData": {"version": "3.17.0"},
		"enumerations": [{"name": "TraceValue", "type": {"kind": "base", "name": "string"},
			"values": [{"name": "Off", "value": "off"}]}],
		"structures": [
			{"name": "Derived", "extends": [{"kind": "reference", "name": "Base"}],
			 "properties": [{"name": "trace", "type": {"kind": "reference", "name": "TraceValue"}}]},
			{"name": "Base", "properties": [{"name": "id", "type": {"kind": "base", "name": "integer"}}]}
		],
		"requests": [{"method": "initialize"}, {"method": "shutdown"}],
		"notifications": [{"method": "exit"}, {"method": "initialize"}]
	}`))
	require.NoError(t, err)

	r := New(Config{Overrides: testOverrides()}, testLogger())
	md := r.Process(doc)

	assert.Equal(t, "3.17.0", md.Version)
	require.Len(t, md.Enumerations, 1)
	require.Len(t, md.Structures, 2)
	assert.Equal(t, []string{"initialize", "shutdown", "exit"}, md.Methods.Names())

	derived := md.Structure("Derived")
	require.Len(t, derived.Bases, 1, "bases resolve regardless of declaration order")
	assert.Equal(t, md.Structure("Base"), derived.Bases[0])

	sum := r.Summary()
	assert.Equal(t, 2, sum.Structures)
	assert.Equal(t, 1, sum.Enumerations)
	assert.Equal(t, 3, sum.Methods)
	assert.Empty(t, r.Diagnostics())
	assert.Contains(t, sum.LogArgs(), "structures")
}

func TestRegisterMethodSkipsEmpty(t *testing.T) {
	r := New(Config{}, nil)
	assert.False(t, r.RegisterMethod(""))
	assert.True(t, r.RegisterMethod("exit"))
	assert.False(t, r.RegisterMethod("exit"))
}

package cpp

import (
	"fmt"
	"strings"

	"github.com/Alia5/lspgen/internal/codegen/common"
	"github.com/Alia5/lspgen/internal/codegen/model"
	"github.com/Alia5/lspgen/internal/codegen/types"
)

// encodeAssign renders the default or custom encode statement for field.
// The value is already known to be present.
func encodeAssign(d types.Descriptor, idt common.Indent, field string) string {
	if hook := d.Binding.Encoder(); hook != nil {
		return hook(d, idt, field)
	}
	return fmt.Sprintf("%sj[%s] = %s;\n", idt, wireKey(field), valueExpr(d, field))
}

// decodeAssign renders the default or custom decode statement for field.
// The key is already known to be present and not null.
func decodeAssign(d types.Descriptor, idt common.Indent, field string) string {
	if hook := d.Binding.Decoder(); hook != nil {
		return hook(d, idt, field)
	}
	return fmt.Sprintf("%s%s = j.at(%s).get<%s>();\n", idt, memberExpr(field), wireKey(field), d.ValueType())
}

// encodeProperty renders the presence handling around one encode statement.
// Optional wins over nullable: an absent optional is omitted, an empty
// nullable-only value is written as null.
func encodeProperty(b *strings.Builder, idt common.Indent, p *model.Property) {
	if p.IsConstant() {
		return
	}
	d := p.Type
	switch {
	case d.Optional:
		fmt.Fprintf(b, "%sif (%s.has_value()) {\n", idt, memberExpr(p.Name))
		b.WriteString(encodeAssign(d, idt.In(), p.Name))
		fmt.Fprintf(b, "%s}\n", idt)
	case d.Nullable:
		fmt.Fprintf(b, "%sif (%s.has_value()) {\n", idt, memberExpr(p.Name))
		b.WriteString(encodeAssign(d, idt.In(), p.Name))
		fmt.Fprintf(b, "%s} else {\n", idt)
		fmt.Fprintf(b, "%sj[%s] = nullptr;\n", idt.In(), wireKey(p.Name))
		fmt.Fprintf(b, "%s}\n", idt)
	default:
		b.WriteString(encodeAssign(d, idt, p.Name))
	}
}

// decodeProperty renders the presence and null checks around one decode
// statement.
func decodeProperty(b *strings.Builder, idt common.Indent, p *model.Property) {
	if p.IsConstant() {
		return
	}
	d := p.Type
	key := wireKey(p.Name)
	switch {
	case d.Optional && d.Nullable:
		fmt.Fprintf(b, "%sif (j.contains(%s) && !j.at(%s).is_null()) {\n", idt, key, key)
		b.WriteString(decodeAssign(d, idt.In(), p.Name))
		fmt.Fprintf(b, "%s} else {\n", idt)
		fmt.Fprintf(b, "%s%s = std::nullopt;\n", idt.In(), memberExpr(p.Name))
		fmt.Fprintf(b, "%s}\n", idt)
	case d.Optional:
		fmt.Fprintf(b, "%sif (j.contains(%s)) {\n", idt, key)
		b.WriteString(decodeAssign(d, idt.In(), p.Name))
		fmt.Fprintf(b, "%s}\n", idt)
	case d.Nullable:
		fmt.Fprintf(b, "%sif (j.at(%s).is_null()) {\n", idt, key)
		fmt.Fprintf(b, "%s%s = std::nullopt;\n", idt.In(), memberExpr(p.Name))
		fmt.Fprintf(b, "%s} else {\n", idt)
		b.WriteString(decodeAssign(d, idt.In(), p.Name))
		fmt.Fprintf(b, "%s}\n", idt)
	default:
		b.WriteString(decodeAssign(d, idt, p.Name))
	}
}

type propertyFunc func(b *strings.Builder, idt common.Indent, p *model.Property)

// walkBindings renders s's own properties, then the properties of every
// transitive base once, skipping names a more derived structure or an
// earlier base already bound.
func walkBindings(b *strings.Builder, idt common.Indent, s *model.Structure, fn propertyFunc) {
	bound := s.PropertyNames()
	for _, p := range s.Properties {
		fn(b, idt, p)
	}

	visited := map[*model.Structure]bool{s: true}
	var walk func(st *model.Structure)
	walk = func(st *model.Structure) {
		for _, base := range st.Bases {
			if visited[base] {
				continue
			}
			visited[base] = true
			fmt.Fprintf(b, "%s// Bindings inherited from %s\n", idt, base.Name)
			for _, p := range base.Properties {
				if bound[p.Name] {
					continue
				}
				fn(b, idt, p)
			}
			for name := range base.PropertyNames() {
				bound[name] = true
			}
			walk(base)
		}
	}
	walk(s)
}

func (e *emitter) structureBindings(b *strings.Builder, idt common.Indent, s *model.Structure) {
	in := idt.In()

	fmt.Fprintf(b, "%svoid to_json(nlohmann::json& j, const %s& s) {\n", idt, s.Name)
	fmt.Fprintf(b, "%sj = nlohmann::json::object();\n", in)
	walkBindings(b, in, s, encodeProperty)
	fmt.Fprintf(b, "%s}\n\n", idt)

	fmt.Fprintf(b, "%svoid from_json(const nlohmann::json& j, %s& s) {\n", idt, s.Name)
	walkBindings(b, in, s, decodeProperty)
	fmt.Fprintf(b, "%s}\n", idt)
}

// structuresSource holds the bindings of every structure.
func (e *emitter) structuresSource(structs []*model.Structure) ([]byte, error) {
	includes := make([]string, 0, len(structs))
	for _, s := range structs {
		includes = append(includes, e.opts.includeName(s.Name))
	}

	body := e.namespaced(func(b *strings.Builder, idt common.Indent) {
		for i, s := range structs {
			if i > 0 {
				b.WriteString("\n")
			}
			e.structureBindings(b, idt, s)
		}
	})
	return e.render(false, includes, body)
}

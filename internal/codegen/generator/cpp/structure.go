package cpp

import (
	"fmt"
	"strings"

	"github.com/Alia5/lspgen/internal/codegen/common"
	"github.com/Alia5/lspgen/internal/codegen/model"
	"github.com/Alia5/lspgen/internal/codegen/types"
)

// structureIncludes lists the includes a structure header needs, sorted.
func structureIncludes(s *model.Structure) []string {
	set := map[string]bool{jsonInclude: true}
	if s.HasArray() {
		set["<vector>"] = true
	}
	if s.HasOptional() {
		set["<optional>"] = true
	}
	for _, p := range s.Properties {
		set[p.Type.Dependency] = true
	}
	for _, ext := range s.Extends {
		set[ext.Dependency] = true
	}
	delete(set, types.DefaultDependency(s.Name))
	return sortedSet(set)
}

// declaredBases returns the extends entries rendered as base classes.
func declaredBases(s *model.Structure) []string {
	var out []string
	for _, ext := range s.UniqueExtends() {
		if ext.Name == "" || ext.Name == s.Name {
			continue
		}
		out = append(out, "public "+ext.Name)
	}
	return out
}

func (e *emitter) structureDecl(b *strings.Builder, idt common.Indent, s *model.Structure) {
	b.WriteString(docComment(idt, s.Documentation))
	fmt.Fprintf(b, "%sstruct %s", idt, s.Name)
	if bases := declaredBases(s); len(bases) > 0 {
		b.WriteString(" : " + strings.Join(bases, ", "))
	}
	b.WriteString(" {\n")

	in := idt.In()
	for _, p := range s.Properties {
		b.WriteString(docComment(in, p.Documentation))
		if p.IsConstant() {
			fmt.Fprintf(b, "%sinline static const %s %s = %s;\n", in, p.Type.String(), common.MemberName(p.Name), *p.LiteralValue)
			continue
		}
		fmt.Fprintf(b, "%s%s %s;\n", in, p.Type.String(), common.MemberName(p.Name))
	}
	fmt.Fprintf(b, "%s};\n\n", idt)
	b.WriteString(prototypes(idt, s.Name))
}

func (e *emitter) structureHeader(s *model.Structure) ([]byte, error) {
	body := e.namespaced(func(b *strings.Builder, idt common.Indent) {
		e.structureDecl(b, idt, s)
	})
	return e.render(true, structureIncludes(s), body)
}

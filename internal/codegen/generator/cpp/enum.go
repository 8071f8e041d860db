package cpp

import (
	"fmt"
	"strings"

	"github.com/Alia5/lspgen/internal/codegen/common"
	"github.com/Alia5/lspgen/internal/codegen/model"
)

// enumeratorName is the C++ identifier of v inside enumeration e.
func enumeratorName(e *model.Enumeration, v *model.EnumValue) string {
	return e.Name + "_" + common.SanitizeLeadingDigit(v.Name)
}

func wireTableName(e *model.Enumeration) string {
	return e.Name + "_wire_table"
}

// wireLiteral is the json initializer of a wire value.
func wireLiteral(v *model.EnumValue) string {
	if v.WireValue == nil {
		return "nullptr"
	}
	return common.CppString(*v.WireValue)
}

func (e *emitter) enumerationDecl(b *strings.Builder, idt common.Indent, en *model.Enumeration) {
	b.WriteString(docComment(idt, en.Documentation))
	fmt.Fprintf(b, "%senum %s {\n", idt, en.Name)

	in := idt.In()
	for i, v := range en.Values {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString(docComment(in, v.Documentation))
		fmt.Fprintf(b, "%s%s", in, enumeratorName(en, v))
		switch {
		case v.IsSentinel():
			b.WriteString(" = " + model.SentinelValue)
		case en.IntegerValued() && v.Value != nil:
			b.WriteString(" = " + *v.Value)
		}
	}
	if len(en.Values) > 0 {
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "%s};\n", idt)

	if en.RequiresBindings() {
		b.WriteString("\n")
		b.WriteString(prototypes(idt, en.Name))
	}
}

func (e *emitter) enumerationHeader(en *model.Enumeration) ([]byte, error) {
	var includes []string
	if en.RequiresBindings() {
		includes = []string{jsonInclude}
	}
	body := e.namespaced(func(b *strings.Builder, idt common.Indent) {
		e.enumerationDecl(b, idt, en)
	})
	return e.render(true, includes, body)
}

func (e *emitter) enumerationBindings(b *strings.Builder, idt common.Indent, en *model.Enumeration) {
	table := wireTableName(en)
	in := idt.In()

	fmt.Fprintf(b, "%sstatic const std::pair<%s, nlohmann::json> %s[] = {\n", idt, en.Name, table)
	for _, v := range en.Values {
		fmt.Fprintf(b, "%s{%s, %s},\n", in, enumeratorName(en, v), wireLiteral(v))
	}
	fmt.Fprintf(b, "%s};\n\n", idt)

	fmt.Fprintf(b, "%svoid to_json(nlohmann::json& j, const %s& s) {\n", idt, en.Name)
	fmt.Fprintf(b, "%sfor (const auto& entry : %s) {\n", in, table)
	fmt.Fprintf(b, "%sif (entry.first == s) {\n", in.In())
	fmt.Fprintf(b, "%sj = entry.second;\n", in.Add(2))
	fmt.Fprintf(b, "%sreturn;\n", in.Add(2))
	fmt.Fprintf(b, "%s}\n", in.In())
	fmt.Fprintf(b, "%s}\n", in)
	fmt.Fprintf(b, "%sj = %s[0].second;\n", in, table)
	fmt.Fprintf(b, "%s}\n\n", idt)

	fmt.Fprintf(b, "%svoid from_json(const nlohmann::json& j, %s& s) {\n", idt, en.Name)
	fmt.Fprintf(b, "%ss = %s[0].first;\n", in, table)
	fmt.Fprintf(b, "%sfor (const auto& entry : %s) {\n", in, table)
	fmt.Fprintf(b, "%sif (entry.second == j) {\n", in.In())
	fmt.Fprintf(b, "%ss = entry.first;\n", in.Add(2))
	fmt.Fprintf(b, "%sreturn;\n", in.Add(2))
	fmt.Fprintf(b, "%s}\n", in.In())
	fmt.Fprintf(b, "%s}\n", in)
	fmt.Fprintf(b, "%s}\n", idt)
}

// enumerationsSource holds the wire tables and bindings of every enumeration
// that needs them.
func (e *emitter) enumerationsSource(enums []*model.Enumeration) ([]byte, error) {
	var bound []*model.Enumeration
	for _, en := range enums {
		if en.RequiresBindings() {
			bound = append(bound, en)
		}
	}

	includes := []string{"<utility>"}
	for _, en := range bound {
		includes = append(includes, e.opts.includeName(en.Name))
	}

	body := e.namespaced(func(b *strings.Builder, idt common.Indent) {
		for i, en := range bound {
			if i > 0 {
				b.WriteString("\n")
			}
			e.enumerationBindings(b, idt, en)
		}
	})
	return e.render(false, includes, body)
}

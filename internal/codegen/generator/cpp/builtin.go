package cpp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Alia5/lspgen/internal/codegen/common"
	"github.com/Alia5/lspgen/internal/codegen/types"
)

// StringIDBinding serializes identifier types (URIs and the like) that
// convert to std::string through str() and construct from one.
var StringIDBinding = types.Custom("string-id", stringIDEncode, stringIDDecode)

// Bindings are the custom bindings selectable by name from a type map.
var Bindings = map[string]types.Binding{
	StringIDBinding.Name: StringIDBinding,
}

// LookupBinding resolves a binding name; "" and "default" select direct
// assignment.
func LookupBinding(name string) (types.Binding, error) {
	if name == "" || name == types.BindingDefault.String() {
		return types.Binding{}, nil
	}
	b, ok := Bindings[name]
	if !ok {
		known := make([]string, 0, len(Bindings))
		for k := range Bindings {
			known = append(known, k)
		}
		sort.Strings(known)
		return types.Binding{}, fmt.Errorf("unknown binding %q (known: %s)", name, strings.Join(known, ", "))
	}
	return b, nil
}

func stringIDEncode(d types.Descriptor, idt common.Indent, field string) string {
	if !d.Array {
		return fmt.Sprintf("%sj[%s] = %s.str();\n", idt, wireKey(field), valueExpr(d, field))
	}
	in := idt.In()
	var b strings.Builder
	fmt.Fprintf(&b, "%s{\n", idt)
	fmt.Fprintf(&b, "%snlohmann::json items = nlohmann::json::array();\n", in)
	fmt.Fprintf(&b, "%sfor (const auto& item : %s) {\n", in, valueExpr(d, field))
	fmt.Fprintf(&b, "%sitems.push_back(item.str());\n", in.In())
	fmt.Fprintf(&b, "%s}\n", in)
	fmt.Fprintf(&b, "%sj[%s] = std::move(items);\n", in, wireKey(field))
	fmt.Fprintf(&b, "%s}\n", idt)
	return b.String()
}

func stringIDDecode(d types.Descriptor, idt common.Indent, field string) string {
	if !d.Array {
		return fmt.Sprintf("%s%s = %s(j.at(%s).get<std::string>());\n", idt, memberExpr(field), d.Name, wireKey(field))
	}
	in := idt.In()
	var b strings.Builder
	fmt.Fprintf(&b, "%s{\n", idt)
	fmt.Fprintf(&b, "%s%s items;\n", in, d.ValueType())
	fmt.Fprintf(&b, "%sfor (const auto& item : j.at(%s)) {\n", in, wireKey(field))
	fmt.Fprintf(&b, "%sitems.emplace_back(item.get<std::string>());\n", in.In())
	fmt.Fprintf(&b, "%s}\n", in)
	fmt.Fprintf(&b, "%s%s = std::move(items);\n", in, memberExpr(field))
	fmt.Fprintf(&b, "%s}\n", idt)
	return b.String()
}

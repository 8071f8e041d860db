package cpp

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/Alia5/lspgen/internal/codegen/common"
	"github.com/Alia5/lspgen/internal/codegen/types"
)

const jsonInclude = `"nlohmann/json.hpp"`

var fileTmpl = template.Must(template.New("file").Parse(`{{.Header}}{{if .Pragma}}#pragma once
{{end}}{{with .Includes}}
{{range .}}#include {{.}}
{{end}}{{end}}
{{.Body}}`))

type fileData struct {
	Header   string
	Pragma   bool
	Includes []string
	Body     string
}

func (e *emitter) render(pragma bool, includes []string, body string) ([]byte, error) {
	var buf bytes.Buffer
	err := fileTmpl.Execute(&buf, fileData{
		Header:   common.FileHeader("//", e.opts.Version),
		Pragma:   pragma,
		Includes: includes,
		Body:     body,
	})
	if err != nil {
		return nil, fmt.Errorf("execute file template: %w", err)
	}
	return buf.Bytes(), nil
}

// namespaced wraps the output of fn in the configured namespaces.
func (e *emitter) namespaced(fn func(b *strings.Builder, idt common.Indent)) string {
	var b strings.Builder
	idt := e.root
	for _, ns := range e.opts.Namespace {
		fmt.Fprintf(&b, "%snamespace %s {\n", idt, ns)
		idt = idt.In()
	}
	fn(&b, idt)
	for i := len(e.opts.Namespace) - 1; i >= 0; i-- {
		idt = idt.Out()
		fmt.Fprintf(&b, "%s} // namespace %s\n", idt, e.opts.Namespace[i])
	}
	return b.String()
}

// docComment renders doc as a block comment; "*/" inside the text is broken
// up so it cannot close the comment.
func docComment(idt common.Indent, doc string) string {
	doc = strings.TrimSpace(strings.ReplaceAll(doc, "\r\n", "\n"))
	if doc == "" {
		return ""
	}
	doc = strings.ReplaceAll(doc, "*/", "* /")
	var b strings.Builder
	fmt.Fprintf(&b, "%s/**\n", idt)
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			fmt.Fprintf(&b, "%s *\n", idt)
			continue
		}
		fmt.Fprintf(&b, "%s * %s\n", idt, line)
	}
	fmt.Fprintf(&b, "%s */\n", idt)
	return b.String()
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		if k != "" {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// wireKey is the JSON access expression for field.
func wireKey(field string) string {
	return common.CppString(field)
}

// memberExpr is the member access of field on the bound object s.
func memberExpr(field string) string {
	return "s." + common.MemberName(field)
}

// valueExpr is the stored value of field, unwrapped from its optional when
// the descriptor is optional or nullable. Only valid once presence is checked.
func valueExpr(d types.Descriptor, field string) string {
	if d.IsDefOptional() {
		return memberExpr(field) + ".value()"
	}
	return memberExpr(field)
}

func prototypes(idt common.Indent, name string) string {
	return fmt.Sprintf("%svoid to_json(nlohmann::json& j, const %s& s);\n%svoid from_json(const nlohmann::json& j, %s& s);\n",
		idt, name, idt, name)
}

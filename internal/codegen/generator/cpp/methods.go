package cpp

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Alia5/lspgen/internal/codegen/common"
	"github.com/Alia5/lspgen/internal/codegen/meta"
	"github.com/Alia5/lspgen/internal/codegen/model"
)

func (e *emitter) methodsHeader(methods *model.MethodSet) ([]byte, error) {
	body := e.namespaced(func(b *strings.Builder, idt common.Indent) {
		fmt.Fprintf(b, "%sconst std::unordered_set<std::string> RESERVED_METHODS{\n", idt)
		names := methods.Names()
		for i, name := range names {
			sep := ","
			if i == len(names)-1 {
				sep = ""
			}
			fmt.Fprintf(b, "%s%s%s\n", idt.In(), common.CppString(name), sep)
		}
		fmt.Fprintf(b, "%s};\n", idt)
	})
	return e.render(true, []string{"<string>", "<unordered_set>"}, body)
}

var manifestTmpl = template.Must(template.New("manifest").Parse(`{{.Header}}
set(LSPGEN_INCLUDE_DIR "${CMAKE_CURRENT_LIST_DIR}/include")

set(LSPGEN_HEADERS
{{range .Headers}}    "${CMAKE_CURRENT_LIST_DIR}/{{.}}"
{{end}})

set(LSPGEN_SOURCES
{{range .Sources}}    "${CMAKE_CURRENT_LIST_DIR}/{{.}}"
{{end}})
`))

// manifest lists the rendered headers and sources for a CMake include().
func (e *emitter) manifest(units []meta.Unit) ([]byte, error) {
	data := struct {
		Header  string
		Headers []string
		Sources []string
	}{
		Header: common.FileHeader("#", e.opts.Version),
	}
	for _, u := range units {
		switch u.Kind {
		case meta.UnitSource:
			data.Sources = append(data.Sources, u.Path)
		case meta.UnitStructure, meta.UnitEnumeration, meta.UnitMethods:
			data.Headers = append(data.Headers, u.Path)
		}
	}

	var buf bytes.Buffer
	if err := manifestTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute manifest template: %w", err)
	}
	return buf.Bytes(), nil
}

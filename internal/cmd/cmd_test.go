package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/lspgen/internal/log"
	"github.com/Alia5/lspgen/internal/typemap"
)

const document = `{
	"metaData": {"version": "3.17.0"},
	"enumerations": [{"name": "TraceValue", "type": {"kind": "base", "name": "string"},
		"values": [{"name": "Off", "value": "off"}, {"name": "Messages", "value": "messages"}]}],
	"structures": [
		{"name": "TextDocumentIdentifier", "properties": [
			{"name": "uri", "type": {"kind": "base", "name": "DocumentUri"}}]},
		{"name": "VersionedTextDocumentIdentifier",
		 "extends": [{"kind": "reference", "name": "TextDocumentIdentifier"}],
		 "properties": [{"name": "version", "type": {"kind": "base", "name": "integer"}}]},
		{"name": "WorkDoneProgressParams",
		 "mixins": [{"kind": "reference", "name": "ProgressToken"}],
		 "properties": [{"name": "token", "optional": true, "type": {"kind": "or", "items": [
			{"kind": "base", "name": "integer"}, {"kind": "base", "name": "string"}]}}]}
	],
	"requests": [{"method": "textDocument/hover"}],
	"notifications": [{"method": "initialized"}]
}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeDocument(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metaModel.json")
	require.NoError(t, os.WriteFile(path, []byte(document), 0o644))
	return path
}

func TestGenerateThenCheck(t *testing.T) {
	input := writeDocument(t)
	out := filepath.Join(t.TempDir(), "generated")

	var raw bytes.Buffer
	gen := &Generate{Source: Source{Input: input}, Output: out}
	require.NoError(t, gen.Run(testLogger(), log.NewRaw(&raw)))

	header, err := os.ReadFile(filepath.Join(out, "include", "slsp", "types", "VersionedTextDocumentIdentifier.hpp"))
	require.NoError(t, err)
	assert.Contains(t, string(header), "struct VersionedTextDocumentIdentifier : public TextDocumentIdentifier {")
	assert.Contains(t, string(header), "int version;")
	assert.Contains(t, raw.String(), "generated.cmake")

	chk := &Check{Source: Source{Input: input}, Output: out}
	require.NoError(t, chk.Run(testLogger()))

	require.NoError(t, os.Remove(filepath.Join(out, "src", "structures.cpp")))
	err = chk.Run(testLogger())
	assert.ErrorContains(t, err, "1 generated file(s) out of date")
}

func TestGenerateMissingInput(t *testing.T) {
	gen := &Generate{Source: Source{Input: filepath.Join(t.TempDir(), "absent.json")}, Output: t.TempDir()}
	err := gen.Run(testLogger(), log.NewRaw(nil))
	assert.ErrorContains(t, err, "read meta-model")
}

func TestSourceOptions(t *testing.T) {
	dir := t.TempDir()
	tm := filepath.Join(dir, "typemap.yaml")
	require.NoError(t, os.WriteFile(tm, []byte(`
namespace: [lsp]
stringLiteralConstants: true
overrides:
  integer:
    name: int64_t
    include: <cstdint>
unions:
  "integer|string": ProgressToken
`), 0o644))

	t.Run("type map merged over defaults", func(t *testing.T) {
		s := &Source{TypeMap: tm}
		opts, err := s.options(testLogger())
		require.NoError(t, err)
		assert.Equal(t, []string{"lsp"}, opts.Emit.Namespace)
		assert.True(t, opts.Resolver.StringLiteralConstants)
		assert.Equal(t, "ProgressToken", opts.Resolver.Unions["integer|string"])
		assert.Contains(t, opts.Resolver.Overrides, "integer")
		assert.Contains(t, opts.Resolver.Overrides, "DocumentUri")
		assert.Empty(t, opts.Emit.IndentUnit)
	})

	t.Run("flags win over the type map", func(t *testing.T) {
		s := &Source{TypeMap: tm, Namespace: []string{"a", "b"}, Spaces: 2}
		opts, err := s.options(testLogger())
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, opts.Emit.Namespace)
		assert.Equal(t, "  ", opts.Emit.IndentUnit)
	})

	t.Run("unknown binding", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{"overrides": {"URI": {"binding": "nope"}}}`), 0o644))
		_, err := (&Source{TypeMap: bad}).options(testLogger())
		assert.ErrorContains(t, err, "type map")
	})
}

func TestTreeCommand(t *testing.T) {
	input := writeDocument(t)

	var buf bytes.Buffer
	tree := &Tree{Source: Source{Input: input}, Name: "VersionedTextDocumentIdentifier", out: &buf}
	require.NoError(t, tree.Run(testLogger()))

	text := buf.String()
	assert.True(t, strings.HasPrefix(text, "structures (3.17.0)"), text)
	assert.Contains(t, text, "VersionedTextDocumentIdentifier")
	assert.Contains(t, text, "TextDocumentIdentifier")
	assert.NotContains(t, text, "WorkDoneProgressParams")

	buf.Reset()
	tree.Name = "WorkDoneProgressParams"
	require.NoError(t, tree.Run(testLogger()))
	assert.Contains(t, buf.String(), "ProgressToken (external)")

	tree.Name = "Missing"
	assert.ErrorContains(t, tree.Run(testLogger()), `no structure named "Missing"`)
}

func TestConfigInitCommandTemplate(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "generate.json")
	c := &ConfigInit{Command: "generate", Format: "json", Output: dest}
	require.NoError(t, c.Run())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, "./generated", got["output"])
	assert.Equal(t, "", got["type_map"])
	assert.Equal(t, false, got["string_literal_constants"])
	assert.Equal(t, float64(0), got["spaces"])
	assert.Equal(t, []any{}, got["namespace"])
	assert.NotContains(t, got, "input", "positional arguments are not configurable")
	assert.NotContains(t, got, "metamodel")

	err = c.Run()
	assert.ErrorContains(t, err, "destination exists")
	c.Force = true
	assert.NoError(t, c.Run())
}

func TestConfigInitTypeMap(t *testing.T) {
	for _, format := range []string{"json", "yml", "toml"} {
		t.Run(format, func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "typemap."+format)
			c := &ConfigInit{Command: "typemap", Format: format, Output: dest}
			require.NoError(t, c.Run())

			f, err := typemap.Load(dest)
			require.NoError(t, err)
			assert.Equal(t, typemap.Default().Namespace, f.Namespace)
			require.Contains(t, f.Overrides, "DocumentUri")
			assert.Equal(t, "string-id", f.Overrides["DocumentUri"].Binding)
		})
	}
}

func TestConfigInitRejectsUnknown(t *testing.T) {
	c := &ConfigInit{Command: "generate", Format: "ini", Output: filepath.Join(t.TempDir(), "x")}
	assert.ErrorContains(t, c.Run(), "unsupported format")

	c = &ConfigInit{Command: "server", Format: "json", Output: filepath.Join(t.TempDir(), "x")}
	assert.ErrorContains(t, c.Run(), "unknown command")
}

func TestConfigKey(t *testing.T) {
	assert.Equal(t, "type_map", configKey("TypeMap"))
	assert.Equal(t, "string_literal_constants", configKey("StringLiteralConstants"))
	assert.Equal(t, "output", configKey("Output"))
	assert.Equal(t, "raw_file", configKey("RawFile"))
}

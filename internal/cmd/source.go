package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Alia5/lspgen/internal/codegen/generator"
	"github.com/Alia5/lspgen/internal/codegen/generator/cpp"
	"github.com/Alia5/lspgen/internal/codegen/resolver"
	"github.com/Alia5/lspgen/internal/metamodel"
	"github.com/Alia5/lspgen/internal/typemap"
)

// Source selects the meta-model and the type map shared by every command
// that resolves a document.
type Source struct {
	Input                  string   `arg:"" name:"metamodel" help:"Path to the meta-model JSON document" type:"existingfile"`
	TypeMap                string   `help:"Type map (JSON, YAML or TOML) merged over the built-in map" type:"existingfile" env:"LSPGEN_TYPEMAP"`
	Namespace              []string `help:"Namespace of the emitted declarations, outermost first (overrides the type map)" env:"LSPGEN_NAMESPACE"`
	StringLiteralConstants bool     `help:"Emit string-literal properties as constants instead of serialized strings" env:"LSPGEN_STRING_LITERAL_CONSTANTS"`
	Spaces                 int      `help:"Indent with this many spaces instead of tabs" default:"0" env:"LSPGEN_SPACES"`
}

// load reads the meta-model and builds the generator options.
func (s *Source) load(logger *slog.Logger) (*metamodel.Document, generator.Options, error) {
	doc, err := metamodel.ReadFile(s.Input)
	if err != nil {
		return nil, generator.Options{}, err
	}
	logger.Debug("Loaded meta-model", "file", s.Input, "version", doc.MetaData.Version)

	opts, err := s.options(logger)
	if err != nil {
		return nil, generator.Options{}, err
	}
	return doc, opts, nil
}

func (s *Source) options(logger *slog.Logger) (generator.Options, error) {
	tm := typemap.Default()
	if s.TypeMap != "" {
		user, err := typemap.Load(s.TypeMap)
		if err != nil {
			return generator.Options{}, err
		}
		tm.Merge(user)
		logger.Info("Loaded type map", "file", s.TypeMap, "overrides", len(user.Overrides), "unions", len(user.Unions))
	}
	if len(s.Namespace) > 0 {
		tm.Namespace = s.Namespace
	}

	table, err := tm.OverrideTable()
	if err != nil {
		return generator.Options{}, fmt.Errorf("type map: %w", err)
	}

	literals := s.StringLiteralConstants
	if tm.StringLiteralConstants != nil && *tm.StringLiteralConstants {
		literals = true
	}

	opts := generator.Options{
		Resolver: resolver.Config{
			Overrides:              table,
			Unions:                 tm.Unions,
			StringLiteralConstants: literals,
		},
		Emit: cpp.Options{Namespace: tm.Namespace},
	}
	if s.Spaces > 0 {
		opts.Emit.IndentUnit = strings.Repeat(" ", s.Spaces)
	}
	return opts, nil
}

package generator

import (
	"fmt"
	"log/slog"

	"github.com/Alia5/lspgen/internal/codegen/generator/cpp"
	"github.com/Alia5/lspgen/internal/codegen/meta"
	"github.com/Alia5/lspgen/internal/codegen/resolver"
	"github.com/Alia5/lspgen/internal/log"
	"github.com/Alia5/lspgen/internal/metamodel"
)

// Options configures a generator run.
type Options struct {
	Resolver resolver.Config
	Emit     cpp.Options
}

type Generator struct {
	outputDir string
	logger    *slog.Logger
	opts      Options
	raw       log.RawLogger
}

// Result is everything one run produced, before anything touches disk.
type Result struct {
	Metadata    *meta.Metadata
	Units       []meta.Unit
	Summary     resolver.Summary
	Diagnostics []resolver.Diagnostic
}

func New(outputDir string, logger *slog.Logger, opts Options) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		outputDir: outputDir,
		logger:    logger,
		opts:      opts,
		raw:       log.NewRaw(nil),
	}
}

// WithRawLogger dumps every written unit to raw.
func (g *Generator) WithRawLogger(raw log.RawLogger) *Generator {
	if raw != nil {
		g.raw = raw
	}
	return g
}

// Build resolves doc and renders all units in memory.
func (g *Generator) Build(doc *metamodel.Document) (*Result, error) {
	g.logger.Info("Resolving meta-model", "version", doc.MetaData.Version,
		"structures", len(doc.Structures), "enumerations", len(doc.Enumerations))

	r := resolver.New(g.opts.Resolver, g.logger)
	md := r.Process(doc)

	units, err := cpp.Generate(g.logger, md, g.opts.Emit)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]meta.UnitKind, len(units))
	for _, u := range units {
		if prev, ok := seen[u.Path]; ok {
			return nil, fmt.Errorf("output collision at %s (%s and %s)", u.Path, prev, u.Kind)
		}
		seen[u.Path] = u.Kind
	}

	res := &Result{
		Metadata:    md,
		Units:       units,
		Summary:     r.Summary(),
		Diagnostics: r.Diagnostics(),
	}
	for _, d := range res.Diagnostics {
		g.logger.Debug("Diagnostic", "kind", d.Kind.String(), "subject", d.Subject, "detail", d.Detail)
	}
	return res, nil
}

// Generate builds doc and writes the units below the output directory.
func (g *Generator) Generate(doc *metamodel.Document) (*Result, error) {
	res, err := g.Build(doc)
	if err != nil {
		return nil, err
	}

	stats, err := g.Write(res.Units)
	if err != nil {
		return nil, err
	}

	args := append(res.Summary.LogArgs(), "written", stats.Written, "unchanged", stats.Unchanged, "output", g.outputDir)
	g.logger.Info("Generation complete", args...)
	return res, nil
}

// Check builds doc and compares the units with the files on disk.
func (g *Generator) Check(doc *metamodel.Document) ([]Drift, error) {
	res, err := g.Build(doc)
	if err != nil {
		return nil, err
	}
	drifts, err := g.Compare(res.Units)
	if err != nil {
		return nil, err
	}
	for _, d := range drifts {
		g.logger.Warn("Generated file out of date", "path", d.Path, "reason", d.Reason.String())
	}
	g.logger.Info("Check complete", "units", len(res.Units), "drifted", len(drifts))
	return drifts, nil
}

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/Alia5/lspgen/internal/codegen/generator"
	"github.com/Alia5/lspgen/internal/log"
)

type Generate struct {
	Source `embed:""`
	Output string `help:"Output directory for the generated headers, sources and manifest" default:"./generated" type:"path" env:"LSPGEN_OUTPUT"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	logger.Info("Starting lspgen code generation", "input", g.Input, "output", g.Output)

	doc, opts, err := g.load(logger)
	if err != nil {
		return err
	}

	gen := generator.New(g.Output, logger, opts).WithRawLogger(rawLogger)
	if _, err := gen.Generate(doc); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	return nil
}

type Check struct {
	Source `embed:""`
	Output string `help:"Directory holding previously generated output" default:"./generated" type:"path" env:"LSPGEN_OUTPUT"`
}

// Run is called by Kong when the check command is executed. It fails when
// any generated file is missing or out of date.
func (c *Check) Run(logger *slog.Logger) error {
	doc, opts, err := c.load(logger)
	if err != nil {
		return err
	}

	drifts, err := generator.New(c.Output, logger, opts).Check(doc)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	if len(drifts) > 0 {
		return fmt.Errorf("%d generated file(s) out of date in %s, run generate", len(drifts), c.Output)
	}
	return nil
}

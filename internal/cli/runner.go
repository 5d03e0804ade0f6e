package cli

import (
	"fmt"
	"io"
	"log"

	"github.com/seitarof/gen-debug/internal/bound"
	"github.com/seitarof/gen-debug/internal/directive"
	"github.com/seitarof/gen-debug/internal/generator"
	"github.com/seitarof/gen-debug/internal/loader"
	"github.com/seitarof/gen-debug/internal/model"
	"github.com/seitarof/gen-debug/internal/validate"
)

// Runner orchestrates loader/directive/validate/bound/generator layers.
type Runner interface {
	Run(cfg *Config) error
}

type runnerImpl struct {
	loader    loader.Loader
	parser    directive.Parser
	validator validate.Validator
	inferrer  bound.Inferrer
	generator generator.Generator
	diagOut   io.Writer
}

// NewRunner creates a default runner implementation. Diagnostics are
// written to diagOut, generated code goes through the generator.
func NewRunner(
	l loader.Loader,
	p directive.Parser,
	v validate.Validator,
	in bound.Inferrer,
	g generator.Generator,
	diagOut io.Writer,
) Runner {
	return &runnerImpl{
		loader:    l,
		parser:    p,
		validator: v,
		inferrer:  in,
		generator: g,
		diagOut:   diagOut,
	}
}

// Run executes a single generation cycle. When any definition carries
// invalid directives, all diagnostics are reported and nothing is written.
func (r *runnerImpl) Run(cfg *Config) error {
	defs, err := r.loader.Load(cfg.Path, cfg.Types)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if len(defs) == 0 {
		return fmt.Errorf("no annotated types found in %q", cfg.Path)
	}

	var diags []model.Diagnostic
	clean := make([]*model.TypeDefinition, 0, len(defs))
	for _, def := range defs {
		// Placement and uniqueness checks need well-formed directives,
		// so a definition with parse errors skips validation entirely.
		if parseDiags := r.parser.ParseAll(def); len(parseDiags) > 0 {
			diags = append(diags, parseDiags...)
			continue
		}
		if validateDiags := r.validator.Validate(def); len(validateDiags) > 0 {
			diags = append(diags, validateDiags...)
			continue
		}
		clean = append(clean, def)
	}
	if len(diags) > 0 {
		RenderDiagnostics(r.diagOut, diags)
		return fmt.Errorf("%d invalid directive(s), nothing generated", len(diags))
	}

	plans := make([]*model.GenerationPlan, 0, len(clean))
	for _, def := range clean {
		constraints := r.inferrer.Infer(def)
		logContractClauses(def, constraints)
		plans = append(plans, &model.GenerationPlan{Def: def, Constraints: constraints})
	}
	return r.generator.Generate(cfg, plans)
}

// RenderDiagnostics writes one primary line per diagnostic followed by
// tab-indented secondary notes pointing at the cross-referenced spans.
func RenderDiagnostics(w io.Writer, diags []model.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "%s: %s\n", d.Span, d.Message)
		for _, s := range d.Secondary {
			fmt.Fprintf(w, "\t%s: %s\n", s.Span, s.Note)
		}
	}
}

func logContractClauses(def *model.TypeDefinition, constraints []model.Constraint) {
	for _, c := range constraints {
		if c.Param != "" {
			continue
		}
		log.Printf(
			"gen-debug: warning: type %s: clause %q does not constrain a type parameter, kept as contract comment",
			def.Name,
			c.Clause,
		)
	}
}

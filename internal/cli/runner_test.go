package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/seitarof/gen-debug/internal/generator"
	"github.com/seitarof/gen-debug/internal/model"
)

func TestRunner_Run_GeneratesPlansForCleanDefinitions(t *testing.T) {
	defs := []*model.TypeDefinition{
		{Kind: model.StructDef, Name: "Wrapper", PkgName: "model", PkgPath: "example.com/model"},
		{Kind: model.EnumDef, Name: "Shape", PkgName: "model", PkgPath: "example.com/model"},
	}
	in := &mockInferrer{constraints: []model.Constraint{{Param: "T", Clause: "T gendebug.Debuggable"}}}
	gen := &mockGenerator{}
	var diagOut bytes.Buffer

	r := NewRunner(&mockLoader{defs: defs}, &mockDirectiveParser{}, &mockValidator{}, in, gen, &diagOut)
	cfg := &Config{Path: "example.com/model", Filename: "debug_gen.go"}

	if err := r.Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if gen.callCount != 1 {
		t.Fatalf("generator call count = %d, want 1", gen.callCount)
	}
	if len(gen.plans) != 2 {
		t.Fatalf("generated plans = %d, want 2", len(gen.plans))
	}
	if gen.plans[0].Def.Name != "Wrapper" || gen.plans[1].Def.Name != "Shape" {
		t.Fatalf("plan order = %s, %s", gen.plans[0].Def.Name, gen.plans[1].Def.Name)
	}
	if len(gen.plans[0].Constraints) != 1 || gen.plans[0].Constraints[0].Clause != "T gendebug.Debuggable" {
		t.Fatalf("constraints not forwarded: %#v", gen.plans[0].Constraints)
	}
	if diagOut.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagOut.String())
	}
}

func TestRunner_Run_ReportsAllDiagnosticsAndWritesNothing(t *testing.T) {
	defs := []*model.TypeDefinition{
		{Kind: model.StructDef, Name: "Broken", PkgName: "model", PkgPath: "example.com/model"},
		{Kind: model.StructDef, Name: "Conflicted", PkgName: "model", PkgPath: "example.com/model"},
	}
	p := &mockDirectiveParser{diagsByDef: map[string][]model.Diagnostic{
		"Broken": {{
			Kind:    model.MalformedDirective,
			Message: "expected `debug:\"...\"` or `debug:bound = \"...\"`",
			Span:    model.Span{File: "types.go", Line: 4, Col: 1},
		}},
	}}
	v := &mockValidator{diagsByDef: map[string][]model.Diagnostic{
		"Conflicted": {{
			Kind:    model.DuplicateDirective,
			Message: "duplicate bound directive on the struct",
			Span:    model.Span{File: "types.go", Line: 12, Col: 1},
			Secondary: []model.SecondarySpan{{
				Span: model.Span{File: "types.go", Line: 11, Col: 1},
				Note: "first bound directive here",
			}},
		}},
	}}
	gen := &mockGenerator{}
	var diagOut bytes.Buffer

	r := NewRunner(&mockLoader{defs: defs}, p, v, &mockInferrer{}, gen, &diagOut)

	err := r.Run(&Config{Path: "example.com/model", Filename: "debug_gen.go"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "nothing generated") {
		t.Fatalf("unexpected error: %v", err)
	}
	if gen.callCount != 0 {
		t.Fatalf("generator must not run with diagnostics pending, got %d calls", gen.callCount)
	}
	if len(v.calls) != 1 || v.calls[0] != "Conflicted" {
		t.Fatalf("parse errors should skip validation, validated: %v", v.calls)
	}

	got := diagOut.String()
	if !strings.Contains(got, "types.go:4:1: expected `debug:\"...\"`") {
		t.Fatalf("parse diagnostic not rendered: %s", got)
	}
	if !strings.Contains(got, "\ttypes.go:11:1: first bound directive here") {
		t.Fatalf("secondary span not rendered indented: %s", got)
	}
}

func TestRunner_Run_LoadError(t *testing.T) {
	r := NewRunner(
		&mockLoader{err: errors.New("load failed")},
		&mockDirectiveParser{},
		&mockValidator{},
		&mockInferrer{},
		&mockGenerator{},
		&bytes.Buffer{},
	)

	err := r.Run(&Config{Path: "example.com/model", Filename: "debug_gen.go"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "load:") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunner_Run_NoAnnotatedTypes(t *testing.T) {
	r := NewRunner(
		&mockLoader{},
		&mockDirectiveParser{},
		&mockValidator{},
		&mockInferrer{},
		&mockGenerator{},
		&bytes.Buffer{},
	)

	err := r.Run(&Config{Path: "example.com/empty", Filename: "debug_gen.go"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "no annotated types") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRenderDiagnostics_Listing(t *testing.T) {
	diags := []model.Diagnostic{
		{
			Kind:    model.UnrecognizedKey,
			Message: "expected either `debug:\"...\"` format directive or `debug:bound = \"...\"` bound directive",
			Span:    model.Span{File: "testdata/sample/types.go", Line: 7, Col: 2},
		},
		{
			Kind:    model.BoundAlreadySpecifiedAtTypeScope,
			Message: "`debug:bound = \"...\"` bound directive is not allowed on struct fields if already specified on the struct itself",
			Span:    model.Span{File: "testdata/sample/types.go", Line: 15, Col: 2},
			Secondary: []model.SecondarySpan{{
				Span: model.Span{File: "testdata/sample/types.go", Line: 10, Col: 1},
				Note: "bound directive on the struct here",
			}},
		},
	}

	var buf bytes.Buffer
	RenderDiagnostics(&buf, diags)

	g := goldie.New(t)
	g.Assert(t, "diagnostic_listing", buf.Bytes())
}

type mockLoader struct {
	defs []*model.TypeDefinition
	err  error
}

func (m *mockLoader) Load(pkgPath string, typeNames []string) ([]*model.TypeDefinition, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.defs, nil
}

type mockDirectiveParser struct {
	diagsByDef map[string][]model.Diagnostic
	calls      []string
}

func (m *mockDirectiveParser) Parse(raw model.RawDirective, scope model.ScopeKind) (model.ParsedDirective, *model.Diagnostic) {
	return model.ParsedDirective{}, nil
}

func (m *mockDirectiveParser) ParseAll(def *model.TypeDefinition) []model.Diagnostic {
	m.calls = append(m.calls, def.Name)
	return m.diagsByDef[def.Name]
}

type mockValidator struct {
	diagsByDef map[string][]model.Diagnostic
	calls      []string
}

func (m *mockValidator) Validate(def *model.TypeDefinition) []model.Diagnostic {
	m.calls = append(m.calls, def.Name)
	return m.diagsByDef[def.Name]
}

type mockInferrer struct {
	constraints []model.Constraint
}

func (m *mockInferrer) Infer(def *model.TypeDefinition) []model.Constraint {
	return append([]model.Constraint(nil), m.constraints...)
}

type mockGenerator struct {
	callCount int
	cfg       generator.Config
	plans     []*model.GenerationPlan
	err       error
}

func (m *mockGenerator) Generate(cfg generator.Config, plans []*model.GenerationPlan) error {
	m.callCount++
	m.cfg = cfg
	m.plans = append([]*model.GenerationPlan(nil), plans...)
	return m.err
}

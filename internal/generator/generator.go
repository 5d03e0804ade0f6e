// Package generator emits DebugString implementations for generation plans.
package generator

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"

	"github.com/seitarof/gen-debug/internal/bound"
	"github.com/seitarof/gen-debug/internal/model"
)

const runtimePkgPath = "github.com/seitarof/gen-debug"

// Generator renders generation plans into one generated Go file.
type Generator interface {
	Generate(cfg Config, plans []*model.GenerationPlan) error
}

// Config is the minimum config contract required by generator.
type Config interface {
	OutputFilename() string
}

// Formatter formats generated Go code and organizes imports.
type Formatter interface {
	Format(filename string, src []byte) ([]byte, error)
}

// FileWriter writes generated code to disk.
type FileWriter interface {
	Write(filename string, data []byte) error
}

type generatorImpl struct {
	formatter Formatter
	writer    FileWriter
}

type goimportsFormatter struct{}

type fileWriter struct{}

// New creates a code generator.
func New(f Formatter, w FileWriter) Generator {
	return &generatorImpl{formatter: f, writer: w}
}

// NewGoimportsFormatter creates a formatter backed by goimports.
func NewGoimportsFormatter() Formatter {
	return &goimportsFormatter{}
}

// NewFileWriter creates a plain file writer.
func NewFileWriter() FileWriter {
	return &fileWriter{}
}

func (g *generatorImpl) Generate(cfg Config, plans []*model.GenerationPlan) error {
	src, err := Render(plans)
	if err != nil {
		return err
	}

	formatted, err := g.formatter.Format(cfg.OutputFilename(), src)
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if err := g.writer.Write(cfg.OutputFilename(), formatted); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Render produces the generated file source for the given plans.
func Render(plans []*model.GenerationPlan) ([]byte, error) {
	if len(plans) == 0 {
		return nil, fmt.Errorf("no generation plans")
	}

	f := jen.NewFilePathName(plans[0].Def.PkgPath, plans[0].Def.PkgName)
	f.ImportName(runtimePkgPath, "gendebug")
	f.HeaderComment("Code generated by gen-debug. DO NOT EDIT.")

	for _, p := range plans {
		renderPlan(f, p)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

func (f *goimportsFormatter) Format(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}

func (w *fileWriter) Write(filename string, data []byte) error {
	return os.WriteFile(filename, data, 0o644)
}

func renderPlan(f *jen.File, p *model.GenerationPlan) {
	def := p.Def
	funcName := def.Name + "DebugString"

	f.Commentf("%s renders %s in debug form.", funcName, def.Name)
	for _, c := range p.Constraints {
		// Clauses that constrain something other than a bare type
		// parameter cannot become Go constraints; they survive as part
		// of the documented contract.
		if c.Param == "" {
			f.Commentf("requires: %s", c.Clause)
		}
	}

	fn := jen.Func().Id(funcName)
	if len(def.Params) > 0 {
		fn.Types(typeParamCodes(def, p.Constraints)...)
	}
	fn.Params(jen.Id("v").Add(instantiated(def.Name, def.Params))).String()

	if def.Kind == model.StructDef {
		fn.Block(structBody(def.Name, def.Fields, "v")...)
	} else {
		fn.Block(enumBody(def)...)
	}
	f.Add(fn)
}

// typeParamCodes renders the generic parameter list, attaching each
// parameter's constraint clause or any when nothing constrains it.
func typeParamCodes(def *model.TypeDefinition, constraints []model.Constraint) []jen.Code {
	clauseByParam := map[string]string{}
	for _, c := range constraints {
		if c.Param == "" {
			continue
		}
		if _, ok := clauseByParam[c.Param]; !ok {
			clauseByParam[c.Param] = c.Clause
		}
	}

	codes := make([]jen.Code, 0, len(def.Params))
	for _, param := range def.Params {
		clause, ok := clauseByParam[param.Name]
		if !ok {
			codes = append(codes, jen.Id(param.Name).Any())
			continue
		}
		text := strings.TrimSpace(strings.TrimPrefix(clause, param.Name))
		if text == bound.DefaultConstraint {
			codes = append(codes, jen.Id(param.Name).Qual(runtimePkgPath, "Debuggable"))
			continue
		}
		codes = append(codes, jen.Id(param.Name).Id(text))
	}
	return codes
}

func instantiated(name string, params []model.Param) jen.Code {
	if len(params) == 0 {
		return jen.Id(name)
	}
	args := make([]jen.Code, 0, len(params))
	for _, p := range params {
		args = append(args, jen.Id(p.Name))
	}
	return jen.Id(name).Index(jen.List(args...))
}

// structBody renders `Name { a: ..., b: ... }` through a strings.Builder.
// recv is the identifier holding the rendered value.
func structBody(name string, fields []model.Field, recv string) []jen.Code {
	if len(fields) == 0 {
		return []jen.Code{jen.Return(jen.Lit(name))}
	}

	stmts := []jen.Code{
		jen.Var().Id("b").Qual("strings", "Builder"),
		writeLit(name + " { "),
	}
	for i, field := range fields {
		label := field.Name + ": "
		if i > 0 {
			label = ", " + label
		}
		stmts = append(stmts,
			writeLit(label),
			jen.Id("b").Dot("WriteString").Call(fieldValue(field, recv)),
		)
	}
	stmts = append(stmts,
		writeLit(" }"),
		jen.Return(jen.Id("b").Dot("String").Call()),
	)
	return stmts
}

func enumBody(def *model.TypeDefinition) []jen.Code {
	if len(def.Variants) == 0 {
		return []jen.Code{jen.Return(jen.Lit(def.Name))}
	}

	anyFields := false
	for _, v := range def.Variants {
		if len(v.Fields) > 0 {
			anyFields = true
		}
	}

	var cases []jen.Code
	for _, variant := range def.Variants {
		caseType := instantiated(variant.Name, def.Params)
		if len(variant.Fields) == 0 {
			cases = append(cases, jen.Case(caseType).Block(jen.Return(jen.Lit(variant.Name))))
			continue
		}
		cases = append(cases, jen.Case(caseType).Block(structBody(variant.Name, variant.Fields, "m")...))
	}

	subject := jen.Id("v").Assert(jen.Type())
	if anyFields {
		subject = jen.Id("m").Op(":=").Add(jen.Id("v").Assert(jen.Type()))
	}
	return []jen.Code{
		jen.Switch(subject).Block(cases...),
		jen.Return(jen.Lit("")),
	}
}

func fieldValue(field model.Field, recv string) jen.Code {
	access := jen.Id(recv).Dot(field.Name)
	if field.Directives.Format != nil {
		return jen.Qual("fmt", "Sprintf").Call(jen.Lit(field.Directives.Format.Template), access)
	}
	return jen.Qual(runtimePkgPath, "Value").Call(access)
}

func writeLit(s string) jen.Code {
	return jen.Id("b").Dot("WriteString").Call(jen.Lit(s))
}

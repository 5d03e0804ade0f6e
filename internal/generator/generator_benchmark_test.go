package generator

import (
	"fmt"
	"testing"

	"github.com/seitarof/gen-debug/internal/model"
)

type passthroughFormatter struct{}

type discardWriter struct{}

func (passthroughFormatter) Format(_ string, src []byte) ([]byte, error) { return src, nil }

func (discardWriter) Write(_ string, _ []byte) error { return nil }

func BenchmarkGeneratorGenerate_RenderOnly(b *testing.B) {
	g := New(passthroughFormatter{}, discardWriter{})
	cfg := testConfig{filename: "bench_debug_gen.go"}
	plans := benchmarkPlans(8, 32)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := g.Generate(cfg, plans); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkPlans(structCount, fieldCount int) []*model.GenerationPlan {
	out := make([]*model.GenerationPlan, 0, structCount)
	for i := 0; i < structCount; i++ {
		def := &model.TypeDefinition{
			Kind:    model.StructDef,
			Name:    fmt.Sprintf("Record%d", i),
			PkgName: "model",
			PkgPath: "example.com/model",
			Params:  []model.Param{{Name: "T"}},
		}
		for j := 0; j < fieldCount; j++ {
			def.Fields = append(def.Fields, model.Field{
				Name:  fmt.Sprintf("Field%d", j),
				Shape: &model.Shape{Kind: model.ShapeParam, Name: "T"},
			})
		}
		out = append(out, &model.GenerationPlan{
			Def:         def,
			Constraints: []model.Constraint{{Param: "T", Clause: "T gendebug.Debuggable"}},
		})
	}
	return out
}

// Package bound decides which generic parameters of a validated definition
// need the Debuggable constraint in the generated implementation.
//
// The classification is a structural recursion over the immutable shape
// trees: a parameter is constrained only when some value of its type is
// actually rendered. Parameters that appear solely inside phantom markers or
// behind member projections stay unconstrained, and explicit bound overrides
// replace inference verbatim.
package bound

import (
	"strings"

	"github.com/seitarof/gen-debug/internal/model"
)

// DefaultConstraint is the constraint attached to directly used parameters.
const DefaultConstraint = "gendebug.Debuggable"

// Inferrer computes the final ordered constraint list for a validated
// definition. It must only run on definitions the validator accepted.
type Inferrer interface {
	Infer(def *model.TypeDefinition) []model.Constraint
}

type inferrerImpl struct{}

// New returns the default inference engine.
func New() Inferrer {
	return &inferrerImpl{}
}

func (in *inferrerImpl) Infer(def *model.TypeDefinition) []model.Constraint {
	params := make(map[string]bool, len(def.Params))
	for _, p := range def.Params {
		params[p.Name] = true
	}

	// A type-scope override is total: its clauses become the entire
	// output and no field shape is ever scanned.
	if def.Directives.Bound != nil {
		return attributeClauses(def.Directives.Bound.Clauses, params)
	}

	// Field overrides are keyed by shape; an overridden shape is excluded
	// from scanning entirely, whichever occurrence carried the directive.
	overridden := map[string]*model.BoundOverrideDirective{}
	var overrideOrder []string
	def.AllFields(func(f *model.Field) {
		if f.Directives.Bound == nil {
			return
		}
		key := f.Shape.String()
		if _, ok := overridden[key]; !ok {
			overridden[key] = f.Directives.Bound
			overrideOrder = append(overrideOrder, key)
		}
	})

	direct := map[string]bool{}
	scanned := map[string]bool{}
	def.AllFields(func(f *model.Field) {
		key := f.Shape.String()
		if overridden[key] != nil || scanned[key] {
			return
		}
		scanned[key] = true
		classify(f.Shape, usageDirect, params, direct)
	})

	var overrideClauses []string
	seenClause := map[string]bool{}
	for _, key := range overrideOrder {
		for _, c := range overridden[key].Clauses {
			if !seenClause[c] {
				seenClause[c] = true
				overrideClauses = append(overrideClauses, c)
			}
		}
	}

	// One decision per parameter, in declaration order: an override
	// clause naming the parameter wins, otherwise direct usage earns the
	// default constraint.
	usedClause := map[string]bool{}
	var out []model.Constraint
	for _, p := range def.Params {
		if clause, ok := clauseForSubject(overrideClauses, p.Name); ok {
			usedClause[clause] = true
			out = append(out, model.Constraint{Param: p.Name, Clause: clause})
			continue
		}
		if direct[p.Name] {
			out = append(out, model.Constraint{
				Param:  p.Name,
				Clause: p.Name + " " + DefaultConstraint,
			})
		}
	}
	// Override clauses whose subject is not a bare parameter (projections
	// and the like) survive verbatim after the parameter clauses.
	for _, c := range overrideClauses {
		if !usedClause[c] {
			out = append(out, model.Constraint{Clause: c})
		}
	}
	return out
}

// usage is the rendering context a shape node is visited in.
type usage int

const (
	// usageDirect: a value of the visited type is rendered.
	usageDirect usage = iota
	// usagePhantom: the visit happens inside a phantom marker argument.
	usagePhantom
	// usageProjection: the visit happens under a member projection.
	usageProjection
)

func classify(s *model.Shape, ctx usage, params, direct map[string]bool) {
	if s == nil {
		return
	}
	switch s.Kind {
	case model.ShapeParam:
		if ctx == usageDirect && params[s.Name] {
			direct[s.Name] = true
		}
	case model.ShapePointer, model.ShapeSlice, model.ShapeArray:
		classify(s.Elem, ctx, params, direct)
	case model.ShapeMap:
		classify(s.Key, ctx, params, direct)
		classify(s.Elem, ctx, params, direct)
	case model.ShapeNamed:
		next := ctx
		if s.IsPhantom() {
			next = usagePhantom
		}
		for _, a := range s.Args {
			classify(a, next, params, direct)
		}
	case model.ShapeProjection:
		classify(s.Elem, usageProjection, params, direct)
	}
}

// attributeClauses maps verbatim clauses to the parameters they name. The
// clause list itself is never reordered or filtered; attribution only feeds
// the emitter's per-parameter lookup, and each parameter is claimed once.
func attributeClauses(clauses []string, params map[string]bool) []model.Constraint {
	claimed := map[string]bool{}
	out := make([]model.Constraint, 0, len(clauses))
	for _, c := range clauses {
		subject := clauseSubject(c)
		if params[subject] && !claimed[subject] {
			claimed[subject] = true
			out = append(out, model.Constraint{Param: subject, Clause: c})
			continue
		}
		out = append(out, model.Constraint{Clause: c})
	}
	return out
}

func clauseForSubject(clauses []string, subject string) (string, bool) {
	for _, c := range clauses {
		if clauseSubject(c) == subject {
			return c, true
		}
	}
	return "", false
}

func clauseSubject(clause string) string {
	subject, _, _ := strings.Cut(strings.TrimSpace(clause), " ")
	return subject
}

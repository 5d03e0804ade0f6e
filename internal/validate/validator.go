// Package validate enforces directive placement, per-scope uniqueness and
// bound-override precedence across a whole definition.
//
// Validation is all-or-nothing: any diagnostic leaves the definition's
// normalized directive sets untouched and no generation plan is ever built
// for it.
package validate

import (
	"fmt"

	"github.com/seitarof/gen-debug/internal/model"
)

// Validator confirms a parsed definition and, on success, fills the
// normalized DirectiveSet of every scope.
type Validator interface {
	Validate(def *model.TypeDefinition) []model.Diagnostic
}

type validatorImpl struct{}

// New returns the default validator.
func New() Validator {
	return &validatorImpl{}
}

func (v *validatorImpl) Validate(def *model.TypeDefinition) []model.Diagnostic {
	var diags []model.Diagnostic
	var apply []func()

	typeSet := collectScopeSet(def.Parsed, def.OwnerString(model.ScopeType), &diags)
	apply = append(apply, func() { def.Directives = typeSet })

	// The override slot of a field-scope bound directive is the field's
	// declared shape, not the field itself: a later occurrence of the
	// same shape may carry the override, a second override for that
	// shape is a conflict.
	firstBoundByShape := map[string]model.Span{}

	checkField := func(f *model.Field) {
		owner := def.OwnerString(model.ScopeField)
		set := collectScopeSet(f.Parsed, owner, &diags)
		apply = append(apply, func() { f.Directives = set })

		if set.Bound == nil {
			return
		}
		if typeSet.Bound != nil {
			diags = append(diags, model.Diagnostic{
				Kind: model.BoundAlreadySpecifiedAtTypeScope,
				Message: fmt.Sprintf(
					"`debug:bound = \"...\"` bound directive is not allowed on %s fields if already specified on the %s itself",
					def.Kind, def.Kind,
				),
				Span: set.Bound.Span,
				Secondary: []model.SecondarySpan{{
					Span: typeSet.Bound.Span,
					Note: fmt.Sprintf("bound directive on the %s here", def.Kind),
				}},
			})
			return
		}
		key := f.Shape.String()
		if prev, ok := firstBoundByShape[key]; ok {
			diags = append(diags, model.Diagnostic{
				Kind: model.BoundAlreadySpecifiedForType,
				Message: fmt.Sprintf(
					"`debug:bound = \"...\"` bound directive was already specified on this %s field type",
					def.Kind,
				),
				Span: set.Bound.Span,
				Secondary: []model.SecondarySpan{{
					Span: prev,
					Note: "previous bound directive for this field type here",
				}},
			})
			return
		}
		firstBoundByShape[key] = set.Bound.Span
	}

	for i := range def.Fields {
		checkField(&def.Fields[i])
	}
	for i := range def.Variants {
		variant := &def.Variants[i]
		for _, pd := range variant.Parsed {
			if pd.Bound != nil {
				diags = append(diags, model.Diagnostic{
					Kind:    model.DirectiveNotAllowedHere,
					Message: "`debug:bound = \"...\"` bound directive is not allowed on enum variants",
					Span:    pd.Bound.Span,
				})
			}
		}
		for j := range variant.Fields {
			checkField(&variant.Fields[j])
		}
	}

	if len(diags) > 0 {
		return diags
	}
	for _, fn := range apply {
		fn()
	}
	return nil
}

// collectScopeSet folds a scope's parsed directives into fixed slots,
// reporting the second occurrence of any kind against the first.
func collectScopeSet(parsed []model.ParsedDirective, owner string, diags *[]model.Diagnostic) model.DirectiveSet {
	var set model.DirectiveSet
	for _, pd := range parsed {
		switch {
		case pd.Format != nil:
			if set.Format != nil {
				*diags = append(*diags, model.Diagnostic{
					Kind:    model.DuplicateDirective,
					Message: fmt.Sprintf("multiple `debug:\"...\"` format directives on the same %s", owner),
					Span:    pd.Format.Span,
					Secondary: []model.SecondarySpan{{
						Span: set.Format.Span,
						Note: "first format directive here",
					}},
				})
				continue
			}
			set.Format = pd.Format
		case pd.Bound != nil:
			if set.Bound != nil {
				*diags = append(*diags, model.Diagnostic{
					Kind:    model.DuplicateDirective,
					Message: fmt.Sprintf("multiple `debug:bound = \"...\"` bound directives on the same %s", owner),
					Span:    pd.Bound.Span,
					Secondary: []model.SecondarySpan{{
						Span: set.Bound.Span,
						Note: "first bound directive here",
					}},
				})
				continue
			}
			set.Bound = pd.Bound
		}
	}
	return set
}

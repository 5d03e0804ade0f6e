// Package directive parses raw //debug: payloads into typed directives.
//
// The grammar is deliberately tiny. A payload is one of:
//
//	"template"            format directive (field scope only)
//	bound = "clauses"     bound-override directive
//
// Everything else is a diagnostic. Parsing is pure and scope-aware; placement
// rules that need whole-definition context live in the validate package.
package directive

import (
	"strconv"
	"strings"

	"github.com/seitarof/gen-debug/internal/model"
)

// Parser converts raw directive payloads into typed directives.
type Parser interface {
	// Parse handles a single payload attached at the given scope. It
	// returns either a typed directive or a diagnostic, never both.
	Parse(raw model.RawDirective, scope model.ScopeKind) (model.ParsedDirective, *model.Diagnostic)
	// ParseAll parses every payload of the definition in declaration
	// order, filling the per-scope Parsed lists and collecting every
	// diagnostic instead of stopping at the first.
	ParseAll(def *model.TypeDefinition) []model.Diagnostic
}

type parserImpl struct{}

// New returns the default directive parser.
func New() Parser {
	return &parserImpl{}
}

func (p *parserImpl) Parse(raw model.RawDirective, scope model.ScopeKind) (model.ParsedDirective, *model.Diagnostic) {
	payload := strings.TrimSpace(raw.Payload)
	formatAllowed := scope == model.ScopeField
	boundAllowed := scope != model.ScopeVariant

	if payload == "" {
		return model.ParsedDirective{}, &model.Diagnostic{
			Kind:    model.MissingDirectiveBody,
			Message: expectedDirectiveMsg(formatAllowed, boundAllowed),
			Span:    raw.Span,
		}
	}

	if strings.HasPrefix(payload, `"`) {
		template, rest, err := unquotePrefix(payload)
		if err != nil || strings.TrimSpace(rest) != "" {
			return model.ParsedDirective{}, malformed(raw.Span, formatAllowed, boundAllowed)
		}
		if !formatAllowed {
			return model.ParsedDirective{}, &model.Diagnostic{
				Kind:    model.MisplacedFormatDirective,
				Message: misplacedFormatMsg,
				Span:    raw.Span,
			}
		}
		return model.ParsedDirective{
			Format: &model.FormatDirective{Template: template, Span: raw.Span},
		}, nil
	}

	key, rest, ok := cutKey(payload)
	if !ok {
		return model.ParsedDirective{}, malformed(raw.Span, formatAllowed, boundAllowed)
	}
	value, trailing, err := unquotePrefix(rest)
	if err != nil || strings.TrimSpace(trailing) != "" {
		return model.ParsedDirective{}, malformed(raw.Span, formatAllowed, boundAllowed)
	}
	if key != "bound" {
		return model.ParsedDirective{}, &model.Diagnostic{
			Kind:    model.UnrecognizedKey,
			Message: expectedDirectiveMsg(formatAllowed, boundAllowed),
			Span:    raw.Span,
		}
	}

	return model.ParsedDirective{
		Bound: &model.BoundOverrideDirective{
			Raw:     value,
			Clauses: splitClauses(value),
			Span:    raw.Span,
		},
	}, nil
}

func (p *parserImpl) ParseAll(def *model.TypeDefinition) []model.Diagnostic {
	var diags []model.Diagnostic

	parseScope := func(raw []model.RawDirective, scope model.ScopeKind, out *[]model.ParsedDirective) {
		for _, r := range raw {
			pd, diag := p.Parse(r, scope)
			if diag != nil {
				diags = append(diags, *diag)
				continue
			}
			*out = append(*out, pd)
		}
	}

	parseScope(def.Raw, model.ScopeType, &def.Parsed)
	for i := range def.Fields {
		f := &def.Fields[i]
		parseScope(f.Raw, model.ScopeField, &f.Parsed)
	}
	for i := range def.Variants {
		v := &def.Variants[i]
		parseScope(v.Raw, model.ScopeVariant, &v.Parsed)
		for j := range v.Fields {
			f := &v.Fields[j]
			parseScope(f.Raw, model.ScopeField, &f.Parsed)
		}
	}
	return diags
}

func malformed(span model.Span, formatAllowed, boundAllowed bool) *model.Diagnostic {
	return &model.Diagnostic{
		Kind:    model.MalformedDirective,
		Message: expectedDirectiveMsg(formatAllowed, boundAllowed),
		Span:    span,
	}
}

// unquotePrefix consumes a leading Go string literal and returns its value
// plus whatever follows it.
func unquotePrefix(s string) (value, rest string, err error) {
	if !strings.HasPrefix(s, `"`) {
		return "", "", strconv.ErrSyntax
	}
	end := -1
	escaped := false
	for i := 1; i < len(s); i++ {
		switch {
		case escaped:
			escaped = false
		case s[i] == '\\':
			escaped = true
		case s[i] == '"':
			end = i
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 {
		return "", "", strconv.ErrSyntax
	}
	value, err = strconv.Unquote(s[:end+1])
	if err != nil {
		return "", "", err
	}
	return value, s[end+1:], nil
}

// cutKey consumes a leading identifier and the = that must follow it.
func cutKey(s string) (key, rest string, ok bool) {
	i := 0
	for i < len(s) && isIdentByte(s[i]) {
		i++
	}
	if i == 0 {
		return "", "", false
	}
	key = s[:i]
	rest = strings.TrimLeft(s[i:], " \t")
	if !strings.HasPrefix(rest, "=") {
		return "", "", false
	}
	return key, strings.TrimLeft(rest[1:], " \t"), true
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// splitClauses splits a bound clause list on commas that sit outside any
// bracket nesting, so interface literals and instantiations survive intact.
func splitClauses(raw string) []string {
	var clauses []string
	depth := 0
	start := 0
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				if c := strings.TrimSpace(raw[start:i]); c != "" {
					clauses = append(clauses, c)
				}
				start = i + 1
			}
		}
	}
	if c := strings.TrimSpace(raw[start:]); c != "" {
		clauses = append(clauses, c)
	}
	return clauses
}

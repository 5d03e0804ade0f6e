package model

// ScopeKind is the structural location a directive is attached to.
type ScopeKind int

const (
	ScopeType ScopeKind = iota
	ScopeVariant
	ScopeField
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeType:
		return "type"
	case ScopeVariant:
		return "variant"
	default:
		return "field"
	}
}

// RawDirective is one unparsed //debug: payload captured by the loader.
type RawDirective struct {
	// Payload is the text after the //debug: marker, verbatim.
	Payload string
	Span    Span
}

// FormatDirective is a field-level Sprintf template applied verbatim to that
// field's rendered value.
type FormatDirective struct {
	Template string
	Span     Span
}

// BoundOverrideDirective is an explicit constraint clause list. At type scope
// it replaces inference entirely; at field scope it replaces inference for
// every occurrence of that field's shape.
type BoundOverrideDirective struct {
	// Raw is the quoted value as written.
	Raw string
	// Clauses is Raw split on top-level commas.
	Clauses []string
	Span    Span
}

// ParsedDirective is the typed result of parsing one raw payload. Exactly one
// slot is set.
type ParsedDirective struct {
	Format *FormatDirective
	Bound  *BoundOverrideDirective
}

// DirectiveSet is the normalized per-scope directive record produced by the
// validator. Fixed slots, not a bag: a scope holds at most one directive of
// each kind, and kinds illegal at a scope are simply never populated there.
type DirectiveSet struct {
	Format *FormatDirective
	Bound  *BoundOverrideDirective
}

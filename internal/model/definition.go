package model

// DefKind distinguishes plain structs from sealed-interface enum groups.
type DefKind int

const (
	StructDef DefKind = iota
	EnumDef
)

func (k DefKind) String() string {
	if k == EnumDef {
		return "enum"
	}
	return "struct"
}

// Param is one generic parameter introduced by a definition, in declaration
// order.
type Param struct {
	Name string
}

// Field is one field of a struct or variant. Name may be empty for
// positional fields in hand-built definitions.
type Field struct {
	Name  string
	Shape *Shape
	// Raw holds the unparsed payloads attached to the field; Parsed is
	// filled by the directive parser, Directives by the validator.
	Raw        []RawDirective
	Parsed     []ParsedDirective
	Directives DirectiveSet
}

// Variant is one member of an enum group. Bound overrides are never legal at
// variant scope; the Directives record therefore only ever stays empty.
type Variant struct {
	Name       string
	Fields     []Field
	Raw        []RawDirective
	Parsed     []ParsedDirective
	Directives DirectiveSet
}

// TypeDefinition is one annotated definition, derived once per generation
// pass and treated as immutable after the validator normalizes it.
type TypeDefinition struct {
	Kind    DefKind
	Name    string
	PkgName string
	PkgPath string
	Params  []Param

	// Fields is set for StructDef, Variants for EnumDef.
	Fields   []Field
	Variants []Variant

	Raw        []RawDirective
	Parsed     []ParsedDirective
	Directives DirectiveSet
}

// AllFields visits every field of the definition in declaration order:
// struct fields directly, enum fields variant by variant.
func (d *TypeDefinition) AllFields(visit func(f *Field)) {
	if d.Kind == StructDef {
		for i := range d.Fields {
			visit(&d.Fields[i])
		}
		return
	}
	for i := range d.Variants {
		for j := range d.Variants[i].Fields {
			visit(&d.Variants[i].Fields[j])
		}
	}
}

// OwnerString names the scope the way diagnostics spell it, e.g.
// "struct field" or "enum variant".
func (d *TypeDefinition) OwnerString(scope ScopeKind) string {
	switch scope {
	case ScopeType:
		return d.Kind.String()
	case ScopeVariant:
		return "enum variant"
	default:
		return d.Kind.String() + " field"
	}
}

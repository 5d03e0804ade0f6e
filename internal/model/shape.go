package model

import "strings"

// ShapeKind is the coarse category of a field type shape. Shapes are built
// from syntax only; nothing here is type-checked.
type ShapeKind int

const (
	// ShapeParam references a generic parameter of the definition by name.
	ShapeParam ShapeKind = iota
	// ShapeNamed is a named type, optionally package-qualified and
	// optionally instantiated with type arguments.
	ShapeNamed
	ShapePointer
	ShapeSlice
	ShapeArray
	ShapeMap
	// ShapeProjection is a member type reached through another shape,
	// written T.Value in definition sources. The projected value is never
	// rendered directly, so parameters underneath stay unconstrained.
	ShapeProjection
	// ShapeOpaque covers type expressions the loader does not model
	// (inline interfaces, funcs, channels). Parameters never hide in an
	// opaque shape as far as inference is concerned.
	ShapeOpaque
)

// Shape is one node of an immutable type-shape tree.
type Shape struct {
	Kind ShapeKind
	// Name holds the parameter name (ShapeParam), the base type name
	// (ShapeNamed) or the member name (ShapeProjection).
	Name string
	// Pkg qualifies a ShapeNamed base type, empty for local names.
	Pkg  string
	Args []*Shape // ShapeNamed type arguments
	Key  *Shape   // ShapeMap key
	Elem *Shape   // pointer/slice/array/map element, projection base
}

// phantom marker base names recognized by inference. Phantom is the
// gendebug runtime marker; PhantomData matches imported definitions.
var phantomNames = map[string]bool{
	"Phantom":     true,
	"PhantomData": true,
}

// IsPhantom reports whether the shape is a phantom marker instantiation,
// regardless of how its base name is qualified.
func (s *Shape) IsPhantom() bool {
	return s != nil && s.Kind == ShapeNamed && phantomNames[s.Name]
}

// String returns the canonical spelling of the shape. Two fields share a
// bound-override slot exactly when their shapes render identically.
func (s *Shape) String() string {
	if s == nil {
		return ""
	}
	switch s.Kind {
	case ShapeParam:
		return s.Name
	case ShapeNamed:
		var b strings.Builder
		if s.Pkg != "" {
			b.WriteString(s.Pkg)
			b.WriteString(".")
		}
		b.WriteString(s.Name)
		if len(s.Args) > 0 {
			b.WriteString("[")
			for i, a := range s.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(a.String())
			}
			b.WriteString("]")
		}
		return b.String()
	case ShapePointer:
		return "*" + s.Elem.String()
	case ShapeSlice:
		return "[]" + s.Elem.String()
	case ShapeArray:
		return "[...]" + s.Elem.String()
	case ShapeMap:
		return "map[" + s.Key.String() + "]" + s.Elem.String()
	case ShapeProjection:
		return s.Elem.String() + "." + s.Name
	default:
		return "<opaque>"
	}
}

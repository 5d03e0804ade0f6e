// Package gendebug is the runtime support package for code generated by the
// gen-debug tool. Generated DebugString functions constrain their type
// parameters with [Debuggable] and render field values through [Value].
package gendebug

import "fmt"

// Debuggable is the constraint placed on generic type parameters whose values
// are rendered by a generated DebugString function.
type Debuggable interface {
	DebugString() string
}

// Phantom is a zero-size marker that mentions a type parameter without ever
// holding a value of it. The generator recognizes Phantom fields and leaves
// the marked parameter unconstrained.
type Phantom[T any] struct{}

// DebugString renders the marker itself, never a T value.
func (Phantom[T]) DebugString() string { return "Phantom" }

// Value renders a single field value. Types implementing Debuggable render
// through their own DebugString; everything else falls back to %v.
func Value(v any) string {
	if d, ok := v.(interface{ DebugString() string }); ok {
		return d.DebugString()
	}
	return fmt.Sprintf("%v", v)
}

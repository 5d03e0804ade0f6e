// Package loadergroup exercises grouped type declarations.
package loadergroup

//debug:bound = "T gendebug.Debuggable"
type (
	First[T any] struct {
		Value T
	}

	Second[T any] struct {
		Value T
	}
)

//debug:bound = "U gendebug.Debuggable"
type (
	Only[U any] struct {
		Value U
	}
)

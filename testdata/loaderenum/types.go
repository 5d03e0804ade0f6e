// Package loaderenum exercises sealed-interface enum loading.
package loaderenum

//debug:bound = "T gendebug.Debuggable"
type Shape[T any] interface {
	isShape()
}

type Circle[T any] struct {
	//debug:"%.2f"
	Radius T
}

func (Circle[T]) isShape() {}

//debug:
type Origin[T any] struct{}

func (Origin[T]) isShape() {}

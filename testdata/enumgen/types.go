// Package enumgen exercises end-to-end enum generation.
package enumgen

type Result[T any] interface {
	isResult()
}

type Ok[T any] struct {
	//debug:"<%v>"
	Value T
}

func (Ok[T]) isResult() {}

type Empty[T any] struct{}

func (Empty[T]) isResult() {}

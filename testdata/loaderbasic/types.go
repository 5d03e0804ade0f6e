// Package loaderbasic exercises struct loading and shape building.
package loaderbasic

import (
	gendebug "github.com/seitarof/gen-debug"
)

//debug:bound = "T gendebug.Debuggable"
type Overridden[T any] struct {
	Value T
}

type Wrapper[T any, U any] struct {
	//debug:"0b%08b"
	Bits   uint32
	Value  T
	Marker gendebug.Phantom[U]
	Items  []T
	Index  map[string]*T
}

type NotAnnotated struct {
	Name string
}

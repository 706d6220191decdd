// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package returns holds the fixed-arity containers used when an engine call
// is declared to yield more than one value.
//
// A call declared with N results (2 <= N <= 9) produces a raw array of N
// values. New picks the container type registered for N and wraps the array:
//
//	r, err := returns.New([]any{"alpha", 42.0, true})
//	if err != nil {
//	    return err
//	}
//	ret := r.(returns.Return3)
//	name := ret.First().(string)
//
// Accessors return the stored value as is. The caller states the type it
// expects with a type assertion; the container never checks it.
package returns

// Arity bounds for result containers.
const (
	MinArity = 2
	MaxArity = 9
)

// Returns is implemented by Return2 through Return9.
type Returns interface {
	// Len returns the number of values held, equal to the container's arity.
	Len() int

	// Get returns the value at position i.
	Get(i int) any

	values() []any
}

// base owns the value array shared by every container. The array is never
// written after construction.
type base struct {
	vals []any
}

func (b base) Len() int      { return len(b.vals) }
func (b base) Get(i int) any { return b.vals[i] }
func (b base) values() []any { return b.vals }

// Values returns a copy of the values held by r, in order.
func Values(r Returns) []any {
	out := make([]any, len(r.values()))
	copy(out, r.values())
	return out
}

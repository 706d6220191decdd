// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package returns

import "fmt"

// New wraps values in the container whose arity equals len(values).
// It fails with *InvalidArityError when no such container exists.
func New(values []any) (Returns, error) {
	return Default().Create(values)
}

// FromDeclared is New for a call declared to return declared values.
// A values array of any other length fails; it is never truncated or padded.
func FromDeclared(values []any, declared int) (Returns, error) {
	if len(values) != declared {
		return nil, &InvalidArityError{Arity: len(values), Declared: declared}
	}
	return New(values)
}

// FromResult is FromDeclared for a raw call result, which must be a value
// array.
func FromResult(result any, declared int) (Returns, error) {
	values, ok := result.([]any)
	if !ok {
		arity := 1
		if result == nil {
			arity = 0
		}
		return nil, &InvalidArityError{
			Arity:    arity,
			Declared: declared,
			Err:      fmt.Errorf("result of type %T is not a value array", result),
		}
	}
	return FromDeclared(values, declared)
}

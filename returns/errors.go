// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package returns

import (
	"errors"
	"fmt"
)

// ErrInvalidArity is matched by every *InvalidArityError.
var ErrInvalidArity = errors.New("returns: invalid arity")

// InvalidArityError reports that no container could be built for a value
// array. It always points at a broken caller contract or an incomplete
// container table.
type InvalidArityError struct {
	// Arity is the number of values that were supplied.
	Arity int

	// Declared is the number of results the call was declared with.
	// Zero when the caller did not declare one.
	Declared int

	// Err is the construction failure, if any.
	Err error
}

func (e *InvalidArityError) Error() string {
	msg := fmt.Sprintf("returns: cannot create a container with length %d", e.Arity)
	if e.Declared != 0 && e.Declared != e.Arity {
		msg += fmt.Sprintf(" (declared %d)", e.Declared)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the construction failure, if any.
func (e *InvalidArityError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidArity.
func (e *InvalidArityError) Is(target error) bool {
	return target == ErrInvalidArity
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package enginerpc

import (
	"errors"
	"fmt"
)

var (
	// ErrInvocation is matched by every *InvocationFailure.
	ErrInvocation = errors.New("engine invocation failed")

	// ErrUnknownMethod is returned by servers for methods with no handler.
	ErrUnknownMethod = errors.New("unknown method")

	// ErrUnknownTransport is returned by Dial and Listen for transport
	// names that are not registered.
	ErrUnknownTransport = errors.New("unknown transport")

	// ErrNotSupported is returned by servers that cannot register typed
	// service handlers.
	ErrNotSupported = errors.New("not supported by transport")
)

// InvocationFailure reports that an engine operation failed. Err is the
// error raised on the engine side, or the transport error that kept the
// call from reaching it.
type InvocationFailure struct {
	Op  string
	Err error
}

func (e *InvocationFailure) Error() string {
	return fmt.Sprintf("engine %s: %v", e.Op, e.Err)
}

func (e *InvocationFailure) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvocation.
func (e *InvocationFailure) Is(target error) bool {
	return target == ErrInvocation
}

// RemoteError is an error returned by the handler on the far side of a
// call. Message is the handler's error text, unchanged.
type RemoteError struct {
	Method  string
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

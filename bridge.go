// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package enginerpc

import "context"

// Bridge is the call surface of a numerical engine. Implementations live
// inside the engine process; RemoteEngine implements it from the outside.
//
// Values are opaque: they are handed to the engine as given and returned as
// the engine produced them.
type Bridge interface {
	// SetVariable assigns value to the engine variable name.
	SetVariable(ctx context.Context, name string, value any) error

	// GetVariable returns the value of the engine variable name.
	GetVariable(ctx context.Context, name string) (any, error)

	// Eval evaluates command, discarding any result.
	Eval(ctx context.Context, command string) error

	// Feval calls the function command with args, discarding any result.
	Feval(ctx context.Context, command string, args []any) error

	// ReturningEval evaluates command and returns returnCount results.
	// More than one result is returned as a []any.
	ReturningEval(ctx context.Context, command string, returnCount int) (any, error)

	// ReturningFeval calls the function command with args and returns its
	// single result.
	ReturningFeval(ctx context.Context, command string, args []any) (any, error)

	// ReturningFevalN calls the function command with args and returns
	// returnCount results. More than one result is returned as a []any.
	ReturningFevalN(ctx context.Context, command string, args []any, returnCount int) (any, error)

	// StoreObject keeps value inside the engine and returns the handle the
	// engine knows it by. Values not kept permanently may be released once
	// the engine has read them.
	StoreObject(ctx context.Context, value any, keepPermanently bool) (string, error)

	// Exit shuts the engine down.
	Exit(ctx context.Context) error
}

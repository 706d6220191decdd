// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package enginerpc

import (
	"context"

	"github.com/luxfi/enginerpc/returns"
)

// FevalReturns calls the function command, declared to return n values
// (2 <= n <= 9), and wraps the results in the matching container.
func FevalReturns(ctx context.Context, b Bridge, command string, args []any, n int) (returns.Returns, error) {
	v, err := b.ReturningFevalN(ctx, command, args, n)
	if err != nil {
		return nil, err
	}
	return returns.FromResult(v, n)
}

// EvalReturns evaluates command, declared to return n values, and wraps the
// results in the matching container.
func EvalReturns(ctx context.Context, b Bridge, command string, n int) (returns.Returns, error) {
	v, err := b.ReturningEval(ctx, command, n)
	if err != nil {
		return nil, err
	}
	return returns.FromResult(v, n)
}

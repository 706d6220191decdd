// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package enginetest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/enginerpc"
	"github.com/luxfi/enginerpc/enginetest"
)

var _ enginerpc.Bridge = (*enginetest.Engine)(nil)

func TestVariables(t *testing.T) {
	ctx := context.Background()
	e := enginetest.New()

	require.NoError(t, e.SetVariable(ctx, "x", 1.5))
	v, err := e.GetVariable(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)

	_, err = e.GetVariable(ctx, "y")
	assert.EqualError(t, err, "Undefined function or variable 'y'.")
}

func TestOutputCounts(t *testing.T) {
	ctx := context.Background()
	e := enginetest.New()
	e.Define("minmax", func(args []any) ([]any, error) {
		return []any{1.0, 9.0}, nil
	})

	v, err := e.ReturningFeval(ctx, "minmax", nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	v, err = e.ReturningFevalN(ctx, "minmax", nil, 2)
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 9.0}, v)

	_, err = e.ReturningEval(ctx, "minmax", 3)
	assert.EqualError(t, err, "Error using minmax: Too many output arguments.")

	require.NoError(t, e.Eval(ctx, "minmax"))
	assert.Equal(t, []string{"minmax", "minmax", "minmax", "minmax"}, e.Evaluated())
}

func TestStoreObject(t *testing.T) {
	ctx := context.Background()
	e := enginetest.New()

	h1, err := e.StoreObject(ctx, "a", false)
	require.NoError(t, err)
	h2, err := e.StoreObject(ctx, "b", true)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)

	v, permanent, ok := e.Object(h2)
	require.True(t, ok)
	assert.Equal(t, "b", v)
	assert.True(t, permanent)

	_, _, ok = e.Object("missing")
	assert.False(t, ok)
}

func TestExit(t *testing.T) {
	ctx := context.Background()
	e := enginetest.New()

	require.NoError(t, e.Exit(ctx))
	assert.True(t, e.Exited())
	assert.ErrorIs(t, e.SetVariable(ctx, "x", 1), enginetest.ErrExited)
	assert.ErrorIs(t, e.Eval(ctx, "x"), enginetest.ErrExited)
	assert.ErrorIs(t, e.Exit(ctx), enginetest.ErrExited)
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package enginerpc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/enginerpc/enginetest"
)

type mockBridge struct {
	mock.Mock
}

func (m *mockBridge) SetVariable(ctx context.Context, name string, value any) error {
	return m.Called(ctx, name, value).Error(0)
}

func (m *mockBridge) GetVariable(ctx context.Context, name string) (any, error) {
	args := m.Called(ctx, name)
	return args.Get(0), args.Error(1)
}

func (m *mockBridge) Eval(ctx context.Context, command string) error {
	return m.Called(ctx, command).Error(0)
}

func (m *mockBridge) Feval(ctx context.Context, command string, args []any) error {
	return m.Called(ctx, command, args).Error(0)
}

func (m *mockBridge) ReturningEval(ctx context.Context, command string, returnCount int) (any, error) {
	args := m.Called(ctx, command, returnCount)
	return args.Get(0), args.Error(1)
}

func (m *mockBridge) ReturningFeval(ctx context.Context, command string, fargs []any) (any, error) {
	args := m.Called(ctx, command, fargs)
	return args.Get(0), args.Error(1)
}

func (m *mockBridge) ReturningFevalN(ctx context.Context, command string, fargs []any, returnCount int) (any, error) {
	args := m.Called(ctx, command, fargs, returnCount)
	return args.Get(0), args.Error(1)
}

func (m *mockBridge) StoreObject(ctx context.Context, value any, keepPermanently bool) (string, error) {
	args := m.Called(ctx, value, keepPermanently)
	return args.String(0), args.Error(1)
}

func (m *mockBridge) Exit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// failingBridge returns a bridge whose every operation fails with err.
func failingBridge(err error) *mockBridge {
	m := &mockBridge{}
	a := mock.Anything
	m.On("SetVariable", a, a, a).Return(err)
	m.On("GetVariable", a, a).Return(nil, err)
	m.On("Eval", a, a).Return(err)
	m.On("Feval", a, a, a).Return(err)
	m.On("ReturningEval", a, a, a).Return(nil, err)
	m.On("ReturningFeval", a, a, a).Return(nil, err)
	m.On("ReturningFevalN", a, a, a, a).Return(nil, err)
	m.On("StoreObject", a, a, a).Return("", err)
	m.On("Exit", a).Return(err)
	return m
}

// bridgeOps calls every Bridge operation on b and reports the errors by
// operation name.
func bridgeOps(ctx context.Context, b Bridge) map[string]error {
	errs := make(map[string]error)
	errs["setVariable"] = b.SetVariable(ctx, "x", 1.0)
	_, errs["getVariable"] = b.GetVariable(ctx, "x")
	errs["eval"] = b.Eval(ctx, "disp(x)")
	errs["feval"] = b.Feval(ctx, "disp", []any{"x"})
	_, errs["returningEval"] = b.ReturningEval(ctx, "size(x)", 2)
	_, errs["returningFeval"] = b.ReturningFeval(ctx, "sqrt", []any{4.0})
	_, errs["returningFevalN"] = b.ReturningFevalN(ctx, "size", []any{"x"}, 2)
	_, errs["storeObject"] = b.StoreObject(ctx, "payload", true)
	errs["exit"] = b.Exit(ctx)
	return errs
}

func TestProxyPropagatesErrorsUnchanged(t *testing.T) {
	cause := errors.New("Error: Unbalanced or unexpected parenthesis or bracket.")
	bridge := failingBridge(cause)
	proxy := NewProxy(bridge)
	ctx := context.Background()

	errs := bridgeOps(ctx, proxy)
	require.Len(t, errs, 9)
	for op, err := range errs {
		assert.Same(t, cause, err, op)
	}
	assert.NoError(t, proxy.CheckConnection(ctx))
	bridge.AssertExpectations(t)
}

func TestProxyForwardsArguments(t *testing.T) {
	ctx := context.Background()
	bridge := &mockBridge{}
	bridge.On("ReturningFevalN", ctx, "size", []any{"m"}, 3).Return([]any{1.0, 2.0, 3.0}, nil).Once()
	bridge.On("StoreObject", ctx, "blob", false).Return("h1", nil).Once()

	proxy := NewProxy(bridge)
	v, err := proxy.ReturningFevalN(ctx, "size", []any{"m"}, 3)
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0, 3.0}, v)

	h, err := proxy.StoreObject(ctx, "blob", false)
	require.NoError(t, err)
	assert.Equal(t, "h1", h)
	bridge.AssertExpectations(t)
}

func TestProxySetThenGet(t *testing.T) {
	ctx := context.Background()
	proxy := NewProxy(enginetest.New())

	values := map[string]any{
		"s": "alpha",
		"n": 42,
		"b": true,
		"m": []any{1.0, 2.0},
	}
	for name, v := range values {
		require.NoError(t, proxy.SetVariable(ctx, name, v))
	}
	for name, want := range values {
		got, err := proxy.GetVariable(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestProxyConcurrentCallers(t *testing.T) {
	proxy := NewProxy(enginetest.New())

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < 32; i++ {
		g.Go(func() error {
			name := fmt.Sprintf("v%d", i)
			if err := proxy.SetVariable(ctx, name, i); err != nil {
				return err
			}
			got, err := proxy.GetVariable(ctx, name)
			if err != nil {
				return err
			}
			if got != i {
				return fmt.Errorf("%s = %v, want %d", name, got, i)
			}
			return proxy.CheckConnection(ctx)
		})
	}
	require.NoError(t, g.Wait())
}

func TestHandlersCoverEveryMethod(t *testing.T) {
	handlers := NewProxy(enginetest.New()).Handlers(nil)
	for _, method := range []string{
		MethodSetVariable, MethodGetVariable, MethodEval, MethodFeval,
		MethodReturningEval, MethodReturningFeval, MethodStoreObject,
		MethodExit, MethodCheckConnection,
	} {
		assert.Contains(t, handlers, method)
	}
	assert.Len(t, handlers, 9)
}

func TestHandlerRejectsMalformedArgs(t *testing.T) {
	handlers := NewProxy(enginetest.New()).Handlers(JSONCodec{})
	_, err := handlers[MethodSetVariable](context.Background(), []byte("{not json"))
	assert.ErrorContains(t, err, "Engine.SetVariable: decode args")
}

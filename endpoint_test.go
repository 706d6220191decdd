// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package enginerpc

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/enginerpc/enginetest"
	"github.com/luxfi/enginerpc/returns"
)

var transportNames = []string{TransportZAP, TransportGRPC, TransportJSON}

// startEndpoint serves bridge over transport and returns a connected
// RemoteEngine.
func startEndpoint(t *testing.T, transport string, bridge Bridge) *RemoteEngine {
	t.Helper()
	ep, err := NewEndpoint("127.0.0.1:0", bridge, WithServerTransport(transport))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ep.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		ep.Close()
		<-done
	})

	engine, err := DialEngine(context.Background(), ep.Addr(), WithTransport(transport))
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })

	require.Eventually(t, func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return engine.CheckConnection(ctx) == nil
	}, 5*time.Second, 10*time.Millisecond)
	return engine
}

func newTestEngine() *enginetest.Engine {
	e := enginetest.New()
	e.Define("size", func(args []any) ([]any, error) {
		return []any{2.0, 3.0, "double"}, nil
	})
	e.Define("twice", func(args []any) ([]any, error) {
		if len(args) != 1 {
			return nil, errors.New("Error using twice: Not enough input arguments.")
		}
		x, ok := args[0].(float64)
		if !ok {
			return nil, errors.New("Error using twice: Input must be numeric.")
		}
		return []any{2 * x}, nil
	})
	e.Define("clc", func([]any) ([]any, error) { return nil, nil })
	e.Define("many", func([]any) ([]any, error) {
		return []any{1.0, 2.0, 3.0, 4.0, 5.0, 6.0, 7.0, 8.0, 9.0, 10.0}, nil
	})
	return e
}

func TestEndpointSetGetVariable(t *testing.T) {
	for _, transport := range transportNames {
		t.Run(transport, func(t *testing.T) {
			ctx := context.Background()
			engine := startEndpoint(t, transport, newTestEngine())

			require.NoError(t, engine.SetVariable(ctx, "name", "alpha"))
			require.NoError(t, engine.SetVariable(ctx, "n", 42.0))

			v, err := engine.GetVariable(ctx, "name")
			require.NoError(t, err)
			assert.Equal(t, "alpha", v)

			v, err = engine.GetVariable(ctx, "n")
			require.NoError(t, err)
			assert.Equal(t, 42.0, v)
		})
	}
}

func TestEndpointEngineFailure(t *testing.T) {
	for _, transport := range transportNames {
		t.Run(transport, func(t *testing.T) {
			ctx := context.Background()
			engine := startEndpoint(t, transport, newTestEngine())

			err := engine.Eval(ctx, "nope")
			require.ErrorIs(t, err, ErrInvocation)

			var failure *InvocationFailure
			require.ErrorAs(t, err, &failure)
			assert.Equal(t, "eval", failure.Op)

			var remote *RemoteError
			require.ErrorAs(t, err, &remote)
			assert.Equal(t, MethodEval, remote.Method)
			assert.Equal(t, "Undefined function or variable 'nope'.", remote.Message)

			_, err = engine.ReturningFeval(ctx, "twice", []any{"text"})
			require.ErrorAs(t, err, &remote)
			assert.Equal(t, "Error using twice: Input must be numeric.", remote.Message)
		})
	}
}

func TestEndpointCalls(t *testing.T) {
	for _, transport := range transportNames {
		t.Run(transport, func(t *testing.T) {
			ctx := context.Background()
			bridge := newTestEngine()
			engine := startEndpoint(t, transport, bridge)

			require.NoError(t, engine.Eval(ctx, "clc"))
			require.NoError(t, engine.Feval(ctx, "twice", []any{1.0}))

			v, err := engine.ReturningFeval(ctx, "twice", []any{21.0})
			require.NoError(t, err)
			assert.Equal(t, 42.0, v)

			v, err = engine.ReturningEval(ctx, "size", 2)
			require.NoError(t, err)
			assert.Equal(t, []any{2.0, 3.0}, v)

			v, err = engine.ReturningFevalN(ctx, "size", []any{"m"}, 1)
			require.NoError(t, err)
			assert.Equal(t, 2.0, v)

			assert.Equal(t, []string{"clc", "twice", "twice", "size", "size"}, bridge.Evaluated())
		})
	}
}

func TestEndpointStoreObject(t *testing.T) {
	for _, transport := range transportNames {
		t.Run(transport, func(t *testing.T) {
			ctx := context.Background()
			bridge := newTestEngine()
			engine := startEndpoint(t, transport, bridge)

			handle, err := engine.StoreObject(ctx, "payload", true)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(handle, "obj_"), handle)

			v, permanent, ok := bridge.Object(handle)
			require.True(t, ok)
			assert.Equal(t, "payload", v)
			assert.True(t, permanent)
		})
	}
}

func TestEndpointMultipleReturns(t *testing.T) {
	for _, transport := range transportNames {
		t.Run(transport, func(t *testing.T) {
			ctx := context.Background()
			engine := startEndpoint(t, transport, newTestEngine())

			r, err := FevalReturns(ctx, engine, "size", []any{"m"}, 3)
			require.NoError(t, err)
			ret, ok := r.(returns.Return3)
			require.True(t, ok, "got %T", r)
			assert.Equal(t, 2.0, ret.First())
			assert.Equal(t, 3.0, ret.Second())
			assert.Equal(t, "double", ret.Third())

			r, err = EvalReturns(ctx, engine, "size", 2)
			require.NoError(t, err)
			assert.IsType(t, returns.Return2{}, r)

			_, err = FevalReturns(ctx, engine, "many", nil, 10)
			var arityErr *returns.InvalidArityError
			require.ErrorAs(t, err, &arityErr)
			assert.Equal(t, 10, arityErr.Arity)
		})
	}
}

func TestEndpointExit(t *testing.T) {
	for _, transport := range transportNames {
		t.Run(transport, func(t *testing.T) {
			ctx := context.Background()
			bridge := newTestEngine()
			engine := startEndpoint(t, transport, bridge)

			require.NoError(t, engine.Exit(ctx))
			assert.True(t, bridge.Exited())

			err := engine.SetVariable(ctx, "x", 1.0)
			var remote *RemoteError
			require.ErrorAs(t, err, &remote)
			assert.Equal(t, enginetest.ErrExited.Error(), remote.Message)

			// The endpoint itself is still reachable.
			assert.NoError(t, engine.CheckConnection(ctx))
		})
	}
}

func TestEndpointFailingBridge(t *testing.T) {
	for _, transport := range transportNames {
		t.Run(transport, func(t *testing.T) {
			ctx := context.Background()
			cause := errors.New("Error: engine is busy")
			engine := startEndpoint(t, transport, failingBridge(cause))

			for op, err := range bridgeOps(ctx, engine) {
				var failure *InvocationFailure
				require.ErrorAs(t, err, &failure, op)
				assert.Equal(t, cause.Error(), failure.Err.Error(), op)
			}
			assert.NoError(t, engine.CheckConnection(ctx))
		})
	}
}

func TestNewEndpointListenFailure(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	_, err = NewEndpoint(l.Addr().String(), newTestEngine())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine endpoint")
}

func TestRemoteEngineUnreachable(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	l.Close()

	_, err = DialEngine(context.Background(), addr)
	require.Error(t, err)
}

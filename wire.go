// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package enginerpc

import (
	"context"
	"fmt"
)

// Engine methods as named on the wire.
const (
	MethodSetVariable     = "Engine.SetVariable"
	MethodGetVariable     = "Engine.GetVariable"
	MethodEval            = "Engine.Eval"
	MethodFeval           = "Engine.Feval"
	MethodReturningEval   = "Engine.ReturningEval"
	MethodReturningFeval  = "Engine.ReturningFeval"
	MethodStoreObject     = "Engine.StoreObject"
	MethodExit            = "Engine.Exit"
	MethodCheckConnection = "Engine.CheckConnection"
)

// SetVariableArgs are the arguments of Engine.SetVariable.
type SetVariableArgs struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// GetVariableArgs are the arguments of Engine.GetVariable.
type GetVariableArgs struct {
	Name string `json:"name"`
}

// CommandArgs are the arguments of Engine.Eval, Engine.Feval,
// Engine.ReturningEval and Engine.ReturningFeval. ReturnCount is nil when
// the caller expects a single value.
type CommandArgs struct {
	Command     string `json:"command"`
	Args        []any  `json:"args,omitempty"`
	ReturnCount *int   `json:"returnCount,omitempty"`
}

// StoreObjectArgs are the arguments of Engine.StoreObject.
type StoreObjectArgs struct {
	Value           any  `json:"value"`
	KeepPermanently bool `json:"keepPermanently"`
}

// ValueReply carries a single engine value.
type ValueReply struct {
	Value any `json:"value"`
}

// HandleReply carries the handle of a stored object.
type HandleReply struct {
	Handle string `json:"handle"`
}

// Empty is the reply of operations with no result.
type Empty struct{}

// handle adapts a typed operation to a RawHandler.
func handle[A, R any](codec Codec, method string, fn func(context.Context, A) (R, error)) RawHandler {
	return func(ctx context.Context, payload []byte) ([]byte, error) {
		var args A
		if len(payload) > 0 {
			if err := codec.Decode(payload, &args); err != nil {
				return nil, fmt.Errorf("%s: decode args: %w", method, err)
			}
		}
		reply, err := fn(ctx, args)
		if err != nil {
			return nil, err
		}
		return codec.Encode(reply)
	}
}

// Handlers returns the proxy's operations as raw handlers keyed by wire
// method name, decoding arguments and encoding replies with codec.
func (p *Proxy) Handlers(codec Codec) map[string]RawHandler {
	if codec == nil {
		codec = defaultCodec
	}
	return map[string]RawHandler{
		MethodSetVariable: handle(codec, MethodSetVariable, func(ctx context.Context, a SetVariableArgs) (Empty, error) {
			return Empty{}, p.SetVariable(ctx, a.Name, a.Value)
		}),
		MethodGetVariable: handle(codec, MethodGetVariable, func(ctx context.Context, a GetVariableArgs) (ValueReply, error) {
			v, err := p.GetVariable(ctx, a.Name)
			return ValueReply{Value: v}, err
		}),
		MethodEval: handle(codec, MethodEval, func(ctx context.Context, a CommandArgs) (Empty, error) {
			return Empty{}, p.Eval(ctx, a.Command)
		}),
		MethodFeval: handle(codec, MethodFeval, func(ctx context.Context, a CommandArgs) (Empty, error) {
			return Empty{}, p.Feval(ctx, a.Command, a.Args)
		}),
		MethodReturningEval: handle(codec, MethodReturningEval, func(ctx context.Context, a CommandArgs) (ValueReply, error) {
			n := 1
			if a.ReturnCount != nil {
				n = *a.ReturnCount
			}
			v, err := p.ReturningEval(ctx, a.Command, n)
			return ValueReply{Value: v}, err
		}),
		MethodReturningFeval: handle(codec, MethodReturningFeval, func(ctx context.Context, a CommandArgs) (ValueReply, error) {
			var (
				v   any
				err error
			)
			if a.ReturnCount == nil {
				v, err = p.ReturningFeval(ctx, a.Command, a.Args)
			} else {
				v, err = p.ReturningFevalN(ctx, a.Command, a.Args, *a.ReturnCount)
			}
			return ValueReply{Value: v}, err
		}),
		MethodStoreObject: handle(codec, MethodStoreObject, func(ctx context.Context, a StoreObjectArgs) (HandleReply, error) {
			h, err := p.StoreObject(ctx, a.Value, a.KeepPermanently)
			return HandleReply{Handle: h}, err
		}),
		MethodExit: handle(codec, MethodExit, func(ctx context.Context, _ Empty) (Empty, error) {
			return Empty{}, p.Exit(ctx)
		}),
		MethodCheckConnection: handle(codec, MethodCheckConnection, func(ctx context.Context, _ Empty) (Empty, error) {
			return Empty{}, p.CheckConnection(ctx)
		}),
	}
}

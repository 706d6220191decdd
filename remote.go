// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package enginerpc

import "context"

// RemoteEngine is a Bridge that reaches an Endpoint through a Client.
// Every failure, whether raised by the engine or by the transport, is
// returned as an *InvocationFailure.
type RemoteEngine struct {
	client Client
}

// NewRemoteEngine returns a bridge calling through client.
func NewRemoteEngine(client Client) *RemoteEngine {
	return &RemoteEngine{client: client}
}

// DialEngine connects to the endpoint at addr.
func DialEngine(ctx context.Context, addr string, opts ...DialOption) (*RemoteEngine, error) {
	client, err := Dial(ctx, addr, opts...)
	if err != nil {
		return nil, err
	}
	return NewRemoteEngine(client), nil
}

func (e *RemoteEngine) call(ctx context.Context, op, method string, args, reply interface{}) error {
	if err := e.client.Call(ctx, method, args, reply); err != nil {
		return &InvocationFailure{Op: op, Err: err}
	}
	return nil
}

func (e *RemoteEngine) SetVariable(ctx context.Context, name string, value any) error {
	return e.call(ctx, "setVariable", MethodSetVariable, SetVariableArgs{Name: name, Value: value}, nil)
}

func (e *RemoteEngine) GetVariable(ctx context.Context, name string) (any, error) {
	var reply ValueReply
	if err := e.call(ctx, "getVariable", MethodGetVariable, GetVariableArgs{Name: name}, &reply); err != nil {
		return nil, err
	}
	return reply.Value, nil
}

func (e *RemoteEngine) Eval(ctx context.Context, command string) error {
	return e.call(ctx, "eval", MethodEval, CommandArgs{Command: command}, nil)
}

func (e *RemoteEngine) Feval(ctx context.Context, command string, args []any) error {
	return e.call(ctx, "feval", MethodFeval, CommandArgs{Command: command, Args: args}, nil)
}

func (e *RemoteEngine) ReturningEval(ctx context.Context, command string, returnCount int) (any, error) {
	var reply ValueReply
	args := CommandArgs{Command: command, ReturnCount: &returnCount}
	if err := e.call(ctx, "returningEval", MethodReturningEval, args, &reply); err != nil {
		return nil, err
	}
	return reply.Value, nil
}

func (e *RemoteEngine) ReturningFeval(ctx context.Context, command string, args []any) (any, error) {
	var reply ValueReply
	if err := e.call(ctx, "returningFeval", MethodReturningFeval, CommandArgs{Command: command, Args: args}, &reply); err != nil {
		return nil, err
	}
	return reply.Value, nil
}

func (e *RemoteEngine) ReturningFevalN(ctx context.Context, command string, args []any, returnCount int) (any, error) {
	var reply ValueReply
	req := CommandArgs{Command: command, Args: args, ReturnCount: &returnCount}
	if err := e.call(ctx, "returningFeval", MethodReturningFeval, req, &reply); err != nil {
		return nil, err
	}
	return reply.Value, nil
}

func (e *RemoteEngine) StoreObject(ctx context.Context, value any, keepPermanently bool) (string, error) {
	var reply HandleReply
	args := StoreObjectArgs{Value: value, KeepPermanently: keepPermanently}
	if err := e.call(ctx, "storeObject", MethodStoreObject, args, &reply); err != nil {
		return "", err
	}
	return reply.Handle, nil
}

func (e *RemoteEngine) Exit(ctx context.Context) error {
	return e.call(ctx, "exit", MethodExit, Empty{}, nil)
}

// CheckConnection returns nil if the endpoint answers.
func (e *RemoteEngine) CheckConnection(ctx context.Context) error {
	return e.call(ctx, "checkConnection", MethodCheckConnection, Empty{}, nil)
}

// Close closes the underlying client.
func (e *RemoteEngine) Close() error {
	return e.client.Close()
}

var _ Bridge = (*RemoteEngine)(nil)

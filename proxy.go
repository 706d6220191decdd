// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package enginerpc

import "context"

// Proxy forwards every operation to a Bridge. It holds nothing but the
// bridge, so it is safe for concurrent use whenever the bridge is. Errors
// from the bridge are returned unchanged.
type Proxy struct {
	bridge Bridge
}

// NewProxy returns a proxy forwarding to bridge.
func NewProxy(bridge Bridge) *Proxy {
	return &Proxy{bridge: bridge}
}

func (p *Proxy) SetVariable(ctx context.Context, name string, value any) error {
	return p.bridge.SetVariable(ctx, name, value)
}

func (p *Proxy) GetVariable(ctx context.Context, name string) (any, error) {
	return p.bridge.GetVariable(ctx, name)
}

func (p *Proxy) Eval(ctx context.Context, command string) error {
	return p.bridge.Eval(ctx, command)
}

func (p *Proxy) Feval(ctx context.Context, command string, args []any) error {
	return p.bridge.Feval(ctx, command, args)
}

func (p *Proxy) ReturningEval(ctx context.Context, command string, returnCount int) (any, error) {
	return p.bridge.ReturningEval(ctx, command, returnCount)
}

func (p *Proxy) ReturningFeval(ctx context.Context, command string, args []any) (any, error) {
	return p.bridge.ReturningFeval(ctx, command, args)
}

func (p *Proxy) ReturningFevalN(ctx context.Context, command string, args []any, returnCount int) (any, error) {
	return p.bridge.ReturningFevalN(ctx, command, args, returnCount)
}

func (p *Proxy) StoreObject(ctx context.Context, value any, keepPermanently bool) (string, error) {
	return p.bridge.StoreObject(ctx, value, keepPermanently)
}

func (p *Proxy) Exit(ctx context.Context) error {
	return p.bridge.Exit(ctx)
}

// CheckConnection does nothing. A caller that gets an answer knows the
// proxy is reachable.
func (p *Proxy) CheckConnection(ctx context.Context) error {
	return nil
}

var _ Bridge = (*Proxy)(nil)

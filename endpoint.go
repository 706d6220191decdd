// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package enginerpc

import (
	"context"
	"fmt"
)

// Endpoint exposes a Bridge to other processes. Create one per engine
// process, next to the bridge it serves.
type Endpoint struct {
	server Server
	proxy  *Proxy
}

// NewEndpoint listens on addr and registers a proxy for bridge on every
// engine method. The error, if any, comes from the transport.
func NewEndpoint(addr string, bridge Bridge, opts ...ServerOption) (*Endpoint, error) {
	o := newServerOptions(opts)
	server, err := Listen(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("engine endpoint: %w", err)
	}

	proxy := NewProxy(bridge)
	for method, h := range proxy.Handlers(o.codec) {
		if err := server.RegisterRaw(method, h); err != nil {
			server.Close()
			return nil, fmt.Errorf("engine endpoint: register %s: %w", method, err)
		}
	}
	return &Endpoint{server: server, proxy: proxy}, nil
}

// Serve answers calls until ctx is cancelled or the endpoint is closed.
func (e *Endpoint) Serve(ctx context.Context) error {
	return e.server.Serve(ctx)
}

// Addr returns the address callers dial.
func (e *Endpoint) Addr() string {
	return e.server.Addr()
}

// Close stops the endpoint.
func (e *Endpoint) Close() error {
	return e.server.Close()
}

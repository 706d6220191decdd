// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package enginerpc

import (
	"context"

	"go.uber.org/zap"
)

// Client is the protocol-agnostic RPC client interface.
// All application code should use this interface.
type Client interface {
	// Call makes a synchronous RPC call
	Call(ctx context.Context, method string, args, reply interface{}) error

	// CallRaw makes a call with raw bytes (for zero-copy scenarios)
	CallRaw(ctx context.Context, method string, payload []byte) ([]byte, error)

	// Notify sends a one-way message (no response expected)
	Notify(ctx context.Context, method string, args interface{}) error

	// Close closes the connection
	Close() error
}

// Server is the protocol-agnostic RPC server interface.
type Server interface {
	// Register registers a service handler
	Register(name string, handler interface{}) error

	// RegisterRaw registers a raw byte handler
	RegisterRaw(method string, handler RawHandler) error

	// Serve starts serving requests (blocks until context cancelled)
	Serve(ctx context.Context) error

	// Close stops the server
	Close() error

	// Addr returns the server's listen address
	Addr() string
}

// RawHandler handles raw byte RPC calls (for zero-copy)
type RawHandler func(ctx context.Context, payload []byte) ([]byte, error)

// Codec encodes/decodes RPC messages
type Codec interface {
	Encode(v interface{}) ([]byte, error)
	Decode(data []byte, v interface{}) error
}

// DialOption configures client connections
type DialOption func(*dialOptions)

type dialOptions struct {
	codec     Codec
	transport string // "zap", "grpc", "json"
	logger    *zap.Logger
	http      []Option
}

// WithCodec sets a custom codec
func WithCodec(c Codec) DialOption {
	return func(o *dialOptions) { o.codec = c }
}

// WithTransport explicitly sets the transport type
func WithTransport(t string) DialOption {
	return func(o *dialOptions) { o.transport = t }
}

// WithLogger sets the logger used by the client
func WithLogger(l *zap.Logger) DialOption {
	return func(o *dialOptions) { o.logger = l }
}

// WithHTTPOptions sets request options for the JSON-RPC transport
func WithHTTPOptions(opts ...Option) DialOption {
	return func(o *dialOptions) { o.http = append(o.http, opts...) }
}

// ServerOption configures servers
type ServerOption func(*serverOptions)

type serverOptions struct {
	codec     Codec
	transport string
	logger    *zap.Logger
}

// WithServerCodec sets a custom codec for the server
func WithServerCodec(c Codec) ServerOption {
	return func(o *serverOptions) { o.codec = c }
}

// WithServerTransport explicitly sets the transport type for the server
func WithServerTransport(t string) ServerOption {
	return func(o *serverOptions) { o.transport = t }
}

// WithServerLogger sets the logger used by the server
func WithServerLogger(l *zap.Logger) ServerOption {
	return func(o *serverOptions) { o.logger = l }
}

func newDialOptions(opts []DialOption) *dialOptions {
	o := &dialOptions{transport: DefaultTransport}
	for _, opt := range opts {
		opt(o)
	}
	if o.codec == nil {
		o.codec = defaultCodec
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	return o
}

func newServerOptions(opts []ServerOption) *serverOptions {
	o := &serverOptions{transport: DefaultTransport}
	for _, opt := range opts {
		opt(o)
	}
	if o.codec == nil {
		o.codec = defaultCodec
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	return o
}

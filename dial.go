// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package enginerpc

import (
	"context"
	"fmt"
	"net"
	"sync"

	"go.uber.org/zap"
)

// Dial connects to an RPC server using the default transport (ZAP).
// Use WithTransport to select another one.
func Dial(ctx context.Context, addr string, opts ...DialOption) (Client, error) {
	o := newDialOptions(opts)
	t, err := lookupTransport(o.transport)
	if err != nil {
		return nil, err
	}
	return t.dial(ctx, addr, o)
}

// Listen creates an RPC server listener using the default transport (ZAP).
func Listen(addr string, opts ...ServerOption) (Server, error) {
	o := newServerOptions(opts)
	t, err := lookupTransport(o.transport)
	if err != nil {
		return nil, err
	}
	return t.listen(addr, o)
}

// dialZAP creates a ZAP client
func dialZAP(ctx context.Context, addr string, o *dialOptions) (Client, error) {
	conn, err := ZAPDial(ctx, addr)
	if err != nil {
		return nil, err
	}
	return &zapClient{
		conn:  conn,
		codec: o.codec,
	}, nil
}

// listenZAP creates a ZAP server
func listenZAP(addr string, o *serverOptions) (Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &zapServer{
		listener: listener,
		handlers: make(map[string]RawHandler),
		logger:   o.logger,
	}, nil
}

// zapClient implements Client using ZAP transport
type zapClient struct {
	conn  *ZAPConn
	codec Codec
}

func (c *zapClient) Call(ctx context.Context, method string, args, reply interface{}) error {
	payload, err := encodeArgs(c.codec, args)
	if err != nil {
		return err
	}

	resp, err := c.conn.Call(ctx, method, payload)
	if err != nil {
		return err
	}
	return decodeReply(c.codec, resp, reply)
}

func (c *zapClient) CallRaw(ctx context.Context, method string, payload []byte) ([]byte, error) {
	return c.conn.Call(ctx, method, payload)
}

func (c *zapClient) Notify(ctx context.Context, method string, args interface{}) error {
	payload, err := encodeArgs(c.codec, args)
	if err != nil {
		return err
	}
	return c.conn.Notify(ctx, method, payload)
}

func (c *zapClient) Close() error {
	return c.conn.Close()
}

// zapServer implements Server using ZAP transport
type zapServer struct {
	listener net.Listener
	mu       sync.RWMutex
	handlers map[string]RawHandler
	server   *ZAPServer
	logger   *zap.Logger
}

func (s *zapServer) Register(name string, handler interface{}) error {
	return fmt.Errorf("zap: register %s: %w, use RegisterRaw", name, ErrNotSupported)
}

func (s *zapServer) RegisterRaw(method string, handler RawHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[method] = handler
	return nil
}

func (s *zapServer) handler(method string) (RawHandler, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.handlers[method]
	return h, ok
}

func (s *zapServer) Serve(ctx context.Context) error {
	s.mu.Lock()
	s.server = NewZAPServer(s.listener, ZAPHandlerFunc(func(ctx context.Context, method string, payload []byte) ([]byte, error) {
		handler, ok := s.handler(method)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
		}
		return handler(ctx, payload)
	}), s.logger)
	srv := s.server
	s.mu.Unlock()
	return srv.Serve(ctx)
}

func (s *zapServer) Close() error {
	s.mu.RLock()
	srv := s.server
	s.mu.RUnlock()
	if srv != nil {
		return srv.Close()
	}
	return s.listener.Close()
}

func (s *zapServer) Addr() string {
	return s.listener.Addr().String()
}

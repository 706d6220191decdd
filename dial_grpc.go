// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package enginerpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// grpcService prefixes every method on the wire: "/enginerpc.Raw/<method>".
const grpcService = "enginerpc.Raw"

func init() {
	registerTransport(TransportGRPC, dialGRPC, listenGRPC)
}

// rawCodec moves payloads through gRPC untouched; message encoding is left
// to the Codec of the client and server.
type rawCodec struct{}

func (rawCodec) Marshal(v interface{}) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case *[]byte:
		return *b, nil
	}
	return nil, fmt.Errorf("grpc raw codec: cannot marshal %T", v)
}

func (rawCodec) Unmarshal(data []byte, v interface{}) error {
	b, ok := v.(*[]byte)
	if !ok {
		return fmt.Errorf("grpc raw codec: cannot unmarshal into %T", v)
	}
	*b = append((*b)[:0], data...)
	return nil
}

func (rawCodec) Name() string {
	return "enginerpc-raw"
}

func grpcMethod(method string) string {
	return "/" + grpcService + "/" + method
}

func dialGRPC(ctx context.Context, addr string, o *dialOptions) (Client, error) {
	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(rawCodec{})),
	)
	if err != nil {
		return nil, fmt.Errorf("grpc dial: %w", err)
	}
	return &grpcClient{conn: conn, codec: o.codec}, nil
}

type grpcClient struct {
	conn  *grpc.ClientConn
	codec Codec
}

func (c *grpcClient) Call(ctx context.Context, method string, args, reply interface{}) error {
	payload, err := encodeArgs(c.codec, args)
	if err != nil {
		return err
	}
	resp, err := c.CallRaw(ctx, method, payload)
	if err != nil {
		return err
	}
	return decodeReply(c.codec, resp, reply)
}

func (c *grpcClient) CallRaw(ctx context.Context, method string, payload []byte) ([]byte, error) {
	if payload == nil {
		payload = []byte{}
	}
	var resp []byte
	if err := c.conn.Invoke(ctx, grpcMethod(method), payload, &resp); err != nil {
		return nil, fromStatus(method, err)
	}
	return resp, nil
}

func (c *grpcClient) Notify(ctx context.Context, method string, args interface{}) error {
	return c.Call(ctx, method, args, nil)
}

func (c *grpcClient) Close() error {
	return c.conn.Close()
}

// fromStatus turns a handler error carried as codes.Unknown back into a
// *RemoteError.
func fromStatus(method string, err error) error {
	st, ok := status.FromError(err)
	if ok && st.Code() == codes.Unknown {
		return &RemoteError{Method: method, Message: st.Message()}
	}
	return err
}

func listenGRPC(addr string, o *serverOptions) (Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("grpc listen: %w", err)
	}
	s := &grpcServer{
		listener: listener,
		handlers: make(map[string]RawHandler),
		logger:   o.logger,
	}
	s.server = grpc.NewServer(
		grpc.ForceServerCodec(rawCodec{}),
		grpc.UnknownServiceHandler(s.handleStream),
	)
	return s, nil
}

// grpcServer serves raw handlers over gRPC. There are no generated service
// descriptors; every call lands in handleStream.
type grpcServer struct {
	listener net.Listener
	server   *grpc.Server
	logger   *zap.Logger

	mu       sync.RWMutex
	handlers map[string]RawHandler
}

func (s *grpcServer) Register(name string, handler interface{}) error {
	return fmt.Errorf("grpc: register %s: %w, use RegisterRaw", name, ErrNotSupported)
}

func (s *grpcServer) RegisterRaw(method string, handler RawHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[method] = handler
	return nil
}

func (s *grpcServer) handleStream(_ interface{}, stream grpc.ServerStream) error {
	full, ok := grpc.MethodFromServerStream(stream)
	if !ok {
		return status.Error(codes.Internal, "grpc: no method in stream")
	}
	method := full[strings.LastIndex(full, "/")+1:]

	s.mu.RLock()
	handler, ok := s.handlers[method]
	s.mu.RUnlock()
	if !ok {
		return status.Errorf(codes.Unimplemented, "%v: %s", ErrUnknownMethod, method)
	}

	var payload []byte
	if err := stream.RecvMsg(&payload); err != nil {
		return err
	}
	resp, err := handler(stream.Context(), payload)
	if err != nil {
		return status.Error(codes.Unknown, err.Error())
	}
	if resp == nil {
		resp = []byte{}
	}
	return stream.SendMsg(resp)
}

func (s *grpcServer) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, s.server.GracefulStop)
	defer stop()

	err := s.server.Serve(s.listener)
	if errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	if err != nil {
		s.logger.Warn("grpc serve stopped", zap.Error(err))
	}
	return err
}

func (s *grpcServer) Close() error {
	s.server.Stop()
	// Stop only closes listeners that Serve has taken over.
	s.listener.Close()
	return nil
}

func (s *grpcServer) Addr() string {
	return s.listener.Addr().String()
}

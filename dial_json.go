// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package enginerpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
	"go.uber.org/zap"
)

// jsonPath is the HTTP path JSON-RPC requests are posted to.
const jsonPath = "/rpc"

func init() {
	registerTransport(TransportJSON, dialJSON, listenJSON)
}

// jsonURL accepts either a host:port or a full URL.
func jsonURL(addr string) (*url.URL, error) {
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr + jsonPath
	}
	return url.Parse(addr)
}

// dialJSON creates a JSON-RPC client. Payloads must be JSON, so the codec
// is always JSONCodec.
func dialJSON(ctx context.Context, addr string, o *dialOptions) (Client, error) {
	uri, err := jsonURL(addr)
	if err != nil {
		return nil, fmt.Errorf("json dial: %w", err)
	}
	return &jsonClient{
		uri:     uri,
		options: o.http,
		logger:  o.logger,
	}, nil
}

// jsonClient implements Client over JSON-RPC 2.0. Requests are sent once;
// a call that fails is not repeated.
type jsonClient struct {
	uri     *url.URL
	options []Option
	logger  *zap.Logger
}

func (c *jsonClient) Call(ctx context.Context, method string, args, reply interface{}) error {
	payload, err := encodeArgs(defaultCodec, args)
	if err != nil {
		return err
	}
	resp, err := c.CallRaw(ctx, method, payload)
	if err != nil {
		return err
	}
	return decodeReply(defaultCodec, resp, reply)
}

func (c *jsonClient) CallRaw(ctx context.Context, method string, payload []byte) ([]byte, error) {
	var params interface{}
	if len(payload) > 0 {
		params = json.RawMessage(payload)
	}
	var resp json.RawMessage
	err := sendJSONRequest(ctx, c.logger, 1, c.uri, method, params, &resp, c.options...)
	if err != nil {
		var jerr *json2.Error
		if errors.As(err, &jerr) {
			return nil, &RemoteError{Method: method, Message: jerr.Message}
		}
		return nil, err
	}
	return resp, nil
}

func (c *jsonClient) Notify(ctx context.Context, method string, args interface{}) error {
	return c.Call(ctx, method, args, nil)
}

func (c *jsonClient) Close() error {
	return nil
}

func listenJSON(addr string, o *serverOptions) (Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("json listen: %w", err)
	}

	services := rpc.NewServer()
	services.RegisterCodec(json2.NewCodec(), "application/json")

	s := &jsonServer{
		listener: listener,
		codec:    json2.NewCodec(),
		services: services,
		handlers: make(map[string]RawHandler),
		logger:   o.logger,
	}
	mux := http.NewServeMux()
	mux.Handle(jsonPath, s)
	s.http = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// jsonServer serves JSON-RPC 2.0 over HTTP. Raw handlers are dispatched
// directly; any other method goes to the gorilla services added with
// Register.
type jsonServer struct {
	listener net.Listener
	http     *http.Server
	codec    *json2.Codec
	services *rpc.Server
	logger   *zap.Logger

	mu       sync.RWMutex
	handlers map[string]RawHandler
}

// Register registers a gorilla/rpc service. Its exported methods of the
// form func(*http.Request, *Args, *Reply) error are served as name.Method.
func (s *jsonServer) Register(name string, handler interface{}) error {
	return s.services.RegisterService(handler, name)
}

func (s *jsonServer) RegisterRaw(method string, handler RawHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[method] = handler
	return nil
}

func (s *jsonServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "rpc: POST method required, received "+r.Method, http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "rpc: "+err.Error(), http.StatusBadRequest)
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	req := s.codec.NewRequest(r)
	method, err := req.Method()
	if err != nil {
		req.WriteError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.RLock()
	handler, ok := s.handlers[method]
	s.mu.RUnlock()
	if !ok {
		r.Body = io.NopCloser(bytes.NewReader(body))
		s.services.ServeHTTP(w, r)
		return
	}

	var params json.RawMessage
	if err := req.ReadRequest(&params); err != nil {
		req.WriteError(w, http.StatusBadRequest, err)
		return
	}
	resp, err := handler(r.Context(), params)
	if err != nil {
		s.logger.Debug("json-rpc handler failed", zap.String("method", method), zap.Error(err))
		req.WriteError(w, http.StatusOK, err)
		return
	}
	if len(resp) == 0 {
		// json2 clients treat a null result as an error.
		resp = []byte("{}")
	}
	req.WriteResponse(w, json.RawMessage(resp))
}

func (s *jsonServer) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { s.http.Close() })
	defer stop()

	err := s.http.Serve(s.listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *jsonServer) Close() error {
	err := s.http.Close()
	s.listener.Close()
	return err
}

func (s *jsonServer) Addr() string {
	return s.listener.Addr().String()
}

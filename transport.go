// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package enginerpc

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Transport types
const (
	TransportZAP  = "zap"  // Zero-copy, default
	TransportGRPC = "grpc" // Google RPC
	TransportJSON = "json" // JSON-RPC over HTTP
)

// DefaultTransport is the default transport type (ZAP)
const DefaultTransport = TransportZAP

type dialFunc func(ctx context.Context, addr string, o *dialOptions) (Client, error)
type listenFunc func(addr string, o *serverOptions) (Server, error)

type transport struct {
	dial   dialFunc
	listen listenFunc
}

var (
	transportsMu sync.RWMutex
	transports   = map[string]transport{
		TransportZAP: {dialZAP, listenZAP},
	}
)

// registerTransport registers a new transport
func registerTransport(name string, dial dialFunc, listen listenFunc) {
	transportsMu.Lock()
	defer transportsMu.Unlock()
	transports[name] = transport{dial, listen}
}

func lookupTransport(name string) (transport, error) {
	transportsMu.RLock()
	defer transportsMu.RUnlock()
	t, ok := transports[name]
	if !ok {
		return transport{}, fmt.Errorf("%w: %s", ErrUnknownTransport, name)
	}
	return t, nil
}

// AvailableTransports returns list of available transport types
func AvailableTransports() []string {
	transportsMu.RLock()
	defer transportsMu.RUnlock()
	result := make([]string, 0, len(transports))
	for name := range transports {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// HasTransport checks if a transport is available
func HasTransport(name string) bool {
	transportsMu.RLock()
	defer transportsMu.RUnlock()
	_, ok := transports[name]
	return ok
}

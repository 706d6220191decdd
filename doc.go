// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package enginerpc drives a numerical engine that runs in another process.
//
// # Engine side
//
// The engine process wraps its native call surface in a Bridge and exposes
// it once through an Endpoint:
//
//	ep, err := enginerpc.NewEndpoint(":9000", bridge)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ep.Close()
//	ep.Serve(ctx)
//
// The endpoint answers each call by forwarding it to the bridge through a
// Proxy. The proxy keeps no state and does not interpret, retry or recover
// from anything; a failure raised by the engine goes back to the caller as
// raised.
//
// # Host side
//
//	engine, err := enginerpc.DialEngine(ctx, "localhost:9000")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
//	if err := engine.SetVariable(ctx, "x", 3.0); err != nil {
//	    return err
//	}
//	r, err := enginerpc.FevalReturns(ctx, engine, "size", []any{"x"}, 2)
//	if err != nil {
//	    return err
//	}
//	rows := r.(returns.Return2).First()
//
// Failures come back as *InvocationFailure. Calls declared to yield 2 to 9
// values are wrapped by the returns package.
//
// # Transport Selection
//
// ZAP is the default transport. gRPC and JSON-RPC over HTTP are also
// available by name:
//
//	enginerpc.Listen(addr, enginerpc.WithServerTransport(enginerpc.TransportGRPC))
//	enginerpc.Dial(ctx, addr, enginerpc.WithTransport(enginerpc.TransportGRPC))
//
// # Architecture
//
//   - bridge.go, proxy.go: the engine call surface and its forwarder
//   - wire.go: engine method names, argument types and raw handlers
//   - endpoint.go, remote.go: engine-side server and host-side Bridge
//   - client.go: protocol-agnostic Client and Server interfaces
//   - codec.go: Codec interface for message encoding
//   - transport.go: transport registry
//   - dial.go, zap.go: ZAP transport implementation (default)
//   - dial_grpc.go: gRPC transport
//   - dial_json.go, json.go: JSON-RPC 2.0 transport
//
// Application code should only depend on the Bridge and Client/Server
// interfaces, making transport selection a deployment decision rather than
// a code change.
package enginerpc

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package enginetest provides an in-memory engine for testing code that
// talks to an enginerpc.Bridge.
package enginetest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ErrExited is returned by every call made after Exit.
var ErrExited = errors.New("engine has exited")

// Func is a function known to the engine. It returns all of its outputs;
// callers asking for fewer get the leading ones.
type Func func(args []any) ([]any, error)

// Engine is an in-memory engine. Commands are resolved against functions
// added with Define; eval runs them without arguments.
type Engine struct {
	mu        sync.Mutex
	vars      map[string]any
	funcs     map[string]Func
	objects   map[string]any
	permanent map[string]bool
	evaluated []string
	exited    bool
}

// New returns an empty engine.
func New() *Engine {
	return &Engine{
		vars:      make(map[string]any),
		funcs:     make(map[string]Func),
		objects:   make(map[string]any),
		permanent: make(map[string]bool),
	}
}

// Define makes fn callable as name.
func (e *Engine) Define(name string, fn Func) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.funcs[name] = fn
}

func (e *Engine) SetVariable(_ context.Context, name string, value any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.exited {
		return ErrExited
	}
	e.vars[name] = value
	return nil
}

func (e *Engine) GetVariable(_ context.Context, name string) (any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.exited {
		return nil, ErrExited
	}
	v, ok := e.vars[name]
	if !ok {
		return nil, fmt.Errorf("Undefined function or variable '%s'.", name)
	}
	return v, nil
}

func (e *Engine) Eval(ctx context.Context, command string) error {
	_, err := e.run(command, nil, 0)
	return err
}

func (e *Engine) Feval(ctx context.Context, command string, args []any) error {
	_, err := e.run(command, args, 0)
	return err
}

func (e *Engine) ReturningEval(ctx context.Context, command string, returnCount int) (any, error) {
	return e.run(command, nil, returnCount)
}

func (e *Engine) ReturningFeval(ctx context.Context, command string, args []any) (any, error) {
	return e.run(command, args, 1)
}

func (e *Engine) ReturningFevalN(ctx context.Context, command string, args []any, returnCount int) (any, error) {
	return e.run(command, args, returnCount)
}

// run calls command and shapes its outputs: nothing for n == 0, the value
// itself for n == 1 and a []any of n values otherwise.
func (e *Engine) run(command string, args []any, n int) (any, error) {
	e.mu.Lock()
	if e.exited {
		e.mu.Unlock()
		return nil, ErrExited
	}
	fn, ok := e.funcs[command]
	e.evaluated = append(e.evaluated, command)
	e.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("Undefined function or variable '%s'.", command)
	}
	out, err := fn(args)
	if err != nil {
		return nil, err
	}
	if n > len(out) {
		return nil, fmt.Errorf("Error using %s: Too many output arguments.", command)
	}
	switch n {
	case 0:
		return nil, nil
	case 1:
		return out[0], nil
	}
	return out[:n], nil
}

func (e *Engine) StoreObject(_ context.Context, value any, keepPermanently bool) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.exited {
		return "", ErrExited
	}
	handle := "obj_" + uuid.NewString()
	e.objects[handle] = value
	e.permanent[handle] = keepPermanently
	return handle, nil
}

func (e *Engine) Exit(context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.exited {
		return ErrExited
	}
	e.exited = true
	return nil
}

// Object returns a stored object and whether it is kept permanently.
func (e *Engine) Object(handle string) (value any, permanent bool, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	value, ok = e.objects[handle]
	return value, e.permanent[handle], ok
}

// Evaluated returns the commands run so far, in order.
func (e *Engine) Evaluated() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.evaluated...)
}

// Exited reports whether Exit was called.
func (e *Engine) Exited() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.exited
}

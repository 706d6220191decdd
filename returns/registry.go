// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package returns

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var errNoConstructor = errors.New("no constructor registered")

// Constructor builds a container from a value array.
type Constructor func(values []any) (Returns, error)

// Entry pairs an arity with the container type that handles it.
type Entry struct {
	Arity int
	Type  reflect.Type
	New   Constructor
}

// containers is the fixed table of known container types.
var containers = []Entry{
	{2, reflect.TypeFor[Return2](), constructor(2, func(b base) Return2 { return Return2{b} })},
	{3, reflect.TypeFor[Return3](), constructor(3, func(b base) Return3 { return Return3{b} })},
	{4, reflect.TypeFor[Return4](), constructor(4, func(b base) Return4 { return Return4{b} })},
	{5, reflect.TypeFor[Return5](), constructor(5, func(b base) Return5 { return Return5{b} })},
	{6, reflect.TypeFor[Return6](), constructor(6, func(b base) Return6 { return Return6{b} })},
	{7, reflect.TypeFor[Return7](), constructor(7, func(b base) Return7 { return Return7{b} })},
	{8, reflect.TypeFor[Return8](), constructor(8, func(b base) Return8 { return Return8{b} })},
	{9, reflect.TypeFor[Return9](), constructor(9, func(b base) Return9 { return Return9{b} })},
}

func constructor[R Returns](arity int, wrap func(base) R) Constructor {
	return func(values []any) (Returns, error) {
		if len(values) != arity {
			return nil, fmt.Errorf("%d values for a container of arity %d", len(values), arity)
		}
		return wrap(base{vals: values}), nil
	}
}

// Registry maps arities to container types and back. It is built once and
// only read afterwards, so lookups need no locking.
type Registry struct {
	byArity map[int]Entry
	byType  map[reflect.Type]int
}

var (
	defaultRegistry *Registry
	registryOnce    sync.Once
)

// Default returns the process-wide registry of Return2 through Return9.
// It panics if the container table is not a bijection over
// [MinArity, MaxArity].
func Default() *Registry {
	registryOnce.Do(func() {
		r, err := NewRegistry(containers)
		if err == nil {
			err = r.complete()
		}
		if err != nil {
			panic(fmt.Sprintf("returns: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// NewRegistry builds a registry from entries. Every arity must lie in
// [MinArity, MaxArity] and no arity or type may appear twice. Entries may
// leave New nil; creating a container for such an arity fails.
func NewRegistry(entries []Entry) (*Registry, error) {
	r := &Registry{
		byArity: make(map[int]Entry, len(entries)),
		byType:  make(map[reflect.Type]int, len(entries)),
	}
	for _, e := range entries {
		if e.Arity < MinArity || e.Arity > MaxArity {
			return nil, fmt.Errorf("arity %d out of range [%d, %d]", e.Arity, MinArity, MaxArity)
		}
		if e.Type == nil {
			return nil, fmt.Errorf("arity %d has no container type", e.Arity)
		}
		if prev, ok := r.byArity[e.Arity]; ok {
			return nil, fmt.Errorf("arity %d registered for both %v and %v", e.Arity, prev.Type, e.Type)
		}
		if prev, ok := r.byType[e.Type]; ok {
			return nil, fmt.Errorf("type %v registered for both arity %d and %d", e.Type, prev, e.Arity)
		}
		r.byArity[e.Arity] = e
		r.byType[e.Type] = e.Arity
	}
	return r, nil
}

func (r *Registry) complete() error {
	for n := MinArity; n <= MaxArity; n++ {
		if _, ok := r.byArity[n]; !ok {
			return fmt.Errorf("no container type for arity %d", n)
		}
	}
	return nil
}

// TypeFor returns the container type registered for arity.
func (r *Registry) TypeFor(arity int) (reflect.Type, bool) {
	e, ok := r.byArity[arity]
	return e.Type, ok
}

// ArityOf returns the arity of a registered container type. Asking for an
// unregistered type is a programming error and panics.
func (r *Registry) ArityOf(t reflect.Type) int {
	n, ok := r.byType[t]
	if !ok {
		panic(fmt.Sprintf("returns: %v is not a registered container type", t))
	}
	return n
}

// Arities returns the registered arities in ascending order.
func (r *Registry) Arities() []int {
	out := make([]int, 0, len(r.byArity))
	for n := MinArity; n <= MaxArity; n++ {
		if _, ok := r.byArity[n]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Create wraps values in the container registered for len(values).
// The values are used as given; their types are not inspected.
func (r *Registry) Create(values []any) (Returns, error) {
	e, ok := r.byArity[len(values)]
	if !ok {
		return nil, &InvalidArityError{Arity: len(values)}
	}
	if e.New == nil {
		return nil, &InvalidArityError{Arity: len(values), Err: errNoConstructor}
	}
	ret, err := e.New(values)
	if err != nil {
		return nil, &InvalidArityError{Arity: len(values), Err: err}
	}
	return ret, nil
}

// TypeFor returns the container type for arity from the default registry.
func TypeFor(arity int) (reflect.Type, bool) {
	return Default().TypeFor(arity)
}

// ArityOf returns the arity of container type t from the default registry.
func ArityOf(t reflect.Type) int {
	return Default().ArityOf(t)
}

// Arity returns the arity of r.
func Arity(r Returns) int {
	return ArityOf(reflect.TypeOf(r))
}

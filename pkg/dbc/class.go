// Copyright 2026 The GoDBC Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package dbc

import "log"

// A Class is the contract metadata for one conceptual class over
// receiver type T: its invariants and the contract sets of its
// methods. Hierarchies share a receiver type by declaring contracts
// against a common interface.
//
// A Class and its Methods are meant to be fully declared during
// package initialization. After declaration they are never mutated by
// the check path, so Call and Invoke are safe to use from multiple
// goroutines; simultaneous calls against the same receiver are not
// serialized with the body.
type Class[T any] struct {
	name    string
	methods map[string]*Method[T]

	invariants    []Condition[T]
	inhInvariants []Condition[T]

	bases    []*Class[T]
	absorbed map[*Class[T]]bool

	logger *log.Logger
}

// NewClass declares an empty contract class.
func NewClass[T any](name string) *Class[T] {
	return &Class[T]{
		name:     name,
		methods:  make(map[string]*Method[T]),
		absorbed: make(map[*Class[T]]bool),
	}
}

// Name returns the class name used in violation reports.
func (c *Class[T]) Name() string {
	return c.name
}

// WithLogger sets an optional logger to receive a diagnostic line for
// every violation signaled under this class. A nil logger is silent.
func (c *Class[T]) WithLogger(l *log.Logger) *Class[T] {
	c.logger = l
	return c
}

// Invariant appends predicates that must hold for every instance:
// they are checked after construction via New and again before and
// after every contracted method call.
func (c *Class[T]) Invariant(conds ...Condition[T]) *Class[T] {
	c.invariants = append(c.invariants, conds...)
	return c
}

// Method returns the contract set for the named method, creating an
// empty one on first use. Repeated calls return the same *Method, so
// declarations made through it accumulate.
func (c *Class[T]) Method(name string) *Method[T] {
	m, found := c.methods[name]
	if !found {
		m = &Method[T]{class: c, name: name}
		c.methods[name] = m
	}
	return m
}

// New runs the constructor and then checks every invariant, inherited
// ones first, against the new instance. On violation the zero T is
// returned along with the error, so the caller never observes an
// instance in an illegal state. Constructor errors propagate
// unchanged without any invariant check.
func (c *Class[T]) New(ctor func() (T, error)) (T, error) {
	obj, err := ctor()
	if err != nil {
		var zero T
		return zero, err
	}
	for _, inv := range c.allInvariants() {
		if ok, cause := inv.holds(obj, nil); !ok {
			v := &Violation{Kind: KindInvariant, Class: c.name, Cond: inv.Label(), Cause: cause}
			c.log(v)
			var zero T
			return zero, v
		}
	}
	return obj, nil
}

// allInvariants returns the inherited invariants followed by the
// class's own, in declaration order.
func (c *Class[T]) allInvariants() []Condition[T] {
	if len(c.inhInvariants) == 0 {
		return c.invariants
	}
	out := make([]Condition[T], 0, len(c.inhInvariants)+len(c.invariants))
	out = append(out, c.inhInvariants...)
	return append(out, c.invariants...)
}

func (c *Class[T]) log(v *Violation) {
	if c.logger != nil {
		c.logger.Printf("%v", v)
	}
}

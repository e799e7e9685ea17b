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

// Package dbc enforces Design by Contract at runtime: classes declare
// invariants, methods declare preconditions, postconditions, and
// old-state snapshots, and contracts propagate from base classes onto
// subclass overrides.
//
// Contracts are declared against a receiver type, typically an
// interface shared by every type in the conceptual hierarchy:
//
//   type Stack interface {
//       Size() int
//       Capacity() int
//   }
//
//   var (
//       stackClass = dbc.NewClass[Stack]("Stack").
//           Invariant(dbc.Cond("capacity non-negative", func(s Stack) bool {
//               return s.Capacity() >= 0
//           }))
//
//       stackPush = stackClass.Method("push").
//           Requires(dbc.Cond("stack not full", func(s Stack) bool {
//               return s.Size() < s.Capacity()
//           })).
//           Old(func(s Stack) dbc.Old {
//               return dbc.Old{"size": s.Size()}
//           }).
//           Ensures(dbc.OldCond("size grew by one", func(s Stack, old dbc.Old) bool {
//               return s.Size() == old["size"].(int)+1
//           }))
//   )
//
// The real method body is handed to the contract as a closure:
//
//   func (s *BoundedStack) Push(v int) error {
//       return stackPush.Call(s, func() error {
//           s.items = append(s.items, v)
//           return nil
//       })
//   }
//
// Call runs a purely sequential before→body→after sequence on the
// calling goroutine: invariants and preconditions are checked first
// (a failure prevents the body from ever running), then the snapshot
// functions capture the prior state, then the body executes, then
// invariants and postconditions are checked against the new state. A
// postcondition failure reports a faulted object, not a prevented
// call; the body's side effects stand.
//
// Constructing through the class checks the invariants before the
// instance escapes:
//
//   s, err := stackClass.New(func() (Stack, error) {
//       return &BoundedStack{capacity: 8}, nil
//   })
//
// Subclasses adopt ancestor contracts with Inherit, so an override
// that does not restate a base contract is still held to it (Liskov
// substitution):
//
//   var coolClass = dbc.NewClass[Stack]("CoolStack").Inherit(stackClass)
//
// Every violation is a *Violation identifying the contract category,
// class, method, and condition; match categories with errors.Is
// against ErrPreconditionFailed, ErrPostconditionFailed, and
// ErrInvariantFailed.
//
// Predicates are expected to be fast, side-effect-free observations
// of the receiver. Nothing in the package defends against a predicate
// that performs I/O or mutates state; that is a misuse.
package dbc

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

import "github.com/pkg/errors"

// A Condition is a single boolean predicate over a receiver. It comes
// in two variants: a plain predicate sees only the receiver, while an
// old-state predicate additionally sees the prior-state mapping
// captured before the guarded body ran. Conditions are immutable once
// declared.
type Condition[T any] struct {
	label    string
	check    func(T) bool
	checkOld func(T, Old) bool
}

// Cond declares a receiver-only condition. The label identifies the
// condition in violation reports.
//
// Cond panics if pred is nil.
func Cond[T any](label string, pred func(T) bool) Condition[T] {
	if pred == nil {
		panic(errors.Errorf("dbc: nil predicate for condition %q", label))
	}
	return Condition[T]{label: label, check: pred}
}

// OldCond declares a condition whose predicate also receives the
// prior-state mapping captured by the method's snapshot functions.
// When no snapshots are declared the predicate sees an empty mapping.
//
// OldCond panics if pred is nil.
func OldCond[T any](label string, pred func(T, Old) bool) Condition[T] {
	if pred == nil {
		panic(errors.Errorf("dbc: nil predicate for condition %q", label))
	}
	return Condition[T]{label: label, checkOld: pred}
}

// Label returns the condition's diagnostic label.
func (c Condition[T]) Label() string {
	return c.label
}

// holds evaluates the condition against the receiver. A predicate
// that panics evaluates false; the panic value is returned as the
// cause so the violation can carry the diagnostic.
func (c Condition[T]) holds(recv T, old Old) (ok bool, cause error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			if err, isErr := r.(error); isErr {
				cause = errors.Wrap(err, "condition panicked")
			} else {
				cause = errors.Errorf("condition panicked: %v", r)
			}
		}
	}()
	if c.checkOld != nil {
		return c.checkOld(recv, old), nil
	}
	return c.check(recv), nil
}

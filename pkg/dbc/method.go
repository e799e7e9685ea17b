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

// A Method is the contract set guarding one method: ordered
// precondition and postcondition lists plus optional old-state
// snapshots. The user's real method body is handed to Call or Invoke
// as a closure; the Method runs the declared checks around it.
//
// Declarations accumulate: repeated Requires, Ensures, and Old calls
// extend the existing lists in declaration order. Contracts inherited
// from ancestor classes are kept separately from the method's own
// declarations and always run first.
type Method[T any] struct {
	class *Class[T]
	name  string

	pres  []Condition[T]
	posts []Condition[T]
	olds  []Snapshot[T]

	// Populated by Class.Inherit, never by the user directly.
	inhPres  []Condition[T]
	inhPosts []Condition[T]
	inhOlds  []Snapshot[T]
}

// NewMethod declares a free-standing method contract that is not
// attached to any class. It carries no invariants and does not
// participate in inheritance.
func NewMethod[T any](name string) *Method[T] {
	return &Method[T]{name: name}
}

// Name returns the method name used in violation reports.
func (m *Method[T]) Name() string {
	return m.name
}

// Requires appends preconditions, checked against the receiver before
// the body runs. If any fails, the body never executes.
func (m *Method[T]) Requires(conds ...Condition[T]) *Method[T] {
	m.pres = append(m.pres, conds...)
	return m
}

// Ensures appends postconditions, checked against the receiver after
// the body returns. A failure reports a faulted object; the body's
// side effects are not rolled back.
func (m *Method[T]) Ensures(conds ...Condition[T]) *Method[T] {
	m.posts = append(m.posts, conds...)
	return m
}

// Old appends snapshot functions. They run after the preconditions
// pass and before the body executes; their results merge into the
// prior-state mapping threaded to old-state postconditions.
func (m *Method[T]) Old(snaps ...Snapshot[T]) *Method[T] {
	m.olds = append(m.olds, snaps...)
	return m
}

// Call runs the contract machinery around body: class invariants and
// preconditions first, then the old-state capture, then the body,
// then postconditions and class invariants again. An error from the
// body propagates unchanged and skips the postcondition checks.
func (m *Method[T]) Call(recv T, body func() error) error {
	old, err := m.before(recv)
	if err != nil {
		return err
	}
	if err := body(); err != nil {
		return err
	}
	return m.after(recv, old)
}

// Invoke is Call for bodies that produce a result. The result is
// returned even when a postcondition fails, since the body has
// already run and its side effects stand; the violation travels in
// the error.
func Invoke[T, R any](m *Method[T], recv T, body func() (R, error)) (R, error) {
	old, err := m.before(recv)
	if err != nil {
		var zero R
		return zero, err
	}
	ret, err := body()
	if err != nil {
		return ret, err
	}
	return ret, m.after(recv, old)
}

// before runs the pre-call phase: invariants, preconditions, and the
// old-state capture, in that order.
func (m *Method[T]) before(recv T) (Old, error) {
	for _, inv := range m.invariants() {
		if ok, cause := inv.holds(recv, nil); !ok {
			return nil, m.violation(KindInvariant, inv, cause)
		}
	}
	for _, lists := range [][]Condition[T]{m.inhPres, m.pres} {
		for _, pre := range lists {
			if ok, cause := pre.holds(recv, nil); !ok {
				return nil, m.violation(KindPrecondition, pre, cause)
			}
		}
	}
	return m.capture(recv), nil
}

// after runs the post-call phase: invariants first, then the declared
// postconditions, each seeing the receiver's new state and the
// prior-state mapping.
func (m *Method[T]) after(recv T, old Old) error {
	for _, inv := range m.invariants() {
		if ok, cause := inv.holds(recv, old); !ok {
			return m.violation(KindInvariant, inv, cause)
		}
	}
	for _, lists := range [][]Condition[T]{m.inhPosts, m.posts} {
		for _, post := range lists {
			if ok, cause := post.holds(recv, old); !ok {
				return m.violation(KindPostcondition, post, cause)
			}
		}
	}
	return nil
}

// capture merges the snapshot results in declaration order, inherited
// snapshots first, so the override's own captures win key collisions.
func (m *Method[T]) capture(recv T) Old {
	merged := make(Old)
	for _, snaps := range [][]Snapshot[T]{m.inhOlds, m.olds} {
		for i, snap := range snaps {
			vals := snap(recv)
			if vals == nil {
				panic(errors.Errorf(
					"dbc: snapshot %d of %s returned a nil mapping", i, m.qualified()))
			}
			for k, v := range vals {
				merged[k] = v
			}
		}
	}
	return merged
}

// invariants returns the owning class's invariant conditions, or
// nothing for a free-standing method.
func (m *Method[T]) invariants() []Condition[T] {
	if m.class == nil {
		return nil
	}
	return m.class.allInvariants()
}

func (m *Method[T]) violation(kind Kind, c Condition[T], cause error) error {
	v := &Violation{Kind: kind, Method: m.name, Cond: c.Label(), Cause: cause}
	if m.class != nil {
		v.Class = m.class.name
		m.class.log(v)
	}
	return v
}

func (m *Method[T]) qualified() string {
	if m.class != nil {
		return m.class.name + "." + m.name
	}
	return m.name
}

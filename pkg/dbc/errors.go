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

import (
	"fmt"

	"github.com/pkg/errors"
)

// The Kind of a violation identifies which contract category was
// unsatisfied, and therefore which party is at fault.
type Kind int

// The three kinds are mutually exclusive and are fixed at the point
// the violation is signaled.
//  | Kind              | At fault                                    |
//  -------------------------------------------------------------------
//  | KindPrecondition  | The caller; it did not satisfy the contract |
//  | KindPostcondition | The method body; it broke its own promise   |
//  | KindInvariant     | The object; it is in an illegal state       |
const (
	KindPrecondition Kind = iota + 1
	KindPostcondition
	KindInvariant
)

// String returns the lower-case category name.
func (k Kind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindPostcondition:
		return "postcondition"
	case KindInvariant:
		return "invariant"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sentinel errors for use with errors.Is. A *Violation matches the
// sentinel for its Kind.
var (
	ErrPreconditionFailed  = errors.New("precondition failed")
	ErrPostconditionFailed = errors.New("postcondition failed")
	ErrInvariantFailed     = errors.New("invariant failed")
)

// A Violation is the error returned when a contract does not hold.
// It identifies the contract category, the class and method being
// checked, and the label of the condition that failed.
type Violation struct {
	// The contract category that was unsatisfied.
	Kind Kind
	// The name of the contract class, if the check ran under one.
	Class string
	// The name of the guarded method. Empty for violations detected
	// at construction time.
	Method string
	// The label of the condition that did not hold.
	Cond string
	// Cause is non-nil when the condition's predicate panicked
	// instead of returning false; it carries the panic value.
	Cause error
}

var _ error = &Violation{}

// Error implements the error interface.
func (v *Violation) Error() string {
	target := v.Class
	if v.Method != "" {
		if target != "" {
			target += "."
		}
		target += v.Method
	}
	msg := fmt.Sprintf("dbc: %s failed: %s: %s", v.Kind, target, v.Cond)
	if v.Cause != nil {
		msg += ": " + v.Cause.Error()
	}
	return msg
}

// Is matches the sentinel error for the violation's Kind.
func (v *Violation) Is(target error) bool {
	switch target {
	case ErrPreconditionFailed:
		return v.Kind == KindPrecondition
	case ErrPostconditionFailed:
		return v.Kind == KindPostcondition
	case ErrInvariantFailed:
		return v.Kind == KindInvariant
	default:
		return false
	}
}

// Unwrap exposes the predicate's own failure, if it had one.
func (v *Violation) Unwrap() error {
	return v.Cause
}

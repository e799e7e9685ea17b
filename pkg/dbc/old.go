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
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Old is the prior-state mapping presented to old-state conditions.
// It is assembled fresh on every invocation by merging the results of
// the method's snapshot functions in declaration order, with later
// snapshots winning key collisions, and is discarded after the
// postcondition checks for that call complete.
type Old map[string]interface{}

// A Snapshot captures selected attributes of the receiver immediately
// before the guarded body runs, for before/after comparisons in
// postconditions. It must return a non-nil mapping; returning nil is
// a contract-declaration error and panics rather than silently
// dropping data.
type Snapshot[T any] func(T) Old

// Has reports whether a key was captured.
func (o Old) Has(key string) bool {
	_, found := o[key]
	return found
}

// Keys returns the captured keys in sorted order.
func (o Old) Keys() []string {
	keys := maps.Keys(o)
	slices.Sort(keys)
	return keys
}

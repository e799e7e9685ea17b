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

// Inherit links this class to its base classes and re-applies their
// contracts, realizing substitutability checking: every method of an
// ancestor that carries contracts contributes them to this class's
// method of the same name, so an override is checked against the
// union of its own declarations and every ancestor's. Ancestor
// invariants are adopted the same way. Inherited contracts are only
// ever added to the subclass's own entries; ancestor contract sets
// are never mutated.
//
// The ancestor chain is linearized depth-first, left-to-right over
// the declared bases, keeping the first occurrence of each distinct
// class, so a diamond contributes each ancestor's contract set
// exactly once. Repeated Inherit calls are idempotent per ancestor.
//
// Ordering matters: link base classes before their subclasses, and
// call Inherit after this class's own declarations so the already
// declared contracts of each override are in place when ancestors are
// merged in. Inherited conditions always run before the override's
// own.
func (c *Class[T]) Inherit(bases ...*Class[T]) *Class[T] {
	c.bases = append(c.bases, bases...)
	for _, anc := range c.ancestry() {
		if c.absorbed[anc] {
			continue
		}
		c.absorbed[anc] = true
		c.inhInvariants = append(c.inhInvariants, anc.invariants...)
		for name, am := range anc.methods {
			if len(am.pres)+len(am.posts)+len(am.olds) == 0 {
				continue
			}
			cm := c.Method(name)
			cm.inhPres = append(cm.inhPres, am.pres...)
			cm.inhPosts = append(cm.inhPosts, am.posts...)
			cm.inhOlds = append(cm.inhOlds, am.olds...)
		}
	}
	return c
}

// ancestry linearizes the ancestor chain: depth-first, left-to-right,
// de-duplicated by class identity, excluding the class itself.
func (c *Class[T]) ancestry() []*Class[T] {
	var out []*Class[T]
	seen := map[*Class[T]]bool{c: true}
	var walk func(*Class[T])
	walk = func(k *Class[T]) {
		for _, b := range k.bases {
			if !seen[b] {
				seen[b] = true
				out = append(out, b)
				walk(b)
			}
		}
	}
	walk(c)
	return out
}

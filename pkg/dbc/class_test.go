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
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// lister is the shared receiver interface for the bounded-list
// hierarchy used across the class and inheritance tests.
type lister interface {
	Size() int
	Capacity() int
	Items() int
}

type list struct {
	capacity int
	things   []int
	size     int
}

func (l *list) Size() int     { return l.size }
func (l *list) Capacity() int { return l.capacity }
func (l *list) Items() int    { return len(l.things) }

// listContracts is the contract class for list: capacity never goes
// negative, append only below capacity, and size tracks contents.
type listContracts struct {
	class       *Class[lister]
	append      *Method[lister]
	appendBuggy *Method[lister]
}

func newListContracts() *listContracts {
	cls := NewClass[lister]("List").
		Invariant(Cond("capacity non-negative", func(l lister) bool {
			return l.Capacity() >= 0
		}))

	sized := Cond("size matches contents", func(l lister) bool {
		return l.Size() == l.Items()
	})
	below := Cond("size below capacity", func(l lister) bool {
		return l.Size() < l.Capacity()
	})

	return &listContracts{
		class:       cls,
		append:      cls.Method("append").Requires(below).Ensures(sized),
		appendBuggy: cls.Method("appendBuggy").Requires(below).Ensures(sized),
	}
}

func (c *listContracts) newList(capacity int) (lister, error) {
	return c.class.New(func() (lister, error) {
		return &list{capacity: capacity}, nil
	})
}

// appendTo is the correct append body.
func appendTo(m *Method[lister], l *list, v int) error {
	return m.Call(l, func() error {
		l.size++
		l.things = append(l.things, v)
		return nil
	})
}

// appendForgetfully grows the contents without tracking the size.
func appendForgetfully(m *Method[lister], l *list, v int) error {
	return m.Call(l, func() error {
		l.things = append(l.things, v)
		return nil
	})
}

func TestListScenario(t *testing.T) {
	a := assert.New(t)

	c := newListContracts()
	obj, err := c.newList(2)
	require.NoError(t, err)
	l := obj.(*list)

	a.NoError(appendTo(c.append, l, 1))
	a.NoError(appendTo(c.append, l, 2))

	err = appendTo(c.append, l, 3)
	a.True(errors.Is(err, ErrPreconditionFailed))
	a.Equal(2, l.size, "the third append never ran")
}

func TestBuggyBodyFailsPostcondition(t *testing.T) {
	a := assert.New(t)

	c := newListContracts()
	obj, err := c.newList(2)
	require.NoError(t, err)
	l := obj.(*list)

	err = appendForgetfully(c.appendBuggy, l, 1)
	a.True(errors.Is(err, ErrPostconditionFailed))
	a.Len(l.things, 1, "the body's side effects stand")
}

func TestInvariantHoldsAtConstruction(t *testing.T) {
	c := newListContracts()
	obj, err := c.newList(0)
	assert.NoError(t, err)
	assert.NotNil(t, obj)
}

func TestInvariantFailureAtConstruction(t *testing.T) {
	a := assert.New(t)

	c := newListContracts()
	obj, err := c.newList(-1)
	a.True(errors.Is(err, ErrInvariantFailed))
	a.Nil(obj, "an invalid instance never escapes")

	var v *Violation
	require.True(t, errors.As(err, &v))
	a.Equal(KindInvariant, v.Kind)
	a.Equal("List", v.Class)
	a.Equal("", v.Method)
	a.Equal("capacity non-negative", v.Cond)
}

func TestConstructorErrorPropagates(t *testing.T) {
	a := assert.New(t)

	c := newListContracts()
	sentinel := errors.New("allocation refused")
	obj, err := c.class.New(func() (lister, error) { return nil, sentinel })
	a.Equal(sentinel, err)
	a.Nil(obj)

	var v *Violation
	a.False(errors.As(err, &v), "constructor errors are not violations")
}

func TestInvariantRecheckedOnCalls(t *testing.T) {
	a := assert.New(t)

	c := newListContracts()
	obj, err := c.newList(10)
	require.NoError(t, err)
	l := obj.(*list)

	l.capacity = -20 // break the invariant behind the contract's back

	err = appendTo(c.append, l, 1)
	a.True(errors.Is(err, ErrInvariantFailed))
	a.Equal(0, l.size, "the body never ran")
}

func TestLoggerReceivesViolations(t *testing.T) {
	a := assert.New(t)

	var buf bytes.Buffer
	c := newListContracts()
	c.class.WithLogger(log.New(&buf, "", 0 /* no flags */))

	obj, err := c.newList(0)
	require.NoError(t, err)
	a.Equal("", buf.String(), "nothing logged while contracts hold")

	err = appendTo(c.append, obj.(*list), 1)
	require.Error(t, err)
	a.Contains(buf.String(), "precondition failed")
	a.Contains(buf.String(), "List.append")

	_, err = c.newList(-1)
	require.Error(t, err)
	a.Contains(buf.String(), "invariant failed")
}

func TestConcurrentCallsOnDistinctReceivers(t *testing.T) {
	c := newListContracts()

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			l := &list{capacity: 64}
			for j := 0; j < 64; j++ {
				if err := appendTo(c.append, l, j); err != nil {
					return err
				}
			}
			return nil
		})
	}
	assert.NoError(t, g.Wait())
}

// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package list

import (
	"bytes"

	"github.com/google/uuid"

	"github.com/dacapoday/ringlist"
)

// elementId names a logical slot of a CircularArrayList. It is live only
// while the structural stamp captured at issuance matches the list's
// current one: for an array engine any structural change may have moved
// the slot, so stale ids are rejected rather than resolved to whatever
// moved in.
type elementId[V any] struct {
	list  *CircularArrayList[V]
	index int // -1 for a dead id
	stamp uint64
}

var _ ringlist.ElementId = elementId[int]{}

func (id elementId[V]) Present() bool {
	return id.list != nil && id.index >= 0 && id.stamp == id.list.structural.Load()
}

func (id elementId[V]) Collection() uuid.UUID {
	if id.list == nil {
		return uuid.UUID{}
	}
	return id.list.identity
}

func (id elementId[V]) Compare(other ringlist.ElementId) int {
	o, ok := other.(elementId[V])
	if !ok || o.list != id.list {
		mine, theirs := id.Collection(), other.Collection()
		return bytes.Compare(mine[:], theirs[:])
	}
	switch {
	case id.index < o.index:
		return -1
	case id.index > o.index:
		return 1
	}
	return 0
}

// element is the read-only {id, value} projection handed out per query.
type element[V any] struct {
	id  elementId[V]
	val V
}

func (el element[V]) ID() ringlist.ElementId { return el.id }
func (el element[V]) Value() V               { return el.val }

// own narrows a contract-level id to a live id of this list.
func (list *CircularArrayList[V]) own(id ringlist.ElementId) (elementId[V], error) {
	eid, ok := id.(elementId[V])
	if !ok || eid.list != list || !eid.Present() {
		return elementId[V]{}, ErrNotFound
	}
	return eid, nil
}

// Element returns the element currently named by id.
func (list *CircularArrayList[V]) Element(id ringlist.ElementId) (ringlist.CollectionElement[V], error) {
	eid, err := list.own(id)
	if err != nil {
		return nil, err
	}
	v, err := list.Get(eid.index)
	if err != nil || !eid.Present() {
		return nil, ErrNotFound
	}
	return element[V]{id: eid, val: v}, nil
}

// AdjacentElement returns the neighboring element in the given direction,
// or nil if id is terminal in that direction.
func (list *CircularArrayList[V]) AdjacentElement(id ringlist.ElementId, next bool) (ringlist.CollectionElement[V], error) {
	eid, err := list.own(id)
	if err != nil {
		return nil, err
	}
	j := eid.index - 1
	if next {
		j = eid.index + 1
	}
	if j < 0 || j >= list.Size() {
		return nil, nil
	}
	v, err := list.Get(j)
	if err != nil || !eid.Present() {
		return nil, ErrNotFound
	}
	return element[V]{id: elementId[V]{list: list, index: j, stamp: eid.stamp}, val: v}, nil
}

// TerminalElement returns the first (or last) element, or false when the
// list is empty.
func (list *CircularArrayList[V]) TerminalElement(first bool) (ringlist.CollectionElement[V], bool) {
	guard := list.Lock(false)
	defer guard.Release()
	size := list.ring.Len()
	if size == 0 {
		return nil, false
	}
	i := 0
	if !first {
		i = size - 1
	}
	v, err := list.ring.Get(i)
	if err != nil {
		return nil, false
	}
	return element[V]{
		id:  elementId[V]{list: list, index: i, stamp: list.structural.Load()},
		val: v,
	}, true
}

// Index returns the logical index currently named by id.
func (list *CircularArrayList[V]) Index(id ringlist.ElementId) (int, error) {
	eid, err := list.own(id)
	if err != nil {
		return -1, err
	}
	return eid.index, nil
}

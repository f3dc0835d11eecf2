// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package list

import (
	"github.com/dacapoday/ringlist"
	"github.com/dacapoday/ringlist/seqlock"
)

// mutableElement is a read/write handle on one element. Every operation
// re-validates the handle inside its critical section before touching the
// buffer; mutations made through the handle itself refresh its id, so the
// handle survives its own structural changes but dies with external ones.
// Handles issued by a guarded view carry the view's guard and nest
// through it instead of taking the list lock.
type mutableElement[V any] struct {
	list *CircularArrayList[V]
	id   elementId[V]
	via  *seqlock.Guard
}

var _ ringlist.MutableCollectionElement[int] = (*mutableElement[int])(nil)

// MutableElement returns a mutable handle on the element named by id.
func (list *CircularArrayList[V]) MutableElement(id ringlist.ElementId) (ringlist.MutableCollectionElement[V], error) {
	eid, err := list.own(id)
	if err != nil {
		return nil, err
	}
	return &mutableElement[V]{list: list, id: eid}, nil
}

// hold opens the critical section for one handle operation. A guarded
// handle nests through its view's guard; a plain handle takes the list
// lock.
func (el *mutableElement[V]) hold(write bool) (*seqlock.Guard, error) {
	if el.via != nil {
		guard, err := el.via.Hold(write)
		if err != nil {
			return nil, ErrConcurrentModification
		}
		return guard, nil
	}
	return el.list.Lock(write), nil
}

func (el *mutableElement[V]) ID() ringlist.ElementId {
	return el.id
}

// Value returns the element's current value, or the zero value when the
// handle has gone stale. Presence and the read share one critical
// section, so the value always belongs to the handle's own slot.
func (el *mutableElement[V]) Value() (v V) {
	guard, err := el.hold(false)
	if err != nil {
		return
	}
	defer guard.Release()
	if !el.id.Present() {
		return
	}
	got, err := el.list.ring.Get(el.id.index)
	if err != nil {
		return
	}
	return got
}

func (el *mutableElement[V]) Enabled() error {
	if !el.id.Present() {
		return ErrConcurrentModification
	}
	return nil
}

func (el *mutableElement[V]) Acceptable(v V) error {
	return el.Enabled()
}

func (el *mutableElement[V]) Set(v V) error {
	guard, err := el.hold(true)
	if err != nil {
		return err
	}
	defer guard.Release()
	if !el.id.Present() {
		return ErrConcurrentModification
	}
	_, err = el.list.set(el.id.index, v)
	return err
}

func (el *mutableElement[V]) Removable() error {
	return el.Enabled()
}

func (el *mutableElement[V]) Remove() error {
	guard, err := el.hold(true)
	if err != nil {
		return err
	}
	defer guard.Release()
	if !el.id.Present() {
		return ErrConcurrentModification
	}
	if _, err := el.list.remove(el.id.index); err != nil {
		return err
	}
	el.id.index = -1
	return nil
}

func (el *mutableElement[V]) Addable(v V, before bool) error {
	guard, err := el.hold(false)
	if err != nil {
		return err
	}
	defer guard.Release()
	if !el.id.Present() {
		return ErrConcurrentModification
	}
	max := el.list.ring.Max()
	if max > 0 && el.list.ring.Rejecting() && el.list.ring.Len() >= max {
		return ErrUnsupported
	}
	return nil
}

// Add inserts v adjacent to this element. The handle's id is refreshed in
// the same critical section, tracking head eviction and the slot shift
// caused by a before-insert; when eviction consumed the handle's own
// element the handle goes stale instead.
func (el *mutableElement[V]) Add(v V, before bool) (ringlist.ElementId, error) {
	guard, err := el.hold(true)
	if err != nil {
		return nil, err
	}
	defer guard.Release()
	if !el.id.Present() {
		return nil, ErrConcurrentModification
	}

	i := el.id.index
	if !before {
		i++
	}
	evicted, err := el.list.ring.Insert(i, v)
	if err != nil {
		return nil, err
	}
	stamp := el.list.bumpStructural()

	drop := min(evicted, i) // oldest stored elements dropped by eviction
	mine := el.id.index - drop
	switch {
	case mine < 0:
		el.id.index = -1
	case evicted <= i && before:
		el.id.index = mine + 1
	default:
		el.id.index = mine
	}
	el.id.stamp = stamp

	if evicted > i {
		return elementId[V]{list: el.list, index: -1, stamp: stamp}, nil
	}
	return elementId[V]{list: el.list, index: i - drop, stamp: stamp}, nil
}

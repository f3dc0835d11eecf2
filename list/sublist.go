// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package list

import (
	"github.com/dacapoday/ringlist"
)

// SubList is an index-scoped view over a parent list. It caches the
// parent's structural stamp at creation and re-validates lazily: any
// access after a structural change that was not routed through this view
// fails with ErrConcurrentModification. Mutations through the view update
// its bounds and cached stamp together, under the same write guard as the
// change itself.
type SubList[V any] struct {
	list  *CircularArrayList[V]
	from  int
	to    int
	stamp uint64
}

// SubList returns a view of the logical range [from, to).
func (list *CircularArrayList[V]) SubList(from, to int) (*SubList[V], error) {
	guard := list.Lock(false)
	defer guard.Release()
	if from < 0 || from > to || to > list.ring.Len() {
		return nil, ErrOutOfRange
	}
	return &SubList[V]{list: list, from: from, to: to, stamp: list.structural.Load()}, nil
}

// check re-validates the cached stamp. Callers hold at least a read
// guard.
func (sub *SubList[V]) check() error {
	if sub.stamp != sub.list.structural.Load() {
		return ErrConcurrentModification
	}
	return nil
}

// Size returns the view's element count, or ErrConcurrentModification
// after an external structural change.
func (sub *SubList[V]) Size() (int, error) {
	if err := sub.check(); err != nil {
		return 0, err
	}
	return sub.to - sub.from, nil
}

// Get returns the value at view index i.
func (sub *SubList[V]) Get(i int) (v V, err error) {
	guard := sub.list.Lock(false)
	defer guard.Release()
	if err = sub.check(); err != nil {
		return
	}
	if i < 0 || i >= sub.to-sub.from {
		err = ErrOutOfRange
		return
	}
	return sub.list.ring.Get(sub.from + i)
}

// Set replaces the value at view index i. A value change: the view and
// all ids stay live.
func (sub *SubList[V]) Set(i int, v V) (old V, err error) {
	guard := sub.list.Lock(true)
	defer guard.Release()
	if err = sub.check(); err != nil {
		return
	}
	if i < 0 || i >= sub.to-sub.from {
		err = ErrOutOfRange
		return
	}
	old, err = sub.list.ring.Set(sub.from+i, v)
	if err == nil {
		sub.list.value.Add(1)
	}
	return
}

// Insert places v at view index i. The parent change and the view's
// bounds/stamp update happen atomically under one write guard, so the
// view survives its own mutation.
func (sub *SubList[V]) Insert(i int, v V) (ringlist.ElementId, error) {
	guard := sub.list.Lock(true)
	defer guard.Release()
	if err := sub.check(); err != nil {
		return nil, err
	}
	if i < 0 || i > sub.to-sub.from {
		return nil, ErrOutOfRange
	}

	at := sub.from + i
	evicted, err := sub.list.ring.Insert(at, v)
	if err != nil {
		return nil, err
	}
	stamp := sub.list.bumpStructural()

	drop := min(evicted, at)
	inserted := 0
	if evicted <= at {
		inserted = 1
	}
	sub.from -= min(drop, sub.from)
	sub.to += inserted - drop
	sub.stamp = stamp

	if inserted == 0 {
		return elementId[V]{list: sub.list, index: -1, stamp: stamp}, nil
	}
	return elementId[V]{list: sub.list, index: at - drop, stamp: stamp}, nil
}

// Append places v at the end of the view.
func (sub *SubList[V]) Append(v V) (ringlist.ElementId, error) {
	return sub.Insert(sub.to-sub.from, v)
}

// Remove deletes and returns the value at view index i, shrinking the
// view.
func (sub *SubList[V]) Remove(i int) (v V, err error) {
	guard := sub.list.Lock(true)
	defer guard.Release()
	if err = sub.check(); err != nil {
		return
	}
	if i < 0 || i >= sub.to-sub.from {
		err = ErrOutOfRange
		return
	}
	v, err = sub.list.ring.Remove(sub.from + i)
	if err != nil {
		return
	}
	sub.to--
	sub.stamp = sub.list.bumpStructural()
	return
}

// Clear removes the view's whole range from the parent, leaving an empty
// but still valid view.
func (sub *SubList[V]) Clear() error {
	guard := sub.list.Lock(true)
	defer guard.Release()
	if err := sub.check(); err != nil {
		return err
	}
	if err := sub.list.ring.RemoveRange(sub.from, sub.to); err != nil {
		return err
	}
	shrunk := sub.from < sub.to
	sub.to = sub.from
	if shrunk {
		sub.stamp = sub.list.bumpStructural()
	}
	return nil
}

// SubList returns a nested view of this view's range [from, to).
func (sub *SubList[V]) SubList(from, to int) (*SubList[V], error) {
	guard := sub.list.Lock(false)
	defer guard.Release()
	if err := sub.check(); err != nil {
		return nil, err
	}
	if from < 0 || from > to || to > sub.to-sub.from {
		return nil, ErrOutOfRange
	}
	return &SubList[V]{
		list:  sub.list,
		from:  sub.from + from,
		to:    sub.from + to,
		stamp: sub.stamp,
	}, nil
}

// Values returns a copy of the view's contents in logical order.
func (sub *SubList[V]) Values() ([]V, error) {
	guard := sub.list.Lock(false)
	defer guard.Release()
	if err := sub.check(); err != nil {
		return nil, err
	}
	values := make([]V, 0, sub.to-sub.from)
	for i := sub.from; i < sub.to; i++ {
		v, err := sub.list.ring.Get(i)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

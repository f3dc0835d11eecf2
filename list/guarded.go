// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package list

import (
	"runtime"

	"github.com/dacapoday/ringlist"
	"github.com/dacapoday/ringlist/seqlock"
)

// Guarded returns a view of the list scoped to an already-held guard.
// Every operation on the view nests through guard.Hold instead of taking
// the list lock again, so a compound sequence opened with Lock(true) can
// call any operation without deadlocking on its own guard. Reads bypass
// the optimistic path, which cannot validate while a write is open.
//
// Write operations through a view whose guard holds read access attempt
// a sole-reader upgrade and fail with ErrConcurrentModification on
// contention. Once the guard is released, read operations fall through to
// the list itself and write operations fail.
func (list *CircularArrayList[V]) Guarded(guard *seqlock.Guard) guarded[V] {
	return guarded[V]{list: list, via: guard}
}

// guarded routes list operations through a caller-held guard.
type guarded[V any] struct {
	list *CircularArrayList[V]
	via  *seqlock.Guard
}

var _ ringlist.List[int] = guarded[int]{}

func (view guarded[V]) hold(write bool) (*seqlock.Guard, error) {
	nested, err := view.via.Hold(write)
	if err != nil {
		return nil, ErrConcurrentModification
	}
	return nested, nil
}

func (view guarded[V]) Size() int {
	nested, err := view.hold(false)
	if err != nil {
		return view.list.Size()
	}
	defer nested.Release()
	return view.list.ring.Len()
}

func (view guarded[V]) Get(i int) (v V, err error) {
	nested, err := view.hold(false)
	if err != nil {
		return view.list.Get(i)
	}
	defer nested.Release()
	return view.list.ring.Get(i)
}

func (view guarded[V]) Set(i int, v V) (old V, err error) {
	nested, err := view.hold(true)
	if err != nil {
		return
	}
	defer nested.Release()
	return view.list.set(i, v)
}

func (view guarded[V]) Insert(i int, v V) (ringlist.ElementId, error) {
	nested, err := view.hold(true)
	if err != nil {
		return nil, err
	}
	defer nested.Release()
	return view.list.insert(i, v)
}

func (view guarded[V]) Append(v V) (ringlist.ElementId, error) {
	nested, err := view.hold(true)
	if err != nil {
		return nil, err
	}
	defer nested.Release()
	return view.list.insert(view.list.ring.Len(), v)
}

// InsertAll places values starting at logical index i in one structural
// operation.
func (view guarded[V]) InsertAll(i int, values []V) error {
	nested, err := view.hold(true)
	if err != nil {
		return err
	}
	defer nested.Release()
	return view.list.insertAll(i, values)
}

func (view guarded[V]) Remove(i int) (v V, err error) {
	nested, err := view.hold(true)
	if err != nil {
		return
	}
	defer nested.Release()
	return view.list.remove(i)
}

// RemoveRange deletes the logical range [from, to) in one structural
// operation.
func (view guarded[V]) RemoveRange(from, to int) error {
	nested, err := view.hold(true)
	if err != nil {
		return err
	}
	defer nested.Release()
	return view.list.removeRange(from, to)
}

// Clear removes all elements. With a released guard it falls through to
// the list; under a read guard that loses the upgrade race it is a no-op.
func (view guarded[V]) Clear() {
	if !view.via.Held() {
		view.list.Clear()
		return
	}
	nested, err := view.hold(true)
	if err != nil {
		return
	}
	defer nested.Release()
	view.list.clear()
}

func (view guarded[V]) Element(id ringlist.ElementId) (ringlist.CollectionElement[V], error) {
	eid, err := view.list.own(id)
	if err != nil {
		return nil, err
	}
	nested, err := view.hold(false)
	if err != nil {
		return view.list.Element(id)
	}
	defer nested.Release()
	if !eid.Present() {
		return nil, ErrNotFound
	}
	v, err := view.list.ring.Get(eid.index)
	if err != nil {
		return nil, ErrNotFound
	}
	return element[V]{id: eid, val: v}, nil
}

func (view guarded[V]) AdjacentElement(id ringlist.ElementId, next bool) (ringlist.CollectionElement[V], error) {
	eid, err := view.list.own(id)
	if err != nil {
		return nil, err
	}
	nested, err := view.hold(false)
	if err != nil {
		return view.list.AdjacentElement(id, next)
	}
	defer nested.Release()
	if !eid.Present() {
		return nil, ErrNotFound
	}
	j := eid.index - 1
	if next {
		j = eid.index + 1
	}
	if j < 0 || j >= view.list.ring.Len() {
		return nil, nil
	}
	v, err := view.list.ring.Get(j)
	if err != nil {
		return nil, ErrNotFound
	}
	return element[V]{id: elementId[V]{list: view.list, index: j, stamp: eid.stamp}, val: v}, nil
}

func (view guarded[V]) TerminalElement(first bool) (ringlist.CollectionElement[V], bool) {
	nested, err := view.hold(false)
	if err != nil {
		return view.list.TerminalElement(first)
	}
	defer nested.Release()
	size := view.list.ring.Len()
	if size == 0 {
		return nil, false
	}
	i := 0
	if !first {
		i = size - 1
	}
	v, err := view.list.ring.Get(i)
	if err != nil {
		return nil, false
	}
	return element[V]{
		id:  elementId[V]{list: view.list, index: i, stamp: view.list.structural.Load()},
		val: v,
	}, true
}

// MutableElement returns a handle whose mutations nest through the view's
// guard.
func (view guarded[V]) MutableElement(id ringlist.ElementId) (ringlist.MutableCollectionElement[V], error) {
	eid, err := view.list.own(id)
	if err != nil {
		return nil, err
	}
	return &mutableElement[V]{list: view.list, id: eid, via: view.via}, nil
}

// Lock nests through the view's guard when it still holds access. An
// upgrade from read to write blocks until this guard is the sole reader;
// two read guards upgrading concurrently cannot both proceed, so compound
// writers should take the write lock up front.
func (view guarded[V]) Lock(write bool) *seqlock.Guard {
	for {
		if nested, err := view.via.Hold(write); err == nil {
			return nested
		}
		if !view.via.Held() {
			return view.list.Lock(write)
		}
		runtime.Gosched()
	}
}

// TryLock is the non-blocking variant of Lock.
func (view guarded[V]) TryLock(write bool) (*seqlock.Guard, bool) {
	if nested, err := view.via.Hold(write); err == nil {
		return nested, true
	}
	if view.via.Held() {
		return nil, false
	}
	return view.list.TryLock(write)
}

func (view guarded[V]) Stamp(structuralOnly bool) uint64 {
	return view.list.Stamp(structuralOnly)
}

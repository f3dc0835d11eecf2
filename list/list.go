// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package list implements CircularArrayList, a thread-safe, randomly
// mutable list backed by a circular buffer.
//
// Reads go through an optimistic fast path: capture a lock stamp, read,
// validate, and only fall back to a shared lock when writers keep
// interfering. Writes serialize on the list's seqlock. Every structural
// change (insert, remove, clear, capacity change) bumps the structural
// stamp, invalidating outstanding element ids, cursors, and sub-list
// views, which re-validate lazily on next use.
package list

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dacapoday/ringlist"
	"github.com/dacapoday/ringlist/internal/ring"
	"github.com/dacapoday/ringlist/seqlock"
)

// retries bounds optimistic read attempts before falling back to a
// shared lock.
const retries = 3

// CircularArrayList is an array-backed list addressed through stable
// element identities. The zero value is unusable; call Load first.
type CircularArrayList[V any] struct {
	lock seqlock.Lock
	ring ring.Ring[V]

	structural atomic.Uint64
	value      atomic.Uint64

	identity uuid.UUID
	locking  bool
}

var _ ringlist.List[int] = (*CircularArrayList[int])(nil)

// New allocates and loads a list with the given policy.
func New[V any](opt Option) (*CircularArrayList[V], error) {
	list := new(CircularArrayList[V])
	if err := list.Load(opt); err != nil {
		return nil, err
	}
	return list, nil
}

// Load configures the list, replacing any existing content. Outstanding
// ids and views of a previous load become stale.
func (list *CircularArrayList[V]) Load(opt Option) error {
	guard := list.Lock(true)
	defer guard.Release()
	if err := list.ring.Load(opt); err != nil {
		return err
	}
	list.identity = uuid.New()
	list.locking = !unsynchronized(opt)
	list.bumpStructural()
	return nil
}

// Identity returns the collection identity baked into every id this list
// issues.
func (list *CircularArrayList[V]) Identity() uuid.UUID {
	return list.identity
}

// Lock blocks until the requested access is available and returns a
// scoped guard. In unsynchronized mode the guard is inert.
func (list *CircularArrayList[V]) Lock(write bool) *seqlock.Guard {
	if !list.locking {
		return seqlock.None()
	}
	if write {
		return list.lock.Lock()
	}
	return list.lock.RLock()
}

// TryLock is the non-blocking variant of Lock.
func (list *CircularArrayList[V]) TryLock(write bool) (*seqlock.Guard, bool) {
	if !list.locking {
		return seqlock.None(), true
	}
	if write {
		return list.lock.TryLock()
	}
	return list.lock.TryRLock()
}

// Stamp returns the version counter for the requested class of change.
func (list *CircularArrayList[V]) Stamp(structuralOnly bool) uint64 {
	if structuralOnly {
		return list.structural.Load()
	}
	return list.value.Load()
}

// bumpStructural registers a structural change. Content changed too, so
// the value stamp advances with it. Callers hold the write lock.
func (list *CircularArrayList[V]) bumpStructural() uint64 {
	list.value.Add(1)
	return list.structural.Add(1)
}

// Size returns the number of elements.
func (list *CircularArrayList[V]) Size() int {
	if !list.locking {
		return list.ring.Len()
	}
	for range retries {
		stamp := list.lock.Optimistic()
		size := list.ring.Len()
		if list.lock.Validate(stamp) {
			return size
		}
	}
	guard := list.lock.RLock()
	defer guard.Release()
	return list.ring.Len()
}

// Capacity returns the current length of the backing array.
func (list *CircularArrayList[V]) Capacity() int {
	guard := list.Lock(false)
	defer guard.Release()
	return list.ring.Cap()
}

// Get returns the value at logical index i. The read is optimistic: the
// value is re-validated against the lock stamp before it is returned, so
// no torn result can escape; persistent writer interference falls back
// to a shared lock.
func (list *CircularArrayList[V]) Get(i int) (v V, err error) {
	if !list.locking {
		return list.ring.Get(i)
	}
	for range retries {
		stamp := list.lock.Optimistic()
		if !stamp.Valid() {
			break
		}
		got, ok := list.ring.Peek(i)
		if !list.lock.Validate(stamp) {
			continue
		}
		if !ok {
			err = ErrOutOfRange
			return
		}
		return got, nil
	}
	guard := list.lock.RLock()
	defer guard.Release()
	return list.ring.Get(i)
}

// Set replaces the value at i, returning the previous value. A value
// change: outstanding ids and views stay live.
func (list *CircularArrayList[V]) Set(i int, v V) (old V, err error) {
	guard := list.Lock(true)
	defer guard.Release()
	return list.set(i, v)
}

// set assumes the write lock is held.
func (list *CircularArrayList[V]) set(i int, v V) (old V, err error) {
	old, err = list.ring.Set(i, v)
	if err == nil {
		list.value.Add(1)
	}
	return
}

// Insert places v at logical index i and returns its id. A bounded list
// that is full evicts from the head; when i addresses the very front the
// incoming value is itself the oldest and the returned id is dead.
func (list *CircularArrayList[V]) Insert(i int, v V) (ringlist.ElementId, error) {
	guard := list.Lock(true)
	defer guard.Release()
	return list.insert(i, v)
}

// Append places v at the end of the list.
func (list *CircularArrayList[V]) Append(v V) (ringlist.ElementId, error) {
	guard := list.Lock(true)
	defer guard.Release()
	return list.insert(list.ring.Len(), v)
}

// insert assumes the write lock is held.
func (list *CircularArrayList[V]) insert(i int, v V) (ringlist.ElementId, error) {
	evicted, err := list.ring.Insert(i, v)
	if err != nil {
		return nil, err
	}
	stamp := list.bumpStructural()
	if evicted > i {
		// the incoming value was the oldest of the combined sequence
		return elementId[V]{list: list, index: -1, stamp: stamp}, nil
	}
	return elementId[V]{list: list, index: i - evicted, stamp: stamp}, nil
}

// InsertAll places values starting at logical index i in one structural
// operation. In bounded mode the eviction drops the oldest stored
// elements first, then the earliest-arriving excess of the batch itself.
func (list *CircularArrayList[V]) InsertAll(i int, values []V) error {
	guard := list.Lock(true)
	defer guard.Release()
	return list.insertAll(i, values)
}

// insertAll assumes the write lock is held.
func (list *CircularArrayList[V]) insertAll(i int, values []V) error {
	_, err := list.ring.InsertAll(i, values)
	if err == nil && len(values) > 0 {
		list.bumpStructural()
	}
	return err
}

// Remove deletes and returns the value at i.
func (list *CircularArrayList[V]) Remove(i int) (v V, err error) {
	guard := list.Lock(true)
	defer guard.Release()
	return list.remove(i)
}

// remove assumes the write lock is held.
func (list *CircularArrayList[V]) remove(i int) (v V, err error) {
	v, err = list.ring.Remove(i)
	if err == nil {
		list.bumpStructural()
	}
	return
}

// RemoveRange deletes the logical range [from, to) in one structural
// operation.
func (list *CircularArrayList[V]) RemoveRange(from, to int) error {
	guard := list.Lock(true)
	defer guard.Release()
	return list.removeRange(from, to)
}

// removeRange assumes the write lock is held.
func (list *CircularArrayList[V]) removeRange(from, to int) error {
	err := list.ring.RemoveRange(from, to)
	if err == nil && from < to {
		list.bumpStructural()
	}
	return err
}

// Clear removes all elements and releases every stored reference.
func (list *CircularArrayList[V]) Clear() {
	guard := list.Lock(true)
	defer guard.Release()
	list.clear()
}

// clear assumes the write lock is held.
func (list *CircularArrayList[V]) clear() {
	list.ring.Clear()
	list.bumpStructural()
}

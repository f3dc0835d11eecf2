// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package ring implements the circular buffer storage engine behind the
// array-backed collections: logical-to-physical index translation,
// wraparound-safe block moves, capacity growth and shrink under policy,
// and head eviction in bounded mode.
//
// The engine is unsynchronized; callers serialize access (the list
// package brackets every mutation with its seqlock). The one exception
// is Peek, which unsynchronized optimistic readers call concurrently with
// writers: the backing array is therefore published through an atomic
// pointer, so a reader can never observe a torn slice header.
package ring

import "sync/atomic"

// Ring is a growable circular buffer of V. Logical index i lives at
// physical slot (offset+i) mod cap. The zero value is unusable; call Load
// first. A Ring must not be copied after first use.
type Ring[V any] struct {
	array  atomic.Pointer[[]V] // swapped whole on realloc, never resized in place
	offset int                 // physical index of logical 0
	size   int

	min       int // capacity floor, shrink never goes below
	max       int // capacity bound triggering eviction; 0 means unbounded
	growth    float64
	occupancy float64
	reject    bool // bounded mode fails instead of evicting
}

// Load configures the ring and allocates its initial storage.
// Replaces any existing content.
func (ring *Ring[V]) Load(opt Option) error {
	initial := opt.InitialCapacity()
	min := opt.MinCapacity()
	max := opt.MaxCapacity()
	growth := opt.GrowthFactor()
	occupancy := opt.MinOccupancy()

	if initial < 0 || min < 0 || max < 0 || growth < 0 || occupancy < 0 || occupancy > 1 {
		return ErrInvalidOption
	}
	if max > 0 && (min > max || initial > max) {
		return ErrInvalidOption
	}
	if max > limit {
		return ErrInvalidOption
	}
	if initial < min {
		initial = min
	}
	if initial > limit {
		return ErrOutOfSpace
	}

	ring.min = min
	ring.max = max
	ring.growth = growth
	ring.occupancy = occupancy
	ring.reject = rejecting(opt)
	array := make([]V, initial)
	ring.array.Store(&array)
	ring.offset = 0
	ring.size = 0
	return nil
}

// slice returns the current backing array. Writers observe their own
// swaps; Peek's load pairs with the atomic store in realloc.
func (ring *Ring[V]) slice() []V {
	if p := ring.array.Load(); p != nil {
		return *p
	}
	return nil
}

// Len returns the number of stored elements.
func (ring *Ring[V]) Len() int {
	return ring.size
}

// Cap returns the current capacity of the backing array.
func (ring *Ring[V]) Cap() int {
	return len(ring.slice())
}

// Max returns the capacity bound, or 0 when unbounded.
func (ring *Ring[V]) Max() int {
	return ring.max
}

// Rejecting reports whether a full bounded ring rejects inserts instead
// of evicting from the head.
func (ring *Ring[V]) Rejecting() bool {
	return ring.reject
}

// slot translates a logical position to a physical index. Positions in
// [-cap, 2*cap) are accepted so room-making can address slots just
// outside the live window.
func (ring *Ring[V]) slot(i int) int {
	c := len(ring.slice())
	i += ring.offset
	i %= c
	if i < 0 {
		i += c
	}
	return i
}

// Get returns the value at logical index i.
func (ring *Ring[V]) Get(i int) (v V, err error) {
	if i < 0 || i >= ring.size {
		err = ErrOutOfRange
		return
	}
	return ring.slice()[ring.slot(i)], nil
}

// Set replaces the value at logical index i, returning the old value.
// A value change: offset and size are untouched.
func (ring *Ring[V]) Set(i int, v V) (old V, err error) {
	if i < 0 || i >= ring.size {
		err = ErrOutOfRange
		return
	}
	array := ring.slice()
	p := ring.slot(i)
	old = array[p]
	array[p] = v
	return
}

// Peek reads logical index i without blocking, for optimistic readers.
// The array pointer loads atomically and a published array is never
// resized in place, so length and pointer always agree; offset and size
// may be stale mid-write but are range-checked against the loaded array,
// so no index can escape it. The caller must still validate its stamp
// before trusting the value.
func (ring *Ring[V]) Peek(i int) (v V, ok bool) {
	array := ring.slice()
	offset := ring.offset
	size := ring.size
	c := len(array)
	if c == 0 || i < 0 || i >= size || size > c || offset < 0 || offset >= c {
		return
	}
	return array[(offset+i)%c], true
}

// Slices returns the live content as at most two contiguous segments in
// logical order. Valid until the next structural operation.
func (ring *Ring[V]) Slices() (head, tail []V) {
	if ring.size == 0 {
		return
	}
	array := ring.slice()
	end := ring.offset + ring.size
	if end <= len(array) {
		return array[ring.offset:end], nil
	}
	return array[ring.offset:], array[:end-len(array)]
}

// Insert places v at logical index i. In bounded mode an insert that no
// longer fits evicts from the head (or fails with ErrUnsupported when
// rejecting); evicted reports how many of the oldest elements were
// dropped, counting the incoming value itself when i addresses the very
// front of a full ring.
func (ring *Ring[V]) Insert(i int, v V) (evicted int, err error) {
	one := [1]V{v}
	return ring.InsertAll(i, one[:])
}

// InsertAll places values at logical index i, preserving their relative
// order. When the batch exceeds the bound, the eviction drops the head of
// the combined sequence: the oldest stored elements first, then the
// earliest-arriving excess of the batch itself.
func (ring *Ring[V]) InsertAll(i int, values []V) (evicted int, err error) {
	if i < 0 || i > ring.size {
		err = ErrOutOfRange
		return
	}
	n := len(values)
	if n == 0 {
		return
	}

	need := ring.size + n
	if ring.max > 0 && need > ring.max {
		if ring.reject {
			err = ErrUnsupported
			return
		}
		evicted = need - ring.max
		need = ring.max
	}
	if err = ring.grow(need); err != nil {
		return
	}

	if evicted > 0 {
		// The combined sequence is stored[0:i] + values + stored[i:].
		// Its first `evicted` entries go: stored head first, then the
		// batch prefix. size <= max keeps stored[i:] out of reach.
		drop := min(evicted, i)
		if drop > 0 {
			ring.closeGap(0, drop)
			i -= drop
		}
		values = values[evicted-drop:]
		n = len(values)
		if n == 0 {
			return
		}
	}

	ring.makeRoom(i, n)
	array := ring.slice()
	for k, v := range values {
		array[ring.slot(i+k)] = v
	}
	assertGeometry("InsertAll", ring.offset, ring.size, len(array))
	return
}

// Remove deletes and returns the value at logical index i, then applies
// the shrink policy.
func (ring *Ring[V]) Remove(i int) (v V, err error) {
	if i < 0 || i >= ring.size {
		err = ErrOutOfRange
		return
	}
	v = ring.slice()[ring.slot(i)]
	ring.closeGap(i, i+1)
	ring.trim()
	assertGeometry("Remove", ring.offset, ring.size, ring.Cap())
	return
}

// RemoveRange deletes the logical range [from, to), then applies the
// shrink policy.
func (ring *Ring[V]) RemoveRange(from, to int) error {
	if from < 0 || from > to || to > ring.size {
		return ErrOutOfRange
	}
	if from == to {
		return nil
	}
	ring.closeGap(from, to)
	ring.trim()
	assertGeometry("RemoveRange", ring.offset, ring.size, ring.Cap())
	return nil
}

// Clear removes all elements, releasing every stored reference, and
// shrinks the array per policy.
func (ring *Ring[V]) Clear() {
	var zero V
	array := ring.slice()
	for i := range ring.size {
		array[ring.slot(i)] = zero
	}
	ring.size = 0
	ring.offset = 0
	ring.trim()
}

// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package ring

import "math"

// limit caps the backing array length regardless of policy.
const limit = math.MaxInt32

// grow ensures capacity for need elements. New capacity is the larger of
// need and cap+round(growth*cap), raised to the floor and clipped to the
// bound. Content is re-laid out from physical 0, so offset resets.
func (ring *Ring[V]) grow(need int) error {
	capacity := ring.Cap()
	if need <= capacity {
		return nil
	}
	if need > limit {
		return ErrOutOfSpace
	}
	next := capacity + int(math.Round(ring.growth*float64(capacity)))
	if next < need {
		next = need
	}
	if next < ring.min {
		next = ring.min
	}
	if ring.max > 0 && next > ring.max {
		next = ring.max
	}
	if next > limit {
		next = limit
	}
	ring.realloc(next)
	return nil
}

// trim shrinks the array after a removal when occupancy fell below
// policy: capacity must not exceed max(min, ceil(size/occupancy)).
// Never called on the insert path, so growth cannot thrash against it.
func (ring *Ring[V]) trim() {
	if ring.occupancy <= 0 {
		return
	}
	capacity := ring.Cap()
	if capacity <= ring.min {
		return
	}
	allowed := int(math.Ceil(float64(ring.size) / ring.occupancy))
	if allowed < ring.min {
		allowed = ring.min
	}
	if capacity <= allowed {
		return
	}
	next := ring.size
	if next < ring.min {
		next = ring.min
	}
	ring.realloc(next)
}

// realloc re-lays out the content in a fresh array published with an
// atomic swap. The old array stays intact for optimistic readers still
// holding it.
func (ring *Ring[V]) realloc(capacity int) {
	array := make([]V, capacity)
	head, tail := ring.Slices()
	n := copy(array, head)
	copy(array[n:], tail)
	ring.array.Store(&array)
	ring.offset = 0
}

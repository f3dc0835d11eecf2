// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package ring

// shift copies the logical range [src, src+count) onto [dst, dst+count).
// Either range may wrap past the end of the physical array; the copy is
// split into contiguous segments, walked front-to-back when dst < src and
// back-to-front when dst > src so overlapping ranges never clobber
// not-yet-copied source slots. Logical positions may be negative: slots
// just before logical 0 are addressed during prefix room-making.
func (ring *Ring[V]) shift(src, dst, count int) {
	if count <= 0 || src == dst {
		return
	}
	array := ring.slice()
	c := len(array)
	if dst < src {
		done := 0
		for done < count {
			sp := ring.slot(src + done)
			dp := ring.slot(dst + done)
			chunk := count - done
			if r := c - sp; r < chunk {
				chunk = r
			}
			if r := c - dp; r < chunk {
				chunk = r
			}
			copy(array[dp:dp+chunk], array[sp:sp+chunk])
			done += chunk
		}
		return
	}
	remain := count
	for remain > 0 {
		sp := ring.slot(src + remain - 1)
		dp := ring.slot(dst + remain - 1)
		chunk := remain
		if sp+1 < chunk {
			chunk = sp + 1
		}
		if dp+1 < chunk {
			chunk = dp + 1
		}
		copy(array[dp+1-chunk:dp+1], array[sp+1-chunk:sp+1])
		remain -= chunk
	}
}

// makeRoom opens a gap of n cleared-for-write slots at logical index i by
// shifting whichever side of the list is shorter, bounding the move at
// O(min(i, size-i)) element copies. The caller guarantees capacity for
// size+n. On return size includes the gap; the caller fills [i, i+n).
func (ring *Ring[V]) makeRoom(i, n int) {
	if i <= ring.size-i {
		ring.shift(0, -n, i)
		ring.offset = ring.slot(-n)
	} else {
		ring.shift(i, i+n, ring.size-i)
	}
	ring.size += n
}

// closeGap removes the logical range [from, to) by shifting whichever
// side is shorter over the gap. Vacated slots are zeroed so no stale
// reference lingers outside the live window.
func (ring *Ring[V]) closeGap(from, to int) {
	count := to - from
	array := ring.slice()
	var zero V
	if from <= ring.size-to {
		ring.shift(0, count, from)
		for j := range count {
			array[ring.slot(j)] = zero
		}
		ring.offset = ring.slot(count)
	} else {
		ring.shift(to, from, ring.size-to)
		for j := ring.size - count; j < ring.size; j++ {
			array[ring.slot(j)] = zero
		}
	}
	ring.size -= count
}

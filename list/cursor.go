// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package list

import (
	"github.com/dacapoday/ringlist"
)

// Cursor is a directional element spliterator over a bounded logical
// range of a list. It holds no claim on the buffer: only logical indices
// and the structural stamp captured at creation. Each step re-validates
// the stamp, so use after an external structural change fails with
// ErrConcurrentModification, while mutations through the cursor itself
// refresh the stamp and bookkeeping atomically with the change.
//
// Usage:
//
//	cursor := list.Cursor(true)
//	for cursor.Next() {
//	    el := cursor.Element()
//	    // process el.Value()
//	}
//	if err := cursor.Err(); err != nil {
//	    // a writer invalidated the traversal
//	}
type Cursor[V any] struct {
	list    *CircularArrayList[V]
	start   int // inclusive lower bound
	end     int // exclusive upper bound
	pos     int // traversal boundary: next yield is pos (forward) or pos-1
	cur     int // index of the last yielded element, -1 when none
	forward bool
	stamp   uint64
	el      element[V]
	err     error
}

// Cursor returns a cursor over the whole list, traversing forward or in
// reverse.
func (list *CircularArrayList[V]) Cursor(forward bool) *Cursor[V] {
	guard := list.Lock(false)
	defer guard.Release()
	cursor, _ := list.cursor(0, list.ring.Len(), forward)
	return cursor
}

// CursorRange returns a cursor over the logical range [from, to).
func (list *CircularArrayList[V]) CursorRange(from, to int, forward bool) (*Cursor[V], error) {
	guard := list.Lock(false)
	defer guard.Release()
	if from < 0 || from > to || to > list.ring.Len() {
		return nil, ErrOutOfRange
	}
	return list.cursor(from, to, forward)
}

func (list *CircularArrayList[V]) cursor(from, to int, forward bool) (*Cursor[V], error) {
	pos := from
	if !forward {
		pos = to
	}
	return &Cursor[V]{
		list:    list,
		start:   from,
		end:     to,
		pos:     pos,
		cur:     -1,
		forward: forward,
		stamp:   list.structural.Load(),
	}, nil
}

// Next advances the cursor one element in its direction. Returns false at
// the end of the range or on invalidation; check Err to distinguish.
func (cursor *Cursor[V]) Next() bool {
	if cursor.err != nil {
		return false
	}
	if cursor.list.structural.Load() != cursor.stamp {
		cursor.err = ErrConcurrentModification
		return false
	}

	var i int
	if cursor.forward {
		if cursor.pos >= cursor.end {
			return false
		}
		i = cursor.pos
	} else {
		if cursor.pos <= cursor.start {
			return false
		}
		i = cursor.pos - 1
	}

	v, err := cursor.list.Get(i)
	if err != nil || cursor.list.structural.Load() != cursor.stamp {
		cursor.err = ErrConcurrentModification
		return false
	}

	if cursor.forward {
		cursor.pos++
	} else {
		cursor.pos--
	}
	cursor.cur = i
	cursor.el = element[V]{
		id:  elementId[V]{list: cursor.list, index: i, stamp: cursor.stamp},
		val: v,
	}
	return true
}

// Element returns the last element yielded by Next.
func (cursor *Cursor[V]) Element() ringlist.CollectionElement[V] {
	return cursor.el
}

// Err returns the invalidation error, if any. A nil Err after Next
// returned false means the range is simply exhausted.
func (cursor *Cursor[V]) Err() error {
	return cursor.err
}

// Split divides the remaining range at its midpoint relative to the
// current position, returning a new independent cursor over the first
// half and shrinking this cursor to the second. Returns nil when the
// remainder is too small to split.
func (cursor *Cursor[V]) Split() *Cursor[V] {
	if cursor.err != nil {
		return nil
	}
	var lo, hi int
	if cursor.forward {
		lo, hi = cursor.pos, cursor.end
	} else {
		lo, hi = cursor.start, cursor.pos
	}
	if hi-lo < 2 {
		return nil
	}
	mid := lo + (hi-lo)/2

	other := &Cursor[V]{
		list:    cursor.list,
		start:   lo,
		end:     mid,
		cur:     -1,
		forward: cursor.forward,
		stamp:   cursor.stamp,
	}
	if cursor.forward {
		other.pos = lo
		cursor.start = mid
		cursor.pos = mid
	} else {
		other.pos = mid
		cursor.start = mid
	}
	return other
}

// escalate acquires the write lock for a single structural operation and
// re-validates the cursor under it. The caller releases the guard right
// after the operation; the cursor never holds the lock between calls.
func (cursor *Cursor[V]) escalate() error {
	if cursor.err != nil {
		return cursor.err
	}
	if cursor.cur < 0 {
		return ErrUnsupported
	}
	if cursor.list.structural.Load() != cursor.stamp {
		cursor.err = ErrConcurrentModification
		return cursor.err
	}
	return nil
}

// Set replaces the last yielded element's value in place.
func (cursor *Cursor[V]) Set(v V) error {
	guard := cursor.list.Lock(true)
	defer guard.Release()
	if err := cursor.escalate(); err != nil {
		return err
	}
	if _, err := cursor.list.ring.Set(cursor.cur, v); err != nil {
		return err
	}
	cursor.list.value.Add(1)
	cursor.el.val = v
	return nil
}

// Remove deletes the last yielded element, shrinking the cursor's range
// and keeping its position consistent without a re-scan.
func (cursor *Cursor[V]) Remove() error {
	guard := cursor.list.Lock(true)
	defer guard.Release()
	if err := cursor.escalate(); err != nil {
		return err
	}
	if _, err := cursor.list.ring.Remove(cursor.cur); err != nil {
		return err
	}
	cursor.stamp = cursor.list.bumpStructural()
	cursor.end--
	if cursor.forward {
		cursor.pos--
	}
	cursor.cur = -1
	return nil
}

// Add inserts v before or after the last yielded element. The new element
// is not yielded by this cursor; bounds and position adjust in the same
// critical section, tracking head eviction in bounded mode.
func (cursor *Cursor[V]) Add(v V, before bool) (ringlist.ElementId, error) {
	guard := cursor.list.Lock(true)
	defer guard.Release()
	if err := cursor.escalate(); err != nil {
		return nil, err
	}

	i := cursor.cur
	if !before {
		i++
	}
	evicted, err := cursor.list.ring.Insert(i, v)
	if err != nil {
		return nil, err
	}
	cursor.stamp = cursor.list.bumpStructural()

	drop := min(evicted, i)
	inserted := 0
	if evicted <= i {
		inserted = 1
	}
	if cursor.cur < drop {
		cursor.cur = -1
	} else {
		cursor.cur -= drop
	}
	cursor.start -= min(drop, cursor.start)
	cursor.end += inserted - drop
	cursor.pos -= min(drop, cursor.pos)
	if inserted == 1 {
		at := i - drop
		if cursor.forward {
			if at <= cursor.pos {
				cursor.pos++
			}
		} else {
			if at < cursor.pos {
				cursor.pos++
			}
		}
		if cursor.cur >= 0 && at <= cursor.cur {
			cursor.cur++
		}
		return elementId[V]{list: cursor.list, index: at, stamp: cursor.stamp}, nil
	}
	return elementId[V]{list: cursor.list, index: -1, stamp: cursor.stamp}, nil
}

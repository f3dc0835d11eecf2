// Package sorted implements an ordered set speaking the same
// element-identity and locking contract as the circular-buffer list,
// with ordering delegated to an in-memory B-tree.
//
// Element position follows from the ordering function, so adjacency-based
// insertion (MutableCollectionElement.Add) is unsupported here; a value
// replacement that would reorder the element is a structural change.
package sorted

import (
	"bytes"
	"sync/atomic"

	"github.com/google/btree"
	"github.com/google/uuid"

	"github.com/dacapoday/ringlist"
	"github.com/dacapoday/ringlist/seqlock"
)

const degree = 32

// Set is a thread-safe ordered set of V.
type Set[V any] struct {
	lock seqlock.Lock
	tree *btree.BTreeG[V]
	less func(a, b V) bool

	structural atomic.Uint64
	value      atomic.Uint64

	identity uuid.UUID
}

var _ ringlist.Collection[int] = (*Set[int])(nil)

// New creates an empty set ordered by less.
func New[V any](less func(a, b V) bool) *Set[V] {
	set := &Set[V]{
		tree:     btree.NewG(degree, btree.LessFunc[V](less)),
		less:     less,
		identity: uuid.New(),
	}
	set.bumpStructural()
	return set
}

// Identity returns the collection identity baked into every id this set
// issues.
func (set *Set[V]) Identity() uuid.UUID {
	return set.identity
}

// Lock blocks until the requested access is available. Reads of the tree
// are always pessimistic: optimistic traversal of linked nodes cannot be
// made torn-read safe the way flat-array peeks can.
func (set *Set[V]) Lock(write bool) *seqlock.Guard {
	if write {
		return set.lock.Lock()
	}
	return set.lock.RLock()
}

// TryLock is the non-blocking variant of Lock.
func (set *Set[V]) TryLock(write bool) (*seqlock.Guard, bool) {
	if write {
		return set.lock.TryLock()
	}
	return set.lock.TryRLock()
}

// Stamp returns the version counter for the requested class of change.
func (set *Set[V]) Stamp(structuralOnly bool) uint64 {
	if structuralOnly {
		return set.structural.Load()
	}
	return set.value.Load()
}

func (set *Set[V]) bumpStructural() uint64 {
	set.value.Add(1)
	return set.structural.Add(1)
}

// Size returns the number of elements.
func (set *Set[V]) Size() int {
	guard := set.Lock(false)
	defer guard.Release()
	return set.tree.Len()
}

// Contains reports whether v is in the set.
func (set *Set[V]) Contains(v V) bool {
	guard := set.Lock(false)
	defer guard.Release()
	return set.tree.Has(v)
}

// Add inserts v. Returns the element's id and whether the set changed;
// adding a value already present returns the existing element's id.
func (set *Set[V]) Add(v V) (ringlist.ElementId, bool) {
	guard := set.Lock(true)
	defer guard.Release()
	if set.tree.Has(v) {
		return elementId[V]{set: set, val: v, stamp: set.structural.Load()}, false
	}
	set.tree.ReplaceOrInsert(v)
	stamp := set.bumpStructural()
	return elementId[V]{set: set, val: v, stamp: stamp}, true
}

// Remove deletes v, reporting whether it was present.
func (set *Set[V]) Remove(v V) bool {
	guard := set.Lock(true)
	defer guard.Release()
	if _, ok := set.tree.Delete(v); !ok {
		return false
	}
	set.bumpStructural()
	return true
}

// Clear removes all elements.
func (set *Set[V]) Clear() {
	guard := set.Lock(true)
	defer guard.Release()
	set.tree.Clear(false)
	set.bumpStructural()
}

// Values returns the contents in ascending order.
func (set *Set[V]) Values() []V {
	guard := set.Lock(false)
	defer guard.Release()
	values := make([]V, 0, set.tree.Len())
	set.tree.Ascend(func(v V) bool {
		values = append(values, v)
		return true
	})
	return values
}

// Element returns the element currently named by id.
func (set *Set[V]) Element(id ringlist.ElementId) (ringlist.CollectionElement[V], error) {
	guard := set.Lock(false)
	defer guard.Release()
	eid, err := set.own(id)
	if err != nil {
		return nil, err
	}
	return element[V]{id: eid, val: eid.val}, nil
}

// AdjacentElement returns the next (or previous) element in sort order,
// or nil if id is terminal.
func (set *Set[V]) AdjacentElement(id ringlist.ElementId, next bool) (ringlist.CollectionElement[V], error) {
	guard := set.Lock(false)
	defer guard.Release()
	eid, err := set.own(id)
	if err != nil {
		return nil, err
	}

	var neighbor V
	var found bool
	if next {
		set.tree.AscendGreaterOrEqual(eid.val, func(v V) bool {
			if !found && set.less(eid.val, v) {
				neighbor = v
				found = true
			}
			return !found
		})
	} else {
		set.tree.DescendLessOrEqual(eid.val, func(v V) bool {
			if !found && set.less(v, eid.val) {
				neighbor = v
				found = true
			}
			return !found
		})
	}
	if !found {
		return nil, nil
	}
	id2 := elementId[V]{set: set, val: neighbor, stamp: eid.stamp}
	return element[V]{id: id2, val: neighbor}, nil
}

// TerminalElement returns the smallest (or largest) element, or false
// when the set is empty.
func (set *Set[V]) TerminalElement(first bool) (ringlist.CollectionElement[V], bool) {
	guard := set.Lock(false)
	defer guard.Release()
	var v V
	var ok bool
	if first {
		v, ok = set.tree.Min()
	} else {
		v, ok = set.tree.Max()
	}
	if !ok {
		return nil, false
	}
	id := elementId[V]{set: set, val: v, stamp: set.structural.Load()}
	return element[V]{id: id, val: v}, true
}

// own narrows a contract-level id to a live id of this set. Callers hold
// at least a read guard.
func (set *Set[V]) own(id ringlist.ElementId) (elementId[V], error) {
	eid, ok := id.(elementId[V])
	if !ok || eid.set != set || !eid.Present() {
		return elementId[V]{}, ringlist.ErrNotFound
	}
	if !set.tree.Has(eid.val) {
		return elementId[V]{}, ringlist.ErrNotFound
	}
	return eid, nil
}

// elementId names an element of a sorted set by its value. Like list ids
// it stays live only until the next structural change of the collection.
type elementId[V any] struct {
	set   *Set[V]
	val   V
	stamp uint64
}

func (id elementId[V]) Present() bool {
	return id.set != nil && id.stamp == id.set.structural.Load()
}

func (id elementId[V]) Collection() uuid.UUID {
	if id.set == nil {
		return uuid.UUID{}
	}
	return id.set.identity
}

func (id elementId[V]) Compare(other ringlist.ElementId) int {
	o, ok := other.(elementId[V])
	if !ok || o.set != id.set {
		mine, theirs := id.Collection(), other.Collection()
		return bytes.Compare(mine[:], theirs[:])
	}
	switch {
	case id.set.less(id.val, o.val):
		return -1
	case id.set.less(o.val, id.val):
		return 1
	}
	return 0
}

type element[V any] struct {
	id  elementId[V]
	val V
}

func (el element[V]) ID() ringlist.ElementId { return el.id }
func (el element[V]) Value() V               { return el.val }

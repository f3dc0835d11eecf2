// Package ringlist defines the shared contracts for a family of concurrent
// collections: stable element identities, element handles, and the
// transactional locking vocabulary every collection in the library exposes.
//
// A collection names its slots with opaque, ordered ElementId tokens.
// Callers bracket work with Lock guards, detect change classes with Stamp
// counters, and traverse through element handles that re-validate their
// identity on every use. The circular-buffer list engine lives in the list
// package; an ordered set sharing the same contract lives in sorted.
package ringlist

import (
	"github.com/google/uuid"

	"github.com/dacapoday/ringlist/seqlock"
)

// ElementId is an opaque token naming a slot that currently (or formerly)
// held a value. Two live ids from the same collection compare consistently
// with the relative logical order of the values they name. Comparing a
// dead id is permitted but its order is undefined beyond "not present".
type ElementId interface {
	// Present reports whether the id still names a live slot. An id issued
	// by an array-backed engine stays live only until the next structural
	// change of its collection.
	Present() bool

	// Collection returns the identity of the owning collection. Ids from
	// different collections are never equal; they order by collection
	// identity so mixed comparisons stay consistent.
	Collection() uuid.UUID

	// Compare orders this id against another. Negative means this id names
	// an earlier position, zero the same slot, positive a later position.
	Compare(other ElementId) int
}

// CollectionElement is a read-only {id, value} projection produced per
// query. It holds no claim on the collection beyond the ElementId.
type CollectionElement[V any] interface {
	ID() ElementId
	Value() V
}

// MutableCollectionElement extends CollectionElement with in-place
// mutation. Every mutation re-validates that the handle's id is still
// present; acting on a stale handle fails rather than corrupting state.
//
// The capability queries (Enabled, Acceptable, Removable, Addable) return
// nil when the operation is allowed, or an error naming the reason it is
// not.
type MutableCollectionElement[V any] interface {
	CollectionElement[V]

	// Enabled reports whether this element accepts mutation at all.
	Enabled() error
	// Acceptable reports whether the element's value could be replaced by v.
	Acceptable(v V) error
	// Set replaces the element's value in place. A value change, not a
	// structural one: outstanding ids stay live.
	Set(v V) error

	// Removable reports whether the element can be removed.
	Removable() error
	// Remove deletes the element. Its id and this handle become stale.
	Remove() error

	// Addable reports whether v could be inserted adjacent to this element.
	Addable(v V, before bool) error
	// Add inserts v before or after this element, returning the new
	// element's id. This handle becomes stale (a structural change).
	Add(v V, before bool) (ElementId, error)
}

// Collection is the element-identity and transactional-locking contract
// shared by all collections in this library.
type Collection[V any] interface {
	// Size returns the number of elements.
	Size() int

	// Element returns the element currently named by id.
	// Fails with ErrNotFound if id is not present.
	Element(id ElementId) (CollectionElement[V], error)

	// AdjacentElement returns the neighboring element in the given
	// direction, or nil if id is terminal in that direction.
	// Fails with ErrNotFound if id is not present.
	AdjacentElement(id ElementId, next bool) (CollectionElement[V], error)

	// TerminalElement returns the first (or last) element, or false if the
	// collection is empty.
	TerminalElement(first bool) (CollectionElement[V], bool)

	// MutableElement returns a mutable handle on the element named by id.
	// Fails with ErrNotFound if id is not present.
	MutableElement(id ElementId) (MutableCollectionElement[V], error)

	// Lock blocks until the requested access is available and returns a
	// scoped guard. Nested acquisition goes through Guard.Hold, which is
	// free when the held level suffices.
	Lock(write bool) *seqlock.Guard

	// TryLock is the non-blocking variant of Lock.
	TryLock(write bool) (*seqlock.Guard, bool)

	// Stamp returns the current version counter for the requested class of
	// change. Equal stamps guarantee no modification of that class occurred
	// between the two calls; differing stamps only mean one might have.
	// Structural changes bump both counters.
	Stamp(structuralOnly bool) uint64
}

// List extends Collection with positional access. Implementations report
// ErrOutOfRange for indices outside [0, Size()), or outside [0, Size()]
// where an append position is legal.
type List[V any] interface {
	Collection[V]

	// Get returns the value at logical index i.
	Get(i int) (V, error)

	// Set replaces the value at i, returning the previous value.
	Set(i int, v V) (V, error)

	// Insert places v at logical index i, shifting later elements.
	// The returned id may be dead when a bounded list evicted the incoming
	// value itself.
	Insert(i int, v V) (ElementId, error)

	// Append places v at the end of the list.
	Append(v V) (ElementId, error)

	// Remove deletes and returns the value at i.
	Remove(i int) (V, error)

	// Clear removes all elements.
	Clear()
}

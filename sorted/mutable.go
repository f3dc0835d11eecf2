package sorted

import (
	"github.com/dacapoday/ringlist"
)

// mutableElement is a read/write handle on one set element. Adjacency-
// based insertion is unsupported: position follows from the ordering
// function alone.
type mutableElement[V any] struct {
	set *Set[V]
	id  elementId[V]
}

var _ ringlist.MutableCollectionElement[int] = (*mutableElement[int])(nil)

// MutableElement returns a mutable handle on the element named by id.
func (set *Set[V]) MutableElement(id ringlist.ElementId) (ringlist.MutableCollectionElement[V], error) {
	guard := set.Lock(false)
	defer guard.Release()
	eid, err := set.own(id)
	if err != nil {
		return nil, err
	}
	return &mutableElement[V]{set: set, id: eid}, nil
}

func (el *mutableElement[V]) ID() ringlist.ElementId {
	return el.id
}

func (el *mutableElement[V]) Value() (v V) {
	if !el.id.Present() {
		return
	}
	return el.id.val
}

func (el *mutableElement[V]) Enabled() error {
	if !el.id.Present() {
		return ringlist.ErrConcurrentModification
	}
	return nil
}

// Acceptable rejects a replacement that collides with another element.
func (el *mutableElement[V]) Acceptable(v V) error {
	guard := el.set.Lock(false)
	defer guard.Release()
	if !el.id.Present() {
		return ringlist.ErrConcurrentModification
	}
	if el.set.reorders(el.id.val, v) && el.set.tree.Has(v) {
		return ringlist.ErrUnsupported
	}
	return nil
}

// Set replaces the element's value. A replacement that keeps the same
// sort position is a value change; one that reorders is a structural
// remove-and-insert, and the handle follows the value to its new
// position.
func (el *mutableElement[V]) Set(v V) error {
	guard := el.set.Lock(true)
	defer guard.Release()
	if !el.id.Present() {
		return ringlist.ErrConcurrentModification
	}
	if !el.set.reorders(el.id.val, v) {
		el.set.tree.ReplaceOrInsert(v)
		el.set.value.Add(1)
		el.id.val = v
		return nil
	}
	if el.set.tree.Has(v) {
		return ringlist.ErrUnsupported
	}
	el.set.tree.Delete(el.id.val)
	el.set.tree.ReplaceOrInsert(v)
	stamp := el.set.bumpStructural()
	el.id = elementId[V]{set: el.set, val: v, stamp: stamp}
	return nil
}

func (el *mutableElement[V]) Removable() error {
	return el.Enabled()
}

func (el *mutableElement[V]) Remove() error {
	guard := el.set.Lock(true)
	defer guard.Release()
	if !el.id.Present() {
		return ringlist.ErrConcurrentModification
	}
	el.set.tree.Delete(el.id.val)
	el.set.bumpStructural()
	el.id = elementId[V]{}
	return nil
}

func (el *mutableElement[V]) Addable(v V, before bool) error {
	return ringlist.ErrUnsupported
}

func (el *mutableElement[V]) Add(v V, before bool) (ringlist.ElementId, error) {
	return nil, ringlist.ErrUnsupported
}

// reorders reports whether a and b sort to different positions.
func (set *Set[V]) reorders(a, b V) bool {
	return set.less(a, b) || set.less(b, a)
}

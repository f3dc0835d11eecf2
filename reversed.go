package ringlist

import "github.com/dacapoday/ringlist/seqlock"

// Reversed returns a view of list with the logical order flipped. The view
// shares the base list's storage, lock, stamps, and element ids; only
// index arithmetic and traversal direction are inverted. Reversing a
// reversed view returns the base list.
//
// Flipped indices are derived from the size observed at the start of each
// call; the delegated operation re-validates bounds under its own lock.
func Reversed[V any](list List[V]) List[V] {
	if view, ok := list.(reversed[V]); ok {
		return view.base
	}
	return reversed[V]{list}
}

type reversed[V any] struct {
	base List[V]
}

func (view reversed[V]) Size() int {
	return view.base.Size()
}

func (view reversed[V]) Stamp(structuralOnly bool) uint64 {
	return view.base.Stamp(structuralOnly)
}

func (view reversed[V]) Lock(write bool) *seqlock.Guard {
	return view.base.Lock(write)
}

func (view reversed[V]) TryLock(write bool) (*seqlock.Guard, bool) {
	return view.base.TryLock(write)
}

func (view reversed[V]) Element(id ElementId) (CollectionElement[V], error) {
	return view.base.Element(id)
}

func (view reversed[V]) AdjacentElement(id ElementId, next bool) (CollectionElement[V], error) {
	return view.base.AdjacentElement(id, !next)
}

func (view reversed[V]) TerminalElement(first bool) (CollectionElement[V], bool) {
	return view.base.TerminalElement(!first)
}

func (view reversed[V]) MutableElement(id ElementId) (MutableCollectionElement[V], error) {
	el, err := view.base.MutableElement(id)
	if err != nil {
		return nil, err
	}
	return reversedElement[V]{el}, nil
}

func (view reversed[V]) Get(i int) (v V, err error) {
	size := view.base.Size()
	if i < 0 || i >= size {
		return v, ErrOutOfRange
	}
	return view.base.Get(size - 1 - i)
}

func (view reversed[V]) Set(i int, v V) (old V, err error) {
	size := view.base.Size()
	if i < 0 || i >= size {
		return old, ErrOutOfRange
	}
	return view.base.Set(size-1-i, v)
}

func (view reversed[V]) Insert(i int, v V) (ElementId, error) {
	size := view.base.Size()
	if i < 0 || i > size {
		return nil, ErrOutOfRange
	}
	return view.base.Insert(size-i, v)
}

func (view reversed[V]) Append(v V) (ElementId, error) {
	return view.base.Insert(0, v)
}

func (view reversed[V]) Remove(i int) (v V, err error) {
	size := view.base.Size()
	if i < 0 || i >= size {
		return v, ErrOutOfRange
	}
	return view.base.Remove(size - 1 - i)
}

func (view reversed[V]) Clear() {
	view.base.Clear()
}

// reversedElement flips the adjacency direction of Add through the view.
type reversedElement[V any] struct {
	MutableCollectionElement[V]
}

func (el reversedElement[V]) Addable(v V, before bool) error {
	return el.MutableCollectionElement.Addable(v, !before)
}

func (el reversedElement[V]) Add(v V, before bool) (ElementId, error) {
	return el.MutableCollectionElement.Add(v, !before)
}

package ringlist

import (
	"fmt"
	"strings"
)

// The functions below are the generic convenience layer: each is written
// once against the List contract and works for every implementation.
// Compound mutators take the collection's lock once per primitive
// operation, so each step is linearizable but the sequence as a whole is
// not atomic. For whole-sequence atomicity open a write guard and pass a
// guard-scoped view of the list (list.CircularArrayList.Guarded) instead
// of the list itself.

// retries bounds the optimistic snapshot attempts before a reader falls
// back to a pessimistic guard.
const retries = 3

// Values returns a consistent snapshot of the list's contents in logical
// order. The snapshot is validated against the value stamp and retried,
// then taken under a read guard if writers keep interfering.
func Values[V any](list List[V]) []V {
	for range retries {
		stamp := list.Stamp(false)
		values, ok := scan(list)
		if ok && list.Stamp(false) == stamp {
			return values
		}
	}
	guard := list.Lock(false)
	defer guard.Release()
	values, _ := scan(list)
	return values
}

func scan[V any](list List[V]) (values []V, ok bool) {
	size := list.Size()
	values = make([]V, 0, size)
	for i := range size {
		v, err := list.Get(i)
		if err != nil {
			return values, false
		}
		values = append(values, v)
	}
	return values, true
}

// IndexOf returns the logical index of the first element equal to v,
// or -1 if no element matches.
func IndexOf[V any](list List[V], v V, equal func(a, b V) bool) int {
	for range retries {
		stamp := list.Stamp(false)
		index, ok := search(list, v, equal)
		if ok && list.Stamp(false) == stamp {
			return index
		}
	}
	guard := list.Lock(false)
	defer guard.Release()
	index, _ := search(list, v, equal)
	return index
}

func search[V any](list List[V], v V, equal func(a, b V) bool) (index int, ok bool) {
	size := list.Size()
	for i := range size {
		got, err := list.Get(i)
		if err != nil {
			return -1, false
		}
		if equal(got, v) {
			return i, true
		}
	}
	return -1, true
}

// Contains reports whether any element equals v.
func Contains[V any](list List[V], v V, equal func(a, b V) bool) bool {
	return IndexOf(list, v, equal) >= 0
}

// AddAll appends values in order. Returns the first error encountered;
// values before the failing one remain appended.
func AddAll[V any](list List[V], values ...V) error {
	for _, v := range values {
		if _, err := list.Append(v); err != nil {
			return err
		}
	}
	return nil
}

// InsertAll places values starting at logical index i, preserving their
// relative order.
func InsertAll[V any](list List[V], i int, values ...V) error {
	for k, v := range values {
		if _, err := list.Insert(i+k, v); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAll deletes every element equal to one of values.
// Returns the number of elements removed.
func RemoveAll[V any](list List[V], equal func(a, b V) bool, values ...V) (removed int, err error) {
	return filter(list, func(v V) bool {
		for _, unwanted := range values {
			if equal(v, unwanted) {
				return false
			}
		}
		return true
	})
}

// RetainAll deletes every element not equal to one of values.
// Returns the number of elements removed.
func RetainAll[V any](list List[V], equal func(a, b V) bool, values ...V) (removed int, err error) {
	return filter(list, func(v V) bool {
		for _, wanted := range values {
			if equal(v, wanted) {
				return true
			}
		}
		return false
	})
}

func filter[V any](list List[V], keep func(V) bool) (removed int, err error) {
	i := 0
	for i < list.Size() {
		v, err := list.Get(i)
		if err != nil {
			return removed, err
		}
		if keep(v) {
			i++
			continue
		}
		if _, err := list.Remove(i); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// String renders the list Java-collection style: [a, b, c].
func String[V any](list List[V]) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range Values(list) {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v", v)
	}
	sb.WriteByte(']')
	return sb.String()
}

package list

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubListReads(t *testing.T) {
	list := newList(t, Config{}, "A", "B", "C", "D", "E")
	sub, err := list.SubList(1, 4)
	require.NoError(t, err)

	size, err := sub.Size()
	require.NoError(t, err)
	require.Equal(t, 3, size)

	v, err := sub.Get(0)
	require.NoError(t, err)
	require.Equal(t, "B", v)

	values, err := sub.Values()
	require.NoError(t, err)
	require.Equal(t, []string{"B", "C", "D"}, values)

	_, err = sub.Get(3)
	require.ErrorIs(t, err, ErrOutOfRange)

	_, err = list.SubList(3, 2)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = list.SubList(0, 6)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestSubListMutatesParent(t *testing.T) {
	list := newList(t, Config{}, "A", "B", "C", "D")
	sub, err := list.SubList(1, 3)
	require.NoError(t, err)

	// a value change through the view leaves the view and all ids live
	old, err := sub.Set(0, "B2")
	require.NoError(t, err)
	require.Equal(t, "B", old)
	expect(t, list, "A", "B2", "C", "D")

	// structural changes through the view move its bounds with it
	id, err := sub.Insert(1, "X")
	require.NoError(t, err)
	require.True(t, id.Present())
	expect(t, list, "A", "B2", "X", "C", "D")

	values, err := sub.Values()
	require.NoError(t, err)
	require.Equal(t, []string{"B2", "X", "C"}, values)

	v, err := sub.Remove(0)
	require.NoError(t, err)
	require.Equal(t, "B2", v)
	expect(t, list, "A", "X", "C", "D")

	_, err = sub.Append("Y")
	require.NoError(t, err)
	expect(t, list, "A", "X", "C", "Y", "D")

	values, err = sub.Values()
	require.NoError(t, err)
	require.Equal(t, []string{"X", "C", "Y"}, values)
}

func TestSubListInvalidation(t *testing.T) {
	list := newList(t, Config{}, "A", "B", "C", "D")
	sub, err := list.SubList(1, 3)
	require.NoError(t, err)

	// value changes on the parent are fine
	_, err = list.Set(0, "A2")
	require.NoError(t, err)
	_, err = sub.Get(0)
	require.NoError(t, err)

	// a structural change not routed through the view kills it
	_, err = list.Append("E")
	require.NoError(t, err)

	_, err = sub.Get(0)
	require.ErrorIs(t, err, ErrConcurrentModification)
	_, err = sub.Size()
	require.ErrorIs(t, err, ErrConcurrentModification)
	_, err = sub.Insert(0, "X")
	require.ErrorIs(t, err, ErrConcurrentModification)
	_, err = sub.Remove(0)
	require.ErrorIs(t, err, ErrConcurrentModification)
	require.ErrorIs(t, sub.Clear(), ErrConcurrentModification)
	_, err = sub.Values()
	require.ErrorIs(t, err, ErrConcurrentModification)
	_, err = sub.SubList(0, 1)
	require.ErrorIs(t, err, ErrConcurrentModification)
}

func TestSubListNested(t *testing.T) {
	list := newList(t, Config{}, "A", "B", "C", "D", "E", "F")
	outer, err := list.SubList(1, 5) // B C D E
	require.NoError(t, err)
	inner, err := outer.SubList(1, 3) // C D
	require.NoError(t, err)

	values, err := inner.Values()
	require.NoError(t, err)
	require.Equal(t, []string{"C", "D"}, values)

	// a change through the outer view invalidates the inner one
	_, err = outer.Insert(0, "X")
	require.NoError(t, err)
	_, err = inner.Values()
	require.ErrorIs(t, err, ErrConcurrentModification)
}

func TestSubListClear(t *testing.T) {
	list := newList(t, Config{}, "A", "B", "C", "D", "E")
	sub, err := list.SubList(1, 4)
	require.NoError(t, err)

	require.NoError(t, sub.Clear())
	expect(t, list, "A", "E")

	// the emptied view is still live and usable
	size, err := sub.Size()
	require.NoError(t, err)
	require.Equal(t, 0, size)
	_, err = sub.Append("X")
	require.NoError(t, err)
	expect(t, list, "A", "X", "E")
}

// TestSubListEviction: when a bounded parent drops its head, a view past
// the drop slides left with the surviving elements.
func TestSubListEviction(t *testing.T) {
	list := newList(t, Config{Initial: 3, Max: 3}, "A", "B", "C")
	sub, err := list.SubList(1, 3) // B C
	require.NoError(t, err)

	id, err := sub.Append("D")
	require.NoError(t, err)
	require.True(t, id.Present())
	expect(t, list, "B", "C", "D")

	values, err := sub.Values()
	require.NoError(t, err)
	require.Equal(t, []string{"B", "C", "D"}, values)
}

func TestCursorForward(t *testing.T) {
	list := newList(t, Config{}, "A", "B", "C")
	cursor := list.Cursor(true)

	var got []string
	for cursor.Next() {
		got = append(got, cursor.Element().Value())
	}
	require.NoError(t, cursor.Err())
	require.Equal(t, []string{"A", "B", "C"}, got)

	// exhausted, not invalidated
	require.False(t, cursor.Next())
	require.NoError(t, cursor.Err())
}

func TestCursorReverse(t *testing.T) {
	list := newList(t, Config{}, "A", "B", "C")
	cursor := list.Cursor(false)

	var got []string
	for cursor.Next() {
		got = append(got, cursor.Element().Value())
	}
	require.NoError(t, cursor.Err())
	require.Equal(t, []string{"C", "B", "A"}, got)
}

func TestCursorRange(t *testing.T) {
	list := newList(t, Config{}, "A", "B", "C", "D", "E")
	cursor, err := list.CursorRange(1, 4, true)
	require.NoError(t, err)

	var got []string
	for cursor.Next() {
		got = append(got, cursor.Element().Value())
	}
	require.Equal(t, []string{"B", "C", "D"}, got)

	_, err = list.CursorRange(2, 6, true)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestCursorEmpty(t *testing.T) {
	list := newList(t, Config{})
	cursor := list.Cursor(true)
	require.False(t, cursor.Next())
	require.NoError(t, cursor.Err())
}

func TestCursorInvalidation(t *testing.T) {
	list := newList(t, Config{}, "A", "B", "C")
	cursor := list.Cursor(true)
	require.True(t, cursor.Next())

	_, err := list.Append("D")
	require.NoError(t, err)

	require.False(t, cursor.Next())
	require.ErrorIs(t, cursor.Err(), ErrConcurrentModification)
	require.ErrorIs(t, cursor.Set("X"), ErrConcurrentModification)
}

func TestCursorSet(t *testing.T) {
	list := newList(t, Config{}, "A", "B", "C")
	cursor := list.Cursor(true)
	require.True(t, cursor.Next())
	require.True(t, cursor.Next())

	require.NoError(t, cursor.Set("B2"))
	require.Equal(t, "B2", cursor.Element().Value())
	expect(t, list, "A", "B2", "C")

	// a value change: traversal continues
	require.True(t, cursor.Next())
	require.Equal(t, "C", cursor.Element().Value())
}

func TestCursorRemove(t *testing.T) {
	list := newList(t, Config{}, "A", "B", "C", "D")
	cursor := list.Cursor(true)

	// remove before any yield is refused
	require.ErrorIs(t, cursor.Remove(), ErrUnsupported)

	var got []string
	for cursor.Next() {
		v := cursor.Element().Value()
		got = append(got, v)
		if v == "B" {
			require.NoError(t, cursor.Remove())
			// the element is gone; a second remove has no target
			require.ErrorIs(t, cursor.Remove(), ErrUnsupported)
		}
	}
	require.NoError(t, cursor.Err())
	require.Equal(t, []string{"A", "B", "C", "D"}, got, "every element visited exactly once")
	expect(t, list, "A", "C", "D")
}

func TestCursorReverseRemove(t *testing.T) {
	list := newList(t, Config{}, "A", "B", "C", "D")
	cursor := list.Cursor(false)

	var got []string
	for cursor.Next() {
		v := cursor.Element().Value()
		got = append(got, v)
		if v == "C" {
			require.NoError(t, cursor.Remove())
		}
	}
	require.NoError(t, cursor.Err())
	require.Equal(t, []string{"D", "C", "B", "A"}, got)
	expect(t, list, "A", "B", "D")
}

func TestCursorAdd(t *testing.T) {
	list := newList(t, Config{}, "A", "B", "C")
	cursor := list.Cursor(true)
	require.True(t, cursor.Next()) // at A

	id, err := cursor.Add("X", false)
	require.NoError(t, err)
	require.True(t, id.Present())
	expect(t, list, "A", "X", "B", "C")

	before, err := cursor.Add("P", true)
	require.NoError(t, err)
	i, err := list.Index(before)
	require.NoError(t, err)
	require.Equal(t, 0, i)
	expect(t, list, "P", "A", "X", "B", "C")

	// added elements are not yielded; traversal resumes at B
	var got []string
	for cursor.Next() {
		got = append(got, cursor.Element().Value())
	}
	require.NoError(t, cursor.Err())
	require.Equal(t, []string{"B", "C"}, got)
}

// TestCursorAddEviction: an insert through the cursor that evicts the
// bounded list's head keeps the traversal position on surviving elements.
func TestCursorAddEviction(t *testing.T) {
	list := newList(t, Config{Initial: 3, Max: 3}, "A", "B", "C")
	cursor := list.Cursor(true)
	require.True(t, cursor.Next()) // A
	require.True(t, cursor.Next()) // B

	id, err := cursor.Add("X", false)
	require.NoError(t, err)
	expect(t, list, "B", "X", "C")
	i, err := list.Index(id)
	require.NoError(t, err)
	require.Equal(t, 1, i)

	var got []string
	for cursor.Next() {
		got = append(got, cursor.Element().Value())
	}
	require.NoError(t, cursor.Err())
	require.Equal(t, []string{"C"}, got)
}

func TestCursorSplitForward(t *testing.T) {
	list := newList(t, Config{}, "A", "B", "C", "D", "E", "F")
	cursor := list.Cursor(true)
	require.True(t, cursor.Next()) // A consumed

	other := cursor.Split()
	require.NotNil(t, other)

	var first []string
	for other.Next() {
		first = append(first, other.Element().Value())
	}
	var second []string
	for cursor.Next() {
		second = append(second, cursor.Element().Value())
	}
	require.NoError(t, other.Err())
	require.NoError(t, cursor.Err())
	require.Equal(t, []string{"B", "C"}, first)
	require.Equal(t, []string{"D", "E", "F"}, second)
}

func TestCursorSplitReverse(t *testing.T) {
	list := newList(t, Config{}, "A", "B", "C", "D", "E", "F")
	cursor := list.Cursor(false)
	require.True(t, cursor.Next()) // F consumed

	other := cursor.Split()
	require.NotNil(t, other)

	var near []string
	for cursor.Next() {
		near = append(near, cursor.Element().Value())
	}
	var far []string
	for other.Next() {
		far = append(far, other.Element().Value())
	}
	require.Equal(t, []string{"E", "D", "C"}, near)
	require.Equal(t, []string{"B", "A"}, far)
}

func TestCursorSplitTooSmall(t *testing.T) {
	list := newList(t, Config{}, "A", "B")
	cursor := list.Cursor(true)
	require.True(t, cursor.Next())
	require.Nil(t, cursor.Split(), "one remaining element cannot split")
}

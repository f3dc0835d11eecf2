package adjust

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dacapoday/ringlist"
	"github.com/dacapoday/ringlist/list"
)

func eq(a, b string) bool { return a == b }

func kinds(edits []Edit[string]) []Kind {
	out := make([]Kind, len(edits))
	for i, e := range edits {
		out[i] = e.Kind
	}
	return out
}

func TestDiff(t *testing.T) {
	for _, test := range []struct {
		name string
		have []string
		want []string
		cost int // Drop + Take steps
	}{
		{"identical", []string{"a", "b"}, []string{"a", "b"}, 0},
		{"empty to full", nil, []string{"a", "b"}, 2},
		{"full to empty", []string{"a", "b"}, nil, 2},
		{"both empty", nil, nil, 0},
		{"replace one", []string{"a", "x", "c"}, []string{"a", "b", "c"}, 2},
		{"insert middle", []string{"a", "c"}, []string{"a", "b", "c"}, 1},
		{"drop middle", []string{"a", "b", "c"}, []string{"a", "c"}, 1},
		{"rotate", []string{"a", "b", "c"}, []string{"b", "c", "a"}, 2},
		{"disjoint", []string{"a", "b"}, []string{"x", "y"}, 4},
	} {
		edits := Diff(test.have, test.want, eq)

		cost := 0
		for _, e := range edits {
			if e.Kind != Keep {
				cost++
			}
		}
		require.Equal(t, test.cost, cost, "%s: %v", test.name, kinds(edits))

		// replay the script on a plain slice
		got := replay(test.have, edits)
		require.Equal(t, test.want, got, test.name)
	}
}

func replay(have []string, edits []Edit[string]) (out []string) {
	i := 0
	for _, e := range edits {
		switch e.Kind {
		case Keep:
			out = append(out, have[i])
			i++
		case Drop:
			i++
		case Take:
			out = append(out, e.Value)
		}
	}
	return
}

func newList(t *testing.T, values ...string) ringlist.List[string] {
	t.Helper()
	l, err := list.New[string](list.Config{})
	require.NoError(t, err)
	require.NoError(t, ringlist.AddAll[string](l, values...))
	return l
}

func TestApply(t *testing.T) {
	l := newList(t, "a", "x", "c")
	err := Apply(l, []Edit[string]{
		{Kind: Keep},
		{Kind: Drop},
		{Kind: Take, Value: "b"},
		{Kind: Keep},
		{Kind: Take, Value: "d"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c", "d"}, ringlist.Values(l))
}

func TestSync(t *testing.T) {
	for _, test := range []struct {
		have []string
		want []string
	}{
		{[]string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{[]string{"a", "b", "c"}, []string{"c", "b", "a"}},
		{[]string{}, []string{"x", "y", "z"}},
		{[]string{"x", "y", "z"}, []string{}},
		{[]string{"a", "b", "c", "d"}, []string{"b", "x", "d", "e"}},
	} {
		l := newList(t, test.have...)
		require.NoError(t, Sync(l, test.want, eq))
		require.Equal(t, test.want, append([]string{}, ringlist.Values(l)...))
	}
}

// TestSyncKeepsMatchingIds: a replaced slot becomes a Set, which is a
// value change, so ids of surviving neighbors stay live through it.
func TestSyncKeepsMatchingIds(t *testing.T) {
	l := newList(t, "a", "x", "c")

	// Diff(a x c -> a b c) is Keep, Drop+Take, Keep: one Set, no
	// structural change at all
	structural := l.Stamp(true)
	first, ok := l.TerminalElement(true)
	require.True(t, ok)

	require.NoError(t, Sync(l, []string{"a", "b", "c"}, eq))
	require.Equal(t, []string{"a", "b", "c"}, ringlist.Values(l))
	require.Equal(t, structural, l.Stamp(true))
	require.True(t, first.ID().Present())
}

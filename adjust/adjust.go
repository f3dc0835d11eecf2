// Package adjust synchronizes a live list with a goal sequence.
//
// Diff computes a minimal edit script between two value sequences (a
// longest-common-subsequence walk); Apply replays a script against any
// ringlist.List through its index-based contract only, never touching
// buffer internals. Adjacent remove/insert pairs collapse into in-place
// Set calls so unchanged slots keep their element ids live.
package adjust

import (
	"github.com/dacapoday/ringlist"
)

// Kind classifies one edit step.
type Kind uint8

const (
	// Keep retains the element at the current position.
	Keep Kind = iota
	// Drop removes the element at the current position.
	Drop
	// Take inserts a value from the goal sequence at the current position.
	Take
)

// Edit is one step of an edit script. Value is set for Take only.
type Edit[V any] struct {
	Kind  Kind
	Value V
}

// Diff computes an edit script that transforms have into want, minimal in
// the number of Drop and Take steps. Runs in O(len(have)*len(want)) time
// and space.
func Diff[V any](have, want []V, equal func(a, b V) bool) []Edit[V] {
	m, n := len(have), len(want)

	// common[i][j]: length of the longest common subsequence of
	// have[i:] and want[j:].
	common := make([][]int, m+1)
	flat := make([]int, (m+1)*(n+1))
	for i := range common {
		common[i] = flat[i*(n+1) : (i+1)*(n+1)]
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			if equal(have[i], want[j]) {
				common[i][j] = common[i+1][j+1] + 1
			} else {
				common[i][j] = max(common[i+1][j], common[i][j+1])
			}
		}
	}

	edits := make([]Edit[V], 0, m+n)
	i, j := 0, 0
	for i < m && j < n {
		switch {
		case equal(have[i], want[j]):
			edits = append(edits, Edit[V]{Kind: Keep})
			i++
			j++
		case common[i+1][j] >= common[i][j+1]:
			edits = append(edits, Edit[V]{Kind: Drop})
			i++
		default:
			edits = append(edits, Edit[V]{Kind: Take, Value: want[j]})
			j++
		}
	}
	for ; i < m; i++ {
		edits = append(edits, Edit[V]{Kind: Drop})
	}
	for ; j < n; j++ {
		edits = append(edits, Edit[V]{Kind: Take, Value: want[j]})
	}
	return edits
}

// Apply replays an edit script against a live list. A Drop immediately
// followed by a Take becomes one Set, so replaced slots change in place.
// Each primitive operation is atomic on its own. For whole-script
// atomicity open a write guard and pass the guard-scoped view
// (list.CircularArrayList.Guarded) in place of the list.
func Apply[V any](list ringlist.List[V], edits []Edit[V]) error {
	i := 0
	for k := 0; k < len(edits); k++ {
		edit := edits[k]
		switch edit.Kind {
		case Keep:
			i++
		case Drop:
			if k+1 < len(edits) && edits[k+1].Kind == Take {
				if _, err := list.Set(i, edits[k+1].Value); err != nil {
					return err
				}
				i++
				k++
				continue
			}
			if _, err := list.Remove(i); err != nil {
				return err
			}
		case Take:
			if _, err := list.Insert(i, edit.Value); err != nil {
				return err
			}
			i++
		}
	}
	return nil
}

// Sync adjusts list until its contents equal want, preserving elements
// (and their ids) that already match.
func Sync[V any](list ringlist.List[V], want []V, equal func(a, b V) bool) error {
	have := ringlist.Values(list)
	return Apply(list, Diff(have, want, equal))
}

package tagtree

import (
	"cmp"

	"github.com/henderiw/tagtree/pkg/interval"
	"golang.org/x/exp/slices"
)

// findInsertionPoint returns the index of the child starting at pos, or the
// index at which a child starting at pos would be inserted to keep children
// sorted by start.
func findInsertionPoint[K interval.Ordinal, T comparable](children []*node[K, T], pos K) int {
	i, _ := slices.BinarySearchFunc(children, pos, func(c *node[K, T], p K) int {
		return cmp.Compare(c.span.Start, p)
	})
	return i
}

// firstOverlapping returns the index of the first child that can overlap a
// range starting at pos: the insertion point, stepped back by one when the
// previous child extends past pos.
func firstOverlapping[K interval.Ordinal, T comparable](children []*node[K, T], pos K) int {
	i := findInsertionPoint(children, pos)
	if i > 0 && children[i-1].span.End > pos {
		i--
	}
	return i
}

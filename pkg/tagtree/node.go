package tagtree

import (
	"github.com/henderiw/tagtree/pkg/interval"
	"golang.org/x/exp/slices"
)

type node[K interval.Ordinal, T comparable] struct {
	span     interval.Interval[K]
	tag      T
	tagged   bool // false only for the root
	children []*node[K, T]
}

func newNode[K interval.Ordinal, T comparable](span interval.Interval[K], tag T) *node[K, T] {
	return &node[K, T]{span: span, tag: tag, tagged: true}
}

// hasTag returns whether the node itself carries tag.
func (n *node[K, T]) hasTag(tag T) bool {
	return n.tagged && n.tag == tag
}

func (n *node[K, T]) sameTag(o *node[K, T]) bool {
	return n.tagged && o.tagged && n.tag == o.tag
}

func (n *node[K, T]) clone() *node[K, T] {
	c := &node[K, T]{span: n.span, tag: n.tag, tagged: n.tagged}
	if len(n.children) > 0 {
		c.children = make([]*node[K, T], 0, len(n.children))
		for _, child := range n.children {
			c.children = append(c.children, child.clone())
		}
	}
	return c
}

// split cuts n at pos, where n.span.Start < pos < n.span.End. n keeps
// [Start, pos) and the returned node takes [pos, End) along with the children,
// or halves of children, that lie right of pos.
func (n *node[K, T]) split(pos K) *node[K, T] {
	right := &node[K, T]{span: interval.New(pos, n.span.End), tag: n.tag, tagged: n.tagged}
	n.span.End = pos

	i := firstOverlapping(n.children, pos)
	if i < len(n.children) && n.children[i].span.Start < pos {
		right.children = append(right.children, n.children[i].split(pos))
		i++
	}
	right.children = append(right.children, n.children[i:]...)
	n.children = slices.Clip(n.children[:i])
	return right
}

// splitChildrenAt splits the child straddling pos, if any, so that no child
// of n crosses pos. Both halves stay children of n.
func (n *node[K, T]) splitChildrenAt(pos K) {
	i := firstOverlapping(n.children, pos)
	if i < len(n.children) && n.children[i].span.Start < pos && pos < n.children[i].span.End {
		right := n.children[i].split(pos)
		n.children = slices.Insert(n.children, i+1, right)
	}
}

// absorb merges o into n. o carries the same tag, starts after n and touches
// it; its children are rehooked onto n.
func (n *node[K, T]) absorb(o *node[K, T]) {
	n.span = n.span.Union(o.span)
	n.children = coalesce(append(n.children, o.children...))
	o.children = nil
}

// coalesce merges contiguous or overlapping siblings carrying the same tag.
// children must be sorted by start.
func coalesce[K interval.Ordinal, T comparable](children []*node[K, T]) []*node[K, T] {
	out := children[:0]
	for _, c := range children {
		if k := len(out); k > 0 && out[k-1].sameTag(c) && out[k-1].span.Touches(c.span) {
			out[k-1].absorb(c)
			continue
		}
		out = append(out, c)
	}
	clear(children[len(out):])
	return out
}

// insertSorted rehooks nodes into children at their sorted positions.
func insertSorted[K interval.Ordinal, T comparable](children []*node[K, T], nodes ...*node[K, T]) []*node[K, T] {
	for _, rn := range nodes {
		i := findInsertionPoint(children, rn.span.Start)
		children = slices.Insert(children, i, rn)
	}
	return children
}

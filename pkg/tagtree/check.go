package tagtree

import "github.com/henderiw/tagtree/pkg/interval"

// HasTag returns whether tag covers all of [start, end). The range is clipped
// to the domain. Coverage may be spread over several nodes, e.g. when the tag
// was layered under differently tagged siblings, but a single uncovered point
// makes the result false.
func (r *Tree[K, T]) HasTag(tag T, start, end K) bool {
	span := interval.New(start, end).Clip(r.root.span)
	if span.IsEmpty() {
		return false
	}
	return check(r.root, tag, span)
}

// check returns whether tag covers span, which lies within n.
func check[K interval.Ordinal, T comparable](n *node[K, T], tag T, span interval.Interval[K]) bool {
	if n.hasTag(tag) && span.CoveredBy(n.span) {
		return true
	}
	current := span.Start
	for i := firstOverlapping(n.children, current); i < len(n.children) && current < span.End; i++ {
		child := n.children[i]
		if child.span.Start > current {
			return false
		}
		if !check(child, tag, interval.New(current, min(span.End, child.span.End))) {
			return false
		}
		current = child.span.End
	}
	return current >= span.End
}

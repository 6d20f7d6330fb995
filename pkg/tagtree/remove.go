package tagtree

import (
	"github.com/cockroachdb/errors"
	"github.com/henderiw/tagtree/pkg/interval"
	"golang.org/x/exp/slices"
)

// Outcome tells the caller of remove what happened to the node it visited.
type Outcome int

const (
	// NoOverlap means the removal range does not touch the node.
	NoOverlap Outcome = iota
	// RemoveIntervalInside means the range was strictly inside a node carrying
	// the tag; the node was split into the parts before and after the range.
	RemoveIntervalInside
	// RemoveIntervalLeft means the range covered the start of a node carrying
	// the tag; the node was shrunk from the left.
	RemoveIntervalLeft
	// RemoveIntervalRight means the range covered the end of a node carrying
	// the tag; the node was shrunk from the right.
	RemoveIntervalRight
	// RemoveEntireNode means the range covered a node carrying the tag; the
	// node is gone and its children must be rehooked.
	RemoveEntireNode
	// ProcessedChildren means the node does not carry the tag and the removal
	// was applied to its children.
	ProcessedChildren
)

func (o Outcome) String() string {
	switch o {
	case NoOverlap:
		return "NoOverlap"
	case RemoveIntervalInside:
		return "RemoveIntervalInside"
	case RemoveIntervalLeft:
		return "RemoveIntervalLeft"
	case RemoveIntervalRight:
		return "RemoveIntervalRight"
	case RemoveEntireNode:
		return "RemoveEntireNode"
	case ProcessedChildren:
		return "ProcessedChildren"
	}
	return "Unknown"
}

type removeResult[K interval.Ordinal, T comparable] struct {
	removed bool
	outcome Outcome
	// remaining is the part of the removal range the visited node could not
	// account for; the caller continues with it across the next siblings.
	remaining interval.Interval[K]
	// rehook holds the nodes, sorted by start, that the caller must adopt.
	rehook []*node[K, T]
}

// replaces returns the nodes, sorted by start, that take the place of n among
// its siblings after the removal that produced res.
func (res removeResult[K, T]) replaces(n *node[K, T]) []*node[K, T] {
	switch res.outcome {
	case RemoveEntireNode, RemoveIntervalInside:
		return res.rehook
	case RemoveIntervalLeft:
		return append(res.rehook, n)
	case RemoveIntervalRight:
		return append([]*node[K, T]{n}, res.rehook...)
	}
	return []*node[K, T]{n}
}

// RemoveTag detaches tag from [start, end). Nodes carrying tag are shrunk,
// split or dissolved; their children are rehooked onto the nearest surviving
// ancestor. Returns whether anything was removed.
func (r *Tree[K, T]) RemoveTag(tag T, start, end K) bool {
	span := interval.New(start, end)
	if !span.IsValid() {
		return false
	}
	res := r.remove(r.root, tag, span)
	r.logger.V(1).Info("remove tag", "tag", tag, "interval", span.String(), "removed", res.removed)
	// the root never carries a tag, so there is nothing to rehook above it
	return res.removed
}

func (r *Tree[K, T]) remove(n *node[K, T], tag T, span interval.Interval[K]) removeResult[K, T] {
	clipped := span.Clip(n.span)
	if clipped.IsEmpty() {
		return removeResult[K, T]{outcome: NoOverlap, remaining: span}
	}
	if n.hasTag(tag) {
		switch {
		case clipped.InMiddleOf(n.span):
			return r.removeInside(n, tag, clipped, span)
		case clipped.OverlapsStartOf(n.span):
			return r.removeLeft(n, tag, clipped, span)
		case clipped.OverlapsEndOf(n.span):
			return r.removeRight(n, tag, clipped, span)
		default:
			return r.removeEntire(n, tag, clipped, span)
		}
	}
	return r.removeFromChildren(n, tag, clipped, span)
}

// removeInside handles a removal range strictly inside n. n keeps the part
// before the range with the children there; a new node takes the part after
// the range with its children. Children inside the range are handed up.
func (r *Tree[K, T]) removeInside(n *node[K, T], tag T, clipped, span interval.Interval[K]) removeResult[K, T] {
	n.splitChildrenAt(clipped.Start)
	n.splitChildrenAt(clipped.End)

	var before, inside, after []*node[K, T]
	for _, child := range n.children {
		switch {
		case child.span.EntirelyBefore(clipped):
			before = append(before, child)
		case clipped.EntirelyBefore(child.span):
			after = append(after, child)
		default:
			inside = append(inside, r.remove(child, tag, clipped).replaces(child)...)
		}
	}

	post := newNode(interval.New(clipped.End, n.span.End), tag)
	post.children = after
	n.span.End = clipped.Start
	n.children = before

	rehook := make([]*node[K, T], 0, len(inside)+2)
	rehook = append(rehook, n)
	rehook = append(rehook, inside...)
	rehook = append(rehook, post)
	return removeResult[K, T]{
		removed:   true,
		outcome:   RemoveIntervalInside,
		remaining: interval.New(span.End, span.End),
		rehook:    rehook,
	}
}

// removeLeft handles a removal range covering the start of n but not its end.
// n is shrunk in place; the children in the removed part are handed up.
func (r *Tree[K, T]) removeLeft(n *node[K, T], tag T, clipped, span interval.Interval[K]) removeResult[K, T] {
	n.splitChildrenAt(clipped.End)
	i := findInsertionPoint(n.children, clipped.End)

	var rehook []*node[K, T]
	for _, child := range n.children[:i] {
		rehook = append(rehook, r.remove(child, tag, clipped).replaces(child)...)
	}
	n.children = slices.Clone(n.children[i:])
	n.span.Start = clipped.End

	return removeResult[K, T]{
		removed:   true,
		outcome:   RemoveIntervalLeft,
		remaining: interval.New(clipped.End, span.End),
		rehook:    rehook,
	}
}

// removeRight handles a removal range covering the end of n but not its
// start. n is shrunk in place; the children in the removed part are handed
// up.
func (r *Tree[K, T]) removeRight(n *node[K, T], tag T, clipped, span interval.Interval[K]) removeResult[K, T] {
	n.splitChildrenAt(clipped.Start)
	i := findInsertionPoint(n.children, clipped.Start)

	var rehook []*node[K, T]
	for _, child := range n.children[i:] {
		rehook = append(rehook, r.remove(child, tag, clipped).replaces(child)...)
	}
	n.children = slices.Clip(n.children[:i])
	n.span.End = clipped.Start

	return removeResult[K, T]{
		removed:   true,
		outcome:   RemoveIntervalRight,
		remaining: interval.New(span.Start, clipped.Start),
		rehook:    rehook,
	}
}

// removeEntire handles a removal range covering all of n. All children of n
// are handed up; the caller drops n.
func (r *Tree[K, T]) removeEntire(n *node[K, T], tag T, clipped, span interval.Interval[K]) removeResult[K, T] {
	processed := make([]*node[K, T], 0, len(n.children))
	for _, child := range n.children {
		if !child.span.Overlaps(clipped) {
			processed = append(processed, child)
			continue
		}
		processed = append(processed, r.remove(child, tag, clipped).replaces(child)...)
	}
	n.children = nil

	return removeResult[K, T]{
		removed:   true,
		outcome:   RemoveEntireNode,
		remaining: interval.New(clipped.End, span.End),
		rehook:    processed,
	}
}

// removeFromChildren sweeps the children of n, which does not carry tag,
// left to right. Each step resumes at the cursor left behind by the previous
// child, so a range spilling past one child continues across its siblings.
func (r *Tree[K, T]) removeFromChildren(n *node[K, T], tag T, clipped, span interval.Interval[K]) removeResult[K, T] {
	res := removeResult[K, T]{
		outcome:   ProcessedChildren,
		remaining: interval.New(max(clipped.End, span.Start), span.End),
	}

	cursor := clipped.Start
	for cursor < clipped.End {
		i := firstOverlapping(n.children, cursor)
		if i >= len(n.children) || n.children[i].span.Start >= clipped.End {
			break
		}
		child := n.children[i]
		childEnd := child.span.End

		cr := r.remove(child, tag, interval.New(cursor, span.End))
		if cr.removed {
			res.removed = true
		}
		if cr.outcome == RemoveEntireNode || cr.outcome == RemoveIntervalInside {
			n.children = slices.Delete(n.children, i, i+1)
			n.children = insertSorted(n.children, cr.rehook...)
			r.logger.V(2).Info("rehook", "outcome", cr.outcome.String(), "nodes", len(cr.rehook))
		} else if len(cr.rehook) > 0 {
			n.children = insertSorted(n.children, cr.rehook...)
			r.logger.V(2).Info("rehook", "outcome", cr.outcome.String(), "nodes", len(cr.rehook))
		}

		next := childEnd
		if cr.remaining.IsValid() {
			next = cr.remaining.Start
		}
		if next <= cursor {
			panic(errors.AssertionFailedf("tree %s: removal of %v made no progress at %v", r.name, tag, cursor))
		}
		cursor = next
	}

	n.children = coalesce(n.children)
	for _, child := range n.children {
		child.span = child.span.Clip(n.span)
	}
	return res
}

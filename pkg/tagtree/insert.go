package tagtree

import (
	"github.com/henderiw/tagtree/pkg/interval"
	"golang.org/x/exp/slices"
)

// gap is a stretch of the range being tagged that no child covers yet.
type gap[K interval.Ordinal] struct {
	index int // insertion index among the children
	span  interval.Interval[K]
}

// AddTag attaches tag to [start, end). The range is clipped to the domain; an
// empty range is a no-op. Ranges already carrying tag are left untouched and
// contiguous ranges carrying tag are merged.
func (r *Tree[K, T]) AddTag(tag T, start, end K) {
	span := interval.New(start, end)
	if !span.IsValid() {
		return
	}
	r.logger.V(1).Info("add tag", "tag", tag, "interval", span.String())
	r.insert(r.root, tag, span)
}

func (r *Tree[K, T]) insert(n *node[K, T], tag T, span interval.Interval[K]) {
	span = span.Clip(n.span)
	if span.IsEmpty() {
		return
	}
	if n.hasTag(tag) {
		return
	}
	if len(n.children) == 0 {
		n.children = append(n.children, newNode(span, tag))
		return
	}
	// extending a neighbor over the whole range is only safe when nothing
	// with another tag lies in between
	if onlyTagged(n, tag, span) && mergeWithNeighbors(n, tag, span) {
		return
	}

	var gaps []gap[K]
	current := span.Start
	i := firstOverlapping(n.children, current)

	// gap before the first overlapping child
	if i < len(n.children) && current < n.children[i].span.Start {
		end := min(span.End, n.children[i].span.Start)
		gaps = append(gaps, gap[K]{index: i, span: interval.New(current, end)})
		current = end
	}

	for ; i < len(n.children) && current < span.End; i++ {
		child := n.children[i]
		if current < child.span.End {
			r.insert(child, tag, interval.New(current, span.End))
			current = child.span.End
		}
		if i+1 < len(n.children) {
			next := n.children[i+1]
			if current < span.End && current < next.span.Start {
				end := min(span.End, next.span.Start)
				gaps = append(gaps, gap[K]{index: i + 1, span: interval.New(current, end)})
				current = end
			}
		}
	}

	// gap after the last child
	if current < span.End {
		gaps = append(gaps, gap[K]{index: len(n.children), span: interval.New(current, span.End)})
	}

	// descending, so earlier indexes stay valid
	for j := len(gaps) - 1; j >= 0; j-- {
		g := gaps[j]
		if !mergeWithNeighbors(n, tag, g.span) {
			n.children = slices.Insert(n.children, g.index, newNode(g.span, tag))
		}
	}
}

// onlyTagged returns whether every child of n overlapping span carries tag.
func onlyTagged[K interval.Ordinal, T comparable](n *node[K, T], tag T, span interval.Interval[K]) bool {
	for i := firstOverlapping(n.children, span.Start); i < len(n.children); i++ {
		child := n.children[i]
		if child.span.Start >= span.End {
			break
		}
		if !child.hasTag(tag) {
			return false
		}
	}
	return true
}

// mergeWithNeighbors extends the left or right neighbor of span to cover it
// when that neighbor carries tag and touches span. The extended neighbor then
// absorbs every following sibling it reaches that carries tag as well.
// Returns whether a merge happened; the caller must not insert span then.
func mergeWithNeighbors[K interval.Ordinal, T comparable](n *node[K, T], tag T, span interval.Interval[K]) bool {
	if len(n.children) == 0 {
		return false
	}
	i := findInsertionPoint(n.children, span.Start)

	anchor := -1
	switch {
	case i > 0 && n.children[i-1].hasTag(tag) && n.children[i-1].span.Touches(span):
		anchor = i - 1
	case i < len(n.children) && n.children[i].hasTag(tag) && span.Touches(n.children[i].span):
		anchor = i
	default:
		return false
	}

	merged := n.children[anchor]
	merged.span = merged.span.Union(span)
	for anchor+1 < len(n.children) {
		next := n.children[anchor+1]
		if !next.hasTag(tag) || !merged.span.Touches(next.span) {
			break
		}
		merged.absorb(next)
		n.children = slices.Delete(n.children, anchor+1, anchor+2)
	}
	return true
}

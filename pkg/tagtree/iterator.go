package tagtree

import "github.com/henderiw/tagtree/pkg/interval"

// Span is a tagged node as seen by an iterator.
type Span[K interval.Ordinal, T comparable] struct {
	Interval interval.Interval[K]
	Tag      T
	Depth    int // 1 for children of the root
}

type iteratorFrame[K interval.Ordinal, T comparable] struct {
	node *node[K, T]
	next int // index of the next child to visit
}

// Iterator is a stateful pre-order iterator over the tagged nodes of a tree.
type Iterator[K interval.Ordinal, T comparable] struct {
	history []iteratorFrame[K, T]
	current *node[K, T]
}

// Iterate returns an iterator over all tagged nodes, parents before children
// and siblings in ascending order. It is important for the tree to not be
// modified while using the iterator.
func (r *Tree[K, T]) Iterate() *Iterator[K, T] {
	return &Iterator[K, T]{
		history: []iteratorFrame[K, T]{{node: r.root}},
	}
}

// Next jumps to the next tagged node. It returns false if there is none.
func (iter *Iterator[K, T]) Next() bool {
	for len(iter.history) > 0 {
		top := &iter.history[len(iter.history)-1]
		if top.next >= len(top.node.children) {
			// We need to backtrack
			iter.history = iter.history[:len(iter.history)-1]
			continue
		}
		child := top.node.children[top.next]
		top.next++
		iter.history = append(iter.history, iteratorFrame[K, T]{node: child})
		iter.current = child
		return true
	}
	iter.current = nil
	return false
}

// Span returns the node the iterator is positioned on.
func (iter *Iterator[K, T]) Span() Span[K, T] {
	return Span[K, T]{
		Interval: iter.current.span,
		Tag:      iter.current.tag,
		Depth:    len(iter.history) - 1,
	}
}

// Spans returns all tagged nodes in iteration order.
func (r *Tree[K, T]) Spans() []Span[K, T] {
	var spans []Span[K, T]
	iter := r.Iterate()
	for iter.Next() {
		spans = append(spans, iter.Span())
	}
	return spans
}

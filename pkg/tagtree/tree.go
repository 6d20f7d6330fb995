package tagtree

import (
	"github.com/cockroachdb/errors"
	"github.com/go-logr/logr"
	"github.com/henderiw/tagtree/pkg/interval"
	"k8s.io/apimachinery/pkg/util/sets"
)

var (
	// ErrInvalidInterval is returned for an empty or reversed interval.
	ErrInvalidInterval = errors.New("invalid interval")
	// ErrLengthMismatch is returned when the rendered sequence does not span
	// the domain of the tree.
	ErrLengthMismatch = errors.New("sequence length does not match the domain")
)

type Option func(*options)

type options struct {
	logger logr.Logger
}

// WithLogger sets the logger used to trace mutations.
func WithLogger(l logr.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Tree maintains tags attached to sub-ranges of a fixed domain. Children of a
// node never overlap each other and are nested inside their parent, so
// overlapping tags are represented by nesting.
//
// A Tree is not safe for concurrent use.
type Tree[K interval.Ordinal, T comparable] struct {
	name   string
	root   *node[K, T]
	logger logr.Logger
}

// NewTree creates an empty tree spanning the domain [start, end).
func NewTree[K interval.Ordinal, T comparable](name string, start, end K, opts ...Option) (*Tree[K, T], error) {
	domain := interval.New(start, end)
	if !domain.IsValid() {
		return nil, errors.Wrapf(ErrInvalidInterval, "tree %s cannot span domain %s", name, domain)
	}
	o := options{logger: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Tree[K, T]{
		name:   name,
		root:   &node[K, T]{span: domain},
		logger: o.logger.WithValues("tree", name),
	}, nil
}

func (r *Tree[K, T]) Name() string { return r.name }

// Logger returns the logger the tree traces mutations with.
func (r *Tree[K, T]) Logger() logr.Logger { return r.logger }

// Domain returns the interval spanned by the tree.
func (r *Tree[K, T]) Domain() interval.Interval[K] { return r.root.span }

// Clone creates an identical copy of the tree
// - Note: the tags in the tree are not deep copied
func (r *Tree[K, T]) Clone() *Tree[K, T] {
	return &Tree[K, T]{
		name:   r.name,
		root:   r.root.clone(),
		logger: r.logger,
	}
}

// Len returns the number of tagged nodes in the tree.
func (r *Tree[K, T]) Len() int {
	count := 0
	iter := r.Iterate()
	for iter.Next() {
		count++
	}
	return count
}

// Tags returns every distinct tag stored in the tree.
func (r *Tree[K, T]) Tags() sets.Set[T] {
	tags := sets.New[T]()
	iter := r.Iterate()
	for iter.Next() {
		tags.Insert(iter.Span().Tag)
	}
	return tags
}

// TagsAt returns the tags covering pos.
func (r *Tree[K, T]) TagsAt(pos K) sets.Set[T] {
	tags := sets.New[T]()
	n := r.root
	if !n.span.Contains(pos) {
		return tags
	}
	for {
		i := firstOverlapping(n.children, pos)
		if i >= len(n.children) || !n.children[i].span.Contains(pos) {
			return tags
		}
		n = n.children[i]
		tags.Insert(n.tag)
	}
}

package markup

import (
	"strings"
	"sync"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/henderiw/tagtree/pkg/interval"
	"github.com/henderiw/tagtree/pkg/tagtree"
	"k8s.io/apimachinery/pkg/util/sets"
)

// ErrInvalidTag is returned for tag names that cannot be rendered as markup.
var ErrInvalidTag = errors.New("invalid tag")

// Document is a text with markup tags attached to rune ranges of it. It is
// safe for concurrent use.
type Document struct {
	m    *sync.RWMutex
	text string
	tree *tagtree.Tree[int, string]
}

// New creates an untagged document over text. Positions address runes of
// text, starting at 0.
func New(name, text string, opts ...tagtree.Option) (*Document, error) {
	t, err := tagtree.NewTree[int, string](name, 0, tagtree.RuneLen(text), opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot create document %s", name)
	}
	return &Document{
		m:    new(sync.RWMutex),
		text: text,
		tree: t,
	}, nil
}

func (r *Document) Name() string { return r.tree.Name() }

func (r *Document) Text() string { return r.text }

// Len returns the number of runes in the document.
func (r *Document) Len() int { return r.tree.Domain().End }

// Clone creates an identical copy of the document.
func (r *Document) Clone() *Document {
	r.m.RLock()
	defer r.m.RUnlock()

	return &Document{
		m:    new(sync.RWMutex),
		text: r.text,
		tree: r.tree.Clone(),
	}
}

// validate rejects tags that would not survive rendering as <tag>.
func (r *Document) validate(tag string) error {
	if tag == "" {
		return errors.Wrap(ErrInvalidTag, "tag is empty")
	}
	if strings.ContainsAny(tag, "<>/") || strings.IndexFunc(tag, unicode.IsSpace) >= 0 {
		return errors.Wrapf(ErrInvalidTag, "tag %q contains markup or whitespace", tag)
	}
	return nil
}

// Tag attaches tag to the runes [start, end). Out of range positions are
// clipped to the document.
func (r *Document) Tag(tag string, start, end int) error {
	if err := r.validate(tag); err != nil {
		r.tree.Logger().V(1).Info("tag rejected", "tag", tag, "error", err.Error())
		return err
	}
	r.m.Lock()
	defer r.m.Unlock()

	r.tree.AddTag(tag, start, end)
	return nil
}

// TagRange is Tag with the range given as "start-end".
func (r *Document) TagRange(tag, s string) error {
	span, err := interval.ParseRange[int](s)
	if err != nil {
		return err
	}
	return r.Tag(tag, span.Start, span.End)
}

// Untag detaches tag from the runes [start, end) and returns whether anything
// was removed.
func (r *Document) Untag(tag string, start, end int) (bool, error) {
	if err := r.validate(tag); err != nil {
		return false, err
	}
	r.m.Lock()
	defer r.m.Unlock()

	return r.tree.RemoveTag(tag, start, end), nil
}

// UntagRange is Untag with the range given as "start-end".
func (r *Document) UntagRange(tag, s string) (bool, error) {
	span, err := interval.ParseRange[int](s)
	if err != nil {
		return false, err
	}
	return r.Untag(tag, span.Start, span.End)
}

// Has returns whether tag covers all runes in [start, end).
func (r *Document) Has(tag string, start, end int) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.tree.HasTag(tag, start, end)
}

// TagsAt returns the sorted tags covering the rune at pos.
func (r *Document) TagsAt(pos int) []string {
	r.m.RLock()
	defer r.m.RUnlock()

	return sets.List(r.tree.TagsAt(pos))
}

// Tags returns every tag used in the document, sorted.
func (r *Document) Tags() []string {
	r.m.RLock()
	defer r.m.RUnlock()

	return sets.List(r.tree.Tags())
}

// Spans returns the tagged spans of the document, parents before children.
func (r *Document) Spans() []tagtree.Span[int, string] {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.tree.Spans()
}

// Render returns the text with <tag> and </tag> markers spliced in.
func (r *Document) Render() (string, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.tree.Render(r.text)
}

// RenderWith is Render with a custom marker format.
func (r *Document) RenderWith(format tagtree.MarkerFormatFunc[string]) (string, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.tree.RenderWith(r.text, format)
}

package tagtree

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/henderiw/tagtree/pkg/interval"
	"golang.org/x/exp/slices"
)

// Marker is the opening or closing boundary of a tagged node.
type Marker[K interval.Ordinal, T comparable] struct {
	Pos     K
	Tag     T
	Opening bool
	Depth   int
}

// MarkerFormatFunc returns the text emitted for a marker.
type MarkerFormatFunc[T comparable] func(tag T, opening bool) string

// DefaultMarkerFormat formats markers as <tag> and </tag>.
func DefaultMarkerFormat[T comparable](tag T, opening bool) string {
	if opening {
		return fmt.Sprintf("<%v>", tag)
	}
	return fmt.Sprintf("</%v>", tag)
}

// Markers returns an opening and a closing marker for every tagged node,
// sorted by position. At equal positions closing markers come before opening
// ones, deeper closings first and shallower openings first, so the markers
// nest the way the nodes do.
func (r *Tree[K, T]) Markers() []Marker[K, T] {
	var markers []Marker[K, T]
	iter := r.Iterate()
	for iter.Next() {
		s := iter.Span()
		markers = append(markers,
			Marker[K, T]{Pos: s.Interval.Start, Tag: s.Tag, Opening: true, Depth: s.Depth},
			Marker[K, T]{Pos: s.Interval.End, Tag: s.Tag, Opening: false, Depth: s.Depth},
		)
	}
	slices.SortStableFunc(markers, func(a, b Marker[K, T]) bool {
		switch {
		case a.Pos != b.Pos:
			return a.Pos < b.Pos
		case a.Opening != b.Opening:
			return !a.Opening
		case a.Opening:
			return a.Depth < b.Depth
		default:
			return a.Depth > b.Depth
		}
	})
	return markers
}

// Render splices the markers of the tree into text, whose length in runes
// must equal the length of the domain. Markers are formatted as <tag> and
// </tag>.
func (r *Tree[K, T]) Render(text string) (string, error) {
	return r.RenderWith(text, DefaultMarkerFormat[T])
}

// RenderWith is Render with a custom marker format.
func (r *Tree[K, T]) RenderWith(text string, format MarkerFormatFunc[T]) (string, error) {
	domain := r.root.span
	runes := []rune(text)
	if got, want := len(runes), int(domain.Len()); got != want {
		return "", errors.Wrapf(ErrLengthMismatch, "tree %s: got %d runes, domain %s needs %d", r.name, got, domain, want)
	}

	var sb strings.Builder
	sb.Grow(len(text))
	last := 0
	for _, m := range r.Markers() {
		pos := int(m.Pos - domain.Start)
		if pos > last {
			// text between markers or before the first marker
			sb.WriteString(string(runes[last:pos]))
			last = pos
		}
		sb.WriteString(format(m.Tag, m.Opening))
	}
	if len(runes) > last {
		sb.WriteString(string(runes[last:]))
	}
	return sb.String(), nil
}

// RuneLen returns the domain length needed to render text.
func RuneLen(text string) int { return utf8.RuneCountInString(text) }

package interval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// Ordinal is the set of types usable as interval endpoints.
type Ordinal interface {
	constraints.Integer | constraints.Float
}

// Interval is the half-open range [Start, End).
type Interval[K Ordinal] struct {
	Start K
	End   K
}

func New[K Ordinal](start, end K) Interval[K] {
	return Interval[K]{Start: start, End: end}
}

// ParseRange parses a range of the form "start-end", e.g. "10-20".
func ParseRange[K Ordinal](s string) (Interval[K], error) {
	var r Interval[K]
	s = strings.TrimSpace(s)
	// skip the first byte so a leading minus sign is not taken as the separator
	h := -1
	if len(s) > 1 {
		h = strings.IndexByte(s[1:], '-')
	}
	if h == -1 {
		return r, errors.Newf("no hyphen in range %q", s)
	}
	h++
	from, to := strings.TrimSpace(s[:h]), strings.TrimSpace(s[h+1:])
	start, err := parseOrdinal[K](from)
	if err != nil {
		return r, errors.Wrapf(err, "invalid start %q in range %q", from, s)
	}
	end, err := parseOrdinal[K](to)
	if err != nil {
		return r, errors.Wrapf(err, "invalid end %q in range %q", to, s)
	}
	r = New(start, end)
	if !r.IsValid() {
		return r, errors.Newf("range %q is empty", s)
	}
	return r, nil
}

// parseOrdinal parses integer types exactly and float types as float64.
func parseOrdinal[K Ordinal](s string) (K, error) {
	var zero K
	half := 0.5
	switch {
	case K(half) != zero:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		return K(f), nil
	case zero-1 < zero:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, err
		}
		v := K(i)
		if int64(v) != i {
			return 0, errors.Newf("%s overflows %T", s, v)
		}
		return v, nil
	default:
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, err
		}
		v := K(u)
		if uint64(v) != u {
			return 0, errors.Newf("%s overflows %T", s, v)
		}
		return v, nil
	}
}

func (r Interval[K]) String() string {
	return fmt.Sprintf("%v-%v", r.Start, r.End)
}

// IsValid returns whether the interval is non-empty.
func (r Interval[K]) IsValid() bool { return r.Start < r.End }

func (r Interval[K]) IsEmpty() bool { return !r.IsValid() }

func (r Interval[K]) Len() K {
	if r.IsEmpty() {
		return 0
	}
	return r.End - r.Start
}

func (r Interval[K]) Contains(pos K) bool {
	return r.Start <= pos && pos < r.End
}

// Clip returns the intersection of r and other. The result is empty when they
// do not overlap.
func (r Interval[K]) Clip(other Interval[K]) Interval[K] {
	return New(max(r.Start, other.Start), min(r.End, other.End))
}

// Union returns the smallest interval covering r and other.
func (r Interval[K]) Union(other Interval[K]) Interval[K] {
	return New(min(r.Start, other.Start), max(r.End, other.End))
}

// Overlaps returns whether r and other share at least one point.
func (r Interval[K]) Overlaps(other Interval[K]) bool {
	return r.Start < other.End && other.Start < r.End
}

// Touches returns whether r and other overlap or are contiguous.
func (r Interval[K]) Touches(other Interval[K]) bool {
	return r.Start <= other.End && other.Start <= r.End
}

// EntirelyBefore returns whether r ends at or before the start of other.
func (r Interval[K]) EntirelyBefore(other Interval[K]) bool {
	return r.End <= other.Start
}

// CoveredBy returns whether r is entirely contained within other.
func (r Interval[K]) CoveredBy(other Interval[K]) bool {
	return other.Start <= r.Start && r.End <= other.End
}

// InMiddleOf returns whether r is inside other, but not touching the
// edges of other.
func (r Interval[K]) InMiddleOf(other Interval[K]) bool {
	return other.Start < r.Start && r.End < other.End
}

// OverlapsStartOf returns whether r overlaps the start of other, but not all
// of other.
func (r Interval[K]) OverlapsStartOf(other Interval[K]) bool {
	return r.Start <= other.Start && r.End < other.End
}

// OverlapsEndOf returns whether r overlaps the end of other, but not all of
// other.
func (r Interval[K]) OverlapsEndOf(other Interval[K]) bool {
	return other.Start < r.Start && other.End <= r.End
}

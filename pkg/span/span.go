// Package span provides character-offset spans over text, inclusive of
// Start and exclusive of End, and their mapping onto ranges.
package span

import (
	"cmp"
	"fmt"

	"github.com/henderiw/rangetable/pkg/interval"
)

// Span is a non-empty range of character offsets [Start, End).
type Span struct {
	Start int
	End   int
}

// New returns the span [start, end). The start offset must be strictly
// less than the end offset.
func New(start, end int) (Span, error) {
	if start >= end {
		return Span{}, fmt.Errorf("start offset must be strictly less than end offset but got [%d,%d)", start, end)
	}
	return Span{Start: start, End: end}, nil
}

// FromInclusiveToExclusive is the same as New; the explicit name
// reduces off-by-one errors at call sites.
func FromInclusiveToExclusive(startInclusive, endExclusive int) (Span, error) {
	return New(startInclusive, endExclusive)
}

func (s Span) Len() int { return s.End - s.Start }

func (s Span) ContainsOffset(i int) bool {
	return s.Start <= i && i < s.End
}

func (s Span) ContainsSpan(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End
}

// Precedes reports whether s ends before o begins.
func (s Span) Precedes(o Span) bool {
	return s.End <= o.Start
}

// Follows reports whether s starts after o ends.
func (s Span) Follows(o Span) bool {
	return s.Start >= o.End
}

// Overlaps reports whether at least one offset lies in both spans.
func (s Span) Overlaps(o Span) bool {
	return !(s.Precedes(o) || o.Precedes(s))
}

// ClipTo returns a copy of s clipped to lie entirely within enclosing;
// false if s lies entirely outside it.
func (s Span) ClipTo(enclosing Span) (Span, bool) {
	if !enclosing.Overlaps(s) {
		return Span{}, false
	}
	if enclosing.ContainsSpan(s) {
		return s, true
	}
	return Span{Start: max(s.Start, enclosing.Start), End: min(s.End, enclosing.End)}, true
}

// Shift returns a copy of s with both offsets moved by amount; negative
// amounts shift left.
func (s Span) Shift(amount int) Span {
	return Span{Start: s.Start + amount, End: s.End + amount}
}

// AsRange maps the span onto the closed offset range [Start..End-1].
func (s Span) AsRange() interval.Range[int] {
	r, _ := interval.Closed(s.Start, s.End-1)
	return r
}

// MinimalEnclosingSpan returns the smallest span containing every given
// span; it fails on an empty input.
func MinimalEnclosingSpan(spans ...Span) (Span, error) {
	if len(spans) == 0 {
		return Span{}, fmt.Errorf("cannot take the enclosing span of no spans")
	}
	out := spans[0]
	for _, s := range spans[1:] {
		out.Start = min(out.Start, s.Start)
		out.End = max(out.End, s.End)
	}
	return out, nil
}

// Compare orders spans earliest-first, with longer spans preceding
// shorter ones at the same start offset.
func Compare(a, b Span) int {
	if c := cmp.Compare(a.Start, b.Start); c != 0 {
		return c
	}
	return cmp.Compare(b.End, a.End)
}

func (s Span) String() string {
	return fmt.Sprintf("[%d:%d)", s.Start, s.End)
}

// Package interval provides generic open/closed/unbounded intervals
// over any totally ordered domain, the building block for the rangeset
// and rangemap containers.
package interval

import (
	"cmp"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRange is returned when a range factory is asked for a range
// whose lower bound does not lie strictly below its upper bound, which
// includes the empty forms [a..a) and (a..a].
var ErrInvalidRange = errors.New("invalid range")

// Range is a contiguous, non-empty span of values between a lower and
// an upper Bound. A Range is an immutable value type; the zero Range is
// the all-domain range (-∞..+∞).
//
// With each side closed, open or unbounded this yields the nine
// interval shapes [a..b], (a..b), [a..b), (a..b], [a..+∞), (a..+∞),
// (-∞..b], (-∞..b) and (-∞..+∞).
type Range[T cmp.Ordered] struct {
	lower Bound[T]
	upper Bound[T]
}

// New builds a range from two bounds. It fails with ErrInvalidRange
// unless lower lies strictly below upper, so every constructed Range
// contains at least one point of a dense domain.
func New[T cmp.Ordered](lower, upper Bound[T]) (Range[T], error) {
	r := Range[T]{lower: lower, upper: upper}
	if lower.lowerCut().Compare(upper.upperCut()) >= 0 {
		return Range[T]{}, fmt.Errorf("%w: %s", ErrInvalidRange, r.String())
	}
	return r, nil
}

// Closed returns [lower..upper].
func Closed[T cmp.Ordered](lower, upper T) (Range[T], error) {
	return New(ClosedBound(lower), ClosedBound(upper))
}

// Open returns (lower..upper).
func Open[T cmp.Ordered](lower, upper T) (Range[T], error) {
	return New(OpenBound(lower), OpenBound(upper))
}

// OpenClosed returns (lower..upper].
func OpenClosed[T cmp.Ordered](lower, upper T) (Range[T], error) {
	return New(OpenBound(lower), ClosedBound(upper))
}

// ClosedOpen returns [lower..upper).
func ClosedOpen[T cmp.Ordered](lower, upper T) (Range[T], error) {
	return New(ClosedBound(lower), OpenBound(upper))
}

// AtLeast returns [v..+∞).
func AtLeast[T cmp.Ordered](v T) Range[T] {
	return Range[T]{lower: ClosedBound(v)}
}

// GreaterThan returns (v..+∞).
func GreaterThan[T cmp.Ordered](v T) Range[T] {
	return Range[T]{lower: OpenBound(v)}
}

// AtMost returns (-∞..v].
func AtMost[T cmp.Ordered](v T) Range[T] {
	return Range[T]{upper: ClosedBound(v)}
}

// LessThan returns (-∞..v).
func LessThan[T cmp.Ordered](v T) Range[T] {
	return Range[T]{upper: OpenBound(v)}
}

// All returns (-∞..+∞).
func All[T cmp.Ordered]() Range[T] {
	return Range[T]{}
}

// Single returns the singleton range [v..v].
func Single[T cmp.Ordered](v T) Range[T] {
	return Range[T]{lower: ClosedBound(v), upper: ClosedBound(v)}
}

// Spanning returns the minimal range enclosing every given range. It
// fails on an empty input.
func Spanning[T cmp.Ordered](ranges ...Range[T]) (Range[T], error) {
	if len(ranges) == 0 {
		return Range[T]{}, fmt.Errorf("%w: cannot span zero ranges", ErrInvalidRange)
	}
	out := ranges[0]
	for _, r := range ranges[1:] {
		out = out.Span(r)
	}
	return out, nil
}

func (r Range[T]) Lower() Bound[T] { return r.lower }
func (r Range[T]) Upper() Bound[T] { return r.upper }

func (r Range[T]) HasLowerBound() bool { return r.lower.IsBounded() }
func (r Range[T]) HasUpperBound() bool { return r.upper.IsBounded() }

// LowerEndpoint returns the lower endpoint value; the zero value when
// unbounded below.
func (r Range[T]) LowerEndpoint() T { return r.lower.value }

// UpperEndpoint returns the upper endpoint value; the zero value when
// unbounded above.
func (r Range[T]) UpperEndpoint() T { return r.upper.value }

// LowerCut and UpperCut expose the cut positions of the bounds, used by
// the containers to binary-search over stored ranges.
func (r Range[T]) LowerCut() Cut[T] { return r.lower.lowerCut() }
func (r Range[T]) UpperCut() Cut[T] { return r.upper.upperCut() }

// Contains reports whether v lies within the range.
func (r Range[T]) Contains(v T) bool {
	switch r.lower.kind {
	case KindClosed:
		if v < r.lower.value {
			return false
		}
	case KindOpen:
		if v <= r.lower.value {
			return false
		}
	}
	switch r.upper.kind {
	case KindClosed:
		if v > r.upper.value {
			return false
		}
	case KindOpen:
		if v >= r.upper.value {
			return false
		}
	}
	return true
}

// Encloses reports whether every value in o is also in r.
func (r Range[T]) Encloses(o Range[T]) bool {
	return r.LowerCut().Compare(o.LowerCut()) <= 0 &&
		r.UpperCut().Compare(o.UpperCut()) >= 0
}

// IsConnected reports whether r and o overlap or are adjacent, i.e.
// whether their union is a single contiguous range. [2..4) and [4..6)
// are connected; [3..5] and [6..10] are not, even over the integers.
func (r Range[T]) IsConnected(o Range[T]) bool {
	return r.LowerCut().Compare(o.UpperCut()) <= 0 &&
		o.LowerCut().Compare(r.UpperCut()) <= 0
}

// Overlaps reports whether r and o share at least one value.
func (r Range[T]) Overlaps(o Range[T]) bool {
	lower, upper := r.intersectionBounds(o)
	return lower.lowerCut().Compare(upper.upperCut()) < 0
}

// IsAdjacent reports whether r and o touch without sharing any value,
// such as [1..5] and (5..10].
func (r Range[T]) IsAdjacent(o Range[T]) bool {
	return r.IsConnected(o) && !r.Overlaps(o)
}

// Span returns the minimal range enclosing both r and o. If the two are
// not connected the result also covers the gap between them.
func (r Range[T]) Span(o Range[T]) Range[T] {
	out := r
	if o.LowerCut().Compare(r.LowerCut()) < 0 {
		out.lower = o.lower
	}
	if o.UpperCut().Compare(r.UpperCut()) > 0 {
		out.upper = o.upper
	}
	return out
}

// Intersection returns the maximal range enclosed by both r and o. The
// second return is false when the two ranges share no value.
func (r Range[T]) Intersection(o Range[T]) (Range[T], bool) {
	lower, upper := r.intersectionBounds(o)
	if lower.lowerCut().Compare(upper.upperCut()) >= 0 {
		return Range[T]{}, false
	}
	return Range[T]{lower: lower, upper: upper}, true
}

func (r Range[T]) intersectionBounds(o Range[T]) (lower, upper Bound[T]) {
	lower = r.lower
	if o.LowerCut().Compare(r.LowerCut()) > 0 {
		lower = o.lower
	}
	upper = r.upper
	if o.UpperCut().Compare(r.UpperCut()) < 0 {
		upper = o.upper
	}
	return lower, upper
}

// Equal reports whether both bounds match exactly, including openness.
// [1..5] and [1..6) are different ranges even over the integers.
func (r Range[T]) Equal(o Range[T]) bool {
	return r.lower.Equal(o.lower) && r.upper.Equal(o.upper)
}

// Compare orders ranges by lower bound, then by upper bound. Within a
// set of disjoint ranges this is the natural ascending order.
func Compare[T cmp.Ordered](a, b Range[T]) int {
	if c := a.LowerCut().Compare(b.LowerCut()); c != 0 {
		return c
	}
	return a.UpperCut().Compare(b.UpperCut())
}

// String renders the range in interval notation, e.g. [5..8), (-∞..5).
func (r Range[T]) String() string {
	var b strings.Builder
	switch r.lower.kind {
	case KindClosed:
		fmt.Fprintf(&b, "[%v", r.lower.value)
	case KindOpen:
		fmt.Fprintf(&b, "(%v", r.lower.value)
	default:
		b.WriteString("(-∞")
	}
	b.WriteString("..")
	switch r.upper.kind {
	case KindClosed:
		fmt.Fprintf(&b, "%v]", r.upper.value)
	case KindOpen:
		fmt.Fprintf(&b, "%v)", r.upper.value)
	default:
		b.WriteString("+∞)")
	}
	return b.String()
}

package interval

import "cmp"

// BoundKind indicates whether an endpoint value is part of its range
// ("closed"), excluded from it ("open"), or absent altogether
// ("unbounded", the range extends to infinity on that side).
type BoundKind uint8

const (
	KindUnbounded BoundKind = iota
	KindOpen
	KindClosed
)

func (k BoundKind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindClosed:
		return "closed"
	default:
		return "unbounded"
	}
}

// Bound is one endpoint of a Range: an endpoint value plus a BoundKind.
// The zero Bound is unbounded.
type Bound[T cmp.Ordered] struct {
	kind  BoundKind
	value T
}

func ClosedBound[T cmp.Ordered](v T) Bound[T] {
	return Bound[T]{kind: KindClosed, value: v}
}

func OpenBound[T cmp.Ordered](v T) Bound[T] {
	return Bound[T]{kind: KindOpen, value: v}
}

func UnboundedBound[T cmp.Ordered]() Bound[T] {
	return Bound[T]{}
}

func (b Bound[T]) Kind() BoundKind { return b.kind }

// Value returns the endpoint value; it is the zero value for an
// unbounded Bound.
func (b Bound[T]) Value() T { return b.value }

func (b Bound[T]) IsBounded() bool { return b.kind != KindUnbounded }

// Inverse flips a bound to the complementary bound on the other side of
// the same endpoint: the lower bound [5 and the upper bound 5) cut the
// domain at exactly the same place. Unbounded stays unbounded.
func (b Bound[T]) Inverse() Bound[T] {
	switch b.kind {
	case KindOpen:
		return Bound[T]{kind: KindClosed, value: b.value}
	case KindClosed:
		return Bound[T]{kind: KindOpen, value: b.value}
	default:
		return b
	}
}

func (b Bound[T]) Equal(o Bound[T]) bool {
	if b.kind != o.kind {
		return false
	}
	return b.kind == KindUnbounded || b.value == o.value
}

// A cut is a position on the domain "line" between values. Every bound,
// together with the role it plays (lower or upper), maps to a unique
// cut: a closed lower bound and an open upper bound sit just below
// their endpoint, an open lower bound and a closed upper bound just
// above it. Unbounded maps to -inf as a lower bound and +inf as an
// upper bound. Ordering bounds as cuts is what makes adjacency and
// overlap checks exact for mixed open/closed endpoints.
type Cut[T cmp.Ordered] struct {
	inf   int8 // -1 below all, +1 above all, 0 finite
	value T
	above bool // cut sits just above value rather than just below
}

func (b Bound[T]) lowerCut() Cut[T] {
	switch b.kind {
	case KindClosed:
		return Cut[T]{value: b.value}
	case KindOpen:
		return Cut[T]{value: b.value, above: true}
	default:
		return Cut[T]{inf: -1}
	}
}

func (b Bound[T]) upperCut() Cut[T] {
	switch b.kind {
	case KindClosed:
		return Cut[T]{value: b.value, above: true}
	case KindOpen:
		return Cut[T]{value: b.value}
	default:
		return Cut[T]{inf: 1}
	}
}

func (c Cut[T]) Compare(o Cut[T]) int {
	if c.inf != 0 || o.inf != 0 {
		return cmp.Compare(c.inf, o.inf)
	}
	if r := cmp.Compare(c.value, o.value); r != 0 {
		return r
	}
	switch {
	case c.above == o.above:
		return 0
	case o.above:
		return -1
	default:
		return 1
	}
}

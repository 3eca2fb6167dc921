// Package rangeset provides an ordered set of disjoint, maximally
// merged ranges over an ordered domain. Adding a range coalesces it
// with every stored range it overlaps or touches; removing a range
// truncates or splits the stored ranges it intersects.
//
// A RangeSet is not safe for concurrent mutation. Queries never mutate
// internal state, so concurrent read-only access is safe.
package rangeset

import (
	"cmp"
	"iter"
	"sort"
	"strings"

	"github.com/henderiw/rangetable/pkg/interval"
)

type RangeSet[T cmp.Ordered] struct {
	// sorted by lower bound; pairwise disjoint and non-connected, so
	// the upper bounds are sorted as well
	ranges []interval.Range[T]
}

// New returns a set covering the given ranges. Overlapping or adjacent
// input ranges are merged during construction.
func New[T cmp.Ordered](ranges ...interval.Range[T]) *RangeSet[T] {
	s := &RangeSet[T]{}
	s.AddAll(ranges...)
	return s
}

// Add inserts r, merging it with every stored range connected to it.
// Adding a range already covered by the set leaves the set unchanged.
func (s *RangeSet[T]) Add(r interval.Range[T]) {
	i := sort.Search(len(s.ranges), func(k int) bool {
		return s.ranges[k].LowerCut().Compare(r.LowerCut()) >= 0
	})
	if i > 0 && s.ranges[i-1].IsConnected(r) {
		i--
	}
	merged := r
	j := i
	for j < len(s.ranges) && s.ranges[j].IsConnected(merged) {
		merged = merged.Span(s.ranges[j])
		j++
	}
	s.replace(i, j, merged)
}

func (s *RangeSet[T]) AddAll(ranges ...interval.Range[T]) {
	for _, r := range ranges {
		s.Add(r)
	}
}

// AddSet adds every range of o to s.
func (s *RangeSet[T]) AddSet(o *RangeSet[T]) {
	s.AddAll(o.ranges...)
}

// Remove deletes the portion of the set covered by r. A stored range
// straddling one edge of r is truncated; a stored range enclosing r is
// split in two. Removing a range that overlaps nothing is a no-op.
func (s *RangeSet[T]) Remove(r interval.Range[T]) {
	i := sort.Search(len(s.ranges), func(k int) bool {
		return s.ranges[k].UpperCut().Compare(r.LowerCut()) > 0
	})
	j := i
	var frags []interval.Range[T]
	for j < len(s.ranges) && s.ranges[j].LowerCut().Compare(r.UpperCut()) < 0 {
		stored := s.ranges[j]
		if r.HasLowerBound() {
			if left, err := interval.New(stored.Lower(), r.Lower().Inverse()); err == nil {
				frags = append(frags, left)
			}
		}
		if r.HasUpperBound() {
			if right, err := interval.New(r.Upper().Inverse(), stored.Upper()); err == nil {
				frags = append(frags, right)
			}
		}
		j++
	}
	s.replace(i, j, frags...)
}

func (s *RangeSet[T]) RemoveAll(ranges ...interval.Range[T]) {
	for _, r := range ranges {
		s.Remove(r)
	}
}

// RemoveSet removes every range of o from s.
func (s *RangeSet[T]) RemoveSet(o *RangeSet[T]) {
	s.RemoveAll(o.ranges...)
}

func (s *RangeSet[T]) Clear() {
	s.ranges = nil
}

// Contains reports whether some stored range contains v.
func (s *RangeSet[T]) Contains(v T) bool {
	_, ok := s.RangeContaining(v)
	return ok
}

// RangeContaining returns the stored range containing v, if any.
func (s *RangeSet[T]) RangeContaining(v T) (interval.Range[T], bool) {
	point := interval.Single(v)
	i := s.searchLower(point)
	if i < 0 || !s.ranges[i].Contains(v) {
		return interval.Range[T]{}, false
	}
	return s.ranges[i], true
}

// Encloses reports whether a single stored range fully contains r.
func (s *RangeSet[T]) Encloses(r interval.Range[T]) bool {
	_, ok := s.Enclosing(r)
	return ok
}

// Enclosing returns the single stored range fully containing r, if
// any. Because stored ranges are disjoint and maximally merged, no
// query range can be covered by several stored ranges without being
// enclosed by one of them.
func (s *RangeSet[T]) Enclosing(r interval.Range[T]) (interval.Range[T], bool) {
	i := s.searchLower(r)
	if i < 0 || !s.ranges[i].Encloses(r) {
		return interval.Range[T]{}, false
	}
	return s.ranges[i], true
}

// RangesEnclosedBy yields the stored ranges fully contained within r,
// in ascending order. The sequence is lazy and restartable; mutating
// the set while iterating is not supported.
func (s *RangeSet[T]) RangesEnclosedBy(r interval.Range[T]) iter.Seq[interval.Range[T]] {
	return func(yield func(interval.Range[T]) bool) {
		i := sort.Search(len(s.ranges), func(k int) bool {
			return s.ranges[k].LowerCut().Compare(r.LowerCut()) >= 0
		})
		for ; i < len(s.ranges); i++ {
			if !r.Encloses(s.ranges[i]) || !yield(s.ranges[i]) {
				return
			}
		}
	}
}

// Intersects reports whether any stored range shares a value with r.
func (s *RangeSet[T]) Intersects(r interval.Range[T]) bool {
	i := sort.Search(len(s.ranges), func(k int) bool {
		return s.ranges[k].LowerCut().Compare(r.LowerCut()) >= 0
	})
	if i < len(s.ranges) && s.ranges[i].Overlaps(r) {
		return true
	}
	return i > 0 && s.ranges[i-1].Overlaps(r)
}

// MaximalContainingOrBelow returns the stored range with the greatest
// lower bound not exceeding limit: either the range containing limit or
// the nearest one entirely below it.
func (s *RangeSet[T]) MaximalContainingOrBelow(limit T) (interval.Range[T], bool) {
	i := s.searchLower(interval.Single(limit))
	if i < 0 {
		return interval.Range[T]{}, false
	}
	return s.ranges[i], true
}

// MinimalContainingOrAbove returns the stored range with the smallest
// upper bound not below limit: either the range containing limit or the
// nearest one entirely above it.
func (s *RangeSet[T]) MinimalContainingOrAbove(limit T) (interval.Range[T], bool) {
	// the cut just above limit catches closed upper bounds at limit
	cut := interval.Single(limit).UpperCut()
	i := sort.Search(len(s.ranges), func(k int) bool {
		return s.ranges[k].LowerCut().Compare(cut) >= 0
	})
	if i > 0 && cut.Compare(s.ranges[i-1].UpperCut()) <= 0 {
		return s.ranges[i-1], true
	}
	if i < len(s.ranges) {
		return s.ranges[i], true
	}
	return interval.Range[T]{}, false
}

// Span returns the minimal range enclosing the whole set; false on an
// empty set.
func (s *RangeSet[T]) Span() (interval.Range[T], bool) {
	if len(s.ranges) == 0 {
		return interval.Range[T]{}, false
	}
	r, err := interval.New(s.ranges[0].Lower(), s.ranges[len(s.ranges)-1].Upper())
	if err != nil {
		return interval.Range[T]{}, false
	}
	return r, true
}

func (s *RangeSet[T]) IsEmpty() bool { return len(s.ranges) == 0 }

func (s *RangeSet[T]) Len() int { return len(s.ranges) }

// Ranges returns a snapshot copy of the stored ranges in ascending
// order.
func (s *RangeSet[T]) Ranges() []interval.Range[T] {
	out := make([]interval.Range[T], len(s.ranges))
	copy(out, s.ranges)
	return out
}

// All yields the stored ranges in ascending order without copying.
func (s *RangeSet[T]) All() iter.Seq[interval.Range[T]] {
	return func(yield func(interval.Range[T]) bool) {
		for _, r := range s.ranges {
			if !yield(r) {
				return
			}
		}
	}
}

func (s *RangeSet[T]) Equal(o *RangeSet[T]) bool {
	if len(s.ranges) != len(o.ranges) {
		return false
	}
	for i := range s.ranges {
		if !s.ranges[i].Equal(o.ranges[i]) {
			return false
		}
	}
	return true
}

func (s *RangeSet[T]) Clone() *RangeSet[T] {
	return &RangeSet[T]{ranges: s.Ranges()}
}

// Union returns a new set covering every value covered by s or o.
func (s *RangeSet[T]) Union(o *RangeSet[T]) *RangeSet[T] {
	out := s.Clone()
	out.AddSet(o)
	return out
}

// Intersection returns a new set covering exactly the values covered by
// both s and o.
func (s *RangeSet[T]) Intersection(o *RangeSet[T]) *RangeSet[T] {
	out := &RangeSet[T]{}
	i, j := 0, 0
	for i < len(s.ranges) && j < len(o.ranges) {
		if x, ok := s.ranges[i].Intersection(o.ranges[j]); ok {
			out.ranges = append(out.ranges, x)
		}
		// advance whichever range ends first
		if s.ranges[i].UpperCut().Compare(o.ranges[j].UpperCut()) <= 0 {
			i++
		} else {
			j++
		}
	}
	return out
}

func (s *RangeSet[T]) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, r := range s.ranges {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(r.String())
	}
	b.WriteByte('}')
	return b.String()
}

// Closest returns the stored range nearest to q under the given
// distance metric: the overlapping or adjacent range if one exists
// (distance zero), otherwise the nearer of the two neighboring ranges.
// Ties prefer the range with the smaller lower bound. The second return
// is false only on an empty set.
//
// dist is called with two domain values a <= b delimiting the gap
// between q and a candidate range, and must return a non-negative gap
// width.
func Closest[T cmp.Ordered, D cmp.Ordered](s *RangeSet[T], q interval.Range[T], dist func(a, b T) D) (interval.Range[T], bool) {
	if len(s.ranges) == 0 {
		return interval.Range[T]{}, false
	}
	i := sort.Search(len(s.ranges), func(k int) bool {
		return s.ranges[k].LowerCut().Compare(q.LowerCut()) > 0
	})
	// the only candidates are the nearest stored range on each side
	if i > 0 && s.ranges[i-1].IsConnected(q) {
		return s.ranges[i-1], true
	}
	if i < len(s.ranges) && s.ranges[i].IsConnected(q) {
		return s.ranges[i], true
	}
	switch {
	case i == 0:
		return s.ranges[i], true
	case i == len(s.ranges):
		return s.ranges[i-1], true
	}
	// both neighbors are strictly apart from q, so all four endpoint
	// values involved are finite
	below := dist(s.ranges[i-1].UpperEndpoint(), q.LowerEndpoint())
	above := dist(q.UpperEndpoint(), s.ranges[i].LowerEndpoint())
	if below <= above {
		return s.ranges[i-1], true
	}
	return s.ranges[i], true
}

// searchLower returns the index of the last stored range whose lower
// bound does not exceed r's, or -1.
func (s *RangeSet[T]) searchLower(r interval.Range[T]) int {
	return sort.Search(len(s.ranges), func(k int) bool {
		return s.ranges[k].LowerCut().Compare(r.LowerCut()) > 0
	}) - 1
}

func (s *RangeSet[T]) replace(i, j int, ranges ...interval.Range[T]) {
	out := make([]interval.Range[T], 0, len(s.ranges)-(j-i)+len(ranges))
	out = append(out, s.ranges[:i]...)
	out = append(out, ranges...)
	out = append(out, s.ranges[j:]...)
	s.ranges = out
}

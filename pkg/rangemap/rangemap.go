// Package rangemap provides an ordered mapping from disjoint ranges to
// values. Putting an entry clips, splits or removes any stored entries
// it overlaps, so the newest write always wins within its footprint.
// Unlike a rangeset, adjacent entries are never coalesced automatically,
// not even when they carry equal values; Coalesce offers that as an
// explicit operation.
//
// A RangeMap is not safe for concurrent mutation. Queries never mutate
// internal state, so concurrent read-only access is safe.
package rangemap

import (
	"cmp"
	"fmt"
	"iter"
	"sort"
	"strings"

	"github.com/henderiw/rangetable/pkg/interval"
	"github.com/henderiw/rangetable/pkg/rangeset"
)

// Entry is one stored (range, value) pair.
type Entry[K cmp.Ordered, V any] struct {
	rng interval.Range[K]
	val V
}

func NewEntry[K cmp.Ordered, V any](rng interval.Range[K], val V) Entry[K, V] {
	return Entry[K, V]{rng: rng, val: val}
}

func (e Entry[K, V]) Range() interval.Range[K] { return e.rng }
func (e Entry[K, V]) Value() V                 { return e.val }

func (e Entry[K, V]) String() string {
	return fmt.Sprintf("%s -> %v", e.rng.String(), e.val)
}

type RangeMap[K cmp.Ordered, V any] struct {
	// sorted by lower bound; key ranges are pairwise disjoint
	entries []Entry[K, V]
}

func New[K cmp.Ordered, V any]() *RangeMap[K, V] {
	return &RangeMap[K, V]{}
}

// Put stores val for every key in r. Stored entries overlapping r are
// truncated at its edges, split around it, or dropped entirely.
func (m *RangeMap[K, V]) Put(r interval.Range[K], val V) {
	// punch a hole, then put the new entry in it
	m.Remove(r)
	i := sort.Search(len(m.entries), func(k int) bool {
		return m.entries[k].rng.LowerCut().Compare(r.LowerCut()) > 0
	})
	m.replace(i, i, Entry[K, V]{rng: r, val: val})
}

// Remove deletes the portion of every stored entry covered by r,
// keeping the clipped remainders with their original values.
func (m *RangeMap[K, V]) Remove(r interval.Range[K]) {
	i := sort.Search(len(m.entries), func(k int) bool {
		return m.entries[k].rng.UpperCut().Compare(r.LowerCut()) > 0
	})
	j := i
	var frags []Entry[K, V]
	for j < len(m.entries) && m.entries[j].rng.LowerCut().Compare(r.UpperCut()) < 0 {
		stored := m.entries[j]
		if r.HasLowerBound() {
			if left, err := interval.New(stored.rng.Lower(), r.Lower().Inverse()); err == nil {
				frags = append(frags, Entry[K, V]{rng: left, val: stored.val})
			}
		}
		if r.HasUpperBound() {
			if right, err := interval.New(r.Upper().Inverse(), stored.rng.Upper()); err == nil {
				frags = append(frags, Entry[K, V]{rng: right, val: stored.val})
			}
		}
		j++
	}
	m.replace(i, j, frags...)
}

// Get returns the value of the entry whose range contains k.
func (m *RangeMap[K, V]) Get(k K) (V, bool) {
	e, ok := m.GetEntry(k)
	return e.val, ok
}

// GetEntry is Get plus the exact stored range, so the caller learns the
// full extent of the match.
func (m *RangeMap[K, V]) GetEntry(k K) (Entry[K, V], bool) {
	i := m.searchLower(interval.Single(k))
	if i < 0 || !m.entries[i].rng.Contains(k) {
		return Entry[K, V]{}, false
	}
	return m.entries[i], true
}

// EnclosingEntry returns the single stored entry whose range fully
// contains r, if any.
func (m *RangeMap[K, V]) EnclosingEntry(r interval.Range[K]) (Entry[K, V], bool) {
	i := m.searchLower(r)
	if i < 0 || !m.entries[i].rng.Encloses(r) {
		return Entry[K, V]{}, false
	}
	return m.entries[i], true
}

// GetEnclosedBy yields the stored entries whose ranges lie fully within
// r, in ascending order.
func (m *RangeMap[K, V]) GetEnclosedBy(r interval.Range[K]) iter.Seq[Entry[K, V]] {
	return func(yield func(Entry[K, V]) bool) {
		i := sort.Search(len(m.entries), func(k int) bool {
			return m.entries[k].rng.LowerCut().Compare(r.LowerCut()) >= 0
		})
		for ; i < len(m.entries); i++ {
			if !r.Encloses(m.entries[i].rng) || !yield(m.entries[i]) {
				return
			}
		}
	}
}

// GetFromMaximalContainingOrBelow returns the value of the entry with
// the greatest lower bound not exceeding k: the entry containing k or
// the nearest one entirely below it.
func (m *RangeMap[K, V]) GetFromMaximalContainingOrBelow(k K) (V, bool) {
	i := m.searchLower(interval.Single(k))
	if i < 0 {
		var zero V
		return zero, false
	}
	return m.entries[i].val, true
}

// GetFromMinimalContainingOrAbove returns the value of the entry with
// the smallest upper bound not below k: the entry containing k or the
// nearest one entirely above it.
func (m *RangeMap[K, V]) GetFromMinimalContainingOrAbove(k K) (V, bool) {
	cut := interval.Single(k).UpperCut()
	i := sort.Search(len(m.entries), func(j int) bool {
		return m.entries[j].rng.LowerCut().Compare(cut) >= 0
	})
	if i > 0 && cut.Compare(m.entries[i-1].rng.UpperCut()) <= 0 {
		return m.entries[i-1].val, true
	}
	if i < len(m.entries) {
		return m.entries[i].val, true
	}
	var zero V
	return zero, false
}

func (m *RangeMap[K, V]) IsEmpty() bool { return len(m.entries) == 0 }

func (m *RangeMap[K, V]) Len() int { return len(m.entries) }

// Entries returns a snapshot copy of the stored entries in ascending
// order.
func (m *RangeMap[K, V]) Entries() []Entry[K, V] {
	out := make([]Entry[K, V], len(m.entries))
	copy(out, m.entries)
	return out
}

// All yields the stored (range, value) pairs in ascending order.
func (m *RangeMap[K, V]) All() iter.Seq2[interval.Range[K], V] {
	return func(yield func(interval.Range[K], V) bool) {
		for _, e := range m.entries {
			if !yield(e.rng, e.val) {
				return
			}
		}
	}
}

// Keys returns the set of keys with a mapping, as a rangeset. Adjacent
// key ranges merge in the result even though they stay separate in the
// map.
func (m *RangeMap[K, V]) Keys() *rangeset.RangeSet[K] {
	s := rangeset.New[K]()
	for _, e := range m.entries {
		s.Add(e.rng)
	}
	return s
}

func (m *RangeMap[K, V]) Clone() *RangeMap[K, V] {
	return &RangeMap[K, V]{entries: m.Entries()}
}

func (m *RangeMap[K, V]) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteByte('}')
	return b.String()
}

// ClosestEntry returns the stored entry whose range is nearest to q
// under the given distance metric, with the same candidate selection
// and tie-break as rangeset.Closest: overlap or adjacency means
// distance zero, ties prefer the entry with the smaller lower bound.
// The second return is false only on an empty map.
func ClosestEntry[K cmp.Ordered, D cmp.Ordered, V any](m *RangeMap[K, V], q interval.Range[K], dist func(a, b K) D) (Entry[K, V], bool) {
	if len(m.entries) == 0 {
		return Entry[K, V]{}, false
	}
	i := sort.Search(len(m.entries), func(k int) bool {
		return m.entries[k].rng.LowerCut().Compare(q.LowerCut()) > 0
	})
	if i > 0 && m.entries[i-1].rng.IsConnected(q) {
		return m.entries[i-1], true
	}
	if i < len(m.entries) && m.entries[i].rng.IsConnected(q) {
		return m.entries[i], true
	}
	switch {
	case i == 0:
		return m.entries[i], true
	case i == len(m.entries):
		return m.entries[i-1], true
	}
	below := dist(m.entries[i-1].rng.UpperEndpoint(), q.LowerEndpoint())
	above := dist(q.UpperEndpoint(), m.entries[i].rng.LowerEndpoint())
	if below <= above {
		return m.entries[i-1], true
	}
	return m.entries[i], true
}

// ClosestTo is nearest-key search: ClosestEntry degenerated to the
// singleton range [k..k].
func ClosestTo[K cmp.Ordered, D cmp.Ordered, V any](m *RangeMap[K, V], k K, dist func(a, b K) D) (Entry[K, V], bool) {
	return ClosestEntry(m, interval.Single(k), dist)
}

// Coalesce merges runs of connected entries carrying equal values into
// single entries, layering rangeset-like merge semantics on top of a
// map that deliberately preserves per-insertion extents.
func Coalesce[K cmp.Ordered, V comparable](m *RangeMap[K, V]) {
	if len(m.entries) < 2 {
		return
	}
	out := m.entries[:1]
	for _, e := range m.entries[1:] {
		last := &out[len(out)-1]
		if last.val == e.val && last.rng.IsConnected(e.rng) {
			last.rng = last.rng.Span(e.rng)
			continue
		}
		out = append(out, e)
	}
	m.entries = out
}

// searchLower returns the index of the last stored entry whose lower
// bound does not exceed r's, or -1.
func (m *RangeMap[K, V]) searchLower(r interval.Range[K]) int {
	return sort.Search(len(m.entries), func(k int) bool {
		return m.entries[k].rng.LowerCut().Compare(r.LowerCut()) > 0
	}) - 1
}

func (m *RangeMap[K, V]) replace(i, j int, entries ...Entry[K, V]) {
	out := make([]Entry[K, V], 0, len(m.entries)-(j-i)+len(entries))
	out = append(out, m.entries[:i]...)
	out = append(out, entries...)
	out = append(out, m.entries[j:]...)
	m.entries = out
}

package interval

import (
	"errors"
	"testing"

	"github.com/tj/assert"
)

func mustClosed(t *testing.T, lower, upper int) Range[int] {
	t.Helper()
	r, err := Closed(lower, upper)
	assert.NoError(t, err)
	return r
}

func mustOpen(t *testing.T, lower, upper int) Range[int] {
	t.Helper()
	r, err := Open(lower, upper)
	assert.NoError(t, err)
	return r
}

func mustClosedOpen(t *testing.T, lower, upper int) Range[int] {
	t.Helper()
	r, err := ClosedOpen(lower, upper)
	assert.NoError(t, err)
	return r
}

func mustOpenClosed(t *testing.T, lower, upper int) Range[int] {
	t.Helper()
	r, err := OpenClosed(lower, upper)
	assert.NoError(t, err)
	return r
}

func TestFactories(t *testing.T) {
	cases := map[string]struct {
		build       func() (Range[int], error)
		expectedErr bool
		expected    string
	}{
		"Open":                 {build: func() (Range[int], error) { return Open(4, 8) }, expected: "(4..8)"},
		"Closed":               {build: func() (Range[int], error) { return Closed(5, 7) }, expected: "[5..7]"},
		"OpenClosed":           {build: func() (Range[int], error) { return OpenClosed(4, 7) }, expected: "(4..7]"},
		"ClosedOpen":           {build: func() (Range[int], error) { return ClosedOpen(5, 8) }, expected: "[5..8)"},
		"Singleton":            {build: func() (Range[int], error) { return Closed(4, 4) }, expected: "[4..4]"},
		"LessThan":             {build: func() (Range[int], error) { return LessThan(5), nil }, expected: "(-∞..5)"},
		"AtMost":               {build: func() (Range[int], error) { return AtMost(5), nil }, expected: "(-∞..5]"},
		"GreaterThan":          {build: func() (Range[int], error) { return GreaterThan(5), nil }, expected: "(5..+∞)"},
		"AtLeast":              {build: func() (Range[int], error) { return AtLeast(5), nil }, expected: "[5..+∞)"},
		"All":                  {build: func() (Range[int], error) { return All[int](), nil }, expected: "(-∞..+∞)"},
		"InvertedOpen":         {build: func() (Range[int], error) { return Open(8, 4) }, expectedErr: true},
		"InvertedClosed":       {build: func() (Range[int], error) { return Closed(8, 4) }, expectedErr: true},
		"EmptyOpen":            {build: func() (Range[int], error) { return Open(4, 4) }, expectedErr: true},
		"EmptyClosedOpen":      {build: func() (Range[int], error) { return ClosedOpen(4, 4) }, expectedErr: true},
		"EmptyOpenClosed":      {build: func() (Range[int], error) { return OpenClosed(4, 4) }, expectedErr: true},
		"UnboundedBoundsOnNew": {build: func() (Range[int], error) { return New(UnboundedBound[int](), UnboundedBound[int]()) }, expected: "(-∞..+∞)"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := tc.build()
			if tc.expectedErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidRange))
				return
			}
			assert.NoError(t, err)
			if r.String() != tc.expected {
				t.Errorf("%s: -want %s, +got: %s\n", name, tc.expected, r.String())
			}
		})
	}
}

func TestBounds(t *testing.T) {
	r := mustOpenClosed(t, 4, 7)
	assert.True(t, r.HasLowerBound())
	assert.Equal(t, 4, r.LowerEndpoint())
	assert.Equal(t, KindOpen, r.Lower().Kind())
	assert.True(t, r.HasUpperBound())
	assert.Equal(t, 7, r.UpperEndpoint())
	assert.Equal(t, KindClosed, r.Upper().Kind())

	all := All[int]()
	assert.False(t, all.HasLowerBound())
	assert.False(t, all.HasUpperBound())
	assert.Equal(t, KindUnbounded, all.Lower().Kind())
}

func TestContains(t *testing.T) {
	cases := map[string]struct {
		rng Range[int]
		in  []int
		out []int
	}{
		"Open":        {rng: mustOpen(t, 4, 8), in: []int{5, 7}, out: []int{4, 8}},
		"Closed":      {rng: mustClosed(t, 5, 7), in: []int{5, 6, 7}, out: []int{4, 8}},
		"ClosedOpen":  {rng: mustClosedOpen(t, 5, 8), in: []int{5, 7}, out: []int{4, 8}},
		"OpenClosed":  {rng: mustOpenClosed(t, 4, 7), in: []int{5, 7}, out: []int{4, 8}},
		"Singleton":   {rng: mustClosed(t, 4, 4), in: []int{4}, out: []int{3, 5}},
		"LessThan":    {rng: LessThan(5), in: []int{-1 << 30, 4}, out: []int{5, 6}},
		"AtMost":      {rng: AtMost(5), in: []int{-1 << 30, 5}, out: []int{6}},
		"GreaterThan": {rng: GreaterThan(5), in: []int{6, 1 << 30}, out: []int{4, 5}},
		"AtLeast":     {rng: AtLeast(5), in: []int{5, 1 << 30}, out: []int{4}},
		"All":         {rng: All[int](), in: []int{-1 << 30, 0, 1 << 30}, out: nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			for _, v := range tc.in {
				if !tc.rng.Contains(v) {
					t.Errorf("%s: expected %s to contain %d\n", name, tc.rng.String(), v)
				}
			}
			for _, v := range tc.out {
				if tc.rng.Contains(v) {
					t.Errorf("%s: expected %s not to contain %d\n", name, tc.rng.String(), v)
				}
			}
		})
	}
}

func TestEncloses(t *testing.T) {
	rng := mustClosed(t, 2, 8)
	cases := map[string]struct {
		other    Range[int]
		expected bool
	}{
		"Self":              {other: rng, expected: true},
		"Inner":             {other: mustOpen(t, 3, 6), expected: true},
		"SameLower":         {other: mustClosed(t, 2, 6), expected: true},
		"SameUpper":         {other: mustClosed(t, 4, 8), expected: true},
		"OpenAtClosedEdges": {other: mustOpen(t, 2, 8), expected: true},
		"ExtendsBelow":      {other: mustClosed(t, 1, 6), expected: false},
		"ExtendsAbove":      {other: mustClosed(t, 4, 9), expected: false},
		"ClosedAtOpenEdge":  {other: mustClosed(t, 2, 9), expected: false},
		"Unbounded":         {other: AtLeast(3), expected: false},
		"All":               {other: All[int](), expected: false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if rng.Encloses(tc.other) != tc.expected {
				t.Errorf("%s: %s.Encloses(%s) -want %v\n", name, rng.String(), tc.other.String(), tc.expected)
			}
		})
	}

	// an open range does not enclose the closed range on the same endpoints
	assert.False(t, mustOpen(t, 2, 8).Encloses(mustClosed(t, 2, 8)))
	assert.True(t, All[int]().Encloses(rng))
}

func TestIsConnected(t *testing.T) {
	cases := map[string]struct {
		a, b      Range[int]
		connected bool
		adjacent  bool
		overlaps  bool
	}{
		"Overlap":              {a: mustClosed(t, 1, 5), b: mustClosed(t, 3, 7), connected: true, overlaps: true},
		"TouchClosedOpen":      {a: mustClosed(t, 1, 5), b: mustOpenClosed(t, 5, 10), connected: true, adjacent: true},
		"TouchHalfOpen":        {a: mustClosedOpen(t, 2, 4), b: mustClosedOpen(t, 4, 6), connected: true, adjacent: true},
		"TouchBothClosed":      {a: mustClosed(t, 1, 5), b: mustClosed(t, 5, 10), connected: true, overlaps: true},
		"Gap":                  {a: mustClosedOpen(t, 2, 4), b: mustClosedOpen(t, 5, 7), connected: false},
		"DiscreteGap":          {a: mustClosed(t, 3, 5), b: mustClosed(t, 6, 10), connected: false},
		"BothOpenAtSameValue":  {a: mustOpen(t, 1, 5), b: mustOpen(t, 5, 10), connected: false},
		"Nested":               {a: mustClosed(t, 1, 10), b: mustOpen(t, 3, 6), connected: true, overlaps: true},
		"UnboundedOverlap":     {a: AtLeast(5), b: LessThan(7), connected: true, overlaps: true},
		"UnboundedTouch":       {a: LessThan(5), b: AtLeast(5), connected: true, adjacent: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.connected, tc.a.IsConnected(tc.b), "connected")
			assert.Equal(t, tc.connected, tc.b.IsConnected(tc.a), "connected symmetric")
			assert.Equal(t, tc.overlaps, tc.a.Overlaps(tc.b), "overlaps")
			assert.Equal(t, tc.overlaps, tc.b.Overlaps(tc.a), "overlaps symmetric")
			assert.Equal(t, tc.adjacent, tc.a.IsAdjacent(tc.b), "adjacent")
			assert.Equal(t, tc.adjacent, tc.b.IsAdjacent(tc.a), "adjacent symmetric")
		})
	}
}

func TestIntersection(t *testing.T) {
	cases := map[string]struct {
		a, b     Range[int]
		expected string
		none     bool
	}{
		"Overlap":      {a: mustClosed(t, 1, 5), b: mustOpen(t, 3, 7), expected: "(3..5]"},
		"Nested":       {a: mustClosed(t, 1, 10), b: mustOpen(t, 3, 6), expected: "(3..6)"},
		"SharedPoint":  {a: mustClosed(t, 1, 5), b: mustClosed(t, 5, 10), expected: "[5..5]"},
		"Adjacent":     {a: mustClosedOpen(t, 1, 5), b: mustClosedOpen(t, 5, 7), none: true},
		"Disjoint":     {a: mustClosed(t, 1, 2), b: mustClosed(t, 5, 6), none: true},
		"Unbounded":    {a: AtLeast(3), b: AtMost(8), expected: "[3..8]"},
		"WithAll":      {a: All[int](), b: mustOpen(t, 3, 6), expected: "(3..6)"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, ok := tc.a.Intersection(tc.b)
			if tc.none {
				assert.False(t, ok)
				return
			}
			assert.True(t, ok)
			if got.String() != tc.expected {
				t.Errorf("%s: -want %s, +got: %s\n", name, tc.expected, got.String())
			}
		})
	}
}

func TestSpan(t *testing.T) {
	cases := map[string]struct {
		a, b     Range[int]
		expected string
	}{
		"Overlap":   {a: mustClosed(t, 1, 3), b: mustOpen(t, 5, 7), expected: "[1..7)"},
		"Nested":    {a: mustClosed(t, 1, 10), b: mustOpen(t, 3, 6), expected: "[1..10]"},
		"Disjoint":  {a: mustClosed(t, 1, 2), b: mustClosed(t, 5, 6), expected: "[1..6]"},
		"Unbounded": {a: LessThan(3), b: mustClosed(t, 5, 6), expected: "(-∞..6]"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := tc.a.Span(tc.b)
			if got.String() != tc.expected {
				t.Errorf("%s: -want %s, +got: %s\n", name, tc.expected, got.String())
			}
			sym := tc.b.Span(tc.a)
			assert.True(t, got.Equal(sym))
		})
	}
}

func TestSpanning(t *testing.T) {
	_, err := Spanning[int]()
	assert.Error(t, err)

	got, err := Spanning(mustClosed(t, 4, 6), mustClosed(t, 1, 3), mustOpen(t, 5, 9))
	assert.NoError(t, err)
	assert.Equal(t, "[1..9)", got.String())
}

func TestEqual(t *testing.T) {
	assert.True(t, mustClosed(t, 1, 5).Equal(mustClosed(t, 1, 5)))
	assert.False(t, mustClosed(t, 1, 5).Equal(mustClosedOpen(t, 1, 5)))
	assert.False(t, mustClosed(t, 1, 5).Equal(mustClosed(t, 1, 6)))
	assert.True(t, All[int]().Equal(All[int]()))
	assert.False(t, AtLeast(5).Equal(GreaterThan(5)))
}

func TestCompare(t *testing.T) {
	assert.Equal(t, 0, Compare(mustClosed(t, 1, 5), mustClosed(t, 1, 5)))
	assert.Equal(t, -1, Compare(mustClosed(t, 1, 5), mustOpen(t, 1, 5)))
	assert.Equal(t, -1, Compare(mustClosed(t, 1, 5), mustClosed(t, 2, 5)))
	assert.Equal(t, 1, Compare(mustClosed(t, 3, 5), mustClosed(t, 1, 5)))
	assert.Equal(t, -1, Compare(All[int](), mustClosed(t, 1, 5)))
}

func TestBoundKindString(t *testing.T) {
	assert.Equal(t, "closed", KindClosed.String())
	assert.Equal(t, "open", KindOpen.String())
	assert.Equal(t, "unbounded", KindUnbounded.String())
}

func TestBoundInverse(t *testing.T) {
	assert.Equal(t, KindOpen, ClosedBound(5).Inverse().Kind())
	assert.Equal(t, KindClosed, OpenBound(5).Inverse().Kind())
	assert.Equal(t, KindUnbounded, UnboundedBound[int]().Inverse().Kind())
}

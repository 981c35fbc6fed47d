package ir

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterval_Size(t *testing.T) {
	assert.Equal(t, "1", Point(7).Size().String())
	assert.Equal(t, "4000", Interval{Lo: 1, Hi: 4000}.Size().String())
	assert.Equal(t, "11", Interval{Lo: 10, Hi: 20}.Size().String())
}

func TestNewInterval_RejectsEmpty(t *testing.T) {
	_, err := NewInterval(5, 4)
	require.Error(t, err)

	iv, err := NewInterval(4, 4)
	require.NoError(t, err)
	assert.Equal(t, Point(4), iv)
}

func TestInterval_Split(t *testing.T) {
	tests := []struct {
		name       string
		in         Interval
		cmp        Comparator
		threshold  int64
		matched    Interval
		rest       Interval
		hasMatched bool
		hasRest    bool
	}{
		{"less inside", Interval{1, 4000}, Less, 2006, Interval{1, 2005}, Interval{2006, 4000}, true, true},
		{"greater inside", Interval{1, 4000}, Greater, 2090, Interval{2091, 4000}, Interval{1, 2090}, true, true},
		{"less below range", Interval{10, 20}, Less, 5, Interval{}, Interval{10, 20}, false, true},
		{"less above range", Interval{10, 20}, Less, 50, Interval{10, 20}, Interval{}, true, false},
		{"greater above range", Interval{10, 20}, Greater, 20, Interval{}, Interval{10, 20}, false, true},
		{"greater below range", Interval{10, 20}, Greater, 9, Interval{10, 20}, Interval{}, true, false},
		{"less at lower edge", Interval{10, 20}, Less, 10, Interval{}, Interval{10, 20}, false, true},
		{"less just above lower edge", Interval{10, 20}, Less, 11, Interval{10, 10}, Interval{11, 20}, true, true},
		{"greater at upper edge minus one", Interval{10, 20}, Greater, 19, Interval{20, 20}, Interval{10, 19}, true, true},
		{"point matched", Point(3), Less, 4, Point(3), Interval{}, true, false},
		{"less min int64", Interval{1, 4000}, Less, math.MinInt64, Interval{}, Interval{1, 4000}, false, true},
		{"less max int64", Interval{1, 4000}, Less, math.MaxInt64, Interval{1, 4000}, Interval{}, true, false},
		{"greater max int64", Interval{1, 4000}, Greater, math.MaxInt64, Interval{}, Interval{1, 4000}, false, true},
		{"greater min int64", Interval{1, 4000}, Greater, math.MinInt64, Interval{1, 4000}, Interval{}, true, false},
		{"greater max int64 at max edge", Interval{math.MaxInt64 - 1, math.MaxInt64}, Greater, math.MaxInt64, Interval{}, Interval{math.MaxInt64 - 1, math.MaxInt64}, false, true},
		{"less min int64 at min edge", Interval{math.MinInt64, math.MinInt64 + 1}, Less, math.MinInt64, Interval{}, Interval{math.MinInt64, math.MinInt64 + 1}, false, true},
		{"less splits at min edge", Interval{math.MinInt64, math.MinInt64 + 1}, Less, math.MinInt64 + 1, Point(math.MinInt64), Point(math.MinInt64 + 1), true, true},
		{"greater splits at max edge", Interval{math.MaxInt64 - 1, math.MaxInt64}, Greater, math.MaxInt64 - 1, Point(math.MaxInt64), Point(math.MaxInt64 - 1), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, r, okM, okR := tt.in.Split(tt.cmp, tt.threshold)
			assert.Equal(t, tt.hasMatched, okM)
			assert.Equal(t, tt.hasRest, okR)
			assert.Equal(t, tt.matched, m)
			assert.Equal(t, tt.rest, r)
		})
	}
}

// Every threshold around and inside a small interval must split it into two
// disjoint sides whose sizes add back up to the input.
func TestInterval_SplitComplementarity(t *testing.T) {
	in := Interval{Lo: 5, Hi: 15}
	for _, cmp := range []Comparator{Less, Greater} {
		for threshold := int64(0); threshold <= 20; threshold++ {
			m, r, okM, okR := in.Split(cmp, threshold)
			require.True(t, okM || okR, "%s%d: at least one side must survive", cmp, threshold)

			total := new(big.Int)
			if okM {
				total.Add(total, m.Size())
			}
			if okR {
				total.Add(total, r.Size())
			}
			assert.Equal(t, 0, total.Cmp(in.Size()), "%s%d: sizes must sum to input", cmp, threshold)

			if okM && okR {
				assert.True(t, m.Hi < r.Lo || r.Hi < m.Lo, "%s%d: sides overlap: %s %s", cmp, threshold, m, r)
			}
			for v := in.Lo; v <= in.Hi; v++ {
				inMatched := okM && m.Contains(v)
				assert.Equal(t, cmp.Holds(v, threshold), inMatched, "%s%d: value %d", cmp, threshold, v)
			}
		}
	}
}

func TestComparator_ParseAndString(t *testing.T) {
	c, err := ParseComparator("<")
	require.NoError(t, err)
	assert.Equal(t, Less, c)
	assert.Equal(t, "<", c.String())

	c, err = ParseComparator(">")
	require.NoError(t, err)
	assert.Equal(t, Greater, c)

	_, err = ParseComparator("=")
	assert.Error(t, err)
}

func TestParseAxis(t *testing.T) {
	for i, name := range []string{"x", "m", "a", "s"} {
		a, err := ParseAxis(name)
		require.NoError(t, err)
		assert.Equal(t, Axis(i), a)
		assert.Equal(t, name, a.String())
	}

	_, err := ParseAxis("q")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownAxis)
}

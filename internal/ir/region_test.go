package ir

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxRegion_Volume(t *testing.T) {
	want := new(big.Int).Exp(big.NewInt(4000), big.NewInt(4), nil)
	assert.Equal(t, 0, MaxRegion().Volume().Cmp(want))
	assert.Equal(t, "256000000000000", MaxRegion().Volume().String())
}

func TestRegion_VolumeBeyondInt64(t *testing.T) {
	// 2^20 per axis gives 2^80 points, which only math/big can hold.
	r := Universe(1, 1<<20)
	want := new(big.Int).Lsh(big.NewInt(1), 80)
	assert.Equal(t, 0, r.Volume().Cmp(want))
}

func TestRegion_SplitTouchesOnlyNamedAxis(t *testing.T) {
	r := MaxRegion()
	cond := Conditional{Axis: AxisA, Op: Less, Threshold: 2006, Destination: "qkq"}

	m, rest, okM, okR := r.Split(cond)
	assert.True(t, okM)
	assert.True(t, okR)

	assert.Equal(t, Interval{1, 2005}, m.Axis(AxisA))
	assert.Equal(t, Interval{2006, 4000}, rest.Axis(AxisA))
	for _, a := range []Axis{AxisX, AxisM, AxisS} {
		assert.Equal(t, r.Axis(a), m.Axis(a))
		assert.Equal(t, r.Axis(a), rest.Axis(a))
	}

	sum := new(big.Int).Add(m.Volume(), rest.Volume())
	assert.Equal(t, 0, sum.Cmp(r.Volume()))

	// The parent is a value and is left untouched.
	assert.Equal(t, MaxRegion(), r)
}

func TestRegion_SplitDropsEmptySide(t *testing.T) {
	r := Universe(1, 1).With(AxisA, Interval{1, 20})

	_, rest, okM, okR := r.Split(Conditional{Axis: AxisA, Op: Less, Threshold: 1, Destination: "R"})
	assert.False(t, okM)
	assert.True(t, okR)
	assert.Equal(t, r, rest)

	m, _, okM, okR := r.Split(Conditional{Axis: AxisA, Op: Greater, Threshold: 0, Destination: "A"})
	assert.True(t, okM)
	assert.False(t, okR)
	assert.Equal(t, r, m)
}

func TestRegion_ContainsAndPoint(t *testing.T) {
	p := NewPart(787, 2655, 1222, 2876)
	pr := PointRegion(p)

	assert.True(t, pr.Valid())
	assert.Equal(t, "1", pr.Volume().String())
	assert.True(t, pr.Contains(p))
	assert.True(t, MaxRegion().Contains(p))
	assert.False(t, MaxRegion().Contains(NewPart(0, 1, 1, 1)))
}

func TestRegion_String(t *testing.T) {
	r := Universe(1, 1).With(AxisA, Interval{10, 20})
	assert.Equal(t, "{x=[1,1],m=[1,1],a=[10,20],s=[1,1]}", r.String())
}

func TestTotalVolume(t *testing.T) {
	assert.Equal(t, "0", TotalVolume(nil).String())

	regions := []Region{Universe(1, 2), Universe(1, 3)}
	assert.Equal(t, "97", TotalVolume(regions).String()) // 16 + 81
}

func TestPart_RatingAndString(t *testing.T) {
	p := NewPart(787, 2655, 1222, 2876)
	assert.Equal(t, int64(7540), p.Rating())
	assert.Equal(t, "{x=787,m=2655,a=1222,s=2876}", p.String())
	assert.Equal(t, int64(1222), p.Value(AxisA))
}

package autostub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededSource_IsDeterministicAcrossInstances(t *testing.T) {
	a := NewSeededSource(99)
	b := NewSeededSource(99)

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.intRange(0, 1000), b.intRange(0, 1000))
		assert.Equal(t, a.floatRange(0, 1), b.floatRange(0, 1))
		assert.Equal(t, a.bool(), b.bool())
		assert.Equal(t, a.intN(10), b.intN(10))
	}
}

func TestSeededSource_DifferentSeedsDiverge(t *testing.T) {
	a := NewSeededSource(1)
	b := NewSeededSource(2)

	same := true
	for i := 0; i < 20; i++ {
		if a.intRange(0, 1_000_000) != b.intRange(0, 1_000_000) {
			same = false
			break
		}
	}
	assert.False(t, same, "expected different seeds to diverge within 20 draws")
}

func TestIntRange_ReturnsLowerWhenUpperNotGreater(t *testing.T) {
	src := NewSeededSource(1)
	assert.Equal(t, int64(5), src.intRange(5, 5))
	assert.Equal(t, int64(5), src.intRange(5, 4))
}

func TestIntRange_StaysWithinInclusiveBounds(t *testing.T) {
	src := NewSeededSource(7)
	for i := 0; i < 500; i++ {
		v := src.intRange(3, 9)
		assert.GreaterOrEqual(t, v, int64(3))
		assert.LessOrEqual(t, v, int64(9))
	}
}

func TestFloatRange_ReturnsLowerWhenUpperNotGreater(t *testing.T) {
	src := NewSeededSource(1)
	assert.Equal(t, 2.5, src.floatRange(2.5, 2.5))
}

func TestFloatRange_StaysWithinBounds(t *testing.T) {
	src := NewSeededSource(3)
	for i := 0; i < 500; i++ {
		v := src.floatRange(1.0, 2.0)
		assert.GreaterOrEqual(t, v, 1.0)
		assert.Less(t, v, 2.0)
	}
}

func TestChance_ClampsProbabilities(t *testing.T) {
	src := NewSeededSource(1)
	for i := 0; i < 20; i++ {
		assert.False(t, src.chance(0))
		assert.False(t, src.chance(-1))
		assert.True(t, src.chance(1))
		assert.True(t, src.chance(2))
	}
}

func TestIntN_ZeroOrNegativeAlwaysReturnsZero(t *testing.T) {
	src := NewSeededSource(1)
	assert.Equal(t, 0, src.intN(0))
	assert.Equal(t, 0, src.intN(-5))
}

func TestIntN_StaysBelowBound(t *testing.T) {
	src := NewSeededSource(11)
	for i := 0; i < 500; i++ {
		v := src.intN(7)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 7)
	}
}

func TestChooseIndex_MatchesIntN(t *testing.T) {
	src := NewSeededSource(42)
	ref := NewSeededSource(42)
	for i := 0; i < 50; i++ {
		idx := src.chooseIndex(5)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 5)
		assert.Equal(t, ref.intN(5), idx)
	}
}

package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampHelpers(t *testing.T) {
	assert.Equal(t, 2.5, clampF(9.0, 0.0, 2.5))
	assert.Equal(t, 0.0, clampF(-1.0, 0.0, 2.5))
	assert.Equal(t, 1.0, clampF(1.0, 0.0, 2.5))
	assert.Equal(t, 1.5, absF(-1.5))
}

func TestApproach(t *testing.T) {
	assert.Equal(t, 5.0, approach(0, 10, 5))
	assert.Equal(t, 10.0, approach(9, 10, 5), "overshoot snaps to target")
	assert.Equal(t, 5.0, approach(10, 0, 5))
	assert.Equal(t, 3.0, approach(3, 3, 5))
}

func TestRandDeterminism(t *testing.T) {
	a := NewRand(12345)
	b := NewRand(12345)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.NextU64(), b.NextU64())
	}
}

func TestRandBounds(t *testing.T) {
	r := NewRand(7)
	for i := 0; i < 1000; i++ {
		n := r.Intn(10)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 10)

		v := r.Range(-2, 2)
		assert.GreaterOrEqual(t, v, -2)
		assert.LessOrEqual(t, v, 2)

		f := r.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
	assert.Equal(t, 0, r.Intn(0))
	assert.Equal(t, 3, r.Range(3, 3))
}

func TestRandZeroSeed(t *testing.T) {
	r := NewRand(0)
	assert.NotEqual(t, uint64(0), r.NextU64(), "zero seed is remapped, not absorbing")
}

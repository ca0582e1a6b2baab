package vlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimatorAdd(t *testing.T) {
	var e Estimator
	assert.False(t, e.Seeded())
	assert.Zero(t, e.Mean())

	e.Add(100)
	assert.True(t, e.Seeded())
	assert.Equal(t, 1, e.Samples())
	assert.InDelta(t, 100, e.Mean(), 1e-9)

	e.Add(200)
	e.Add(300)
	assert.Equal(t, 3, e.Samples())
	assert.InDelta(t, 200, e.Mean(), 1e-9)
}

func TestEstimatorCorrect(t *testing.T) {
	t.Run("revises one sample without growing n", func(t *testing.T) {
		var e Estimator
		e.Add(100)
		e.Add(200)
		e.Add(300)

		// The 300 sample turns out to be 600: the mean of {100,200,600}.
		e.Correct(300, 600)
		assert.Equal(t, 3, e.Samples())
		assert.InDelta(t, 300, e.Mean(), 1e-9)
	})

	t.Run("differs from re-adding", func(t *testing.T) {
		var corrected, readded Estimator
		for _, v := range []int64{100, 200, 300} {
			corrected.Add(v)
			readded.Add(v)
		}
		corrected.Correct(300, 600)
		readded.Add(600)
		assert.NotEqual(t, corrected.Mean(), readded.Mean())
		assert.Equal(t, 4, readded.Samples())
	})

	t.Run("no-op with zero samples", func(t *testing.T) {
		var e Estimator
		e.Correct(0, 500)
		assert.Zero(t, e.Mean())
		assert.Zero(t, e.Samples())
	})
}

func TestEstimatorApproxIndex(t *testing.T) {
	var e Estimator
	assert.Zero(t, e.ApproxIndex(1000, 50), "unseeded estimator approximates nothing")

	e.Add(100)
	assert.Equal(t, 0, e.ApproxIndex(0, 50))
	assert.Equal(t, 0, e.ApproxIndex(-400, 50), "negative positions clamp to the first item")
	assert.Equal(t, 10, e.ApproxIndex(1000, 50))
	assert.Equal(t, 49, e.ApproxIndex(100000, 50), "clamps to the last item")
	assert.Equal(t, 0, e.ApproxIndex(1000, 0), "empty list")
}

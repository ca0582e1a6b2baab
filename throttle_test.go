package vlist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrottle(t *testing.T) {
	t.Run("zero interval never defers", func(t *testing.T) {
		thr := newThrottle(0)
		for i := 0; i < 5; i++ {
			assert.True(t, thr.trigger())
		}
		assert.Nil(t, thr.c())
	})

	t.Run("leading edge runs immediately", func(t *testing.T) {
		thr := newThrottle(time.Hour)
		assert.True(t, thr.trigger())
	})

	t.Run("burst defers into one trailing run", func(t *testing.T) {
		now := time.Unix(0, 0)
		thr := newThrottle(100 * time.Millisecond)
		thr.now = func() time.Time { return now }

		require.True(t, thr.trigger(), "leading edge")
		now = now.Add(10 * time.Millisecond)
		assert.False(t, thr.trigger(), "inside the interval")
		now = now.Add(10 * time.Millisecond)
		assert.False(t, thr.trigger(), "still inside")
		require.NotNil(t, thr.c(), "trailing timer armed")

		// The timer fires once; exactly one deferred run is due.
		now = now.Add(100 * time.Millisecond)
		assert.True(t, thr.fired())
		assert.False(t, thr.fired(), "no second trailing run")
	})

	t.Run("quiet spell passes through again", func(t *testing.T) {
		now := time.Unix(0, 0)
		thr := newThrottle(100 * time.Millisecond)
		thr.now = func() time.Time { return now }

		require.True(t, thr.trigger())
		now = now.Add(150 * time.Millisecond)
		assert.True(t, thr.trigger(), "interval elapsed, leading edge again")
	})

	t.Run("stop cancels the trailing run", func(t *testing.T) {
		thr := newThrottle(100 * time.Millisecond)
		require.True(t, thr.trigger())
		assert.False(t, thr.trigger())
		thr.stop()
		assert.Nil(t, thr.c())
		assert.False(t, thr.pending)
	})
}

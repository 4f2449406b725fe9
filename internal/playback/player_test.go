package playback

import (
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestPlayerTicksUntilStopped(t *testing.T) {
	player := NewPlayer(newTestLogger(), 2*time.Millisecond)

	var ticks atomic.Int64
	player.Start(func() bool {
		ticks.Add(1)
		return true
	})
	assert.True(t, player.Playing())

	waitFor(t, time.Second, func() bool { return ticks.Load() >= 3 })

	player.Stop()
	assert.False(t, player.Playing())

	settled := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	// At most one in-flight tick can land after Stop.
	assert.LessOrEqual(t, ticks.Load(), settled+1)
}

func TestPlayerStopsWhenTickReturnsFalse(t *testing.T) {
	player := NewPlayer(newTestLogger(), 2*time.Millisecond)

	var ticks atomic.Int64
	player.Start(func() bool {
		return ticks.Add(1) < 3
	})

	waitFor(t, time.Second, func() bool { return !player.Playing() })
	assert.Equal(t, int64(3), ticks.Load())
}

func TestPlayerStartWhilePlayingIsNoop(t *testing.T) {
	player := NewPlayer(newTestLogger(), 2*time.Millisecond)

	var first atomic.Int64
	player.Start(func() bool {
		first.Add(1)
		return true
	})
	defer player.Stop()

	var second atomic.Int64
	player.Start(func() bool {
		second.Add(1)
		return true
	})

	waitFor(t, time.Second, func() bool { return first.Load() >= 3 })
	assert.Zero(t, second.Load())
}

func TestPlayerStopWhenIdle(t *testing.T) {
	player := NewPlayer(newTestLogger(), 0)
	assert.Equal(t, DefaultInterval, player.interval)

	// Must not panic or block.
	player.Stop()
	player.Stop()
	assert.False(t, player.Playing())
}

func TestPlayerRestartAfterEnd(t *testing.T) {
	player := NewPlayer(newTestLogger(), 2*time.Millisecond)

	player.Start(func() bool { return false })
	waitFor(t, time.Second, func() bool { return !player.Playing() })

	var ticks atomic.Int64
	player.Start(func() bool {
		ticks.Add(1)
		return true
	})
	defer player.Stop()

	waitFor(t, time.Second, func() bool { return ticks.Load() >= 2 })
}

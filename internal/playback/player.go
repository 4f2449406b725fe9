// Periodic playback driver: one tick performs one advance-and-present cycle.
package playback

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultInterval targets roughly 30 frames per second.
const DefaultInterval = 33 * time.Millisecond

// Player runs a fixed-interval tick loop on its own goroutine. Ticks never
// overlap: the next tick is only consumed after the previous callback has
// returned, so a slow cycle simply lowers the effective frame rate.
type Player struct {
	mu       sync.Mutex
	logger   *logrus.Logger
	interval time.Duration
	stop     chan struct{}
	playing  bool
}

// NewPlayer creates a stopped player. An interval of zero or less selects
// DefaultInterval.
func NewPlayer(logger *logrus.Logger, interval time.Duration) *Player {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Player{logger: logger, interval: interval}
}

// Start begins ticking. The callback performs one cycle and returns false
// to end playback (typically on end of stream). Starting while already
// playing is a no-op.
func (p *Player) Start(tick func() bool) {
	p.mu.Lock()
	if p.playing {
		p.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	p.stop = stop
	p.playing = true
	p.mu.Unlock()

	p.logger.WithField("interval", p.interval).Debug("Playback started")

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if !tick() {
					p.mu.Lock()
					if p.stop == stop {
						p.playing = false
						p.stop = nil
					}
					p.mu.Unlock()
					p.logger.Debug("Playback ended by tick")
					return
				}
			}
		}
	}()
}

// Stop halts the tick loop. Safe to call when not playing.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.playing {
		return
	}
	close(p.stop)
	p.stop = nil
	p.playing = false
	p.logger.Debug("Playback stopped")
}

// Playing reports whether the tick loop is running.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

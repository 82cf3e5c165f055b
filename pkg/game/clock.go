package game

import (
	"time"

	"github.com/leonVoyt/snake-game/pkg/config"
)

// FrameClock turns frame timestamps into the dt passed to Tick. The first
// frame counts as one BaseTick and gaps are capped at MaxFrameGap so a
// stalled front-end does not skip several steps at once.
type FrameClock struct {
	last time.Time
}

// Next returns the time elapsed since the previous call
func (c *FrameClock) Next(now time.Time) time.Duration {
	if c.last.IsZero() {
		c.last = now
		return config.BaseTick
	}
	dt := now.Sub(c.last)
	c.last = now

	if dt < 0 {
		return 0
	}
	if dt > config.MaxFrameGap {
		return config.MaxFrameGap
	}
	return dt
}

package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// SweepGenerator glides a sine from one frequency to another over a fixed
// number of samples while fading out
type SweepGenerator struct {
	sr     beep.SampleRate
	from   float64
	to     float64
	length int
	pos    int
	phase  float64
}

// NewSweepGenerator creates a sweep lasting length samples
func NewSweepGenerator(sr beep.SampleRate, from, to float64, length int) *SweepGenerator {
	return &SweepGenerator{
		sr:     sr,
		from:   from,
		to:     to,
		length: length,
	}
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.length {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.length {
			return i, true
		}
		progress := float64(g.pos) / float64(g.length)
		freq := g.from + (g.to-g.from)*progress

		g.phase += 2 * math.Pi * freq / float64(g.sr)
		if g.phase > 2*math.Pi {
			g.phase -= 2 * math.Pi
		}

		sample := 0.3 * math.Sin(g.phase) * (1 - progress)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error {
	return nil
}

package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// oscillator generates a wave whose frequency slides linearly from freq to endFreq.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a constant-pitch oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator that glides from freq to endFreq.
func NewSweep(freq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s over duration with the given attack and release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if releaseStart := e.totalSamples - e.releaseSamples; e.releaseSamples > 0 && e.position >= releaseStart {
			vol = math.Min(vol, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; vol <= 0 is silent.
// effects.Volume works in log space, so math.Log2(0) must be avoided.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Sound effect generators

// CreateJumpSound is a short square chirp sweeping upwards.
func CreateJumpSound(rate beep.SampleRate, vol float64) beep.Streamer {
	const d = 90 * time.Millisecond
	osc := NewSweep(420, 840, d, WaveSquare, rate)
	return newVolume(NewEnvelope(osc, d, 5*time.Millisecond, 40*time.Millisecond, rate), vol*0.4)
}

// CreateMilestoneSound is a two-note chime.
func CreateMilestoneSound(rate beep.SampleRate, vol float64) beep.Streamer {
	const d1, d2 = 80 * time.Millisecond, 160 * time.Millisecond

	// B5 then E6
	n1 := NewEnvelope(NewOscillator(987.77, d1, WaveSquare, rate), d1, 2*time.Millisecond, 20*time.Millisecond, rate)
	n2 := NewEnvelope(NewOscillator(1318.51, d2, WaveSquare, rate), d2, 2*time.Millisecond, 120*time.Millisecond, rate)
	return newVolume(beep.Seq(n1, n2), vol*0.3)
}

// CreateCollisionSound is a low saw buzz with a falling pitch and long release.
func CreateCollisionSound(rate beep.SampleRate, vol float64) beep.Streamer {
	const d = 350 * time.Millisecond
	buzz := NewSweep(160, 60, d, WaveSaw, rate)
	sub := NewOscillator(55, d, WaveSine, rate)
	mixed := beep.Mix(newVolume(buzz, 0.7), newVolume(sub, 0.5))
	return newVolume(NewEnvelope(mixed, d, 3*time.Millisecond, 250*time.Millisecond, rate), vol*0.6)
}

// Package audio plays synthesized sound effects for simulation signals.
package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/dinorun/internal/config"
	"github.com/vovakirdan/dinorun/internal/games/dino/engine"
)

// Player turns engine signals into sound. It is safe to use when no audio
// device is available: it simply stays silent.
type Player struct {
	mu          sync.Mutex
	initialized bool
	muted       bool
	mixer       *beep.Mixer
	sounds      map[engine.Signal]*beep.Buffer
	logger      *log.Logger
}

// Render synthesizes every signal's sound into memory.
func Render(cfg config.AudioConfig) map[engine.Signal]*beep.Buffer {
	rate := beep.SampleRate(cfg.SampleRate)
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	gen := map[engine.Signal]beep.Streamer{
		engine.SignalJump:      CreateJumpSound(rate, cfg.Volume),
		engine.SignalMilestone: CreateMilestoneSound(rate, cfg.Volume),
		engine.SignalCollision: CreateCollisionSound(rate, cfg.Volume),
	}

	out := make(map[engine.Signal]*beep.Buffer, len(gen))
	for sig, s := range gen {
		buf := beep.NewBuffer(format)
		buf.Append(s)
		out[sig] = buf
	}
	return out
}

// New prepares the sounds and opens the speaker. A disabled config or a
// missing audio device yields a muted player; the error is only logged.
func New(cfg config.AudioConfig, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	p := &Player{
		mixer:  &beep.Mixer{},
		logger: logger,
		muted:  !cfg.Enabled,
	}
	if !cfg.Enabled {
		return p
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = config.DefaultRunnerConfig().Audio.SampleRate
	}

	p.sounds = Render(cfg)
	rate := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		logger.Warn("audio unavailable, continuing without sound", "err", err)
		p.muted = true
		return p
	}
	speaker.Play(p.mixer)
	p.initialized = true
	logger.Debug("audio ready", "sample_rate", cfg.SampleRate, "volume", cfg.Volume)
	return p
}

// Signal plays the sound for sig. It never blocks on the audio device.
func (p *Player) Signal(sig engine.Signal) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}
	buf, ok := p.sounds[sig]
	if !ok {
		return
	}
	speaker.Lock()
	p.mixer.Add(buf.Streamer(0, buf.Len()))
	speaker.Unlock()
}

// SetMuted toggles output without touching the simulation.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

// Muted reports whether sound is off.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted || !p.initialized
}

// Close stops playback and releases the audio device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// Package meter animates the recording level meter.
package meter

import (
	"sync"
	"time"
)

// Bar height bounds, as fractions of a full bar.
const (
	MinHeight = 0.08
	MaxHeight = 1.0
)

// barWeights is the per-bar profile: a symmetric bell so the center
// bar peaks first and the outer bars trail it.
var barWeights = []float64{0.55, 0.85, 1.0, 0.85, 0.55}

// Config holds animator tuning.
type Config struct {
	Tick    time.Duration
	Attack  float64 // gain while rising
	Release float64 // gain while falling
}

// DefaultConfig returns the standard animator tuning.
func DefaultConfig() Config {
	return Config{
		Tick:    150 * time.Millisecond,
		Attack:  0.55,
		Release: 0.20,
	}
}

// Animator smooths a raw 0..1 level into per-bar heights on a fixed
// tick, independent of how often new target levels arrive. The gain
// is asymmetric: onset is snappy, decay is gentle.
type Animator struct {
	cfg  Config
	emit func(bars []float64)

	mu       sync.Mutex
	target   float64
	smoothed float64
	done     chan struct{}
	running  bool
}

// New creates an animator that reports bar heights through emit.
func New(cfg Config, emit func(bars []float64)) *Animator {
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultConfig().Tick
	}
	if cfg.Attack <= 0 {
		cfg.Attack = DefaultConfig().Attack
	}
	if cfg.Release <= 0 {
		cfg.Release = DefaultConfig().Release
	}
	return &Animator{cfg: cfg, emit: emit}
}

// SetTarget updates the level the animator converges toward.
func (a *Animator) SetTarget(level float64) {
	if level < 0 {
		level = 0
	} else if level > 1 {
		level = 1
	}

	a.mu.Lock()
	a.target = level
	a.mu.Unlock()
}

// Start begins ticking. No-op if already running.
func (a *Animator) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.running {
		return
	}
	a.running = true
	a.done = make(chan struct{})
	go a.loop(a.done)
}

// Stop ends the animation, resets the level, and reports resting
// bars. Safe to call when not running.
func (a *Animator) Stop() {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return
	}
	a.running = false
	close(a.done)
	a.target = 0
	a.smoothed = 0
	a.mu.Unlock()

	if a.emit != nil {
		a.emit(restingBars())
	}
}

func (a *Animator) loop(done chan struct{}) {
	ticker := time.NewTicker(a.cfg.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			bars := a.Step()
			if a.emit != nil {
				a.emit(bars)
			}
		}
	}
}

// Step advances the smoothed level one tick and returns the bars.
func (a *Animator) Step() []float64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	gain := a.cfg.Release
	if a.target > a.smoothed {
		gain = a.cfg.Attack
	}
	a.smoothed += (a.target - a.smoothed) * gain

	return barsFor(a.smoothed)
}

// Smoothed returns the current smoothed level.
func (a *Animator) Smoothed() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.smoothed
}

// BarCount is the fixed number of meter bars.
func BarCount() int {
	return len(barWeights)
}

// barsFor maps a smoothed level to per-bar heights by weighting the
// level through the bell profile and interpolating between the
// minimum and maximum heights.
func barsFor(level float64) []float64 {
	bars := make([]float64, len(barWeights))
	for i, weight := range barWeights {
		bars[i] = MinHeight + (MaxHeight-MinHeight)*level*weight
	}
	return bars
}

func restingBars() []float64 {
	bars := make([]float64, len(barWeights))
	for i := range bars {
		bars[i] = MinHeight
	}
	return bars
}

// Package click distinguishes single from double activations.
package click

import (
	"sync"
	"time"
)

// Disambiguator turns a stream of primary-button presses into toggle
// (lone press) or alternate (two presses within the window) actions.
// A lone press always toggles after at most one window; a double
// press fires alternate exactly once and never also toggles. The
// component holds no state while idle.
type Disambiguator struct {
	window      time.Duration
	onToggle    func()
	onAlternate func()

	mu      sync.Mutex
	pending bool
	timer   *time.Timer
}

// New creates a disambiguator with the given window and actions.
func New(window time.Duration, onToggle, onAlternate func()) *Disambiguator {
	return &Disambiguator{
		window:      window,
		onToggle:    onToggle,
		onAlternate: onAlternate,
	}
}

// Press records a primary-button press.
func (d *Disambiguator) Press() {
	d.mu.Lock()

	if d.pending {
		// Second press inside the window: cancel the armed toggle
		// and fire the alternate action instead.
		d.timer.Stop()
		d.pending = false
		d.timer = nil
		d.mu.Unlock()

		if d.onAlternate != nil {
			d.onAlternate()
		}
		return
	}

	d.pending = true
	d.timer = time.AfterFunc(d.window, d.fire)
	d.mu.Unlock()
}

func (d *Disambiguator) fire() {
	d.mu.Lock()
	if !d.pending {
		// Stop raced with the timer; the press is abandoned.
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	if d.onToggle != nil {
		d.onToggle()
	}
}

// Stop cancels any pending press without firing either action.
func (d *Disambiguator) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = false
}

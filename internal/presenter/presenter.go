// Package presenter derives the indicator's visual state.
package presenter

import (
	"fmt"
	"sync"
	"time"

	"github.com/whispr-io/whisprtray/internal/models"
	"github.com/whispr-io/whisprtray/internal/store"
)

// Visual is the indicator's presentation state.
type Visual int

// Visual states, in ascending display priority.
const (
	VisualIdle Visual = iota
	VisualSuccessFlash
	VisualErrorFlash
	VisualRecording
)

func (v Visual) String() string {
	switch v {
	case VisualRecording:
		return "recording"
	case VisualSuccessFlash:
		return "success"
	case VisualErrorFlash:
		return "error"
	default:
		return "idle"
	}
}

// Frame is one rendered presentation state.
type Frame struct {
	Visual Visual
	Clock  string // "m:ss" while recording with a known start, else ""
	Error  string // last error text during an error flash
}

// Derive computes the visual for the two documents at a given time,
// returning the frame and, for flash states, when the flash expires.
// The recording state must already be freshness-normalized.
//
// Tie-break: recording > error flash > success flash > idle.
func Derive(rec models.RecordingState, tray models.TrayState, now time.Time, successFlash, errorFlash time.Duration) (Frame, time.Time) {
	if rec.Recording {
		frame := Frame{Visual: VisualRecording}
		if rec.StartedAtMs > 0 {
			elapsed := now.UnixMilli() - rec.StartedAtMs
			if elapsed < 0 {
				elapsed = 0
			}
			frame.Clock = FormatClock(time.Duration(elapsed) * time.Millisecond)
		}
		return frame, time.Time{}
	}

	if tray.LastErrorAtMs > 0 {
		if age := now.UnixMilli() - tray.LastErrorAtMs; age < errorFlash.Milliseconds() {
			expiry := time.UnixMilli(tray.LastErrorAtMs + errorFlash.Milliseconds())
			return Frame{Visual: VisualErrorFlash, Error: tray.LastError}, expiry
		}
	}

	if tray.LastTranscriptAtMs > 0 {
		if age := now.UnixMilli() - tray.LastTranscriptAtMs; age < successFlash.Milliseconds() {
			expiry := time.UnixMilli(tray.LastTranscriptAtMs + successFlash.Milliseconds())
			return Frame{Visual: VisualSuccessFlash}, expiry
		}
	}

	return Frame{Visual: VisualIdle}, time.Time{}
}

// FormatClock renders an elapsed duration as "m:ss".
func FormatClock(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	total := int(elapsed.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Config holds the machine's timing parameters.
type Config struct {
	Staleness    time.Duration
	SuccessFlash time.Duration
	ErrorFlash   time.Duration
	ClockTick    time.Duration
}

// Machine owns the timed re-evaluation of the visual state. Every
// reload or timer fire recomputes the frame from scratch from the
// last-loaded documents, so a newer event always supersedes an
// expiring flash.
type Machine struct {
	cfg  Config
	now  func() time.Time
	sink func(Frame)

	// deliverMu is held across evaluate+sink so frames reach the sink
	// in evaluation order. Acquired before mu, never while holding it.
	deliverMu sync.Mutex

	mu         sync.Mutex
	rec        models.RecordingState
	tray       models.TrayState
	flashTimer *time.Timer
	clockDone  chan struct{}
	stopped    bool
}

// NewMachine creates a machine reporting frames through sink.
// A nil now defaults to time.Now.
func NewMachine(cfg Config, now func() time.Time, sink func(Frame)) *Machine {
	if now == nil {
		now = time.Now
	}
	if cfg.ClockTick <= 0 {
		cfg.ClockTick = time.Second
	}
	return &Machine{cfg: cfg, now: now, sink: sink}
}

// SetRecording applies a freshly loaded recording document.
func (m *Machine) SetRecording(rec models.RecordingState) {
	m.apply(func() { m.rec = rec })
}

// SetTray applies a freshly loaded tray document.
func (m *Machine) SetTray(tray models.TrayState) {
	m.apply(func() { m.tray = tray })
}

// Refresh re-evaluates without new input (timer fires land here).
func (m *Machine) Refresh() {
	m.apply(nil)
}

// Stop cancels every outstanding timer. The machine reports no
// further frames once Stop returns.
func (m *Machine) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopped = true
	if m.flashTimer != nil {
		m.flashTimer.Stop()
		m.flashTimer = nil
	}
	m.stopClockLocked()
}

func (m *Machine) apply(mutate func()) {
	m.deliverMu.Lock()
	defer m.deliverMu.Unlock()

	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	if mutate != nil {
		mutate()
	}
	frame := m.evaluateLocked()
	m.mu.Unlock()

	if m.sink != nil {
		m.sink(frame)
	}
}

func (m *Machine) evaluateLocked() Frame {
	now := m.now()
	rec := store.Fresh(m.rec, now, m.cfg.Staleness)
	frame, expiry := Derive(rec, m.tray, now, m.cfg.SuccessFlash, m.cfg.ErrorFlash)

	// One-shot flash timer, re-armed from scratch on every evaluation.
	if m.flashTimer != nil {
		m.flashTimer.Stop()
		m.flashTimer = nil
	}
	if !expiry.IsZero() {
		wait := expiry.Sub(now)
		if wait < 0 {
			wait = 0
		}
		m.flashTimer = time.AfterFunc(wait, m.Refresh)
	}

	// The clock ticks once per second while recording. It also drives
	// the staleness re-check, so a crashed writer is corrected within
	// one threshold window even when no reload arrives.
	if rec.Recording {
		m.startClockLocked()
	} else {
		m.stopClockLocked()
	}

	return frame
}

func (m *Machine) startClockLocked() {
	if m.clockDone != nil {
		return
	}
	done := make(chan struct{})
	m.clockDone = done

	go func() {
		ticker := time.NewTicker(m.cfg.ClockTick)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				m.Refresh()
			}
		}
	}()
}

func (m *Machine) stopClockLocked() {
	if m.clockDone == nil {
		return
	}
	close(m.clockDone)
	m.clockDone = nil
}

package presenter

import (
	"sync"
	"testing"
	"time"

	"github.com/whispr-io/whisprtray/internal/models"
)

const (
	testSuccessFlash = 2500 * time.Millisecond
	testErrorFlash   = 4000 * time.Millisecond
)

func TestDerive(t *testing.T) {
	now := time.UnixMilli(1_000_000)

	tests := []struct {
		name   string
		rec    models.RecordingState
		tray   models.TrayState
		visual Visual
		clock  string
	}{
		{
			name:   "everything quiet",
			visual: VisualIdle,
		},
		{
			name:   "recording with start time",
			rec:    models.RecordingState{Recording: true, StartedAtMs: now.UnixMilli() - 65_000},
			visual: VisualRecording,
			clock:  "1:05",
		},
		{
			name:   "recording without start time hides clock",
			rec:    models.RecordingState{Recording: true},
			visual: VisualRecording,
			clock:  "",
		},
		{
			name:   "recent transcript flashes success",
			tray:   models.TrayState{LastTranscriptAtMs: now.UnixMilli() - 1000},
			visual: VisualSuccessFlash,
		},
		{
			name:   "expired transcript is idle",
			tray:   models.TrayState{LastTranscriptAtMs: now.UnixMilli() - 2500},
			visual: VisualIdle,
		},
		{
			name:   "recent error flashes error",
			tray:   models.TrayState{LastErrorAtMs: now.UnixMilli() - 1000, LastError: "mic busy"},
			visual: VisualErrorFlash,
		},
		{
			name:   "expired error is idle",
			tray:   models.TrayState{LastErrorAtMs: now.UnixMilli() - 4000},
			visual: VisualIdle,
		},
		{
			name: "error wins over success",
			tray: models.TrayState{
				LastTranscriptAtMs: now.UnixMilli() - 100,
				LastErrorAtMs:      now.UnixMilli() - 200,
				LastError:          "paste failed",
			},
			visual: VisualErrorFlash,
		},
		{
			name: "expired error falls back to live success",
			tray: models.TrayState{
				LastTranscriptAtMs: now.UnixMilli() - 1000,
				LastErrorAtMs:      now.UnixMilli() - 5000,
			},
			visual: VisualSuccessFlash,
		},
		{
			name: "recording wins over flashes",
			rec:  models.RecordingState{Recording: true, StartedAtMs: now.UnixMilli() - 1000},
			tray: models.TrayState{
				LastTranscriptAtMs: now.UnixMilli() - 100,
				LastErrorAtMs:      now.UnixMilli() - 100,
			},
			visual: VisualRecording,
			clock:  "0:01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, _ := Derive(tt.rec, tt.tray, now, testSuccessFlash, testErrorFlash)
			if frame.Visual != tt.visual {
				t.Errorf("visual = %v, want %v", frame.Visual, tt.visual)
			}
			if frame.Clock != tt.clock {
				t.Errorf("clock = %q, want %q", frame.Clock, tt.clock)
			}
		})
	}
}

func TestDeriveFlashExpiry(t *testing.T) {
	now := time.UnixMilli(1_000_000)
	tray := models.TrayState{LastErrorAtMs: now.UnixMilli() - 1000, LastError: "mic busy"}

	frame, expiry := Derive(models.RecordingState{}, tray, now, testSuccessFlash, testErrorFlash)
	if frame.Visual != VisualErrorFlash || frame.Error != "mic busy" {
		t.Fatalf("frame = %+v, want error flash", frame)
	}

	want := time.UnixMilli(tray.LastErrorAtMs + testErrorFlash.Milliseconds())
	if !expiry.Equal(want) {
		t.Errorf("expiry = %v, want %v", expiry, want)
	}

	// Re-deriving after the window elapses lands on idle.
	frame, expiry = Derive(models.RecordingState{}, tray, want, testSuccessFlash, testErrorFlash)
	if frame.Visual != VisualIdle {
		t.Errorf("visual at expiry = %v, want idle", frame.Visual)
	}
	if !expiry.IsZero() {
		t.Errorf("expiry at idle = %v, want zero", expiry)
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		elapsed  time.Duration
		expected string
	}{
		{0, "0:00"},
		{time.Second, "0:01"},
		{59 * time.Second, "0:59"},
		{60 * time.Second, "1:00"},
		{65 * time.Second, "1:05"},
		{10*time.Minute + 7*time.Second, "10:07"},
		{61 * time.Minute, "61:00"},
		{-5 * time.Second, "0:00"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.elapsed); got != tt.expected {
			t.Errorf("FormatClock(%v) = %q, want %q", tt.elapsed, got, tt.expected)
		}
	}
}

// frameRecorder collects frames from a machine under test.
type frameRecorder struct {
	mu     sync.Mutex
	frames []Frame
}

func (r *frameRecorder) sink(f Frame) {
	r.mu.Lock()
	r.frames = append(r.frames, f)
	r.mu.Unlock()
}

func (r *frameRecorder) last() (Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return Frame{}, false
	}
	return r.frames[len(r.frames)-1], true
}

func testConfig() Config {
	return Config{
		Staleness:    5 * time.Second,
		SuccessFlash: 40 * time.Millisecond,
		ErrorFlash:   60 * time.Millisecond,
		ClockTick:    20 * time.Millisecond,
	}
}

func TestMachineFlashExpiresToIdle(t *testing.T) {
	rec := &frameRecorder{}
	m := NewMachine(testConfig(), nil, rec.sink)
	defer m.Stop()

	m.SetTray(models.TrayState{LastErrorAtMs: time.Now().UnixMilli(), LastError: "boom"})

	frame, ok := rec.last()
	if !ok || frame.Visual != VisualErrorFlash {
		t.Fatalf("frame = %+v, want error flash", frame)
	}

	deadline := time.After(2 * time.Second)
	for {
		if frame, ok := rec.last(); ok && frame.Visual == VisualIdle {
			return
		}
		select {
		case <-deadline:
			frame, _ := rec.last()
			t.Fatalf("flash never expired, last frame %+v", frame)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestMachineNewerErrorSupersedesExpiringSuccess(t *testing.T) {
	rec := &frameRecorder{}
	m := NewMachine(testConfig(), nil, rec.sink)
	defer m.Stop()

	m.SetTray(models.TrayState{LastTranscriptAtMs: time.Now().UnixMilli()})
	if frame, _ := rec.last(); frame.Visual != VisualSuccessFlash {
		t.Fatalf("frame = %+v, want success flash", frame)
	}

	// A new error arrives before the success flash expires. The
	// expiry re-evaluation must pick it up, not blindly revert.
	m.SetTray(models.TrayState{
		LastTranscriptAtMs: time.Now().UnixMilli(),
		LastErrorAtMs:      time.Now().UnixMilli(),
		LastError:          "late error",
	})

	if frame, _ := rec.last(); frame.Visual != VisualErrorFlash {
		t.Fatalf("frame = %+v, want error flash", frame)
	}
}

func TestMachineStaleRecordingSelfHeals(t *testing.T) {
	rec := &frameRecorder{}
	cfg := testConfig()
	cfg.Staleness = 50 * time.Millisecond
	m := NewMachine(cfg, nil, rec.sink)
	defer m.Stop()

	m.SetRecording(models.RecordingState{
		Recording:   true,
		StartedAtMs: time.Now().UnixMilli(),
		UpdatedAtMs: time.Now().UnixMilli(),
	})

	if frame, _ := rec.last(); frame.Visual != VisualRecording {
		t.Fatalf("frame = %+v, want recording", frame)
	}

	// No further reloads arrive; the clock tick re-checks staleness
	// and corrects to idle within the threshold window.
	deadline := time.After(2 * time.Second)
	for {
		if frame, ok := rec.last(); ok && frame.Visual == VisualIdle {
			return
		}
		select {
		case <-deadline:
			frame, _ := rec.last()
			t.Fatalf("stale recording never healed, last frame %+v", frame)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestMachineDeliversFramesInEvaluationOrder(t *testing.T) {
	now := time.UnixMilli(1_000_000)
	rec := &frameRecorder{}
	m := NewMachine(testConfig(), func() time.Time { return now }, rec.sink)
	defer m.Stop()

	// Refresh storms race a tray reload. Once the reload's evaluation
	// has run, every later evaluation sees the error, so the last frame
	// delivered must be the error flash; a stale idle frame slipping in
	// last means delivery diverged from evaluation order.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				m.Refresh()
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		m.SetTray(models.TrayState{LastErrorAtMs: now.UnixMilli(), LastError: "mic busy"})
	}()

	wg.Wait()

	frame, ok := rec.last()
	if !ok || frame.Visual != VisualErrorFlash {
		t.Fatalf("last frame = %+v, want error flash", frame)
	}
}

func TestMachineStopSilences(t *testing.T) {
	rec := &frameRecorder{}
	m := NewMachine(testConfig(), nil, rec.sink)

	m.SetTray(models.TrayState{LastErrorAtMs: time.Now().UnixMilli()})
	m.Stop()

	rec.mu.Lock()
	n := len(rec.frames)
	rec.mu.Unlock()

	// Neither the flash timer nor late Set calls may emit frames.
	m.SetTray(models.TrayState{LastTranscriptAtMs: time.Now().UnixMilli()})
	time.Sleep(150 * time.Millisecond)

	rec.mu.Lock()
	after := len(rec.frames)
	rec.mu.Unlock()

	if after != n {
		t.Errorf("frames after Stop: %d, want %d", after, n)
	}
}

package click

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestLonePressTogglesOnce(t *testing.T) {
	var toggles, alternates atomic.Int32
	d := New(30*time.Millisecond, func() { toggles.Add(1) }, func() { alternates.Add(1) })
	defer d.Stop()

	d.Press()

	if n := toggles.Load(); n != 0 {
		t.Fatalf("toggle fired before window elapsed (%d)", n)
	}

	time.Sleep(100 * time.Millisecond)

	if n := toggles.Load(); n != 1 {
		t.Errorf("toggles = %d, want 1", n)
	}
	if n := alternates.Load(); n != 0 {
		t.Errorf("alternates = %d, want 0", n)
	}
}

func TestDoublePressFiresAlternateOnly(t *testing.T) {
	var toggles, alternates atomic.Int32
	d := New(100*time.Millisecond, func() { toggles.Add(1) }, func() { alternates.Add(1) })
	defer d.Stop()

	d.Press()
	d.Press()

	if n := alternates.Load(); n != 1 {
		t.Errorf("alternates = %d, want 1 immediately on second press", n)
	}

	// Wait past the window: the cancelled toggle must not fire.
	time.Sleep(250 * time.Millisecond)

	if n := toggles.Load(); n != 0 {
		t.Errorf("toggles = %d, want 0 after double press", n)
	}
	if n := alternates.Load(); n != 1 {
		t.Errorf("alternates = %d, want exactly 1", n)
	}
}

func TestPressAfterWindowStartsFresh(t *testing.T) {
	var toggles, alternates atomic.Int32
	d := New(20*time.Millisecond, func() { toggles.Add(1) }, func() { alternates.Add(1) })
	defer d.Stop()

	d.Press()
	time.Sleep(100 * time.Millisecond)
	d.Press()
	time.Sleep(100 * time.Millisecond)

	if n := toggles.Load(); n != 2 {
		t.Errorf("toggles = %d, want 2 for two well-separated presses", n)
	}
	if n := alternates.Load(); n != 0 {
		t.Errorf("alternates = %d, want 0", n)
	}
}

func TestStopCancelsPendingPress(t *testing.T) {
	var toggles atomic.Int32
	d := New(20*time.Millisecond, func() { toggles.Add(1) }, nil)

	d.Press()
	d.Stop()

	time.Sleep(100 * time.Millisecond)

	if n := toggles.Load(); n != 0 {
		t.Errorf("toggles = %d, want 0 after Stop", n)
	}
}

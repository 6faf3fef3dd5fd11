package meter

import (
	"math"
	"testing"
)

func TestStepConvergesTowardTarget(t *testing.T) {
	a := New(DefaultConfig(), nil)
	a.SetTarget(0.8)

	prev := a.Smoothed()
	for i := 0; i < 40; i++ {
		a.Step()
		cur := a.Smoothed()
		if cur <= prev {
			t.Fatalf("step %d: smoothed %v did not rise from %v", i, cur, prev)
		}
		if cur > 0.8 {
			t.Fatalf("step %d: smoothed %v overshot target", i, cur)
		}
		prev = cur
	}

	if math.Abs(a.Smoothed()-0.8) > 0.01 {
		t.Errorf("smoothed = %v, want near 0.8", a.Smoothed())
	}
}

func TestAttackFasterThanRelease(t *testing.T) {
	rise := New(DefaultConfig(), nil)
	rise.SetTarget(1)
	rise.Step()
	riseStep := rise.Smoothed() // from 0 toward 1

	fall := New(DefaultConfig(), nil)
	fall.SetTarget(1)
	for i := 0; i < 200; i++ {
		fall.Step()
	}
	atTop := fall.Smoothed()
	fall.SetTarget(atTop - 1) // clamps to 0
	fall.Step()
	fallStep := atTop - fall.Smoothed() // from ~1 toward 0

	if riseStep <= fallStep {
		t.Errorf("rising step %v not larger than falling step %v", riseStep, fallStep)
	}
}

func TestSetTargetClamps(t *testing.T) {
	a := New(DefaultConfig(), nil)

	a.SetTarget(4.2)
	for i := 0; i < 100; i++ {
		a.Step()
	}
	if a.Smoothed() > 1 {
		t.Errorf("smoothed %v exceeded 1 for clamped-high target", a.Smoothed())
	}

	a.SetTarget(-3)
	for i := 0; i < 100; i++ {
		a.Step()
	}
	if a.Smoothed() < 0 {
		t.Errorf("smoothed %v went below 0 for clamped-low target", a.Smoothed())
	}
}

func TestBarsFollowBellProfile(t *testing.T) {
	bars := barsFor(1)

	if len(bars) != BarCount() {
		t.Fatalf("len(bars) = %d, want %d", len(bars), BarCount())
	}

	mid := len(bars) / 2
	for i, h := range bars {
		if h < MinHeight || h > MaxHeight {
			t.Errorf("bar %d height %v outside [%v, %v]", i, h, MinHeight, MaxHeight)
		}
		if h > bars[mid] {
			t.Errorf("bar %d height %v exceeds center bar %v", i, h, bars[mid])
		}
		// Symmetric profile.
		if mirror := bars[len(bars)-1-i]; math.Abs(h-mirror) > 1e-9 {
			t.Errorf("bar %d height %v != mirrored bar %v", i, h, mirror)
		}
	}
}

func TestStopResetsToResting(t *testing.T) {
	var last []float64
	a := New(DefaultConfig(), func(bars []float64) { last = bars })

	a.Start()
	a.SetTarget(0.9)
	a.Stop()

	if a.Smoothed() != 0 {
		t.Errorf("smoothed after Stop = %v, want 0", a.Smoothed())
	}
	if len(last) != BarCount() {
		t.Fatalf("no resting bars emitted on Stop")
	}
	for i, h := range last {
		if h != MinHeight {
			t.Errorf("resting bar %d = %v, want %v", i, h, MinHeight)
		}
	}

	// Stop when idle is a no-op.
	a.Stop()
}

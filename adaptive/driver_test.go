package adaptive

import (
	"math"
	"testing"

	"github.com/matt-g-everett/ledtween/anim"
)

type legacySprite struct {
	updates int
}

func (s *legacySprite) Update() {
	s.updates++
}

type waiter struct {
	remaining float64
}

// Update consumes frames until the wait expires, then hands back the rest.
func (w *waiter) Update(frames float64) float64 {
	if frames > w.remaining {
		used := w.remaining
		w.remaining = 0
		return used
	}
	w.remaining -= frames
	return frames
}

func TestDriveLegacyRoundsUp(t *testing.T) {
	d := NewDriver()
	s := new(legacySprite)

	got := d.Drive(2.7, Step(s.Update), s)

	if s.updates != 3 {
		t.Errorf("updates = %d, want 3", s.updates)
	}
	if got != 3 {
		t.Errorf("Drive returned %f, want 3", got)
	}
}

func TestDriveAdaptiveOnce(t *testing.T) {
	d := NewDriver()
	calls := 0
	var seen float64
	fn := Adaptive(func(frames float64) float64 {
		calls++
		seen = frames
		return frames
	})

	got := d.Drive(2.7, fn, nil)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if seen != 2.7 || got != 2.7 {
		t.Errorf("seen %f, returned %f, want 2.7", seen, got)
	}
	if len(d.NonAdaptive()) != 0 {
		t.Errorf("NonAdaptive = %v, want empty", d.NonAdaptive())
	}
}

func TestDriveConsumeReportsFullTime(t *testing.T) {
	d := NewDriver()
	var seen float64

	got := d.Drive(1.25, Consume(func(frames float64) { seen = frames }), nil)

	if seen != 1.25 || got != 1.25 {
		t.Errorf("seen %f, returned %f, want 1.25", seen, got)
	}
}

func TestDriveAdaptivePartial(t *testing.T) {
	d := NewDriver()
	w := &waiter{remaining: 0.5}

	if got := d.Drive(2, Adaptive(w.Update), w); got != 0.5 {
		t.Errorf("Drive returned %f, want 0.5", got)
	}
}

func TestDriveZeroFrames(t *testing.T) {
	d := NewDriver()
	s := new(legacySprite)

	if got := d.Drive(0, Step(s.Update), s); got != 0 || s.updates != 0 {
		t.Errorf("Drive(0) returned %f with %d updates, want 0 and 0", got, s.updates)
	}
}

func TestDriveNonFiniteFrames(t *testing.T) {
	d := NewDriver()
	s := new(legacySprite)

	for _, frames := range []float64{math.Inf(1), math.Inf(-1), math.NaN(), -2.5} {
		if got := d.Drive(frames, Step(s.Update), s); got != 0 {
			t.Errorf("Drive(%v) = %f, want 0", frames, got)
		}
	}
	if s.updates != 0 {
		t.Errorf("updates = %d, want 0", s.updates)
	}
	if got := d.NonAdaptive(); len(got) != 1 || got[0] != "*adaptive.legacySprite" {
		t.Errorf("NonAdaptive = %v", got)
	}
}

func TestNonAdaptiveList(t *testing.T) {
	d := NewDriver()
	s := new(legacySprite)
	other := new(waiter)

	d.Drive(1, Step(s.Update), s)
	d.Drive(1, Step(s.Update), s)
	d.Drive(1, Step(func() {}), other)
	d.Drive(1, Step(func() {}), nil)

	want := []string{"*adaptive.legacySprite", "*adaptive.waiter", "<nil>"}
	got := d.NonAdaptive()
	if len(got) != len(want) {
		t.Fatalf("NonAdaptive = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NonAdaptive[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	d.Reset()
	if len(d.NonAdaptive()) != 0 {
		t.Errorf("NonAdaptive after Reset = %v", d.NonAdaptive())
	}
}

func TestDriveAllThreadsFrames(t *testing.T) {
	d := NewDriver()
	var late float64
	s := new(legacySprite)

	got := d.DriveAll(1.5,
		Stage{Fn: Step(s.Update), Receiver: s},
		Stage{Fn: Consume(func(frames float64) { late = frames })},
	)

	if late != 2 {
		t.Errorf("second stage saw %f frames, want the rounded 2", late)
	}
	if got != 2 {
		t.Errorf("DriveAll returned %f, want 2", got)
	}
}

func TestDriveController(t *testing.T) {
	x := 0.0
	ch := anim.NewChannel("x", anim.Linear, anim.FloatProperty(&x))
	ch.Tween(anim.Scalar(10), 4)
	ch.Play()

	ctrl := anim.NewController()
	ctrl.ImportChannels(singleChannel{"x": ch}, "")

	d := NewDriver()
	if got := d.Drive(2.5, Adaptive(ctrl.Update), ctrl); got != 2.5 {
		t.Errorf("Drive returned %f, want 2.5", got)
	}
	if x != 6.25 {
		t.Errorf("x = %f, want 6.25", x)
	}

	// Stepped as a legacy callee, the controller sees whole frames.
	d.Drive(0.5, Step(func() { ctrl.Tick() }), ctrl)
	if x != 8.75 {
		t.Errorf("x = %f, want 8.75", x)
	}
	if got := d.NonAdaptive(); len(got) != 1 || got[0] != "*anim.Controller" {
		t.Errorf("NonAdaptive = %v, want [*anim.Controller]", got)
	}
}

type singleChannel map[string]*anim.Channel

func (s singleChannel) Channels() map[string]*anim.Channel {
	return s
}

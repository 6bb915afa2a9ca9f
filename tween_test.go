package lattice

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenProperty(t *testing.T) {
	p := NewProperty(2.0)
	notified := 0
	p.Subscribe(func() { notified++ })

	tw := TweenProperty(p, 10, 4, nil)
	tw.Update(2)
	if got := p.Get(); math.Abs(got-6) > 1e-6 {
		t.Errorf("halfway = %v, want 6", got)
	}
	tw.Update(2)
	if !tw.Done || p.Get() != 10 {
		t.Errorf("done=%v value=%v", tw.Done, p.Get())
	}
	tw.Update(1)
	if notified != 2 {
		t.Errorf("notified = %d, want 2 (finished tweens stop writing)", notified)
	}
}

func TestTweenReset(t *testing.T) {
	p := NewProperty(0.0)
	tw := TweenProperty(p, 1, 1, ease.OutBounce)
	tw.Update(1)
	if !tw.Done {
		t.Fatal("tween should finish after its duration")
	}
	tw.Reset()
	if tw.Done {
		t.Error("Reset left the tween done")
	}
	tw.Update(0.5)
	if v := p.Get(); v <= 0 || v >= 1.01 {
		t.Errorf("value after reset = %v", v)
	}
}

package lattice

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween animates a float64 Property. Each Update sets the property, so
// transforms bound to it re-run on the next pass. Hand it to Engine.AddTween
// to advance it once per tick, or call Update yourself.
type Tween struct {
	tween  *gween.Tween
	target *Property[float64]
	Done   bool
}

// Update advances the tween by dt ticks and writes the value to the target.
func (t *Tween) Update(dt float32) {
	if t.Done {
		return
	}
	val, finished := t.tween.Update(dt)
	t.target.Set(float64(val))
	t.Done = finished
}

// Reset rewinds the tween to its start value.
func (t *Tween) Reset() {
	t.tween.Reset()
	t.Done = false
}

// TweenProperty creates a Tween that moves p from its current value to to
// over duration ticks using the easing function. A nil fn is linear.
func TweenProperty(p *Property[float64], to float64, duration float32, fn ease.TweenFunc) *Tween {
	if fn == nil {
		fn = ease.Linear
	}
	return &Tween{
		tween:  gween.New(float32(p.Get()), float32(to), duration, fn),
		target: p,
	}
}

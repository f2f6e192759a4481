package evergreen

import (
	"math"

	"github.com/tanema/gween/ease"
)

// defaultProgressRate is the convergence rate constant in 1/seconds.
// At 1.5/s the value closes ~78% of the remaining gap each second.
const defaultProgressRate = 1.5

// Progress is the single continuous state variable that drives the
// dispersed-to-assembled transition. The target flips instantaneously
// between 0 (dispersed) and 1 (assembled); the value follows it by
// exponential smoothing, so the visuals can never pop no matter how
// erratically the control signal flickers.
//
// The Progress is owned by the Scene's update loop. All other components
// hold read-only access through Value and Eased.
type Progress struct {
	value  float64
	target float64
	rate   float64
}

// NewProgress creates a Progress starting fully dispersed (value 0,
// target 0). A rate <= 0 selects the default of 1.5/s.
func NewProgress(rate float64) *Progress {
	if rate <= 0 {
		rate = defaultProgressRate
	}
	return &Progress{rate: rate}
}

// SetTarget selects the target configuration: true means assembled
// (target 1), false means dispersed (target 0). The smoothed value is
// not modified.
func (p *Progress) SetTarget(formed bool) {
	if formed {
		p.target = 1
	} else {
		p.target = 0
	}
}

// Target returns the current target, 0 or 1.
func (p *Progress) Target() float64 {
	return p.target
}

// Step advances the smoothed value by dt seconds toward the target:
//
//	value ← lerp(value, target, 1 - exp(-rate·dt))
//
// The blend factor depends only on elapsed real time, so convergence speed
// is independent of frame rate. Non-positive or non-finite dt is a no-op.
func (p *Progress) Step(dt float64) {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return
	}
	blend := 1 - math.Exp(-p.rate*dt)
	p.value = lerp(p.value, p.target, blend)
}

// Value returns the raw smoothed progress in [0, 1].
func (p *Progress) Value() float64 {
	return p.value
}

// Eased returns the cubic ease-out view of Value: 1 - (1-v)^3.
// Consumers that want fast initial motion and a gentle settle read this
// instead of the raw value.
func (p *Progress) Eased() float64 {
	return easeOutCubic(p.value)
}

// EasedWith remaps Value through the given gween easing function,
// normalized over [0, 1]. A nil fn falls back to Eased.
func (p *Progress) EasedWith(fn ease.TweenFunc) float64 {
	if fn == nil {
		return p.Eased()
	}
	return float64(fn(float32(p.value), 0, 1, 1))
}

// Snap jumps the value directly to the target. Used by scripted runs that
// want to start from a settled state.
func (p *Progress) Snap() {
	p.value = p.target
}

// easeOutCubic remaps t in [0, 1] with fast start and slow finish.
func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

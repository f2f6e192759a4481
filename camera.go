package evergreen

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// RigConfig tunes the camera rig.
type RigConfig struct {
	// ParallaxX and ParallaxY scale the pointer offset into world-space
	// camera displacement.
	ParallaxX float64
	ParallaxY float64
	// BaseY is the camera's resting height.
	BaseY float64
	// Distance is the camera's resting distance from the scene origin
	// along +Z.
	Distance float64
	// LookAt is the fixed aim point. The camera re-aims here every frame
	// regardless of its own position, so parallax orbits the subject
	// without ever losing it.
	LookAt Vec3
	// Rate is the position smoothing rate constant in 1/s.
	Rate float64
	// FOV is the vertical field of view in radians.
	FOV float64
}

// withDefaults fills zero fields with standard framing for the tree scene.
func (c RigConfig) withDefaults() RigConfig {
	if c.ParallaxX == 0 {
		c.ParallaxX = 7
	}
	if c.ParallaxY == 0 {
		c.ParallaxY = 4
	}
	if c.BaseY == 0 {
		c.BaseY = 2.5
	}
	if c.Distance <= 0 {
		c.Distance = 26
	}
	if c.LookAt == (Vec3{}) {
		c.LookAt = Vec3{0, 1.5, 0}
	}
	if c.Rate <= 0 {
		c.Rate = 3.0
	}
	if c.FOV <= 0 {
		c.FOV = 55 * math.Pi / 180
	}
	return c
}

// nearClip is the minimum view-space depth. Depths below it are clamped so
// perspective division can never blow up or flip.
const nearClip = 0.1

// Rig smooths the pointer offset into a camera position and projects world
// points to the screen. It reads the control signal but owns no scene
// state beyond its own position.
type Rig struct {
	cfg RigConfig
	pos Vec3

	// Cached look-at basis, recomputed when the position moves.
	right, up, forward Vec3
	basisDirty         bool

	screenW, screenH float64
	focal            float64

	dolly *gween.Tween
}

// NewRig creates a camera rig at its resting position, aimed at the
// configured look-at point, projecting into a screen of the given size.
func NewRig(cfg RigConfig, screenW, screenH int) *Rig {
	cfg = cfg.withDefaults()
	r := &Rig{
		cfg:        cfg,
		pos:        Vec3{0, cfg.BaseY, cfg.Distance},
		basisDirty: true,
	}
	r.SetScreenSize(screenW, screenH)
	return r
}

// SetScreenSize updates the projection for a new output size.
func (r *Rig) SetScreenSize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	r.screenW = float64(w)
	r.screenH = float64(h)
	r.focal = (r.screenH / 2) / math.Tan(r.cfg.FOV/2)
}

// Position returns the camera's current world position.
func (r *Rig) Position() Vec3 {
	return r.pos
}

// StartDolly begins an intro dolly: the camera's distance eases from the
// given start value to the configured resting distance over duration
// seconds with a cubic-out settle.
func (r *Rig) StartDolly(fromDistance float64, duration float32) {
	r.dolly = gween.New(float32(fromDistance), float32(r.cfg.Distance), duration, ease.OutCubic)
}

// Smooth advances the camera toward the target implied by the pointer
// offset, using the same exponential smoothing pattern as the progress
// integrator but with the rig's own rate constant.
func (r *Rig) Smooth(offsetX, offsetY, dt float64) {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return
	}

	dist := r.cfg.Distance
	if r.dolly != nil {
		v, done := r.dolly.Update(float32(dt))
		dist = float64(v)
		if done {
			r.dolly = nil
		}
	}

	target := Vec3{
		clampOffset(offsetX) * r.cfg.ParallaxX,
		r.cfg.BaseY + clampOffset(offsetY)*r.cfg.ParallaxY,
		dist,
	}

	blend := 1 - math.Exp(-r.cfg.Rate*dt)
	next := lerpVec3(r.pos, target, blend)
	if r.dolly != nil {
		// The dolly tween is authoritative for depth while it runs.
		next.Z = dist
	}
	if next != r.pos {
		r.pos = next
		r.basisDirty = true
	}
}

// computeBasis rebuilds the cached look-at basis if the position changed.
func (r *Rig) computeBasis() {
	if !r.basisDirty {
		return
	}
	r.basisDirty = false

	forward := r.cfg.LookAt.Sub(r.pos).Normalized()
	if forward == (Vec3{}) {
		// Camera sitting exactly on the look-at point; aim down -Z.
		forward = Vec3{0, 0, -1}
	}
	worldUp := Vec3{0, 1, 0}
	right := forward.Cross(worldUp).Normalized()
	if right == (Vec3{}) {
		// Looking straight up or down; pick an arbitrary right axis.
		right = Vec3{1, 0, 0}
	}
	r.forward = forward
	r.right = right
	r.up = right.Cross(forward)
}

// Project maps a world point to screen coordinates. Returns the screen
// position, the perspective scale factor (pixels per world unit at that
// depth), and whether the point is in front of the camera. Depth is
// clamped to a safe minimum rather than ever dividing by near-zero.
func (r *Rig) Project(p Vec3) (sx, sy, scale float64, ok bool) {
	r.computeBasis()

	rel := p.Sub(r.pos)
	z := rel.Dot(r.forward)
	if z <= 0 {
		return 0, 0, 0, false
	}
	if z < nearClip {
		z = nearClip
	}

	x := rel.Dot(r.right)
	y := rel.Dot(r.up)

	scale = r.focal / z
	sx = r.screenW/2 + x*scale
	sy = r.screenH/2 - y*scale
	return sx, sy, scale, true
}

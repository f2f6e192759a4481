package evergreen

import (
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
)

// ParticleRecord holds one particle's generation-time data. Records are
// immutable once generated; per-frame positions are derived, never stored.
type ParticleRecord struct {
	// Dispersed is the particle's position in the exploded cloud, sampled
	// uniformly inside a cube centered at the origin.
	Dispersed Vec3
	// Assembled is the particle's position inside the tree cone, denser
	// toward the axis.
	Assembled Vec3
	// Phase is a fixed random value in [0, 1) driving per-particle size
	// variance and color mixing.
	Phase float64
}

// FieldConfig controls particle field generation and shading.
type FieldConfig struct {
	// Count is the number of particles. Defaults to 5000.
	Count int
	// ConeHeight is the height of the assembled tree cone in world units.
	ConeHeight float64
	// ConeRadius is the base radius of the assembled tree cone.
	ConeRadius float64
	// CubeSide is the side length of the dispersed sampling cube. Must
	// exceed both 2*ConeRadius and ConeHeight so the cloud encloses the
	// tree silhouette; widened automatically if it doesn't.
	CubeSide float64
	// PointSize is the base particle size in world units.
	PointSize float64
	// DriftAmplitude is the maximum ambient drift displacement in world
	// units, applied to the dispersed position and scaled by (1 - eased).
	DriftAmplitude float64
	// DriftFrequency is the base drift oscillation frequency in rad/s.
	DriftFrequency float64
	// BaseColor and TipColor are blended per particle by its Phase.
	BaseColor Color
	TipColor  Color
	// Seed selects the deterministic generation stream.
	Seed uint64
}

// withDefaults fills zero fields with the standard tree parameters.
func (c FieldConfig) withDefaults() FieldConfig {
	if c.Count <= 0 {
		c.Count = 5000
	}
	// Four vertices per particle must fit uint16 index space.
	if c.Count > 16000 {
		c.Count = 16000
	}
	if c.ConeHeight <= 0 {
		c.ConeHeight = 14
	}
	if c.ConeRadius <= 0 {
		c.ConeRadius = 5.5
	}
	minSide := math.Max(2*c.ConeRadius, c.ConeHeight)
	if c.CubeSide <= minSide {
		c.CubeSide = minSide * 2.5
	}
	if c.PointSize <= 0 {
		c.PointSize = 0.16
	}
	if c.DriftAmplitude <= 0 {
		c.DriftAmplitude = 0.9
	}
	if c.DriftFrequency <= 0 {
		c.DriftFrequency = 0.7
	}
	if c.BaseColor == (Color{}) {
		c.BaseColor = Color{R: 0.08, G: 0.55, B: 0.22, A: 1}
	}
	if c.TipColor == (Color{}) {
		c.TipColor = Color{R: 0.95, G: 0.85, B: 0.4, A: 1}
	}
	return c
}

// minPointPx is the floor clamp for on-screen particle size, preventing
// degenerate sub-pixel quads at large camera distances.
const minPointPx = 0.75

// Field is the dual-position particle cloud. Records and colors are
// generated once and shared read-only with the render stage; only the
// vertex buffers mutate per frame.
type Field struct {
	cfg     FieldConfig
	records []ParticleRecord
	colors  []Color

	verts []ebiten.Vertex
	inds  []uint16
	quads int
}

// NewField generates a particle field from the config. Generation is
// seeded by the config alone, never by the control signal, so identical
// configs produce identical fields.
func NewField(cfg FieldConfig) *Field {
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	f := &Field{
		cfg:     cfg,
		records: make([]ParticleRecord, cfg.Count),
		colors:  make([]Color, cfg.Count),
		verts:   make([]ebiten.Vertex, cfg.Count*4),
		inds:    make([]uint16, 0, cfg.Count*6),
	}

	h := cfg.ConeHeight
	for i := range f.records {
		// Assembled: uniform height, radius shrinking linearly toward the
		// tip, uniform radius inside the disk (denser near the axis).
		y := rng.Float64() * h
		maxR := cfg.ConeRadius * (1 - y/h)
		r := rng.Float64() * maxR
		theta := rng.Float64() * 2 * math.Pi

		// Dispersed: independent uniform samples in the cube.
		side := cfg.CubeSide
		f.records[i] = ParticleRecord{
			Assembled: Vec3{r * math.Cos(theta), y - h/2, r * math.Sin(theta)},
			Dispersed: Vec3{
				(rng.Float64() - 0.5) * side,
				(rng.Float64() - 0.5) * side,
				(rng.Float64() - 0.5) * side,
			},
			Phase: rng.Float64(),
		}

		// Color is fully determined at generation time and does not
		// animate with assembly.
		f.colors[i] = lerpColor(cfg.BaseColor, cfg.TipColor, f.records[i].Phase)
	}

	return f
}

// Count returns the number of particles.
func (f *Field) Count() int {
	return len(f.records)
}

// Records returns the generated particle records. The returned slice MUST
// NOT be mutated.
func (f *Field) Records() []ParticleRecord {
	return f.records
}

// Config returns the effective (default-filled) field config.
func (f *Field) Config() FieldConfig {
	return f.cfg
}

// Blended returns particle i's world position for the given eased progress
// and elapsed time. Pure: identical inputs yield identical output.
//
// While not fully assembled, the dispersed endpoint receives a small
// oscillating offset (two sinusoids per axis, phased by the particle's own
// dispersed coordinates and global time) so the cloud appears alive; the
// amplitude scales with (1 - eased) and vanishes exactly at full assembly.
func (f *Field) Blended(i int, eased, elapsed float64) Vec3 {
	rec := &f.records[i]
	d := rec.Dispersed

	amp := f.cfg.DriftAmplitude * (1 - eased)
	if amp > 0 {
		fq := f.cfg.DriftFrequency
		// Two sinusoids per axis at incommensurate frequencies, weighted
		// so the displacement never exceeds the configured amplitude.
		d.X += amp * (0.7*math.Sin(fq*elapsed+d.Y*0.35+d.Z*0.21) + 0.3*math.Sin(fq*elapsed*2.39+d.Z*0.44))
		d.Y += amp * (0.7*math.Sin(fq*elapsed*0.83+d.X*0.27+d.Z*0.33) + 0.3*math.Sin(fq*elapsed*1.97+d.X*0.41))
		d.Z += amp * (0.7*math.Cos(fq*elapsed*1.13+d.X*0.31+d.Y*0.25) + 0.3*math.Cos(fq*elapsed*2.71+d.Y*0.37))
	}

	return lerpVec3(d, rec.Assembled, eased)
}

// sizeOf returns particle i's world-space size for the given eased progress:
// base size scaled by the particle's phase and modestly inflated as the
// tree assembles, so the formed shape reads denser.
func (f *Field) sizeOf(i int, eased float64) float64 {
	return f.cfg.PointSize * (0.6 + 0.8*f.records[i].Phase) * (1 + 0.35*eased)
}

// buildQuads projects every particle through the rig and rewrites the
// vertex and index buffers. Skips particles behind the camera. The buffers
// are reused across frames; no allocation after the first call.
func (f *Field) buildQuads(rig *Rig, eased, elapsed float64, tw, th float64) {
	f.inds = f.inds[:0]
	f.quads = 0

	for i := range f.records {
		pos := f.Blended(i, eased, elapsed)
		sx, sy, scale, ok := rig.Project(pos)
		if !ok {
			continue
		}

		half := f.sizeOf(i, eased) * scale / 2
		if half*2 < minPointPx {
			half = minPointPx / 2
		}

		c := f.colors[i]
		cr := float32(c.R * c.A)
		cg := float32(c.G * c.A)
		cb := float32(c.B * c.A)
		ca := float32(c.A)

		base := uint16(f.quads * 4)
		v := f.verts[f.quads*4 : f.quads*4+4]
		v[0] = ebiten.Vertex{DstX: float32(sx - half), DstY: float32(sy - half), SrcX: 0, SrcY: 0, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca}
		v[1] = ebiten.Vertex{DstX: float32(sx + half), DstY: float32(sy - half), SrcX: float32(tw), SrcY: 0, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca}
		v[2] = ebiten.Vertex{DstX: float32(sx + half), DstY: float32(sy + half), SrcX: float32(tw), SrcY: float32(th), ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca}
		v[3] = ebiten.Vertex{DstX: float32(sx - half), DstY: float32(sy + half), SrcX: 0, SrcY: float32(th), ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca}

		f.inds = append(f.inds, base, base+1, base+2, base, base+2, base+3)
		f.quads++
	}
}

// draw submits the current quads in a single DrawTriangles call with
// additive blending, which makes overlapping glows brighten each other.
func (f *Field) draw(screen *ebiten.Image, tex *ebiten.Image) {
	if f.quads == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{Blend: ebiten.BlendLighter}
	screen.DrawTriangles(f.verts[:f.quads*4], f.inds, tex, op)
}

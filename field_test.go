package evergreen

import (
	"math"
	"testing"
)

func testFieldConfig(count int) FieldConfig {
	return FieldConfig{
		Count:      count,
		ConeHeight: 14,
		ConeRadius: 5.5,
		CubeSide:   36,
		Seed:       7,
	}
}

func TestConeContainment(t *testing.T) {
	f := NewField(testFieldConfig(4000))
	cfg := f.Config()
	const tol = 1e-9

	for i, rec := range f.Records() {
		// Assembled positions are vertically centered; recover the height
		// fraction from the bottom of the cone.
		y := rec.Assembled.Y + cfg.ConeHeight/2
		if y < -tol || y > cfg.ConeHeight+tol {
			t.Fatalf("particle %d: height %f outside [0, %f]", i, y, cfg.ConeHeight)
		}
		radial := math.Hypot(rec.Assembled.X, rec.Assembled.Z)
		limit := cfg.ConeRadius * (1 - y/cfg.ConeHeight)
		if radial > limit+tol {
			t.Fatalf("particle %d: radial distance %f exceeds cone limit %f at height %f", i, radial, limit, y)
		}
	}
}

func TestDispersedInCube(t *testing.T) {
	f := NewField(testFieldConfig(4000))
	half := f.Config().CubeSide / 2

	for i, rec := range f.Records() {
		d := rec.Dispersed
		if math.Abs(d.X) > half || math.Abs(d.Y) > half || math.Abs(d.Z) > half {
			t.Fatalf("particle %d: dispersed position %+v outside cube half-side %f", i, d, half)
		}
	}
}

func TestPhaseRange(t *testing.T) {
	f := NewField(testFieldConfig(1000))
	for i, rec := range f.Records() {
		if rec.Phase < 0 || rec.Phase >= 1 {
			t.Fatalf("particle %d: phase %f outside [0, 1)", i, rec.Phase)
		}
	}
}

func TestGenerationSeedDeterminism(t *testing.T) {
	a := NewField(testFieldConfig(500))
	b := NewField(testFieldConfig(500))
	for i := range a.Records() {
		if a.Records()[i] != b.Records()[i] {
			t.Fatalf("particle %d differs between identically-seeded fields", i)
		}
	}

	other := testFieldConfig(500)
	other.Seed = 8
	c := NewField(other)
	same := 0
	for i := range a.Records() {
		if a.Records()[i] == c.Records()[i] {
			same++
		}
	}
	if same == len(a.Records()) {
		t.Error("different seeds produced identical fields")
	}
}

func TestBlendedDeterminism(t *testing.T) {
	f := NewField(testFieldConfig(100))
	for i := 0; i < f.Count(); i++ {
		p1 := f.Blended(i, 0.37, 12.5)
		p2 := f.Blended(i, 0.37, 12.5)
		if p1 != p2 {
			t.Fatalf("particle %d: Blended not reproducible: %+v vs %+v", i, p1, p2)
		}
	}
}

func TestBlendedEndpoints(t *testing.T) {
	f := NewField(testFieldConfig(200))
	for i := 0; i < f.Count(); i++ {
		rec := f.Records()[i]

		at1 := f.Blended(i, 1, 3.0)
		assertNear(t, "assembled X", at1.X, rec.Assembled.X)
		assertNear(t, "assembled Y", at1.Y, rec.Assembled.Y)
		assertNear(t, "assembled Z", at1.Z, rec.Assembled.Z)
	}
}

func TestDriftVanishesAtFullAssembly(t *testing.T) {
	f := NewField(testFieldConfig(200))
	for i := 0; i < f.Count(); i++ {
		// With eased = 1 the drift amplitude is exactly zero, so the
		// position is time-independent.
		if f.Blended(i, 1, 1.0) != f.Blended(i, 1, 99.0) {
			t.Fatalf("particle %d: position at full assembly depends on time", i)
		}
	}
}

func TestDriftMovesDispersedCloud(t *testing.T) {
	f := NewField(testFieldConfig(50))
	moved := false
	for i := 0; i < f.Count(); i++ {
		if f.Blended(i, 0, 1.0) != f.Blended(i, 0, 2.0) {
			moved = true
			break
		}
	}
	if !moved {
		t.Error("dispersed cloud shows no ambient drift over time")
	}
}

func TestDriftBoundedByAmplitude(t *testing.T) {
	f := NewField(testFieldConfig(200))
	amp := f.Config().DriftAmplitude
	const tol = 1e-9

	for i := 0; i < f.Count(); i++ {
		rec := f.Records()[i]
		for _, elapsed := range []float64{0, 0.37, 1.9, 12.5, 60} {
			off := f.Blended(i, 0, elapsed).Sub(rec.Dispersed)
			if math.Abs(off.X) > amp+tol || math.Abs(off.Y) > amp+tol || math.Abs(off.Z) > amp+tol {
				t.Fatalf("particle %d: drift %+v exceeds amplitude %f at t=%f", i, off, amp, elapsed)
			}
		}
	}
}

func TestCubeSideWidenedToEncloseTree(t *testing.T) {
	cfg := FieldConfig{Count: 10, ConeHeight: 14, ConeRadius: 5.5, CubeSide: 3}
	f := NewField(cfg)
	got := f.Config().CubeSide
	if got <= 2*5.5 || got <= 14 {
		t.Errorf("cube side %f does not enclose the tree silhouette", got)
	}
}

func TestSizeGrowsWithAssembly(t *testing.T) {
	f := NewField(testFieldConfig(20))
	for i := 0; i < f.Count(); i++ {
		if f.sizeOf(i, 1) <= f.sizeOf(i, 0) {
			t.Fatalf("particle %d: size did not grow with assembly", i)
		}
	}
}

func TestBuildQuadsGeometry(t *testing.T) {
	f := NewField(testFieldConfig(300))
	rig := NewRig(RigConfig{}, 960, 720)

	f.buildQuads(rig, 0.5, 2.0, glowTexSize, glowTexSize)

	if f.quads == 0 {
		t.Fatal("no quads built for a field in front of the camera")
	}
	if f.quads > f.Count() {
		t.Fatalf("quads = %d exceeds particle count %d", f.quads, f.Count())
	}
	if len(f.inds) != f.quads*6 {
		t.Fatalf("index count = %d, want %d", len(f.inds), f.quads*6)
	}

	// Floor clamp: no quad may degenerate below the minimum pixel size.
	for q := 0; q < f.quads; q++ {
		v := f.verts[q*4 : q*4+4]
		w := float64(v[1].DstX - v[0].DstX)
		if w < minPointPx-1e-6 {
			t.Fatalf("quad %d width %f below floor %f", q, w, minPointPx)
		}
	}
}

func TestBuildQuadsZeroAllocsAfterWarmup(t *testing.T) {
	f := NewField(testFieldConfig(1000))
	rig := NewRig(RigConfig{}, 960, 720)
	f.buildQuads(rig, 0.5, 1.0, glowTexSize, glowTexSize)

	allocs := testing.AllocsPerRun(50, func() {
		f.buildQuads(rig, 0.5, 1.0, glowTexSize, glowTexSize)
	})
	if allocs > 0 {
		t.Errorf("buildQuads allocs = %f, want 0", allocs)
	}
}

// --- Benchmarks ---

func BenchmarkBlended_5000(b *testing.B) {
	f := NewField(testFieldConfig(5000))
	b.ReportAllocs()
	for b.Loop() {
		for i := 0; i < f.Count(); i++ {
			_ = f.Blended(i, 0.5, 3.0)
		}
	}
}

func BenchmarkBuildQuads_5000(b *testing.B) {
	f := NewField(testFieldConfig(5000))
	rig := NewRig(RigConfig{}, 960, 720)
	f.buildQuads(rig, 0.5, 1.0, glowTexSize, glowTexSize)

	b.ReportAllocs()
	for b.Loop() {
		f.buildQuads(rig, 0.5, 1.0, glowTexSize, glowTexSize)
	}
}

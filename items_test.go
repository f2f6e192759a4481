package evergreen

import (
	"fmt"
	"math"
	"testing"
)

func testItemConfig() ItemSetConfig {
	return ItemSetConfig{
		Ornaments:  20,
		Cards:      16,
		ConeHeight: 14,
		ConeRadius: 5.5,
		CubeSide:   36,
		Seed:       3,
	}
}

func TestGreetingWraparound(t *testing.T) {
	greetings := []string{"a", "b", "c", "d", "e"} // L = 5
	cfg := testItemConfig()
	cfg.Greetings = greetings
	s := NewItemSet(cfg)

	cards := 0
	for _, it := range s.Items() {
		if it.Kind != ItemCard {
			continue
		}
		want := greetings[cards%len(greetings)]
		if it.Greeting != want {
			t.Errorf("card %d bound %q, want %q", cards, it.Greeting, want)
		}
		// Spot-check one wrapped slot: 7 mod 5 = 2.
		if cards == 7 && it.Greeting != "c" {
			t.Errorf("card 7 bound %q, want %q", it.Greeting, "c")
		}
		cards++
	}
	if cards != 16 {
		t.Fatalf("generated %d cards, want 16", cards)
	}
}

func TestEmptyGreetingsBindDefault(t *testing.T) {
	cfg := testItemConfig()
	cfg.Greetings = nil
	s := NewItemSet(cfg)

	for i, it := range s.Items() {
		if it.Kind == ItemCard && it.Greeting != defaultGreeting {
			t.Errorf("item %d bound %q, want the fixed default", i, it.Greeting)
		}
	}
}

func TestTransformDeterminism(t *testing.T) {
	s := NewItemSet(testItemConfig())
	for i := range s.Items() {
		it := &s.Items()[i]
		a := s.transformAt(it, 0.62, 8.75)
		b := s.transformAt(it, 0.62, 8.75)
		if a != b {
			t.Fatalf("item %d: transform not bit-for-bit reproducible: %+v vs %+v", i, a, b)
		}
	}
}

func TestChaosRotationStableAcrossFrames(t *testing.T) {
	s := NewItemSet(testItemConfig())

	// Fully dispersed: orientation is the chaos rotation and must not be
	// resampled between frames.
	s.UpdateTransforms(0, 1.0)
	first := make([]Vec3, len(s.Transforms()))
	for i, tr := range s.Transforms() {
		first[i] = tr.Rotation
	}

	s.UpdateTransforms(0, 2.5)
	for i, tr := range s.Transforms() {
		if tr.Rotation != first[i] {
			t.Fatalf("item %d: chaos rotation changed between frames", i)
		}
	}
}

func TestRotationUnwindsToAssembled(t *testing.T) {
	s := NewItemSet(testItemConfig())
	s.UpdateTransforms(1, 3.0)
	for i, tr := range s.Transforms() {
		it := s.Items()[i]
		assertNear(t, "rotation X", tr.Rotation.X, it.AssembledRotation.X)
		assertNear(t, "rotation Y", tr.Rotation.Y, it.AssembledRotation.Y)
		assertNear(t, "rotation Z", tr.Rotation.Z, it.AssembledRotation.Z)
	}
}

func TestWobbleOnlyAboveThreshold(t *testing.T) {
	s := NewItemSet(testItemConfig())
	it := &s.Items()[0]

	// Below the threshold the transform is time-independent.
	below1 := s.transformAt(it, 0.85, 1.0)
	below2 := s.transformAt(it, 0.85, 9.0)
	if below1 != below2 {
		t.Error("transform below wobble threshold depends on time")
	}

	// Above it, the settled float oscillates.
	above1 := s.transformAt(it, 0.95, 1.0)
	above2 := s.transformAt(it, 0.95, 2.0)
	if above1 == above2 {
		t.Error("no settled wobble above threshold")
	}
}

func TestWobbleAmplitudeBounded(t *testing.T) {
	s := NewItemSet(testItemConfig())
	amp := s.cfg.WobbleAmplitude

	for i := range s.Items() {
		it := &s.Items()[i]
		for _, elapsed := range []float64{0, 1.3, 7.7, 42} {
			tr := s.transformAt(it, 1, elapsed)
			off := tr.Position.Sub(it.Assembled).Length()
			if off > amp*1.5+1e-9 {
				t.Fatalf("item %d: settled offset %f exceeds wobble bound", i, off)
			}
		}
	}
}

func TestItemsSettleAtAssembled(t *testing.T) {
	cfg := testItemConfig()
	s := NewItemSet(cfg)
	s.UpdateTransforms(1, 2.0)

	for i, tr := range s.Transforms() {
		it := s.Items()[i]
		off := tr.Position.Sub(it.Assembled).Length()
		// Only the sub-unit wobble separates a settled item from its
		// assembled position.
		if off > 0.5 {
			t.Fatalf("item %d: settled %f away from assembled position", i, off)
		}
	}
}

func TestStaggerDesynchronizesItems(t *testing.T) {
	s := NewItemSet(testItemConfig())
	s.UpdateTransforms(0.5, 1.0)

	// Mid-transition, items with different phases should sit at different
	// fractions of their own journey.
	fractions := make(map[string]bool)
	for i, tr := range s.Transforms() {
		it := s.Items()[i]
		total := it.Assembled.Sub(it.Dispersed).Length()
		if total < 1e-9 {
			continue
		}
		done := tr.Position.Sub(it.Dispersed).Length() / total
		fractions[fmt.Sprintf("%.2f", done)] = true
	}
	if len(fractions) < 2 {
		t.Error("all items move in lockstep; phase stagger has no effect")
	}
}

func TestPopulationCounts(t *testing.T) {
	s := NewItemSet(ItemSetConfig{})
	orn, cards := 0, 0
	for _, it := range s.Items() {
		switch it.Kind {
		case ItemOrnament:
			orn++
		case ItemCard:
			cards++
		}
	}
	if orn != 150 {
		t.Errorf("ornaments = %d, want default 150", orn)
	}
	if cards != 14 {
		t.Errorf("cards = %d, want default 14", cards)
	}
}

func TestOrnamentsOnConeSurface(t *testing.T) {
	cfg := testItemConfig()
	s := NewItemSet(cfg)
	for i, it := range s.Items() {
		if it.Kind != ItemOrnament {
			continue
		}
		y := it.Assembled.Y + cfg.ConeHeight/2
		limit := cfg.ConeRadius * (1 - y/cfg.ConeHeight)
		radial := math.Hypot(it.Assembled.X, it.Assembled.Z)
		if radial > limit+1e-9 {
			t.Fatalf("ornament %d pokes out of the cone: radial %f > %f", i, radial, limit)
		}
	}
}

func TestItemSeedDeterminism(t *testing.T) {
	a := NewItemSet(testItemConfig())
	b := NewItemSet(testItemConfig())
	for i := range a.Items() {
		if a.Items()[i] != b.Items()[i] {
			t.Fatalf("item %d differs between identically-seeded sets", i)
		}
	}
}

// --- Benchmarks ---

func BenchmarkUpdateTransforms(b *testing.B) {
	s := NewItemSet(ItemSetConfig{})
	b.ReportAllocs()
	elapsed := 0.0
	for b.Loop() {
		elapsed += 1.0 / 60.0
		s.UpdateTransforms(0.7, elapsed)
	}
}

package evergreen

import (
	"math"
	"math/rand/v2"

	"github.com/tanema/gween/ease"
)

// ItemKind distinguishes the two discrete item populations.
type ItemKind uint8

const (
	ItemOrnament ItemKind = iota // colored ball on the tree surface
	ItemCard                     // greeting card / photo frame
)

// defaultGreeting is bound to every card when the greeting list is empty.
const defaultGreeting = "Happy Holidays!"

// Item is one discrete scene object. Generation-time fields are immutable;
// the current transform lives in the ItemSet's transform slice and is
// recomputed every frame.
type Item struct {
	Kind ItemKind
	// Dispersed and Assembled are the item's two endpoint positions.
	Dispersed Vec3
	Assembled Vec3
	// AssembledRotation is the settled orientation (Euler radians).
	AssembledRotation Vec3
	// ChaosRotation is the item's orientation in the dispersed state.
	// It is generated once and held stable; resampling it per frame would
	// make the tumble jitter instead of unwinding.
	ChaosRotation Vec3
	// Phase is a per-item value in [0, 1) that staggers the transition so
	// items do not move in perfect lockstep.
	Phase float64
	// Tint colors ornaments; unused for cards.
	Tint Color
	// Greeting is the card's bound text; empty for ornaments.
	Greeting string
}

// ItemTransform is an item's mutable render state, recomputed every frame.
type ItemTransform struct {
	Position Vec3
	Rotation Vec3
}

// ItemSetConfig controls item generation and animation.
type ItemSetConfig struct {
	// Ornaments and Cards are the population sizes. Defaults: 150 and 14.
	Ornaments int
	Cards     int
	// Cone dimensions the assembled layout is draped over. Must match the
	// particle field's cone for the populations to read as one shape.
	ConeHeight float64
	ConeRadius float64
	// CubeSide is the dispersed sampling cube side length.
	CubeSide float64
	// WobbleAmplitude is the settled floating-oscillation amplitude in
	// world units. Kept well below 1 so it never disturbs the silhouette.
	WobbleAmplitude float64
	// WobbleThreshold is the eased progress above which the wobble fades
	// in. Defaults to 0.9.
	WobbleThreshold float64
	// Easing remaps the shared progress value for item motion. Nil uses
	// the same cubic ease-out as the particle field.
	Easing ease.TweenFunc
	// Greetings is the card text list, cycled with wraparound. An empty
	// list binds the fixed default greeting to every card.
	Greetings []string
	// Palette cycles ornament tints. Empty selects a built-in palette.
	Palette []Color
	// Seed selects the deterministic generation stream.
	Seed uint64
}

// withDefaults fills zero fields.
func (c ItemSetConfig) withDefaults() ItemSetConfig {
	if c.Ornaments <= 0 {
		c.Ornaments = 150
	}
	if c.Cards <= 0 {
		c.Cards = 14
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
	if c.WobbleAmplitude <= 0 {
		c.WobbleAmplitude = 0.12
	}
	if c.WobbleThreshold <= 0 {
		c.WobbleThreshold = 0.9
	}
	if len(c.Palette) == 0 {
		c.Palette = []Color{
			{0.9, 0.2, 0.25, 1},
			{0.95, 0.75, 0.25, 1},
			{0.3, 0.55, 0.95, 1},
			{0.85, 0.4, 0.8, 1},
			{0.95, 0.95, 0.9, 1},
		}
	}
	return c
}

// ItemSet animates the discrete items. Items are generated once; the
// transforms slice is the only per-frame mutable state.
type ItemSet struct {
	cfg        ItemSetConfig
	items      []Item
	transforms []ItemTransform
}

// NewItemSet generates ornaments and cards. Ornaments drape over the cone
// surface; cards settle in an outward-facing ring around the lower half.
// Generation is seeded by the config alone.
func NewItemSet(cfg ItemSetConfig) *ItemSet {
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewPCG(cfg.Seed^0xdeadbeef, cfg.Seed+0x6a09e667))

	total := cfg.Ornaments + cfg.Cards
	s := &ItemSet{
		cfg:        cfg,
		items:      make([]Item, 0, total),
		transforms: make([]ItemTransform, total),
	}

	h := cfg.ConeHeight
	randomChaos := func() Vec3 {
		return Vec3{
			(rng.Float64() - 0.5) * 2 * math.Pi,
			(rng.Float64() - 0.5) * 2 * math.Pi,
			(rng.Float64() - 0.5) * 2 * math.Pi,
		}
	}
	randomDispersed := func() Vec3 {
		side := cfg.CubeSide
		return Vec3{
			(rng.Float64() - 0.5) * side,
			(rng.Float64() - 0.5) * side,
			(rng.Float64() - 0.5) * side,
		}
	}

	for i := 0; i < cfg.Ornaments; i++ {
		// On the cone surface, pulled slightly inward so ornaments nest
		// in the particle shell instead of floating in front of it.
		y := rng.Float64() * h * 0.92
		r := cfg.ConeRadius * (1 - y/h) * 0.94
		theta := rng.Float64() * 2 * math.Pi

		s.items = append(s.items, Item{
			Kind:      ItemOrnament,
			Dispersed: randomDispersed(),
			Assembled: Vec3{r * math.Cos(theta), y - h/2, r * math.Sin(theta)},
			// Ornaments are rotationally symmetric; their settled
			// orientation is simply upright.
			AssembledRotation: Vec3{},
			ChaosRotation:     randomChaos(),
			Phase:             rng.Float64(),
			Tint:              cfg.Palette[i%len(cfg.Palette)],
		})
	}

	// Cards hang in a band over the lower half of the tree.
	cardBand := Range{Min: 0.15, Max: 0.5}
	for i := 0; i < cfg.Cards; i++ {
		// Evenly spaced ring, each card yawed to face outward with a
		// small random tilt.
		theta := 2 * math.Pi * float64(i) / float64(cfg.Cards)
		r := cfg.ConeRadius * 1.3
		y := -h/2 + h*cardBand.in(rng)

		s.items = append(s.items, Item{
			Kind:      ItemCard,
			Dispersed: randomDispersed(),
			Assembled: Vec3{r * math.Cos(theta), y, r * math.Sin(theta)},
			AssembledRotation: Vec3{
				0,
				-theta + math.Pi/2,
				(rng.Float64() - 0.5) * 0.25,
			},
			ChaosRotation: randomChaos(),
			Phase:         rng.Float64(),
			Greeting:      greetingAt(cfg.Greetings, i),
		})
	}

	return s
}

// greetingAt returns greetings[i mod len(greetings)], or the fixed default
// when the list is empty.
func greetingAt(greetings []string, i int) string {
	if len(greetings) == 0 {
		return defaultGreeting
	}
	return greetings[i%len(greetings)]
}

// Items returns the generated items. The returned slice MUST NOT be mutated.
func (s *ItemSet) Items() []Item {
	return s.items
}

// Transforms returns the current per-item transforms, valid after the most
// recent UpdateTransforms call. The returned slice MUST NOT be mutated.
func (s *ItemSet) Transforms() []ItemTransform {
	return s.transforms
}

// UpdateTransforms recomputes every item's transform from the shared eased
// progress and elapsed time. Called once per frame by the scene.
func (s *ItemSet) UpdateTransforms(eased, elapsed float64) {
	for i := range s.items {
		s.transforms[i] = s.transformAt(&s.items[i], eased, elapsed)
	}
}

// transformAt computes one item's transform. Pure: given identical item
// data, eased, and elapsed values it is bit-for-bit reproducible.
func (s *ItemSet) transformAt(it *Item, eased, elapsed float64) ItemTransform {
	// Per-item stagger: higher-phase items run slightly ahead. Clamped so
	// every item is exactly settled at eased == 1.
	e := clamp01(eased * (1 + 0.3*it.Phase))

	pos := lerpVec3(it.Dispersed, it.Assembled, e)
	rot := lerpVec3(it.ChaosRotation, it.AssembledRotation, e)

	// Settled floating life: a sinusoid keyed by the item's own dispersed
	// coordinate, faded in above the threshold so the settling itself
	// never visibly kinks.
	if thr := s.cfg.WobbleThreshold; eased > thr {
		w := (eased - thr) / (1 - thr)
		amp := s.cfg.WobbleAmplitude * w
		pos.Y += amp * math.Sin(elapsed*1.7+it.Dispersed.X*1.3+it.Dispersed.Z*0.7)
		pos.X += amp * 0.4 * math.Cos(elapsed*1.1+it.Dispersed.Y*0.9)
	}

	return ItemTransform{Position: pos, Rotation: rot}
}

// easedFor returns the progress view items animate by: the configured
// easing function, or the shared cubic ease-out.
func (s *ItemSet) easedFor(p *Progress) float64 {
	if s.cfg.Easing != nil {
		return p.EasedWith(s.cfg.Easing)
	}
	return p.Eased()
}

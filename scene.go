package evergreen

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// World-space sizes of the discrete item sprites.
const (
	ornamentWorldSize = 0.55
	cardWorldWidth    = 2.3
)

// SignalStore is the interface for optional ECS integration.
// When set on a Scene, formed-state transitions are forwarded to the ECS.
type SignalStore interface {
	EmitSignal(event SignalEvent)
}

// SignalEvent carries a formed-state transition for the ECS bridge.
type SignalEvent struct {
	// Formed is the new target configuration.
	Formed bool
	// Elapsed is the scene clock at the transition.
	Elapsed float64
}

// Scene owns the holiday tree: the control state, the progress integrator,
// the particle field, the discrete items, and the camera rig. All per-frame
// computation runs synchronously inside Update; the signal source writes
// ControlState asynchronously and the frame reads the latest snapshot.
type Scene struct {
	control  ControlState
	progress *Progress
	field    *Field
	items    *ItemSet
	rig      *Rig

	greetings []string
	elapsed   float64
	disposed  bool

	poller *Poller
	script *SignalScript

	store      SignalStore
	lastFormed bool

	// ClearColor fills the background each frame.
	ClearColor Color

	glowTex     *ebiten.Image
	ornamentTex *ebiten.Image
	starTex     *ebiten.Image
	cardTex     []*ebiten.Image

	drawOrder []int
	depths    []float64

	// DebugOverlay, when true, prints FPS and progress stats each frame.
	DebugOverlay bool
}

// defaultScreenW/H size the rig before the first Layout call.
const (
	defaultScreenW = 960
	defaultScreenH = 720
)

// Intro dolly tuning: the camera opens this many times the resting
// distance out and settles over the duration in seconds.
const (
	introDollyScale    = 2.2
	introDollyDuration = 1.8
)

// NewScene constructs the full scene from a config. The greeting provider
// is consulted once, here; nil or failing providers fall back to the fixed
// default list, so construction never stalls past the provider timeout.
// The camera opens on a dolly that settles at its resting distance.
func NewScene(cfg Config, provider GreetingProvider) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	greetings := FetchGreetings(context.Background(), provider)

	fieldCfg := FieldConfig{
		Count:          cfg.Field.Count,
		ConeHeight:     cfg.Field.ConeHeight,
		ConeRadius:     cfg.Field.ConeRadius,
		CubeSide:       cfg.Field.CubeSide,
		PointSize:      cfg.Field.PointSize,
		DriftAmplitude: cfg.Field.DriftAmplitude,
		DriftFrequency: cfg.Field.DriftFrequency,
		Seed:           cfg.Seed,
	}
	field := NewField(fieldCfg)

	items := NewItemSet(ItemSetConfig{
		Ornaments:       cfg.Items.Ornaments,
		Cards:           cfg.Items.Cards,
		ConeHeight:      field.cfg.ConeHeight,
		ConeRadius:      field.cfg.ConeRadius,
		CubeSide:        field.cfg.CubeSide,
		WobbleAmplitude: cfg.Items.WobbleAmplitude,
		WobbleThreshold: cfg.Items.WobbleThreshold,
		Greetings:       greetings,
		Seed:            cfg.Seed,
	})

	rig := NewRig(RigConfig{
		ParallaxX: cfg.Camera.ParallaxX,
		ParallaxY: cfg.Camera.ParallaxY,
		BaseY:     cfg.Camera.BaseY,
		Distance:  cfg.Camera.Distance,
		Rate:      cfg.Camera.Rate,
		FOV:       cfg.Camera.FOVDeg * math.Pi / 180,
	}, defaultScreenW, defaultScreenH)
	rig.StartDolly(rig.cfg.Distance*introDollyScale, introDollyDuration)

	cardTex, err := newCardTextures(items.Items())
	if err != nil {
		return nil, err
	}

	n := len(items.Items())
	return &Scene{
		control:     ControlState{},
		progress:    NewProgress(cfg.ProgressRate),
		field:       field,
		items:       items,
		rig:         rig,
		greetings:   greetings,
		ClearColor:  Color{R: 0.02, G: 0.03, B: 0.07, A: 1},
		glowTex:     newGlowTexture(),
		ornamentTex: newOrnamentTexture(),
		starTex:     newStarTexture(),
		cardTex:     cardTex,
		drawOrder:   make([]int, n),
		depths:      make([]float64, n),
	}, nil
}

// SetFormed overwrites the formed classification. Fire-and-forget; safe to
// call from the signal source's goroutine.
func (s *Scene) SetFormed(formed bool) {
	s.control.Formed = formed
}

// SetPointerOffset overwrites the normalized pointer offset. Components
// are clamped to [-1, 1]. Fire-and-forget.
func (s *Scene) SetPointerOffset(x, y float64) {
	s.control.OffsetX = clampOffset(x)
	s.control.OffsetY = clampOffset(y)
}

// Control returns the latest control state snapshot.
func (s *Scene) Control() ControlState {
	return s.control
}

// Progress returns the scene's progress integrator. Only the scene's
// update loop writes it; treat it as read-only.
func (s *Scene) Progress() *Progress {
	return s.progress
}

// Field returns the particle field.
func (s *Scene) Field() *Field {
	return s.field
}

// ItemSet returns the discrete item animator.
func (s *Scene) ItemSet() *ItemSet {
	return s.items
}

// Rig returns the camera rig.
func (s *Scene) Rig() *Rig {
	return s.rig
}

// Greetings returns the list bound at construction.
func (s *Scene) Greetings() []string {
	return s.greetings
}

// Elapsed returns the scene clock in seconds.
func (s *Scene) Elapsed() float64 {
	return s.elapsed
}

// AttachPoller starts a signal poller feeding this scene and ties its
// lifetime to Dispose. An interval <= 0 selects the default sampling rate.
func (s *Scene) AttachPoller(fn SampleFunc, interval time.Duration) {
	s.poller = StartPoller(s, fn, interval)
}

// SetSignalStore sets the optional ECS bridge.
func (s *Scene) SetSignalStore(store SignalStore) {
	s.store = store
}

// SetScript attaches a scripted signal sequence, replayed one step per
// frame from Update.
func (s *Scene) SetScript(script *SignalScript) {
	s.script = script
}

// Update advances the scene by one tick: integrate progress toward the
// signaled target, smooth the camera toward the pointer-offset target,
// recompute item transforms, and rebuild the particle quads. No component
// but the integrator writes the progress value.
func (s *Scene) Update() {
	if s.disposed {
		return
	}
	dt := 1.0 / float64(ebiten.TPS())
	s.step(dt)
}

// step is the dt-explicit core of Update, separated so scripted and
// simulated runs can drive arbitrary timesteps.
func (s *Scene) step(dt float64) {
	if s.script != nil {
		s.script.step(s)
	}

	s.elapsed += dt

	ctl := s.control
	if ctl.Formed != s.lastFormed {
		if s.store != nil {
			s.store.EmitSignal(SignalEvent{Formed: ctl.Formed, Elapsed: s.elapsed})
		}
		s.lastFormed = ctl.Formed
	}
	s.progress.SetTarget(ctl.Formed)
	s.progress.Step(dt)

	s.rig.Smooth(ctl.OffsetX, ctl.OffsetY, dt)

	eased := s.items.easedFor(s.progress)
	s.items.UpdateTransforms(eased, s.elapsed)
	s.field.buildQuads(s.rig, s.progress.Eased(), s.elapsed, glowTexSize, glowTexSize)
}

// Draw renders the frame: background, particle glow, then discrete items
// back to front.
func (s *Scene) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	s.rig.SetScreenSize(b.Dx(), b.Dy())

	screen.Fill(s.ClearColor.toRGBA())
	s.field.draw(screen, s.glowTex)
	s.drawItems(screen)
	s.drawTopper(screen)

	if s.DebugOverlay {
		drawDebugOverlay(screen, s)
	}
}

// drawItems depth-sorts the items against the current camera and draws
// them far to near so nearer sprites overlap correctly.
func (s *Scene) drawItems(screen *ebiten.Image) {
	items := s.items.Items()
	transforms := s.items.Transforms()

	s.rig.computeBasis()
	for i := range items {
		s.drawOrder[i] = i
		rel := transforms[i].Position.Sub(s.rig.Position())
		s.depths[i] = rel.Dot(s.rig.forward)
	}
	sort.Slice(s.drawOrder, func(a, b int) bool {
		return s.depths[s.drawOrder[a]] > s.depths[s.drawOrder[b]]
	})

	for _, i := range s.drawOrder {
		it := &items[i]
		tr := &transforms[i]
		sx, sy, scale, ok := s.rig.Project(tr.Position)
		if !ok {
			continue
		}

		switch it.Kind {
		case ItemOrnament:
			sizePx := ornamentWorldSize * scale
			if sizePx < 1 {
				sizePx = 1
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(-ornamentTexSize/2, -ornamentTexSize/2)
			op.GeoM.Rotate(tr.Rotation.Z)
			op.GeoM.Scale(sizePx/ornamentTexSize, sizePx/ornamentTexSize)
			op.GeoM.Translate(sx, sy)
			op.ColorScale.Scale(float32(it.Tint.R), float32(it.Tint.G), float32(it.Tint.B), float32(it.Tint.A))
			screen.DrawImage(s.ornamentTex, op)

		case ItemCard:
			tex := s.cardTex[i]
			if tex == nil {
				continue
			}
			widthPx := cardWorldWidth * scale
			if widthPx < 2 {
				widthPx = 2
			}
			k := widthPx / cardTexW
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(-cardTexW/2, -cardTexH/2)
			op.GeoM.Rotate(tr.Rotation.Z)
			op.GeoM.Scale(k, k)
			op.GeoM.Translate(sx, sy)
			screen.DrawImage(tex, op)
		}
	}
}

// topperWorldSize is the star's world-space width at the tree tip.
const topperWorldSize = 1.6

// drawTopper fades the star in above the cone tip as the tree assembles,
// spinning slowly on the scene clock.
func (s *Scene) drawTopper(screen *ebiten.Image) {
	eased := s.progress.Eased()
	if eased < 0.05 {
		return
	}
	tip := Vec3{0, s.field.cfg.ConeHeight/2 + 0.4, 0}
	sx, sy, scale, ok := s.rig.Project(tip)
	if !ok {
		return
	}
	sizePx := topperWorldSize * scale
	if sizePx < 2 {
		sizePx = 2
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-starTexSize/2, -starTexSize/2)
	op.GeoM.Rotate(s.elapsed * 0.4)
	op.GeoM.Scale(sizePx/starTexSize, sizePx/starTexSize)
	op.GeoM.Translate(sx, sy)
	op.ColorScale.ScaleAlpha(float32(eased))
	screen.DrawImage(s.starTex, op)
}

// Dispose stops the attached poller and freezes the scene. Both the
// polling timer and the render loop must stop at teardown so per-frame
// work can't leak against a disposed scene; Update becomes a no-op after
// this call.
func (s *Scene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.poller.Stop()
}

// IsDisposed reports whether Dispose has been called.
func (s *Scene) IsDisposed() bool {
	return s.disposed
}

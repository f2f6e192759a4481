package evergreen

import (
	"math"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
)

// glowTexSize is the side length of the procedural particle texture.
const glowTexSize = 32

// newGlowTexture renders a soft radial glow: white with alpha falling off
// as the square of the normalized distance from center. The squared
// falloff keeps the center bright, which is what reads as sparkle once
// quads blend additively.
func newGlowTexture() *ebiten.Image {
	dc := gg.NewContext(glowTexSize, glowTexSize)
	cx := float64(glowTexSize) / 2
	cy := float64(glowTexSize) / 2
	maxR := math.Hypot(cx, cy)

	for y := 0; y < glowTexSize; y++ {
		for x := 0; x < glowTexSize; x++ {
			d := math.Hypot(float64(x)-cx+0.5, float64(y)-cy+0.5)
			t := 1 - d/maxR
			if t < 0 {
				t = 0
			}
			a := t * t
			dc.SetRGBA(1, 1, 1, a)
			dc.SetPixel(x, y)
		}
	}
	return ebiten.NewImageFromImage(dc.Image())
}

// ornamentTexSize is the side length of the procedural ornament sprite.
const ornamentTexSize = 48

// newOrnamentTexture renders a shaded white ball with an off-center
// highlight. Tinting happens at draw time through the color scale, so one
// texture serves the whole palette.
func newOrnamentTexture() *ebiten.Image {
	dc := gg.NewContext(ornamentTexSize, ornamentTexSize)
	c := float64(ornamentTexSize) / 2
	r := c - 1

	// Body with simple lambert-ish shading toward the lower right.
	for y := 0; y < ornamentTexSize; y++ {
		for x := 0; x < ornamentTexSize; x++ {
			dx := float64(x) - c + 0.5
			dy := float64(y) - c + 0.5
			d := math.Hypot(dx, dy)
			if d > r {
				continue
			}
			shade := 1 - 0.45*(d/r)
			dc.SetRGBA(shade, shade, shade, 1)
			dc.SetPixel(x, y)
		}
	}

	// Specular highlight up-left of center.
	dc.SetRGBA(1, 1, 1, 0.9)
	dc.DrawCircle(c-r*0.35, c-r*0.35, r*0.18)
	dc.Fill()

	return ebiten.NewImageFromImage(dc.Image())
}

// starTexSize is the side length of the tree-topper sprite.
const starTexSize = 64

// newStarTexture renders a five-pointed golden star around a bright core.
func newStarTexture() *ebiten.Image {
	dc := gg.NewContext(starTexSize, starTexSize)
	c := float64(starTexSize) / 2
	outer := c - 2
	inner := outer * 0.42

	for i := 0; i < 10; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		x := c + r*math.Cos(a)
		y := c + r*math.Sin(a)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
	dc.SetRGBA(1, 0.85, 0.3, 1)
	dc.Fill()

	dc.SetRGBA(1, 1, 0.85, 0.9)
	dc.DrawCircle(c, c, inner*0.55)
	dc.Fill()

	return ebiten.NewImageFromImage(dc.Image())
}

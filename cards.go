package evergreen

import (
	"fmt"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goitalic"
)

// Card texture dimensions in pixels.
const (
	cardTexW = 160
	cardTexH = 104
)

// cardFontFace lazily parses the bundled italic face used for greetings.
var cardFontFace font.Face

func loadCardFont() (font.Face, error) {
	if cardFontFace != nil {
		return cardFontFace, nil
	}
	f, err := truetype.Parse(goitalic.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse card font: %w", err)
	}
	cardFontFace = truetype.NewFace(f, &truetype.Options{
		Size:    15,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return cardFontFace, nil
}

// newCardTexture renders a greeting card: warm paper background, double
// frame, and the greeting text wrapped and centered.
func newCardTexture(greeting string) (*ebiten.Image, error) {
	face, err := loadCardFont()
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(cardTexW, cardTexH)

	// Paper.
	dc.SetRGBA(0.97, 0.94, 0.86, 1)
	dc.DrawRoundedRectangle(0, 0, cardTexW, cardTexH, 8)
	dc.Fill()

	// Outer and inner frame.
	dc.SetRGBA(0.68, 0.12, 0.16, 1)
	dc.SetLineWidth(3)
	dc.DrawRoundedRectangle(2, 2, cardTexW-4, cardTexH-4, 7)
	dc.Stroke()
	dc.SetRGBA(0.72, 0.58, 0.22, 1)
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(7, 7, cardTexW-14, cardTexH-14, 5)
	dc.Stroke()

	// Greeting.
	dc.SetFontFace(face)
	dc.SetRGBA(0.25, 0.16, 0.1, 1)
	dc.DrawStringWrapped(greeting, cardTexW/2, cardTexH/2, 0.5, 0.5, cardTexW-28, 1.35, gg.AlignCenter)

	return ebiten.NewImageFromImage(dc.Image()), nil
}

// newCardTextures renders one texture per card item, in item order.
// Ornament items are skipped (nil entries keep the indices aligned).
func newCardTextures(items []Item) ([]*ebiten.Image, error) {
	textures := make([]*ebiten.Image, len(items))
	for i := range items {
		if items[i].Kind != ItemCard {
			continue
		}
		tex, err := newCardTexture(items[i].Greeting)
		if err != nil {
			return nil, err
		}
		textures[i] = tex
	}
	return textures, nil
}

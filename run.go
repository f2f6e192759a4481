package evergreen

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
}

// game adapts a Scene to ebiten.Game for Run.
type game struct {
	scene *Scene
}

func (g *game) Update() error {
	g.scene.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Run creates a window and drives the scene until the window closes. The
// scene is disposed on return, which stops any attached poller. For full
// control over the game loop, implement ebiten.Game yourself and call
// Scene.Update and Scene.Draw directly.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = defaultScreenW
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultScreenH
	}
	if cfg.Title == "" {
		cfg.Title = "Evergreen"
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)

	defer scene.Dispose()
	return ebiten.RunGame(&game{scene: scene})
}

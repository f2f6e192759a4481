package evergreen

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawDebugOverlay prints frame and transition stats in the top-left
// corner. Enabled via Scene.DebugOverlay.
func drawDebugOverlay(screen *ebiten.Image, s *Scene) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f  TPS: %.1f\nprogress: %.3f (eased %.3f)  target: %.0f\nparticles: %d  quads: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		s.progress.Value(), s.progress.Eased(), s.progress.Target(),
		s.field.Count(), s.field.quads,
	))
}

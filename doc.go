// Package evergreen renders an interactive holiday tree scene for
// [Ebitengine]: a cloud of thousands of glowing particles and dozens of
// ornaments and greeting cards that morphs between a dispersed "chaos"
// configuration and an assembled tree cone, driven by a simple two-field
// control signal.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene, err := evergreen.NewScene(evergreen.DefaultConfig(), nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	evergreen.Run(scene, evergreen.RunConfig{
//		Title: "Holiday Tree", Width: 960, Height: 720,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Control signal
//
// The scene consumes two fire-and-forget inputs at any rate of 10 Hz or
// better: [Scene.SetFormed] selects the target configuration (true =
// assembled tree, false = dispersed cloud), and [Scene.SetPointerOffset]
// feeds a normalized [-1, 1] pointer deviation that parallaxes the camera.
// Both overwrite the previous value; there is no backpressure. When no
// signal arrives the scene stays (or settles) dispersed.
//
// The transition itself is never driven directly by the signal. A shared
// [Progress] value is exponentially smoothed toward the target every frame,
// so rapid signal flips (a flickering gesture classifier, say) can never
// pop the visuals.
//
// # Key features
//
// Dual-position particle field with ambient drift, per-item eased transforms
// for ornaments and cards, greeting text fetched from an HTTP provider with
// a built-in fallback list (and optional on-disk caching via [gdata]),
// YAML tuning configs, scripted signal playback for automated runs, and a
// camera rig with pointer parallax and a [gween] intro dolly.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [gdata]: https://github.com/quasilyte/gdata
package evergreen

package evergreen

import (
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// ControlState is the latest classification of the control surface.
// It is written by the signal source at its own sampling rate and read by
// the render loop every frame. Updates are idempotent last-writer-wins;
// tearing across the two offset fields is tolerated (a one-frame-stale or
// mixed read is visually imperceptible), so no locking is used.
type ControlState struct {
	// Formed is true when the target configuration is the assembled tree.
	// Defaults to false so the absence of any signal (no hand detected,
	// camera denied) settles the scene dispersed instead of stranding it
	// mid-transition.
	Formed bool
	// OffsetX and OffsetY are the normalized pointer deviation from scene
	// center, each in [-1, 1]. They hold their last value when no update
	// arrives.
	OffsetX float64
	OffsetY float64
}

// SampleFunc produces one control sample: the formed classification and
// the normalized pointer offset.
type SampleFunc func() (formed bool, offsetX, offsetY float64)

// Poller drives a SampleFunc on its own timer, independent of the render
// frame rate, and forwards each sample to the scene. It must be stopped
// explicitly on teardown so no per-frame work leaks against a disposed
// scene.
type Poller struct {
	ticker *time.Ticker
	done   chan struct{}
	stop   sync.Once
}

// defaultSampleInterval is ~15 Hz.
const defaultSampleInterval = 66 * time.Millisecond

// StartPoller begins sampling fn every interval and applying the result to
// the scene. An interval <= 0 selects the default. The returned Poller's
// Stop must be called on teardown.
func StartPoller(scene *Scene, fn SampleFunc, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultSampleInterval
	}
	p := &Poller{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-p.done:
				return
			case <-p.ticker.C:
				formed, ox, oy := fn()
				scene.SetFormed(formed)
				scene.SetPointerOffset(ox, oy)
			}
		}
	}()
	return p
}

// Stop halts the sampling timer. Safe to call more than once, from any
// goroutine.
func (p *Poller) Stop() {
	if p == nil || p.ticker == nil {
		return
	}
	p.stop.Do(func() {
		p.ticker.Stop()
		close(p.done)
	})
}

// PointerSample is a SampleFunc reading the ebiten cursor: the offset is
// the cursor's normalized deviation from the window center and formed is
// whether the left mouse button is held. It stands in for a gesture
// classifier during development, honoring the same output contract.
func PointerSample() (bool, float64, float64) {
	w, h := ebiten.WindowSize()
	if w < 1 || h < 1 {
		return false, 0, 0
	}
	cx, cy := ebiten.CursorPosition()
	ox := clampOffset(float64(cx)/float64(w)*2 - 1)
	oy := clampOffset(float64(cy)/float64(h)*2 - 1)
	formed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	return formed, ox, oy
}

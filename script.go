package evergreen

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a signal script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// signalScript is the top-level JSON structure for a signal script.
type signalScript struct {
	Steps []scriptStep `json:"steps"`
}

// SignalScript sequences control-signal changes across frames for
// automated and reproducible runs: form, disperse, point, and wait steps
// replace the live signal source. Attach to a Scene via SetScript.
type SignalScript struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadSignalScript parses a JSON signal script:
//
//	{"steps": [
//	  {"action": "form"},
//	  {"action": "wait", "frames": 120},
//	  {"action": "point", "x": 0.4, "y": -0.2},
//	  {"action": "disperse"}
//	]}
func LoadSignalScript(jsonData []byte) (*SignalScript, error) {
	var script signalScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse signal script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse signal script: no steps")
	}
	for _, st := range script.Steps {
		switch st.Action {
		case "form", "disperse", "point", "wait":
		default:
			return nil, fmt.Errorf("parse signal script: unknown action %q", st.Action)
		}
	}
	return &SignalScript{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *SignalScript) Done() bool {
	return r.done
}

// step advances the script by one frame. Called from Scene.Update before
// the integrator reads the control state, so a step's effect lands in the
// same frame.
func (r *SignalScript) step(s *Scene) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "form":
		s.SetFormed(true)
	case "disperse":
		s.SetFormed(false)
	case "point":
		s.SetPointerOffset(st.X, st.Y)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}

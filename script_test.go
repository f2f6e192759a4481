package evergreen

import "testing"

func TestLoadSignalScript(t *testing.T) {
	script, err := LoadSignalScript([]byte(`{"steps":[
		{"action":"form"},
		{"action":"wait","frames":10},
		{"action":"point","x":0.5,"y":-0.5},
		{"action":"disperse"}
	]}`))
	if err != nil {
		t.Fatalf("LoadSignalScript: %v", err)
	}
	if script.Done() {
		t.Error("fresh script reports done")
	}
}

func TestLoadSignalScriptRejectsBadInput(t *testing.T) {
	if _, err := LoadSignalScript([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := LoadSignalScript([]byte(`{"steps":[]}`)); err == nil {
		t.Error("expected error for empty steps")
	}
	if _, err := LoadSignalScript([]byte(`{"steps":[{"action":"explode"}]}`)); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestScriptStepsApplyToScene(t *testing.T) {
	scene, err := NewScene(DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	script, err := LoadSignalScript([]byte(`{"steps":[
		{"action":"point","x":0.25,"y":0.75},
		{"action":"form"},
		{"action":"wait","frames":3},
		{"action":"disperse"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	scene.SetScript(script)

	scene.step(1.0 / 60.0) // point
	ctl := scene.Control()
	assertNear(t, "offset X", ctl.OffsetX, 0.25)
	assertNear(t, "offset Y", ctl.OffsetY, 0.75)
	if ctl.Formed {
		t.Error("formed before the form step ran")
	}

	scene.step(1.0 / 60.0) // form
	if !scene.Control().Formed {
		t.Error("form step did not set formed")
	}

	for i := 0; i < 3; i++ { // wait frames
		scene.step(1.0 / 60.0)
		if !scene.Control().Formed {
			t.Fatalf("wait frame %d cleared formed", i)
		}
	}

	scene.step(1.0 / 60.0) // disperse
	if scene.Control().Formed {
		t.Error("disperse step did not clear formed")
	}
	if !script.Done() {
		t.Error("script not done after final step")
	}
}

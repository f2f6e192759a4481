package evergreen

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, `
progressRate: 2.0
field:
  count: 1234
  coneHeight: 10
camera:
  distance: 30
seed: 99
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ProgressRate != 2.0 {
		t.Errorf("progressRate = %g, want 2.0", cfg.ProgressRate)
	}
	if cfg.Field.Count != 1234 {
		t.Errorf("field.count = %d, want 1234", cfg.Field.Count)
	}
	if cfg.Field.ConeHeight != 10 {
		t.Errorf("field.coneHeight = %g, want 10", cfg.Field.ConeHeight)
	}
	if cfg.Camera.Distance != 30 {
		t.Errorf("camera.distance = %g, want 30", cfg.Camera.Distance)
	}
	if cfg.Seed != 99 {
		t.Errorf("seed = %d, want 99", cfg.Seed)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := writeTempConfig(t, "field: [not a map")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestZeroConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero config rejected: %v", err)
	}
}

func TestValidateRejectsHarmfulValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative progressRate", func(c *Config) { c.ProgressRate = -1 }},
		{"negative count", func(c *Config) { c.Field.Count = -10 }},
		{"negative cone", func(c *Config) { c.Field.ConeHeight = -1 }},
		{"negative ornaments", func(c *Config) { c.Items.Ornaments = -1 }},
		{"threshold at 1", func(c *Config) { c.Items.WobbleThreshold = 1 }},
		{"negative distance", func(c *Config) { c.Camera.Distance = -5 }},
		{"fov too wide", func(c *Config) { c.Camera.FOVDeg = 200 }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestLoadConfigRunsValidation(t *testing.T) {
	path := writeTempConfig(t, "progressRate: -3\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected validation error from LoadConfig")
	}
}

package evergreen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full scene tuning configuration. All fields have working
// defaults; a zero Config (or an empty YAML file) produces the standard
// tree.
type Config struct {
	// ProgressRate is the transition convergence rate constant in 1/s.
	ProgressRate float64 `yaml:"progressRate"`

	Field struct {
		Count          int     `yaml:"count"`
		ConeHeight     float64 `yaml:"coneHeight"`
		ConeRadius     float64 `yaml:"coneRadius"`
		CubeSide       float64 `yaml:"cubeSide"`
		PointSize      float64 `yaml:"pointSize"`
		DriftAmplitude float64 `yaml:"driftAmplitude"`
		DriftFrequency float64 `yaml:"driftFrequency"`
	} `yaml:"field"`

	Items struct {
		Ornaments       int     `yaml:"ornaments"`
		Cards           int     `yaml:"cards"`
		WobbleAmplitude float64 `yaml:"wobbleAmplitude"`
		WobbleThreshold float64 `yaml:"wobbleThreshold"`
	} `yaml:"items"`

	Camera struct {
		ParallaxX float64 `yaml:"parallaxX"`
		ParallaxY float64 `yaml:"parallaxY"`
		BaseY     float64 `yaml:"baseY"`
		Distance  float64 `yaml:"distance"`
		Rate      float64 `yaml:"rate"`
		FOVDeg    float64 `yaml:"fovDeg"`
	} `yaml:"camera"`

	// GreetingURL, when set, is fetched at startup for card text.
	GreetingURL string `yaml:"greetingURL"`

	// Seed selects the deterministic generation stream for the field and
	// the items.
	Seed uint64 `yaml:"seed"`
}

// DefaultConfig returns the zero config, which resolves to the standard
// tree parameters when the scene is constructed.
func DefaultConfig() Config {
	return Config{}
}

// LoadConfig reads and parses a YAML scene config.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read scene config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse scene config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configs that cannot produce a sane scene. Zero values
// are always valid (they select defaults); only actively harmful values
// fail.
func (c *Config) Validate() error {
	if c.ProgressRate < 0 {
		return fmt.Errorf("scene config: progressRate must be >= 0, got %g", c.ProgressRate)
	}
	if c.Field.Count < 0 {
		return fmt.Errorf("scene config: field.count must be >= 0, got %d", c.Field.Count)
	}
	if c.Field.ConeHeight < 0 || c.Field.ConeRadius < 0 {
		return fmt.Errorf("scene config: cone dimensions must be >= 0")
	}
	if c.Field.CubeSide < 0 {
		return fmt.Errorf("scene config: field.cubeSide must be >= 0, got %g", c.Field.CubeSide)
	}
	if c.Items.Ornaments < 0 || c.Items.Cards < 0 {
		return fmt.Errorf("scene config: item counts must be >= 0")
	}
	if c.Items.WobbleThreshold < 0 || c.Items.WobbleThreshold >= 1 {
		return fmt.Errorf("scene config: items.wobbleThreshold must be in [0, 1), got %g", c.Items.WobbleThreshold)
	}
	if c.Camera.Distance < 0 {
		return fmt.Errorf("scene config: camera.distance must be >= 0, got %g", c.Camera.Distance)
	}
	if c.Camera.FOVDeg < 0 || c.Camera.FOVDeg >= 180 {
		return fmt.Errorf("scene config: camera.fovDeg must be in [0, 180), got %g", c.Camera.FOVDeg)
	}
	return nil
}

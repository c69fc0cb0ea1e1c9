package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a configuration fails validation.
var ErrInvalid = errors.New("invalid config")

const configFileName = "breakout.yaml"

// LoadBreakout loads the Brickburst configuration.
// Search order: customPath -> ~/.brickburst/configs/breakout.yaml -> ./configs/breakout.yaml -> embedded default.
// Files are decoded on top of the defaults, so an override only needs the keys it changes.
// A custom path that cannot be read, parsed, or validated is an error. The other
// locations are skipped when absent, but a file that exists and is broken is an error too.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BreakoutConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return BreakoutConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(configFileName), filepath.Join("configs", configFileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return BreakoutConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return BreakoutConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	cfg, err := parse(defaultBreakoutYAML)
	if err != nil {
		return DefaultBreakoutConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML over the defaults and validates the result.
func parse(data []byte) (BreakoutConfig, error) {
	cfg := DefaultBreakoutConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BreakoutConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return BreakoutConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".brickburst", "configs", filename)
}

// Validate checks the values the simulation depends on.
func (c BreakoutConfig) Validate() error {
	switch {
	case c.Physics.BallRadius <= 0:
		return fmt.Errorf("%w: physics.ball_radius must be positive", ErrInvalid)
	case c.Physics.BaseSpeed <= 0:
		return fmt.Errorf("%w: physics.base_speed must be positive", ErrInvalid)
	case c.Physics.SpeedIncrement < 0:
		return fmt.Errorf("%w: physics.speed_increment must not be negative", ErrInvalid)
	case c.Physics.MaxStep <= 0:
		return fmt.Errorf("%w: physics.max_step must be positive", ErrInvalid)
	case c.Physics.LaunchX == 0 && c.Physics.LaunchY == 0:
		return fmt.Errorf("%w: physics launch direction must be non-zero", ErrInvalid)
	case c.Paddle.Width <= 0 || c.Paddle.MobileWidth <= 0 || c.Paddle.Height <= 0:
		return fmt.Errorf("%w: paddle dimensions must be positive", ErrInvalid)
	case c.Layout.Desktop.Width <= 0 || c.Layout.Desktop.Height <= 0:
		return fmt.Errorf("%w: layout.desktop block size must be positive", ErrInvalid)
	case c.Layout.Mobile.Width <= 0 || c.Layout.Mobile.Height <= 0:
		return fmt.Errorf("%w: layout.mobile block size must be positive", ErrInvalid)
	case c.Layout.MaxRows < 0 || c.Layout.BaseRows < 0:
		return fmt.Errorf("%w: layout row counts must not be negative", ErrInvalid)
	case c.Gameplay.Lives < 1 || c.Gameplay.Lives > 3:
		return fmt.Errorf("%w: gameplay.lives must be in [1, 3]", ErrInvalid)
	case c.Gameplay.StartLevel < 1:
		return fmt.Errorf("%w: gameplay.start_level must be at least 1", ErrInvalid)
	case c.Particles.BurstCount < 0:
		return fmt.Errorf("%w: particles.burst_count must not be negative", ErrInvalid)
	case c.Particles.MaxSpeed < c.Particles.MinSpeed || c.Particles.MaxSize < c.Particles.MinSize:
		return fmt.Errorf("%w: particle ranges must have max >= min", ErrInvalid)
	case c.Particles.DecayRate <= 0:
		return fmt.Errorf("%w: particles.decay_rate must be positive", ErrInvalid)
	case c.Combo.Max < 1:
		return fmt.Errorf("%w: combo.max must be at least 1", ErrInvalid)
	case c.Combo.Step < 0 || c.Combo.DecayRate < 0:
		return fmt.Errorf("%w: combo rates must not be negative", ErrInvalid)
	}
	return nil
}

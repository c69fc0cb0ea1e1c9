package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the built-in configuration.
// It mirrors defaults/breakout.yaml and is used when the embedded YAML cannot be parsed.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Physics: PhysicsConfig{
			BallRadius:     8,
			BaseSpeed:      300,
			SpeedIncrement: 30,
			MaxStep:        1.0 / 30,
			LaunchX:        0.6,
			LaunchY:        -0.8,
			SpawnGap:       40,
		},
		Paddle: PaddleConfig{
			Width:        100,
			MobileWidth:  80,
			Height:       12,
			BottomOffset: 40,
		},
		Layout: LayoutConfig{
			MobileThreshold: 600,
			Desktop:         BlockSize{Width: 70, Height: 20, Padding: 8},
			Mobile:          BlockSize{Width: 45, Height: 16, Padding: 5},
			TopOffset:       60,
			SideMargin:      10,
			BaseRows:        3,
			RowsPerLevel:    1,
			MaxRows:         8,
		},
		Gameplay: GameplayConfig{
			Lives:      3,
			StartLevel: 1,
		},
		Particles: ParticlesConfig{
			BurstCount: 8,
			Jitter:     0.25,
			MinSpeed:   100,
			MaxSpeed:   250,
			MinSize:    3,
			MaxSize:    6,
			Drag:       0.98,
			Gravity:    300,
			DecayRate:  2,
		},
		Combo: ComboConfig{
			Step:      0.1,
			Max:       3,
			DecayRate: 0.5,
		},
		Audio: AudioConfig{
			Enabled:    false,
			SampleRate: 44100,
			Volume:     0.3,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}

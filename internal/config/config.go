// Package config provides YAML-based game configuration loading
// and difficulty presets for Brickburst.
package config

// BreakoutConfig contains all tunable parameters of the simulation.
// Distances are playfield units, speeds are units per second.
type BreakoutConfig struct {
	Physics   PhysicsConfig   `yaml:"physics"`
	Paddle    PaddleConfig    `yaml:"paddle"`
	Layout    LayoutConfig    `yaml:"layout"`
	Gameplay  GameplayConfig  `yaml:"gameplay"`
	Particles ParticlesConfig `yaml:"particles"`
	Combo     ComboConfig     `yaml:"combo"`
	Audio     AudioConfig     `yaml:"audio"`
}

// PhysicsConfig defines ball motion parameters.
type PhysicsConfig struct {
	BallRadius     float64 `yaml:"ball_radius"`
	BaseSpeed      float64 `yaml:"base_speed"`
	SpeedIncrement float64 `yaml:"speed_increment"` // Added per level
	MaxStep        float64 `yaml:"max_step"`        // Upper bound on a single tick's dt, seconds
	LaunchX        float64 `yaml:"launch_x"`        // Launch direction, normalized on use
	LaunchY        float64 `yaml:"launch_y"`
	SpawnGap       float64 `yaml:"spawn_gap"` // Ball spawn distance above the paddle
}

// PaddleConfig defines paddle geometry.
type PaddleConfig struct {
	Width        float64 `yaml:"width"`
	MobileWidth  float64 `yaml:"mobile_width"`
	Height       float64 `yaml:"height"`
	BottomOffset float64 `yaml:"bottom_offset"` // Distance from canvas bottom to paddle top
}

// BlockSize is one size class of block geometry.
type BlockSize struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Padding float64 `yaml:"padding"`
}

// LayoutConfig defines how the block grid is generated.
type LayoutConfig struct {
	MobileThreshold float64   `yaml:"mobile_threshold"` // Canvas widths below this use the mobile class
	Desktop         BlockSize `yaml:"desktop"`
	Mobile          BlockSize `yaml:"mobile"`
	TopOffset       float64   `yaml:"top_offset"`
	SideMargin      float64   `yaml:"side_margin"`
	BaseRows        int       `yaml:"base_rows"`
	RowsPerLevel    int       `yaml:"rows_per_level"`
	MaxRows         int       `yaml:"max_rows"`
}

// GameplayConfig defines lives and level progression.
type GameplayConfig struct {
	Lives      int `yaml:"lives"`
	StartLevel int `yaml:"start_level"`
}

// ParticlesConfig defines burst and integration parameters for particle effects.
type ParticlesConfig struct {
	BurstCount int     `yaml:"burst_count"`
	Jitter     float64 `yaml:"jitter"` // Radians, applied as +/- jitter
	MinSpeed   float64 `yaml:"min_speed"`
	MaxSpeed   float64 `yaml:"max_speed"`
	MinSize    float64 `yaml:"min_size"`
	MaxSize    float64 `yaml:"max_size"`
	Drag       float64 `yaml:"drag"`       // Velocity multiplier per tick
	Gravity    float64 `yaml:"gravity"`    // Units/s^2
	DecayRate  float64 `yaml:"decay_rate"` // Life lost per second
}

// ComboConfig defines the score multiplier behavior.
type ComboConfig struct {
	Step      float64 `yaml:"step"`       // Added on a tick with at least one block hit
	Max       float64 `yaml:"max"`        // Upper bound
	DecayRate float64 `yaml:"decay_rate"` // Lost per idle second
}

// AudioConfig defines the cue emitter output.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"` // 0..1 amplitude
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal and unknown presets leave the config untouched.
func ApplyPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Physics.BaseSpeed *= 0.8
		cfg.Physics.SpeedIncrement *= 0.5
		cfg.Paddle.Width *= 1.2
		cfg.Paddle.MobileWidth *= 1.2
	case DifficultyHard:
		cfg.Physics.BaseSpeed *= 1.25
		cfg.Physics.SpeedIncrement *= 1.5
		cfg.Paddle.Width *= 0.8
		cfg.Paddle.MobileWidth *= 0.8
	}
}

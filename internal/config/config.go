// Package config provides YAML-based configuration loading for the flappy
// game, its store overlay and the commerce service credentials.
package config

import (
	"errors"
	"fmt"
	"time"
)

// FlappyConfig contains all configuration for the game.
type FlappyConfig struct {
	World     WorldConfig    `yaml:"world"`
	Player    PlayerConfig   `yaml:"player"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Scoring   ScoringConfig  `yaml:"scoring"`
	Commerce  CommerceConfig `yaml:"commerce"`
	Store     StoreConfig    `yaml:"store"`
}

// WorldConfig describes the playfield in world pixels.
type WorldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Gravity      float64 `yaml:"gravity"`       // Downward acceleration, px/s²
	GroundY      float64 `yaml:"ground_y"`      // Centre of the ground sprite
	GroundHeight float64 `yaml:"ground_height"` // Height of the ground sprite
}

// GroundTop returns the y coordinate of the top edge of the ground.
func (w WorldConfig) GroundTop() float64 {
	return w.GroundY - w.GroundHeight/2
}

// PlayerConfig defines the bird's spawn point, hitbox and flight tuning.
type PlayerConfig struct {
	X            float64 `yaml:"x"`
	Y            float64 `yaml:"y"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	FlapVelocity float64 `yaml:"flap_velocity"` // Negative is up
	FallVelocity float64 `yaml:"fall_velocity"` // Asserted on every step outside the grace window
	FlapAngle    float64 `yaml:"flap_angle"`
	RotationStep float64 `yaml:"rotation_step"`
	MaxAngle     float64 `yaml:"max_angle"`
	GraceFrames  int     `yaml:"grace_frames"`
}

// ObstacleConfig defines pipe generation.
type ObstacleConfig struct {
	SpawnX     float64 `yaml:"spawn_x"`
	Cadence    int     `yaml:"cadence"` // Steps between two spawns
	Speed      float64 `yaml:"speed"`   // Horizontal velocity, negative is left
	OffsetMin  int     `yaml:"offset_min"`
	OffsetMax  int     `yaml:"offset_max"`
	Separation float64 `yaml:"separation"` // Distance between top and bottom pipe centres
	PipeWidth  float64 `yaml:"pipe_width"`
	PipeHeight float64 `yaml:"pipe_height"`
	GapWidth   float64 `yaml:"gap_width"`
	GapHeight  float64 `yaml:"gap_height"`
	GapOffset  float64 `yaml:"gap_offset"` // Gap sensor centre relative to the top pipe centre
	DespawnX   float64 `yaml:"despawn_x"`
}

// ScoringConfig defines scoreboard layout and theme switching.
type ScoringConfig struct {
	ThemeEvery int     `yaml:"theme_every"` // Points between day/night and palette switches
	GlyphWidth float64 `yaml:"glyph_width"`
	GlyphY     float64 `yaml:"glyph_y"`
}

// CommerceConfig holds the commerce service endpoint and credentials.
type CommerceConfig struct {
	BaseURL        string        `yaml:"base_url"`
	APIKey         string        `yaml:"api_key"`
	GameID         string        `yaml:"game_id"`
	SessionToken   string        `yaml:"session_token"`
	RedirectOrigin string        `yaml:"redirect_origin"`
	Timeout        time.Duration `yaml:"timeout"`
}

// Enabled reports whether enough is configured to talk to the service.
func (c CommerceConfig) Enabled() bool {
	return c.BaseURL != "" && c.APIKey != "" && c.GameID != ""
}

// StoreConfig defines the store overlay layout in world pixels.
type StoreConfig struct {
	ItemHeight   float64       `yaml:"item_height"`
	Padding      float64       `yaml:"padding"`
	TopMargin    float64       `yaml:"top_margin"`
	BottomMargin float64       `yaml:"bottom_margin"`
	ThumbSize    int           `yaml:"thumb_size"`
	WheelStep    float64       `yaml:"wheel_step"`
	NoticeTime   time.Duration `yaml:"notice_time"` // How long transient notices stay up
}

// Validate checks values the game cannot run without.
func (c FlappyConfig) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %vx%v", c.World.Width, c.World.Height))
	}
	if c.Obstacles.Cadence <= 0 {
		errs = append(errs, fmt.Errorf("obstacles.cadence must be positive, got %d", c.Obstacles.Cadence))
	}
	if c.Obstacles.OffsetMin > c.Obstacles.OffsetMax {
		errs = append(errs, fmt.Errorf("obstacles.offset_min %d exceeds offset_max %d", c.Obstacles.OffsetMin, c.Obstacles.OffsetMax))
	}
	if c.Scoring.ThemeEvery <= 0 {
		errs = append(errs, fmt.Errorf("scoring.theme_every must be positive, got %d", c.Scoring.ThemeEvery))
	}
	if c.Player.GraceFrames < 0 {
		errs = append(errs, fmt.Errorf("player.grace_frames must not be negative, got %d", c.Player.GraceFrames))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration. It matches the
// embedded defaults/flappy.yaml.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: WorldConfig{
			Width:        288,
			Height:       512,
			Gravity:      300,
			GroundY:      458,
			GroundHeight: 112,
		},
		Player: PlayerConfig{
			X:            60,
			Y:            265,
			Width:        34,
			Height:       24,
			FlapVelocity: -400,
			FallVelocity: 120,
			FlapAngle:    -15,
			RotationStep: 1,
			MaxAngle:     90,
			GraceFrames:  5,
		},
		Obstacles: ObstacleConfig{
			SpawnX:     288,
			Cadence:    130,
			Speed:      -100,
			OffsetMin:  -120,
			OffsetMax:  120,
			Separation: 420,
			PipeWidth:  52,
			PipeHeight: 320,
			GapWidth:   2,
			GapHeight:  98,
			GapOffset:  210,
			DespawnX:   -50,
		},
		Scoring: ScoringConfig{
			ThemeEvery: 10,
			GlyphWidth: 25,
			GlyphY:     30,
		},
		Commerce: CommerceConfig{
			RedirectOrigin: "http://localhost:8080",
			Timeout:        10 * time.Second,
		},
		Store: StoreConfig{
			ItemHeight:   150,
			Padding:      20,
			TopMargin:    150,
			BottomMargin: 50,
			ThumbSize:    100,
			WheelStep:    40,
			NoticeTime:   3 * time.Second,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}

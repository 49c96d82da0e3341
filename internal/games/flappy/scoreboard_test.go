package flappy

import (
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/engine"
)

func TestScoreboardLayout(t *testing.T) {
	board := NewScoreboard(config.DefaultFlappyConfig().Scoring, 144)

	tests := []struct {
		score int
		want  []Glyph
	}{
		{0, []Glyph{{0, 144, 30}}},
		{7, []Glyph{{7, 144, 30}}},
		{12, []Glyph{{1, 119, 30}, {2, 144, 30}}},
		{105, []Glyph{{1, 106.5, 30}, {0, 131.5, 30}, {5, 156.5, 30}}},
	}

	for _, tt := range tests {
		got := board.Layout(tt.score)
		if len(got) != len(tt.want) {
			t.Errorf("Layout(%d) = %+v", tt.score, got)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Layout(%d)[%d] = %+v, expected %+v", tt.score, i, got[i], tt.want[i])
			}
		}
	}
}

func TestScoreboardReset(t *testing.T) {
	board := NewScoreboard(config.DefaultFlappyConfig().Scoring, 144)
	board.Reset()
	for i := 0; i < 10; i++ {
		board.Increment()
	}
	if board.Score() != 10 || !board.Night() || len(board.Glyphs()) != 2 {
		t.Fatalf("unexpected board after 10 points: score %d night %v", board.Score(), board.Night())
	}

	board.Reset()
	if board.Score() != 0 || board.Night() || board.Palette() != PaletteGreen || len(board.Glyphs()) != 0 {
		t.Error("Reset() should restore the day theme and clear digits")
	}
}

func TestPlayerTick(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	world := engine.NewWorld(cfg.World.Width, cfg.World.Height, cfg.World.Gravity)
	p := NewPlayer(cfg.Player, world, BirdBlue)
	p.Launch()

	p.Flap()
	for i := 0; i < cfg.Player.GraceFrames; i++ {
		p.Tick()
		if p.Body().Vel.Y != cfg.Player.FlapVelocity {
			t.Fatalf("grace step %d overrode velocity", i)
		}
	}
	if p.Grace() != 0 {
		t.Fatalf("Grace() = %d after the window", p.Grace())
	}

	p.Tick()
	if p.Body().Vel.Y != cfg.Player.FallVelocity {
		t.Errorf("vy = %v, expected fall velocity", p.Body().Vel.Y)
	}
	if p.Body().Angle != cfg.Player.FlapAngle+cfg.Player.RotationStep {
		t.Errorf("angle = %v", p.Body().Angle)
	}

	for i := 0; i < 200; i++ {
		p.Tick()
	}
	if p.Body().Angle != cfg.Player.MaxAngle {
		t.Errorf("angle = %v, expected clamp at %v", p.Body().Angle, cfg.Player.MaxAngle)
	}
}

func TestBirdKeys(t *testing.T) {
	if BirdYellow.Key() != "bird-yellow" || BirdRed.FlapAnim() != "bird-red-flap" || BirdBlue.StopAnim() != "bird-blue-stop" {
		t.Error("unexpected bird sprite keys")
	}
	if PaletteGreen.Toggle() != PaletteRed || PaletteRed.Toggle() != PaletteGreen {
		t.Error("palette toggle broken")
	}
}

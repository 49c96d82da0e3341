package flappy

import (
	"strconv"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Glyph is one scoreboard digit centred on (X, Y) in world pixels.
type Glyph struct {
	Digit int
	X, Y  float64
}

// Scoreboard tracks the score, the day/night theme and the digit layout.
type Scoreboard struct {
	cfg     config.ScoringConfig
	centerX float64
	score   int
	night   bool
	palette Palette
	glyphs  []Glyph
}

// NewScoreboard creates a scoreboard centred on centerX.
func NewScoreboard(cfg config.ScoringConfig, centerX float64) *Scoreboard {
	return &Scoreboard{cfg: cfg, centerX: centerX}
}

// Reset sets the score to zero, restores the day theme and removes the
// digits.
func (s *Scoreboard) Reset() {
	s.score = 0
	s.night = false
	s.palette = PaletteGreen
	s.glyphs = nil
}

// Show lays out the current score.
func (s *Scoreboard) Show() {
	s.glyphs = s.Layout(s.score)
}

// Increment adds a point and relays out the digits. Every ThemeEvery points
// the background and pipe palette switch; the return value reports that.
func (s *Scoreboard) Increment() bool {
	s.score++
	toggled := false
	if s.cfg.ThemeEvery > 0 && s.score%s.cfg.ThemeEvery == 0 {
		s.night = !s.night
		s.palette = s.palette.Toggle()
		toggled = true
	}
	s.Show()
	return toggled
}

// Layout places one glyph per decimal digit. A single digit sits on the
// centre; longer scores start half the block width left of it.
func (s *Scoreboard) Layout(score int) []Glyph {
	digits := strconv.Itoa(score)
	glyphs := make([]Glyph, 0, len(digits))

	if len(digits) == 1 {
		return append(glyphs, Glyph{Digit: score, X: s.centerX, Y: s.cfg.GlyphY})
	}

	x := s.centerX - float64(len(digits))*s.cfg.GlyphWidth/2
	for _, ch := range digits {
		glyphs = append(glyphs, Glyph{Digit: int(ch - '0'), X: x, Y: s.cfg.GlyphY})
		x += s.cfg.GlyphWidth
	}
	return glyphs
}

// Score returns the current score.
func (s *Scoreboard) Score() int {
	return s.score
}

// Night reports whether the night background is showing.
func (s *Scoreboard) Night() bool {
	return s.night
}

// Palette returns the current pipe palette.
func (s *Scoreboard) Palette() Palette {
	return s.palette
}

// Glyphs returns the digits on screen.
func (s *Scoreboard) Glyphs() []Glyph {
	return s.glyphs
}

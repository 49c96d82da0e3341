package flappy

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/engine"
)

// Visual characters for rendering
const (
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GrassChar     = '▓'
	DirtChar      = '░'
	StarChar      = '·'
	BirdWingUp    = '▀'
	BirdWingDown  = '▄'
	BirdWingRest  = '■'
)

// DigitFont is a 3x5 bitmap font for the scoreboard.
var DigitFont = [10][5]string{
	{"###", "# #", "# #", "# #", "###"},
	{" # ", "## ", " # ", " # ", "###"},
	{"###", "  #", "###", "#  ", "###"},
	{"###", "  #", "###", "  #", "###"},
	{"# #", "# #", "###", "  #", "  #"},
	{"###", "#  ", "###", "  #", "###"},
	{"###", "#  ", "###", "# #", "###"},
	{"###", "  #", "  #", "  #", "  #"},
	{"###", "# #", "###", "# #", "###"},
	{"###", "# #", "###", "  #", "###"},
}

// Color returns the terminal colour of the bird skin.
func (c BirdColor) Color() core.Color {
	switch c {
	case BirdRed:
		return core.ColorBrightRed
	case BirdBlue:
		return core.ColorBrightBlue
	default:
		return core.ColorBrightYellow
	}
}

// PipeColor returns the terminal colour for a pipe sprite key.
func PipeColor(key string) core.Color {
	if strings.HasPrefix(key, "pipe-red") {
		return core.ColorRed
	}
	return core.ColorGreen
}

// IsTopPipe reports whether a pipe sprite key is a top pipe.
func IsTopPipe(key string) bool {
	return strings.HasSuffix(key, "-top")
}

// viewport maps world pixels onto screen cells. Terminal cells are about
// twice as tall as wide, so the playfield is drawn twice as wide as the
// screen is tall when there is room.
type viewport struct {
	ox, width, height int
	sx, sy            float64
}

func newViewport(dst *core.Screen, worldW, worldH float64) viewport {
	w := dst.Width()
	if limit := dst.Height() * 2; w > limit {
		w = limit
	}
	return viewport{
		ox:     (dst.Width() - w) / 2,
		width:  w,
		height: dst.Height(),
		sx:     float64(w) / worldW,
		sy:     float64(dst.Height()) / worldH,
	}
}

func (v viewport) col(x float64) int {
	return v.ox + int(math.Floor(x*v.sx))
}

func (v viewport) row(y float64) int {
	return int(math.Floor(y * v.sy))
}

// cells converts a world rectangle into the cells it covers, at least one.
func (v viewport) cells(r core.RectF) core.Rect {
	x0, y0 := v.col(r.X), v.row(r.Y)
	x1, y1 := v.col(r.Right()), v.row(r.Bottom())
	return core.NewRect(x0, y0, core.Max(1, x1-x0), core.Max(1, y1-y0))
}

// clip keeps a rectangle inside the playfield columns.
func (v viewport) clip(r core.Rect) core.Rect {
	left := core.Clamp(r.X, v.ox, v.ox+v.width)
	right := core.Clamp(r.Right(), v.ox, v.ox+v.width)
	r.X, r.W = left, right-left
	return r
}

// Render draws the session to the screen.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	v := newViewport(dst, s.cfg.World.Width, s.cfg.World.Height)

	s.drawBackground(dst, v)
	for _, p := range s.obstacles.Pipes() {
		drawPipe(dst, v, p)
	}
	s.drawGround(dst, v)
	s.drawBird(dst, v)
	s.drawScoreboard(dst, v)
	s.drawHUD(dst, v)
}

func (s *Session) drawBackground(dst *core.Screen, v viewport) {
	if s.board.Night() {
		for y := 0; y < v.height; y++ {
			for x := 0; x < v.width; x++ {
				if (x*7+y*13)%29 == 0 {
					dst.SetColor(v.ox+x, y, StarChar, core.ColorGray)
				}
			}
		}
	}
	if v.ox > 0 {
		for y := 0; y < v.height; y++ {
			dst.SetColor(v.ox-1, y, '│', core.ColorGray)
			dst.SetColor(v.ox+v.width, y, '│', core.ColorGray)
		}
	}
}

func drawPipe(dst *core.Screen, v viewport, p *engine.Body) {
	r := v.cells(p.Rect())
	c := PipeColor(p.Name)
	dst.DrawRect(v.clip(r), PipeChar, c)

	// Caps are one cell wider on each side, at the end facing the gap.
	capRow, capRune := r.Y, PipeCapBottom
	if IsTopPipe(p.Name) {
		capRow, capRune = r.Bottom()-1, PipeCapTop
	}
	capRect := v.clip(core.NewRect(r.X-1, capRow, r.W+2, 1))
	dst.DrawHLine(capRect.X, capRow, capRect.W, capRune, c)
}

func (s *Session) drawGround(dst *core.Screen, v viewport) {
	top := v.row(s.cfg.World.GroundTop())
	scroll := 0
	if s.ground.Anim() == AnimGroundMoving {
		scroll = s.frame / 4
	}
	for x := 0; x < v.width; x++ {
		if (x+scroll)%4 < 2 {
			dst.SetColor(v.ox+x, top, GrassChar, core.ColorBrightGreen)
		} else {
			dst.SetColor(v.ox+x, top, GrassChar, core.ColorGreen)
		}
	}
	dst.DrawRect(core.NewRect(v.ox, top+1, v.width, v.height-top-1), DirtChar, core.ColorOrange)
}

func (s *Session) drawBird(dst *core.Screen, v viewport) {
	bird := s.player.Body()
	if !bird.Alive() {
		return
	}
	x, y := v.col(bird.Pos.X), v.row(bird.Pos.Y)
	c := s.player.Color().Color()

	wing := BirdWingRest
	if bird.Anim() == s.player.Color().FlapAnim() {
		wing = BirdWingUp
		if (s.frame/6)%2 == 1 {
			wing = BirdWingDown
		}
	}

	beak := '▶'
	switch {
	case bird.Angle < -5:
		beak = '◥'
	case bird.Angle > 60:
		beak = '▼'
	case bird.Angle > 20:
		beak = '◢'
	}

	dst.SetColor(x-1, y, wing, c)
	dst.SetColor(x, y, beak, c)
}

func (s *Session) drawScoreboard(dst *core.Screen, v viewport) {
	for _, g := range s.board.Glyphs() {
		x := v.col(g.X) - 1
		y := v.row(g.Y)
		for row, line := range DigitFont[g.Digit] {
			for col, ch := range line {
				if ch == '#' {
					dst.SetColor(x+col, y+row, '█', core.ColorBrightWhite)
				}
			}
		}
	}
}

func (s *Session) drawHUD(dst *core.Screen, v viewport) {
	hud := s.hud
	center := func(y int, text string, c core.Color) {
		x := v.ox + (v.width-len([]rune(text)))/2
		dst.DrawTextColor(core.Max(0, x), y, text, c)
	}

	if hud.IdleMessage {
		title := "GET READY"
		if s.ready {
			title = "READY?"
		}
		drawCenteredMessage(dst, title, "Press SPACE to flap")
	}

	if hud.StoreButton || hud.TipButton {
		var entries []string
		if hud.StoreButton {
			entries = append(entries, "[S] Store")
		}
		if hud.TipButton {
			entries = append(entries, "[T] Tip Developer")
		}
		center(v.height-2, strings.Join(entries, "  "), core.ColorBrightCyan)
	}

	if hud.GameOverBanner {
		lines := []string{fmt.Sprintf("Score: %d", s.board.Score())}
		if hud.HighScoreText {
			lines = append(lines, fmt.Sprintf("High Score: %d", s.scores.Best()))
		}
		if hud.RestartButton || hud.MenuButton {
			lines = append(lines, "[R] Play again  [M] Quit to Main")
		}
		drawCenteredMessage(dst, "GAME OVER", lines...)

		if hud.NewRecordText {
			center(dst.Height()/2-4, fmt.Sprintf("NEW RECORD! %d", s.board.Score()), core.ColorBrightYellow)
		}
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 4
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorBrightWhite)

	// Draw text
	dst.DrawTextColor(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightWhite)
	for i, l := range lines {
		dst.DrawTextColor(boxX+(boxW-len([]rune(l)))/2, boxY+3+i, l, core.ColorDefault)
	}
}

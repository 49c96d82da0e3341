package window

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-flappy/internal/engine"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/shop"
)

// Debug font cell size.
const (
	charW = 6
	charH = 16
)

var (
	skyDay      = color.RGBA{0x4e, 0xc0, 0xca, 0xff}
	skyNight    = color.RGBA{0x0b, 0x1a, 0x33, 0xff}
	pipeGreen   = color.RGBA{0x73, 0xbf, 0x2e, 0xff}
	pipeRed     = color.RGBA{0xd0, 0x43, 0x3b, 0xff}
	pipeEdge    = color.RGBA{0x2b, 0x4a, 0x12, 0xff}
	dirt        = color.RGBA{0xde, 0xd8, 0x95, 0xff}
	grass       = color.RGBA{0x5e, 0xe2, 0x70, 0xff}
	grassDark   = color.RGBA{0x3f, 0xa8, 0x4e, 0xff}
	buttonBlue  = color.RGBA{0x4a, 0x90, 0xe2, 0xff}
	buyGreen    = color.RGBA{0x2e, 0xa0, 0x43, 0xff}
	closeRed    = color.RGBA{0xd0, 0x43, 0x3b, 0xff}
	backdrop    = color.RGBA{0x00, 0x00, 0x00, 0xc0}
	cardFill    = color.RGBA{0x22, 0x22, 0x2e, 0xff}
	cardBorder  = color.RGBA{0x55, 0x55, 0x66, 0xff}
	highlight   = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	placeholder = color.RGBA{0x44, 0x44, 0x44, 0xff}
	warning     = color.RGBA{0xf0, 0xc0, 0x00, 0xff}
)

var birdColors = map[flappy.BirdColor]color.RGBA{
	flappy.BirdRed:    {0xe8, 0x4a, 0x3c, 0xff},
	flappy.BirdBlue:   {0x3c, 0x8c, 0xe8, 0xff},
	flappy.BirdYellow: {0xf8, 0xd0, 0x30, 0xff},
}

func rect(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), c, false)
}

func frame(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), 2, c, false)
}

// centeredText prints s centred on cx at row y.
func centeredText(dst *ebiten.Image, s string, cx, y float64) {
	ebitenutil.DebugPrintAt(dst, s, int(cx)-len(s)*charW/2, int(y))
}

// Draw renders the game and, when open, the store over it.
func (g *Game) Draw(screen *ebiten.Image) {
	s := g.session
	w, h := g.cfg.World.Width, g.cfg.World.Height

	if s.Night() {
		screen.Fill(skyNight)
	} else {
		screen.Fill(skyDay)
	}

	for _, p := range s.Pipes() {
		drawPipe(screen, p)
	}
	g.drawGround(screen)
	g.drawBird(screen)
	drawScore(screen, s.Glyphs())
	g.drawHUD(screen)

	if text := g.notice.Text(time.Now()); text != "" {
		rect(screen, 0, h-charH-8, w, charH+8, backdrop)
		centeredText(screen, text, w/2, h-charH-4)
	} else if g.account != "" && s.HUD().StoreButton {
		ebitenutil.DebugPrintAt(screen, g.account, 4, int(h)-charH-2)
	}

	if g.overlay.IsOpen() {
		g.drawStore(screen)
	}
}

func drawPipe(dst *ebiten.Image, p *engine.Body) {
	c := pipeGreen
	if p.Name == flappy.PaletteRed.PipeKey(true) || p.Name == flappy.PaletteRed.PipeKey(false) {
		c = pipeRed
	}
	r := p.Rect()
	rect(dst, r.X, r.Y, r.W, r.H, c)
	frame(dst, r.X, r.Y, r.W, r.H, pipeEdge)

	capY := r.Y
	if flappy.IsTopPipe(p.Name) {
		capY = r.Bottom() - 24
	}
	rect(dst, r.X-3, capY, r.W+6, 24, c)
	frame(dst, r.X-3, capY, r.W+6, 24, pipeEdge)
}

func (g *Game) drawGround(dst *ebiten.Image) {
	top := g.cfg.World.GroundTop()
	w, h := g.cfg.World.Width, g.cfg.World.Height
	rect(dst, 0, top, w, h-top, dirt)
	rect(dst, 0, top, w, 12, grass)

	shift := 0
	if g.session.Ground().Anim() == flappy.AnimGroundMoving {
		shift = g.session.Frame() * 2 % 24
	}
	for x := -shift; x < int(w); x += 24 {
		rect(dst, float64(x), top, 12, 12, grassDark)
	}
	rect(dst, 0, top, w, 2, pipeEdge)
}

// birdImage returns the sprite for a bird color, built on first use.
func (g *Game) birdImage(c flappy.BirdColor, bw, bh int) *ebiten.Image {
	if img, ok := g.birds[c]; ok {
		return img
	}
	img := ebiten.NewImage(bw, bh)
	body := birdColors[c]
	vector.DrawFilledCircle(img, float32(bw)/2, float32(bh)/2, float32(bh)/2, body, true)
	vector.DrawFilledRect(img, 2, float32(bh)/2, float32(bw)/3, float32(bh)/4, color.White, false)
	vector.DrawFilledCircle(img, float32(bw)*0.7, float32(bh)*0.35, 4, color.White, true)
	vector.DrawFilledCircle(img, float32(bw)*0.75, float32(bh)*0.35, 2, color.Black, true)
	vector.DrawFilledRect(img, float32(bw)*0.8, float32(bh)*0.5, float32(bw)*0.2, 5, color.RGBA{0xf0, 0x80, 0x20, 0xff}, false)
	g.birds[c] = img
	return img
}

func (g *Game) drawBird(dst *ebiten.Image) {
	b := g.session.Player()
	img := g.birdImage(g.session.Bird(), int(b.W), int(b.H))

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-b.W/2, -b.H/2)
	op.GeoM.Rotate(b.Angle * math.Pi / 180)
	op.GeoM.Translate(b.Pos.X, b.Pos.Y)
	dst.DrawImage(img, op)
}

// drawScore draws every glyph with the scoreboard bitmap font.
func drawScore(dst *ebiten.Image, glyphs []flappy.Glyph) {
	const cell = 6
	for _, gl := range glyphs {
		left := gl.X - 1.5*cell
		top := gl.Y - 2.5*cell
		for row, line := range flappy.DigitFont[gl.Digit] {
			for col, ch := range line {
				if ch != '#' {
					continue
				}
				x, y := left+float64(col*cell), top+float64(row*cell)
				rect(dst, x-1, y-1, cell+2, cell+2, color.Black)
				rect(dst, x, y, cell, cell, color.White)
			}
		}
	}
}

func (g *Game) drawHUD(dst *ebiten.Image) {
	s := g.session
	hud := s.HUD()
	cx := g.cfg.World.Width / 2

	if hud.IdleMessage {
		title := "GET READY"
		if s.Ready() {
			title = "READY?"
		}
		rect(dst, cx-80, 150, 160, 52, backdrop)
		centeredText(dst, title, cx, 158)
		centeredText(dst, "Tap or press SPACE", cx, 178)
	}
	if hud.GameOverBanner {
		rect(dst, cx-80, 180, 160, 40, backdrop)
		centeredText(dst, "GAME OVER", cx, 192)
	}
	if hud.NewRecordText {
		rect(dst, cx-100, 250, 200, 24, color.Black)
		centeredText(dst, fmt.Sprintf("NEW RECORD! %d", s.HighScore()), cx, 254)
	}
	if hud.HighScoreText {
		label := fmt.Sprintf("Your Best: %d", s.HighScore())
		rect(dst, cx-float64(len(label)*charW)/2-5, 330, float64(len(label)*charW)+10, charH+8, color.RGBA{0xa0, 0xa0, 0xa0, 0xff})
		centeredText(dst, label, cx, 334)
	}

	for _, b := range s.Buttons() {
		rect(dst, b.X-b.HalfW, b.Y-b.HalfH, 2*b.HalfW, 2*b.HalfH, buttonBlue)
		centeredText(dst, b.Label, b.X, b.Y-charH/2)
	}
}

func (g *Game) drawStore(dst *ebiten.Image) {
	o := g.overlay
	w, h := g.cfg.World.Width, g.cfg.World.Height

	rect(dst, 0, 0, w, h, backdrop)
	centeredText(dst, "STORE", w/2, 40)

	cx, cy := o.CloseButton()
	rect(dst, cx-18, cy-15, 36, 30, closeRed)
	centeredText(dst, "X", cx, cy-charH/2)

	if text := o.StatusText(); text != "" {
		for i, line := range wrap(text, int(w)/charW-2) {
			centeredText(dst, line, w/2, h/2+float64(i*charH))
		}
		return
	}

	top, vh := o.ViewportTop(), o.ViewportHeight()
	list, ok := dst.SubImage(image.Rect(0, int(top), int(w), int(top+vh))).(*ebiten.Image)
	if !ok {
		return
	}

	size := float64(g.cfg.Store.ThumbSize)
	for i, item := range o.Items() {
		if !o.Visible(i) {
			continue
		}
		x, y, iw, ih := o.ItemLeft(), o.ItemTop(i), o.ItemWidth(), o.ItemHeight()
		rect(list, x, y, iw, ih, cardFill)
		border := cardBorder
		if i == o.Selected() {
			border = highlight
		}
		frame(list, x, y, iw, ih, border)

		tx, ty := x+10, y+(ih-size)/2-10
		g.drawThumb(list, item.ID, o.Thumb(item.ID), tx, ty, size)

		textX := int(tx + size + 10)
		ebitenutil.DebugPrintAt(list, shop.ItemName(item), textX, int(y)+14)
		ebitenutil.DebugPrintAt(list, shop.FormatPrice(item.Price), textX, int(y)+14+charH)

		bx, by, bw, bh := o.BuyButton(i)
		rect(list, bx, by, bw, bh, buyGreen)
		centeredText(list, "BUY", bx+bw/2, by+(bh-charH)/2)
	}
}

func (g *Game) drawThumb(dst *ebiten.Image, id string, t shop.Thumb, x, y, size float64) {
	switch t.State {
	case shop.ThumbLoading:
		rect(dst, x, y, size, size, placeholder)
		centeredText(dst, "...", x+size/2, y+size/2-charH/2)
	case shop.ThumbFailed:
		rect(dst, x, y, size, size, placeholder)
		vector.DrawFilledCircle(dst, float32(x+size/2), float32(y+size/2), 14, warning, true)
		centeredText(dst, "!", x+size/2, y+size/2-charH/2)
	case shop.ThumbReady:
		img, ok := g.thumbs[id]
		if !ok {
			img = ebiten.NewImageFromImage(t.Image)
			g.thumbs[id] = img
		}
		b := img.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(size/float64(b.Dx()), size/float64(b.Dy()))
		op.GeoM.Translate(x, y)
		dst.DrawImage(img, op)
	}
}

// wrap splits s into lines of at most width characters on word boundaries.
func wrap(s string, width int) []string {
	var lines []string
	var line string
	for _, word := range strings.Fields(s) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

package tui

import (
	"math"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/shop"
)

// Store layout in cells.
const (
	storeListTop = 3 // Box border, title and separator
	cardRows     = 4
	cardStride   = cardRows + 1
	thumbCols    = 4
	thumbRows    = 2
)

var loadingFrames = spinner.MiniDot

// panelRect is the part of a w x h screen the store covers. The dimmed game
// stays visible around it when there is room.
func panelRect(w, h int) core.Rect {
	if w >= 40 && h >= 14 {
		return core.NewRect(2, 1, w-4, h-2)
	}
	return core.NewRect(0, 0, w, h)
}

// storeSize returns the world-pixel size the overlay should assume for a
// screen of w x h cells, so that one card stride maps to cardStride rows.
func storeSize(cfg config.StoreConfig, w, h int) (float64, float64) {
	r := panelRect(w, h)
	rows := core.Max(cardStride, r.H-storeListTop-1)
	px := (cfg.ItemHeight + cfg.Padding) / cardStride
	return float64(r.W), cfg.TopMargin + cfg.BottomMargin + float64(rows)*px
}

// storeView draws the overlay onto a screen that already holds the
// dimmed game.
type storeView struct {
	overlay *shop.Overlay
	cfg     config.StoreConfig
	frame   int
}

func (v storeView) render(dst *core.Screen) {
	r := panelRect(dst.Width(), dst.Height())
	panel := core.NewScreen(r.W, r.H)
	v.draw(panel)
	for y := range r.H {
		for x := range r.W {
			cell := panel.GetCell(x, y)
			dst.SetColor(r.X+x, r.Y+y, cell.Rune, cell.Color)
		}
	}
}

func (v storeView) draw(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	dst.DrawBox(core.NewRect(0, 0, w, h), core.ColorCyan)
	dst.DrawTextCentered(1, "STORE", core.ColorBrightYellow)
	dst.DrawTextColor(w-6, 1, "[x]", core.ColorBrightRed)
	dst.DrawHLine(1, 2, w-2, '─', core.ColorCyan)

	if text := v.overlay.StatusText(); text != "" {
		if v.overlay.Status() == shop.StatusLoading {
			frames := loadingFrames.Frames
			text = frames[(v.frame/6)%len(frames)] + " " + text
		}
		dst.DrawTextCentered(h/2, text, core.ColorWhite)
		return
	}

	listBottom := h - 2
	px := (v.cfg.ItemHeight + v.cfg.Padding) / cardStride
	cardW := core.Max(20, int(math.Round(float64(w-2)*0.95)))
	left := 1 + (w-2-cardW)/2

	for i, item := range v.overlay.Items() {
		top := storeListTop + int(math.Round((v.overlay.ItemTop(i)-v.overlay.ViewportTop())/px))
		if top > listBottom || top+cardRows-1 < storeListTop {
			continue
		}
		c := clipped{dst: dst, top: storeListTop, bottom: listBottom}
		v.drawCard(c, left, top, cardW, i, item.ID, shop.ItemName(item), shop.FormatPrice(item.Price))
	}

	if lo := v.overlay.Scroll().Min(); lo < 0 {
		// Scroll position indicator on the right border.
		span := listBottom - storeListTop
		pos := storeListTop + int(math.Round(v.overlay.Scroll().Offset()/lo*float64(span)))
		dst.SetColor(w-1, pos, '┃', core.ColorBrightCyan)
	}
}

func (v storeView) drawCard(c clipped, x, y, w, i int, id, name, price string) {
	border := core.ColorGray
	if i == v.overlay.Selected() {
		border = core.ColorBrightYellow
	}

	c.set(x, y, '┌', border)
	c.set(x+w-1, y, '┐', border)
	c.set(x, y+cardRows-1, '└', border)
	c.set(x+w-1, y+cardRows-1, '┘', border)
	for dx := 1; dx < w-1; dx++ {
		c.set(x+dx, y, '─', border)
		c.set(x+dx, y+cardRows-1, '─', border)
	}
	for dy := 1; dy < cardRows-1; dy++ {
		c.set(x, y+dy, '│', border)
		c.set(x+w-1, y+dy, '│', border)
	}

	v.drawThumb(c, x+2, y+1, v.overlay.Thumb(id))

	textX := x + 3 + thumbCols
	c.text(textX, y+1, name, core.ColorBrightWhite)
	c.text(textX, y+2, price, core.ColorBrightGreen)

	buy := core.ColorWhite
	if i == v.overlay.Selected() {
		buy = core.ColorBrightYellow
	}
	c.text(x+w-10, y+2, "[ BUY ]", buy)
}

func (v storeView) drawThumb(c clipped, x, y int, t shop.Thumb) {
	switch t.State {
	case shop.ThumbLoading:
		for dy := range thumbRows {
			for dx := range thumbCols {
				c.set(x+dx, y+dy, '░', core.ColorGray)
			}
		}
	case shop.ThumbFailed:
		c.set(x+1, y, '⚠', core.ColorYellow)
	case shop.ThumbReady:
		cells := quantize(t.Image, thumbCols, thumbRows)
		for dy, row := range cells {
			for dx, col := range row {
				if col != core.ColorDefault {
					c.set(x+dx, y+dy, '█', col)
				}
			}
		}
	}
}

// clipped writes only inside rows [top, bottom].
type clipped struct {
	dst         *core.Screen
	top, bottom int
}

func (c clipped) set(x, y int, r rune, col core.Color) {
	if y >= c.top && y <= c.bottom {
		c.dst.SetColor(x, y, r, col)
	}
}

func (c clipped) text(x, y int, s string, col core.Color) {
	if y >= c.top && y <= c.bottom {
		c.dst.DrawTextColor(x, y, s, col)
	}
}

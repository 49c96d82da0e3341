package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/shop"
)

var gameKeys = map[ebiten.Key]core.Action{
	ebiten.KeySpace:   core.ActionFlap,
	ebiten.KeyArrowUp: core.ActionFlap,
	ebiten.KeyW:       core.ActionFlap,
	ebiten.KeyR:       core.ActionRestart,
	ebiten.KeyM:       core.ActionMenu,
	ebiten.KeyEscape:  core.ActionMenu,
	ebiten.KeyS:       core.ActionStore,
	ebiten.KeyT:       core.ActionTip,
	ebiten.KeyL:       core.ActionLogin,
}

// pointer is the mouse or the first touch, in screen coordinates.
type pointer struct {
	x, y                    int
	pressed, down, released bool
}

func readPointer() pointer {
	x, y := ebiten.CursorPosition()
	p := pointer{
		x:        x,
		y:        y,
		pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		down:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}

	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		p.x, p.y = ebiten.TouchPosition(ids[0])
		p.pressed, p.down = true, true
	} else if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		p.x, p.y = ebiten.TouchPosition(ids[0])
		p.down = true
	}
	if ids := inpututil.AppendJustReleasedTouchIDs(nil); len(ids) > 0 {
		p.released = true
	}
	return p
}

// updateGame reads input while the store is closed. A tap on a button runs
// its action; any other tap flaps.
func (g *Game) updateGame() {
	for k, a := range gameKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.dispatch(a)
		}
	}

	p := readPointer()
	if !p.pressed {
		return
	}
	if a, ok := g.session.ButtonAt(float64(p.x), float64(p.y)); ok {
		g.dispatch(a)
		return
	}
	g.input.Set(core.ActionFlap)
}

// updateStore reads input while the store is open.
func (g *Game) updateStore() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.overlay.Close()
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.overlay.SelectPrev()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		g.overlay.SelectNext()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		g.buy(g.overlay.Selected())
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		g.overlay.Wheel(dy * g.cfg.Store.WheelStep)
	}

	p := readPointer()
	x, y := float64(p.x), float64(p.y)
	switch {
	case p.pressed:
		hit := g.overlay.HitTest(x, y)
		switch hit.Kind {
		case shop.HitClose:
			g.overlay.Close()
		case shop.HitBuy:
			g.buy(hit.Index)
		case shop.HitItem:
			g.overlay.Press(y)
		}
	case p.down:
		g.overlay.Move(y)
	case p.released:
		g.overlay.Release()
	}
}

package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// Button is a clickable HUD element, centred at X, Y in world pixels.
type Button struct {
	Label  string
	Action core.Action
	X, Y   float64
	HalfW  float64
	HalfH  float64
}

// Contains reports whether a pointer at x, y is on the button.
func (b Button) Contains(x, y float64) bool {
	return x >= b.X-b.HalfW && x <= b.X+b.HalfW && y >= b.Y-b.HalfH && y <= b.Y+b.HalfH
}

// Button rows in world pixels.
const (
	tipButtonY     = 400
	storeButtonY   = 460
	restartButtonY = 410
	menuButtonY    = 470
	buttonHalfW    = 130
	buttonHalfH    = 22
)

// Buttons returns the buttons currently shown.
func (s *Session) Buttons() []Button {
	cx := s.cfg.World.Width / 2
	halfW := min(buttonHalfW, cx-4)
	button := func(label string, a core.Action, y float64) Button {
		return Button{Label: label, Action: a, X: cx, Y: y, HalfW: halfW, HalfH: buttonHalfH}
	}

	var out []Button
	if s.hud.TipButton {
		out = append(out, button("Tip Developer", core.ActionTip, tipButtonY))
	}
	if s.hud.StoreButton {
		out = append(out, button("Store", core.ActionStore, storeButtonY))
	}
	if s.hud.RestartButton {
		out = append(out, button("Play again", core.ActionRestart, restartButtonY))
	}
	if s.hud.MenuButton {
		out = append(out, button("Quit to Main", core.ActionMenu, menuButtonY))
	}
	return out
}

// ButtonAt returns the action of the visible button under x, y.
func (s *Session) ButtonAt(x, y float64) (core.Action, bool) {
	for _, b := range s.Buttons() {
		if b.Contains(x, y) {
			return b.Action, true
		}
	}
	return core.ActionNone, false
}

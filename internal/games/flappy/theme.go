package flappy

// State is the phase of the session.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePlaying:
		return "Playing"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// BirdColor is the bird skin, picked at random for each new bird.
type BirdColor int

const (
	BirdRed BirdColor = iota
	BirdBlue
	BirdYellow
)

// String returns the colour name.
func (c BirdColor) String() string {
	switch c {
	case BirdRed:
		return "red"
	case BirdBlue:
		return "blue"
	default:
		return "yellow"
	}
}

// Key returns the sprite key for the bird body.
func (c BirdColor) Key() string {
	return "bird-" + c.String()
}

// FlapAnim returns the wing-flapping animation key.
func (c BirdColor) FlapAnim() string {
	return c.Key() + "-flap"
}

// StopAnim returns the resting animation key played on game over.
func (c BirdColor) StopAnim() string {
	return c.Key() + "-stop"
}

// Palette is the pipe colour scheme.
type Palette int

const (
	PaletteGreen Palette = iota
	PaletteRed
)

// String returns the palette name.
func (p Palette) String() string {
	if p == PaletteRed {
		return "red"
	}
	return "green"
}

// Toggle returns the other palette.
func (p Palette) Toggle() Palette {
	if p == PaletteRed {
		return PaletteGreen
	}
	return PaletteRed
}

// PipeKey returns the sprite key for a top or bottom pipe.
func (p Palette) PipeKey(top bool) string {
	if top {
		return "pipe-" + p.String() + "-top"
	}
	return "pipe-" + p.String() + "-bottom"
}

// Sprite and animation keys for the static bodies.
const (
	KeyGround        = "ground"
	KeyGap           = "gap"
	AnimGroundMoving = "ground-moving"
	AnimGroundStop   = "ground-stop"
)

// HUD holds the visibility of every non-world element.
type HUD struct {
	IdleMessage    bool // "Get ready" prompt
	StoreButton    bool // Main menu store entry
	TipButton      bool // Main menu tip entry
	GameOverBanner bool
	NewRecordText  bool
	HighScoreText  bool
	RestartButton  bool
	MenuButton     bool
}

// ScoreHook receives every score change while playing. Implementations must
// not block.
type ScoreHook interface {
	SubmitScore(score int)
}

// NopScoreHook ignores scores.
type NopScoreHook struct{}

// SubmitScore does nothing.
func (NopScoreHook) SubmitScore(int) {}

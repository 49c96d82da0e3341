package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/engine"
)

// Player drives the bird body.
type Player struct {
	cfg   config.PlayerConfig
	body  *engine.Body
	color BirdColor
	grace int // Steps left before falling resumes after a flap
}

// NewPlayer creates the bird at its spawn point in the idle pose: wings
// flapping, gravity off.
func NewPlayer(cfg config.PlayerConfig, world *engine.World, color BirdColor) *Player {
	body := world.Add(color.Key(), cfg.X, cfg.Y, cfg.Width, cfg.Height)
	body.CollideWorldBounds = true
	body.Play(color.FlapAnim())
	return &Player{cfg: cfg, body: body, color: color}
}

// Launch puts the bird back on its spawn point at rest and enables gravity.
func (p *Player) Launch() {
	p.body.SetPosition(p.cfg.X, p.cfg.Y)
	p.body.Vel = engine.Vec{}
	p.body.Angle = 0
	p.body.AllowGravity = true
	p.grace = 0
}

// Flap gives the bird an upward kick and tilts it nose up.
func (p *Player) Flap() {
	p.body.SetVelocityY(p.cfg.FlapVelocity)
	p.body.Angle = p.cfg.FlapAngle
	p.grace = p.cfg.GraceFrames
}

// Tick runs once per step while playing. Outside the grace window the bird
// falls at a fixed speed and rotates towards nose down.
func (p *Player) Tick() {
	if p.grace > 0 {
		p.grace--
		return
	}
	p.body.SetVelocityY(p.cfg.FallVelocity)
	if p.body.Angle < p.cfg.MaxAngle {
		p.body.Angle += p.cfg.RotationStep
		if p.body.Angle > p.cfg.MaxAngle {
			p.body.Angle = p.cfg.MaxAngle
		}
	}
}

// Stop plays the resting animation.
func (p *Player) Stop() {
	p.body.Play(p.color.StopAnim())
}

// Destroy removes the bird and its colliders from the world.
func (p *Player) Destroy() {
	p.body.Destroy()
}

// Body returns the bird body.
func (p *Player) Body() *engine.Body {
	return p.body
}

// Color returns the bird skin.
func (p *Player) Color() BirdColor {
	return p.color
}

// Grace returns the remaining grace steps.
func (p *Player) Grace() int {
	return p.grace
}

package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/engine"
)

// Obstacles spawns, moves and removes pipe pairs and their gap sensors.
type Obstacles struct {
	cfg     config.ObstacleConfig
	rng     *rand.Rand
	pipes   *engine.Group
	gaps    *engine.Group
	counter int // Steps since the last spawn
	palette Palette
}

// NewObstacles creates a generator that adds bodies to world.
func NewObstacles(cfg config.ObstacleConfig, world *engine.World, rng *rand.Rand) *Obstacles {
	return &Obstacles{
		cfg:   cfg,
		rng:   rng,
		pipes: world.NewGroup(),
		gaps:  world.NewGroup(),
	}
}

// Tick advances the spawn cadence and spawns a pair when it is due.
// Returns true if a pair was spawned.
func (o *Obstacles) Tick() bool {
	o.counter++
	if o.counter < o.cfg.Cadence {
		return false
	}
	o.counter = 0
	o.Spawn()
	return true
}

// Spawn creates a top pipe, a bottom pipe and the invisible gap sensor
// between them, all at the right edge. Returns the vertical offset used.
func (o *Obstacles) Spawn() int {
	offset := o.cfg.OffsetMin
	if span := o.cfg.OffsetMax - o.cfg.OffsetMin; span > 0 {
		offset += o.rng.Intn(span + 1)
	}
	y := float64(offset)

	gap := o.gaps.Create(KeyGap, o.cfg.SpawnX, y+o.cfg.GapOffset, o.cfg.GapWidth, o.cfg.GapHeight)
	gap.Visible = false
	gap.SetVelocityX(o.cfg.Speed)

	top := o.pipes.Create(o.palette.PipeKey(true), o.cfg.SpawnX, y, o.cfg.PipeWidth, o.cfg.PipeHeight)
	top.SetVelocityX(o.cfg.Speed)

	bottom := o.pipes.Create(o.palette.PipeKey(false), o.cfg.SpawnX, y+o.cfg.Separation, o.cfg.PipeWidth, o.cfg.PipeHeight)
	bottom.SetVelocityX(o.cfg.Speed)

	return offset
}

// Sweep destroys bodies that left the screen and keeps the rest moving.
func (o *Obstacles) Sweep() {
	sweep := func(b *engine.Body) {
		if b.Pos.X < o.cfg.DespawnX {
			b.Destroy()
			return
		}
		b.SetVelocityX(o.cfg.Speed)
	}
	o.pipes.Each(sweep)
	o.gaps.Each(sweep)
}

// Clear removes every pipe and gap and restarts the cadence.
func (o *Obstacles) Clear() {
	o.pipes.Clear()
	o.gaps.Clear()
	o.counter = 0
}

// SetPalette selects the colour used for pipes spawned from now on.
func (o *Obstacles) SetPalette(p Palette) {
	o.palette = p
}

// GapBounds returns the top and bottom edge of the opening for a pair
// spawned with offset.
func (o *Obstacles) GapBounds(offset int) (top, bottom float64) {
	y := float64(offset)
	return y + o.cfg.PipeHeight/2, y + o.cfg.Separation - o.cfg.PipeHeight/2
}

// Pipes returns the live pipe bodies.
func (o *Obstacles) Pipes() []*engine.Body {
	return o.pipes.Bodies()
}

// Gaps returns the live gap sensors.
func (o *Obstacles) Gaps() []*engine.Body {
	return o.gaps.Bodies()
}

// PipeGroup is the collider target for the pipes.
func (o *Obstacles) PipeGroup() *engine.Group {
	return o.pipes
}

// GapGroup is the overlap target for the gap sensors.
func (o *Obstacles) GapGroup() *engine.Group {
	return o.gaps
}

// Package engine is a small arcade-physics world: bodies with velocity and
// optional gravity, groups, collider/overlap callbacks, pause/resume and named
// animations. It plays the part of the rendering/physics collaborator for the
// game and knows nothing about game rules.
package engine

import "github.com/vovakirdan/tui-flappy/internal/core"

// Vec is a 2D vector in world units.
type Vec struct {
	X, Y float64
}

// Body is a simulated object. Pos is the centre of its box.
type Body struct {
	Name string // Sprite/texture key used by renderers
	Pos  Vec
	Vel  Vec
	W, H float64

	Angle              float64 // Degrees, positive is clockwise (nose down)
	AllowGravity       bool
	CollideWorldBounds bool
	Visible            bool

	anim  string
	world *World
	alive bool
}

// Rect returns the body's bounding box.
func (b *Body) Rect() core.RectF {
	return core.RectAround(b.Pos.X, b.Pos.Y, b.W, b.H)
}

// Alive reports whether the body is still part of its world.
func (b *Body) Alive() bool {
	return b.alive
}

// Play switches the body to a named animation.
func (b *Body) Play(anim string) {
	b.anim = anim
}

// Anim returns the current animation key.
func (b *Body) Anim() string {
	return b.anim
}

// SetVelocityX sets the horizontal velocity.
func (b *Body) SetVelocityX(vx float64) {
	b.Vel.X = vx
}

// SetVelocityY sets the vertical velocity.
func (b *Body) SetVelocityY(vy float64) {
	b.Vel.Y = vy
}

// SetPosition moves the body's centre.
func (b *Body) SetPosition(x, y float64) {
	b.Pos = Vec{X: x, Y: y}
}

// Destroy removes the body and every collider that references it.
func (b *Body) Destroy() {
	if b.world != nil {
		b.world.Destroy(b)
	}
}

func (b *Body) members() []*Body {
	if !b.alive {
		return nil
	}
	return []*Body{b}
}

// Group is a set of bodies that can be cleared together and used as a
// collider target.
type Group struct {
	world  *World
	bodies []*Body
}

// Create adds a new body to the world and to the group.
func (g *Group) Create(name string, x, y, w, h float64) *Body {
	b := g.world.Add(name, x, y, w, h)
	g.bodies = append(g.bodies, b)
	return b
}

// Bodies returns the live members of the group.
func (g *Group) Bodies() []*Body {
	g.compact()
	out := make([]*Body, len(g.bodies))
	copy(out, g.bodies)
	return out
}

// Len returns the number of live members.
func (g *Group) Len() int {
	g.compact()
	return len(g.bodies)
}

// Each calls fn for every live member. Destroying bodies inside fn is safe.
func (g *Group) Each(fn func(*Body)) {
	for _, b := range g.Bodies() {
		if b.alive {
			fn(b)
		}
	}
}

// Clear destroys every member.
func (g *Group) Clear() {
	for _, b := range g.bodies {
		g.world.Destroy(b)
	}
	g.bodies = g.bodies[:0]
}

func (g *Group) members() []*Body {
	return g.Bodies()
}

func (g *Group) compact() {
	live := g.bodies[:0]
	for _, b := range g.bodies {
		if b.alive {
			live = append(live, b)
		}
	}
	g.bodies = live
}

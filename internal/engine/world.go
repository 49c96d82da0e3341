package engine

import "github.com/vovakirdan/tui-flappy/internal/core"

// Target is anything a collider can test against: a single Body or a Group.
type Target interface {
	members() []*Body
}

// Handler is invoked with the subject body and the member it touched.
type Handler func(subject, other *Body)

type pair struct {
	subject *Body
	target  Target
	fn      Handler
}

// World owns all bodies and advances them in fixed steps.
type World struct {
	Bounds  core.RectF
	Gravity float64 // Downward acceleration in units per second squared

	bodies []*Body
	pairs  []*pair
	paused bool
}

// NewWorld creates a world of the given size.
func NewWorld(width, height, gravity float64) *World {
	return &World{
		Bounds:  core.RectF{W: width, H: height},
		Gravity: gravity,
	}
}

// Add creates a visible body centred on (x, y).
func (w *World) Add(name string, x, y, width, height float64) *Body {
	b := &Body{
		Name:    name,
		Pos:     Vec{X: x, Y: y},
		W:       width,
		H:       height,
		Visible: true,
		world:   w,
		alive:   true,
	}
	w.bodies = append(w.bodies, b)
	return b
}

// NewGroup creates an empty group bound to this world.
func (w *World) NewGroup() *Group {
	return &Group{world: w}
}

// Collider registers fn to run on every step in which subject overlaps a
// member of target. Bodies are not separated; the handler decides what
// happens.
func (w *World) Collider(subject *Body, target Target, fn Handler) {
	w.pairs = append(w.pairs, &pair{subject: subject, target: target, fn: fn})
}

// Overlap registers a sensor callback. It shares the collider machinery
// since bodies are never separated.
func (w *World) Overlap(subject *Body, target Target, fn Handler) {
	w.Collider(subject, target, fn)
}

// Destroy removes a body from the world together with the colliders it
// is the subject of.
func (w *World) Destroy(b *Body) {
	if b == nil || !b.alive {
		return
	}
	b.alive = false

	live := w.bodies[:0]
	for _, other := range w.bodies {
		if other != b {
			live = append(live, other)
		}
	}
	w.bodies = live

	pairs := w.pairs[:0]
	for _, p := range w.pairs {
		if p.subject != b {
			pairs = append(pairs, p)
		}
	}
	w.pairs = pairs
}

// Pause stops Step from integrating or dispatching callbacks.
func (w *World) Pause() {
	w.paused = true
}

// Resume re-enables stepping.
func (w *World) Resume() {
	w.paused = false
}

// Paused reports whether the world is paused.
func (w *World) Paused() bool {
	return w.paused
}

// Len returns the number of live bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// Step integrates all bodies by dt seconds, then dispatches collider
// callbacks. A handler that pauses the world stops further dispatch.
func (w *World) Step(dt float64) {
	if w.paused {
		return
	}

	for _, b := range w.bodies {
		if b.AllowGravity {
			b.Vel.Y += w.Gravity * dt
		}
		b.Pos.X += b.Vel.X * dt
		b.Pos.Y += b.Vel.Y * dt
		if b.CollideWorldBounds {
			w.keepInside(b)
		}
	}

	pairs := make([]*pair, len(w.pairs))
	copy(pairs, w.pairs)
	for _, p := range pairs {
		if !p.subject.alive {
			continue
		}
		for _, other := range p.target.members() {
			if w.paused {
				return
			}
			if !p.subject.alive || !other.alive || other == p.subject {
				continue
			}
			if p.subject.Rect().Intersects(other.Rect()) {
				p.fn(p.subject, other)
			}
		}
	}
}

func (w *World) keepInside(b *Body) {
	halfW, halfH := b.W/2, b.H/2
	if b.Pos.X-halfW < w.Bounds.X {
		b.Pos.X = w.Bounds.X + halfW
		b.Vel.X = 0
	}
	if b.Pos.X+halfW > w.Bounds.Right() {
		b.Pos.X = w.Bounds.Right() - halfW
		b.Vel.X = 0
	}
	if b.Pos.Y-halfH < w.Bounds.Y {
		b.Pos.Y = w.Bounds.Y + halfH
		b.Vel.Y = 0
	}
	if b.Pos.Y+halfH > w.Bounds.Bottom() {
		b.Pos.Y = w.Bounds.Bottom() - halfH
		b.Vel.Y = 0
	}
}

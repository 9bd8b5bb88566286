// Package systems contains the per-tick math used by creatures: vision,
// movement, collision separation, energy-driven mutation and fitness.
package systems

import (
	"math"

	"github.com/Armando284/life-simulation/components"
)

// Bounds represents the simulation bounds.
type Bounds struct {
	Width, Height float64
}

// Clamp keeps p at least margin away from every wall.
func (b Bounds) Clamp(p components.Position, margin float64) components.Position {
	return components.Position{
		X: clamp(p.X, margin, b.Width-margin),
		Y: clamp(p.Y, margin, b.Height-margin),
	}
}

// SteeringVelocity maps the four movement outputs to a velocity of
// magnitude speed along (right-left, down-up). A zero or non-finite
// direction yields zero velocity.
func SteeringVelocity(up, down, left, right, speed float64) components.Velocity {
	dx := right - left
	dy := down - up
	mag := math.Hypot(dx, dy)
	if mag == 0 || !isFinite(mag) {
		return components.Velocity{}
	}
	return components.Velocity{X: dx / mag * speed, Y: dy / mag * speed}
}

// Step advances pos by vel and clamps it margin away from the walls.
func Step(pos components.Position, vel components.Velocity, margin float64, b Bounds) components.Position {
	return b.Clamp(components.Position{X: pos.X + vel.X, Y: pos.Y + vel.Y}, margin)
}

// Contact describes an overlap between two circles.
type Contact struct {
	NX, NY  float64 // unit vector from a to b
	Overlap float64 // sum of radii minus center distance
}

// Overlap tests two circles and returns the contact when they intersect.
// Coincident centers separate along +X.
func Overlap(a, b components.Position, ra, rb float64) (Contact, bool) {
	dx, dy := a.Delta(b)
	dist := math.Sqrt(dx*dx + dy*dy)
	minDist := ra + rb
	if dist >= minDist {
		return Contact{}, false
	}
	angle := math.Atan2(dy, dx)
	return Contact{NX: math.Cos(angle), NY: math.Sin(angle), Overlap: minDist - dist}, true
}

// Separate pushes a and b apart along the contact normal, each moving half
// the overlap.
func Separate(a, b *components.Position, c Contact) {
	half := c.Overlap * 0.5
	a.X -= c.NX * half
	a.Y -= c.NY * half
	b.X += c.NX * half
	b.Y += c.NY * half
}

// Bounce returns the post-collision velocities: each body moves away from
// the other at its own speed scaled by damping.
func Bounce(c Contact, speedA, speedB, damping float64) (va, vb components.Velocity) {
	va = components.Velocity{X: -c.NX * speedA * damping, Y: -c.NY * speedA * damping}
	vb = components.Velocity{X: c.NX * speedB * damping, Y: c.NY * speedB * damping}
	return va, vb
}

// FacingFromVelocity returns the sprite facing of a non-zero velocity:
// atan2(vy, vx) + π/2, so travel up gives 0. Sensors cast along this same
// angle without the quarter-turn correction.
func FacingFromVelocity(v components.Velocity) float64 {
	return math.Atan2(v.Y, v.X) + math.Pi/2
}

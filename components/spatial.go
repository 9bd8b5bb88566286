package components

import "math"

// Position represents an entity's world position.
type Position struct {
	X, Y float64
}

// Velocity represents an entity's per-tick displacement.
type Velocity struct {
	X, Y float64
}

// IsZero reports whether both velocity components are exactly zero.
func (v Velocity) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Speed returns the velocity magnitude.
func (v Velocity) Speed() float64 {
	return math.Hypot(v.X, v.Y)
}

// Delta returns the vector from p to q.
func (p Position) Delta(q Position) (dx, dy float64) {
	return q.X - p.X, q.Y - p.Y
}

// Distance returns the Euclidean distance between p and q.
func (p Position) Distance(q Position) float64 {
	dx, dy := p.Delta(q)
	return math.Sqrt(dx*dx + dy*dy)
}

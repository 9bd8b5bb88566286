package systems

import (
	"math"

	"github.com/Armando284/life-simulation/components"
)

// Cone describes one directional sensor relative to the viewer's facing.
type Cone struct {
	Offset float64 // radians from facing; negative is left
	Width  float64 // full angular width in radians
}

// The three creature sensors, each 60 degrees wide.
var (
	ConeFront = Cone{Offset: 0, Width: math.Pi / 3}
	ConeLeft  = Cone{Offset: -math.Pi / 2, Width: math.Pi / 3}
	ConeRight = Cone{Offset: math.Pi / 2, Width: math.Pi / 3}
)

// Cones lists the sensors in brain input order.
var Cones = [3]Cone{ConeFront, ConeLeft, ConeRight}

// ConeScan accumulates the closest entity inside one vision cone.
type ConeScan struct {
	origin     components.Position
	dir        float64 // world-space ray angle
	halfWidth  float64
	length     float64
	viewerSize float64

	wall    bool
	found   bool
	closest float64
}

// NewConeScan starts a scan for a viewer at pos. The ray is cast along
// facing + cone.Offset in world space (cos, sin), with y growing downwards.
// A ray whose endpoint leaves the world marks the cone as touching a wall,
// and the reading is then 1 regardless of observed entities.
func NewConeScan(pos components.Position, facing, viewerSize, length float64, cone Cone, bounds Bounds) ConeScan {
	dir := facing + cone.Offset
	endX := pos.X + math.Cos(dir)*length
	endY := pos.Y + math.Sin(dir)*length

	return ConeScan{
		origin:     pos,
		dir:        dir,
		halfWidth:  cone.Width / 2,
		length:     length,
		viewerSize: viewerSize,
		wall:       endX <= 0 || endX >= bounds.Width || endY <= 0 || endY >= bounds.Height,
		closest:    math.Inf(1),
	}
}

// Observe considers an entity at pos with the given size.
func (s *ConeScan) Observe(pos components.Position, size float64) {
	if s.wall {
		return
	}
	dx, dy := s.origin.Delta(pos)
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist >= s.length || !isFinite(dist) {
		return
	}
	if angleDiff(s.dir, math.Atan2(dy, dx)) > s.halfWidth {
		return
	}
	surface := math.Max(0, dist-(s.viewerSize+size))
	if surface < s.closest {
		s.closest = surface
		s.found = true
	}
}

// Reading returns 1 for touching (or a wall), 0 for nothing in range, and
// 1 - d/length in between.
func (s *ConeScan) Reading() float64 {
	if s.wall {
		return 1
	}
	if !s.found {
		return 0
	}
	return 1 - math.Min(1, s.closest/s.length)
}

// Wall reports whether the cone's ray left the world.
func (s *ConeScan) Wall() bool {
	return s.wall
}

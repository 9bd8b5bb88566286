package game

import "github.com/Armando284/life-simulation/components"

// Obstacle is anything a creature can see or touch. The set of
// implementations is closed: *Creature and *Food.
type Obstacle interface {
	Position() components.Position
	// Extent is the visual size used for surface distances in vision.
	Extent() float64
	// Radius is the collision radius.
	Radius() float64

	obstacle()
}

func (c *Creature) Position() components.Position { return c.Pos }
func (c *Creature) Extent() float64               { return c.Size }
func (c *Creature) Radius() float64               { return c.CollisionRadius }
func (c *Creature) obstacle()                     {}

func (f *Food) Position() components.Position { return f.Pos }
func (f *Food) Extent() float64               { return f.Size }
func (f *Food) Radius() float64               { return f.CollisionRadius }
func (f *Food) obstacle()                     {}

// buildObstacles returns creatures followed by food, the order every
// creature scans in.
func buildObstacles(creatures []*Creature, food []*Food) []Obstacle {
	obstacles := make([]Obstacle, 0, len(creatures)+len(food))
	for _, c := range creatures {
		obstacles = append(obstacles, c)
	}
	for _, f := range food {
		obstacles = append(obstacles, f)
	}
	return obstacles
}

package game

import (
	"fmt"
	"math/rand"

	"github.com/Armando284/life-simulation/components"
	"github.com/Armando284/life-simulation/config"
	"github.com/Armando284/life-simulation/neural"
	"github.com/Armando284/life-simulation/systems"
)

// Creature is an agent steered by its brain. Angle 0 faces up; y grows
// downwards.
type Creature struct {
	ID uint32
	components.Body

	Pos        components.Position
	PrevPos    components.Position
	InitialPos components.Position
	Vel        components.Velocity
	Angle      float64
	Speed      float64
	Color      string

	Energy components.Energy
	components.Stats

	Brain *neural.Network

	canEat  bool
	sensors [3]float64
	inputs  [config.BrainInputs]float64

	cfg    *config.Config
	bounds systems.Bounds
}

// CreatureState is a read-only view of a creature for renderers and logs.
type CreatureState struct {
	ID         uint32
	X, Y       float64
	Angle      float64
	Color      string
	Energy     float64
	MaxEnergy  float64
	FoodEaten  int
	Collisions int
	Sensors    [3]float64
}

// NewCreature creates a creature at pos with full energy. The brain is owned
// by the creature from then on.
func NewCreature(id uint32, pos components.Position, brain *neural.Network, color string, cfg *config.Config) *Creature {
	return &Creature{
		ID:         id,
		Body:       components.Body{Size: cfg.Creature.Size, CollisionRadius: cfg.Derived.CollisionRadius},
		Pos:        pos,
		PrevPos:    pos,
		InitialPos: pos,
		Speed:      cfg.Creature.Speed,
		Color:      color,
		Energy:     components.Full(cfg.Creature.MaxEnergy),
		Brain:      brain,
		canEat:     true,
		cfg:        cfg,
		bounds:     systems.Bounds{Width: cfg.World.Width, Height: cfg.World.Height},
	}
}

// Sense returns the front, left and right cone readings against obstacles.
// The creature itself and eaten food are ignored.
func (c *Creature) Sense(obstacles []Obstacle) [3]float64 {
	var readings [3]float64
	length := c.cfg.Derived.SensorLength
	for i, cone := range systems.Cones {
		scan := systems.NewConeScan(c.Pos, c.Angle, c.Size, length, cone, c.bounds)
		if !scan.Wall() {
			for _, o := range obstacles {
				if c.ignores(o) {
					continue
				}
				scan.Observe(o.Position(), o.Extent())
			}
		}
		readings[i] = scan.Reading()
	}
	return readings
}

// ignores reports whether o is this creature or eaten food.
func (c *Creature) ignores(o Obstacle) bool {
	if o == Obstacle(c) {
		return true
	}
	f, ok := o.(*Food)
	return ok && f.Despawned()
}

// Move turns the four brain outputs (up, down, left, right) into a velocity
// of magnitude Speed and steps, keeping Size away from the walls.
func (c *Creature) Move(outputs []float64) error {
	if len(outputs) != config.BrainOutputs {
		return fmt.Errorf("%w: %d movement outputs, want %d", neural.ErrDimensionMismatch, len(outputs), config.BrainOutputs)
	}
	c.Vel = systems.SteeringVelocity(outputs[0], outputs[1], outputs[2], outputs[3], c.Speed)
	c.Pos = systems.Step(c.Pos, c.Vel, c.Size, c.bounds)
	return nil
}

// HandleCollisions eats overlapping food and pushes apart overlapping
// creatures, then clamps the position by the collision radius.
func (c *Creature) HandleCollisions(obstacles []Obstacle) {
	damping := c.cfg.Creature.CollisionDamping
	for _, o := range obstacles {
		if c.ignores(o) {
			continue
		}
		contact, hit := systems.Overlap(c.Pos, o.Position(), c.CollisionRadius, o.Radius())
		if !hit {
			continue
		}
		switch other := o.(type) {
		case *Food:
			c.Eat(other)
		case *Creature:
			c.Collisions++
			other.Collisions++
			systems.Separate(&c.Pos, &other.Pos, contact)
			c.Vel, other.Vel = systems.Bounce(contact, c.Speed, other.Speed, damping)
			other.Pos = c.bounds.Clamp(other.Pos, other.CollisionRadius)
		}
	}
	c.Pos = c.bounds.Clamp(c.Pos, c.CollisionRadius)
}

// Eat consumes f. The canEat guard makes a nested call during the same
// feeding a no-op.
func (c *Creature) Eat(f *Food) {
	if !c.canEat || f.Despawned() {
		return
	}
	c.canEat = false
	c.FoodEaten++
	c.Energy.Gain(c.cfg.Creature.FoodEnergy)
	f.Despawn()
	c.canEat = true
}

// Update advances the creature one tick: decay, sense, think, move,
// collide, then face the direction of travel.
func (c *Creature) Update(obstacles []Obstacle) error {
	c.Energy.Drain(c.cfg.Creature.EnergyDecay)
	c.PrevPos = c.Pos

	c.sensors = c.Sense(obstacles)
	c.inputs = [config.BrainInputs]float64{
		c.sensors[0], c.sensors[1], c.sensors[2],
		float64(c.FoodEaten),
		c.Energy.Value,
	}

	outputs, err := c.Brain.Infer(c.inputs[:])
	if err != nil {
		return fmt.Errorf("creature %d: %w", c.ID, err)
	}
	if err := c.Move(outputs); err != nil {
		return fmt.Errorf("creature %d: %w", c.ID, err)
	}

	c.HandleCollisions(obstacles)

	if !c.Vel.IsZero() {
		c.Angle = systems.FacingFromVelocity(c.Vel)
	}
	return nil
}

// Clone creates an offspring at pos with a copy of the brain and color.
// With probability CloneChance the offspring is mutated with its own
// stats: full energy and no food, so the base rate and scale apply.
func (c *Creature) Clone(rng *rand.Rand, id uint32, pos components.Position) *Creature {
	child := NewCreature(id, pos, c.Brain.Clone(), c.Color, c.cfg)
	if rng.Float64() < c.cfg.Mutation.CloneChance {
		child.Mutate(rng)
	}
	return child
}

// Mutate perturbs the brain with a rate driven by missing energy and a
// scale driven by food eaten, and nudges the color.
func (c *Creature) Mutate(rng *rand.Rand) {
	rate, scale := systems.MutationParams(c.Energy.Value, c.Energy.Max, c.FoodEaten, c.cfg.Mutation)
	c.Brain.Mutate(rng, rate, scale)
	c.Color = systems.NudgeColor(rng, c.Color)
}

// Sensors returns the readings from the last Update.
func (c *Creature) Sensors() [3]float64 {
	return c.sensors
}

// State returns a snapshot of the creature's externally visible state.
func (c *Creature) State() CreatureState {
	return CreatureState{
		ID:         c.ID,
		X:          c.Pos.X,
		Y:          c.Pos.Y,
		Angle:      c.Angle,
		Color:      c.Color,
		Energy:     c.Energy.Value,
		MaxEnergy:  c.Energy.Max,
		FoodEaten:  c.FoodEaten,
		Collisions: c.Collisions,
		Sensors:    c.sensors,
	}
}

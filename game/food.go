package game

import (
	"math/rand"

	"github.com/Armando284/life-simulation/components"
	"github.com/Armando284/life-simulation/config"
	"github.com/Armando284/life-simulation/systems"
)

// Off-world position of eaten food. It is far enough away that no sensor
// ray or collision radius can reach it.
const (
	DespawnX = -1e9
	DespawnY = -1e9
)

// Food is a consumable pellet. Eaten food is moved off-world instead of
// being removed, so slice indices stay stable for the whole generation.
type Food struct {
	components.Body
	Pos components.Position

	bounds systems.Bounds
}

// NewFood creates a despawned pellet sized from cfg; call Respawn to place it.
func NewFood(cfg *config.Config) *Food {
	return &Food{
		Body:   components.Body{Size: cfg.Food.Size, CollisionRadius: cfg.Derived.FoodCollisionRadius},
		Pos:    components.Position{X: DespawnX, Y: DespawnY},
		bounds: systems.Bounds{Width: cfg.World.Width, Height: cfg.World.Height},
	}
}

// Respawn places the pellet at x in [0, bias*width), y in [0, height).
func (f *Food) Respawn(rng *rand.Rand, bias float64) {
	f.Pos = components.Position{
		X: rng.Float64() * bias * f.bounds.Width,
		Y: rng.Float64() * f.bounds.Height,
	}
}

// Despawn moves the pellet off-world.
func (f *Food) Despawn() {
	f.Pos = components.Position{X: DespawnX, Y: DespawnY}
}

// Despawned reports whether the pellet has been eaten.
func (f *Food) Despawned() bool {
	return f.Pos.X == DespawnX && f.Pos.Y == DespawnY
}

package game

import (
	"fmt"

	"github.com/Armando284/life-simulation/components"
	"github.com/Armando284/life-simulation/config"
	"github.com/Armando284/life-simulation/telemetry"
)

// Restore rebuilds a running game from a snapshot. The random source comes
// from opts, so a resumed run does not replay the draws of the saved run.
// The food count follows the snapshot, not cfg.
func Restore(cfg *config.Config, snap *telemetry.Snapshot, opts Options) (*Game, error) {
	if snap.WorldWidth != cfg.World.Width || snap.WorldHeight != cfg.World.Height {
		return nil, fmt.Errorf("%w: snapshot world %vx%v, config %vx%v",
			config.ErrInvalid, snap.WorldWidth, snap.WorldHeight, cfg.World.Width, cfg.World.Height)
	}

	g, err := newGame(cfg, opts)
	if err != nil {
		return nil, err
	}
	g.generation = snap.Generation
	g.tick = snap.Tick
	g.nextID = snap.NextID

	g.creatures = make([]*Creature, len(snap.Creatures))
	for i, cs := range snap.Creatures {
		brain, err := g.newBrain()
		if err != nil {
			return nil, err
		}
		if err := brain.SetModel(cs.Brain); err != nil {
			return nil, fmt.Errorf("creature %d: %w", cs.ID, err)
		}
		c := NewCreature(cs.ID, components.Position{X: cs.X, Y: cs.Y}, brain, cs.Color, cfg)
		c.PrevPos = c.Pos
		c.InitialPos = components.Position{X: cs.InitialX, Y: cs.InitialY}
		c.Vel = components.Velocity{X: cs.VelX, Y: cs.VelY}
		c.Angle = cs.Angle
		c.Energy.Value = cs.Energy
		c.FoodEaten = cs.FoodEaten
		c.Collisions = cs.Collisions
		g.creatures[i] = c
	}

	g.food = make([]*Food, len(snap.Food))
	for i, fs := range snap.Food {
		f := NewFood(cfg)
		if !fs.Despawned {
			f.Pos = components.Position{X: fs.X, Y: fs.Y}
		}
		g.food[i] = f
	}

	g.obstacles = buildObstacles(g.creatures, g.food)
	g.state = StateRunning
	if limit := cfg.Population.MaxGenerations; limit > 0 && g.generation >= limit {
		g.state = StateFinished
	}

	g.logger.Info("simulation restored",
		"generation", g.generation,
		"tick", g.tick,
		"population", len(g.creatures),
	)
	return g, nil
}

package game

import (
	"errors"
	"fmt"

	"github.com/Armando284/life-simulation/components"
	"github.com/Armando284/life-simulation/neural"
	"github.com/Armando284/life-simulation/systems"
	"github.com/Armando284/life-simulation/telemetry"
)

// newBrain builds a network of the configured shape, zeroed or He-initialized.
func (g *Game) newBrain() (*neural.Network, error) {
	brain, err := neural.NewNetwork(g.cfg.Derived.BrainShape, g.brainOpts, g.rng)
	if err != nil {
		return nil, fmt.Errorf("creating brain: %w", err)
	}
	if g.cfg.Neural.Init == "he" {
		brain.Randomize(g.rng)
	}
	return brain, nil
}

// spawnPosition draws a point in the spawn strip, clamped off the walls.
func (g *Game) spawnPosition() components.Position {
	p := g.cfg.Population
	minX := p.SpawnMinX * g.bounds.Width
	maxX := p.SpawnMaxX * g.bounds.Width
	pos := components.Position{
		X: minX + g.rng.Float64()*(maxX-minX),
		Y: g.rng.Float64() * g.bounds.Height,
	}
	return g.bounds.Clamp(pos, g.cfg.Creature.Size)
}

func (g *Game) newID() uint32 {
	id := g.nextID
	g.nextID++
	return id
}

// spawnFounder creates a creature with a fresh brain, optionally loaded from
// model, and mutates it once for diversity.
func (g *Game) spawnFounder(model *neural.Model) (*Creature, error) {
	brain, err := g.newBrain()
	if err != nil {
		return nil, err
	}
	color := systems.RandomColor(g.rng)
	if model != nil {
		if err := brain.SetModel(*model); err != nil {
			return nil, fmt.Errorf("loading seed model: %w", err)
		}
	}

	c := NewCreature(g.newID(), g.spawnPosition(), brain, color, g.cfg)
	c.Mutate(g.rng)
	return c, nil
}

// endGeneration scores the population, selects parents and swaps in the
// next generation. On error nothing is swapped and the game is left
// Running.
func (g *Game) endGeneration() (stats telemetry.GenerationStats, err error) {
	defer func() {
		if err != nil {
			g.state = StateRunning
		}
	}()

	g.state = StateSelecting
	g.timer.StartPhase(telemetry.PhaseSelection)

	scored := Score(g.creatures, g.cfg)
	stats = telemetry.Summarize(g.generation, g.tick, samples(scored, g.cfg.World.Width))
	stats.FoodBias = g.foodBias()

	parents, err := SelectParents(scored)

	g.state = StateReproducing
	g.timer.StartPhase(telemetry.PhaseReproduction)

	var next []*Creature
	switch {
	case errors.Is(err, ErrNoEligibleParents):
		g.logger.Warn("no eligible parents, reseeding",
			"generation", g.generation,
			"population", len(g.creatures),
			"hall_of_fame", g.hofLen(),
		)
		next, err = g.reseed()
		if err != nil {
			return stats, fmt.Errorf("generation %d: %w", g.generation, err)
		}
		stats.Reseeded = true
	case err != nil:
		return stats, fmt.Errorf("generation %d: %w", g.generation, err)
	default:
		next = g.reproduce(parents)
	}

	// Past the last failure point: a retried boundary records nothing twice.
	g.recordBest(scored)
	stats.Parents = len(parents)
	stats.Offspring = len(next)
	stats.HallOfFameSize = g.hofLen()

	g.generation++
	g.tick = 0
	g.creatures = next
	g.respawnFood()
	g.obstacles = buildObstacles(g.creatures, g.food)
	g.state = StateRunning
	return stats, nil
}

// reproduce clones each parent ceil(PopulationSize/len(parents)) times at
// fresh spawn positions.
func (g *Game) reproduce(parents []Scored) []*Creature {
	per := OffspringPerParent(g.cfg.Population.Size, len(parents))
	next := make([]*Creature, 0, per*len(parents))
	for _, p := range parents {
		for i := 0; i < per; i++ {
			id := g.newID()
			pos := g.spawnPosition()
			next = append(next, p.Creature.Clone(g.rng, id, pos))
		}
	}
	return next
}

// reseed builds exactly PopulationSize founders, drawing brains from the
// hall of fame when it has entries.
func (g *Game) reseed() ([]*Creature, error) {
	next := make([]*Creature, 0, g.cfg.Population.Size)
	for i := 0; i < g.cfg.Population.Size; i++ {
		var model *neural.Model
		if g.hof != nil {
			if e, ok := g.hof.Sample(); ok {
				model = &e.Model
			}
		}
		c, err := g.spawnFounder(model)
		if err != nil {
			return nil, fmt.Errorf("reseeding: %w", err)
		}
		next = append(next, c)
	}
	return next, nil
}

// recordBest offers eligible creatures to the hall of fame and tracks the
// fittest creature of the run.
func (g *Game) recordBest(scored []Scored) {
	top := -1
	for i, s := range scored {
		if top < 0 || s.Fitness > scored[top].Fitness {
			top = i
		}
		if g.hof != nil && s.Eligible {
			g.hof.Consider(g.entry(s))
		}
	}

	if top >= 0 && (!g.hasBest || scored[top].Fitness > g.best.Fitness) {
		g.best = g.entry(scored[top])
		g.hasBest = true
	}
}

func (g *Game) entry(s Scored) telemetry.HallEntry {
	c := s.Creature
	return telemetry.HallEntry{
		Model:      c.Brain.Model(),
		Fitness:    s.Fitness,
		Generation: g.generation,
		CreatureID: c.ID,
		FoodEaten:  c.FoodEaten,
		Collisions: c.Collisions,
		Color:      c.Color,
	}
}

func (g *Game) hofLen() int {
	if g.hof == nil {
		return 0
	}
	return g.hof.Len()
}

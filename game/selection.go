package game

import (
	"errors"
	"sort"

	"github.com/Armando284/life-simulation/config"
	"github.com/Armando284/life-simulation/systems"
	"github.com/Armando284/life-simulation/telemetry"
)

// ErrNoEligibleParents is returned by SelectParents when no creature reached
// the goal region with food eaten.
var ErrNoEligibleParents = errors.New("no eligible parents")

// Scored pairs a creature with its end-of-generation evaluation.
type Scored struct {
	Creature *Creature
	Fitness  float64
	Eligible bool
}

// Score evaluates every creature, preserving slice order.
func Score(creatures []*Creature, cfg *config.Config) []Scored {
	scored := make([]Scored, len(creatures))
	for i, c := range creatures {
		scored[i] = Scored{
			Creature: c,
			Fitness: systems.Fitness(systems.FitnessInput{
				X:          c.Pos.X,
				InitialX:   c.InitialPos.X,
				WorldWidth: cfg.World.Width,
				Energy:     c.Energy.Value,
				MaxEnergy:  c.Energy.Max,
				FoodEaten:  c.FoodEaten,
				Collisions: c.Collisions,
			}, cfg.Fitness),
			Eligible: systems.Eligible(c.Pos.X, cfg.World.Width, c.FoodEaten, cfg.Fitness),
		}
	}
	return scored
}

// SelectParents returns the fittest half (rounded up) of the eligible
// creatures, best first. Ties keep slice order.
func SelectParents(scored []Scored) ([]Scored, error) {
	eligible := make([]Scored, 0, len(scored))
	for _, s := range scored {
		if s.Eligible {
			eligible = append(eligible, s)
		}
	}
	if len(eligible) == 0 {
		return nil, ErrNoEligibleParents
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Fitness > eligible[j].Fitness
	})
	return eligible[:(len(eligible)+1)/2], nil
}

// OffspringPerParent is ceil(populationSize / parents). The resulting
// population may exceed populationSize.
func OffspringPerParent(populationSize, parents int) int {
	if parents <= 0 {
		return 0
	}
	return (populationSize + parents - 1) / parents
}

// samples converts scores into telemetry samples.
func samples(scored []Scored, worldWidth float64) []telemetry.CreatureSample {
	out := make([]telemetry.CreatureSample, len(scored))
	for i, s := range scored {
		c := s.Creature
		out[i] = telemetry.CreatureSample{
			Fitness:    s.Fitness,
			Energy:     c.Energy.Fraction(),
			Progress:   (c.Pos.X - c.InitialPos.X) / worldWidth,
			FoodEaten:  c.FoodEaten,
			Collisions: c.Collisions,
			Eligible:   s.Eligible,
		}
	}
	return out
}

package systems

import "github.com/Armando284/life-simulation/config"

// FitnessInput holds the signals scored at a generation boundary.
type FitnessInput struct {
	X, InitialX float64
	WorldWidth  float64
	Energy      float64
	MaxEnergy   float64
	FoodEaten   int
	Collisions  int
}

// Fitness combines rightward progress, remaining energy and food eaten,
// penalized by collisions.
func Fitness(in FitnessInput, w config.FitnessConfig) float64 {
	progress := 0.0
	if in.WorldWidth > 0 {
		progress = (in.X - in.InitialX) / in.WorldWidth
	}
	energy := 0.0
	if in.MaxEnergy > 0 {
		energy = in.Energy / in.MaxEnergy
	}
	return w.ProgressWeight*progress +
		w.EnergyWeight*energy +
		w.FoodWeight*float64(in.FoodEaten) -
		w.CollisionWeight*float64(in.Collisions)
}

// Eligible reports whether a creature may reproduce: it must end in the
// goal region and have eaten at least once.
func Eligible(x, worldWidth float64, foodEaten int, w config.FitnessConfig) bool {
	return x > w.GoalFraction*worldWidth && foodEaten >= 1
}

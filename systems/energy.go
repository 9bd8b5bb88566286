package systems

import "github.com/Armando284/life-simulation/config"

// MutationParams derives a creature's mutation rate and scale from its
// realized state: a hungrier creature explores more often, a well-fed one
// explores further.
func MutationParams(energy, maxEnergy float64, foodEaten int, cfg config.MutationConfig) (rate, scale float64) {
	frac := 0.0
	if maxEnergy > 0 {
		frac = clamp01(energy / maxEnergy)
	}
	rate = clamp01(cfg.BaseRate + (1-frac)*cfg.EnergyRateFactor)
	scale = cfg.BaseScale + float64(foodEaten)/cfg.FoodScaleDivisor
	return rate, scale
}

package main

import (
	"github.com/Armando284/life-simulation/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters: the
// mutation schedule and the selection weights.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Mutation
			{Name: "clone_chance", Path: "mutation.clone_chance", Min: 0.0, Max: 0.5, Default: 0.1},
			{Name: "base_rate", Path: "mutation.base_rate", Min: 0.0, Max: 0.3, Default: 0.05},
			{Name: "energy_rate_factor", Path: "mutation.energy_rate_factor", Min: 0.0, Max: 0.3, Default: 0.1},
			{Name: "base_scale", Path: "mutation.base_scale", Min: 0.01, Max: 0.5, Default: 0.1},
			{Name: "food_scale_divisor", Path: "mutation.food_scale_divisor", Min: 1, Max: 50, Default: 10},
			// Fitness weights
			{Name: "progress_weight", Path: "fitness.progress_weight", Min: 0, Max: 200, Default: 100},
			{Name: "energy_weight", Path: "fitness.energy_weight", Min: 0, Max: 50, Default: 20},
			{Name: "food_weight", Path: "fitness.food_weight", Min: 0, Max: 60, Default: 25},
			{Name: "collision_weight", Path: "fitness.collision_weight", Min: 0, Max: 5, Default: 0.5},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies clamped parameter values to cfg. Order must match Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)

	cfg.Mutation.CloneChance = c[0]
	cfg.Mutation.BaseRate = c[1]
	cfg.Mutation.EnergyRateFactor = c[2]
	cfg.Mutation.BaseScale = c[3]
	cfg.Mutation.FoodScaleDivisor = c[4]

	cfg.Fitness.ProgressWeight = c[5]
	cfg.Fitness.EnergyWeight = c[6]
	cfg.Fitness.FoodWeight = c[7]
	cfg.Fitness.CollisionWeight = c[8]
}

// ExtractFromConfig extracts current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Mutation.CloneChance,
		cfg.Mutation.BaseRate,
		cfg.Mutation.EnergyRateFactor,
		cfg.Mutation.BaseScale,
		cfg.Mutation.FoodScaleDivisor,
		cfg.Fitness.ProgressWeight,
		cfg.Fitness.EnergyWeight,
		cfg.Fitness.FoodWeight,
		cfg.Fitness.CollisionWeight,
	}
}

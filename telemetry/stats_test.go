package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.0},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.0},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeDistribution(t *testing.T) {
	values := []float64{0.5, 0.1, 0.9, 0.3, 0.7}
	mean, std, p10, p50, p90 := ComputeDistribution(values)

	if math.Abs(mean-0.5) > 1e-9 {
		t.Errorf("mean = %v, want 0.5", mean)
	}
	// Sample standard deviation of {0.1,0.3,0.5,0.7,0.9}
	if want := math.Sqrt(0.1); math.Abs(std-want) > 1e-9 {
		t.Errorf("std = %v, want %v", std, want)
	}
	if p10 != 0.1 || p50 != 0.5 || p90 != 0.9 {
		t.Errorf("percentiles = %v/%v/%v, want 0.1/0.5/0.9", p10, p50, p90)
	}

	// Input must not be reordered.
	if values[0] != 0.5 || values[1] != 0.1 {
		t.Errorf("input was modified: %v", values)
	}
}

func TestComputeDistributionSmall(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeDistribution(nil)
	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}

	mean, std, p10, p50, p90 = ComputeDistribution([]float64{3})
	if mean != 3 || std != 0 || p10 != 3 || p50 != 3 || p90 != 3 {
		t.Errorf("single value: got %v %v %v %v %v", mean, std, p10, p50, p90)
	}
}

func TestSummarize(t *testing.T) {
	samples := []CreatureSample{
		{Fitness: 10, Energy: 1, Progress: 0.5, FoodEaten: 2, Collisions: 1, Eligible: true},
		{Fitness: -2, Energy: 0.5, Progress: 0, FoodEaten: 0, Collisions: 3},
		{Fitness: 4, Energy: 0, Progress: 0.1, FoodEaten: 1, Collisions: 2, Eligible: true},
	}

	s := Summarize(7, 1500, samples)

	if s.Generation != 7 || s.Ticks != 1500 {
		t.Errorf("generation/ticks = %d/%d", s.Generation, s.Ticks)
	}
	if s.Population != 3 {
		t.Errorf("population = %d, want 3", s.Population)
	}
	if s.Eligible != 2 {
		t.Errorf("eligible = %d, want 2", s.Eligible)
	}
	if s.FoodEaten != 3 {
		t.Errorf("food eaten = %d, want 3", s.FoodEaten)
	}
	if s.FitnessMax != 10 {
		t.Errorf("fitness max = %v, want 10", s.FitnessMax)
	}
	if math.Abs(s.FitnessMean-4) > 1e-9 {
		t.Errorf("fitness mean = %v, want 4", s.FitnessMean)
	}
	if s.FitnessP50 != 4 {
		t.Errorf("fitness p50 = %v, want 4", s.FitnessP50)
	}
	if math.Abs(s.EnergyMean-0.5) > 1e-9 {
		t.Errorf("energy mean = %v, want 0.5", s.EnergyMean)
	}
	if math.Abs(s.CollisionsMean-2) > 1e-9 {
		t.Errorf("collisions mean = %v, want 2", s.CollisionsMean)
	}
	if math.Abs(s.ProgressMean-0.2) > 1e-9 {
		t.Errorf("progress mean = %v, want 0.2", s.ProgressMean)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(1, 10, nil)
	if s.Population != 0 || s.FitnessMax != 0 || s.Eligible != 0 {
		t.Errorf("empty summary = %+v", s)
	}
}

func TestGenerationStatsLogValue(t *testing.T) {
	s := GenerationStats{Generation: 3, Population: 60, Reseeded: true}
	v := s.LogValue()

	found := map[string]bool{}
	for _, a := range v.Group() {
		found[a.Key] = true
	}
	for _, key := range []string{"generation", "population", "reseeded", "fitness_max", "hall_of_fame", "timing"} {
		if !found[key] {
			t.Errorf("missing attribute %q", key)
		}
	}
}

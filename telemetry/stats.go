package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// CreatureSample is one creature's outcome at a generation boundary.
type CreatureSample struct {
	Fitness    float64
	Energy     float64 // fraction of max energy
	Progress   float64 // (X - InitialX) / world width
	FoodEaten  int
	Collisions int
	Eligible   bool
}

// GenerationStats holds aggregated statistics for one finished generation.
type GenerationStats struct {
	Generation int `csv:"generation"`
	Ticks      int `csv:"ticks"`

	// Population and selection
	Population int  `csv:"population"`
	Eligible   int  `csv:"eligible"`
	Parents    int  `csv:"parents"`
	Offspring  int  `csv:"offspring"`
	Reseeded   bool `csv:"reseeded"`

	// Fitness distribution
	FitnessMax  float64 `csv:"fitness_max"`
	FitnessMean float64 `csv:"fitness_mean"`
	FitnessStd  float64 `csv:"fitness_std"`
	FitnessP50  float64 `csv:"fitness_p50"`

	// Energy distribution (fraction of max)
	EnergyMean float64 `csv:"energy_mean"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	// Behaviour
	ProgressMean   float64 `csv:"progress_mean"`
	FoodEaten      int     `csv:"food_eaten"`
	CollisionsMean float64 `csv:"collisions_mean"`

	FoodBias       float64 `csv:"food_bias"`
	HallOfFameSize int     `csv:"hall_of_fame_size"`

	// Timing over the generation's ticks
	TickMeanMs     float64 `csv:"tick_mean_ms"`
	TickMaxMs      float64 `csv:"tick_max_ms"`
	TicksPerSecond float64 `csv:"ticks_per_second"`
	UpdateShare    float64 `csv:"update_share"`
	BoundaryMs     float64 `csv:"boundary_ms"` // selection + reproduction
}

// Percentile returns the empirical p-quantile of a sorted slice.
// p should be in [0, 1]. Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	switch {
	case p <= 0:
		return sorted[0]
	case p >= 1:
		return sorted[len(sorted)-1]
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeDistribution returns the mean, standard deviation and the 10th,
// 50th and 90th percentiles of values. values is not modified.
func ComputeDistribution(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}
	if n == 1 {
		v := values[0]
		return v, 0, v, v, v
	}

	mean, std = stat.MeanStdDev(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, std, Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// Summarize builds the distribution part of GenerationStats from the
// per-creature samples. Selection and reproduction counts are filled in by
// the caller.
func Summarize(generation, ticks int, samples []CreatureSample) GenerationStats {
	s := GenerationStats{
		Generation: generation,
		Ticks:      ticks,
		Population: len(samples),
	}
	if len(samples) == 0 {
		return s
	}

	fitness := make([]float64, len(samples))
	energy := make([]float64, len(samples))
	progress := make([]float64, len(samples))
	collisions := make([]float64, len(samples))
	for i, c := range samples {
		fitness[i] = c.Fitness
		energy[i] = c.Energy
		progress[i] = c.Progress
		collisions[i] = float64(c.Collisions)
		s.FoodEaten += c.FoodEaten
		if c.Eligible {
			s.Eligible++
		}
	}

	s.FitnessMax = floats.Max(fitness)
	s.FitnessMean, s.FitnessStd, _, s.FitnessP50, _ = ComputeDistribution(fitness)
	s.EnergyMean, _, s.EnergyP10, s.EnergyP50, s.EnergyP90 = ComputeDistribution(energy)
	s.ProgressMean = stat.Mean(progress, nil)
	s.CollisionsMean = stat.Mean(collisions, nil)

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("ticks", s.Ticks),
		slog.Int("population", s.Population),
		slog.Int("eligible", s.Eligible),
		slog.Int("parents", s.Parents),
		slog.Int("offspring", s.Offspring),
		slog.Bool("reseeded", s.Reseeded),
		slog.Float64("fitness_max", s.FitnessMax),
		slog.Float64("fitness_mean", s.FitnessMean),
		slog.Float64("fitness_std", s.FitnessStd),
		slog.Float64("fitness_p50", s.FitnessP50),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_p10", s.EnergyP10),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("energy_p90", s.EnergyP90),
		slog.Float64("progress_mean", s.ProgressMean),
		slog.Int("food_eaten", s.FoodEaten),
		slog.Float64("collisions_mean", s.CollisionsMean),
		slog.Float64("food_bias", s.FoodBias),
		slog.Int("hall_of_fame", s.HallOfFameSize),
		slog.Group("timing",
			slog.Float64("tick_mean_ms", s.TickMeanMs),
			slog.Float64("tick_max_ms", s.TickMaxMs),
			slog.Float64("ticks_per_sec", s.TicksPerSecond),
			slog.Float64("update_share", s.UpdateShare),
			slog.Float64("boundary_ms", s.BoundaryMs),
		),
	)
}

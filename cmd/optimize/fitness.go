package main

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/Armando284/life-simulation/config"
	"github.com/Armando284/life-simulation/game"
	"github.com/Armando284/life-simulation/telemetry"
)

// FitnessEvaluator runs headless simulations and scores a parameter vector.
type FitnessEvaluator struct {
	params      *ParamVector
	generations int
	tail        int // trailing generations averaged into the score
	seeds       []int64
	baseConfig  *config.Config
	logger      *slog.Logger

	// Best run tracking
	mu             sync.Mutex
	bestFitness    float64
	bestHallOfFame *telemetry.HallOfFame
	bestModel      *telemetry.HallEntry
	lastQuality    float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator. Each run lasts generations
// generations; the score averages the last tail of them.
func NewFitnessEvaluator(params *ParamVector, generations, tail int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	if tail < 1 || tail > generations {
		tail = generations
	}
	return &FitnessEvaluator{
		params:      params,
		generations: generations,
		tail:        tail,
		seeds:       seeds,
		baseConfig:  baseCfg,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		bestFitness: math.Inf(1),
	}
}

// BestHallOfFame returns the hall of fame from the best evaluation.
func (fe *FitnessEvaluator) BestHallOfFame() *telemetry.HallOfFame {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHallOfFame
}

// BestModel returns the fittest creature of the best evaluation.
func (fe *FitnessEvaluator) BestModel() *telemetry.HallEntry {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestModel
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	generations []telemetry.GenerationStats
	hallOfFame  *telemetry.HallOfFame
	best        *telemetry.HallEntry
	err         error
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the negated quality averaged over seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup

	// Each seed gets its own Game and random source.
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	qualities := make([]float64, 0, len(results))
	bestSeed := -1
	for i, r := range results {
		if r.err != nil {
			fe.logger.Error("evaluation run failed", "seed", fe.seeds[i], "error", r.err)
			qualities = append(qualities, 0)
			continue
		}
		q := Quality(r.generations, fe.tail)
		qualities = append(qualities, q)
		if bestSeed < 0 || q > qualities[bestSeed] {
			bestSeed = i
		}
	}

	quality := stat.Mean(qualities, nil)
	fitness := -quality

	fe.mu.Lock()
	if fitness < fe.bestFitness && bestSeed >= 0 {
		fe.bestFitness = fitness
		fe.bestHallOfFame = results[bestSeed].hallOfFame
		fe.bestModel = results[bestSeed].best
	}
	fe.lastQuality = quality
	fe.mu.Unlock()

	return fitness
}

// Quality scores a run by the mean, over the last tail generations, of the
// eligible fraction plus the mean rightward progress. Neither term depends
// on the fitness weights being tuned. Reseeded generations score zero
// eligibility.
func Quality(gens []telemetry.GenerationStats, tail int) float64 {
	if len(gens) == 0 {
		return 0
	}
	if tail < 1 || tail > len(gens) {
		tail = len(gens)
	}
	scores := make([]float64, 0, tail)
	for _, g := range gens[len(gens)-tail:] {
		eligible := 0.0
		if g.Population > 0 {
			eligible = float64(g.Eligible) / float64(g.Population)
		}
		scores = append(scores, eligible+g.ProgressMean)
	}
	return stat.Mean(scores, nil)
}

// runSimulation executes a single headless run for the configured number of
// generations.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) runResult {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)
	cfg.Population.MaxGenerations = fe.generations

	var result runResult
	g, err := game.NewGame(cfg, game.Options{
		Seed:   seed,
		Logger: fe.logger,
		OnGeneration: func(s telemetry.GenerationStats) {
			result.generations = append(result.generations, s)
		},
	})
	if err != nil {
		result.err = err
		return result
	}

	if err := g.Run(context.Background()); err != nil {
		result.err = err
		return result
	}

	result.hallOfFame = g.HallOfFame()
	if best, ok := g.Best(); ok {
		result.best = &best
	}
	return result
}

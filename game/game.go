// Package game runs the creature population: per-tick updates and the
// generational select-and-clone cycle.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/Armando284/life-simulation/config"
	"github.com/Armando284/life-simulation/neural"
	"github.com/Armando284/life-simulation/systems"
	"github.com/Armando284/life-simulation/telemetry"
)

// State is the phase of the generation cycle.
type State uint8

const (
	StateInitializing State = iota
	StateRunning
	StateSelecting
	StateReproducing
	StateFinished
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateSelecting:
		return "selecting"
	case StateReproducing:
		return "reproducing"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// ErrNotRunning is returned by Tick when the game is mid-transition.
var ErrNotRunning = errors.New("game not running")

// Options configures a Game beyond the simulation config.
type Options struct {
	// Seed seeds the random source when Rand is nil.
	Seed int64
	// Rand overrides the random source. Every draw in the game uses it.
	Rand *rand.Rand
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// SeedModel, if set, is loaded into every initial brain before the
	// bootstrap mutation.
	SeedModel *neural.Model
	// HallOfFame replaces the empty hall created from config, e.g. one
	// loaded from a previous run.
	HallOfFame *telemetry.HallOfFame
	// Output receives one CSV row per generation. May be nil.
	Output *telemetry.OutputManager
	// OnGeneration is called at every generation boundary.
	OnGeneration func(telemetry.GenerationStats)
}

// Game holds the complete simulation state.
type Game struct {
	cfg    *config.Config
	rng    *rand.Rand
	seed   int64
	logger *slog.Logger

	bounds    systems.Bounds
	brainOpts neural.Options
	seedModel *neural.Model

	creatures []*Creature
	food      []*Food
	obstacles []Obstacle

	// State
	state      State
	generation int
	tick       int
	nextID     uint32

	hof          *telemetry.HallOfFame
	output       *telemetry.OutputManager
	timer        *telemetry.TickTimer
	onGeneration func(telemetry.GenerationStats)

	best      telemetry.HallEntry
	hasBest   bool
	lastStats telemetry.GenerationStats
}

// NewGame creates a game with a fresh population and food batch, ready to
// Tick.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	g, err := newGame(cfg, opts)
	if err != nil {
		return nil, err
	}
	if opts.SeedModel != nil {
		m := *opts.SeedModel
		g.seedModel = &m
	}

	creatures := make([]*Creature, 0, cfg.Population.Size)
	for i := 0; i < cfg.Population.Size; i++ {
		c, err := g.spawnFounder(g.seedModel)
		if err != nil {
			return nil, err
		}
		creatures = append(creatures, c)
	}
	g.creatures = creatures
	brainParams := 0
	if len(creatures) > 0 {
		brainParams = creatures[0].Brain.ParamCount()
	}
	g.respawnFood()
	g.obstacles = buildObstacles(g.creatures, g.food)
	g.state = StateRunning

	g.logger.Info("simulation initialized",
		"population", len(g.creatures),
		"food", len(g.food),
		"brain_shape", cfg.Derived.BrainShape,
		"brain_params", brainParams,
		"seed", g.seed,
	)
	return g, nil
}

// newGame sets up everything except the population.
func newGame(cfg *config.Config, opts Options) (*Game, error) {
	act, err := neural.ParseActivation(cfg.Neural.Activation)
	if err != nil {
		return nil, fmt.Errorf("neural.activation: %w", err)
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(opts.Seed))
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	g := &Game{
		cfg:    cfg,
		rng:    rng,
		seed:   opts.Seed,
		logger: logger,
		bounds: systems.Bounds{Width: cfg.World.Width, Height: cfg.World.Height},
		brainOpts: neural.Options{
			Activation: act,
			Dropout:    cfg.Neural.Dropout,
			Alpha:      cfg.Neural.Alpha,
		},
		state:        StateInitializing,
		output:       opts.Output,
		timer:        telemetry.NewTickTimer(),
		onGeneration: opts.OnGeneration,
		hof:          opts.HallOfFame,
	}
	if g.hof == nil && cfg.HallOfFame.Enabled {
		g.hof = telemetry.NewHallOfFame(cfg.HallOfFame.Size, rng)
	}
	if err := g.checkHallOfFame(); err != nil {
		return nil, err
	}

	g.food = make([]*Food, cfg.Food.Count)
	for i := range g.food {
		g.food[i] = NewFood(cfg)
	}
	return g, nil
}

// checkHallOfFame rejects a supplied hall whose brains do not fit the
// configured shape, so reseeding cannot fail later.
func (g *Game) checkHallOfFame() error {
	if g.hof == nil || g.hof.Len() == 0 {
		return nil
	}
	scratch, err := neural.NewNetwork(g.cfg.Derived.BrainShape, g.brainOpts, nil)
	if err != nil {
		return fmt.Errorf("creating brain: %w", err)
	}
	for i, e := range g.hof.Entries() {
		if err := scratch.SetModel(e.Model); err != nil {
			return fmt.Errorf("hall of fame entry %d (creature %d): %w", i, e.CreatureID, err)
		}
	}
	return nil
}

// Tick advances every creature once, in slice order. When the generation's
// tick budget is spent it also runs selection and reproduction. If that
// boundary fails the game stays Running at the end of the generation, and
// the next Tick retries the boundary without moving creatures.
func (g *Game) Tick() error {
	switch g.state {
	case StateFinished:
		return nil
	case StateRunning:
	default:
		return fmt.Errorf("%w: %s", ErrNotRunning, g.state)
	}

	if len(g.creatures) == 0 {
		g.finish()
		return nil
	}

	g.timer.StartTick()
	stats, ended, err := g.step()
	g.timer.EndTick()
	if err != nil {
		return err
	}
	if !ended {
		return nil
	}

	g.timer.Flush().Apply(&stats)
	g.publish(stats)

	if limit := g.cfg.Population.MaxGenerations; limit > 0 && g.generation >= limit {
		g.finish()
	}
	return nil
}

// step runs the creature updates and, at the end of a generation, the
// boundary. ended reports whether a generation boundary completed.
func (g *Game) step() (stats telemetry.GenerationStats, ended bool, err error) {
	if g.tick < g.cfg.Population.GenerationLength {
		g.timer.StartPhase(telemetry.PhaseUpdate)
		for _, c := range g.creatures {
			if err := c.Update(g.obstacles); err != nil {
				return stats, false, fmt.Errorf("generation %d tick %d: %w", g.generation, g.tick, err)
			}
		}
		g.tick++
	}
	if g.tick < g.cfg.Population.GenerationLength {
		return stats, false, nil
	}

	stats, err = g.endGeneration()
	if err != nil {
		return stats, false, err
	}
	return stats, true, nil
}

// RunGeneration ticks until the current generation ends or the game
// finishes.
func (g *Game) RunGeneration() error {
	gen := g.generation
	for g.state == StateRunning && g.generation == gen {
		if err := g.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// Run ticks until the game finishes or ctx is cancelled. Cancellation is
// checked between ticks and returned as ctx.Err().
func (g *Game) Run(ctx context.Context) error {
	for g.state != StateFinished {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.Tick(); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) finish() {
	if g.state == StateFinished {
		return
	}
	g.state = StateFinished
	g.logger.Info("simulation finished",
		"generations", g.generation,
		"best_fitness", g.best.Fitness,
	)
}

// foodBias is the fraction of the world width food may spawn in for the
// current generation.
func (g *Game) foodBias() float64 {
	f := g.cfg.Food
	bias := f.Bias + f.BiasShift*float64(g.generation)
	return math.Min(1, math.Max(f.BiasMin, bias))
}

// respawnFood places every pellet for the current generation.
func (g *Game) respawnFood() {
	bias := g.foodBias()
	for _, f := range g.food {
		f.Respawn(g.rng, bias)
	}
}

// Creatures returns the live population in update order. Callers must not
// modify the slice.
func (g *Game) Creatures() []*Creature { return g.creatures }

// Food returns the food batch. Callers must not modify the slice.
func (g *Game) Food() []*Food { return g.food }

// Generation returns the number of completed generations.
func (g *Game) Generation() int { return g.generation }

// TickCount returns the tick within the current generation.
func (g *Game) TickCount() int { return g.tick }

// State returns the current phase.
func (g *Game) State() State { return g.state }

// Config returns the configuration the game runs with.
func (g *Game) Config() *config.Config { return g.cfg }

// HallOfFame returns the hall, or nil when disabled.
func (g *Game) HallOfFame() *telemetry.HallOfFame { return g.hof }

// LastStats returns the statistics of the most recent generation boundary.
func (g *Game) LastStats() telemetry.GenerationStats { return g.lastStats }


// Best returns the fittest creature seen at any generation boundary.
// Returns false before the first boundary.
func (g *Game) Best() (telemetry.HallEntry, bool) {
	return g.best, g.hasBest
}

package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Armando284/life-simulation/config"
	"github.com/Armando284/life-simulation/game"
	"github.com/Armando284/life-simulation/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config file, .yaml or .ini (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxGenerations := flag.Int("max-generations", -1, "Stop after N generations (-1 = use config, 0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for generations.csv, config snapshot and hall of fame")
	snapshotDir := flag.String("snapshot-dir", "", "Directory to write the final simulation snapshot")
	resume := flag.String("resume", "", "Snapshot file to resume from")
	loadModel := flag.String("load-model", "", "Brain model JSON used to seed the initial population")
	saveModel := flag.String("save-model", "", "Write the best brain of the run to this JSON file")
	hallOfFame := flag.String("hall-of-fame", "", "Hall of fame JSON from a previous run, used for reseeding")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		slog.Error("invalid log level", "level", *logLevel, "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *maxGenerations >= 0 {
		cfg.Population.MaxGenerations = *maxGenerations
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	opts := game.Options{
		Seed:   rngSeed,
		Rand:   rng,
		Logger: logger,
		Output: output,
	}
	if *loadModel != "" {
		m, err := telemetry.LoadModel(*loadModel)
		if err != nil {
			slog.Error("failed to load model", "path", *loadModel, "error", err)
			os.Exit(1)
		}
		opts.SeedModel = &m
	}
	if *hallOfFame != "" {
		hof, err := telemetry.LoadHallOfFameFromFile(*hallOfFame, rng)
		if err != nil {
			slog.Error("failed to load hall of fame", "path", *hallOfFame, "error", err)
			os.Exit(1)
		}
		opts.HallOfFame = hof
	}

	var g *game.Game
	if *resume != "" {
		snap, err := telemetry.LoadSnapshot(*resume)
		if err != nil {
			slog.Error("failed to load snapshot", "path", *resume, "error", err)
			os.Exit(1)
		}
		g, err = game.Restore(cfg, snap, opts)
		if err != nil {
			slog.Error("failed to restore snapshot", "error", err)
			os.Exit(1)
		}
	} else {
		g, err = game.NewGame(cfg, opts)
		if err != nil {
			slog.Error("failed to create simulation", "error", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting simulation",
		"seed", rngSeed,
		"population", cfg.Population.Size,
		"generation_length", cfg.Population.GenerationLength,
		"max_generations", cfg.Population.MaxGenerations,
	)

	runErr := g.Run(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		slog.Error("simulation failed", "error", runErr)
	}
	if errors.Is(runErr, context.Canceled) {
		slog.Info("simulation interrupted", "generation", g.Generation(), "tick", g.TickCount())
	}

	if err := finish(g, output, *saveModel, *snapshotDir); err != nil {
		slog.Error("failed to write results", "error", err)
		os.Exit(1)
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		os.Exit(1)
	}
}

// finish writes the hall of fame, the best brain and an optional snapshot.
func finish(g *game.Game, output *telemetry.OutputManager, modelPath, snapshotDir string) error {
	var errs []error

	if hof := g.HallOfFame(); hof != nil {
		if top, ok := hof.Best(); ok {
			slog.Info("hall of fame",
				"size", hof.Len(),
				"top_fitness", top.Fitness,
				"top_generation", top.Generation,
			)
		}
		if err := output.WriteHallOfFame(hof); err != nil {
			errs = append(errs, err)
		}
	}

	if best, ok := g.Best(); ok {
		slog.Info("best creature",
			"fitness", best.Fitness,
			"generation", best.Generation,
			"food_eaten", best.FoodEaten,
			"params", best.Model.ParamCount(),
		)
		if err := output.WriteBestModel(best.Model); err != nil {
			errs = append(errs, err)
		}
		if modelPath != "" {
			if err := telemetry.SaveModel(modelPath, best.Model); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if snapshotDir != "" {
		path, err := telemetry.SaveSnapshot(g.Snapshot(), snapshotDir)
		if err != nil {
			errs = append(errs, err)
		} else {
			slog.Info("snapshot saved", "path", path)
		}
	}

	return errors.Join(errs...)
}

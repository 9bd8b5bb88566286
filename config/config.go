// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Brain input and output widths are fixed by the creature's sensor vector
// (front, left, right, food eaten, energy) and its movement outputs
// (up, down, left, right).
const (
	BrainInputs  = 5
	BrainOutputs = 4
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Creature   CreatureConfig   `yaml:"creature"`
	Food       FoodConfig       `yaml:"food"`
	Neural     NeuralConfig     `yaml:"neural"`
	Mutation   MutationConfig   `yaml:"mutation"`
	Fitness    FitnessConfig    `yaml:"fitness"`
	HallOfFame HallOfFameConfig `yaml:"hall_of_fame"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds world dimensions.
type WorldConfig struct {
	Width  float64 `yaml:"width" ini:"width"`
	Height float64 `yaml:"height" ini:"height"`
}

// PopulationConfig holds generation bookkeeping.
type PopulationConfig struct {
	Size             int     `yaml:"size" ini:"size"`
	GenerationLength int     `yaml:"generation_length" ini:"generation_length"`
	MaxGenerations   int     `yaml:"max_generations" ini:"max_generations"` // 0 = unlimited
	SpawnMinX        float64 `yaml:"spawn_min_x" ini:"spawn_min_x"`         // fraction of width
	SpawnMaxX        float64 `yaml:"spawn_max_x" ini:"spawn_max_x"`         // fraction of width
}

// CreatureConfig holds body, energy and sensor parameters.
type CreatureConfig struct {
	Size             float64 `yaml:"size" ini:"size"`
	Speed            float64 `yaml:"speed" ini:"speed"`
	MaxEnergy        float64 `yaml:"max_energy" ini:"max_energy"`
	EnergyDecay      float64 `yaml:"energy_decay" ini:"energy_decay"`
	FoodEnergy       float64 `yaml:"food_energy" ini:"food_energy"`
	SensorRange      float64 `yaml:"sensor_range" ini:"sensor_range"` // multiples of Size
	CollisionDamping float64 `yaml:"collision_damping" ini:"collision_damping"`
}

// FoodConfig holds food batch parameters.
type FoodConfig struct {
	Count     int     `yaml:"count" ini:"count"`
	Size      float64 `yaml:"size" ini:"size"`
	Bias      float64 `yaml:"bias" ini:"bias"`             // spawn x in [0, Bias*width)
	BiasShift float64 `yaml:"bias_shift" ini:"bias_shift"` // per generation
	BiasMin   float64 `yaml:"bias_min" ini:"bias_min"`
}

// NeuralConfig holds brain architecture parameters.
type NeuralConfig struct {
	HiddenLayers []int   `yaml:"hidden_layers" ini:"hidden_layers" delim:","`
	Activation   string  `yaml:"activation" ini:"activation"`
	Dropout      float64 `yaml:"dropout" ini:"dropout"`
	Alpha        float64 `yaml:"alpha" ini:"alpha"`
	Init         string  `yaml:"init" ini:"init"` // zero | he
}

// MutationConfig holds reproduction mutation parameters.
// rate = BaseRate + (1 - energy/max) * EnergyRateFactor
// scale = BaseScale + foodEaten / FoodScaleDivisor
type MutationConfig struct {
	CloneChance      float64 `yaml:"clone_chance" ini:"clone_chance"`
	BaseRate         float64 `yaml:"base_rate" ini:"base_rate"`
	EnergyRateFactor float64 `yaml:"energy_rate_factor" ini:"energy_rate_factor"`
	BaseScale        float64 `yaml:"base_scale" ini:"base_scale"`
	FoodScaleDivisor float64 `yaml:"food_scale_divisor" ini:"food_scale_divisor"`
}

// FitnessConfig holds selection parameters.
type FitnessConfig struct {
	GoalFraction    float64 `yaml:"goal_fraction" ini:"goal_fraction"`
	ProgressWeight  float64 `yaml:"progress_weight" ini:"progress_weight"`
	EnergyWeight    float64 `yaml:"energy_weight" ini:"energy_weight"`
	FoodWeight      float64 `yaml:"food_weight" ini:"food_weight"`
	CollisionWeight float64 `yaml:"collision_weight" ini:"collision_weight"`
}

// HallOfFameConfig holds settings for the cross-generation brain archive.
type HallOfFameConfig struct {
	Enabled bool `yaml:"enabled" ini:"enabled"`
	Size    int  `yaml:"size" ini:"size"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	LogEvery int `yaml:"log_every" ini:"log_every"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	CollisionRadius     float64 // Creature.Size * 0.8
	FoodCollisionRadius float64 // Food.Size * 0.8
	SensorLength        float64 // Creature.Size * Creature.SensorRange
	BrainShape          []int   // [BrainInputs, hidden..., BrainOutputs]
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a file, merging with embedded defaults.
// Files ending in .ini or .cfg are read as INI; anything else as YAML.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".ini", ".cfg":
			if err := cfg.mergeINI(data); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		default:
			// Unmarshal into same struct - only overwrites fields present in file
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ComputeDerived()

	return cfg, nil
}

// Validate checks ranges that the simulation relies on.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.World.Width > 0 && c.World.Height > 0, "world size %vx%v", c.World.Width, c.World.Height)
	check(c.Population.Size > 0, "population.size %d", c.Population.Size)
	check(c.Population.GenerationLength > 0, "population.generation_length %d", c.Population.GenerationLength)
	check(c.Population.MaxGenerations >= 0, "population.max_generations %d", c.Population.MaxGenerations)
	check(0 <= c.Population.SpawnMinX && c.Population.SpawnMinX <= c.Population.SpawnMaxX && c.Population.SpawnMaxX <= 1,
		"population spawn range [%v, %v]", c.Population.SpawnMinX, c.Population.SpawnMaxX)
	check(c.Creature.Size > 0 && 2*c.Creature.Size < min(c.World.Width, c.World.Height),
		"creature.size %v", c.Creature.Size)
	check(c.Creature.Speed >= 0, "creature.speed %v", c.Creature.Speed)
	check(c.Creature.MaxEnergy > 0, "creature.max_energy %v", c.Creature.MaxEnergy)
	check(c.Creature.EnergyDecay >= 0, "creature.energy_decay %v", c.Creature.EnergyDecay)
	check(c.Creature.SensorRange > 0, "creature.sensor_range %v", c.Creature.SensorRange)
	check(c.Food.Count >= 0, "food.count %d", c.Food.Count)
	check(c.Food.Size > 0, "food.size %v", c.Food.Size)
	check(0 < c.Food.BiasMin && c.Food.BiasMin <= 1, "food.bias_min %v", c.Food.BiasMin)
	check(0 < c.Food.Bias && c.Food.Bias <= 1, "food.bias %v", c.Food.Bias)
	check(c.Neural.Dropout >= 0 && c.Neural.Dropout < 1, "neural.dropout %v", c.Neural.Dropout)
	for i, w := range c.Neural.HiddenLayers {
		check(w > 0, "neural.hidden_layers[%d] = %d", i, w)
	}
	check(c.Neural.Init == "zero" || c.Neural.Init == "he", "neural.init %q", c.Neural.Init)
	check(c.Mutation.CloneChance >= 0 && c.Mutation.CloneChance <= 1, "mutation.clone_chance %v", c.Mutation.CloneChance)
	check(c.Mutation.FoodScaleDivisor > 0, "mutation.food_scale_divisor %v", c.Mutation.FoodScaleDivisor)
	check(c.Fitness.GoalFraction >= 0 && c.Fitness.GoalFraction < 1, "fitness.goal_fraction %v", c.Fitness.GoalFraction)
	check(!c.HallOfFame.Enabled || c.HallOfFame.Size > 0, "hall_of_fame.size %d", c.HallOfFame.Size)

	return errors.Join(errs...)
}

// ComputeDerived calculates values derived from loaded config.
// Call it again after changing fields programmatically.
func (c *Config) ComputeDerived() {
	c.Derived.CollisionRadius = c.Creature.Size * 0.8
	c.Derived.FoodCollisionRadius = c.Food.Size * 0.8
	c.Derived.SensorLength = c.Creature.Size * c.Creature.SensorRange

	shape := make([]int, 0, len(c.Neural.HiddenLayers)+2)
	shape = append(shape, BrainInputs)
	shape = append(shape, c.Neural.HiddenLayers...)
	shape = append(shape, BrainOutputs)
	c.Derived.BrainShape = shape
}

// Clone returns a deep copy, used when tuning parameters per run.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Neural.HiddenLayers = append([]int(nil), c.Neural.HiddenLayers...)
	cp.Derived.BrainShape = append([]int(nil), c.Derived.BrainShape...)
	return &cp
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

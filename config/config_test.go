package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults failed: %v", err)
	}

	if cfg.Population.Size <= 0 || cfg.Population.GenerationLength <= 0 {
		t.Errorf("bad population defaults: %+v", cfg.Population)
	}
	if cfg.Derived.CollisionRadius != cfg.Creature.Size*0.8 {
		t.Errorf("CollisionRadius = %v", cfg.Derived.CollisionRadius)
	}
	if cfg.Derived.SensorLength != cfg.Creature.Size*cfg.Creature.SensorRange {
		t.Errorf("SensorLength = %v", cfg.Derived.SensorLength)
	}

	shape := cfg.Derived.BrainShape
	if len(shape) != len(cfg.Neural.HiddenLayers)+2 || shape[0] != BrainInputs || shape[len(shape)-1] != BrainOutputs {
		t.Errorf("BrainShape = %v", shape)
	}
}

func TestLoadYAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := []byte("population:\n  size: 12\nneural:\n  hidden_layers: [8]\n  activation: tanh\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Population.Size != 12 {
		t.Errorf("population.size = %d, want 12", cfg.Population.Size)
	}
	if cfg.Neural.Activation != "tanh" {
		t.Errorf("neural.activation = %q", cfg.Neural.Activation)
	}
	// Untouched keys keep their defaults.
	if cfg.Population.GenerationLength != Default().Population.GenerationLength {
		t.Errorf("generation_length changed to %d", cfg.Population.GenerationLength)
	}
	if got := cfg.Derived.BrainShape; len(got) != 3 || got[1] != 8 {
		t.Errorf("BrainShape = %v, want [5 8 4]", got)
	}
}

func TestLoadINIOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.ini")
	data := []byte("[population]\nsize = 30\ngeneration_length = 400\n\n[neural]\nhidden_layers = 12, 6\n\n[fitness]\nfood_weight = 3.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Population.Size != 30 || cfg.Population.GenerationLength != 400 {
		t.Errorf("population = %+v", cfg.Population)
	}
	if cfg.Fitness.FoodWeight != 3.5 {
		t.Errorf("fitness.food_weight = %v", cfg.Fitness.FoodWeight)
	}
	if cfg.Fitness.ProgressWeight != Default().Fitness.ProgressWeight {
		t.Errorf("progress_weight changed to %v", cfg.Fitness.ProgressWeight)
	}
	if got := cfg.Derived.BrainShape; len(got) != 4 || got[1] != 12 || got[2] != 6 {
		t.Errorf("BrainShape = %v, want [5 12 6 4]", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero population", func(c *Config) { c.Population.Size = 0 }},
		{"zero generation", func(c *Config) { c.Population.GenerationLength = 0 }},
		{"inverted spawn", func(c *Config) { c.Population.SpawnMinX, c.Population.SpawnMaxX = 0.6, 0.2 }},
		{"huge creature", func(c *Config) { c.Creature.Size = c.World.Width }},
		{"dropout one", func(c *Config) { c.Neural.Dropout = 1 }},
		{"bad hidden", func(c *Config) { c.Neural.HiddenLayers = []int{4, 0} }},
		{"bad init", func(c *Config) { c.Neural.Init = "xavier" }},
		{"goal at edge", func(c *Config) { c.Fitness.GoalFraction = 1 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Population.Size = 77
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Population.Size != 77 {
		t.Errorf("population.size = %d, want 77", loaded.Population.Size)
	}
}

func TestCloneIsDeep(t *testing.T) {
	cfg := Default()
	cp := cfg.Clone()
	cp.Neural.HiddenLayers[0] = 999
	cp.Derived.BrainShape[0] = 999
	if cfg.Neural.HiddenLayers[0] == 999 || cfg.Derived.BrainShape[0] == 999 {
		t.Error("Clone shares slices")
	}
}

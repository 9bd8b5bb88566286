// Package telemetry records per-generation statistics, the hall of fame and
// saved brains and snapshots.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/Armando284/life-simulation/config"
	"github.com/Armando284/life-simulation/neural"
)

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir                   string
	generationsFile       *os.File
	generationsHeaderDone bool
}

// NewOutputManager creates the output directory and opens generations.csv.
// Returns nil if dir is empty (output disabled); every method is a no-op on
// a nil manager.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, "generations.csv")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating generations.csv: %w", err)
	}

	return &OutputManager{dir: dir, generationsFile: f}, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteGeneration appends a generation record to generations.csv.
func (om *OutputManager) WriteGeneration(stats GenerationStats) error {
	if om == nil {
		return nil
	}

	records := []GenerationStats{stats}

	if !om.generationsHeaderDone {
		// First write includes headers
		if err := gocsv.Marshal(records, om.generationsFile); err != nil {
			return fmt.Errorf("writing generation: %w", err)
		}
		om.generationsHeaderDone = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.generationsFile); err != nil {
		return fmt.Errorf("writing generation: %w", err)
	}
	return nil
}

// WriteHallOfFame saves the hall of fame as JSON.
func (om *OutputManager) WriteHallOfFame(hof *HallOfFame) error {
	if om == nil || hof == nil {
		return nil
	}

	data, err := hof.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling hall of fame: %w", err)
	}
	if err := os.WriteFile(filepath.Join(om.dir, "hall_of_fame.json"), data, 0644); err != nil {
		return fmt.Errorf("writing hall_of_fame.json: %w", err)
	}
	return nil
}

// WriteBestModel saves the best brain of the run as best_model.json.
func (om *OutputManager) WriteBestModel(m neural.Model) error {
	if om == nil {
		return nil
	}
	return SaveModel(filepath.Join(om.dir, "best_model.json"), m)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil || om.generationsFile == nil {
		return nil
	}
	return om.generationsFile.Close()
}

// ReadGenerations parses a generations.csv file.
func ReadGenerations(path string) ([]GenerationStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening generations: %w", err)
	}
	defer f.Close()

	var records []GenerationStats
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("parsing generations: %w", err)
	}
	return records, nil
}

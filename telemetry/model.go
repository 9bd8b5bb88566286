package telemetry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Armando284/life-simulation/neural"
)

// SaveModel writes a brain model as indented JSON.
func SaveModel(path string, m neural.Model) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling model: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing model: %w", err)
	}
	return nil
}

// LoadModel reads a brain model written by SaveModel. Shape compatibility is
// checked when the model is applied to a network.
func LoadModel(path string) (neural.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return neural.Model{}, fmt.Errorf("reading model: %w", err)
	}
	var m neural.Model
	if err := json.Unmarshal(data, &m); err != nil {
		return neural.Model{}, fmt.Errorf("parsing model JSON: %w", err)
	}
	return m, nil
}

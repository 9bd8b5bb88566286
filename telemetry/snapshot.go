package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Armando284/life-simulation/neural"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// ErrSnapshotVersion is returned when a snapshot was written by an
// incompatible version.
var ErrSnapshotVersion = errors.New("unsupported snapshot version")

// Snapshot holds the complete simulation state needed to resume a run.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	WorldWidth  float64 `json:"world_width"`
	WorldHeight float64 `json:"world_height"`

	Generation int    `json:"generation"`
	Tick       int    `json:"tick"`
	NextID     uint32 `json:"next_id"`

	Creatures []CreatureSnapshot `json:"creatures"`
	Food      []FoodSnapshot     `json:"food"`
}

// CreatureSnapshot holds one creature's complete state.
type CreatureSnapshot struct {
	ID uint32 `json:"id"`

	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	InitialX float64 `json:"initial_x"`
	InitialY float64 `json:"initial_y"`
	VelX     float64 `json:"vel_x"`
	VelY     float64 `json:"vel_y"`
	Angle    float64 `json:"angle"`

	Energy     float64 `json:"energy"`
	FoodEaten  int     `json:"food_eaten"`
	Collisions int     `json:"collisions"`
	Color      string  `json:"color"`

	Brain neural.Model `json:"brain"`
}

// FoodSnapshot holds one food item's state.
type FoodSnapshot struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Despawned bool    `json:"despawned,omitempty"`
}

// SaveSnapshot writes a snapshot into dir, named after its generation and
// tick. Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_g%d_t%d.json", snapshot.Generation, snapshot.Tick)
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, snapshot.Version)
	}

	return &snapshot, nil
}

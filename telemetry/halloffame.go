package telemetry

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sort"

	"github.com/Armando284/life-simulation/neural"
)

// HallEntry records a successful creature's brain and how it scored.
type HallEntry struct {
	Model      neural.Model `json:"model"`
	Fitness    float64      `json:"fitness"`
	Generation int          `json:"generation"`
	CreatureID uint32       `json:"creature_id"`
	FoodEaten  int          `json:"food_eaten"`
	Collisions int          `json:"collisions"`
	Color      string       `json:"color"`
}

// HallOfFame keeps the fittest brains seen across generations, sorted by
// descending fitness. It is the reseed source when a generation produces no
// eligible parents.
type HallOfFame struct {
	entries []HallEntry
	maxSize int
	rng     *rand.Rand
}

// NewHallOfFame creates an empty hall holding at most maxSize entries.
func NewHallOfFame(maxSize int, rng *rand.Rand) *HallOfFame {
	if maxSize < 1 {
		maxSize = 1
	}
	return &HallOfFame{
		entries: make([]HallEntry, 0, maxSize),
		maxSize: maxSize,
		rng:     rng,
	}
}

// Consider inserts entry if it ranks among the best maxSize entries.
// Returns true if the entry was added.
func (hof *HallOfFame) Consider(entry HallEntry) bool {
	// Insertion point keeps earlier entries ahead of equal-fitness newcomers.
	idx := sort.Search(len(hof.entries), func(i int) bool {
		return hof.entries[i].Fitness < entry.Fitness
	})
	if idx >= hof.maxSize {
		return false
	}

	hof.entries = append(hof.entries, HallEntry{})
	copy(hof.entries[idx+1:], hof.entries[idx:])
	hof.entries[idx] = entry

	if len(hof.entries) > hof.maxSize {
		hof.entries = hof.entries[:hof.maxSize]
	}
	return true
}

// Sample selects an entry using tournament selection.
// Returns false if the hall is empty.
func (hof *HallOfFame) Sample() (HallEntry, bool) {
	if len(hof.entries) == 0 {
		return HallEntry{}, false
	}

	const tournamentSize = 3
	best := -1
	for i := 0; i < tournamentSize && i < len(hof.entries); i++ {
		idx := hof.rng.Intn(len(hof.entries))
		if best < 0 || hof.entries[idx].Fitness > hof.entries[best].Fitness {
			best = idx
		}
	}
	return hof.entries[best], true
}

// Best returns the top entry. Returns false if the hall is empty.
func (hof *HallOfFame) Best() (HallEntry, bool) {
	if len(hof.entries) == 0 {
		return HallEntry{}, false
	}
	return hof.entries[0], true
}

// Len returns the number of entries.
func (hof *HallOfFame) Len() int {
	return len(hof.entries)
}

// Entries returns the entries in rank order. The slice must not be modified.
func (hof *HallOfFame) Entries() []HallEntry {
	return hof.entries
}

type hallOfFameJSON struct {
	MaxSize int         `json:"max_size"`
	Entries []HallEntry `json:"entries"`
}

// MarshalJSON serializes the hall of fame to JSON.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(hallOfFameJSON{MaxSize: hof.maxSize, Entries: hof.entries}, "", "  ")
}

// LoadHallOfFameFromFile reads a hall of fame JSON file. Entries are
// re-inserted so rank order and capacity hold even for hand-edited files.
func LoadHallOfFameFromFile(path string, rng *rand.Rand) (*HallOfFame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hall of fame: %w", err)
	}

	var raw hallOfFameJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing hall of fame JSON: %w", err)
	}

	maxSize := raw.MaxSize
	if maxSize < len(raw.Entries) {
		maxSize = len(raw.Entries)
	}
	hof := NewHallOfFame(maxSize, rng)
	for _, e := range raw.Entries {
		hof.Consider(e)
	}
	return hof, nil
}

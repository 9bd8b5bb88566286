package game

import (
	"github.com/Armando284/life-simulation/telemetry"
)

// publish hands a finished generation's stats to the callback, the log and
// the CSV output.
func (g *Game) publish(stats telemetry.GenerationStats) {
	g.lastStats = stats

	if g.onGeneration != nil {
		g.onGeneration(stats)
	}

	if every := g.cfg.Telemetry.LogEvery; every > 0 && stats.Generation%every == 0 {
		g.logger.Info("generation", "stats", stats)
	}

	if err := g.output.WriteGeneration(stats); err != nil {
		g.logger.Error("failed to write generation", "generation", stats.Generation, "error", err)
	}
}

// Snapshot captures the full population and food state.
func (g *Game) Snapshot() *telemetry.Snapshot {
	snap := &telemetry.Snapshot{
		Version:     telemetry.SnapshotVersion,
		RNGSeed:     g.seed,
		WorldWidth:  g.bounds.Width,
		WorldHeight: g.bounds.Height,
		Generation:  g.generation,
		Tick:        g.tick,
		NextID:      g.nextID,
		Creatures:   make([]telemetry.CreatureSnapshot, len(g.creatures)),
		Food:        make([]telemetry.FoodSnapshot, len(g.food)),
	}
	for i, c := range g.creatures {
		snap.Creatures[i] = telemetry.CreatureSnapshot{
			ID:         c.ID,
			X:          c.Pos.X,
			Y:          c.Pos.Y,
			InitialX:   c.InitialPos.X,
			InitialY:   c.InitialPos.Y,
			VelX:       c.Vel.X,
			VelY:       c.Vel.Y,
			Angle:      c.Angle,
			Energy:     c.Energy.Value,
			FoodEaten:  c.FoodEaten,
			Collisions: c.Collisions,
			Color:      c.Color,
			Brain:      c.Brain.Model(),
		}
	}
	for i, f := range g.food {
		snap.Food[i] = telemetry.FoodSnapshot{X: f.Pos.X, Y: f.Pos.Y, Despawned: f.Despawned()}
	}
	return snap
}

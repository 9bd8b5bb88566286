package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/Armando284/life-simulation/components"
	"github.com/Armando284/life-simulation/config"
	"github.com/Armando284/life-simulation/neural"
	"github.com/Armando284/life-simulation/systems"
)

func zeroBrain(t testing.TB, cfg *config.Config) *neural.Network {
	t.Helper()
	brain, err := neural.NewNetwork(cfg.Derived.BrainShape, neural.DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("NewNetwork: %v", err)
	}
	return brain
}

func newTestCreature(t testing.TB, cfg *config.Config, id uint32, x, y float64) *Creature {
	t.Helper()
	return NewCreature(id, components.Position{X: x, Y: y}, zeroBrain(t, cfg), "#808080", cfg)
}

func smallWorldConfig() *config.Config {
	cfg := config.Default()
	cfg.World.Width = 100
	cfg.World.Height = 100
	cfg.Creature.Size = 1
	cfg.ComputeDerived()
	return cfg
}

func TestLoneCreatureSensesNothing(t *testing.T) {
	cfg := smallWorldConfig()
	c := newTestCreature(t, cfg, 0, 50, 50)
	obstacles := []Obstacle{c}

	for tick := 0; tick < 10; tick++ {
		if err := c.Update(obstacles); err != nil {
			t.Fatalf("tick %d: %v", tick, err)
		}
		if got := c.Sensors(); got != [3]float64{} {
			t.Fatalf("tick %d: sensors = %v, want all zero", tick, got)
		}
	}
	if c.Pos != (components.Position{X: 50, Y: 50}) {
		t.Errorf("zero brain moved the creature to %+v", c.Pos)
	}
	if c.Angle != 0 {
		t.Errorf("angle = %v, want unchanged 0", c.Angle)
	}
}

func TestSenseEntitiesAndWalls(t *testing.T) {
	cfg := smallWorldConfig()
	c := newTestCreature(t, cfg, 0, 50, 50)

	cfg.Food.Size = 1
	cfg.ComputeDerived()
	food := NewFood(cfg)
	food.Pos = components.Position{X: 50, Y: 45}

	other := newTestCreature(t, cfg, 1, 60, 50)

	got := c.Sense([]Obstacle{c, other, food})
	// Facing 0 casts the front ray along +x. Creature to the east:
	// surface 10-2 = 8 -> 1 - 8/20.
	if math.Abs(got[0]-0.6) > 1e-9 {
		t.Errorf("front = %v, want 0.6", got[0])
	}
	// Left is -y. Food above: surface 5-2 = 3 -> 1 - 3/20.
	if math.Abs(got[1]-0.85) > 1e-9 {
		t.Errorf("left = %v, want 0.85", got[1])
	}
	if got[2] != 0 {
		t.Errorf("right = %v, want 0", got[2])
	}

	// Eaten food is invisible.
	food.Despawn()
	if got := c.Sense([]Obstacle{c, food}); got[1] != 0 {
		t.Errorf("left after despawn = %v, want 0", got[1])
	}

	// Near the east wall the front ray leaves the world.
	c.Pos = components.Position{X: 90, Y: 50}
	if got := c.Sense([]Obstacle{c}); got[0] != 1 {
		t.Errorf("front at wall = %v, want 1", got[0])
	}
}

func TestMoveNormalizesAndClamps(t *testing.T) {
	cfg := config.Default()
	c := newTestCreature(t, cfg, 0, 500, 500)

	if err := c.Move([]float64{0, 0, 0, 5}); err != nil {
		t.Fatal(err)
	}
	if c.Vel != (components.Velocity{X: cfg.Creature.Speed}) {
		t.Errorf("vel = %+v, want speed to the right", c.Vel)
	}
	if c.Pos.X != 500+cfg.Creature.Speed {
		t.Errorf("x = %v", c.Pos.X)
	}

	if err := c.Move([]float64{1, 1, 1, 1}); err != nil {
		t.Fatal(err)
	}
	if !c.Vel.IsZero() {
		t.Errorf("balanced outputs should stop, got %+v", c.Vel)
	}

	c.Pos = components.Position{X: cfg.World.Width - 1, Y: 500}
	if err := c.Move([]float64{0, 0, 0, 1}); err != nil {
		t.Fatal(err)
	}
	if c.Pos.X != cfg.World.Width-cfg.Creature.Size {
		t.Errorf("x = %v, want clamped to %v", c.Pos.X, cfg.World.Width-cfg.Creature.Size)
	}

	if err := c.Move([]float64{1, 2}); err == nil {
		t.Error("expected error for short output vector")
	}
}

func TestFeedingFirstInOrderWins(t *testing.T) {
	cfg := config.Default()

	first := newTestCreature(t, cfg, 0, 490, 500)
	second := newTestCreature(t, cfg, 1, 510, 500)
	first.Energy.Value = 50
	food := NewFood(cfg)
	food.Pos = components.Position{X: 500, Y: 500}

	obstacles := []Obstacle{first, second, food}
	for _, c := range []*Creature{first, second} {
		if err := c.Update(obstacles); err != nil {
			t.Fatal(err)
		}
	}

	if first.FoodEaten != 1 || second.FoodEaten != 0 {
		t.Errorf("food eaten = %d/%d, want 1/0", first.FoodEaten, second.FoodEaten)
	}
	if !food.Despawned() {
		t.Error("food should be despawned")
	}
	want := 50 - cfg.Creature.EnergyDecay + cfg.Creature.FoodEnergy
	if math.Abs(first.Energy.Value-want) > 1e-9 {
		t.Errorf("energy = %v, want %v", first.Energy.Value, want)
	}
}

func TestEatCapsEnergyAndRespectsGuard(t *testing.T) {
	cfg := config.Default()
	c := newTestCreature(t, cfg, 0, 100, 100)

	f := NewFood(cfg)
	f.Pos = c.Pos
	c.Eat(f)
	if c.Energy.Value != cfg.Creature.MaxEnergy {
		t.Errorf("energy = %v, want capped at %v", c.Energy.Value, cfg.Creature.MaxEnergy)
	}
	if !c.canEat {
		t.Error("guard should be released after eating")
	}

	g := NewFood(cfg)
	g.Pos = c.Pos
	c.canEat = false
	c.Eat(g)
	if c.FoodEaten != 1 || g.Despawned() {
		t.Error("guarded Eat must be a no-op")
	}
}

func TestCreatureCollisionSplitsOverlap(t *testing.T) {
	cfg := config.Default()
	a := newTestCreature(t, cfg, 0, 500, 500)
	b := newTestCreature(t, cfg, 1, 510, 500)
	a0, b0 := a.Pos, b.Pos

	overlap := a.CollisionRadius + b.CollisionRadius - a0.Distance(b0)
	a.HandleCollisions([]Obstacle{a, b})

	moved := a0.Distance(a.Pos) + b0.Distance(b.Pos)
	if math.Abs(moved-overlap) > 1e-12 {
		t.Errorf("total displacement = %v, want overlap %v", moved, overlap)
	}
	if math.Abs(a0.Distance(a.Pos)-b0.Distance(b.Pos)) > 1e-12 {
		t.Error("displacement should be split evenly")
	}
	if a.Collisions != 1 || b.Collisions != 1 {
		t.Errorf("collisions = %d/%d, want 1/1", a.Collisions, b.Collisions)
	}

	bounce := cfg.Creature.Speed * cfg.Creature.CollisionDamping
	if math.Abs(a.Vel.X+bounce) > 1e-12 || math.Abs(b.Vel.X-bounce) > 1e-12 {
		t.Errorf("velocities = %+v / %+v, want -/+%v", a.Vel, b.Vel, bounce)
	}
}

func TestCollisionRadiusFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Derived.CollisionRadius = 5
	cfg.Derived.FoodCollisionRadius = 1

	a := newTestCreature(t, cfg, 0, 500, 500)
	b := newTestCreature(t, cfg, 1, 511, 500)
	food := NewFood(cfg)
	food.Pos = components.Position{X: 500, Y: 507}

	// Size-based radii (8 and 4.8) would overlap both; configured ones do not.
	a.HandleCollisions([]Obstacle{a, b, food})
	if a.Collisions != 0 || a.FoodEaten != 0 {
		t.Errorf("collisions=%d food=%d, want 0/0", a.Collisions, a.FoodEaten)
	}

	food.Pos = components.Position{X: 500, Y: 505.5}
	a.HandleCollisions([]Obstacle{a, b, food})
	if a.FoodEaten != 1 {
		t.Errorf("food eaten = %d, want 1 within 5+1", a.FoodEaten)
	}
}

func TestUpdateFacesDirectionOfTravel(t *testing.T) {
	cfg := config.Default()
	c := newTestCreature(t, cfg, 0, 500, 500)

	m := c.Brain.Model()
	m.Layers[len(m.Layers)-1].Biases[3] = 1 // right
	if err := c.Brain.SetModel(m); err != nil {
		t.Fatal(err)
	}

	if err := c.Update([]Obstacle{c}); err != nil {
		t.Fatal(err)
	}
	if math.Abs(c.Angle-math.Pi/2) > 1e-12 {
		t.Errorf("angle = %v, want pi/2 (east)", c.Angle)
	}
	if c.PrevPos.X != 500 || c.Pos.X != 500+cfg.Creature.Speed {
		t.Errorf("prev/pos = %v/%v", c.PrevPos.X, c.Pos.X)
	}
	if want := cfg.Creature.MaxEnergy - cfg.Creature.EnergyDecay; c.Energy.Value != want {
		t.Errorf("energy = %v, want %v", c.Energy.Value, want)
	}
}

func TestEnergyFloorKeepsCreature(t *testing.T) {
	cfg := config.Default()
	c := newTestCreature(t, cfg, 0, 500, 500)
	c.Energy.Value = cfg.Creature.EnergyDecay / 2

	for i := 0; i < 3; i++ {
		if err := c.Update([]Obstacle{c}); err != nil {
			t.Fatal(err)
		}
	}
	if c.Energy.Value != 0 {
		t.Errorf("energy = %v, want 0", c.Energy.Value)
	}
}

func TestCloneCopiesBrain(t *testing.T) {
	cfg := config.Default()
	cfg.Mutation.CloneChance = 0
	rng := rand.New(rand.NewSource(42))

	parent := newTestCreature(t, cfg, 0, 500, 500)
	parent.Brain.Randomize(rng)
	parent.FoodEaten = 3
	parent.Collisions = 2
	parent.Energy.Value = 10

	pos := components.Position{X: 100, Y: 200}
	child := parent.Clone(rng, 7, pos)

	if child.ID != 7 || child.Pos != pos || child.InitialPos != pos {
		t.Errorf("child placement = %+v", child.State())
	}
	if child.FoodEaten != 0 || child.Collisions != 0 || child.Energy.Value != cfg.Creature.MaxEnergy {
		t.Errorf("child should start fresh: %+v", child.State())
	}
	if child.Color != parent.Color {
		t.Errorf("color = %q, want %q", child.Color, parent.Color)
	}
	assertSameModel(t, child.Brain.Model(), parent.Brain.Model())

	child.Brain.Mutate(rng, 1, 1)
	if parent.Brain.Model().Layers[0].Weights[0] == child.Brain.Model().Layers[0].Weights[0] {
		t.Error("mutating the clone changed the parent")
	}
}

func TestCloneMutatesWithOwnStats(t *testing.T) {
	cfg := config.Default()
	cfg.Mutation.CloneChance = 1
	rng := rand.New(rand.NewSource(42))

	// A starving, well-fed parent would give rate 0.15 and scale 10.1. The
	// clone mutates with its own full energy and empty stomach instead.
	parent := newTestCreature(t, cfg, 0, 500, 500)
	parent.Energy.Value = 0
	parent.FoodEaten = 100

	wantRate, wantScale := systems.MutationParams(cfg.Creature.MaxEnergy, cfg.Creature.MaxEnergy, 0, cfg.Mutation)

	changed, total := 0, 0
	for i := 0; i < 200; i++ {
		child := parent.Clone(rng, uint32(i+1), components.Position{X: 50, Y: 50})
		for _, l := range child.Brain.Model().Layers {
			for _, vals := range [][]float64{l.Weights, l.Biases} {
				for _, v := range vals {
					total++
					if v != 0 {
						changed++
					}
					if math.Abs(v) > wantScale {
						t.Fatalf("perturbation %v exceeds own scale %v", v, wantScale)
					}
				}
			}
		}
	}

	rate := float64(changed) / float64(total)
	if math.Abs(rate-wantRate) > 0.02 {
		t.Errorf("clone mutation rate = %.4f, want about %v", rate, wantRate)
	}
}

func TestCreatureState(t *testing.T) {
	cfg := config.Default()
	c := newTestCreature(t, cfg, 4, 12, 34)
	c.FoodEaten = 2

	s := c.State()
	if s.ID != 4 || s.X != 12 || s.Y != 34 || s.FoodEaten != 2 || s.Color != "#808080" {
		t.Errorf("state = %+v", s)
	}
	if s.MaxEnergy != cfg.Creature.MaxEnergy {
		t.Errorf("max energy = %v", s.MaxEnergy)
	}
}

func assertSameModel(t *testing.T, got, want neural.Model) {
	t.Helper()
	if len(got.Layers) != len(want.Layers) {
		t.Fatalf("layers = %d, want %d", len(got.Layers), len(want.Layers))
	}
	for i := range want.Layers {
		for j, w := range want.Layers[i].Weights {
			if got.Layers[i].Weights[j] != w {
				t.Fatalf("layer %d weight %d = %v, want %v", i, j, got.Layers[i].Weights[j], w)
			}
		}
		for j, b := range want.Layers[i].Biases {
			if got.Layers[i].Biases[j] != b {
				t.Fatalf("layer %d bias %d = %v, want %v", i, j, got.Layers[i].Biases[j], b)
			}
		}
	}
}

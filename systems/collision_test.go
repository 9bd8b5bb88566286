package systems

import (
	"math"
	"testing"

	"github.com/Armando284/life-simulation/components"
)

func TestSteeringVelocity(t *testing.T) {
	tests := []struct {
		name                  string
		up, down, left, right float64
		want                  components.Velocity
	}{
		{"right", 0, 0, 0, 3, components.Velocity{X: 2, Y: 0}},
		{"up", 1, 0, 0, 0, components.Velocity{X: 0, Y: -2}},
		{"balanced", 1, 1, 0.5, 0.5, components.Velocity{}},
		{"all zero", 0, 0, 0, 0, components.Velocity{}},
		{"nan", math.NaN(), 0, 0, 1, components.Velocity{}},
		{"inf", math.Inf(1), 0, 0, 0, components.Velocity{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SteeringVelocity(tc.up, tc.down, tc.left, tc.right, 2)
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}

	diag := SteeringVelocity(0, 1, 0, 1, 2)
	if math.Abs(diag.Speed()-2) > 1e-12 {
		t.Errorf("diagonal speed %v, want 2", diag.Speed())
	}
}

func TestStepClamp(t *testing.T) {
	b := Bounds{Width: 100, Height: 50}
	got := Step(components.Position{X: 95, Y: 5}, components.Velocity{X: 10, Y: -10}, 10, b)
	want := components.Position{X: 90, Y: 10}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	// Clamping is idempotent.
	if again := b.Clamp(got, 10); again != got {
		t.Errorf("second clamp moved %+v to %+v", got, again)
	}
}

func TestOverlap(t *testing.T) {
	a := components.Position{X: 10, Y: 10}

	if _, ok := Overlap(a, components.Position{X: 26, Y: 10}, 8, 8); ok {
		t.Error("touching circles reported as overlapping")
	}

	c, ok := Overlap(a, components.Position{X: 20, Y: 10}, 8, 8)
	if !ok {
		t.Fatal("expected overlap")
	}
	if c.Overlap != 6 || c.NX != 1 || c.NY != 0 {
		t.Errorf("contact %+v", c)
	}

	c, ok = Overlap(a, a, 8, 8)
	if !ok || c.Overlap != 16 || c.NX != 1 {
		t.Errorf("coincident contact %+v ok=%v", c, ok)
	}
}

func TestSeparateConservesOverlap(t *testing.T) {
	a := components.Position{X: 50, Y: 50}
	b := components.Position{X: 60, Y: 50}
	c, ok := Overlap(a, b, 8, 8)
	if !ok {
		t.Fatal("expected overlap")
	}
	a0, b0 := a, b

	Separate(&a, &b, c)

	moved := a0.Distance(a) + b0.Distance(b)
	if moved != c.Overlap {
		t.Errorf("total displacement %v, want %v", moved, c.Overlap)
	}
	if a0.Distance(a) != b0.Distance(b) {
		t.Errorf("split is not even: %v vs %v", a0.Distance(a), b0.Distance(b))
	}
	if d := a.Distance(b); d != 16 {
		t.Errorf("post-separation distance %v, want 16", d)
	}
}

func TestSeparateDiagonal(t *testing.T) {
	a := components.Position{X: 50, Y: 50}
	b := components.Position{X: 53, Y: 54}
	c, _ := Overlap(a, b, 8, 8)
	a0, b0 := a, b

	Separate(&a, &b, c)

	moved := a0.Distance(a) + b0.Distance(b)
	if math.Abs(moved-c.Overlap) > 1e-12 {
		t.Errorf("total displacement %v, want %v", moved, c.Overlap)
	}
}

func TestBounce(t *testing.T) {
	c := Contact{NX: 1, NY: 0, Overlap: 2}
	va, vb := Bounce(c, 2, 4, 0.5)
	if va != (components.Velocity{X: -1, Y: 0}) || vb != (components.Velocity{X: 2, Y: 0}) {
		t.Errorf("va=%+v vb=%+v", va, vb)
	}
}

func TestFacingFromVelocity(t *testing.T) {
	tests := []struct {
		v    components.Velocity
		want float64
	}{
		{components.Velocity{X: 0, Y: -1}, 0},
		{components.Velocity{X: 1, Y: 0}, math.Pi / 2},
		{components.Velocity{X: 0, Y: 1}, math.Pi},
	}
	for _, tc := range tests {
		if got := FacingFromVelocity(tc.v); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("FacingFromVelocity(%+v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

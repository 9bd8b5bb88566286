// Package components defines the plain data shared by creatures and food.
package components

// Stats holds per-generation counters used for fitness.
type Stats struct {
	FoodEaten  int
	Collisions int
}

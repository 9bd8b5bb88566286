package components

// Body holds the physical extent of an entity. Size is the visual radius and
// is used for surface distances in vision; CollisionRadius is used for overlap.
type Body struct {
	Size            float64
	CollisionRadius float64
}

// Energy is a bounded reserve in [0, Max].
type Energy struct {
	Value float64
	Max   float64
}

// Full returns a reserve filled to max.
func Full(max float64) Energy {
	return Energy{Value: max, Max: max}
}

// Drain removes amount, flooring at zero.
func (e *Energy) Drain(amount float64) {
	e.Value -= amount
	if e.Value < 0 {
		e.Value = 0
	}
}

// Gain adds amount, capping at Max.
func (e *Energy) Gain(amount float64) {
	e.Value += amount
	if e.Value > e.Max {
		e.Value = e.Max
	}
}

// Fraction returns Value/Max.
func (e Energy) Fraction() float64 {
	if e.Max <= 0 {
		return 0
	}
	return e.Value / e.Max
}

package telemetry

import "time"

// Phase is one timed part of a simulation tick.
type Phase uint8

const (
	PhaseUpdate Phase = iota
	PhaseSelection
	PhaseReproduction
	numPhases
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseUpdate:
		return "update"
	case PhaseSelection:
		return "selection"
	case PhaseReproduction:
		return "reproduction"
	default:
		return "unknown"
	}
}

// Timing summarizes the ticks of one generation.
type Timing struct {
	Ticks  int
	Total  time.Duration
	Max    time.Duration
	Phases [numPhases]time.Duration
}

// MeanTick returns the average tick duration.
func (t Timing) MeanTick() time.Duration {
	if t.Ticks == 0 {
		return 0
	}
	return t.Total / time.Duration(t.Ticks)
}

// TicksPerSecond returns the simulation rate over the generation.
func (t Timing) TicksPerSecond() float64 {
	if t.Total <= 0 {
		return 0
	}
	return float64(t.Ticks) / t.Total.Seconds()
}

// Share returns the fraction of tick time spent in p.
func (t Timing) Share(p Phase) float64 {
	if t.Total <= 0 {
		return 0
	}
	return float64(t.Phases[p]) / float64(t.Total)
}

// Apply copies the timing into the generation's stats row.
func (t Timing) Apply(s *GenerationStats) {
	s.TickMeanMs = millis(t.MeanTick())
	s.TickMaxMs = millis(t.Max)
	s.TicksPerSecond = t.TicksPerSecond()
	s.UpdateShare = t.Share(PhaseUpdate)
	s.BoundaryMs = millis(t.Phases[PhaseSelection] + t.Phases[PhaseReproduction])
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// TickTimer accumulates tick and phase durations until Flush. A tick is
// StartTick, any number of StartPhase calls, then EndTick; each phase runs
// until the next StartPhase or EndTick.
type TickTimer struct {
	now func() time.Time

	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	acc Timing
}

// NewTickTimer creates a timer using the wall clock.
func NewTickTimer() *TickTimer {
	return &TickTimer{now: time.Now}
}

// StartTick begins timing a tick.
func (t *TickTimer) StartTick() {
	t.tickStart = t.now()
	t.inPhase = false
}

// StartPhase ends the running phase, if any, and starts p.
func (t *TickTimer) StartPhase(p Phase) {
	now := t.now()
	t.closePhase(now)
	t.phase = p
	t.phaseStart = now
	t.inPhase = true
}

// EndTick closes the running phase and adds the tick to the totals.
func (t *TickTimer) EndTick() {
	now := t.now()
	t.closePhase(now)
	t.inPhase = false

	d := now.Sub(t.tickStart)
	t.acc.Ticks++
	t.acc.Total += d
	if d > t.acc.Max {
		t.acc.Max = d
	}
}

// Flush returns the totals since the previous Flush and resets them.
func (t *TickTimer) Flush() Timing {
	out := t.acc
	t.acc = Timing{}
	return out
}

func (t *TickTimer) closePhase(now time.Time) {
	if t.inPhase {
		t.acc.Phases[t.phase] += now.Sub(t.phaseStart)
	}
}

package sim

// FocusConfig tunes the resource pool that gates time dilation.
type FocusConfig struct {
	Max          float64   // pool capacity
	RechargeRate float64   // units per real second while at level 0
	DrainRates   []float64 // units per real second per dilation level (index 0 unused)
	Infinite     bool      // debug flag: never drains, never empty
}

// DefaultFocusConfig returns the tuning used by the stock arena.
func DefaultFocusConfig() FocusConfig {
	return FocusConfig{
		Max:          100,
		RechargeRate: 12,
		DrainRates:   []float64{0, 6, 14, 25},
	}
}

// FocusMeter is the drain/recharge accumulator that limits how long a
// dilation tier can be sustained. It is pure bookkeeping: it never forces a
// level change itself - the DilationController polls IsEmpty every tick and
// reacts to depletion.
//
// Focus runs on REAL time so that sustaining deep dilation costs the same
// wall-clock budget regardless of how slow the world is.
type FocusMeter struct {
	current  float64
	max      float64
	recharge float64
	drains   []float64
	infinite bool
}

// NewFocusMeter creates a full meter from cfg.
func NewFocusMeter(cfg FocusConfig) *FocusMeter {
	if cfg.Max <= 0 {
		cfg.Max = 100
	}
	return &FocusMeter{
		current:  cfg.Max,
		max:      cfg.Max,
		recharge: cfg.RechargeRate,
		drains:   cfg.DrainRates,
		infinite: cfg.Infinite,
	}
}

// Tick updates the pool for one real-time step at the given dilation level.
// The result is clamped to [0, max] in a single step, so arbitrarily large
// deltas cannot overshoot.
func (m *FocusMeter) Tick(level int, realDt float64) {
	if level <= 0 {
		m.current += m.recharge * realDt
	} else if !m.infinite {
		m.current -= m.drainRate(level) * realDt
	}
	if m.current < 0 {
		m.current = 0
	}
	if m.current > m.max {
		m.current = m.max
	}
}

func (m *FocusMeter) drainRate(level int) float64 {
	if level < 0 || len(m.drains) == 0 {
		return 0
	}
	if level >= len(m.drains) {
		return m.drains[len(m.drains)-1]
	}
	return m.drains[level]
}

// CanEnterDilation reports whether dilation may be entered from level 0.
func (m *FocusMeter) CanEnterDilation() bool {
	return m.infinite || m.current > 0
}

// IsEmpty reports depletion. An infinite meter is never empty.
func (m *FocusMeter) IsEmpty() bool {
	return !m.infinite && m.current <= 0
}

// Current returns the pool level.
func (m *FocusMeter) Current() float64 { return m.current }

// Max returns the pool capacity.
func (m *FocusMeter) Max() float64 { return m.max }

// Fraction returns current/max in [0,1] for rendering.
func (m *FocusMeter) Fraction() float64 {
	return clamp01(m.current / m.max)
}

// SetInfinite toggles the debug never-drain flag.
func (m *FocusMeter) SetInfinite(on bool) { m.infinite = on }

// Refill sets the pool to an explicit value, clamped to [0, max].
// Used by spawn logic and tests.
func (m *FocusMeter) Refill(v float64) {
	if v < 0 {
		v = 0
	}
	if v > m.max {
		v = m.max
	}
	m.current = v
}

package sim

// Clock maintains the two time domains the simulation runs on.
//
// The WORLD domain is scaled by the current dilation factor and drives AI,
// projectile integration, turret fire intervals and hazards. The REAL domain
// is unscaled wall-clock time and drives player intents, focus accounting
// and dilation transition smoothing.
//
// The clock is an explicit dependency passed into every tick consumer -
// there is no package-level time state. Mixing domains (reading world time
// for movement but real time for a cooldown) desyncs timing; each consumer
// must pick one domain per quantity.
type Clock struct {
	tickRate      int
	baseFixedStep float64
	scale         float64

	worldNow float64 // accumulated world seconds
	realNow  float64 // accumulated real seconds
}

// DefaultFixedStep is the physics sub-step at scale 1.0 (50 Hz).
const DefaultFixedStep = 0.02

// NewClock creates a clock ticking at tickRate steps per second, scale 1.0.
func NewClock(tickRate int) *Clock {
	if tickRate <= 0 {
		tickRate = 30
	}
	return &Clock{
		tickRate:      tickRate,
		baseFixedStep: DefaultFixedStep,
		scale:         1.0,
	}
}

// RealDelta returns the unscaled per-tick delta in seconds.
func (c *Clock) RealDelta() float64 {
	return 1.0 / float64(c.tickRate)
}

// WorldDelta returns the dilation-scaled per-tick delta: RealDelta x scale.
func (c *Clock) WorldDelta() float64 {
	return c.RealDelta() * c.scale
}

// Scale returns the currently applied time scale.
func (c *Clock) Scale() float64 {
	return c.scale
}

// SetScale applies a new time scale. The fixed physics step rescales
// proportionally so collision response stays stable at deep dilation.
func (c *Clock) SetScale(s float64) {
	if s < vecEpsilon {
		s = vecEpsilon
	}
	if s > 1.0 {
		s = 1.0
	}
	c.scale = s
}

// FixedStep returns the physics sub-step at the current scale:
// baseFixedStep x scale.
func (c *Clock) FixedStep() float64 {
	return c.baseFixedStep * c.scale
}

// Advance accumulates one tick into both domains. Called exactly once per
// tick, after the scale for the tick has been settled, so every consumer of
// "this tick's time" sees a consistent value.
func (c *Clock) Advance() {
	c.worldNow += c.WorldDelta()
	c.realNow += c.RealDelta()
}

// WorldNow returns accumulated world-domain seconds.
func (c *Clock) WorldNow() float64 {
	return c.worldNow
}

// RealNow returns accumulated real-domain seconds.
func (c *Clock) RealNow() float64 {
	return c.realNow
}

// TickRate returns the configured ticks per second.
func (c *Clock) TickRate() int {
	return c.tickRate
}

package sim

// MovementMode is a capability resolved once at entity construction, not a
// per-frame probe.
type MovementMode int

const (
	ModeGrounded    MovementMode = iota // gravity fixed to -Y
	ModeWallWalking                     // gravity direction reconfigurable at runtime
)

// MomentumConfig tunes a velocity-carrying movement model.
type MomentumConfig struct {
	MaxSpeed   float64 // horizontal speed ceiling at scale 1.0, m/s
	AccelRate  float64 // m/s^2 toward the desired direction while grounded
	DecelRate  float64 // m/s^2 toward zero when no input
	AirControl float64 // accel/decel multiplier while airborne, in [0,1]

	Gravity float64 // gravity magnitude, m/s^2

	BounceThreshold   float64 // minimum speed into a surface that reflects
	BounceDamp        float64 // post-reflection speed retention, in [0,1]
	DisruptionSeconds float64 // steering lockout after a bounce

	// BoostCurve maps (1 - worldScale) to a max-speed multiplier so that
	// player-perceived speed holds roughly constant as the world slows.
	// Monotone non-decreasing; empty means no boost.
	BoostCurve Curve

	Mode MovementMode
}

// DefaultMomentumConfig returns the stock player locomotion tuning.
func DefaultMomentumConfig() MomentumConfig {
	return MomentumConfig{
		MaxSpeed:          8,
		AccelRate:         40,
		DecelRate:         30,
		AirControl:        0.35,
		Gravity:           19.6,
		BounceThreshold:   7.5,
		BounceDamp:        0.7,
		DisruptionSeconds: 0.45,
		BoostCurve: Curve{
			{Key: 0.0, Value: 1.0},
			{Key: 0.5, Value: 1.6},
			{Key: 0.95, Value: 3.2},
		},
		Mode: ModeGrounded,
	}
}

// MomentumBody integrates per-entity velocity on WORLD time: steering
// acceleration toward a desired direction, separate gravity integration
// with a reconfigurable down direction, and collision reflection with a
// post-bounce steering lockout.
type MomentumBody struct {
	cfg MomentumConfig

	Velocity Vec3

	down       Vec3
	disruption float64
}

// NewMomentumBody creates a body at rest with down = -Y.
func NewMomentumBody(cfg MomentumConfig) *MomentumBody {
	return &MomentumBody{
		cfg:  cfg,
		down: Vec3{0, -1, 0},
	}
}

// Config returns the body's tuning.
func (b *MomentumBody) Config() MomentumConfig { return b.cfg }

// Down returns the current gravity direction (unit vector).
func (b *MomentumBody) Down() Vec3 { return b.down }

// SetDown reorients gravity for wall walking. Ignored for grounded-mode
// bodies and for degenerate directions.
func (b *MomentumBody) SetDown(dir Vec3) {
	if b.cfg.Mode != ModeWallWalking {
		return
	}
	n := dir.Normalized()
	if n.IsZero() {
		return
	}
	b.down = n
}

// Disrupted reports whether steering is locked out after a bounce.
func (b *MomentumBody) Disrupted() bool { return b.disruption > 0 }

// DisruptionRemaining returns the seconds left on the post-bounce lockout.
func (b *MomentumBody) DisruptionRemaining() float64 { return b.disruption }

// Step advances the velocity by one world-time step.
//
// desiredDir is the steering input on the movement plane (unit or zero);
// grounded selects full steering authority vs air control; worldScale is the
// clock scale this tick, feeding the speed boost so the player keeps pace
// with a slowed world.
func (b *MomentumBody) Step(desiredDir Vec3, grounded bool, worldScale, worldDt float64) {
	if b.disruption > 0 {
		// Coast on the reflected velocity: steering input is ignored, only
		// gravity still applies.
		b.disruption -= worldDt
		if !grounded {
			b.Velocity = b.Velocity.Add(b.down.Scale(b.cfg.Gravity * worldDt))
		}
		return
	}

	// Split velocity into the movement plane (perpendicular to down) and
	// the gravity axis.
	along := b.Velocity.Dot(b.down)
	planar := b.Velocity.Sub(b.down.Scale(along))

	maxSpeed := b.cfg.MaxSpeed * b.cfg.BoostCurve.Eval(1-worldScale)

	rate := b.cfg.AccelRate
	if desiredDir.IsZero() {
		rate = b.cfg.DecelRate
	}
	if !grounded {
		rate *= b.cfg.AirControl
	}

	target := desiredDir.Normalized().Scale(maxSpeed)
	planar = planar.MoveToward(target, rate*worldDt)

	if grounded {
		// Standing on the surface: shed any residual speed into it.
		if along > 0 {
			along = 0
		}
	} else {
		along += b.cfg.Gravity * worldDt
	}

	b.Velocity = planar.Add(b.down.Scale(along))
}

// Integrate returns pos advanced by the current velocity over worldDt.
func (b *MomentumBody) Integrate(pos Vec3, worldDt float64) Vec3 {
	return pos.Add(b.Velocity.Scale(worldDt))
}

// Bounce reflects the velocity about a collision normal when the speed into
// the surface exceeds the threshold, scales it by the damp factor, and
// starts the steering lockout. Returns whether a reflection happened.
//
// Velocities below epsilon never reflect; neither do grazing contacts.
func (b *MomentumBody) Bounce(normal Vec3) bool {
	n := normal.Normalized()
	if n.IsZero() || b.Velocity.Length() < vecEpsilon {
		return false
	}
	speedInto := -b.Velocity.Dot(n)
	if speedInto <= b.cfg.BounceThreshold {
		return false
	}
	b.Velocity = b.Velocity.Reflect(n).Scale(b.cfg.BounceDamp)
	b.disruption = b.cfg.DisruptionSeconds
	return true
}

package sim

import "math"

// CatchState is the bullet-catch lifecycle.
type CatchState int

const (
	CatchIdle     CatchState = iota // nothing held
	CatchReaching                   // intent held in the deepest tier, scanning
	CatchHolding                    // projectile bound to the hand anchor
)

// String returns a human-readable state name.
func (s CatchState) String() string {
	switch s {
	case CatchIdle:
		return "idle"
	case CatchReaching:
		return "reaching"
	case CatchHolding:
		return "holding"
	default:
		return "unknown"
	}
}

// CatchConfig tunes bullet catching.
type CatchConfig struct {
	Radius       float64 // max catch distance, meters
	AngleDegrees float64 // half-cone around the facing direction
	ThrowSpeed   float64 // m/s applied on release
}

// DefaultCatchConfig returns the stock catch tuning.
func DefaultCatchConfig() CatchConfig {
	return CatchConfig{
		Radius:       3.5,
		AngleDegrees: 55,
		ThrowSpeed:   45,
	}
}

// CatchController is the per-player state machine gating bullet
// catch/hold/throw. Catching is only reachable in the deepest dilation
// tier; exiting that tier forcibly returns any held projectile to free
// physics. A held projectile is exclusively owned: no other catcher's scan
// can select it.
//
// Invalid requests (throw with nothing held, catch while holding) are
// expected no-ops from unconstrained input polling, not errors.
type CatchController struct {
	cfg   CatchConfig
	state CatchState
	held  *Projectile
}

// NewCatchController creates an idle controller.
func NewCatchController(cfg CatchConfig) *CatchController {
	return &CatchController{cfg: cfg}
}

// State returns the current catch state.
func (c *CatchController) State() CatchState { return c.state }

// Held returns the bound projectile, nil unless holding.
func (c *CatchController) Held() *Projectile { return c.held }

// Tick advances the state machine for one tick. projectiles is the live
// set to scan; deepest is the dilation gate for this tick.
func (c *CatchController) Tick(owner *Entity, in Intents, deepest bool, projectiles []*Projectile) {
	if !deepest {
		// Leaving the deepest tier drops anything held, with no throw
		// impulse: the projectile simply falls back under world physics.
		if c.state == CatchHolding && c.held != nil {
			c.held.release(Vec3{})
		}
		c.held = nil
		c.state = CatchIdle
		return
	}

	switch c.state {
	case CatchIdle:
		if in.CatchHeld {
			c.state = CatchReaching
		}

	case CatchReaching:
		if !in.CatchHeld {
			c.state = CatchIdle
			return
		}
		if p := c.selectTarget(owner, projectiles); p != nil {
			p.catch(owner.ID)
			c.held = p
			c.state = CatchHolding
		}

	case CatchHolding:
		if c.held == nil {
			c.state = CatchIdle
			return
		}
		// Track the hand every tick while held.
		c.held.Pos = owner.HandAnchor()
		if in.Throw {
			dir := owner.Facing.Normalized()
			if dir.IsZero() {
				dir = Vec3{0, 0, 1}
			}
			c.held.release(dir.Scale(c.cfg.ThrowSpeed))
			c.held = nil
			c.state = CatchIdle
		}
	}
}

// selectTarget picks the nearest catchable, un-owned projectile within the
// catch radius and cone. Ties break by encounter order: the first of equal
// distance wins.
func (c *CatchController) selectTarget(owner *Entity, projectiles []*Projectile) *Projectile {
	hand := owner.HandAnchor()
	facing := owner.Facing.Normalized()
	minDot := math.Cos(c.cfg.AngleDegrees * math.Pi / 180)

	var best *Projectile
	bestDist := math.MaxFloat64

	for _, p := range projectiles {
		if p.Held() || !p.Archetype.Catchable {
			continue
		}
		if p.OwnerID == owner.ID {
			continue
		}
		offset := p.Pos.Sub(hand)
		dist := offset.Length()
		if dist > c.cfg.Radius {
			continue
		}
		if dist >= vecEpsilon && !facing.IsZero() {
			if offset.Scale(1/dist).Dot(facing) < minDot {
				continue
			}
		}
		if dist < bestDist {
			bestDist = dist
			best = p
		}
	}
	return best
}

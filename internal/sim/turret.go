package sim

import (
	"errors"
	"math"
	"math/rand"
)

// Turret is a fixed ranged attacker. Its fire interval runs on WORLD time,
// so deep dilation slows its rate of fire along with everything else it
// shoots at. Each shot solves the low ballistic arc to the target and falls
// back to direct aim when no arc exists.
type Turret struct {
	E        *Entity
	TargetID string

	disabled bool
}

// NewTurret builds a turret aimed at targetID. A turret without a target is
// a configuration fault: the constructor reports it once and the turret
// stays disabled instead of failing every tick.
func NewTurret(e *Entity, targetID string) (*Turret, error) {
	t := &Turret{E: e, TargetID: targetID}
	if targetID == "" {
		t.disabled = true
		return t, errors.New("turret: no target assigned, disabling")
	}
	return t, nil
}

// Disabled reports whether the turret was shut down at construction.
func (t *Turret) Disabled() bool { return t.disabled }

// Tick advances the turret one world-time step, returning a projectile
// when it fires this tick.
func (t *Turret) Tick(target *Entity, gravity float64, rng *rand.Rand, tick int64, worldDt float64) *Projectile {
	if t.disabled || !t.E.Alive() {
		return nil
	}
	t.E.tickWeapon(worldDt)

	if target == nil || !target.Alive() {
		return nil
	}

	aim := target.Pos.Add(Vec3{0, EntityRadius, 0})
	muzzle := t.E.HandAnchor()
	t.E.Facing = aim.Sub(muzzle).Horizontal().Normalized()

	if !t.E.readyToFire() {
		return nil
	}

	dir, ok := SolveBallisticArc(muzzle, aim, t.E.Weapon.ProjectileSpeed, gravity)
	if !ok {
		// Unreachable arc: direct aim, the shot will fall short.
		dir = aim.Sub(muzzle).Normalized()
		if dir.IsZero() {
			return nil
		}
	}
	dir = applySpread(dir, t.E.Weapon.SpreadDegrees, rng)

	t.E.consumeShot()
	return NewProjectile(t.E, dir, tick)
}

// applySpread perturbs dir by a random cone angle up to spreadDegrees.
func applySpread(dir Vec3, spreadDegrees float64, rng *rand.Rand) Vec3 {
	if spreadDegrees <= 0 || rng == nil {
		return dir
	}
	max := spreadDegrees * math.Pi / 180

	// Build an orthonormal frame around dir and tilt within the cone.
	up := Vec3{0, 1, 0}
	if math.Abs(dir.Dot(up)) > 0.99 {
		up = Vec3{1, 0, 0}
	}
	right := Vec3{
		dir.Y*up.Z - dir.Z*up.Y,
		dir.Z*up.X - dir.X*up.Z,
		dir.X*up.Y - dir.Y*up.X,
	}.Normalized()
	above := Vec3{
		right.Y*dir.Z - right.Z*dir.Y,
		right.Z*dir.X - right.X*dir.Z,
		right.X*dir.Y - right.Y*dir.X,
	}

	tilt := rng.Float64() * max
	spin := rng.Float64() * 2 * math.Pi
	offset := right.Scale(math.Cos(spin)).Add(above.Scale(math.Sin(spin))).Scale(math.Tan(tilt))
	return dir.Add(offset).Normalized()
}

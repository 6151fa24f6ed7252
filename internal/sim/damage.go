package sim

// DamageResolver is the single path that mutates entity health. Attack
// producers (projectile impacts, blasts, shockwaves) compute a final amount
// through the falloff helpers and apply it here.
type DamageResolver struct {
	// onDamage observers fire after every successful application, with the
	// target's remaining health. Registered once at engine construction.
	onDamage []func(target *Entity, amount, remaining float64)
}

// NewDamageResolver creates an empty resolver.
func NewDamageResolver() *DamageResolver {
	return &DamageResolver{}
}

// OnDamage registers a damage observer.
func (r *DamageResolver) OnDamage(fn func(target *Entity, amount, remaining float64)) {
	if fn != nil {
		r.onDamage = append(r.onDamage, fn)
	}
}

// ApplyDamage deals amount to the target's health record. Dead or
// invulnerable targets are a no-op; the return value reports whether health
// actually changed.
func (r *DamageResolver) ApplyDamage(target *Entity, amount float64) bool {
	if target == nil || target.Health == nil {
		return false
	}
	if !target.Health.damage(amount) {
		return false
	}
	for _, fn := range r.onDamage {
		fn(target, amount, target.Health.Current())
	}
	return true
}

// ApplyHeal restores amount to the target, clamped to max. Dead targets
// stay dead.
func (r *DamageResolver) ApplyHeal(target *Entity, amount float64) bool {
	if target == nil || target.Health == nil {
		return false
	}
	return target.Health.heal(amount)
}

// TravelDamage applies a weapon's distance falloff to its base damage.
// Distance is the straight line from the projectile's recorded spawn
// position to the impact position, not path length.
func TravelDamage(base float64, falloff Curve, spawn, impact Vec3) float64 {
	return base * falloff.Eval(spawn.DistanceTo(impact))
}

// BlastDamage computes the radial blast and shrapnel components for a
// target at distance dist from the blast center.
//
// With ratio = clamp01(1 - dist/radius): the blast component scales
// linearly to zero at the edge; the shrapnel component scales between half
// and full strength, never dropping below half inside the radius. Targets
// beyond the radius are excluded entirely (ok == false) - callers find the
// affected set with a radius query, not by filtering afterwards.
func BlastDamage(blast, shrapnel, radius, dist float64) (blastPart, shrapnelPart float64, ok bool) {
	if radius < vecEpsilon {
		// Degenerate radius: only a dead-center hit counts, at full strength.
		if dist < vecEpsilon {
			return blast, shrapnel, true
		}
		return 0, 0, false
	}
	if dist > radius {
		return 0, 0, false
	}
	ratio := clamp01(1 - dist/radius)
	return blast * ratio, shrapnel * lerp(0.5, 1.0, ratio), true
}

// HitSet tracks targets already damaged by one hazard instance (a single
// projectile impact, one grenade detonation, one shockwave traversal) so
// repeated overlap checks apply damage at most once per target.
type HitSet map[string]struct{}

// NewHitSet creates an empty per-hazard hit set.
func NewHitSet() HitSet {
	return make(HitSet)
}

// Mark records the target and reports whether this was its first hit.
func (s HitSet) Mark(id string) bool {
	if _, seen := s[id]; seen {
		return false
	}
	s[id] = struct{}{}
	return true
}

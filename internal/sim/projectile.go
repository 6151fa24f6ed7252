package sim

import "fmt"

// Projectile system constants.
const (
	MaxProjectiles   = 256 // hard cap to bound per-tick work
	ProjectileRadius = 0.1 // collision radius, meters
)

// Projectile is a free-flying attack entity integrated on WORLD time. Its
// spawn position is recorded so travel falloff measures the straight line
// from launch to impact.
//
// While caught, a projectile is kinematic: it skips integration entirely
// and tracks its holder's hand anchor instead.
type Projectile struct {
	ID        string
	OwnerID   string
	Archetype WeaponArchetype

	Pos Vec3
	Vel Vec3

	SpawnPos Vec3
	age      float64

	holderID string // non-empty while caught
}

// NewProjectile launches a shot from the owner's hand anchor along dir.
func NewProjectile(owner *Entity, dir Vec3, tick int64) *Projectile {
	d := dir.Normalized()
	if d.IsZero() {
		d = owner.Facing
	}
	start := owner.HandAnchor().Add(d.Scale(EntityRadius + 2*ProjectileRadius))
	return &Projectile{
		ID:        fmt.Sprintf("proj_%d_%s", tick, owner.ID),
		OwnerID:   owner.ID,
		Archetype: owner.Weapon,
		Pos:       start,
		Vel:       d.Scale(owner.Weapon.ProjectileSpeed),
		SpawnPos:  start,
	}
}

// Held reports whether the projectile is currently caught.
func (p *Projectile) Held() bool { return p.holderID != "" }

// HolderID returns the catcher's entity ID, or "" in free flight.
func (p *Projectile) HolderID() string { return p.holderID }

// Step integrates one world-time step under gravity and ages the shot.
// Returns false once the projectile should be removed (expired or buried).
// Held projectiles neither move nor age; their holder repositions them.
func (p *Projectile) Step(gravity, worldDt float64) bool {
	if p.Held() {
		return true
	}
	p.Vel.Y -= gravity * worldDt
	p.Pos = p.Pos.Add(p.Vel.Scale(worldDt))
	p.age += worldDt

	if p.Pos.Y < -1 {
		return false // below the arena floor
	}
	return p.age < p.Archetype.Lifetime
}

// ImpactDamage returns the travel-falloff damage for an impact at the
// current position.
func (p *Projectile) ImpactDamage() float64 {
	return TravelDamage(p.Archetype.BaseDamage, p.Archetype.Falloff, p.SpawnPos, p.Pos)
}

// CheckHit tests collision against an entity. Dead targets and the owner
// are never hit; neither is anything while the projectile is held.
func (p *Projectile) CheckHit(target *Entity) bool {
	if p.Held() || !target.Alive() {
		return false
	}
	if target.ID == p.OwnerID {
		return false
	}
	if target.Health.Invulnerable() {
		return false
	}
	center := target.Pos.Add(Vec3{0, EntityRadius, 0})
	return p.Pos.DistanceTo(center) < ProjectileRadius+EntityRadius
}

// catch freezes the projectile and binds it to a holder. The holder keeps
// it glued to the hand anchor every tick.
func (p *Projectile) catch(holderID string) {
	p.holderID = holderID
	p.Vel = Vec3{}
}

// release returns the projectile to free physics with the given velocity.
// The spawn position resets so travel falloff measures from the throw.
func (p *Projectile) release(vel Vec3) {
	p.holderID = ""
	p.Vel = vel
	p.SpawnPos = p.Pos
	p.age = 0
}

package sim

import "github.com/google/uuid"

// EntityKind classifies simulated actors.
type EntityKind int

const (
	KindPlayer EntityKind = iota
	KindEnemy
	KindTurret
)

// String returns a human-readable kind name.
func (k EntityKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindTurret:
		return "turret"
	default:
		return "unknown"
	}
}

// ClockAffinity selects which time domain drives an entity.
type ClockAffinity int

const (
	// WorldTime entities (enemies, turrets, projectiles) advance on the
	// dilation-scaled clock.
	WorldTime ClockAffinity = iota
	// RealTime entities (the player's intent sampling) advance unscaled.
	RealTime
)

// EntityRadius is the broad collision radius of a humanoid actor, meters.
const EntityRadius = 0.5

// Entity is any simulated actor: player, enemy or turret. Projectiles and
// grenades are lighter-weight and have their own types.
type Entity struct {
	ID   string
	Name string
	Kind EntityKind

	Affinity ClockAffinity

	Pos    Vec3
	Facing Vec3 // unit, horizontal for ground actors

	Body   *MomentumBody
	Health *HealthRecord
	Weapon WeaponArchetype

	// HandOffset positions the catch anchor relative to Pos; a caught
	// projectile tracks Pos + HandOffset every tick while held.
	HandOffset Vec3

	// Player-only subsystems; nil for other kinds.
	Wake  *WakeTracker
	Catch *CatchController

	// Weapon firing state, world time.
	fireCooldown float64
	magazine     int
	reloadLeft   float64

	// Pending per-tick intents, drained by the engine.
	intents Intents
}

// EntityOptions configures spawn-time entity construction.
type EntityOptions struct {
	Kind      EntityKind
	Pos       Vec3
	MaxHealth float64
	Weapon    string
	Overrides WeaponOverrides
	Momentum  *MomentumConfig // nil uses DefaultMomentumConfig
}

// NewEntity constructs an entity with a full health record and a resolved
// weapon. Overrides are folded into the archetype here, once.
func NewEntity(name string, opts EntityOptions) *Entity {
	if opts.MaxHealth <= 0 {
		opts.MaxHealth = 100
	}
	mcfg := DefaultMomentumConfig()
	if opts.Momentum != nil {
		mcfg = *opts.Momentum
	}
	affinity := WorldTime
	if opts.Kind == KindPlayer {
		affinity = RealTime
	}
	return &Entity{
		ID:         uuid.NewString(),
		Name:       name,
		Kind:       opts.Kind,
		Affinity:   affinity,
		Pos:        opts.Pos,
		Facing:     Vec3{0, 0, 1},
		Body:       NewMomentumBody(mcfg),
		Health:     NewHealthRecord(opts.MaxHealth),
		Weapon:     GetArchetype(opts.Weapon).Resolve(opts.Overrides),
		HandOffset: Vec3{0, 1.4, 0.4},
		magazine:   GetArchetype(opts.Weapon).Resolve(opts.Overrides).MagazineSize,
	}
}

// HandAnchor returns the world-space catch anchor.
func (e *Entity) HandAnchor() Vec3 {
	return e.Pos.Add(e.HandOffset)
}

// Alive reports whether the entity can still act.
func (e *Entity) Alive() bool {
	return e.Health != nil && !e.Health.IsDead()
}

// Grounded reports ground contact. The prototype arena floor is the Y=0
// plane; wall-walkers are considered grounded whenever they are on their
// current surface, which the engine approximates with the same test along
// the body's down axis.
func (e *Entity) Grounded() bool {
	if e.Body != nil && e.Body.Config().Mode == ModeWallWalking {
		// Distance to the surface along down: on the floor plane this
		// reduces to the Y test below.
		return e.Pos.Dot(e.Body.Down().Scale(-1)) <= vecEpsilon
	}
	return e.Pos.Y <= vecEpsilon
}

// readyToFire reports whether the fire interval and magazine allow a shot.
func (e *Entity) readyToFire() bool {
	if e.fireCooldown > 0 || e.reloadLeft > 0 {
		return false
	}
	return e.Weapon.MagazineSize == 0 || e.magazine > 0
}

// consumeShot starts the fire cooldown and spends a round, beginning a
// reload on an emptied magazine.
func (e *Entity) consumeShot() {
	e.fireCooldown = e.Weapon.FireInterval
	if e.Weapon.MagazineSize > 0 {
		e.magazine--
		if e.magazine <= 0 {
			e.reloadLeft = e.Weapon.ReloadSeconds
		}
	}
}

// tickWeapon advances fire and reload timers on WORLD time.
func (e *Entity) tickWeapon(worldDt float64) {
	if e.fireCooldown > 0 {
		e.fireCooldown -= worldDt
	}
	if e.reloadLeft > 0 {
		e.reloadLeft -= worldDt
		if e.reloadLeft <= 0 {
			e.magazine = e.Weapon.MagazineSize
		}
	}
}

package sim

import "fmt"

// MaxGrenades bounds live grenades per tick.
const MaxGrenades = 32

// Grenade is a fused explosive integrated on WORLD time. On detonation the
// engine queries the blast radius and routes both falloff components
// through the DamageResolver.
type Grenade struct {
	ID      string
	OwnerID string

	Pos Vec3
	Vel Vec3

	FuseLeft       float64 // world seconds until detonation
	BlastDamage    float64
	ShrapnelDamage float64
	BlastRadius    float64
}

// GrenadeConfig tunes a thrown grenade.
type GrenadeConfig struct {
	FuseSeconds    float64
	BlastDamage    float64
	ShrapnelDamage float64
	BlastRadius    float64
	ThrowSpeed     float64
}

// DefaultGrenadeConfig matches the launcher archetype payload.
func DefaultGrenadeConfig() GrenadeConfig {
	return GrenadeConfig{
		FuseSeconds:    2.5,
		BlastDamage:    80,
		ShrapnelDamage: 40,
		BlastRadius:    5,
		ThrowSpeed:     14,
	}
}

// NewGrenade arms a grenade thrown from pos along dir.
func NewGrenade(ownerID string, pos, dir Vec3, cfg GrenadeConfig, tick int64) *Grenade {
	d := dir.Normalized()
	return &Grenade{
		ID:             fmt.Sprintf("gren_%d_%s", tick, ownerID),
		OwnerID:        ownerID,
		Pos:            pos,
		Vel:            d.Scale(cfg.ThrowSpeed).Add(Vec3{0, cfg.ThrowSpeed * 0.35, 0}),
		FuseLeft:       cfg.FuseSeconds,
		BlastDamage:    cfg.BlastDamage,
		ShrapnelDamage: cfg.ShrapnelDamage,
		BlastRadius:    cfg.BlastRadius,
	}
}

// Step integrates one world-time step. Returns true once the fuse has run
// out and the grenade must detonate.
func (g *Grenade) Step(gravity, worldDt float64) bool {
	g.Vel.Y -= gravity * worldDt
	g.Pos = g.Pos.Add(g.Vel.Scale(worldDt))

	// Roll along the floor rather than tunneling through it.
	if g.Pos.Y < 0 {
		g.Pos.Y = 0
		if g.Vel.Y < 0 {
			g.Vel.Y = -g.Vel.Y * 0.3
		}
		g.Vel.X *= 0.8
		g.Vel.Z *= 0.8
	}

	g.FuseLeft -= worldDt
	return g.FuseLeft <= 0
}

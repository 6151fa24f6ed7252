package sim

// WeaponArchetype is an immutable per-weapon tuning record. Instances never
// mutate archetypes; per-entity variations go through WeaponOverrides and
// are resolved once at construction.
type WeaponArchetype struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	FireInterval    float64 `json:"fireInterval"` // world seconds between shots
	MagazineSize    int     `json:"magazineSize"`
	ReloadSeconds   float64 `json:"reloadSeconds"`
	ProjectileSpeed float64 `json:"projectileSpeed"` // m/s
	BaseDamage      float64 `json:"baseDamage"`
	SpreadDegrees   float64 `json:"spreadDegrees"`
	Lifetime        float64 `json:"lifetime"` // world seconds before a shot expires

	// Falloff maps travel distance (meters) to a damage multiplier.
	// Monotonically non-increasing.
	Falloff Curve `json:"-"`

	// Explosive payload; zero radius means no blast on impact.
	BlastDamage    float64 `json:"blastDamage"`
	ShrapnelDamage float64 `json:"shrapnelDamage"`
	BlastRadius    float64 `json:"blastRadius"`

	// Catchable marks projectiles that a player in the deepest dilation
	// tier can pluck out of the air.
	Catchable bool `json:"catchable"`
}

// Archetypes is the authored weapon table.
var Archetypes = map[string]WeaponArchetype{
	"pistol": {
		ID:              "pistol",
		Name:            "Pistol",
		FireInterval:    0.4,
		MagazineSize:    12,
		ReloadSeconds:   1.2,
		ProjectileSpeed: 40,
		BaseDamage:      20,
		SpreadDegrees:   1.5,
		Lifetime:        4,
		Falloff: Curve{
			{Key: 0, Value: 1.0},
			{Key: 10, Value: 1.0},
			{Key: 30, Value: 0.7},
			{Key: 45, Value: 0.5},
			{Key: 60, Value: 0.3},
		},
		Catchable: true,
	},
	"rifle": {
		ID:              "rifle",
		Name:            "Rifle",
		FireInterval:    0.12,
		MagazineSize:    30,
		ReloadSeconds:   1.8,
		ProjectileSpeed: 70,
		BaseDamage:      12,
		SpreadDegrees:   2.5,
		Lifetime:        4,
		Falloff: Curve{
			{Key: 0, Value: 1.0},
			{Key: 20, Value: 1.0},
			{Key: 60, Value: 0.55},
			{Key: 90, Value: 0.35},
		},
		Catchable: true,
	},
	"launcher": {
		ID:              "launcher",
		Name:            "Grenade Launcher",
		FireInterval:    1.6,
		MagazineSize:    4,
		ReloadSeconds:   2.5,
		ProjectileSpeed: 22,
		BaseDamage:      0, // damage comes entirely from the blast
		SpreadDegrees:   0.5,
		Lifetime:        6,
		Falloff:         Curve{{Key: 0, Value: 1.0}},
		BlastDamage:     80,
		ShrapnelDamage:  40,
		BlastRadius:     5,
		Catchable:       false,
	},
	"turret-bolt": {
		ID:              "turret-bolt",
		Name:            "Turret Bolt",
		FireInterval:    1.0,
		MagazineSize:    0, // belt-fed, never reloads
		ProjectileSpeed: 28,
		BaseDamage:      15,
		SpreadDegrees:   1.0,
		Lifetime:        6,
		Falloff: Curve{
			{Key: 0, Value: 1.0},
			{Key: 15, Value: 1.0},
			{Key: 50, Value: 0.4},
		},
		Catchable: true,
	},
}

// GetArchetype returns the archetype for id, defaulting to the pistol.
func GetArchetype(id string) WeaponArchetype {
	if a, ok := Archetypes[id]; ok {
		return a
	}
	return Archetypes["pistol"]
}

// AllArchetypes returns the weapon table as a slice.
func AllArchetypes() []WeaponArchetype {
	out := make([]WeaponArchetype, 0, len(Archetypes))
	for _, a := range Archetypes {
		out = append(out, a)
	}
	return out
}

// WeaponOverrides carries optional per-instance tuning. A nil field means
// "use the archetype default"; overrides resolve once at entity
// construction, never via sentinel checks at use sites.
type WeaponOverrides struct {
	FireInterval    *float64
	ProjectileSpeed *float64
	BaseDamage      *float64
	MagazineSize    *int
	SpreadDegrees   *float64
}

// Resolve returns a copy of the archetype with the overrides applied.
func (a WeaponArchetype) Resolve(o WeaponOverrides) WeaponArchetype {
	if o.FireInterval != nil {
		a.FireInterval = *o.FireInterval
	}
	if o.ProjectileSpeed != nil {
		a.ProjectileSpeed = *o.ProjectileSpeed
	}
	if o.BaseDamage != nil {
		a.BaseDamage = *o.BaseDamage
	}
	if o.MagazineSize != nil {
		a.MagazineSize = *o.MagazineSize
	}
	if o.SpreadDegrees != nil {
		a.SpreadDegrees = *o.SpreadDegrees
	}
	return a
}

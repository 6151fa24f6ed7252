package sim

import (
	"math"
	"testing"
)

func TestTravelDamagePistolFalloff(t *testing.T) {
	pistol := GetArchetype("pistol")

	tests := []struct {
		name string
		dist float64
		want float64
	}{
		{"point blank", 0, 20},
		{"inside flat range", 5, 20},
		{"flat range edge", 10, 20},
		{"mid falloff", 30, 14},
		{"long shot", 45, 10},
		{"past last key", 100, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spawn := Vec3{X: 10, Y: 1.4, Z: 10}
			impact := spawn.Add(Vec3{X: tt.dist})
			got := TravelDamage(pistol.BaseDamage, pistol.Falloff, spawn, impact)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("TravelDamage at %vm = %v, want %v", tt.dist, got, tt.want)
			}
		})
	}
}

func TestTravelDamageUsesStraightLine(t *testing.T) {
	pistol := GetArchetype("pistol")

	// Spawn and impact 5m apart: full damage regardless of the path the
	// projectile actually flew.
	got := TravelDamage(pistol.BaseDamage, pistol.Falloff, Vec3{}, Vec3{X: 3, Y: 4})
	if math.Abs(got-20) > 1e-9 {
		t.Errorf("TravelDamage = %v, want 20", got)
	}
}

func TestBlastDamage(t *testing.T) {
	launcher := GetArchetype("launcher")

	tests := []struct {
		name         string
		dist         float64
		wantBlast    float64
		wantShrapnel float64
		wantOK       bool
	}{
		{"dead center", 0, 80, 40, true},
		{"half radius", 2.5, 40, 30, true},
		{"radius edge", 5, 0, 20, true},
		{"just outside", 5.01, 0, 0, false},
		{"far outside", 50, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blast, shrapnel, ok := BlastDamage(
				launcher.BlastDamage, launcher.ShrapnelDamage, launcher.BlastRadius, tt.dist)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if math.Abs(blast-tt.wantBlast) > 1e-9 {
				t.Errorf("blast = %v, want %v", blast, tt.wantBlast)
			}
			if math.Abs(shrapnel-tt.wantShrapnel) > 1e-9 {
				t.Errorf("shrapnel = %v, want %v", shrapnel, tt.wantShrapnel)
			}
		})
	}
}

func TestBlastDamageDegenerateRadius(t *testing.T) {
	if _, _, ok := BlastDamage(80, 40, 0, 1); ok {
		t.Error("zero radius should exclude everything off-center")
	}
	blast, shrapnel, ok := BlastDamage(80, 40, 0, 0)
	if !ok || blast != 80 || shrapnel != 40 {
		t.Errorf("dead-center zero-radius hit = %v/%v ok=%v, want full strength", blast, shrapnel, ok)
	}
}

func TestHitSetMarksOnce(t *testing.T) {
	s := NewHitSet()

	if !s.Mark("a") {
		t.Error("first mark should report true")
	}
	if s.Mark("a") {
		t.Error("second mark of the same target should report false")
	}
	if !s.Mark("b") {
		t.Error("a different target is independent")
	}
}

func TestDamageResolverAppliesAndObserves(t *testing.T) {
	r := NewDamageResolver()
	e := NewEntity("dummy", EntityOptions{MaxHealth: 100})

	var gotAmount, gotRemaining float64
	calls := 0
	r.OnDamage(func(target *Entity, amount, remaining float64) {
		calls++
		gotAmount, gotRemaining = amount, remaining
	})

	if !r.ApplyDamage(e, 30) {
		t.Fatal("damage to a healthy target should apply")
	}
	if e.Health.Current() != 70 {
		t.Errorf("Current = %v, want 70", e.Health.Current())
	}
	if calls != 1 || gotAmount != 30 || gotRemaining != 70 {
		t.Errorf("observer saw calls=%d amount=%v remaining=%v", calls, gotAmount, gotRemaining)
	}
}

func TestDamageResolverSkipsInvulnerable(t *testing.T) {
	r := NewDamageResolver()
	e := NewEntity("dummy", EntityOptions{MaxHealth: 100})
	e.Health.SetInvulnerable(true)

	if r.ApplyDamage(e, 30) {
		t.Error("invulnerable target should not take damage")
	}
	if e.Health.Current() != 100 {
		t.Errorf("Current = %v, want 100", e.Health.Current())
	}

	e.Health.SetInvulnerable(false)
	r.ApplyDamage(e, 40)
	if !r.ApplyHeal(e, 15) {
		t.Error("heal should apply to a living target")
	}
	if e.Health.Current() != 75 {
		t.Errorf("Current after heal = %v, want 75", e.Health.Current())
	}
}

func TestHealthDeathFiresOnce(t *testing.T) {
	r := NewDamageResolver()
	e := NewEntity("dummy", EntityOptions{MaxHealth: 50})

	deaths := 0
	e.Health.OnDeath(func() { deaths++ })

	r.ApplyDamage(e, 49)
	if e.Health.IsDead() || deaths != 0 {
		t.Fatal("target died early")
	}

	r.ApplyDamage(e, 10) // overkill clamps at zero
	if !e.Health.IsDead() {
		t.Fatal("target should be dead")
	}
	if e.Health.Current() != 0 {
		t.Errorf("Current = %v, want 0", e.Health.Current())
	}
	if deaths != 1 {
		t.Fatalf("death observers fired %d times, want 1", deaths)
	}

	// Dead targets ignore further damage and healing; the observer never
	// fires again.
	if r.ApplyDamage(e, 10) {
		t.Error("damage to a dead target should be a no-op")
	}
	if r.ApplyHeal(e, 10) {
		t.Error("heal to a dead target should be a no-op")
	}
	if deaths != 1 {
		t.Errorf("death observers fired %d times after post-death hits", deaths)
	}
}

func TestHealClampsAtMax(t *testing.T) {
	r := NewDamageResolver()
	e := NewEntity("dummy", EntityOptions{MaxHealth: 100})

	r.ApplyDamage(e, 10)
	r.ApplyHeal(e, 500)
	if e.Health.Current() != 100 {
		t.Errorf("Current = %v, want 100", e.Health.Current())
	}
}

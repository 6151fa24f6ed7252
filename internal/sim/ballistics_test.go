package sim

import (
	"math"
	"testing"
)

// simulateFlight integrates a launch under gravity and returns the miss
// distance once the projectile has covered the horizontal range to target.
func simulateFlight(origin, target, dir Vec3, speed, gravity float64) float64 {
	rangeTo := target.Sub(origin).Horizontal().Length()
	pos := origin
	vel := dir.Scale(speed)
	dt := 0.0005
	for i := 0; i < 400000; i++ {
		vel.Y -= gravity * dt
		pos = pos.Add(vel.Scale(dt))
		if pos.Sub(origin).Horizontal().Length() >= rangeTo {
			return pos.Sub(target).Length()
		}
	}
	return math.Inf(1)
}

func TestSolveBallisticArcHitsTarget(t *testing.T) {
	tests := []struct {
		name   string
		origin Vec3
		target Vec3
		speed  float64
	}{
		{"flat 20m", Vec3{}, Vec3{X: 20}, 30},
		{"uphill", Vec3{}, Vec3{X: 15, Y: 3}, 30},
		{"downhill diagonal", Vec3{Y: 5}, Vec3{X: 10, Z: 10}, 25},
		{"near max range", Vec3{}, Vec3{X: 24}, 22},
	}

	const gravity = 19.6
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, ok := SolveBallisticArc(tt.origin, tt.target, tt.speed, gravity)
			if !ok {
				t.Fatal("arc reported unreachable")
			}
			if math.Abs(dir.Length()-1) > 1e-9 {
				t.Fatalf("direction not unit length: %v", dir.Length())
			}
			miss := simulateFlight(tt.origin, tt.target, dir, tt.speed, gravity)
			if miss > 0.15 {
				t.Errorf("missed target by %.3fm", miss)
			}
		})
	}
}

func TestSolveBallisticArcLowSolution(t *testing.T) {
	// The low arc for a flat 45-degree-max shot stays below 45 degrees.
	dir, ok := SolveBallisticArc(Vec3{}, Vec3{X: 20}, 30, 19.6)
	if !ok {
		t.Fatal("arc reported unreachable")
	}
	elevation := math.Asin(dir.Y)
	if elevation <= 0 || elevation >= math.Pi/4 {
		t.Errorf("elevation = %.3f rad, want low arc in (0, pi/4)", elevation)
	}
}

func TestSolveBallisticArcUnreachable(t *testing.T) {
	dir, ok := SolveBallisticArc(Vec3{}, Vec3{X: 500}, 10, 19.6)
	if ok {
		t.Fatal("500m at 10 m/s should be unreachable")
	}
	if !dir.IsZero() {
		t.Errorf("unreachable arc returned non-zero direction %+v", dir)
	}
}

func TestSolveBallisticArcDegenerateInputs(t *testing.T) {
	if _, ok := SolveBallisticArc(Vec3{}, Vec3{X: 20}, 0, 19.6); ok {
		t.Error("zero speed should fail")
	}
	// Target directly above: no horizontal distance to aim along.
	if _, ok := SolveBallisticArc(Vec3{}, Vec3{Y: 5}, 30, 19.6); ok {
		t.Error("purely vertical target should fail")
	}
}

func TestSolveBallisticArcZeroGravity(t *testing.T) {
	origin := Vec3{X: 1, Y: 2, Z: 3}
	target := Vec3{X: 7, Y: 5, Z: 3}

	dir, ok := SolveBallisticArc(origin, target, 30, 0)
	if !ok {
		t.Fatal("straight shot should always reach without gravity")
	}
	want := target.Sub(origin).Normalized()
	if dir.Sub(want).Length() > 1e-9 {
		t.Errorf("direction = %+v, want straight line %+v", dir, want)
	}
}

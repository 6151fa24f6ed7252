package sim

import (
	"math"
	"testing"
)

func TestFocusDrainRates(t *testing.T) {
	tests := []struct {
		name  string
		level int
		want  float64 // pool after 1s from full (max 100)
	}{
		{"level 0 stays full", 0, 100},
		{"level 1 drains 6", 1, 94},
		{"level 2 drains 14", 2, 86},
		{"level 3 drains 25", 3, 75},
		{"beyond table uses deepest rate", 5, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewFocusMeter(DefaultFocusConfig())
			for i := 0; i < 100; i++ {
				m.Tick(tt.level, 0.01)
			}
			if math.Abs(m.Current()-tt.want) > 1e-6 {
				t.Errorf("Current after 1s at level %d = %v, want %v", tt.level, m.Current(), tt.want)
			}
		})
	}
}

func TestFocusRechargeOnlyAtLevelZero(t *testing.T) {
	m := NewFocusMeter(DefaultFocusConfig())
	m.Refill(10)

	m.Tick(0, 1.0)
	if math.Abs(m.Current()-22) > 1e-9 {
		t.Errorf("Current after 1s recharge = %v, want 22", m.Current())
	}
}

func TestFocusClampsInSingleStep(t *testing.T) {
	m := NewFocusMeter(DefaultFocusConfig())

	// A huge drain step must land exactly at 0, never below.
	m.Tick(3, 1e6)
	if m.Current() != 0 {
		t.Errorf("Current after huge drain = %v, want 0", m.Current())
	}
	if !m.IsEmpty() {
		t.Error("meter should be empty")
	}

	// A huge recharge step must land exactly at max, never above.
	m.Tick(0, 1e6)
	if m.Current() != m.Max() {
		t.Errorf("Current after huge recharge = %v, want %v", m.Current(), m.Max())
	}
}

func TestFocusEntryGate(t *testing.T) {
	m := NewFocusMeter(DefaultFocusConfig())
	if !m.CanEnterDilation() {
		t.Error("full meter should allow entering dilation")
	}

	m.Refill(0)
	if m.CanEnterDilation() {
		t.Error("empty meter should refuse entering dilation")
	}
}

func TestFocusInfinite(t *testing.T) {
	cfg := DefaultFocusConfig()
	cfg.Infinite = true
	m := NewFocusMeter(cfg)

	m.Tick(3, 100)
	if m.Current() != m.Max() {
		t.Errorf("infinite meter drained to %v", m.Current())
	}
	if m.IsEmpty() {
		t.Error("infinite meter must never report empty")
	}

	m.Refill(0)
	if m.IsEmpty() {
		t.Error("infinite meter at 0 must still never report empty")
	}
	if !m.CanEnterDilation() {
		t.Error("infinite meter must always allow entry")
	}
}

package config

import "testing"

func TestDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Sim.TickRate != 30 || cfg.Sim.ArenaSize != 60 {
		t.Errorf("sim defaults = %+v", cfg.Sim)
	}
	if cfg.Server.Port != 3000 || cfg.Server.DebugPort != 6060 {
		t.Errorf("server defaults = %+v", cfg.Server)
	}
	if cfg.Focus.Max != 100 || cfg.Focus.Infinite {
		t.Errorf("focus defaults = %+v", cfg.Focus)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SIM_TICK_RATE", "60")
	t.Setenv("SIM_ARENA_SIZE", "120")
	t.Setenv("PORT", "8080")
	t.Setenv("FOCUS_INFINITE", "true")
	t.Setenv("DILATION_SMOOTHING_SECONDS", "0")
	t.Setenv("MAX_ENTITIES", "16")
	t.Setenv("EVENT_LOG_PATH", "/tmp/test-events.jsonl")

	cfg := Load()

	if cfg.Sim.TickRate != 60 {
		t.Errorf("TickRate = %d, want 60", cfg.Sim.TickRate)
	}
	if cfg.Sim.ArenaSize != 120 {
		t.Errorf("ArenaSize = %v, want 120", cfg.Sim.ArenaSize)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if !cfg.Focus.Infinite {
		t.Error("FOCUS_INFINITE not applied")
	}
	if cfg.Dilation.SmoothingSeconds != 0 {
		t.Errorf("SmoothingSeconds = %v, want 0 (explicit zero is valid)", cfg.Dilation.SmoothingSeconds)
	}
	if cfg.Limits.MaxEntities != 16 || cfg.Limits.MaxSnapEntities != 16 {
		t.Errorf("limits = %+v", cfg.Limits)
	}
	if cfg.Server.EventLogPath != "/tmp/test-events.jsonl" {
		t.Errorf("EventLogPath = %q", cfg.Server.EventLogPath)
	}
}

func TestInvalidEnvFallsBack(t *testing.T) {
	t.Setenv("SIM_TICK_RATE", "not-a-number")
	t.Setenv("SIM_GRAVITY", "-5") // non-positive values are rejected

	cfg := Load()
	if cfg.Sim.TickRate != 30 {
		t.Errorf("TickRate = %d, want default 30", cfg.Sim.TickRate)
	}
	if cfg.Sim.Gravity != 19.6 {
		t.Errorf("Gravity = %v, want default 19.6", cfg.Sim.Gravity)
	}
}

func TestEngineAssembly(t *testing.T) {
	t.Setenv("SIM_SEED", "42")
	t.Setenv("FOCUS_MAX", "50")

	ec := Load().Engine()
	if ec.Seed != 42 {
		t.Errorf("Seed = %d, want 42", ec.Seed)
	}
	if ec.Focus.Max != 50 {
		t.Errorf("Focus.Max = %v, want 50", ec.Focus.Max)
	}
	// Tuning not exposed through env keeps the authored defaults.
	if len(ec.Dilation.Scales) != 4 || ec.Dilation.Scales[3] != 0.05 {
		t.Errorf("scale ladder = %v", ec.Dilation.Scales)
	}
	if ec.Catch.ThrowSpeed != 45 {
		t.Errorf("Catch.ThrowSpeed = %v, want 45", ec.Catch.ThrowSpeed)
	}
}

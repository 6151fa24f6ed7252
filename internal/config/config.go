// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for all simulation and server settings.
//
// IMPORTANT: When changing values, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"

	"slipstream/internal/sim"
)

// =============================================================================
// SIMULATION CONFIGURATION
// =============================================================================

// SimConfig holds the core simulation settings.
type SimConfig struct {
	TickRate  int     // Simulation ticks per second
	ArenaSize float64 // Square arena side length in meters
	Gravity   float64 // Gravity magnitude in m/s^2
	Seed      int64   // Deterministic RNG seed; 0 seeds from the wall clock
}

// DefaultSim returns the default simulation configuration.
func DefaultSim() SimConfig {
	return SimConfig{
		TickRate:  30,
		ArenaSize: 60,
		Gravity:   19.6,
	}
}

// SimFromEnv returns simulation configuration with environment overrides.
// Environment variables take precedence over defaults.
func SimFromEnv() SimConfig {
	cfg := DefaultSim()

	if tr := getEnvInt("SIM_TICK_RATE", 0); tr > 0 {
		cfg.TickRate = tr
	}
	if a := getEnvFloat("SIM_ARENA_SIZE", 0); a > 0 {
		cfg.ArenaSize = a
	}
	if g := getEnvFloat("SIM_GRAVITY", 0); g > 0 {
		cfg.Gravity = g
	}
	if s := getEnvInt("SIM_SEED", 0); s != 0 {
		cfg.Seed = int64(s)
	}

	return cfg
}

// =============================================================================
// TIME DILATION CONFIGURATION
// =============================================================================

// DilationFromEnv returns dilation tuning with environment overrides. The
// scale ladder itself stays authored in code; env vars tune the smoothing
// window and the focus economy around it.
func DilationFromEnv() sim.DilationConfig {
	cfg := sim.DefaultDilationConfig()

	if s := getEnvFloat("DILATION_SMOOTHING_SECONDS", -1); s >= 0 {
		cfg.SmoothingSeconds = s
	}

	return cfg
}

// FocusFromEnv returns focus pool tuning with environment overrides.
func FocusFromEnv() sim.FocusConfig {
	cfg := sim.DefaultFocusConfig()

	if m := getEnvFloat("FOCUS_MAX", 0); m > 0 {
		cfg.Max = m
	}
	if r := getEnvFloat("FOCUS_RECHARGE_RATE", 0); r > 0 {
		cfg.RechargeRate = r
	}
	if os.Getenv("FOCUS_INFINITE") == "true" {
		cfg.Infinite = true
	}

	return cfg
}

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int
	DebugPort    int    // localhost-only pprof/debug listener
	EventLogPath string // empty disables the on-disk event log
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port:      3000,
		DebugPort: 6060,
	}
}

// ServerFromEnv returns server configuration with environment overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}
	if dp := getEnvInt("DEBUG_PORT", 0); dp > 0 {
		cfg.DebugPort = dp
	}
	if path := os.Getenv("EVENT_LOG_PATH"); path != "" {
		cfg.EventLogPath = path
	}

	return cfg
}

// =============================================================================
// RESOURCE LIMITS
// =============================================================================

// LimitsFromEnv returns resource limits with environment overrides.
func LimitsFromEnv() sim.ResourceLimits {
	limits := sim.DefaultLimits

	if m := getEnvInt("MAX_ENTITIES", 0); m > 0 {
		limits.MaxEntities = m
		limits.MaxSnapEntities = m
	}
	if m := getEnvInt("MAX_PROJECTILES", 0); m > 0 {
		limits.MaxProjectiles = m
	}
	if m := getEnvInt("MAX_GRENADES", 0); m > 0 {
		limits.MaxGrenades = m
	}

	return limits
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Sim      SimConfig
	Dilation sim.DilationConfig
	Focus    sim.FocusConfig
	Server   ServerConfig
	Limits   sim.ResourceLimits
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Sim:      SimFromEnv(),
		Dilation: DilationFromEnv(),
		Focus:    FocusFromEnv(),
		Server:   ServerFromEnv(),
		Limits:   LimitsFromEnv(),
	}
}

// Engine assembles the sim.EngineConfig from the loaded configuration.
func (c AppConfig) Engine() sim.EngineConfig {
	ec := sim.DefaultEngineConfig()
	ec.TickRate = c.Sim.TickRate
	ec.ArenaSize = c.Sim.ArenaSize
	ec.Gravity = c.Sim.Gravity
	ec.Seed = c.Sim.Seed
	ec.Dilation = c.Dilation
	ec.Focus = c.Focus
	ec.Limits = c.Limits
	return ec
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"slipstream/internal/api"
	"slipstream/internal/config"
	"slipstream/internal/render"
	"slipstream/internal/sim"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables only")
	}

	log.Println("================================")
	log.Println(" SLIPSTREAM - ARENA SIMULATION")
	log.Println("================================")

	// Load centralized configuration (SSOT - Single Source of Truth)
	appConfig := config.Load()
	simCfg := appConfig.Sim
	serverCfg := appConfig.Server

	log.Printf("config: %d TPS, %.0fm arena, gravity %.1f",
		simCfg.TickRate, simCfg.ArenaSize, simCfg.Gravity)

	// Create simulation engine with centralized config
	engine, err := sim.NewEngine(appConfig.Engine())
	if err != nil {
		log.Fatalf("engine config invalid: %v", err)
	}
	limits := engine.GetLimits()
	log.Printf("resource limits: %d entities, %d projectiles, %d grenades",
		limits.MaxEntities, limits.MaxProjectiles, limits.MaxGrenades)

	// Start event log
	eventLogPath := serverCfg.EventLogPath
	if eventLogPath == "" {
		eventLogPath = "events.jsonl"
	}
	if err := engine.StartEventLog(eventLogPath); err != nil {
		log.Printf("event log disabled: %v", err)
	} else {
		log.Printf("event log: %s", eventLogPath)
	}

	// Start debug server (pprof + prometheus, localhost only)
	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		debugCfg := api.DefaultObservabilityConfig()
		debugCfg.ListenAddr = "127.0.0.1:" + strconv.Itoa(serverCfg.DebugPort)
		if err := api.StartDebugServer(debugCfg); err != nil {
			log.Printf("debug server disabled: %v", err)
		}
	}

	// Metrics instrumentation hooks
	engine.Resolver().OnDamage(func(_ *sim.Entity, amount, _ float64) {
		api.RecordDamage(amount)
	})
	engine.SetOnTick(func(tick int64) {
		snap := engine.GetSnapshot()
		api.UpdateEntityCount(snap.EntityCount)
		api.UpdateProjectileCount(len(snap.Projectiles))
		api.UpdateDilation(snap.Dilation.Level, snap.Dilation.AppliedScale,
			snap.Dilation.Focus/snap.Dilation.FocusMax)
	})

	// Seed the arena: one player, a couple of hostiles, one turret locked on.
	player, err := engine.AddPlayer("player-one", sim.EntityOptions{
		Pos:    sim.Vec3{X: simCfg.ArenaSize / 2, Z: simCfg.ArenaSize / 2},
		Weapon: "pistol",
	})
	if err != nil {
		log.Fatalf("spawn player: %v", err)
	}
	if _, err := engine.AddEnemy("grunt-a", sim.EntityOptions{
		Pos:    sim.Vec3{X: simCfg.ArenaSize * 0.25, Z: simCfg.ArenaSize * 0.25},
		Weapon: "rifle",
	}); err != nil {
		log.Printf("spawn enemy: %v", err)
	}
	if _, err := engine.AddEnemy("grunt-b", sim.EntityOptions{
		Pos:    sim.Vec3{X: simCfg.ArenaSize * 0.75, Z: simCfg.ArenaSize * 0.25},
		Weapon: "pistol",
	}); err != nil {
		log.Printf("spawn enemy: %v", err)
	}
	if _, err := engine.AddTurret("turret-north", sim.EntityOptions{
		Pos: sim.Vec3{X: simCfg.ArenaSize / 2, Z: simCfg.ArenaSize * 0.9},
	}, player.ID); err != nil {
		log.Printf("spawn turret: %v", err)
	}

	// Debug frame renderer for /api/frame.png
	frame := render.NewRenderer(800, 800, simCfg.ArenaSize)

	// Create API server
	server := api.NewServer(engine, frame)

	// Start simulation engine
	engine.Start()
	log.Println("simulation engine started")

	// Start API server in goroutine
	go func() {
		addr := ":" + strconv.Itoa(serverCfg.Port)
		log.Printf("API server on http://localhost%s", addr)
		log.Printf("state:  http://localhost%s/api/state", addr)
		log.Printf("frame:  http://localhost%s/api/frame.png", addr)

		if err := server.Start(addr); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("server ready, press Ctrl+C to stop")
	<-quit

	log.Println("shutting down...")
	server.Stop()
	engine.Stop()
	engine.StopEventLog() // waits for the final batch flush
	log.Println("goodbye")
}

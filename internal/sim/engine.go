package sim

import (
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"slipstream/internal/sim/spatial"
)

// EngineConfig assembles the tuning for a full simulation instance.
type EngineConfig struct {
	TickRate  int     // simulation ticks per second
	ArenaSize float64 // square arena side length, meters
	Gravity   float64 // projectile/grenade gravity, m/s^2

	Dilation DilationConfig
	Focus    FocusConfig
	Catch    CatchConfig
	Wake     WakeConfig
	Grenade  GrenadeConfig

	Limits ResourceLimits
	Seed   int64 // 0 seeds from the wall clock
}

// DefaultEngineConfig returns the stock arena tuning.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		TickRate:  30,
		ArenaSize: 60,
		Gravity:   19.6,
		Dilation:  DefaultDilationConfig(),
		Focus:     DefaultFocusConfig(),
		Catch:     DefaultCatchConfig(),
		Wake:      DefaultWakeConfig(),
		Grenade:   DefaultGrenadeConfig(),
		Limits:    DefaultLimits,
	}
}

// Engine is the main simulation engine handling the tick loop, the dual
// time domains and all combat resolution. Every mutation of simulation
// state happens under mu inside tick or an exported mutator; readers go
// through the lock-free snapshot pool.
type Engine struct {
	mu       sync.RWMutex
	cfg      EngineConfig
	entities map[string]*Entity

	// Cached slice for index-based access; rebuilt each tick.
	entitySlice []*Entity

	turrets     []*Turret
	projectiles []*Projectile
	grenades    []*Grenade

	// Global time state shared by every entity.
	clock    *Clock
	focus    *FocusMeter
	dilation *DilationController
	resolver *DamageResolver

	// Spatial indexing for O(1) neighbor queries on the arena plane.
	grid *spatial.Grid

	// Queued intents, merged per entity, drained at tick start.
	pendingMu sync.Mutex
	pending   map[string]Intents

	running  bool
	ticker   *time.Ticker
	stopChan chan struct{}

	tickCount int64

	limits       ResourceLimits
	snapshotPool *SnapshotPool
	eventLog     *EventLog

	// Deterministic RNG for replay consistency.
	rng     *rand.Rand
	rngSeed int64

	// Per-tick observer hooks.
	onTick func(tick int64)
}

// NewEngine creates a simulation engine. The dilation controller's
// constructor validates the scale ladder, so a bad config fails here rather
// than mid-tick.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 30
	}
	if cfg.ArenaSize <= 0 {
		cfg.ArenaSize = 60
	}
	if cfg.Limits == (ResourceLimits{}) {
		cfg.Limits = DefaultLimits
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	clock := NewClock(cfg.TickRate)
	focus := NewFocusMeter(cfg.Focus)
	dilation, err := NewDilationController(clock, focus, cfg.Dilation)
	if err != nil {
		return nil, err
	}

	// Cell size matches the largest common query radius (blast radius).
	cellSize := cfg.Grenade.BlastRadius
	if cellSize < 2 {
		cellSize = 2
	}

	e := &Engine{
		cfg:          cfg,
		entities:     make(map[string]*Entity),
		entitySlice:  make([]*Entity, 0, cfg.Limits.MaxEntities),
		projectiles:  make([]*Projectile, 0, cfg.Limits.MaxProjectiles),
		grenades:     make([]*Grenade, 0, cfg.Limits.MaxGrenades),
		clock:        clock,
		focus:        focus,
		dilation:     dilation,
		resolver:     NewDamageResolver(),
		grid:         spatial.NewGrid(cfg.ArenaSize, cellSize, cfg.Limits.MaxEntities),
		pending:      make(map[string]Intents),
		stopChan:     make(chan struct{}),
		limits:       cfg.Limits,
		snapshotPool: NewSnapshotPool(cfg.Limits),
		eventLog:     NewEventLog(),
		rng:          rand.New(rand.NewSource(seed)),
		rngSeed:      seed,
	}
	return e, nil
}

// Start begins the tick loop.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	e.ticker = time.NewTicker(time.Second / time.Duration(e.cfg.TickRate))

	go func() {
		for {
			select {
			case <-e.ticker.C:
				e.tick()
			case <-e.stopChan:
				return
			}
		}
	}()

	log.Printf("simulation engine started at %d TPS", e.cfg.TickRate)
}

// Stop stops the tick loop.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}

	e.running = false
	if e.ticker != nil {
		e.ticker.Stop()
	}
	close(e.stopChan)
	log.Println("simulation engine stopped")
}

// SetOnTick registers a per-tick observer, called inside the tick with the
// lock held. Used by metrics instrumentation.
func (e *Engine) SetOnTick(fn func(tick int64)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onTick = fn
}

// QueueIntents merges intents for an entity, applied at the next tick
// boundary. Unknown IDs are dropped silently: commands racing a despawn are
// routine, not errors.
func (e *Engine) QueueIntents(entityID string, in Intents) {
	e.pendingMu.Lock()
	defer e.pendingMu.Unlock()
	merged := e.pending[entityID]
	merged.merge(in)
	e.pending[entityID] = merged
}

// tick advances the simulation by exactly one step. Step ordering is load
// bearing: intents before time, time before physics, physics before hazards,
// hazards before snapshot.
func (e *Engine) tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tickCount++
	e.Step()

	if e.onTick != nil {
		e.onTick(e.tickCount)
	}
}

// Step runs one simulation step with the lock held. Exposed for
// deterministic single-stepping; the live loop calls it via tick.
func (e *Engine) Step() {
	realDt := e.clock.RealDelta()

	e.eventLog.EmitSimple(EventTypeTick, uint64(e.tickCount), "",
		TickPayload{
			RNGSeed:     e.rngSeed,
			EntityCount: len(e.entities),
			WorldScale:  e.clock.Scale(),
			WorldDtNs:   int64(e.clock.WorldDelta() * 1e9),
		})

	// Advance RNG seed deterministically for the next tick.
	e.rngSeed = e.rng.Int63()
	e.rng.Seed(e.rngSeed)

	// 1. Drain queued intents into entities.
	e.pendingMu.Lock()
	for id, in := range e.pending {
		if ent, ok := e.entities[id]; ok {
			ent.intents.merge(in)
		}
		delete(e.pending, id)
	}
	e.pendingMu.Unlock()

	// 2. Dilation edges, then the focus/clock update for this tick. The
	// scale must be settled before any world-delta consumer runs.
	requestedDown := false
	for _, ent := range e.entities {
		if ent.Kind != KindPlayer || !ent.Alive() {
			continue
		}
		if ent.intents.DilationUp && e.dilation.Increase() {
			e.emitDilation(ent.ID, false)
		}
		if ent.intents.DilationDown {
			requestedDown = true
			if e.dilation.Decrease() {
				e.emitDilation(ent.ID, false)
			}
		}
	}

	levelBefore := e.dilation.Level()
	e.dilation.Tick(realDt)
	if levelBefore > 0 && e.dilation.Level() == 0 && !requestedDown {
		e.emitDilation("", true)
	}
	e.focus.Tick(e.dilation.Level(), realDt)
	e.clock.Advance()

	worldDt := e.clock.WorldDelta()
	worldScale := e.clock.Scale()
	deepest := e.dilation.IsDeepest()

	// 3. Rebuild the entity slice and spatial grid.
	e.entitySlice = e.entitySlice[:0]
	for _, ent := range e.entities {
		e.entitySlice = append(e.entitySlice, ent)
	}
	e.grid.Clear()
	for i, ent := range e.entitySlice {
		if ent.Alive() {
			e.grid.Insert(uint32(i), ent.Pos.X, ent.Pos.Z)
		}
	}

	// 4. Movement, facing, firing per entity.
	for _, ent := range e.entitySlice {
		if !ent.Alive() {
			continue
		}
		in := ent.intents

		if !in.Facing.IsZero() {
			ent.Facing = in.Facing.Horizontal().Normalized()
		}

		ent.Body.Step(in.MoveDir, ent.Grounded(), worldScale, worldDt)
		ent.Pos = ent.Body.Integrate(ent.Pos, worldDt)
		e.resolveArena(ent)

		ent.tickWeapon(worldDt)
		if in.Fire && ent.Kind == KindPlayer {
			e.fireFrom(ent)
		}
	}

	// 5. Bullet catch, gated on the deepest tier. A dead holder ticks with
	// the gate closed so anything it held returns to free physics instead of
	// staying kinematic forever.
	for _, ent := range e.entitySlice {
		if ent.Catch == nil {
			continue
		}
		heldBefore := ent.Catch.Held()
		if ent.Alive() {
			ent.Catch.Tick(ent, ent.intents, deepest, e.projectiles)
		} else {
			ent.Catch.Tick(ent, Intents{}, false, nil)
		}
		e.emitCatchTransitions(ent, heldBefore)
	}

	// 6. Turrets fire on world time.
	for _, t := range e.turrets {
		target := e.entities[t.TargetID]
		if p := t.Tick(target, e.cfg.Gravity, e.rng, e.tickCount, worldDt); p != nil {
			e.addProjectile(p)
		}
	}

	// 7. Projectile flight and impacts.
	e.updateProjectiles(worldDt)

	// 8. Grenade fuses and detonations.
	e.updateGrenades(worldDt)

	// 9. Sonic wake trails and shockwave sweeps.
	e.updateWakes(worldDt)

	// 10. Reset one-tick edges; movement direction persists.
	for _, ent := range e.entitySlice {
		ent.intents.clearEdges()
	}

	e.ProduceSnapshot()
}

// resolveArena keeps an entity inside the square arena, reflecting momentum
// off the walls and clamping to the floor.
func (e *Engine) resolveArena(ent *Entity) {
	size := e.cfg.ArenaSize

	if ent.Pos.X < EntityRadius {
		ent.Body.Bounce(Vec3{1, 0, 0})
		ent.Pos.X = EntityRadius
	} else if ent.Pos.X > size-EntityRadius {
		ent.Body.Bounce(Vec3{-1, 0, 0})
		ent.Pos.X = size - EntityRadius
	}
	if ent.Pos.Z < EntityRadius {
		ent.Body.Bounce(Vec3{0, 0, 1})
		ent.Pos.Z = EntityRadius
	} else if ent.Pos.Z > size-EntityRadius {
		ent.Body.Bounce(Vec3{0, 0, -1})
		ent.Pos.Z = size - EntityRadius
	}
	if ent.Pos.Y < 0 {
		ent.Pos.Y = 0
	}
}

// fireFrom spawns a projectile along the entity's facing, honoring the fire
// interval, magazine and spread.
func (e *Engine) fireFrom(ent *Entity) {
	if !ent.readyToFire() {
		return
	}
	dir := ent.Facing.Normalized()
	if dir.IsZero() {
		return
	}
	dir = applySpread(dir, ent.Weapon.SpreadDegrees, e.rng)
	ent.consumeShot()
	e.addProjectile(NewProjectile(ent, dir, e.tickCount))
}

func (e *Engine) addProjectile(p *Projectile) {
	if len(e.projectiles) >= e.limits.MaxProjectiles {
		return // hard cap
	}
	e.projectiles = append(e.projectiles, p)
}

// updateProjectiles integrates flight and resolves impacts with
// zero-allocation in-place filtering.
func (e *Engine) updateProjectiles(worldDt float64) {
	n := 0
	for _, proj := range e.projectiles {
		hit := false
		if !proj.Held() {
			for _, idx := range e.grid.QueryRadius(proj.Pos.X, proj.Pos.Z, EntityRadius+ProjectileRadius+1) {
				target := e.entitySlice[idx]
				if proj.CheckHit(target) {
					e.processImpact(proj, target)
					hit = true
					break
				}
			}
		}

		// Held projectiles neither collide nor expire; Step is a no-op true.
		if hit || !proj.Step(e.cfg.Gravity, worldDt) {
			continue
		}

		e.projectiles[n] = proj
		n++
	}
	e.projectiles = e.projectiles[:n]
}

// processImpact applies travel-falloff damage through the resolver.
func (e *Engine) processImpact(proj *Projectile, target *Entity) {
	amount := proj.ImpactDamage()
	if !e.resolver.ApplyDamage(target, amount) {
		return
	}
	e.eventLog.EmitSimple(EventTypeDamage, uint64(e.tickCount), proj.OwnerID,
		DamagePayload{
			SourceID:  proj.OwnerID,
			TargetID:  target.ID,
			Amount:    amount,
			Remaining: target.Health.Current(),
		})
}

// updateGrenades advances fuses and resolves detonations.
func (e *Engine) updateGrenades(worldDt float64) {
	n := 0
	for _, g := range e.grenades {
		if g.Step(e.cfg.Gravity, worldDt) {
			e.detonate(g)
			continue
		}
		e.grenades[n] = g
		n++
	}
	e.grenades = e.grenades[:n]
}

// detonate applies both blast falloff components to everything inside the
// radius, at most once per target.
func (e *Engine) detonate(g *Grenade) {
	hits := NewHitSet()
	affected := 0

	for _, idx := range e.grid.QueryRadius(g.Pos.X, g.Pos.Z, g.BlastRadius+EntityRadius) {
		target := e.entitySlice[idx]
		if !target.Alive() || !hits.Mark(target.ID) {
			continue
		}
		center := target.Pos.Add(Vec3{0, EntityRadius, 0})
		blastPart, shrapnelPart, ok := BlastDamage(g.BlastDamage, g.ShrapnelDamage, g.BlastRadius, g.Pos.DistanceTo(center))
		if !ok {
			continue
		}
		amount := blastPart + shrapnelPart
		if e.resolver.ApplyDamage(target, amount) {
			affected++
			e.eventLog.EmitSimple(EventTypeDamage, uint64(e.tickCount), g.OwnerID,
				DamagePayload{
					SourceID:  g.OwnerID,
					TargetID:  target.ID,
					Amount:    amount,
					Remaining: target.Health.Current(),
				})
		}
	}

	e.eventLog.EmitSimple(EventTypeDetonate, uint64(e.tickCount), g.OwnerID,
		DetonatePayload{
			GrenadeID: g.ID,
			X:         g.Pos.X,
			Z:         g.Pos.Z,
			Radius:    g.BlastRadius,
			Affected:  affected,
		})
}

// updateWakes records trails for fast movers and sweeps live shockwaves.
func (e *Engine) updateWakes(worldDt float64) {
	worldNow := e.clock.WorldNow()
	deepest := e.dilation.IsDeepest()

	for _, ent := range e.entitySlice {
		if ent.Wake == nil || !ent.Alive() {
			continue
		}
		hadWave := ent.Wake.Wave() != nil
		speed := ent.Body.Velocity.Horizontal().Length()
		ent.Wake.Tick(ent.Pos, speed, deepest, worldNow, worldDt)

		if !hadWave && ent.Wake.Wave() != nil {
			e.eventLog.EmitSimple(EventTypeShockwave, uint64(e.tickCount), ent.ID,
				ShockwavePayload{EmitterID: ent.ID, Segments: len(ent.Wake.Segments())})
		}

		e.sweepShockwave(ent)
	}
}

// sweepShockwave damages targets near the traveling cursor, at most once
// per traversal. The emitter is immune to its own wake.
func (e *Engine) sweepShockwave(emitter *Entity) {
	wave := emitter.Wake.Wave()
	if wave == nil {
		return
	}
	pos, ok := emitter.Wake.WavePos()
	if !ok {
		return
	}
	radius := emitter.Wake.Config().ShockwaveRadius
	damage := emitter.Wake.Config().ShockwaveDamage

	for _, idx := range e.grid.QueryRadius(pos.X, pos.Z, radius+EntityRadius) {
		target := e.entitySlice[idx]
		if target.ID == emitter.ID || !target.Alive() {
			continue
		}
		center := target.Pos.Add(Vec3{0, EntityRadius, 0})
		if pos.DistanceTo(center) > radius+EntityRadius {
			continue
		}
		if !wave.MarkHit(target.ID) {
			continue
		}
		if e.resolver.ApplyDamage(target, damage) {
			e.eventLog.EmitSimple(EventTypeDamage, uint64(e.tickCount), emitter.ID,
				DamagePayload{
					SourceID:  emitter.ID,
					TargetID:  target.ID,
					Amount:    damage,
					Remaining: target.Health.Current(),
				})
		}
	}
}

// emitDilation logs a level transition.
func (e *Engine) emitDilation(sourceID string, forced bool) {
	e.eventLog.EmitSimple(EventTypeDilation, uint64(e.tickCount), sourceID,
		DilationPayload{
			Level:  e.dilation.Level(),
			Scale:  e.dilation.TargetScale(),
			Forced: forced,
		})
}

// emitCatchTransitions logs catch and throw edges by diffing held state.
func (e *Engine) emitCatchTransitions(ent *Entity, heldBefore *Projectile) {
	heldAfter := ent.Catch.Held()
	if heldBefore == nil && heldAfter != nil {
		e.eventLog.EmitSimple(EventTypeCatch, uint64(e.tickCount), ent.ID,
			CatchPayload{CatcherID: ent.ID, ProjectileID: heldAfter.ID})
	}
	if heldBefore != nil && heldAfter == nil {
		e.eventLog.EmitSimple(EventTypeThrow, uint64(e.tickCount), ent.ID,
			CatchPayload{CatcherID: ent.ID, ProjectileID: heldBefore.ID})
	}
}

// AddPlayer spawns a player entity with the wake tracker and catch
// controller attached.
func (e *Engine) AddPlayer(name string, opts EntityOptions) (*Entity, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.entities) >= e.limits.MaxEntities {
		return nil, errors.New("engine: entity limit reached")
	}

	opts.Kind = KindPlayer
	ent := NewEntity(name, opts)
	ent.Wake = NewWakeTracker(e.cfg.Wake)
	ent.Catch = NewCatchController(e.cfg.Catch)
	e.register(ent)

	log.Printf("player spawned: %s (%s)", name, ent.ID)
	return ent, nil
}

// AddEnemy spawns a world-time enemy entity.
func (e *Engine) AddEnemy(name string, opts EntityOptions) (*Entity, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.entities) >= e.limits.MaxEntities {
		return nil, errors.New("engine: entity limit reached")
	}

	opts.Kind = KindEnemy
	ent := NewEntity(name, opts)
	e.register(ent)
	return ent, nil
}

// AddTurret spawns a fixed turret aimed at targetID. The returned error
// reports a missing target; the turret still exists, disabled, so the spawn
// is visible in snapshots for debugging.
func (e *Engine) AddTurret(name string, opts EntityOptions, targetID string) (*Turret, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.entities) >= e.limits.MaxEntities {
		return nil, errors.New("engine: entity limit reached")
	}

	opts.Kind = KindTurret
	if opts.Weapon == "" {
		opts.Weapon = "turret-bolt"
	}
	ent := NewEntity(name, opts)
	e.register(ent)

	t, err := NewTurret(ent, targetID)
	e.turrets = append(e.turrets, t)
	return t, err
}

// register wires an entity into the engine's maps and observers. Caller
// holds the lock.
func (e *Engine) register(ent *Entity) {
	e.entities[ent.ID] = ent

	id, name := ent.ID, ent.Name
	ent.Health.OnDeath(func() {
		e.eventLog.EmitSimple(EventTypeDeath, uint64(e.tickCount), id,
			DeathPayload{EntityID: id, Name: name})
	})

	e.eventLog.EmitSimple(EventTypeSpawn, uint64(e.tickCount), ent.ID,
		SpawnPayload{
			EntityID: ent.ID,
			Name:     ent.Name,
			Kind:     ent.Kind.String(),
			X:        ent.Pos.X,
			Y:        ent.Pos.Y,
			Z:        ent.Pos.Z,
		})
}

// RemoveEntity despawns an entity and any turret wrapping it.
func (e *Engine) RemoveEntity(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.entities, id)
	n := 0
	for _, t := range e.turrets {
		if t.E.ID != id {
			e.turrets[n] = t
			n++
		}
	}
	e.turrets = e.turrets[:n]
}

// GetEntity returns an entity by ID.
func (e *Engine) GetEntity(id string) *Entity {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.entities[id]
}

// ThrowGrenade arms a grenade from the owner's hand anchor along dir.
func (e *Engine) ThrowGrenade(ownerID string, dir Vec3) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	owner, ok := e.entities[ownerID]
	if !ok || !owner.Alive() {
		return errors.New("engine: unknown or dead thrower")
	}
	if len(e.grenades) >= e.limits.MaxGrenades {
		return errors.New("engine: grenade limit reached")
	}
	if dir.IsZero() {
		dir = owner.Facing
	}
	g := NewGrenade(owner.ID, owner.HandAnchor(), dir, e.cfg.Grenade, e.tickCount)
	e.grenades = append(e.grenades, g)
	return nil
}

// Dilation exposes the controller for read-only inspection.
func (e *Engine) Dilation() *DilationController { return e.dilation }

// Focus exposes the meter for read-only inspection.
func (e *Engine) Focus() *FocusMeter { return e.focus }

// Clock exposes the dual-domain clock.
func (e *Engine) Clock() *Clock { return e.clock }

// Resolver exposes the damage resolver for observer registration.
func (e *Engine) Resolver() *DamageResolver { return e.resolver }

// TickCount returns the number of completed ticks.
func (e *Engine) TickCount() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tickCount
}

// GetSnapshot returns the latest immutable snapshot for lock-free reads.
func (e *Engine) GetSnapshot() *WorldSnapshot {
	return e.snapshotPool.AcquireRead()
}

// ProduceSnapshot publishes an immutable copy of the current state. Called
// at the end of each tick with the lock held.
func (e *Engine) ProduceSnapshot() {
	snap := e.snapshotPool.AcquireWrite()
	snap.TickNumber = uint64(e.tickCount)
	snap.RNGSeed = e.rngSeed

	snap.Dilation = DilationSnapshot{
		Level:        e.dilation.Level(),
		TargetScale:  e.dilation.TargetScale(),
		AppliedScale: e.dilation.AppliedScale(),
		Focus:        e.focus.Current(),
		FocusMax:     e.focus.Max(),
		WorldTime:    e.clock.WorldNow(),
		RealTime:     e.clock.RealNow(),
	}

	// Alive count covers every entity, not just the ones that fit under the
	// snapshot cap.
	aliveCount := 0
	for _, ent := range e.entities {
		if ent.Alive() {
			aliveCount++
		}
	}

	for _, ent := range e.entities {
		if len(snap.Entities) >= e.limits.MaxSnapEntities {
			break
		}
		catchState := ""
		wakeActive := false
		if ent.Catch != nil {
			catchState = ent.Catch.State().String()
		}
		if ent.Wake != nil {
			wakeActive = ent.Wake.Active()
		}
		snap.Entities = append(snap.Entities, EntitySnapshot{
			ID:         ent.ID,
			Name:       ent.Name,
			Kind:       ent.Kind.String(),
			X:          ent.Pos.X,
			Y:          ent.Pos.Y,
			Z:          ent.Pos.Z,
			VX:         ent.Body.Velocity.X,
			VY:         ent.Body.Velocity.Y,
			VZ:         ent.Body.Velocity.Z,
			FacingX:    ent.Facing.X,
			FacingZ:    ent.Facing.Z,
			HP:         ent.Health.Current(),
			MaxHP:      ent.Health.Max(),
			Weapon:     ent.Weapon.Name,
			Magazine:   ent.magazine,
			Reloading:  ent.reloadLeft > 0,
			IsDead:     ent.Health.IsDead(),
			CatchState: catchState,
			WakeActive: wakeActive,
			Speed:      ent.Body.Velocity.Horizontal().Length(),
		})
	}

	for _, p := range e.projectiles {
		if len(snap.Projectiles) >= e.limits.MaxProjectiles {
			break
		}
		snap.Projectiles = append(snap.Projectiles, ProjectileSnapshot{
			ID:        p.ID,
			OwnerID:   p.OwnerID,
			Archetype: p.Archetype.Name,
			X:         p.Pos.X,
			Y:         p.Pos.Y,
			Z:         p.Pos.Z,
			VX:        p.Vel.X,
			VY:        p.Vel.Y,
			VZ:        p.Vel.Z,
			Held:      p.Held(),
		})
	}

	for _, g := range e.grenades {
		if len(snap.Grenades) >= e.limits.MaxGrenades {
			break
		}
		snap.Grenades = append(snap.Grenades, GrenadeSnapshot{
			ID:       g.ID,
			OwnerID:  g.OwnerID,
			X:        g.Pos.X,
			Y:        g.Pos.Y,
			Z:        g.Pos.Z,
			FuseLeft: g.FuseLeft,
		})
	}

	for _, ent := range e.entities {
		if ent.Wake == nil {
			continue
		}
		for _, seg := range ent.Wake.Segments() {
			if len(snap.WakePoints) >= e.limits.MaxWakePoints {
				break
			}
			snap.WakePoints = append(snap.WakePoints, WakePointSnapshot{
				OwnerID: ent.ID,
				X:       seg.Pos.X,
				Y:       seg.Pos.Y,
				Z:       seg.Pos.Z,
				Danger:  seg.Danger,
			})
		}
		if pos, ok := ent.Wake.WavePos(); ok {
			snap.Shockwaves = append(snap.Shockwaves, ShockwaveSnapshot{
				OwnerID: ent.ID,
				X:       pos.X,
				Y:       pos.Y,
				Z:       pos.Z,
				Radius:  ent.Wake.Config().ShockwaveRadius,
			})
		}
	}

	snap.EntityCount = len(e.entities)
	snap.AliveCount = aliveCount

	e.snapshotPool.PublishWrite()
}

// StartEventLog initializes event logging.
func (e *Engine) StartEventLog(filePath string) error {
	return e.eventLog.Start(filePath)
}

// StopEventLog gracefully stops event logging.
func (e *Engine) StopEventLog() {
	e.eventLog.Stop()
}

// GetEventLogStats returns event log counters for monitoring.
func (e *Engine) GetEventLogStats() map[string]interface{} {
	return e.eventLog.GetStats()
}

// GetLimits returns the active resource limits.
func (e *Engine) GetLimits() ResourceLimits {
	return e.limits
}

// GetGrid returns the spatial grid for testing and external queries.
func (e *Engine) GetGrid() *spatial.Grid {
	return e.grid
}

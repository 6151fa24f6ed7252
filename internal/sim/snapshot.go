package sim

import (
	"sync/atomic"
	"time"
)

// ResourceLimits defines hard caps on simulation population and snapshot
// sizes so a runaway spawner cannot exhaust memory.
type ResourceLimits struct {
	MaxEntities     int // hard cap on live entities (logic)
	MaxSnapEntities int // hard cap on snapshotted entities
	MaxProjectiles  int // live projectile cap
	MaxGrenades     int // live grenade cap
	MaxWakePoints   int // wake segments per snapshot
}

// DefaultLimits provides production-safe default limits.
var DefaultLimits = ResourceLimits{
	MaxEntities:     256,
	MaxSnapEntities: 256,
	MaxProjectiles:  MaxProjectiles,
	MaxGrenades:     MaxGrenades,
	MaxWakePoints:   MaxWakeSegments,
}

// EntitySnapshot is an immutable copy of entity state for rendering.
// Uses value types (not pointers) to ensure immutability.
type EntitySnapshot struct {
	ID         string
	Name       string
	Kind       string
	X, Y, Z    float64
	VX, VY, VZ float64
	FacingX    float64
	FacingZ    float64
	HP, MaxHP  float64
	Weapon     string
	Magazine   int
	Reloading  bool
	IsDead     bool
	CatchState string
	WakeActive bool
	Speed      float64 // horizontal, m/s
}

// ProjectileSnapshot is an immutable in-flight round.
type ProjectileSnapshot struct {
	ID         string
	OwnerID    string
	Archetype  string
	X, Y, Z    float64
	VX, VY, VZ float64
	Held       bool
}

// GrenadeSnapshot is an immutable fused explosive.
type GrenadeSnapshot struct {
	ID       string
	OwnerID  string
	X, Y, Z  float64
	FuseLeft float64
}

// WakePointSnapshot is one recorded trail sample.
type WakePointSnapshot struct {
	OwnerID string
	X, Y, Z float64
	Danger  bool
}

// ShockwaveSnapshot is a traveling wake-collapse front.
type ShockwaveSnapshot struct {
	OwnerID string
	X, Y, Z float64
	Radius  float64
}

// DilationSnapshot captures the global time state.
type DilationSnapshot struct {
	Level        int
	TargetScale  float64
	AppliedScale float64
	Focus        float64
	FocusMax     float64
	WorldTime    float64
	RealTime     float64
}

// WorldSnapshot is a complete immutable simulation state for rendering.
// All slices are pre-allocated and capped.
type WorldSnapshot struct {
	Sequence   uint64    // monotonic sequence for ordering
	Timestamp  time.Time // when the snapshot was created
	TickNumber uint64    // simulation tick this represents
	RNGSeed    int64     // seed for deterministic replay

	Dilation DilationSnapshot

	Entities    []EntitySnapshot
	Projectiles []ProjectileSnapshot
	Grenades    []GrenadeSnapshot
	WakePoints  []WakePointSnapshot
	Shockwaves  []ShockwaveSnapshot

	// Aggregate stats
	EntityCount int
	AliveCount  int
}

// SnapshotPool pre-allocates snapshots to avoid GC pressure.
// Uses triple buffering for lock-free producer/consumer.
type SnapshotPool struct {
	snapshots [3]WorldSnapshot // triple buffer
	limits    ResourceLimits
	writeIdx  uint32 // atomic - producer index
	readIdx   uint32 // atomic - consumer index
	sequence  uint64 // atomic - monotonic sequence
}

// NewSnapshotPool creates a pool with pre-allocated slices.
func NewSnapshotPool(limits ResourceLimits) *SnapshotPool {
	pool := &SnapshotPool{limits: limits}

	for i := 0; i < 3; i++ {
		pool.snapshots[i] = WorldSnapshot{
			Entities:    make([]EntitySnapshot, 0, limits.MaxSnapEntities),
			Projectiles: make([]ProjectileSnapshot, 0, limits.MaxProjectiles),
			Grenades:    make([]GrenadeSnapshot, 0, limits.MaxGrenades),
			WakePoints:  make([]WakePointSnapshot, 0, limits.MaxWakePoints),
			Shockwaves:  make([]ShockwaveSnapshot, 0, 8),
		}
	}

	return pool
}

// AcquireWrite gets the next write slot (producer only, called from the tick
// loop). Returns a snapshot with reset slices but preserved capacity.
func (p *SnapshotPool) AcquireWrite() *WorldSnapshot {
	idx := atomic.AddUint32(&p.writeIdx, 1) % 3
	snap := &p.snapshots[idx]

	snap.Entities = snap.Entities[:0]
	snap.Projectiles = snap.Projectiles[:0]
	snap.Grenades = snap.Grenades[:0]
	snap.WakePoints = snap.WakePoints[:0]
	snap.Shockwaves = snap.Shockwaves[:0]
	snap.Dilation = DilationSnapshot{}

	snap.Sequence = atomic.AddUint64(&p.sequence, 1)
	snap.Timestamp = time.Now()

	return snap
}

// PublishWrite marks the write complete and advances the read pointer.
// Called after the snapshot is fully populated.
func (p *SnapshotPool) PublishWrite() {
	atomic.StoreUint32(&p.readIdx, atomic.LoadUint32(&p.writeIdx))
}

// AcquireRead gets the latest complete snapshot (consumer only).
func (p *SnapshotPool) AcquireRead() *WorldSnapshot {
	idx := atomic.LoadUint32(&p.readIdx) % 3
	return &p.snapshots[idx]
}

// GetLimits returns the resource limits.
func (p *SnapshotPool) GetLimits() ResourceLimits {
	return p.limits
}

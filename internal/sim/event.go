package sim

import (
	"encoding/json"
	"time"
)

// EventType classifies simulation events for the audit log.
type EventType uint8

const (
	EventTypeUnknown EventType = iota
	EventTypeTick              // tick boundary with RNG seed
	EventTypeSpawn
	EventTypeDamage
	EventTypeDeath
	EventTypeDilation // level change, including forced drops
	EventTypeCatch
	EventTypeThrow
	EventTypeShockwave
	EventTypeDetonate
)

// EventVersion guards replay compatibility.
const EventVersion uint8 = 1

// Event is one record in the append-only simulation log.
type Event struct {
	Version   uint8     `json:"version"`
	Type      EventType `json:"type"`
	Timestamp int64     `json:"timestamp"` // unix nano
	Sequence  uint64    `json:"sequence"`  // monotonic
	TickNum   uint64    `json:"tickNum"`
	SourceID  string    `json:"sourceId"` // emitting entity, for rate limiting
	Payload   []byte    `json:"payload"`  // JSON-encoded typed payload
}

// String returns a human-readable event type name.
func (t EventType) String() string {
	switch t {
	case EventTypeTick:
		return "tick"
	case EventTypeSpawn:
		return "spawn"
	case EventTypeDamage:
		return "damage"
	case EventTypeDeath:
		return "death"
	case EventTypeDilation:
		return "dilation"
	case EventTypeCatch:
		return "catch"
	case EventTypeThrow:
		return "throw"
	case EventTypeShockwave:
		return "shockwave"
	case EventTypeDetonate:
		return "detonate"
	default:
		return "unknown"
	}
}

// TickPayload records tick boundaries for deterministic replay.
type TickPayload struct {
	RNGSeed     int64   `json:"rngSeed"`
	EntityCount int     `json:"entityCount"`
	WorldScale  float64 `json:"worldScale"`
	WorldDtNs   int64   `json:"worldDtNs"`
}

// SpawnPayload records entity creation.
type SpawnPayload struct {
	EntityID string  `json:"entityId"`
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
}

// DamagePayload records one applied damage event.
type DamagePayload struct {
	SourceID  string  `json:"sourceId"`
	TargetID  string  `json:"targetId"`
	Amount    float64 `json:"amount"`
	Remaining float64 `json:"remaining"`
}

// DeathPayload records the one-shot dead transition.
type DeathPayload struct {
	EntityID string `json:"entityId"`
	Name     string `json:"name"`
}

// DilationPayload records a level transition.
type DilationPayload struct {
	Level  int     `json:"level"`
	Scale  float64 `json:"scale"`
	Forced bool    `json:"forced"` // snapped to 0 by focus depletion
}

// CatchPayload records a projectile changing hands.
type CatchPayload struct {
	CatcherID    string `json:"catcherId"`
	ProjectileID string `json:"projectileId"`
}

// ShockwavePayload records a wake shockwave dispatch.
type ShockwavePayload struct {
	EmitterID string `json:"emitterId"`
	Segments  int    `json:"segments"`
}

// DetonatePayload records a grenade blast.
type DetonatePayload struct {
	GrenadeID string  `json:"grenadeId"`
	X         float64 `json:"x"`
	Z         float64 `json:"z"`
	Radius    float64 `json:"radius"`
	Affected  int     `json:"affected"`
}

// EncodePayload marshals a payload to JSON bytes.
func EncodePayload(payload interface{}) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return data
}

// NewEvent creates an event stamped with the current wall-clock time.
func NewEvent(eventType EventType, tickNum uint64, sourceID string, payload interface{}) Event {
	return Event{
		Version:   EventVersion,
		Type:      eventType,
		Timestamp: time.Now().UnixNano(),
		TickNum:   tickNum,
		SourceID:  sourceID,
		Payload:   EncodePayload(payload),
	}
}

package sim

// HealthRecord owns an entity's health. It is created full at spawn and
// mutated only through the DamageResolver; the dead transition happens
// exactly once, is irreversible, and fires each registered death observer
// exactly once.
type HealthRecord struct {
	current      float64
	max          float64
	invulnerable bool
	dead         bool

	// Observers registered before the first event; fired in registration
	// order on the single dead transition.
	onDeath []func()
}

// NewHealthRecord creates a full record with the given capacity.
func NewHealthRecord(max float64) *HealthRecord {
	if max <= 0 {
		max = 1
	}
	return &HealthRecord{current: max, max: max}
}

// OnDeath registers a one-shot death observer.
func (h *HealthRecord) OnDeath(fn func()) {
	if fn != nil {
		h.onDeath = append(h.onDeath, fn)
	}
}

// Current returns remaining health.
func (h *HealthRecord) Current() float64 { return h.current }

// Max returns the capacity.
func (h *HealthRecord) Max() float64 { return h.max }

// IsDead reports the irreversible dead state.
func (h *HealthRecord) IsDead() bool { return h.dead }

// Invulnerable reports whether damage is currently ignored.
func (h *HealthRecord) Invulnerable() bool { return h.invulnerable }

// SetInvulnerable toggles damage immunity. Healing still applies.
func (h *HealthRecord) SetInvulnerable(on bool) { h.invulnerable = on }

// damage and heal are package-private: all mutation goes through the
// DamageResolver so there is a single health-mutating path.

func (h *HealthRecord) damage(amount float64) bool {
	if h.dead || h.invulnerable || amount <= 0 {
		return false
	}
	h.current -= amount
	if h.current <= 0 {
		h.current = 0
		h.dead = true
		for _, fn := range h.onDeath {
			fn()
		}
	}
	return true
}

func (h *HealthRecord) heal(amount float64) bool {
	if h.dead || amount <= 0 {
		return false
	}
	h.current += amount
	if h.current > h.max {
		h.current = h.max
	}
	return true
}

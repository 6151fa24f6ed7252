package sim

// Intents is one tick's worth of already-debounced player input edges.
// The input sampler (the HTTP surface here, an engine input layer in a real
// client) is responsible for debouncing; the simulation treats each field
// as a clean edge or level for exactly one tick.
//
// Intents are sampled on REAL time: player responsiveness must not slow
// down with the world.
type Intents struct {
	MoveDir  Vec3 // desired horizontal direction, unit or zero
	StopMove bool // edge: clear the held movement direction
	Facing   Vec3 // aim direction, unit or zero to keep current

	Fire      bool // edge: fire the equipped weapon
	Throw     bool // edge: throw a held projectile
	CatchHeld bool // level: catch intent is being held

	DilationUp   bool // edge: request one tier deeper
	DilationDown bool // edge: request one tier shallower
}

// merge folds a queued command's edges into the pending intents without
// losing edges that arrived earlier in the same tick.
func (in *Intents) merge(o Intents) {
	if o.StopMove {
		in.MoveDir = Vec3{}
	} else if !o.MoveDir.IsZero() {
		in.MoveDir = o.MoveDir.Horizontal().Normalized()
	}
	if !o.Facing.IsZero() {
		in.Facing = o.Facing
	}
	in.Fire = in.Fire || o.Fire
	in.Throw = in.Throw || o.Throw
	in.CatchHeld = in.CatchHeld || o.CatchHeld
	in.DilationUp = in.DilationUp || o.DilationUp
	in.DilationDown = in.DilationDown || o.DilationDown
}

// clearEdges resets one-tick edges while preserving held levels and the
// movement direction, which persists until changed.
func (in *Intents) clearEdges() {
	in.Fire = false
	in.Throw = false
	in.StopMove = false
	in.DilationUp = false
	in.DilationDown = false
}

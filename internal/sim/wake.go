package sim

// MaxWakeSegments bounds the recorded trail length per emitter.
const MaxWakeSegments = 512

// WakeSegment is one recorded sample of a high-speed trail. Segments live
// on WORLD time: the wake is a hazard that must stay time-consistent with
// the projectiles it represents.
type WakeSegment struct {
	Handle uint64  // absolute, monotonically increasing identity
	Pos    Vec3    // trailing position at creation
	Born   float64 // world time of creation
	Danger bool    // part of an armed trail (a shockwave was dispatched)
}

// WakeConfig tunes the sonic-wake hazard.
type WakeConfig struct {
	MinSpeed       float64 // horizontal activation speed, m/s
	RequireDeepest bool    // also gate activation on the deepest tier

	SegmentSpacing  float64 // travel distance between samples, meters
	SegmentLifetime float64 // world seconds before a segment expires

	BleedoverSeconds float64 // grace window after activation lapses

	ShockwaveSpeed  float64 // m/s along the recorded trail
	ShockwaveRadius float64 // damage radius around the cursor
	ShockwaveDamage float64 // flat damage per target, once per traversal
}

// DefaultWakeConfig returns the stock sonic-boom tuning.
func DefaultWakeConfig() WakeConfig {
	return WakeConfig{
		MinSpeed:         14,
		RequireDeepest:   true,
		SegmentSpacing:   1.0,
		SegmentLifetime:  3.0,
		BleedoverSeconds: 1.2,
		ShockwaveSpeed:   30,
		ShockwaveRadius:  2.0,
		ShockwaveDamage:  35,
	}
}

// Shockwave is a cursor traveling oldest-to-newest along a recorded wake,
// damaging each target at most once per traversal. The cursor addresses
// segments by absolute handle, so oldest-first pruning underneath it never
// shifts its position.
type Shockwave struct {
	cursor uint64  // handle of the segment the cursor sits on
	frac   float64 // interpolation toward the next segment, [0,1)
	hit    HitSet
	done   bool
}

// Done reports whether the wave has run off the end of the trail.
func (s *Shockwave) Done() bool { return s.done }

// MarkHit records a target and reports whether this is its first hit by
// this wave instance.
func (s *Shockwave) MarkHit(id string) bool { return s.hit.Mark(id) }

// WakeTracker records the spatio-temporal damage trail an entity leaves
// during qualifying high-speed movement, and drives the traveling shockwave
// released when the run ends.
//
// Lifecycle: while the activation condition holds, a segment is
// appended every SegmentSpacing meters of travel. On the first tick the
// condition lapses, a bleed-over window opens and one shockwave is
// dispatched along the recorded trail; activation cannot restart until
// bleed-over expires. Segments age out independently, pruned oldest-first.
type WakeTracker struct {
	cfg WakeConfig

	segments   []WakeSegment
	baseHandle uint64 // handle of segments[0]
	nextHandle uint64

	active    bool
	bleedover float64 // remaining bleed-over, world seconds
	travel    float64 // distance since the last segment
	lastPos   Vec3

	wave *Shockwave
}

// NewWakeTracker creates an inactive tracker.
func NewWakeTracker(cfg WakeConfig) *WakeTracker {
	return &WakeTracker{cfg: cfg}
}

// Config returns the tracker's tuning.
func (w *WakeTracker) Config() WakeConfig { return w.cfg }

// Active reports whether the trail is currently being laid.
func (w *WakeTracker) Active() bool { return w.active }

// InBleedover reports whether the grace window is open.
func (w *WakeTracker) InBleedover() bool { return w.bleedover > 0 }

// Segments returns the live trail, oldest first. Callers must not mutate.
func (w *WakeTracker) Segments() []WakeSegment { return w.segments }

// Wave returns the traveling shockwave, nil when none is live.
func (w *WakeTracker) Wave() *Shockwave { return w.wave }

// Tick advances the tracker one world-time step for an emitter at pos
// moving at horizSpeed.
func (w *WakeTracker) Tick(pos Vec3, horizSpeed float64, deepest bool, worldNow, worldDt float64) {
	condition := horizSpeed >= w.cfg.MinSpeed && (!w.cfg.RequireDeepest || deepest)

	switch {
	case w.active && !condition:
		// First lapse: open bleed-over and dispatch the shockwave down the
		// recorded trail.
		w.active = false
		w.bleedover = w.cfg.BleedoverSeconds
		if len(w.segments) > 0 && w.wave == nil {
			for i := range w.segments {
				w.segments[i].Danger = true
			}
			w.wave = &Shockwave{cursor: w.baseHandle, hit: NewHitSet()}
		}

	case !w.active && condition && w.bleedover <= 0:
		w.active = true
		w.lastPos = pos
		w.travel = 0
	}

	if w.bleedover > 0 {
		w.bleedover -= worldDt
	}

	if w.active {
		step := pos.Sub(w.lastPos)
		dist := step.Length()
		w.travel += dist
		w.lastPos = pos
		for w.travel >= w.cfg.SegmentSpacing && len(w.segments) < MaxWakeSegments {
			w.travel -= w.cfg.SegmentSpacing
			// Sample the trailing point where the spacing threshold was
			// crossed, not wherever the emitter ended the tick.
			sample := pos
			if dist >= vecEpsilon {
				sample = pos.Sub(step.Scale(w.travel / dist))
			}
			w.segments = append(w.segments, WakeSegment{
				Handle: w.nextHandle,
				Pos:    sample,
				Born:   worldNow,
			})
			w.nextHandle++
		}
	}

	w.expire(worldNow)
	w.advanceWave(worldDt)
}

// expire prunes aged segments oldest-first, keeping handles stable.
func (w *WakeTracker) expire(worldNow float64) {
	n := 0
	for n < len(w.segments) && worldNow-w.segments[n].Born >= w.cfg.SegmentLifetime {
		n++
	}
	if n > 0 {
		w.segments = w.segments[n:]
		w.baseHandle += uint64(n)
	}
}

// advanceWave walks the cursor along the trail at ShockwaveSpeed.
func (w *WakeTracker) advanceWave(worldDt float64) {
	if w.wave == nil {
		return
	}
	s := w.wave

	// Pruning may have overtaken the cursor; snap it to the oldest
	// surviving segment.
	if s.cursor < w.baseHandle {
		s.cursor = w.baseHandle
		s.frac = 0
	}

	idx := int(s.cursor - w.baseHandle)
	if idx >= len(w.segments) {
		s.done = true
		w.wave = nil
		return
	}

	remaining := w.cfg.ShockwaveSpeed * worldDt
	for remaining > 0 {
		if idx+1 >= len(w.segments) {
			// Reached the newest segment: traversal complete.
			s.done = true
			w.wave = nil
			return
		}
		segLen := w.segments[idx].Pos.DistanceTo(w.segments[idx+1].Pos)
		if segLen < vecEpsilon {
			idx++
			s.cursor++
			s.frac = 0
			continue
		}
		left := (1 - s.frac) * segLen
		if remaining < left {
			s.frac += remaining / segLen
			remaining = 0
		} else {
			remaining -= left
			idx++
			s.cursor++
			s.frac = 0
		}
	}
}

// WavePos returns the shockwave cursor's interpolated position, and false
// when no wave is live.
func (w *WakeTracker) WavePos() (Vec3, bool) {
	if w.wave == nil {
		return Vec3{}, false
	}
	idx := int(w.wave.cursor - w.baseHandle)
	if idx < 0 || idx >= len(w.segments) {
		return Vec3{}, false
	}
	from := w.segments[idx].Pos
	if idx+1 >= len(w.segments) {
		return from, true
	}
	to := w.segments[idx+1].Pos
	return from.Add(to.Sub(from).Scale(w.wave.frac)), true
}

package sim

import (
	"errors"
	"math"
)

// DilationConfig tunes the discrete time-scale tiers.
type DilationConfig struct {
	// Scales lists the time-scale factor per level, level 0 first.
	// Must start at 1.0 and descend.
	Scales []float64

	// SmoothingSeconds is the real-time window over which the applied scale
	// eases toward the target scale. 0 applies transitions instantly.
	SmoothingSeconds float64
}

// DefaultDilationConfig returns the stock four-tier ladder.
func DefaultDilationConfig() DilationConfig {
	return DilationConfig{
		Scales:           []float64{1.0, 0.5, 0.2, 0.05},
		SmoothingSeconds: 0.25,
	}
}

// DilationController is the state machine stepping through discrete
// time-scale tiers. It owns the single process-wide dilation level and
// pushes the resulting scale into the Clock.
//
// Transition rules:
//   - Increase/Decrease move the level by one, clamped to [0, N-1].
//   - Increase from level 0 is refused while the focus pool cannot enter
//     dilation (empty, not infinite).
//   - Every tick, a non-zero level with a depleted pool snaps to level 0.
//     Depletion is polled, not pushed.
//
// Scale application is smoothed over a real-time window so the transition
// speed is independent of the scale being transitioned to.
type DilationController struct {
	cfg   DilationConfig
	clock *Clock
	focus *FocusMeter

	level   int
	applied float64
}

// NewDilationController wires the controller to its clock and focus pool.
// Both collaborators are required; a missing one is a configuration fault
// reported once here rather than per tick.
func NewDilationController(clock *Clock, focus *FocusMeter, cfg DilationConfig) (*DilationController, error) {
	if clock == nil {
		return nil, errors.New("dilation: clock is required")
	}
	if focus == nil {
		return nil, errors.New("dilation: focus meter is required")
	}
	if len(cfg.Scales) == 0 {
		cfg.Scales = DefaultDilationConfig().Scales
	}
	if cfg.Scales[0] != 1.0 {
		return nil, errors.New("dilation: level 0 scale must be 1.0")
	}
	for i := 1; i < len(cfg.Scales); i++ {
		if cfg.Scales[i] >= cfg.Scales[i-1] || cfg.Scales[i] <= 0 {
			return nil, errors.New("dilation: scales must descend and stay positive")
		}
	}
	d := &DilationController{
		cfg:     cfg,
		clock:   clock,
		focus:   focus,
		applied: cfg.Scales[0],
	}
	clock.SetScale(d.applied)
	return d, nil
}

// Level returns the active tier index.
func (d *DilationController) Level() int { return d.level }

// Levels returns the number of configured tiers.
func (d *DilationController) Levels() int { return len(d.cfg.Scales) }

// TargetScale returns the scale of the active tier.
func (d *DilationController) TargetScale() float64 {
	return d.cfg.Scales[d.level]
}

// AppliedScale returns the smoothed scale currently pushed to the clock.
func (d *DilationController) AppliedScale() float64 { return d.applied }

// IsDeepest reports whether the deepest tier is active. Every
// deepest-tier-only ability (bullet catch, wall walk) gates on this.
func (d *DilationController) IsDeepest() bool {
	return d.level == len(d.cfg.Scales)-1
}

// Increase steps one tier deeper. Returns false when already deepest or
// when entering dilation from level 0 with an unusable pool.
func (d *DilationController) Increase() bool {
	if d.level >= len(d.cfg.Scales)-1 {
		return false
	}
	if d.level == 0 && !d.focus.CanEnterDilation() {
		return false
	}
	d.level++
	return true
}

// Decrease steps one tier back toward normal speed. Returns false at level 0.
func (d *DilationController) Decrease() bool {
	if d.level <= 0 {
		return false
	}
	d.level--
	return true
}

// Tick polls the focus pool and advances scale smoothing. Must run before
// any world-delta consumer in the same tick.
func (d *DilationController) Tick(realDt float64) {
	// Forced de-escalation: depleted pool snaps to normal speed within one
	// tick of depletion.
	if d.level > 0 && d.focus.IsEmpty() {
		d.level = 0
	}

	target := d.TargetScale()
	if d.cfg.SmoothingSeconds <= 0 {
		d.applied = target
	} else {
		// Critically-damped exponential approach on REAL delta: the
		// transition takes the same wall-clock time whether speeding up or
		// slowing down.
		k := 1 - math.Exp(-5*realDt/d.cfg.SmoothingSeconds)
		d.applied += (target - d.applied) * k
		if math.Abs(d.applied-target) < 1e-4 {
			d.applied = target
		}
	}
	d.clock.SetScale(d.applied)
}

// Package controller implements the adaptive system-variant controller
// described in §4.8: a rule-based pass over (entity_count, profiler.Stats)
// that applies at most one variant switch per variant-capable system per
// tick. The per-tick
// adaptation-pass shape is grounded on lixenwraith-vi-fighter's
// system-adaptation.go, though that file picks a variant with an EXP3
// multi-armed bandit; this controller deliberately uses the literal fixed
// thresholds the spec calls for instead of a learned policy.
package controller

import (
	"simcore/internal/core/ecs/profiler"
	"simcore/internal/core/ecs/variant"

	"github.com/joeycumines/go-utilpkg/logiface"
	"github.com/joeycumines/go-utilpkg/logiface/stumpy"
)

// Rule evaluates whether a variant-capable system should switch variant
// given the current entity count and profiler stats, returning the target
// variant and true if a switch should be attempted.
type Rule func(entityCount int, stats profiler.Stats) (variant.Variant, bool)

// ScaleUpOnHighEntityCount switches a Scalar system to SIMD once the entity
// count exceeds threshold.
func ScaleUpOnHighEntityCount(threshold int) Rule {
	return func(entityCount int, _ profiler.Stats) (variant.Variant, bool) {
		if entityCount > threshold {
			return variant.SIMD, true
		}
		return 0, false
	}
}

// ScaleDownOnLowEntityCount switches a SIMD system back to Scalar once the
// entity count drops below threshold.
func ScaleDownOnLowEntityCount(threshold int) Rule {
	return func(entityCount int, _ profiler.Stats) (variant.Variant, bool) {
		if entityCount < threshold {
			return variant.Scalar, true
		}
		return 0, false
	}
}

// Target is a single variant-capable system under adaptive control.
type Target struct {
	Name     string
	System   variant.Capable
	UpRule   Rule // applied when System.CurrentVariant() == Scalar
	DownRule Rule // applied when System.CurrentVariant() == SIMD
}

// Controller evaluates its targets once per tick, firing at most one
// variant switch per target per tick.
type Controller struct {
	targets []*Target
	logger  *logiface.Logger[*stumpy.Event]
}

// New constructs a controller over the given targets.
func New(targets ...*Target) *Controller {
	return &Controller{targets: targets}
}

// SetLogger installs the optional structured-logging collaborator. A nil
// logger (the default) disables decision logging.
func (c *Controller) SetLogger(l *logiface.Logger[*stumpy.Event]) {
	c.logger = l
}

// SetTargets replaces the controller's target list wholesale. Used by a
// host that hot-swaps variant-capable systems and needs the controller to
// track the registry's current membership rather than a fixed set captured
// at construction time.
func (c *Controller) SetTargets(targets ...*Target) {
	c.targets = targets
}

// Decision records a variant switch the controller applied during Tick.
type Decision struct {
	Target string
	From   variant.Variant
	To     variant.Variant
}

// Tick evaluates every target against entityCount and stats, applying at
// most one switch per target, and returns the decisions that fired.
func (c *Controller) Tick(entityCount int, stats profiler.Stats) []Decision {
	var decisions []Decision
	for _, t := range c.targets {
		current := t.System.CurrentVariant()

		var rule Rule
		switch current {
		case variant.Scalar:
			rule = t.UpRule
		case variant.SIMD:
			rule = t.DownRule
		default:
			continue
		}
		if rule == nil {
			continue
		}

		target, fire := rule(entityCount, stats)
		if !fire || target == current {
			continue
		}
		if !variant.Supports(t.System, target) {
			continue
		}
		if ok := t.System.SwitchVariant(target); !ok {
			continue
		}
		decisions = append(decisions, Decision{Target: t.Name, From: current, To: target})
		if c.logger != nil {
			c.logger.Info().
				Str("system", t.Name).
				Str("from_variant", current.String()).
				Str("to_variant", target.String()).
				Log("controller: variant switched")
		}
	}
	return decisions
}

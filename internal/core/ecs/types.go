// Package ecs is the World facade: it composes the entity, storage, and
// system-registry packages behind a single flat API, the way the host
// application's internal/core/ecs package presents EntityManager,
// ComponentRegistry, and SystemManager as one surface. Entity, Error/Code,
// and Variant are re-exported via type aliases so callers never need to
// import the leaf packages directly.
package ecs

import (
	"simcore/internal/core/ecs/ecserr"
	"simcore/internal/core/ecs/entity"
	"simcore/internal/core/ecs/variant"

	"github.com/joeycumines/go-utilpkg/logiface"
	"github.com/joeycumines/go-utilpkg/logiface/stumpy"
)

type (
	Entity = entity.Entity
	Error  = ecserr.Error
	Code   = ecserr.Code

	Variant = variant.Variant
)

const (
	Scalar      = variant.Scalar
	SIMD        = variant.SIMD
	GPU         = variant.GPU
	Approximate = variant.Approximate
)

var InvalidEntity = entity.InvalidEntity

// Logger is the concrete logiface instantiation this core accepts. Using
// the stumpy event type directly (rather than an abstracted interface)
// keeps World non-generic while still treating the facade as a real
// collaborator, per the bootstrap design note.
type Logger = logiface.Logger[*stumpy.Event]

// Config controls World construction. The zero value is not meaningful;
// use DefaultConfig or the With* options.
type Config struct {
	HistorySize       int
	ControllerCadence int // ticks between AdaptiveController evaluations; 1 = every tick
	Logger            *Logger
	TuneResources     bool // best-effort GOMAXPROCS/GOMEMLIMIT tuning on construction
}

// DefaultConfig mirrors the teacher's DefaultWorldConfig: a ring of 300
// frames (five seconds at 60fps), controller evaluation every tick, no
// logger, and resource tuning enabled.
func DefaultConfig() Config {
	return Config{
		HistorySize:       300,
		ControllerCadence: 1,
		Logger:            nil,
		TuneResources:     true,
	}
}

// Option mutates a Config during World construction.
type Option func(*Config)

func WithHistorySize(n int) Option {
	return func(c *Config) { c.HistorySize = n }
}

func WithControllerCadence(ticks int) Option {
	return func(c *Config) {
		if ticks < 1 {
			ticks = 1
		}
		c.ControllerCadence = ticks
	}
}

func WithLogger(l *Logger) Option {
	return func(c *Config) { c.Logger = l }
}

func WithResourceTuning(enabled bool) Option {
	return func(c *Config) { c.TuneResources = enabled }
}

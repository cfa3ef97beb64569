// Package runtime wires the ambient stack — structured logging and
// container-aware resource tuning — into World construction, the way the
// host application's own main wiring sets up its logger and process limits
// before building the game loop.
package runtime

import (
	"io"
	"os"

	"simcore/internal/core/ecs"

	"github.com/joeycumines/go-utilpkg/logiface"
	"github.com/joeycumines/go-utilpkg/logiface/stumpy"
)

// NewLogger builds the default structured logger: a logiface facade backed
// by stumpy, writing newline-delimited JSON to w. Passing nil uses
// os.Stderr, matching stumpy's own default.
func NewLogger(w io.Writer) *ecs.Logger {
	var opts []stumpy.Option
	if w != nil {
		opts = append(opts, stumpy.WithWriter(w))
	}
	return logiface.New[*stumpy.Event](stumpy.WithStumpy(opts...))
}

// Bootstrap constructs a World with a default stumpy-backed logger and
// resource tuning enabled, composing any additional options the caller
// supplies. This is the entry point a hosting application is expected to
// call instead of ecs.New directly.
func Bootstrap(extra ...ecs.Option) *ecs.World {
	logger := NewLogger(os.Stderr)
	opts := append([]ecs.Option{
		ecs.WithLogger(logger),
		ecs.WithResourceTuning(true),
	}, extra...)
	return ecs.New(opts...)
}

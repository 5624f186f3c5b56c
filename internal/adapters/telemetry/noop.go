// Package telemetry provides recording of build phases as vertices.
package telemetry

import (
	"context"
	"io"

	"github.com/conbuild/conbuild/internal/core/ports"
)

// Noop is a no-op implementation of ports.Telemetry.
type Noop struct{}

// NewNoop creates a new Noop telemetry recorder.
func NewNoop() *Noop {
	return &Noop{}
}

// Record returns a vertex that discards everything.
func (t *Noop) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	v := &noopVertex{}
	return ports.ContextWithVertex(ctx, v), v
}

// Close does nothing.
func (t *Noop) Close() error {
	return nil
}

type noopVertex struct{}

func (v *noopVertex) Stdout() io.Writer { return io.Discard }
func (v *noopVertex) Stderr() io.Writer { return io.Discard }
func (v *noopVertex) Complete(error)    {}
func (v *noopVertex) Cached()           {}

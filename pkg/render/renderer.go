// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-hexbounce/pkg/logging"
	"github.com/opd-ai/go-hexbounce/pkg/physics"
	"github.com/opd-ai/go-hexbounce/pkg/simulation"
)

// Renderer draws one frame of the simulation. Calls arrive in the order
// Clear, RenderBoundary, RenderBody, Present.
type Renderer interface {
	Clear()
	RenderBoundary(vertices []physics.Vector2D)
	RenderBody(body physics.Body)
	Present() error
}

// Draw renders state as a single frame on r.
func Draw(r Renderer, state simulation.State) error {
	r.Clear()
	r.RenderBoundary(state.Vertices[:])
	r.RenderBody(state.Body)
	return r.Present()
}

// NullRenderer discards frames, logging each call at debug level.
type NullRenderer struct {
	logger *logging.Logger
	frames uint64
}

// NewNullRenderer creates a NullRenderer. A nil logger discards output.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &NullRenderer{logger: logger}
}

// Clear implements Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called", "frame", d.frames)
}

// RenderBoundary implements Renderer.
func (d *NullRenderer) RenderBoundary(vertices []physics.Vector2D) {
	d.logger.Debug(context.Background(), "RenderBoundary called", "vertices", len(vertices))
}

// RenderBody implements Renderer.
func (d *NullRenderer) RenderBody(body physics.Body) {
	d.logger.Debug(context.Background(), "RenderBody called",
		"x", body.Position.X,
		"y", body.Position.Y,
		"radius", body.Radius,
	)
}

// Present implements Renderer.
func (d *NullRenderer) Present() error {
	d.frames++
	d.logger.Debug(context.Background(), "Present called", "frame", d.frames)
	return nil
}

// Frames returns the number of presented frames.
func (d *NullRenderer) Frames() uint64 {
	return d.frames
}

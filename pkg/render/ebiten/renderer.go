// pkg/render/ebiten/renderer.go
package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/opd-ai/go-hexbounce/pkg/physics"
)

const edgeWidth = 3

var (
	backgroundColor = color.RGBA{16, 16, 24, 255}
	edgeColor       = color.RGBA{200, 200, 220, 255}
	ballColor       = color.RGBA{230, 80, 60, 255}
)

// Renderer draws frames onto the ebiten screen image. Target must be called
// with the current screen before each frame.
type Renderer struct {
	screen *ebiten.Image
	offset physics.Vector2D
}

// NewRenderer creates a renderer shifting world coordinates by offset.
func NewRenderer(offset physics.Vector2D) *Renderer {
	return &Renderer{offset: offset}
}

// Target sets the image the next frame is drawn on.
func (r *Renderer) Target(screen *ebiten.Image) {
	r.screen = screen
}

// Clear implements render.Renderer.
func (r *Renderer) Clear() {
	r.screen.Fill(backgroundColor)
}

// RenderBoundary implements render.Renderer.
func (r *Renderer) RenderBoundary(vertices []physics.Vector2D) {
	for _, seg := range segments(vertices, r.offset) {
		vector.StrokeLine(r.screen, seg[0], seg[1], seg[2], seg[3], edgeWidth, edgeColor, true)
	}
}

// RenderBody implements render.Renderer.
func (r *Renderer) RenderBody(body physics.Body) {
	p := body.Position.Add(r.offset)
	vector.DrawFilledCircle(r.screen, float32(p.X), float32(p.Y), float32(body.Radius), ballColor, true)
}

// Present implements render.Renderer. ebiten presents the screen itself.
func (r *Renderer) Present() error {
	return nil
}

// segments returns x0, y0, x1, y1 for each edge of the closed outline.
func segments(vertices []physics.Vector2D, offset physics.Vector2D) [][4]float32 {
	if len(vertices) < 2 {
		return nil
	}
	out := make([][4]float32, len(vertices))
	for i, v := range vertices {
		a := v.Add(offset)
		b := vertices[(i+1)%len(vertices)].Add(offset)
		out[i] = [4]float32{float32(a.X), float32(a.Y), float32(b.X), float32(b.Y)}
	}
	return out
}

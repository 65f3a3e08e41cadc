package render

import (
	"io"
	"math"
	"strings"

	"golang.org/x/time/rate"

	"github.com/opd-ai/go-hexbounce/pkg/physics"
)

// cellAspect is the height/width ratio of a terminal character cell.
const cellAspect = 2.0

const (
	edgeGlyph   = '#'
	bodyGlyph   = 'o'
	centerGlyph = '@'
)

// TerminalRenderer provides a simple ASCII-based rendering for terminals
type TerminalRenderer struct {
	out       io.Writer
	width     int
	height    int
	buffer    [][]rune
	scale     float64 // world units per cell column
	centerPos physics.Vector2D
	limiter   *rate.Limiter
	dropped   uint64
}

// NewTerminalRenderer creates a renderer writing width x height cells to out.
// When fps is positive, Present skips frames arriving faster than fps.
func NewTerminalRenderer(out io.Writer, width, height int, scale float64, fps int) *TerminalRenderer {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	r := &TerminalRenderer{
		out:    out,
		width:  width,
		height: height,
		buffer: buffer,
		scale:  scale,
	}
	if fps > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(fps), 1)
	}
	r.Clear()
	return r
}

// SetCenter sets the center position of the view
func (r *TerminalRenderer) SetCenter(pos physics.Vector2D) {
	r.centerPos = pos
}

// Fit centers the view on center and picks a scale so a circle of the
// given radius fills the buffer.
func (r *TerminalRenderer) Fit(center physics.Vector2D, radius float64) {
	r.centerPos = center
	if r.width < 2 || r.height < 2 || radius <= 0 {
		return
	}
	byWidth := 2 * radius / float64(r.width-1)
	byHeight := 2 * radius / (float64(r.height-1) * cellAspect)
	r.scale = math.Max(byWidth, byHeight)
}

// Dropped returns the number of frames skipped by the frame limiter.
func (r *TerminalRenderer) Dropped() uint64 {
	return r.dropped
}

// worldToScreen converts world coordinates to screen coordinates
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	screenX := math.Round((pos.X-r.centerPos.X)/r.scale + r.midX())
	screenY := math.Round((pos.Y-r.centerPos.Y)/(r.scale*cellAspect) + r.midY())
	return int(screenX), int(screenY)
}

// screenToWorld returns the world position of a cell's center.
func (r *TerminalRenderer) screenToWorld(x, y int) physics.Vector2D {
	return physics.Vector2D{
		X: (float64(x)-r.midX())*r.scale + r.centerPos.X,
		Y: (float64(y)-r.midY())*r.scale*cellAspect + r.centerPos.Y,
	}
}

func (r *TerminalRenderer) midX() float64 { return float64(r.width-1) / 2 }
func (r *TerminalRenderer) midY() float64 { return float64(r.height-1) / 2 }

func (r *TerminalRenderer) plot(x, y int, glyph rune) {
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = glyph
	}
}

// Clear implements Renderer
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
}

// RenderBoundary implements Renderer. Each edge is sampled at roughly
// two points per cell it spans.
func (r *TerminalRenderer) RenderBoundary(vertices []physics.Vector2D) {
	if len(vertices) < 2 {
		return
	}
	for i, start := range vertices {
		end := vertices[(i+1)%len(vertices)]
		x0, y0 := r.worldToScreen(start)
		x1, y1 := r.worldToScreen(end)
		span := math.Max(math.Abs(float64(x1-x0)), math.Abs(float64(y1-y0)))
		samples := int(span)*2 + 1
		for s := 0; s <= samples; s++ {
			t := float64(s) / float64(samples)
			x, y := r.worldToScreen(start.Add(end.Sub(start).Scale(t)))
			r.plot(x, y, edgeGlyph)
		}
	}
}

// RenderBody implements Renderer. Cells whose centers fall inside the body
// are filled; the cell under the body's center is always marked.
func (r *TerminalRenderer) RenderBody(body physics.Body) {
	cx, cy := r.worldToScreen(body.Position)
	reachX := int(math.Ceil(body.Radius/r.scale)) + 1
	reachY := int(math.Ceil(body.Radius/(r.scale*cellAspect))) + 1

	for y := cy - reachY; y <= cy+reachY; y++ {
		for x := cx - reachX; x <= cx+reachX; x++ {
			if r.screenToWorld(x, y).Distance(body.Position) <= body.Radius {
				r.plot(x, y, bodyGlyph)
			}
		}
	}
	r.plot(cx, cy, centerGlyph)
}

// Present implements Renderer
func (r *TerminalRenderer) Present() error {
	if r.limiter != nil && !r.limiter.Allow() {
		r.dropped++
		return nil
	}

	var sb strings.Builder
	sb.Grow((r.width + 3) * (r.height + 2))
	sb.WriteString("\033[H\033[2J")
	border := "+" + strings.Repeat("-", r.width) + "+\n"
	sb.WriteString(border)
	for y := range r.buffer {
		sb.WriteByte('|')
		sb.WriteString(string(r.buffer[y]))
		sb.WriteString("|\n")
	}
	sb.WriteString(border)

	_, err := io.WriteString(r.out, sb.String())
	return err
}

// pkg/render/engo/shapes.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-hexbounce/pkg/physics"
	"github.com/opd-ai/go-hexbounce/pkg/simulation"
)

// edgeThickness is the drawn width of a hexagon edge in pixels
const edgeThickness = 4

var (
	backgroundColor = color.RGBA{16, 16, 24, 255}
	edgeColor       = color.RGBA{200, 200, 220, 255}
	ballColor       = color.RGBA{230, 80, 60, 255}
	contactColor    = color.RGBA{255, 220, 80, 255}
)

// shape is a drawable entity owned by the viewer
type shape struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

func newEdgeShape() *shape {
	return &shape{
		BasicEntity: ecs.NewBasic(),
		RenderComponent: common.RenderComponent{
			Drawable: common.Rectangle{},
			Color:    edgeColor,
		},
	}
}

func newBallShape() *shape {
	return &shape{
		BasicEntity: ecs.NewBasic(),
		RenderComponent: common.RenderComponent{
			Drawable: common.Circle{},
			Color:    ballColor,
		},
	}
}

// edgeTransform places a rectangle of the given thickness along the segment
// start->end. engo rotates a SpaceComponent in degrees around its Position,
// so Position is start shifted half the thickness against the edge normal.
func edgeTransform(start, end physics.Vector2D, thickness float64) common.SpaceComponent {
	dir := end.Sub(start)
	angle := math.Atan2(dir.Y, dir.X)
	normal := physics.Vector2D{X: -math.Sin(angle), Y: math.Cos(angle)}
	origin := start.Sub(normal.Scale(thickness / 2))

	return common.SpaceComponent{
		Position: engo.Point{X: float32(origin.X), Y: float32(origin.Y)},
		Width:    float32(dir.Length()),
		Height:   float32(thickness),
		Rotation: float32(angle * 180 / math.Pi),
	}
}

// bodyTransform returns the bounding square of a circular body
func bodyTransform(body physics.Body) common.SpaceComponent {
	return common.SpaceComponent{
		Position: engo.Point{
			X: float32(body.Position.X - body.Radius),
			Y: float32(body.Position.Y - body.Radius),
		},
		Width:  float32(2 * body.Radius),
		Height: float32(2 * body.Radius),
	}
}

// syncShapes moves edges and ball to match state, shifted by offset
func syncShapes(state simulation.State, offset physics.Vector2D, edges []*shape, ball *shape) {
	for i, e := range edges {
		start := state.Vertices[i].Add(offset)
		end := state.Vertices[(i+1)%len(state.Vertices)].Add(offset)
		e.SpaceComponent = edgeTransform(start, end, edgeThickness)
	}

	body := state.Body
	body.Position = body.Position.Add(offset)
	ball.SpaceComponent = bodyTransform(body)
}

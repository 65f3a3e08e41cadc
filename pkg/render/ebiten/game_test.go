package ebiten

import (
	"strings"
	"testing"

	"github.com/opd-ai/go-hexbounce/pkg/physics"
	"github.com/opd-ai/go-hexbounce/pkg/render"
	"github.com/opd-ai/go-hexbounce/pkg/simulation"
)

var _ render.Renderer = (*Renderer)(nil)

func TestNewGame_CentersHexagon(t *testing.T) {
	sim := simulation.New(nil, nil, nil)
	game := NewGame(sim, nil, 1000, 700)

	want := physics.Vector2D{X: 100, Y: 50}
	if game.renderer.offset != want {
		t.Errorf("expected offset %v, got %v", want, game.renderer.offset)
	}
	if w, h := game.Layout(1, 1); w != 1000 || h != 700 {
		t.Errorf("expected fixed layout 1000x700, got %dx%d", w, h)
	}
}

func TestSegments_ClosesOutline(t *testing.T) {
	square := []physics.Vector2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	segs := segments(square, physics.Vector2D{X: 1, Y: 2})

	if len(segs) != 4 {
		t.Fatalf("expected 4 segments, got %d", len(segs))
	}
	if segs[0] != [4]float32{1, 2, 11, 2} {
		t.Errorf("unexpected first segment %v", segs[0])
	}
	if segs[3] != [4]float32{1, 12, 1, 2} {
		t.Errorf("expected last segment to close back to the start, got %v", segs[3])
	}
	if segments(square[:1], physics.Vector2D{}) != nil {
		t.Error("expected no segments for a single vertex")
	}
}

func TestStatusLine(t *testing.T) {
	sim := simulation.New(nil, nil, nil)
	sim.RunHeadless(3)

	line := statusLine(sim.Snapshot(), 0.01)
	if !strings.HasPrefix(line, "tick 3  contacts 0") {
		t.Errorf("unexpected status line %q", line)
	}
	if strings.Contains(line, "[paused]") {
		t.Error("running simulation reported as paused")
	}

	sim.Pause()
	if line := statusLine(sim.Snapshot(), 0.01); !strings.Contains(line, "[paused]") {
		t.Errorf("expected paused marker, got %q", line)
	}
}

package viewer

import (
	"errors"
	"strings"
	"testing"

	"github.com/UnkushB/toy-obj-viewer/internal/engine/overlay"
	"github.com/UnkushB/toy-obj-viewer/pkg/wavefront"
)

func TestFrameStats(t *testing.T) {
	var s frameStats

	for range 3 {
		s.update(0.125)
	}
	if s.frameMs != 125 {
		t.Errorf("frameMs = %v, want 125", s.frameMs)
	}
	if s.fps != 0 {
		t.Errorf("fps = %v before the first window closed", s.fps)
	}

	s.update(0.125)
	if s.fps != 8 {
		t.Errorf("fps = %v, want 8", s.fps)
	}
	if s.frames != 0 || s.elapsed != 0 {
		t.Errorf("window not reset: frames %d, elapsed %v", s.frames, s.elapsed)
	}
}

func TestFPSColor(t *testing.T) {
	tests := []struct {
		fps  float64
		want overlay.Color
	}{
		{0, overlay.ColorBad},
		{29.9, overlay.ColorBad},
		{30, overlay.ColorWarn},
		{59, overlay.ColorWarn},
		{60, overlay.ColorGood},
		{144, overlay.ColorGood},
	}
	for _, tt := range tests {
		if got := fpsColor(tt.fps); got != tt.want {
			t.Errorf("fpsColor(%v) = %+v, want %+v", tt.fps, got, tt.want)
		}
	}
}

func quadModel(t *testing.T) *wavefront.Model {
	t.Helper()
	m, err := wavefront.Parse(strings.NewReader(
		"v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nvn 0 0 1\nf 1//1 2//1 3//1 4//1\nf 1 2 3\n"), "")
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func texts(lines []overlay.Line) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

func TestHUDLines(t *testing.T) {
	m := quadModel(t)

	lines := hudLines(hudState{
		model:   m,
		path:    "/models/quad.obj",
		fps:     60,
		frameMs: 16.7,
		rotate:  true,
	})
	got := texts(lines)
	for _, want := range []string{
		"quad.obj\n",
		"meshes 1  triangles 2",
		"materials 1  warnings 1",
		"area 1.000",
		"fps 60.0 (16.70 ms)",
		"rotate on  wireframe off",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("HUD missing %q:\n%s", want, got)
		}
	}
	if lines[2].Color != overlay.ColorWarn {
		t.Errorf("warning line color = %+v, want warn", lines[2].Color)
	}
}

func TestHUDLinesWithoutModel(t *testing.T) {
	lines := hudLines(hudState{loadErr: errors.New("boom"), wireframe: true})
	got := texts(lines)

	for _, want := range []string{"no model", "load failed: boom", "wireframe on"} {
		if !strings.Contains(got, want) {
			t.Errorf("HUD missing %q:\n%s", want, got)
		}
	}
	for _, l := range lines {
		if strings.HasPrefix(l.Text, "load failed") && l.Color != overlay.ColorBad {
			t.Errorf("error line color = %+v, want bad", l.Color)
		}
	}
}

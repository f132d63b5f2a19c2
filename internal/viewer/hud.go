package viewer

import (
	"fmt"
	"path/filepath"

	"github.com/UnkushB/toy-obj-viewer/internal/engine/overlay"
	"github.com/UnkushB/toy-obj-viewer/pkg/wavefront"
)

// frameStats averages the frame rate over half-second windows.
type frameStats struct {
	fps     float64
	frameMs float64
	frames  int
	elapsed float64
}

func (s *frameStats) update(dt float64) {
	s.frameMs = dt * 1000
	s.frames++
	s.elapsed += dt
	if s.elapsed >= 0.5 {
		s.fps = float64(s.frames) / s.elapsed
		s.frames = 0
		s.elapsed = 0
	}
}

// hudState is what the statistics panel shows.
type hudState struct {
	model     *wavefront.Model
	path      string
	loadErr   error
	fps       float64
	frameMs   float64
	rotate    bool
	wireframe bool
}

func fpsColor(fps float64) overlay.Color {
	switch {
	case fps < 30:
		return overlay.ColorBad
	case fps < 60:
		return overlay.ColorWarn
	}
	return overlay.ColorGood
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func hudLines(s hudState) []overlay.Line {
	var lines []overlay.Line
	add := func(c overlay.Color, format string, args ...any) {
		lines = append(lines, overlay.Line{Text: fmt.Sprintf(format, args...), Color: c})
	}

	if m := s.model; m != nil {
		add(overlay.ColorText, "%s", filepath.Base(s.path))
		add(overlay.ColorText, "meshes %d  triangles %d", len(m.Meshes), m.TriangleCount())
		warnColor := overlay.ColorDim
		if len(m.Warnings) > 0 {
			warnColor = overlay.ColorWarn
		}
		add(warnColor, "materials %d  warnings %d", m.Materials.Len(), len(m.Warnings))
		add(overlay.ColorDim, "radius %.3f  area %.3f", m.Radius, m.Area)
	} else {
		add(overlay.ColorDim, "no model: press O or drop an .obj file")
	}

	if s.loadErr != nil {
		add(overlay.ColorBad, "load failed: %v", s.loadErr)
	}
	add(fpsColor(s.fps), "fps %.1f (%.2f ms)", s.fps, s.frameMs)
	add(overlay.ColorDim, "rotate %s  wireframe %s", onOff(s.rotate), onOff(s.wireframe))
	return lines
}

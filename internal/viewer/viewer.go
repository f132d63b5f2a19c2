// Package viewer runs the interactive model viewer: window, input, camera,
// renderer and the staged model.
package viewer

import (
	"errors"
	"fmt"
	gomath "math"
	"path/filepath"
	"time"

	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/UnkushB/toy-obj-viewer/internal/config"
	"github.com/UnkushB/toy-obj-viewer/internal/engine/camera"
	"github.com/UnkushB/toy-obj-viewer/internal/engine/input"
	"github.com/UnkushB/toy-obj-viewer/internal/engine/overlay"
	"github.com/UnkushB/toy-obj-viewer/internal/engine/renderer"
	"github.com/UnkushB/toy-obj-viewer/internal/engine/screenshot"
	"github.com/UnkushB/toy-obj-viewer/internal/engine/window"
	"github.com/UnkushB/toy-obj-viewer/internal/stage"
	"github.com/UnkushB/toy-obj-viewer/internal/texture"
	"github.com/UnkushB/toy-obj-viewer/pkg/wavefront"
)

// Viewer is the main viewer instance.
type Viewer struct {
	config  *config.Config
	log     *zap.Logger
	running bool
	rotate  bool
	showHUD bool
	capture bool // save the next frame before the HUD is drawn

	window   *window.Window
	renderer *renderer.Renderer
	overlay  *overlay.Overlay
	shots    *screenshot.Writer
	input    *input.Input
	camera   *camera.OrbitCamera
	stage    *stage.Stage
	pending  stage.Queue
	frames   frameStats
	loadErr  error         // last failed open, cleared by the next success
	dialogs  chan struct{} // holds a token while a file dialog is open
}

// New creates the window and renderer. If modelPath is set it is loaded
// before New returns.
func New(cfg *config.Config, log *zap.Logger, modelPath string) (*Viewer, error) {
	policy, err := cfg.Loader.UnknownMaterialPolicy()
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		config:  cfg,
		log:     log,
		rotate:  cfg.Viewer.RotationSpeed != 0,
		showHUD: cfg.Viewer.HUD,
		input:   input.New(),
		camera:  camera.NewOrbitCamera(cfg.Viewer.FieldOfView),
		dialogs: make(chan struct{}, 1),
		shots:   screenshot.New(cfg.Viewer.ScreenshotDir, "objview"),
	}

	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just created.
	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:          width,
		Height:         height,
		Background:     cfg.Viewer.Background,
		Wireframe:      cfg.Viewer.Wireframe,
		LightAzimuth:   cfg.Viewer.LightAzimuth,
		LightElevation: cfg.Viewer.LightElevation,
	}, log.Named("renderer"))
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.overlay, err = overlay.New(width, height, cfg.Viewer.HUDScale)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create overlay: %w", err)
	}

	var newDecoder func() wavefront.ImageDecoder
	if cfg.Loader.Textures {
		newDecoder = func() wavefront.ImageDecoder { return texture.NewDecoder(log.Named("texture")) }
	}
	loader := stage.NewLoader(newDecoder,
		wavefront.WithLogger(log.Named("wavefront")),
		wavefront.WithUnknownMaterial(policy))
	v.stage = stage.New(loader, v.renderer, log.Named("stage"))

	if modelPath != "" {
		if err := v.open(modelPath); err != nil {
			v.Close()
			return nil, err
		}
	}
	return v, nil
}

// Run starts the main loop. It returns when the window is closed or Escape
// is pressed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	fpsTimer := time.Now()

	v.log.Info("starting viewer loop")
	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		// Paths from the dialog goroutine and drops are loaded here, on the
		// thread that owns the GL context.
		if path, ok := v.pending.Pop(); ok {
			if err := v.open(path); err != nil {
				v.log.Error("failed to open model", zap.Error(err))
			}
		}

		v.update(dt)
		v.frames.update(float64(dt))

		v.renderer.Begin()
		v.renderer.Draw(v.stage.Resources(), v.camera)
		if v.capture {
			v.capture = false
			v.saveScreenshot()
		}
		v.drawHUD()
		v.window.SwapBuffers()

		if time.Since(fpsTimer) >= 5*time.Second {
			v.log.Debug("fps", zap.Float64("fps", v.frames.fps), zap.Float64("frame_ms", v.frames.frameMs))
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			w, h := v.window.DrawableSize()
			v.renderer.Resize(w, h)
			v.overlay.Resize(w, h)
		case input.EventFileDrop:
			v.pending.Push(event.Path)
		case input.EventKeyDown:
			v.handleKey(event.Key)
		}
	}

	if dx, dy := v.input.Drag(sdl.BUTTON_LEFT); dx != 0 || dy != 0 {
		v.rotate = false
		v.camera.HandleDrag(float32(dx), float32(dy))
	}
	if steps := v.input.Wheel(); steps != 0 {
		v.camera.HandleZoom(float32(steps))
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false
	case sdl.SCANCODE_O:
		v.openFileDialog()
	case sdl.SCANCODE_R:
		v.camera.Reset()
	case sdl.SCANCODE_SPACE:
		v.rotate = !v.rotate
	case sdl.SCANCODE_W:
		v.renderer.SetWireframe(!v.renderer.Wireframe())
	case sdl.SCANCODE_H:
		v.showHUD = !v.showHUD
	case sdl.SCANCODE_F:
		if err := v.window.ToggleFullscreen(); err != nil {
			v.log.Warn("fullscreen toggle failed", zap.Error(err))
		}
	case sdl.SCANCODE_F12:
		v.capture = true
	case sdl.SCANCODE_F5:
		if p := v.stage.Path(); p != "" {
			v.pending.Push(p)
		}
	}
}

func (v *Viewer) drawHUD() {
	if !v.showHUD {
		return
	}
	v.overlay.Begin()
	v.overlay.DrawLines(10, 10, hudLines(hudState{
		model:     v.stage.Model(),
		path:      v.stage.Path(),
		loadErr:   v.loadErr,
		fps:       v.frames.fps,
		frameMs:   v.frames.frameMs,
		rotate:    v.rotate,
		wireframe: v.renderer.Wireframe(),
	}))
	v.overlay.End()
}

func (v *Viewer) saveScreenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.Save(pixels, w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

func (v *Viewer) update(dt float32) {
	if v.rotate {
		v.camera.Spin(v.config.Viewer.RotationSpeed * dt * gomath.Pi / 180)
	}
}

// open replaces the staged model. On failure the current model stays.
func (v *Viewer) open(path string) error {
	if err := v.stage.Replace(path); err != nil {
		v.loadErr = err
		return err
	}
	v.loadErr = nil

	m := v.stage.Model()
	for _, w := range m.Warnings {
		v.log.Debug("model warning", zap.Error(w))
	}
	v.camera.Reset()
	v.config.Viewer.LastDir = filepath.Dir(path)
	v.window.SetTitle(fmt.Sprintf("%s - %s (%d triangles)",
		v.config.Window.Title, filepath.Base(path), m.TriangleCount()))
	return nil
}

// openFileDialog shows a native file dialog. The dialog blocks, so it runs
// on its own goroutine and hands the result to the main loop.
func (v *Viewer) openFileDialog() {
	select {
	case v.dialogs <- struct{}{}:
	default:
		return // already open
	}

	startDir := v.config.Viewer.LastDir
	go func() {
		defer func() { <-v.dialogs }()

		b := dialog.File().
			Filter("Wavefront OBJ", "obj").
			Filter("All Files", "*").
			Title("Open model")
		if startDir != "" {
			b = b.SetStartDir(startDir)
		}
		filename, err := b.Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				v.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		v.pending.Push(filename)
	}()
}

// Close releases the model, renderer and window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")
	if v.stage != nil {
		v.stage.Close()
	}
	if v.overlay != nil {
		v.overlay.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

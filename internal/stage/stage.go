// Package stage owns the currently displayed model and its GPU resources.
// Replacing the model is the only point where ownership moves: the new
// model is loaded and uploaded first, and the old resources are released
// only once that succeeded.
package stage

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/UnkushB/toy-obj-viewer/pkg/wavefront"
)

// ErrClosed is returned by Replace after Close.
var ErrClosed = errors.New("stage closed")

// Resources are the GPU-side objects created for one model.
type Resources interface {
	Release()
}

// Uploader turns a loaded model into GPU resources.
type Uploader interface {
	Upload(m *wavefront.Model) (Resources, error)
}

// Loader reads a model from disk.
type Loader interface {
	Load(path string) (*wavefront.Model, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path string) (*wavefront.Model, error)

// Load calls f.
func (f LoaderFunc) Load(path string) (*wavefront.Model, error) { return f(path) }

// NewLoader returns a Loader that calls wavefront.Load with opts. When
// newDecoder is set, every load gets its own texture decoder from it.
func NewLoader(newDecoder func() wavefront.ImageDecoder, opts ...wavefront.Option) Loader {
	return LoaderFunc(func(path string) (*wavefront.Model, error) {
		if newDecoder == nil {
			return wavefront.Load(path, opts...)
		}
		all := append(slices.Clip(opts), wavefront.WithDecoder(newDecoder()))
		return wavefront.Load(path, all...)
	})
}

// Stage holds at most one model. It is not safe for concurrent use; the
// viewer drives it from the thread that owns the GL context.
type Stage struct {
	loader   Loader
	uploader Uploader
	log      *zap.Logger

	model     *wavefront.Model
	resources Resources
	path      string
	closed    bool
}

// New creates an empty stage.
func New(loader Loader, uploader Uploader, log *zap.Logger) *Stage {
	if log == nil {
		log = zap.NewNop()
	}
	return &Stage{loader: loader, uploader: uploader, log: log}
}

// Replace loads and uploads the model at path and makes it current. On
// failure the previous model stays current and untouched.
func (s *Stage) Replace(path string) error {
	if s.closed {
		return ErrClosed
	}

	start := time.Now()
	m, err := s.loader.Load(path)
	if err != nil {
		s.log.Error("model load failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("load %s: %w", path, err)
	}

	res, err := s.uploader.Upload(m)
	if err != nil {
		s.log.Error("model upload failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("upload %s: %w", path, err)
	}

	old := s.resources
	s.model, s.resources, s.path = m, res, path
	if old != nil {
		old.Release()
	}

	s.log.Info("model staged",
		zap.String("path", path),
		zap.Int("meshes", len(m.Meshes)),
		zap.Int("triangles", m.TriangleCount()),
		zap.Int("warnings", len(m.Warnings)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// Model returns the current model, or nil.
func (s *Stage) Model() *wavefront.Model { return s.model }

// Resources returns the GPU resources of the current model, or nil.
func (s *Stage) Resources() Resources { return s.resources }

// Path returns the file the current model was loaded from.
func (s *Stage) Path() string { return s.path }

// Close releases the current resources. Further Replace calls fail.
func (s *Stage) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.resources != nil {
		s.resources.Release()
	}
	s.model, s.resources, s.path = nil, nil, ""
}

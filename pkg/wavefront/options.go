package wavefront

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ImageDecoder decodes the image at path. When flipVertically is set the
// first row of Pixels is the bottom row of the image.
type ImageDecoder interface {
	Decode(path string, flipVertically bool) (*Image, error)
}

// ImageDecoderFunc adapts a function to ImageDecoder.
type ImageDecoderFunc func(path string, flipVertically bool) (*Image, error)

// Decode calls f.
func (f ImageDecoderFunc) Decode(path string, flipVertically bool) (*Image, error) {
	return f(path, flipVertically)
}

// UnknownMaterialPolicy selects what "usemtl" does with a name that no
// loaded library defines.
type UnknownMaterialPolicy int

const (
	// UnknownMaterialCreate adds a default-valued material under the name.
	// A library loaded later that defines the name replaces it in place.
	UnknownMaterialCreate UnknownMaterialPolicy = iota
	// UnknownMaterialFallback binds the mesh to DefaultMaterialName.
	UnknownMaterialFallback
)

// String returns the configuration name of the policy.
func (p UnknownMaterialPolicy) String() string {
	switch p {
	case UnknownMaterialFallback:
		return "fallback"
	default:
		return "create"
	}
}

// ParseUnknownMaterialPolicy parses "create" or "fallback".
func ParseUnknownMaterialPolicy(s string) (UnknownMaterialPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "create":
		return UnknownMaterialCreate, nil
	case "fallback", "default":
		return UnknownMaterialFallback, nil
	default:
		return 0, fmt.Errorf("unknown material policy %q (want create or fallback)", s)
	}
}

type options struct {
	decoder   ImageDecoder
	log       *zap.Logger
	unknown   UnknownMaterialPolicy
	onWarning func(error)
}

// Option configures Load, Parse and the material loaders.
type Option func(*options)

// WithDecoder sets the texture decoder. Without one, texture maps are
// skipped with a warning.
func WithDecoder(d ImageDecoder) Option {
	return func(o *options) { o.decoder = d }
}

// WithLogger sets the logger for warnings and load statistics.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithUnknownMaterial sets the policy for undefined "usemtl" names.
func WithUnknownMaterial(p UnknownMaterialPolicy) Option {
	return func(o *options) { o.unknown = p }
}

// WithWarningHandler registers fn to receive every recoverable error as
// it happens.
func WithWarningHandler(fn func(error)) Option {
	return func(o *options) { o.onWarning = fn }
}

func newOptions(opts []Option) *options {
	o := &options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) warn(err error) {
	o.log.Warn("load warning", zap.Error(err))
	if o.onWarning != nil {
		o.onWarning(err)
	}
}

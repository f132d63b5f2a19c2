// Package renderer draws loaded models with OpenGL 4.1.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/UnkushB/toy-obj-viewer/internal/engine/camera"
	"github.com/UnkushB/toy-obj-viewer/internal/engine/renderer/shaders"
	"github.com/UnkushB/toy-obj-viewer/internal/engine/shader"
	"github.com/UnkushB/toy-obj-viewer/internal/stage"
	"github.com/UnkushB/toy-obj-viewer/pkg/math"
	"github.com/UnkushB/toy-obj-viewer/pkg/wavefront"
)

var _ stage.Uploader = (*Renderer)(nil)

// Config holds renderer configuration.
type Config struct {
	Width          int
	Height         int
	Background     [3]float32
	Wireframe      bool
	LightAzimuth   float32 // degrees, see LightDirection
	LightElevation float32
}

// Renderer owns the model shader and draws GPUModels.
type Renderer struct {
	config  Config
	log     *zap.Logger
	program *shader.Program

	lightDir math.Vec3
}

// New creates a renderer. The GL context must be current.
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		config:   cfg,
		log:      log,
		lightDir: LightDirection(cfg.LightAzimuth, cfg.LightElevation),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	gl.Enable(gl.FRAMEBUFFER_SRGB)
	bg := cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1)

	var err error
	r.program, err = shader.New(shaders.ModelVertexShader, shaders.ModelFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("model shader: %w", err)
	}
	r.program.Use()
	r.program.SetInt("uDiffuseMap", 0)
	r.program.SetInt("uSpecularMap", 1)

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close frees the shader program.
func (r *Renderer) Close() {
	r.log.Debug("closing renderer")
	r.program.Delete()
}

// Resize sets the viewport to the drawable size in pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width, r.config.Height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// SetWireframe switches polygon fill mode.
func (r *Renderer) SetWireframe(on bool) {
	r.config.Wireframe = on
}

// Wireframe reports the current polygon mode.
func (r *Renderer) Wireframe() bool { return r.config.Wireframe }

// ReadPixels returns the back buffer as tightly packed RGBA rows, bottom
// row first.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

// Upload copies m to the GPU. It implements stage.Uploader.
func (r *Renderer) Upload(m *wavefront.Model) (stage.Resources, error) {
	gm, err := upload(m)
	if err != nil {
		return nil, err
	}
	r.log.Debug("model uploaded",
		zap.String("path", m.SourcePath),
		zap.Int("meshes", len(gm.meshes)),
		zap.Int("textures", len(gm.textures)))
	return gm, nil
}

// Begin clears the frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders res, which must come from Upload, as seen from cam. Opaque
// meshes are drawn first, then transparent ones back to front.
func (r *Renderer) Draw(res stage.Resources, cam *camera.OrbitCamera) {
	gm, ok := res.(*GPUModel)
	if !ok || gm == nil {
		return
	}

	aspect := float32(1)
	if r.config.Height > 0 {
		aspect = float32(r.config.Width) / float32(r.config.Height)
	}
	eye := cam.Position()

	p := r.program
	p.Use()
	p.SetMat4("uModel", gm.transform)
	p.SetMat4("uView", cam.ViewMatrix())
	p.SetMat4("uProjection", cam.ProjectionMatrix(aspect))
	p.SetVec3("uViewPos", eye)
	p.SetVec3("uLightDir", r.lightDir)

	if r.config.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	blending := false
	for _, i := range drawOrder(gm.meshes, gm.transform, eye) {
		mesh := &gm.meshes[i]
		if mesh.transparent && !blending {
			blending = true
			gl.Enable(gl.BLEND)
			gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
			gl.DepthMask(false)
		}
		r.drawMesh(mesh)
	}
	if blending {
		gl.DepthMask(true)
		gl.Disable(gl.BLEND)
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) drawMesh(mesh *gpuMesh) {
	p := r.program
	p.SetVec3("uDiffuse", mesh.diffuse)
	p.SetVec3("uSpecular", mesh.specular)
	p.SetFloat("uShininess", mesh.shininess)
	p.SetFloat("uOpacity", mesh.opacity)
	p.SetBool("uUseAlpha", mesh.useAlpha)

	p.SetBool("uHasDiffuseMap", mesh.diffuseMap != 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, mesh.diffuseMap)

	p.SetBool("uHasSpecularMap", mesh.specularMap != 0)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, mesh.specularMap)

	gl.BindVertexArray(mesh.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, mesh.count)
}

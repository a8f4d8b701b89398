// Package scene renders the avatar preview into an offscreen framebuffer.
package scene

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/lipsync-avatar/internal/avatar"
	"github.com/Faultbox/lipsync-avatar/internal/engine/camera"
	"github.com/Faultbox/lipsync-avatar/internal/engine/framebuffer"
	"github.com/Faultbox/lipsync-avatar/internal/engine/lighting"
	"github.com/Faultbox/lipsync-avatar/internal/engine/rig"
	"github.com/Faultbox/lipsync-avatar/internal/engine/shader"
	"github.com/Faultbox/lipsync-avatar/internal/engine/texture"
	"github.com/Faultbox/lipsync-avatar/internal/logger"
)

// Config contains scene configuration options.
type Config struct {
	Width      int32
	Height     int32
	Background [3]float32
	Lights     lighting.Rig
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Width:      800,
		Height:     700,
		Background: [3]float32{0.12, 0.16, 0.22},
		Lights:     lighting.Studio(),
	}
}

// Scene owns the meshes, shader, image texture and render target.
type Scene struct {
	config      Config
	framebuffer *framebuffer.Framebuffer

	program         uint32
	locViewProj     int32
	locModel        int32
	locNormalMatrix int32
	locColor        int32
	locTextured     int32
	locDoubleSided  int32
	locTexture      int32
	locCameraPos    int32
	locAmbient      int32
	locLightCount   int32
	locLightPos     int32
	locLightColor   int32

	meshes [rig.ShapeCount]*Mesh
	image  *texture.Texture

	log *zap.Logger
}

// New creates the scene. Requires a current GL context.
func New(cfg Config) (*Scene, error) {
	s := &Scene{
		config: cfg,
		log:    logger.Named("scene"),
	}

	var err error
	s.framebuffer, err = framebuffer.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}

	s.program, err = shader.CompileProgram(litVertexShader, litFragmentShader)
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("lit shader: %w", err)
	}
	locs, missing := shader.Uniforms(s.program,
		"uViewProj", "uModel", "uNormalMatrix", "uColor", "uTextured", "uDoubleSided",
		"uTexture", "uCameraPos", "uAmbient", "uLightCount", "uLightPos", "uLightColor")
	if len(missing) > 0 {
		s.log.Debug("inactive uniforms", zap.Strings("names", missing))
	}
	s.locViewProj = locs["uViewProj"]
	s.locModel = locs["uModel"]
	s.locNormalMatrix = locs["uNormalMatrix"]
	s.locColor = locs["uColor"]
	s.locTextured = locs["uTextured"]
	s.locDoubleSided = locs["uDoubleSided"]
	s.locTexture = locs["uTexture"]
	s.locCameraPos = locs["uCameraPos"]
	s.locAmbient = locs["uAmbient"]
	s.locLightCount = locs["uLightCount"]
	s.locLightPos = locs["uLightPos"]
	s.locLightColor = locs["uLightColor"]

	for sh := rig.Shape(0); sh < rig.ShapeCount; sh++ {
		s.meshes[sh] = NewMesh(sh.Geometry())
	}

	s.log.Debug("scene created", zap.Int32("width", cfg.Width), zap.Int32("height", cfg.Height))
	return s, nil
}

// SetImage replaces the custom image texture. The previous texture is
// deleted.
func (s *Scene) SetImage(img *image.RGBA) {
	s.ClearImage()
	s.image = texture.FromRGBA(img)
	s.log.Debug("image texture uploaded",
		zap.Uint32("id", s.image.ID),
		zap.Int("width", s.image.Width),
		zap.Int("height", s.image.Height))
}

// ClearImage deletes the custom image texture, if any.
func (s *Scene) ClearImage() {
	if s.image != nil {
		s.image.Delete()
		s.image = nil
	}
}

// HasImage reports whether a custom image texture is loaded.
func (s *Scene) HasImage() bool {
	return s.image != nil
}

// Render draws one frame and returns the color texture.
func (s *Scene) Render(cam *camera.OrbitCamera, pose avatar.Pose, emotion avatar.Emotion) uint32 {
	restore := s.framebuffer.BindWithViewport()
	defer restore()

	bg := s.config.Background
	s.framebuffer.Clear(bg[0], bg[1], bg[2], 1)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	aspect := float32(s.config.Width) / float32(s.config.Height)
	viewProj := cam.ProjectionMatrix(aspect).Mul(cam.ViewMatrix())
	eye := cam.Position()

	gl.UseProgram(s.program)
	gl.UniformMatrix4fv(s.locViewProj, 1, false, viewProj.Ptr())
	gl.Uniform3f(s.locCameraPos, eye.X, eye.Y, eye.Z)
	gl.Uniform1i(s.locTexture, 0)
	s.uploadLights()

	aspectImg := float32(1)
	if s.image != nil {
		aspectImg = s.image.Aspect()
	}

	for _, p := range rig.Layout(pose, emotion, aspectImg) {
		s.drawPart(p)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
	gl.Disable(gl.DEPTH_TEST)

	return s.framebuffer.ColorTexture()
}

func (s *Scene) uploadLights() {
	lights := s.config.Lights
	positions := lights.Positions()
	radiance := lights.Radiance()
	gl.Uniform1f(s.locAmbient, lights.Ambient)
	gl.Uniform1i(s.locLightCount, int32(lights.Count()))
	gl.Uniform3fv(s.locLightPos, lighting.MaxPointLights, &positions[0])
	gl.Uniform3fv(s.locLightColor, lighting.MaxPointLights, &radiance[0])
}

func (s *Scene) drawPart(p rig.Part) {
	model := p.Model
	normal := model.NormalMatrix()
	gl.UniformMatrix4fv(s.locModel, 1, false, model.Ptr())
	gl.UniformMatrix3fv(s.locNormalMatrix, 1, false, &normal[0])

	textured := p.Textured && s.image != nil
	color := p.Color
	if p.Textured && !textured {
		// Placeholder while no image is loaded.
		color = [3]float32{0.35, 0.35, 0.4}
	}
	gl.Uniform3f(s.locColor, color[0], color[1], color[2])
	gl.Uniform1i(s.locTextured, boolToInt(textured))
	gl.Uniform1i(s.locDoubleSided, boolToInt(p.Shape == rig.ShapePlane))
	if textured {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, s.image.ID)
	}

	s.meshes[p.Shape].Draw()
}

// ReadPixels returns the last rendered frame as bottom-up RGBA rows.
func (s *Scene) ReadPixels() ([]byte, int, int) {
	w, h := s.framebuffer.Size()
	return s.framebuffer.ReadPixels(), int(w), int(h)
}

// Resize updates the render target size.
func (s *Scene) Resize(width, height int32) {
	if width < 1 || height < 1 || (width == s.config.Width && height == s.config.Height) {
		return
	}
	s.config.Width = width
	s.config.Height = height
	s.framebuffer.Resize(width, height)
}

// Size returns the render target size.
func (s *Scene) Size() (int32, int32) {
	return s.config.Width, s.config.Height
}

// Destroy releases all GL resources.
func (s *Scene) Destroy() {
	s.ClearImage()
	for i, m := range s.meshes {
		if m != nil {
			m.Destroy()
			s.meshes[i] = nil
		}
	}
	if s.program != 0 {
		gl.DeleteProgram(s.program)
		s.program = 0
	}
	if s.framebuffer != nil {
		s.framebuffer.Destroy()
		s.framebuffer = nil
	}
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

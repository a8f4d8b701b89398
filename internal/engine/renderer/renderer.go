// Package renderer owns the default framebuffer: viewport, clear and the
// blit of offscreen textures onto the window.
package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/lipsync-avatar/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	// Drawable size in pixels.
	Width  int
	Height int

	Background [3]float32
}

// Renderer handles per-frame state of the window framebuffer.
type Renderer struct {
	config Config
	log    *zap.Logger
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config) *Renderer {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}
	r.log.Info("renderer initialized",
		zap.String("device", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
	)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r
}

// Resize handles a drawable size change.
func (r *Renderer) Resize(width, height int) {
	if width == r.config.Width && height == r.config.Height {
		return
	}
	r.config.Width = width
	r.config.Height = height
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the drawable size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Begin binds the window framebuffer and clears it.
func (r *Renderer) Begin() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(r.config.Width), int32(r.config.Height))
	bg := r.config.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

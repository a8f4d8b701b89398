// Package glrenderer draws ui2d frames with OpenGL.
package glrenderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/lipsync-avatar/internal/engine/shader"
	"github.com/Faultbox/lipsync-avatar/internal/engine/ui2d"
)

// Renderer batches solid and text quads and draws them in End.
type Renderer struct {
	screenWidth  int
	screenHeight int

	solidShader uint32
	textShader  uint32
	imageShader uint32

	solidVAO, solidVBO uint32
	textVAO, textVBO   uint32
	imageVAO, imageVBO uint32

	solidVertices []float32
	textVertices  []float32

	font *font
}

const solidVertexSrc = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec4 aColor;
uniform mat4 uProjection;
out vec4 vColor;
void main() {
	gl_Position = uProjection * vec4(aPos, 1.0);
	vColor = aColor;
}
`

const solidFragmentSrc = `
#version 410 core
in vec4 vColor;
out vec4 FragColor;
void main() {
	FragColor = vColor;
}
`

const texturedVertexSrc = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in vec4 aColor;
uniform mat4 uProjection;
out vec2 vTexCoord;
out vec4 vColor;
void main() {
	gl_Position = uProjection * vec4(aPos, 1.0);
	vTexCoord = aTexCoord;
	vColor = aColor;
}
`

const textFragmentSrc = `
#version 410 core
uniform sampler2D uTexture;
in vec2 vTexCoord;
in vec4 vColor;
out vec4 FragColor;
void main() {
	float alpha = texture(uTexture, vTexCoord).a;
	FragColor = vec4(vColor.rgb, vColor.a * alpha);
}
`

const imageFragmentSrc = `
#version 410 core
uniform sampler2D uTexture;
in vec2 vTexCoord;
in vec4 vColor;
out vec4 FragColor;
void main() {
	FragColor = texture(uTexture, vTexCoord) * vColor;
}
`

// New creates a new 2D UI renderer. Requires a current GL context.
func New(width, height int) (*Renderer, error) {
	r := &Renderer{
		screenWidth:   width,
		screenHeight:  height,
		solidVertices: make([]float32, 0, 4096),
		textVertices:  make([]float32, 0, 4096),
	}

	var err error
	if r.solidShader, err = shader.CompileProgram(solidVertexSrc, solidFragmentSrc); err != nil {
		return nil, fmt.Errorf("solid shader: %w", err)
	}
	if r.textShader, err = shader.CompileProgram(texturedVertexSrc, textFragmentSrc); err != nil {
		r.Close()
		return nil, fmt.Errorf("text shader: %w", err)
	}
	if r.imageShader, err = shader.CompileProgram(texturedVertexSrc, imageFragmentSrc); err != nil {
		r.Close()
		return nil, fmt.Errorf("image shader: %w", err)
	}

	// pos(3) + color(4)
	r.solidVAO, r.solidVBO = newVertexArray(3, 4)
	// pos(3) + uv(2) + color(4)
	r.textVAO, r.textVBO = newVertexArray(3, 2, 4)
	r.imageVAO, r.imageVBO = newVertexArray(3, 2, 4)

	r.font = newFont(ui2d.NewAtlas())
	return r, nil
}

// newVertexArray creates a VAO/VBO pair with tightly packed float
// attributes of the given component counts at locations 0..n.
func newVertexArray(components ...int32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	var stride int32
	for _, c := range components {
		stride += c * 4
	}
	offset := uintptr(0)
	for loc, c := range components {
		gl.VertexAttribPointerWithOffset(uint32(loc), c, gl.FLOAT, false, stride, offset)
		gl.EnableVertexAttribArray(uint32(loc))
		offset += uintptr(c * 4)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vao, vbo
}

// Resize updates the screen dimensions.
func (r *Renderer) Resize(width, height int) {
	r.screenWidth = width
	r.screenHeight = height
}

// GetScreenSize returns the current screen dimensions.
func (r *Renderer) GetScreenSize() (int, int) {
	return r.screenWidth, r.screenHeight
}

// Begin starts a new UI frame.
func (r *Renderer) Begin() {
	r.solidVertices = r.solidVertices[:0]
	r.textVertices = r.textVertices[:0]
}

// End renders all queued quads, text on top.
func (r *Renderer) End() {
	var prevBlend, prevDepth, prevCull int32
	gl.GetIntegerv(gl.BLEND, &prevBlend)
	gl.GetIntegerv(gl.DEPTH_TEST, &prevDepth)
	gl.GetIntegerv(gl.CULL_FACE, &prevCull)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	proj := orthoMatrix(0, float32(r.screenWidth), float32(r.screenHeight), 0, -1, 1)

	if len(r.solidVertices) > 0 {
		gl.UseProgram(r.solidShader)
		gl.UniformMatrix4fv(shader.GetUniform(r.solidShader, "uProjection"), 1, false, &proj[0])
		drawVertices(r.solidVAO, r.solidVBO, r.solidVertices, 7)
	}

	if len(r.textVertices) > 0 && r.font != nil {
		gl.UseProgram(r.textShader)
		gl.UniformMatrix4fv(shader.GetUniform(r.textShader, "uProjection"), 1, false, &proj[0])
		gl.Uniform1i(shader.GetUniform(r.textShader, "uTexture"), 0)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.font.texture)
		drawVertices(r.textVAO, r.textVBO, r.textVertices, 9)
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)

	if prevBlend == gl.FALSE {
		gl.Disable(gl.BLEND)
	}
	if prevDepth == gl.TRUE {
		gl.Enable(gl.DEPTH_TEST)
	}
	if prevCull == gl.TRUE {
		gl.Enable(gl.CULL_FACE)
	}
}

func drawVertices(vao, vbo uint32, vertices []float32, floatsPerVertex int) {
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/floatsPerVertex))
}

// DrawTexture draws a texture immediately, outside the batch. Call it
// before Begin so the UI lands on top. flipV is for framebuffer textures,
// whose first row is the bottom of the image.
func (r *Renderer) DrawTexture(x, y, w, h float32, textureID uint32, flipV bool) {
	if textureID == 0 {
		return
	}

	var prevBlend, prevDepth int32
	gl.GetIntegerv(gl.BLEND, &prevBlend)
	gl.GetIntegerv(gl.DEPTH_TEST, &prevDepth)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.DEPTH_TEST)

	gl.UseProgram(r.imageShader)
	proj := orthoMatrix(0, float32(r.screenWidth), float32(r.screenHeight), 0, -1, 1)
	gl.UniformMatrix4fv(shader.GetUniform(r.imageShader, "uProjection"), 1, false, &proj[0])
	gl.Uniform1i(shader.GetUniform(r.imageShader, "uTexture"), 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, textureID)

	vTop, vBottom := float32(0), float32(1)
	if flipV {
		vTop, vBottom = 1, 0
	}
	vertices := texturedQuad(nil, x, y, w, h, 0, vTop, 1, vBottom, ui2d.ColorWhite)
	drawVertices(r.imageVAO, r.imageVBO, vertices, 9)

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)

	if prevBlend == gl.TRUE {
		gl.Enable(gl.BLEND)
	}
	if prevDepth == gl.TRUE {
		gl.Enable(gl.DEPTH_TEST)
	}
}

// Close releases renderer resources.
func (r *Renderer) Close() {
	if r.font != nil {
		r.font.Close()
	}
	for _, vao := range []*uint32{&r.solidVAO, &r.textVAO, &r.imageVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
		}
	}
	for _, vbo := range []*uint32{&r.solidVBO, &r.textVBO, &r.imageVBO} {
		if *vbo != 0 {
			gl.DeleteBuffers(1, vbo)
		}
	}
	for _, p := range []uint32{r.solidShader, r.textShader, r.imageShader} {
		if p != 0 {
			gl.DeleteProgram(p)
		}
	}
}

// DrawRect draws a filled rectangle.
func (r *Renderer) DrawRect(x, y, width, height float32, color ui2d.Color) {
	r.solidVertices = solidQuad(r.solidVertices, x, y, width, height, color)
}

// DrawRectOutline draws a rectangle outline.
func (r *Renderer) DrawRectOutline(x, y, width, height, thickness float32, color ui2d.Color) {
	r.DrawRect(x, y, width, thickness, color)
	r.DrawRect(x, y+height-thickness, width, thickness, color)
	r.DrawRect(x, y+thickness, thickness, height-thickness*2, color)
	r.DrawRect(x+width-thickness, y+thickness, thickness, height-thickness*2, color)
}

// DrawText draws text at the given position. '\n' starts a new line.
func (r *Renderer) DrawText(x, y float32, text string, scale float32, color ui2d.Color) {
	if r.font == nil {
		return
	}

	gw, gh := r.font.atlas.GlyphSize()
	charW := float32(gw) * scale
	charH := float32(gh) * scale

	curX := x
	for _, char := range text {
		if char == '\n' {
			curX = x
			y += charH
			continue
		}
		if char != ' ' {
			u0, v0, u1, v1 := r.font.atlas.UV(char)
			r.textVertices = texturedQuad(r.textVertices, curX, y, charW, charH, u0, v0, u1, v1, color)
		}
		curX += charW
	}
}

// MeasureText returns the width and height of rendered text.
func (r *Renderer) MeasureText(text string, scale float32) (float32, float32) {
	if r.font == nil {
		return 0, 0
	}
	return r.font.atlas.Measure(text, scale)
}

func solidQuad(dst []float32, x, y, w, h float32, c ui2d.Color) []float32 {
	return append(dst,
		x, y, 0, c.R, c.G, c.B, c.A,
		x+w, y, 0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, c.R, c.G, c.B, c.A,

		x, y, 0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, c.R, c.G, c.B, c.A,
		x, y+h, 0, c.R, c.G, c.B, c.A,
	)
}

func texturedQuad(dst []float32, x, y, w, h, u0, v0, u1, v1 float32, c ui2d.Color) []float32 {
	return append(dst,
		x, y, 0, u0, v0, c.R, c.G, c.B, c.A,
		x+w, y, 0, u1, v0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, u1, v1, c.R, c.G, c.B, c.A,

		x, y, 0, u0, v0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, u1, v1, c.R, c.G, c.B, c.A,
		x, y+h, 0, u0, v1, c.R, c.G, c.B, c.A,
	)
}

// orthoMatrix creates a column-major orthographic projection.
func orthoMatrix(left, right, bottom, top, near, far float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}

// font is a ui2d.Atlas uploaded to a texture.
type font struct {
	atlas   *ui2d.Atlas
	texture uint32
}

func newFont(a *ui2d.Atlas) *font {
	f := &font{atlas: a}
	img := a.Image()
	b := img.Bounds()

	gl.GenTextures(1, &f.texture)
	gl.BindTexture(gl.TEXTURE_2D, f.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return f
}

func (f *font) Close() {
	if f.texture != 0 {
		gl.DeleteTextures(1, &f.texture)
		f.texture = 0
	}
}

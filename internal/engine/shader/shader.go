// Package shader builds the GLSL programs used by the avatar scene and the
// UI painter.
package shader

import (
	"bytes"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// CompileProgram compiles and links a vertex/fragment pair. Compile and
// link errors carry the driver's info log.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vert, err := compile(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compile(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(frag)

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &n)
		log := make([]byte, n+1)
		gl.GetProgramInfoLog(program, n, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", infoLog(log))
	}

	// Detached shaders are freed by the deferred deletes.
	gl.DetachShader(program, vert)
	gl.DetachShader(program, frag)
	return program, nil
}

func compile(source string, kind uint32, stage string) (uint32, error) {
	sh := gl.CreateShader(kind)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(sh, 1, csource, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &n)
		log := make([]byte, n+1)
		gl.GetShaderInfoLog(sh, n, nil, &log[0])
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("%s shader: %s", stage, infoLog(log))
	}
	return sh, nil
}

func infoLog(log []byte) string {
	if i := bytes.IndexByte(log, 0); i >= 0 {
		log = log[:i]
	}
	return string(bytes.TrimSpace(log))
}

// GetUniform returns the location of name, or -1 when the program has no
// active uniform by that name.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// Uniforms looks up every name. Names the linker dropped or never saw are
// returned in missing with location -1; setting them is a no-op in GL.
func Uniforms(program uint32, names ...string) (locs map[string]int32, missing []string) {
	return lookup(func(name string) int32 { return GetUniform(program, name) }, names)
}

func lookup(get func(string) int32, names []string) (locs map[string]int32, missing []string) {
	locs = make(map[string]int32, len(names))
	for _, name := range names {
		loc := get(name)
		locs[name] = loc
		if loc < 0 {
			missing = append(missing, name)
		}
	}
	return locs, missing
}

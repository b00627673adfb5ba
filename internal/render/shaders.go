package render

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ShaderManager owns the shader program and its view uniform.
type ShaderManager struct {
	program uint32
	uView   int32 // content → NDC
}

// Scene geometry arrives in content coordinates; uView maps it to clip space
// using the scroll view's live zoom and offset.
const vertexShaderSource = `
#version 330 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 uView;

out vec4 vColor;

void main() {
    gl_Position = uView * vec4(aPos, 0.0, 1.0);
    vColor = aColor;
}
` + "\x00"

const fragmentShaderSource = `
#version 330 core
in vec4 vColor;
out vec4 FragColor;

void main() {
    FragColor = vColor;
}
` + "\x00"

// NewShaderManager compiles and links the program and makes it current.
func NewShaderManager() (*ShaderManager, error) {
	vs, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fs)

	sm := &ShaderManager{program: gl.CreateProgram()}
	gl.AttachShader(sm.program, vs)
	gl.AttachShader(sm.program, fs)
	gl.LinkProgram(sm.program)

	var status int32
	gl.GetProgramiv(sm.program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(sm.program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(sm.program, logLength, nil, gl.Str(logText))
		return nil, fmt.Errorf("linking shader program: %s", logText)
	}

	sm.uView = gl.GetUniformLocation(sm.program, gl.Str("uView\x00"))
	gl.UseProgram(sm.program)
	return sm, nil
}

func (sm *ShaderManager) SetView(matrix [16]float32) {
	gl.UniformMatrix4fv(sm.uView, 1, false, &matrix[0])
}

func (sm *ShaderManager) Delete() { gl.DeleteProgram(sm.program) }

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compilation failed: %s", logText)
	}
	return shader, nil
}

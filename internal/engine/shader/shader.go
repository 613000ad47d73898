// Package shader compiles and links GLSL programs.
package shader

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var (
	// ErrCompile is returned when a stage fails to compile.
	ErrCompile = errors.New("shader: compile failed")
	// ErrLink is returned when stages fail to link.
	ErrLink = errors.New("shader: link failed")
)

// Stage is one shader stage of a program.
type Stage struct {
	Kind   uint32 // gl.VERTEX_SHADER, gl.FRAGMENT_SHADER
	Name   string
	Source string
}

// Vertex returns a vertex stage.
func Vertex(src string) Stage {
	return Stage{Kind: gl.VERTEX_SHADER, Name: "vertex", Source: src}
}

// Fragment returns a fragment stage.
func Fragment(src string) Stage {
	return Stage{Kind: gl.FRAGMENT_SHADER, Name: "fragment", Source: src}
}

// Program is a linked GL program with a uniform location cache.
type Program struct {
	ID       uint32
	uniforms map[string]int32
}

// Link compiles every stage and links them. Stage objects are deleted once
// the program is linked or on failure.
func Link(stages ...Stage) (*Program, error) {
	ids := make([]uint32, 0, len(stages))
	defer func() {
		for _, id := range ids {
			gl.DeleteShader(id)
		}
	}()
	for _, s := range stages {
		id, err := compile(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	program := gl.CreateProgram()
	for _, id := range ids {
		gl.AttachShader(program, id)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &n)
		buf := make([]byte, n+1)
		gl.GetProgramInfoLog(program, n, nil, &buf[0])
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("%w: %s", ErrLink, infoLog(buf))
	}
	return &Program{ID: program, uniforms: make(map[string]int32)}, nil
}

func compile(s Stage) (uint32, error) {
	id := gl.CreateShader(s.Kind)
	src, free := gl.Strs(cString(s.Source))
	gl.ShaderSource(id, 1, src, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &n)
		buf := make([]byte, n+1)
		gl.GetShaderInfoLog(id, n, nil, &buf[0])
		gl.DeleteShader(id)
		return 0, fmt.Errorf("%w: %s stage: %s", ErrCompile, s.Name, infoLog(buf))
	}
	return id, nil
}

// Uniform returns the cached location of name. Unknown or optimized-out
// uniforms resolve to -1, which GL ignores on upload.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.ID, gl.Str(cString(name)))
	p.uniforms[name] = loc
	return loc
}

// Missing returns the names among those looked up so far that resolved to -1.
func (p *Program) Missing() []string {
	return missing(p.uniforms)
}

// Use binds the program.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

// cString NUL-terminates s for the GL string helpers.
func cString(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

// infoLog converts a GL info log buffer to a single trimmed string.
func infoLog(buf []byte) string {
	s := string(buf)
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return strings.Join(strings.Fields(s), " ")
}

func missing(uniforms map[string]int32) []string {
	var out []string
	for name, loc := range uniforms {
		if loc < 0 {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Package shader compiles GLSL programs and caches their uniform locations.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/gallery-walk/pkg/math"
)

// Stage is one shader stage's source.
type Stage struct {
	Kind   uint32 // gl.VERTEX_SHADER, gl.FRAGMENT_SHADER, ...
	Name   string // used in error messages
	Source string
}

// Program is a linked GL program.
type Program struct {
	id       uint32
	uniforms map[string]int32
}

// Link compiles every stage and links them. Stages are deleted once linked.
func Link(stages ...Stage) (*Program, error) {
	ids := make([]uint32, 0, len(stages))
	defer func() {
		for _, id := range ids {
			gl.DeleteShader(id)
		}
	}()
	for _, st := range stages {
		id, err := compile(st)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	prog := gl.CreateProgram()
	for _, id := range ids {
		gl.AttachShader(prog, id)
	}
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetProgramInfoLog(prog, n, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return nil, fmt.Errorf("link: %s", strings.TrimRight(log, "\x00"))
	}
	return &Program{id: prog, uniforms: make(map[string]int32)}, nil
}

func compile(st Stage) (uint32, error) {
	id := gl.CreateShader(st.Kind)
	src, free := gl.Strs(st.Source + "\x00")
	gl.ShaderSource(id, 1, src, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetShaderInfoLog(id, n, nil, gl.Str(log))
		gl.DeleteShader(id)
		return 0, fmt.Errorf("%s shader: %s", st.Name, strings.TrimRight(log, "\x00"))
	}
	return id, nil
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// Uniform returns the cached location of name, or -1 if inactive.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

// Require checks that every named uniform is active.
func (p *Program) Require(names ...string) error {
	for _, n := range names {
		if p.Uniform(n) < 0 {
			return fmt.Errorf("uniform %q not found in program %d", n, p.id)
		}
	}
	return nil
}

// SetMat4 uploads m to the named uniform.
func (p *Program) SetMat4(name string, m math.Mat4) {
	gl.UniformMatrix4fv(p.Uniform(name), 1, false, m.Ptr())
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

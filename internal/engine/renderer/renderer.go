// Package renderer draws the walkthrough's debug line view with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gallery-walk/internal/engine/debug"
	"github.com/Faultbox/gallery-walk/internal/engine/framebuffer"
	"github.com/Faultbox/gallery-walk/internal/engine/shader"
	"github.com/Faultbox/gallery-walk/internal/logger"
	"github.com/Faultbox/gallery-walk/pkg/math"
)

const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

uniform mat4 uViewProj;

out vec3 vertexColor;

void main() {
	gl_Position = uViewProj * vec4(aPos, 1.0);
	vertexColor = aColor;
}
`

const lineFragmentShader = `
#version 410 core

in vec3 vertexColor;
out vec4 FragColor;

void main() {
	FragColor = vec4(vertexColor, 1.0);
}
`

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	Scale  float32 // render resolution relative to the window
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	target *framebuffer.Target

	program *shader.Program

	// Static geometry (collider) and per-frame geometry (trigger markers).
	static  lineBuffer
	dynamic lineBuffer

	log *zap.Logger
}

type lineBuffer struct {
	vao, vbo uint32
	count    int32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	var err error
	r.program, err = shader.Link(
		shader.Stage{Kind: gl.VERTEX_SHADER, Name: "line vertex", Source: lineVertexShader},
		shader.Stage{Kind: gl.FRAGMENT_SHADER, Name: "line fragment", Source: lineFragmentShader},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	if err := r.program.Require("uViewProj"); err != nil {
		r.program.Delete()
		return nil, err
	}

	r.target, err = framebuffer.New(cfg.Width, cfg.Height, cfg.Scale)
	if err != nil {
		r.program.Delete()
		return nil, fmt.Errorf("failed to create render target: %w", err)
	}

	r.static.init()
	r.dynamic.init()
	return r, nil
}

func (b *lineBuffer) init() {
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)

	// Color attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

func (b *lineBuffer) upload(vs []debug.Vertex, usage uint32) {
	b.count = int32(len(vs))
	if b.count == 0 {
		return
	}
	data := debug.Flatten(vs)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), usage)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *lineBuffer) draw() {
	if b.count == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.LINES, 0, b.count)
	gl.BindVertexArray(0)
}

func (b *lineBuffer) destroy() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.static.destroy()
	r.dynamic.destroy()
	if r.target != nil {
		r.target.Destroy()
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	r.target.Resize(width, height, r.config.Scale)
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// SetScale changes the render resolution scale.
func (r *Renderer) SetScale(scale float32) {
	r.config.Scale = scale
	r.target.Resize(r.config.Width, r.config.Height, scale)
}

// Aspect returns the window aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// SetStatic replaces the static line set, typically the level collider.
func (r *Renderer) SetStatic(vs []debug.Vertex) {
	r.static.upload(vs, gl.STATIC_DRAW)
	r.log.Debug("static lines uploaded", zap.Int("vertices", len(vs)))
}

// Frame draws one frame: static lines plus the given dynamic lines.
func (r *Renderer) Frame(viewProj math.Mat4, dynamic []debug.Vertex) {
	r.target.Bind(0.1, 0.1, 0.15)

	r.dynamic.upload(dynamic, gl.STREAM_DRAW)

	r.program.Use()
	r.program.SetMat4("uViewProj", viewProj)
	r.static.draw()
	r.dynamic.draw()

	r.target.Present(r.config.Width, r.config.Height)
}

// Capture reads back the last rendered frame.
func (r *Renderer) Capture() (pixels []byte, width, height int) {
	w, h := r.target.Size()
	return r.target.ReadPixels(), int(w), int(h)
}

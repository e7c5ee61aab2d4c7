// Package framebuffer provides the scaled offscreen render target used to
// implement the display quality setting.
package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Target renders at a fraction of the window size and is blitted up to
// the window each frame.
type Target struct {
	fbo      uint32
	colorRBO uint32
	depthRBO uint32
	width    int32
	height   int32
}

// ScaledSize returns the render size for a window of w x h at scale,
// never smaller than 1x1.
func ScaledSize(w, h int, scale float32) (int32, int32) {
	if scale <= 0 {
		scale = 1
	}
	sw := int32(float32(w) * scale)
	sh := int32(float32(h) * scale)
	return max(sw, 1), max(sh, 1)
}

// New creates a target for a window of the given size.
func New(windowW, windowH int, scale float32) (*Target, error) {
	t := &Target{}
	t.width, t.height = ScaledSize(windowW, windowH, scale)

	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)

	gl.GenRenderbuffers(1, &t.colorRBO)
	gl.GenRenderbuffers(1, &t.depthRBO)
	t.allocate()
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, t.colorRBO)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, t.depthRBO)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		t.Destroy()
		return nil, fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return t, nil
}

func (t *Target) allocate() {
	gl.BindRenderbuffer(gl.RENDERBUFFER, t.colorRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8, t.width, t.height)
	gl.BindRenderbuffer(gl.RENDERBUFFER, t.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, t.width, t.height)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
}

// Bind makes the target current and clears it.
func (t *Target) Bind(r, g, b float32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, t.width, t.height)
	gl.ClearColor(r, g, b, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Present blits the target onto the default framebuffer.
func (t *Target) Present(windowW, windowH int) {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, t.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, t.width, t.height, 0, 0, int32(windowW), int32(windowH),
		gl.COLOR_BUFFER_BIT, gl.LINEAR)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(windowW), int32(windowH))
}

// Resize follows a window resize or quality change.
func (t *Target) Resize(windowW, windowH int, scale float32) {
	w, h := ScaledSize(windowW, windowH, scale)
	if w == t.width && h == t.height {
		return
	}
	t.width, t.height = w, h
	t.allocate()
}

// Size returns the render size.
func (t *Target) Size() (width, height int32) {
	return t.width, t.height
}

// ReadPixels reads the target as bottom-up RGBA rows.
func (t *Target) ReadPixels() []byte {
	pixels := make([]byte, t.width*t.height*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, t.fbo)
	gl.ReadPixels(0, 0, t.width, t.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	return pixels
}

// Destroy releases all OpenGL resources.
func (t *Target) Destroy() {
	if t.fbo != 0 {
		gl.DeleteFramebuffers(1, &t.fbo)
		t.fbo = 0
	}
	if t.colorRBO != 0 {
		gl.DeleteRenderbuffers(1, &t.colorRBO)
		t.colorRBO = 0
	}
	if t.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &t.depthRBO)
		t.depthRBO = 0
	}
}

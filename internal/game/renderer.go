package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Renderer batches untextured colored quads plus bitmap text. Everything is
// drawn in world units (ScreenWidth x ScreenHeight); the viewport scales to
// the framebuffer.
type Renderer struct {
	// Quad program.
	quadProg uint32
	quadVAO  uint32
	quadVBO  uint32
	quadURes int32
	quadBuf  []float32

	// Font/text rendering.
	fontTex      uint32
	textProg     uint32
	textVAO      uint32
	textVBO      uint32
	textURes     int32
	textUFontTex int32
	textBuf      []float32
}

// NewRenderer compiles the pipelines and sets up streaming buffers.
func NewRenderer() (*Renderer, error) {
	quadProg, err := linkProgram(quadVertSrc, quadFragSrc)
	if err != nil {
		return nil, fmt.Errorf("quad program: %w", err)
	}

	r := &Renderer{quadProg: quadProg}

	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	// pos(2) + color(4), streamed per frame.
	stride := int32(6 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, 4096*6*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, glOffset(2*4))
	r.quadVAO = vao
	r.quadVBO = vbo

	gl.UseProgram(quadProg)
	r.quadURes = gl.GetUniformLocation(quadProg, gl.Str("uResolution\x00"))

	gl.BindVertexArray(0)

	if err := r.InitFont(); err != nil {
		r.Destroy()
		return nil, err
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	return r, nil
}

// BeginFrame sets the viewport to the framebuffer and clears it.
func (r *Renderer) BeginFrame(fbWidth, fbHeight int) {
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	gl.ClearColor(
		float32(Palette.Grass.R)/255.0,
		float32(Palette.Grass.G)/255.0,
		float32(Palette.Grass.B)/255.0, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// DrawRect queues an axis-aligned filled rect in world coordinates.
func (r *Renderer) DrawRect(x, y, w, h float64, col RGB, alpha float32) {
	x0 := float32(x)
	y0 := float32(y)
	x1 := float32(x + w)
	y1 := float32(y + h)
	cr := float32(col.R) / 255.0
	cg := float32(col.G) / 255.0
	cb := float32(col.B) / 255.0

	r.quadBuf = append(r.quadBuf,
		x0, y0, cr, cg, cb, alpha,
		x1, y0, cr, cg, cb, alpha,
		x0, y1, cr, cg, cb, alpha,
		x1, y0, cr, cg, cb, alpha,
		x1, y1, cr, cg, cb, alpha,
		x0, y1, cr, cg, cb, alpha,
	)
}

// DrawRectCentered queues a rect centered on (cx, cy).
func (r *Renderer) DrawRectCentered(cx, cy, w, h float64, col RGB, alpha float32) {
	r.DrawRect(cx-w/2, cy-h/2, w, h, col, alpha)
}

// FlushQuads uploads and draws all queued quads.
func (r *Renderer) FlushQuads() {
	if len(r.quadBuf) == 0 {
		return
	}
	gl.UseProgram(r.quadProg)
	gl.BindVertexArray(r.quadVAO)
	gl.Uniform2f(r.quadURes, float32(ScreenWidth), float32(ScreenHeight))

	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.quadBuf)*4, nil, gl.STREAM_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(r.quadBuf)*4, gl.Ptr(r.quadBuf))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.quadBuf)/6))

	r.quadBuf = r.quadBuf[:0]
	gl.BindVertexArray(0)
}

// Destroy releases all GL resources.
func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.quadVBO, r.textVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.quadVAO, r.textVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.quadProg, r.textProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
	}
}

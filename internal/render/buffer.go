package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const (
	floatsPerVertex   = 6 // x, y, r, g, b, a
	bytesPerVertex    = floatsPerVertex * 4
	minVertexCapacity = 1024
)

// Buffer is a single growable VAO/VBO pair holding the scene's triangles.
// Uploads that exceed the capacity reallocate the store at the next power of
// two; smaller uploads reuse it in place.
type Buffer struct {
	vao, vbo    uint32
	capacity    int // in vertices
	vertexCount int
}

func NewBuffer() *Buffer {
	b := &Buffer{}
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	// - Attribute 0: position (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, bytesPerVertex, gl.PtrOffset(0))
	// - Attribute 1: color (vec4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, bytesPerVertex, gl.PtrOffset(8))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return b
}

// Upload replaces the buffer contents with vertices (interleaved, see
// floatsPerVertex).
func (b *Buffer) Upload(vertices []float32) error {
	if len(vertices)%floatsPerVertex != 0 {
		return fmt.Errorf("vertex data has %d floats, not a multiple of %d", len(vertices), floatsPerVertex)
	}
	count := len(vertices) / floatsPerVertex

	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	defer gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if count > b.capacity {
		b.capacity = growCapacity(b.capacity, count)
		gl.BufferData(gl.ARRAY_BUFFER, b.capacity*bytesPerVertex, nil, gl.DYNAMIC_DRAW)
	}
	if count > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, count*bytesPerVertex, gl.Ptr(vertices))
	}
	b.vertexCount = count
	return nil
}

func (b *Buffer) Draw() {
	if b.vertexCount == 0 {
		return // nothing to do
	}
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(b.vertexCount))
	gl.BindVertexArray(0)
}

func (b *Buffer) Cleanup() {
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.vbo)
	b.capacity, b.vertexCount = 0, 0
}

func (b *Buffer) VertexCount() int { return b.vertexCount }
func (b *Buffer) GPUBytes() int    { return b.capacity * bytesPerVertex }

// growCapacity doubles from max(current, minVertexCapacity) until need fits.
func growCapacity(current, need int) int {
	c := current
	if c < minVertexCapacity {
		c = minVertexCapacity
	}
	for c < need {
		c *= 2
	}
	return c
}

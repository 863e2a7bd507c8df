// Package gpu uploads meshes into OpenGL buffers.
package gpu

import (
	"errors"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/trackribbon/internal/engine/mesh"
	"github.com/Faultbox/trackribbon/internal/engine/scene"
)

// ErrEmptyMesh is returned when uploading a mesh with no indices.
var ErrEmptyMesh = errors.New("mesh has no indices")

// Backend implements scene.Backend on the current GL context.
type Backend struct{}

// Upload copies m into a VAO with positions at location 0, colors at
// location 1 and an element buffer.
func (Backend) Upload(m mesh.Mesh) (scene.Resource, error) {
	if len(m.Indices) == 0 {
		return nil, ErrEmptyMesh
	}

	b := &Buffers{count: int32(len(m.Indices)), mode: drawMode(m.Mode)}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.positions)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.positions)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Positions)*4, unsafe.Pointer(&m.Positions[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &b.colors)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.colors)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Colors)*4, unsafe.Pointer(&m.Colors[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return b, nil
}

func drawMode(m mesh.Mode) uint32 {
	if m == mesh.Lines {
		return gl.LINES
	}
	return gl.TRIANGLES
}

// Buffers is a mesh resident on the GPU.
type Buffers struct {
	vao       uint32
	positions uint32
	colors    uint32
	ebo       uint32
	count     int32
	mode      uint32
}

// Draw issues one indexed draw call.
func (b *Buffers) Draw() {
	if b.vao == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawElementsWithOffset(b.mode, b.count, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Release deletes the GL objects. Calling it twice is safe.
func (b *Buffers) Release() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	for _, buf := range []*uint32{&b.positions, &b.colors, &b.ebo} {
		if *buf != 0 {
			gl.DeleteBuffers(1, buf)
			*buf = 0
		}
	}
}

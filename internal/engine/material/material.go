// Package material provides the shader programs meshes are drawn with.
package material

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/trackribbon/internal/engine/material/shaders"
	"github.com/Faultbox/trackribbon/pkg/math"
)

// VertexColor draws meshes with their per-vertex colors and no lighting.
type VertexColor struct {
	program uint32

	locView       int32
	locProjection int32
}

// NewVertexColor compiles the vertex-color program. Requires a current GL
// context.
func NewVertexColor() (*VertexColor, error) {
	program, err := compileProgram(shaders.VertexColorVertexShader, shaders.VertexColorFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("vertex color shader: %w", err)
	}

	m := &VertexColor{program: program}
	for name, loc := range map[string]*int32{
		"uView":       &m.locView,
		"uProjection": &m.locProjection,
	} {
		if *loc, err = uniform(program, name); err != nil {
			gl.DeleteProgram(program)
			return nil, err
		}
	}
	return m, nil
}

// Use binds the program and uploads the camera matrices.
func (m *VertexColor) Use(view, projection math.Mat4) {
	gl.UseProgram(m.program)
	gl.UniformMatrix4fv(m.locView, 1, false, view.Ptr())
	gl.UniformMatrix4fv(m.locProjection, 1, false, projection.Ptr())
}

// Delete frees the program.
func (m *VertexColor) Delete() {
	if m.program != 0 {
		gl.DeleteProgram(m.program)
		m.program = 0
	}
}

// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// VertexColorVertexShader transforms positions by view and projection and
// passes the per-vertex color through.
//
//go:embed vertex_color.vert
var VertexColorVertexShader string

// VertexColorFragmentShader writes the interpolated vertex color.
//
//go:embed vertex_color.frag
var VertexColorFragmentShader string

// Package shaders provides embedded GLSL shader sources.
package shaders

import "embed"

// BaseVertexShader transforms positions by u_model, u_view and
// u_projection and passes world-space position, normal and uv on.
//
//go:embed base.vert
var BaseVertexShader string

// PhongFragmentShader shades with one directional light and up to 32
// point lights, sampling diffuse and specular maps from the material.
//
//go:embed phong.frag
var PhongFragmentShader string

// Files holds every shader, for mounting into an asset manager.
//
//go:embed *.vert *.frag
var Files embed.FS

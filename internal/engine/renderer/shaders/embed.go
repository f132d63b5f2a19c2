// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// ModelVertexShader transforms model vertices into clip space.
//
//go:embed model.vert
var ModelVertexShader string

// ModelFragmentShader shades with Blinn-Phong and optional texture maps.
//
//go:embed model.frag
var ModelFragmentShader string

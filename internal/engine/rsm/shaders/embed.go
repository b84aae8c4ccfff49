// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// CaptureVertexShader moves vertices to world space for the capture pass.
//
//go:embed capture.vert
var CaptureVertexShader string

// CaptureGeometryShader fans each triangle out to the six cube faces.
//
//go:embed capture.geom
var CaptureGeometryShader string

// CaptureFragmentShader writes linear depth, world normal and flux.
//
//go:embed capture.frag
var CaptureFragmentShader string

// ShadeVertexShader is the vertex shader for the camera pass.
//
//go:embed shade.vert
var ShadeVertexShader string

// ShadeFragmentShader evaluates direct and one-bounce indirect light.
//
//go:embed shade.frag
var ShadeFragmentShader string

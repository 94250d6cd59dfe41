// Package builtin embeds the engine's stock WGSL programs. Every program shares
// the vertex layout of model.GPUVertex and the Frame uniform at group 0.
package builtin

import _ "embed"

// Lit shades a textured surface with one point light and an ambient term.
// Group 1 holds Object, a 2D texture and its sampler.
//
//go:embed lit.wgsl
var Lit string

// Line draws geometry in the flat Object color. Group 1 holds Object only.
//
//go:embed line.wgsl
var Line string

package shading

import _ "embed"

// SunWGSL is the GPU form of SunColor.
//
//go:embed wgsl/sun.wgsl
var SunWGSL string

// RingWGSL is the GPU form of RingUniforms.Shade.
//
//go:embed wgsl/ring.wgsl
var RingWGSL string

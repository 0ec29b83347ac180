/*
Package animationpath models an animated 3D path as a set of synchronized
keyframe curves: a spatial position curve, a companion rotation curve, and
two scalar tool curves (ease and tilt) which modulate playback along the path.

This package holds the numeric basics shared by all sub-packages: the
timestamp tolerance, float predicates and helpers for 3D vectors.
Sub-packages are

	keyframe   ordered keyframe curves, Hermite evaluation, tangent smoothing
	spatial    3D paths built from three lock-stepped axis curves, arc length
	pathdata   the orchestrator keeping object path, rotation path and tools in sync
	polygon    ground-plane footprints of sampled paths

# BSD License

# Copyright (c) Bartłomiej Wołk

All rights reserved.

Please refer to the license file for more information.
*/
package animationpath

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'animationpath'
func tracer() tracing.Trace {
	return tracing.Select("animationpath")
}

// === Numeric Data Type =====================================================

// Epsilon is the tolerance for every timestamp comparison in this module.
// Timestamps closer than ε are considered equal.
var Epsilon float64 = 0.000001

// NotFound is returned by index lookups which have no matching key.
const NotFound = -1

// FloatsEqual is a predicate: is |a-b| ≤ ε ?
func FloatsEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// Before is a predicate: is a < b with a gap larger than ε ?
// For a < b this is exactly !FloatsEqual(a, b), so order checks and
// duplicate checks never disagree.
func Before(a, b float64) bool {
	return b-a > Epsilon
}

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Clamp01 clamps n to the unit interval.
func Clamp01(n float64) float64 {
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// IsTimestamp is a predicate: does t lie in [0,1] (within ε)?
func IsTimestamp(t float64) bool {
	if math.IsNaN(t) {
		return false
	}
	return t >= -Epsilon && t <= 1+Epsilon
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// IndexOf returns the index of the first timestamp in ts matching t within ε,
// or NotFound.
func IndexOf(ts []float64, t float64) int {
	for i, x := range ts {
		if FloatsEqual(x, t) {
			return i
		}
	}
	return NotFound
}

// === Vector Data Type ======================================================

// Origin represents the frequently used constant (0,0,0).
var Origin = V(0, 0, 0)

// V is a quick notation for constructing a 3D vector from floats.
func V(x, y, z float64) mgl64.Vec3 {
	return mgl64.Vec3{x, y, z}
}

// VecEqual compares two vectors component-wise within ε.
func VecEqual(a, b mgl64.Vec3) bool {
	return a.ApproxEqualThreshold(b, Epsilon)
}

// VecZap rounds every component of v to zero if it "means" to be zero.
func VecZap(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{Zap(v[0]), Zap(v[1]), Zap(v[2])}
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b mgl64.Vec3) float64 {
	return b.Sub(a).Len()
}

// VecString is a pretty Stringer for vectors.
func VecString(v mgl64.Vec3) string {
	v = VecZap(v)
	return fmt.Sprintf("(%g,%g,%g)", v[0], v[1], v[2])
}

// Assert traces an error with key 'animationpath' if cond does not hold
// and returns false. Callers decide whether the violation is fatal.
func Assert(cond bool, format string, args ...interface{}) bool {
	if !cond {
		tracer().Errorf("assertion failed: "+format, args...)
	}
	return cond
}

/*
Package polygon handles ground-plane polygons, most notably the footprint of
an animation path: the path projected onto the XZ plane and closed to a cycle.

Polygons are built from knots, in the manner of

	pg := NullPolygon().Knot(P(0, 0)).Knot(P(1, 3)).Knot(P(3, 0)).Cycle()

Clipping operations, containment tests and bounding boxes are delegated to
package github.com/akavel/polyclip-go.

# BSD License

# Copyright (c) Bartłomiej Wołk

All rights reserved.

Please refer to the license file for more information.
*/
package polygon

import (
	"fmt"
	"iter"

	"github.com/akavel/polyclip-go"
	"github.com/bartlomiejwolk/animationpath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/schuko/tracing"
)

// L traces to the global tracer with key 'polygon'
func L() tracing.Trace {
	return tracing.Select("polygon")
}

// P is a quick notation for a point on the ground plane.
func P(x, z float64) mgl64.Vec2 {
	return mgl64.Vec2{x, z}
}

// Polygon is a sequence of knots on the ground plane. A polygon under
// construction is open; Cycle closes it.
type Polygon struct {
	knots  []mgl64.Vec2
	closed bool
}

// NullPolygon creates an empty, open polygon.
func NullPolygon() *Polygon {
	return &Polygon{}
}

// Knot appends a knot. Knots equal to their predecessor are dropped.
func (pg *Polygon) Knot(p mgl64.Vec2) *Polygon {
	if n := len(pg.knots); n > 0 && pg.knots[n-1].ApproxEqualThreshold(p, animationpath.Epsilon) {
		return pg
	}
	pg.knots = append(pg.knots, p)
	return pg
}

// Cycle closes the polygon. A last knot equal to the first one is dropped.
func (pg *Polygon) Cycle() *Polygon {
	if n := len(pg.knots); n > 1 && pg.knots[n-1].ApproxEqualThreshold(pg.knots[0], animationpath.Epsilon) {
		pg.knots = pg.knots[:n-1]
	}
	pg.closed = true
	return pg
}

// N returns the number of knots.
func (pg *Polygon) N() int {
	return len(pg.knots)
}

// IsCycle is a predicate: has pg been closed?
func (pg *Polygon) IsCycle() bool {
	return pg.closed
}

// Knots returns a copy of the knots.
func (pg *Polygon) Knots() []mgl64.Vec2 {
	ks := make([]mgl64.Vec2, len(pg.knots))
	copy(ks, pg.knots)
	return ks
}

// Box creates a closed rectangle from two opposing corners.
func Box(p1, p2 mgl64.Vec2) *Polygon {
	minx, maxx := min(p1[0], p2[0]), max(p1[0], p2[0])
	minz, maxz := min(p1[1], p2[1]), max(p1[1], p2[1])
	return NullPolygon().Knot(P(minx, minz)).Knot(P(maxx, minz)).
		Knot(P(maxx, maxz)).Knot(P(minx, maxz)).Cycle()
}

// Footprint projects a sequence of 3D points onto the XZ plane and closes
// the result to a cycle. The Y coordinate is dropped.
func Footprint(points iter.Seq[mgl64.Vec3]) *Polygon {
	pg := NullPolygon()
	for p := range points {
		pg.Knot(P(p[0], p[2]))
	}
	pg.Cycle()
	L().Debugf("footprint with %d knots", pg.N())
	return pg
}

// BoundingBox returns the lower left and the upper right corner of the
// smallest axis-aligned rectangle containing pg.
func (pg *Polygon) BoundingBox() (mgl64.Vec2, mgl64.Vec2) {
	if len(pg.knots) == 0 {
		return mgl64.Vec2{}, mgl64.Vec2{}
	}
	r := pg.contour().BoundingBox()
	return P(r.Min.X, r.Min.Y), P(r.Max.X, r.Max.Y)
}

// Contains is a predicate: does p lie inside the closed polygon?
// Open polygons and polygons with less than 3 knots contain nothing.
func (pg *Polygon) Contains(p mgl64.Vec2) bool {
	if !pg.closed || len(pg.knots) < 3 {
		return false
	}
	return pg.contour().Contains(polyclip.Point{X: p[0], Y: p[1]})
}

// Intersect clips pg against other and returns the parts of pg covered by
// other. Both polygons are treated as closed.
func (pg *Polygon) Intersect(other *Polygon) []*Polygon {
	return pg.construct(polyclip.INTERSECTION, other)
}

// Union returns the polygons covering pg or other.
func (pg *Polygon) Union(other *Polygon) []*Polygon {
	return pg.construct(polyclip.UNION, other)
}

func (pg *Polygon) construct(op polyclip.Op, other *Polygon) []*Polygon {
	subject := polyclip.Polygon{pg.contour()}
	clipping := polyclip.Polygon{other.contour()}
	result := subject.Construct(op, clipping)
	pgs := make([]*Polygon, 0, len(result))
	for _, c := range result {
		q := NullPolygon()
		for _, pt := range c {
			q.Knot(P(pt.X, pt.Y))
		}
		pgs = append(pgs, q.Cycle())
	}
	L().Debugf("clipping resulted in %d polygon(s)", len(pgs))
	return pgs
}

func (pg *Polygon) contour() polyclip.Contour {
	c := make(polyclip.Contour, len(pg.knots))
	for i, k := range pg.knots {
		c[i] = polyclip.Point{X: k[0], Y: k[1]}
	}
	return c
}

// AsString returns a polygon as a (debugging) string.
func AsString(pg *Polygon) string {
	var s string
	for i, k := range pg.knots {
		if i > 0 {
			s += " -- "
		}
		s += fmt.Sprintf("(%g,%g)", animationpath.Zap(k[0]), animationpath.Zap(k[1]))
	}
	if pg.closed {
		s += " -- cycle"
	}
	return s
}

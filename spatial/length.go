package spatial

import (
	"iter"
	"slices"

	"github.com/bartlomiejwolk/animationpath"
	"github.com/go-gl/mathgl/mgl64"
)

// LinearLength returns the length of the polyline through all nodes.
func (p *Path) LinearLength() float64 {
	var l float64
	for i := 1; i < len(p.nodes); i++ {
		l += animationpath.Distance(p.nodes[i-1].pos, p.nodes[i].pos)
	}
	return l
}

// SectionLinearLength returns the straight-line distance between node i
// and node j.
func (p *Path) SectionLinearLength(i, j int) (float64, error) {
	if err := p.checkIndex(i); err != nil {
		return 0, err
	}
	if err := p.checkIndex(j); err != nil {
		return 0, err
	}
	return animationpath.Distance(p.nodes[i].pos, p.nodes[j].pos), nil
}

// Length estimates the arc length of the interpolated path. Every segment
// between two nodes is evaluated at sampling evenly spaced parameter values
// and the chords of the resulting polyline are summed up. Sampling values
// below 1 are treated as 1, which yields the linear length.
func (p *Path) Length(sampling int) float64 {
	if sampling < 1 {
		sampling = 1
	}
	var l float64
	for i := 0; i < len(p.nodes)-1; i++ {
		t0, t1 := p.nodes[i].time, p.nodes[i+1].time
		prev := p.nodes[i].pos
		for k := 1; k <= sampling; k++ {
			var q mgl64.Vec3
			if k == sampling {
				q = p.nodes[i+1].pos
			} else {
				q = p.evalSegment(i, t0+(t1-t0)*float64(k)/float64(sampling))
			}
			l += animationpath.Distance(prev, q)
			prev = q
		}
	}
	tracer().Debugf("path length with sampling %d = %.6g", sampling, l)
	return l
}

// SamplePoints returns a sequence of n points, evenly spaced in time from
// the first to the last node. The sequence is evaluated lazily and may be
// iterated more than once; every iteration reads the current state of the
// path.
func (p *Path) SamplePoints(n int) iter.Seq[mgl64.Vec3] {
	return func(yield func(mgl64.Vec3) bool) {
		if n <= 0 || len(p.nodes) == 0 {
			return
		}
		t0 := p.nodes[0].time
		t1 := p.nodes[len(p.nodes)-1].time
		if n == 1 {
			yield(p.VectorAtTime(t0))
			return
		}
		for k := 0; k < n; k++ {
			t := t0 + (t1-t0)*float64(k)/float64(n-1)
			if !yield(p.VectorAtTime(t)) {
				return
			}
		}
	}
}

// Points collects SamplePoints(n) into a slice.
func (p *Path) Points(n int) []mgl64.Vec3 {
	return slices.Collect(p.SamplePoints(n))
}

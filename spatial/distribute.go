package spatial

import (
	"github.com/bartlomiejwolk/animationpath"
)

// DistributeTimestamps rewrites the timestamps of the interior nodes of p so
// that consecutive nodes are spaced in time proportionally to their distance.
//
// Walking nodes in index order, node i gets
//
//	t.i = t.(i-1) + |z.i - z.(i-1)| / L
//
// where L is the arc length of the path estimated with the given sampling.
// The first and the last node keep their timestamps.
//
// This is a best-effort operation. It stops at the first node whose new
// timestamp would exceed 1 (which happens for overlapping nodes), leaving that
// node and all following ones untouched. The committed prefix is shortened
// further if it would run into the first untouched node. Callers must not
// assume that a call retimes every interior node; the number of retimed nodes
// is returned.
func DistributeTimestamps(p *Path, sampling int) (int, error) {
	n := p.N()
	if n < 3 {
		return 0, nil
	}
	total := p.Length(sampling)
	if animationpath.Is0(total) {
		tracer().Infof("path has zero length, timestamps left as they are")
		return 0, nil
	}
	timeForUnit := 1 / total
	last := p.nodes[n-1].time
	prev := p.nodes[0].time
	ts := make([]float64, 0, n-2)
	for i := 1; i < n-1; i++ {
		section, err := p.SectionLinearLength(i-1, i)
		if err != nil {
			return 0, err
		}
		t := prev + section*timeForUnit
		prev = t
		if t > 1 {
			tracer().Infof("distributing timestamps stopped at node %d, t=%.6g > 1", i, t)
			break
		}
		ts = append(ts, t)
	}
	// the committed prefix must stay clear of its untouched successor
	for len(ts) > 0 {
		next := last
		if k := len(ts) + 1; k < n-1 {
			next = p.nodes[k].time
		}
		if ordered(p.nodes[0].time, ts, next) {
			break
		}
		ts = ts[:len(ts)-1]
	}
	if err := p.SetTimestamps(1, ts); err != nil {
		return 0, err
	}
	tracer().Debugf("distributed %d timestamps: %v", len(ts), ts)
	return len(ts), nil
}

// ordered checks first < ts[0] < … < ts[k] < next, with gaps larger than ε.
func ordered(first float64, ts []float64, next float64) bool {
	prev := first
	for _, t := range ts {
		if !animationpath.Before(prev, t) {
			return false
		}
		prev = t
	}
	return animationpath.Before(prev, next)
}

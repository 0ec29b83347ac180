// Package spatial deals with 3D animation paths built from three
// lock-stepped keyframe curves, one per axis.
/*
A path is a sequence of nodes. Each node owns a timestamp in [0,1], a
position and an in- and out-tangent per axis. Keeping the node as one record
makes the x, y and z curves share their timestamps by construction; the
per-axis keyframe curves are projections, available through Curve(axis).

Between two nodes every axis is interpolated by a cubic Hermite segment,
see package keyframe. On top of that the package estimates arc length by
sampling the interpolated curve and redistributes node timestamps so that
traversal speed becomes uniform (DistributeTimestamps).

Paths are not safe for concurrent use.
*/
package spatial

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bartlomiejwolk/animationpath"
	"github.com/bartlomiejwolk/animationpath/keyframe"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'spatial'
func tracer() tracing.Trace {
	return tracing.Select("spatial")
}

// Axis indices into a vector.
const (
	X = 0
	Y = 1
	Z = 2
)

var (
	// ErrDuplicateTimestamp indicates a node already exists at a timestamp (within tolerance).
	ErrDuplicateTimestamp = errors.New("path already has a node at this timestamp")
	// ErrTimestampRange indicates a timestamp outside [0,1].
	ErrTimestampRange = errors.New("timestamp out of range [0,1]")
	// ErrTimestampOrder indicates a retiming which would cross or touch a neighbour node.
	ErrTimestampOrder = errors.New("timestamp would break node order")
	// ErrNodeIndex indicates a node index outside the path.
	ErrNodeIndex = errors.New("node index out of range")
	// ErrNodeNotFound indicates that no node matches a timestamp.
	ErrNodeNotFound = errors.New("no node at timestamp")
)

type node struct {
	time float64
	pos  mgl64.Vec3
	in   mgl64.Vec3 // in-tangent per axis
	out  mgl64.Vec3 // out-tangent per axis
}

// Path is a 3D curve through a sequence of timed nodes.
// The zero value is an empty path, ready to use.
type Path struct {
	nodes []node
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{}
}

// Clone returns a deep copy of p.
func (p *Path) Clone() *Path {
	nodes := make([]node, len(p.nodes))
	copy(nodes, p.nodes)
	return &Path{nodes: nodes}
}

// N returns the number of nodes.
func (p *Path) N() int {
	return len(p.nodes)
}

// === Node lifecycle ========================================================

// CreateNode inserts a node at timestamp t with position pos and returns its
// index. The new node gets auto tangents (slope through its neighbours);
// the tangents of the neighbours stay as they are.
func (p *Path) CreateNode(t float64, pos mgl64.Vec3) (int, error) {
	if err := p.checkNewTimestamp(t); err != nil {
		return animationpath.NotFound, err
	}
	i := p.insert(node{time: t, pos: pos})
	p.smoothNode(i, 0)
	tracer().Debugf("created node %d at t=%.4g, %s", i, t, animationpath.VecString(pos))
	return i, nil
}

// AddNodeAtTime splits the path at timestamp t. Position and tangents of the
// new node are read from the existing curve, so the shape of the path is
// preserved.
func (p *Path) AddNodeAtTime(t float64) (int, error) {
	if err := p.checkNewTimestamp(t); err != nil {
		return animationpath.NotFound, err
	}
	pos := p.VectorAtTime(t)
	slope := p.slopeAtTime(t)
	i := p.insert(node{time: t, pos: pos, in: slope, out: slope})
	tracer().Debugf("split path with node %d at t=%.4g, %s", i, t, animationpath.VecString(pos))
	return i, nil
}

// RemoveNode deletes node i from all three axes at once.
func (p *Path) RemoveNode(i int) error {
	if err := p.checkIndex(i); err != nil {
		return err
	}
	tracer().Debugf("removing node %d at t=%.4g", i, p.nodes[i].time)
	p.nodes = append(p.nodes[:i], p.nodes[i+1:]...)
	return nil
}

// MovePointToPosition changes the position of node i, keeping its time and
// tangents.
func (p *Path) MovePointToPosition(i int, pos mgl64.Vec3) error {
	if err := p.checkIndex(i); err != nil {
		return err
	}
	p.nodes[i].pos = pos
	return nil
}

// MovePointAtTime changes the position of the node at timestamp t.
func (p *Path) MovePointAtTime(t float64, pos mgl64.Vec3) error {
	i := p.NodeIndexAtTime(t)
	if i == animationpath.NotFound {
		return fmt.Errorf("%w: t=%g", ErrNodeNotFound, t)
	}
	return p.MovePointToPosition(i, pos)
}

// Offset translates every node by delta.
func (p *Path) Offset(delta mgl64.Vec3) {
	for i := range p.nodes {
		p.nodes[i].pos = p.nodes[i].pos.Add(delta)
	}
}

// ChangeNodeTimestamp moves node i to timestamp t. The new timestamp has
// to stay strictly between the timestamps of the node's neighbours;
// retiming never re-orders nodes.
func (p *Path) ChangeNodeTimestamp(i int, t float64) error {
	if err := p.checkIndex(i); err != nil {
		return err
	}
	if !animationpath.IsTimestamp(t) {
		return fmt.Errorf("%w: t=%g", ErrTimestampRange, t)
	}
	if i > 0 && !animationpath.Before(p.nodes[i-1].time, t) {
		return fmt.Errorf("%w: node %d at t=%g, predecessor at %g", ErrTimestampOrder, i, t, p.nodes[i-1].time)
	}
	if i < len(p.nodes)-1 && !animationpath.Before(t, p.nodes[i+1].time) {
		return fmt.Errorf("%w: node %d at t=%g, successor at %g", ErrTimestampOrder, i, t, p.nodes[i+1].time)
	}
	p.nodes[i].time = t
	return nil
}

// SetTimestamps retimes the nodes first, first+1, … to the timestamps ts.
// The complete result is validated before anything is written.
func (p *Path) SetTimestamps(first int, ts []float64) error {
	if len(ts) == 0 {
		return nil
	}
	if err := p.checkIndex(first); err != nil {
		return err
	}
	if err := p.checkIndex(first + len(ts) - 1); err != nil {
		return err
	}
	times := p.Timestamps()
	copy(times[first:], ts)
	for i, t := range times {
		if !animationpath.IsTimestamp(t) {
			return fmt.Errorf("%w: node %d at t=%g", ErrTimestampRange, i, t)
		}
		if i > 0 && !animationpath.Before(times[i-1], t) {
			return fmt.Errorf("%w: node %d at t=%g, predecessor at %g", ErrTimestampOrder, i, t, times[i-1])
		}
	}
	for i, t := range ts {
		p.nodes[first+i].time = t
	}
	return nil
}

// === Queries ===============================================================

// VectorAtKey returns the position of node i.
func (p *Path) VectorAtKey(i int) (mgl64.Vec3, error) {
	if err := p.checkIndex(i); err != nil {
		return mgl64.Vec3{}, err
	}
	return p.nodes[i].pos, nil
}

// TimeAtKey returns the timestamp of node i.
func (p *Path) TimeAtKey(i int) (float64, error) {
	if err := p.checkIndex(i); err != nil {
		return 0, err
	}
	return p.nodes[i].time, nil
}

// Tangents returns in- and out-tangent of node i.
func (p *Path) Tangents(i int) (mgl64.Vec3, mgl64.Vec3, error) {
	if err := p.checkIndex(i); err != nil {
		return mgl64.Vec3{}, mgl64.Vec3{}, err
	}
	return p.nodes[i].in, p.nodes[i].out, nil
}

// VectorAtTime evaluates the path at time t. Outside the node range the
// path is clamped to its first or last node; an empty path yields the origin.
func (p *Path) VectorAtTime(t float64) mgl64.Vec3 {
	n := len(p.nodes)
	switch {
	case n == 0:
		return mgl64.Vec3{}
	case t <= p.nodes[0].time:
		return p.nodes[0].pos
	case t >= p.nodes[n-1].time:
		return p.nodes[n-1].pos
	}
	return p.evalSegment(p.segment(t), t)
}

// NodeIndexAtTime returns the index of the node at timestamp t (within
// tolerance), or animationpath.NotFound.
func (p *Path) NodeIndexAtTime(t float64) int {
	i := p.search(t)
	if i < len(p.nodes) && animationpath.FloatsEqual(p.nodes[i].time, t) {
		return i
	}
	if i > 0 && animationpath.FloatsEqual(p.nodes[i-1].time, t) {
		return i - 1
	}
	return animationpath.NotFound
}

// NodeAtTimeExists is a predicate: is there a node at timestamp t?
func (p *Path) NodeAtTimeExists(t float64) bool {
	return p.NodeIndexAtTime(t) != animationpath.NotFound
}

// Timestamps returns the timestamps of all nodes.
func (p *Path) Timestamps() []float64 {
	ts := make([]float64, len(p.nodes))
	for i, nd := range p.nodes {
		ts[i] = nd.time
	}
	return ts
}

// Positions returns the positions of all nodes.
func (p *Path) Positions() []mgl64.Vec3 {
	ps := make([]mgl64.Vec3, len(p.nodes))
	for i, nd := range p.nodes {
		ps[i] = nd.pos
	}
	return ps
}

// Curve returns the keyframe curve of one axis (X, Y or Z). The curve is
// a copy; changing it does not affect the path.
func (p *Path) Curve(axis int) *keyframe.Curve {
	keys := make([]keyframe.Keyframe, len(p.nodes))
	for i := range p.nodes {
		keys[i] = p.axisKey(i, axis)
	}
	c, err := keyframe.FromSorted(keys)
	if err == nil {
		return c
	}
	// unreachable as long as every mutator orders nodes with animationpath.Before
	animationpath.Assert(false, "axis %d projection: %v", axis, err)
	c = &keyframe.Curve{}
	for _, k := range keys {
		if _, err := c.AddKey(k); err != nil {
			tracer().Errorf("axis %d projection drops key at t=%g", axis, k.Time)
		}
	}
	return c
}

// AsString returns the nodes of a path as a (debugging) string.
func AsString(p *Path) string {
	var s string
	for i, nd := range p.nodes {
		if i > 0 {
			s += " .. "
		}
		s += fmt.Sprintf("%s@%.4g", animationpath.VecString(nd.pos), nd.time)
	}
	return s
}

// === Internals =============================================================

func (p *Path) axisKey(i, axis int) keyframe.Keyframe {
	nd := p.nodes[i]
	return keyframe.Keyframe{
		Time:       nd.time,
		Value:      nd.pos[axis],
		InTangent:  nd.in[axis],
		OutTangent: nd.out[axis],
	}
}

// search returns the index of the first node with time ≥ t.
func (p *Path) search(t float64) int {
	return sort.Search(len(p.nodes), func(i int) bool {
		return p.nodes[i].time >= t
	})
}

// segment returns i such that nodes i and i+1 enclose t. Requires N ≥ 2.
func (p *Path) segment(t float64) int {
	i := p.search(t) - 1
	if i < 0 {
		i = 0
	}
	if i > len(p.nodes)-2 {
		i = len(p.nodes) - 2
	}
	return i
}

// evalSegment interpolates the segment between nodes i and i+1 at time t.
func (p *Path) evalSegment(i int, t float64) mgl64.Vec3 {
	var v mgl64.Vec3
	for axis := X; axis <= Z; axis++ {
		v[axis] = keyframe.Hermite(p.axisKey(i, axis), p.axisKey(i+1, axis), t)
	}
	return v
}

func (p *Path) slopeAtTime(t float64) mgl64.Vec3 {
	var m mgl64.Vec3
	if len(p.nodes) < 2 {
		return m
	}
	i := p.segment(t)
	for axis := X; axis <= Z; axis++ {
		m[axis] = keyframe.HermiteSlope(p.axisKey(i, axis), p.axisKey(i+1, axis), t)
	}
	return m
}

func (p *Path) insert(nd node) int {
	i := p.search(nd.time)
	p.nodes = append(p.nodes, node{})
	copy(p.nodes[i+1:], p.nodes[i:])
	p.nodes[i] = nd
	return i
}

func (p *Path) checkNewTimestamp(t float64) error {
	if !animationpath.IsTimestamp(t) {
		return fmt.Errorf("%w: t=%g", ErrTimestampRange, t)
	}
	if p.NodeAtTimeExists(t) {
		return fmt.Errorf("%w: t=%g", ErrDuplicateTimestamp, t)
	}
	return nil
}

func (p *Path) checkIndex(i int) error {
	if i < 0 || i >= len(p.nodes) {
		return fmt.Errorf("%w: %d of %d nodes", ErrNodeIndex, i, len(p.nodes))
	}
	return nil
}

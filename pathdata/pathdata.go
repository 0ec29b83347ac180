/*
Package pathdata keeps the curves of an animated path in sync.

A PathData owns four structures:

	object path     the 3D path the animated object travels along
	rotation path   a 3D path of look-at points, one per object path node
	ease curve      a scalar curve modulating playback speed
	tilt curve      a scalar curve rolling the object around its path tangent

and a tool record per object path node, telling whether the ease and tilt
tools are enabled for that node. The ease curve has a key exactly at the
timestamps of the nodes with ease enabled, the tilt curve likewise. The
first and the last node always have both tools enabled.

Every structural change to the object path (create, remove, retime) is
reconciled with the dependent structures before PathData returns. Reconciliation
is done by direct calls; listeners registered with Subscribe are notified
afterwards.

# Best effort operations

DistributeTimestamps and the rotation path reconciliation function
UpdateRotationPathWithRemovedKeys may leave part of the structure untouched
on a single call: distribution stops at the first node whose timestamp would
exceed 1, removal of stale rotation nodes removes one node per call. Callers
have to loop until convergence; PathData does so itself for the rotation path
if Config.SyncRotationPath is set.

PathData is not safe for concurrent use. It does no I/O.

# BSD License

# Copyright (c) Bartłomiej Wołk

All rights reserved.

Please refer to the license file for more information.
*/
package pathdata

import (
	"errors"
	"fmt"
	"iter"

	"github.com/bartlomiejwolk/animationpath"
	"github.com/bartlomiejwolk/animationpath/keyframe"
	"github.com/bartlomiejwolk/animationpath/polygon"
	"github.com/bartlomiejwolk/animationpath/spatial"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'pathdata'
func tracer() tracing.Trace {
	return tracing.Select("pathdata")
}

var (
	// ErrInconsistent indicates a broken internal invariant. It always
	// signals a bug, never a user error.
	ErrInconsistent = errors.New("path data is inconsistent")
	// ErrEndpoint indicates an operation which is not allowed on the first
	// or last node.
	ErrEndpoint = errors.New("operation not allowed on an endpoint node")
	// ErrRotationMismatch indicates that rotation path and object path do
	// not have the same number of nodes.
	ErrRotationMismatch = errors.New("rotation path out of sync with object path")
)

type toolState struct {
	ease bool
	tilt bool
}

// PathData is the orchestrator of an animated path. Create it with New.
type PathData struct {
	cfg          Config
	objectPath   *spatial.Path
	rotationPath *spatial.Path
	ease         *keyframe.Curve
	tilt         *keyframe.Curve
	tools        []toolState  // one record per object path node
	listeners    *treemap.Map // subscription id → Listener
	nextID       int
}

// New creates path data in its default state: a straight two-node object
// path from (0,0,0) at t=0 to (1,0,1) at t=1, a matching rotation path, and
// ease and tilt curves with keys at both ends.
func New(cfg Config) (*PathData, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pd := &PathData{cfg: cfg}
	pd.assignDefaults()
	return pd, nil
}

// MustNew is like New, but panics on an invalid configuration.
func MustNew(cfg Config) *PathData {
	pd, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return pd
}

// Config returns the configuration of pd.
func (pd *PathData) Config() Config {
	return pd.cfg
}

func (pd *PathData) assignDefaults() {
	pd.objectPath = defaultPath(pd.cfg.SmoothWeight)
	pd.rotationPath = defaultPath(pd.cfg.SmoothWeight)
	pd.ease = keyframe.MustNewCurve(
		keyframe.K(0, pd.cfg.DefaultEaseValue),
		keyframe.K(1, pd.cfg.DefaultEaseValue),
	)
	pd.tilt = keyframe.MustNewCurve(keyframe.K(0, 0), keyframe.K(1, 0))
	pd.tools = []toolState{{ease: true, tilt: true}, {ease: true, tilt: true}}
}

func defaultPath(weight float64) *spatial.Path {
	p := spatial.NewPath()
	if _, err := p.CreateNode(0, animationpath.V(0, 0, 0)); err != nil {
		panic(err)
	}
	if _, err := p.CreateNode(1, animationpath.V(1, 0, 1)); err != nil {
		panic(err)
	}
	p.SmoothAllNodes(weight)
	return p
}

// consistent checks an internal invariant. A violation is traced and
// returned as ErrInconsistent, or raised as a panic if
// Config.PanicOnInconsistency is set.
func (pd *PathData) consistent(cond bool, format string, args ...interface{}) error {
	if animationpath.Assert(cond, format, args...) {
		return nil
	}
	err := fmt.Errorf("%w: %s", ErrInconsistent, fmt.Sprintf(format, args...))
	if pd.cfg.PanicOnInconsistency {
		panic(err)
	}
	return err
}

// === Queries ===============================================================

// NodesNo returns the number of object path nodes.
func (pd *PathData) NodesNo() int {
	return pd.objectPath.N()
}

// NodePosition returns the position of node i.
func (pd *PathData) NodePosition(i int) (mgl64.Vec3, error) {
	return pd.objectPath.VectorAtKey(i)
}

// NodePositions returns the positions of all nodes.
func (pd *PathData) NodePositions() []mgl64.Vec3 {
	return pd.objectPath.Positions()
}

// NodeTimestamp returns the timestamp of node i.
func (pd *PathData) NodeTimestamp(i int) (float64, error) {
	return pd.objectPath.TimeAtKey(i)
}

// PathTimestamps returns the timestamps of all nodes.
func (pd *PathData) PathTimestamps() []float64 {
	return pd.objectPath.Timestamps()
}

// NodeIndexAtTime returns the index of the node at timestamp t, or
// animationpath.NotFound.
func (pd *PathData) NodeIndexAtTime(t float64) int {
	return pd.objectPath.NodeIndexAtTime(t)
}

// NodeAtTimeExists is a predicate: is there a node at timestamp t?
func (pd *PathData) NodeAtTimeExists(t float64) bool {
	return pd.objectPath.NodeAtTimeExists(t)
}

// PathLinearLength returns the length of the polyline through all nodes.
func (pd *PathData) PathLinearLength() float64 {
	return pd.objectPath.LinearLength()
}

// PathLength estimates the arc length of the object path. A sampling < 1
// selects Config.PathLengthSampling.
func (pd *PathData) PathLength(sampling int) float64 {
	return pd.objectPath.Length(pd.sampling(sampling))
}

// VectorAtTime evaluates the object path at time t.
func (pd *PathData) VectorAtTime(t float64) mgl64.Vec3 {
	return pd.objectPath.VectorAtTime(t)
}

// SampleObjectPath returns n points evenly spaced in time along the object
// path.
func (pd *PathData) SampleObjectPath(n int) iter.Seq[mgl64.Vec3] {
	return pd.objectPath.SamplePoints(n)
}

// ObjectPath returns a copy of the object path.
func (pd *PathData) ObjectPath() *spatial.Path {
	return pd.objectPath.Clone()
}

// EaseToolState returns, per node, whether the ease tool is enabled.
func (pd *PathData) EaseToolState() []bool {
	s := make([]bool, len(pd.tools))
	for i, ts := range pd.tools {
		s[i] = ts.ease
	}
	return s
}

// TiltToolState returns, per node, whether the tilt tool is enabled.
func (pd *PathData) TiltToolState() []bool {
	s := make([]bool, len(pd.tools))
	for i, ts := range pd.tools {
		s[i] = ts.tilt
	}
	return s
}

func (pd *PathData) sampling(s int) int {
	if s < 1 {
		return pd.cfg.PathLengthSampling
	}
	return s
}

// Footprint returns the object path projected onto the ground (XZ) plane,
// sampled with n points and closed to a cycle. An n < 1 selects
// Config.PathLengthSampling.
func (pd *PathData) Footprint(n int) *polygon.Polygon {
	return polygon.Footprint(pd.SampleObjectPath(pd.sampling(n)))
}

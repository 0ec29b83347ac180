package pathdata

import (
	"fmt"
	"iter"

	"github.com/bartlomiejwolk/animationpath"
	"github.com/bartlomiejwolk/animationpath/spatial"
	"github.com/go-gl/mathgl/mgl64"
)

// The rotation path holds one look-at point per object path node. It
// follows the object path in one direction only: its timestamps are
// derived from the object path, its positions are edited independently.

// UpdateRotationPathWithAddedKeys creates a rotation node for every object
// path timestamp the rotation path is missing. The position of a new
// rotation node is taken from the rotation path as it was, not from the
// object path. Returns the number of nodes created.
func (pd *PathData) UpdateRotationPathWithAddedKeys() int {
	n := 0
	for _, t := range pd.objectPath.Timestamps() {
		if pd.rotationPath.NodeAtTimeExists(t) {
			continue
		}
		if _, err := pd.rotationPath.AddNodeAtTime(t); err != nil {
			tracer().Errorf("cannot add rotation node at t=%g: %v", t, err)
			continue
		}
		n++
	}
	return n
}

// UpdateRotationPathWithRemovedKeys removes the first rotation node whose
// timestamp does not exist in the object path. It removes at most one node
// per call and reports whether it did; callers wanting a fully reconciled
// rotation path call it until it returns false.
func (pd *PathData) UpdateRotationPathWithRemovedKeys() bool {
	ts := pd.objectPath.Timestamps()
	for i, t := range pd.rotationPath.Timestamps() {
		if animationpath.IndexOf(ts, t) != animationpath.NotFound {
			continue
		}
		if err := pd.rotationPath.RemoveNode(i); err != nil {
			tracer().Errorf("cannot remove rotation node %d: %v", i, err)
			return false
		}
		tracer().Debugf("removed stale rotation node %d at t=%.4g", i, t)
		return true
	}
	return false
}

// UpdateRotationPathTimestamps moves the interior rotation nodes to the
// timestamps of the corresponding object path nodes. Both paths must have
// the same number of nodes.
func (pd *PathData) UpdateRotationPathTimestamps() error {
	ts := pd.objectPath.Timestamps()
	if pd.rotationPath.N() != len(ts) {
		return fmt.Errorf("%w: %d rotation nodes for %d path nodes",
			ErrRotationMismatch, pd.rotationPath.N(), len(ts))
	}
	if len(ts) < 3 {
		return nil
	}
	return pd.rotationPath.SetTimestamps(1, ts[1:len(ts)-1])
}

// syncRotation reconciles the rotation path with the object path after a
// structural change, if configured to do so.
func (pd *PathData) syncRotation() error {
	if !pd.cfg.SyncRotationPath {
		return nil
	}
	for pd.UpdateRotationPathWithRemovedKeys() {
	}
	pd.UpdateRotationPathWithAddedKeys()
	if err := pd.UpdateRotationPathTimestamps(); err != nil {
		return pd.consistent(false, "%v", err)
	}
	return nil
}

// UpdateRotationPointAtTimestamp moves the rotation node at timestamp t to
// position pos.
func (pd *PathData) UpdateRotationPointAtTimestamp(t float64, pos mgl64.Vec3) error {
	if err := pd.rotationPath.MovePointAtTime(t, pos); err != nil {
		return err
	}
	pd.notify(RotationPointPositionChanged)
	return nil
}

// OffsetRotationPathPositions translates every rotation node by delta.
func (pd *PathData) OffsetRotationPathPositions(delta mgl64.Vec3) {
	pd.rotationPath.Offset(delta)
	pd.notify(RotationPointPositionChanged)
}

// RotationAtTime evaluates the rotation path at time t, i.e. returns the
// point the animated object looks at.
func (pd *PathData) RotationAtTime(t float64) mgl64.Vec3 {
	return pd.rotationPath.VectorAtTime(t)
}

// RotationPointPosition returns the position of rotation node i.
func (pd *PathData) RotationPointPosition(i int) (mgl64.Vec3, error) {
	return pd.rotationPath.VectorAtKey(i)
}

// RotationPointPositions returns the positions of all rotation nodes.
func (pd *PathData) RotationPointPositions() []mgl64.Vec3 {
	return pd.rotationPath.Positions()
}

// RotationPathNodesNo returns the number of rotation nodes.
func (pd *PathData) RotationPathNodesNo() int {
	return pd.rotationPath.N()
}

// RotationPathTimestamps returns the timestamps of all rotation nodes.
func (pd *PathData) RotationPathTimestamps() []float64 {
	return pd.rotationPath.Timestamps()
}

// SampleRotationPath returns n points evenly spaced in time along the
// rotation path.
func (pd *PathData) SampleRotationPath(n int) iter.Seq[mgl64.Vec3] {
	return pd.rotationPath.SamplePoints(n)
}

// RotationPath returns a copy of the rotation path.
func (pd *PathData) RotationPath() *spatial.Path {
	return pd.rotationPath.Clone()
}

// SmoothRotationPathNodeTangents smoothes the tangents of rotation node i
// with the configured weight.
func (pd *PathData) SmoothRotationPathNodeTangents(i int) error {
	return pd.rotationPath.SmoothNodeTangents(i, pd.cfg.SmoothWeight)
}

// SmoothAllRotationPathNodes smoothes the tangents of every rotation node
// with the configured weight.
func (pd *PathData) SmoothAllRotationPathNodes() {
	pd.rotationPath.SmoothAllNodes(pd.cfg.SmoothWeight)
}

// SetRotationPathTangentsToLinear turns every segment of the rotation path
// into a straight line.
func (pd *PathData) SetRotationPathTangentsToLinear() {
	pd.rotationPath.SetLinear()
}

// OffsetRotationPathNodeTangents adds delta to both tangents of rotation
// node i.
func (pd *PathData) OffsetRotationPathNodeTangents(i int, delta mgl64.Vec3) error {
	if err := pd.rotationPath.OffsetNodeTangents(i, delta); err != nil {
		return err
	}
	pd.notify(NodeTangentsChanged)
	return nil
}

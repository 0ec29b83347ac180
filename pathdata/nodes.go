package pathdata

import (
	"fmt"
	"slices"

	"github.com/bartlomiejwolk/animationpath"
	"github.com/bartlomiejwolk/animationpath/spatial"
	"github.com/go-gl/mathgl/mgl64"
)

// CreateNewNode creates an object path node at timestamp t with position
// pos and returns its index. Both tools start disabled for the new node,
// unless it becomes the first or the last one.
func (pd *PathData) CreateNewNode(t float64, pos mgl64.Vec3) (int, error) {
	if err := pd.consistent(len(pd.tools) == pd.NodesNo(),
		"%d tool records for %d nodes", len(pd.tools), pd.NodesNo()); err != nil {
		return animationpath.NotFound, err
	}
	i, err := pd.objectPath.CreateNode(t, pos)
	if err != nil {
		return i, err
	}
	if err := pd.objectPath.SmoothNodeTangents(i, pd.cfg.SmoothWeight); err != nil {
		return i, err
	}
	return i, pd.added(i, t)
}

// CreateNodeAtTime splits the object path at timestamp t. The new node lies
// on the path as it was, see spatial.Path.AddNodeAtTime.
func (pd *PathData) CreateNodeAtTime(t float64) (int, error) {
	if err := pd.consistent(len(pd.tools) == pd.NodesNo(),
		"%d tool records for %d nodes", len(pd.tools), pd.NodesNo()); err != nil {
		return animationpath.NotFound, err
	}
	i, err := pd.objectPath.AddNodeAtTime(t)
	if err != nil {
		return i, err
	}
	return i, pd.added(i, t)
}

func (pd *PathData) added(i int, t float64) error {
	err := pd.nodeAdded(i)
	pd.notifyNode(NodeAdded, i, t)
	return err
}

// nodeAdded inserts the tool record for the new node i and reconciles the
// dependent structures.
func (pd *PathData) nodeAdded(i int) error {
	pd.tools = slices.Insert(pd.tools, i, toolState{})
	if err := pd.consistent(len(pd.tools) == pd.NodesNo(),
		"%d tool records for %d nodes", len(pd.tools), pd.NodesNo()); err != nil {
		return err
	}
	if err := pd.ensureEndpointTools(); err != nil {
		return err
	}
	return pd.syncRotation()
}

// RemoveNode removes node i from the object path, together with its tool
// record and its ease and tilt keys. If an endpoint is removed, its
// neighbour becomes an endpoint and gets both tools enabled.
func (pd *PathData) RemoveNode(i int) error {
	t, err := pd.objectPath.TimeAtKey(i)
	if err != nil {
		return err
	}
	if err := pd.consistent(len(pd.tools) == pd.NodesNo(),
		"%d tool records for %d nodes", len(pd.tools), pd.NodesNo()); err != nil {
		return err
	}
	state := pd.tools[i]
	if err := pd.objectPath.RemoveNode(i); err != nil {
		return err
	}
	err = pd.nodeRemoved(i, t, state)
	pd.notifyNode(NodeRemoved, i, t)
	return err
}

// nodeRemoved drops the tool record of node i, which had timestamp t and
// tool state state, and reconciles the dependent structures.
func (pd *PathData) nodeRemoved(i int, t float64, state toolState) error {
	pd.tools = slices.Delete(pd.tools, i, i+1)
	for _, tl := range allTools {
		if !state.enabled(tl) {
			continue
		}
		c := pd.curve(tl)
		k := c.IndexAt(t)
		if err := pd.consistent(k >= 0, "no %s key for removed node at t=%g", tl, t); err != nil {
			return err
		}
		if err := c.RemoveKey(k); err != nil {
			return err
		}
	}
	if err := pd.ensureEndpointTools(); err != nil {
		return err
	}
	for _, tl := range allTools {
		n, l := pd.enabledCount(tl), pd.curve(tl).Len()
		if err := pd.consistent(n == l, "%s curve has %d keys for %d enabled nodes", tl, l, n); err != nil {
			return err
		}
	}
	return pd.syncRotation()
}

// RemoveAllNodes removes every node, one at a time from the front.
func (pd *PathData) RemoveAllNodes() error {
	for pd.NodesNo() > 0 {
		if err := pd.RemoveNode(0); err != nil {
			return err
		}
	}
	return nil
}

// MoveNodeToPosition changes the position of node i.
func (pd *PathData) MoveNodeToPosition(i int, pos mgl64.Vec3) error {
	if err := pd.objectPath.MovePointToPosition(i, pos); err != nil {
		return err
	}
	pd.notify(NodePositionChanged)
	return nil
}

// OffsetNodePositions translates every node of the object path by delta.
func (pd *PathData) OffsetNodePositions(delta mgl64.Vec3) {
	pd.objectPath.Offset(delta)
	pd.notify(NodePositionChanged)
}

// ChangeNodeTimestamp retimes interior node i to t. The new timestamp has
// to stay strictly between the timestamps of the neighbour nodes. First and
// last node cannot be retimed, they define start and end of the animation.
func (pd *PathData) ChangeNodeTimestamp(i int, t float64) error {
	if _, err := pd.objectPath.TimeAtKey(i); err != nil {
		return err
	}
	if i == 0 || i == pd.NodesNo()-1 {
		return fmt.Errorf("%w: cannot retime node %d", ErrEndpoint, i)
	}
	if err := pd.objectPath.ChangeNodeTimestamp(i, t); err != nil {
		return err
	}
	err := pd.nodeTimeChanged()
	pd.notify(NodeTimeChanged)
	return err
}

// DistributeTimestamps retimes the interior nodes so that the object moves
// along the path with constant speed, see spatial.DistributeTimestamps.
// A sampling < 1 selects Config.PathLengthSampling. It returns the number
// of nodes retimed, which may be less than the number of interior nodes.
func (pd *PathData) DistributeTimestamps(sampling int) (int, error) {
	n, err := spatial.DistributeTimestamps(pd.objectPath, pd.sampling(sampling))
	if err != nil {
		return n, err
	}
	err = pd.nodeTimeChanged()
	pd.notify(NodeTimeChanged)
	return n, err
}

// nodeTimeChanged moves tool keys and rotation nodes to the current node
// timestamps.
func (pd *PathData) nodeTimeChanged() error {
	for _, tl := range allTools {
		if err := pd.retimeTool(tl); err != nil {
			return err
		}
	}
	if !pd.cfg.SyncRotationPath {
		return nil
	}
	if err := pd.UpdateRotationPathTimestamps(); err != nil {
		return pd.consistent(false, "%v", err)
	}
	return nil
}

// === Tangents ==============================================================

// SetPathTangentsToLinear turns every segment of the object path into a
// straight line.
func (pd *PathData) SetPathTangentsToLinear() {
	pd.objectPath.SetLinear()
	pd.notify(NodeTangentsChanged)
}

// SetNodeTangents overwrites in- and out-tangent of node i.
func (pd *PathData) SetNodeTangents(i int, in, out mgl64.Vec3) error {
	if err := pd.objectPath.SetNodeTangents(i, in, out); err != nil {
		return err
	}
	pd.notify(NodeTangentsChanged)
	return nil
}

// SmoothPathNodeTangents smoothes the tangents of node i with the
// configured weight.
func (pd *PathData) SmoothPathNodeTangents(i int) error {
	if err := pd.objectPath.SmoothNodeTangents(i, pd.cfg.SmoothWeight); err != nil {
		return err
	}
	pd.notify(NodeTangentsChanged)
	return nil
}

// SmoothAllPathNodeTangents smoothes the tangents of every node with the
// configured weight.
func (pd *PathData) SmoothAllPathNodeTangents() {
	pd.objectPath.SmoothAllNodes(pd.cfg.SmoothWeight)
	pd.notify(NodeTangentsChanged)
}

// OffsetPathNodeTangents adds delta to both tangents of node i.
func (pd *PathData) OffsetPathNodeTangents(i int, delta mgl64.Vec3) error {
	if err := pd.objectPath.OffsetNodeTangents(i, delta); err != nil {
		return err
	}
	pd.notify(NodeTangentsChanged)
	return nil
}

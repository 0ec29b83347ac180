package pathdata

import (
	"fmt"

	"github.com/bartlomiejwolk/animationpath"
	"github.com/bartlomiejwolk/animationpath/keyframe"
	"github.com/bartlomiejwolk/animationpath/spatial"
)

// tool selects one of the scalar tool curves.
type tool int

const (
	easeTool tool = iota
	tiltTool
)

var allTools = [...]tool{easeTool, tiltTool}

func (tl tool) String() string {
	if tl == easeTool {
		return "ease"
	}
	return "tilt"
}

func (ts toolState) enabled(tl tool) bool {
	if tl == easeTool {
		return ts.ease
	}
	return ts.tilt
}

func (ts *toolState) set(tl tool, on bool) {
	if tl == easeTool {
		ts.ease = on
	} else {
		ts.tilt = on
	}
}

func (pd *PathData) curve(tl tool) *keyframe.Curve {
	if tl == easeTool {
		return pd.ease
	}
	return pd.tilt
}

func (pd *PathData) setCurve(tl tool, c *keyframe.Curve) {
	if tl == easeTool {
		pd.ease = c
	} else {
		pd.tilt = c
	}
}

// toolTimestamps filters the node timestamps by the toggles of tl.
func (pd *PathData) toolTimestamps(tl tool) []float64 {
	all := pd.objectPath.Timestamps()
	ts := make([]float64, 0, len(all))
	for i, t := range all {
		if i < len(pd.tools) && pd.tools[i].enabled(tl) {
			ts = append(ts, t)
		}
	}
	return ts
}

func (pd *PathData) enabledCount(tl tool) int {
	n := 0
	for _, ts := range pd.tools {
		if ts.enabled(tl) {
			n++
		}
	}
	return n
}

// EasedNodeTimestamps returns the timestamps of the nodes with the ease tool
// enabled.
func (pd *PathData) EasedNodeTimestamps() []float64 {
	return pd.toolTimestamps(easeTool)
}

// TiltedNodeTimestamps returns the timestamps of the nodes with the tilt
// tool enabled.
func (pd *PathData) TiltedNodeTimestamps() []float64 {
	return pd.toolTimestamps(tiltTool)
}

// === Toggles ===============================================================

func (pd *PathData) defaultValue(tl tool) float64 {
	if tl == easeTool {
		return pd.cfg.DefaultEaseValue
	}
	return pd.cfg.DefaultTiltValue
}

// enableTool adds a key for node i to the curve of tl. The key takes the
// value the curve has at the node's timestamp, so the curve keeps its shape
// as far as possible. The first key of an empty curve takes the configured
// default value.
func (pd *PathData) enableTool(tl tool, i int) error {
	t, err := pd.objectPath.TimeAtKey(i)
	if err != nil {
		return err
	}
	if pd.tools[i].enabled(tl) {
		return nil
	}
	c := pd.curve(tl)
	v := pd.defaultValue(tl)
	if c.Len() > 0 {
		v = c.Evaluate(t)
	}
	if _, err := c.AddValue(t, v); err != nil {
		return pd.consistent(false, "%s curve has a key at t=%g for a disabled node: %v", tl, t, err)
	}
	pd.tools[i].set(tl, true)
	tracer().Debugf("%s enabled for node %d", tl, i)
	return nil
}

func (pd *PathData) disableTool(tl tool, i int) error {
	t, err := pd.objectPath.TimeAtKey(i)
	if err != nil {
		return err
	}
	if i == 0 || i == pd.NodesNo()-1 {
		return fmt.Errorf("%w: cannot disable %s for node %d", ErrEndpoint, tl, i)
	}
	if !pd.tools[i].enabled(tl) {
		return nil
	}
	c := pd.curve(tl)
	k := c.IndexAt(t)
	if err := pd.consistent(k != animationpath.NotFound, "%s curve has no key for node %d at t=%g", tl, i, t); err != nil {
		return err
	}
	if err := c.RemoveKey(k); err != nil {
		return err
	}
	pd.tools[i].set(tl, false)
	tracer().Debugf("%s disabled for node %d", tl, i)
	return nil
}

// ensureEndpointTools enables both tools for the first and the last node.
func (pd *PathData) ensureEndpointTools() error {
	n := pd.NodesNo()
	if n == 0 {
		return nil
	}
	for _, i := range []int{0, n - 1} {
		for _, tl := range allTools {
			if err := pd.enableTool(tl, i); err != nil {
				return err
			}
		}
	}
	return nil
}

// retimeTool moves the interior keys of the curve of tl to the timestamps
// of their nodes. The first and the last key stay where they are.
func (pd *PathData) retimeTool(tl tool) error {
	ts := pd.toolTimestamps(tl)
	c := pd.curve(tl)
	if err := pd.consistent(len(ts) == c.Len(), "%s curve has %d keys for %d enabled nodes", tl, c.Len(), len(ts)); err != nil {
		return err
	}
	if len(ts) < 3 {
		return nil
	}
	if err := c.SetTimes(1, ts[1:len(ts)-1]); err != nil {
		return pd.consistent(false, "cannot retime %s curve: %v", tl, err)
	}
	return nil
}

// EnableEase enables the ease tool for node i, adding an ease key at the
// node's timestamp.
func (pd *PathData) EnableEase(i int) error {
	return pd.enableTool(easeTool, i)
}

// DisableEase disables the ease tool for node i, removing its ease key.
// The tool cannot be disabled for the first and the last node.
func (pd *PathData) DisableEase(i int) error {
	return pd.disableTool(easeTool, i)
}

// EnableTilt enables the tilt tool for node i, adding a tilt key at the
// node's timestamp.
func (pd *PathData) EnableTilt(i int) error {
	if err := pd.enableTool(tiltTool, i); err != nil {
		return err
	}
	pd.notify(NodeTiltChanged)
	return nil
}

// DisableTilt disables the tilt tool for node i, removing its tilt key.
// The tool cannot be disabled for the first and the last node.
func (pd *PathData) DisableTilt(i int) error {
	if err := pd.disableTool(tiltTool, i); err != nil {
		return err
	}
	pd.notify(NodeTiltChanged)
	return nil
}

// AddEaseKey adds an ease key at timestamp t, which has to be the timestamp
// of a node. Same as EnableEase for that node.
func (pd *PathData) AddEaseKey(t float64) error {
	i, err := pd.nodeAt(t)
	if err != nil {
		return err
	}
	return pd.EnableEase(i)
}

// RemoveEaseKey removes the ease key at timestamp t. Same as DisableEase for
// the node at t.
func (pd *PathData) RemoveEaseKey(t float64) error {
	i, err := pd.nodeAt(t)
	if err != nil {
		return err
	}
	return pd.DisableEase(i)
}

// AddTiltKey adds a tilt key at timestamp t, which has to be the timestamp
// of a node. Same as EnableTilt for that node.
func (pd *PathData) AddTiltKey(t float64) error {
	i, err := pd.nodeAt(t)
	if err != nil {
		return err
	}
	return pd.EnableTilt(i)
}

// RemoveTiltKey removes the tilt key at timestamp t. Same as DisableTilt for
// the node at t.
func (pd *PathData) RemoveTiltKey(t float64) error {
	i, err := pd.nodeAt(t)
	if err != nil {
		return err
	}
	return pd.DisableTilt(i)
}

func (pd *PathData) nodeAt(t float64) (int, error) {
	i := pd.objectPath.NodeIndexAtTime(t)
	if i == animationpath.NotFound {
		return i, fmt.Errorf("%w: t=%g", spatial.ErrNodeNotFound, t)
	}
	return i, nil
}

// === Values ================================================================

func (pd *PathData) updateValue(tl tool, keyIndex int, v float64) error {
	c := pd.curve(tl)
	if err := c.SetValue(keyIndex, v); err != nil {
		return err
	}
	c.EaseExtremes()
	tracer().Debugf("%s key %d set to %g", tl, keyIndex, v)
	return nil
}

// UpdateEaseValue changes the value of the ease key at keyIndex. Afterwards
// the curve is eased at its extremes.
func (pd *PathData) UpdateEaseValue(keyIndex int, v float64) error {
	return pd.updateValue(easeTool, keyIndex, v)
}

// UpdateTiltValue changes the value of the tilt key at keyIndex. Afterwards
// the curve is eased at its extremes.
func (pd *PathData) UpdateTiltValue(keyIndex int, v float64) error {
	if err := pd.updateValue(tiltTool, keyIndex, v); err != nil {
		return err
	}
	pd.notify(NodeTiltChanged)
	return nil
}

// OffsetEaseValues adds delta to every ease value.
func (pd *PathData) OffsetEaseValues(delta float64) {
	pd.ease.OffsetValues(delta)
}

// MultiplyEaseValues multiplies every ease value by m.
func (pd *PathData) MultiplyEaseValues(m float64) {
	pd.ease.MultiplyValues(m)
}

// OffsetTiltValues adds delta to every tilt value.
func (pd *PathData) OffsetTiltValues(delta float64) {
	pd.tilt.OffsetValues(delta)
	pd.notify(NodeTiltChanged)
}

// MultiplyTiltValues multiplies every tilt value by m.
func (pd *PathData) MultiplyTiltValues(m float64) {
	pd.tilt.MultiplyValues(m)
	pd.notify(NodeTiltChanged)
}

// nodeValue evaluates the curve of tl at the timestamp of node i.
func (pd *PathData) nodeValue(tl tool, i int) (float64, error) {
	t, err := pd.objectPath.TimeAtKey(i)
	if err != nil {
		return 0, err
	}
	return pd.curve(tl).Evaluate(t), nil
}

// NodeEaseValue returns the ease value at the timestamp of node i.
func (pd *PathData) NodeEaseValue(i int) (float64, error) {
	return pd.nodeValue(easeTool, i)
}

// NodeTiltValue returns the tilt value at the timestamp of node i.
func (pd *PathData) NodeTiltValue(i int) (float64, error) {
	return pd.nodeValue(tiltTool, i)
}

// EaseValueAtTime evaluates the ease curve at time t.
func (pd *PathData) EaseValueAtTime(t float64) float64 {
	return pd.ease.Evaluate(t)
}

// TiltValueAtTime evaluates the tilt curve at time t.
func (pd *PathData) TiltValueAtTime(t float64) float64 {
	return pd.tilt.Evaluate(t)
}

// EaseValues returns the values of all ease keys.
func (pd *PathData) EaseValues() []float64 {
	return pd.ease.Values()
}

// TiltValues returns the values of all tilt keys.
func (pd *PathData) TiltValues() []float64 {
	return pd.tilt.Values()
}

// EaseCurve returns a copy of the ease curve.
func (pd *PathData) EaseCurve() *keyframe.Curve {
	return pd.ease.Clone()
}

// TiltCurve returns a copy of the tilt curve.
func (pd *PathData) TiltCurve() *keyframe.Curve {
	return pd.tilt.Clone()
}

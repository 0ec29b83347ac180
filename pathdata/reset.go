package pathdata

import (
	"github.com/bartlomiejwolk/animationpath/keyframe"
	"github.com/bartlomiejwolk/animationpath/spatial"
)

// ResetPath drops all nodes, curves and tool records and restores the
// state New creates.
func (pd *PathData) ResetPath() {
	pd.assignDefaults()
	tracer().Infof("path reset")
	pd.notify(PathReset)
}

// ResetRotationPath rebuilds the rotation path with one node per object
// path node, at the same timestamp and position.
func (pd *PathData) ResetRotationPath() error {
	p := spatial.NewPath()
	ts := pd.objectPath.Timestamps()
	for i, pos := range pd.objectPath.Positions() {
		if _, err := p.CreateNode(ts[i], pos); err != nil {
			return err
		}
	}
	p.SmoothAllNodes(pd.cfg.SmoothWeight)
	pd.rotationPath = p
	tracer().Infof("rotation path reset to %d nodes", p.N())
	pd.notify(RotationPathReset)
	return nil
}

// ResetEaseCurve rebuilds the ease curve with Config.DefaultEaseValue at
// every node the ease tool is enabled for. First and last node get the
// tool enabled.
func (pd *PathData) ResetEaseCurve() error {
	if err := pd.resetTool(easeTool, pd.cfg.DefaultEaseValue); err != nil {
		return err
	}
	pd.notify(EaseCurveReset)
	return nil
}

// ResetTiltCurve rebuilds the tilt curve with Config.DefaultTiltValue at
// every node the tilt tool is enabled for. First and last node get the
// tool enabled.
func (pd *PathData) ResetTiltCurve() error {
	if err := pd.resetTool(tiltTool, pd.cfg.DefaultTiltValue); err != nil {
		return err
	}
	pd.notify(TiltCurveReset)
	return nil
}

func (pd *PathData) resetTool(tl tool, v float64) error {
	n := pd.NodesNo()
	if err := pd.consistent(len(pd.tools) == n, "%d tool records for %d nodes", len(pd.tools), n); err != nil {
		return err
	}
	if n > 0 {
		pd.tools[0].set(tl, true)
		pd.tools[n-1].set(tl, true)
	}
	keys := make([]keyframe.Keyframe, 0, n)
	for _, t := range pd.toolTimestamps(tl) {
		keys = append(keys, keyframe.K(t, v))
	}
	c, err := keyframe.FromSorted(keys)
	if err != nil {
		return pd.consistent(false, "cannot rebuild %s curve: %v", tl, err)
	}
	pd.setCurve(tl, c)
	tracer().Infof("%s curve reset to %d keys of value %g", tl, c.Len(), v)
	return nil
}

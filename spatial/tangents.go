package spatial

import (
	"fmt"

	"github.com/bartlomiejwolk/animationpath/keyframe"
	"github.com/go-gl/mathgl/mgl64"
)

// SmoothNodeTangents smoothes in- and out-tangents of node i on every axis.
// See keyframe.Curve.SmoothTangents for the meaning of weight.
func (p *Path) SmoothNodeTangents(i int, weight float64) error {
	if err := p.checkIndex(i); err != nil {
		return err
	}
	return p.withAxes(func(_ int, c *keyframe.Curve) error {
		return c.SmoothTangents(i, weight)
	})
}

// SmoothAllNodes smoothes the tangents of every node.
func (p *Path) SmoothAllNodes(weight float64) {
	_ = p.withAxes(func(_ int, c *keyframe.Curve) error {
		c.SmoothAll(weight)
		return nil
	})
}

// OffsetNodeTangents adds delta to both tangents of node i, one component
// per axis.
func (p *Path) OffsetNodeTangents(i int, delta mgl64.Vec3) error {
	if err := p.checkIndex(i); err != nil {
		return err
	}
	return p.withAxes(func(axis int, c *keyframe.Curve) error {
		return c.OffsetTangents(i, delta[axis])
	})
}

// SetNodeTangents overwrites in- and out-tangent of node i.
func (p *Path) SetNodeTangents(i int, in, out mgl64.Vec3) error {
	if err := p.checkIndex(i); err != nil {
		return err
	}
	p.nodes[i].in = in
	p.nodes[i].out = out
	return nil
}

// SetLinear turns every segment of the path into a straight line.
func (p *Path) SetLinear() {
	_ = p.withAxes(func(_ int, c *keyframe.Curve) error {
		c.SetLinear()
		return nil
	})
}

func (p *Path) smoothNode(i int, weight float64) {
	_ = p.SmoothNodeTangents(i, weight)
}

// withAxes applies a tangent operation to the projected curve of each axis
// and writes the tangents back. Nothing is written unless op succeeds on
// all three axes. op must not add, remove or retime keys.
func (p *Path) withAxes(op func(axis int, c *keyframe.Curve) error) error {
	var curves [3]*keyframe.Curve
	for axis := X; axis <= Z; axis++ {
		c := p.Curve(axis)
		if c.Len() != len(p.nodes) {
			return fmt.Errorf("%w: axis %d projects %d of %d nodes", ErrTimestampOrder, axis, c.Len(), len(p.nodes))
		}
		if err := op(axis, c); err != nil {
			return err
		}
		curves[axis] = c
	}
	for axis, c := range curves {
		for i, k := range c.Keys() {
			p.nodes[i].in[axis] = k.InTangent
			p.nodes[i].out[axis] = k.OutTangent
		}
	}
	return nil
}

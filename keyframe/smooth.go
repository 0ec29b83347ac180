package keyframe

// SmoothTangents sets in- and out-tangent of key i to the slope between its
// immediate neighbours, scaled by (1-weight). Weight 0 gives the fully
// averaged tangent, weight 1 a flat one; weight is clamped to [0,1].
// End keys use the slope towards their single neighbour, a lone key gets a
// flat tangent.
func (c *Curve) SmoothTangents(i int, weight float64) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	m := c.neighbourSlope(i) * (1 - clampWeight(weight))
	c.keys[i].InTangent = m
	c.keys[i].OutTangent = m
	return nil
}

// SmoothAll smoothes the tangents of every key. The result depends on key
// times and values only, so applying it twice does not change anything.
func (c *Curve) SmoothAll(weight float64) {
	for i := range c.keys {
		m := c.neighbourSlope(i) * (1 - clampWeight(weight))
		c.keys[i].InTangent = m
		c.keys[i].OutTangent = m
	}
}

// EaseExtremes flattens the departure from the first key and the approach
// to the last key, so the curve does not overshoot at its boundaries.
func (c *Curve) EaseExtremes() {
	n := len(c.keys)
	if n == 0 {
		return
	}
	c.keys[0].OutTangent = 0
	c.keys[n-1].InTangent = 0
}

// OffsetTangents adds delta to both tangents of key i.
func (c *Curve) OffsetTangents(i int, delta float64) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.keys[i].InTangent += delta
	c.keys[i].OutTangent += delta
	return nil
}

// SetLinear sets every tangent to the slope of the adjacent straight
// segment, turning the curve into a polyline through its keys.
func (c *Curve) SetLinear() {
	n := len(c.keys)
	for i := 0; i < n; i++ {
		if i > 0 {
			c.keys[i].InTangent = slope(c.keys[i-1], c.keys[i])
		} else {
			c.keys[i].InTangent = 0
		}
		if i < n-1 {
			c.keys[i].OutTangent = slope(c.keys[i], c.keys[i+1])
		} else {
			c.keys[i].OutTangent = 0
		}
	}
}

func (c *Curve) neighbourSlope(i int) float64 {
	n := len(c.keys)
	switch {
	case n < 2:
		return 0
	case i == 0:
		return slope(c.keys[0], c.keys[1])
	case i == n-1:
		return slope(c.keys[n-2], c.keys[n-1])
	}
	return slope(c.keys[i-1], c.keys[i+1])
}

func slope(k0, k1 Keyframe) float64 {
	dt := k1.Time - k0.Time
	if dt == 0 {
		return 0
	}
	return (k1.Value - k0.Value) / dt
}

func clampWeight(w float64) float64 {
	if w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}

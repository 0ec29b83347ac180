package keyframe

// Evaluate returns the value of the curve at time t.
//
// Between two keys the curve is a cubic Hermite segment, shaped by the
// out-tangent of the left key and the in-tangent of the right key. Outside
// the key range the curve is clamped to the first or last key value.
// An empty curve evaluates to 0.
func (c *Curve) Evaluate(t float64) float64 {
	n := len(c.keys)
	if n == 0 {
		return 0
	}
	if t <= c.keys[0].Time {
		return c.keys[0].Value
	}
	if t >= c.keys[n-1].Time {
		return c.keys[n-1].Value
	}
	k0, k1 := c.segment(t)
	return Hermite(k0, k1, t)
}

// Slope returns the first derivative of the curve at time t. Outside the
// key range the curve is constant, hence the slope is 0.
func (c *Curve) Slope(t float64) float64 {
	n := len(c.keys)
	if n < 2 || t < c.keys[0].Time || t > c.keys[n-1].Time {
		return 0
	}
	k0, k1 := c.segment(t)
	return HermiteSlope(k0, k1, t)
}

// segment finds the keys enclosing t. Requires at least one key left of t.
func (c *Curve) segment(t float64) (Keyframe, Keyframe) {
	i := c.search(t)
	if i == 0 {
		i = 1
	}
	if i >= len(c.keys) {
		i = len(c.keys) - 1
	}
	return c.keys[i-1], c.keys[i]
}

// Hermite interpolates the segment between two adjacent keys at time t,
// which should lie in [k0.Time, k1.Time].
//
//	h00 = 2s³ - 3s² + 1    h10 = s³ - 2s² + s
//	h01 = -2s³ + 3s²       h11 = s³ - s²
func Hermite(k0, k1 Keyframe, t float64) float64 {
	dt := k1.Time - k0.Time
	if dt <= 0 {
		return k0.Value
	}
	s := (t - k0.Time) / dt
	s2 := s * s
	s3 := s2 * s
	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2
	return h00*k0.Value + h10*dt*k0.OutTangent + h01*k1.Value + h11*dt*k1.InTangent
}

// HermiteSlope is the derivative of Hermite with respect to t.
func HermiteSlope(k0, k1 Keyframe, t float64) float64 {
	dt := k1.Time - k0.Time
	if dt <= 0 {
		return 0
	}
	s := (t - k0.Time) / dt
	s2 := s * s
	d00 := 6*s2 - 6*s
	d10 := 3*s2 - 4*s + 1
	d01 := -6*s2 + 6*s
	d11 := 3*s2 - 2*s
	return (d00*k0.Value+d01*k1.Value)/dt + d10*k0.OutTangent + d11*k1.InTangent
}

// Package keyframe implements ordered keyframe curves with Hermite
// interpolation and tangent smoothing.
//
// A Curve holds keyframes sorted by strictly increasing time. Two keys
// closer than animationpath.Epsilon are considered to share a timestamp,
// which a curve never allows. The curve does not de-duplicate on its own:
// clients replacing a key have to remove it first, or mutate it in place
// with SetValue / SetTangents.
package keyframe

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/bartlomiejwolk/animationpath"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'keyframe'
func tracer() tracing.Trace {
	return tracing.Select("keyframe")
}

var (
	// ErrDuplicateKey indicates a key at an equal time (within tolerance) exists.
	ErrDuplicateKey = errors.New("curve already has a key at this time")
	// ErrIndexOutOfRange indicates a key index outside the curve.
	ErrIndexOutOfRange = errors.New("key index out of range")
	// ErrInvalidTime indicates a NaN or infinite key time.
	ErrInvalidTime = errors.New("invalid key time")
)

// Keyframe is a single key of a curve.
type Keyframe struct {
	Time       float64
	Value      float64
	InTangent  float64 // slope of the curve when arriving at the key
	OutTangent float64 // slope of the curve when leaving the key
}

// K is a quick notation for a keyframe with flat tangents.
func K(time, value float64) Keyframe {
	return Keyframe{Time: time, Value: value}
}

func (k Keyframe) String() string {
	return fmt.Sprintf("[%.4g: %.4g <%.4g|%.4g>]", k.Time, k.Value, k.InTangent, k.OutTangent)
}

// Curve is an ordered-by-time sequence of keyframes.
// The zero value is an empty curve, ready to use.
type Curve struct {
	keys []Keyframe
}

// NewCurve creates a curve from a set of keys, which may be given in any
// order. Keys sharing a timestamp are rejected.
func NewCurve(keys ...Keyframe) (*Curve, error) {
	c := &Curve{keys: make([]Keyframe, 0, len(keys))}
	for _, k := range keys {
		if _, err := c.AddKey(k); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// FromSorted creates a curve from keys already ordered by strictly
// increasing time (within tolerance). The keys are copied.
func FromSorted(keys []Keyframe) (*Curve, error) {
	for i, k := range keys {
		if err := checkTime(k.Time); err != nil {
			return nil, err
		}
		if i > 0 && !animationpath.Before(keys[i-1].Time, k.Time) {
			return nil, fmt.Errorf("%w: keys %d and %d out of order", ErrDuplicateKey, i-1, i)
		}
	}
	c := &Curve{keys: make([]Keyframe, len(keys))}
	copy(c.keys, keys)
	return c, nil
}

// MustNewCurve is a compatibility helper which panics on duplicate keys.
func MustNewCurve(keys ...Keyframe) *Curve {
	c, err := NewCurve(keys...)
	if err != nil {
		panic(err)
	}
	return c
}

// Clone returns a deep copy of c.
func (c *Curve) Clone() *Curve {
	keys := make([]Keyframe, len(c.keys))
	copy(keys, c.keys)
	return &Curve{keys: keys}
}

// Len returns the number of keys.
func (c *Curve) Len() int {
	return len(c.keys)
}

// Keys returns a copy of the keys, ordered by time.
func (c *Curve) Keys() []Keyframe {
	keys := make([]Keyframe, len(c.keys))
	copy(keys, c.keys)
	return keys
}

// Key returns the key at index i.
func (c *Curve) Key(i int) (Keyframe, error) {
	if err := c.checkIndex(i); err != nil {
		return Keyframe{}, err
	}
	return c.keys[i], nil
}

// Times returns the timestamps of all keys.
func (c *Curve) Times() []float64 {
	ts := make([]float64, len(c.keys))
	for i, k := range c.keys {
		ts[i] = k.Time
	}
	return ts
}

// Values returns the values of all keys.
func (c *Curve) Values() []float64 {
	vs := make([]float64, len(c.keys))
	for i, k := range c.keys {
		vs[i] = k.Value
	}
	return vs
}

// IndexAt returns the index of the key at time t (within tolerance), or
// animationpath.NotFound.
func (c *Curve) IndexAt(t float64) int {
	i := c.search(t)
	if i < len(c.keys) && animationpath.FloatsEqual(c.keys[i].Time, t) {
		return i
	}
	if i > 0 && animationpath.FloatsEqual(c.keys[i-1].Time, t) {
		return i - 1
	}
	return animationpath.NotFound
}

// HasKeyAt is a predicate: is there a key at time t?
func (c *Curve) HasKeyAt(t float64) bool {
	return c.IndexAt(t) != animationpath.NotFound
}

// AddKey inserts a key, keeping its tangents, and returns its index.
func (c *Curve) AddKey(k Keyframe) (int, error) {
	if err := checkTime(k.Time); err != nil {
		return animationpath.NotFound, err
	}
	if c.HasKeyAt(k.Time) {
		return animationpath.NotFound, fmt.Errorf("%w: t=%g", ErrDuplicateKey, k.Time)
	}
	i := c.search(k.Time)
	c.keys = append(c.keys, Keyframe{})
	copy(c.keys[i+1:], c.keys[i:])
	c.keys[i] = k
	tracer().Debugf("added key %s at index %d", k, i)
	return i, nil
}

// AddValue inserts a key at time t with value v and returns its index.
// The new key gets tangents matching the slope through its neighbours.
func (c *Curve) AddValue(t, v float64) (int, error) {
	i, err := c.AddKey(K(t, v))
	if err != nil {
		return i, err
	}
	c.SmoothTangents(i, 0)
	return i, nil
}

// RemoveKey deletes the key at index i.
func (c *Curve) RemoveKey(i int) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	tracer().Debugf("removing key %s at index %d", c.keys[i], i)
	c.keys = append(c.keys[:i], c.keys[i+1:]...)
	return nil
}

// MoveKey replaces the key at index i by k, re-sorting if k's time differs,
// and returns the new index of k. If k's time collides with another key,
// the curve is left unchanged.
func (c *Curve) MoveKey(i int, k Keyframe) (int, error) {
	if err := c.checkIndex(i); err != nil {
		return animationpath.NotFound, err
	}
	if err := checkTime(k.Time); err != nil {
		return animationpath.NotFound, err
	}
	if j := c.IndexAt(k.Time); j != animationpath.NotFound && j != i {
		return animationpath.NotFound, fmt.Errorf("%w: t=%g", ErrDuplicateKey, k.Time)
	}
	old := c.keys[i]
	c.keys = append(c.keys[:i], c.keys[i+1:]...)
	j := c.search(k.Time)
	c.keys = append(c.keys, Keyframe{})
	copy(c.keys[j+1:], c.keys[j:])
	c.keys[j] = k
	tracer().Debugf("moved key %s -> %s, index %d -> %d", old, k, i, j)
	return j, nil
}

// SetTimes retimes the keys first, first+1, … to the times ts, keeping
// values and tangents. The keys must remain in strictly increasing order;
// otherwise the curve is left unchanged.
func (c *Curve) SetTimes(first int, ts []float64) error {
	if len(ts) == 0 {
		return nil
	}
	if err := c.checkIndex(first); err != nil {
		return err
	}
	if err := c.checkIndex(first + len(ts) - 1); err != nil {
		return err
	}
	times := c.Times()
	copy(times[first:], ts)
	for i, t := range times {
		if err := checkTime(t); err != nil {
			return err
		}
		if i > 0 && !animationpath.Before(times[i-1], t) {
			return fmt.Errorf("%w: keys %d and %d out of order", ErrDuplicateKey, i-1, i)
		}
	}
	for i, t := range ts {
		c.keys[first+i].Time = t
	}
	return nil
}

// SetValue changes the value of the key at index i in place.
func (c *Curve) SetValue(i int, v float64) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.keys[i].Value = v
	return nil
}

// SetTangents changes both tangents of the key at index i in place.
func (c *Curve) SetTangents(i int, in, out float64) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.keys[i].InTangent = in
	c.keys[i].OutTangent = out
	return nil
}

// OffsetValues adds delta to every key value.
func (c *Curve) OffsetValues(delta float64) {
	for i := range c.keys {
		c.keys[i].Value += delta
	}
}

// MultiplyValues multiplies every key value by m.
func (c *Curve) MultiplyValues(m float64) {
	for i := range c.keys {
		c.keys[i].Value *= m
	}
}

func (c *Curve) String() string {
	s := "{"
	for i, k := range c.keys {
		if i > 0 {
			s += " "
		}
		s += k.String()
	}
	return s + "}"
}

// search returns the index of the first key with time ≥ t.
func (c *Curve) search(t float64) int {
	return sort.Search(len(c.keys), func(i int) bool {
		return c.keys[i].Time >= t
	})
}

func (c *Curve) checkIndex(i int) error {
	if i < 0 || i >= len(c.keys) {
		return fmt.Errorf("%w: %d of %d keys", ErrIndexOutOfRange, i, len(c.keys))
	}
	return nil
}

func checkTime(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidTime, t)
	}
	return nil
}

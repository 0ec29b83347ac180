package keyframe

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmoothTangents(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := MustNewCurve(K(0, 0), K(0.5, 2), K(1, 1))
	require.NoError(t, c.SmoothTangents(1, 0))
	k, _ := c.Key(1)
	assert.InDelta(t, 1.0, k.InTangent, 1e-9) // (1-0)/(1-0)
	assert.Equal(t, k.InTangent, k.OutTangent)
	require.NoError(t, c.SmoothTangents(0, 0))
	k, _ = c.Key(0)
	assert.InDelta(t, 4.0, k.OutTangent, 1e-9) // single neighbour
	require.NoError(t, c.SmoothTangents(2, 0.5))
	k, _ = c.Key(2)
	assert.InDelta(t, -1.0, k.InTangent, 1e-9) // -2 flattened by half
	require.NoError(t, c.SmoothTangents(1, 1))
	k, _ = c.Key(1)
	assert.Equal(t, 0.0, k.OutTangent)
}

func TestSmoothAllIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := MustNewCurve(K(0, 0), K(0.2, 3), K(0.7, -1), K(1, 1))
	c.SmoothAll(0)
	first := c.Keys()
	c.SmoothAll(0)
	assert.Equal(t, first, c.Keys())
}

func TestEaseExtremes(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := MustNewCurve(K(0, 0), K(1, 2))
	c.SmoothAll(0)
	c.EaseExtremes()
	first, _ := c.Key(0)
	last, _ := c.Key(1)
	assert.Equal(t, 0.0, first.OutTangent)
	assert.Equal(t, 0.0, last.InTangent)
	assert.Equal(t, 2.0, first.InTangent)
	var empty Curve
	empty.EaseExtremes()
}

func TestOffsetTangents(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := MustNewCurve(K(0, 0), K(1, 2))
	require.NoError(t, c.OffsetTangents(1, 0.5))
	k, _ := c.Key(1)
	assert.Equal(t, 0.5, k.InTangent)
	assert.Equal(t, 0.5, k.OutTangent)
	assert.Error(t, c.OffsetTangents(2, 1))
}

func TestSetLinear(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := MustNewCurve(K(0, 0), K(0.5, 1), K(1, 0))
	c.SetLinear()
	assert.InDelta(t, 0.5, c.Evaluate(0.25), 1e-9)
	assert.InDelta(t, 0.5, c.Evaluate(0.75), 1e-9)
}

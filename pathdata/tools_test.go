package pathdata

import (
	"errors"
	"testing"

	"github.com/bartlomiejwolk/animationpath/spatial"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateTiltValueScenario(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pd := newPathData(t)
	require.NoError(t, pd.UpdateTiltValue(0, 5))
	k, err := pd.TiltCurve().Key(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, k.OutTangent)
	tilt, err := pd.NodeTiltValue(0)
	require.NoError(t, err)
	assert.Equal(t, 5.0, tilt)
	last, _ := pd.TiltCurve().Key(1)
	assert.Equal(t, 0.0, last.InTangent)
	assert.Error(t, pd.UpdateTiltValue(2, 1))
}

func TestUpdateEaseValue(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pd := newPathData(t)
	require.NoError(t, pd.UpdateEaseValue(1, 0.5))
	assert.Equal(t, []float64{0.05, 0.5}, pd.EaseValues())
	e, _ := pd.NodeEaseValue(1)
	assert.Equal(t, 0.5, e)
	assert.Equal(t, 0.05, pd.EaseValueAtTime(-1))
	_, err := pd.NodeEaseValue(4)
	assert.True(t, errors.Is(err, spatial.ErrNodeIndex))
}

func TestBulkValueOperations(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pd := newPathData(t)
	pd.OffsetEaseValues(0.05)
	pd.MultiplyEaseValues(10)
	for _, e := range pd.EaseValues() {
		assert.InDelta(t, 1.0, e, 1e-12)
	}
	pd.OffsetTiltValues(2)
	pd.MultiplyTiltValues(-1)
	assert.Equal(t, []float64{-2, -2}, pd.TiltValues())
	assert.Equal(t, -2.0, pd.TiltValueAtTime(0.5))
}

func TestToolToggles(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pd := newPathData(t)
	_, err := pd.CreateNewNode(0.5, v(0.5, 0, 0.5))
	require.NoError(t, err)
	require.NoError(t, pd.UpdateEaseValue(1, 1))
	want := pd.EaseValueAtTime(0.5)
	require.NoError(t, pd.EnableEase(1))
	require.NoError(t, pd.EnableEase(1))
	assert.Equal(t, []bool{true, true, true}, pd.EaseToolState())
	assert.Equal(t, []float64{0, 0.5, 1}, pd.EasedNodeTimestamps())
	assert.InDelta(t, want, pd.EaseValues()[1], 1e-12)
	assert.Equal(t, []float64{0, 1}, pd.TiltedNodeTimestamps())
	require.NoError(t, pd.DisableEase(1))
	assert.Equal(t, []float64{0, 1}, pd.EaseCurve().Times())
	assert.True(t, errors.Is(pd.DisableEase(0), ErrEndpoint))
	assert.True(t, errors.Is(pd.DisableTilt(2), ErrEndpoint))
	assert.True(t, errors.Is(pd.EnableTilt(3), spatial.ErrNodeIndex))
	assertConsistent(t, pd)
}

func TestToolKeysByTimestamp(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pd := newPathData(t)
	_, err := pd.CreateNewNode(0.5, v(0.5, 0, 0.5))
	require.NoError(t, err)
	require.NoError(t, pd.AddTiltKey(0.5))
	assert.Equal(t, []float64{0, 0.5, 1}, pd.TiltCurve().Times())
	require.NoError(t, pd.AddEaseKey(0.5))
	require.NoError(t, pd.RemoveTiltKey(0.5))
	assert.Equal(t, []bool{true, false, true}, pd.TiltToolState())
	require.NoError(t, pd.RemoveEaseKey(0.5))
	assert.True(t, errors.Is(pd.AddEaseKey(0.3), spatial.ErrNodeNotFound))
	assert.True(t, errors.Is(pd.RemoveTiltKey(0.3), spatial.ErrNodeNotFound))
	assertConsistent(t, pd)
}

func TestResetToolCurves(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pd := newPathData(t)
	var kinds []EventKind
	pd.Subscribe(func(_ *PathData, ev Event) { kinds = append(kinds, ev.Kind) })
	for _, tm := range []float64{0.25, 0.5, 0.75} {
		_, err := pd.CreateNewNode(tm, v(tm, 0, 0))
		require.NoError(t, err)
	}
	require.NoError(t, pd.EnableEase(2))
	require.NoError(t, pd.EnableTilt(1))
	require.NoError(t, pd.UpdateEaseValue(1, 3))
	kinds = nil
	require.NoError(t, pd.ResetEaseCurve())
	assert.Equal(t, []float64{0, 0.5, 1}, pd.EaseCurve().Times())
	assert.Equal(t, []float64{0.05, 0.05, 0.05}, pd.EaseValues())
	require.NoError(t, pd.ResetTiltCurve())
	assert.Equal(t, []float64{0, 0.25, 1}, pd.TiltCurve().Times())
	assert.Equal(t, []float64{0.001, 0.001, 0.001}, pd.TiltValues())
	assert.Equal(t, []EventKind{EaseCurveReset, TiltCurveReset}, kinds)
	assertConsistent(t, pd)
}

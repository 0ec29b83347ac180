package pathdata

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Inconsistencies are traced at error level, so these tests keep the
// default tracer.

func TestCheckReportsViolations(t *testing.T) {
	pd := MustNew(DefaultConfig())
	require.NoError(t, pd.Check())
	pd.rotationPath.Offset(v(1, 0, 0))
	require.NoError(t, pd.Check())
	_, err := pd.ease.AddValue(0.5, 1)
	require.NoError(t, err)
	_, err = pd.rotationPath.AddNodeAtTime(0.5)
	require.NoError(t, err)
	err = pd.Check()
	assert.True(t, errors.Is(err, ErrInconsistent))
	assert.Contains(t, err.Error(), "ease keys")
	assert.Contains(t, err.Error(), "rotation nodes")
}

func TestInconsistencyIsReported(t *testing.T) {
	pd := MustNew(DefaultConfig())
	pd.tools = pd.tools[:1]
	_, err := pd.CreateNewNode(0.5, v(0, 0, 0))
	assert.True(t, errors.Is(err, ErrInconsistent))
	assert.Equal(t, 2, pd.NodesNo())
}

func TestInconsistencyPanics(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PanicOnInconsistency = true
	pd := MustNew(cfg)
	pd.tools = pd.tools[:1]
	assert.Panics(t, func() {
		_, _ = pd.CreateNewNode(0.5, v(0, 0, 0))
	})
}

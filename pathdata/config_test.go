package pathdata

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cfg, err := LoadConfig(strings.NewReader(`
default_ease_value: 0.1
path_length_sampling: 60
sync_rotation_path: false
`))
	require.NoError(t, err)
	assert.Equal(t, 0.1, cfg.DefaultEaseValue)
	assert.Equal(t, 60, cfg.PathLengthSampling)
	assert.False(t, cfg.SyncRotationPath)
	assert.Equal(t, 0.001, cfg.DefaultTiltValue)
	pd, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.1}, pd.EaseValues())
}

func TestLoadEmptyConfig(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cfg, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadInvalidConfig(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := LoadConfig(strings.NewReader("smooth_weight: 1.5\n"))
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	_, err = LoadConfig(strings.NewReader("path_length_sampling: 0\n"))
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	_, err = LoadConfig(strings.NewReader("path_length_sampling: [1, 2]\n"))
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

package pathdata

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig indicates a configuration value out of its domain.
var ErrInvalidConfig = errors.New("invalid path data configuration")

// Config collects the tunables of a PathData instance.
type Config struct {
	// Value of ease keys created by New and ResetEaseCurve.
	DefaultEaseValue float64 `yaml:"default_ease_value"`
	// Value of tilt keys created by ResetTiltCurve.
	DefaultTiltValue float64 `yaml:"default_tilt_value"`
	// Weight for tangent smoothing, 0 = fully smooth, 1 = flat.
	SmoothWeight float64 `yaml:"smooth_weight"`
	// Samples per segment for arc length estimation.
	PathLengthSampling int `yaml:"path_length_sampling"`
	// Mirror every structural change of the object path into the rotation path.
	SyncRotationPath bool `yaml:"sync_rotation_path"`
	// Panic instead of returning ErrInconsistent.
	PanicOnInconsistency bool `yaml:"panic_on_inconsistency"`
}

// DefaultConfig returns the configuration used when clients do not
// provide one.
func DefaultConfig() Config {
	return Config{
		DefaultEaseValue:   0.05,
		DefaultTiltValue:   0.001,
		SmoothWeight:       0,
		PathLengthSampling: 40,
		SyncRotationPath:   true,
	}
}

// LoadConfig reads a YAML configuration. Fields missing in the input keep
// their default values; an empty input yields DefaultConfig().
//
//	default_ease_value: 0.1
//	path_length_sampling: 60
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the domain of every field.
func (cfg Config) Validate() error {
	if cfg.SmoothWeight < 0 || cfg.SmoothWeight > 1 {
		return fmt.Errorf("%w: smooth weight %g not in [0,1]", ErrInvalidConfig, cfg.SmoothWeight)
	}
	if cfg.PathLengthSampling < 1 {
		return fmt.Errorf("%w: path length sampling %d < 1", ErrInvalidConfig, cfg.PathLengthSampling)
	}
	return nil
}

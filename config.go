package photic

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid filter configuration")

// Config holds the pre-flight parameters of an altitude filter.
type Config struct {
	DeltaT           float32 `yaml:"delta_t"`           // Filter period (s).
	AltitudeVariance float32 `yaml:"altitude_variance"` // Barometric altitude variance (m²).
	AccelVariance    float32 `yaml:"accel_variance"`    // Vertical acceleration variance ((m/s²)²).
	InitialAltitude  float32 `yaml:"initial_altitude"`
	InitialVelocity  float32 `yaml:"initial_velocity"`
	InitialAccel     float32 `yaml:"initial_accel"`
	GainIterations   int     `yaml:"gain_iterations"`
	// ProfileSamples, when positive, is the number of readings a Tracker takes
	// from each device at startup. The measured variances and mean altitude
	// then replace AltitudeVariance, AccelVariance and the initial state.
	ProfileSamples int `yaml:"profile_samples,omitempty"`
	// AltitudeFloor, when set, is the lowest altitude observation a Tracker
	// passes to the filter. Usually the launchpad altitude.
	AltitudeFloor *float32 `yaml:"altitude_floor,omitempty"`
}

// DefaultConfig returns a configuration for a 10 Hz flight loop with typical
// hobby-grade barometer and accelerometer noise.
func DefaultConfig() Config {
	return Config{
		DeltaT:           0.1,
		AltitudeVariance: 15.45,
		AccelVariance:    1.8,
		GainIterations:   100,
	}
}

// Validate returns an error wrapping ErrInvalidConfig if the configuration
// cannot produce a meaningful filter.
func (c Config) Validate() error {
	if !(c.DeltaT > 0) {
		return fmt.Errorf("%w: delta_t must be positive, got %g", ErrInvalidConfig, c.DeltaT)
	}
	if c.AltitudeVariance < 0 || c.AccelVariance < 0 {
		return fmt.Errorf("%w: sensor variances must not be negative (altitude=%g accel=%g)", ErrInvalidConfig, c.AltitudeVariance, c.AccelVariance)
	}
	if c.AltitudeVariance == 0 && c.AccelVariance == 0 {
		return fmt.Errorf("%w: at least one sensor variance must be positive", ErrInvalidConfig)
	}
	if c.GainIterations <= 0 {
		return fmt.Errorf("%w: gain_iterations must be positive, got %d", ErrInvalidConfig, c.GainIterations)
	}
	if c.ProfileSamples < 0 || c.ProfileSamples == 1 {
		return fmt.Errorf("%w: profile_samples must be 0 or at least 2, got %d", ErrInvalidConfig, c.ProfileSamples)
	}
	return nil
}

// LoadConfig reads a YAML configuration file. Fields missing from the file
// keep their DefaultConfig value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("could not parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

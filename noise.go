package photic

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"
)

// Noise is the observation noise of the altitude and acceleration sensors.
type Noise interface {
	Measurement(k int) (altitude, accel float64) // Returns the noise added to the observations at step k.
	MeasurementMatrix() mat.Symmetric            // Returns the measurement noise matrix R.
	String() string                              // Stringer interface implementation.
}

// Noiseless is noiseless and implements the Noise interface.
type Noiseless struct {
	R mat.Symmetric
}

// NewNoiseless returns noiseless observations described by the provided
// variances, so that a filter can still be tuned against R.
func NewNoiseless(altitudeVariance, accelVariance float64) *Noiseless {
	return &Noiseless{mat.NewSymDense(2, []float64{altitudeVariance, 0, 0, accelVariance})}
}

// Measurement returns zero noise.
func (n Noiseless) Measurement(k int) (float64, float64) {
	return 0, 0
}

// MeasurementMatrix implements the Noise interface.
func (n Noiseless) MeasurementMatrix() mat.Symmetric {
	return n.R
}

// String implements the Stringer interface.
func (n Noiseless) String() string {
	return fmt.Sprintf("Noiseless{\nR=%v}\n", mat.Formatted(n.R, mat.Prefix("  ")))
}

// AWGN implements the Noise interface and generates additive white Gaussian
// noise on both observations.
type AWGN struct {
	R           mat.Symmetric
	measurement *distmv.Normal
}

// NewAWGN creates new AWGN noise from the provided R. The same seed always
// yields the same noise sequence.
func NewAWGN(R mat.Symmetric, seed uint64) (*AWGN, error) {
	if R == nil {
		return nil, errors.New("R must be specified")
	}
	if size := R.SymmetricDim(); size != 2 {
		return nil, fmt.Errorf("R must be 2x2, got %dx%d", size, size)
	}
	meas, ok := distmv.NewNormal(make([]float64, 2), R, rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	if !ok {
		return nil, errors.New("measurement noise covariance is not positive definite")
	}
	return &AWGN{R, meas}, nil
}

// MeasurementMatrix implements the Noise interface.
func (n AWGN) MeasurementMatrix() mat.Symmetric {
	return n.R
}

// Measurement implements the Noise interface. Every call draws new noise.
func (n AWGN) Measurement(k int) (float64, float64) {
	r := n.measurement.Rand(nil)
	return r[0], r[1]
}

// String implements the Stringer interface.
func (n AWGN) String() string {
	return fmt.Sprintf("AWGN{\nR=%v}\n", mat.Formatted(n.R, mat.Prefix("  ")))
}

// SensorAWGN implements the Noise interface with independent Gaussian noise on
// each sensor. Unlike AWGN, either variance may be zero for a perfect sensor.
type SensorAWGN struct {
	R        mat.Symmetric
	altitude distuv.Normal
	accel    distuv.Normal
}

// NewSensorAWGN creates uncorrelated noise from the two sensor variances. The
// same seed always yields the same noise sequence.
func NewSensorAWGN(altitudeVariance, accelVariance float64, seed uint64) (*SensorAWGN, error) {
	if altitudeVariance < 0 || accelVariance < 0 {
		return nil, fmt.Errorf("variances must not be negative (altitude=%g accel=%g)", altitudeVariance, accelVariance)
	}
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &SensorAWGN{
		R:        mat.NewSymDense(2, []float64{altitudeVariance, 0, 0, accelVariance}),
		altitude: distuv.Normal{Sigma: math.Sqrt(altitudeVariance), Src: src},
		accel:    distuv.Normal{Sigma: math.Sqrt(accelVariance), Src: src},
	}, nil
}

// MeasurementMatrix implements the Noise interface.
func (n SensorAWGN) MeasurementMatrix() mat.Symmetric {
	return n.R
}

// Measurement implements the Noise interface. Every call draws new noise.
func (n SensorAWGN) Measurement(k int) (float64, float64) {
	return n.altitude.Rand(), n.accel.Rand()
}

// String implements the Stringer interface.
func (n SensorAWGN) String() string {
	return fmt.Sprintf("SensorAWGN{\nR=%v}\n", mat.Formatted(n.R, mat.Prefix("  ")))
}

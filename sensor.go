package photic

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Barometer is a device providing barometric altitude.
type Barometer interface {
	Init() error       // Prepares the device. Called once before any Update.
	Update() error     // Takes a new reading.
	Altitude() float32 // Returns the altitude of the last reading (m).
}

// Accelerometer is a device providing vertical acceleration.
type Accelerometer interface {
	Init() error
	Update() error
	// VerticalAccel returns the vertical component of the last reading in the
	// Earth frame (m/s²). Devices mounted on the rocket must rotate their
	// reading by the measured orientation before returning it.
	VerticalAccel() float32
}

// SensorProfile describes the readings of both devices at rest.
type SensorProfile struct {
	AltitudeVariance  float32 // Variance of the barometric altitude (m²).
	AccelVariance     float32 // Variance of the vertical acceleration ((m/s²)²).
	LaunchpadAltitude float32 // Mean barometric altitude (m).
}

// MeasureSensorVariance reads both devices n times while the vehicle is at
// rest and returns the variance of their readings, suitable for
// KalmanFilter.SetSensorVariance, along with the mean altitude. The devices
// must already be initialized. Doing this on the launch site, or in the flight
// computer's startup sequence, gives the most representative figures.
func MeasureSensorVariance(baro Barometer, accel Accelerometer, n int) (SensorProfile, error) {
	if n < 2 {
		return SensorProfile{}, fmt.Errorf("need at least 2 samples to compute a variance, got %d", n)
	}
	alts := make([]float64, n)
	accs := make([]float64, n)
	for i := 0; i < n; i++ {
		if err := baro.Update(); err != nil {
			return SensorProfile{}, fmt.Errorf("barometer sample %d: %w", i, err)
		}
		if err := accel.Update(); err != nil {
			return SensorProfile{}, fmt.Errorf("accelerometer sample %d: %w", i, err)
		}
		alts[i] = float64(baro.Altitude())
		accs[i] = float64(accel.VerticalAccel())
	}
	altMean, altVar := stat.MeanVariance(alts, nil)
	return SensorProfile{
		AltitudeVariance:  float32(altVar),
		AccelVariance:     float32(stat.Variance(accs, nil)),
		LaunchpadAltitude: float32(altMean),
	}, nil
}

package photic

import "fmt"

// Tracker drives an altitude filter from a barometer and an accelerometer, one
// Step per iteration of the flight logic loop.
type Tracker struct {
	kf       *KalmanFilter
	baro     Barometer
	accel    Accelerometer
	profile  *SensorProfile
	floor    float32
	hasFloor bool
	step     int
}

// NewTracker validates the configuration, initializes both devices and
// returns a tracker with a configured filter.
//
// If cfg.ProfileSamples is positive, both devices are first read that many
// times while the vehicle rests on the pad. The measured variances become the
// filter's sensor variances, and the filter starts at rest at the mean
// measured altitude. The configured variances and initial state are ignored.
func NewTracker(cfg Config, baro Barometer, accel Accelerometer) (*Tracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := baro.Init(); err != nil {
		return nil, fmt.Errorf("could not initialize barometer: %w", err)
	}
	if err := accel.Init(); err != nil {
		return nil, fmt.Errorf("could not initialize accelerometer: %w", err)
	}
	t := &Tracker{baro: baro, accel: accel}
	if cfg.ProfileSamples > 0 {
		p, err := MeasureSensorVariance(baro, accel, cfg.ProfileSamples)
		if err != nil {
			return nil, fmt.Errorf("could not profile sensors: %w", err)
		}
		cfg.AltitudeVariance, cfg.AccelVariance = p.AltitudeVariance, p.AccelVariance
		cfg.InitialAltitude, cfg.InitialVelocity, cfg.InitialAccel = p.LaunchpadAltitude, 0, 0
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("profiled sensors: %w", err)
		}
		t.profile = &p
	}
	t.kf = NewKalmanFilter()
	t.kf.Configure(cfg)
	if cfg.AltitudeFloor != nil {
		t.floor, t.hasFloor = *cfg.AltitudeFloor, true
	}
	return t, nil
}

// Step reads both devices and returns the new (altitude, velocity,
// acceleration) estimate. Both devices are updated even if one of them fails,
// so they stay in lockstep. On a device error the filter is not advanced and
// the readings of that step are discarded.
func (t *Tracker) Step() (Matrix, error) {
	baroErr := t.baro.Update()
	accelErr := t.accel.Update()
	if baroErr != nil {
		return Null, fmt.Errorf("barometer update at step %d: %w", t.step, baroErr)
	}
	if accelErr != nil {
		return Null, fmt.Errorf("accelerometer update at step %d: %w", t.step, accelErr)
	}
	alt := t.baro.Altitude()
	if t.hasFloor && alt < t.floor {
		alt = t.floor
	}
	t.step++
	return t.kf.Filter(alt, t.accel.VerticalAccel()), nil
}

// Filter returns the underlying filter.
func (t *Tracker) Filter() *KalmanFilter {
	return t.kf
}

// Profile returns the startup sensor profile, and false if the tracker was
// configured without profiling.
func (t *Tracker) Profile() (SensorProfile, bool) {
	if t.profile == nil {
		return SensorProfile{}, false
	}
	return *t.profile, true
}

// Steps returns the number of successful steps so far.
func (t *Tracker) Steps() int {
	return t.step
}

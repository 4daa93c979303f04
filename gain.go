package photic

// ComputeGain computes the Kalman gain by refining it the provided number of
// times, starting from an identity error covariance.
//
// The noise model is assumed constant for the whole flight, so the gain is
// converged once here instead of propagating the covariance on every Filter
// call. The right iteration count depends on the vehicle and its sensors and
// has to be found experimentally: too few iterations leave the gain
// unconverged, and more iterations do not make the filter more accurate.
func (kf *KalmanFilter) ComputeGain(iterations int) {
	kf.p = Identity(3)
	for i := 0; i < iterations; i++ {
		kf.RefineGain()
	}
}

// RefineGain performs a single refinement of the gain based on the current
// error covariance. It is only needed when sensor variance changes during the
// flight, in which case it should be called once per Filter call.
func (kf *KalmanFilter) RefineGain() {
	ht := kf.h.T()
	// S = H*P*H' + R
	s := Add(Mul(Mul(kf.h, kf.p), ht), kf.r)
	kf.k = Mul(Mul(kf.p, ht), s.Inverse())
	kf.p = Mul(Sub(Identity(3), Mul(kf.k, kf.h)), kf.p)
	// Propagate to the next timestep.
	kf.p = Add(Mul(Mul(kf.a, kf.p), kf.a.T()), kf.q)
}

// SetGain overrides the Kalman gain, e.g. with one computed offline by
// OfflineGain and hardcoded into the firmware.
func (kf *KalmanFilter) SetGain(k Matrix) {
	kf.k = k
}

package photic

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// OfflineGain computes the same gain as KalmanFilter.ComputeGain, in double
// precision, for use on hardware more capable than the flight computer. The
// result is meant to be hardcoded into the firmware and installed with
// KalmanFilter.SetGain.
//
// At most maxIterations refinements are performed. If tol is positive, the
// computation stops as soon as two successive gains agree element-wise within
// tol. It returns the gain and the number of refinements performed.
func OfflineGain(cfg Config, maxIterations int, tol float64) (Matrix, int, error) {
	if maxIterations <= 0 {
		return Null, 0, errors.New("at least one gain refinement is required")
	}
	Δt := float64(cfg.DeltaT)
	A := mat.NewDense(3, 3, []float64{
		1, Δt, 0.5 * Δt * Δt,
		0, 1, Δt,
		0, 0, 1,
	})
	H := mat.NewDense(2, 3, []float64{
		1, 0, 0,
		0, 0, 1,
	})
	R := mat.NewDiagDense(2, []float64{float64(cfg.AltitudeVariance), float64(cfg.AccelVariance)})
	I := mat.NewDiagDense(3, []float64{1, 1, 1})
	P := mat.DenseCopyOf(I)

	var K *mat.Dense
	for i := 0; i < maxIterations; i++ {
		// K = P*H' * (H*P*H' + R)^-1
		var PHt, S, SInv mat.Dense
		PHt.Mul(P, H.T())
		S.Mul(H, &PHt)
		S.Add(&S, R)
		if err := SInv.Inverse(&S); err != nil {
			return Null, i, fmt.Errorf("could not invert `H*P*H' + R` at iteration %d: %w", i, err)
		}
		Kn := new(mat.Dense)
		Kn.Mul(&PHt, &SInv)

		// P = A*(I - K*H)*P*A'
		var KH, IKH, Pplus, AP mat.Dense
		KH.Mul(Kn, H)
		IKH.Sub(I, &KH)
		Pplus.Mul(&IKH, P)
		AP.Mul(A, &Pplus)
		P.Mul(&AP, A.T())

		converged := K != nil && tol > 0 && mat.EqualApprox(Kn, K, tol)
		K = Kn
		if converged {
			return FromGonum(K), i + 1, nil
		}
	}
	return FromGonum(K), maxIterations, nil
}

// FromGonum converts a gonum matrix of at most MaxDim rows and columns to a
// Matrix, rounding to single precision.
func FromGonum(m mat.Matrix) Matrix {
	r, c := m.Dims()
	out := NewMatrix(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, float32(m.At(i, j)))
		}
	}
	return out
}

// ToGonum converts m to a gonum dense matrix. The null matrix has no gonum
// counterpart and yields nil.
func ToGonum(m Matrix) *mat.Dense {
	if m.IsNull() {
		return nil
	}
	r, c := m.Dims()
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, float64(m.At(i, j)))
		}
	}
	return out
}

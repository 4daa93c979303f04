package photic

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestImplementsNoise(t *testing.T) {
	implements := func(Noise) {}
	implements(new(Noiseless))
	implements(new(AWGN))
	implements(new(SensorAWGN))
}

func TestBlankNoise(t *testing.T) {
	nl := NewNoiseless(15.45, 1.8)
	for k := 0; k < 10; k++ {
		if alt, acc := nl.Measurement(k); alt != 0 || acc != 0 {
			t.Fatalf("noiseless measurement %d is (%f, %f)", k, alt, acc)
		}
	}
	R := nl.MeasurementMatrix()
	if R.SymmetricDim() != 2 {
		t.Fatalf("R is of wrong size: %d", R.SymmetricDim())
	}
	if R.At(0, 0) != 15.45 || R.At(1, 1) != 1.8 || R.At(0, 1) != 0 {
		t.Fatalf("unexpected R\n%v", mat.Formatted(R))
	}
	if !strings.HasPrefix(nl.String(), "Noiseless{") {
		t.Fatalf("unexpected string: %s", nl)
	}
}

func TestAWGNErrors(t *testing.T) {
	if _, err := NewAWGN(nil, 1); err == nil {
		t.Fatal("expected an error without R")
	}
	if _, err := NewAWGN(mat.NewSymDense(3, nil), 1); err == nil {
		t.Fatal("expected an error with a 3x3 R")
	}
	if _, err := NewAWGN(mat.NewSymDense(2, []float64{1, 2, 2, 1}), 1); err == nil {
		t.Fatal("expected an error with an indefinite R")
	}
	if _, err := NewSensorAWGN(-1, 1, 1); err == nil {
		t.Fatal("expected an error with a negative variance")
	}
}

func TestAWGN(t *testing.T) {
	n, err := NewSensorAWGN(15.45, 1.8, 42)
	if err != nil {
		t.Fatal(err)
	}
	if n.MeasurementMatrix().At(0, 0) != 15.45 {
		t.Fatal("R was not kept")
	}
	alt0, acc0 := n.Measurement(0)
	alt1, acc1 := n.Measurement(1)
	if alt0 == alt1 || acc0 == acc1 {
		t.Fatal("successive measurements drew the same noise")
	}

	// Same seed, same sequence.
	m, _ := NewSensorAWGN(15.45, 1.8, 42)
	if alt, acc := m.Measurement(0); alt != alt0 || acc != acc0 {
		t.Fatalf("seeded noise is not reproducible: (%f, %f) != (%f, %f)", alt, acc, alt0, acc0)
	}
	o, _ := NewSensorAWGN(15.45, 1.8, 43)
	if alt, _ := o.Measurement(0); alt == alt0 {
		t.Fatal("different seeds drew the same noise")
	}
	if !strings.HasPrefix(n.String(), "SensorAWGN{") {
		t.Fatalf("unexpected string: %s", n)
	}
}

func TestAWGNFullCovariance(t *testing.T) {
	n, err := NewAWGN(mat.NewSymDense(2, []float64{4, 1, 1, 2}), 9)
	if err != nil {
		t.Fatal(err)
	}
	if n.MeasurementMatrix().At(0, 1) != 1 {
		t.Fatal("R was not kept")
	}
	alt0, acc0 := n.Measurement(0)
	alt1, acc1 := n.Measurement(1)
	if alt0 == alt1 || acc0 == acc1 {
		t.Fatal("successive measurements drew the same noise")
	}
	if !strings.HasPrefix(n.String(), "AWGN{") {
		t.Fatalf("unexpected string: %s", n)
	}
}

func TestSensorAWGNPerfectSensor(t *testing.T) {
	n, err := NewSensorAWGN(15.45, 0, 5)
	if err != nil {
		t.Fatalf("a perfect accelerometer was rejected: %s", err)
	}
	var noisy bool
	for k := 0; k < 10; k++ {
		alt, acc := n.Measurement(k)
		if acc != 0 {
			t.Fatalf("perfect accelerometer drew noise %f at %d", acc, k)
		}
		noisy = noisy || alt != 0
	}
	if !noisy {
		t.Fatal("barometer drew no noise")
	}

	n, err = NewSensorAWGN(0, 1.8, 5)
	if err != nil {
		t.Fatalf("a perfect barometer was rejected: %s", err)
	}
	if alt, _ := n.Measurement(0); alt != 0 {
		t.Fatalf("perfect barometer drew noise %f", alt)
	}
}

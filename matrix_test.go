package photic

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func randMatrix(rng *rand.Rand, rows, cols int) Matrix {
	m := NewMatrix(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.Set(r, c, float32(rng.Float64()*20-10))
		}
	}
	return m
}

// wellConditioned returns a strictly diagonally dominant n x n matrix.
func wellConditioned(rng *rand.Rand, n int) Matrix {
	m := NewMatrix(n, n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			m.Set(r, c, float32(rng.Float64()*2-1))
		}
		m.Set(r, r, m.At(r, r)+float32(2*n))
	}
	return m
}

func TestMatrixConstructAccessMutate(t *testing.T) {
	m := NewMatrix(2, 2,
		1, 0,
		0, 1)
	assert.Equal(t, float32(1), m.At(0, 0))
	assert.Equal(t, float32(0), m.At(1, 0))
	assert.Equal(t, float32(0), m.At(0, 1))
	assert.Equal(t, float32(1), m.At(1, 1))

	m.Set(0, 0, 3.14)
	m.Set(0, 1, 2.71)
	m.Set(1, 0, 1.61)
	m.Set(1, 1, 4.67)
	assert.Equal(t, float32(3.14), m.At(0, 0))
	assert.Equal(t, float32(2.71), m.At(0, 1))
	assert.Equal(t, float32(1.61), m.At(1, 0))
	assert.Equal(t, float32(4.67), m.At(1, 1))

	// Missing fill values are zero, extra ones are dropped.
	p := NewMatrix(2, 3, 1, 2)
	assert.True(t, Equal(p, NewMatrix(2, 3, 1, 2, 0, 0, 0, 0)))
	q := NewMatrix(1, 2, 1, 2, 3, 4)
	assert.True(t, Equal(q, NewMatrix(1, 2, 1, 2)))

	// Copies are independent.
	cp := m
	cp.Set(0, 0, -1)
	assert.Equal(t, float32(3.14), m.At(0, 0))
}

func TestMatrixVectorAccess(t *testing.T) {
	v := Vector3(1, 2, 3)
	r, c := v.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 1, c)
	for i := 0; i < 3; i++ {
		assert.Equal(t, float32(i+1), v.AtVec(i))
		assert.Equal(t, v.At(i, 0), v.AtVec(i))
	}
	v.SetVec(1, 9)
	assert.Equal(t, float32(9), v.At(1, 0))
}

func TestMatrixNull(t *testing.T) {
	var zero Matrix
	assert.True(t, zero.IsNull())
	assert.True(t, Null.IsNull())
	assert.True(t, NewMatrix(0, 0).IsNull())
	assert.False(t, NewMatrix(1, 1).IsNull())
	assert.True(t, Equal(zero, Null))
	assert.True(t, EqualApprox(zero, Null, DefaultTolerance))
	assert.Equal(t, "[]", Null.String())
}

func TestMatrixEqual(t *testing.T) {
	a := NewMatrix(3, 3,
		1, 2, 3,
		1, 0, 1,
		3, 4, 9)
	b := a
	assert.True(t, Equal(a, b))
	assert.True(t, EqualApprox(a, b, DefaultTolerance))

	// Perturbing any single element breaks equality.
	for i := 0; i < 9; i++ {
		c := a
		c.Set(i/3, i%3, a.At(i/3, i%3)+1)
		assert.False(t, Equal(a, c), "element %d", i)
		assert.False(t, EqualApprox(a, c, DefaultTolerance), "element %d", i)
	}

	// Same leading elements, different shape.
	assert.False(t, Equal(a, NewMatrix(2, 3, 1, 2, 3, 1, 0, 1)))

	x := NewMatrix(2, 2,
		1/3.0, 0.15,
		3.14159265359, 0.000000001)
	y := NewMatrix(2, 2,
		0.3333333, 0.6/4,
		3.1415926, 0.0000000013)
	assert.False(t, Equal(x, y))
	assert.True(t, EqualApprox(x, y, DefaultTolerance))
}

func TestMatrixArithmetic(t *testing.T) {
	a := NewMatrix(2, 2, 1, 1, 1, 1)
	b := NewMatrix(2, 2, 2, 2, 2, 2)
	c := NewMatrix(2, 2, 3, 3, 3, 3)
	d := NewMatrix(2, 2, -1, -1, -1, -1)

	assert.True(t, Equal(Add(a, b), c))
	assert.True(t, Equal(Add(b, a), c))
	assert.True(t, Equal(Sub(a, b), d))
	assert.True(t, Equal(Sub(b, a), a))

	ident := Identity(2)
	assert.True(t, Equal(Add(ident, ident), NewMatrix(2, 2, 2, 0, 0, 2)))

	assert.True(t, Equal(Scale(-4, NewMatrix(2, 2, 1, 2, 3, 4)), NewMatrix(2, 2, -4, -8, -12, -16)))
	assert.True(t, Scale(2, Null).IsNull())
}

func TestMatrixMultiplication(t *testing.T) {
	a := NewMatrix(2, 2, 3, 4, 7, 8)
	b := NewMatrix(2, 2, 1, 2, 2, 0)
	assert.True(t, Equal(Mul(a, b), NewMatrix(2, 2, 11, 6, 23, 14)))

	m0 := NewMatrix(3, 3,
		1, 2, 3,
		4, 5, 6,
		7, 8, 9)
	m1 := NewMatrix(3, 3,
		-5, 0, 10,
		2, -4, 53,
		1, 1, 7)
	exp := NewMatrix(3, 3,
		2, -5, 137,
		-4, -14, 347,
		-10, -23, 557)
	assert.True(t, Equal(Mul(m0, m1), exp))

	// (2x3)(3x1) is 2x1.
	p := Mul(NewMatrix(2, 3, 1, 0, 0, 0, 0, 1), Vector3(4, 5, 6))
	r, c := p.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 1, c)
	assert.True(t, Equal(p, Vector2(4, 6)))
}

func TestMatrixIllegalArithmetic(t *testing.T) {
	a := NewMatrix(3, 2,
		1, 2,
		3, 4,
		5, 6)
	b := NewMatrix(2, 2, 2, 2, 2, 2)

	assert.True(t, Add(a, b).IsNull())
	assert.True(t, Add(b, a).IsNull())
	assert.True(t, Sub(a, b).IsNull())
	assert.True(t, Sub(b, a).IsNull())
	assert.True(t, Mul(b, a).IsNull())
	assert.False(t, Mul(a, b).IsNull())

	// Null floods any further computation.
	bad := Add(a, b)
	assert.True(t, Add(bad, Null).IsNull())
	assert.True(t, Add(bad, b).IsNull())
	assert.True(t, Sub(b, bad).IsNull())
	assert.True(t, Mul(bad, b).IsNull())
	assert.True(t, Mul(b, bad).IsNull())
	assert.True(t, Scale(3, bad).IsNull())
	assert.True(t, bad.T().IsNull())
	assert.True(t, bad.Inverse().IsNull())
	assert.True(t, Mul(Add(Mul(a, b), bad), b).IsNull())
}

func TestMatrixShapeMismatchProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for r1 := 1; r1 <= MaxDim; r1++ {
		for c1 := 1; c1 <= MaxDim; c1++ {
			for r2 := 1; r2 <= MaxDim; r2++ {
				for c2 := 1; c2 <= MaxDim; c2++ {
					a, b := randMatrix(rng, r1, c1), randMatrix(rng, r2, c2)
					sameShape := r1 == r2 && c1 == c2
					assert.Equal(t, !sameShape, Add(a, b).IsNull())
					assert.Equal(t, !sameShape, Sub(a, b).IsNull())
					assert.Equal(t, c1 != r2, Mul(a, b).IsNull())
					if !sameShape {
						assert.True(t, Add(Add(a, b), a).IsNull())
						assert.True(t, Mul(a.T(), Sub(a, b)).IsNull())
					}
				}
			}
		}
	}
}

func TestMatrixAddProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for r := 1; r <= MaxDim; r++ {
		for c := 1; c <= MaxDim; c++ {
			for i := 0; i < 20; i++ {
				a, b := randMatrix(rng, r, c), randMatrix(rng, r, c)
				assert.True(t, EqualApprox(Sub(Add(a, b), b), a, 1e-5), "(a+b)-b != a\n%v", a)
				assert.True(t, Equal(Add(a, b), Add(b, a)))
			}
		}
	}
}

func TestMatrixTranspose(t *testing.T) {
	m := NewMatrix(2, 3,
		1, 2, 3,
		4, 5, 6)
	mt := m.T()
	r, c := mt.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 2, c)
	assert.True(t, Equal(mt, NewMatrix(3, 2,
		1, 4,
		2, 5,
		3, 6)))

	rng := rand.New(rand.NewPCG(3, 4))
	for r := 1; r <= MaxDim; r++ {
		for c := 1; c <= MaxDim; c++ {
			a := randMatrix(rng, r, c)
			assert.True(t, Equal(a.T().T(), a))
		}
	}
	assert.True(t, Null.T().IsNull())
}

func TestMatrixInverse(t *testing.T) {
	m := NewMatrix(2, 2,
		11, 4,
		3, -7)
	exp := NewMatrix(2, 2,
		7.0/89, 4.0/89,
		3.0/89, -11.0/89)
	assert.True(t, EqualApprox(m.Inverse(), exp, 1e-4), "got\n%v", m.Inverse())

	for _, n := range []int{2, 3} {
		assert.True(t, Equal(Identity(n).Inverse(), Identity(n)), "n=%d", n)
	}

	m3 := NewMatrix(3, 3,
		2, -1, 0,
		-1, 2, -1,
		0, -1, 2)
	exp3 := Scale(0.25, NewMatrix(3, 3,
		3, 2, 1,
		2, 4, 2,
		1, 2, 3))
	assert.True(t, EqualApprox(m3.Inverse(), exp3, 1e-5), "got\n%v", m3.Inverse())
	assert.True(t, EqualApprox(Mul(m3, m3.Inverse()), Identity(3), 1e-5))

	// Only 2x2 and 3x3 are supported.
	assert.True(t, NewMatrix(1, 1, 4).Inverse().IsNull())
	assert.True(t, NewMatrix(2, 3, 1, 2, 3, 4, 5, 6).Inverse().IsNull())
	assert.True(t, Vector3(1, 2, 3).Inverse().IsNull())
}

func TestMatrixInverseProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	for _, n := range []int{2, 3} {
		for i := 0; i < 50; i++ {
			a := wellConditioned(rng, n)
			assert.True(t, EqualApprox(a.Inverse().Inverse(), a, 1e-4), "inv(inv(a)) != a\n%v", a)

			// Cross-check with a double precision LU inverse.
			var ref mat.Dense
			require.NoError(t, ref.Inverse(ToGonum(a)))
			assert.True(t, EqualApprox(a.Inverse(), FromGonum(&ref), 1e-4))
		}
	}
}

func TestMatrixDoesNotAllocate(t *testing.T) {
	a := NewMatrix(3, 3, 1, 2, 3, 4, 5, 6, 7, 8, 10)
	b := Identity(3)
	var out Matrix
	allocs := testing.AllocsPerRun(100, func() {
		out = Add(Mul(a, b.T()), Sub(a.Inverse(), b))
	})
	assert.Zero(t, allocs)
	assert.False(t, out.IsNull())
}

func TestMatrixString(t *testing.T) {
	assert.Equal(t, "[1 2]\n[3 4.5]", NewMatrix(2, 2, 1, 2, 3, 4.5).String())
}

package photic

import (
	"fmt"
	"strings"
)

// MaxDim is the largest row or column count a Matrix can hold. 3x3 is the
// largest shape the altitude filter needs.
const MaxDim = 3

// DefaultTolerance is the element tolerance used by approximate comparisons
// when the caller has no better figure.
const DefaultTolerance = 1e-6

// Matrix is a small fixed-capacity float32 matrix. Its storage is an inline
// array, so values are copied on assignment and never touch the heap.
//
// There is no bounds checking. Creating a matrix larger than MaxDim, or
// accessing an element outside the declared shape, is undefined.
//
// Illegal arithmetic does not panic nor return an error: the result is the
// 0x0 null matrix, and every operation involving a null operand is null as
// well. If a computation yields an empty matrix, incompatible shapes were
// combined somewhere upstream.
type Matrix struct {
	rows, cols int
	data       [MaxDim * MaxDim]float32
}

// Null is the 0x0 matrix returned by illegal operations. It is also the zero
// value of Matrix.
var Null = Matrix{}

// NewMatrix returns a rows x cols matrix filled left to right, top to bottom
// with vals. Missing values are zero and extra values are ignored.
func NewMatrix(rows, cols int, vals ...float32) Matrix {
	m := Matrix{rows: rows, cols: cols}
	m.Fill(vals...)
	return m
}

// Fill overwrites the matrix in row-major order. Elements without a
// corresponding value are set to zero.
func (m *Matrix) Fill(vals ...float32) {
	for i := 0; i < m.rows*m.cols; i++ {
		var v float32
		if i < len(vals) {
			v = vals[i]
		}
		m.data[idx(i/m.cols, i%m.cols)] = v
	}
}

func idx(r, c int) int {
	return r*MaxDim + c
}

// Dims returns the row and column counts.
func (m Matrix) Dims() (r, c int) {
	return m.rows, m.cols
}

// IsNull reports whether m is the null matrix.
func (m Matrix) IsNull() bool {
	return m.rows == 0 && m.cols == 0
}

// At returns the element at (r, c).
func (m Matrix) At(r, c int) float32 {
	return m.data[idx(r, c)]
}

// Set sets the element at (r, c).
func (m *Matrix) Set(r, c int, v float32) {
	m.data[idx(r, c)] = v
}

// AtVec returns the i-th element of a single column matrix.
func (m Matrix) AtVec(i int) float32 {
	return m.data[idx(i, 0)]
}

// SetVec sets the i-th element of a single column matrix.
func (m *Matrix) SetVec(i int, v float32) {
	m.data[idx(i, 0)] = v
}

// Add returns a+b, or Null if the shapes differ.
func Add(a, b Matrix) Matrix {
	if !dimsAgree(a, b, rowsAndcols) {
		return Null
	}
	sum := Matrix{rows: a.rows, cols: a.cols}
	for r := 0; r < a.rows; r++ {
		for c := 0; c < a.cols; c++ {
			sum.data[idx(r, c)] = a.data[idx(r, c)] + b.data[idx(r, c)]
		}
	}
	return sum
}

// Sub returns a-b, or Null if the shapes differ.
func Sub(a, b Matrix) Matrix {
	if !dimsAgree(a, b, rowsAndcols) {
		return Null
	}
	diff := Matrix{rows: a.rows, cols: a.cols}
	for r := 0; r < a.rows; r++ {
		for c := 0; c < a.cols; c++ {
			diff.data[idx(r, c)] = a.data[idx(r, c)] - b.data[idx(r, c)]
		}
	}
	return diff
}

// Mul returns the product a*b, or Null if a's column count is not b's row
// count.
func Mul(a, b Matrix) Matrix {
	if !dimsAgree(a, b, cols2rows) {
		return Null
	}
	prod := Matrix{rows: a.rows, cols: b.cols}
	for r := 0; r < prod.rows; r++ {
		for c := 0; c < prod.cols; c++ {
			var k float32
			for j := 0; j < a.cols; j++ {
				k += a.data[idx(r, j)] * b.data[idx(j, c)]
			}
			prod.data[idx(r, c)] = k
		}
	}
	return prod
}

// Scale returns f*m. Scaling Null yields Null.
func Scale(f float32, m Matrix) Matrix {
	s := Matrix{rows: m.rows, cols: m.cols}
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			s.data[idx(r, c)] = f * m.data[idx(r, c)]
		}
	}
	return s
}

// Equal reports whether a and b have the same shape and identical elements.
func Equal(a, b Matrix) bool {
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	for r := 0; r < a.rows; r++ {
		for c := 0; c < a.cols; c++ {
			if a.data[idx(r, c)] != b.data[idx(r, c)] {
				return false
			}
		}
	}
	return true
}

// EqualApprox reports whether a and b have the same shape and every pair of
// elements differs by at most tol.
func EqualApprox(a, b Matrix, tol float32) bool {
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	for r := 0; r < a.rows; r++ {
		for c := 0; c < a.cols; c++ {
			d := a.data[idx(r, c)] - b.data[idx(r, c)]
			// Negated comparison so that NaN elements never compare equal.
			if !(d <= tol && -d <= tol) {
				return false
			}
		}
	}
	return true
}

// T returns the transpose of m.
func (m Matrix) T() Matrix {
	t := Matrix{rows: m.cols, cols: m.rows}
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			t.data[idx(c, r)] = m.data[idx(r, c)]
		}
	}
	return t
}

// Inverse returns the inverse of a 2x2 or 3x3 matrix, and Null for any other
// shape. The determinant is not checked: inverting a singular matrix divides
// by zero.
func (m Matrix) Inverse() Matrix {
	switch {
	case m.rows == 2 && m.cols == 2:
		return m.inv2x2()
	case m.rows == 3 && m.cols == 3:
		return m.inv3x3()
	}
	return Null
}

func (m Matrix) inv2x2() Matrix {
	a, b := m.At(0, 0), m.At(0, 1)
	c, d := m.At(1, 0), m.At(1, 1)
	det := a*d - b*c
	return NewMatrix(2, 2,
		d/det, -b/det,
		-c/det, a/det)
}

func (m Matrix) inv3x3() Matrix {
	a, b, c := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	d, e, f := m.At(1, 0), m.At(1, 1), m.At(1, 2)
	g, h, i := m.At(2, 0), m.At(2, 1), m.At(2, 2)

	// Cofactors of the first row.
	A := e*i - h*f
	B := d*i - f*g
	C := d*h - e*g
	det := a*A - b*B + c*C

	return NewMatrix(3, 3,
		A/det, (c*h-b*i)/det, (b*f-c*e)/det,
		-B/det, (a*i-c*g)/det, (d*c-a*f)/det,
		C/det, (g*b-a*h)/det, (a*e-d*b)/det)
}

// String implements the Stringer interface. It is meant for debugging and does
// not align columns.
func (m Matrix) String() string {
	if m.IsNull() {
		return "[]"
	}
	var sb strings.Builder
	for r := 0; r < m.rows; r++ {
		sb.WriteString("[")
		for c := 0; c < m.cols; c++ {
			if c > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "%g", m.At(r, c))
		}
		sb.WriteString("]")
		if r < m.rows-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

package photic

// Identity returns an identity matrix of the provided size, which must not
// exceed MaxDim.
func Identity(n int) Matrix {
	m := Matrix{rows: n, cols: n}
	for i := 0; i < n; i++ {
		m.data[idx(i, i)] = 1
	}
	return m
}

// Vector2 returns a 2x1 column vector.
func Vector2(v0, v1 float32) Matrix {
	return NewMatrix(2, 1, v0, v1)
}

// Vector3 returns a 3x1 column vector.
func Vector3(v0, v1, v2 float32) Matrix {
	return NewMatrix(3, 1, v0, v1, v2)
}

// IsNil returns whether the provided matrix only has zero values. The null
// matrix has no values and is therefore nil.
func IsNil(m Matrix) bool {
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			if m.At(r, c) != 0 {
				return false
			}
		}
	}
	return true
}

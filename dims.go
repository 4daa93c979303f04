package photic

// DimensionAgreement defines how two matrices' dimensions should agree.
type DimensionAgreement uint8

const (
	cols2rows   DimensionAgreement = iota + 1 // Matrix product.
	rowsAndcols                               // Element-wise operations.
)

// dimsAgree reports whether m1 and m2 can be combined under the provided
// DimensionAgreement. A null operand never agrees with anything, which is what
// makes null results propagate through a chain of operations.
func dimsAgree(m1, m2 Matrix, method DimensionAgreement) bool {
	if m1.IsNull() || m2.IsNull() {
		return false
	}
	r1, c1 := m1.Dims()
	r2, c2 := m2.Dims()
	switch method {
	case cols2rows:
		return c1 == r2
	case rowsAndcols:
		return r1 == r2 && c1 == c2
	}
	return false
}

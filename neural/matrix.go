package neural

import "gonum.org/v1/gonum/mat"

// Matrix is a dense row-major matrix of float64 values.
// The flat slice and the gonum view share the same backing array, so
// element writes through Set or Data are visible to matrix products.
type Matrix struct {
	rows, cols int
	data       []float64
	dense      *mat.Dense
}

// NewMatrix creates a zero-filled rows x cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	data := make([]float64, rows*cols)
	return &Matrix{
		rows:  rows,
		cols:  cols,
		data:  data,
		dense: mat.NewDense(rows, cols, data),
	}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns the value at (r, c).
func (m *Matrix) At(r, c int) float64 {
	return m.data[m.index(r, c)]
}

// Set stores v at (r, c).
func (m *Matrix) Set(r, c int, v float64) {
	m.data[m.index(r, c)] = v
}

// Data returns the flat row-major backing slice. Writes are visible to the matrix.
func (m *Matrix) Data() []float64 {
	return m.data
}

// Clone returns an independent copy.
func (m *Matrix) Clone() *Matrix {
	c := NewMatrix(m.rows, m.cols)
	copy(c.data, m.data)
	return c
}

// index maps (r, c) to the flat offset, panicking on out-of-range access
// the same way slice indexing does.
func (m *Matrix) index(r, c int) int {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		panic("neural: matrix index out of range")
	}
	return r*m.cols + c
}

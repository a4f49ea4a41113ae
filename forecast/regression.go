package forecast

import "math"

// linearModel is an ordinary least squares fit. coeffs[0] is the
// intercept, coeffs[1:] pair with the feature columns.
type linearModel struct {
	coeffs []float64
}

// fitLinear solves the normal equations (XᵀX)β = Xᵀy with Gaussian
// elimination. Rows of x are observations; an intercept column is added
// internally. Returns false when the system is singular.
func fitLinear(x [][]float64, y []float64) (*linearModel, bool) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, false
	}
	n := len(x[0]) + 1 // features plus intercept

	xtx := make([][]float64, n)
	xty := make([]float64, n)
	for i := range xtx {
		xtx[i] = make([]float64, n)
	}

	row := make([]float64, n)
	for k, obs := range x {
		row[0] = 1
		copy(row[1:], obs)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				xtx[i][j] += row[i] * row[j]
			}
			xty[i] += row[i] * y[k]
		}
	}

	coeffs, ok := solve(xtx, xty)
	if !ok {
		return nil, false
	}
	return &linearModel{coeffs: coeffs}, true
}

// predict evaluates the fitted model on one feature vector.
func (m *linearModel) predict(features []float64) float64 {
	out := m.coeffs[0]
	for i, f := range features {
		out += m.coeffs[i+1] * f
	}
	return out
}

// rSquared is the coefficient of determination against the mean
// baseline. A zero-variance target fits trivially and reports 1.
func (m *linearModel) rSquared(x [][]float64, y []float64) float64 {
	var sum float64
	for _, v := range y {
		sum += v
	}
	mean := sum / float64(len(y))

	var ssRes, ssTot float64
	for i, obs := range x {
		d := y[i] - m.predict(obs)
		ssRes += d * d
		t := y[i] - mean
		ssTot += t * t
	}
	if ssTot == 0 {
		return 1
	}
	return 1 - ssRes/ssTot
}

// solve performs Gaussian elimination with partial pivoting on a
// square system. Returns false for singular matrices.
func solve(a [][]float64, b []float64) ([]float64, bool) {
	n := len(b)
	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return nil, false
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for r := col + 1; r < n; r++ {
			f := a[r][col] / a[col][col]
			for c := col; c < n; c++ {
				a[r][c] -= f * a[col][c]
			}
			b[r] -= f * b[col]
		}
	}

	x := make([]float64, n)
	for r := n - 1; r >= 0; r-- {
		x[r] = b[r]
		for c := r + 1; c < n; c++ {
			x[r] -= a[r][c] * x[c]
		}
		x[r] /= a[r][r]
	}
	return x, true
}

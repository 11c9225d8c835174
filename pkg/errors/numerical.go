package errors

import "math"

// CheckMatrix scans a matrix for NaN or Inf entries and returns a
// ValueError naming the operation when one is found. Estimators use this
// to reject unclean input before fitting.
func CheckMatrix(op string, m interface{ At(int, int) float64 }, rows, cols int) error {
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return NewValueError(op, "input contains NaN or Inf; call Dataset.DropNA first")
			}
		}
	}
	return nil
}

// SafeDivide divides with protection against a zero denominator,
// returning 0 when the denominator is (close to) zero.
func SafeDivide(numerator, denominator float64) float64 {
	if math.Abs(denominator) < 1e-10 {
		return 0
	}
	return numerator / denominator
}

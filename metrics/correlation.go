package metrics

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/tabgo-ml/tabgo/pkg/errors"
)

// CorrelationMatrix computes the Pearson correlation matrix of the
// columns of X.
func CorrelationMatrix(X mat.Matrix) (*mat.SymDense, error) {
	r, c := X.Dims()
	if r < 2 || c == 0 {
		return nil, errors.NewValueError("CorrelationMatrix", "need at least 2 rows and 1 column")
	}

	corr := mat.NewSymDense(c, nil)
	stat.CorrelationMatrix(corr, X, nil)
	return corr, nil
}

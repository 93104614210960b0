// Package metrics implements the classification metrics used by the
// cross-validation harness: exact-match accuracy and the area under the
// ROC curve as a probability-ranking metric.
package metrics

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/tabeval/tabeval/pkg/errors"
)

// Accuracy computes the exact-match rate between predicted and true labels.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	if yTrue == nil || yPred == nil || yTrue.Len() == 0 {
		return 0, errors.NewValueError("accuracy", "empty vector")
	}
	n := yTrue.Len()
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("accuracy", n, yPred.Len(), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// AccuracyMatrix computes accuracy from n×1 matrices. Inputs with more
// than one column use the first column.
func AccuracyMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	yTrueVec, err := firstColumn("accuracy", yTrue)
	if err != nil {
		return 0, err
	}
	yPredVec, err := firstColumn("accuracy", yPred)
	if err != nil {
		return 0, err
	}
	return Accuracy(yTrueVec, yPredVec)
}

// AUC computes the area under the ROC curve from binary labels and
// positive-class scores, using the rank-statistic formulation with midrank
// tie handling. If only one class is present the metric is undefined: an
// UndefinedMetricWarning is emitted and 0.5 is returned.
func AUC(yTrue, yScore *mat.VecDense) (float64, error) {
	if yTrue == nil || yScore == nil || yTrue.Len() == 0 {
		return 0, errors.NewValueError("roc_auc", "empty vector")
	}
	n := yTrue.Len()
	if yScore.Len() != n {
		return 0, errors.NewDimensionError("roc_auc", n, yScore.Len(), 0)
	}

	nPos, nNeg := 0, 0
	for i := 0; i < n; i++ {
		switch yTrue.AtVec(i) {
		case 1:
			nPos++
		case 0:
			nNeg++
		default:
			return 0, errors.NewValueError("roc_auc", "labels must be binary (0 or 1)")
		}
	}
	if nPos == 0 || nNeg == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("roc_auc", "only one class present", 0.5))
		return 0.5, nil
	}

	// Rank scores ascending with average ranks for ties, then apply the
	// Mann-Whitney identity.
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return yScore.AtVec(idx[a]) < yScore.AtVec(idx[b])
	})

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && yScore.AtVec(idx[j+1]) == yScore.AtVec(idx[i]) {
			j++
		}
		// 1-based ranks i+1..j+1 share the average rank.
		avg := float64(i+j+2) / 2.0
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}

	sumPosRanks := 0.0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == 1 {
			sumPosRanks += ranks[i]
		}
	}
	return (sumPosRanks - float64(nPos)*float64(nPos+1)/2.0) / (float64(nPos) * float64(nNeg)), nil
}

// AUCMatrix computes AUC from n×1 matrices. Inputs with more than one
// column use the first column.
func AUCMatrix(yTrue, yScore mat.Matrix) (float64, error) {
	yTrueVec, err := firstColumn("roc_auc", yTrue)
	if err != nil {
		return 0, err
	}
	yScoreVec, err := firstColumn("roc_auc", yScore)
	if err != nil {
		return 0, err
	}
	return AUC(yTrueVec, yScoreVec)
}

func firstColumn(op string, m mat.Matrix) (*mat.VecDense, error) {
	if m == nil {
		return nil, errors.NewValueError(op, "nil matrix")
	}
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewValueError(op, "empty matrix")
	}
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, m.At(i, 0))
	}
	return v, nil
}

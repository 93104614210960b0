// Package crossval implements the cross-validated training-and-evaluation
// harness: stratified fold partitioning, the model registry it drives, and
// per-fold metric aggregation into an evaluation summary.
package crossval

import (
	"math/rand/v2"
	"sort"

	"github.com/tabeval/tabeval/pkg/errors"
)

// Fold is one train/held-out partition of row indices. Indices are sorted
// ascending within each slice.
type Fold struct {
	TrainIndices []int
	TestIndices  []int
}

// StratifiedKFold partitions row indices into k folds whose held-out
// partitions preserve the global positive/negative label ratio as closely
// as integer rounding allows. Partitioning is a pure function of the
// labels, fold count and seed, so identical runs produce identical folds.
type StratifiedKFold struct {
	NumFolds int
	Seed     int64
}

// NewStratifiedKFold creates a stratified k-fold splitter.
func NewStratifiedKFold(numFolds int, seed int64) *StratifiedKFold {
	return &StratifiedKFold{
		NumFolds: numFolds,
		Seed:     seed,
	}
}

// Split partitions the index range [0, len(labels)) into folds. The fold
// count must be at least 2 and no greater than the minority-class count,
// otherwise some held-out partition would miss a class entirely.
func (s *StratifiedKFold) Split(labels []float64) ([]Fold, error) {
	if s.NumFolds < 2 {
		return nil, errors.NewConfigurationError("fold_count", "must be at least 2", s.NumFolds)
	}
	if len(labels) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "StratifiedKFold.Split")
	}

	var neg, pos []int
	for i, y := range labels {
		switch y {
		case 0:
			neg = append(neg, i)
		case 1:
			pos = append(pos, i)
		default:
			return nil, errors.NewValueError("StratifiedKFold.Split", "labels must be binary (0 or 1)")
		}
	}
	minority := len(neg)
	if len(pos) < minority {
		minority = len(pos)
	}
	if s.NumFolds > minority {
		return nil, errors.NewConfigurationError("fold_count",
			"must not exceed the minority-class count", s.NumFolds)
	}

	// One seeded generator shuffles both classes, negatives first, so the
	// whole partition is reproducible from the seed alone.
	r := rand.New(rand.NewPCG(uint64(s.Seed), uint64(s.Seed)))
	r.Shuffle(len(neg), func(i, j int) { neg[i], neg[j] = neg[j], neg[i] })
	r.Shuffle(len(pos), func(i, j int) { pos[i], pos[j] = pos[j], pos[i] })

	folds := make([]Fold, s.NumFolds)
	for _, class := range [][]int{neg, pos} {
		chunk := len(class) / s.NumFolds
		remainder := len(class) % s.NumFolds
		cur := 0
		for f := 0; f < s.NumFolds; f++ {
			size := chunk
			if f < remainder {
				size++
			}
			folds[f].TestIndices = append(folds[f].TestIndices, class[cur:cur+size]...)
			cur += size
		}
	}

	n := len(labels)
	for f := range folds {
		sort.Ints(folds[f].TestIndices)
		held := make([]bool, n)
		for _, idx := range folds[f].TestIndices {
			held[idx] = true
		}
		train := make([]int, 0, n-len(folds[f].TestIndices))
		for i := 0; i < n; i++ {
			if !held[i] {
				train = append(train, i)
			}
		}
		folds[f].TrainIndices = train
	}

	return folds, nil
}

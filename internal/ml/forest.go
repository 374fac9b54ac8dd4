package ml

import (
	"math/rand"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/floats"
)

// ForestConfig controls random forest training.
type ForestConfig struct {
	NumTrees int
	MaxDepth int
	Seed     int64
}

// RandomForest is a bagged ensemble of CART trees voting by averaged leaf
// class distributions. Fields are exported for gob serialization.
type RandomForest struct {
	Trees       []*TreeNode
	ClassCount  int
	FeatCount   int
	Importances []float64 // normalized mean impurity decrease per feature
}

// FitForest trains a random forest over the sample matrix and integer
// class labels. Training is deterministic for a given config seed.
func FitForest(cfg ForestConfig, samples [][]float64, labels []int, classCount int) (*RandomForest, error) {
	if len(samples) == 0 {
		return nil, eris.New("ml: forest: no samples")
	}
	if len(samples) != len(labels) {
		return nil, eris.Errorf("ml: forest: %d samples but %d labels", len(samples), len(labels))
	}
	if classCount < 2 {
		return nil, eris.Errorf("ml: forest: need at least 2 classes, got %d", classCount)
	}
	featCount := len(samples[0])
	if featCount == 0 {
		return nil, eris.New("ml: forest: no features")
	}
	for i, row := range samples {
		if len(row) != featCount {
			return nil, eris.Errorf("ml: forest: ragged sample row %d", i)
		}
	}
	for i, y := range labels {
		if y < 0 || y >= classCount {
			return nil, eris.Errorf("ml: forest: label %d out of range at row %d", y, i)
		}
	}
	if cfg.NumTrees <= 0 {
		return nil, eris.New("ml: forest: tree count must be positive")
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	n := len(samples)

	f := &RandomForest{
		Trees:       make([]*TreeNode, 0, cfg.NumTrees),
		ClassCount:  classCount,
		FeatCount:   featCount,
		Importances: make([]float64, featCount),
	}

	rawImportances := make([]float64, featCount)
	for t := 0; t < cfg.NumTrees; t++ {
		// Bootstrap sample with replacement.
		idx := make([]int, n)
		for i := range idx {
			idx[i] = rng.Intn(n)
		}

		b := &treeBuilder{
			samples:     samples,
			labels:      labels,
			classCount:  classCount,
			maxDepth:    cfg.MaxDepth,
			maxFeatures: defaultMaxFeatures(featCount),
			rng:         rng,
			total:       n,
			importances: make([]float64, featCount),
		}
		f.Trees = append(f.Trees, b.build(idx, 0))
		floats.Add(rawImportances, b.importances)
	}

	if total := floats.Sum(rawImportances); total > 0 {
		for j, v := range rawImportances {
			f.Importances[j] = v / total
		}
	}

	return f, nil
}

// PredictProba returns the class probability vector for one sample,
// averaged over all tree leaf distributions.
func (f *RandomForest) PredictProba(sample []float64) []float64 {
	probs := make([]float64, f.ClassCount)
	for _, tree := range f.Trees {
		floats.Add(probs, tree.predict(sample))
	}
	floats.Scale(1/float64(len(f.Trees)), probs)
	return probs
}

// Predict returns the most probable class for the sample. Ties break to
// the lowest class index.
func (f *RandomForest) Predict(sample []float64) int {
	probs := f.PredictProba(sample)
	best := 0
	for c := 1; c < len(probs); c++ {
		if probs[c] > probs[best] {
			best = c
		}
	}
	return best
}

package ml

import (
	"math"
	"math/rand"
	"sort"
)

// TreeNode is one node of a CART decision tree. Leaf nodes carry Dist,
// the class probability distribution of the training samples that reached
// them; internal nodes carry a split on Feature at Threshold. Exported
// for gob serialization.
type TreeNode struct {
	Feature   int
	Threshold float64
	Left      *TreeNode
	Right     *TreeNode
	Dist      []float64
}

// IsLeaf reports whether the node carries a class distribution.
func (n *TreeNode) IsLeaf() bool {
	return n.Dist != nil
}

// predict walks the tree and returns the leaf distribution for the sample.
func (n *TreeNode) predict(sample []float64) []float64 {
	node := n
	for !node.IsLeaf() {
		if sample[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Dist
}

// treeBuilder holds the state shared across one tree's recursive build.
type treeBuilder struct {
	samples     [][]float64
	labels      []int
	classCount  int
	maxDepth    int
	maxFeatures int
	rng         *rand.Rand
	total       int       // root sample count, for importance weighting
	importances []float64 // accumulated impurity decrease per feature
}

// gini computes the Gini impurity of the label counts.
func gini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	impurity := 1.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		impurity -= p * p
	}
	return impurity
}

func (b *treeBuilder) classCounts(idx []int) []int {
	counts := make([]int, b.classCount)
	for _, i := range idx {
		counts[b.labels[i]]++
	}
	return counts
}

func (b *treeBuilder) leaf(counts []int, n int) *TreeNode {
	dist := make([]float64, b.classCount)
	for c, cnt := range counts {
		dist[c] = float64(cnt) / float64(n)
	}
	return &TreeNode{Dist: dist}
}

// bestSplit searches a random feature subset for the split with the
// largest impurity decrease. Returns ok=false when no split improves on
// the parent impurity.
func (b *treeBuilder) bestSplit(idx []int, parentGini float64) (feature int, threshold float64, left, right []int, gain float64, ok bool) {
	n := len(idx)

	perm := b.rng.Perm(len(b.samples[0]))
	candidates := perm[:b.maxFeatures]

	values := make([]float64, 0, n)
	for _, f := range candidates {
		values = values[:0]
		for _, i := range idx {
			values = append(values, b.samples[i][f])
		}
		sort.Float64s(values)

		for k := 1; k < n; k++ {
			if values[k] == values[k-1] {
				continue
			}
			t := (values[k] + values[k-1]) / 2

			var lIdx, rIdx []int
			for _, i := range idx {
				if b.samples[i][f] <= t {
					lIdx = append(lIdx, i)
				} else {
					rIdx = append(rIdx, i)
				}
			}
			if len(lIdx) == 0 || len(rIdx) == 0 {
				continue
			}

			gL := gini(b.classCounts(lIdx), len(lIdx))
			gR := gini(b.classCounts(rIdx), len(rIdx))
			weighted := (float64(len(lIdx))*gL + float64(len(rIdx))*gR) / float64(n)
			g := parentGini - weighted
			if g > gain {
				feature, threshold, left, right, gain, ok = f, t, lIdx, rIdx, g, true
			}
		}
	}
	return feature, threshold, left, right, gain, ok
}

// build grows a tree node over the given sample indices.
func (b *treeBuilder) build(idx []int, depth int) *TreeNode {
	counts := b.classCounts(idx)
	n := len(idx)
	parentGini := gini(counts, n)

	if depth >= b.maxDepth || n < 2 || parentGini == 0 {
		return b.leaf(counts, n)
	}

	feature, threshold, left, right, gain, ok := b.bestSplit(idx, parentGini)
	if !ok {
		return b.leaf(counts, n)
	}

	// Weighted impurity decrease, accumulated for feature importance.
	b.importances[feature] += float64(n) / float64(b.total) * gain

	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      b.build(left, depth+1),
		Right:     b.build(right, depth+1),
	}
}

// defaultMaxFeatures is sqrt of the feature count, floored, at least 1.
func defaultMaxFeatures(featureCount int) int {
	m := int(math.Sqrt(float64(featureCount)))
	if m < 1 {
		m = 1
	}
	return m
}

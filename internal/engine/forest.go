package engine

import (
	"errors"
	"math"
	"math/rand"
	"sort"
)

// A small random-forest classifier for the at-risk prediction: bootstrapped
// gini-split decision trees over the three risk features. Training is seeded
// explicitly so repeated runs over the same population are deterministic.

type forestConfig struct {
	trees    int
	maxDepth int
	seed     int64
}

type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	leaf      bool
	// probability of the positive class at a leaf
	proba float64
}

type randomForest struct {
	trees       []*treeNode
	importances []float64
}

var (
	errNoTrainingData = errors.New("forest: no training data")
	errSingleClass    = errors.New("forest: training labels contain a single class")
)

// trainForest fits the ensemble. It refuses degenerate inputs (empty set,
// one-class labels) so the caller can fall back to the rule-based estimator.
func trainForest(features [][]float64, labels []int, cfg forestConfig) (*randomForest, error) {
	if len(features) == 0 || len(features) != len(labels) {
		return nil, errNoTrainingData
	}
	positives := 0
	for _, label := range labels {
		if label == 1 {
			positives++
		}
	}
	if positives == 0 || positives == len(labels) {
		return nil, errSingleClass
	}

	nFeatures := len(features[0])
	rng := rand.New(rand.NewSource(cfg.seed))
	forest := &randomForest{importances: make([]float64, nFeatures)}

	// max_features = sqrt(n) per split, matching the usual classifier default
	mtry := int(math.Sqrt(float64(nFeatures)))
	if mtry < 1 {
		mtry = 1
	}

	for t := 0; t < cfg.trees; t++ {
		sampleIdx := make([]int, len(features))
		for i := range sampleIdx {
			sampleIdx[i] = rng.Intn(len(features))
		}
		root := growTree(features, labels, sampleIdx, 0, cfg.maxDepth, mtry, rng, forest.importances)
		forest.trees = append(forest.trees, root)
	}

	// importances are reported as fractions summing to one
	var total float64
	for _, v := range forest.importances {
		total += v
	}
	if total > 0 {
		for i := range forest.importances {
			forest.importances[i] /= total
		}
	}
	return forest, nil
}

func growTree(features [][]float64, labels []int, idx []int, depth, maxDepth, mtry int, rng *rand.Rand, importances []float64) *treeNode {
	positives := 0
	for _, i := range idx {
		positives += labels[i]
	}

	node := &treeNode{leaf: true, proba: float64(positives) / float64(len(idx))}
	if depth >= maxDepth || positives == 0 || positives == len(idx) || len(idx) < 2 {
		return node
	}

	feature, threshold, gain := bestSplit(features, labels, idx, mtry, rng)
	if gain <= 0 {
		return node
	}

	var leftIdx, rightIdx []int
	for _, i := range idx {
		if features[i][feature] <= threshold {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}
	if len(leftIdx) == 0 || len(rightIdx) == 0 {
		return node
	}

	importances[feature] += gain * float64(len(idx))

	node.leaf = false
	node.feature = feature
	node.threshold = threshold
	node.left = growTree(features, labels, leftIdx, depth+1, maxDepth, mtry, rng, importances)
	node.right = growTree(features, labels, rightIdx, depth+1, maxDepth, mtry, rng, importances)
	return node
}

// bestSplit evaluates candidate thresholds on a random feature subset and
// returns the split with the highest gini gain.
func bestSplit(features [][]float64, labels []int, idx []int, mtry int, rng *rand.Rand) (int, float64, float64) {
	nFeatures := len(features[0])
	perm := rng.Perm(nFeatures)[:mtry]

	parentGini := giniOf(labels, idx)

	bestFeature, bestThreshold, bestGain := -1, 0.0, 0.0
	for _, feature := range perm {
		values := make([]float64, 0, len(idx))
		for _, i := range idx {
			values = append(values, features[i][feature])
		}
		sort.Float64s(values)

		for v := 1; v < len(values); v++ {
			if values[v] == values[v-1] {
				continue
			}
			threshold := (values[v] + values[v-1]) / 2

			var leftLabels, rightLabels []int
			for _, i := range idx {
				if features[i][feature] <= threshold {
					leftLabels = append(leftLabels, i)
				} else {
					rightLabels = append(rightLabels, i)
				}
			}

			weightLeft := float64(len(leftLabels)) / float64(len(idx))
			weightRight := float64(len(rightLabels)) / float64(len(idx))
			gain := parentGini - weightLeft*giniOf(labels, leftLabels) - weightRight*giniOf(labels, rightLabels)
			if gain > bestGain {
				bestFeature, bestThreshold, bestGain = feature, threshold, gain
			}
		}
	}
	return bestFeature, bestThreshold, bestGain
}

func giniOf(labels []int, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	positives := 0
	for _, i := range idx {
		positives += labels[i]
	}
	p := float64(positives) / float64(len(idx))
	return 2 * p * (1 - p)
}

// predictProba averages the positive-class probability across all trees.
func (f *randomForest) predictProba(x []float64) float64 {
	if len(f.trees) == 0 {
		return 0
	}
	var total float64
	for _, root := range f.trees {
		node := root
		for !node.leaf {
			if x[node.feature] <= node.threshold {
				node = node.left
			} else {
				node = node.right
			}
		}
		total += node.proba
	}
	return total / float64(len(f.trees))
}

// featureImportances returns the normalized impurity-decrease share per
// feature, in input order.
func (f *randomForest) featureImportances() []float64 {
	out := make([]float64, len(f.importances))
	copy(out, f.importances)
	return out
}

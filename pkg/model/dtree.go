package model

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"
)

// DecisionTreeClassifier is a CART-style classifier over numeric features.
// All state is exported so fitted trees survive a gob round trip.
type DecisionTreeClassifier struct {
	MaxDepth            int     // maximum depth (root depth = 0). 0 => no limit
	MinSamplesSplit     int     // minimum samples to attempt a split
	MinSamplesLeaf      int     // minimum samples required in each leaf
	Criterion           string  // "gini" (default) or "entropy"
	MaxFeatures         int     // 0 => all features, >0 => features sampled per split
	MinImpurityDecrease float64 // minimal impurity decrease to accept a split
	RandomState         int64   // seed for feature subsampling

	Root    *TreeNode
	Classes []int // sorted class labels; proba vectors align with this
}

// TreeNode is a node in the fitted tree.
type TreeNode struct {
	Leaf      bool
	Feature   int
	Threshold float64 // x <= Threshold => left
	Left      *TreeNode
	Right     *TreeNode
	N         int
	Probas    []float64 // class distribution, aligned with tree Classes
}

// TreeOption is functional config for DecisionTreeClassifier.
type TreeOption func(*DecisionTreeClassifier)

func WithMaxDepth(d int) TreeOption { return func(t *DecisionTreeClassifier) { t.MaxDepth = d } }
func WithMinSamplesSplit(n int) TreeOption {
	return func(t *DecisionTreeClassifier) { t.MinSamplesSplit = n }
}
func WithMinSamplesLeaf(n int) TreeOption {
	return func(t *DecisionTreeClassifier) { t.MinSamplesLeaf = n }
}
func WithCriterion(c string) TreeOption { return func(t *DecisionTreeClassifier) { t.Criterion = c } }
func WithMaxFeatures(k int) TreeOption  { return func(t *DecisionTreeClassifier) { t.MaxFeatures = k } }
func WithMinImpurityDecrease(v float64) TreeOption {
	return func(t *DecisionTreeClassifier) { t.MinImpurityDecrease = v }
}
func WithRandomState(seed int64) TreeOption {
	return func(t *DecisionTreeClassifier) { t.RandomState = seed }
}

// NewDecisionTreeClassifier returns a classifier with sensible defaults.
func NewDecisionTreeClassifier(opts ...TreeOption) *DecisionTreeClassifier {
	t := &DecisionTreeClassifier{
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Criterion:       "gini",
		RandomState:     time.Now().UnixNano(),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Fit trains the tree on X (n x p) and integer labels y.
func (t *DecisionTreeClassifier) Fit(X [][]float64, y []int) error {
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	return t.FitIndices(X, y, idx)
}

// FitIndices trains the tree on the subset of X/y selected by sample indices.
// Duplicate indices are allowed, which is what bootstrap sampling relies on.
func (t *DecisionTreeClassifier) FitIndices(X [][]float64, y []int, idx []int) error {
	if len(X) == 0 || len(idx) == 0 {
		return errors.New("dtree: empty X")
	}
	if len(y) != len(X) {
		return errors.New("dtree: X and y length mismatch")
	}
	p := len(X[0])
	for i := range X {
		if len(X[i]) != p {
			return errors.New("dtree: inconsistent number of features in X rows")
		}
	}

	seen := map[int]struct{}{}
	t.Classes = nil
	for _, i := range idx {
		if _, ok := seen[y[i]]; !ok {
			seen[y[i]] = struct{}{}
			t.Classes = append(t.Classes, y[i])
		}
	}
	sort.Ints(t.Classes)

	rnd := rand.New(rand.NewSource(t.RandomState))
	impurity := giniFromCounts
	if t.Criterion == "entropy" {
		impurity = entropyFromCounts
	}
	t.Root = t.buildNode(X, y, idx, 0, p, impurity, rnd)
	return nil
}

// Predict returns predicted class labels for each row of X.
func (t *DecisionTreeClassifier) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	for i := range X {
		out[i] = t.Classes[argmaxFloat(t.PredictProbaOne(X[i]))]
	}
	return out
}

// PredictProba returns per-class probability vectors aligned with Classes.
func (t *DecisionTreeClassifier) PredictProba(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i := range X {
		out[i] = t.PredictProbaOne(X[i])
	}
	return out
}

// PredictProbaOne returns the class distribution for a single row. An
// unfitted tree returns the uniform distribution.
func (t *DecisionTreeClassifier) PredictProbaOne(x []float64) []float64 {
	if t.Root == nil {
		p := make([]float64, len(t.Classes))
		for i := range p {
			p[i] = 1.0 / float64(len(p))
		}
		return p
	}
	node := t.Root
	for !node.Leaf {
		if x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Probas
}

type splitResult struct {
	gain      float64
	feature   int
	threshold float64
	leftIdx   []int
	rightIdx  []int
}

func (t *DecisionTreeClassifier) buildNode(X [][]float64, y []int, idx []int, depth, p int, impurity func([]int) float64, rnd *rand.Rand) *TreeNode {
	node := &TreeNode{N: len(idx)}
	counts := t.classCounts(y, idx)

	leaf := func() *TreeNode {
		node.Leaf = true
		node.Probas = countsToProbas(counts)
		return node
	}
	if isPure(counts) || len(idx) < t.MinSamplesSplit {
		return leaf()
	}
	if t.MaxDepth > 0 && depth >= t.MaxDepth {
		return leaf()
	}

	feats := make([]int, p)
	for j := range feats {
		feats[j] = j
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < p {
		rnd.Shuffle(p, func(a, b int) { feats[a], feats[b] = feats[b], feats[a] })
		feats = feats[:t.MaxFeatures]
	}

	parent := impurity(counts)
	results := make(chan splitResult, len(feats))
	var wg sync.WaitGroup
	for _, f := range feats {
		wg.Add(1)
		go func(f int) {
			defer wg.Done()
			results <- t.bestSplitForFeature(X, y, idx, f, parent, impurity)
		}(f)
	}
	wg.Wait()
	close(results)

	best := splitResult{feature: -1}
	for r := range results {
		if r.feature >= 0 && r.gain > best.gain {
			best = r
		}
	}
	if best.feature < 0 || best.gain <= t.MinImpurityDecrease {
		return leaf()
	}

	node.Feature = best.feature
	node.Threshold = best.threshold
	node.Left = t.buildNode(X, y, best.leftIdx, depth+1, p, impurity, rnd)
	node.Right = t.buildNode(X, y, best.rightIdx, depth+1, p, impurity, rnd)
	return node
}

// bestSplitForFeature scans the midpoints between consecutive distinct values
// of feature f and keeps the threshold with the largest impurity decrease.
func (t *DecisionTreeClassifier) bestSplitForFeature(X [][]float64, y []int, idx []int, f int, parent float64, impurity func([]int) float64) splitResult {
	best := splitResult{feature: -1}

	ordered := make([]int, len(idx))
	copy(ordered, idx)
	sort.Slice(ordered, func(a, b int) bool { return X[ordered[a]][f] < X[ordered[b]][f] })

	total := float64(len(ordered))
	for s := 1; s < len(ordered); s++ {
		lo, hi := X[ordered[s-1]][f], X[ordered[s]][f]
		if lo == hi {
			continue
		}
		left, right := ordered[:s], ordered[s:]
		if len(left) < t.MinSamplesLeaf || len(right) < t.MinSamplesLeaf {
			continue
		}
		weighted := float64(len(left))/total*impurity(t.classCounts(y, left)) +
			float64(len(right))/total*impurity(t.classCounts(y, right))
		if gain := parent - weighted; gain > best.gain {
			best = splitResult{
				gain:      gain,
				feature:   f,
				threshold: (lo + hi) / 2,
				leftIdx:   append([]int(nil), left...),
				rightIdx:  append([]int(nil), right...),
			}
		}
	}
	return best
}

func (t *DecisionTreeClassifier) classCounts(y []int, idx []int) []int {
	counts := make([]int, len(t.Classes))
	for _, i := range idx {
		counts[classIndex(y[i], t.Classes)]++
	}
	return counts
}

// classIndex returns the position of label in the sorted classes slice.
func classIndex(label int, classes []int) int {
	j := sort.SearchInts(classes, label)
	if j < len(classes) && classes[j] == label {
		return j
	}
	return 0
}

func giniFromCounts(counts []int) float64 {
	n := 0.0
	for _, c := range counts {
		n += float64(c)
	}
	if n == 0 {
		return 0
	}
	res := 0.0
	for _, c := range counts {
		p := float64(c) / n
		res += p * (1 - p)
	}
	return res
}

func entropyFromCounts(counts []int) float64 {
	n := 0.0
	for _, c := range counts {
		n += float64(c)
	}
	if n == 0 {
		return 0
	}
	res := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		res -= p * math.Log2(p)
	}
	return res
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func countsToProbas(counts []int) []float64 {
	n := 0
	for _, c := range counts {
		n += c
	}
	p := make([]float64, len(counts))
	if n == 0 {
		return p
	}
	for i := range counts {
		p[i] = float64(counts[i]) / float64(n)
	}
	return p
}

func argmaxFloat(arr []float64) int {
	best := 0
	for i := 1; i < len(arr); i++ {
		if arr[i] > arr[best] {
			best = i
		}
	}
	return best
}

package model

import (
	"errors"
	"math/rand"
	"sort"
	"sync"
	"time"
)

// RandomForest is a bagged ensemble of decision trees for classification.
// Probability output is the average of the per-tree class distributions.
type RandomForest struct {
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	MaxFeatures     int
	Bootstrap       bool
	RandomState     int64

	Trees   []*DecisionTreeClassifier
	Classes []int // sorted labels seen at Fit; proba vectors align with this
}

// ForestOption is functional config for RandomForest.
type ForestOption func(*RandomForest)

func WithNEstimators(n int) ForestOption { return func(rf *RandomForest) { rf.NEstimators = n } }
func WithForestMaxDepth(d int) ForestOption {
	return func(rf *RandomForest) { rf.MaxDepth = d }
}
func WithForestMinSamplesSplit(n int) ForestOption {
	return func(rf *RandomForest) { rf.MinSamplesSplit = n }
}
func WithForestMinSamplesLeaf(n int) ForestOption {
	return func(rf *RandomForest) { rf.MinSamplesLeaf = n }
}
func WithForestMaxFeatures(k int) ForestOption {
	return func(rf *RandomForest) { rf.MaxFeatures = k }
}
func WithBootstrap(b bool) ForestOption { return func(rf *RandomForest) { rf.Bootstrap = b } }
func WithSeed(seed int64) ForestOption  { return func(rf *RandomForest) { rf.RandomState = seed } }

// NewRandomForest initializes the forest with sensible defaults.
func NewRandomForest(opts ...ForestOption) *RandomForest {
	rf := &RandomForest{
		NEstimators:     100,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Bootstrap:       true,
		RandomState:     time.Now().UnixNano(),
	}
	for _, o := range opts {
		o(rf)
	}
	return rf
}

// Fitted reports whether the forest has been trained.
func (rf *RandomForest) Fitted() bool { return len(rf.Trees) > 0 }

// Fit trains the forest. Trees are trained concurrently, each on its own
// bootstrap sample (index-based, the rows themselves are shared).
func (rf *RandomForest) Fit(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("randomforest: empty X")
	}
	n := len(X)
	if len(y) != n {
		return errors.New("randomforest: X and y length mismatch")
	}

	seen := map[int]struct{}{}
	rf.Classes = nil
	for _, label := range y {
		if _, ok := seen[label]; !ok {
			seen[label] = struct{}{}
			rf.Classes = append(rf.Classes, label)
		}
	}
	sort.Ints(rf.Classes)

	rf.Trees = make([]*DecisionTreeClassifier, rf.NEstimators)
	var wg sync.WaitGroup
	errCh := make(chan error, rf.NEstimators)
	for i := 0; i < rf.NEstimators; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			treeRand := rand.New(rand.NewSource(rf.RandomState + int64(i)))
			idx := make([]int, n)
			for j := range idx {
				if rf.Bootstrap {
					idx[j] = treeRand.Intn(n)
				} else {
					idx[j] = j
				}
			}
			tree := NewDecisionTreeClassifier(
				WithMaxDepth(rf.MaxDepth),
				WithMinSamplesSplit(rf.MinSamplesSplit),
				WithMinSamplesLeaf(rf.MinSamplesLeaf),
				WithMaxFeatures(rf.MaxFeatures),
				WithRandomState(rf.RandomState+int64(i)),
			)
			if err := tree.FitIndices(X, y, idx); err != nil {
				errCh <- err
				return
			}
			rf.Trees[i] = tree
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}

// PredictProbaOne averages the tree distributions for a single row. Trees
// whose bootstrap sample missed a class contribute zero for it.
func (rf *RandomForest) PredictProbaOne(x []float64) []float64 {
	out := make([]float64, len(rf.Classes))
	if len(rf.Trees) == 0 {
		for i := range out {
			out[i] = 1.0 / float64(len(out))
		}
		return out
	}
	for _, tree := range rf.Trees {
		probas := tree.PredictProbaOne(x)
		for ti, label := range tree.Classes {
			out[classIndex(label, rf.Classes)] += probas[ti]
		}
	}
	for i := range out {
		out[i] /= float64(len(rf.Trees))
	}
	return out
}

// PredictProba returns averaged class distributions aligned with Classes.
func (rf *RandomForest) PredictProba(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	var wg sync.WaitGroup
	workers := make(chan struct{}, 8)
	for i := range X {
		wg.Add(1)
		workers <- struct{}{}
		go func(i int) {
			defer wg.Done()
			out[i] = rf.PredictProbaOne(X[i])
			<-workers
		}(i)
	}
	wg.Wait()
	return out
}

// Predict returns the label with the highest averaged probability per row.
func (rf *RandomForest) Predict(X [][]float64) []int {
	probas := rf.PredictProba(X)
	out := make([]int, len(X))
	for i := range probas {
		out[i] = rf.Classes[argmaxFloat(probas[i])]
	}
	return out
}

// ProbaOf returns the probability of the given label for a single row, 0 if
// the label was never seen at Fit.
func (rf *RandomForest) ProbaOf(x []float64, label int) float64 {
	j := sort.SearchInts(rf.Classes, label)
	if j >= len(rf.Classes) || rf.Classes[j] != label {
		return 0
	}
	return rf.PredictProbaOne(x)[j]
}

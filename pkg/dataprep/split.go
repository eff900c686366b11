package dataprep

import (
	"fmt"
	"math/rand"
)

// StratifiedSplitIndices splits sample indices into train and test sets while
// holding per-class proportions. It fails loudly when the target has a single
// class or any class is too small to appear on both sides of the split.
func StratifiedSplitIndices(y []int, testRatio float64, seed int64) (trainIdx, testIdx []int, err error) {
	if len(y) == 0 {
		return nil, nil, fmt.Errorf("split: empty target")
	}
	if testRatio <= 0 || testRatio >= 1 {
		return nil, nil, fmt.Errorf("split: test ratio %v outside (0,1)", testRatio)
	}
	byClass := map[int][]int{}
	for i, label := range y {
		byClass[label] = append(byClass[label], i)
	}
	if len(byClass) < 2 {
		return nil, nil, fmt.Errorf("split: target has a single class, nothing to learn")
	}

	rnd := rand.New(rand.NewSource(seed))
	for label, idx := range byClass {
		if len(idx) < 2 {
			return nil, nil, fmt.Errorf("split: class %d has %d sample(s), cannot stratify", label, len(idx))
		}
		rnd.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })
		nTest := int(float64(len(idx)) * testRatio)
		if nTest < 1 {
			nTest = 1
		}
		if nTest >= len(idx) {
			nTest = len(idx) - 1
		}
		testIdx = append(testIdx, idx[:nTest]...)
		trainIdx = append(trainIdx, idx[nTest:]...)
	}
	rnd.Shuffle(len(trainIdx), func(a, b int) { trainIdx[a], trainIdx[b] = trainIdx[b], trainIdx[a] })
	rnd.Shuffle(len(testIdx), func(a, b int) { testIdx[a], testIdx[b] = testIdx[b], testIdx[a] })
	return trainIdx, testIdx, nil
}

// SelectRows gathers the rows of X at the given indices.
func SelectRows(X [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = X[j]
	}
	return out
}

// SelectLabels gathers the labels at the given indices.
func SelectLabels(y []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, j := range idx {
		out[i] = y[j]
	}
	return out
}

// SelectStrings gathers the strings at the given indices.
func SelectStrings(s []string, idx []int) []string {
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = s[j]
	}
	return out
}

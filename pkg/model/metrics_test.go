package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccuracy(t *testing.T) {
	assert.Zero(t, Accuracy(nil, nil))
	assert.Zero(t, Accuracy([]int{1}, []int{1, 2}))
	assert.Equal(t, 0.75, Accuracy([]int{0, 1, 1, 0}, []int{0, 1, 0, 0}))
	assert.Equal(t, 1.0, Accuracy([]int{2, 2}, []int{2, 2}))
}

func TestConfusionMatrix(t *testing.T) {
	yTrue := []int{0, 0, 1, 1, 1}
	yPred := []int{0, 1, 1, 1, 0}
	cm := ConfusionMatrix(yTrue, yPred, []int{0, 1})
	assert.Equal(t, [][]int{{1, 1}, {1, 2}}, cm)
}

func TestPrecisionRecallPerClass(t *testing.T) {
	yTrue := []int{0, 0, 0, 1, 1}
	yPred := []int{0, 0, 1, 1, 1}
	scores := PrecisionRecallPerClass(yTrue, yPred)
	require.Len(t, scores, 2)

	assert.Equal(t, 0, scores[0].Label)
	assert.InDelta(t, 1.0, scores[0].Precision, 1e-12)
	assert.InDelta(t, 2.0/3.0, scores[0].Recall, 1e-12)
	assert.Equal(t, 3, scores[0].Support)

	assert.Equal(t, 1, scores[1].Label)
	assert.InDelta(t, 2.0/3.0, scores[1].Precision, 1e-12)
	assert.InDelta(t, 1.0, scores[1].Recall, 1e-12)
	assert.Equal(t, 2, scores[1].Support)
}

func TestROCAUC(t *testing.T) {
	// perfect separation
	assert.InDelta(t, 1.0, ROCAUC([]int{0, 0, 1, 1}, []float64{0.1, 0.2, 0.8, 0.9}), 1e-12)

	// inverted ranking
	assert.InDelta(t, 0.0, ROCAUC([]int{0, 0, 1, 1}, []float64{0.9, 0.8, 0.2, 0.1}), 1e-12)

	// all scores tied => 0.5 by average ranks
	assert.InDelta(t, 0.5, ROCAUC([]int{0, 1, 0, 1}, []float64{0.5, 0.5, 0.5, 0.5}), 1e-12)

	// one wrong pair out of four: AUC = 0.75
	assert.InDelta(t, 0.75, ROCAUC([]int{0, 1, 0, 1}, []float64{0.1, 0.4, 0.5, 0.9}), 1e-12)
}

func TestROCAUCDegenerate(t *testing.T) {
	assert.Zero(t, ROCAUC(nil, nil))
	assert.Zero(t, ROCAUC([]int{1, 1}, []float64{0.2, 0.9}))
	assert.Zero(t, ROCAUC([]int{0, 0}, []float64{0.2, 0.9}))
	assert.Zero(t, ROCAUC([]int{0, 1}, []float64{0.5}))
}

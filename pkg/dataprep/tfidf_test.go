package dataprep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCorpus() []string {
	return []string{
		"water leaking from ceiling",
		"water dripping in bathroom",
		"socket sparking near bed",
		"socket not working",
		"garbage not collected",
		"garbage bin overflowing",
	}
}

func TestTFIDFFitTransform(t *testing.T) {
	v := &TFIDFVectorizer{NGramMin: 1, NGramMax: 1, MinDocFreq: 2}
	require.NoError(t, v.Fit(testCorpus()))

	// only terms appearing in at least two documents survive
	assert.Contains(t, v.Vocabulary, "water")
	assert.Contains(t, v.Vocabulary, "socket")
	assert.Contains(t, v.Vocabulary, "garbage")
	assert.Contains(t, v.Vocabulary, "not")
	assert.NotContains(t, v.Vocabulary, "ceiling")

	vec := v.TransformOne("water leaking everywhere")
	require.Len(t, vec, v.NumFeatures())
	assert.Positive(t, vec[v.Vocabulary["water"]])

	// in-vocabulary hits produce an L2-normalized vector
	norm := 0.0
	for _, x := range vec {
		norm += x * x
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
}

func TestTFIDFOOVAndEmpty(t *testing.T) {
	v := &TFIDFVectorizer{NGramMin: 1, NGramMax: 1, MinDocFreq: 2}
	require.NoError(t, v.Fit(testCorpus()))

	for _, doc := range []string{"", "completely unseen words"} {
		vec := v.TransformOne(doc)
		require.Len(t, vec, v.NumFeatures())
		for _, x := range vec {
			assert.Zero(t, x)
		}
	}
}

func TestTFIDFBigrams(t *testing.T) {
	v := &TFIDFVectorizer{NGramMin: 1, NGramMax: 2, MinDocFreq: 1}
	require.NoError(t, v.Fit([]string{"short circuit danger", "short circuit again"}))
	assert.Contains(t, v.Vocabulary, "short circuit")
}

func TestTFIDFMaxFeatures(t *testing.T) {
	v := &TFIDFVectorizer{NGramMin: 1, NGramMax: 1, MinDocFreq: 1, MaxFeatures: 3}
	require.NoError(t, v.Fit(testCorpus()))
	assert.Equal(t, 3, v.NumFeatures())
}

func TestTFIDFEmptyCorpus(t *testing.T) {
	v := NewTFIDFVectorizer()
	assert.Error(t, v.Fit(nil))
}

func TestTFIDFTransformDeterministic(t *testing.T) {
	v := &TFIDFVectorizer{NGramMin: 1, NGramMax: 2, MinDocFreq: 1}
	require.NoError(t, v.Fit(testCorpus()))
	a := v.TransformOne("water dripping near socket")
	b := v.TransformOne("water dripping near socket")
	assert.Equal(t, a, b)
}

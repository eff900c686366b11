package dataprep

import (
	"errors"
	"math"
	"sort"
	"strings"
)

// TFIDFVectorizer converts normalized text into fixed-length numeric vectors
// weighting terms by frequency and rarity. The vocabulary and IDF weights are
// learned on Fit and frozen afterwards; out-of-vocabulary terms are ignored
// on Transform, never an error.
type TFIDFVectorizer struct {
	MaxFeatures int     // keep at most this many terms (0 => all)
	NGramMin    int     // smallest n-gram size
	NGramMax    int     // largest n-gram size
	MinDocFreq  int     // drop terms seen in fewer documents
	MaxDocRatio float64 // drop terms seen in more than this fraction of documents

	Vocabulary map[string]int // term -> column index
	IDF        []float64      // aligned with Vocabulary values
}

// NewTFIDFVectorizer returns a vectorizer with the corpus defaults:
// unigrams and bigrams, 500 features, min document count 2, max ratio 0.8.
func NewTFIDFVectorizer() *TFIDFVectorizer {
	return &TFIDFVectorizer{
		MaxFeatures: 500,
		NGramMin:    1,
		NGramMax:    2,
		MinDocFreq:  2,
		MaxDocRatio: 0.8,
	}
}

// Fitted reports whether a vocabulary has been learned.
func (v *TFIDFVectorizer) Fitted() bool { return len(v.Vocabulary) > 0 }

// NumFeatures returns the width of transformed vectors.
func (v *TFIDFVectorizer) NumFeatures() int { return len(v.Vocabulary) }

func (v *TFIDFVectorizer) terms(doc string) []string {
	words := strings.Fields(doc)
	var out []string
	for n := v.NGramMin; n <= v.NGramMax; n++ {
		if n <= 0 {
			continue
		}
		for i := 0; i+n <= len(words); i++ {
			out = append(out, strings.Join(words[i:i+n], " "))
		}
	}
	return out
}

// Fit learns the vocabulary and IDF weights from the given documents.
// Documents are expected to be normalized already (see NormalizeText).
func (v *TFIDFVectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return errors.New("tfidf: empty corpus")
	}
	docFreq := map[string]int{}
	termFreq := map[string]int{}
	for _, doc := range docs {
		seen := map[string]struct{}{}
		for _, t := range v.terms(doc) {
			termFreq[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				docFreq[t]++
			}
		}
	}

	nDocs := len(docs)
	maxDocs := nDocs
	if v.MaxDocRatio > 0 && v.MaxDocRatio < 1 {
		maxDocs = int(v.MaxDocRatio * float64(nDocs))
	}
	var kept []string
	for t, df := range docFreq {
		if v.MinDocFreq > 1 && df < v.MinDocFreq {
			continue
		}
		if df > maxDocs {
			continue
		}
		kept = append(kept, t)
	}
	if len(kept) == 0 {
		return errors.New("tfidf: no terms survived document-frequency filtering")
	}

	// keep the most frequent terms, then index alphabetically for stability
	if v.MaxFeatures > 0 && len(kept) > v.MaxFeatures {
		sort.Slice(kept, func(a, b int) bool {
			if termFreq[kept[a]] != termFreq[kept[b]] {
				return termFreq[kept[a]] > termFreq[kept[b]]
			}
			return kept[a] < kept[b]
		})
		kept = kept[:v.MaxFeatures]
	}
	sort.Strings(kept)

	v.Vocabulary = make(map[string]int, len(kept))
	v.IDF = make([]float64, len(kept))
	for i, t := range kept {
		v.Vocabulary[t] = i
		// smoothed IDF keeps unseen-at-transform terms from blowing up
		v.IDF[i] = math.Log(float64(1+nDocs)/float64(1+docFreq[t])) + 1
	}
	return nil
}

// TransformOne vectorizes a single document against the frozen vocabulary.
// Documents with no in-vocabulary terms produce an all-zero vector.
func (v *TFIDFVectorizer) TransformOne(doc string) []float64 {
	out := make([]float64, len(v.Vocabulary))
	if len(v.Vocabulary) == 0 {
		return out
	}
	for _, t := range v.terms(doc) {
		if j, ok := v.Vocabulary[t]; ok {
			out[j]++
		}
	}
	norm := 0.0
	for j := range out {
		out[j] *= v.IDF[j]
		norm += out[j] * out[j]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for j := range out {
			out[j] /= norm
		}
	}
	return out
}

// Transform vectorizes every document.
func (v *TFIDFVectorizer) Transform(docs []string) [][]float64 {
	out := make([][]float64, len(docs))
	for i, doc := range docs {
		out[i] = v.TransformOne(doc)
	}
	return out
}

// FitTransform fits the vocabulary and transforms the corpus in one step.
func (v *TFIDFVectorizer) FitTransform(docs []string) ([][]float64, error) {
	if err := v.Fit(docs); err != nil {
		return nil, err
	}
	return v.Transform(docs), nil
}

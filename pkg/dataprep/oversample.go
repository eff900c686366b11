package dataprep

import (
	"math/rand"
	"sort"
)

// OversampleMinority rebalances a skewed target by generating synthetic
// minority-class samples: each new row is an interpolation between a minority
// sample and one of its k nearest minority neighbors. Every class is grown to
// the size of the largest one. X and y are not mutated; the returned slices
// share the original rows plus the synthetic ones.
//
// Apply this to the training split only, before scaling.
func OversampleMinority(X [][]float64, y []int, k int, seed int64) ([][]float64, []int) {
	byClass := map[int][]int{}
	for i, label := range y {
		byClass[label] = append(byClass[label], i)
	}
	maxCount := 0
	for _, idx := range byClass {
		if len(idx) > maxCount {
			maxCount = len(idx)
		}
	}

	outX := make([][]float64, len(X), maxCount*len(byClass))
	copy(outX, X)
	outY := make([]int, len(y), maxCount*len(byClass))
	copy(outY, y)

	rnd := rand.New(rand.NewSource(seed))
	labels := make([]int, 0, len(byClass))
	for label := range byClass {
		labels = append(labels, label)
	}
	sort.Ints(labels) // deterministic generation order

	for _, label := range labels {
		idx := byClass[label]
		for need := maxCount - len(idx); need > 0; need-- {
			i := idx[rnd.Intn(len(idx))]
			if len(idx) == 1 {
				// nothing to interpolate with; duplicate the lone sample
				row := make([]float64, len(X[i]))
				copy(row, X[i])
				outX = append(outX, row)
				outY = append(outY, label)
				continue
			}
			j := nearestWithin(X, idx, i, k, rnd)
			t := rnd.Float64()
			row := make([]float64, len(X[i]))
			for c := range row {
				row[c] = X[i][c] + t*(X[j][c]-X[i][c])
			}
			outX = append(outX, row)
			outY = append(outY, label)
		}
	}
	return outX, outY
}

// nearestWithin picks a random one of the k nearest neighbors of sample i
// among the class members idx (excluding i itself).
func nearestWithin(X [][]float64, idx []int, i, k int, rnd *rand.Rand) int {
	type pair struct {
		d float64
		j int
	}
	nbrs := make([]pair, 0, len(idx)-1)
	for _, j := range idx {
		if j == i {
			continue
		}
		nbrs = append(nbrs, pair{euclidSquared(X[i], X[j]), j})
	}
	sort.Slice(nbrs, func(a, b int) bool { return nbrs[a].d < nbrs[b].d })
	if k > len(nbrs) {
		k = len(nbrs)
	}
	return nbrs[rnd.Intn(k)].j
}

func euclidSquared(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

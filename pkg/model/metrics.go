package model

import "sort"

// Accuracy is the fraction of labels predicted correctly.
func Accuracy(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return 0
	}
	c := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			c++
		}
	}
	return float64(c) / float64(len(yTrue))
}

// ConfusionMatrix returns counts[i][j] = samples of true class classes[i]
// predicted as classes[j]. Predictions outside classes are dropped.
func ConfusionMatrix(yTrue, yPred []int, classes []int) [][]int {
	pos := map[int]int{}
	for i, c := range classes {
		pos[c] = i
	}
	cm := make([][]int, len(classes))
	for i := range cm {
		cm[i] = make([]int, len(classes))
	}
	for i := range yTrue {
		ti, ok1 := pos[yTrue[i]]
		pi, ok2 := pos[yPred[i]]
		if ok1 && ok2 {
			cm[ti][pi]++
		}
	}
	return cm
}

// ClassScore holds precision/recall for one class.
type ClassScore struct {
	Label     int     `json:"label"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	Support   int     `json:"support"`
}

// PrecisionRecallPerClass computes one-vs-rest precision and recall for each
// class, in sorted label order.
func PrecisionRecallPerClass(yTrue, yPred []int) []ClassScore {
	set := map[int]struct{}{}
	for _, c := range yTrue {
		set[c] = struct{}{}
	}
	classes := make([]int, 0, len(set))
	for c := range set {
		classes = append(classes, c)
	}
	sort.Ints(classes)

	out := make([]ClassScore, 0, len(classes))
	for _, c := range classes {
		tp, fp, fn := 0, 0, 0
		for i := range yTrue {
			switch {
			case yPred[i] == c && yTrue[i] == c:
				tp++
			case yPred[i] == c && yTrue[i] != c:
				fp++
			case yPred[i] != c && yTrue[i] == c:
				fn++
			}
		}
		s := ClassScore{Label: c, Support: tp + fn}
		if tp+fp > 0 {
			s.Precision = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			s.Recall = float64(tp) / float64(tp+fn)
		}
		out = append(out, s)
	}
	return out
}

// ROCAUC computes the area under the ROC curve for binary labels (0/1) and
// positive-class scores, using the rank statistic with average ranks for
// ties. Returns 0 when only one class is present.
func ROCAUC(yTrue []int, scores []float64) float64 {
	n := len(yTrue)
	if n == 0 || n != len(scores) {
		return 0
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return scores[order[a]] < scores[order[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j < n && scores[order[j]] == scores[order[i]] {
			j++
		}
		avg := float64(i+j+1) / 2 // ranks are 1-based
		for k := i; k < j; k++ {
			ranks[order[k]] = avg
		}
		i = j
	}

	nPos, nNeg := 0, 0
	sumPos := 0.0
	for i, label := range yTrue {
		if label == 1 {
			nPos++
			sumPos += ranks[i]
		} else {
			nNeg++
		}
	}
	if nPos == 0 || nNeg == 0 {
		return 0
	}
	return (sumPos - float64(nPos)*float64(nPos+1)/2) / (float64(nPos) * float64(nNeg))
}

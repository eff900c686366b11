package dataprep

import (
	"errors"
	"sort"
)

// UnknownCode is the sentinel for categories never seen during Fit.
const UnknownCode = -1

// LabelEncoder maps string categories to stable integer codes. The class
// universe is fixed on Fit; encoding a category outside it returns
// UnknownCode rather than an error.
type LabelEncoder struct {
	Classes []string // sorted; code is the index into this slice

	index map[string]int
}

func NewLabelEncoder() *LabelEncoder { return &LabelEncoder{} }

// Fit learns the sorted set of distinct categories.
func (e *LabelEncoder) Fit(values []string) error {
	if len(values) == 0 {
		return errors.New("encoder: no values")
	}
	set := map[string]struct{}{}
	for _, v := range values {
		set[v] = struct{}{}
	}
	e.Classes = make([]string, 0, len(set))
	for v := range set {
		e.Classes = append(e.Classes, v)
	}
	sort.Strings(e.Classes)
	e.index = nil
	return nil
}

// Encode returns the integer code for v, or UnknownCode if v was not part of
// the training universe.
func (e *LabelEncoder) Encode(v string) int {
	if e.index == nil {
		// rebuilt lazily so encoders survive a JSON round trip
		e.index = make(map[string]int, len(e.Classes))
		for i, c := range e.Classes {
			e.index[c] = i
		}
	}
	if code, ok := e.index[v]; ok {
		return code
	}
	return UnknownCode
}

// EncodeAll encodes a slice of categories.
func (e *LabelEncoder) EncodeAll(values []string) []int {
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = e.Encode(v)
	}
	return out
}

// Decode returns the category for a code; codes outside the universe
// (including UnknownCode) return the empty string.
func (e *LabelEncoder) Decode(code int) string {
	if code < 0 || code >= len(e.Classes) {
		return ""
	}
	return e.Classes[code]
}

package features

// FeatureColumnManifest is the ordered, named schema of numeric inputs the
// tabular model expects, frozen at training time and persisted with the
// artifact bundle.
type FeatureColumnManifest struct {
	Columns []string `json:"columns"`
}

// DefaultColumns is the manifest emitted by the training pipeline.
func DefaultColumns() FeatureColumnManifest {
	return FeatureColumnManifest{Columns: []string{
		ColMonthlyRent,
		ColAvgPayment,
		ColPaymentConsistency,
		ColDelayRate,
		ColTotalComplaints,
		ColComplaintRate,
		ColAvgDaysSincePayment,
		ColRoomTypeEncoded,
		ColComplaintCategoryEncoded,
		ColComplaintStatusEncoded,
	}}
}

// VectorFromMap reduces an arbitrary feature map to exactly the manifest
// columns, in manifest order. Absent columns default to 0; keys outside the
// manifest are ignored. Total for any input, including nil.
func (m FeatureColumnManifest) VectorFromMap(f map[string]float64) []float64 {
	out := make([]float64, len(m.Columns))
	for i, name := range m.Columns {
		if v, ok := f[name]; ok {
			out[i] = v
		}
	}
	return out
}

package predict

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/artifact"
	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/dataprep"
	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/features"
	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/model"
	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/stats"
)

// newTestRegistry trains a small but strongly separable bundle so model-path
// assertions are stable.
func newTestRegistry(t *testing.T) *artifact.Registry {
	t.Helper()

	docs := []string{
		"water leaking from ceiling",
		"water leaking in bathroom",
		"tap leaking water everywhere",
		"water leaking near kitchen",
		"floor not mopped properly",
		"floor not swept today",
		"dust on floor not cleaned",
		"floor not mopped again",
	}
	priorities := []string{
		"Medium", "Medium", "Medium", "Medium",
		"Low", "Low", "Low", "Low",
	}

	vec := &dataprep.TFIDFVectorizer{NGramMin: 1, NGramMax: 2, MinDocFreq: 1}
	require.NoError(t, vec.Fit(docs))
	prioEnc := dataprep.NewLabelEncoder()
	require.NoError(t, prioEnc.Fit([]string{"High", "Medium", "Low"}))

	textRF := model.NewRandomForest(model.WithNEstimators(20), model.WithForestMaxDepth(6), model.WithSeed(42))
	require.NoError(t, textRF.Fit(vec.Transform(docs), prioEnc.EncodeAll(priorities)))

	// tabular side: low delay-rate profiles vs high delay-rate profiles
	tabX := [][]float64{
		{10000, 10000, 0.01, 0.0, 1, 0.1, 5, 0, 0, 0},
		{15000, 15000, 0.02, 0.0, 0, 0.0, 3, 1, 0, 1},
		{12000, 12000, 0.01, 0.1, 2, 0.2, 10, 0, 1, 0},
		{20000, 19000, 0.03, 0.1, 1, 0.1, 8, 1, 0, 1},
		{11000, 10000, 0.30, 0.9, 8, 0.9, 50, 0, 2, 2},
		{13000, 11000, 0.40, 1.0, 9, 1.0, 60, 1, 1, 2},
		{18000, 15000, 0.35, 0.8, 7, 0.8, 55, 0, 0, 2},
		{16000, 13000, 0.45, 0.9, 6, 0.7, 65, 1, 2, 1},
	}
	tabY := []int{0, 0, 0, 0, 1, 1, 1, 1}
	scaler := stats.NewStandardScaler()
	scaled, err := scaler.FitTransform(tabX)
	require.NoError(t, err)
	tabRF := model.NewRandomForest(model.WithNEstimators(20), model.WithForestMaxDepth(5), model.WithSeed(42))
	require.NoError(t, tabRF.Fit(scaled, tabY))

	roomEnc := dataprep.NewLabelEncoder()
	require.NoError(t, roomEnc.Fit([]string{"1BHK", "2BHK"}))
	catEnc := dataprep.NewLabelEncoder()
	require.NoError(t, catEnc.Fit([]string{"Electricity", "Plumbing", "Housekeeping"}))
	statEnc := dataprep.NewLabelEncoder()
	require.NoError(t, statEnc.Fit([]string{"Open", "Resolved"}))

	return artifact.NewRegistry(&artifact.Bundle{
		TextClassifier:    textRF,
		TextVectorizer:    vec,
		TabularClassifier: tabRF,
		FeatureScaler:     scaler,
		Encoders: map[string]*dataprep.LabelEncoder{
			artifact.EncoderPriority:          prioEnc,
			artifact.EncoderRoomType:          roomEnc,
			artifact.EncoderComplaintCategory: catEnc,
			artifact.EncoderComplaintStatus:   statEnc,
		},
		Manifest: features.DefaultColumns(),
	})
}

// capturingLog records entries for assertions.
type capturingLog struct {
	entries []LogEntry
}

func (c *capturingLog) Append(e LogEntry) { c.entries = append(c.entries, e) }

package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/dataprep"
	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/features"
	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/model"
	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/stats"
)

// newTestBundle trains a minimal but fully valid bundle.
func newTestBundle(t *testing.T) *Bundle {
	t.Helper()

	docs := []string{
		"socket sparking near bed",
		"no power in kitchen socket",
		"water leaking from ceiling",
		"water dripping in bathroom",
		"garbage not collected",
		"garbage bin smells",
	}
	priorities := []string{"High", "High", "Medium", "Medium", "Low", "Low"}

	vec := &dataprep.TFIDFVectorizer{NGramMin: 1, NGramMax: 2, MinDocFreq: 1}
	require.NoError(t, vec.Fit(docs))

	prioEnc := dataprep.NewLabelEncoder()
	require.NoError(t, prioEnc.Fit(priorities))

	textX := vec.Transform(docs)
	textY := prioEnc.EncodeAll(priorities)
	textRF := model.NewRandomForest(model.WithNEstimators(10), model.WithForestMaxDepth(5), model.WithSeed(42))
	require.NoError(t, textRF.Fit(textX, textY))

	manifest := features.DefaultColumns()
	tabX := [][]float64{
		{10000, 10000, 0.01, 0.0, 1, 0.1, 5, 0, 0, 0},
		{11000, 11000, 0.02, 0.1, 2, 0.2, 8, 1, 1, 1},
		{12000, 12000, 0.05, 0.8, 6, 0.9, 40, 0, 2, 2},
		{13000, 12500, 0.06, 0.9, 7, 1.0, 45, 1, 1, 0},
	}
	tabY := []int{0, 0, 1, 1}
	scaler := stats.NewStandardScaler()
	scaled, err := scaler.FitTransform(tabX)
	require.NoError(t, err)
	tabRF := model.NewRandomForest(model.WithNEstimators(10), model.WithForestMaxDepth(4), model.WithSeed(42))
	require.NoError(t, tabRF.Fit(scaled, tabY))

	roomEnc := dataprep.NewLabelEncoder()
	require.NoError(t, roomEnc.Fit([]string{"1BHK", "2BHK"}))
	catEnc := dataprep.NewLabelEncoder()
	require.NoError(t, catEnc.Fit([]string{"Electricity", "Plumbing", "Housekeeping"}))
	statEnc := dataprep.NewLabelEncoder()
	require.NoError(t, statEnc.Fit([]string{"Open", "Resolved", "In Progress"}))

	return &Bundle{
		TextClassifier:    textRF,
		TextVectorizer:    vec,
		TabularClassifier: tabRF,
		FeatureScaler:     scaler,
		Encoders: map[string]*dataprep.LabelEncoder{
			EncoderPriority:          prioEnc,
			EncoderRoomType:          roomEnc,
			EncoderComplaintCategory: catEnc,
			EncoderComplaintStatus:   statEnc,
		},
		Manifest: manifest,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "models")
	b := newTestBundle(t)
	require.NoError(t, SaveBundle(dir, b))

	back, err := LoadBundle(dir)
	require.NoError(t, err)

	// predictions survive persistence exactly
	x := b.TextVectorizer.TransformOne("socket sparking again")
	assert.Equal(t, b.TextClassifier.PredictProbaOne(x), back.TextClassifier.PredictProbaOne(back.TextVectorizer.TransformOne("socket sparking again")))
	assert.Equal(t, b.Manifest, back.Manifest)
	assert.Equal(t, b.Encoders[EncoderPriority].Classes, back.Encoders[EncoderPriority].Classes)
	assert.Equal(t, b.FeatureScaler.Mean, back.FeatureScaler.Mean)
}

func TestSaveBundleOverwritesPrevious(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "models")
	b := newTestBundle(t)
	require.NoError(t, SaveBundle(dir, b))

	b2 := newTestBundle(t)
	b2.Manifest.Columns = append(b2.Manifest.Columns, "extra_column")
	require.NoError(t, SaveBundle(dir, b2))

	back, err := LoadBundle(dir)
	require.NoError(t, err)
	assert.Contains(t, back.Manifest.Columns, "extra_column")

	// no staging or retired directory left behind
	_, err = os.Stat(dir + ".staging")
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(dir + ".old")
	assert.True(t, os.IsNotExist(err))
}

func TestLoadBundleMissingFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "models")
	require.NoError(t, SaveBundle(dir, newTestBundle(t)))
	require.NoError(t, os.Remove(filepath.Join(dir, FileFeatureScaler)))

	_, err := LoadBundle(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), FileFeatureScaler)
}

func TestLoadBundleCorruptFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "models")
	require.NoError(t, SaveBundle(dir, newTestBundle(t)))
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileTextClassifier), []byte("not a gob"), 0o644))

	_, err := LoadBundle(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), FileTextClassifier)
}

func TestLoadBundleEmptyDir(t *testing.T) {
	_, err := LoadBundle(t.TempDir())
	assert.Error(t, err)
}

func TestSaveBundleRejectsUnfitted(t *testing.T) {
	b := newTestBundle(t)
	b.TextClassifier = &model.RandomForest{}
	err := SaveBundle(t.TempDir(), b)
	assert.ErrorContains(t, err, "text classifier not fitted")
}

func TestSaveBundleRejectsMissingPriorityEncoder(t *testing.T) {
	b := newTestBundle(t)
	delete(b.Encoders, EncoderPriority)
	err := SaveBundle(t.TempDir(), b)
	assert.ErrorContains(t, err, "priority")
}

package training

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/artifact"
	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/dataprep"
	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/features"
	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/loader"
	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/model"
	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/stats"
)

// Config holds the training hyperparameters.
type Config struct {
	TestRatio      float64
	Seed           int64
	ReferenceDate  time.Time // anchor for avg_days_since_payment
	SMOTENeighbors int

	TextTrees int
	TextDepth int

	RiskTrees    int
	RiskDepth    int
	RiskMinSplit int
	RiskMinLeaf  int
}

// DefaultConfig mirrors the production training runs.
func DefaultConfig() Config {
	return Config{
		TestRatio:      0.2,
		Seed:           42,
		ReferenceDate:  time.Date(2025, 12, 11, 0, 0, 0, 0, time.UTC),
		SMOTENeighbors: 5,
		TextTrees:      100,
		TextDepth:      10,
		RiskTrees:      150,
		RiskDepth:      12,
		RiskMinSplit:   5,
		RiskMinLeaf:    2,
	}
}

// ModelReport is the held-out evaluation of one fitted model.
type ModelReport struct {
	Accuracy     float64            `json:"accuracy"`
	ROCAUC       float64            `json:"roc_auc,omitempty"`
	Classes      []string           `json:"classes"`
	PerClass     []model.ClassScore `json:"per_class"`
	Confusion    [][]int            `json:"confusion_matrix"`
	TrainSamples int                `json:"train_samples"`
	TestSamples  int                `json:"test_samples"`
}

// Report summarizes one pipeline run.
type Report struct {
	TrainedAt time.Time   `json:"trained_at"`
	Corpus    int         `json:"corpus_rows"`
	Text      ModelReport `json:"complaint_priority"`
	Risk      ModelReport `json:"payment_delay"`
}

// ReportFile is written next to the bundle after a successful run.
const ReportFile = "evaluation_report.json"

// Pipeline runs the offline training job over the historical corpus.
type Pipeline struct {
	cfg Config
	log *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, log: logger}
}

// Run labels the corpus, fits both models and returns the bundle plus the
// held-out evaluation. Degenerate corpora (single-class targets, classes too
// small to stratify) fail loudly; no partial bundle is ever produced.
func (p *Pipeline) Run(rows []loader.Row) (*artifact.Bundle, *Report, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("training: empty corpus")
	}
	report := &Report{TrainedAt: time.Now().UTC(), Corpus: len(rows)}
	bundle := &artifact.Bundle{Encoders: map[string]*dataprep.LabelEncoder{}}

	if err := p.trainText(rows, bundle, report); err != nil {
		return nil, nil, err
	}
	if err := p.trainRisk(rows, bundle, report); err != nil {
		return nil, nil, err
	}
	return bundle, report, nil
}

// RunAndSave runs the pipeline and persists the bundle and its evaluation
// report under dir.
func (p *Pipeline) RunAndSave(rows []loader.Row, dir string) (*Report, error) {
	bundle, report, err := p.Run(rows)
	if err != nil {
		return nil, err
	}
	if err := artifact.SaveBundle(dir, bundle); err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("training: encode report: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ReportFile), data, 0o644); err != nil {
		return nil, fmt.Errorf("training: write report: %w", err)
	}
	p.log.Info("bundle saved", zap.String("dir", dir))
	return report, nil
}

func (p *Pipeline) trainText(rows []loader.Row, bundle *artifact.Bundle, report *Report) error {
	labels := make([]string, len(rows))
	docs := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = AssignPriority(r.ComplaintText, r.ComplaintCategory)
		docs[i] = dataprep.NormalizeText(r.ComplaintText)
	}

	enc := dataprep.NewLabelEncoder()
	if err := enc.Fit(labels); err != nil {
		return fmt.Errorf("training: priority labels: %w", err)
	}
	y := enc.EncodeAll(labels)

	trainIdx, testIdx, err := dataprep.StratifiedSplitIndices(y, p.cfg.TestRatio, p.cfg.Seed)
	if err != nil {
		return fmt.Errorf("training: priority split: %w", err)
	}
	p.log.Info("priority split",
		zap.Int("train", len(trainIdx)), zap.Int("test", len(testIdx)))

	vectorizer := dataprep.NewTFIDFVectorizer()
	if err := vectorizer.Fit(dataprep.SelectStrings(docs, trainIdx)); err != nil {
		return fmt.Errorf("training: vectorizer: %w", err)
	}
	XTrain := vectorizer.Transform(dataprep.SelectStrings(docs, trainIdx))
	XTest := vectorizer.Transform(dataprep.SelectStrings(docs, testIdx))
	yTrain := dataprep.SelectLabels(y, trainIdx)
	yTest := dataprep.SelectLabels(y, testIdx)

	forest := model.NewRandomForest(
		model.WithNEstimators(p.cfg.TextTrees),
		model.WithForestMaxDepth(p.cfg.TextDepth),
		model.WithSeed(p.cfg.Seed),
	)
	if err := forest.Fit(XTrain, yTrain); err != nil {
		return fmt.Errorf("training: text classifier: %w", err)
	}

	yPred := forest.Predict(XTest)
	report.Text = ModelReport{
		Accuracy:     model.Accuracy(yTest, yPred),
		Classes:      enc.Classes,
		PerClass:     model.PrecisionRecallPerClass(yTest, yPred),
		Confusion:    model.ConfusionMatrix(yTest, yPred, forest.Classes),
		TrainSamples: len(trainIdx),
		TestSamples:  len(testIdx),
	}
	p.log.Info("text classifier evaluated",
		zap.Float64("accuracy", report.Text.Accuracy),
		zap.Int("features", vectorizer.NumFeatures()))

	bundle.TextClassifier = forest
	bundle.TextVectorizer = vectorizer
	bundle.Encoders[artifact.EncoderPriority] = enc
	return nil
}

func (p *Pipeline) trainRisk(rows []loader.Row, bundle *artifact.Bundle, report *Report) error {
	// categorical encoders are fit over the full corpus universe
	roomTypes := make([]string, len(rows))
	categories := make([]string, len(rows))
	statuses := make([]string, len(rows))
	for i, r := range rows {
		roomTypes[i] = r.RoomType
		categories[i] = r.ComplaintCategory
		statuses[i] = r.ComplaintStatus
	}
	encRoom, encCategory, encStatus := dataprep.NewLabelEncoder(), dataprep.NewLabelEncoder(), dataprep.NewLabelEncoder()
	if err := encRoom.Fit(roomTypes); err != nil {
		return fmt.Errorf("training: room_type encoder: %w", err)
	}
	if err := encCategory.Fit(categories); err != nil {
		return fmt.Errorf("training: complaint_category encoder: %w", err)
	}
	if err := encStatus.Fit(statuses); err != nil {
		return fmt.Errorf("training: complaint_status encoder: %w", err)
	}

	// tenant-level aggregates, one feature row per joined corpus record
	eng := features.Engineer{ReferenceDate: p.cfg.ReferenceDate}
	payments := map[string][]features.PaymentRecord{}
	complaints := map[string][]features.ComplaintRecord{}
	for _, r := range rows {
		payments[r.TenantID] = append(payments[r.TenantID], features.PaymentRecord{
			TenantID:    r.TenantID,
			Amount:      r.PaymentAmount,
			Date:        r.PaymentDate,
			Status:      r.PaymentStatus,
			MonthlyRent: r.MonthlyRent,
		})
		complaints[r.TenantID] = append(complaints[r.TenantID], features.ComplaintRecord{
			ID:       r.ComplaintID,
			TenantID: r.TenantID,
			Text:     r.ComplaintText,
			Category: r.ComplaintCategory,
			Status:   r.ComplaintStatus,
		})
	}
	vectors := make(map[string]features.TenantFeatureVector, len(payments))
	for tenant := range payments {
		vectors[tenant] = eng.TenantVector(payments[tenant], complaints[tenant])
	}
	p.log.Info("tenant profiles engineered", zap.Int("tenants", len(vectors)))

	manifest := features.DefaultColumns()
	X := make([][]float64, len(rows))
	y := make([]int, len(rows))
	for i, r := range rows {
		fm := vectors[r.TenantID].AsMap()
		fm[features.ColRoomTypeEncoded] = float64(encRoom.Encode(r.RoomType))
		fm[features.ColComplaintCategoryEncoded] = float64(encCategory.Encode(r.ComplaintCategory))
		fm[features.ColComplaintStatusEncoded] = float64(encStatus.Encode(r.ComplaintStatus))
		X[i] = manifest.VectorFromMap(fm)
		if features.DelayedStatus(r.PaymentStatus) {
			y[i] = 1
		}
	}

	trainIdx, testIdx, err := dataprep.StratifiedSplitIndices(y, p.cfg.TestRatio, p.cfg.Seed)
	if err != nil {
		return fmt.Errorf("training: risk split: %w", err)
	}

	// oversample the training split only, before scaling
	XTrain, yTrain := dataprep.OversampleMinority(
		dataprep.SelectRows(X, trainIdx), dataprep.SelectLabels(y, trainIdx),
		p.cfg.SMOTENeighbors, p.cfg.Seed)
	p.log.Info("risk split balanced",
		zap.Int("train", len(XTrain)), zap.Int("test", len(testIdx)))

	scaler := stats.NewStandardScaler()
	XTrainScaled, err := scaler.FitTransform(XTrain)
	if err != nil {
		return fmt.Errorf("training: scaler: %w", err)
	}
	XTestScaled := scaler.Transform(dataprep.SelectRows(X, testIdx))
	yTest := dataprep.SelectLabels(y, testIdx)

	forest := model.NewRandomForest(
		model.WithNEstimators(p.cfg.RiskTrees),
		model.WithForestMaxDepth(p.cfg.RiskDepth),
		model.WithForestMinSamplesSplit(p.cfg.RiskMinSplit),
		model.WithForestMinSamplesLeaf(p.cfg.RiskMinLeaf),
		model.WithSeed(p.cfg.Seed),
	)
	if err := forest.Fit(XTrainScaled, yTrain); err != nil {
		return fmt.Errorf("training: risk classifier: %w", err)
	}

	yPred := forest.Predict(XTestScaled)
	scores := make([]float64, len(XTestScaled))
	for i, x := range XTestScaled {
		scores[i] = forest.ProbaOf(x, 1)
	}
	report.Risk = ModelReport{
		Accuracy:     model.Accuracy(yTest, yPred),
		ROCAUC:       model.ROCAUC(yTest, scores),
		Classes:      []string{"on_time", "will_delay"},
		PerClass:     model.PrecisionRecallPerClass(yTest, yPred),
		Confusion:    model.ConfusionMatrix(yTest, yPred, forest.Classes),
		TrainSamples: len(XTrain),
		TestSamples:  len(testIdx),
	}
	p.log.Info("risk classifier evaluated",
		zap.Float64("accuracy", report.Risk.Accuracy),
		zap.Float64("roc_auc", report.Risk.ROCAUC))

	bundle.TabularClassifier = forest
	bundle.FeatureScaler = scaler
	bundle.Manifest = manifest
	bundle.Encoders[artifact.EncoderRoomType] = encRoom
	bundle.Encoders[artifact.EncoderComplaintCategory] = encCategory
	bundle.Encoders[artifact.EncoderComplaintStatus] = encStatus
	return nil
}

package predict

import (
	"io"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogEntry is the shape every prediction is reported in. The sink's storage
// and query behavior belong to the external CRUD layer.
type LogEntry struct {
	ID        string    `json:"id"`
	ModelType string    `json:"model_type"`
	Input     any       `json:"input"`
	Output    any       `json:"output"`
	CallerID  string    `json:"caller_id"`
	Timestamp time.Time `json:"timestamp"`
}

// PredictionLogger is the append-only sink predictions are reported to.
type PredictionLogger interface {
	Append(e LogEntry)
}

func newEntry(modelType, callerID string, input, output any) LogEntry {
	return LogEntry{
		ID:        uuid.NewString(),
		ModelType: modelType,
		Input:     input,
		Output:    output,
		CallerID:  callerID,
		Timestamp: time.Now().UTC(),
	}
}

// ZapPredictionLog reports predictions as structured log records.
type ZapPredictionLog struct {
	L *zap.Logger
}

func (z ZapPredictionLog) Append(e LogEntry) {
	z.L.Info("prediction",
		zap.String("id", e.ID),
		zap.String("model_type", e.ModelType),
		zap.Any("input", e.Input),
		zap.Any("output", e.Output),
		zap.String("caller_id", e.CallerID),
		zap.Time("timestamp", e.Timestamp),
	)
}

// JSONLPredictionLog appends one JSON document per prediction to a writer.
type JSONLPredictionLog struct {
	mu  sync.Mutex
	w   io.Writer
	enc *json.Encoder
}

func NewJSONLPredictionLog(w io.Writer) *JSONLPredictionLog {
	return &JSONLPredictionLog{w: w, enc: json.NewEncoder(w)}
}

func (l *JSONLPredictionLog) Append(e LogEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	// an unwritable sink must never fail a prediction
	_ = l.enc.Encode(e)
}

// NopPredictionLog discards entries; used when no sink is wired.
type NopPredictionLog struct{}

func (NopPredictionLog) Append(LogEntry) {}

// Package artifact owns the trained model bundle: loading it at startup,
// persisting a freshly trained one atomically, and holding the live copy
// behind an immutable registry.
package artifact

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/dataprep"
	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/features"
	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/model"
	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/stats"
)

// Artifact file names inside a bundle directory.
const (
	FileTextClassifier    = "complaint_classifier.gob"
	FileTextVectorizer    = "tfidf_vectorizer.gob"
	FileTabularClassifier = "payment_predictor.gob"
	FileFeatureScaler     = "feature_scaler.gob"
	FileLabelEncoders     = "label_encoders.json"
	FileFeatureColumns    = "feature_columns.json"
)

// EncoderPriority is the key of the priority label encoder inside the
// encoder set; it maps the text classifier's integer classes back to
// High/Medium/Low.
const EncoderPriority = "priority"

// Categorical encoder keys fit over the training corpus.
const (
	EncoderRoomType          = "room_type"
	EncoderComplaintCategory = "complaint_category"
	EncoderComplaintStatus   = "complaint_status"
)

// Bundle is the immutable set of trained objects the serving path reads.
// It is created by the training pipeline, written once, and never mutated
// in place; retraining builds a new Bundle and swaps it into the Registry.
type Bundle struct {
	TextClassifier    *model.RandomForest
	TextVectorizer    *dataprep.TFIDFVectorizer
	TabularClassifier *model.RandomForest
	FeatureScaler     *stats.StandardScaler
	Encoders          map[string]*dataprep.LabelEncoder
	Manifest          features.FeatureColumnManifest
}

// PriorityLabels returns the encoder mapping text-classifier classes to
// priority names.
func (b *Bundle) PriorityLabels() *dataprep.LabelEncoder {
	return b.Encoders[EncoderPriority]
}

func (b *Bundle) validate() error {
	switch {
	case b.TextClassifier == nil || !b.TextClassifier.Fitted():
		return fmt.Errorf("bundle: text classifier not fitted")
	case b.TextVectorizer == nil || !b.TextVectorizer.Fitted():
		return fmt.Errorf("bundle: text vectorizer not fitted")
	case b.TabularClassifier == nil || !b.TabularClassifier.Fitted():
		return fmt.Errorf("bundle: tabular classifier not fitted")
	case b.FeatureScaler == nil || !b.FeatureScaler.Fitted():
		return fmt.Errorf("bundle: feature scaler not fitted")
	case len(b.Manifest.Columns) == 0:
		return fmt.Errorf("bundle: empty feature column manifest")
	case b.Encoders[EncoderPriority] == nil || len(b.Encoders[EncoderPriority].Classes) == 0:
		return fmt.Errorf("bundle: missing %s label encoder", EncoderPriority)
	}
	return nil
}

// LoadBundle reads all six artifacts from dir. Any missing or corrupt file
// is an error; callers treat that as fatal at process startup.
func LoadBundle(dir string) (*Bundle, error) {
	b := &Bundle{
		TextClassifier:    &model.RandomForest{},
		TextVectorizer:    &dataprep.TFIDFVectorizer{},
		TabularClassifier: &model.RandomForest{},
		FeatureScaler:     &stats.StandardScaler{},
	}
	if err := readGob(filepath.Join(dir, FileTextClassifier), b.TextClassifier); err != nil {
		return nil, err
	}
	if err := readGob(filepath.Join(dir, FileTextVectorizer), b.TextVectorizer); err != nil {
		return nil, err
	}
	if err := readGob(filepath.Join(dir, FileTabularClassifier), b.TabularClassifier); err != nil {
		return nil, err
	}
	if err := readGob(filepath.Join(dir, FileFeatureScaler), b.FeatureScaler); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, FileLabelEncoders), &b.Encoders); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, FileFeatureColumns), &b.Manifest); err != nil {
		return nil, err
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// SaveBundle persists the bundle to dir as one atomic unit: everything is
// written to a staging directory first and swapped in with renames, so a
// concurrent reader never observes a partial bundle directory.
func SaveBundle(dir string, b *Bundle) error {
	if err := b.validate(); err != nil {
		return err
	}
	staging := dir + ".staging"
	if err := os.RemoveAll(staging); err != nil {
		return fmt.Errorf("bundle: clear staging: %w", err)
	}
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return fmt.Errorf("bundle: create staging: %w", err)
	}
	if err := writeGob(filepath.Join(staging, FileTextClassifier), b.TextClassifier); err != nil {
		return err
	}
	if err := writeGob(filepath.Join(staging, FileTextVectorizer), b.TextVectorizer); err != nil {
		return err
	}
	if err := writeGob(filepath.Join(staging, FileTabularClassifier), b.TabularClassifier); err != nil {
		return err
	}
	if err := writeGob(filepath.Join(staging, FileFeatureScaler), b.FeatureScaler); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(staging, FileLabelEncoders), b.Encoders); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(staging, FileFeatureColumns), b.Manifest); err != nil {
		return err
	}

	old := dir + ".old"
	if err := os.RemoveAll(old); err != nil {
		return fmt.Errorf("bundle: clear old: %w", err)
	}
	if _, err := os.Stat(dir); err == nil {
		if err := os.Rename(dir, old); err != nil {
			return fmt.Errorf("bundle: retire current: %w", err)
		}
	}
	if err := os.Rename(staging, dir); err != nil {
		return fmt.Errorf("bundle: activate staging: %w", err)
	}
	return os.RemoveAll(old)
}

func readGob(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("bundle: open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("bundle: decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeGob(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bundle: create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(v); err != nil {
		return fmt.Errorf("bundle: encode %s: %w", filepath.Base(path), err)
	}
	return f.Sync()
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("bundle: open %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("bundle: decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("bundle: encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("bundle: write %s: %w", filepath.Base(path), err)
	}
	return nil
}

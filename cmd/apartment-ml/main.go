// apartment-ml is the operational CLI for the prediction engine: it trains
// the artifact bundle from the historical corpus and runs one-off
// predictions against a trained bundle.
package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/artifact"
	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/config"
	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/loader"
	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/predict"
	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/training"
)

var (
	configPath string
	verbose    bool

	logger *zap.Logger
	cfg    config.Config
)

var rootCmd = &cobra.Command{
	Use:   "apartment-ml",
	Short: "Apartment management prediction engine",
	Long: `apartment-ml trains and serves the two prediction models of the
apartment management system: complaint priority classification
(safety keyword override + TF-IDF random forest) and tenant payment
delay risk (engineered tenant features + random forest).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		cfg, err = config.Load(configPath)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var trainCmd = &cobra.Command{
	Use:   "train [corpus.csv]",
	Short: "Train both models and persist the artifact bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := loader.LoadCSV(args[0])
		if err != nil {
			return err
		}
		logger.Info("corpus loaded", zap.Int("rows", len(rows)))

		pipeline := training.New(cfg.PipelineConfig(), logger)
		report, err := pipeline.RunAndSave(rows, cfg.ArtifactDir)
		if err != nil {
			return err
		}
		logger.Info("training complete",
			zap.Float64("priority_accuracy", report.Text.Accuracy),
			zap.Float64("risk_accuracy", report.Risk.Accuracy),
			zap.Float64("risk_roc_auc", report.Risk.ROCAUC))

		// smoke-check the freshly trained bundle on known complaints
		reg, err := artifact.OpenRegistry(cfg.ArtifactDir)
		if err != nil {
			return err
		}
		classifier := predict.NewPriorityClassifier(reg, predict.ZapPredictionLog{L: logger}, nil)
		for _, text := range []string{
			"Electric socket sparking near bed",
			"Water leaking from ceiling",
			"Garbage not collected today",
			"Floor not mopped properly",
		} {
			res := classifier.ClassifyAs("train-smoke", text)
			logger.Info("sample classification",
				zap.String("text", text),
				zap.String("priority", res.Priority),
				zap.Float64("confidence", res.Confidence))
		}
		return nil
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify [complaint text]",
	Short: "Classify a complaint's priority using the trained bundle",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := artifact.OpenRegistry(cfg.ArtifactDir)
		if err != nil {
			return err
		}
		classifier := predict.NewPriorityClassifier(reg, predict.ZapPredictionLog{L: logger}, nil)
		for _, text := range args {
			res := classifier.ClassifyAs("cli", text)
			fmt.Printf("%s\t%.4f\t%s\n", res.Priority, res.Confidence, text)
		}
		return nil
	},
}

var riskCmd = &cobra.Command{
	Use:   "risk [features.json]",
	Short: "Predict payment delay risk from a JSON feature map",
	Long: `Reads a JSON object mapping feature names to numbers, e.g.
{"monthly_rent": 18000, "delay_rate": 0.2}. Features absent from the
trained column manifest default to 0; unknown keys are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var featureMap map[string]float64
		if err := json.Unmarshal(data, &featureMap); err != nil {
			return fmt.Errorf("feature map: %w", err)
		}
		reg, err := artifact.OpenRegistry(cfg.ArtifactDir)
		if err != nil {
			return err
		}
		predictor := predict.NewRiskPredictor(reg, predict.ZapPredictionLog{L: logger}, nil)
		res := predictor.PredictAs("cli", featureMap)
		fmt.Printf("will_delay=%v risk_score=%.4f\n", res.WillDelay, res.RiskScore)
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(trainCmd, classifyCmd, riskCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

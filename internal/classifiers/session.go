package classifiers

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelineBackends"
	"github.com/knights-analytics/hugot/pipelines"
)

const (
	sentimentModelName = "KnightsAnalytics/distilbert-base-uncased-finetuned-sst-2-english"
	emotionModelName   = "KnightsAnalytics/roberta-base-go_emotions"
)

// Session owns the ONNX runtime session and the two text-classification
// pipelines built on it. Created once at startup, read-only afterwards, and
// safe for concurrent use by in-flight requests. Destroy must run before
// the process exits.
type Session struct {
	session           *hugot.Session
	sentimentPipeline *pipelines.TextClassificationPipeline
	emotionPipeline   *pipelines.TextClassificationPipeline
}

// NewSession downloads the models into modelDir when missing, starts the
// runtime session and initializes both pipelines.
func NewSession(modelDir string) (*Session, error) {
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create model directory: %w", err)
	}

	sentimentPath, err := ensureModel(sentimentModelName, modelDir)
	if err != nil {
		return nil, err
	}
	emotionPath, err := ensureModel(emotionModelName, modelDir)
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize runtime session: %w", err)
	}

	sentimentConfig := hugot.TextClassificationConfig{
		ModelPath: sentimentPath,
		Name:      "sentimentPipeline",
	}
	sentimentPipeline, err := hugot.NewPipeline(session, sentimentConfig)
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("failed to initialize sentiment pipeline: %w", err)
	}

	emotionConfig := hugot.TextClassificationConfig{
		ModelPath: emotionPath,
		Name:      "emotionPipeline",
		Options: []pipelineBackends.PipelineOption[*pipelines.TextClassificationPipeline]{
			pipelines.WithMultiLabel(),
			pipelines.WithSigmoid(),
		},
	}
	emotionPipeline, err := hugot.NewPipeline(session, emotionConfig)
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("failed to initialize emotion pipeline: %w", err)
	}

	slog.Info("[Classifiers] Model session ready",
		slog.String("model_dir", modelDir))

	return &Session{
		session:           session,
		sentimentPipeline: sentimentPipeline,
		emotionPipeline:   emotionPipeline,
	}, nil
}

// SentimentClassifier returns the adapter over the SST-2 pipeline.
// Confidence below neutralThreshold maps to Neutral.
func (s *Session) SentimentClassifier(neutralThreshold float64) *HugotSentimentClassifier {
	return &HugotSentimentClassifier{
		pipeline:         s.sentimentPipeline,
		neutralThreshold: neutralThreshold,
	}
}

// EmotionClassifier returns the adapter over the GoEmotions pipeline.
func (s *Session) EmotionClassifier() *HugotEmotionClassifier {
	return &HugotEmotionClassifier{pipeline: s.emotionPipeline}
}

// Destroy releases the runtime session and everything built on it.
func (s *Session) Destroy() error {
	return s.session.Destroy()
}

func ensureModel(modelName string, modelDir string) (string, error) {
	slog.Info("[Classifiers] Ensuring model is available",
		slog.String("model", modelName))
	start := time.Now()

	modelPath, err := hugot.DownloadModel(modelName, modelDir, hugot.NewDownloadOptions())
	if err != nil {
		return "", fmt.Errorf("failed to download model %s: %w", modelName, err)
	}

	slog.Info("[Classifiers] Model ready",
		slog.String("model", modelName),
		slog.String("path", modelPath),
		slog.Duration("elapsed", time.Since(start)))

	return modelPath, nil
}

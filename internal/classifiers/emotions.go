package classifiers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/knights-analytics/hugot/pipelines"

	"github.com/spacesedan/emotiflow/internal/analysis"
	"github.com/spacesedan/emotiflow/internal/models"
	"github.com/spacesedan/emotiflow/internal/taxonomy"
)

// HugotEmotionClassifier adapts the GoEmotions multi-label pipeline. Scores
// are independent sigmoid confidences, one per taxonomy label the model
// chose to report; cardinality is up to the model.
type HugotEmotionClassifier struct {
	pipeline *pipelines.TextClassificationPipeline
}

func (c *HugotEmotionClassifier) ClassifyEmotions(ctx context.Context, text string) ([]models.EmotionScore, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", analysis.ErrModelUnavailable, err)
	}

	output, err := c.pipeline.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("%w: emotion pipeline: %v", analysis.ErrModelUnavailable, err)
	}
	if len(output.ClassificationOutputs) == 0 {
		return nil, fmt.Errorf("%w: emotion pipeline returned no output", analysis.ErrModelUnavailable)
	}

	scores := make([]models.EmotionScore, 0, len(output.ClassificationOutputs[0]))
	for _, entry := range output.ClassificationOutputs[0] {
		label := strings.ToLower(strings.TrimSpace(entry.Label))
		if !taxonomy.Known(label) {
			slog.Warn("[EmotionClassifier] Dropping label outside taxonomy",
				slog.String("label", entry.Label))
			continue
		}
		scores = append(scores, models.EmotionScore{
			Label: label,
			Score: clampScore(float64(entry.Score)),
		})
	}

	return scores, nil
}

package classifiers

import (
	"context"
	"fmt"
	"strings"

	"github.com/knights-analytics/hugot/pipelines"

	"github.com/spacesedan/emotiflow/internal/analysis"
	"github.com/spacesedan/emotiflow/internal/models"
)

// DefaultNeutralThreshold is the confidence under which a binary
// positive/negative verdict is reported as Neutral instead. SST-2 has no
// neutral class, so low-confidence verdicts are noise.
const DefaultNeutralThreshold = 0.55

// HugotSentimentClassifier adapts the SST-2 pipeline to the pipeline's
// sentiment contract.
type HugotSentimentClassifier struct {
	pipeline         *pipelines.TextClassificationPipeline
	neutralThreshold float64
}

func (c *HugotSentimentClassifier) ClassifySentiment(ctx context.Context, text string) (models.SentimentResult, error) {
	if err := ctx.Err(); err != nil {
		return models.SentimentResult{}, fmt.Errorf("%w: %v", analysis.ErrModelUnavailable, err)
	}

	output, err := c.pipeline.RunPipeline([]string{text})
	if err != nil {
		return models.SentimentResult{}, fmt.Errorf("%w: sentiment pipeline: %v", analysis.ErrModelUnavailable, err)
	}
	if len(output.ClassificationOutputs) == 0 || len(output.ClassificationOutputs[0]) == 0 {
		return models.SentimentResult{}, fmt.Errorf("%w: sentiment pipeline returned no output", analysis.ErrModelUnavailable)
	}

	best := output.ClassificationOutputs[0][0]
	for _, candidate := range output.ClassificationOutputs[0][1:] {
		if candidate.Score > best.Score {
			best = candidate
		}
	}

	result := models.SentimentResult{
		Label: mapSentimentLabel(best.Label),
		Score: clampScore(float64(best.Score)),
	}
	if result.Score < c.neutralThreshold {
		result.Label = models.SentimentNeutral
	}

	return result, nil
}

func mapSentimentLabel(label string) models.SentimentLabel {
	switch strings.ToUpper(label) {
	case "POSITIVE":
		return models.SentimentPositive
	case "NEGATIVE":
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

package classifiers

import (
	"context"

	"github.com/jonreiter/govader"

	"github.com/spacesedan/emotiflow/internal/models"
)

// Compound-score cut-offs for the VADER lexicon verdict.
const (
	vaderPositiveCutoff = 0.20
	vaderNegativeCutoff = -0.20
)

// VaderSentimentClassifier is a lexicon-based alternative to the transformer
// sentiment backend. Fully deterministic, which also makes it the sentiment
// backend of choice in tests.
type VaderSentimentClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderSentimentClassifier() *VaderSentimentClassifier {
	return &VaderSentimentClassifier{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
	}
}

func (c *VaderSentimentClassifier) ClassifySentiment(_ context.Context, text string) (models.SentimentResult, error) {
	scores := c.analyzer.PolarityScores(text)
	compound := scores.Compound

	switch {
	case compound >= vaderPositiveCutoff:
		return models.SentimentResult{
			Label: models.SentimentPositive,
			Score: clampScore(compound),
		}, nil
	case compound <= vaderNegativeCutoff:
		return models.SentimentResult{
			Label: models.SentimentNegative,
			Score: clampScore(-compound),
		}, nil
	default:
		return models.SentimentResult{
			Label: models.SentimentNeutral,
			Score: clampScore(scores.Neutral),
		}, nil
	}
}

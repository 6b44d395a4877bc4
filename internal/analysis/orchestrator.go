package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spacesedan/emotiflow/internal/models"
	"github.com/spacesedan/emotiflow/internal/taxonomy"
	"github.com/spacesedan/emotiflow/internal/textutil"
)

const (
	// Summary used when the explanation call fails and the result degrades.
	degradedSummary = "Could not generate an AI summary."
	// Per-emotion placeholder for labels the explanation call did not cover.
	degradedExplanation = "No explanation could be generated for this emotion."
	// Summary for text where the classifier found no signal at all.
	noEmotionSummary = "No distinct emotion was detected in the text."
)

// SentimentClassifier maps text to exactly one sentiment label with a
// confidence in [0,1].
type SentimentClassifier interface {
	ClassifySentiment(ctx context.Context, text string) (models.SentimentResult, error)
}

// EmotionClassifier maps text to independent per-label confidences over the
// taxonomy. Cardinality of the output is up to the model; zero-score labels
// may be omitted.
type EmotionClassifier interface {
	ClassifyEmotions(ctx context.Context, text string) ([]models.EmotionScore, error)
}

// ExplanationGenerator performs the single outbound generative call: given
// the text, the overall sentiment and the ranked candidate emotions, it
// returns a summary and one explanation per emotion it deems accurate.
type ExplanationGenerator interface {
	Explain(ctx context.Context, text string, sentiment models.SentimentResult, candidates []models.EmotionScore) (models.Refinement, error)
}

// Orchestrator sequences classification, selection and explanation into one
// AnalysisResult per request. Safe for concurrent use: it holds no
// per-request state, only the injected collaborators.
type Orchestrator struct {
	sentiment SentimentClassifier
	emotions  EmotionClassifier
	generator ExplanationGenerator
	topK      int
}

func NewOrchestrator(sentiment SentimentClassifier, emotions EmotionClassifier, generator ExplanationGenerator, topK int) *Orchestrator {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Orchestrator{
		sentiment: sentiment,
		emotions:  emotions,
		generator: generator,
		topK:      topK,
	}
}

// Analyze runs the full pipeline. Classifier failures abort the request with
// ErrModelUnavailable; generator failures degrade the result instead of
// failing it, since sentiment and ranked emotions still have standalone
// value.
func (o *Orchestrator) Analyze(ctx context.Context, request models.AnalysisRequest) (*models.AnalysisResult, error) {
	text := strings.TrimSpace(request.Text)
	if text == "" {
		return nil, ErrInvalidInput
	}

	cleaned := textutil.ConvertMarkdownToText(text)
	if cleaned == "" {
		// Link-only or markup-only input leaves nothing to classify.
		return nil, ErrInvalidInput
	}

	start := time.Now()

	sentiment, emotionScores, err := o.classify(ctx, cleaned)
	if err != nil {
		return nil, err
	}

	top := SelectTop(emotionScores, o.topK)
	if len(top) == 0 {
		slog.Info("[Orchestrator] No emotion signal, skipping explanation",
			slog.Duration("elapsed", time.Since(start)))
		return &models.AnalysisResult{
			Sentiment: sentiment,
			Summary:   noEmotionSummary,
			Emotions:  []models.RankedEmotion{},
		}, nil
	}

	refinement, err := o.generator.Explain(ctx, cleaned, sentiment, top)
	if err != nil {
		slog.Warn("[Orchestrator] Explanation call failed, returning degraded result",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))
		return &models.AnalysisResult{
			Sentiment: sentiment,
			Summary:   degradedSummary,
			Emotions:  decorate(top),
		}, nil
	}

	result := &models.AnalysisResult{
		Sentiment: sentiment,
		Summary:   strings.TrimSpace(refinement.Summary),
		Emotions:  mergeRefinement(top, refinement),
	}
	if result.Summary == "" {
		result.Summary = degradedSummary
	}

	slog.Info("[Orchestrator] Analysis complete",
		slog.String("sentiment", string(sentiment.Label)),
		slog.Int("emotions", len(result.Emotions)),
		slog.Duration("elapsed", time.Since(start)))

	return result, nil
}

// classify runs both classifiers concurrently and joins on completion; the
// first failure wins and fails the whole request.
func (o *Orchestrator) classify(ctx context.Context, text string) (models.SentimentResult, []models.EmotionScore, error) {
	var (
		wg            sync.WaitGroup
		sentiment     models.SentimentResult
		sentimentErr  error
		emotionScores []models.EmotionScore
		emotionsErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		sentiment, sentimentErr = o.sentiment.ClassifySentiment(ctx, text)
	}()
	go func() {
		defer wg.Done()
		emotionScores, emotionsErr = o.emotions.ClassifyEmotions(ctx, text)
	}()
	wg.Wait()

	err := sentimentErr
	if err == nil {
		err = emotionsErr
	}
	if err != nil {
		if !errors.Is(err, ErrModelUnavailable) {
			err = fmt.Errorf("%w: %v", ErrModelUnavailable, err)
		}
		return models.SentimentResult{}, nil, err
	}

	return sentiment, emotionScores, nil
}

// mergeRefinement keeps the candidates the generator confirmed, attaches
// their explanations, renormalizes the kept subset so displayed scores
// still sum to 1.0, and re-sorts. Labels the generator invented are
// ignored; if it confirmed nothing usable, the full candidate set is kept
// with placeholder explanations.
func mergeRefinement(candidates []models.EmotionScore, refinement models.Refinement) []models.RankedEmotion {
	scoreByLabel := make(map[string]float64, len(candidates))
	for _, c := range candidates {
		scoreByLabel[c.Label] = c.Score
	}

	var kept []models.RankedEmotion
	for _, refined := range refinement.Emotions {
		label := strings.ToLower(strings.TrimSpace(refined.Label))
		score, ok := scoreByLabel[label]
		if !ok {
			continue
		}
		delete(scoreByLabel, label) // tolerate duplicate labels in the response

		explanation := strings.TrimSpace(refined.Explanation)
		if explanation == "" {
			explanation = degradedExplanation
		}
		kept = append(kept, models.RankedEmotion{
			Label:       label,
			Score:       score,
			Explanation: explanation,
			Emoji:       taxonomy.Emoji(label),
		})
	}

	if len(kept) == 0 {
		return decorate(candidates)
	}

	renormalize(kept)
	sortRanked(kept)
	return kept
}

// decorate turns normalized candidates into presentable entries with
// placeholder explanations, for paths where no generated text is available.
func decorate(candidates []models.EmotionScore) []models.RankedEmotion {
	ranked := make([]models.RankedEmotion, len(candidates))
	for i, c := range candidates {
		ranked[i] = models.RankedEmotion{
			Label:       c.Label,
			Score:       c.Score,
			Explanation: degradedExplanation,
			Emoji:       taxonomy.Emoji(c.Label),
		}
	}
	return ranked
}

func renormalize(emotions []models.RankedEmotion) {
	var sum float64
	for _, e := range emotions {
		sum += e.Score
	}
	if sum > 0 {
		for i := range emotions {
			emotions[i].Score /= sum
		}
		return
	}
	share := 1.0 / float64(len(emotions))
	for i := range emotions {
		emotions[i].Score = share
	}
}

func sortRanked(emotions []models.RankedEmotion) {
	sort.SliceStable(emotions, func(i, j int) bool {
		if emotions[i].Score != emotions[j].Score {
			return emotions[i].Score > emotions[j].Score
		}
		return labelRank(emotions[i].Label) < labelRank(emotions[j].Label)
	})
}

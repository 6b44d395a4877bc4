package explain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/samber/lo"

	"github.com/spacesedan/emotiflow/internal/analysis"
	"github.com/spacesedan/emotiflow/internal/models"
)

const DefaultTimeout = 5 * time.Second

const systemPrompt = `You are an expert emotion analysis AI. You will be given a user's text, its overall sentiment, and a list of candidate emotions detected by a less advanced model. Your tasks are:
1. From the candidate list, identify the 1 to 4 most accurate emotions for the text.
2. For each accurate emotion you identify, provide a simple, one-sentence explanation referencing the text. Explain why the emotion is present, do not repeat scores.
3. Write an insightful, user-friendly summary (2-3 sentences) of the overall emotional tone. Describe the primary feeling and how any secondary emotions add complexity.

### STRICT OUTPUT FORMAT
You MUST return only valid JSON, formatted exactly as follows:
{
  "summary": "XXX",
  "emotions": [
    {"label": "XXX", "explanation": "XXX"}
  ]
}

### REQUIREMENTS
- No Markdown formatting (no triple backticks, no explanations outside the JSON).
- Only include emotions from the candidate list.
- No trailing commas in JSON objects or arrays.`

// Generator performs the single outbound generative call per request. A nil
// client means generation is disabled (no API key configured); every call
// then degrades immediately.
type Generator struct {
	client  *openai.Client
	model   openai.ChatModel
	timeout time.Duration
}

func NewGenerator(client *openai.Client, model string, timeout time.Duration) *Generator {
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Generator{
		client:  client,
		model:   openai.ChatModel(model),
		timeout: timeout,
	}
}

// Explain asks the model to review the candidate emotions and produce a
// summary plus one explanation per emotion it confirms. Bounded by the
// configured timeout; the deadline maps to ErrGenerationTimeout so the
// orchestrator can abandon the call and degrade.
func (g *Generator) Explain(ctx context.Context, text string, sentiment models.SentimentResult, candidates []models.EmotionScore) (models.Refinement, error) {
	if g.client == nil {
		return models.Refinement{}, fmt.Errorf("%w: generator not configured", analysis.ErrGenerationError)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	chatCompletion, err := g.client.Chat.Completions.New(ctx,
		openai.ChatCompletionNewParams{
			Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(systemPrompt),
				openai.UserMessage(buildUserPrompt(text, sentiment, candidates)),
			}),
			Model:       openai.F(g.model),
			Temperature: openai.Float(0.3),
			MaxTokens:   openai.Int(300),
		})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			slog.Warn("[ExplanationGenerator] Call timed out",
				slog.Duration("elapsed", time.Since(start)))
			return models.Refinement{}, fmt.Errorf("%w: %v", analysis.ErrGenerationTimeout, err)
		}
		return models.Refinement{}, fmt.Errorf("%w: %v", analysis.ErrGenerationError, err)
	}

	if len(chatCompletion.Choices) == 0 || strings.TrimSpace(chatCompletion.Choices[0].Message.Content) == "" {
		return models.Refinement{}, fmt.Errorf("%w: empty completion", analysis.ErrGenerationError)
	}

	refinement, err := ParseRefinement(chatCompletion.Choices[0].Message.Content)
	if err != nil {
		return models.Refinement{}, err
	}

	slog.Info("[ExplanationGenerator] Refinement received",
		slog.Int("emotions", len(refinement.Emotions)),
		slog.Duration("elapsed", time.Since(start)))

	return refinement, nil
}

func buildUserPrompt(text string, sentiment models.SentimentResult, candidates []models.EmotionScore) string {
	labels := lo.Map(candidates, func(c models.EmotionScore, _ int) string {
		return "'" + c.Label + "'"
	})
	return fmt.Sprintf("Text: %q\nOverall sentiment: %s\nCandidate emotions: [%s]",
		text, sentiment.Label, strings.Join(labels, ", "))
}

// ParseRefinement scrubs and parses the model's answer. The response crosses
// a trust boundary: fences, smart quotes and junk fields are expected, and
// anything unparseable maps to ErrMalformedResponse rather than a panic.
func ParseRefinement(raw string) (models.Refinement, error) {
	cleaned := scrubResponse(raw)

	var refinement models.Refinement
	if err := json.Unmarshal([]byte(cleaned), &refinement); err != nil {
		slog.Warn("[ExplanationGenerator] Failed to parse refinement",
			slog.String("error", err.Error()),
			slog.String("raw_response", preview(raw)))
		return models.Refinement{}, fmt.Errorf("%w: %v", analysis.ErrMalformedResponse, err)
	}

	return refinement, nil
}

func scrubResponse(response string) string {
	response = strings.TrimSpace(response)

	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")

	// Standardize quotes in case the model outputs them incorrectly
	response = strings.ReplaceAll(response, "“", `"`)
	response = strings.ReplaceAll(response, "”", `"`)

	return strings.TrimSpace(response)
}

func preview(raw string) string {
	if len(raw) > 50 {
		return raw[:50]
	}
	return raw
}

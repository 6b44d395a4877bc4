package models

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNegative SentimentLabel = "Negative"
	SentimentNeutral  SentimentLabel = "Neutral"
)

// AnalysisRequest is the single inbound payload: the text to analyze.
type AnalysisRequest struct {
	Text string `json:"text"`
}

// SentimentResult is the overall tone of the text with the model's
// confidence, always in [0,1].
type SentimentResult struct {
	Label SentimentLabel `json:"label"`
	Score float64        `json:"score"`
}

// EmotionScore is one taxonomy label with a score. Before selection the
// score is the classifier's raw confidence; after selection it is the
// normalized share among the selected emotions.
type EmotionScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// RankedEmotion is a selected emotion as presented to the caller. Score is
// the normalized share, so the scores of a result's emotions sum to 1.
type RankedEmotion struct {
	Label       string  `json:"label"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
	Emoji       string  `json:"emoji"`
}

// AnalysisResult is the response root, built fresh per request. Emotions are
// ordered by descending score; the first entry is the primary emotion.
type AnalysisResult struct {
	Sentiment SentimentResult `json:"sentiment"`
	Summary   string          `json:"summary"`
	Emotions  []RankedEmotion `json:"emotions"`
}

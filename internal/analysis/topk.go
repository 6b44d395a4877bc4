package analysis

import (
	"sort"

	"github.com/spacesedan/emotiflow/internal/models"
	"github.com/spacesedan/emotiflow/internal/taxonomy"
)

// DefaultTopK is how many emotions a result surfaces at most.
const DefaultTopK = 4

// SelectTop picks the k highest-scoring emotions and rescales their scores
// to sum to 1.0, preserving relative order. Ties break by taxonomy position
// so the output never depends on the classifier's iteration order. Returns
// an empty sequence when the selected scores sum to zero.
//
// Pure function: the input slice is not modified.
func SelectTop(scores []models.EmotionScore, k int) []models.EmotionScore {
	if k <= 0 || len(scores) == 0 {
		return nil
	}

	ranked := make([]models.EmotionScore, len(scores))
	copy(ranked, scores)
	sortByScore(ranked)

	if len(ranked) > k {
		ranked = ranked[:k]
	}

	var sum float64
	for _, s := range ranked {
		sum += s.Score
	}
	if sum <= 0 {
		return nil
	}

	selected := make([]models.EmotionScore, len(ranked))
	for i, s := range ranked {
		selected[i] = models.EmotionScore{Label: s.Label, Score: s.Score / sum}
	}
	return selected
}

func sortByScore(scores []models.EmotionScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return labelRank(scores[i].Label) < labelRank(scores[j].Label)
	})
}

// labelRank orders labels by taxonomy position; anything outside the
// taxonomy sorts last.
func labelRank(label string) int {
	if i, ok := taxonomy.Index(label); ok {
		return i
	}
	return len(taxonomy.Labels)
}

package taxonomy

// Labels is the fixed GoEmotions label set in its canonical order. The
// position of a label in this slice is its tie-break rank everywhere scores
// compare equal, so the order must never change between releases.
var Labels = []string{
	"admiration",
	"amusement",
	"anger",
	"annoyance",
	"approval",
	"caring",
	"confusion",
	"curiosity",
	"desire",
	"disappointment",
	"disapproval",
	"disgust",
	"embarrassment",
	"excitement",
	"fear",
	"gratitude",
	"grief",
	"joy",
	"love",
	"nervousness",
	"optimism",
	"pride",
	"realization",
	"relief",
	"remorse",
	"sadness",
	"surprise",
	"neutral",
}

const FallbackEmoji = "😐"

var emojis = map[string]string{
	"admiration":     "🤩",
	"amusement":      "😂",
	"anger":          "😡",
	"annoyance":      "😒",
	"approval":       "👍",
	"caring":         "🤗",
	"confusion":      "🤔",
	"curiosity":      "🧐",
	"desire":         "😍",
	"disappointment": "😞",
	"disapproval":    "👎",
	"disgust":        "🤢",
	"embarrassment":  "😳",
	"excitement":     "🎉",
	"fear":           "😨",
	"gratitude":      "🙏",
	"grief":          "😭",
	"joy":            "😄",
	"love":           "❤️",
	"nervousness":    "😬",
	"optimism":       "😊",
	"pride":          "😌",
	"realization":    "💡",
	"relief":         "😮‍💨",
	"remorse":        "😔",
	"sadness":        "😢",
	"surprise":       "😲",
	"neutral":        "😐",
}

var indexByLabel = func() map[string]int {
	m := make(map[string]int, len(Labels))
	for i, label := range Labels {
		m[label] = i
	}
	return m
}()

// Index returns the canonical position of a label, or false for labels
// outside the taxonomy.
func Index(label string) (int, bool) {
	i, ok := indexByLabel[label]
	return i, ok
}

// Known reports whether the label belongs to the taxonomy.
func Known(label string) bool {
	_, ok := indexByLabel[label]
	return ok
}

// Emoji returns the decorative emoji for a label, falling back to a neutral
// face for anything outside the taxonomy.
func Emoji(label string) string {
	if e, ok := emojis[label]; ok {
		return e
	}
	return FallbackEmoji
}

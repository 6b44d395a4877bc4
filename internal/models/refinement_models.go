package models

// Refinement is the shape the explanation model is instructed to return.
// The response crosses a trust boundary, so every field may be missing or
// junk; consumers must treat it as a candidate, not a fact.
type Refinement struct {
	Summary  string           `json:"summary"`
	Emotions []RefinedEmotion `json:"emotions"`
}

type RefinedEmotion struct {
	Label       string `json:"label"`
	Explanation string `json:"explanation"`
}

package analysis

import (
	"encoding/json"
	"strings"
)

// Classification enum for a single ingredient verdict. The model is
// instructed to emit Good/Bad/Neutral only, but its output is not trusted:
// anything else decodes to ClassificationUnknown.
type Classification string

const (
	ClassificationGood    Classification = "Good"
	ClassificationBad     Classification = "Bad"
	ClassificationNeutral Classification = "Neutral"
	ClassificationUnknown Classification = "Unknown"
)

// ParseClassification maps a raw model string onto the closed set.
func ParseClassification(s string) Classification {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "good":
		return ClassificationGood
	case "bad":
		return ClassificationBad
	case "neutral":
		return ClassificationNeutral
	default:
		return ClassificationUnknown
	}
}

// UnmarshalJSON normalizes whatever the model returned.
func (c *Classification) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = ParseClassification(s)
	return nil
}

// IngredientVerdict is the per-ingredient judgement inside a Result.
type IngredientVerdict struct {
	Name           string         `json:"name"`
	Classification Classification `json:"classification"`
	Reason         string         `json:"reason"`
}

// Result is the structured analysis decoded from the model output (or built
// by Fallback). OverallRating is on a 1-10 scale.
type Result struct {
	Ingredients   []IngredientVerdict `json:"ingredients"`
	OverallRating int                 `json:"overall_rating"`
	Summary       string              `json:"summary"`
}

// SafetyScore maps the 1-10 overall rating onto [0,1].
func (r Result) SafetyScore() float64 {
	return float64(r.OverallRating) / 10.0
}

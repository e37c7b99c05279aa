package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafetyScore(t *testing.T) {
	tests := []struct {
		rating int
		score  float64
	}{
		{rating: 1, score: 0.1},
		{rating: 5, score: 0.5},
		{rating: 7, score: 0.7},
		{rating: 10, score: 1.0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.score, Result{OverallRating: tt.rating}.SafetyScore(), 1e-9)
	}
}

func TestParseClassification(t *testing.T) {
	tests := []struct {
		raw      string
		expected Classification
	}{
		{raw: "Good", expected: ClassificationGood},
		{raw: "bad", expected: ClassificationBad},
		{raw: " NEUTRAL ", expected: ClassificationNeutral},
		{raw: "Excellent", expected: ClassificationUnknown},
		{raw: "", expected: ClassificationUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseClassification(tt.raw))
	}
}

func TestResultUnmarshalNormalizesClassification(t *testing.T) {
	raw := `{
		"ingredients": [
			{"name": "water", "classification": "good", "reason": "hydrating"},
			{"name": "mystery", "classification": "possibly fine", "reason": "model went off-script"}
		],
		"overall_rating": 8,
		"summary": "mostly fine"
	}`

	var result Result
	require.NoError(t, json.Unmarshal([]byte(raw), &result))
	require.Len(t, result.Ingredients, 2)
	assert.Equal(t, ClassificationGood, result.Ingredients[0].Classification)
	assert.Equal(t, ClassificationUnknown, result.Ingredients[1].Classification)
	assert.Equal(t, 8, result.OverallRating)
}

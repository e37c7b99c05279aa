package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallback(t *testing.T) {
	result := Fallback("water, fragrance")

	require.Len(t, result.Ingredients, 2)
	assert.Equal(t, "water", result.Ingredients[0].Name)
	assert.Equal(t, "fragrance", result.Ingredients[1].Name)
	for _, v := range result.Ingredients {
		assert.Equal(t, ClassificationNeutral, v.Classification)
		assert.Equal(t, "Unable to analyze - service unavailable", v.Reason)
	}
	assert.Equal(t, 5, result.OverallRating)
	assert.InDelta(t, 0.5, result.SafetyScore(), 1e-9)
	assert.True(t, IsFallback(result))
}

func TestFallbackSplitsVerbatim(t *testing.T) {
	// Raw comma split: empty tokens still yield a verdict each.
	result := Fallback("water,,alcohol")
	require.Len(t, result.Ingredients, 3)
	assert.Equal(t, "", result.Ingredients[1].Name)
}

func TestFallbackIsDeterministic(t *testing.T) {
	assert.Equal(t, Fallback("a, b"), Fallback("a, b"))
}

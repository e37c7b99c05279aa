package analysis

import "strings"

const (
	fallbackReason  = "Unable to analyze - service unavailable"
	fallbackSummary = "Analysis unavailable due to service error. Please try again later."
	fallbackRating  = 5
)

// Fallback builds the degraded result returned when the model call or its
// output parsing fails. One Neutral verdict per raw comma token; the input is
// split verbatim, not normalized.
func Fallback(ingredientsText string) Result {
	parts := strings.Split(ingredientsText, ",")
	verdicts := make([]IngredientVerdict, 0, len(parts))
	for _, p := range parts {
		verdicts = append(verdicts, IngredientVerdict{
			Name:           strings.TrimSpace(p),
			Classification: ClassificationNeutral,
			Reason:         fallbackReason,
		})
	}
	return Result{
		Ingredients:   verdicts,
		OverallRating: fallbackRating,
		Summary:       fallbackSummary,
	}
}

// IsFallback reports whether r is the degraded service-unavailable result.
func IsFallback(r Result) bool {
	return r.Summary == fallbackSummary
}

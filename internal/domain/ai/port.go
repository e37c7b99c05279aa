package ai

import (
	"context"

	"github.com/anjarmara/skinsight/internal/domain/analysis"
)

// TextAnalyzer runs the ingredient-safety analysis. Implementations never
// fail: any transport or parse error degrades to the deterministic fallback
// result, so the text path always produces something usable.
type TextAnalyzer interface {
	AnalyzeIngredients(ctx context.Context, ingredientsText string) analysis.Result
}

// VisionExtractor reads an ingredient list off a product-label image and
// returns it as a comma-joined string. Unlike TextAnalyzer, extraction
// failures are returned to the caller instead of being masked.
type VisionExtractor interface {
	ExtractIngredients(ctx context.Context, image []byte, contentType string) (string, error)
}

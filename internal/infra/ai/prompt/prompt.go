package prompt

import "fmt"

// GetSystemPrompt is the fixed system message for the analysis request.
func GetSystemPrompt() string {
	return "You are an expert in cosmetic and skincare formulation analysis."
}

// GetAnalysisPrompt builds the user message for an ingredient list. It pins
// the exact output schema and forbids fences/commentary; the response
// extractor still defends against models that ignore that.
func GetAnalysisPrompt(ingredientsText string) string {
	return fmt.Sprintf(`You are an expert in cosmetic and skincare formulation analysis.
I will provide you a list of skincare ingredients.
For each ingredient, classify it as one of:
- "Good" (beneficial for skin)
- "Bad" (harmful, irritating, or unsafe)
- "Neutral" (no major effect, commonly used)

Then, provide a rating for the overall product on a scale of 1-10,
based on the balance of good vs bad ingredients.

Return the result strictly as a raw JSON object ONLY (no code fences, no markdown, no commentary), with the following structure:
{
  "ingredients": [
    { "name": "Ingredient1", "classification": "Good", "reason": "Why it is good" },
    { "name": "Ingredient2", "classification": "Bad", "reason": "Why it is bad" }
  ],
  "overall_rating": 7,
  "summary": "Short summary about the product safety and effectiveness"
}

If there are more than 150 ingredients, analyze the first 150 and summarize the rest.

Here are the ingredients to analyze: %s`, ingredientsText)
}

// GetVisionSystemPrompt instructs extraction of ingredient names only,
// as a bare JSON array of strings.
func GetVisionSystemPrompt() string {
	return `You are an expert at reading ingredient lists from skincare product images. Extract ONLY the ingredient names from the image and return them as a JSON array. Do not include any other text, explanations, or analysis. Example: ["water", "niacinamide", "hyaluronic acid"]`
}

// GetVisionUserPrompt is the text part accompanying the image part.
func GetVisionUserPrompt() string {
	return "Extract the ingredient list from this image and return as JSON array:"
}

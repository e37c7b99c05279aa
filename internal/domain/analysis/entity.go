package analysis

import (
	"time"
)

// AnalysisID identifier type
type AnalysisID string

// Analysis is a persisted ingredient-safety analysis owned by one user.
// Ingredients and Result are stored as serialized JSON text, mirroring what
// was submitted and what the model (or the fallback) produced.
type Analysis struct {
	ID          AnalysisID `json:"id"`
	UserID      string     `json:"user_id"`
	Username    string     `json:"username"`
	Ingredients string     `json:"identified_ingredients"` // JSON array of raw comma-split tokens
	Result      string     `json:"safety_analysis"`        // JSON Result
	SafetyScore float64    `json:"safety_score"`
	ProductName string     `json:"product_name,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/anjarmara/skinsight/internal/domain/analysis"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Analysis) error {
	const q = `
INSERT INTO ingredient_analyses
  (id, user_id, username, identified_ingredients, safety_analysis, safety_score, product_name, image_url, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9);
`
	result := a.Result
	if strings.TrimSpace(result) == "" {
		result = "{}"
	}
	ingredients := a.Ingredients
	if strings.TrimSpace(ingredients) == "" {
		ingredients = "[]"
	}
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, q,
		a.ID, a.UserID, a.Username,
		ingredients, result,
		a.SafetyScore, a.ProductName, a.ImageURL, createdAt,
	)
	return err
}

func (r *AnalysisRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Analysis, error) {
	const q = `
SELECT id, user_id, username, identified_ingredients, safety_analysis, safety_score, product_name, image_url, created_at
FROM ingredient_analyses
WHERE user_id=$1
ORDER BY created_at DESC, id DESC;
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Analysis
	for rows.Next() {
		var a domain.Analysis
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Username,
			&a.Ingredients, &a.Result,
			&a.SafetyScore, &a.ProductName, &a.ImageURL, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

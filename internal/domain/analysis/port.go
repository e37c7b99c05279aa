package analysis

import "context"

// Repository port for persisting and querying analyses
type Repository interface {
	Save(ctx context.Context, a *Analysis) error
	ListByUser(ctx context.Context, userID string) ([]*Analysis, error)
}

package repositories

import (
	"context"

	"github.com/chrisdamba/mealgen/internal/models"
)

type OrderRowRepository interface {
	EnsureTable(ctx context.Context) error
	BulkCreate(ctx context.Context, records []*models.OrderRowRecord) error
	GetByRun(ctx context.Context, runID string) ([]*models.OrderRowRecord, error)
	Count(ctx context.Context) (int, error)
	DeleteRun(ctx context.Context, runID string) error
}

package repository

import (
	"context"

	"github.com/fugui-tools/filter-bot/internal/modules/filter/domain"
)

// ListLimit caps how many filters a single chat query may return.
const ListLimit = 1000

// Repository defines the interface for filter data persistence
type Repository interface {
	Upsert(ctx context.Context, filter *domain.Filter) error
	Get(ctx context.Context, chatID int64, keyword string) (*domain.Filter, error)
	List(ctx context.Context, chatID int64) ([]domain.Filter, error)
	Delete(ctx context.Context, chatID int64, keyword string) (bool, error)
}

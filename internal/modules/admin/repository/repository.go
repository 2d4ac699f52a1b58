package repository

import (
	"context"

	"github.com/fugui-tools/filter-bot/internal/modules/admin/domain"
)

// Repository defines the interface for admin grant persistence
type Repository interface {
	Upsert(ctx context.Context, grant *domain.Grant) error
	Exists(ctx context.Context, chatID, userID int64) (bool, error)
	Delete(ctx context.Context, chatID, userID int64) (bool, error)
}

package repository

import (
	"context"

	"github.com/fugui-tools/filter-bot/internal/modules/connection/domain"
)

// Repository defines the interface for connection data persistence
type Repository interface {
	Upsert(ctx context.Context, conn *domain.Connection) error
	Get(ctx context.Context, userID int64) (*domain.Connection, error)
	Delete(ctx context.Context, userID int64) (bool, error)
}

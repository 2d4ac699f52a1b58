package repository

import (
	"context"

	"github.com/fugui-tools/filter-bot/internal/modules/channel/domain"
)

// Repository defines the interface for channel registry persistence
type Repository interface {
	Upsert(ctx context.Context, channel *domain.Channel) error
	Get(ctx context.Context, channelID int64) (*domain.Channel, error)
	// ListActive returns a page of active channels and the total active count.
	ListActive(ctx context.Context, skip, limit int64) ([]domain.Channel, int64, error)
	Delete(ctx context.Context, channelID int64) (bool, error)
}

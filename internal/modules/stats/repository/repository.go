package repository

import (
	"context"
	"time"

	"github.com/fugui-tools/filter-bot/internal/modules/stats/domain"
)

// Repository defines the interface for usage counter persistence
type Repository interface {
	// Increment bumps today's counter for a command and adds the user and
	// chat to today's distinct-seen sets.
	Increment(ctx context.Context, day time.Time, command string, userID, chatID int64) error
	// ListSince returns the daily rows with date >= since, oldest first.
	ListSince(ctx context.Context, since time.Time) ([]domain.Daily, error)
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fugui-tools/filter-bot/internal/modules/connection/domain"
	"github.com/fugui-tools/filter-bot/internal/modules/connection/repository"
	sharederrors "github.com/fugui-tools/filter-bot/internal/shared/errors"
)

// Service handles connection business logic
type Service struct {
	repo repository.Repository
}

// New creates a new connection service
func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// Connect links a user's private chat to a group, replacing any prior link.
func (s *Service) Connect(ctx context.Context, userID, groupID int64) bool {
	conn := &domain.Connection{
		UserID:      userID,
		GroupID:     groupID,
		ConnectedAt: time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, conn); err != nil {
		slog.Error("Failed to save connection", "user_id", userID, "group_id", groupID, "error", err)
		return false
	}
	return true
}

// Get returns the user's connection or nil when none exists or the store
// failed.
func (s *Service) Get(ctx context.Context, userID int64) *domain.Connection {
	conn, err := s.repo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, sharederrors.ErrNotConnected) {
			slog.Error("Failed to get connection", "user_id", userID, "error", err)
		}
		return nil
	}
	return conn
}

// Disconnect removes the user's connection and reports whether one existed.
func (s *Service) Disconnect(ctx context.Context, userID int64) bool {
	deleted, err := s.repo.Delete(ctx, userID)
	if err != nil {
		slog.Error("Failed to delete connection", "user_id", userID, "error", err)
		return false
	}
	return deleted
}

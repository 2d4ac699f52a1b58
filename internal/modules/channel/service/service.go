package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fugui-tools/filter-bot/internal/modules/channel/domain"
	"github.com/fugui-tools/filter-bot/internal/modules/channel/repository"
	sharederrors "github.com/fugui-tools/filter-bot/internal/shared/errors"
)

// Service handles channel registry business logic
type Service struct {
	repo     repository.Repository
	pageSize int64
}

// New creates a new channel service
func New(repo repository.Repository, pageSize int) *Service {
	if pageSize < 1 {
		pageSize = 10
	}
	return &Service{repo: repo, pageSize: int64(pageSize)}
}

// Add registers a channel, reactivating it when it was previously removed.
func (s *Service) Add(ctx context.Context, channelID int64, title string, addedBy int64) bool {
	channel := &domain.Channel{
		ChannelID: channelID,
		Title:     title,
		AddedBy:   addedBy,
		AddedAt:   time.Now().UTC(),
		IsActive:  true,
	}
	if err := s.repo.Upsert(ctx, channel); err != nil {
		slog.Error("Failed to save channel", "channel_id", channelID, "error", err)
		return false
	}
	return true
}

// Page returns one page of active channels (1-based page number), the total
// active count and the total number of pages. Store faults yield an empty page.
func (s *Service) Page(ctx context.Context, page int) ([]domain.Channel, int64, int64) {
	if page < 1 {
		page = 1
	}
	skip := (int64(page) - 1) * s.pageSize

	channels, total, err := s.repo.ListActive(ctx, skip, s.pageSize)
	if err != nil {
		slog.Error("Failed to list channels", "page", page, "error", err)
		return nil, 0, 0
	}

	pages := (total + s.pageSize - 1) / s.pageSize
	return channels, total, pages
}

// Get returns a channel or nil when it does not exist or the store failed.
func (s *Service) Get(ctx context.Context, channelID int64) *domain.Channel {
	channel, err := s.repo.Get(ctx, channelID)
	if err != nil {
		if !errors.Is(err, sharederrors.ErrChannelNotFound) {
			slog.Error("Failed to get channel", "channel_id", channelID, "error", err)
		}
		return nil
	}
	return channel
}

// Delete removes a channel outright and reports whether one existed.
func (s *Service) Delete(ctx context.Context, channelID int64) bool {
	deleted, err := s.repo.Delete(ctx, channelID)
	if err != nil {
		slog.Error("Failed to delete channel", "channel_id", channelID, "error", err)
		return false
	}
	return deleted
}

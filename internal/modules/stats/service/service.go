package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/fugui-tools/filter-bot/internal/modules/stats/domain"
	"github.com/fugui-tools/filter-bot/internal/modules/stats/repository"
)

// Service handles usage counters.
type Service struct {
	repo repository.Repository
	now  func() time.Time
}

// New creates a new stats service
func New(repo repository.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Record bumps today's counters for a command invocation. Recording must never
// block or fail the user-facing action, so faults are logged and swallowed.
func (s *Service) Record(ctx context.Context, command string, userID, chatID int64) {
	day := domain.Day(s.now())
	if err := s.repo.Increment(ctx, day, command, userID, chatID); err != nil {
		slog.Error("Failed to record command stats", "command", command, "error", err)
	}
}

// Summary aggregates the trailing N days of counters. Distinct user/chat
// counts are summed per day, not deduplicated across the window. Store faults
// yield an empty summary.
func (s *Service) Summary(ctx context.Context, days int) *domain.Summary {
	since := s.now().UTC().AddDate(0, 0, -days)

	rows, err := s.repo.ListSince(ctx, since)
	if err != nil {
		slog.Error("Failed to load stats", "days", days, "error", err)
		return &domain.Summary{WindowDays: days}
	}

	summary := &domain.Summary{WindowDays: days, Days: rows}
	for _, d := range rows {
		summary.TotalCommands += d.Total
		summary.ActiveUsers += int64(len(d.Users))
		summary.ActiveChats += int64(len(d.Chats))
	}
	return summary
}

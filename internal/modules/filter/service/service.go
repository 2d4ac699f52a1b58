package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/fugui-tools/filter-bot/internal/modules/filter/domain"
	"github.com/fugui-tools/filter-bot/internal/modules/filter/repository"
	sharederrors "github.com/fugui-tools/filter-bot/internal/shared/errors"
	"github.com/samber/oops"
)

// Service handles filter business logic
type Service struct {
	repo repository.Repository
}

// New creates a new filter service
func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// Add stores a new keyword filter for a chat. Re-adding an existing keyword is
// rejected so a live filter is never silently overwritten; it must be deleted
// first. The existence check and the write are separate store round-trips, so
// two concurrent adds for the same keyword can both pass the check and the
// later write wins (last-write-wins, same as the store's upsert semantics).
func (s *Service) Add(ctx context.Context, chatID int64, keyword, response string, createdBy int64) error {
	keyword = domain.NormalizeKeyword(keyword)

	existing, err := s.repo.Get(ctx, chatID, keyword)
	if err != nil && !errors.Is(err, sharederrors.ErrFilterNotFound) {
		// Store fault on the pre-check: fall through and let the write decide.
		slog.Error("Failed to check existing filter", "chat_id", chatID, "keyword", keyword, "error", err)
	}
	if existing != nil {
		return sharederrors.ErrFilterExists
	}

	now := time.Now().UTC()
	filter := &domain.Filter{
		ChatID:    chatID,
		Keyword:   keyword,
		Response:  response,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Upsert(ctx, filter); err != nil {
		return oops.With("chat_id", chatID, "keyword", keyword, "context", "failed to add filter").Wrap(err)
	}
	return nil
}

// Delete removes a filter and reports whether one existed. Store faults are
// logged and reported as "not found".
func (s *Service) Delete(ctx context.Context, chatID int64, keyword string) bool {
	keyword = domain.NormalizeKeyword(keyword)

	deleted, err := s.repo.Delete(ctx, chatID, keyword)
	if err != nil {
		slog.Error("Failed to delete filter", "chat_id", chatID, "keyword", keyword, "error", err)
		return false
	}
	return deleted
}

// List returns a chat's filters sorted by keyword ascending. Store faults are
// logged and yield an empty list.
func (s *Service) List(ctx context.Context, chatID int64) []domain.Filter {
	filters, err := s.repo.List(ctx, chatID)
	if err != nil {
		slog.Error("Failed to list filters", "chat_id", chatID, "error", err)
		return nil
	}
	return filters
}

// Get returns a filter or nil when it does not exist or the store failed.
func (s *Service) Get(ctx context.Context, chatID int64, keyword string) *domain.Filter {
	filter, err := s.repo.Get(ctx, chatID, domain.NormalizeKeyword(keyword))
	if err != nil {
		if !errors.Is(err, sharederrors.ErrFilterNotFound) {
			slog.Error("Failed to get filter", "chat_id", chatID, "keyword", keyword, "error", err)
		}
		return nil
	}
	return filter
}

// Match picks the filter a message triggers: the first stored keyword found as
// a substring of the lower-cased text, in the keyword-ascending order the
// store returns. At most one filter fires per message.
func (s *Service) Match(filters []domain.Filter, text string) *domain.Filter {
	lowered := strings.ToLower(text)
	for i := range filters {
		if filters[i].Keyword == "" {
			continue
		}
		if strings.Contains(lowered, filters[i].Keyword) {
			return &filters[i]
		}
	}
	return nil
}

// MatchMessage fetches a chat's filters and matches the incoming text against
// them. One store read per message; no cache.
func (s *Service) MatchMessage(ctx context.Context, chatID int64, text string) *domain.Filter {
	return s.Match(s.List(ctx, chatID), text)
}

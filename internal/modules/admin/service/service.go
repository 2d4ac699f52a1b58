package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/fugui-tools/filter-bot/internal/modules/admin/domain"
	"github.com/fugui-tools/filter-bot/internal/modules/admin/repository"
)

// RoleLookup reports whether a user currently holds the platform's own
// administrator or owner role in a chat. Implemented by the Telegram
// transport; lookup failures count as "no role".
type RoleLookup interface {
	HasAdminRole(ctx context.Context, chatID, userID int64) (bool, error)
}

// Service handles admin grants and the authorization policy built on them.
type Service struct {
	repo  repository.Repository
	roles RoleLookup
}

// New creates a new admin service
func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// SetRoleLookup sets the platform role lookup, wired once the bot exists.
func (s *Service) SetRoleLookup(roles RoleLookup) {
	s.roles = roles
}

// Grant records a bot-level admin for a chat.
func (s *Service) Grant(ctx context.Context, chatID, userID, grantedBy int64) bool {
	grant := &domain.Grant{
		ChatID:    chatID,
		UserID:    userID,
		GrantedBy: grantedBy,
		GrantedAt: time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, grant); err != nil {
		slog.Error("Failed to save admin grant", "chat_id", chatID, "user_id", userID, "error", err)
		return false
	}
	return true
}

// IsAdmin reports whether a stored grant exists. Store faults count as "no".
func (s *Service) IsAdmin(ctx context.Context, chatID, userID int64) bool {
	exists, err := s.repo.Exists(ctx, chatID, userID)
	if err != nil {
		slog.Error("Failed to check admin grant", "chat_id", chatID, "user_id", userID, "error", err)
		return false
	}
	return exists
}

// Revoke removes a grant and reports whether one existed.
func (s *Service) Revoke(ctx context.Context, chatID, userID int64) bool {
	deleted, err := s.repo.Delete(ctx, chatID, userID)
	if err != nil {
		slog.Error("Failed to revoke admin grant", "chat_id", chatID, "user_id", userID, "error", err)
		return false
	}
	return deleted
}

// CanManageFilters decides whether a user may add or delete filters. Group
// chats accept either a stored grant or the platform admin/owner role; private
// chats have no group-role concept and are unrestricted.
func (s *Service) CanManageFilters(ctx context.Context, chatID, userID int64, isGroup bool) bool {
	if !isGroup {
		return true
	}
	if s.IsAdmin(ctx, chatID, userID) {
		return true
	}
	return s.HasPlatformRole(ctx, chatID, userID)
}

// HasPlatformRole consults the messaging platform's own role system. Missing
// lookup or lookup failure is treated as "not authorized", never as an error.
func (s *Service) HasPlatformRole(ctx context.Context, chatID, userID int64) bool {
	if s.roles == nil {
		return false
	}
	ok, err := s.roles.HasAdminRole(ctx, chatID, userID)
	if err != nil {
		slog.Error("Failed to look up platform role", "chat_id", chatID, "user_id", userID, "error", err)
		return false
	}
	return ok
}

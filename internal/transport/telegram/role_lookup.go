package telegram

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/oops"
)

// RoleLookup resolves group roles through the Bot API. Creators and
// administrators of a group count as privileged.
type RoleLookup struct {
	b *bot.Bot
}

// NewRoleLookup creates a new role lookup
func NewRoleLookup(b *bot.Bot) *RoleLookup {
	return &RoleLookup{b: b}
}

func (r *RoleLookup) HasAdminRole(ctx context.Context, chatID, userID int64) (bool, error) {
	member, err := r.b.GetChatMember(ctx, &bot.GetChatMemberParams{
		ChatID: chatID,
		UserID: userID,
	})
	if err != nil {
		return false, oops.In("telegram").
			With("chat_id", chatID).
			With("user_id", userID).
			Wrapf(err, "failed to get chat member")
	}

	return member.Type == models.ChatMemberTypeOwner ||
		member.Type == models.ChatMemberTypeAdministrator, nil
}

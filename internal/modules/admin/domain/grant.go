package domain

import "time"

// Grant is a bot-level admin record for a (chat, user) pair, independent of
// Telegram's native chat roles.
type Grant struct {
	ChatID    int64     `bson:"chat_id" json:"chat_id"`
	UserID    int64     `bson:"user_id" json:"user_id"`
	GrantedBy int64     `bson:"granted_by" json:"granted_by"`
	GrantedAt time.Time `bson:"granted_at" json:"granted_at"`
}

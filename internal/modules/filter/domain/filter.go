package domain

import (
	"strings"
	"time"
)

// Filter maps a keyword to an automatic reply inside a single chat.
// The keyword is stored lower-cased, so matching is case-insensitive by
// construction rather than by query-time normalization.
type Filter struct {
	ChatID    int64     `bson:"chat_id" json:"chat_id"`
	Keyword   string    `bson:"keyword" json:"keyword"`
	Response  string    `bson:"response" json:"response"`
	CreatedBy int64     `bson:"created_by" json:"created_by"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// NormalizeKeyword lower-cases a keyword before storage or lookup.
func NormalizeKeyword(keyword string) string {
	return strings.ToLower(keyword)
}

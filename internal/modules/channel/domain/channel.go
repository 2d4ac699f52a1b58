package domain

import "time"

// Channel is an entry in the bot's channel registry, independent of filters.
// Re-adding a previously removed channel reactivates it under the same ID.
type Channel struct {
	ChannelID int64     `bson:"channel_id" json:"channel_id"`
	Title     string    `bson:"title" json:"title"`
	AddedBy   int64     `bson:"added_by" json:"added_by"`
	AddedAt   time.Time `bson:"added_at" json:"added_at"`
	IsActive  bool      `bson:"is_active" json:"is_active"`
}

package domain

import "time"

// Connection links a user's private chat to a group. A user has at most one
// live connection; connecting again replaces the previous link.
type Connection struct {
	UserID      int64     `bson:"user_id" json:"user_id"`
	GroupID     int64     `bson:"group_id" json:"group_id"`
	ConnectedAt time.Time `bson:"connected_at" json:"connected_at"`
}

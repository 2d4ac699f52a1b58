package domain

import "time"

// Daily is one UTC calendar day's usage counters: per-command counts, a
// running total, and the distinct users/chats seen that day.
type Daily struct {
	Date     time.Time        `bson:"date" json:"date"`
	Commands map[string]int64 `bson:"commands" json:"commands"`
	Total    int64            `bson:"total" json:"total"`
	Users    []int64          `bson:"users" json:"users"`
	Chats    []int64          `bson:"chats" json:"chats"`
}

// Summary aggregates a trailing window of Daily rows. ActiveUsers and
// ActiveChats sum the per-day distinct-set sizes, so a user active on two
// different days counts twice.
type Summary struct {
	WindowDays    int
	TotalCommands int64
	ActiveUsers   int64
	ActiveChats   int64
	Days          []Daily
}

// Day truncates a timestamp to its UTC calendar day.
func Day(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

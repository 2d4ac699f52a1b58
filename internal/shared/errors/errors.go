package errors

import "errors"

var (
	ErrMissingBotToken = errors.New("TELEGRAM_BOT_TOKEN environment variable is required")
	ErrFilterExists    = errors.New("filter already exists for this keyword")
	ErrFilterNotFound  = errors.New("filter not found")
	ErrChannelNotFound = errors.New("channel not found")
	ErrNotConnected    = errors.New("no active connection")
	ErrUnauthorized    = errors.New("unauthorized user")
)

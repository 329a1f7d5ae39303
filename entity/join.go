package entity

import "time"

// JoinEvent is a single member-joined notification. It is never stored.
type JoinEvent struct {
	GuildID  string
	UserID   string
	Username string
	JoinedAt time.Time
}

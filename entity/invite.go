// Package entity defines domain types shared across the application.

package entity

// Invite is a guild invite link as reported by the platform.
// Uses only ever grows while the invite exists.
type Invite struct {
	Code string `json:"code"`
	Uses uint64 `json:"uses"`
}

type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Channel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Mention renders the channel as a clickable reference in a message.
func (c Channel) Mention() string {
	return "<#" + c.ID + ">"
}

package entity

import "time"

// GrantSource tells which path tried to grant the role.
type GrantSource string

const (
	SourceJoin    GrantSource = "join"    // passive path, invite attribution
	SourceCommand GrantSource = "command" // slash command with password
)

// GrantOutcome is the result of a single grant attempt.
type GrantOutcome string

const (
	OutcomeGranted         GrantOutcome = "granted"
	OutcomeNotConfigured   GrantOutcome = "not_configured"
	OutcomeWrongPassword   GrantOutcome = "wrong_password"
	OutcomeCancelled       GrantOutcome = "cancelled"
	OutcomeNotFound        GrantOutcome = "not_found" // role or channel missing
	OutcomePlatformFailure GrantOutcome = "platform_failure"
	OutcomeNotInGuild      GrantOutcome = "not_in_guild"
	OutcomeNotInitialized  GrantOutcome = "not_initialized"
)

// GrantRecord is one line of the grant audit log.
// Previous and Current are the invite use counts seen by the join path.
type GrantRecord struct {
	ID        string       `json:"id" bson:"id"`
	Source    GrantSource  `json:"source" bson:"source"`
	GuildID   string       `json:"guild_id" bson:"guild_id"`
	UserID    string       `json:"user_id" bson:"user_id"`
	Username  string       `json:"username" bson:"username"`
	RoleID    string       `json:"role_id,omitempty" bson:"role_id,omitempty"`
	Outcome   GrantOutcome `json:"outcome" bson:"outcome"`
	Error     string       `json:"error,omitempty" bson:"error,omitempty"`
	Previous  uint64       `json:"previous,omitempty" bson:"previous,omitempty"`
	Current   uint64       `json:"current,omitempty" bson:"current,omitempty"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
}

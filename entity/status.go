package entity

import "time"

// Status is a snapshot of the feature counters since process start.
type Status struct {
	Configured     bool      `json:"configured"`
	TrackerReady   bool      `json:"tracker_ready"`
	LastUses       uint64    `json:"last_uses"`
	Joins          int64     `json:"joins"`
	Attributed     int64     `json:"attributed"`
	JoinGrants     int64     `json:"join_grants"`
	CommandGrants  int64     `json:"command_grants"`
	WrongPasswords int64     `json:"wrong_passwords"`
	Cancelled      int64     `json:"cancelled"`
	Failures       int64     `json:"failures"`
	StartedAt      time.Time `json:"started_at"`
}

package ophase

import (
	"context"
	"errors"
)

// Decision is the verdict on whether a join came through the tracked invite.
type Decision int

const (
	// DecisionNotApplicable means the tracked invite is not in the guild (deleted or never there).
	DecisionNotApplicable Decision = iota
	DecisionNotCaused
	DecisionCaused
)

func (d Decision) String() string {
	switch d {
	case DecisionNotApplicable:
		return "not_applicable"
	case DecisionNotCaused:
		return "not_caused"
	case DecisionCaused:
		return "caused"
	default:
		return "unknown"
	}
}

// Attribution is the outcome of one lookup together with the counts it compared.
type Attribution struct {
	Decision Decision
	Previous uint64
	Current  uint64
}

// Delta is the number of uses observed since the previous lookup.
func (a Attribution) Delta() uint64 {
	if a.Current > a.Previous {
		return a.Current - a.Previous
	}
	return 0
}

// Engine decides whether a join was caused by the tracked invite.
//
// Any positive delta is attributed to the join being handled. When several
// members join between two lookups, the first lookup consumes the whole delta
// and the others see none; there is no per-member disambiguation.
type Engine struct {
	invites InviteLister
	tracker *Tracker
	code    string
}

func NewEngine(invites InviteLister, tracker *Tracker, code string) *Engine {
	return &Engine{
		invites: invites,
		tracker: tracker,
		code:    code,
	}
}

// Attribute fetches the guild invites and reconciles the tracked invite count.
// The fetch happens before the tracker lock is taken.
func (e *Engine) Attribute(ctx context.Context, guildID string) (Attribution, error) {
	invites, err := e.invites.GuildInvites(ctx, guildID)
	if err != nil {
		return Attribution{}, platformError("fetching invites", err)
	}
	invite, ok := findInvite(invites, e.code)
	if !ok {
		return Attribution{Decision: DecisionNotApplicable}, nil
	}

	previous, err := e.tracker.ReadAndUpdate(invite.Uses)
	if err != nil {
		return Attribution{Current: invite.Uses}, err
	}

	result := Attribution{
		Decision: DecisionNotCaused,
		Previous: previous,
		Current:  invite.Uses,
	}
	if invite.Uses > previous {
		result.Decision = DecisionCaused
	}
	return result, nil
}

// Snapshot scans the guilds in order and initializes the tracker from the first
// one carrying the tracked invite. Guilds whose invites cannot be fetched are
// skipped; their errors are returned only if the invite is not found anywhere.
func (e *Engine) Snapshot(ctx context.Context, guildIDs []string) (uint64, error) {
	var errs []error
	for _, guildID := range guildIDs {
		invites, err := e.invites.GuildInvites(ctx, guildID)
		if err != nil {
			errs = append(errs, platformError("fetching invites of guild "+guildID, err))
			continue
		}
		if invite, ok := findInvite(invites, e.code); ok {
			e.tracker.Initialize(invite.Uses)
			return invite.Uses, nil
		}
	}
	return 0, errors.Join(append([]error{ErrInviteNotFound}, errs...)...)
}

package ophase

import (
	"context"
	"fmt"
	"log/slog"

	"ophasebot/entity"
	"ophasebot/lib/sl"
)

var (
	colorWrongPassword = entity.RGB(255, 99, 71)
	colorWelcome       = entity.RGB(25, 177, 241)
)

// Invocation is one run of the o-phase command.
type Invocation struct {
	GuildID     string // empty when invoked from a private message
	UserID      string
	Username    string
	Interaction Interaction
}

// Workflow is the command path: password prompt, then role grant.
type Workflow struct {
	conf     *Config
	platform Platform
	gate     PasswordGate
	audit    *audit
	stats    *stats
	log      *slog.Logger
}

// Run checks its preconditions in order and fails fast on the first one missing.
// A dismissed form ends the run silently. A wrong password is answered with a
// notice and is not an error; the member may simply run the command again.
func (w *Workflow) Run(ctx context.Context, inv Invocation) error {
	log := w.log.With(sl.Member(inv.Username, inv.UserID))
	log.Debug("executing command")

	if inv.GuildID == "" {
		return ErrNotInGuild
	}
	if w.conf == nil {
		return ErrNotConfigured
	}
	log = log.With(sl.Guild(inv.GuildID))

	rec := &entity.GrantRecord{
		Source:   entity.SourceCommand,
		GuildID:  inv.GuildID,
		UserID:   inv.UserID,
		Username: inv.Username,
	}

	err := w.run(ctx, inv, rec, log)
	if err != nil {
		w.stats.update(func(st *entity.Status) { st.Failures++ })
	}
	// a failed reply after a recorded outcome is not recorded twice
	if err != nil && rec.Outcome == "" {
		rec.Outcome = outcomeOf(err)
		rec.Error = errorText(err)
		w.audit.record(rec)
	}
	return err
}

func (w *Workflow) run(ctx context.Context, inv Invocation, rec *entity.GrantRecord, log *slog.Logger) error {
	role, err := findRole(ctx, w.platform, inv.GuildID, w.conf.RoleName)
	if err != nil {
		return err
	}
	rec.RoleID = role.ID

	channel, err := findChannel(ctx, w.platform, inv.GuildID, w.conf.ChannelName)
	if err != nil {
		return err
	}

	sub, err := w.gate.PromptAndCollect(ctx, inv.Interaction)
	if err != nil {
		return err
	}
	if sub == nil {
		log.Debug("cancelled")
		w.stats.update(func(st *entity.Status) { st.Cancelled++ })
		rec.Outcome = entity.OutcomeCancelled
		w.audit.record(rec)
		return nil
	}

	if err = w.gate.Check(*sub, w.conf.Password); err != nil {
		log.Info("wrong password", sl.Secret("password", sub.Password))
		w.stats.update(func(st *entity.Status) { st.WrongPasswords++ })
		rec.Outcome = entity.OutcomeWrongPassword
		w.audit.record(rec)
		return reply(ctx, inv.Interaction, entity.Notice{
			Title:       "Falsches Gruppen-Passwort",
			Description: "Sorry, das ist nicht das korrekte Gruppen-Passwort. Frage bitte noch einmal nach :)",
			Color:       colorWrongPassword,
		})
	}
	log.Debug("correct password")

	if err = w.platform.AddMemberRole(ctx, inv.GuildID, inv.UserID, role.ID); err != nil {
		return platformError("granting role", err)
	}
	log.Info("member added", slog.String("role", role.Name))
	w.stats.update(func(st *entity.Status) { st.CommandGrants++ })
	rec.Outcome = entity.OutcomeGranted
	w.audit.record(rec)

	return reply(ctx, inv.Interaction, entity.Notice{
		Title:       "Willkommen in der kitmatheinfo.de O-Phase!",
		Description: fmt.Sprintf("Wir sehen uns in %s :)", channel.Mention()),
		Color:       colorWelcome,
	})
}

func reply(ctx context.Context, ic Interaction, notice entity.Notice) error {
	if err := ic.Reply(ctx, notice); err != nil {
		return platformError("sending reply", err)
	}
	return nil
}

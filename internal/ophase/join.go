package ophase

import (
	"context"
	"log/slog"

	"ophasebot/entity"
	"ophasebot/lib/sl"
)

// JoinHandler is the passive path: a member who joined through the tracked
// invite gets the role without a password and without any notice.
type JoinHandler struct {
	conf     *Config
	engine   *Engine
	platform Platform
	audit    *audit
	stats    *stats
	log      *slog.Logger
}

// HandleJoin decides once, synchronously, whether ev came through the tracked
// invite. Role lookup and grant failures are returned to the caller.
func (h *JoinHandler) HandleJoin(ctx context.Context, ev entity.JoinEvent) error {
	if h.conf == nil {
		return ErrNotConfigured
	}
	log := h.log.With(sl.Member(ev.Username, ev.UserID), sl.Guild(ev.GuildID))
	log.Debug("checking invite for new member")
	h.stats.update(func(st *entity.Status) { st.Joins++ })

	rec := &entity.GrantRecord{
		Source:   entity.SourceJoin,
		GuildID:  ev.GuildID,
		UserID:   ev.UserID,
		Username: ev.Username,
	}

	att, err := h.engine.Attribute(ctx, ev.GuildID)
	if err != nil {
		return h.fail(rec, err)
	}
	if att.Decision == DecisionNotApplicable {
		log.Debug("tracked invite not in guild")
		return nil
	}
	h.stats.update(func(st *entity.Status) { st.LastUses = att.Current })
	log.With(
		slog.Uint64("new", att.Current),
		slog.Uint64("old", att.Previous),
	).Debug("invite uses")

	if att.Decision != DecisionCaused {
		return nil
	}
	rec.Previous = att.Previous
	rec.Current = att.Current
	log.Info("new member through invite", slog.Uint64("delta", att.Delta()))
	h.stats.update(func(st *entity.Status) { st.Attributed++ })

	role, err := findRole(ctx, h.platform, ev.GuildID, h.conf.RoleName)
	if err != nil {
		return h.fail(rec, err)
	}
	rec.RoleID = role.ID

	if err = h.platform.AddMemberRole(ctx, ev.GuildID, ev.UserID, role.ID); err != nil {
		return h.fail(rec, platformError("granting role", err))
	}
	h.stats.update(func(st *entity.Status) { st.JoinGrants++ })
	rec.Outcome = entity.OutcomeGranted
	h.audit.record(rec)
	return nil
}

func (h *JoinHandler) fail(rec *entity.GrantRecord, err error) error {
	h.stats.update(func(st *entity.Status) { st.Failures++ })
	rec.Outcome = outcomeOf(err)
	rec.Error = errorText(err)
	h.audit.record(rec)
	return err
}

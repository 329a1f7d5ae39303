package ophase

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ophasebot/entity"
	"ophasebot/lib/sl"
)

type audit struct {
	recorder Recorder
	log      *slog.Logger
}

// record stores a grant attempt; storage failures are logged and otherwise ignored
func (a *audit) record(rec *entity.GrantRecord) {
	if a.recorder == nil {
		return
	}
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now().UTC()
	if err := a.recorder.SaveGrant(rec); err != nil {
		a.log.With(
			slog.String("record", rec.ID),
			slog.String("outcome", string(rec.Outcome)),
		).Warn("saving grant record", sl.Err(err))
	}
}

func outcomeOf(err error) entity.GrantOutcome {
	switch {
	case err == nil:
		return entity.OutcomeGranted
	case errors.Is(err, ErrNotInGuild):
		return entity.OutcomeNotInGuild
	case errors.Is(err, ErrNotConfigured):
		return entity.OutcomeNotConfigured
	case errors.Is(err, ErrRoleNotFound), errors.Is(err, ErrChannelNotFound):
		return entity.OutcomeNotFound
	case errors.Is(err, ErrWrongPassword):
		return entity.OutcomeWrongPassword
	case errors.Is(err, ErrNotInitialized):
		return entity.OutcomeNotInitialized
	default:
		return entity.OutcomePlatformFailure
	}
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

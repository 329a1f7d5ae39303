// Package ophase grants the o-phase role to new members who either joined
// through the tracked invite link or know the shared group password.
//
// Two independent paths share one piece of state, the Tracker:
//   - join.go     - JoinHandler, passive path on every member join
//   - workflow.go - Workflow, the slash command with a password form
//
// The Tracker is the only mutable shared value; platform calls are never made
// while it is locked.
package ophase

import (
	"context"
	"log/slog"

	"ophasebot/entity"
	"ophasebot/lib/sl"
)

// Config is the tracked invite configuration, loaded once at startup.
type Config struct {
	InviteCode  string
	RoleName    string
	ChannelName string
	Password    string
}

type Feature struct {
	conf     *Config
	tracker  *Tracker
	engine   *Engine
	workflow *Workflow
	joins    *JoinHandler
	audit    *audit
	stats    *stats
	log      *slog.Logger
}

// New builds the feature. A nil conf disables it: every operation then
// reports ErrNotConfigured.
func New(conf *Config, platform Platform, log *slog.Logger) *Feature {
	log = log.With(sl.Module("ophase"))
	f := &Feature{
		conf:    conf,
		tracker: NewTracker(),
		audit:   &audit{log: log},
		stats:   newStats(conf != nil),
		log:     log,
	}
	code := ""
	if conf != nil {
		code = conf.InviteCode
	}
	f.engine = NewEngine(platform, f.tracker, code)
	f.workflow = &Workflow{
		conf:     conf,
		platform: platform,
		gate:     NewPasswordGate(DefaultPasswordForm),
		audit:    f.audit,
		stats:    f.stats,
		log:      log.With(slog.String("path", "command")),
	}
	f.joins = &JoinHandler{
		conf:     conf,
		engine:   f.engine,
		platform: platform,
		audit:    f.audit,
		stats:    f.stats,
		log:      log.With(slog.String("path", "join")),
	}
	return f
}

// SetRecorder enables the grant audit log. Call before the platform starts delivering events.
func (f *Feature) SetRecorder(r Recorder) {
	f.audit.recorder = r
}

func (f *Feature) Configured() bool {
	return f.conf != nil
}

// Snapshot initializes the invite use counter from the guilds of a ready notification.
func (f *Feature) Snapshot(ctx context.Context, guildIDs []string) error {
	if f.conf == nil {
		return ErrNotConfigured
	}
	uses, err := f.engine.Snapshot(ctx, guildIDs)
	if err != nil {
		return err
	}
	f.stats.update(func(st *entity.Status) {
		st.TrackerReady = true
		st.LastUses = uses
	})
	f.log.Info("o-phase invite snapshot", slog.Uint64("uses", uses))
	return nil
}

func (f *Feature) HandleJoin(ctx context.Context, ev entity.JoinEvent) error {
	return f.joins.HandleJoin(ctx, ev)
}

func (f *Feature) RunCommand(ctx context.Context, inv Invocation) error {
	return f.workflow.Run(ctx, inv)
}

func (f *Feature) Status() entity.Status {
	st := f.stats.snapshot()
	st.TrackerReady = f.tracker.Initialized()
	return st
}

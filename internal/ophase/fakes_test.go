package ophase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"ophasebot/entity"
)

const (
	testGuild = "g1"
	testCode  = "quackq"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *Config {
	return &Config{
		InviteCode:  testCode,
		RoleName:    "Ersti",
		ChannelName: "o-phase",
		Password:    "quack123",
	}
}

type grant struct {
	guildID, userID, roleID string
}

// fakePlatform serves invite counts from a queue, one per GuildInvites call.
// An empty queue keeps returning the last count.
type fakePlatform struct {
	mu          sync.Mutex
	uses        []uint64
	last        uint64
	noInvite    bool
	invitesErr  map[string]error
	roles       []entity.Role
	channels    []entity.Channel
	rolesErr    error
	channelsErr error
	grantErr    error
	calls       int
	grants      []grant
}

func newFakePlatform(uses ...uint64) *fakePlatform {
	return &fakePlatform{
		uses:     uses,
		roles:    []entity.Role{{ID: "r0", Name: "@everyone"}, {ID: "r1", Name: "Ersti"}},
		channels: []entity.Channel{{ID: "c0", Name: "general"}, {ID: "c1", Name: "o-phase"}},
	}
}

func (p *fakePlatform) GuildInvites(_ context.Context, guildID string) ([]entity.Invite, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if err := p.invitesErr[guildID]; err != nil {
		return nil, err
	}
	invites := []entity.Invite{{Code: "other", Uses: 99}}
	if p.noInvite {
		return invites, nil
	}
	if len(p.uses) > 0 {
		p.last = p.uses[0]
		p.uses = p.uses[1:]
	}
	return append(invites, entity.Invite{Code: testCode, Uses: p.last}), nil
}

func (p *fakePlatform) GuildRoles(_ context.Context, _ string) ([]entity.Role, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.roles, p.rolesErr
}

func (p *fakePlatform) GuildChannels(_ context.Context, _ string) ([]entity.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.channels, p.channelsErr
}

func (p *fakePlatform) AddMemberRole(_ context.Context, guildID, userID, roleID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.grantErr != nil {
		return p.grantErr
	}
	p.grants = append(p.grants, grant{guildID, userID, roleID})
	return nil
}

func (p *fakePlatform) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type fakeInteraction struct {
	submission *Submission
	promptErr  error
	replyErr   error
	prompted   int
	form       PasswordForm
	replies    []entity.Notice
}

func submitted(password string) *fakeInteraction {
	return &fakeInteraction{submission: &Submission{Password: password}}
}

func (f *fakeInteraction) Prompt(_ context.Context, form PasswordForm) (*Submission, error) {
	f.prompted++
	f.form = form
	return f.submission, f.promptErr
}

func (f *fakeInteraction) Reply(_ context.Context, notice entity.Notice) error {
	if f.replyErr != nil {
		return f.replyErr
	}
	f.replies = append(f.replies, notice)
	return nil
}

type fakeRecorder struct {
	mu      sync.Mutex
	records []entity.GrantRecord
	err     error
}

func (r *fakeRecorder) SaveGrant(rec *entity.GrantRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *rec)
	return r.err
}

func (r *fakeRecorder) outcomes() []entity.GrantOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.GrantOutcome
	for _, rec := range r.records {
		out = append(out, rec.Outcome)
	}
	return out
}

var errNetwork = errors.New("connection reset")

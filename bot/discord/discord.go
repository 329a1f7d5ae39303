// Package discord connects the o-phase feature to a Discord gateway session.
//
//   - discord.go     - Bot struct, lifecycle (Start/Stop), event handler registration
//   - platform.go    - ophase.Platform on top of the REST API
//   - handlers.go    - ready, member join and interaction events
//   - interaction.go - password modal and private replies for one command run
//
// discordgo runs every event handler in its own goroutine, so joins and
// command runs are handled concurrently.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"ophasebot/entity"
	"ophasebot/internal/ophase"
	"ophasebot/lib/sl"
)

type Config struct {
	Token         string
	GuildID       string
	PromptTimeout time.Duration
}

// Feature is what the bot dispatches events to. Implemented by ophase.Feature.
type Feature interface {
	Configured() bool
	Snapshot(ctx context.Context, guildIDs []string) error
	HandleJoin(ctx context.Context, ev entity.JoinEvent) error
	RunCommand(ctx context.Context, inv ophase.Invocation) error
}

type responder func(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error

type Bot struct {
	log     *slog.Logger
	session *discordgo.Session
	conf    Config
	feature Feature
	prompts *prompts
	respond responder
	ctx     context.Context
	cancel  context.CancelFunc
}

func New(conf Config, log *slog.Logger) (*Bot, error) {
	if conf.PromptTimeout == 0 {
		conf.PromptTimeout = 15 * time.Minute
	}
	session, err := discordgo.New("Bot " + conf.Token)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildInvites

	ctx, cancel := context.WithCancel(context.Background())
	return &Bot{
		log:     log.With(sl.Module("discord")),
		session: session,
		conf:    conf,
		prompts: newPrompts(),
		respond: session.InteractionRespond,
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

func (b *Bot) SetFeature(f Feature) {
	b.feature = f
}

func (b *Bot) Start() error {
	if b.feature == nil {
		return fmt.Errorf("feature not connected")
	}
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onMemberAdd)
	b.session.AddHandler(b.onInteraction)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("opening gateway: %w", err)
	}
	return nil
}

func (b *Bot) Stop() {
	b.log.Info("stopping discord bot")
	b.cancel()
	if err := b.session.Close(); err != nil {
		b.log.Warn("closing session", sl.Err(err))
	}
}

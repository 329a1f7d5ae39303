package discord

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"ophasebot/entity"
	"ophasebot/internal/ophase"
	"ophasebot/lib/sl"
)

const commandName = "ophase"

var ophaseCommand = &discordgo.ApplicationCommand{
	Name:        commandName,
	Description: "Für Erstis der kitmatheinfo.de O-Phasengruppe",
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.With(
		slog.String("user", r.User.Username),
		slog.Int("guilds", len(r.Guilds)),
	).Info("connected to gateway")

	if _, err := s.ApplicationCommandCreate(r.User.ID, b.conf.GuildID, ophaseCommand); err != nil {
		b.log.Error("registering command", slog.String("command", commandName), sl.Err(err))
	}

	if !b.feature.Configured() {
		b.log.Info("o-phase feature not configured")
		return
	}
	guildIDs := make([]string, 0, len(r.Guilds))
	for _, guild := range r.Guilds {
		guildIDs = append(guildIDs, guild.ID)
	}
	if err := b.feature.Snapshot(b.ctx, guildIDs); err != nil {
		b.log.Error("o-phase invite snapshot", sl.Err(err))
	}
}

func (b *Bot) onMemberAdd(_ *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if m.Member == nil || m.User == nil {
		return
	}
	ev := entity.JoinEvent{
		GuildID:  m.GuildID,
		UserID:   m.User.ID,
		Username: m.User.Username,
		JoinedAt: m.JoinedAt,
	}
	err := b.feature.HandleJoin(b.ctx, ev)
	switch {
	case err == nil:
	case errors.Is(err, ophase.ErrNotConfigured):
		b.log.Debug("member joined, feature not configured", sl.Guild(ev.GuildID))
	default:
		b.log.With(
			sl.Member(ev.Username, ev.UserID),
			sl.Guild(ev.GuildID),
		).Error("handling new member", sl.Err(err))
	}
}

func (b *Bot) onInteraction(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if i.ApplicationCommandData().Name == commandName {
			b.runCommand(i.Interaction)
		}
	case discordgo.InteractionModalSubmit:
		b.onModalSubmit(i.Interaction)
	}
}

func (b *Bot) runCommand(i *discordgo.Interaction) {
	user := interactionUser(i)
	if user == nil {
		return
	}
	ic := &interaction{bot: b, current: i}
	inv := ophase.Invocation{
		UserID:      user.ID,
		Username:    user.Username,
		Interaction: ic,
	}
	// no member means a private message
	if i.Member != nil {
		inv.GuildID = i.GuildID
	}

	err := b.feature.RunCommand(b.ctx, inv)
	if err == nil {
		return
	}
	log := b.log.With(sl.Member(inv.Username, inv.UserID), sl.Guild(inv.GuildID))
	if errors.Is(err, ophase.ErrPlatform) {
		log.Error("command failed", slog.String("command", commandName), sl.Err(err))
	} else {
		log.Warn("command rejected", slog.String("command", commandName), sl.Err(err))
	}
	if rErr := ic.Reply(b.ctx, errorNotice(err)); rErr != nil {
		log.Warn("sending error reply", sl.Err(rErr))
	}
}

func (b *Bot) onModalSubmit(i *discordgo.Interaction) {
	id := i.ModalSubmitData().CustomID
	if !strings.HasPrefix(id, modalPrefix) {
		return
	}
	if b.prompts.deliver(id, i) {
		return
	}
	b.log.Debug("submission for expired form", slog.String("custom_id", id))
	err := b.respond(i, noticeResponse(entity.Notice{
		Title:       "Formular abgelaufen",
		Description: "Bitte führe /" + commandName + " noch einmal aus.",
		Color:       colorError,
	}), discordgo.WithContext(b.ctx))
	if err != nil {
		b.log.Warn("answering expired form", sl.Err(err))
	}
}

func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// errorNotice turns a command error into the text shown to the member.
// Platform failures are not spelled out.
func errorNotice(err error) entity.Notice {
	text := "Etwas ist schiefgelaufen. Bitte versuche es später noch einmal."
	switch {
	case errors.Is(err, ophase.ErrNotInGuild):
		text = "Dieser Befehl kann nicht in DMs ausgeführt werden"
	case errors.Is(err, ophase.ErrNotConfigured):
		text = "O-Phase Funktionalität ist nicht konfiguriert"
	case errors.Is(err, ophase.ErrRoleNotFound):
		text = "Keine Rolle mit dem Namen der O-Phasen-Rolle gefunden"
	case errors.Is(err, ophase.ErrChannelNotFound):
		text = "Kanal für die O-Phase nicht gefunden"
	}
	return entity.Notice{
		Title:       "Fehler",
		Description: text,
		Color:       colorError,
	}
}

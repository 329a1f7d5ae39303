package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"ophasebot/entity"
)

func (b *Bot) GuildInvites(ctx context.Context, guildID string) ([]entity.Invite, error) {
	invites, err := b.session.GuildInvites(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	result := make([]entity.Invite, 0, len(invites))
	for _, invite := range invites {
		result = append(result, entity.Invite{
			Code: invite.Code,
			Uses: inviteUses(invite.Uses),
		})
	}
	return result, nil
}

func (b *Bot) GuildRoles(ctx context.Context, guildID string) ([]entity.Role, error) {
	roles, err := b.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	result := make([]entity.Role, 0, len(roles))
	for _, role := range roles {
		result = append(result, entity.Role{ID: role.ID, Name: role.Name})
	}
	return result, nil
}

func (b *Bot) GuildChannels(ctx context.Context, guildID string) ([]entity.Channel, error) {
	channels, err := b.session.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	result := make([]entity.Channel, 0, len(channels))
	for _, channel := range channels {
		result = append(result, entity.Channel{ID: channel.ID, Name: channel.Name})
	}
	return result, nil
}

func (b *Bot) AddMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	return b.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx))
}

func inviteUses(n int) uint64 {
	if n < 0 {
		return 0
	}
	return uint64(n)
}

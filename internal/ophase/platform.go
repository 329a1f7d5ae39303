package ophase

import (
	"context"

	"ophasebot/entity"
)

// InviteLister fetches the active invites of a guild.
type InviteLister interface {
	GuildInvites(ctx context.Context, guildID string) ([]entity.Invite, error)
}

// Platform is the part of the chat platform client the feature depends on.
// Implemented by bot/discord.
type Platform interface {
	InviteLister
	GuildRoles(ctx context.Context, guildID string) ([]entity.Role, error)
	GuildChannels(ctx context.Context, guildID string) ([]entity.Channel, error)
	AddMemberRole(ctx context.Context, guildID, userID, roleID string) error
}

// Recorder stores grant attempts for later inspection.
// Implemented by internal/database/mongo.go.
type Recorder interface {
	SaveGrant(record *entity.GrantRecord) error
}

func findInvite(invites []entity.Invite, code string) (entity.Invite, bool) {
	for _, invite := range invites {
		if invite.Code == code {
			return invite, true
		}
	}
	return entity.Invite{}, false
}

func findRole(ctx context.Context, p Platform, guildID, name string) (entity.Role, error) {
	roles, err := p.GuildRoles(ctx, guildID)
	if err != nil {
		return entity.Role{}, platformError("fetching roles", err)
	}
	for _, role := range roles {
		if role.Name == name {
			return role, nil
		}
	}
	return entity.Role{}, roleNotFoundError(name)
}

func findChannel(ctx context.Context, p Platform, guildID, name string) (entity.Channel, error) {
	channels, err := p.GuildChannels(ctx, guildID)
	if err != nil {
		return entity.Channel{}, platformError("fetching channels", err)
	}
	for _, channel := range channels {
		if channel.Name == name {
			return channel, nil
		}
	}
	return entity.Channel{}, channelNotFoundError(name)
}

package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"

	"ophasebot/entity"
	"ophasebot/internal/ophase"
)

const (
	modalPrefix   = "ophase:"
	passwordField = "password"
)

var colorError = entity.RGB(237, 66, 69)

// interaction is one command run. Replies answer the latest interaction:
// the command itself until a form was submitted, then the submission.
type interaction struct {
	bot     *Bot
	current *discordgo.Interaction
}

func (x *interaction) Prompt(ctx context.Context, form ophase.PasswordForm) (*ophase.Submission, error) {
	id := modalPrefix + uuid.NewString()
	wait := x.bot.prompts.add(id)
	defer x.bot.prompts.remove(id)

	if err := x.bot.respond(x.current, passwordModal(id, form), discordgo.WithContext(ctx)); err != nil {
		return nil, err
	}

	timer := time.NewTimer(x.bot.conf.PromptTimeout)
	defer timer.Stop()

	select {
	case submitted := <-wait:
		x.current = submitted
		return &ophase.Submission{
			Password: modalValue(submitted.ModalSubmitData(), passwordField),
		}, nil
	case <-timer.C:
		// Discord does not report a dismissed form; a form left open counts as dismissed
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (x *interaction) Reply(ctx context.Context, notice entity.Notice) error {
	return x.bot.respond(x.current, noticeResponse(notice), discordgo.WithContext(ctx))
}

func passwordModal(id string, form ophase.PasswordForm) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: id,
			Title:    form.Title,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    passwordField,
							Label:       form.Label,
							Style:       discordgo.TextInputShort,
							Placeholder: form.Placeholder,
							Required:    true,
							MinLength:   form.MinLength,
							MaxLength:   form.MaxLength,
						},
					},
				},
			},
		},
	}
}

func noticeResponse(notice entity.Notice) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       notice.Title,
					Description: notice.Description,
					Color:       notice.Color,
				},
			},
		},
	}
}

func modalValue(data discordgo.ModalSubmitInteractionData, field string) string {
	for _, component := range data.Components {
		row, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, c := range row.Components {
			if input, ok := c.(*discordgo.TextInput); ok && input.CustomID == field {
				return input.Value
			}
		}
	}
	return ""
}

// prompts routes form submissions to the command run waiting for them.
type prompts struct {
	mu      deadlock.Mutex
	waiting map[string]chan *discordgo.Interaction
}

func newPrompts() *prompts {
	return &prompts{waiting: make(map[string]chan *discordgo.Interaction)}
}

func (p *prompts) add(id string) <-chan *discordgo.Interaction {
	ch := make(chan *discordgo.Interaction, 1)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.waiting[id] = ch
	return ch
}

func (p *prompts) remove(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.waiting, id)
}

// deliver hands a submission to its waiter; each form is accepted once.
func (p *prompts) deliver(id string, i *discordgo.Interaction) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	ch, ok := p.waiting[id]
	if !ok {
		return false
	}
	delete(p.waiting, id)
	ch <- i
	return true
}

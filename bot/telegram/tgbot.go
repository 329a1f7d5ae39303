// Package telegram implements the operator side channel: error-level log
// records are forwarded to admin chats, and admins can ask for the feature
// status with /status.
//
//   - tgbot.go    - TgBot struct, lifecycle (Start/Stop), admin commands
//   - helpers.go  - Sanitize, splitMessage, plainResponse, formatStatus
//
// The admin list comes from the config file and never changes at runtime.
package telegram

import (
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"

	"ophasebot/entity"
	"ophasebot/lib/sl"
)

const maxTelegramMessageLen = 4096

type Config struct {
	ApiKey   string
	AdminIds []int64
}

// StatusProvider reports the feature counters. Implemented by ophase.Feature.
type StatusProvider interface {
	Status() entity.Status
}

type TgBot struct {
	log      *slog.Logger
	api      *tgbotapi.Bot
	adminIds []int64
	status   StatusProvider
	updater  *ext.Updater
}

func NewTgBot(conf Config, log *slog.Logger) (*TgBot, error) {
	tgBot := &TgBot{
		log:      log.With(sl.Module("tgbot")),
		adminIds: conf.AdminIds,
	}

	api, err := tgbotapi.NewBot(conf.ApiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	tgBot.api = api

	return tgBot, nil
}

func (t *TgBot) SetStatusProvider(status StatusProvider) {
	t.status = status
}

func (t *TgBot) Start() error {
	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(b *tgbotapi.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			t.log.Warn("handling update:", sl.Err(err))
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	t.updater = ext.NewUpdater(dispatcher, nil)

	dispatcher.AddHandler(handlers.NewCommand("status", t.statusCmd))
	dispatcher.AddHandler(handlers.NewCommand("help", t.help))

	err := t.updater.StartPolling(t.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start polling: %w", err)
	}
	t.log.With(slog.Int("admins", len(t.adminIds))).Info("telegram bot started")
	return nil
}

func (t *TgBot) Stop() {
	if t.updater != nil {
		t.log.Info("stopping telegram bot")
		t.updater.Stop()
	}
}

// SendMessageWithLevel sends a log message to every admin chat.
// The level is already filtered by the log handler.
func (t *TgBot) SendMessageWithLevel(msg string, _ slog.Level) {
	for _, id := range t.adminIds {
		for _, part := range splitMessage(msg, maxTelegramMessageLen) {
			t.plainResponse(id, part)
		}
	}
}

func (t *TgBot) statusCmd(_ *tgbotapi.Bot, ctx *ext.Context) error {
	chatId := ctx.EffectiveUser.Id
	if !t.requireAdmin(chatId) {
		t.plainResponse(chatId, "Admin access required\\.")
		return nil
	}
	if t.status == nil {
		t.plainResponse(chatId, "Status not available\\.")
		return nil
	}
	t.plainResponse(chatId, formatStatus(t.status.Status()))
	return nil
}

func (t *TgBot) help(_ *tgbotapi.Bot, ctx *ext.Context) error {
	chatId := ctx.EffectiveUser.Id
	if !t.requireAdmin(chatId) {
		t.plainResponse(chatId, "Admin access required\\.")
		return nil
	}
	t.plainResponse(chatId, "*Available Commands*\n\n"+
		"`/status` \\- Show o\\-phase counters\n"+
		"`/help` \\- Show this help\n")
	return nil
}

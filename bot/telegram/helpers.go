package telegram

import (
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"

	"ophasebot/entity"
	"ophasebot/lib/sl"
)

func (t *TgBot) plainResponse(chatId int64, text string) {
	if text == "" {
		t.log.With("id", chatId).Debug("empty message")
		return
	}

	_, err := t.api.SendMessage(chatId, text, &tgbotapi.SendMessageOpts{
		ParseMode: "MarkdownV2",
	})
	if err != nil {
		// logged below warn level: a warn record here would be forwarded back to Telegram
		t.log.With(slog.Int64("id", chatId)).Info("sending message", sl.Err(err))
		_, err = t.api.SendMessage(chatId, text, &tgbotapi.SendMessageOpts{})
		if err != nil {
			t.log.With(slog.Int64("id", chatId)).Info("sending safe message", sl.Err(err))
		}
	}
}

func Sanitize(input string) string {
	reservedChars := "\\_{}#+-.!|()[]=*~>`"
	var sb strings.Builder
	for _, char := range input {
		if strings.ContainsRune(reservedChars, char) {
			sb.WriteRune('\\')
		}
		sb.WriteRune(char)
	}
	return sb.String()
}

func (t *TgBot) requireAdmin(chatId int64) bool {
	for _, id := range t.adminIds {
		if id == chatId {
			return true
		}
	}
	return false
}

func splitMessage(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}
	var parts []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			parts = append(parts, text)
			break
		}
		// Try to split at newline
		cutAt := maxLen
		nlIdx := strings.LastIndex(text[:maxLen], "\n")
		if nlIdx > 0 {
			cutAt = nlIdx + 1
		}
		parts = append(parts, text[:cutAt])
		text = text[cutAt:]
	}
	return parts
}

func formatStatus(st entity.Status) string {
	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}
	return fmt.Sprintf(
		"*O\\-Phase Status*\n"+
			"Configured: `%s`\n"+
			"Counter ready: `%s`\n"+
			"Last invite uses: `%d`\n"+
			"Joins: `%d`\n"+
			"Attributed: `%d`\n"+
			"Join grants: `%d`\n"+
			"Command grants: `%d`\n"+
			"Wrong passwords: `%d`\n"+
			"Cancelled: `%d`\n"+
			"Failures: `%d`\n"+
			"Since: `%s`",
		yesNo(st.Configured),
		yesNo(st.TrackerReady),
		st.LastUses,
		st.Joins,
		st.Attributed,
		st.JoinGrants,
		st.CommandGrants,
		st.WrongPasswords,
		st.Cancelled,
		st.Failures,
		Sanitize(st.StartedAt.Format("2006-01-02 15:04:05")),
	)
}

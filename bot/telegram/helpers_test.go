package telegram

import (
	"strings"
	"testing"
	"time"

	"ophasebot/entity"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"o-phase.", "o\\-phase\\."},
		{"a_b*c", "a\\_b\\*c"},
		{"(x)!", "\\(x\\)\\!"},
		{"ümlaut", "ümlaut"},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitMessage(t *testing.T) {
	if parts := splitMessage("short", 10); len(parts) != 1 {
		t.Fatalf("parts = %v", parts)
	}

	text := "line one\nline two\nline three"
	parts := splitMessage(text, 12)
	if strings.Join(parts, "") != text {
		t.Fatalf("parts do not add up: %q", parts)
	}
	for _, p := range parts {
		if len(p) > 12 {
			t.Errorf("part %q longer than 12", p)
		}
	}
	if parts[0] != "line one\n" {
		t.Errorf("first part = %q, want split at newline", parts[0])
	}
}

func TestRequireAdmin(t *testing.T) {
	bot := &TgBot{adminIds: []int64{10, 20}}
	if !bot.requireAdmin(20) {
		t.Error("admin rejected")
	}
	if bot.requireAdmin(30) {
		t.Error("stranger accepted")
	}
}

func TestFormatStatus(t *testing.T) {
	msg := formatStatus(entity.Status{
		Configured:    true,
		TrackerReady:  true,
		LastUses:      42,
		JoinGrants:    3,
		CommandGrants: 4,
		StartedAt:     time.Date(2026, 10, 1, 8, 30, 0, 0, time.UTC),
	})
	for _, want := range []string{
		"Configured: `yes`",
		"Last invite uses: `42`",
		"Join grants: `3`",
		"Command grants: `4`",
		"2026\\-10\\-01 08:30:00",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("status message misses %q:\n%s", want, msg)
		}
	}
}

package ophase

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestVerifyPassword(t *testing.T) {
	if !VerifyPassword("QuAcK123", "quack123") {
		t.Error("comparison should ignore case")
	}
	if VerifyPassword("quack1234", "quack123") {
		t.Error("different passwords matched")
	}
}

func TestPasswordGateCheck(t *testing.T) {
	gate := NewPasswordGate(DefaultPasswordForm)
	tests := []struct {
		name      string
		submitted string
		expected  string
		ok        bool
	}{
		{"exact", "quack123", "quack123", true},
		{"mixed case", "QuAcK123", "quack123", true},
		{"wrong", "moo12345", "quack123", false},
		{"too short even if equal", "abcd", "abcd", false},
		{"shortest allowed", "abcde", "ABCDE", true},
		{"longest allowed", strings.Repeat("q", 40), strings.Repeat("Q", 40), true},
		{"too long even if equal", strings.Repeat("q", 41), strings.Repeat("q", 41), false},
		{"length counts characters", "äöüßé", "ÄÖÜßÉ", true},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.Check(Submission{Password: tt.submitted}, tt.expected)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrWrongPassword) {
				t.Fatalf("err = %v, want ErrWrongPassword", err)
			}
		})
	}
}

func TestPromptAndCollect(t *testing.T) {
	gate := NewPasswordGate(DefaultPasswordForm)
	ctx := context.Background()

	ic := submitted("quack123")
	sub, err := gate.PromptAndCollect(ctx, ic)
	if err != nil || sub == nil || sub.Password != "quack123" {
		t.Fatalf("got %v, %v", sub, err)
	}
	if ic.form.MinLength != 5 || ic.form.MaxLength != 40 {
		t.Errorf("form bounds = %d..%d, want 5..40", ic.form.MinLength, ic.form.MaxLength)
	}

	sub, err = gate.PromptAndCollect(ctx, &fakeInteraction{})
	if err != nil || sub != nil {
		t.Fatalf("dismissed form: got %v, %v", sub, err)
	}

	_, err = gate.PromptAndCollect(ctx, &fakeInteraction{promptErr: errNetwork})
	if !errors.Is(err, ErrPlatform) {
		t.Fatalf("err = %v, want ErrPlatform", err)
	}
}

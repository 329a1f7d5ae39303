package sl

import (
	"errors"
	"testing"
)

func TestSecret(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"", "?"},
		{"quack", "***"},
		{"quack123", "quack***"},
	}
	for _, tt := range tests {
		got := Secret("password", tt.value)
		if got.Key != "password" {
			t.Fatalf("key = %q", got.Key)
		}
		if got.Value.String() != tt.want {
			t.Errorf("Secret(%q) = %q, want %q", tt.value, got.Value.String(), tt.want)
		}
	}
}

func TestErr(t *testing.T) {
	a := Err(errors.New("boom"))
	if a.Key != "error" || a.Value.String() != "boom" {
		t.Fatalf("unexpected attr %v", a)
	}
}

func TestMember(t *testing.T) {
	a := Member("alice", "42")
	if a.Key != "member" {
		t.Fatalf("key = %q", a.Key)
	}
	attrs := a.Value.Group()
	if len(attrs) != 2 || attrs[0].Value.String() != "alice" || attrs[1].Value.String() != "42" {
		t.Fatalf("unexpected group %v", attrs)
	}
}

package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/danhigham/contestdash/internal/domain"
)

func TestAuthResult_TelegramIDFromNumber(t *testing.T) {
	var r domain.AuthResult
	if err := json.Unmarshal([]byte(`{"authorized":true,"telegram_id":123456789,"role":"admin"}`), &r); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if r.TelegramID != "123456789" {
		t.Errorf("TelegramID = %q, want %q", r.TelegramID, "123456789")
	}
	if r.Role != domain.RoleAdmin {
		t.Errorf("Role = %q, want %q", r.Role, domain.RoleAdmin)
	}
}

func TestAuthResult_TelegramIDFromString(t *testing.T) {
	var r domain.AuthResult
	if err := json.Unmarshal([]byte(`{"authorized":true,"telegram_id":"42","role":"user"}`), &r); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if r.TelegramID != "42" {
		t.Errorf("TelegramID = %q, want %q", r.TelegramID, "42")
	}
}

func TestAuthResult_TelegramIDInvalid(t *testing.T) {
	var r domain.AuthResult
	if err := json.Unmarshal([]byte(`{"authorized":true,"telegram_id":{}}`), &r); err == nil {
		t.Error("expected error for object telegram_id")
	}
}

func TestRole_Privileged(t *testing.T) {
	cases := map[domain.Role]bool{
		domain.RoleCreator: true,
		domain.RoleAdmin:   true,
		domain.RoleUser:    false,
		"moderator":        false,
	}
	for role, want := range cases {
		if got := role.Privileged(); got != want {
			t.Errorf("%q.Privileged() = %v, want %v", role, got, want)
		}
	}
	if domain.Role("moderator").Known() {
		t.Error("unexpected role reported as known")
	}
}

func TestTheme_NextCycles(t *testing.T) {
	th := domain.ThemeDefault
	for range domain.Themes {
		th = th.Next()
	}
	if th != domain.ThemeDefault {
		t.Errorf("after full cycle theme = %q, want %q", th, domain.ThemeDefault)
	}
	if got := domain.ParseTheme("bogus"); got != domain.ThemeDefault {
		t.Errorf("ParseTheme(bogus) = %q, want default", got)
	}
}

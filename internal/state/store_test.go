package state_test

import (
	"testing"
	"time"

	"github.com/danhigham/contestdash/internal/domain"
	"github.com/danhigham/contestdash/internal/state"
)

func TestStore_AddContest(t *testing.T) {
	s := state.New(nil) // nil drawFunc for testing

	c := s.AddContest(domain.Contest{Name: "Winter", Prize: "NFT", EndDate: time.Now()})
	if c.ID == "" {
		t.Error("contest ID not assigned")
	}
	if c.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	got := s.Contests()
	if len(got) != 1 {
		t.Fatalf("got %d contests, want 1", len(got))
	}
	if got[0].Name != "Winter" {
		t.Errorf("Name = %q, want %q", got[0].Name, "Winter")
	}
}

func TestStore_ContestsSortedByEndDate(t *testing.T) {
	s := state.New(nil)
	now := time.Now()

	s.AddContest(domain.Contest{Name: "later", EndDate: now.Add(48 * time.Hour)})
	s.AddContest(domain.Contest{Name: "sooner", EndDate: now.Add(time.Hour)})

	got := s.Contests()
	if got[0].Name != "sooner" {
		t.Errorf("first contest = %q, want sooner", got[0].Name)
	}
}

func TestStore_GrantAdminReplacesSameID(t *testing.T) {
	s := state.New(nil)

	s.GrantAdmin(domain.AdminGrant{TelegramID: 7, Username: "old"})
	s.GrantAdmin(domain.AdminGrant{TelegramID: 8, Username: "other"})
	s.GrantAdmin(domain.AdminGrant{TelegramID: 7, Username: "new"})

	got := s.Admins()
	if len(got) != 2 {
		t.Fatalf("got %d admins, want 2", len(got))
	}
	if got[0].Username != "new" {
		t.Errorf("Username = %q, want new", got[0].Username)
	}
}

func TestStore_DrawFuncCalled(t *testing.T) {
	draws := 0
	s := state.New(func() { draws++ })

	s.SetTheme(domain.ThemeHalloween)
	s.SetMaintenance(true)

	if draws != 2 {
		t.Errorf("draws = %d, want 2", draws)
	}
	if s.Theme() != domain.ThemeHalloween {
		t.Errorf("Theme = %q, want halloween", s.Theme())
	}
	if !s.Maintenance() {
		t.Error("Maintenance = false, want true")
	}
}

func TestStore_RecordLimit(t *testing.T) {
	s := state.New(nil)

	for i := 0; i < 250; i++ {
		s.AddContest(domain.Contest{Name: "c"})
	}

	if n := len(s.Contests()); n > 200 {
		t.Errorf("contests = %d, want <= 200", n)
	}
}

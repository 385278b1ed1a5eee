package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/danhigham/contestdash/internal/domain"
	"github.com/danhigham/contestdash/internal/state"
	"github.com/danhigham/contestdash/internal/view"
)

func keyPress(s string) tea.KeyPressMsg {
	switch s {
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func (m ModalModel) withValues(vals ...string) ModalModel {
	for i := range m.inputs {
		if i < len(vals) {
			m.inputs[i].SetValue(vals[i])
		}
	}
	return m
}

// drain runs fade commands to completion, feeding each step back into m.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = drain(t, m, c)
		}
	case fadeStepMsg:
		next, c := m.Update(msg)
		m = drain(t, next.(Model), c)
	}
	return m
}

func newTestModel(t *testing.T) (Model, *state.Store) {
	t.Helper()
	store := state.New(nil)
	auth := func(context.Context) domain.Outcome { return domain.Outcome{} }
	m := NewModel(context.Background(), store, auth, zap.NewNop())
	m.fadeEvery = time.Millisecond
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model), store
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func settled(t *testing.T, o domain.Outcome) (Model, *state.Store) {
	t.Helper()
	m, store := newTestModel(t)
	next, cmd := m.Update(AuthSettledMsg{Outcome: o})
	return drain(t, next.(Model), cmd), store
}

var creator = domain.Outcome{Kind: domain.OutcomePrivileged, TelegramID: "42", Role: domain.RoleCreator}

func TestSettleSelectsScreen(t *testing.T) {
	tests := []struct {
		name    string
		outcome domain.Outcome
		want    view.Screen
		text    string
	}{
		{"missing", domain.Outcome{Kind: domain.OutcomeMissingIdentifier, Message: "missing tg_id"}, view.ScreenUnauthorized, "missing tg_id"},
		{"rejected", domain.Outcome{Kind: domain.OutcomeRejected, Message: "user not found"}, view.ScreenUnauthorized, "user not found"},
		{"connection", domain.Outcome{Kind: domain.OutcomeConnectionError, Message: "connection error"}, view.ScreenConnectionError, "connection error"},
		{"creator", creator, view.ScreenAdmin, "Contests"},
		{"user", domain.Outcome{Kind: domain.OutcomeStandard, TelegramID: "7", Role: domain.RoleUser}, view.ScreenUser, "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := settled(t, tt.outcome)
			if got := m.machine.State().Screen; got != tt.want {
				t.Errorf("Screen = %v, want %v", got, tt.want)
			}
			if out := m.render(); !strings.Contains(out, tt.text) {
				t.Errorf("render() missing %q", tt.text)
			}
		})
	}
}

func TestSecondOutcomeIgnored(t *testing.T) {
	m, _ := settled(t, creator)
	m = send(t, m, AuthSettledMsg{Outcome: domain.Outcome{Kind: domain.OutcomeConnectionError}})
	if got := m.machine.State().Screen; got != view.ScreenAdmin {
		t.Errorf("Screen = %v, want %v", got, view.ScreenAdmin)
	}
}

func TestLoadingUntilSettled(t *testing.T) {
	m, _ := newTestModel(t)
	if got := m.machine.State().Screen; got != view.ScreenLoading {
		t.Fatalf("Screen = %v, want loading", got)
	}
	if out := m.render(); !strings.Contains(out, "Checking access") {
		t.Error("render() should show the loading screen")
	}
	m = send(t, m, keyPress("2"), keyPress("n"))
	if m.ctrl.ModalOpen() {
		t.Error("keys before settle must not open dialogs")
	}
}

func TestCreatorSwitchesTabs(t *testing.T) {
	m, _ := settled(t, creator)
	if got := m.ctrl.CurrentSection(); got != view.TabContests {
		t.Fatalf("CurrentSection = %q, want contests", got)
	}
	m = send(t, m, keyPress("3"))
	if got := m.ctrl.ActiveTab(); got != view.TabSettings {
		t.Errorf("ActiveTab = %q, want settings", got)
	}
	m = send(t, m, keyPress("right"))
	if got := m.ctrl.ActiveTab(); got != view.TabProfile {
		t.Errorf("ActiveTab = %q, want profile", got)
	}
	m = send(t, m, keyPress("right"))
	if got := m.ctrl.ActiveTab(); got != view.TabContests {
		t.Errorf("ActiveTab = %q, want contests after wrap", got)
	}
}

func TestAdminIsReadOnly(t *testing.T) {
	m, _ := settled(t, domain.Outcome{Kind: domain.OutcomePrivileged, TelegramID: "5", Role: domain.RoleAdmin})
	m = send(t, m, keyPress("2"), keyPress("n"))
	if got := m.ctrl.CurrentSection(); got != view.TabContests {
		t.Errorf("CurrentSection = %q, want contests", got)
	}
	if m.ctrl.ModalOpen() {
		t.Error("admin without creator features opened a dialog")
	}
	if m.ctrl.Interactive() {
		t.Error("Interactive() = true for a plain admin")
	}
}

func TestModalHidesNavAndRestoresSection(t *testing.T) {
	m, _ := settled(t, creator)
	m = send(t, m, keyPress("2"), keyPress("a"))
	if !m.ctrl.ModalOpen() {
		t.Fatal("add admin dialog did not open")
	}
	if m.ctrl.NavVisible() || len(m.ctrl.VisibleSections()) != 0 {
		t.Error("nav and sections must be hidden while a dialog is open")
	}
	m = send(t, m, keyPress("esc"))
	if m.ctrl.ModalOpen() {
		t.Fatal("esc did not close the dialog")
	}
	if got := m.ctrl.VisibleSections(); len(got) != 1 || got[0] != view.TabAdmins {
		t.Errorf("VisibleSections = %v, want [admins]", got)
	}
}

func TestInvalidSubmitKeepsModalOpen(t *testing.T) {
	m, store := settled(t, creator)
	m = send(t, m, keyPress("n"))
	m.modal = m.modal.withValues("Spring giveaway", "", "")
	m = send(t, m, keyPress("enter"))
	if !m.ctrl.ModalOpen() {
		t.Error("dialog closed on invalid input")
	}
	if m.status.alert == "" {
		t.Error("no alert shown for invalid input")
	}
	if n := len(store.Contests()); n != 0 {
		t.Errorf("Contests() len = %d, want 0", n)
	}
}

func TestValidSubmitRecords(t *testing.T) {
	m, store := settled(t, creator)
	m = send(t, m, keyPress("n"))
	m.modal = m.modal.withValues("Spring giveaway", "2030-04-01", "Telegram Premium")
	m = send(t, m, keyPress("enter"))
	if m.ctrl.ModalOpen() {
		t.Fatal("dialog still open after valid submit")
	}
	got := store.Contests()
	if len(got) != 1 || got[0].Name != "Spring giveaway" || got[0].CreatedBy != "42" {
		t.Errorf("Contests() = %+v", got)
	}

	m = send(t, m, keyPress("2"), keyPress("a"))
	m.modal = m.modal.withValues("1001", "@helper", "https://t.me/chan", "")
	m = send(t, m, keyPress("enter"))
	admins := store.Admins()
	if len(admins) != 1 || admins[0].TelegramID != 1001 || admins[0].Username != "helper" {
		t.Errorf("Admins() = %+v", admins)
	}
}

func TestMaintenanceToggle(t *testing.T) {
	m, store := settled(t, creator)
	m = send(t, m, keyPress("3"), keyPress("m"), keyPress("enter"))
	if !store.Maintenance() {
		t.Error("Maintenance() = false after confirm")
	}
	m = send(t, m, keyPress("m"), keyPress("enter"))
	if store.Maintenance() {
		t.Error("Maintenance() = true after second confirm")
	}
	_ = m
}

func TestThemeCycle(t *testing.T) {
	m, store := settled(t, creator)
	send(t, m, keyPress("3"), keyPress("t"))
	if got := store.Theme(); got != domain.ThemeNewYear {
		t.Errorf("Theme() = %q, want %q", got, domain.ThemeNewYear)
	}
}

func TestStaleFadeStepIgnored(t *testing.T) {
	m, _ := settled(t, creator)
	stale := m.fader.Begin(view.RegionSection, view.FadeIn)
	m = send(t, m, keyPress("2"))
	if m.fader.Live(stale) {
		t.Fatal("tab switch did not supersede the earlier fade")
	}
	_, cmd := m.Update(fadeStepMsg{token: stale, step: fadeSteps})
	if cmd != nil {
		t.Error("stale fade step scheduled more work")
	}
	if !m.fader.Running(view.RegionSection) {
		t.Error("stale fade step finished the live fade")
	}
}

func TestLoadingFadesOutBeforeReveal(t *testing.T) {
	m, _ := newTestModel(t)
	next, cmd := m.Update(AuthSettledMsg{Outcome: creator})
	m = next.(Model)

	if !m.fader.Outgoing(view.RegionLoading) {
		t.Fatal("loading screen is not fading out after settle")
	}
	if m.fader.Running(view.RegionAdminPanel) {
		t.Error("admin panel began fading in before loading finished")
	}
	if out := m.render(); !strings.Contains(out, "Checking access") {
		t.Error("render() should keep the loading screen while it fades out")
	}
	m = send(t, m, keyPress("2"))
	if m.ctrl.ActiveTab() != view.TabNone {
		t.Error("tab switched while the loading screen was still on screen")
	}

	m = drain(t, m, cmd)
	if m.fader.Outgoing(view.RegionLoading) {
		t.Error("loading still outgoing after its fade finished")
	}
	if out := m.render(); strings.Contains(out, "Checking access") {
		t.Error("render() still shows the loading screen after the hand-off")
	}
}

func TestQuitKeys(t *testing.T) {
	m, _ := settled(t, creator)
	if _, cmd := m.Update(keyPress("ctrl+c")); cmd == nil {
		t.Error("ctrl+c returned no command")
	}
	m = send(t, m, keyPress("n"), keyPress("q"))
	if !m.ctrl.ModalOpen() {
		t.Error("q closed the dialog")
	}
	if got := m.modal.Values()[0]; got != "q" {
		t.Errorf("first input = %q, want %q", got, "q")
	}
}

func TestHelpOverlay(t *testing.T) {
	m, _ := settled(t, creator)
	m = send(t, m, keyPress("?"))
	if !m.help.IsVisible() {
		t.Fatal("help not visible")
	}
	if out := m.render(); !strings.Contains(out, "Keyboard Shortcuts") {
		t.Error("render() missing help overlay")
	}
	m = send(t, m, keyPress("esc"))
	if m.help.IsVisible() {
		t.Error("esc did not close help")
	}
}

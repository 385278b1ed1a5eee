package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/danhigham/contestdash/internal/domain"
	"github.com/danhigham/contestdash/internal/forms"
	"github.com/danhigham/contestdash/internal/state"
	"github.com/danhigham/contestdash/internal/view"
)

const (
	fadeSteps    = 4
	fadeInterval = 100 * time.Millisecond
	alertTTL     = 4 * time.Second
	// statusHeight is the single status bar row at the bottom.
	statusHeight = 1
)

// AuthFunc performs the one authentication attempt.
type AuthFunc func(ctx context.Context) domain.Outcome

// Model is the root Bubble Tea model.
type Model struct {
	machine view.Machine
	ctrl    view.Controller
	fader   *view.Fader

	loading  LoadingModel
	status   statusModel
	help     HelpModel
	modal    ModalModel
	sections sectionRenderer

	store  *state.Store
	auth   AuthFunc
	ctx    context.Context
	logger *zap.Logger

	alertSeq  int
	fadeEvery time.Duration
	width     int
	height    int
}

// NewModel creates the root model in the loading state.
func NewModel(ctx context.Context, store *state.Store, auth AuthFunc, logger *zap.Logger) Model {
	st := newStatusModel()
	st.theme = store.Theme()
	return Model{
		machine: view.NewMachine(),
		ctrl:    view.NewController(false),
		fader:   view.NewFader(),
		loading: NewLoadingModel(),
		status:  st,
		help:    NewHelpModel(),
		store:   store,
		auth:    auth,
		ctx:     ctx,
		logger:  logger,

		fadeEvery: fadeInterval,
	}
}

func (m Model) Init() tea.Cmd {
	ctx, auth := m.ctx, m.auth
	return tea.Batch(
		m.loading.Init(),
		func() tea.Msg { return AuthSettledMsg{Outcome: auth(ctx)} },
		clockTick(),
	)
}

func clockTick() tea.Cmd {
	return tea.Tick(30*time.Second, func(time.Time) tea.Msg { return clockTickMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m = m.distributeSize()
		return m, nil

	case AuthSettledMsg:
		return m.settle(msg.Outcome)

	case spinner.TickMsg:
		if m.machine.Settled() {
			return m, nil
		}
		var cmd tea.Cmd
		m.loading, cmd = m.loading.Update(msg)
		return m, cmd

	case fadeStepMsg:
		if !m.fader.Live(msg.token) {
			return m, nil
		}
		if msg.step >= fadeSteps {
			m.fader.Finish(msg.token)
			if msg.token.Direction == view.FadeOut && msg.token.Region == view.RegionLoading {
				return m, m.reveal()
			}
			return m, nil
		}
		return m, m.fadeStep(msg.token, msg.step+1)

	case alertExpiredMsg:
		if msg.seq == m.alertSeq {
			m.status.alert = ""
		}
		return m, nil

	case clockTickMsg:
		return m, clockTick()

	case StoreUpdatedMsg:
		m.status.theme = m.store.Theme()
		m.status.maintenance = m.store.Maintenance()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	if m.ctrl.ModalOpen() {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}
	return m, nil
}

// settle applies the authentication outcome. A second outcome is ignored.
func (m Model) settle(o domain.Outcome) (tea.Model, tea.Cmd) {
	machine, err := m.machine.Settle(o)
	if err != nil {
		m.logger.Warn("ignoring extra authentication outcome", zap.Stringer("outcome", o.Kind))
		return m, nil
	}
	m.machine = machine
	st := machine.State()
	m.ctrl = view.NewController(st.CreatorFeatures)

	switch st.Screen {
	case view.ScreenAdmin, view.ScreenUser:
		m.status.text = string(st.Role)
		m.status.identity = fmt.Sprintf("ID: %s", st.TelegramID)
	default:
		m.status.text = "denied"
	}
	m.logger.Info("view settled",
		zap.Stringer("screen", st.Screen),
		zap.Bool("creator_features", st.CreatorFeatures),
	)

	return m, m.fadeStep(m.fader.Begin(view.RegionLoading, view.FadeOut), 1)
}

// reveal fades in the settled view once the loading screen has faded out.
func (m Model) reveal() tea.Cmd {
	st := m.machine.State()
	var cmds []tea.Cmd
	for _, r := range st.Visible() {
		cmds = append(cmds, m.beginFade(r))
	}
	if st.Screen == view.ScreenAdmin {
		cmds = append(cmds, m.beginFade(view.RegionSection))
	}
	return tea.Batch(cmds...)
}

func (m Model) beginFade(r view.Region) tea.Cmd {
	return m.fadeStep(m.fader.Begin(r, view.FadeIn), 1)
}

func (m Model) fadeStep(tok view.Token, step int) tea.Cmd {
	return tea.Tick(m.fadeEvery, func(time.Time) tea.Msg {
		return fadeStepMsg{token: tok, step: step}
	})
}

func (m Model) alert(text string) (Model, tea.Cmd) {
	m.alertSeq++
	m.status.alert = text
	seq := m.alertSeq
	return m, tea.Tick(alertTTL, func(time.Time) tea.Msg { return alertExpiredMsg{seq: seq} })
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.help.IsVisible() {
		switch key {
		case "?", "f1", "esc":
			m.help = m.help.Toggle()
		}
		return m, nil
	}

	if m.ctrl.ModalOpen() {
		switch key {
		case "esc":
			return m.closeModal()
		case "enter":
			return m.submitModal()
		}
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "?", "f1":
		m.help = m.help.Toggle()
		return m, nil
	}

	if m.fader.Outgoing(view.RegionLoading) {
		return m, nil
	}
	if m.machine.State().Screen != view.ScreenAdmin || !m.ctrl.Interactive() {
		return m, nil
	}

	switch key {
	case "1", "2", "3", "4":
		return m.activate(view.Tabs[int(key[0]-'1')])
	case "right", "l":
		return m.activate(m.neighbourTab(1))
	case "left", "h":
		return m.activate(m.neighbourTab(-1))
	}

	switch m.ctrl.CurrentSection() {
	case view.TabContests:
		if key == "n" {
			return m.openModal(view.ModalCreateContest)
		}
	case view.TabAdmins:
		if key == "a" {
			return m.openModal(view.ModalAddAdmin)
		}
	case view.TabSettings:
		switch key {
		case "t":
			theme := m.store.Theme().Next()
			m.store.SetTheme(theme)
			m.status.theme = theme
			m.logger.Info("theme changed", zap.String("theme", string(theme)))
			return m, nil
		case "m":
			return m.openModal(view.ModalMaintenance)
		}
	}
	return m, nil
}

func (m Model) neighbourTab(delta int) view.Tab {
	cur := m.ctrl.CurrentSection()
	for i, t := range view.Tabs {
		if t == cur {
			return view.Tabs[(i+delta+len(view.Tabs))%len(view.Tabs)]
		}
	}
	return view.DefaultTab
}

func (m Model) activate(tab view.Tab) (tea.Model, tea.Cmd) {
	prev := m.ctrl.CurrentSection()
	ctrl, err := m.ctrl.Activate(tab)
	if err != nil {
		m.logger.Debug("tab switch rejected", zap.String("tab", string(tab)), zap.Error(err))
		return m, nil
	}
	m.ctrl = ctrl
	if tab == prev {
		return m, nil
	}
	return m, m.beginFade(view.RegionSection)
}

func (m Model) openModal(kind view.ModalKind) (tea.Model, tea.Cmd) {
	ctrl, err := m.ctrl.OpenModal(kind)
	if err != nil {
		m.logger.Debug("modal rejected", zap.Stringer("modal", kind), zap.Error(err))
		return m, nil
	}
	m.ctrl = ctrl

	modal, focusCmd := NewModalModel(kind)
	if kind == view.ModalMaintenance {
		if m.store.Maintenance() {
			modal = modal.SetPrompt("Bring the bot back online for all users?")
		} else {
			modal = modal.SetPrompt("Switch the bot off for all users?")
		}
	}
	m.modal = modal.SetSize(m.width, m.height)
	return m, tea.Batch(focusCmd, m.beginFade(view.RegionModal))
}

func (m Model) closeModal() (tea.Model, tea.Cmd) {
	ctrl, err := m.ctrl.CloseModal()
	if err != nil {
		return m, nil
	}
	m.ctrl = ctrl
	m.modal = ModalModel{}
	return m, tea.Batch(m.beginFade(view.RegionSection), m.beginFade(view.RegionAdminNav))
}

// submitModal runs the open dialog's mock action. Invalid input keeps the
// dialog open; valid input is logged, recorded for the session, and closes it.
func (m Model) submitModal() (tea.Model, tea.Cmd) {
	by := m.machine.State().TelegramID
	vals := m.modal.Values()

	var notice string
	switch m.modal.Kind() {
	case view.ModalCreateContest:
		form := forms.ContestForm{Name: vals[0], EndDate: vals[1], Prize: vals[2]}.Trimmed()
		end, err := form.Validate()
		if err != nil {
			return m.rejectForm(err)
		}
		c := m.store.AddContest(domain.Contest{Name: form.Name, EndDate: end, Prize: form.Prize, CreatedBy: by})
		m.logger.Info("contest created",
			zap.String("id", c.ID),
			zap.String("name", c.Name),
			zap.Time("end_date", c.EndDate),
			zap.String("prize", c.Prize),
		)
		notice = fmt.Sprintf("Contest %q created", c.Name)

	case view.ModalAddAdmin:
		form := forms.AdminForm{TelegramID: vals[0], Username: vals[1], ChannelLink: vals[2], ChatLink: vals[3]}.Trimmed()
		id, err := form.Validate()
		if err != nil {
			return m.rejectForm(err)
		}
		g := m.store.GrantAdmin(domain.AdminGrant{
			TelegramID:  id,
			Username:    form.Username,
			ChannelLink: form.ChannelLink,
			ChatLink:    form.ChatLink,
			GrantedBy:   by,
		})
		m.logger.Info("admin added",
			zap.Int64("telegram_id", g.TelegramID),
			zap.String("username", g.Username),
			zap.String("channel", g.ChannelLink),
			zap.String("chat", g.ChatLink),
		)
		notice = fmt.Sprintf("Admin @%s added", g.Username)

	case view.ModalMaintenance:
		on := !m.store.Maintenance()
		m.store.SetMaintenance(on)
		m.status.maintenance = on
		m.logger.Info("maintenance toggled", zap.Bool("on", on))
		notice = "Bot is back online"
		if on {
			notice = "Bot switched to maintenance mode"
		}
	}

	next, closeCmd := m.closeModal()
	m = next.(Model)
	m, alertCmd := m.alert(notice)
	return m, tea.Batch(closeCmd, alertCmd)
}

func (m Model) rejectForm(err error) (tea.Model, tea.Cmd) {
	text := err.Error()
	var ve *forms.ValidationError
	if errors.As(err, &ve) {
		text = ve.Alert
	}
	m.modal = m.modal.SetAlert(text)
	return m.alert(text)
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the whole screen: the primary view, overlays, and status bar.
func (m Model) render() string {
	p := paletteFor(m.status.theme)
	bodyH := m.height - statusHeight
	if bodyH < 1 {
		bodyH = 1
	}

	st := m.machine.State()
	var body string
	switch {
	case st.Screen == view.ScreenLoading:
		body = m.loading.SetSize(m.width, bodyH).View(p)
	case m.fader.Outgoing(view.RegionLoading):
		body = fadeStyle(lipgloss.NewStyle(), true).Render(m.loading.SetSize(m.width, bodyH).View(p))
	case st.Screen == view.ScreenUnauthorized:
		body = errorView(p, m.width, bodyH, "🚫", st.Message, m.fader.Running(view.RegionError))
	case st.Screen == view.ScreenConnectionError:
		body = errorView(p, m.width, bodyH, "⚠", st.Message, m.fader.Running(view.RegionError))
	case st.Screen == view.ScreenUser:
		body = userView(p, st.TelegramID, m.width, bodyH, m.fader.Running(view.RegionUserPanel))
	case st.Screen == view.ScreenAdmin:
		body = m.adminView(p, st, bodyH)
	}
	body = lipgloss.NewStyle().MaxWidth(m.width).MaxHeight(bodyH).Render(body)

	var overlay string
	var x, y int
	switch {
	case m.help.IsVisible():
		overlay = m.help.View(p)
		x, y = m.help.BoxOffset(overlay)
	case m.ctrl.ModalOpen():
		overlay = m.modal.View(p, m.fader.Running(view.RegionModal))
		x, y = m.modal.BoxOffset(overlay)
	}
	if overlay != "" {
		bg := lipgloss.NewLayer(body)
		fg := lipgloss.NewLayer(overlay).X(x).Y(y).Z(1)
		body = lipgloss.NewCompositor(bg, fg).Render()
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.status.SetWidth(m.width).View())
}

func (m Model) adminView(p palette, st view.State, h int) string {
	faded := m.fader.Running(view.RegionAdminPanel)
	rows := []string{adminHeader(p, st.TelegramID, st.Role, m.width, faded)}
	if st.Shows(view.RegionAdminNav) && m.ctrl.NavVisible() {
		rows = append(rows, navView(p, m.ctrl.CurrentSection(), m.width, m.fader.Running(view.RegionAdminNav)))
	}

	data := sectionData{
		identity:    st.TelegramID,
		role:        st.Role,
		interactive: m.ctrl.Interactive(),
		contests:    m.store.Contests(),
		admins:      m.store.Admins(),
		maintenance: m.store.Maintenance(),
		theme:       m.store.Theme(),
	}
	for _, tab := range m.ctrl.VisibleSections() {
		content := m.sections.render(sectionMarkdown(tab, data))
		rows = append(rows, fadeStyle(lipgloss.NewStyle(), m.fader.Running(view.RegionSection)).Render(content))
	}

	return truncateHeight(lipgloss.JoinVertical(lipgloss.Left, rows...), h)
}

func (m Model) distributeSize() Model {
	m.loading = m.loading.SetSize(m.width, m.height-statusHeight)
	m.help = m.help.SetSize(m.width, m.height-statusHeight)
	m.modal = m.modal.SetSize(m.width, m.height-statusHeight)
	m.status = m.status.SetWidth(m.width)
	m.sections = m.sections.resize(m.width, paletteFor(m.status.theme).glamour)
	return m
}

// App wraps the Bubble Tea program for external use.
type App struct {
	program *tea.Program
}

// NewApp creates a new App ready to Run.
func NewApp(ctx context.Context, store *state.Store, auth AuthFunc, logger *zap.Logger) *App {
	model := NewModel(ctx, store, auth, logger)
	p := tea.NewProgram(model, tea.WithContext(ctx))
	return &App{program: p}
}

// Run starts the Bubble Tea event loop (blocks until quit).
func (a *App) Run() error {
	_, err := a.program.Run()
	return err
}

// Send sends a message into the Bubble Tea event loop from external goroutines.
func (a *App) Send(msg tea.Msg) {
	go a.program.Send(msg)
}

// DrawFunc returns a function suitable for state.Store that triggers a re-render.
func (a *App) DrawFunc() func() {
	return func() {
		a.Send(StoreUpdatedMsg{})
	}
}

package ui

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/danhigham/contestdash/internal/view"
)

const modalWidth = 44

type field struct {
	label       string
	placeholder string
}

var modalFields = map[view.ModalKind][]field{
	view.ModalCreateContest: {
		{"Contest name", "Enter a name..."},
		{"End date", "YYYY-MM-DD"},
		{"Prize", "Enter the prize..."},
	},
	view.ModalAddAdmin: {
		{"Telegram ID", "123456789"},
		{"Username", "@username"},
		{"Channel link", "https://t.me/channel"},
		{"Chat link (optional)", "https://t.me/chat"},
	},
	view.ModalMaintenance: nil,
}

var modalTitles = map[view.ModalKind]string{
	view.ModalCreateContest: "Create contest",
	view.ModalAddAdmin:      "Add administrator",
	view.ModalMaintenance:   "Maintenance mode",
}

// ModalModel is a dialog with a column of text inputs. It is built fresh each
// time a modal opens and dropped when it closes.
type ModalModel struct {
	kind          view.ModalKind
	inputs        []textinput.Model
	labels        []string
	focus         int
	alert         string
	prompt        string
	width, height int
}

// NewModalModel builds the dialog for kind with the first input focused.
func NewModalModel(kind view.ModalKind) (ModalModel, tea.Cmd) {
	m := ModalModel{kind: kind}
	for _, f := range modalFields[kind] {
		ti := textinput.New()
		ti.Placeholder = f.placeholder
		ti.Prompt = "> "
		ti.CharLimit = 128
		ti.SetWidth(modalWidth - 4)
		m.inputs = append(m.inputs, ti)
		m.labels = append(m.labels, f.label)
	}
	if len(m.inputs) == 0 {
		return m, nil
	}
	return m, m.inputs[0].Focus()
}

// SetPrompt sets the confirmation text shown by input-less dialogs.
func (m ModalModel) SetPrompt(s string) ModalModel {
	m.prompt = s
	return m
}

// SetAlert shows a validation message inside the dialog.
func (m ModalModel) SetAlert(s string) ModalModel {
	m.alert = s
	return m
}

func (m ModalModel) SetSize(w, h int) ModalModel {
	m.width = w
	m.height = h
	return m
}

func (m ModalModel) Kind() view.ModalKind { return m.kind }

// Values returns the current input values in field order.
func (m ModalModel) Values() []string {
	out := make([]string, len(m.inputs))
	for i, ti := range m.inputs {
		out[i] = ti.Value()
	}
	return out
}

func (m ModalModel) Update(msg tea.Msg) (ModalModel, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	if k, ok := msg.(tea.KeyPressMsg); ok {
		switch k.String() {
		case "tab", "down":
			return m.moveFocus(1)
		case "shift+tab", "up":
			return m.moveFocus(-1)
		}
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m ModalModel) moveFocus(delta int) (ModalModel, tea.Cmd) {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	return m, m.inputs[m.focus].Focus()
}

// View renders the dialog box without placement; see BoxOffset.
func (m ModalModel) View(p palette, fading bool) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(p.accent).Render(modalTitles[m.kind])
	label := lipgloss.NewStyle().Foreground(p.dim)

	rows := []string{title, ""}
	for i, ti := range m.inputs {
		rows = append(rows, label.Render(m.labels[i]), ti.View(), "")
	}
	if m.prompt != "" {
		rows = append(rows, m.prompt, "")
	}
	if m.alert != "" {
		rows = append(rows, lipgloss.NewStyle().Foreground(p.danger).Render("⚠ "+m.alert), "")
	}
	rows = append(rows, label.Render("enter confirm · esc close"))

	box := fadeStyle(boxStyle(p), fading).
		Width(modalWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return box
}

// BoxOffset returns the (x, y) needed to center box within the terminal.
func (m ModalModel) BoxOffset(box string) (int, int) {
	return centerOffset(box, m.width, m.height)
}

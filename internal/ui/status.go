package ui

import (
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/danhigham/contestdash/internal/domain"
)

type statusModel struct {
	text        string
	identity    string
	alert       string
	maintenance bool
	theme       domain.Theme
	width       int
	now         func() time.Time
}

func newStatusModel() statusModel {
	return statusModel{
		text:  "Loading",
		theme: domain.ThemeDefault,
		now:   time.Now,
	}
}

// SetWidth sets the full terminal width for the status bar.
func (m statusModel) SetWidth(w int) statusModel {
	m.width = w
	return m
}

// View renders a full-width status bar:
// [ROLE pill] [identity] [alert] ... [theme] [time pill]
func (m statusModel) View() string {
	p := paletteFor(m.theme)

	pillBg := p.accentAlt
	if m.identity != "" {
		pillBg = p.accent
	}
	pill := lipgloss.NewStyle().
		Background(pillBg).
		Foreground(p.text).
		Bold(true).
		Padding(0, 1).
		Render(strings.ToUpper(m.text))

	barText := lipgloss.NewStyle().
		Background(p.bar).
		Foreground(p.text).
		Padding(0, 1)

	left := pill + barText.Bold(true).Render(m.identity)
	if m.maintenance {
		left += lipgloss.NewStyle().Background(p.danger).Foreground(p.text).Padding(0, 1).Render("MAINTENANCE")
	}
	if m.alert != "" {
		left += barText.Italic(true).Render(m.alert)
	}

	themePill := barText.Foreground(p.dim).Render(string(m.theme))
	timePill := lipgloss.NewStyle().
		Background(p.accentAlt).
		Foreground(p.text).
		Bold(true).
		Padding(0, 1).
		Render(m.now().Format("15:04"))
	right := themePill + timePill

	// Fill gap between left and right
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	filler := lipgloss.NewStyle().
		Background(p.bar).
		Render(strings.Repeat(" ", gap))

	return lipgloss.NewStyle().
		Background(p.bar).
		MaxWidth(m.width).
		Render(left + filler + right)
}

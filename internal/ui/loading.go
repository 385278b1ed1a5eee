package ui

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

const bannerArt = `
              _           _      _           _
  ___ ___ _ _| |_ ___ ___| |_  _| |___ ___ | |_
 |  _| . | ' |  _| -_|_ -|  _|| . | .'|_ -||   |
 |___|___|_|_|_| |___|___|_|  |___|__,|___||_|_|
`

// LoadingModel is shown until the authentication call settles. It has no
// timeout: if the call never settles the spinner keeps turning.
type LoadingModel struct {
	spinner       spinner.Model
	width, height int
}

func NewLoadingModel() LoadingModel {
	return LoadingModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// Init starts the spinner.
func (l LoadingModel) Init() tea.Cmd {
	return l.spinner.Tick
}

func (l LoadingModel) Update(msg tea.Msg) (LoadingModel, tea.Cmd) {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

// SetSize updates the terminal dimensions for centering.
func (l LoadingModel) SetSize(w, h int) LoadingModel {
	l.width = w
	l.height = h
	return l
}

// View renders the banner and spinner centered in the given palette.
func (l LoadingModel) View(p palette) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(p.accent).Render(bannerArt),
		l.spinner.View()+" Checking access...",
	)
	box := boxStyle(p).Render(body)
	return lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Center, box)
}

// errorView renders a terminal failure message in place of the spinner.
func errorView(p palette, w, h int, icon, message string, faded bool) string {
	text := lipgloss.NewStyle().Foreground(p.danger).Bold(true).Render(icon + " " + message)
	box := fadeStyle(boxStyle(p), faded).Render(text)
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box)
}

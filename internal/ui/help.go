package ui

import "charm.land/lipgloss/v2"

// HelpModel renders a centered help overlay listing keyboard shortcuts.
type HelpModel struct {
	visible       bool
	width, height int
}

// NewHelpModel creates a hidden help model.
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// IsVisible reports whether the help overlay is showing.
func (h HelpModel) IsVisible() bool {
	return h.visible
}

// Toggle flips the help overlay visibility.
func (h HelpModel) Toggle() HelpModel {
	h.visible = !h.visible
	return h
}

// SetSize updates the terminal dimensions for centering.
func (h HelpModel) SetSize(w, ht int) HelpModel {
	h.width = w
	h.height = ht
	return h
}

const helpText = ` Keyboard Shortcuts

 General
   Ctrl+C        Quit
   q             Quit (outside dialogs)
   ? / F1        Toggle this help

 Admin panel (creator)
   1-4           Contests / Admins / Settings / Profile
   ← / →         Previous / next tab
   n             New contest        (Contests)
   a             Add admin          (Admins)
   t             Switch theme       (Settings)
   m             Maintenance mode   (Settings)

 Dialogs
   Tab           Next field
   Shift+Tab     Previous field
   Enter         Submit
   Esc           Close

 Press ?, F1, or Esc to close`

// View renders the help box (without full-screen placement).
// Use BoxOffset to get the X/Y for centering via the Layer API.
func (h HelpModel) View(p palette) string {
	if !h.visible || h.width == 0 || h.height == 0 {
		return ""
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 3).
		BorderForegroundBlend(p.blend...)

	return style.Render(helpText)
}

// BoxOffset returns the (x, y) needed to center box within the terminal.
func (h HelpModel) BoxOffset(box string) (int, int) {
	return centerOffset(box, h.width, h.height)
}

func centerOffset(box string, w, h int) (int, int) {
	x := (w - lipgloss.Width(box)) / 2
	y := (h - lipgloss.Height(box)) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}

package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"

	"github.com/danhigham/contestdash/internal/domain"
	"github.com/danhigham/contestdash/internal/view"
)

var tabTitles = map[view.Tab]string{
	view.TabContests: "Contests",
	view.TabAdmins:   "Admins",
	view.TabSettings: "Settings",
	view.TabProfile:  "Profile",
}

// navView renders the tab bar with the current section highlighted.
func navView(p palette, current view.Tab, width int, faded bool) string {
	active := lipgloss.NewStyle().
		Background(p.accent).
		Foreground(p.text).
		Bold(true).
		Padding(0, 2)
	idle := lipgloss.NewStyle().
		Foreground(p.dim).
		Padding(0, 2)

	var tabs []string
	for i, t := range view.Tabs {
		label := fmt.Sprintf("%d %s", i+1, tabTitles[t])
		if t == current {
			tabs = append(tabs, active.Render(label))
		} else {
			tabs = append(tabs, idle.Render(label))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	return fadeStyle(lipgloss.NewStyle().Width(width), faded).Render(bar)
}

// sectionRenderer turns section markdown into terminal output with glamour.
type sectionRenderer struct {
	renderer *glamour.TermRenderer
	style    string
	width    int
}

func (r sectionRenderer) resize(width int, style string) sectionRenderer {
	if width == r.width && style == r.style && r.renderer != nil {
		return r
	}
	wordWrap := width - 4
	if wordWrap < 20 {
		wordWrap = 20
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(wordWrap),
	)
	if err == nil {
		r.renderer = tr
		r.width = width
		r.style = style
	}
	return r
}

func (r sectionRenderer) render(md string) string {
	if r.renderer == nil {
		return md
	}
	out, err := r.renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

// sectionData is what the sections read from the session store.
type sectionData struct {
	identity    domain.TelegramID
	role        domain.Role
	interactive bool
	contests    []domain.Contest
	admins      []domain.AdminGrant
	maintenance bool
	theme       domain.Theme
}

func sectionMarkdown(tab view.Tab, d sectionData) string {
	var b strings.Builder
	switch tab {
	case view.TabContests:
		b.WriteString("## Contests\n\n")
		if len(d.contests) == 0 {
			b.WriteString("_No contests drafted in this session._\n")
		} else {
			b.WriteString("| Name | Ends | Prize |\n|---|---|---|\n")
			for _, c := range d.contests {
				fmt.Fprintf(&b, "| %s | %s | %s |\n", escapeCell(c.Name), c.EndDate.Format("2006-01-02"), escapeCell(c.Prize))
			}
		}
		if d.interactive {
			b.WriteString("\nPress `n` to create a contest.\n")
		}
	case view.TabAdmins:
		b.WriteString("## Administrators\n\n")
		if len(d.admins) == 0 {
			b.WriteString("_No administrators added in this session._\n")
		} else {
			b.WriteString("| ID | Username | Channel | Chat |\n|---|---|---|---|\n")
			for _, a := range d.admins {
				chat := a.ChatLink
				if chat == "" {
					chat = "-"
				}
				fmt.Fprintf(&b, "| %d | @%s | %s | %s |\n", a.TelegramID, escapeCell(a.Username), escapeCell(a.ChannelLink), escapeCell(chat))
			}
		}
		if d.interactive {
			b.WriteString("\nPress `a` to add an administrator.\n")
		}
	case view.TabSettings:
		state := "running"
		if d.maintenance {
			state = "maintenance"
		}
		fmt.Fprintf(&b, "## Settings\n\n- **Theme:** %s\n- **Bot:** %s\n", d.theme, state)
		if d.interactive {
			b.WriteString("\nPress `t` to switch theme, `m` to toggle maintenance mode.\n")
		}
	case view.TabProfile:
		fmt.Fprintf(&b, "## Profile\n\n- **ID:** %s\n- **Role:** %s\n", d.identity, d.role)
	}
	if !d.interactive {
		b.WriteString("\n_Read-only: only the creator can change tabs and run actions._\n")
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// adminHeader renders the identity line above the nav.
func adminHeader(p palette, id domain.TelegramID, role domain.Role, width int, faded bool) string {
	title := lipgloss.NewStyle().Foreground(p.accent).Bold(true).Render("Admin panel")
	who := lipgloss.NewStyle().Foreground(p.dim).Render(fmt.Sprintf("ID: %s · %s", id, role))
	gap := width - lipgloss.Width(title) - lipgloss.Width(who) - 2
	if gap < 1 {
		gap = 1
	}
	line := " " + title + strings.Repeat(" ", gap) + who
	return fadeStyle(lipgloss.NewStyle(), faded).Render(line)
}

// userView renders the regular user's panel.
func userView(p palette, id domain.TelegramID, w, h int, faded bool) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(p.accent).Bold(true).Render("Welcome!"),
		"",
		fmt.Sprintf("ID: %s", id),
		"",
		lipgloss.NewStyle().Foreground(p.dim).Render("Contests you join through the bot will appear here."),
	)
	box := fadeStyle(boxStyle(p), faded).Render(body)
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box)
}

package ui

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/danhigham/contestdash/internal/domain"
)

// palette is the set of colors a theme supplies.
type palette struct {
	accent    color.Color
	accentAlt color.Color
	bar       color.Color
	text      color.Color
	dim       color.Color
	danger    color.Color
	glamour   string
	// border gradient for focused boxes (wraps back to start)
	blend []color.Color
}

var palettes = map[domain.Theme]palette{
	domain.ThemeDefault: {
		accent:    lipgloss.Color("#FF5FAF"),
		accentAlt: lipgloss.Color("#6124DF"),
		bar:       lipgloss.Color("#353533"),
		text:      lipgloss.Color("#FFFFFF"),
		dim:       lipgloss.Color("240"),
		danger:    lipgloss.Color("#FF4D4D"),
		glamour:   "dark",
		blend: []color.Color{
			lipgloss.Color("#FF6B9D"), // pink
			lipgloss.Color("#9B59B6"), // purple
			lipgloss.Color("#3498DB"), // blue
			lipgloss.Color("#2ECC71"), // green
			lipgloss.Color("#FF6B9D"), // pink (wrap)
		},
	},
	domain.ThemeNewYear: {
		accent:    lipgloss.Color("#2ECC71"),
		accentAlt: lipgloss.Color("#C0392B"),
		bar:       lipgloss.Color("#1B2631"),
		text:      lipgloss.Color("#FDFEFE"),
		dim:       lipgloss.Color("245"),
		danger:    lipgloss.Color("#E74C3C"),
		glamour:   "dark",
		blend: []color.Color{
			lipgloss.Color("#2ECC71"),
			lipgloss.Color("#FDFEFE"),
			lipgloss.Color("#C0392B"),
			lipgloss.Color("#2ECC71"),
		},
	},
	domain.ThemeHalloween: {
		accent:    lipgloss.Color("#FF8C00"),
		accentAlt: lipgloss.Color("#6C3483"),
		bar:       lipgloss.Color("#17202A"),
		text:      lipgloss.Color("#F8C471"),
		dim:       lipgloss.Color("239"),
		danger:    lipgloss.Color("#CB4335"),
		glamour:   "dark",
		blend: []color.Color{
			lipgloss.Color("#FF8C00"),
			lipgloss.Color("#6C3483"),
			lipgloss.Color("#FF8C00"),
		},
	},
}

func paletteFor(t domain.Theme) palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[domain.ThemeDefault]
}

// boxStyle is a rounded box with the theme's border blend.
func boxStyle(p palette) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForegroundBlend(p.blend...).
		Padding(1, 3)
}

// fadeStyle dims content that is still fading in.
func fadeStyle(s lipgloss.Style, fading bool) lipgloss.Style {
	if fading {
		return s.Faint(true)
	}
	return s
}

// truncateHeight limits s to at most maxLines lines.
func truncateHeight(s string, maxLines int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= maxLines {
		return s
	}
	return strings.Join(lines[:maxLines], "\n")
}

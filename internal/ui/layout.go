package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Header, alert banner and command bar take one row each.
const chromeRows = 3

func (m Model) bodyHeight() int {
	return max(1, m.height-chromeRows)
}

// renderMain stacks the header, alert banner, mounted screen and command bar.
func (m Model) renderMain() string {
	body := lipgloss.NewStyle().
		Width(m.width).
		Height(m.bodyHeight()).
		MaxHeight(m.bodyHeight()).
		Render(m.screen.View(m.theme))

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderAlert(),
		body,
		m.renderCommandBar(),
	)
}

// renderHeader shows the app name, current route and API base URL.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := newBgStyle(m.theme.Surface)
	sep := bg.spaces(2)

	parts := []string{
		bg.render("booktrack", styles.Logo),
		bg.render(m.path, styles.AccentText.Bold(true)),
	}
	if m.baseURL != "" {
		parts = append(parts, bg.render("api", styles.FaintText)+bg.spaces(1)+bg.render(m.baseURL, styles.MutedText))
	}
	if m.screen.Loading() {
		parts = append(parts, bg.render("loading", styles.WarningText))
	}
	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// renderAlert shows the screen's alert while it is visible. The row is kept
// blank otherwise so the body does not jump.
func (m Model) renderAlert() string {
	alert := m.screen.Alert()
	if !alert.Visible {
		return lipgloss.NewStyle().Width(m.width).Render("")
	}
	return m.theme.Styles().AlertStyle(alert.Kind).Width(m.width).Render(alert.Message)
}

// renderCommandBar lists the keys of the mounted screen.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	bg := newBgStyle(m.theme.Surface)

	commands := m.screen.Commands()
	parts := make([]string, 0, len(commands))
	for _, c := range commands {
		parts = append(parts,
			bg.render("<"+c.key+">", styles.WarningText)+bg.spaces(1)+bg.render(c.desc, styles.MutedText))
	}
	return styles.Footer.Width(m.width).Render(strings.Join(parts, bg.spaces(2)))
}

// bgStyle renders segments on a shared background. Lipgloss resets the
// background between styled segments, leaving gaps at every space.
type bgStyle struct {
	bg lipgloss.Color
}

func newBgStyle(color string) bgStyle {
	return bgStyle{bg: lipgloss.Color(color)}
}

func (b bgStyle) render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	words := strings.Split(text, " ")
	styled := style.Background(b.bg)
	for i, w := range words {
		if w != "" {
			words[i] = styled.Render(w)
		}
	}
	return strings.Join(words, b.spaces(1))
}

func (b bgStyle) spaces(n int) string {
	return lipgloss.NewStyle().Background(b.bg).Render(strings.Repeat(" ", n))
}

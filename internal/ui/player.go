package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/marquee/internal/player"
	"github.com/desertthunder/marquee/internal/session"
)

func (m *Model) updatePlayer(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.back):
		return m.navigate(PageLanding)
	case key.Matches(msg, m.keys.quit):
		return tea.Quit
	case key.Matches(msg, m.keys.play):
		return m.showToast(session.Notice{Message: player.PlayNotice, Kind: session.NoticeInfo})
	case key.Matches(msg, m.keys.browser):
		if !m.viewing.HasBackdrop() {
			return nil
		}
		if err := m.browser(m.viewing.Image); err != nil {
			m.logger.Warn("failed to open backdrop", "url", m.viewing.Image, "error", err)
			return m.showToast(session.Notice{Message: err.Error(), Kind: session.NoticeDanger})
		}
	case key.Matches(msg, m.keys.auth):
		if m.navbar.ShowAuthButtons() {
			return m.navigate(PageAuth)
		}
	}
	return nil
}

func (m *Model) playerView() string {
	v := m.viewing
	lines := []string{styles.title.Render(v.Title)}
	if _, ok := v.RatingValue(); ok {
		lines = append(lines, "⭐ "+v.Rating)
	}
	if v.HasBackdrop() {
		lines = append(lines, styles.muted.Render(v.Image))
	}
	lines = append(lines, "", styles.button.Render("▶ Play"))
	return styles.hero.Render(strings.Join(lines, "\n"))
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"coursereg/registrar"
	"coursereg/store"
)

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateLogin:
		return header + "\n\n" + m.loginView()
	case stateLoading:
		return header + "\n\n" + m.loadingView()
	case stateBrowse:
		return header + "\n\n" + m.browseView()
	case stateSchedule:
		return header + "\n\n" + m.scheduleView()
	case stateConfirmClear:
		return header + "\n\n" + m.confirmClearView()
	case stateAdmin:
		return header + "\n\n" + m.adminView()
	default:
		return header
	}
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("Course Registration")
	sub := []string{}
	if m.user != nil {
		sub = append(sub, "Hi, "+store.DisplayName(m.user))
		if m.user.IsAdmin() {
			sub = append(sub, "Role: admin")
		}
		sub = append(sub, fmt.Sprintf("Schedule (%d)", m.app.Schedule.Len()))
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}

	hints := "ctrl+c quit"
	switch m.state {
	case stateLogin:
		hints = "ctrl+c quit • tab switch field • enter sign in"
	case stateBrowse:
		hints = "ctrl+c quit • type to filter • tab next filter • ctrl+r clear filters • enter add/remove • ctrl+s schedule • ctrl+a admin • ctrl+o log out"
	case stateSchedule:
		hints = "ctrl+c quit • esc back • d remove • c confirm • x clear all • ctrl+a admin • ctrl+o log out"
	case stateConfirmClear:
		hints = "y confirm • n cancel"
	case stateAdmin:
		hints = "ctrl+c quit • esc back • ctrl+s schedule • ctrl+o log out"
	}

	alertLine := ""
	if m.alert != "" && m.state == stateBrowse {
		alertLine = "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.alert)
	}
	return title + meta + alertLine + "\n" + hint(hints)
}

func (m appModel) loadingView() string {
	label := "Loading..."
	switch m.page {
	case registrar.PageBrowse:
		label = "Loading courses..."
	case registrar.PageSchedule:
		label = "Loading schedule..."
	case registrar.PageAdmin:
		label = "Loading enrollments..."
	}
	return m.spinner.View() + " " + label
}

func (m appModel) loginView() string {
	chip := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("63")).
		Padding(0, 2)

	lines := []string{
		chip.Render("Sign in"),
		"",
		m.emailInput.View(),
		m.passwordInput.View(),
		"",
	}
	switch {
	case m.signingIn:
		lines = append(lines, m.spinner.View()+" Signing in...")
	case m.loginErr != "":
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render(m.loginErr))
	}

	panel := lipgloss.NewStyle().
		Padding(1, 3).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(strings.Join(lines, "\n"))
	if m.width > 0 {
		panel = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, panel)
	}
	return panel
}

func (m appModel) browseView() string {
	inputs := make([]string, 0, len(m.filterInputs))
	for _, in := range m.filterInputs {
		inputs = append(inputs, in.View())
	}
	bar := strings.Join(inputs[:2], "   ") + "\n" + strings.Join(inputs[2:], "   ")

	opts := []string{}
	if len(m.options.Subjects) > 0 {
		opts = append(opts, "Subjects: "+strings.Join(m.options.Subjects, ", "))
	}
	if len(m.options.Terms) > 0 {
		terms := make([]string, 0, len(m.options.Terms))
		for _, t := range m.options.Terms {
			terms = append(terms, fmt.Sprintf("%s (%s)", t.Code, t.Label))
		}
		opts = append(opts, "Terms: "+strings.Join(terms, ", "))
	}
	if len(opts) > 0 {
		bar += "\n" + hint(strings.Join(opts, " • "))
	}

	body := m.cardList.View()
	if len(m.cardList.Items()) == 0 {
		body = hint("No sections match the current filters.")
	}
	status := ""
	if m.busy {
		status = "\n" + m.spinner.View() + " Updating schedule..."
	}
	return bar + "\n\n" + body + status
}

func (m appModel) scheduleView() string {
	parts := []string{}
	if len(m.scheduleList.Items()) > 0 {
		parts = append(parts, m.scheduleList.View())
	}
	if m.scheduleMsg != "" {
		parts = append(parts, lipgloss.NewStyle().Bold(true).Render(m.scheduleMsg))
	}
	if m.busy {
		parts = append(parts, m.spinner.View()+" Updating schedule...")
	}
	return strings.Join(parts, "\n\n")
}

func (m appModel) confirmClearView() string {
	prompt := lipgloss.NewStyle().
		Padding(0, 2).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("203")).
		Render("Remove all courses from your schedule?\n\n" + hint("y yes • n cancel"))
	return m.scheduleView() + "\n\n" + prompt
}

func (m appModel) adminView() string {
	if m.rosterMsg != "" {
		return lipgloss.NewStyle().Bold(true).Render(m.rosterMsg)
	}
	return m.rosterTable.View()
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

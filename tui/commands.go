package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"coursereg/registrar"
	"coursereg/service"
)

func (m appModel) loginCmd(input service.LoginInput) tea.Cmd {
	auth := m.auth
	return func() tea.Msg {
		user, err := auth.Login(context.Background(), input.Email, input.Password)
		return loginMsg{user: user, err: err}
	}
}

func (m appModel) loadPageCmd(page registrar.Page) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		err := app.Bootstrap(context.Background(), page)
		return pageLoadedMsg{page: page, err: err}
	}
}

func (m appModel) loadRosterCmd() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		ctx := context.Background()
		if err := app.Bootstrap(ctx, registrar.PageAdmin); err != nil {
			return rosterMsg{err: err}
		}
		return rosterMsg{roster: app.Roster(ctx)}
	}
}

func (m appModel) toggleCmd(sectionID int) tea.Cmd {
	return m.workflowCmd(registrar.PageBrowse, func(ctx context.Context, w *registrar.Workflow) registrar.Outcome {
		return w.Toggle(ctx, sectionID)
	})
}

func (m appModel) removeCmd(sectionID int) tea.Cmd {
	return m.workflowCmd(registrar.PageSchedule, func(ctx context.Context, w *registrar.Workflow) registrar.Outcome {
		return w.Remove(ctx, sectionID)
	})
}

func (m appModel) confirmCmd() tea.Cmd {
	return m.workflowCmd(registrar.PageSchedule, func(ctx context.Context, w *registrar.Workflow) registrar.Outcome {
		return w.Confirm(ctx)
	})
}

func (m appModel) clearCmd() tea.Cmd {
	return m.workflowCmd(registrar.PageSchedule, func(ctx context.Context, w *registrar.Workflow) registrar.Outcome {
		return w.ClearAll(ctx)
	})
}

func (m appModel) workflowCmd(page registrar.Page, run func(context.Context, *registrar.Workflow) registrar.Outcome) tea.Cmd {
	w := m.app.Workflow
	return func() tea.Msg {
		return workflowMsg{page: page, outcome: run(context.Background(), w)}
	}
}

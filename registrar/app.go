package registrar

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Page is one screen of the client.
type Page int

const (
	PageLogin Page = iota
	PageBrowse
	PageSchedule
	PageAdmin
)

// ErrSignInRequired is returned by Bootstrap for any page but login when
// there is no session.
var ErrSignInRequired = errors.New("sign in required")

// App owns the per-run registration state. Build one per program run; it is
// rebuilt from the server, never persisted.
type App struct {
	Catalog  *Catalog
	Schedule *Schedule
	Workflow *Workflow

	remote Remote
	email  EmailFunc
	logger *zap.Logger
}

func NewApp(remote Remote, email EmailFunc, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	catalog := NewCatalog(remote, logger)
	schedule := NewSchedule(remote, email, logger)
	return &App{
		Catalog:  catalog,
		Schedule: schedule,
		Workflow: NewWorkflow(remote, email, catalog, schedule, logger),
		remote:   remote,
		email:    email,
		logger:   logger,
	}
}

func (a *App) Email() string {
	if a.email == nil {
		return ""
	}
	return a.email()
}

// Bootstrap runs the page-load sequence: gate on the session, refresh the
// schedule, then load the catalog for the browse page. A catalog failure is
// returned as a *UserError and leaves the page usable.
func (a *App) Bootstrap(ctx context.Context, page Page) error {
	if page == PageLogin {
		return nil
	}
	if a.Email() == "" {
		return ErrSignInRequired
	}
	_ = a.Schedule.Refresh(ctx)
	if page == PageBrowse {
		return a.Catalog.Load(ctx)
	}
	return nil
}

func (a *App) Cards(filter Filter) []Card {
	return BuildCards(a.Catalog.Sections(), a.Schedule, filter)
}

func (a *App) ScheduleView() ScheduleView {
	return BuildScheduleView(a.Schedule)
}

func (a *App) Roster(ctx context.Context) Roster {
	return LoadRoster(ctx, a.remote, a.Email())
}

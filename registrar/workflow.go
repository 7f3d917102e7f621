package registrar

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"coursereg/service"
)

const (
	msgAddMissing      = "Could not add section (missing data or not logged in)."
	msgAddFailed       = "Could not add section."
	msgRemoveFailed    = "Could not remove section."
	msgUpdateNetwork   = "Problem updating schedule."
	msgNotSignedIn     = "You must be logged in."
	msgClearFailed     = "Problem clearing schedule."
	msgConfirmFailed   = "Could not confirm schedule."
	msgConfirmNetwork  = "Network error confirming schedule."
	msgConfirmDefault  = "Schedule confirmed."
	msgTermMismatchFmt = "Your current schedule is for %s. Clear it to add %s courses."
	msgPrereqFmt       = "%s requires %s. You cannot take them in the same term."
)

// Outcome is the result of one workflow step as the user should see it.
// Rejected is set when a client-side check stopped the step before any
// request was sent.
type Outcome struct {
	OK       bool
	Rejected bool
	Message  string
}

func rejected(msg string) Outcome {
	return Outcome{Rejected: true, Message: msg}
}

// Workflow runs the schedule mutations against the remote service and keeps
// the schedule cache in step with it. It never edits the cache locally.
type Workflow struct {
	remote   Remote
	email    EmailFunc
	catalog  *Catalog
	schedule *Schedule
	logger   *zap.Logger
}

func NewWorkflow(remote Remote, email EmailFunc, catalog *Catalog, schedule *Schedule, logger *zap.Logger) *Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{
		remote:   remote,
		email:    email,
		catalog:  catalog,
		schedule: schedule,
		logger:   logger,
	}
}

func (w *Workflow) currentEmail() string {
	if w.email == nil {
		return ""
	}
	return strings.TrimSpace(w.email())
}

// Add puts a catalog section into the schedule after two checks:
//
//   - the section's term must match the schedule's term, if it has one;
//   - none of the course's prerequisites may already be selected in the same
//     term.
//
// The second check only looks for same-term collisions. It does not verify
// that prerequisites were completed in an earlier term.
func (w *Workflow) Add(ctx context.Context, sectionID int) Outcome {
	sec, ok := w.catalog.ByID(sectionID)
	email := w.currentEmail()
	if !ok || email == "" {
		return rejected(msgAddMissing)
	}

	newTerm := strings.ToUpper(sec.Term)
	course := sec.CourseOrEmpty()

	if current := w.schedule.Term(); current != "" && newTerm != "" && current != newTerm {
		w.logger.Info("add_rejected_term",
			zap.Int("section_id", sectionID),
			zap.String("schedule_term", current),
			zap.String("section_term", newTerm),
		)
		return rejected(fmt.Sprintf(msgTermMismatchFmt, current, newTerm))
	}

	if conflict := w.sameTermPrereq(course.Prereqs, newTerm); conflict != "" {
		w.logger.Info("add_rejected_prereq",
			zap.Int("section_id", sectionID),
			zap.String("course", course.Code),
			zap.String("prereq", conflict),
		)
		return rejected(fmt.Sprintf(msgPrereqFmt, course.Code, conflict))
	}

	err := w.remote.AddToSchedule(ctx, sectionID, email)
	out := Outcome{OK: err == nil}
	if err != nil {
		out.Message = updateFailureMessage(err, msgAddFailed)
		w.logger.Warn("add_failed", zap.Int("section_id", sectionID), zap.Error(err))
	}
	_ = w.schedule.Refresh(ctx)
	return out
}

// sameTermPrereq returns the first prerequisite code that is already
// selected in term, or "".
func (w *Workflow) sameTermPrereq(prereqs []string, term string) string {
	if len(prereqs) == 0 || term == "" {
		return ""
	}
	selected := map[string]bool{}
	for _, sec := range w.schedule.Sections() {
		if strings.ToUpper(sec.Term) != term {
			continue
		}
		if code := sec.CourseOrEmpty().Code; code != "" {
			selected[code] = true
		}
	}
	for _, code := range prereqs {
		if selected[code] {
			return code
		}
	}
	return ""
}

// Remove drops a section from the schedule. There is no client-side check
// beyond requiring a signed-in user.
func (w *Workflow) Remove(ctx context.Context, sectionID int) Outcome {
	out := w.remove(ctx, sectionID)
	if !out.Rejected {
		_ = w.schedule.Refresh(ctx)
	}
	return out
}

func (w *Workflow) remove(ctx context.Context, sectionID int) Outcome {
	email := w.currentEmail()
	if email == "" {
		return rejected(msgNotSignedIn)
	}
	if err := w.remote.RemoveFromSchedule(ctx, sectionID, email); err != nil {
		w.logger.Warn("remove_failed", zap.Int("section_id", sectionID), zap.Error(err))
		return Outcome{Message: updateFailureMessage(err, msgRemoveFailed)}
	}
	return Outcome{OK: true}
}

// Toggle removes a selected section and adds an unselected one.
func (w *Workflow) Toggle(ctx context.Context, sectionID int) Outcome {
	if w.schedule.Has(sectionID) {
		return w.Remove(ctx, sectionID)
	}
	return w.Add(ctx, sectionID)
}

// ClearAll removes every selected section, one request at a time. Callers
// must have asked the user to confirm first. A failed removal does not stop
// the rest, and nothing already removed is put back.
func (w *Workflow) ClearAll(ctx context.Context) Outcome {
	_ = w.schedule.Refresh(ctx)

	failed := 0
	for _, sec := range w.schedule.Sections() {
		if out := w.remove(ctx, sec.ID); !out.OK {
			failed++
		}
	}
	_ = w.schedule.Refresh(ctx)

	if failed > 0 {
		w.logger.Warn("clear_incomplete", zap.Int("failed", failed))
		return Outcome{Message: msgClearFailed}
	}
	return Outcome{OK: true}
}

// Confirm asks the server to confirm every pending section, then refreshes
// the schedule so per-section status is current.
func (w *Workflow) Confirm(ctx context.Context) Outcome {
	email := w.currentEmail()
	if email == "" {
		return rejected(msgNotSignedIn)
	}

	msg, err := w.remote.ConfirmSchedule(ctx, email)
	var out Outcome
	switch {
	case err == nil:
		if msg == "" {
			msg = msgConfirmDefault
		}
		out = Outcome{OK: true, Message: msg}
	case service.IsTransport(err):
		out = Outcome{Message: msgConfirmNetwork}
	default:
		out = Outcome{Message: service.ServerMessage(err, msgConfirmFailed)}
	}
	if err != nil {
		w.logger.Warn("confirm_failed", zap.Error(err))
	}
	_ = w.schedule.Refresh(ctx)
	return out
}

func updateFailureMessage(err error, fallback string) string {
	if service.IsTransport(err) {
		return msgUpdateNetwork
	}
	return service.ServerMessage(err, fallback)
}

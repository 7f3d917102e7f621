package registrar

import (
	"context"
	"fmt"
	"strings"

	"coursereg/model"
	"coursereg/service"
)

const (
	msgRosterForbidden = "Admin access only."
	msgRosterNetwork   = "Network error loading admin data."
	msgRosterEmpty     = "No enrollments yet."
)

type rosterSource interface {
	AdminEnrollments(ctx context.Context, email string) ([]model.Enrollment, error)
}

type RosterRow struct {
	Student string
	Course  string
	Term    string
	CRN     string
	Status  string
}

// Roster is the admin enrollment table. Message is set instead of rows when
// there is nothing to show.
type Roster struct {
	Rows    []RosterRow
	Message string
}

// LoadRoster fetches and renders the enrollment roster. It is read-only and
// never filters or pages.
func LoadRoster(ctx context.Context, remote rosterSource, email string) Roster {
	email = strings.TrimSpace(email)
	if email == "" {
		return Roster{Message: msgNotSignedIn}
	}

	enrollments, err := remote.AdminEnrollments(ctx, email)
	if err != nil {
		if service.IsTransport(err) {
			return Roster{Message: msgRosterNetwork}
		}
		return Roster{Message: service.ServerMessage(err, msgRosterForbidden)}
	}
	if len(enrollments) == 0 {
		return Roster{Message: msgRosterEmpty}
	}

	rows := make([]RosterRow, 0, len(enrollments))
	for _, en := range enrollments {
		term := en.TermLabel
		if term == "" {
			term = en.Term
		}
		rows = append(rows, RosterRow{
			Student: fmt.Sprintf("%s (%s)", en.StudentName, en.StudentEmail),
			Course:  fmt.Sprintf("%s — %s", en.CourseCode, en.CourseTitle),
			Term:    term,
			CRN:     "CRN " + en.CRN.String(),
			Status:  en.Status,
		})
	}
	return Roster{Rows: rows}
}

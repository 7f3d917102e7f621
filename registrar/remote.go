// Package registrar holds the client-side registration state: the catalog
// and schedule caches, the filter and card view models, and the
// add/remove/clear/confirm workflow with its term and prerequisite guards.
//
// Nothing here is authoritative. Every mutation goes to the remote service
// and the caches are rebuilt from it afterwards.
package registrar

import (
	"context"

	"coursereg/model"
)

// Remote is the registration service as seen by this package.
// *service.Client satisfies it.
type Remote interface {
	ListCourses(ctx context.Context) ([]model.Section, error)
	GetSchedule(ctx context.Context, email string) ([]model.Section, error)
	AddToSchedule(ctx context.Context, sectionID int, email string) error
	RemoveFromSchedule(ctx context.Context, sectionID int, email string) error
	ConfirmSchedule(ctx context.Context, email string) (string, error)
	AdminEnrollments(ctx context.Context, email string) ([]model.Enrollment, error)
}

// EmailFunc returns the signed-in email, or "" when signed out. It is read
// on every operation so a logout takes effect immediately.
type EmailFunc func() string

// UserError carries a message meant for display alongside its cause.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

package registrar

import (
	"context"
	"errors"
	"testing"

	"coursereg/model"
	"coursereg/service"
)

func TestLoadRoster_Empty(t *testing.T) {
	remote := newFakeRemote()
	remote.roster = []model.Enrollment{}

	roster := LoadRoster(context.Background(), remote, "admin@school.edu")
	if roster.Message != "No enrollments yet." {
		t.Fatalf("expected empty message, got %q", roster.Message)
	}
	if len(roster.Rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(roster.Rows))
	}
}

func TestLoadRoster_Rows(t *testing.T) {
	remote := newFakeRemote()
	remote.roster = []model.Enrollment{
		{StudentName: "Ada", StudentEmail: "ada@school.edu", CourseCode: "CS101", CourseTitle: "Intro", Term: "FALL2024", TermLabel: "Fall 2024", CRN: "40123", Status: "CONFIRMED"},
		{StudentName: "Grace", StudentEmail: "grace@school.edu", CourseCode: "CS201", CourseTitle: "Data", Term: "FALL2024", CRN: "40124", Status: "PENDING"},
	}

	roster := LoadRoster(context.Background(), remote, "admin@school.edu")
	if roster.Message != "" || len(roster.Rows) != 2 {
		t.Fatalf("expected two rows, got %+v", roster)
	}
	want := RosterRow{Student: "Ada (ada@school.edu)", Course: "CS101 — Intro", Term: "Fall 2024", CRN: "CRN 40123", Status: "CONFIRMED"}
	if roster.Rows[0] != want {
		t.Fatalf("expected %+v, got %+v", want, roster.Rows[0])
	}
	if roster.Rows[1].Term != "FALL2024" {
		t.Fatalf("expected term code fallback, got %q", roster.Rows[1].Term)
	}
}

func TestLoadRoster_Failures(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "server message", err: &service.APIError{StatusCode: 403, Message: "Admins only, sorry."}, want: "Admins only, sorry."},
		{name: "fallback", err: &service.APIError{StatusCode: 403}, want: "Admin access only."},
		{name: "network", err: &service.TransportError{Endpoint: "/api/admin/enrollments", Err: errors.New("refused")}, want: "Network error loading admin data."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			remote := newFakeRemote()
			remote.rosterErr = tc.err
			roster := LoadRoster(context.Background(), remote, "ada@school.edu")
			if roster.Message != tc.want || len(roster.Rows) != 0 {
				t.Fatalf("expected %q with no rows, got %+v", tc.want, roster)
			}
		})
	}
}

func TestLoadRoster_RequiresSession(t *testing.T) {
	remote := newFakeRemote()
	roster := LoadRoster(context.Background(), remote, " ")
	if roster.Message != msgNotSignedIn {
		t.Fatalf("expected sign-in message, got %q", roster.Message)
	}
	if remote.count("roster") != 0 {
		t.Fatal("expected no call without a session")
	}
}

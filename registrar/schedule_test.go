package registrar

import (
	"context"
	"errors"
	"testing"

	"coursereg/service"
)

func TestScheduleRefresh_NoEmailMakesNoCall(t *testing.T) {
	remote := newFakeRemote(section(1, "CS101", "FALL2024"))
	remote.selected = []int{1}
	schedule := NewSchedule(remote, signedIn(""), nil)

	if err := schedule.Refresh(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if remote.count("schedule") != 0 {
		t.Fatalf("expected no remote call, got %d", remote.count("schedule"))
	}
	if schedule.Len() != 0 || schedule.Term() != "" {
		t.Fatalf("expected empty schedule, got len=%d term=%q", schedule.Len(), schedule.Term())
	}
}

func TestScheduleRefresh_DerivesTermAndMembership(t *testing.T) {
	remote := newFakeRemote(section(1, "CS101", "fall2024"), section(2, "CS102", "fall2024"))
	remote.selected = []int{1, 2}
	schedule := NewSchedule(remote, signedIn("ada@school.edu"), nil)

	if err := schedule.Refresh(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if schedule.Term() != "FALL2024" {
		t.Fatalf("expected upper-cased term, got %q", schedule.Term())
	}
	if !schedule.Has(1) || !schedule.Has(2) || schedule.Has(3) {
		t.Fatal("unexpected membership")
	}
	if schedule.Len() != 2 {
		t.Fatalf("expected 2 sections, got %d", schedule.Len())
	}
}

func TestScheduleRefresh_FailsClosed(t *testing.T) {
	cases := map[string]error{
		"http":    &service.APIError{StatusCode: 502},
		"network": &service.TransportError{Endpoint: "/api/schedule", Err: errors.New("reset")},
	}
	for name, failure := range cases {
		t.Run(name, func(t *testing.T) {
			remote := newFakeRemote(section(1, "CS101", "FALL2024"))
			remote.selected = []int{1}
			schedule := NewSchedule(remote, signedIn("ada@school.edu"), nil)
			if err := schedule.Refresh(context.Background()); err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if !schedule.Has(1) {
				t.Fatal("expected section 1 selected before failure")
			}

			remote.scheduleErr = failure
			if err := schedule.Refresh(context.Background()); err == nil {
				t.Fatal("expected error")
			}
			if schedule.Len() != 0 || schedule.Has(1) || schedule.Term() != "" {
				t.Fatal("expected schedule to be reset, not stale")
			}
		})
	}
}

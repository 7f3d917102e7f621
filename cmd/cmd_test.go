package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"coursereg/model"
	"coursereg/store"
)

type apiStub struct {
	mu       sync.Mutex
	sections []model.Section
	selected []int
	roster   []model.Enrollment
}

func newAPIStub(t *testing.T) (*apiStub, string) {
	t.Helper()
	s := &apiStub{
		sections: []model.Section{
			{ID: 1, Term: "FALL2024", TermLabel: "Fall 2024", CRN: "40001",
				Course: &model.Course{Code: "CS101", Title: "Intro to Programming", Subject: "CS", Credits: 3, Instructor: "Hopper"}},
			{ID: 2, Term: "FALL2024", TermLabel: "Fall 2024", CRN: "40002",
				Course: &model.Course{Code: "MATH200", Title: "Linear Algebra", Subject: "MATH", Credits: 4}},
		},
	}
	srv := httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(srv.Close)
	return s, srv.URL
}

func (s *apiStub) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var body struct {
		Email     string `json:"email"`
		SectionID int    `json:"section_id"`
	}
	if r.Method == http.MethodPost {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	switch r.URL.Path {
	case "/api/login":
		_ = json.NewEncoder(w).Encode(model.User{Email: body.Email, Name: "Ada", Role: model.RoleStudent})
	case "/api/courses":
		_ = json.NewEncoder(w).Encode(s.sections)
	case "/api/schedule":
		_ = json.NewEncoder(w).Encode(s.selectedSections())
	case "/api/schedule/add":
		s.selected = append(s.selected, body.SectionID)
		_, _ = w.Write([]byte(`{}`))
	case "/api/schedule/remove":
		kept := s.selected[:0]
		for _, id := range s.selected {
			if id != body.SectionID {
				kept = append(kept, id)
			}
		}
		s.selected = kept
		_, _ = w.Write([]byte(`{}`))
	case "/api/admin/enrollments":
		if s.roster == nil {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_ = json.NewEncoder(w).Encode(s.roster)
	default:
		http.NotFound(w, r)
	}
}

func (s *apiStub) selectedSections() []model.Section {
	out := []model.Section{}
	for _, id := range s.selected {
		for _, sec := range s.sections {
			if sec.ID == id {
				out = append(out, sec)
			}
		}
	}
	return out
}

func setTestDirs(t *testing.T) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", root)
	t.Setenv("XDG_CACHE_HOME", root)
	t.Setenv("AppData", root)
	t.Setenv("COURSEREG_API_BASE", "")
	t.Setenv("COURSEREG_LOG_FILE", filepath.Join(root, "coursereg.log"))
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd("1.2.3", "abc123")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func signIn(t *testing.T) {
	t.Helper()
	if err := store.SetUser(model.User{Email: "ada@school.edu", Name: "Ada", Role: model.RoleStudent}); err != nil {
		t.Fatalf("expected session to save, got %v", err)
	}
}

func TestVersion(t *testing.T) {
	setTestDirs(t)
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if strings.TrimSpace(out) != "coursereg 1.2.3 (abc123)" {
		t.Fatalf("expected version line, got %q", out)
	}
}

func TestLogin_SavesSession(t *testing.T) {
	setTestDirs(t)
	_, api := newAPIStub(t)

	out, err := run(t, "--api", api, "login", "-e", "ada@school.edu", "-p", "secret-123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out, "Hi, Ada") {
		t.Fatalf("expected greeting, got %q", out)
	}
	if got := store.CurrentEmail(); got != "ada@school.edu" {
		t.Fatalf("expected stored email, got %q", got)
	}
}

func TestLogin_RejectsWeakPassword(t *testing.T) {
	setTestDirs(t)
	_, api := newAPIStub(t)

	_, err := run(t, "--api", api, "login", "-e", "ada@school.edu", "-p", "short")
	if err == nil || !strings.Contains(err.Error(), "Password: min 8 chars") {
		t.Fatalf("expected password rule error, got %v", err)
	}
	if got := store.CurrentEmail(); got != "" {
		t.Fatalf("expected no session, got %q", got)
	}
}

func TestCourses_RequiresSession(t *testing.T) {
	setTestDirs(t)
	_, api := newAPIStub(t)

	_, err := run(t, "--api", api, "courses")
	if err == nil || err.Error() != msgNotSignedIn {
		t.Fatalf("expected %q, got %v", msgNotSignedIn, err)
	}
}

func TestCourses_Filtered(t *testing.T) {
	setTestDirs(t)
	_, api := newAPIStub(t)
	signIn(t)

	out, err := run(t, "--api", api, "courses", "--subject", "CS")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out, "CS101") {
		t.Fatalf("expected CS101 in table, got %q", out)
	}
	if strings.Contains(out, "MATH200") {
		t.Fatalf("expected MATH200 filtered out, got %q", out)
	}
}

func TestSchedule_AddShowClear(t *testing.T) {
	setTestDirs(t)
	stub, api := newAPIStub(t)
	signIn(t)

	if _, err := run(t, "--api", api, "schedule", "add", "1"); err != nil {
		t.Fatalf("expected add to succeed, got %v", err)
	}
	out, err := run(t, "--api", api, "schedule", "show")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out, "Intro to Programming") || !strings.Contains(out, "PENDING") {
		t.Fatalf("expected pending section row, got %q", out)
	}

	if _, err := run(t, "--api", api, "schedule", "clear", "--yes"); err != nil {
		t.Fatalf("expected clear to succeed, got %v", err)
	}
	if len(stub.selected) != 0 {
		t.Fatalf("expected empty schedule on server, got %v", stub.selected)
	}
	out, _ = run(t, "--api", api, "schedule")
	if !strings.Contains(out, "Your schedule is currently empty.") {
		t.Fatalf("expected empty message, got %q", out)
	}
}

func TestSchedule_AddRejectsBadID(t *testing.T) {
	setTestDirs(t)
	_, api := newAPIStub(t)
	signIn(t)

	_, err := run(t, "--api", api, "schedule", "add", "abc")
	if err == nil || !strings.Contains(err.Error(), "invalid section id") {
		t.Fatalf("expected invalid id error, got %v", err)
	}
}

func TestAdminEnrollments_Forbidden(t *testing.T) {
	setTestDirs(t)
	_, api := newAPIStub(t)
	signIn(t)

	out, err := run(t, "--api", api, "admin", "enrollments")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out, "Admin access only.") {
		t.Fatalf("expected forbidden message, got %q", out)
	}
}

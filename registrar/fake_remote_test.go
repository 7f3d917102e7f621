package registrar

import (
	"context"
	"sync"

	"coursereg/model"
)

// fakeRemote simulates the registration service for a single student: the
// schedule is the list of selected catalog section ids.
type fakeRemote struct {
	mu sync.Mutex

	catalog     []model.Section
	catalogErr  error
	scheduleErr error
	addErr      error
	removeErrs  map[int]error
	confirmMsg  string
	confirmErr  error
	roster      []model.Enrollment
	rosterErr   error

	selected []int
	status   string
	calls    map[string]int
}

func newFakeRemote(catalog ...model.Section) *fakeRemote {
	return &fakeRemote{
		catalog:    catalog,
		removeErrs: map[int]error{},
		calls:      map[string]int{},
	}
}

func (f *fakeRemote) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeRemote) mutations() int {
	return f.count("add") + f.count("remove") + f.count("confirm")
}

func (f *fakeRemote) ListCourses(ctx context.Context) ([]model.Section, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["courses"]++
	if f.catalogErr != nil {
		return nil, f.catalogErr
	}
	return append([]model.Section(nil), f.catalog...), nil
}

func (f *fakeRemote) GetSchedule(ctx context.Context, email string) ([]model.Section, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["schedule"]++
	if f.scheduleErr != nil {
		return nil, f.scheduleErr
	}
	var out []model.Section
	for _, id := range f.selected {
		for _, sec := range f.catalog {
			if sec.ID == id {
				sec.Status = f.status
				out = append(out, sec)
			}
		}
	}
	return out, nil
}

func (f *fakeRemote) AddToSchedule(ctx context.Context, sectionID int, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["add"]++
	if f.addErr != nil {
		return f.addErr
	}
	f.selected = append(f.selected, sectionID)
	return nil
}

func (f *fakeRemote) RemoveFromSchedule(ctx context.Context, sectionID int, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["remove"]++
	if err := f.removeErrs[sectionID]; err != nil {
		return err
	}
	for i, id := range f.selected {
		if id == sectionID {
			f.selected = append(f.selected[:i], f.selected[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeRemote) ConfirmSchedule(ctx context.Context, email string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["confirm"]++
	if f.confirmErr != nil {
		return "", f.confirmErr
	}
	f.status = "CONFIRMED"
	return f.confirmMsg, nil
}

func (f *fakeRemote) AdminEnrollments(ctx context.Context, email string) ([]model.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["roster"]++
	if f.rosterErr != nil {
		return nil, f.rosterErr
	}
	return f.roster, nil
}

func signedIn(email string) EmailFunc {
	return func() string { return email }
}

func section(id int, code string, term string, prereqs ...string) model.Section {
	return model.Section{
		ID:        id,
		Term:      term,
		TermLabel: term + " label",
		CRN:       model.CRN("4000" + code),
		Course: &model.Course{
			Code:    code,
			Title:   code + " title",
			Subject: "CS",
			Credits: 3,
			Prereqs: prereqs,
		},
	}
}

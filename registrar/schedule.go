package registrar

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"coursereg/model"
)

// Schedule mirrors the signed-in student's selected sections. All sections
// in a non-empty schedule share one term, which is derived from the first
// section the server returns.
type Schedule struct {
	remote Remote
	email  EmailFunc
	logger *zap.Logger

	mu       sync.RWMutex
	sections []model.Section
	ids      map[int]struct{}
	term     string
}

func NewSchedule(remote Remote, email EmailFunc, logger *zap.Logger) *Schedule {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Schedule{
		remote: remote,
		email:  email,
		logger: logger,
		ids:    map[int]struct{}{},
	}
}

// Refresh reloads the schedule from the server. Without a signed-in email
// no call is made. Any failure empties the cache rather than keeping stale
// data; the error is returned for logging only.
func (s *Schedule) Refresh(ctx context.Context) error {
	email := ""
	if s.email != nil {
		email = strings.TrimSpace(s.email())
	}
	if email == "" {
		s.replace(nil)
		return nil
	}

	sections, err := s.remote.GetSchedule(ctx, email)
	if err != nil {
		s.replace(nil)
		s.logger.Warn("schedule_refresh_failed", zap.Error(err))
		return err
	}
	s.replace(sections)
	return nil
}

func (s *Schedule) replace(sections []model.Section) {
	ids := make(map[int]struct{}, len(sections))
	for _, sec := range sections {
		ids[sec.ID] = struct{}{}
	}
	term := ""
	if len(sections) > 0 {
		term = strings.ToUpper(sections[0].Term)
	}

	s.mu.Lock()
	s.sections = sections
	s.ids = ids
	s.term = term
	s.mu.Unlock()
}

// Has reports whether the section is currently selected.
func (s *Schedule) Has(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// Term is the upper-cased term of the schedule, or "" when it is empty.
func (s *Schedule) Term() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.term
}

func (s *Schedule) Sections() []model.Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Section(nil), s.sections...)
}

func (s *Schedule) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

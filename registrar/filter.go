package registrar

import (
	"strconv"
	"strings"

	"coursereg/model"
)

// Filter is the browse filter state. Empty fields do not constrain.
type Filter struct {
	Query   string
	Subject string
	Credits string
	Day     string
	Term    string
}

func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Apply returns the sections matching every set field, in catalog order.
func (f Filter) Apply(sections []model.Section) []model.Section {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	term := strings.ToUpper(f.Term)

	var day int
	var dayErr error
	if f.Day != "" {
		day, dayErr = strconv.Atoi(strings.TrimSpace(f.Day))
	}

	var out []model.Section
	for _, sec := range sections {
		course := sec.CourseOrEmpty()
		if q != "" &&
			!strings.Contains(strings.ToLower(course.Title), q) &&
			!strings.Contains(strings.ToLower(course.Code), q) {
			continue
		}
		if f.Subject != "" && course.Subject != f.Subject {
			continue
		}
		if f.Credits != "" && strconv.Itoa(course.Credits) != f.Credits {
			continue
		}
		if term != "" && strings.ToUpper(sec.Term) != term {
			continue
		}
		if f.Day != "" {
			if dayErr != nil || !meetsOn(sec, day) {
				continue
			}
		}
		out = append(out, sec)
	}
	return out
}

func meetsOn(sec model.Section, day int) bool {
	for _, m := range sec.Meetings {
		if m.Day == day {
			return true
		}
	}
	return false
}

// TermOption is one entry of the term filter: the code to filter on and the
// label to show.
type TermOption struct {
	Code  string
	Label string
}

type FilterOptions struct {
	Subjects []string
	Terms    []TermOption
}

// BuildFilterOptions lists every distinct subject and term in first-seen
// order. A term is labelled with the term_label of the first section that
// carries it, falling back to the code.
func BuildFilterOptions(sections []model.Section) FilterOptions {
	var opts FilterOptions
	seenSubjects := map[string]bool{}
	seenTerms := map[string]bool{}
	for _, sec := range sections {
		if subject := sec.CourseOrEmpty().Subject; subject != "" && !seenSubjects[subject] {
			seenSubjects[subject] = true
			opts.Subjects = append(opts.Subjects, subject)
		}
		if sec.Term != "" && !seenTerms[sec.Term] {
			seenTerms[sec.Term] = true
			label := sec.TermLabel
			if label == "" {
				label = sec.Term
			}
			opts.Terms = append(opts.Terms, TermOption{Code: sec.Term, Label: label})
		}
	}
	return opts
}

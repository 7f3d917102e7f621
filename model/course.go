package model

type Course struct {
	Code       string   `json:"code"`
	Title      string   `json:"title"`
	Subject    string   `json:"subject"`
	Credits    int      `json:"credits"`
	Instructor string   `json:"instructor"`
	Prereqs    []string `json:"prereqs"`
}

type Meeting struct {
	Day      int    `json:"day"`
	DayLabel string `json:"day_label"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

type Section struct {
	ID        int       `json:"section_id"`
	Course    *Course   `json:"course"`
	Term      string    `json:"term"`
	TermLabel string    `json:"term_label"`
	CRN       CRN       `json:"crn"`
	Meetings  []Meeting `json:"meetings"`
	Status    string    `json:"status,omitempty"`
}

// CourseOrEmpty returns the nested course, or a zero Course when the server
// omitted it.
func (s Section) CourseOrEmpty() Course {
	if s.Course == nil {
		return Course{}
	}
	return *s.Course
}

// TermDisplay prefers the human label and falls back to the term code.
func (s Section) TermDisplay() string {
	if s.TermLabel != "" {
		return s.TermLabel
	}
	return s.Term
}

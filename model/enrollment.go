package model

type Enrollment struct {
	StudentName  string `json:"student_name"`
	StudentEmail string `json:"student_email"`
	CourseCode   string `json:"course_code"`
	CourseTitle  string `json:"course_title"`
	Term         string `json:"term"`
	TermLabel    string `json:"term_label"`
	CRN          CRN    `json:"crn"`
	Status       string `json:"status"`
}

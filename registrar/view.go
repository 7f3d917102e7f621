package registrar

import (
	"fmt"
	"strconv"
	"strings"

	"coursereg/model"
)

// Action is what activating a card or row does.
type Action int

const (
	ActionAdd Action = iota + 1
	ActionRemove
)

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	default:
		return "none"
	}
}

// Card is the browse view of one section.
type Card struct {
	SectionID int
	Title     string
	Subject   string
	Meta      string
	When      string
	Term      string
	Prereqs   string
	Button    string
	Selected  bool
	Action    Action
}

// Row is the schedule view of one selected section.
type Row struct {
	SectionID  int
	Course     string
	CRN        string
	When       string
	Instructor string
	Status     string
	Action     Action
}

type ScheduleView struct {
	Rows    []Row
	Message string
}

const (
	msgScheduleEmpty = "Your schedule is currently empty."
	defaultStatus    = "PENDING"
)

// BuildCards filters the catalog and renders one card per visible section.
// Membership is read from the schedule on every call.
func BuildCards(catalog []model.Section, schedule *Schedule, filter Filter) []Card {
	visible := filter.Apply(catalog)
	cards := make([]Card, 0, len(visible))
	for _, sec := range visible {
		cards = append(cards, buildCard(sec, schedule != nil && schedule.Has(sec.ID)))
	}
	return cards
}

func buildCard(sec model.Section, selected bool) Card {
	course := sec.CourseOrEmpty()

	credits := ""
	if course.Credits != 0 {
		credits = strconv.Itoa(course.Credits)
	}
	prereqs := ""
	if len(course.Prereqs) > 0 {
		prereqs = "Prerequisite(s): " + strings.Join(course.Prereqs, ", ")
	}

	card := Card{
		SectionID: sec.ID,
		Title:     fmt.Sprintf("%s — %s", course.Code, course.Title),
		Subject:   course.Subject,
		Meta:      fmt.Sprintf("%s cr • Instructor: %s", credits, course.Instructor),
		When:      MeetingsString(sec.Meetings),
		Term:      "Term: " + sec.TermDisplay(),
		Prereqs:   prereqs,
		Selected:  selected,
	}
	if selected {
		card.Button = fmt.Sprintf("Added • %s • CRN %s", sec.TermDisplay(), sec.CRN)
		card.Action = ActionRemove
	} else {
		card.Button = fmt.Sprintf("Add • %s • CRN %s", sec.TermDisplay(), sec.CRN)
		card.Action = ActionAdd
	}
	return card
}

// BuildScheduleView renders the selected sections in server order.
func BuildScheduleView(schedule *Schedule) ScheduleView {
	sections := schedule.Sections()
	view := ScheduleView{Rows: make([]Row, 0, len(sections))}
	if len(sections) == 0 {
		view.Message = msgScheduleEmpty
	}
	for _, sec := range sections {
		course := sec.CourseOrEmpty()
		when := MeetingsString(sec.Meetings)
		if sec.TermLabel != "" {
			when += " • " + sec.TermLabel
		}
		status := sec.Status
		if status == "" {
			status = defaultStatus
		}
		view.Rows = append(view.Rows, Row{
			SectionID:  sec.ID,
			Course:     fmt.Sprintf("%s — %s", course.Code, course.Title),
			CRN:        "CRN " + sec.CRN.String(),
			When:       when,
			Instructor: course.Instructor,
			Status:     status,
			Action:     ActionRemove,
		})
	}
	return view
}

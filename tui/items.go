package tui

import (
	"strings"

	"coursereg/registrar"
)

type cardItem struct {
	card registrar.Card
}

func (i cardItem) Title() string {
	title := i.card.Title
	if i.card.Subject != "" {
		title += "  [" + i.card.Subject + "]"
	}
	if i.card.Selected {
		title = "✓ " + title
	}
	return title
}

func (i cardItem) Description() string {
	return joinNonEmpty(" • ",
		"["+i.card.Button+"]",
		i.card.Meta,
		i.card.When,
		i.card.Term,
		i.card.Prereqs,
	)
}

func (i cardItem) FilterValue() string { return i.card.Title }

type rowItem struct {
	row registrar.Row
}

func (i rowItem) Title() string { return i.row.Course }

func (i rowItem) Description() string {
	return joinNonEmpty(" • ",
		i.row.CRN,
		i.row.When,
		i.row.Instructor,
		i.row.Status,
	)
}

func (i rowItem) FilterValue() string { return i.row.Course }

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

package cmd

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"coursereg/registrar"
)

func newTable(out io.Writer, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(header)
	t.SetStyle(table.StyleLight)
	return t
}

func renderCards(out io.Writer, cards []registrar.Card) {
	t := newTable(out, table.Row{"ID", "Course", "Credits / Instructor", "When", "Term", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 36},
		{Number: 4, WidthMax: 40},
	})
	for _, c := range cards {
		t.AppendRow(table.Row{
			c.SectionID,
			c.Title,
			c.Meta,
			c.When,
			strings.TrimPrefix(c.Term, "Term: "),
			c.Button,
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "Sections", len(cards)})
	t.Render()
}

func renderSchedule(out io.Writer, rows []registrar.Row) {
	t := newTable(out, table.Row{"ID", "Course", "CRN", "When", "Instructor", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 36},
	})
	for _, r := range rows {
		t.AppendRow(table.Row{r.SectionID, r.Course, strings.TrimPrefix(r.CRN, "CRN "), r.When, r.Instructor, r.Status})
	}
	t.Render()
}

func renderRoster(out io.Writer, rows []registrar.RosterRow) {
	rowConfigAutoMerge := table.RowConfig{AutoMerge: true}
	t := newTable(out, table.Row{"Student", "Course", "Term", "CRN", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
	})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Student, r.Course, r.Term, r.CRN, r.Status}, rowConfigAutoMerge)
	}
	t.Render()
}

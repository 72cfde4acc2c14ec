package render

import (
	"fmt"
	"io"

	"vplanctl/pkg/vplan"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table renders the plan for a terminal.
type Table struct {
	Accent lipgloss.Color
}

func (t Table) accent() lipgloss.Color {
	if t.Accent == "" {
		return lipgloss.Color("99")
	}
	return t.Accent
}

func (t Table) Render(w io.Writer, plan *vplan.Plan, opts Options) error {
	titleStyle := lipgloss.NewStyle().Foreground(t.accent()).Bold(true)
	changedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noticeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)

	if date := headerDate(plan, opts); date != "" {
		if _, err := fmt.Fprintln(w, titleStyle.Render(date)); err != nil {
			return err
		}
	}

	if len(plan.Lessons) == 0 {
		if _, err := fmt.Fprintln(w, notFoundMessage(plan.Class)); err != nil {
			return err
		}
	} else {
		cell := func(c vplan.Cell, fallback string) string {
			text := cellText(c, fallback)
			if c.Changed {
				return changedStyle.Render(text)
			}
			return text
		}

		tbl := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("238"))).
			Headers("Lesson", "Subject", "Teacher", "Room", "Info").
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return titleStyle.Padding(0, 1)
				}
				return lipgloss.NewStyle().Padding(0, 1)
			})

		for _, l := range plan.Lessons {
			tbl.Row(
				cell(l.Period, "---"),
				cell(l.Subject, "---"),
				cell(l.Teacher, "---"),
				cell(l.Room, "---"),
				cell(l.Info, ""),
			)
		}

		if _, err := fmt.Fprintln(w, tbl.Render()); err != nil {
			return err
		}
	}

	for _, n := range plan.Notices {
		if _, err := fmt.Fprintln(w, noticeStyle.Render(n)); err != nil {
			return err
		}
	}
	return nil
}

func (t Table) RenderError(w io.Writer, err error) error {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	_, werr := fmt.Fprintln(w, errorStyle.Render(err.Error()))
	return werr
}

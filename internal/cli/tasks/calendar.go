package tasks

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/taskflow/internal/calendar"
	"github.com/julianstephens/taskflow/internal/cli"
)

var (
	todayStyle   = lipgloss.NewStyle().Bold(true).Reverse(true)
	hasTaskStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

type CalendarCmd struct {
	Year  int `help:"Year to show (default: current)."`
	Month int `help:"Month to show, 1-12 (default: current)."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	today := ctx.Today()
	year, month := today.Year(), today.Month()
	if c.Year != 0 {
		year = c.Year
	}
	if c.Month != 0 {
		month = time.Month(c.Month)
	}
	if month < time.January || month > time.December {
		return fmt.Errorf("month must be between 1 and 12, got %d", c.Month)
	}

	first, last := calendar.Range(year, month)
	tasks, err := ctx.Store.GetTasksDueBetween(ctx.UserID(), first, last)
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}

	view, err := calendar.Month(year, month, today, tasks)
	if err != nil {
		return err
	}
	fmt.Print(renderMonth(view))
	return nil
}

func renderMonth(view calendar.MonthView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", view.Name, view.Year)
	b.WriteString("Mo Tu We Th Fr Sa Su\n")

	for _, week := range view.Weeks {
		cells := make([]string, 0, len(week))
		for _, d := range week {
			if !d.InMonth {
				cells = append(cells, "  ")
				continue
			}
			cell := fmt.Sprintf("%2d", d.Day)
			switch {
			case d.IsToday:
				cell = todayStyle.Render(cell)
			case len(d.Tasks) > 0:
				cell = hasTaskStyle.Render(cell)
			}
			cells = append(cells, cell)
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteString("\n")
	}
	prevYear, prevMonth := view.Prev()
	nextYear, nextMonth := view.Next()
	fmt.Fprintf(&b, "prev: --year %d --month %d  next: --year %d --month %d\n", prevYear, prevMonth, nextYear, nextMonth)

	if view.TaskCount() == 0 {
		b.WriteString("\nNo tasks due this month.\n")
		return b.String()
	}

	b.WriteString("\n")
	for _, week := range view.Weeks {
		for _, d := range week {
			for _, t := range d.Tasks {
				mark := "○"
				if t.Completed {
					mark = "✓"
				}
				fmt.Fprintf(&b, "  %s %s %s (%s)\n", d.Date.Format("Jan 02"), mark, t.Title, t.Priority.Label())
			}
		}
	}
	return b.String()
}

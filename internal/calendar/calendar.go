// Package calendar lays out a month as Monday-first weeks with the tasks due
// on each day.
package calendar

import (
	"fmt"
	"time"

	"github.com/julianstephens/taskflow/internal/models"
	"github.com/julianstephens/taskflow/internal/utils"
)

// Day is one cell of the month grid. Padding cells outside the month have
// InMonth false and a zero Date.
type Day struct {
	Day     int           `json:"day,omitempty"`
	Date    time.Time     `json:"date,omitempty"`
	InMonth bool          `json:"in_month"`
	IsToday bool          `json:"is_today"`
	Tasks   []models.Task `json:"tasks"`
}

type MonthView struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Name  string     `json:"name"`
	Weeks [][]Day    `json:"weeks"`
}

// Range returns the first and last dates of the month, for fetching tasks.
func Range(year int, month time.Month) (time.Time, time.Time) {
	return utils.MonthBounds(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// Month builds the grid for year/month. Tasks without a due date or due
// outside the month are ignored.
func Month(year int, month time.Month, today time.Time, tasks []models.Task) (MonthView, error) {
	if month < time.January || month > time.December {
		return MonthView{}, fmt.Errorf("invalid month %d", month)
	}
	if year < 1 || year > 9999 {
		return MonthView{}, fmt.Errorf("invalid year %d", year)
	}

	first, last := Range(year, month)
	today = utils.DateOf(today)

	byDay := make(map[int][]models.Task)
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		due := utils.DateOf(*t.DueDate)
		if due.Before(first) || due.After(last) {
			continue
		}
		byDay[due.Day()] = append(byDay[due.Day()], t)
	}

	view := MonthView{Year: year, Month: month, Name: month.String()}

	// Monday = 0
	lead := (int(first.Weekday()) + 6) % 7
	week := make([]Day, 0, 7)
	for i := 0; i < lead; i++ {
		week = append(week, Day{Tasks: []models.Task{}})
	}

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		dayTasks := byDay[d.Day()]
		if dayTasks == nil {
			dayTasks = []models.Task{}
		}
		week = append(week, Day{
			Day:     d.Day(),
			Date:    d,
			InMonth: true,
			IsToday: d.Equal(today),
			Tasks:   dayTasks,
		})
		if len(week) == 7 {
			view.Weeks = append(view.Weeks, week)
			week = make([]Day, 0, 7)
		}
	}

	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, Day{Tasks: []models.Task{}})
		}
		view.Weeks = append(view.Weeks, week)
	}

	return view, nil
}

func (v MonthView) Prev() (int, time.Month) {
	p := utils.AddMonthsClamped(time.Date(v.Year, v.Month, 1, 0, 0, 0, 0, time.UTC), -1)
	return p.Year(), p.Month()
}

func (v MonthView) Next() (int, time.Month) {
	n := utils.AddMonthsClamped(time.Date(v.Year, v.Month, 1, 0, 0, 0, 0, time.UTC), 1)
	return n.Year(), n.Month()
}

// TaskCount returns the number of tasks due in the month.
func (v MonthView) TaskCount() int {
	n := 0
	for _, w := range v.Weeks {
		for _, d := range w {
			n += len(d.Tasks)
		}
	}
	return n
}

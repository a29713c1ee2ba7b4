package tracker

import (
	"time"

	"github.com/julianstephens/taskflow/internal/constants"
	"github.com/julianstephens/taskflow/internal/models"
	"github.com/julianstephens/taskflow/internal/utils"
)

// Bucket is one period of a progress window. Which label fields are set
// depends on the window's frequency:
//   - daily:   Start == End, Label is the weekday initial ("M")
//   - weekly:  Week is the ISO week number of Start
//   - monthly: Label is the full month name, Abbrev its first three letters
type Bucket struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Label     string    `json:"label,omitempty"`
	Abbrev    string    `json:"abbrev,omitempty"`
	Week      int       `json:"week,omitempty"`
	Completed bool      `json:"completed"`
	Current   bool      `json:"current"`
}

// BuildWindow returns the fixed-size rolling window of recent periods for a
// habit of the given frequency, oldest bucket first: 7 days for daily habits,
// 4 seven-day spans for weekly habits and 3 calendar months for monthly ones.
// Unsupported frequencies get an empty window. Only completed logs mark a
// bucket as completed.
func BuildWindow(freq models.Frequency, logs []models.HabitLog, today time.Time) []Bucket {
	today = utils.DateOf(today)
	done := completedDates(logs)

	switch freq {
	case models.FrequencyDaily:
		return dailyWindow(done, today)
	case models.FrequencyWeekly:
		return weeklyWindow(done, today)
	case models.FrequencyMonthly:
		return monthlyWindow(done, today)
	default:
		return []Bucket{}
	}
}

func dailyWindow(done map[time.Time]bool, today time.Time) []Bucket {
	buckets := make([]Bucket, 0, constants.DailyWindowDays)
	for i := constants.DailyWindowDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		buckets = append(buckets, Bucket{
			Start:     day,
			End:       day,
			Label:     day.Weekday().String()[:1],
			Completed: done[day],
			Current:   day.Equal(today),
		})
	}
	return buckets
}

func weeklyWindow(done map[time.Time]bool, today time.Time) []Bucket {
	buckets := make([]Bucket, 0, constants.WeeklyWindowWeeks)
	for i := constants.WeeklyWindowWeeks - 1; i >= 0; i-- {
		start := today.AddDate(0, 0, -7*i)
		end := start.AddDate(0, 0, 6)
		_, week := start.ISOWeek()
		buckets = append(buckets, Bucket{
			Start:     start,
			End:       end,
			Week:      week,
			Completed: anyInRange(done, start, end),
			Current:   inRange(today, start, end),
		})
	}
	return buckets
}

func monthlyWindow(done map[time.Time]bool, today time.Time) []Bucket {
	buckets := make([]Bucket, 0, constants.MonthlyWindowMonths)
	for i := constants.MonthlyWindowMonths - 1; i >= 0; i-- {
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		start, end := utils.MonthBounds(utils.AddMonthsClamped(first, -i))
		name := start.Month().String()
		buckets = append(buckets, Bucket{
			Start:     start,
			End:       end,
			Label:     name,
			Abbrev:    name[:3],
			Completed: anyInRange(done, start, end),
			Current:   start.Year() == today.Year() && start.Month() == today.Month(),
		})
	}
	return buckets
}

func completedDates(logs []models.HabitLog) map[time.Time]bool {
	done := make(map[time.Time]bool, len(logs))
	for _, log := range logs {
		if log.Completed {
			done[utils.DateOf(log.Date)] = true
		}
	}
	return done
}

func anyInRange(done map[time.Time]bool, start, end time.Time) bool {
	for day := range done {
		if inRange(day, start, end) {
			return true
		}
	}
	return false
}

func inRange(day, start, end time.Time) bool {
	return !day.Before(start) && !day.After(end)
}

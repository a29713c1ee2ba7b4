package tracker

import (
	"time"

	"github.com/julianstephens/taskflow/internal/models"
	"github.com/julianstephens/taskflow/internal/utils"
)

// ExpectedPrior returns the date a completion must fall on to extend a streak
// anchored at anchor. ok is false for unsupported frequencies.
func ExpectedPrior(anchor time.Time, freq models.Frequency) (expected time.Time, ok bool) {
	switch freq {
	case models.FrequencyDaily:
		return anchor.AddDate(0, 0, -1), true
	case models.FrequencyWeekly:
		return anchor.AddDate(0, 0, -7), true
	case models.FrequencyMonthly:
		return utils.AddMonthsClamped(anchor, -1), true
	default:
		return time.Time{}, false
	}
}

// ComputeStreak returns the number of consecutive expected-interval
// completions anchored at the most recent one.
//
// logs must hold completed logs only, ordered by date descending. The walk is
// greedy: the first log that does not fall exactly on the expected prior date
// ends the streak, regardless of older history. Unsupported frequencies yield 0.
func ComputeStreak(logs []models.HabitLog, freq models.Frequency) int {
	if len(logs) == 0 {
		return 0
	}
	if !freq.Supported() {
		return 0
	}

	streak := 1
	anchor := utils.DateOf(logs[0].Date)
	for _, log := range logs[1:] {
		curr := utils.DateOf(log.Date)
		expected, _ := ExpectedPrior(anchor, freq)
		if !curr.Equal(expected) {
			break
		}
		streak++
		anchor = curr
	}

	return streak
}

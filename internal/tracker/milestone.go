package tracker

import "fmt"

// Milestone describes an achievement awarded when a streak reaches an exact length.
type Milestone struct {
	Streak int
	Title  string
	Badge  string
	Days   string
}

// Milestones are matched by exact equality on the freshly computed streak.
// A streak that drops and climbs back through a threshold awards it again.
var Milestones = []Milestone{
	{Streak: 7, Title: "Week Warrior!", Badge: "🔥", Days: "7-day"},
	{Streak: 30, Title: "Month Master!", Badge: "🏆", Days: "30-day"},
}

// MilestoneFor returns the milestone whose streak length equals streak.
func MilestoneFor(streak int) (Milestone, bool) {
	for _, m := range Milestones {
		if m.Streak == streak {
			return m, true
		}
	}
	return Milestone{}, false
}

// Description renders the achievement description for a habit title.
func (m Milestone) Description(habitTitle string) string {
	return fmt.Sprintf("Maintained a %s streak for '%s'", m.Days, habitTitle)
}

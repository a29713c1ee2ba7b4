package tracker

import "testing"

func TestMilestoneFor(t *testing.T) {
	tests := []struct {
		streak int
		title  string
		badge  string
		ok     bool
	}{
		{0, "", "", false},
		{6, "", "", false},
		{7, "Week Warrior!", "🔥", true},
		{8, "", "", false},
		{14, "", "", false},
		{30, "Month Master!", "🏆", true},
		{31, "", "", false},
	}

	for _, tt := range tests {
		m, ok := MilestoneFor(tt.streak)
		if ok != tt.ok {
			t.Errorf("MilestoneFor(%d) ok = %v, want %v", tt.streak, ok, tt.ok)
			continue
		}
		if m.Title != tt.title || m.Badge != tt.badge {
			t.Errorf("MilestoneFor(%d) = %q %q, want %q %q", tt.streak, m.Title, m.Badge, tt.title, tt.badge)
		}
	}
}

func TestMilestoneDescription(t *testing.T) {
	m, _ := MilestoneFor(7)
	want := "Maintained a 7-day streak for 'Meditate'"
	if got := m.Description("Meditate"); got != want {
		t.Errorf("Description() = %q, want %q", got, want)
	}
}

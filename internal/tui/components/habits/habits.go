package habits

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/taskflow/internal/tracker"
)

type AddHabitMsg struct{}

type CompleteHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID string
}

var (
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	missedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	currentStyle = lipgloss.NewStyle().Underline(true)
)

// RenderWindow draws a progress window as one cell per bucket, oldest first.
func RenderWindow(buckets []tracker.Bucket) string {
	if len(buckets) == 0 {
		return missedStyle.Render("no progress tracking")
	}

	cells := make([]string, 0, len(buckets))
	for _, b := range buckets {
		label := b.Label
		switch {
		case b.Abbrev != "":
			label = b.Abbrev
		case b.Week != 0:
			label = fmt.Sprintf("W%d", b.Week)
		}

		style := missedStyle
		mark := "○"
		if b.Completed {
			style = doneStyle
			mark = "●"
		}
		if b.Current {
			style = style.Inherit(currentStyle)
		}
		cells = append(cells, style.Render(label+" "+mark))
	}
	return strings.Join(cells, " ")
}

type Item struct {
	View tracker.HabitView
}

func (i Item) Title() string {
	mark := "○ "
	if i.View.CompletedToday {
		mark = "✓ "
	}
	title := mark + i.View.Habit.Title
	if i.View.Streak > 0 {
		title += fmt.Sprintf("  🔥 %d", i.View.Streak)
	}
	return title
}

func (i Item) Description() string {
	return i.View.Habit.Frequency.Label() + " | " + RenderWindow(i.View.Progress)
}

func (i Item) FilterValue() string { return i.View.Habit.Title }

type KeyMap struct {
	Add      key.Binding
	Complete key.Binding
	Delete   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "complete"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(views []tracker.HabitView, width, height int) Model {
	l := list.New(items(views), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Complete, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Complete, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func items(views []tracker.HabitView) []list.Item {
	out := make([]list.Item, len(views))
	for i, v := range views {
		out[i] = Item{View: v}
	}
	return out
}

func (m *Model) SetHabits(views []tracker.HabitView) {
	m.list.SetItems(items(views))
}

// Selected returns the highlighted habit, if any.
func (m Model) Selected() (tracker.HabitView, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.View, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Complete):
			if v, ok := m.Selected(); ok {
				return m, func() tea.Msg { return CompleteHabitMsg{ID: v.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if v, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: v.Habit.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/taskflow/internal/constants"
	"github.com/julianstephens/taskflow/internal/logger"
	"github.com/julianstephens/taskflow/internal/models"
	"github.com/julianstephens/taskflow/internal/storage"
	"github.com/julianstephens/taskflow/internal/tracker"
	"github.com/julianstephens/taskflow/internal/tui/components/habits"
	"github.com/julianstephens/taskflow/internal/tui/components/tasklist"
	"github.com/julianstephens/taskflow/internal/utils"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateTasks
	StateAddHabit
	StateConfirmDelete
)

// tabCount is the number of states reachable with tab.
const tabCount = 2

const flashDuration = 4 * time.Second

type clearFlashMsg struct{}

type HabitFormModel struct {
	Title     string
	Goal      string
	Frequency models.Frequency
	Reminder  string
}

type Model struct {
	store           storage.Provider
	tracker         *tracker.Service
	userID          string
	now             func() time.Time
	state           SessionState
	keys            KeyMap
	help            help.Model
	habitsModel     habits.Model
	taskList        tasklist.Model
	summary         tracker.Summary
	form            *huh.Form
	habitForm       *HabitFormModel
	habitToDeleteID string
	flash           string
	quitting        bool
	width           int
	height          int
}

func NewModel(store storage.Provider, svc *tracker.Service) Model {
	m := Model{
		store:       store,
		tracker:     svc,
		userID:      constants.DefaultUserID,
		now:         time.Now,
		state:       StateHabits,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		habitsModel: habits.New(nil, 0, 0),
		taskList:    tasklist.New(nil, time.Time{}, 0, 0),
	}
	m.refresh()
	return m
}

func (m Model) today() time.Time {
	return utils.DateOf(m.now())
}

// refresh reloads habits and tasks from the store.
func (m *Model) refresh() {
	today := m.today()

	views, err := m.tracker.HabitViews(m.userID, today)
	if err != nil {
		logger.Error("Failed to load habits", "error", err)
		m.flash = "Failed to load habits: " + err.Error()
		views = []tracker.HabitView{}
	}
	m.habitsModel.SetHabits(views)
	m.summary = tracker.Summarize(views)

	tasks, err := m.store.GetAllTasks(m.userID, false)
	if err != nil {
		logger.Error("Failed to load tasks", "error", err)
		m.flash = "Failed to load tasks: " + err.Error()
		tasks = []models.Task{}
	}
	m.taskList.SetTasks(tasks, today)
}

func (m *Model) setFlash(msg string) tea.Cmd {
	m.flash = msg
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return clearFlashMsg{} })
}

// completeHabit records today's completion of a habit and reports the new
// streak, or the achievement it unlocked.
func (m *Model) completeHabit(id string) tea.Cmd {
	result, err := m.tracker.RecordCompletion(id, m.today())
	if err != nil {
		logger.Error("Failed to complete habit", "habit", id, "error", err)
		return m.setFlash("Failed to complete habit: " + err.Error())
	}
	m.refresh()

	if a := result.Achievement; a != nil {
		return m.setFlash(fmt.Sprintf("%s Achievement unlocked: %s %s", a.Badge, a.Title, a.Description))
	}
	if !result.Created {
		return m.setFlash(fmt.Sprintf("Logged again today (x%d), streak %d", result.Log.CompletionCount, result.Streak))
	}
	return m.setFlash(fmt.Sprintf("Nice! Streak is now %d", result.Streak))
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case StateHabits:
		k := habits.DefaultKeyMap()
		actions = []key.Binding{k.Add, k.Complete, k.Delete}
	case StateTasks:
		k := tasklist.DefaultKeyMap()
		actions = []key.Binding{k.Toggle, k.Delete}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/taskflow/internal/logger"
	"github.com/julianstephens/taskflow/internal/models"
	"github.com/julianstephens/taskflow/internal/tui/components/habits"
	"github.com/julianstephens/taskflow/internal/tui/components/tasklist"
	"github.com/julianstephens/taskflow/internal/utils"
	"github.com/julianstephens/taskflow/internal/validation"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		// tabs, summary, flash and help lines
		listHeight := msg.Height - v - 4
		m.habitsModel.SetSize(msg.Width-h, listHeight)
		m.taskList.SetSize(msg.Width-h, listHeight)
		return m, nil
	case clearFlashMsg:
		m.flash = ""
		return m, nil
	}

	switch m.state {
	case StateAddHabit:
		return m.updateAddHabit(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case habits.AddHabitMsg:
		m.habitForm = &HabitFormModel{Frequency: models.FrequencyDaily}
		m.form = NewHabitForm(m.habitForm)
		m.state = StateAddHabit
		return m, m.form.Init()

	case habits.CompleteHabitMsg:
		cmd := m.completeHabit(msg.ID)
		return m, cmd

	case habits.DeleteHabitMsg:
		m.habitToDeleteID = msg.ID
		m.state = StateConfirmDelete
		return m, nil

	case tasklist.ToggleTaskMsg:
		cmd := m.toggleTask(msg.ID)
		return m, cmd

	case tasklist.DeleteTaskMsg:
		var cmd tea.Cmd
		if err := m.store.DeleteTask(msg.ID); err != nil {
			logger.Error("Failed to delete task", "task", msg.ID, "error", err)
			cmd = m.setFlash("Failed to delete task: " + err.Error())
		}
		m.refresh()
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateHabits:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	case StateTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	}
	return m, cmd
}

func (m *Model) toggleTask(id string) tea.Cmd {
	task, err := m.store.GetTask(id)
	if err == nil {
		task.SetCompleted(!task.Completed, m.now())
		err = m.store.UpdateTask(task)
	}
	if err != nil {
		logger.Error("Failed to toggle task", "task", id, "error", err)
		return m.setFlash("Failed to update task: " + err.Error())
	}
	m.refresh()
	if task.Completed {
		return m.setFlash("Completed: " + task.Title)
	}
	return nil
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		var cmd tea.Cmd
		if err := m.store.DeleteHabit(m.habitToDeleteID); err != nil {
			logger.Error("Failed to delete habit", "habit", m.habitToDeleteID, "error", err)
			cmd = m.setFlash("Failed to delete habit: " + err.Error())
		}
		m.habitToDeleteID = ""
		m.state = StateHabits
		m.refresh()
		return m, cmd
	case key.Matches(keyMsg, m.keys.Cancel):
		m.habitToDeleteID = ""
		m.state = StateHabits
	}
	return m, nil
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = StateHabits
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		in := validation.HabitInput{
			Title:           m.habitForm.Title,
			GoalDescription: m.habitForm.Goal,
			Frequency:       string(m.habitForm.Frequency),
			ReminderTime:    m.habitForm.Reminder,
		}
		if profile, err := m.store.GetProfile(m.userID); err == nil {
			in = in.WithDefaultReminder(profile)
		}
		habit := models.Habit{
			ID:        uuid.New().String(),
			UserID:    m.userID,
			Active:    true,
			CreatedAt: m.now(),
		}
		err := in.Apply(&habit)
		if err == nil {
			err = m.store.AddHabit(habit)
		}
		if err != nil {
			logger.Error("Failed to add habit", "error", err)
			// Stay on the form so the user can fix the input or cancel with esc
			m.form.State = huh.StateNormal
			return m, tea.Batch(cmd, m.setFlash(err.Error()))
		}
		m.state = StateHabits
		m.refresh()
		return m, tea.Batch(cmd, m.setFlash("Added habit: "+habit.Title))
	case huh.StateAborted:
		m.state = StateHabits
	}
	return m, cmd
}

// NewHabitForm builds the add-habit form bound to fm.
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	options := make([]huh.Option[models.Frequency], 0, len(models.Frequencies))
	for _, f := range models.Frequencies {
		options = append(options, huh.NewOption(f.Label(), f))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title),
			huh.NewInput().
				Title("Goal").
				Value(&fm.Goal),
			huh.NewSelect[models.Frequency]().
				Title("Frequency").
				Options(options...).
				Value(&fm.Frequency),
			huh.NewInput().
				Title("Reminder time (HH:MM, optional)").
				Value(&fm.Reminder).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					_, err := utils.ParseTime(s)
					return err
				}),
		),
	)
}

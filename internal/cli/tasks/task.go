package tasks

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/julianstephens/taskflow/internal/cli"
	"github.com/julianstephens/taskflow/internal/models"
	"github.com/julianstephens/taskflow/internal/utils"
	"github.com/julianstephens/taskflow/internal/validation"
)

type TaskCmd struct {
	Add    TaskAddCmd    `cmd:"" help:"Add a new task."`
	List   TaskListCmd   `cmd:"" help:"List tasks."`
	Edit   TaskEditCmd   `cmd:"" help:"Edit an existing task."`
	Done   TaskDoneCmd   `cmd:"" help:"Toggle the completion of a task."`
	Delete TaskDeleteCmd `cmd:"" help:"Delete a task."`
}

type TaskAddCmd struct {
	Title       string `arg:"" help:"Task title."`
	Description string `short:"m" help:"Task description."`
	Due         string `short:"d" help:"Due date (YYYY-MM-DD)."`
	At          string `short:"t" help:"Due time (HH:MM)."`
	Priority    string `short:"p" help:"Priority: 1 high, 2 medium, 3 low." default:"3"`
	Remind      bool   `help:"Set a reminder for the task."`
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	in := validation.TaskInput{
		Title:       c.Title,
		Description: c.Description,
		DueDate:     c.Due,
		DueTime:     c.At,
		Priority:    c.Priority,
		ReminderSet: c.Remind,
	}

	now := ctx.Now()
	task := models.Task{
		ID:        uuid.New().String(),
		UserID:    ctx.UserID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := in.Apply(&task); err != nil {
		return err
	}
	if err := ctx.Store.AddTask(task); err != nil {
		return err
	}

	fmt.Printf("Added task: %s (%s)\n", task.Title, task.Priority.Label())
	fmt.Printf("  ID: %s\n", task.ID)
	return nil
}

type TaskListCmd struct {
	All     bool `help:"Include completed tasks."`
	ShowIDs bool `help:"Show task IDs." name:"show-ids"`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	tasks, err := ctx.Store.GetAllTasks(ctx.UserID(), c.All)
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	today := ctx.Today()
	fmt.Println("Tasks:")
	for _, task := range tasks {
		mark := "○"
		if task.Completed {
			mark = "✓"
		}
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", task.ID)
		}
		fmt.Printf("  %s %s%s - %s\n", mark, task.Title, idStr, task.Priority.Label())

		if task.DueDate != nil {
			due := utils.FormatDate(*task.DueDate)
			if task.DueTime != nil {
				due += " " + *task.DueTime
			}
			switch {
			case task.IsOverdue(today):
				fmt.Printf("      Due: %s (overdue)\n", due)
			case task.Completed:
				fmt.Printf("      Due: %s\n", due)
			default:
				fmt.Printf("      Due: %s (%d%% of time elapsed)\n", due, task.ProgressPercentage(today))
			}
		}
	}
	return nil
}

type TaskEditCmd struct {
	ID          string  `arg:"" help:"Task ID."`
	Title       *string `help:"New title."`
	Description *string `short:"m" help:"New description."`
	Due         *string `short:"d" help:"New due date (YYYY-MM-DD), empty to clear."`
	At          *string `short:"t" help:"New due time (HH:MM), empty to clear."`
	Priority    *string `short:"p" help:"New priority: 1 high, 2 medium, 3 low."`
	Remind      *bool   `help:"Set or clear the reminder."`
}

// inputFrom returns the editable fields of t as input.
func inputFrom(t models.Task) validation.TaskInput {
	in := validation.TaskInput{
		Title:       t.Title,
		Description: t.Description,
		Priority:    strconv.Itoa(int(t.Priority)),
		ReminderSet: t.ReminderSet,
	}
	if t.DueDate != nil {
		in.DueDate = utils.FormatDate(*t.DueDate)
	}
	if t.DueTime != nil {
		in.DueTime = *t.DueTime
	}
	return in
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task: %w", err)
	}

	in := inputFrom(task)
	if c.Title != nil {
		in.Title = *c.Title
	}
	if c.Description != nil {
		in.Description = *c.Description
	}
	if c.Due != nil {
		in.DueDate = *c.Due
	}
	if c.At != nil {
		in.DueTime = *c.At
	}
	if c.Priority != nil {
		in.Priority = *c.Priority
	}
	if c.Remind != nil {
		in.ReminderSet = *c.Remind
	}

	if err := in.Apply(&task); err != nil {
		return err
	}
	if c.Due != nil || c.At != nil {
		task.ReminderSent = false
	}
	task.UpdatedAt = ctx.Now()
	if err := ctx.Store.UpdateTask(task); err != nil {
		return err
	}

	fmt.Printf("Updated task: %s\n", task.Title)
	return nil
}

type TaskDoneCmd struct {
	ID string `arg:"" help:"Task ID."`
}

func (c *TaskDoneCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task: %w", err)
	}

	task.SetCompleted(!task.Completed, ctx.Now())
	if err := ctx.Store.UpdateTask(task); err != nil {
		return err
	}

	if task.Completed {
		fmt.Printf("✓ Completed: %s\n", task.Title)
	} else {
		fmt.Printf("○ Reopened: %s\n", task.Title)
	}
	return nil
}

type TaskDeleteCmd struct {
	ID  string `arg:"" help:"Task ID."`
	Yes bool   `short:"y" help:"Skip confirmation."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task: %w", err)
	}

	ok, err := cli.Confirm(fmt.Sprintf("Delete task %q?", task.Title), c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Cancelled.")
		return nil
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.DeleteTask(task.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted task: %s\n", task.Title)
	return nil
}

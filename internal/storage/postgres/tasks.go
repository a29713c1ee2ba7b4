package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/taskflow/internal/models"
	"github.com/julianstephens/taskflow/internal/utils"
)

const taskColumns = `id, user_id, title, description, due_date, due_time, is_completed, priority,
	reminder_set, reminder_sent, completed_at, created_at, updated_at`

func scanTask(row scanner) (models.Task, error) {
	var t models.Task
	var priority int
	var dueDate, dueTime, completedAt sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &dueDate, &dueTime, &t.Completed, &priority,
		&t.ReminderSet, &t.ReminderSent, &completedAt, &createdAt, &updatedAt)
	if err != nil {
		return models.Task{}, err
	}
	t.Priority = models.Priority(priority)
	t.DueTime = stringPtr(dueTime)

	if dueDate.Valid {
		d, err := utils.ParseDate(dueDate.String)
		if err != nil {
			return models.Task{}, err
		}
		t.DueDate = &d
	}
	if t.CompletedAt, err = parseNullTime("completed_at", completedAt); err != nil {
		return models.Task{}, err
	}
	if t.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.Task{}, err
	}
	if t.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

func nullDate(d *time.Time) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: utils.FormatDate(*d), Valid: true}
}

func (s *Store) AddTask(t models.Task) error {
	_, err := s.db.Exec(`
		INSERT INTO tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		t.ID, t.UserID, t.Title, t.Description, nullDate(t.DueDate), nullString(t.DueTime), t.Completed, int(t.Priority),
		t.ReminderSet, t.ReminderSent, nullTime(t.CompletedAt), formatTime(t.CreatedAt), formatTime(t.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}
	return nil
}

func (s *Store) GetTask(id string) (models.Task, error) {
	t, err := scanTask(s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		return models.Task{}, notFound(err)
	}
	return t, nil
}

func (s *Store) queryTasks(query string, args ...any) ([]models.Task, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetAllTasks lists the user's tasks, incomplete first, then by due date
// (undated last) and priority.
func (s *Store) GetAllTasks(userID string, includeCompleted bool) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1`
	if !includeCompleted {
		query += ` AND NOT is_completed`
	}
	query += ` ORDER BY is_completed, due_date IS NULL, due_date, priority, created_at`
	return s.queryTasks(query, userID)
}

func (s *Store) GetTasksDueBetween(userID string, start, end time.Time) ([]models.Task, error) {
	return s.queryTasks(`
		SELECT `+taskColumns+` FROM tasks
		WHERE user_id = $1 AND due_date IS NOT NULL AND due_date >= $2 AND due_date <= $3
		ORDER BY due_date, due_time IS NULL, due_time, priority`,
		userID, utils.FormatDate(start), utils.FormatDate(end))
}

func (s *Store) UpdateTask(t models.Task) error {
	res, err := s.db.Exec(`
		UPDATE tasks SET title = $1, description = $2, due_date = $3, due_time = $4, is_completed = $5, priority = $6,
			reminder_set = $7, reminder_sent = $8, completed_at = $9, updated_at = $10
		WHERE id = $11`,
		t.Title, t.Description, nullDate(t.DueDate), nullString(t.DueTime), t.Completed, int(t.Priority),
		t.ReminderSet, t.ReminderSent, nullTime(t.CompletedAt), formatTime(t.UpdatedAt), t.ID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return requireAffected(res)
}

func (s *Store) DeleteTask(id string) error {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireAffected(res)
}

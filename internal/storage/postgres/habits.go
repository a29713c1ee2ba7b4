package postgres

import (
	"database/sql"
	"fmt"

	"github.com/julianstephens/taskflow/internal/models"
)

const habitColumns = `id, user_id, title, goal_description, frequency, reminder_time, is_active, created_at`

func scanHabit(row scanner) (models.Habit, error) {
	var h models.Habit
	var frequency, createdAt string
	var reminder sql.NullString

	if err := row.Scan(&h.ID, &h.UserID, &h.Title, &h.GoalDescription, &frequency, &reminder, &h.Active, &createdAt); err != nil {
		return models.Habit{}, err
	}
	h.Frequency = models.Frequency(frequency)
	h.ReminderTime = stringPtr(reminder)

	var err error
	h.CreatedAt, err = parseTime("created_at", createdAt)
	if err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

func (s *Store) AddHabit(h models.Habit) error {
	_, err := s.db.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		h.ID, h.UserID, h.Title, h.GoalDescription, string(h.Frequency), nullString(h.ReminderTime), h.Active, formatTime(h.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}
	return nil
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = $1`, id)
	h, err := scanHabit(row)
	if err != nil {
		return models.Habit{}, notFound(err)
	}
	return h, nil
}

func (s *Store) GetAllHabits(userID string, includeInactive bool) ([]models.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE user_id = $1`
	if !includeInactive {
		query += ` AND is_active`
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) UpdateHabit(h models.Habit) error {
	res, err := s.db.Exec(`
		UPDATE habits SET title = $1, goal_description = $2, frequency = $3, reminder_time = $4, is_active = $5
		WHERE id = $6`,
		h.Title, h.GoalDescription, string(h.Frequency), nullString(h.ReminderTime), h.Active, h.ID)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	return requireAffected(res)
}

func (s *Store) DeleteHabit(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM habit_logs WHERE habit_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete habit logs: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM notifications WHERE habit_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete habit notifications: %w", err)
	}
	if _, err := tx.Exec(`UPDATE achievements SET habit_id = NULL WHERE habit_id = $1`, id); err != nil {
		return fmt.Errorf("failed to detach achievements: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}

	return tx.Commit()
}

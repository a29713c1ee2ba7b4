package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/taskflow/internal/models"
	"github.com/julianstephens/taskflow/internal/utils"
)

const logColumns = `id, habit_id, log_date, is_completed, completion_count, completed_at, notes`

func scanLog(row scanner) (models.HabitLog, error) {
	var l models.HabitLog
	var logDate string
	var completedAt sql.NullString

	if err := row.Scan(&l.ID, &l.HabitID, &logDate, &l.Completed, &l.CompletionCount, &completedAt, &l.Note); err != nil {
		return models.HabitLog{}, err
	}

	var err error
	l.Date, err = utils.ParseDate(logDate)
	if err != nil {
		return models.HabitLog{}, err
	}
	l.CompletedAt, err = parseNullTime("completed_at", completedAt)
	if err != nil {
		return models.HabitLog{}, err
	}
	return l, nil
}

func (s *Store) GetOrCreateLog(log models.HabitLog) (models.HabitLog, bool, error) {
	res, err := s.db.Exec(`
		INSERT INTO habit_logs (`+logColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (habit_id, log_date) DO NOTHING`,
		log.ID, log.HabitID, utils.FormatDate(log.Date), log.Completed, log.CompletionCount, nullTime(log.CompletedAt), log.Note)
	if err != nil {
		return models.HabitLog{}, false, fmt.Errorf("failed to insert habit log: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return models.HabitLog{}, false, err
	}

	stored, err := s.GetLog(log.HabitID, log.Date)
	if err != nil {
		return models.HabitLog{}, false, err
	}
	return stored, n == 1, nil
}

func (s *Store) IncrementLog(id string, completedAt time.Time) (models.HabitLog, error) {
	row := s.db.QueryRow(`
		UPDATE habit_logs
		SET completion_count = completion_count + 1, is_completed = TRUE, completed_at = $1
		WHERE id = $2
		RETURNING `+logColumns,
		formatTime(completedAt), id)

	l, err := scanLog(row)
	if err != nil {
		return models.HabitLog{}, notFound(err)
	}
	return l, nil
}

func (s *Store) GetLog(habitID string, date time.Time) (models.HabitLog, error) {
	row := s.db.QueryRow(`SELECT `+logColumns+` FROM habit_logs WHERE habit_id = $1 AND log_date = $2`,
		habitID, utils.FormatDate(date))
	l, err := scanLog(row)
	if err != nil {
		return models.HabitLog{}, notFound(err)
	}
	return l, nil
}

func (s *Store) ListCompletedLogs(habitID string) ([]models.HabitLog, error) {
	rows, err := s.db.Query(`
		SELECT `+logColumns+` FROM habit_logs
		WHERE habit_id = $1 AND is_completed
		ORDER BY log_date DESC`, habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.HabitLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

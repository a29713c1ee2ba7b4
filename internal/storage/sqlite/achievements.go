package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/julianstephens/taskflow/internal/models"
)

func (s *Store) AddAchievement(a models.Achievement) error {
	_, err := s.db.Exec(`
		INSERT INTO achievements (id, user_id, title, description, badge, earned_at, habit_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.Title, a.Description, a.Badge, formatTime(a.EarnedAt), nullString(a.HabitID))
	if err != nil {
		return fmt.Errorf("failed to add achievement: %w", err)
	}
	return nil
}

func (s *Store) GetAchievements(userID string) ([]models.Achievement, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, title, description, badge, earned_at, habit_id
		FROM achievements WHERE user_id = ?
		ORDER BY earned_at DESC, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var achievements []models.Achievement
	for rows.Next() {
		var a models.Achievement
		var earnedAt string
		var habitID sql.NullString
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.Description, &a.Badge, &earnedAt, &habitID); err != nil {
			return nil, err
		}
		if a.EarnedAt, err = parseTime("earned_at", earnedAt); err != nil {
			return nil, err
		}
		a.HabitID = stringPtr(habitID)
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

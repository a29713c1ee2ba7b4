package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/julianstephens/taskflow/internal/models"
)

func (s *Store) AddNotification(n models.Notification) error {
	_, err := s.db.Exec(`
		INSERT INTO notifications (id, user_id, title, message, notification_type, task_id, habit_id, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, n.Title, n.Message, string(n.Type), nullString(n.TaskID), nullString(n.HabitID), n.Read, formatTime(n.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to add notification: %w", err)
	}
	return nil
}

func (s *Store) GetNotifications(userID string, unreadOnly bool) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, title, message, notification_type, task_id, habit_id, is_read, created_at
		FROM notifications WHERE user_id = ?`
	if unreadOnly {
		query += ` AND is_read = 0`
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		var kind, createdAt string
		var taskID, habitID sql.NullString
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &kind, &taskID, &habitID, &n.Read, &createdAt); err != nil {
			return nil, err
		}
		n.Type = models.NotificationType(kind)
		n.TaskID = stringPtr(taskID)
		n.HabitID = stringPtr(habitID)
		if n.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (s *Store) MarkNotificationRead(id string) error {
	res, err := s.db.Exec(`UPDATE notifications SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return requireAffected(res)
}

package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// SessionRepository persists the chat-to-user binding used to re-establish a
// session after a restart. The row is a convenience pointer for re-fetching
// the user, not a source of truth.
type SessionRepository struct{}

// NewSessionRepository creates a new repository instance
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{}
}

// Save binds a chat to a user, replacing any existing binding
func (r *SessionRepository) Save(chatID int64, userID string) error {
	var query string
	if DB.DriverName() == "postgres" {
		query = `INSERT INTO sessions (chat_id, user_id) VALUES ($1, $2)
			ON CONFLICT (chat_id) DO UPDATE SET user_id = EXCLUDED.user_id, created_at = NOW()`
	} else {
		query = "INSERT OR REPLACE INTO sessions (chat_id, user_id) VALUES (?, ?)"
	}
	if _, err := DB.Exec(query, chatID, userID); err != nil {
		return fmt.Errorf("failed to save session: %v", err)
	}
	return nil
}

// Load returns the user bound to the chat, or an empty string if none
func (r *SessionRepository) Load(chatID int64) (string, error) {
	var userID string
	query := rebind("SELECT user_id FROM sessions WHERE chat_id = ?")
	err := DB.Get(&userID, query, chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session: %v", err)
	}
	return userID, nil
}

// Clear removes the chat's session binding
func (r *SessionRepository) Clear(chatID int64) error {
	query := rebind("DELETE FROM sessions WHERE chat_id = ?")
	if _, err := DB.Exec(query, chatID); err != nil {
		return fmt.Errorf("failed to clear session: %v", err)
	}
	return nil
}

// ListAll returns every persisted chat/user binding. Used by the reminder
// scheduler to find users to notify.
func (r *SessionRepository) ListAll() (map[int64]string, error) {
	rows, err := DB.Query("SELECT chat_id, user_id FROM sessions")
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %v", err)
	}
	defer rows.Close()

	sessions := make(map[int64]string)
	for rows.Next() {
		var chatID int64
		var userID string
		if err := rows.Scan(&chatID, &userID); err != nil {
			return nil, fmt.Errorf("failed to scan session: %v", err)
		}
		sessions[chatID] = userID
	}

	return sessions, rows.Err()
}

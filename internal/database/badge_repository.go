package database

import (
	"fmt"
	"time"

	"github.com/alhaannn/wordwings-prototype/pkg/models"
)

// BadgeRepository handles database operations for unlocked badges
type BadgeRepository struct{}

// NewBadgeRepository creates a new repository instance
func NewBadgeRepository() *BadgeRepository {
	return &BadgeRepository{}
}

// InsertUnlocked records a badge the user has earned
func (r *BadgeRepository) InsertUnlocked(userID, badgeID string, earnedAt time.Time) error {
	query := rebind("INSERT INTO unlocked_badges (user_id, badge_id, earned_at) VALUES (?, ?, ?)")
	if _, err := DB.Exec(query, userID, badgeID, earnedAt); err != nil {
		return fmt.Errorf("failed to insert unlocked badge: %v", err)
	}
	return nil
}

// ListUnlocked returns all badges the user has earned
func (r *BadgeRepository) ListUnlocked(userID string) ([]models.UnlockedBadge, error) {
	var badges []models.UnlockedBadge
	query := rebind("SELECT id, user_id, badge_id, earned_at FROM unlocked_badges WHERE user_id = ? ORDER BY earned_at")
	if err := DB.Select(&badges, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list unlocked badges: %v", err)
	}
	return badges, nil
}

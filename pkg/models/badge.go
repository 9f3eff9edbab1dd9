package models

import "time"

// BadgeKind identifies the achievement condition of a badge
type BadgeKind string

const (
	// BadgeFirstWord is unlocked after mastering the first word
	BadgeFirstWord BadgeKind = "first-word"
	// BadgeTenWords is unlocked after mastering ten distinct words
	BadgeTenWords BadgeKind = "ten-words"
	// BadgeFirstStory is unlocked after generating the first story
	BadgeFirstStory BadgeKind = "first-story"
)

// Badge is a static achievement definition. The unlock condition is a pure
// function of the badge kind and a state snapshot (see catalog.EvalBadge).
type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Kind        BadgeKind `json:"kind"`
}

// UnlockedBadge records a badge a user has earned. The set of rows per user
// only grows; badges are never revoked.
type UnlockedBadge struct {
	ID       int64     `json:"id" db:"id"`
	UserID   string    `json:"user_id" db:"user_id"`
	BadgeID  string    `json:"badge_id" db:"badge_id"`
	EarnedAt time.Time `json:"earned_at" db:"earned_at"`
}

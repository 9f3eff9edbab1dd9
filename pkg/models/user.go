package models

import "time"

// User represents a registered learner
type User struct {
	ID                string    `json:"id" db:"id"` // Opaque identifier issued at signup
	Name              string    `json:"name" db:"name"`
	Email             string    `json:"email" db:"email"`
	PasswordHash      string    `json:"-" db:"password_hash"`
	WordCoins         int       `json:"word_coins" db:"word_coins"`
	StoriesGenerated  int       `json:"stories_generated" db:"stories_generated"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

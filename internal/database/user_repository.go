package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/alhaannn/wordwings-prototype/pkg/models"
)

var (
	// ErrInvalidCredentials is returned when the email/password pair does not match a user
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrDuplicateAccount is returned when signing up with an email that is already registered
	ErrDuplicateAccount = errors.New("an account with this email already exists")
)

// DefaultStartingCoins is the WordCoin balance granted to every new account
const DefaultStartingCoins = 100

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const userColumns = "id, name, email, password_hash, word_coins, stories_generated, created_at, updated_at"

// Authenticate verifies the email/password pair and returns the matching user.
// ErrInvalidCredentials is returned for an unknown email or a wrong password.
func (r *UserRepository) Authenticate(email, password string) (*models.User, error) {
	user, err := r.GetByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Create registers a new user with the default starting balance.
// ErrDuplicateAccount is returned if the email is already taken.
func (r *UserRepository) Create(name, email, password string) (*models.User, error) {
	_, err := r.GetByEmail(email)
	if err == nil {
		return nil, ErrDuplicateAccount
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check for existing account: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	id := uuid.New().String()
	query := rebind(`
		INSERT INTO users (id, name, email, password_hash, word_coins, stories_generated)
		VALUES (?, ?, ?, ?, ?, 0)
	`)

	_, err = DB.Exec(query, id, name, email, string(hash), DefaultStartingCoins)
	if err != nil {
		// The UNIQUE constraint may still fire under concurrent signups
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("failed to create user: %v", err)
	}

	return r.GetByID(id)
}

// GetByID returns a user by their opaque identifier
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	query := rebind("SELECT " + userColumns + " FROM users WHERE id = ?")
	if err := DB.Get(&user, query, id); err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %v", err)
	}
	return &user, nil
}

// GetByEmail returns a user by email. sql.ErrNoRows is passed through so
// callers can distinguish "not found" from other failures.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	query := rebind("SELECT " + userColumns + " FROM users WHERE email = ?")
	if err := DB.Get(&user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user by email: %v", err)
	}
	return &user, nil
}

// UpdateCoins writes a new WordCoin balance for the user
func (r *UserRepository) UpdateCoins(userID string, coins int) error {
	query := rebind("UPDATE users SET word_coins = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?")
	if _, err := DB.Exec(query, coins, userID); err != nil {
		return fmt.Errorf("failed to update coin balance: %v", err)
	}
	return nil
}

// UpdateStoriesGenerated writes a new story counter for the user
func (r *UserRepository) UpdateStoriesGenerated(userID string, count int) error {
	query := rebind("UPDATE users SET stories_generated = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?")
	if _, err := DB.Exec(query, count, userID); err != nil {
		return fmt.Errorf("failed to update story counter: %v", err)
	}
	return nil
}

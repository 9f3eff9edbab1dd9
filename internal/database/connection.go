package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the database. PostgreSQL is used when
// DATABASE_URL is set; otherwise a local SQLite file is created under data/.
func Connect() error {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		db, err := sqlx.Connect("postgres", url)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
		DB = db
		return initializeSchema()
	}

	// Create data directory if it doesn't exist
	dataDir := "data"
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "wordwings.db")
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	// Enable foreign keys
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return fmt.Errorf("failed to enable foreign keys: %v", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	DB = db

	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// rebind converts ? placeholders to $N when running against PostgreSQL
func rebind(query string) string {
	if DB.DriverName() == "postgres" {
		return sqlx.Rebind(sqlx.DOLLAR, query)
	}
	return query
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if DB.DriverName() == "postgres" {
		serial = "SERIAL PRIMARY KEY"
	}

	tables := []struct {
		name string
		stmt string
	}{
		{"users", `CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			word_coins INTEGER NOT NULL DEFAULT 100,
			stories_generated INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`},
		{"mastered_words", fmt.Sprintf(`CREATE TABLE IF NOT EXISTS mastered_words (
			id %s,
			user_id TEXT NOT NULL,
			word TEXT NOT NULL,
			mastered_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id),
			UNIQUE(user_id, word)
		)`, serial)},
		{"unlocked_badges", fmt.Sprintf(`CREATE TABLE IF NOT EXISTS unlocked_badges (
			id %s,
			user_id TEXT NOT NULL,
			badge_id TEXT NOT NULL,
			earned_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id),
			UNIQUE(user_id, badge_id)
		)`, serial)},
		{"inventory", fmt.Sprintf(`CREATE TABLE IF NOT EXISTS inventory (
			id %s,
			user_id TEXT NOT NULL,
			item_id TEXT NOT NULL,
			purchased_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`, serial)},
		{"quiz_questions", fmt.Sprintf(`CREATE TABLE IF NOT EXISTS quiz_questions (
			id %s,
			user_id TEXT NOT NULL,
			word TEXT NOT NULL,
			question TEXT NOT NULL,
			options TEXT NOT NULL,
			correct_answer TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id),
			UNIQUE(user_id, word)
		)`, serial)},
		{"custom_words", fmt.Sprintf(`CREATE TABLE IF NOT EXISTS custom_words (
			id %s,
			word TEXT NOT NULL UNIQUE,
			definition TEXT NOT NULL,
			example TEXT,
			difficulty TEXT NOT NULL DEFAULT 'easy',
			image_hint TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, serial)},
		{"sessions", `CREATE TABLE IF NOT EXISTS sessions (
			chat_id BIGINT PRIMARY KEY,
			user_id TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`},
	}

	for _, t := range tables {
		if _, err := DB.Exec(t.stmt); err != nil {
			return fmt.Errorf("failed to create %s table: %v", t.name, err)
		}
	}

	return nil
}

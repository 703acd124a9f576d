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

// Connect establishes a connection to the database. The driver is selected
// with the DB_TYPE environment variable ("sqlite" or "postgres", sqlite by
// default); postgres connects with DATABASE_URL, sqlite stores its file
// under DB_PATH or ./data.
func Connect() error {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}

	switch dbType {
	case "postgres":
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return fmt.Errorf("DATABASE_URL environment variable is not set")
		}
		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
		DB = db
	case "sqlite":
		dbPath := os.Getenv("DB_PATH")
		if dbPath == "" {
			dataDir := "data"
			if err := os.MkdirAll(dataDir, 0755); err != nil {
				return fmt.Errorf("failed to create data directory: %v", err)
			}
			dbPath = filepath.Join(dataDir, "quizhub.db")
		}
		db, err := sqlx.Connect("sqlite3", dbPath)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %v", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		DB = db
	default:
		return fmt.Errorf("unsupported DB_TYPE: %q", dbType)
	}

	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if DB.DriverName() == "postgres" {
		idColumn = "BIGSERIAL PRIMARY KEY"
	}

	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS users (
				id %s,
				telegram_id INTEGER DEFAULT 0,
				username TEXT,
				first_name TEXT,
				notification_enabled BOOLEAN DEFAULT true,
				notification_hour INTEGER DEFAULT 9,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)
		`, idColumn),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS courses (
				id %s,
				title TEXT NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)
		`, idColumn),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS quiz_exercises (
				id %s,
				course_id INTEGER NOT NULL,
				title TEXT NOT NULL,
				is_open_for_practice BOOLEAN DEFAULT false,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (course_id) REFERENCES courses(id),
				UNIQUE(course_id, title)
			)
		`, idColumn),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS quiz_questions (
				id %s,
				exercise_id INTEGER NOT NULL,
				text TEXT NOT NULL,
				question_type TEXT NOT NULL,
				options TEXT DEFAULT '',
				correct_answer TEXT DEFAULT '',
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (exercise_id) REFERENCES quiz_exercises(id)
			)
		`, idColumn),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS mastery_states (
				id %s,
				user_id INTEGER NOT NULL,
				question_id INTEGER NOT NULL,
				easiness_factor REAL DEFAULT 2.5,
				interval INTEGER DEFAULT 1,
				box INTEGER DEFAULT 1,
				priority INTEGER DEFAULT 1,
				repetition INTEGER DEFAULT 0,
				session_count INTEGER DEFAULT 0,
				last_score REAL DEFAULT 0,
				last_answered_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				version INTEGER DEFAULT 1,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES users(id),
				FOREIGN KEY (question_id) REFERENCES quiz_questions(id),
				UNIQUE(user_id, question_id)
			)
		`, idColumn),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS mastery_attempts (
				id %s,
				mastery_id INTEGER NOT NULL,
				answered_at TIMESTAMP NOT NULL,
				score REAL NOT NULL,
				FOREIGN KEY (mastery_id) REFERENCES mastery_states(id)
			)
		`, idColumn),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS leaderboard_entries (
				id %s,
				user_id INTEGER NOT NULL,
				course_id INTEGER NOT NULL,
				score INTEGER DEFAULT 0,
				league INTEGER DEFAULT 0,
				answered_correctly INTEGER DEFAULT 0,
				answered_wrong INTEGER DEFAULT 0,
				streak INTEGER DEFAULT 0,
				due_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				leaderboard_name TEXT DEFAULT '',
				show_in_leaderboard BOOLEAN DEFAULT false,
				version INTEGER DEFAULT 1,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES users(id),
				FOREIGN KEY (course_id) REFERENCES courses(id),
				UNIQUE(user_id, course_id)
			)
		`, idColumn),
	}

	for _, stmt := range statements {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %v", err)
		}
	}

	return nil
}

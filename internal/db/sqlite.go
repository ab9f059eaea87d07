package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// Database stores the quiz history in SQLite
type Database struct {
	conn *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS attempts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    word TEXT NOT NULL,
    answer TEXT NOT NULL,
    correct BOOLEAN NOT NULL,
    score_after INTEGER NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_attempts_word ON attempts(word);
`

// NewDatabase opens the history database and initializes the schema
func NewDatabase(dbPath string) (*Database, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps an in-memory database alive for the lifetime of conn
	conn.SetMaxOpenConns(1)

	if dbPath != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Database{conn: conn}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// InsertAttempt records an answered question and returns its ID
func (db *Database) InsertAttempt(attempt *Attempt) (int, error) {
	query := `INSERT INTO attempts (word, answer, correct, score_after) VALUES (?, ?, ?, ?)`
	result, err := db.conn.Exec(query, attempt.Word, attempt.Answer, attempt.Correct, attempt.ScoreAfter)
	if err != nil {
		return 0, fmt.Errorf("failed to insert attempt: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	return int(id), nil
}

// ListAttempts returns the most recent attempts first. A limit <= 0 returns all of them.
func (db *Database) ListAttempts(limit int) ([]*Attempt, error) {
	query := `SELECT id, word, answer, correct, score_after, created_at FROM attempts ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	defer rows.Close()

	var items []*Attempt
	for rows.Next() {
		var attempt Attempt
		err := rows.Scan(
			&attempt.ID,
			&attempt.Word,
			&attempt.Answer,
			&attempt.Correct,
			&attempt.ScoreAfter,
			&attempt.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		items = append(items, &attempt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}

// WordStats returns per-word attempt counts ordered by word
func (db *Database) WordStats() ([]WordStats, error) {
	query := `SELECT word, COUNT(*), COALESCE(SUM(correct), 0) FROM attempts GROUP BY word ORDER BY word`

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate attempts: %w", err)
	}
	defer rows.Close()

	var stats []WordStats
	for rows.Next() {
		var s WordStats
		if err := rows.Scan(&s.Word, &s.Attempts, &s.Correct); err != nil {
			return nil, fmt.Errorf("failed to scan word stats: %w", err)
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return stats, nil
}

// Count returns the total number of recorded attempts
func (db *Database) Count() (int, error) {
	var count int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM attempts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count attempts: %w", err)
	}
	return count, nil
}

// Clear removes the whole history
func (db *Database) Clear() error {
	if _, err := db.conn.Exec(`DELETE FROM attempts`); err != nil {
		return fmt.Errorf("failed to clear attempts: %w", err)
	}
	return nil
}

// ExportToJSON writes all attempts to a JSON file
func (db *Database) ExportToJSON(filePath string) error {
	items, err := db.ListAttempts(0)
	if err != nil {
		return fmt.Errorf("failed to list attempts for export: %w", err)
	}
	if items == nil {
		items = []*Attempt{}
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(items); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

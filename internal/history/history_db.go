package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/postboard/internal/config"
	"github.com/studiowebux/postboard/internal/migrations"
	"github.com/studiowebux/postboard/internal/types"
)

const timestampLayout = "2006-01-02 15:04:05"

// Manager stores one row per remote read
type Manager struct {
	db *sql.DB
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

// Save records a request/result pair
func (m *Manager) Save(req *types.FetchRequest, result *types.FetchResult) error {
	query := `
		INSERT INTO fetch_history (
			timestamp, name, method, url, response_status, duration_ms, response_size, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	timestampStr := time.Now().Local().Format(timestampLayout)

	_, err := m.db.Exec(query,
		timestampStr,
		req.Name,
		req.Method,
		req.URL,
		result.Status,
		result.Duration,
		result.ResponseSize,
		result.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}

	return nil
}

// Load returns the most recent entries first. limit <= 0 returns everything.
func (m *Manager) Load(limit int) ([]types.HistoryEntry, error) {
	query := `
		SELECT id, timestamp, name, method, url, response_status, duration_ms, response_size, error
		FROM fetch_history
		ORDER BY timestamp DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := m.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]types.HistoryEntry, error) {
	var entries []types.HistoryEntry

	for rows.Next() {
		var (
			entry        types.HistoryEntry
			timestamp    string
			name         sql.NullString
			responseSize sql.NullInt64
			errorMsg     sql.NullString
		)

		err := rows.Scan(
			&entry.ID,
			&timestamp,
			&name,
			&entry.Method,
			&entry.URL,
			&entry.ResponseStatus,
			&entry.Duration,
			&responseSize,
			&errorMsg,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		parsedTime, err := time.ParseInLocation(timestampLayout, timestamp, time.Local)
		if err != nil {
			// Try RFC3339 format as fallback
			parsedTime, err = time.Parse(time.RFC3339, timestamp)
			if err != nil {
				parsedTime = time.Now()
			}
		}

		entry.Timestamp = parsedTime.Format(time.RFC3339)
		entry.Name = name.String
		entry.ResponseSize = int(responseSize.Int64)
		entry.Error = errorMsg.String

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (m *Manager) Clear() error {
	_, err := m.db.Exec("DELETE FROM fetch_history")
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (m *Manager) Delete(id int64) error {
	_, err := m.db.Exec("DELETE FROM fetch_history WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	return nil
}

func (m *Manager) GetCount() (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM fetch_history").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get history count: %w", err)
	}
	return count, nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure-Go SQLite driver, no CGO

	"github.com/sherm18/ThriveOS/internal"
)

// SQLiteStorage keeps everything in a single file with WAL mode, useful
// for self-hosted single-node deployments where postgres is overkill.
type SQLiteStorage struct {
	db     *sql.DB
	logger internal.Logger
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sleep_entries (
	id TEXT PRIMARY KEY,
	owner_id TEXT NOT NULL,
	date TEXT NOT NULL,
	bedtime TEXT NOT NULL,
	waketime TEXT NOT NULL,
	quality INTEGER NOT NULL,
	feeling TEXT NOT NULL,
	duration REAL NOT NULL,
	score INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sleep_entries_owner ON sleep_entries(owner_id, date DESC);

CREATE TABLE IF NOT EXISTS badge_states (
	owner_id TEXT NOT NULL,
	badge_id TEXT NOT NULL,
	earned INTEGER NOT NULL,
	progress REAL NOT NULL,
	earned_date TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (owner_id, badge_id)
);

CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	token TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	friends TEXT NOT NULL DEFAULT '[]'
);
`

func NewSQLiteStorage(dir string, logger internal.Logger) (*SQLiteStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, internal.NewStoreError("create data dir", err)
	}

	dbPath := filepath.Join(dir, "thriveos.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		logger.Errorf("failed to open sqlite: %v", err)
		return nil, internal.NewStoreError("open sqlite", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, internal.NewStoreError("ping sqlite", err)
	}

	// SQLite is single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, internal.NewStoreError("migrate sqlite", err)
	}

	return &SQLiteStorage{db: db, logger: logger}, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// --- EntryRepository ---
func (s *SQLiteStorage) SaveEntry(ctx context.Context, entry *internal.SleepEntry) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO sleep_entries (id, owner_id, date, bedtime, waketime, quality, feeling, duration, score, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.OwnerID, entry.Date, entry.Bedtime, entry.Waketime, entry.Quality, string(entry.Feeling), entry.Duration, entry.Score, entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		s.logger.Errorf("failed to insert sleep entry: %v", err)
		return internal.NewStoreError("save entry", err)
	}
	return nil
}

func (s *SQLiteStorage) GetEntry(ctx context.Context, id string) (*internal.SleepEntry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, owner_id, date, bedtime, waketime, quality, feeling, duration, score, created_at, updated_at FROM sleep_entries WHERE id = ?`, id)
	var e internal.SleepEntry
	var feeling string
	err := row.Scan(&e.ID, &e.OwnerID, &e.Date, &e.Bedtime, &e.Waketime, &e.Quality, &feeling, &e.Duration, &e.Score, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sleep entry %s: %w", id, internal.ErrNotFound)
	}
	if err != nil {
		s.logger.Errorf("failed to query sleep entry: %v", err)
		return nil, internal.NewStoreError("get entry", err)
	}
	e.Feeling = internal.Feeling(feeling)
	return &e, nil
}

func (s *SQLiteStorage) UpdateEntry(ctx context.Context, entry *internal.SleepEntry) error {
	res, err := s.db.ExecContext(ctx, `UPDATE sleep_entries SET date = ?, bedtime = ?, waketime = ?, quality = ?, feeling = ?, duration = ?, score = ?, updated_at = ? WHERE id = ?`,
		entry.Date, entry.Bedtime, entry.Waketime, entry.Quality, string(entry.Feeling), entry.Duration, entry.Score, entry.UpdatedAt, entry.ID)
	if err != nil {
		s.logger.Errorf("failed to update sleep entry: %v", err)
		return internal.NewStoreError("update entry", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("sleep entry %s: %w", entry.ID, internal.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStorage) DeleteEntry(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sleep_entries WHERE id = ?`, id)
	if err != nil {
		s.logger.Errorf("failed to delete sleep entry: %v", err)
		return internal.NewStoreError("delete entry", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("sleep entry %s: %w", id, internal.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStorage) ListEntries(ctx context.Context, ownerID string) ([]internal.SleepEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, owner_id, date, bedtime, waketime, quality, feeling, duration, score, created_at, updated_at FROM sleep_entries WHERE owner_id = ? ORDER BY date DESC`, ownerID)
	if err != nil {
		s.logger.Errorf("failed to query sleep entries: %v", err)
		return nil, internal.NewStoreError("list entries", err)
	}
	defer rows.Close()

	entries := []internal.SleepEntry{}
	for rows.Next() {
		var e internal.SleepEntry
		var feeling string
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Date, &e.Bedtime, &e.Waketime, &e.Quality, &feeling, &e.Duration, &e.Score, &e.CreatedAt, &e.UpdatedAt); err != nil {
			s.logger.Errorf("failed to scan sleep entry: %v", err)
			return nil, internal.NewStoreError("list entries", err)
		}
		e.Feeling = internal.Feeling(feeling)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// --- BadgeStateRepository ---
func (s *SQLiteStorage) GetBadgeStates(ctx context.Context, ownerID string) ([]internal.BadgeState, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT badge_id, earned, progress, earned_date FROM badge_states WHERE owner_id = ?`, ownerID)
	if err != nil {
		s.logger.Errorf("failed to query badge states: %v", err)
		return nil, internal.NewStoreError("get badge states", err)
	}
	defer rows.Close()

	states := []internal.BadgeState{}
	for rows.Next() {
		var st internal.BadgeState
		if err := rows.Scan(&st.BadgeID, &st.Earned, &st.Progress, &st.EarnedDate); err != nil {
			s.logger.Errorf("failed to scan badge state: %v", err)
			return nil, internal.NewStoreError("get badge states", err)
		}
		states = append(states, st)
	}
	return states, rows.Err()
}

func (s *SQLiteStorage) SaveBadgeStates(ctx context.Context, ownerID string, states []internal.BadgeState) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return internal.NewStoreError("save badge states", err)
	}
	defer tx.Rollback()

	for _, st := range states {
		_, err := tx.ExecContext(ctx, `INSERT INTO badge_states (owner_id, badge_id, earned, progress, earned_date) VALUES (?, ?, ?, ?, ?) ON CONFLICT (owner_id, badge_id) DO UPDATE SET earned = excluded.earned, progress = excluded.progress, earned_date = excluded.earned_date`,
			ownerID, st.BadgeID, st.Earned, st.Progress, st.EarnedDate)
		if err != nil {
			s.logger.Errorf("failed to upsert badge state: %v", err)
			return internal.NewStoreError("save badge states", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return internal.NewStoreError("save badge states", err)
	}
	return nil
}

// --- UserRepository ---
func (s *SQLiteStorage) GetUserByToken(ctx context.Context, token string) (*internal.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `SELECT id, token, name, friends FROM users WHERE token = ?`, token), "user")
}

func (s *SQLiteStorage) GetUser(ctx context.Context, id string) (*internal.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `SELECT id, token, name, friends FROM users WHERE id = ?`, id), "user "+id)
}

func (s *SQLiteStorage) scanUser(row *sql.Row, what string) (*internal.User, error) {
	var u internal.User
	var friends string
	err := row.Scan(&u.ID, &u.Token, &u.Name, &friends)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", what, internal.ErrNotFound)
	}
	if err != nil {
		s.logger.Errorf("user lookup failed: %v", err)
		return nil, internal.NewStoreError("get user", err)
	}
	if err := json.Unmarshal([]byte(friends), &u.Friends); err != nil {
		return nil, internal.NewStoreError("decode friends", err)
	}
	return &u, nil
}

// --- Compile-time assertions ---
var _ EntryRepository = (*SQLiteStorage)(nil)
var _ BadgeStateRepository = (*SQLiteStorage)(nil)
var _ UserRepository = (*SQLiteStorage)(nil)

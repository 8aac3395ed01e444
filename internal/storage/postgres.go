package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sherm18/ThriveOS/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, internal.NewStoreError("connect", err)
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- EntryRepository ---
func (p *PostgresStorage) SaveEntry(ctx context.Context, entry *internal.SleepEntry) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO sleep_entries (id, owner_id, date, bedtime, waketime, quality, feeling, duration, score, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		entry.ID, entry.OwnerID, entry.Date, entry.Bedtime, entry.Waketime, entry.Quality, string(entry.Feeling), entry.Duration, entry.Score, entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert sleep entry: %v", err)
		return internal.NewStoreError("save entry", err)
	}
	return nil
}

func (p *PostgresStorage) GetEntry(ctx context.Context, id string) (*internal.SleepEntry, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, owner_id, date, bedtime, waketime, quality, feeling, duration, score, created_at, updated_at FROM sleep_entries WHERE id = $1`, id)
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("sleep entry %s: %w", id, internal.ErrNotFound)
		}
		p.logger.Errorf("failed to query sleep entry: %v", err)
		return nil, internal.NewStoreError("get entry", err)
	}
	return e, nil
}

func (p *PostgresStorage) UpdateEntry(ctx context.Context, entry *internal.SleepEntry) error {
	tag, err := p.pool.Exec(ctx, `UPDATE sleep_entries SET date = $2, bedtime = $3, waketime = $4, quality = $5, feeling = $6, duration = $7, score = $8, updated_at = $9 WHERE id = $1`,
		entry.ID, entry.Date, entry.Bedtime, entry.Waketime, entry.Quality, string(entry.Feeling), entry.Duration, entry.Score, entry.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to update sleep entry: %v", err)
		return internal.NewStoreError("update entry", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sleep entry %s: %w", entry.ID, internal.ErrNotFound)
	}
	return nil
}

func (p *PostgresStorage) DeleteEntry(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM sleep_entries WHERE id = $1`, id)
	if err != nil {
		p.logger.Errorf("failed to delete sleep entry: %v", err)
		return internal.NewStoreError("delete entry", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sleep entry %s: %w", id, internal.ErrNotFound)
	}
	return nil
}

func (p *PostgresStorage) ListEntries(ctx context.Context, ownerID string) ([]internal.SleepEntry, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, owner_id, date, bedtime, waketime, quality, feeling, duration, score, created_at, updated_at FROM sleep_entries WHERE owner_id = $1 ORDER BY date DESC`, ownerID)
	if err != nil {
		p.logger.Errorf("failed to query sleep entries: %v", err)
		return nil, internal.NewStoreError("list entries", err)
	}
	defer rows.Close()

	entries := []internal.SleepEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			p.logger.Errorf("failed to scan sleep entry: %v", err)
			return nil, internal.NewStoreError("list entries", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*internal.SleepEntry, error) {
	var e internal.SleepEntry
	var feeling string
	err := row.Scan(&e.ID, &e.OwnerID, &e.Date, &e.Bedtime, &e.Waketime, &e.Quality, &feeling, &e.Duration, &e.Score, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Feeling = internal.Feeling(feeling)
	return &e, nil
}

// --- BadgeStateRepository ---
func (p *PostgresStorage) GetBadgeStates(ctx context.Context, ownerID string) ([]internal.BadgeState, error) {
	rows, err := p.pool.Query(ctx, `SELECT badge_id, earned, progress, COALESCE(earned_date, '') FROM badge_states WHERE owner_id = $1`, ownerID)
	if err != nil {
		p.logger.Errorf("failed to query badge states: %v", err)
		return nil, internal.NewStoreError("get badge states", err)
	}
	defer rows.Close()

	states := []internal.BadgeState{}
	for rows.Next() {
		var s internal.BadgeState
		if err := rows.Scan(&s.BadgeID, &s.Earned, &s.Progress, &s.EarnedDate); err != nil {
			p.logger.Errorf("failed to scan badge state: %v", err)
			return nil, internal.NewStoreError("get badge states", err)
		}
		states = append(states, s)
	}
	return states, rows.Err()
}

func (p *PostgresStorage) SaveBadgeStates(ctx context.Context, ownerID string, states []internal.BadgeState) error {
	for _, s := range states {
		_, err := p.pool.Exec(ctx, `INSERT INTO badge_states (owner_id, badge_id, earned, progress, earned_date) VALUES ($1, $2, $3, $4, NULLIF($5, '')) ON CONFLICT (owner_id, badge_id) DO UPDATE SET earned = EXCLUDED.earned, progress = EXCLUDED.progress, earned_date = EXCLUDED.earned_date`,
			ownerID, s.BadgeID, s.Earned, s.Progress, s.EarnedDate)
		if err != nil {
			p.logger.Errorf("failed to upsert badge state: %v", err)
			return internal.NewStoreError("save badge states", err)
		}
	}
	return nil
}

// --- UserRepository ---
func (p *PostgresStorage) GetUserByToken(ctx context.Context, token string) (*internal.User, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, token, name, friends FROM users WHERE token = $1`, token)
	var u internal.User
	if err := row.Scan(&u.ID, &u.Token, &u.Name, &u.Friends); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", internal.ErrNotFound)
		}
		p.logger.Errorf("user lookup failed: %v", err)
		return nil, internal.NewStoreError("get user by token", err)
	}
	return &u, nil
}

func (p *PostgresStorage) GetUser(ctx context.Context, id string) (*internal.User, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, token, name, friends FROM users WHERE id = $1`, id)
	var u internal.User
	if err := row.Scan(&u.ID, &u.Token, &u.Name, &u.Friends); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, internal.ErrNotFound)
		}
		p.logger.Errorf("user lookup failed: %v", err)
		return nil, internal.NewStoreError("get user", err)
	}
	return &u, nil
}

// --- Compile-time assertions ---
var _ EntryRepository = (*PostgresStorage)(nil)
var _ BadgeStateRepository = (*PostgresStorage)(nil)
var _ UserRepository = (*PostgresStorage)(nil)

// Package store persists saved account profiles in a local SQLite
// database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/mail-assistant/internal/model"
)

// ErrNotFound is returned when no profile matches a lookup.
var ErrNotFound = errors.New("profile not found")

// SQLiteStore holds account profiles in a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// UpsertProfile inserts or replaces a profile, keyed by its address.
// A profile without an ID gets a new UUID.
func (s *SQLiteStore) UpsertProfile(
	ctx context.Context,
	p model.AccountProfile,
) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO account_profiles (
			id, address, imap_host, imap_port, smtp_host, smtp_port, tls, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(address) DO UPDATE SET
			imap_host = excluded.imap_host,
			imap_port = excluded.imap_port,
			smtp_host = excluded.smtp_host,
			smtp_port = excluded.smtp_port,
			tls = excluded.tls,
			updated_at = excluded.updated_at`,
		p.ID, p.Address,
		p.IMAPHost, p.IMAPPort, p.SMTPHost, p.SMTPPort,
		boolToInt(p.TLS), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting profile %s: %w", p.Address, err)
	}

	return nil
}

// GetProfiles retrieves all saved profiles, most recently used first.
func (s *SQLiteStore) GetProfiles(
	ctx context.Context,
) ([]model.AccountProfile, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM account_profiles ORDER BY updated_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("querying profiles: %w", err)
	}
	defer rows.Close()

	var profiles []model.AccountProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

// GetProfileByAddress retrieves a single profile by account address.
func (s *SQLiteStore) GetProfileByAddress(
	ctx context.Context,
	address string,
) (*model.AccountProfile, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM account_profiles WHERE address = ?", address,
	)
	if err != nil {
		return nil, fmt.Errorf("querying profile %s: %w", address, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("querying profile %s: %w", address, err)
		}
		return nil, ErrNotFound
	}

	p, err := scanProfile(rows)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// DeleteProfile removes a profile by ID.
func (s *SQLiteStore) DeleteProfile(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM account_profiles WHERE id = ?", id,
	)
	if err != nil {
		return fmt.Errorf("deleting profile %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanProfile scans a profile row from a sqlx.Rows result set.
func scanProfile(rows *sqlx.Rows) (model.AccountProfile, error) {
	var (
		p         model.AccountProfile
		tlsInt    int
		updatedAt sql.NullTime
	)

	err := rows.Scan(
		&p.ID, &p.Address,
		&p.IMAPHost, &p.IMAPPort, &p.SMTPHost, &p.SMTPPort,
		&tlsInt, &updatedAt,
	)
	if err != nil {
		return model.AccountProfile{}, fmt.Errorf("scanning profile row: %w", err)
	}

	p.TLS = tlsInt != 0
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.Time
	}

	return p, nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

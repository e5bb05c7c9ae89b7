package store

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Default account seeded on first boot.
const (
	seedUsername = "spler"
	seedPassword = "spler123"
)

// requiredColumns is the full influencers column set with SQL types.
// Existing databases missing any of these get an additive ALTER TABLE, so
// upgrading an old file never silently drops data.
var requiredColumns = []struct {
	name    string
	sqlType string
}{
	{"influencer_id", "TEXT"},
	{"platform", "TEXT"},
	{"category_main", "TEXT"},
	{"category_sub", "TEXT"},
	{"account_name", "TEXT"},
	{"profile_url", "TEXT"},
	{"instagram_username", "TEXT"},
	{"contact_email", "TEXT"},
	{"agency", "TEXT"},
	{"followers_raw", "TEXT"},
	{"followers_num", "INTEGER"},
	{"follower_range", "TEXT"},
	{"video_usage", "TEXT"},
	{"target_2030_score", "INTEGER"},
	{"price_bdc", "TEXT"},
	{"price_ppl", "TEXT"},
	{"price_short", "TEXT"},
	{"price_ig", "TEXT"},
	{"thumbnail_url", "TEXT"},
	{"dm_message", "TEXT"},
	{"notes", "TEXT"},
	{"created_at", "TEXT"},
	{"updated_at", "TEXT"},
}

// migrate creates the schema idempotently and seeds the default account.
func (s *Store) migrate(ctx context.Context) error {
	var createUsers, createInfluencers string
	if s.dialect == DialectPostgres {
		createUsers = `
			CREATE TABLE IF NOT EXISTS users (
				id SERIAL PRIMARY KEY,
				username TEXT UNIQUE NOT NULL,
				password_hash TEXT NOT NULL
			)`
		createInfluencers = `
			CREATE TABLE IF NOT EXISTS influencers (
				id SERIAL PRIMARY KEY,
				influencer_id TEXT,
				platform TEXT,
				category_main TEXT,
				category_sub TEXT,
				account_name TEXT NOT NULL,
				profile_url TEXT,
				instagram_username TEXT,
				contact_email TEXT,
				agency TEXT,
				followers_raw TEXT,
				followers_num INTEGER,
				follower_range TEXT,
				video_usage TEXT,
				target_2030_score INTEGER,
				price_bdc TEXT,
				price_ppl TEXT,
				price_short TEXT,
				price_ig TEXT,
				thumbnail_url TEXT,
				dm_message TEXT,
				notes TEXT,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`
	} else {
		createUsers = `
			CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT UNIQUE NOT NULL,
				password_hash TEXT NOT NULL
			)`
		createInfluencers = `
			CREATE TABLE IF NOT EXISTS influencers (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				influencer_id TEXT,
				platform TEXT,
				category_main TEXT,
				category_sub TEXT,
				account_name TEXT NOT NULL,
				profile_url TEXT,
				instagram_username TEXT,
				contact_email TEXT,
				agency TEXT,
				followers_raw TEXT,
				followers_num INTEGER,
				follower_range TEXT,
				video_usage TEXT,
				target_2030_score INTEGER,
				price_bdc TEXT,
				price_ppl TEXT,
				price_short TEXT,
				price_ig TEXT,
				thumbnail_url TEXT,
				dm_message TEXT,
				notes TEXT,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`
	}

	if _, err := s.db.ExecContext(ctx, createUsers); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, createInfluencers); err != nil {
		return fmt.Errorf("failed to create influencers table: %w", err)
	}

	existing, err := s.liveColumns(ctx)
	if err != nil {
		return err
	}
	for _, col := range requiredColumns {
		if existing[col.name] {
			continue
		}
		alter := fmt.Sprintf("ALTER TABLE influencers ADD COLUMN %s %s", col.name, col.sqlType)
		if _, err := s.db.ExecContext(ctx, alter); err != nil {
			return fmt.Errorf("failed to add column %s: %w", col.name, err)
		}
		s.logger.Info("Added missing column", zap.String("column", col.name))
	}

	return s.seedUser(ctx)
}

// liveColumns reads the current influencers column set from the backend's
// catalog.
func (s *Store) liveColumns(ctx context.Context) (map[string]bool, error) {
	var rows *sql.Rows
	var err error
	if s.dialect == DialectPostgres {
		rows, err = s.db.QueryContext(ctx, `
			SELECT column_name FROM information_schema.columns
			WHERE table_name = 'influencers'
		`)
	} else {
		rows, err = s.db.QueryContext(ctx, `SELECT name FROM pragma_table_info('influencers')`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to inspect influencers columns: %w", err)
	}
	defer rows.Close()

	existing := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column name: %w", err)
		}
		existing[name] = true
	}
	return existing, rows.Err()
}

func (s *Store) seedUser(ctx context.Context) error {
	var id int64
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT id FROM users WHERE username = ?`), seedUsername,
	).Scan(&id)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to look up seed user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO users (username, password_hash) VALUES (?, ?)`),
		seedUsername, string(hash),
	)
	if err != nil {
		return fmt.Errorf("failed to seed default user: %w", err)
	}
	s.logger.Info("Seeded default account", zap.String("username", seedUsername))
	return nil
}

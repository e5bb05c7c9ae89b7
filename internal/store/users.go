package store

import (
	"context"
	"database/sql"

	"github.com/spler/influencer-hub/internal/domain"
	"github.com/spler/influencer-hub/pkg/apperr"
)

// UserByUsername fetches a credential row. Returns (nil, nil) when the
// username is unknown so the login handler can treat bad username and bad
// password identically.
func (s *Store) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT id, username, password_hash FROM users WHERE username = ?`),
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.NewStorageError("failed to query user", "user_by_username", err)
	}
	return &u, nil
}

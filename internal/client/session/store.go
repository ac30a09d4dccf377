package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/krishimitre/krishimitre/internal/dbx"
)

// Storage keys mirrored by the persisted session.
const (
	tokenKey = "token"
	userKey  = "user"
)

// Store is the durable mirror of the current session, so a restart restores
// it without re-authenticating. Implementations must treat malformed stored
// user data as "no session" rather than an error.
type Store interface {
	Load(ctx context.Context) (string, User, error)
	Save(ctx context.Context, token string, user User) error
	Clear(ctx context.Context) error
}

// SQLiteStore keeps the token and the serialized user record as two rows of
// a key/value table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func set(ctx context.Context, tx dbx.DBTX, key string, value []byte) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

func del(ctx context.Context, tx dbx.DBTX, key string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete session[%s]: %w", key, err)
	}
	return nil
}

// Load returns the persisted token and user. A missing row means absent;
// a user row that fails to parse is treated as absent.
func (s *SQLiteStore) Load(ctx context.Context) (string, User, error) {
	tokenRaw, err := s.get(ctx, tokenKey)
	if err != nil {
		return "", nil, err
	}

	userRaw, err := s.get(ctx, userKey)
	if err != nil {
		return "", nil, err
	}

	var user User
	if len(userRaw) > 0 {
		if err := json.Unmarshal(userRaw, &user); err != nil {
			// Corrupted record: behave as if no user was stored.
			user = nil
		}
	}

	return string(tokenRaw), user, nil
}

// Save writes present values and removes absent ones, atomically.
func (s *SQLiteStore) Save(ctx context.Context, token string, user User) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if token != "" {
			if err := set(ctx, tx, tokenKey, []byte(token)); err != nil {
				return err
			}
		} else if err := del(ctx, tx, tokenKey); err != nil {
			return err
		}

		if user != nil {
			data, err := json.Marshal(user)
			if err != nil {
				return err
			}
			return set(ctx, tx, userKey, data)
		}
		return del(ctx, tx, userKey)
	})
}

// Clear removes both keys.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := del(ctx, tx, tokenKey); err != nil {
			return err
		}
		return del(ctx, tx, userKey)
	})
}

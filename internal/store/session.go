package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dukerupert/dukanam/internal/auth"
	"github.com/dukerupert/dukanam/internal/model"
	"github.com/dukerupert/dukanam/internal/secure"
)

// ErrNoSession is returned by Load when nobody is logged in on this machine
// or the stored token has expired.
var ErrNoSession = errors.New("no session")

// SessionStore persists the single logged-in user object. When a key is
// configured the token is sealed before it reaches disk.
type SessionStore struct {
	db  *sql.DB
	key string
	now func() time.Time
}

func NewSessionStore(db *sql.DB, encryptionKey string) *SessionStore {
	return &SessionStore{db: db, key: encryptionKey, now: time.Now}
}

const sessionCols = `user_id, user_name, role, store_id, token, token_encrypted, expires_at, created_at`

// Save replaces the stored session with u.
func (s *SessionStore) Save(u model.AuthUser) (*model.Session, error) {
	// Tokens the client cannot parse are kept without an expiry.
	expiresAt, _ := auth.TokenExpiry(u.Token)

	token := u.Token
	encrypted := false
	if s.key != "" {
		sealed, err := secure.Seal(s.key, []byte(u.Token))
		if err != nil {
			return nil, fmt.Errorf("seal token: %w", err)
		}
		token = sealed
		encrypted = true
	}

	var exp sql.NullTime
	if expiresAt != nil {
		exp = sql.NullTime{Time: expiresAt.UTC(), Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO session (id, `+sessionCols+`) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.UserID, u.UserName, string(u.Role), u.StoreID, token, encrypted, exp, s.now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return s.Load()
}

// Load returns the stored session. An expired session is removed and
// reported as ErrNoSession.
func (s *SessionStore) Load() (*model.Session, error) {
	var (
		sess      model.Session
		role      string
		storeID   sql.NullInt64
		token     string
		encrypted bool
		exp       sql.NullTime
	)
	err := s.db.QueryRow(`SELECT `+sessionCols+` FROM session WHERE id = 1`).Scan(
		&sess.UserID, &sess.UserName, &role, &storeID, &token, &encrypted, &exp, &sess.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	sess.Role = model.Role(role)
	if storeID.Valid {
		id := storeID.Int64
		sess.StoreID = &id
	}
	if exp.Valid {
		t := exp.Time
		sess.ExpiresAt = &t
	}

	if encrypted {
		if s.key == "" {
			return nil, fmt.Errorf("load session: token is encrypted and no key is configured")
		}
		plain, err := secure.Open(s.key, token)
		if err != nil {
			return nil, fmt.Errorf("open token: %w", err)
		}
		token = string(plain)
	}
	sess.Token = token

	if sess.Expired(s.now()) {
		if err := s.Clear(); err != nil {
			return nil, err
		}
		return nil, ErrNoSession
	}
	return &sess, nil
}

func (s *SessionStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM session`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

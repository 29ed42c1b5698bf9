// Package auth keeps signed-in operator sessions server side. A session holds
// the operator's identity and refresh tokens; the browser only ever sees the
// session id cookie.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/identity"
)

// RefreshMargin is how close to expiry an ID token may get before it is
// renewed.
const RefreshMargin = 60 * time.Second

var (
	ErrNoSession      = errors.New("session not found or expired")
	ErrSessionExpired = errors.New("sign-in expired, please log in again")
)

// Session is a database-backed operator session.
type Session struct {
	ID           string    `gorm:"primaryKey;type:char(36)"`
	UID          string    `gorm:"type:varchar(128);not null;index:ix_admin_sessions_uid"`
	Email        string    `gorm:"type:varchar(255);not null"`
	IDToken      string    `gorm:"type:text;not null"`
	RefreshToken string    `gorm:"type:text;not null"`
	TokenExpiry  time.Time `gorm:"not null"`
	IsOwner      bool      `gorm:"not null;default:false"`
	ExpiresAt    time.Time `gorm:"not null;index:ix_admin_sessions_expires_at"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
	LastSeenAt   time.Time `gorm:"not null"`
}

func (Session) TableName() string { return "admin_sessions" }

func (s *Session) token() identity.Token {
	return identity.Token{IDToken: s.IDToken, RefreshToken: s.RefreshToken, Expiry: s.TokenExpiry, UID: s.UID, Email: s.Email}
}

// Refresher renews ID tokens; *identity.Client implements it.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (identity.Token, error)
}

type Store struct {
	db        *gorm.DB
	refresher Refresher
	ttl       time.Duration
	now       func() time.Time

	// serializes token refreshes so two requests of one session do not both
	// spend the refresh token
	refreshMu sync.Mutex
}

func NewStore(db *gorm.DB, refresher Refresher, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Store{db: db, refresher: refresher, ttl: ttl, now: func() time.Time { return time.Now().UTC() }}
}

// Migrate creates or updates the admin_sessions table.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&Session{})
}

// Create persists a new session for a freshly signed-in operator.
func (s *Store) Create(ctx context.Context, tok identity.Token) (*Session, error) {
	claims, err := identity.ParseClaims(tok.IDToken)
	if err != nil {
		return nil, err
	}
	email := tok.Email
	if email == "" {
		email = claims.Email
	}
	uid := tok.UID
	if uid == "" {
		uid = claims.UID
	}

	now := s.now()
	sess := &Session{
		ID:           uuid.NewString(),
		UID:          uid,
		Email:        email,
		IDToken:      tok.IDToken,
		RefreshToken: tok.RefreshToken,
		TokenExpiry:  tok.Expiry,
		IsOwner:      claims.IsOwner,
		ExpiresAt:    now.Add(s.ttl),
		CreatedAt:    now,
		UpdatedAt:    now,
		LastSeenAt:   now,
	}
	if err := s.db.WithContext(ctx).Create(sess).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// Load returns a live session and bumps its last-seen time.
func (s *Store) Load(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNoSession
	}
	now := s.now()
	var sess Session
	err := s.db.WithContext(ctx).Where("id = ? AND expires_at > ?", id, now).First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&sess).UpdateColumn("last_seen_at", now).Error; err != nil {
		return nil, fmt.Errorf("touch session: %w", err)
	}
	sess.LastSeenAt = now
	return &sess, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&Session{}, "id = ?", id).Error
}

// PurgeExpired removes sessions past their expiry.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", s.now()).Delete(&Session{})
	return res.RowsAffected, res.Error
}

// Tokens returns the token source backend calls of sess authenticate with.
func (s *Store) Tokens(sess *Session) *SessionTokens {
	return &SessionTokens{store: s, sess: sess}
}

// SessionTokens hands out the session's ID token, renewing it lazily when it
// is within RefreshMargin of expiry.
type SessionTokens struct {
	store *Store

	mu   sync.Mutex // guards sess; one request may call the backend concurrently
	sess *Session
}

func (t *SessionTokens) Token(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.store
	if !t.sess.token().ExpiresWithin(s.now(), RefreshMargin) {
		return t.sess.IDToken, nil
	}

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	// Another request may have refreshed it meanwhile.
	var current Session
	if err := s.db.WithContext(ctx).Where("id = ?", t.sess.ID).First(&current).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrSessionExpired
		}
		return "", fmt.Errorf("reload session: %w", err)
	}
	if !current.token().ExpiresWithin(s.now(), RefreshMargin) {
		*t.sess = current
		return current.IDToken, nil
	}

	tok, err := s.refresher.Refresh(ctx, current.RefreshToken)
	if errors.Is(err, identity.ErrRefreshRejected) {
		_ = s.Delete(ctx, current.ID)
		return "", ErrSessionExpired
	}
	if err != nil {
		return "", fmt.Errorf("refresh identity token: %w", err)
	}

	current.IDToken = tok.IDToken
	current.RefreshToken = tok.RefreshToken
	current.TokenExpiry = tok.Expiry
	if claims, err := identity.ParseClaims(tok.IDToken); err == nil {
		current.IsOwner = claims.IsOwner
	}
	err = s.db.WithContext(ctx).Model(&Session{}).Where("id = ?", current.ID).Updates(map[string]any{
		"id_token":      current.IDToken,
		"refresh_token": current.RefreshToken,
		"token_expiry":  current.TokenExpiry,
		"is_owner":      current.IsOwner,
	}).Error
	if err != nil {
		return "", fmt.Errorf("save refreshed token: %w", err)
	}
	*t.sess = current
	return current.IDToken, nil
}

// Package auth resolves session cookies to users and gates endpoints by role.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"worktrack/internal/apperror"
	"worktrack/internal/models"
	"worktrack/internal/repository"
	"worktrack/pkg/crypto"
	"worktrack/pkg/logger"

	"go.uber.org/zap"
)

// SessionManager issues and validates opaque session tokens. Tokens stay
// valid until Destroy unless a TTL is configured.
type SessionManager struct {
	ttl      time.Duration
	now      func() time.Time
	newToken func() (string, error)
}

type Option func(*SessionManager)

// WithTTL makes sessions older than ttl resolve as unauthenticated. Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(m *SessionManager) { m.ttl = ttl }
}

func WithClock(now func() time.Time) Option {
	return func(m *SessionManager) { m.now = now }
}

func NewSessionManager(opts ...Option) *SessionManager {
	m := &SessionManager{
		now:      time.Now,
		newToken: crypto.NewSessionToken,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create persists a new session for userID and returns its token.
func (m *SessionManager) Create(ctx context.Context, uow *repository.UnitOfWork, userID int) (string, error) {
	token, err := m.newToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	s := &models.Session{Token: token, UserID: userID, CreatedAt: m.now().UTC()}
	if err := uow.Sessions.Create(ctx, s); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve maps token to its user. Missing, expired or unknown sessions and
// missing or inactive users all fail with apperror.ErrUnauthenticated.
func (m *SessionManager) Resolve(ctx context.Context, uow *repository.UnitOfWork, token string) (*models.User, error) {
	if token == "" {
		return nil, apperror.Unauthenticated("Not authenticated")
	}

	s, err := uow.Sessions.GetByToken(ctx, token)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.Unauthenticated("Invalid session")
	}
	if err != nil {
		return nil, err
	}
	if m.ttl > 0 && m.now().Sub(s.CreatedAt) > m.ttl {
		logger.SecurityLogger.Warn("Expired session used", zap.Int("user_id", s.UserID))
		if err := uow.Sessions.DeleteByToken(ctx, token); err != nil {
			return nil, err
		}
		return nil, apperror.Unauthenticated("Session expired")
	}

	user, err := uow.Users.GetByID(ctx, s.UserID)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.Unauthenticated("User not active")
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		logger.SecurityLogger.Warn("Inactive user session used", zap.Int("user_id", user.ID))
		return nil, apperror.Unauthenticated("User not active")
	}
	return user, nil
}

// Destroy removes the session for token; unknown tokens are ignored.
func (m *SessionManager) Destroy(ctx context.Context, uow *repository.UnitOfWork, token string) error {
	if token == "" {
		return nil
	}
	return uow.Sessions.DeleteByToken(ctx, token)
}

// Login checks credentials of an active user and opens a session.
func (m *SessionManager) Login(ctx context.Context, uow *repository.UnitOfWork, login, password string) (*models.User, string, error) {
	user, err := uow.Users.GetActiveByLogin(ctx, login)
	if errors.Is(err, apperror.ErrNotFound) {
		logger.SecurityLogger.Warn("Login failed: unknown or inactive login", zap.String("login", login))
		return nil, "", apperror.Unauthenticated("Invalid login or password")
	}
	if err != nil {
		return nil, "", err
	}
	if !crypto.VerifyPassword(password, user.PasswordHash) {
		logger.SecurityLogger.Warn("Login failed: wrong password", zap.String("login", login))
		return nil, "", apperror.Unauthenticated("Invalid login or password")
	}

	token, err := m.Create(ctx, uow, user.ID)
	if err != nil {
		return nil, "", err
	}
	logger.AuditLogger.Info("Login success", zap.Int("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, token, nil
}

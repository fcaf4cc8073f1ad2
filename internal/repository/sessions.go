package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"worktrack/internal/apperror"
	"worktrack/internal/models"
)

type sessionRepo struct {
	db dbtx
}

func (r *sessionRepo) Create(ctx context.Context, s *models.Session) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO sessions (session_token, user_id, created_at) VALUES ($1, $2, $3) RETURNING id",
		s.Token, s.UserID, s.CreatedAt,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *sessionRepo) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	var s models.Session
	err := r.db.QueryRowContext(ctx,
		"SELECT id, session_token, user_id, created_at FROM sessions WHERE session_token = $1", token,
	).Scan(&s.ID, &s.Token, &s.UserID, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("Session not found")
	}
	if err != nil {
		return nil, fmt.Errorf("select session: %w", err)
	}
	return &s, nil
}

func (r *sessionRepo) DeleteByToken(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE session_token = $1", token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

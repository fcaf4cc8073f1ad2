package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"worktrack/internal/apperror"
	"worktrack/internal/models"

	"github.com/lib/pq"
)

const userColumns = "id, name, role, login, password_hash, is_active"

type userRepo struct {
	db dbtx
}

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.Role, &u.Login, &u.PasswordHash, &u.IsActive); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (name, role, login, password_hash, is_active) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		u.Name, u.Role, u.Login, u.PasswordHash, u.IsActive,
	).Scan(&u.ID)
	if err != nil {
		// unique violation: login sudah dipakai
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return apperror.InvalidInput("Login already exists")
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepo) getOne(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (r *userRepo) GetActiveByLogin(ctx context.Context, login string) (*models.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE login = $1 AND is_active = TRUE", login)
}

func (r *userRepo) LoginExists(ctx context.Context, login string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE login = $1)", login).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check login: %w", err)
	}
	return exists, nil
}

func (r *userRepo) list(ctx context.Context, query string, args ...interface{}) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *userRepo) List(ctx context.Context) ([]models.User, error) {
	return r.list(ctx, "SELECT "+userColumns+" FROM users ORDER BY role ASC, name ASC")
}

func (r *userRepo) ListActiveByRoles(ctx context.Context, roles ...models.Role) ([]models.User, error) {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}
	return r.list(ctx,
		"SELECT "+userColumns+" FROM users WHERE is_active = TRUE AND role = ANY($1) ORDER BY name ASC",
		pq.Array(names))
}

func (r *userRepo) SetActive(ctx context.Context, id int, active bool) error {
	res, err := r.db.ExecContext(ctx, "UPDATE users SET is_active = $1 WHERE id = $2", active, id)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NotFound("User not found")
	}
	return nil
}

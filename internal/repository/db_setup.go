package repository

import (
	"database/sql"
	"fmt"
)

func CreateTableIfNotExists(db *sql.DB) error {
	query := `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    role VARCHAR(32) NOT NULL,
    login VARCHAR(255) NOT NULL UNIQUE,
    password_hash VARCHAR(255) NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS tasks (
    id SERIAL PRIMARY KEY,
    parent_id INT REFERENCES tasks (id),
    title VARCHAR(255) NOT NULL,
    assignee_id INT REFERENCES users (id),
    start_date DATE NOT NULL,
    end_date DATE NOT NULL,
    planned_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
    priority INT NOT NULL DEFAULT 3,
    status VARCHAR(32) NOT NULL DEFAULT 'todo',
    current_progress INT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS worklogs (
    id SERIAL PRIMARY KEY,
    date DATE NOT NULL,
    user_id INT NOT NULL REFERENCES users (id),
    task_id INT NOT NULL REFERENCES tasks (id),
    hours DOUBLE PRECISION NOT NULL DEFAULT 0,
    comment TEXT NOT NULL DEFAULT '',
    progress INT NOT NULL DEFAULT 0,
    is_done BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    -- sengaja: satu worklog per (user, task, date) dijaga juga oleh database,
    -- bukan hanya oleh upsert di aplikasi. Insert memakai ON CONFLICT atas
    -- constraint ini sehingga dua submit bersamaan menjadi last-write-wins.
    UNIQUE (user_id, task_id, date)
);

CREATE TABLE IF NOT EXISTS sessions (
    id SERIAL PRIMARY KEY,
    session_token VARCHAR(255) NOT NULL UNIQUE,
    user_id INT NOT NULL REFERENCES users (id),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_worklogs_date ON worklogs (date);
CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks (assignee_id);
`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

func DeleteAllTable(db *sql.DB) error {
	query := `
    DROP TABLE IF EXISTS sessions;
    DROP TABLE IF EXISTS worklogs;
    DROP TABLE IF EXISTS tasks;
    DROP TABLE IF EXISTS users;
    `
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	return nil
}

// Package repotest provides an in-memory repository.Beginner for tests.
// Each unit of work operates on a copy of the data; Commit publishes the copy,
// Rollback drops it.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"worktrack/internal/apperror"
	"worktrack/internal/models"
	"worktrack/internal/repository"
)

type state struct {
	users    []models.User
	tasks    []models.Task
	worklogs []models.Worklog
	sessions []models.Session
	nextID   int
}

func (s *state) clone() *state {
	return &state{
		users:    append([]models.User(nil), s.users...),
		tasks:    append([]models.Task(nil), s.tasks...),
		worklogs: append([]models.Worklog(nil), s.worklogs...),
		sessions: append([]models.Session(nil), s.sessions...),
		nextID:   s.nextID,
	}
}

func (s *state) id() int {
	s.nextID++
	return s.nextID
}

type Store struct {
	mu      sync.Mutex
	data    *state
	Now     func() time.Time
	Commits int
	// BeginErr, when set, is returned by the next Begin call.
	BeginErr error
}

func New() *Store {
	return &Store{data: &state{}, Now: time.Now}
}

type tx struct {
	store *Store
	work  *state
}

func (t *tx) Commit() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.data = t.work
	t.store.Commits++
	return nil
}

func (t *tx) Rollback() error { return nil }

func (s *Store) Begin(ctx context.Context) (*repository.UnitOfWork, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.BeginErr; err != nil {
		s.BeginErr = nil
		return nil, err
	}
	t := &tx{store: s, work: s.data.clone()}
	return repository.NewUnitOfWork(repository.Repositories{
		Users:    users{t},
		Tasks:    tasks{t},
		Worklogs: worklogs{t, s.Now},
		Sessions: sessions{t, s.Now},
	}, t), nil
}

func (s *Store) snapshot() *state {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// AddUser stores u directly, bypassing any unit of work.
func (s *Store) AddUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.data.id()
	s.data.users = append(s.data.users, u)
	return u
}

func (s *Store) AddTask(t models.Task) models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.data.id()
	if t.Status == "" {
		t.Status = models.StatusTodo
	}
	s.data.tasks = append(s.data.tasks, t)
	return t
}

func (s *Store) AddWorklog(w models.Worklog) models.Worklog {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.ID = s.data.id()
	w.Date = models.DateOf(w.Date)
	if w.CreatedAt.IsZero() {
		w.CreatedAt = s.Now()
	}
	s.data.worklogs = append(s.data.worklogs, w)
	return w
}

func (s *Store) User(id int) (models.User, bool) {
	for _, u := range s.snapshot().users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *Store) Task(id int) (models.Task, bool) {
	for _, t := range s.snapshot().tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

func (s *Store) Users() []models.User {
	return append([]models.User(nil), s.snapshot().users...)
}

func (s *Store) Tasks() []models.Task {
	return append([]models.Task(nil), s.snapshot().tasks...)
}

func (s *Store) Worklogs() []models.Worklog {
	return append([]models.Worklog(nil), s.snapshot().worklogs...)
}

func (s *Store) Sessions() []models.Session {
	return append([]models.Session(nil), s.snapshot().sessions...)
}

type users struct{ t *tx }

func (r users) Create(ctx context.Context, u *models.User) error {
	for _, existing := range r.t.work.users {
		if existing.Login == u.Login {
			return apperror.InvalidInput("Login already exists")
		}
	}
	u.ID = r.t.work.id()
	r.t.work.users = append(r.t.work.users, *u)
	return nil
}

func (r users) find(match func(models.User) bool) (*models.User, error) {
	for _, u := range r.t.work.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, apperror.NotFound("User not found")
}

func (r users) GetByID(ctx context.Context, id int) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.ID == id })
}

func (r users) GetActiveByLogin(ctx context.Context, login string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Login == login && u.IsActive })
}

func (r users) LoginExists(ctx context.Context, login string) (bool, error) {
	_, err := r.find(func(u models.User) bool { return u.Login == login })
	return err == nil, nil
}

func (r users) List(ctx context.Context) ([]models.User, error) {
	out := append([]models.User{}, r.t.work.users...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Role != out[j].Role {
			return out[i].Role < out[j].Role
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r users) ListActiveByRoles(ctx context.Context, roles ...models.Role) ([]models.User, error) {
	out := []models.User{}
	for _, u := range r.t.work.users {
		if !u.IsActive {
			continue
		}
		for _, role := range roles {
			if u.Role == role {
				out = append(out, u)
				break
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r users) SetActive(ctx context.Context, id int, active bool) error {
	for i := range r.t.work.users {
		if r.t.work.users[i].ID == id {
			r.t.work.users[i].IsActive = active
			return nil
		}
	}
	return apperror.NotFound("User not found")
}

type tasks struct{ t *tx }

func (r tasks) Create(ctx context.Context, t *models.Task) error {
	t.ID = r.t.work.id()
	r.t.work.tasks = append(r.t.work.tasks, *t)
	return nil
}

func (r tasks) GetAssigned(ctx context.Context, id, assigneeID int) (*models.Task, error) {
	for _, t := range r.t.work.tasks {
		if t.ID == id && t.AssignedTo(assigneeID) {
			found := t
			return &found, nil
		}
	}
	return nil, apperror.NotFound("Task not found or not assigned to you")
}

func byPriority(out []models.Task) {
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		if !out[i].EndDate.Equal(out[j].EndDate) {
			return out[i].EndDate.Before(out[j].EndDate)
		}
		return out[i].ID < out[j].ID
	})
}

func (r tasks) ListByDeadline(ctx context.Context) ([]models.Task, error) {
	out := append([]models.Task{}, r.t.work.tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].EndDate.Equal(out[j].EndDate) {
			return out[i].EndDate.Before(out[j].EndDate)
		}
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r tasks) ListByPriority(ctx context.Context) ([]models.Task, error) {
	out := append([]models.Task{}, r.t.work.tasks...)
	byPriority(out)
	return out, nil
}

func (r tasks) ListAssignedOn(ctx context.Context, assigneeID int, day time.Time) ([]models.Task, error) {
	day = models.DateOf(day)
	out := []models.Task{}
	for _, t := range r.t.work.tasks {
		if t.AssignedTo(assigneeID) && !t.StartDate.After(day) && !t.EndDate.Before(day) {
			out = append(out, t)
		}
	}
	byPriority(out)
	return out, nil
}

func (r tasks) UpdateProgress(ctx context.Context, id int, status models.TaskStatus, progress int) error {
	for i := range r.t.work.tasks {
		if r.t.work.tasks[i].ID == id {
			r.t.work.tasks[i].Status = status
			r.t.work.tasks[i].CurrentProgress = progress
			return nil
		}
	}
	return apperror.NotFound("Task not found")
}

type worklogs struct {
	t   *tx
	now func() time.Time
}

func (r worklogs) Find(ctx context.Context, userID, taskID int, day time.Time) (*models.Worklog, error) {
	day = models.DateOf(day)
	for _, w := range r.t.work.worklogs {
		if w.UserID == userID && w.TaskID == taskID && w.Date.Equal(day) {
			found := w
			return &found, nil
		}
	}
	return nil, apperror.NotFound("Worklog not found")
}

func (r worklogs) Insert(ctx context.Context, w *models.Worklog) error {
	w.Date = models.DateOf(w.Date)
	if existing, err := r.Find(ctx, w.UserID, w.TaskID, w.Date); err == nil {
		w.ID = existing.ID
		w.CreatedAt = existing.CreatedAt
		return r.Update(ctx, w)
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = r.now()
	}
	w.ID = r.t.work.id()
	r.t.work.worklogs = append(r.t.work.worklogs, *w)
	return nil
}

func (r worklogs) Update(ctx context.Context, w *models.Worklog) error {
	for i := range r.t.work.worklogs {
		cur := &r.t.work.worklogs[i]
		if cur.ID == w.ID {
			cur.Hours, cur.Comment, cur.Progress, cur.IsDone = w.Hours, w.Comment, w.Progress, w.IsDone
			return nil
		}
	}
	return apperror.NotFound("Worklog not found")
}

func (r worklogs) filter(match func(models.Worklog) bool) []models.Worklog {
	out := []models.Worklog{}
	for _, w := range r.t.work.worklogs {
		if match(w) {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r worklogs) ListByUserDay(ctx context.Context, userID int, day time.Time) ([]models.Worklog, error) {
	day = models.DateOf(day)
	return r.filter(func(w models.Worklog) bool { return w.UserID == userID && w.Date.Equal(day) }), nil
}

func (r worklogs) ListByDay(ctx context.Context, day time.Time) ([]models.Worklog, error) {
	day = models.DateOf(day)
	return r.filter(func(w models.Worklog) bool { return w.Date.Equal(day) }), nil
}

func (r worklogs) SumHoursByTask(ctx context.Context, taskID int) (float64, error) {
	total := 0.0
	for _, w := range r.filter(func(w models.Worklog) bool { return w.TaskID == taskID }) {
		total += w.Hours
	}
	return total, nil
}

func (r worklogs) SumHoursByUserDay(ctx context.Context, userID int, day time.Time) (float64, error) {
	logs, _ := r.ListByUserDay(ctx, userID, day)
	total := 0.0
	for _, w := range logs {
		total += w.Hours
	}
	return total, nil
}

type sessions struct {
	t   *tx
	now func() time.Time
}

func (r sessions) Create(ctx context.Context, s *models.Session) error {
	for _, existing := range r.t.work.sessions {
		if existing.Token == s.Token {
			return apperror.InvalidInput("Session token already exists")
		}
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = r.now()
	}
	s.ID = r.t.work.id()
	r.t.work.sessions = append(r.t.work.sessions, *s)
	return nil
}

func (r sessions) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	for _, s := range r.t.work.sessions {
		if s.Token == token {
			found := s
			return &found, nil
		}
	}
	return nil, apperror.NotFound("Session not found")
}

func (r sessions) DeleteByToken(ctx context.Context, token string) error {
	kept := r.t.work.sessions[:0:0]
	for _, s := range r.t.work.sessions {
		if s.Token != token {
			kept = append(kept, s)
		}
	}
	r.t.work.sessions = kept
	return nil
}

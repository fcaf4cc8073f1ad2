package web

import (
	"worktrack/internal/middleware"
	"worktrack/internal/models"
	"worktrack/internal/tracker"

	"github.com/gofiber/fiber/v2"
)

type adminTask struct {
	models.Task
	Assignee *models.User
}

func (h *handlers) AdminPage(c *fiber.Ctx) error {
	ctx := c.UserContext()
	uow := middleware.CurrentUnitOfWork(c)

	users, err := uow.Users.List(ctx)
	if err != nil {
		return err
	}
	tasks, err := uow.Tasks.ListByDeadline(ctx)
	if err != nil {
		return err
	}

	userMap := make(map[int]models.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}
	rows := make([]adminTask, 0, len(tasks))
	for _, t := range tasks {
		row := adminTask{Task: t}
		if t.AssigneeID.Valid {
			if u, ok := userMap[int(t.AssigneeID.Int64)]; ok {
				row.Assignee = &u
			}
		}
		rows = append(rows, row)
	}

	return c.Render("admin", fiber.Map{
		"Title": "Admin",
		"User":  middleware.CurrentUser(c),
		"Users": users,
		"Tasks": rows,
		"Roles": []models.Role{models.RoleAdmin, models.RoleEmployee, models.RoleViewer},
		"Today": models.DateOf(h.deps.Today()),
	})
}

func (h *handlers) CreateUser(c *fiber.Ctx) error {
	var req createUserForm
	if err := parseForm(c, &req); err != nil {
		return err
	}
	_, err := tracker.CreateUser(c.UserContext(), middleware.CurrentUnitOfWork(c), middleware.CurrentUser(c), tracker.NewUser{
		Name:     req.Name,
		Login:    req.Login,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.Redirect("/admin", fiber.StatusSeeOther)
}

func (h *handlers) ToggleActive(c *fiber.Ctx) error {
	var req toggleActiveForm
	if err := parseForm(c, &req); err != nil {
		return err
	}
	if _, err := tracker.ToggleActive(c.UserContext(), middleware.CurrentUnitOfWork(c), middleware.CurrentUser(c), req.UserID); err != nil {
		return err
	}
	return c.Redirect("/admin", fiber.StatusSeeOther)
}

func (h *handlers) CreateTask(c *fiber.Ctx) error {
	var req createTaskForm
	if err := parseForm(c, &req); err != nil {
		return err
	}
	_, err := tracker.CreateTask(c.UserContext(), middleware.CurrentUnitOfWork(c), middleware.CurrentUser(c), tracker.NewTask{
		Title:        req.Title,
		AssigneeID:   req.AssigneeID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		PlannedHours: req.PlannedHours,
		Priority:     req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Redirect("/admin", fiber.StatusSeeOther)
}

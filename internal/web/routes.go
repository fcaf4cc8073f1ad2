package web

import (
	"time"

	"worktrack/internal/auth"
	"worktrack/internal/config"
	"worktrack/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func RegisterRoutes(app *fiber.App, deps config.Dependencies) {
	h := &handlers{deps: deps}
	uow := middleware.UnitOfWork(deps.Store)
	session := middleware.RequireSession(deps.Sessions, deps.Config.SessionCookie)
	can := middleware.RequireCapability

	// Auth
	login := []fiber.Handler{uow, h.Login}
	if limit := deps.Config.LoginRateLimit; limit > 0 {
		login = append([]fiber.Handler{limiter.New(limiter.Config{
			Max:        limit,
			Expiration: 1 * time.Minute,
			Storage:    deps.LimiterStorage,
			LimitReached: func(c *fiber.Ctx) error {
				return fiber.NewError(fiber.StatusTooManyRequests, "Too many login attempts")
			},
		})}, login...)
	}
	app.Get("/login", h.LoginForm)
	app.Post("/login", login...)
	app.Get("/logout", uow, h.Logout)
	app.Get("/", uow, h.Root)

	// Admin
	admin := app.Group("/admin", uow, session, can(auth.CapAdmin))
	admin.Get("/", h.AdminPage)
	admin.Post("/users/create", h.CreateUser)
	admin.Post("/users/toggle_active", h.ToggleActive)
	admin.Post("/tasks/create", h.CreateTask)

	// Day plan
	day := app.Group("/day", uow, session, can(auth.CapDayLog))
	day.Get("/", h.DayPage)
	day.Post("/log", h.LogDay)

	// Reports
	app.Get("/week", uow, session, can(auth.CapWeek), h.WeekPage)
	app.Get("/reports/daily", uow, session, can(auth.CapDailyReport), h.DailyReport)
}

type handlers struct {
	deps config.Dependencies
}

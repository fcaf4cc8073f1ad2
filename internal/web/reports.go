package web

import (
	"worktrack/internal/middleware"
	"worktrack/internal/models"
	"worktrack/internal/report"

	"github.com/gofiber/fiber/v2"
)

func (h *handlers) WeekPage(c *fiber.Ctx) error {
	day, err := dateParam(c, "d", h.deps.Today())
	if err != nil {
		return err
	}
	view, err := report.BuildWeekView(c.UserContext(), middleware.CurrentUnitOfWork(c), day)
	if err != nil {
		return err
	}
	return c.Render("week", fiber.Map{
		"Title": "Week of " + models.FormatDate(view.WeekStart),
		"User":  middleware.CurrentUser(c),
		"View":  view,
	})
}

func (h *handlers) DailyReport(c *fiber.Ctx) error {
	day, err := dateParam(c, "d", h.deps.Today())
	if err != nil {
		return err
	}
	rep, err := report.BuildDailyReport(c.UserContext(), middleware.CurrentUnitOfWork(c), day)
	if err != nil {
		return err
	}
	return c.Render("report_daily", fiber.Map{
		"Title":  "Daily report " + models.FormatDate(day),
		"User":   middleware.CurrentUser(c),
		"Report": rep,
	})
}

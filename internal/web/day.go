package web

import (
	"worktrack/internal/apperror"
	"worktrack/internal/middleware"
	"worktrack/internal/models"
	"worktrack/internal/report"
	"worktrack/internal/tracker"

	"github.com/gofiber/fiber/v2"
)

func (h *handlers) DayPage(c *fiber.Ctx) error {
	day, err := dateParam(c, "d", h.deps.Today())
	if err != nil {
		return err
	}
	user := middleware.CurrentUser(c)
	view, err := report.BuildDayView(c.UserContext(), middleware.CurrentUnitOfWork(c), user, day)
	if err != nil {
		return err
	}
	return c.Render("day", fiber.Map{
		"Title": "Day " + models.FormatDate(day),
		"User":  user,
		"View":  view,
	})
}

// LogDay saves one task's hours and progress for a day, then goes back to
// that day's page. An empty submission also redirects (303); negative or
// non-numeric hours answer 400 even when the rest of the form is empty.
func (h *handlers) LogDay(c *fiber.Ctx) error {
	var req dayLogForm
	if err := parseForm(c, &req); err != nil {
		return err
	}
	day, err := models.ParseDate(req.Date)
	if err != nil {
		return apperror.InvalidInput("Invalid date")
	}
	hours, err := parseHours(req.Hours)
	if err != nil {
		return err
	}

	_, err = tracker.LogDay(c.UserContext(), middleware.CurrentUnitOfWork(c), middleware.CurrentUser(c), tracker.DayLogInput{
		Date:     day,
		TaskID:   req.TaskID,
		Hours:    hours,
		Comment:  req.Comment,
		Progress: parseProgress(req.Progress),
		Done:     req.IsDone != "",
	})
	if err != nil {
		return err
	}
	return c.Redirect("/day?d="+models.FormatDate(day), fiber.StatusSeeOther)
}

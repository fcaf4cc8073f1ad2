package middleware

import (
	"errors"

	"worktrack/internal/repository"

	"github.com/gofiber/fiber/v2"
)

const localUnitOfWork = "uow"

// UnitOfWork opens one transaction per request. It commits when the handler
// returns no error and the response status is below 400; otherwise the work
// is rolled back.
func UnitOfWork(store repository.Beginner) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uow, err := store.Begin(c.UserContext())
		if err != nil {
			return err
		}
		defer uow.Rollback()

		c.Locals(localUnitOfWork, uow)
		if err := c.Next(); err != nil {
			return err
		}
		if c.Response().StatusCode() >= fiber.StatusBadRequest {
			return nil
		}
		if err := uow.Commit(); err != nil && !errors.Is(err, repository.ErrUnitOfWorkDone) {
			return err
		}
		return nil
	}
}

func CurrentUnitOfWork(c *fiber.Ctx) *repository.UnitOfWork {
	uow, _ := c.Locals(localUnitOfWork).(*repository.UnitOfWork)
	return uow
}

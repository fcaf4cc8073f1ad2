package middleware

import (
	"errors"

	"worktrack/internal/apperror"
	"worktrack/internal/auth"
	"worktrack/internal/models"

	"github.com/gofiber/fiber/v2"
)

const localUser = "user"

// RequireSession resolves the session cookie to an active user and stores it
// in c.Locals. Must run after UnitOfWork.
func RequireSession(sessions *auth.SessionManager, cookie string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uow := CurrentUnitOfWork(c)
		user, err := sessions.Resolve(c.UserContext(), uow, c.Cookies(cookie))
		if err != nil {
			if errors.Is(err, apperror.ErrUnauthenticated) {
				// simpan penghapusan session kedaluwarsa
				if err := uow.Commit(); err != nil {
					return err
				}
			}
			return err
		}
		c.Locals(localUser, user)
		return c.Next()
	}
}

// RequireCapability rejects users whose role is outside the capability's set.
func RequireCapability(capability auth.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := auth.Require(CurrentUser(c), capability); err != nil {
			return err
		}
		return c.Next()
	}
}

// CurrentUser returns the user set by RequireSession, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(localUser).(*models.User)
	return u
}

package web

import (
	"errors"
	"time"

	"worktrack/internal/apperror"
	"worktrack/internal/auth"
	"worktrack/internal/middleware"
	"worktrack/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (h *handlers) sessionCookie(token string) *fiber.Cookie {
	cookie := &fiber.Cookie{
		Name:     h.deps.Config.SessionCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.deps.Config.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if ttl := h.deps.Config.SessionTTL; ttl > 0 {
		cookie.Expires = time.Now().Add(ttl)
	}
	return cookie
}

func (h *handlers) LoginForm(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{"Title": "Login"})
}

// Login checks credentials. Failures re-render the form with 401 and a
// generic message.
func (h *handlers) Login(c *fiber.Ctx) error {
	var req loginForm
	if err := parseForm(c, &req); err != nil {
		logger.SecurityLogger.Warn("Malformed login form", zap.Error(err))
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{
			"Title": "Login",
			"Error": "Invalid login or password",
			"Login": req.Login,
		})
	}

	uow := middleware.CurrentUnitOfWork(c)
	_, token, err := h.deps.Sessions.Login(c.UserContext(), uow, req.Login, req.Password)
	if errors.Is(err, apperror.ErrUnauthenticated) {
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{
			"Title": "Login",
			"Error": apperror.Message(err),
			"Login": req.Login,
		})
	}
	if err != nil {
		return err
	}

	c.Cookie(h.sessionCookie(token))
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Logout selalu menghapus cookie, walaupun session sudah tidak ada.
func (h *handlers) Logout(c *fiber.Ctx) error {
	uow := middleware.CurrentUnitOfWork(c)
	if err := h.deps.Sessions.Destroy(c.UserContext(), uow, c.Cookies(h.deps.Config.SessionCookie)); err != nil {
		logger.ErrorLogger.Error("Destroying session failed", zap.Error(err))
		_ = uow.Rollback()
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.deps.Config.SessionCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.deps.Config.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
	return c.Redirect("/login", fiber.StatusSeeOther)
}

// Root sends signed-in users to their landing page and everyone else to /login.
func (h *handlers) Root(c *fiber.Ctx) error {
	uow := middleware.CurrentUnitOfWork(c)
	user, err := h.deps.Sessions.Resolve(c.UserContext(), uow, c.Cookies(h.deps.Config.SessionCookie))
	if errors.Is(err, apperror.ErrUnauthenticated) {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	if err != nil {
		return err
	}
	return c.Redirect(auth.LandingPath(user.Role), fiber.StatusSeeOther)
}

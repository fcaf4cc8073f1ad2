// Package web serves the HTML interface: login, admin panel, day log, week
// plan and daily report.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"worktrack/internal/config"
	"worktrack/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templateFS embed.FS

func newEngine() (*html.Engine, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFuncMap(templateFuncs())
	if err := engine.Load(); err != nil {
		return nil, err
	}
	return engine, nil
}

// NewApp builds the fiber application with views, middleware and routes.
func NewApp(deps config.Dependencies) (*fiber.App, error) {
	engine, err := newEngine()
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:               "worktrack",
		Views:                 engine,
		ViewsLayout:           "layouts/main",
		ErrorHandler:          middleware.ErrorResponder,
		DisableStartupMessage: true,
	})
	app.Use(middleware.ErrorHandler())

	RegisterRoutes(app, deps)
	return app, nil
}

package config

import (
	"time"

	"worktrack/configs"
	"worktrack/internal/auth"
	"worktrack/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Validate dipakai bersama oleh semua handler untuk memvalidasi form.
var Validate = validator.New()

// Dependencies dibangun sekali di command serve lalu diteruskan ke web.NewApp.
// Test membangunnya dengan repotest.Store sebagai Store.
type Dependencies struct {
	Config   configs.Config
	Store    repository.Beginner
	Sessions *auth.SessionManager
	// LimiterStorage menyimpan hitungan percobaan login. Nil berarti memori lokal.
	LimiterStorage fiber.Storage
	// Now menentukan "hari ini" untuk parameter tanggal yang kosong.
	Now func() time.Time
}

func (d Dependencies) Today() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

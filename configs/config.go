package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort        string
	DBHost         string
	DBPort         int
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	RedisHost      string
	RedisPort      int
	RedisPassword  string
	SessionCookie  string
	SessionTTL     time.Duration
	CookieSecure   bool
	LoginRateLimit int
	LogDir         string
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func LoadConfig() Config {
	// Muat file .env
	if err := godotenv.Load(); err != nil {
		// Hanya log jika tidak dalam mode test
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using default values")
		}
	}

	sessionTTL, err := time.ParseDuration(getenv("SESSION_TTL", "0s"))
	if err != nil {
		log.Printf("Invalid SESSION_TTL %q, sessions will not expire", os.Getenv("SESSION_TTL"))
		sessionTTL = 0
	}

	cookieSecure, _ := strconv.ParseBool(os.Getenv("COOKIE_SECURE"))

	return Config{
		AppPort:        getenv("APP_PORT", "3004"),
		DBHost:         getenv("DB_HOST", "localhost"),
		DBPort:         getenvInt("DB_PORT", 5432),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBSSLMode:      getenv("DB_SSLMODE", "disable"),
		RedisHost:      os.Getenv("REDIS_HOST"),
		RedisPort:      getenvInt("REDIS_PORT", 6379),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		SessionCookie:  getenv("SESSION_COOKIE", "session"),
		SessionTTL:     sessionTTL,
		CookieSecure:   cookieSecure,
		LoginRateLimit: getenvInt("LOGIN_RATE_LIMIT", 20),
		LogDir:         getenv("LOG_DIR", "logs"),
	}
}

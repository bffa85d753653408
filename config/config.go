package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	DBUrl    string
	LogLevel string
	// SMTP Configuration
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPSecure   string // "ssl" (implicit TLS) or "starttls"
	// Contact form identity
	ContactEmailTo string // operator mailbox; defaults to the SMTP login
	ContactBCC     string // monitoring blind-copy on every notification
	SiteName       string
	SiteURL        string
	// Session / throttling
	SessionSecret          string
	SessionCookieSecure    bool // Secure attribute on the session cookie; disable only for plain-HTTP development
	RateLimitWindowSeconds int
	// Redis Configuration (optional; in-memory session store when absent)
	RedisURL      string
	RedisPassword string
}

func LoadConfig() (*Config, error) {
	// Load .env file (effective locally, ignored in production when absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		DBUrl:    getEnv("DATABASE_URL", ""),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		// SMTP Configuration
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "465"),
		SMTPUsername: getEnv("SMTP_USER", getEnv("SMTP_USERNAME", "")),
		SMTPPassword: getEnv("SMTP_PASS", getEnv("SMTP_PASSWORD", "")),
		SMTPSecure:   getEnv("SMTP_SECURE", "ssl"),
		// Contact form identity
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", ""),
		ContactBCC:     getEnv("CONTACT_BCC", "iphyze@gmail.com"),
		SiteName:       getEnv("SITE_NAME", "Chidavisa Synergy Hub"),
		SiteURL:        getEnv("SITE_URL", "https://aarglobalconstructionltd.com"),
		// Session / throttling
		SessionSecret:          getEnv("SESSION_SECRET", ""),
		SessionCookieSecure:    getEnvBool("SESSION_COOKIE_SECURE", true),
		RateLimitWindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
	}

	// The operator mailbox falls back to the SMTP login, mirroring
	// providers where the login is the verified sender address.
	if cfg.ContactEmailTo == "" {
		cfg.ContactEmailTo = cfg.SMTPUsername
	}

	// Basic validation to avoid confusing failures later
	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.SMTPHost == "" || cfg.SMTPUsername == "" || cfg.SMTPPassword == "" {
		log.Println("WARNING: SMTP settings incomplete. Contact notifications will fail until configured.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Session throttling will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

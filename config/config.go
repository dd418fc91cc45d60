package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

var (
	MAIN_ROUTES string
	APP_PORT    string
	APP_ENV     string
	LogLevel    string

	JWTSecret     string
	allowedEmails map[string]bool

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	SnowflakeNode int64

	allowedOrigins map[string]bool
)

// LoadConfig reads .env (when present) and fills the package variables.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Server Configuration
	MAIN_ROUTES = getEnv("MAIN_ROUTES", "/api/v1")
	APP_PORT = getEnv("APP_PORT", "9000")
	APP_ENV = getEnv("APP_ENV", "development")
	LogLevel = getEnv("LOG_LEVEL", "info")

	// Auth Configuration
	JWTSecret = getEnv("JWT_SECRET", "crm_dashboard_secret_key")
	allowedEmails = parseSet(getEnv("ALLOWED_EMAILS", ""), strings.ToLower)

	// Database Configuration
	DBDriver = getEnv("DB_DRIVER", "postgres")
	DBHost = getEnv("DB_HOST", "localhost")
	DBPort = getEnv("DB_PORT", "5432")
	DBUser = getEnv("DB_USER", "crm")
	DBPassword = getEnv("DB_PASSWORD", "")
	DBName = getEnv("DB_NAME", "crm")

	// Mail Configuration
	SMTPHost = getEnv("SMTP_HOST", "")
	SMTPPort = getEnvAsInt("SMTP_PORT", 465)
	SMTPUser = getEnv("SMTP_USER", "")
	SMTPPassword = getEnv("SMTP_PASSWORD", "")
	SMTPFrom = getEnv("SMTP_FROM", SMTPUser)

	SnowflakeNode = int64(getEnvAsInt("SNOWFLAKE_NODE", 1))

	loadAllowedOrigins()
}

// getEnv returns the variable or the default when unset or blank
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func parseSet(raw string, normalize func(string) string) map[string]bool {
	set := make(map[string]bool)
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if normalize != nil {
			item = normalize(item)
		}
		set[item] = true
	}
	return set
}

func loadAllowedOrigins() {
	allowedOrigins = parseSet(getEnv("ALLOWED_ORIGINS", ""), nil)
	if len(allowedOrigins) == 0 {
		allowedOrigins = map[string]bool{
			"http://127.0.0.1:3000": true,
			"http://localhost:3000": true,
		}
	}
}

// SetAllowedEmails replaces the login allow-list.
func SetAllowedEmails(emails ...string) {
	allowedEmails = parseSet(strings.Join(emails, ","), strings.ToLower)
}

// IsEmailAllowed reports whether email passes the gate. An empty list lets
// every authenticated email through.
func IsEmailAllowed(email string) bool {
	if len(allowedEmails) == 0 {
		return true
	}
	return allowedEmails[strings.ToLower(strings.TrimSpace(email))]
}

func SetupCORS(app *fiber.App) {
	app.Use(func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		if allowedOrigins[origin] {
			c.Set("Access-Control-Allow-Origin", origin)
			c.Set("Access-Control-Allow-Methods", "GET,POST,PUT,OPTIONS")
			c.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
			c.Set("Access-Control-Allow-Credentials", "true")
		}

		// Handle preflight request
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	})
}

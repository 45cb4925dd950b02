package config

import (
	"fmt"     // DSN formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For list parsing
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config holds the application configuration
type Config struct {
	AppPort           string        // Application port
	DBDriver          string        // Database driver: mysql or postgres
	DBUser            string        // Database user
	DBPassword        string        // Database password
	DBHost            string        // Database host
	DBPort            string        // Database port
	DBName            string        // Database name
	DBSSLMode         string        // SSL mode (postgres only)
	JWTSecret         string        // JWT secret key used to sign session cookies
	SessionTTL        time.Duration // Session lifetime
	RedisAddr         string        // Redis server address, empty disables caching
	RedisPass         string        // Redis password
	RedisDB           int           // Redis database number
	IsProd            bool          // Is production environment
	TemplatesDir      string        // Directory with *.html page templates, empty renders JSON
	AllowedOrigins    []string      // CORS origins for the JSON endpoints
	SMTPHost          string        // SMTP host, empty disables confirmation mail
	SMTPPort          int           // SMTP port
	SMTPUser          string        // SMTP username
	SMTPPass          string        // SMTP password
	MailFrom          string        // Sender address for confirmation mail
	CartPurgeInterval time.Duration // How often expired cart entries are purged
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, applying defaults for unset keys
func FromEnv(getenv func(string) string) *Config {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}
	redisDB, _ := strconv.Atoi(get("REDIS_DB", "0"))
	smtpPort, err := strconv.Atoi(get("SMTP_PORT", "587"))
	if err != nil {
		smtpPort = 587
	}
	sessionTTL, err := time.ParseDuration(get("SESSION_TTL", "24h"))
	if err != nil || sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	purge, err := time.ParseDuration(get("CART_PURGE_INTERVAL", "1h"))
	if err != nil || purge <= 0 {
		purge = time.Hour
	}
	driver := strings.ToLower(get("DB_DRIVER", DriverMySQL))
	defPort := "3306"
	if driver == DriverPostgres {
		defPort = "5432"
	}
	var origins []string
	for _, o := range strings.Split(get("ALLOWED_ORIGINS", ""), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return &Config{
		AppPort:           get("APP_PORT", "8080"),
		DBDriver:          driver,
		DBUser:            get("DB_USER", ""),
		DBPassword:        get("DB_PASSWORD", ""),
		DBHost:            get("DB_HOST", "localhost"),
		DBPort:            get("DB_PORT", defPort),
		DBName:            get("DB_NAME", "travel_booking"),
		DBSSLMode:         get("DB_SSLMODE", "disable"),
		JWTSecret:         get("JWT_SECRET", ""),
		SessionTTL:        sessionTTL,
		RedisAddr:         get("REDIS_ADDR", ""),
		RedisPass:         get("REDIS_PASS", ""),
		RedisDB:           redisDB,
		IsProd:            get("IS_PROD", "") == "true",
		TemplatesDir:      get("TEMPLATES_DIR", ""),
		AllowedOrigins:    origins,
		SMTPHost:          get("SMTP_HOST", ""),
		SMTPPort:          smtpPort,
		SMTPUser:          get("SMTP_USERNAME", ""),
		SMTPPass:          get("SMTP_PASSWORD", ""),
		MailFrom:          get("MAIL_FROM", "reservas@cvc.com"),
		CartPurgeInterval: purge,
	}
}

// DSN returns the Data Source Name for the configured driver
func (c *Config) DSN() string {
	if c.DBDriver == DriverPostgres {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
	}
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&charset=utf8mb4"
}

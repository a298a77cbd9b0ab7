package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"family-records-go/pkg/logger"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string
	Env      string
	App      AppConfig
	DB       DBConfig
	Auth     AuthConfig
	Mail     MailConfig
}

type AppConfig struct {
	BaseURL             string
	CORSOrigins         []string
	PageSize            int
	ResetTokenTTL       time.Duration
	FamilyDeleteCascade bool
	MediaDir            string
	HashidSalt          string
	HashidMinLength     int
}

type DBConfig struct {
	Driver          string
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type MailConfig struct {
	Enabled   bool
	AWSRegion string
	FromEmail string
	FromName  string
}

func Load(log logger.Logger) (Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Warn("config: .env not loaded", "err", err)
		}
	} else {
		log.Debug("config: .env loaded")
	}

	return Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		App: AppConfig{
			BaseURL:             getEnv("APP_BASE_URL", "http://localhost:8080"),
			CORSOrigins:         getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
			PageSize:            getEnvInt("APP_PAGE_SIZE", 10),
			ResetTokenTTL:       getEnvDuration("RESET_TOKEN_TTL", 10*time.Minute),
			FamilyDeleteCascade: getEnvBool("FAMILY_DELETE_CASCADE", true),
			MediaDir:            getEnv("MEDIA_DIR", "media"),
			HashidSalt:          getEnv("HASHID_SALT", "family-records"),
			HashidMinLength:     getEnvInt("HASHID_MIN_LENGTH", 8),
		},
		DB: DBConfig{
			Driver:          getEnv("DB_DRIVER", "postgres"),
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "family_records"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getEnvDuration("JWT_TOKEN_TTL", 24*time.Hour),
		},
		Mail: MailConfig{
			Enabled:   getEnvBool("MAIL_ENABLED", false),
			AWSRegion: getEnv("AWS_REGION", "us-east-1"),
			FromEmail: getEnv("MAIL_FROM_EMAIL", "noreply@example.com"),
			FromName:  getEnv("MAIL_FROM_NAME", "Family Records"),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	if c.Driver == "sqlite" {
		return c.Name + ".db"
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}

package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	StorageDriver string
	DatabaseURL   string
	RunMigrations bool
	DBMaxConns    int32

	// The session collaborator signs tokens with this secret; the portal only verifies them.
	JWTSecret string
	JWTIssuer string

	LogFormat string
	LogLevel  string

	VerifyRateLimit   string // ulule formatted rate, e.g. "5-M"
	APIRateLimit      string
	RateLimitRedisURL string

	AuditDetailsMaxLen          int
	AuditQueryPageSize          int
	NotificationDeliveryTimeout time.Duration

	CORSAllowedOrigins []string

	// Optional client admin created at startup when the username is free.
	BootstrapAdminUsername string
	BootstrapAdminEmail    string
	BootstrapAdminPassword string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("STORAGE_DRIVER", StorageMemory)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_ISSUER", "banking-portal")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERIFY_RATE_LIMIT", "5-M")
	v.SetDefault("API_RATE_LIMIT", "100-M")
	v.SetDefault("RATE_LIMIT_REDIS_URL", "")
	v.SetDefault("AUDIT_DETAILS_MAX_LEN", 1024)
	v.SetDefault("AUDIT_QUERY_PAGE_SIZE", 100)
	v.SetDefault("NOTIFICATION_DELIVERY_TIMEOUT", "10s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("BOOTSTRAP_ADMIN_USERNAME", "")
	v.SetDefault("BOOTSTRAP_ADMIN_EMAIL", "")
	v.SetDefault("BOOTSTRAP_ADMIN_PASSWORD", "")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:              v.GetString("PORT"),
		IsProduction:      v.GetBool("IS_PRODUCTION"),
		StorageDriver:     strings.ToLower(v.GetString("STORAGE_DRIVER")),
		DatabaseURL:       v.GetString("PGSQL_URL"),
		RunMigrations:     v.GetBool("RUN_MIGRATIONS"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		JWTIssuer:         v.GetString("JWT_ISSUER"),
		LogFormat:         v.GetString("LOG_FORMAT"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		VerifyRateLimit:   v.GetString("VERIFY_RATE_LIMIT"),
		APIRateLimit:      v.GetString("API_RATE_LIMIT"),
		RateLimitRedisURL: v.GetString("RATE_LIMIT_REDIS_URL"),
		DBMaxConns:        v.GetInt32("DB_MAX_CONNS"),

		BootstrapAdminUsername: v.GetString("BOOTSTRAP_ADMIN_USERNAME"),
		BootstrapAdminEmail:    v.GetString("BOOTSTRAP_ADMIN_EMAIL"),
		BootstrapAdminPassword: v.GetString("BOOTSTRAP_ADMIN_PASSWORD"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
		}
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if cfg.BootstrapAdminUsername != "" && cfg.BootstrapAdminPassword == "" {
		return nil, fmt.Errorf("BOOTSTRAP_ADMIN_PASSWORD is required with BOOTSTRAP_ADMIN_USERNAME")
	}

	cfg.AuditDetailsMaxLen = v.GetInt("AUDIT_DETAILS_MAX_LEN")
	if cfg.AuditDetailsMaxLen <= 0 {
		cfg.AuditDetailsMaxLen = 1024
		log.Printf("Warning: Invalid AUDIT_DETAILS_MAX_LEN. Defaulting to %d.\n", cfg.AuditDetailsMaxLen)
	}

	cfg.AuditQueryPageSize = v.GetInt("AUDIT_QUERY_PAGE_SIZE")
	if cfg.AuditQueryPageSize <= 0 {
		cfg.AuditQueryPageSize = 100
		log.Printf("Warning: Invalid AUDIT_QUERY_PAGE_SIZE. Defaulting to %d.\n", cfg.AuditQueryPageSize)
	}

	// Load notification delivery timeout (e.g., "10s", "1m")
	timeoutStr := v.GetString("NOTIFICATION_DELIVERY_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		timeout = 10 * time.Second
		log.Printf("Warning: Invalid value for NOTIFICATION_DELIVERY_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.NotificationDeliveryTimeout = timeout

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}

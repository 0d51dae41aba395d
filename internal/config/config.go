package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage drivers accepted by STORAGE_DRIVER
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Config holds all configuration values
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Storage      StorageConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Security     SecurityConfig
	Mail         MailConfig
	SMS          SMSConfig
	Registration RegistrationConfig
	Inventory    InventoryConfig
	Snapshot     SnapshotConfig
	CORS         CORSConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// IsDevelopment reports whether the server runs in development mode
func (c ServerConfig) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + strconv.Itoa(c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// StorageConfig selects the store implementation
type StorageConfig struct {
	Driver     string
	SQLitePath string
	Seed       bool
	// AdminEmail and AdminPasswordHash bootstrap one admin account at
	// startup when both are set. The hash comes from cmd/genhash.
	AdminEmail        string
	AdminPasswordHash string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// SecurityConfig holds session settings
type SecurityConfig struct {
	SessionEncryptionKey string
	SessionTTL           time.Duration
	CookieSecure         bool
}

// MailConfig holds SMTP settings for the email channel
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether an SMTP host is configured
func (c MailConfig) Enabled() bool {
	return c.Host != ""
}

// SMSConfig holds the SMS gateway webhook
type SMSConfig struct {
	WebhookURL string
	Token      string
}

func (c SMSConfig) Enabled() bool {
	return c.WebhookURL != ""
}

// RegistrationConfig holds verification code settings
type RegistrationConfig struct {
	CodeTTL         time.Duration
	ResetCodeTTL    time.Duration
	CleanupInterval time.Duration
	DevFallback     bool
}

type InventoryConfig struct {
	DefaultMinStock int
}

// SnapshotConfig controls the periodic JSON backup
type SnapshotConfig struct {
	Path     string
	Interval time.Duration
	S3       S3Config
}

// S3Config is optional; an empty bucket disables the upload
type S3Config struct {
	Bucket          string
	Key             string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "wardrobe"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Storage: StorageConfig{
			Driver:     strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory)),
			SQLitePath: getEnv("SQLITE_PATH", "wardrobe.db"),
			Seed:       getEnvAsBool("STORAGE_SEED", true),

			AdminEmail:        getEnv("ADMIN_EMAIL", ""),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Security: SecurityConfig{
			SessionEncryptionKey: getEnv("SESSION_ENCRYPTION_KEY", "0000000000000000000000000000000000000000000000000000000000000000"), // 32-bytes hex string
			SessionTTL:           getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			CookieSecure:         getEnvAsBool("COOKIE_SECURE", false),
		},
		Mail: MailConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@wardrobe.local"),
		},
		SMS: SMSConfig{
			WebhookURL: getEnv("SMS_WEBHOOK_URL", ""),
			Token:      getEnv("SMS_WEBHOOK_TOKEN", ""),
		},
		Registration: RegistrationConfig{
			CodeTTL:         getEnvAsDuration("REGISTRATION_CODE_TTL", 30*time.Minute),
			ResetCodeTTL:    getEnvAsDuration("PASSWORD_RESET_TTL", 30*time.Minute),
			CleanupInterval: getEnvAsDuration("REGISTRATION_CLEANUP_INTERVAL", 10*time.Minute),
			DevFallback:     getEnvAsBool("REGISTRATION_DEV_FALLBACK", false),
		},
		Inventory: InventoryConfig{
			DefaultMinStock: getEnvAsInt("INVENTORY_DEFAULT_MIN_STOCK", 5),
		},
		Snapshot: SnapshotConfig{
			Path:     getEnv("SNAPSHOT_PATH", "data/snapshot.json"),
			Interval: getEnvAsDuration("SNAPSHOT_INTERVAL", 5*time.Minute),
			S3: S3Config{
				Bucket:          getEnv("SNAPSHOT_S3_BUCKET", ""),
				Key:             getEnv("SNAPSHOT_S3_KEY", "snapshots/latest.json"),
				Region:          getEnv("SNAPSHOT_S3_REGION", "us-east-1"),
				Endpoint:        getEnv("SNAPSHOT_S3_ENDPOINT", ""),
				AccessKeyID:     getEnv("SNAPSHOT_S3_ACCESS_KEY_ID", ""),
				SecretAccessKey: getEnv("SNAPSHOT_S3_SECRET_ACCESS_KEY", ""),
			},
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

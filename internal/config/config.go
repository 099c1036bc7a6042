package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	defaultHTTPAddr         = ":8080"
	defaultDatabaseURL      = "inkspace.db"
	defaultLogLevel         = "info"
	defaultJWTSecret        = "change-me-jwt-secret"
	defaultSessionTTL       = "72h"
	defaultPollInterval     = "30s"
	defaultToastDuration    = "3000ms"
	defaultStorageDriver    = "local"
	defaultUploadsDir       = "./uploads"
	defaultUploadsURL       = "/static/uploads"
	defaultPreferencesDir   = "./preferences"
	defaultDevAdminUsername = "admin"
	defaultDevAdminPassword = "admin"
	defaultOpenAIModel      = "gpt-4o-mini"
)

type StorageConfig struct {
	Driver      string // local | s3
	UploadsDir  string
	UploadsURL  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string
	S3PublicURL string
}

type RedisConfig struct {
	Addr     string // empty disables the shared session cache
	Password string
	DB       int
}

type AIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string
	LogLevel    string

	JWTSecret  string
	SessionTTL time.Duration

	// DevAdminBypass lets a reserved non-email credential pair log in as admin
	// without touching the identity store. Development only.
	DevAdminBypass   bool
	DevAdminUsername string
	DevAdminPassword string

	NotificationPollInterval time.Duration
	ToastDuration            time.Duration
	PreferencesDir           string

	Storage    StorageConfig
	Redis      RedisConfig
	AI         AIConfig
	MapsAPIKey string
}

// Load reads configuration from the environment, after merging an optional
// .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = getEnv("HTTP_ADDR", defaultHTTPAddr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	if cfg.SessionTTL, err = parseDurationEnv("SESSION_TTL", defaultSessionTTL); err != nil {
		return nil, err
	}
	if cfg.NotificationPollInterval, err = parseDurationEnv("NOTIFICATION_POLL_INTERVAL", defaultPollInterval); err != nil {
		return nil, err
	}
	if cfg.ToastDuration, err = parseDurationEnv("TOAST_DURATION", defaultToastDuration); err != nil {
		return nil, err
	}

	cfg.DevAdminBypass = parseBoolEnv("DEV_ADMIN_BYPASS", strconv.FormatBool(!isProdLike(cfg.AppEnv)))
	cfg.DevAdminUsername = getEnv("DEV_ADMIN_USERNAME", defaultDevAdminUsername)
	cfg.DevAdminPassword = getEnv("DEV_ADMIN_PASSWORD", defaultDevAdminPassword)
	cfg.PreferencesDir = getEnv("PREFERENCES_DIR", defaultPreferencesDir)

	cfg.Storage = StorageConfig{
		Driver:      strings.ToLower(getEnv("STORAGE_DRIVER", defaultStorageDriver)),
		UploadsDir:  getEnv("UPLOADS_DIR", defaultUploadsDir),
		UploadsURL:  getEnv("UPLOADS_URL", defaultUploadsURL),
		S3Region:    os.Getenv("S3_REGION"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),
	}

	cfg.Redis = RedisConfig{Addr: os.Getenv("REDIS_ADDR"), Password: os.Getenv("REDIS_PASSWORD")}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		n, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", dbStr, err)
		}
		cfg.Redis.DB = n
	}

	cfg.AI = AIConfig{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
		Model:   getEnv("OPENAI_MODEL", defaultOpenAIModel),
	}
	cfg.MapsAPIKey = os.Getenv("MAPS_API_KEY")

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	if cfg.DevAdminBypass {
		log.Warn().Str("username", cfg.DevAdminUsername).Msg("dev admin bypass is enabled: admin sessions are granted without server-verified credentials")
	}
	return cfg, nil
}

func Validate(cfg *Config) error {
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if cfg.NotificationPollInterval <= 0 {
		return fmt.Errorf("NOTIFICATION_POLL_INTERVAL must be > 0")
	}
	if cfg.ToastDuration <= 0 {
		return fmt.Errorf("TOAST_DURATION must be > 0")
	}
	switch cfg.Storage.Driver {
	case "local":
	case "s3":
		if cfg.Storage.S3Bucket == "" || cfg.Storage.S3Region == "" {
			return fmt.Errorf("S3_BUCKET and S3_REGION are required when STORAGE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of: local, s3")
	}
	if cfg.DevAdminBypass && strings.Contains(cfg.DevAdminUsername, "@") {
		return fmt.Errorf("DEV_ADMIN_USERNAME must not be an email address")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.DevAdminBypass {
			return fmt.Errorf("in prod/release DEV_ADMIN_BYPASS must be false")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

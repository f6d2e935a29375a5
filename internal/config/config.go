package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// EnvProduction - значение APP_ENV для боевого окружения
	EnvProduction = "production"
	// EnvDevelopment - значение APP_ENV по умолчанию
	EnvDevelopment = "development"
)

// Config - структура для хранения конфигурации дашборда
type Config struct {
	HTTPPort  string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	AppEnv    string `env:"APP_ENV" envDefault:"development"`

	// Upstream API
	APIURL         string        `env:"API_URL" envDefault:"http://localhost:8000"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	ReportsLimit   int           `env:"REPORTS_LIMIT" envDefault:"100"`
	PollInterval   time.Duration `env:"POLL_INTERVAL" envDefault:"5s"`

	// Auth
	AuthToken      string `env:"AUTH_TOKEN"`
	AuthCookieName string `env:"AUTH_COOKIE_NAME" envDefault:"auth_token"`

	// Form
	MaxImageBytes int64 `env:"MAX_IMAGE_BYTES" envDefault:"5242880"`

	// Map Config
	MapCenterLat           float64 `env:"MAP_CENTER_LAT" envDefault:"37.7749"`
	MapCenterLng           float64 `env:"MAP_CENTER_LNG" envDefault:"-122.4194"`
	MapZoom                int     `env:"MAP_ZOOM" envDefault:"12"`
	DangerZoneRadiusMeters float64 `env:"DANGER_ZONE_RADIUS_METERS" envDefault:"500"`

	// Redis Config (пустой адрес отключает кеш и оповещения)
	RedisAddr   string        `env:"REDIS_ADDR"`
	RedisPass   string        `env:"REDIS_PASSWORD"`
	RedisDB     int           `env:"REDIS_DB" envDefault:"0"`
	SnapshotTTL time.Duration `env:"SNAPSHOT_TTL" envDefault:"10m"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogFormat:              getEnv("LOG_FORMAT", "json"),
		AppEnv:                 strings.ToLower(getEnv("APP_ENV", EnvDevelopment)),
		APIURL:                 strings.TrimRight(getEnv("API_URL", "http://localhost:8000"), "/"),
		RequestTimeout:         getEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second),
		ReportsLimit:           getEnvAsInt("REPORTS_LIMIT", 100),
		PollInterval:           getEnvAsDuration("POLL_INTERVAL", 5*time.Second),
		AuthToken:              os.Getenv("AUTH_TOKEN"),
		AuthCookieName:         getEnv("AUTH_COOKIE_NAME", "auth_token"),
		MaxImageBytes:          int64(getEnvAsInt("MAX_IMAGE_BYTES", 5<<20)),
		MapCenterLat:           getEnvAsFloat("MAP_CENTER_LAT", 37.7749),
		MapCenterLng:           getEnvAsFloat("MAP_CENTER_LNG", -122.4194),
		MapZoom:                getEnvAsInt("MAP_ZOOM", 12),
		DangerZoneRadiusMeters: getEnvAsFloat("DANGER_ZONE_RADIUS_METERS", 500),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisPass:              os.Getenv("REDIS_PASSWORD"),
		RedisDB:                getEnvAsInt("REDIS_DB", 0),
		SnapshotTTL:            getEnvAsDuration("SNAPSHOT_TTL", 10*time.Minute),
		WebhookURL:             os.Getenv("WEBHOOK_URL"),
		WebhookSecret:          os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:         getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:      getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:       getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения, без которых дашборд не сможет работать
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_URL must be an absolute URL, got %q", c.APIURL)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive")
	}
	if c.ReportsLimit < 1 {
		return fmt.Errorf("REPORTS_LIMIT must be at least 1")
	}
	if c.MaxImageBytes < 1 {
		return fmt.Errorf("MAX_IMAGE_BYTES must be positive")
	}
	if c.DangerZoneRadiusMeters <= 0 {
		return fmt.Errorf("DANGER_ZONE_RADIUS_METERS must be positive")
	}
	if c.AuthCookieName == "" {
		return fmt.Errorf("AUTH_COOKIE_NAME must not be empty")
	}
	return nil
}

// IsProduction сообщает, запущен ли дашборд в боевом режиме
func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

// RedisEnabled сообщает, настроен ли Redis
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

package environments

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Provider ProviderConfig
	Sync     SyncConfig
	Alert    AlertConfig
	Auth     AuthConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port string `envconfig:"SERVER_PORT" default:"8080"`
}

type DatabaseConfig struct {
	Host         string `envconfig:"DB_HOST"           default:"localhost"`
	Port         string `envconfig:"DB_PORT"           default:"3306"`
	User         string `envconfig:"DB_USER"           default:"gateway"`
	Password     string `envconfig:"DB_PASSWORD"       default:"gateway123"`
	DBName       string `envconfig:"DB_NAME"           default:"call_gateway"`
	MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
}

type RedisConfig struct {
	Host           string        `envconfig:"REDIS_HOST"             default:"localhost"`
	Port           string        `envconfig:"REDIS_PORT"             default:"6379"`
	Password       string        `envconfig:"REDIS_PASSWORD"`
	DB             int           `envconfig:"REDIS_DB"               default:"0"`
	TrackedCallTTL time.Duration `envconfig:"REDIS_TRACKED_CALL_TTL" default:"24h"`
}

// ProviderConfig holds the SMSCountry account credentials.
type ProviderConfig struct {
	AuthKey   string        `envconfig:"SMSCOUNTRY_AUTH_KEY"`
	AuthToken string        `envconfig:"SMSCOUNTRY_AUTH_TOKEN"`
	BaseURL   string        `envconfig:"SMSCOUNTRY_BASE_URL" default:"https://restapi.smscountry.com/v0.1/Accounts"`
	Timeout   time.Duration `envconfig:"SMSCOUNTRY_TIMEOUT"  default:"30s"`
}

type SyncConfig struct {
	Interval  time.Duration `envconfig:"SYNC_INTERVAL"   default:"1m"`
	AutoStart bool          `envconfig:"SYNC_AUTO_START" default:"true"`
}

type AlertConfig struct {
	WebhookURL     string        `envconfig:"ALERT_WEBHOOK_URL"`
	IterationCount int           `envconfig:"ALERT_ITERATION_COUNT" default:"0"`
	Timeout        time.Duration `envconfig:"ALERT_TIMEOUT"         default:"10s"`
}

type AuthConfig struct {
	CallsAPIKey     string `envconfig:"CALLS_API_KEY"`
	SchedulerAPIKey string `envconfig:"SCHEDULER_API_KEY"`
}

type LogConfig struct {
	Env   string `envconfig:"APP_ENV"   default:"development"`
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return &cfg, nil
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

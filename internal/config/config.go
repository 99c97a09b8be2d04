package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv string `mapstructure:"APP_ENV"`
	Port   string `mapstructure:"PORT"`

	DBHost        string `mapstructure:"DB_HOST"`
	DBPort        string `mapstructure:"DB_PORT"`
	DBUser        string `mapstructure:"DB_USER"`
	DBPassword    string `mapstructure:"DB_PASSWORD"`
	DBName        string `mapstructure:"DB_NAME"`
	DBSSLMode     string `mapstructure:"DB_SSLMODE"`
	DBMaxRetries  int    `mapstructure:"DB_MAX_RETRIES"`
	DBAutoMigrate bool   `mapstructure:"DB_AUTO_MIGRATE"`

	RedisAddr   string `mapstructure:"REDIS_ADDR"`
	KafkaBroker string `mapstructure:"KAFKA_BROKER"`

	JWTSecret     string        `mapstructure:"JWT_SECRET"`
	JWTAccessTTL  time.Duration `mapstructure:"JWT_ACCESS_TTL"`
	JWTRefreshTTL time.Duration `mapstructure:"JWT_REFRESH_TTL"`

	Timezone string `mapstructure:"APP_TIMEZONE"`

	OutboxPollInterval time.Duration `mapstructure:"OUTBOX_POLL_INTERVAL"`
	OutboxBatchSize    int           `mapstructure:"OUTBOX_BATCH_SIZE"`

	PayslipHistoryMax int `mapstructure:"PAYSLIP_HISTORY_MAX"`

	HTTPReadTimeout  time.Duration `mapstructure:"HTTP_READ_TIMEOUT"`
	HTTPWriteTimeout time.Duration `mapstructure:"HTTP_WRITE_TIMEOUT"`
	HTTPIdleTimeout  time.Duration `mapstructure:"HTTP_IDLE_TIMEOUT"`
}

var defaults = map[string]any{
	"APP_ENV":              "development",
	"PORT":                 "3000",
	"DB_HOST":              "localhost",
	"DB_PORT":              "5432",
	"DB_USER":              "postgres",
	"DB_PASSWORD":          "postgres",
	"DB_NAME":              "hrms",
	"DB_SSLMODE":           "disable",
	"DB_MAX_RETRIES":       5,
	"DB_AUTO_MIGRATE":      true,
	"REDIS_ADDR":           "localhost:6379",
	"KAFKA_BROKER":         "localhost:9092",
	"JWT_SECRET":           "",
	"JWT_ACCESS_TTL":       "15m",
	"JWT_REFRESH_TTL":      "168h",
	"APP_TIMEZONE":         "UTC",
	"OUTBOX_POLL_INTERVAL": "3s",
	"OUTBOX_BATCH_SIZE":    50,
	"PAYSLIP_HISTORY_MAX":  24,
	"HTTP_READ_TIMEOUT":    "5s",
	"HTTP_WRITE_TIMEOUT":   "10s",
	"HTTP_IDLE_TIMEOUT":    "60s",
}

// Load reads .env (if any) into the process env, then the env into Config.
func Load() (Config, error) {
	// .env opsional; di container semua nilai datang dari env
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c Config) Validate() error {
	if c.IsProduction() && strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET is required in production")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.Timezone, err)
	}
	if c.PayslipHistoryMax <= 0 {
		return errors.New("PAYSLIP_HISTORY_MAX must be positive")
	}
	return nil
}

// Location is the zone in which "today" is resolved.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment   string `envconfig:"ENV" default:"development"`
	LogLevel      string `envconfig:"LOG_LEVEL"`
	DBDSN         string `envconfig:"DB_DSN" required:"true"`
	TelegramToken string `envconfig:"TELEGRAM_TOKEN" required:"true"`

	// Пусто: миграции встроены в бинарник
	MigrationsDir string `envconfig:"MIGRATIONS_DIR"`

	ReminderInterval time.Duration `envconfig:"REMINDER_INTERVAL" default:"60s"`
	NotifyQueueSize  int           `envconfig:"NOTIFY_QUEUE_SIZE" default:"256"`
	NotifyWorkers    int           `envconfig:"NOTIFY_WORKERS" default:"4"`

	JazzSDKKey  string `envconfig:"JAZZ_SDK_KEY"`
	JazzBaseURL string `envconfig:"JAZZ_BASE_URL"`

	LLMAPIKey  string `envconfig:"LLM_API_KEY"`
	LLMBaseURL string `envconfig:"LLM_BASE_URL"`
	LLMModel   string `envconfig:"LLM_MODEL"`

	ShareBaseURL string `envconfig:"SHARE_BASE_URL" default:"https://t.me/meeting_bot?start="`
}

// Load читает .env, если он есть, и переменные окружения
func Load() (*Config, error) {
	// Файла может не быть: тогда только переменные окружения
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	if cfg.DBDSN == "" || cfg.TelegramToken == "" {
		return nil, fmt.Errorf("DB_DSN and TELEGRAM_TOKEN must not be empty")
	}
	if cfg.ReminderInterval <= 0 {
		return nil, fmt.Errorf("REMINDER_INTERVAL must be positive, got %s", cfg.ReminderInterval)
	}

	return &cfg, nil
}

// IsProduction проверяет, запущен ли бот в production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

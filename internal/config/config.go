package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	TransportSMTP = "smtp"
	TransportSES  = "ses"
)

type Config struct {
	Port string `env:"PORT" envDefault:"5000"`

	DbHost    string `env:"DB_HOST"`
	DbPort    string `env:"DB_PORT" envDefault:"5432"`
	DbUser    string `env:"DB_USER"`
	DbPass    string `env:"DB_PASSWORD"`
	DbName    string `env:"DB_NAME"`
	DbSSLMode string `env:"DB_SSLMODE" envDefault:"disable"`
	DbMigrate bool   `env:"DB_MIGRATE" envDefault:"true"`
	Storage   string `env:"STORAGE" envDefault:"postgres"`

	// Supabase Auth (GoTrue): внешний источник учёток
	SupabaseURL     string        `env:"SUPABASE_URL"`
	SupabaseKey     string        `env:"SUPABASE_KEY"`
	IdentityTimeout time.Duration `env:"IDENTITY_TIMEOUT" envDefault:"10s"`

	FrontendURL string `env:"FRONTEND_URL"`

	MailTransport string `env:"MAIL_TRANSPORT" envDefault:"smtp"`
	SMTPHost      string `env:"EMAIL_HOST"`
	SMTPPort      int    `env:"EMAIL_PORT" envDefault:"587"`
	SMTPUser      string `env:"EMAIL_USER"`
	SMTPPassword  string `env:"EMAIL_PASS"`
	MailFrom      string `env:"EMAIL_FROM"`
	AWSRegion     string `env:"AWS_REGION"`
	AWSAccessKey  string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretKey  string `env:"AWS_SECRET_ACCESS_KEY"`
	SESSender     string `env:"SES_SENDER"`
	MailWorkers   int    `env:"MAIL_WORKERS" envDefault:"3"`
	MailQueueSize int    `env:"MAIL_QUEUE_SIZE" envDefault:"100"`

	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"https://sv-agency.vercel.app"`

	Log      string `env:"LOG"`
	LogLevel string `env:"LOGLEVEL" envDefault:"info"`
	Env      string `env:"ENV" envDefault:"prod"` // dev|prod
}

// LoadConfig загружает .env, читает переменные окружения и выставляет дефолты.
// Ничего не логирует, чтобы не создавать зависимость от logger.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	cfg.MailTransport = strings.ToLower(strings.TrimSpace(cfg.MailTransport))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	cfg.FrontendURL = strings.TrimRight(strings.TrimSpace(cfg.FrontendURL), "/")
	cfg.SupabaseURL = strings.TrimRight(strings.TrimSpace(cfg.SupabaseURL), "/")

	if cfg.MailFrom == "" && cfg.SMTPUser != "" {
		cfg.MailFrom = fmt.Sprintf("%q <%s>", "Your Company", cfg.SMTPUser)
	}
	if cfg.MailWorkers <= 0 {
		cfg.MailWorkers = 1
	}

	return cfg, nil
}

// Validate возвращает предупреждения и фатальную ошибку (если критично).
func (c *Config) Validate() (warnings []string, err error) {
	switch c.Storage {
	case StoragePostgres:
		// Критичные: БД
		if c.DbHost == "" || c.DbUser == "" || c.DbName == "" {
			return nil, fmt.Errorf("incomplete DB config (DB_HOST/DB_USER/DB_NAME)")
		}
	case StorageMemory:
		warnings = append(warnings, "STORAGE=memory: user records are not persisted")
	default:
		return nil, fmt.Errorf("unknown STORAGE %q", c.Storage)
	}

	switch c.MailTransport {
	case TransportSMTP:
		if c.SMTPHost == "" || c.SMTPUser == "" {
			warnings = append(warnings, "SMTP is not fully configured")
		}
	case TransportSES:
		if c.SESSender == "" {
			return nil, fmt.Errorf("SES_SENDER is required for MAIL_TRANSPORT=ses")
		}
	default:
		return nil, fmt.Errorf("unknown MAIL_TRANSPORT %q", c.MailTransport)
	}

	if c.SupabaseURL == "" || c.SupabaseKey == "" {
		warnings = append(warnings, "Supabase Auth is not configured, only the users table is used")
	}

	if c.FrontendURL == "" {
		warnings = append(warnings, "FRONTEND_URL is empty, reset links will be relative")
	}

	return warnings, nil
}

// GetDSN: полная DSN (с паролем)
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

// GetDSNSafe: DSN без пароля (для логов)
func (c *Config) GetDSNSafe() string {
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the whole application configuration, read from the environment.
type Config struct {
	Env     string `env:"APP_ENV" env-default:"development" env-description:"development or production"`
	HTTP    HTTPConfig
	DB      DBConfig
	Session SessionConfig
	Redis   RedisConfig
	Admin   AdminConfig
	Log     LogConfig
}

type HTTPConfig struct {
	Port            string        `env:"SERVER_PORT" env-default:"5000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"5s"`
	CSRFEnabled     bool          `env:"CSRF_ENABLED" env-default:"true"`
}

// DBConfig holds database connection parameters
type DBConfig struct {
	Host          string        `env:"DB_HOST" env-default:"localhost"`
	Port          string        `env:"DB_PORT" env-default:"5432"`
	User          string        `env:"DB_USER" env-default:"postgres"`
	Password      string        `env:"DB_PASSWORD" env-default:"masterof"`
	Name          string        `env:"DB_NAME" env-default:"telecom_assets"`
	SSLMode       string        `env:"DB_SSLMODE" env-default:"disable"`
	MaxRetries    int           `env:"DB_CONNECT_RETRIES" env-default:"5"`
	RetryInterval time.Duration `env:"DB_RETRY_INTERVAL" env-default:"5s"`
}

type SessionConfig struct {
	Secret        string        `env:"SECRET_KEY" env-default:"peixoto-grupo-empresarial-2024-secret"`
	TTL           time.Duration `env:"SESSION_TTL" env-default:"12h"`
	SecureCookies bool          `env:"SECURE_COOKIES" env-default:"false"`
}

// RedisConfig is optional; an empty Addr keeps logout revocation in memory.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

// AdminConfig is the account seeded on first boot.
type AdminConfig struct {
	Name     string `env:"ADMIN_NAME" env-default:"admin"`
	Password string `env:"ADMIN_PASSWORD" env-default:"admin123"`
}

type LogConfig struct {
	Level    string `env:"LOG_LEVEL" env-default:"info"`
	Encoding string `env:"LOG_ENCODING" env-default:"console"`
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}
	if cfg.Session.Secret == "" {
		return nil, fmt.Errorf("SECRET_KEY must not be empty")
	}
	return &cfg, nil
}

// DatabaseDSN builds the PostgreSQL connection URL.
func (c *Config) DatabaseDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DB.User, c.DB.Password),
		Host:     c.DB.Host + ":" + c.DB.Port,
		Path:     "/" + c.DB.Name,
		RawQuery: url.Values{"sslmode": []string{c.DB.SSLMode}}.Encode(),
	}
	return u.String()
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

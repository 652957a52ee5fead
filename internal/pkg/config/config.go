package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	BcryptCost  int `env:"BCRYPT_COST, default=12"`
	MailWorkers int `env:"MAIL_WORKERS, default=4"`

	JWT      JWTConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Throttle ThrottleConfig
	SMTP     SMTPConfig
}

// JWTConfig drives token issuing. Auth and confirmation tokens are
// signed with separate keys; each purpose's lifetime is the base
// validity scaled by its multiplier.
type JWTConfig struct {
	SigningKey        string        `env:"JWT_SIGNING_KEY"`
	ConfirmationKey   string        `env:"JWT_CONFIRMATION_KEY"`
	Validity          time.Duration `env:"JWT_VALIDITY, default=1m"`
	AuthMultiplier    int           `env:"JWT_AUTH_MULTIPLIER, default=60"`
	ConfirmMultiplier int           `env:"JWT_CONFIRM_MULTIPLIER, default=1440"`
	AuthoritiesKey    string        `env:"JWT_AUTHORITIES_KEY, default=authorities"`
	Delimiter         string        `env:"JWT_AUTHORITIES_DELIMITER, default=,"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=project_manager"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// ThrottleConfig bounds failed sign-in attempts per username.
type ThrottleConfig struct {
	MaxFailures int           `env:"SIGNIN_MAX_FAILURES, default=5"`
	Window      time.Duration `env:"SIGNIN_FAILURE_WINDOW, default=15m"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST, default=localhost"`
	Port     int    `env:"SMTP_PORT, default=25"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	Sender   string `env:"SMTP_SENDER, default=no-reply@project-manager.local"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

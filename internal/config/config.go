package config

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"heist-trivia"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`
	LogLevel                string        `env:"LOG_LEVEL" envDefault:"info"`

	Postgres    Postgres
	Redis       Redis
	Security    Security
	Runtime     Runtime
	Leaderboard Leaderboard
	CORS        CORS
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host            string        `env:"PG_HOST,notEmpty"`
	Port            int           `env:"PG_PORT" envDefault:"5432"`
	User            string        `env:"PG_USER,notEmpty"`
	Password        string        `env:"PG_PASSWORD,notEmpty"`
	Database        string        `env:"PG_DATABASE,notEmpty"`
	SSLMode         string        `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns        int32         `env:"PG_MAX_CONNS" envDefault:"10"`
	MaxConnLifetime time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`
}

// DSN renders a postgres:// URL usable by both pgxpool and the goose stdlib driver.
func (p Postgres) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     "/" + p.Database,
		RawQuery: url.Values{"sslmode": []string{p.SSLMode}}.Encode(),
	}
	return u.String()
}

// Redis holds leaderboard store configuration.
type Redis struct {
	Addr     string `env:"REDIS_ADDR,notEmpty"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Security stores the player token signing settings.
type Security struct {
	JWTSecret string        `env:"JWT_SECRET,notEmpty"`
	TokenTTL  time.Duration `env:"PLAYER_TOKEN_TTL" envDefault:"6h"`
}

// Runtime groups request handling defaults.
type Runtime struct {
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
}

// Leaderboard governs Redis keys and board sizes.
type Leaderboard struct {
	KeyPrefix string        `env:"LEADERBOARD_KEY_PREFIX" envDefault:"trivia:lb"`
	TopN      int           `env:"LEADERBOARD_TOP_N" envDefault:"50"`
	RoomTTL   time.Duration `env:"LEADERBOARD_ROOM_TTL" envDefault:"168h"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadPostgres parses only the database settings, for tools that never touch Redis.
func LoadPostgres() (Postgres, error) {
	var cfg Postgres
	if err := env.ParseWithOptions(&cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return Postgres{}, fmt.Errorf("parse postgres config: %w", err)
	}
	return cfg, nil
}

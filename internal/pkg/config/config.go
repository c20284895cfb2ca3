package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Auth      AuthConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Page      PageConfig
}

type ServerConfig struct {
	Port              string        `envconfig:"PORT" required:"true"`
	ReadHeaderTimeout time.Duration `envconfig:"SERVER_READ_HEADER_TIMEOUT" default:"5s"`
	ShutdownTimeout   time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
	MinConns int32  `envconfig:"DB_MIN_CONNS" default:"2"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Sharer-User-Id"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// TrustUserHeader accepts X-Sharer-User-Id as identity. Enable only behind a gateway that sets it.
type AuthConfig struct {
	TrustUserHeader bool `envconfig:"AUTH_TRUST_USER_HEADER" default:"false"`
}

// Empty Addr disables the user directory cache.
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:""`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	PoolSize int           `envconfig:"REDIS_POOL_SIZE" default:"10"`
	UserTTL  time.Duration `envconfig:"REDIS_USER_TTL" default:"5m"`
}

// RPS/Burst apply per authenticated user, IPRPS/IPBurst per client address before
// authentication. Buckets idle longer than IdleTTL are dropped; zero keeps them forever.
type RateLimitConfig struct {
	RPS     float64       `envconfig:"RATE_LIMIT_RPS" default:"20"`
	Burst   int           `envconfig:"RATE_LIMIT_BURST" default:"40"`
	IPRPS   float64       `envconfig:"RATE_LIMIT_IP_RPS" default:"100"`
	IPBurst int           `envconfig:"RATE_LIMIT_IP_BURST" default:"200"`
	IdleTTL time.Duration `envconfig:"RATE_LIMIT_IDLE_TTL" default:"10m"`
}

type PageConfig struct {
	DefaultSize int `envconfig:"PAGE_DEFAULT_SIZE" default:"10"`
	MaxSize     int `envconfig:"PAGE_MAX_SIZE" default:"100"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c *JWTConfig) TokenDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Duration)
	if err != nil {
		return 0, fmt.Errorf("invalid JWT_DURATION %q: %w", c.Duration, err)
	}
	return d, nil
}

func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded, using process environment")
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:              "8889", // Test port
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   time.Second,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
			MinConns: 1,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "PATCH"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization", "X-Sharer-User-Id"},
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret-key-for-shareit",
			Duration: "1h",
		},
		Auth: AuthConfig{
			TrustUserHeader: true,
		},
		RateLimit: RateLimitConfig{
			RPS:     1000,
			Burst:   1000,
			IPRPS:   1000,
			IPBurst: 1000,
			IdleTTL: time.Minute,
		},
		Page: PageConfig{
			DefaultSize: 10,
			MaxSize:     100,
		},
	}
}

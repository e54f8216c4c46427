package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported store drivers
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

var (
	ErrMissingJWTSecret  = errors.New("JWT_SECRET must be set in release mode")
	ErrUnsupportedDriver = errors.New("unsupported DB_DRIVER")
	ErrMissingDSN        = errors.New("DB_DSN must be set for SQL drivers")
)

type Config struct {
	Port    string
	GinMode string

	DBDriver        string
	DBDSN           string
	MongoURI        string
	MongoDatabase   string
	DBSlowThreshold time.Duration

	JWTSecret     string
	JWTExpiration time.Duration

	CORSAllowedOrigins []string

	LogLevel  string
	LogFormat string

	NATSURL           string
	NATSSubjectPrefix string

	MetricsEnabled     bool
	EnforceManagerRole bool

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	ShutdownTimeout  time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Port:    v.GetString("PORT"),
		GinMode: v.GetString("GIN_MODE"),

		DBDriver:        strings.ToLower(v.GetString("DB_DRIVER")),
		DBDSN:           v.GetString("DB_DSN"),
		MongoURI:        v.GetString("MONGODB_URI"),
		MongoDatabase:   v.GetString("MONGODB_DATABASE"),
		DBSlowThreshold: v.GetDuration("DB_SLOW_THRESHOLD"),

		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTExpiration: v.GetDuration("JWT_EXPIRATION"),

		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),

		NATSURL:           v.GetString("NATS_URL"),
		NATSSubjectPrefix: v.GetString("NATS_SUBJECT_PREFIX"),

		MetricsEnabled:     v.GetBool("METRICS_ENABLED"),
		EnforceManagerRole: v.GetBool("ENFORCE_MANAGER_ROLE"),

		HTTPReadTimeout:  v.GetDuration("HTTP_READ_TIMEOUT"),
		HTTPWriteTimeout: v.GetDuration("HTTP_WRITE_TIMEOUT"),
		ShutdownTimeout:  v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8000")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("DB_DRIVER", DriverMongo)
	v.SetDefault("DB_DSN", "")
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DATABASE", "resource_management")
	v.SetDefault("DB_SLOW_THRESHOLD", "200ms")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("NATS_URL", "")
	v.SetDefault("NATS_SUBJECT_PREFIX", "resource")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("ENFORCE_MANAGER_ROLE", false)
	v.SetDefault("HTTP_READ_TIMEOUT", "15s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "15s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
}

// Validate checks that the loaded values can be used to start the server.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMongo:
	case DriverPostgres, DriverMySQL, DriverSQLite:
		if c.DBDSN == "" {
			return ErrMissingDSN
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.DBDriver)
	}

	if c.JWTSecret == "" {
		if c.IsProduction() {
			return ErrMissingJWTSecret
		}
		c.JWTSecret = "dev-secret-change-me"
	}
	if c.JWTExpiration <= 0 {
		c.JWTExpiration = 24 * time.Hour
	}
	return nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file
// when one exists), loads them into structured Go types and validates
// that required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide defaults for optional blocks (observability, token ttl, order guard).
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: a `.env` file, if present, is loaded into the
	// process env before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix CARDOCTOR_. Keys are lowercased and
	the prefix is removed; nesting uses the "." delimiter:

		CARDOCTOR_SERVER.PORT        -> server.port   -> Config.Server.Port
		CARDOCTOR_AUTH.SECRET_KEY    -> auth.secret_key
*/

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "CARDOCTOR_"

// ServiceName tags logs, traces and the Mongo client app name.
const ServiceName = "car-doctor"

// Order guard modes for GET /orders.
const (
	OrderGuardRequired = "required"
	OrderGuardOptional = "optional"
	OrderGuardDisabled = "disabled"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// TokenRateLimit is the sustained requests/second allowed per client IP
	// on POST /jwt. TokenRateBurst is the bucket size.
	TokenRateLimit float64 `koanf:"token_rate_limit" validate:"gte=0"`
	TokenRateBurst int     `koanf:"token_rate_burst" validate:"gte=0"`
}

// DatabaseConfig contains MongoDB connection parameters.
type DatabaseConfig struct {
	// Scheme is "mongodb+srv" for Atlas style clusters or "mongodb".
	Scheme         string        `koanf:"scheme" validate:"omitempty,oneof=mongodb mongodb+srv"`
	Host           string        `koanf:"host" validate:"required"`
	User           string        `koanf:"user" validate:"required"`
	Password       string        `koanf:"password" validate:"required"`
	Name           string        `koanf:"name"`
	AppName        string        `koanf:"app_name"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
	MaxPoolSize    uint64        `koanf:"max_pool_size"`
}

// URI assembles the connection string. Credentials are escaped so
// passwords containing '@' or ':' survive.
func (d DatabaseConfig) URI() string {
	return fmt.Sprintf("%s://%s:%s@%s/?retryWrites=true&w=majority",
		d.Scheme,
		url.QueryEscape(d.User),
		url.QueryEscape(d.Password),
		d.Host,
	)
}

// RedisConfig contains Redis connection details.
// Address is "host:port". CatalogTTL of 0 disables the catalog cache.
type RedisConfig struct {
	Address    string        `koanf:"address" validate:"required"`
	CatalogTTL time.Duration `koanf:"catalog_ttl" validate:"gte=0"`
}

// AuthConfig stores the token signing secret and guard behavior.
type AuthConfig struct {
	SecretKey  string        `koanf:"secret_key" validate:"required"`
	TokenTTL   time.Duration `koanf:"token_ttl" validate:"gte=0"`
	OrderGuard string        `koanf:"order_guard" validate:"omitempty,oneof=required optional disabled"`
}

// IntegrationConfig holds third-party API credentials. All optional.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from" validate:"omitempty,email"`
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, validates it, applies defaults and returns the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load initial env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	mainConfig.applyDefaults()

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// applyDefaults fills optional values. Observability service name and
// environment are always derived, whatever the env says.
func (c *Config) applyDefaults() {
	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
	c.Observability.ServiceName = ServiceName
	c.Observability.Environment = c.Primary.Env

	if c.Database.Scheme == "" {
		c.Database.Scheme = "mongodb+srv"
	}
	if c.Database.Name == "" {
		c.Database.Name = "carDoctor"
	}
	if c.Database.AppName == "" {
		c.Database.AppName = ServiceName
	}
	if c.Database.ConnectTimeout == 0 {
		c.Database.ConnectTimeout = 10 * time.Second
	}

	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = time.Hour
	}
	if c.Auth.OrderGuard == "" {
		c.Auth.OrderGuard = OrderGuardOptional
	}

	if c.Server.TokenRateLimit == 0 {
		c.Server.TokenRateLimit = 5
	}
	if c.Server.TokenRateBurst == 0 {
		c.Server.TokenRateBurst = 10
	}

	if c.Integration.EmailFrom == "" {
		c.Integration.EmailFrom = "onboarding@resend.dev"
	}
}

// Package config loads the application configuration from the environment.
//
// Variables use the TOURISM_ prefix and "." for nesting, so
// TOURISM_SERVER.PORT ends up in Config.Server.Port. A .env file in the
// working directory is loaded first when present.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is stripped from every environment variable before mapping.
	EnvPrefix = "TOURISM_"

	ServiceName = "tourism"

	AuthProviderLocal = "local"
	AuthProviderClerk = "clerk"
)

// Config is the root configuration object.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Storage       StorageConfig        `koanf:"storage"`
	Booking       BookingConfig        `koanf:"booking"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig selects how bearer tokens are verified.
//
// With the local provider the API issues its own HS256 tokens signed with
// JWTSecret. With the clerk provider SecretKey is the Clerk API key and
// tokens come from the Clerk frontend SDK.
type AuthConfig struct {
	Provider  string        `koanf:"provider" validate:"omitempty,oneof=local clerk"`
	SecretKey string        `koanf:"secret_key"`
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
	Issuer    string        `koanf:"issuer"`
}

type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
}

type StorageConfig struct {
	UploadDir      string `koanf:"upload_dir"`
	MaxUploadBytes int64  `koanf:"max_upload_bytes"`
	PublicURL      string `koanf:"public_url"`
}

type BookingConfig struct {
	// PendingTTL is how long a booking may stay pending before the
	// scheduler cancels it.
	PendingTTL time.Duration `koanf:"pending_ttl"`
}

// LoadConfig reads, defaults and validates the configuration.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	mainConfig.applyDefaults()

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Auth.validate(); err != nil {
		return nil, err
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func (c *Config) applyDefaults() {
	if c.Auth.Provider == "" {
		c.Auth.Provider = AuthProviderLocal
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	if c.Auth.Issuer == "" {
		c.Auth.Issuer = ServiceName
	}
	if c.Integration.EmailFrom == "" {
		c.Integration.EmailFrom = "Tourism <bookings@resend.dev>"
	}
	if c.Storage.UploadDir == "" {
		c.Storage.UploadDir = "uploads"
	}
	if c.Storage.MaxUploadBytes == 0 {
		c.Storage.MaxUploadBytes = 5 << 20
	}
	if c.Storage.PublicURL == "" {
		c.Storage.PublicURL = "/uploads"
	}
	if c.Booking.PendingTTL == 0 {
		c.Booking.PendingTTL = 48 * time.Hour
	}
}

func (a AuthConfig) validate() error {
	switch a.Provider {
	case AuthProviderLocal:
		if len(a.JWTSecret) < 32 {
			return fmt.Errorf("auth.jwt_secret must be at least 32 characters for the local provider")
		}
	case AuthProviderClerk:
		if a.SecretKey == "" {
			return fmt.Errorf("auth.secret_key is required for the clerk provider")
		}
	}
	return nil
}

// IsLocal reports whether the app runs in the developer environment,
// where SQL statements are logged.
func (c *Config) IsLocal() bool {
	return c.Primary.Env == "local"
}

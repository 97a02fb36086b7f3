package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Stripe    StripeConfig    `mapstructure:"stripe"`
	Firestore FirestoreConfig `mapstructure:"firestore"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// Addr returns the listen address string.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type StripeConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

type FirestoreConfig struct {
	ProjectID   string `mapstructure:"project_id"`
	ClientEmail string `mapstructure:"client_email"`
	PrivateKey  string `mapstructure:"private_key"`
	Collection  string `mapstructure:"collection"`
}

// PrivateKeyPEM returns the service-account key with escaped newlines
// normalized. Env loaders hand the key over as a single line with literal
// "\n" sequences; the PEM parser needs real ones.
func (f FirestoreConfig) PrivateKeyPEM() string {
	return strings.ReplaceAll(f.PrivateKey, `\n`, "\n")
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"` // ["*"] = allow all
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: SCB_ (Stripe Checkout
// Bridge). Nested keys use underscore: SCB_SERVER_PORT, SCB_STRIPE_SECRET_KEY, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("stripe.secret_key", "")
	v.SetDefault("stripe.webhook_secret", "")
	v.SetDefault("firestore.project_id", "")
	v.SetDefault("firestore.client_email", "")
	v.SetDefault("firestore.private_key", "")
	v.SetDefault("firestore.collection", "users")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: SCB_FIRESTORE_PROJECT_ID -> firestore.project_id
	v.SetEnvPrefix("SCB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if present; env vars alone can suffice.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the secrets the bridge cannot run without are set.
func (c *Config) Validate() error {
	var missing []string
	if c.Stripe.SecretKey == "" {
		missing = append(missing, "stripe.secret_key")
	}
	if c.Stripe.WebhookSecret == "" {
		missing = append(missing, "stripe.webhook_secret")
	}
	if c.Firestore.ProjectID == "" {
		missing = append(missing, "firestore.project_id")
	}
	if c.Firestore.ClientEmail == "" {
		missing = append(missing, "firestore.client_email")
	}
	if c.Firestore.PrivateKey == "" {
		missing = append(missing, "firestore.private_key")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

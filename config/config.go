package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrMissingSecret is returned when no session signing secret is configured
var ErrMissingSecret = errors.New("jwt_secret (ACCESS_TOKEN_SECRET) is required")

type Config struct {
	Port           string         `mapstructure:"port"`
	Env            string         `mapstructure:"env"`
	JWTSecret      string         `mapstructure:"jwt_secret"`
	SessionTTL     time.Duration  `mapstructure:"session_ttl"`
	CookieName     string         `mapstructure:"cookie_name"`
	FrontendURL    string         `mapstructure:"frontend_url"`
	AllowedOrigins []string       `mapstructure:"allowed_origins"`
	Database       DatabaseConfig `mapstructure:"database"`
	Stripe         StripeConfig   `mapstructure:"stripe"`
	AMQP           AMQPConfig     `mapstructure:"amqp"`
	Log            LogConfig      `mapstructure:"log"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite or postgres
	DSN    string `mapstructure:"dsn"`
}

type StripeConfig struct {
	SecretKey string `mapstructure:"secret_key"`
	Currency  string `mapstructure:"currency"`
}

type AMQPConfig struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// IsProduction switches cookies to Secure + SameSite=None
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "5000")
	v.SetDefault("env", "development")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("session_ttl", "168h")
	v.SetDefault("cookie_name", "token")
	v.SetDefault("frontend_url", "http://localhost:5175")
	v.SetDefault("allowed_origins", []string{
		"http://localhost:5173",
		"http://localhost:5174",
		"http://localhost:5175",
		"http://localhost:5176",
	})
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "homechef.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	v.SetDefault("stripe.secret_key", "")
	v.SetDefault("stripe.currency", "usd")
	v.SetDefault("amqp.url", "")
	v.SetDefault("amqp.exchange", "homechef.events")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// legacyEnv maps config keys onto the variable names existing deployments already set
var legacyEnv = map[string][]string{
	"port":              {"PORT"},
	"env":               {"APP_ENV", "NODE_ENV"},
	"jwt_secret":        {"JWT_SECRET", "ACCESS_TOKEN_SECRET"},
	"frontend_url":      {"FRONTEND_URL"},
	"database.dsn":      {"DATABASE_URL"},
	"stripe.secret_key": {"STRIPE_SECRET_KEY"},
	"amqp.url":          {"AMQP_URL"},
}

// Load reads the configuration and rejects anything the server cannot start with
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	cfg, err := Read(cfgFile, flags)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read resolves configuration from defaults, an optional file, the environment
// and finally any bound command-line flags, without validating it.
func Read(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range legacyEnv {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if flags != nil {
		if f := flags.Lookup("port"); f != nil {
			if err := v.BindPFlag("port", f); err != nil {
				return nil, err
			}
		}
	}

	var cfg Config
	decoderConfigOption := viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := v.Unmarshal(&cfg, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &cfg, nil
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingSecret
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive, got %s", c.SessionTTL)
	}
	return c.Database.Validate()
}

func (d DatabaseConfig) Validate() error {
	switch d.Driver {
	case "sqlite", "postgres":
		return nil
	}
	return fmt.Errorf("unsupported database driver %q", d.Driver)
}

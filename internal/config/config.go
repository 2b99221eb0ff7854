package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/finverge-hq/gokuda/pkg/kuda"
)

// Config holds the console configuration loaded from the environment and an
// optional .env file.
type Config struct {
	KudaKey           string `mapstructure:"kuda_key" validate:"required"`
	TokenURL          string `mapstructure:"token_url" validate:"required,url"`
	RequestURL        string `mapstructure:"request_url" validate:"required,url"`
	Email             string `mapstructure:"email" validate:"required,email"`
	MainAccountNumber string `mapstructure:"main_account_number" validate:"required"`

	LogLevel              string        `mapstructure:"log_level"`
	EndpointsFile         string        `mapstructure:"endpoints_file"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout"`
	RequestTimeout        time.Duration `mapstructure:"-"`
}

var validate = validator.New()

// Load reads configuration from environment variables and a local .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("kuda_key", "")
	v.SetDefault("token_url", "")
	v.SetDefault("request_url", "")
	v.SetDefault("email", "")
	v.SetDefault("main_account_number", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("endpoints_file", "")
	v.SetDefault("request_timeout", 10) // seconds

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if missing := missingVars(cfg); len(missing) > 0 {
		return nil, fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}

	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Credentials maps the loaded configuration onto client credentials.
func (c *Config) Credentials() kuda.Credentials {
	return kuda.Credentials{
		KudaKey:           c.KudaKey,
		TokenURL:          c.TokenURL,
		RequestURL:        c.RequestURL,
		Email:             c.Email,
		MainAccountNumber: c.MainAccountNumber,
	}
}

func missingVars(cfg Config) []string {
	checks := []struct {
		name  string
		value string
	}{
		{"KUDA_KEY", cfg.KudaKey},
		{"TOKEN_URL", cfg.TokenURL},
		{"REQUEST_URL", cfg.RequestURL},
		{"EMAIL", cfg.Email},
		{"MAIN_ACCOUNT_NUMBER", cfg.MainAccountNumber},
	}

	var missing []string
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			missing = append(missing, c.name)
		}
	}
	return missing
}

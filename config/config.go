package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"

	"github.com/s0up4200/codecovctl/schema"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. CODECOVCTL_CODECOV_OWNER for codecov.owner.
const EnvPrefix = "CODECOVCTL"

// TokenEnv is the conventional Codecov token variable, bound to codecov.token.
const TokenEnv = "CODECOV_API_TOKEN"

// Load loads the configuration. An explicit configPath must exist; when it
// is empty the standard locations are searched and a missing file leaves
// the defaults in place.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("codecov.token", EnvPrefix+"_CODECOV_TOKEN", TokenEnv); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config.{yaml,toml,json} in standard locations
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".codecovctl"))
		}
		v.AddConfigPath("/etc/codecovctl/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Defaults returns the configuration used when no file or environment overrides it.
func Defaults() map[string]any {
	return map[string]any{
		"codecov.url":               "https://api.codecov.io",
		"codecov.token":             "",
		"codecov.service":           string(schema.ServiceGitHub),
		"codecov.owner":             "",
		"codecov.timeout":           30 * time.Second,
		"output.page_size":          25,
		"output.color":              true,
		"output.warn_below":         60.0,
		"output.good_above":         80.0,
		"filter.default_expression": "",
		"filter.presets": map[string]string{
			"active":    "Active",
			"untested":  "Totals == nil || Coverage == 0",
			"low":       "Totals != nil && Coverage < 60",
			"languages": `Language in ["go", "python", "rust"]`,
		},
		"logging.level":  "info",
		"logging.format": "console",
		"logging.color":  true,
	}
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	return validation.ValidateStruct(cfg,
		validation.Field(&cfg.Codecov),
		validation.Field(&cfg.Output),
		validation.Field(&cfg.Filter),
		validation.Field(&cfg.Logging),
	)
}

func services() []any {
	out := make([]any, len(schema.Services))
	for i, s := range schema.Services {
		out[i] = string(s)
	}
	return out
}

// Validate implements validation.Validatable.
func (c CodecovConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.URL, validation.Required, is.URL),
		validation.Field(&c.Service, validation.Required, validation.In(services()...)),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// Validate implements validation.Validatable.
func (o OutputConfig) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.PageSize, validation.Required, validation.Min(1), validation.Max(1000)),
		validation.Field(&o.WarnBelow, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&o.GoodAbove, validation.Min(0.0), validation.Max(100.0),
			validation.By(func(any) error {
				if o.GoodAbove < o.WarnBelow {
					return errors.New("must not be below warn_below")
				}
				return nil
			})),
	)
}

// Validate implements validation.Validatable.
func (f FilterConfig) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Presets, validation.Each(validation.Required)),
	)
}

// Validate implements validation.Validatable.
func (l LoggingConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.Required, validation.In("trace", "debug", "info", "warn", "error")),
		validation.Field(&l.Format, validation.Required, validation.In("console", "json")),
	)
}

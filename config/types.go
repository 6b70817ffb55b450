package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Codecov CodecovConfig `mapstructure:"codecov" json:"codecov"`
	Output  OutputConfig  `mapstructure:"output" json:"output"`
	Filter  FilterConfig  `mapstructure:"filter" json:"filter"`
	Logging LoggingConfig `mapstructure:"logging" json:"logging"`
}

// CodecovConfig holds Codecov API connection details
type CodecovConfig struct {
	URL     string        `mapstructure:"url" json:"url"`
	Token   string        `mapstructure:"token" json:"token"`
	Service string        `mapstructure:"service" json:"service"`
	Owner   string        `mapstructure:"owner" json:"owner"`
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	PageSize int  `mapstructure:"page_size" json:"page_size"`
	Color    bool `mapstructure:"color" json:"color"`
	// Coverage below WarnBelow is printed red, at or above GoodAbove green.
	WarnBelow float64 `mapstructure:"warn_below" json:"warn_below"`
	GoodAbove float64 `mapstructure:"good_above" json:"good_above"`
}

// FilterConfig contains the default filter and named filter presets
type FilterConfig struct {
	DefaultExpression string            `mapstructure:"default_expression" json:"default_expression"`
	Presets           map[string]string `mapstructure:"presets" json:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
	Color  bool   `mapstructure:"color" json:"color"`
}

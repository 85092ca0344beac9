package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the jtop settings, from flags or JTOP_* environment variables.
type Config struct {
	Batch     bool    `mapstructure:"batch"`
	Delay     float64 `mapstructure:"delay"` // seconds
	Comm      string  `mapstructure:"comm"`
	TopCmd    string  `mapstructure:"top"`
	JstackCmd string  `mapstructure:"jstack"`
	LogLevel  string  `mapstructure:"log-level"`
	LogFile   string  `mapstructure:"log-file"`
}

// DelayDuration returns the refresh delay as a time.Duration.
func (c *Config) DelayDuration() time.Duration {
	return time.Duration(c.Delay * float64(time.Second))
}

// addFlags registers the command line flags LoadConfig reads.
func addFlags(flags *pflag.FlagSet) {
	flags.BoolP("batch", "b", false, "run once and print plain output")
	flags.Float64P("delay", "d", 2, "seconds between refreshes in interactive mode")
	flags.String("comm", "java", "command name of the target runtime")
	flags.String("top", "top", "process listing command")
	flags.String("jstack", "jstack", "thread dump command")
	flags.String("log-level", "warn", "log level: trace, debug, info, warn, error")
	flags.String("log-file", "", "write logs to this file instead of stderr")
}

// LoadConfig merges defaults, JTOP_* environment variables and flags, in
// increasing order of precedence.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Environment variable overrides
	v.SetEnvPrefix("JTOP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("batch", false)
	v.SetDefault("delay", 2.0)
	v.SetDefault("comm", "java")
	v.SetDefault("top", "top")
	v.SetDefault("jstack", "jstack")
	v.SetDefault("log-level", "warn")
	v.SetDefault("log-file", "")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Delay < 0 {
		errs = append(errs, fmt.Errorf("delay must not be negative, got %g", c.Delay))
	}
	if c.Comm == "" {
		errs = append(errs, errors.New("comm must not be empty"))
	}
	if c.TopCmd == "" {
		errs = append(errs, errors.New("top command must not be empty"))
	}
	if c.JstackCmd == "" {
		errs = append(errs, errors.New("jstack command must not be empty"))
	}
	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

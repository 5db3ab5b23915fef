// Package config resolves settings from flags, environment, an optional
// config file and a .env file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. EXAMPORTAL_LOG_LEVEL.
const EnvPrefix = "EXAMPORTAL"

// Config is the resolved application configuration.
type Config struct {
	DB         string
	LogLevel   string
	LogFile    string
	Lang       string
	CatalogDir string
	User       string

	HistoryLimit  int
	ActivityLimit int

	LLM LLMConfig
}

// LLMConfig selects and configures the optional LLM provider.
type LLMConfig struct {
	Provider string
	Model    string
	APIKey   string
	Timeout  time.Duration
}

// Enabled reports whether any provider was requested.
func (c LLMConfig) Enabled() bool {
	return c.Provider != "" && c.Provider != "none"
}

// LoadDotEnv loads a .env file from the working directory if present.
func LoadDotEnv() {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env file")
	}
}

// ForCommand binds a command's flags and environment to a fresh viper
// instance and reads the config file, if any.
func ForCommand(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("examportal")
		v.AddConfigPath(".")
		v.AddConfigPath("$XDG_CONFIG_HOME/examportal")
		v.AddConfigPath("$HOME/.config/examportal")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Warn().Err(err).Msg("error reading config file")
		}
	} else {
		log.Debug().Str("path", v.ConfigFileUsed()).Msg("loaded config file")
	}
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log-level", "info")
	v.SetDefault("lang", "en")
	v.SetDefault("history.limit", 10)
	v.SetDefault("activity.limit", 100)
	v.SetDefault("llm.timeout", 30*time.Second)
}

// FromViper extracts a Config. Flag names use dashes; nested keys from the
// config file use dots.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DB:            v.GetString("db"),
		LogLevel:      v.GetString("log-level"),
		LogFile:       v.GetString("log-file"),
		Lang:          v.GetString("lang"),
		CatalogDir:    firstNonEmpty(v.GetString("catalog-dir"), v.GetString("catalog.dir")),
		User:          v.GetString("user"),
		HistoryLimit:  v.GetInt("history.limit"),
		ActivityLimit: v.GetInt("activity.limit"),
		LLM: LLMConfig{
			Provider: firstNonEmpty(v.GetString("provider"), v.GetString("llm.provider")),
			Model:    firstNonEmpty(v.GetString("model"), v.GetString("llm.model")),
			APIKey:   v.GetString("llm.api_key"),
			Timeout:  v.GetDuration("llm.timeout"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the application cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.HistoryLimit <= 0 {
		errs = append(errs, fmt.Errorf("history.limit must be positive, got %d", c.HistoryLimit))
	}
	if c.ActivityLimit <= 0 {
		errs = append(errs, fmt.Errorf("activity.limit must be positive, got %d", c.ActivityLimit))
	}
	switch c.LLM.Provider {
	case "", "none", "anthropic", "openai", "gemini":
	default:
		errs = append(errs, fmt.Errorf("unknown llm provider %q", c.LLM.Provider))
	}
	return errors.Join(errs...)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

package config

import (
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/moamenhredeen/oascurl/internal/errors"
	"github.com/spf13/viper"
)

const (
	DefaultSocketPath = "/run/miru/miru.sock"
	DefaultBaseURL    = "http://localhost/v1"
	DefaultExtension  = "x-codeSamples"
	DefaultLang       = "curl"
	DefaultIndent     = 2

	// EnvPrefix is prepended to upper-cased keys, e.g. OASCURL_SOCKET_PATH
	EnvPrefix = "OASCURL"

	defaultConfigName = "oascurl"
)

// Config holds the settings that shape the generated code samples
type Config struct {
	SocketPath string `mapstructure:"socket_path"`
	BaseURL    string `mapstructure:"base_url"`
	Extension  string `mapstructure:"extension"`
	Lang       string `mapstructure:"lang"`
	Indent     int    `mapstructure:"indent"`
}

// New returns a viper instance with defaults and environment binding set up
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("socket_path", DefaultSocketPath)
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("extension", DefaultExtension)
	v.SetDefault("lang", DefaultLang)
	v.SetDefault("indent", DefaultIndent)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile loads a config file into v. An explicit path must exist; without
// one, oascurl.toml in the working directory is read when present.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return apperrors.WrapCause(apperrors.ErrInvalidConfig, path, err)
		}
		return nil
	}

	v.SetConfigName(defaultConfigName)
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return apperrors.WrapCause(apperrors.ErrInvalidConfig, defaultConfigName+".toml", err)
	}
	return nil
}

// Load decodes and validates the settings held by v
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.WrapCause(apperrors.ErrInvalidConfig, "decode", err)
	}

	if strings.TrimSpace(cfg.SocketPath) == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidConfig, "socket_path is required")
	}
	if strings.TrimSpace(cfg.Extension) == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidConfig, "extension is required")
	}
	if strings.TrimSpace(cfg.Lang) == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidConfig, "lang is required")
	}
	if cfg.Indent < 2 || cfg.Indent > 9 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidConfig, fmt.Sprintf("indent must be between 2 and 9, got %d", cfg.Indent))
	}

	return &cfg, nil
}

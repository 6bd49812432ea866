package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "CLASSPLAY"

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// A .env file in the working directory is loaded first when present; it never
// overrides variables already set in the process environment.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_allowed_origins", []string{
		"http://localhost:5173",
		"http://127.0.0.1:5173",
	})

	v.SetDefault("database.max_open_conns", 10)

	// 7 days, matching the lifetime teachers are used to.
	v.SetDefault("auth.token_lifetime_minutes", 10080)

	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.text_model", "gemini-2.0-flash")
	v.SetDefault("llm.openai_model", "gpt-3.5-turbo")
	v.SetDefault("llm.image_models", []string{
		"gemini-2.0-flash-exp",
		"gemini-2.5-flash-image",
	})
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.story_temperature", 0.9)
	v.SetDefault("llm.image_temperature", 1.0)
	v.SetDefault("llm.max_output_tokens", 8192)
	// gpt-3.5-turbo completes at most 4096 tokens.
	v.SetDefault("llm.openai_max_output_tokens", 4096)
	v.SetDefault("llm.illustration_concurrency", 4)
	v.SetDefault("llm.story_pages", 10)
}

// bindEnvs registers keys that have no default so AutomaticEnv picks them up
// during Unmarshal.
func bindEnvs(v *viper.Viper) {
	for _, key := range []string{
		"database.url",
		"auth.jwt_secret",
		"llm.gemini_api_key",
		"llm.openai_api_key",
		"llm.openai_base_url",
	} {
		_ = v.BindEnv(key)
	}
}

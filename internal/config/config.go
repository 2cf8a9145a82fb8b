package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm" validate:"required"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port      int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"omitempty,oneof=json text"`
	// CORSAllowedOrigins applies to the JSON API only.
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	Provider    string  `mapstructure:"provider" validate:"required,oneof=openai gemini"`
	APIKey      string  `mapstructure:"api_key" validate:"required"`
	Model       string  `mapstructure:"model" validate:"required"`
	BaseURL     string  `mapstructure:"base_url" validate:"omitempty,url"`
	MaxTokens   int     `mapstructure:"max_tokens" validate:"gt=0"`
	Temperature float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	// Headers are extra HTTP headers sent with every provider request.
	// From the environment they are given as "k1=v1,k2=v2".
	Headers map[string]string `mapstructure:"-"`
	// Timeout bounds a single provider call. Zero leaves the transport default.
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// GenerationConfig contains settings for prompt construction and parsing.
type GenerationConfig struct {
	DefaultCount       int    `mapstructure:"default_count" validate:"gt=0,ltefield=MaxCount"`
	MaxCount           int    `mapstructure:"max_count" validate:"gt=0,lte=100"`
	PromptTemplatePath string `mapstructure:"prompt_template_path" validate:"omitempty,file"`
	StrictParsing      bool   `mapstructure:"strict_parsing"`
}

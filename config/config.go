package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"meeting-archaeologist/internal/model"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig
	App         AppConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	CORS       CORSConfig
	RateLimit  RateLimitConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Extraction retry loop
	Extraction ExtractionConfig
}

type EnvironmentConfig struct {
	Name string
}

// AppConfig identifies the service on health endpoints.
type AppConfig struct {
	Name    string
	Version string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig bounds inbound requests per client IP.
type RateLimitConfig struct {
	Enabled      bool
	PerMinute    int
	MaxClients   int
	ClientExpiry time.Duration
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers         []ProviderConfig `yaml:"providers"`
	FallbackEnabled   bool             `yaml:"fallback_enabled"`
	RequestsPerMinute int              `yaml:"requests_per_minute"`
	MaxTotalTimeout   string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`

	// GenAI SDK only: "gemini" (API key) or "vertex" (project + location).
	Backend  string `yaml:"backend,omitempty"`
	Project  string `yaml:"project,omitempty"`
	Location string `yaml:"location,omitempty"`
}

// ExtractionConfig tunes the validated-extraction loop.
type ExtractionConfig struct {
	MaxRetries      int
	AttemptTimeout  time.Duration
	MinInputLength  int
	MaxInputLength  int
	Temperature     float64
	MaxOutputTokens int
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.App.Name = viper.GetString("app.name")
	cfg.App.Version = viper.GetString("app.version")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")
	if logLevel := viper.GetString("log_level"); logLevel != "" {
		cfg.Logger.Level = logLevel
	}

	// CORS origins come either as a YAML list or a comma separated env value
	cfg.CORS.AllowedOrigins = splitList(viper.Get("cors.allowed_origins"))

	cfg.RateLimit.Enabled = viper.GetBool("rate_limit.enabled")
	cfg.RateLimit.PerMinute = viper.GetInt("rate_limit.per_minute")
	cfg.RateLimit.MaxClients = viper.GetInt("rate_limit.max_clients")
	cfg.RateLimit.ClientExpiry = viper.GetDuration("rate_limit.client_expiry")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RequestsPerMinute = viper.GetInt("llm.requests_per_minute")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	// Load provider configurations
	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
						Backend:  getStringFromMap(providerMap, "backend"),
						Project:  expandEnvVar(getStringFromMap(providerMap, "project")),
						Location: getStringFromMap(providerMap, "location"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	// Without a config file a single Gemini provider is built from GEMINI_API_KEY
	if len(cfg.LLM.Providers) == 0 {
		if key := viper.GetString("gemini_api_key"); key != "" {
			cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
				Name:     "gemini",
				Enabled:  true,
				Priority: 1,
				APIKey:   key,
				Model:    viper.GetString("model"),
			})
		}
	}

	if err := validateLLMConfig(&cfg.LLM); err != nil {
		return nil, err
	}

	// Extraction
	cfg.Extraction.MaxRetries = viper.GetInt("extraction.max_retries")
	if viper.IsSet("max_retries") {
		cfg.Extraction.MaxRetries = viper.GetInt("max_retries")
	}
	cfg.Extraction.AttemptTimeout = viper.GetDuration("extraction.attempt_timeout")
	cfg.Extraction.MinInputLength = viper.GetInt("extraction.min_input_length")
	cfg.Extraction.MaxInputLength = viper.GetInt("extraction.max_input_length")
	cfg.Extraction.Temperature = viper.GetFloat64("extraction.temperature")
	cfg.Extraction.MaxOutputTokens = viper.GetInt("extraction.max_output_tokens")

	if err := validateExtractionConfig(&cfg.Extraction); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether internal details must be hidden from clients.
func (c *Config) IsProduction() bool {
	return model.ParseEnvironment(c.Environment.Name).IsProduction()
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("app.name", "Meeting Archaeologist")
	viper.SetDefault("app.version", "0.1.0")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("cors.allowed_origins", []string{"http://localhost:5173", "http://localhost:3000"})
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.per_minute", 30)
	viper.SetDefault("rate_limit.max_clients", 10000)
	viper.SetDefault("rate_limit.client_expiry", "10m")

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", false)
	viper.SetDefault("llm.requests_per_minute", 60)
	viper.SetDefault("llm.max_total_timeout", "60s")

	// Extraction defaults
	viper.SetDefault("extraction.max_retries", 2)
	viper.SetDefault("extraction.attempt_timeout", "30s")
	viper.SetDefault("extraction.min_input_length", 20)
	viper.SetDefault("extraction.max_input_length", 50000)
	viper.SetDefault("extraction.temperature", 0.2)
	viper.SetDefault("extraction.max_output_tokens", 8192)
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
		return ""
	}

	return value
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured - add an llm.providers section to config.yaml or set GEMINI_API_KEY")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}

		if !provider.Enabled {
			continue
		}
		enabledCount++

		if provider.Priority <= 0 {
			return fmt.Errorf("provider %s: priority must be positive", provider.Name)
		}
		if priorityMap[provider.Priority] {
			return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
		}
		priorityMap[provider.Priority] = true

		if provider.Timeout != "" {
			if _, err := time.ParseDuration(provider.Timeout); err != nil {
				return fmt.Errorf("provider %s: invalid timeout %q: %w", provider.Name, provider.Timeout, err)
			}
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	if cfg.MaxTotalTimeout != "" {
		if _, err := time.ParseDuration(cfg.MaxTotalTimeout); err != nil {
			return fmt.Errorf("llm.max_total_timeout: %w", err)
		}
	}

	return nil
}

// validateExtractionConfig validates the retry loop settings
func validateExtractionConfig(cfg *ExtractionConfig) error {
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("extraction.max_retries must not be negative, got %d", cfg.MaxRetries)
	}
	if cfg.AttemptTimeout <= 0 {
		return fmt.Errorf("extraction.attempt_timeout must be positive")
	}
	if cfg.MinInputLength < 0 {
		return fmt.Errorf("extraction.min_input_length must not be negative")
	}
	if cfg.MaxInputLength > 0 && cfg.MaxInputLength < cfg.MinInputLength {
		return fmt.Errorf("extraction.max_input_length must be >= min_input_length")
	}
	return nil
}

// splitList accepts a YAML list or a comma separated string.
func splitList(raw any) []string {
	var items []string
	switch v := raw.(type) {
	case []string:
		items = v
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				items = append(items, s)
			}
		}
	case string:
		items = strings.Split(v, ",")
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the AskDoc console
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Backend BackendConfig `mapstructure:"backend"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ServerConfig holds console server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// BackendConfig describes the question-answering backend
type BackendConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	DocumentsPath string `mapstructure:"documents_path"`
	UploadPath    string `mapstructure:"upload_path"`
	QAPath        string `mapstructure:"qa_path"`
	HealthPath    string `mapstructure:"health_path"`
	TopK          int    `mapstructure:"top_k"`
}

// UIConfig holds rendering and browser-facing configuration
type UIConfig struct {
	Locale string `mapstructure:"locale"`
	// AllowOrigins lists other origins that may call the console. The page
	// itself is same-origin and needs none; "*" only permits reads.
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
	File        string `mapstructure:"file"`
	MaxSizeMB   int    `mapstructure:"max_size_mb"`
	MaxBackups  int    `mapstructure:"max_backups"`
	MaxAgeDays  int    `mapstructure:"max_age_days"`
}

// MetricsConfig toggles the /metrics endpoint
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("ASKDOC")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// server.port -> ASKDOC_SERVER_PORT
var envKeyReplacer = strings.NewReplacer(".", "_")

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8000)

	v.SetDefault("backend.base_url", "http://127.0.0.1:9000")
	v.SetDefault("backend.documents_path", "/documents")
	v.SetDefault("backend.upload_path", "/upload-doc")
	v.SetDefault("backend.qa_path", "/qa")
	v.SetDefault("backend.health_path", "/health")
	v.SetDefault("backend.top_k", 0)

	v.SetDefault("ui.locale", "en-US")
	v.SetDefault("ui.allow_origins", []string{})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)

	v.SetDefault("metrics.enabled", true)
}

// Validate rejects configurations the console cannot start with
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Backend.TopK < 0 {
		return fmt.Errorf("backend.top_k must not be negative: %d", c.Backend.TopK)
	}
	return nil
}

// Address returns the server address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// BaseURL returns the address browsers use to reach the console
func (c *Config) BaseURL() string {
	return "http://" + c.Address()
}

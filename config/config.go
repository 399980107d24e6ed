package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. RSBACKEND_CARGO_BINARY.
const EnvPrefix = "RSBACKEND"

// Config represents application configuration
type Config struct {
	Cargo   CargoConfig   `mapstructure:"cargo"`
	Git     GitConfig     `mapstructure:"git"`
	Logger  LoggerConfig  `mapstructure:"logger"`
	Tracing TracingConfig `mapstructure:"tracing"`
	I18n    I18nConfig    `mapstructure:"i18n"`
}

// CargoConfig holds package manager configuration
type CargoConfig struct {
	Binary string `mapstructure:"binary" validate:"required"`
}

// GitConfig holds the identity used for the initial commit
type GitConfig struct {
	AuthorName    string `mapstructure:"author_name" validate:"required"`
	AuthorEmail   string `mapstructure:"author_email" validate:"required,email"`
	CommitMessage string `mapstructure:"commit_message" validate:"required"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"oneof=console json"`
	OutputPath string `mapstructure:"output_path"`
}

// TracingConfig holds tracing configuration
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	ServiceName string  `mapstructure:"service_name" validate:"required_if=Enabled true"`
	Endpoint    string  `mapstructure:"endpoint" validate:"omitempty,url"`
	SampleRate  float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// I18nConfig holds i18n configuration
type I18nConfig struct {
	Language string `mapstructure:"language" validate:"required,language"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Cargo
	v.SetDefault("cargo.binary", "cargo")

	// Git
	v.SetDefault("git.author_name", "Rust Backend Scaffolder")
	v.SetDefault("git.author_email", "scaffolder@example.com")
	v.SetDefault("git.commit_message", "Initial commit: Scaffolded project")

	// Logger
	v.SetDefault("logger.level", "warn")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stderr")

	// Tracing
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "rsbackend")
	v.SetDefault("tracing.endpoint", "http://localhost:14268/api/traces")
	v.SetDefault("tracing.sample_rate", 1.0)

	// I18n
	v.SetDefault("i18n.language", "en")
}

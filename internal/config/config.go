// Package config loads and validates the vecforge runtime configuration.
package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the root configuration structure
type Config struct {
	App      AppConfig      `mapstructure:"app" yaml:"app"`
	Postgres PostgresConfig `mapstructure:"postgres" yaml:"postgres"`
	Install  InstallConfig  `mapstructure:"install" yaml:"install"`
	LogFile  string         `mapstructure:"log_file" yaml:"log_file"`
	Debug    bool           `mapstructure:"debug" yaml:"debug"`
}

// AppConfig holds the application-level settings: the role and database that
// get created for the application. These are the two values an operator is
// expected to override.
type AppConfig struct {
	Username string `mapstructure:"username" yaml:"username"`
	Database string `mapstructure:"database" yaml:"database"`
}

// PostgresConfig holds the target PostgreSQL installation parameters.
type PostgresConfig struct {
	Version   int    `mapstructure:"version" yaml:"version"`
	Service   string `mapstructure:"service" yaml:"service"`
	DataDir   string `mapstructure:"data_dir" yaml:"data_dir"`
	Port      int    `mapstructure:"port" yaml:"port"`
	SocketDir string `mapstructure:"socket_dir" yaml:"socket_dir"`
	AdminUser string `mapstructure:"admin_user" yaml:"admin_user"`

	// StartWait is the fixed delay after a service start before the first
	// database connection is attempted.
	StartWait time.Duration `mapstructure:"start_wait" yaml:"start_wait"`
}

// InstallConfig holds the package-installation parameters.
type InstallConfig struct {
	RepoRPMURL    string   `mapstructure:"repo_rpm_url" yaml:"repo_rpm_url"`
	DisableModule string   `mapstructure:"disable_module" yaml:"disable_module"`
	Packages      []string `mapstructure:"packages" yaml:"packages"`
}

// LoadConfig loads configuration from the default locations and environment.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/vecforge")
	v.AddConfigPath("$HOME/.config/vecforge")
	v.AddConfigPath(".")
	return load(v, "")
}

// LoadConfigFromPath loads configuration from an explicit file path.
func LoadConfigFromPath(path string) (*Config, error) {
	v := viper.New()
	return load(v, path)
}

func load(v *viper.Viper, path string) (*Config, error) {
	v.AutomaticEnv()
	v.SetEnvPrefix("VECFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	applyDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		if err := v.ReadInConfig(); err != nil {
			// Missing config is fine: every value has a default.
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := ValidateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Default returns the built-in configuration, used by "config init" and as a
// base for tests.
func Default() *Config {
	v := viper.New()
	applyDefaults(v)

	var config Config
	// Defaults always unmarshal cleanly.
	_ = v.Unmarshal(&config)
	return &config
}

// identPattern matches PostgreSQL identifiers safe to embed in DDL without
// quoting surprises. Role and database names feed directly into CREATE
// statements, so anything outside this set is rejected up front.
var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ValidateConfig validates the configuration values
func ValidateConfig(cfg *Config) error {
	if !identPattern.MatchString(cfg.App.Username) {
		return fmt.Errorf("app.username %q is not a valid PostgreSQL identifier", cfg.App.Username)
	}
	if !identPattern.MatchString(cfg.App.Database) {
		return fmt.Errorf("app.database %q is not a valid PostgreSQL identifier", cfg.App.Database)
	}
	if !identPattern.MatchString(cfg.Postgres.AdminUser) {
		return fmt.Errorf("postgres.admin_user %q is not a valid PostgreSQL identifier", cfg.Postgres.AdminUser)
	}

	if cfg.Postgres.Port < 1 || cfg.Postgres.Port > 65535 {
		return fmt.Errorf("postgres.port must be between 1 and 65535, got %d", cfg.Postgres.Port)
	}
	if cfg.Postgres.Version < 13 {
		return fmt.Errorf("postgres.version must be >= 13 (pgvector requirement), got %d", cfg.Postgres.Version)
	}
	if cfg.Postgres.Service == "" {
		return fmt.Errorf("postgres.service cannot be empty")
	}
	if cfg.Postgres.DataDir == "" {
		return fmt.Errorf("postgres.data_dir cannot be empty")
	}
	if cfg.Postgres.StartWait < 0 || cfg.Postgres.StartWait > time.Minute {
		return fmt.Errorf("postgres.start_wait must be between 0 and 1m, got %v", cfg.Postgres.StartWait)
	}

	if len(cfg.Install.Packages) == 0 {
		return fmt.Errorf("install.packages cannot be empty")
	}

	return nil
}

// applyDefaults sets default configuration values
func applyDefaults(v *viper.Viper) {
	v.SetDefault("app.username", "vectorapp")
	v.SetDefault("app.database", "vectordb")

	v.SetDefault("postgres.version", 16)
	v.SetDefault("postgres.service", "postgresql-16")
	v.SetDefault("postgres.data_dir", "/var/lib/pgsql/16/data")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.socket_dir", "/var/run/postgresql")
	v.SetDefault("postgres.admin_user", "postgres")
	v.SetDefault("postgres.start_wait", "5s")

	v.SetDefault("install.repo_rpm_url",
		"https://download.postgresql.org/pub/repos/yum/reporpms/EL-9-x86_64/pgdg-redhat-repo-latest.noarch.rpm")
	v.SetDefault("install.disable_module", "postgresql")
	v.SetDefault("install.packages", []string{
		"postgresql16-server",
		"postgresql16-contrib",
		"pgvector_16",
	})

	v.SetDefault("log_file", "")
	v.SetDefault("debug", false)
}

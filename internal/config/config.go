package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/at-ishikawa/quickcards/internal/validation"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
	DriverFile   = "file"
)

type Config struct {
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Backup   BackupConfig   `mapstructure:"backup"`
	Report   ReportConfig   `mapstructure:"report"`
}

type StorageConfig struct {
	Driver        string `mapstructure:"driver" validate:"oneof=sqlite mysql file"`
	SQLitePath    string `mapstructure:"sqlite_path" validate:"required_if=Driver sqlite"`
	FileDirectory string `mapstructure:"file_directory" validate:"required_if=Driver file"`
	// WriteAttempts of 1 disables retries.
	WriteAttempts uint `mapstructure:"write_attempts" validate:"min=1,max=10"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port" validate:"min=0,max=65535"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type BackupConfig struct {
	Directory           string `mapstructure:"directory"`
	FetchTimeoutSeconds int    `mapstructure:"fetch_timeout_seconds" validate:"min=1"`
}

type ReportConfig struct {
	Template        string `mapstructure:"template" validate:"omitempty,file"`
	OutputDirectory string `mapstructure:"output_directory"`
}

type ConfigLoader struct {
	viper     *viper.Viper
	validator *validation.Validator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, err := newConfigValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/quickcards")
	}

	return &ConfigLoader{
		viper:     v,
		validator: validate,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.sqlite_path", "quickcards.db")
	v.SetDefault("storage.file_directory", "data")
	v.SetDefault("storage.write_attempts", 1)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "quickcards")
	v.SetDefault("database.username", "user")
	v.SetDefault("backup.directory", "backups")
	v.SetDefault("backup.fetch_timeout_seconds", 30)
	// Template is optional - if not specified, the embedded report template is used
	v.SetDefault("report.template", "")
	v.SetDefault("report.output_directory", filepath.Join("outputs", "reports"))

	if err := v.BindEnv("storage.driver", "QUICKCARDS_STORAGE_DRIVER"); err != nil {
		return nil, fmt.Errorf("failed to bind QUICKCARDS_STORAGE_DRIVER environment variable: %w", err)
	}
	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "QUICKCARDS_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind QUICKCARDS_DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

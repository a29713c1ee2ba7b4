package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/julianstephens/taskflow/internal/constants"
)

const EnvPrefix = "TASKFLOW"

type Config struct {
	// Database is a SQLite file path or a PostgreSQL connection string.
	Database string       `mapstructure:"database"`
	Debug    bool         `mapstructure:"debug"`
	Server   ServerConfig `mapstructure:"server"`
	Backups  BackupConfig `mapstructure:"backups"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type BackupConfig struct {
	// Enabled turns on the automatic backup taken before destructive commands.
	Enabled bool `mapstructure:"enabled"`
	Max     int  `mapstructure:"max"`
}

func DefaultConfig() *Config {
	return &Config{
		Database: constants.DefaultConfigPath,
		Server:   ServerConfig{Addr: constants.DefaultServerAddr},
		Backups:  BackupConfig{Enabled: true, Max: constants.MaxBackups},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("database", def.Database)
	v.SetDefault("debug", def.Debug)
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("backups.enabled", def.Backups.Enabled)
	v.SetDefault("backups.max", def.Backups.Max)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the YAML config at path, layered over defaults and under
// TASKFLOW_* environment variables. A missing file is not an error.
// An empty path selects DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	path = ExpandHome(path)

	v := newViper()
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to access config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Database = ExpandHome(cfg.Database)
	return cfg, nil
}

// WriteDefault writes a config file holding the default settings.
func WriteDefault(path string) error {
	path = ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	def := DefaultConfig()
	v.Set("database", def.Database)
	v.Set("debug", def.Debug)
	v.Set("server.addr", def.Server.Addr)
	v.Set("backups.enabled", def.Backups.Enabled)
	v.Set("backups.max", def.Backups.Max)
	v.SetConfigType("yaml")
	return v.WriteConfigAs(path)
}

// Dir returns the directory holding the config file, database and logs.
func Dir() string {
	return ExpandHome(filepath.Dir(constants.DefaultConfigPath))
}

func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

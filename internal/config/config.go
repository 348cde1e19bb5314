// Package config loads taskboard settings from a YAML file and TASKBOARD_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	AppName   = "taskboard"
	EnvPrefix = "TASKBOARD"

	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	DataDir    string     `mapstructure:"data_dir" yaml:"data_dir"`
	SessionDir string     `mapstructure:"session_dir" yaml:"session_dir"`
	Backend    string     `mapstructure:"backend" yaml:"backend"`
	Theme      string     `mapstructure:"theme" yaml:"theme"`
	LogLevel   string     `mapstructure:"log_level" yaml:"log_level"`
	Auth       AuthConfig `mapstructure:"auth" yaml:"auth"`
}

// AuthConfig replaces the demo identity when both fields are set.
type AuthConfig struct {
	Email        string `mapstructure:"email" yaml:"email"`
	PasswordHash string `mapstructure:"password_hash" yaml:"password_hash"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:    defaultDataDir(),
		SessionDir: defaultSessionDir(),
		Backend:    BackendJSON,
		Theme:      "classic",
		LogLevel:   "warn",
	}
}

// DefaultPath is $XDG_CONFIG_HOME/taskboard/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join("."+AppName, "config.yaml")
	}
	return filepath.Join(dir, AppName, "config.yaml")
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// defaultSessionDir is cleared on reboot, like a browser tab's session storage.
func defaultSessionDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s-%d", AppName, os.Getuid()))
}

// Load reads the config file at path, or DefaultPath when path is empty, and
// applies environment overrides. A missing default file is not an error.
func Load(path string) (*Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("session_dir", def.SessionDir)
	v.SetDefault("backend", def.Backend)
	v.SetDefault("theme", def.Theme)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("auth.email", "")
	v.SetDefault("auth.password_hash", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.SessionDir = expandHome(cfg.SessionDir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("%w: backend %q (want json or sqlite)", ErrInvalidConfig, c.Backend)
	}
	switch strings.ToLower(c.Theme) {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("%w: theme %q (want classic, neon or mono)", ErrInvalidConfig, c.Theme)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("%w: data_dir is empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.SessionDir) == "" {
		return fmt.Errorf("%w: session_dir is empty", ErrInvalidConfig)
	}
	if (c.Auth.Email == "") != (c.Auth.PasswordHash == "") {
		return fmt.Errorf("%w: auth.email and auth.password_hash must be set together", ErrInvalidConfig)
	}
	return nil
}

// Level parses LogLevel (debug, info, warn, error).
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return l, nil
}

// EnsureDirs creates the data and session directories owner-only.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, c.SessionDir} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	return nil
}

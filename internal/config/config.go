package config

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/hollis/appshell/internal/logger"
	"github.com/hollis/appshell/internal/sidecar"
)

// Config is the top-level TOML structure (appshell.toml).
//
//	mode = "release"
//	log_level = "info"
//
//	[backend]
//	name = "backend"
//	args = ["--port", "8090"]
//	env = ["APP_ENV=production"]
//	env_files = [".env"]
//
//	[log]
//	dir = "/var/log/appshell"
//
//	[history]
//	dsn = "sqlite:///home/user/.local/share/appshell/history.db"
//
//	[control]
//	enabled = true
//	addr = "127.0.0.1:7077"
type Config struct {
	Mode     string        `toml:"mode" mapstructure:"mode"`
	LogLevel string        `toml:"log_level" mapstructure:"log_level"`
	Backend  BackendConfig `toml:"backend" mapstructure:"backend"`
	Log      logger.Config `toml:"log" mapstructure:"log"`
	History  HistoryConfig `toml:"history" mapstructure:"history"`
	Control  ControlConfig `toml:"control" mapstructure:"control"`
}

type BackendConfig struct {
	Name      string   `toml:"name" mapstructure:"name"`
	Args      []string `toml:"args" mapstructure:"args"`
	Env       []string `toml:"env" mapstructure:"env"`
	EnvFiles  []string `toml:"env_files" mapstructure:"env_files"`
	WorkDir   string   `toml:"workdir" mapstructure:"workdir"`
	BundleDir string   `toml:"bundle_dir" mapstructure:"bundle_dir"`
}

type HistoryConfig struct {
	DSN string `toml:"dsn" mapstructure:"dsn"`
}

type ControlConfig struct {
	Enabled bool   `toml:"enabled" mapstructure:"enabled"`
	Addr    string `toml:"addr" mapstructure:"addr"`
}

// Default control listen address: loopback only, the surface is a local
// debugging aid, never exposed beyond the machine.
const DefaultControlAddr = "127.0.0.1:7077"

// Load reads the TOML config at path. An empty path returns defaults only, so
// the shell runs with no config file present.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Backend: BackendConfig{Name: sidecar.DefaultName},
		Control: ControlConfig{Addr: DefaultControlAddr},
	}
	if path == "" {
		return cfg, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.Backend.Name == "" {
		cfg.Backend.Name = sidecar.DefaultName
	}
	if cfg.Control.Addr == "" {
		cfg.Control.Addr = DefaultControlAddr
	}
	return cfg, nil
}

// ResolveMode picks the effective mode: flag > config > build-tag default.
func (c *Config) ResolveMode(flagValue string) (sidecar.Mode, error) {
	if flagValue != "" {
		return sidecar.ParseMode(flagValue)
	}
	if c.Mode != "" {
		return sidecar.ParseMode(c.Mode)
	}
	return sidecar.DefaultMode, nil
}

// SidecarSpec builds the supervisor spec from the backend section, loading
// declared env files and appending inline env entries last so they win.
func (c *Config) SidecarSpec() (sidecar.Spec, error) {
	env := make([]string, 0, len(c.Backend.Env))
	for _, p := range c.Backend.EnvFiles {
		pairs, err := godotenv.Read(filepath.Clean(p))
		if err != nil {
			return sidecar.Spec{}, fmt.Errorf("load env file %s: %w", p, err)
		}
		for k, val := range pairs {
			env = append(env, k+"="+val)
		}
	}
	env = append(env, c.Backend.Env...)

	s := sidecar.Spec{
		Name:      c.Backend.Name,
		Args:      c.Backend.Args,
		Env:       env,
		WorkDir:   c.Backend.WorkDir,
		BundleDir: c.Backend.BundleDir,
		Log:       c.Log,
	}
	if err := s.Validate(); err != nil {
		return sidecar.Spec{}, err
	}
	return s, nil
}

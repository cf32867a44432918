package config

import (
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"higherlower-server/internal/util"
)

// Config provides configuration for the Higher Lower server and CLI
type Config struct {
	loaded bool
	Addr   string `yaml:"addr" envconfig:"addr"`
	Game   struct {
		SpecialEdition bool  `yaml:"specialEdition" envconfig:"special_edition"`
		TrueSight      bool  `yaml:"trueSight" envconfig:"true_sight"`
		Seed           int64 `yaml:"seed" envconfig:"seed"`
	} `yaml:"game"`
	Sessions struct {
		MaxIdle     time.Duration `yaml:"maxIdle" envconfig:"max_idle"`
		MaxSessions int           `yaml:"maxSessions" envconfig:"max_sessions"`
	} `yaml:"sessions"`
	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
}

var config Config

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	cfg := Config{
		Addr: ":5000",
	}

	cfg.Sessions.MaxIdle = time.Minute * 30
	cfg.Sessions.MaxSessions = 1000
	cfg.Log.Level = "info"

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// The YAML file is optional. Environment variables prefixed with HL_ override it.
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("HL_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("hl", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}

package config

import (
	"log"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries the client's connection and storage settings.
type Config interface {
	ServerURL() string
	CachePath() string
	CacheVersion() string
	SessionPath() string
}

// Load reads configuration from a .mindbox file in the working directory (or
// MINDBOX_CONFIG_PATH), with MINDBOX_* environment overrides on top.
func Load() (Config, error) {
	viper.SetDefault("server", "http://localhost:5000")
	viper.SetDefault("cache.version", "mindbox-v1")
	viper.SetConfigName(".mindbox") // .yaml is implicit
	viper.SetEnvPrefix("MINDBOX")
	viper.AutomaticEnv()

	if override := os.Getenv("MINDBOX_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("error reading config file: %v", err)
			return nil, err
		}
	}

	cfg := &fileConfig{
		Server:  viper.GetString("server"),
		Cache:   viper.GetString("cache.path"),
		Version: viper.GetString("cache.version"),
		Session: viper.GetString("session.path"),
	}
	if cfg.Cache == "" {
		if home, err := homedir.Dir(); err == nil {
			cfg.Cache = filepath.Join(home, ".mindbox", "cache")
		}
	}
	return cfg, nil
}

type fileConfig struct {
	Server  string `json:"server"`
	Cache   string `json:"cache_path"`
	Version string `json:"cache_version"`
	Session string `json:"session_path"`
}

func (f *fileConfig) ServerURL() string    { return f.Server }
func (f *fileConfig) CachePath() string    { return f.Cache }
func (f *fileConfig) CacheVersion() string { return f.Version }
func (f *fileConfig) SessionPath() string  { return f.Session }

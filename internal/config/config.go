// Package config resolves the paths and settings the program runs with.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultDBFile is the database file created in the working
	// directory when nothing else is configured.
	DefaultDBFile = "ebookstore.db"
	// LogFile is the log file name, placed next to the database.
	LogFile = "ebookstore.log"
	// HistoryFile is the prompt history file name under the home directory.
	HistoryFile = ".ebookstore_history"
	// EnvDBPath overrides the database path.
	EnvDBPath = "EBOOKSTORE_DB"
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "ebookstore"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// GlobalConfig represents configuration stored in
// ~/.config/ebookstore/config.yml. Every field is optional.
type GlobalConfig struct {
	DBPath      string `yaml:"db_path,omitempty"`
	HistoryPath string `yaml:"history_path,omitempty"`
	LogPath     string `yaml:"log_path,omitempty"`
	LogLevel    string `yaml:"log_level,omitempty"`
}

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/ebookstore/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	cfg.DBPath = ExpandTilde(cfg.DBPath)
	cfg.HistoryPath = ExpandTilde(cfg.HistoryPath)
	cfg.LogPath = ExpandTilde(cfg.LogPath)

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// ExpandTilde expands a leading ~ to the user's home directory.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// Settings is the fully resolved runtime configuration.
type Settings struct {
	DBPath      string
	HistoryPath string
	LogPath     string
	LogLevel    string
}

// Resolve layers the database path and related settings: explicit flag
// value first, then environment (a .env file in the working directory
// is honored), then the global config file, then defaults.
func Resolve(flagDB string) (Settings, error) {
	_ = godotenv.Load()

	cfg, err := LoadGlobalConfig()
	if err != nil {
		return Settings{}, err
	}

	dbPath := flagDB
	if dbPath == "" {
		dbPath = os.Getenv(EnvDBPath)
	}
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if dbPath == "" {
		dbPath = DefaultDBFile
	}

	historyPath := cfg.HistoryPath
	if historyPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			historyPath = filepath.Join(home, HistoryFile)
		}
	}

	logPath := cfg.LogPath
	if logPath == "" {
		logPath = filepath.Join(filepath.Dir(dbPath), LogFile)
	}

	logLevel := cfg.LogLevel
	if logLevel == "" {
		logLevel = "info"
	}

	return Settings{
		DBPath:      dbPath,
		HistoryPath: historyPath,
		LogPath:     logPath,
		LogLevel:    logLevel,
	}, nil
}

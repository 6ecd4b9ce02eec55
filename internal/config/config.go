package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DataDir string       `mapstructure:"data_dir"`
	DBPath  string       `mapstructure:"db_path"`
	Log     LogConfig    `mapstructure:"log"`
	GitHub  GitHubConfig `mapstructure:"github"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Pretty bool   `mapstructure:"pretty"` // colored console output instead of JSON
	File   string `mapstructure:"file"`   // where the menu writes logs; stdout belongs to the UI
}

type GitHubConfig struct {
	BaseURL string        `mapstructure:"base_url"` // empty = public API
	Token   string        `mapstructure:"token"`    // optional, raises rate limits
	PerPage int           `mapstructure:"per_page"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DefaultDataDir returns the bark directory under the platform's config directory.
func DefaultDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "bark"), nil
}

// Load reads defaults, then configFile (or config.yaml in the data
// directory when configFile is empty), then BARK_* environment variables.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	dataDir, err := DefaultDataDir()
	if err != nil {
		return nil, err
	}

	v.SetDefault("data_dir", dataDir)
	v.SetDefault("db_path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("log.file", "")
	v.SetDefault("github.base_url", "")
	v.SetDefault("github.token", "")
	v.SetDefault("github.per_page", 100)
	v.SetDefault("github.timeout", 30*time.Second)

	v.SetEnvPrefix("BARK")
	v.AutomaticEnv()
	_ = v.BindEnv("data_dir", "BARK_DATA_DIR")
	_ = v.BindEnv("db_path", "BARK_DB_PATH")
	_ = v.BindEnv("log.level", "BARK_LOG_LEVEL")
	_ = v.BindEnv("log.pretty", "BARK_LOG_PRETTY")
	_ = v.BindEnv("log.file", "BARK_LOG_FILE")
	_ = v.BindEnv("github.base_url", "BARK_GITHUB_BASE_URL")
	_ = v.BindEnv("github.token", "BARK_GITHUB_TOKEN", "GITHUB_TOKEN")
	_ = v.BindEnv("github.per_page", "BARK_GITHUB_PER_PAGE")
	_ = v.BindEnv("github.timeout", "BARK_GITHUB_TIMEOUT")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(v.GetString("data_dir"))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "bookmarks.db")
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(cfg.DataDir, "bark.log")
	}

	return &cfg, nil
}

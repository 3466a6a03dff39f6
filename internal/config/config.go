package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config captures everything booktrack needs to reach the book store.
type Config struct {
	BaseURL          string        `envconfig:"BASE_URL" validate:"required,url"`
	RequestTimeout   time.Duration `envconfig:"REQUEST_TIMEOUT" validate:"gte=0"`
	AlertDuration    time.Duration `envconfig:"ALERT_DURATION" validate:"gt=0"`
	PlaceholderImage string        `envconfig:"PLACEHOLDER_IMAGE" validate:"required,url"`
	LogFile          string        `envconfig:"LOG_FILE" validate:"required"`
	LogLevel         string        `envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`
}

const (
	envPrefix = "BOOKTRACK"

	defaultConfigPath       = "~/.config/booktrack/config.toml"
	defaultBaseURL          = "http://localhost:3000"
	defaultRequestTimeout   = 10 * time.Second
	defaultAlertDuration    = 5 * time.Second
	defaultPlaceholderImage = "https://via.placeholder.com/150"
	defaultLogFile          = "~/.local/state/booktrack/booktrack.log"
	defaultLogLevel         = "info"
)

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		BaseURL:          defaultBaseURL,
		RequestTimeout:   defaultRequestTimeout,
		AlertDuration:    defaultAlertDuration,
		PlaceholderImage: defaultPlaceholderImage,
		LogFile:          mustExpand(defaultLogFile),
		LogLevel:         defaultLogLevel,
	}
}

// fileConfig is the on-disk shape shared by the TOML and YAML formats.
// Durations are strings such as "5s" so both decoders treat them alike.
type fileConfig struct {
	BaseURL          string `toml:"base_url" yaml:"base_url"`
	RequestTimeout   string `toml:"request_timeout" yaml:"request_timeout"`
	AlertDuration    string `toml:"alert_duration" yaml:"alert_duration"`
	PlaceholderImage string `toml:"placeholder_image" yaml:"placeholder_image"`
	LogFile          string `toml:"log_file" yaml:"log_file"`
	LogLevel         string `toml:"log_level" yaml:"log_level"`
}

// Load locates and parses the config file, falling back to defaults when it
// is missing. Files ending in .yaml or .yml are read as YAML, anything else
// as TOML.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := decode(resolved, bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := raw.applyTo(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overlays BOOKTRACK_* environment variables onto cfg. When envFile
// exists it is loaded first; variables already set in the process win over
// the file.
func ApplyEnv(cfg *Config, envFile string) error {
	if envFile = strings.TrimSpace(envFile); envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("load env file: %w", err)
			}
		}
	}
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.LogFile = mustExpand(cfg.LogFile)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	return nil
}

var validate = validator.New()

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q (value %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LogDir returns the directory holding the log file.
func (c Config) LogDir() string {
	if strings.TrimSpace(c.LogFile) == "" {
		return filepath.Dir(mustExpand(defaultLogFile))
	}
	return filepath.Dir(c.LogFile)
}

func decode(path string, data []byte, raw *fileConfig) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, raw)
	default:
		return toml.Unmarshal(data, raw)
	}
}

func (raw fileConfig) applyTo(cfg *Config) error {
	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(raw.PlaceholderImage); v != "" {
		cfg.PlaceholderImage = v
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("request_timeout: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if v := strings.TrimSpace(raw.AlertDuration); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("alert_duration: %w", err)
		}
		cfg.AlertDuration = d
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

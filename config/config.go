// Package config loads server settings from an optional TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config holds settings for both the item API and the static web server.
type Config struct {
	API APIConfig `toml:"api"`
	Web WebConfig `toml:"web"`
	Log LogConfig `toml:"log"`
}

type APIConfig struct {
	Host           string   `toml:"host"`
	Port           string   `toml:"port" validate:"required,numeric"`
	DataDir        string   `toml:"data_dir" validate:"required"`
	StoreBackend   string   `toml:"store_backend" validate:"oneof=json sqlite memory"`
	AllowedOrigins []string `toml:"allowed_origins" validate:"min=1"`
	IDStrategy     string   `toml:"id_strategy" validate:"oneof=last max"`
}

type WebConfig struct {
	Host      string `toml:"host"`
	Port      string `toml:"port" validate:"required,numeric"`
	IndexFile string `toml:"index_file" validate:"required"`
}

type LogConfig struct {
	Level  string `toml:"level" validate:"oneof=debug info warn error"`
	Format string `toml:"format" validate:"oneof=text json"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Host:           "0.0.0.0",
			Port:           "8080",
			DataDir:        "./data",
			StoreBackend:   "json",
			AllowedOrigins: []string{"*"},
			IDStrategy:     "last",
		},
		Web: WebConfig{
			Host:      "0.0.0.0",
			Port:      "3000",
			IndexFile: "./index.html",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration: defaults, then the TOML file at path (if
// path is non-empty), then environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := toml.Unmarshal(content, cfg); err != nil {
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				row, col := derr.Position()
				return nil, fmt.Errorf("failed to parse config file at line %d, column %d: %w", row, col, err)
			}
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	env := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	c.API.Host = env("HOST", c.API.Host)
	c.API.Port = env("PORT", c.API.Port)
	c.API.DataDir = env("DATA_DIR", c.API.DataDir)
	c.API.StoreBackend = env("STORE_BACKEND", c.API.StoreBackend)
	c.API.IDStrategy = env("ID_STRATEGY", c.API.IDStrategy)
	if origins := getenv("ALLOWED_ORIGINS"); origins != "" {
		c.API.AllowedOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.API.AllowedOrigins = append(c.API.AllowedOrigins, o)
			}
		}
	}

	c.Web.Host = env("WEB_HOST", c.Web.Host)
	c.Web.Port = env("WEB_PORT", c.Web.Port)
	c.Web.IndexFile = env("WEB_INDEX_FILE", c.Web.IndexFile)

	c.Log.Level = env("LOG_LEVEL", c.Log.Level)
	c.Log.Format = env("LOG_FORMAT", c.Log.Format)
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report field paths with their TOML names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks field constraints and reports every violation.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Namespace(), validationMessage(e)))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "numeric":
		return "must be a number"
	case "min":
		return fmt.Sprintf("must have at least %s value(s)", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// APIAddr is the listen address of the item service.
func (c *Config) APIAddr() string {
	return c.API.Host + ":" + c.API.Port
}

// WebAddr is the listen address of the static server.
func (c *Config) WebAddr() string {
	return c.Web.Host + ":" + c.Web.Port
}

// SlogLevel maps the configured level name to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Package config loads runtime configuration from an optional .env file,
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config captures runtime configuration for usersadmin.
type Config struct {
	API       API
	Session   Session
	Logging   Logging
	Telemetry Telemetry
	UI        UI
}

// API configures the remote users service.
type API struct {
	BaseURL     string        `env:"USERSADMIN_API_URL" envDefault:"http://localhost:8080/api"`
	ListPath    string        `env:"USERSADMIN_LIST_PATH" envDefault:"/users"`
	ProfilePath string        `env:"USERSADMIN_PROFILE_PATH" envDefault:"/users/{id}"`
	Timeout     time.Duration `env:"USERSADMIN_TIMEOUT" envDefault:"15s"`
}

// Session configures where the credential is persisted.
type Session struct {
	Dir string `env:"USERSADMIN_SESSION_DIR"` // empty uses ~/.usersadmin
}

// Logging configures the log file. The TUI owns the terminal, so logs never go to stdout.
type Logging struct {
	FilePath string `env:"USERSADMIN_LOG_FILE"` // empty uses <session dir>/usersadmin.log
	Level    string `env:"USERSADMIN_LOG_LEVEL" envDefault:"info"`
}

// Telemetry configures OTLP trace export. Export is off unless Endpoint is set.
type Telemetry struct {
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"usersadmin"`
}

// UI configures presentation.
type UI struct {
	PageSize      int           `env:"USERSADMIN_PAGE_SIZE" envDefault:"10"`
	ToastDuration time.Duration `env:"USERSADMIN_TOAST_DURATION" envDefault:"3s"`
}

// MaxPageSize bounds UI.PageSize.
const MaxPageSize = 500

// Load reads ./.env if present, then environment and os.Args.
func Load() (Config, error) {
	_ = godotenv.Load()
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	var cfg Config
	vars := parseEnviron(environ)
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("usersadmin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.API.BaseURL, "api-url", cfg.API.BaseURL, "base URL of the users API")
	fs.DurationVar(&cfg.API.Timeout, "timeout", cfg.API.Timeout, "per-request timeout")
	fs.StringVar(&cfg.Session.Dir, "session-dir", cfg.Session.Dir, "directory holding session.json")
	fs.StringVar(&cfg.Logging.FilePath, "log-file", cfg.Logging.FilePath, "path to the log file")
	fs.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "log level (debug, info, warn, error)")
	fs.IntVar(&cfg.UI.PageSize, "page-size", cfg.UI.PageSize, "rows per table page")
	envFile := fs.String("env-file", "", "additional .env file to read before the environment")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if *envFile != "" {
		return loadWithEnvFile(*envFile, args, vars)
	}
	return cfg, Validate(cfg)
}

// loadWithEnvFile re-runs LoadArgs with the file's values underneath the
// real environment.
func loadWithEnvFile(path string, args []string, vars map[string]string) (Config, error) {
	fileVars, err := godotenv.Read(path)
	if err != nil {
		return Config{}, fmt.Errorf("read env file: %w", err)
	}
	merged := make([]string, 0, len(fileVars)+len(vars))
	for k, v := range fileVars {
		if _, ok := vars[k]; !ok {
			merged = append(merged, k+"="+v)
		}
	}
	for k, v := range vars {
		merged = append(merged, k+"="+v)
	}
	return LoadArgs(stripFlag(args, "env-file"), merged)
}

// Validate ensures the configuration is usable.
func Validate(cfg Config) error {
	var errs []error
	u, err := url.Parse(cfg.API.BaseURL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("api url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("api url %q must be http or https", cfg.API.BaseURL))
	case u.Host == "":
		errs = append(errs, fmt.Errorf("api url %q has no host", cfg.API.BaseURL))
	}
	if !strings.Contains(cfg.API.ProfilePath, "{id}") {
		errs = append(errs, fmt.Errorf("profile path %q must contain {id}", cfg.API.ProfilePath))
	}
	if cfg.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be > 0 (got %s)", cfg.API.Timeout))
	}
	if cfg.UI.PageSize < 1 || cfg.UI.PageSize > MaxPageSize {
		errs = append(errs, fmt.Errorf("page size must be between 1 and %d (got %d)", MaxPageSize, cfg.UI.PageSize))
	}
	if cfg.UI.ToastDuration <= 0 {
		errs = append(errs, fmt.Errorf("toast duration must be > 0 (got %s)", cfg.UI.ToastDuration))
	}
	if _, err := ParseLevel(cfg.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

func parseEnviron(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		k, v, ok := strings.Cut(entry, "=")
		if !ok || k == "" {
			continue
		}
		values[k] = v
	}
	return values
}

// stripFlag removes -name/--name flags (both "-name v" and "-name=v" forms) from args.
func stripFlag(args []string, name string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		if !strings.HasPrefix(args[i], "-") {
			out = append(out, args[i])
			continue
		}
		a := strings.TrimLeft(args[i], "-")
		if a == name {
			i++
			continue
		}
		if strings.HasPrefix(a, name+"=") {
			continue
		}
		out = append(out, args[i])
	}
	return out
}

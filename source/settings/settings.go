// All this does is contain in one place the switches controlling which bits of the inner workings of the
// lexer/parser/evaluator are displayed for debugging purposes, together with the user's config file.
// In a release the SHOW_ flags must all default to false.

package settings

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// These do what it sounds like. They are vars rather than consts so that the config file can
// switch them on.
var (
	SHOW_LEXER  = false
	SHOW_PARSER = false
	SHOW_EVAL   = false
)

const (
	SHOW_TESTS = false // Says whether the tests should say what is being tested, useful if one of them crashes and we don't know which.

	DEFAULT_MAX_DEPTH = 10000
	DEFAULT_DRIVER    = "sqlite"
	CONFIG_DIR        = "minilisp"
	CONFIG_FILE       = "config.yaml"
)

type Config struct {
	Prompt     string        `yaml:"prompt"`
	MaxDepth   int           `yaml:"max_depth"`
	ShowLexer  bool          `yaml:"show_lexer"`
	ShowParser bool          `yaml:"show_parser"`
	ShowEval   bool          `yaml:"show_eval"`
	LogLevel   string        `yaml:"log_level"`
	History    HistoryConfig `yaml:"history"`
}

// Where the REPL keeps its transcript. An empty DSN means no transcript is kept.
type HistoryConfig struct {
	Driver  string `yaml:"driver"`
	DSN     string `yaml:"dsn"`
	Session string `yaml:"session"`
}

func Default() *Config {
	return &Config{
		MaxDepth: DEFAULT_MAX_DEPTH,
		LogLevel: "warn",
		History:  HistoryConfig{Driver: DEFAULT_DRIVER},
	}
}

// Returns the place we look for the config file if none is given on the command line.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, CONFIG_DIR, CONFIG_FILE)
}

// Loads the config from the given path. A missing file at the default path is not an error: we just
// use the defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()
	return Decode(file, path)
}

// Decodes a YAML config, rejecting fields we don't know about.
func Decode(r io.Reader, name string) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", name, err)
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DEFAULT_MAX_DEPTH
	}
	if cfg.History.Driver == "" {
		cfg.History.Driver = DEFAULT_DRIVER
	}
	if _, ok := parseLevel(cfg.LogLevel); !ok {
		return nil, fmt.Errorf("config: parse %s: unknown log_level %q", name, cfg.LogLevel)
	}
	return cfg, nil
}

// Switches on the debugging flags and installs a default logger writing to w. Any SHOW_ flag
// forces the level down to debug, since that's the level the instrumentation logs at.
func (c *Config) Apply(w io.Writer) *slog.Logger {
	SHOW_LEXER = c.ShowLexer
	SHOW_PARSER = c.ShowParser
	SHOW_EVAL = c.ShowEval
	level, _ := parseLevel(c.LogLevel)
	if SHOW_LEXER || SHOW_PARSER || SHOW_EVAL {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "", "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelWarn, false
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/riskworks/draw2977/internal/form"
)

const (
	// Default file names, resolved relative to the executable's directory
	// so a no-argument invocation works from a packaged install.
	DefaultTemplateName = "DD-Form-2977.pdf"
	DefaultInputName    = "input_draw.json"
	DefaultOutputName   = "generated_DRAW.pdf"

	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
)

// Config holds all configuration for the worksheet filler.
type Config struct {
	TemplatePath string
	InputPath    string
	OutputPath   string
	PreviewPath  string

	Strategy string // auto, acroform, xfa
	Refresh  bool
	Verify   bool

	ServerName  string
	Version     string
	LogLevel    string
	MaxFileSize int64
}

// Default returns a configuration with sensible defaults. Paths default to
// the executable's own directory, falling back to the working directory.
func Default() *Config {
	base := "."
	if exe, err := os.Executable(); err == nil {
		base = filepath.Dir(exe)
	}

	return &Config{
		TemplatePath: filepath.Join(base, DefaultTemplateName),
		InputPath:    filepath.Join(base, DefaultInputName),
		OutputPath:   filepath.Join(base, DefaultOutputName),
		Strategy:     string(form.StrategyAuto),
		Refresh:      true,
		Verify:       true,
		ServerName:   "draw2977",
		Version:      "1.0.0",
		LogLevel:     DefaultLogLevel,
		MaxFileSize:  DefaultMaxFileSize,
	}
}

// BindFlags defines the shared command line flags on a flag set, with the
// config's current values as defaults.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.String("template", c.TemplatePath, "Path to the DD Form 2977 PDF template")
	fs.String("input", c.InputPath, "Path to the input record (JSON or Hjson)")
	fs.String("output", c.OutputPath, "Path to write the filled PDF")
	fs.String("preview", c.PreviewPath, "Optional path for a first-page PNG preview")
	fs.String("strategy", c.Strategy, "Form strategy: auto, acroform, or xfa")
	fs.Bool("refresh", c.Refresh, "Refresh widget appearances after writing (needs qpdf)")
	fs.Bool("verify", c.Verify, "Re-open the output with a second reader afterwards")
	fs.String("loglevel", c.LogLevel, "Log level (debug, info, warn, error)")
	fs.Int64("maxfilesize", c.MaxFileSize, "Maximum template/input file size in bytes")
}

// Load populates the config from a parsed flag set plus DRAW2977_*
// environment variables, then validates it.
func (c *Config) Load(fs *pflag.FlagSet) error {
	v := viper.New()
	v.SetEnvPrefix("DRAW2977")
	v.AutomaticEnv()

	v.SetDefault("template", c.TemplatePath)
	v.SetDefault("input", c.InputPath)
	v.SetDefault("output", c.OutputPath)
	v.SetDefault("preview", c.PreviewPath)
	v.SetDefault("strategy", c.Strategy)
	v.SetDefault("refresh", c.Refresh)
	v.SetDefault("verify", c.Verify)
	v.SetDefault("loglevel", c.LogLevel)
	v.SetDefault("maxfilesize", c.MaxFileSize)

	if err := v.BindPFlags(fs); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	c.TemplatePath = v.GetString("template")
	c.InputPath = v.GetString("input")
	c.OutputPath = v.GetString("output")
	c.PreviewPath = v.GetString("preview")
	c.Strategy = v.GetString("strategy")
	c.Refresh = v.GetBool("refresh")
	c.Verify = v.GetBool("verify")
	c.LogLevel = v.GetString("loglevel")
	c.MaxFileSize = v.GetInt64("maxfilesize")

	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Validate checks the configuration's value domains. Path existence is the
// service's concern, checked at run time against the operation requested.
func (c *Config) Validate() error {
	if c.TemplatePath == "" {
		return errors.New("template path cannot be empty")
	}
	if c.OutputPath == "" {
		return errors.New("output path cannot be empty")
	}

	if _, err := form.ParseStrategy(c.Strategy); err != nil {
		return err
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// FormStrategy returns the validated strategy value.
func (c *Config) FormStrategy() form.Strategy {
	s, err := form.ParseStrategy(c.Strategy)
	if err != nil {
		return form.StrategyAuto
	}
	return s
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Template: %s, Input: %s, Output: %s, Strategy: %s, LogLevel: %s}",
		c.TemplatePath, c.InputPath, c.OutputPath, c.Strategy, c.LogLevel)
}

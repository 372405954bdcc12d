package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the user's picker and CLI preferences.
type Config struct {
	Locale   string       `mapstructure:"locale"`
	YearSpan int          `mapstructure:"year_span"`
	Theme    string       `mapstructure:"theme"`
	Glyphs   string       `mapstructure:"glyphs"`
	DebugLog string       `mapstructure:"debug_log"`
	Output   OutputConfig `mapstructure:"output"`
	Web      WebConfig    `mapstructure:"web"`

	// Source is the config file that was read, if any.
	Source string `mapstructure:"-"`
}

// OutputConfig controls scriptable command output.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Pretty bool   `mapstructure:"pretty"`
}

// WebConfig holds settings for the browser bridge.
type WebConfig struct {
	Addr string `mapstructure:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Locale:   "en",
		YearSpan: 12,
		Theme:    "auto",
		Glyphs:   "unicode",
		Output:   OutputConfig{Format: "json"},
		Web:      WebConfig{Addr: "127.0.0.1:3334"},
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "datewheel")
}

// Load reads configuration from file and env. path overrides
// DATEWHEEL_CONFIG; with neither set, config.{toml,yaml,json} is searched
// in DefaultPath and a missing file is not an error. Env var overrides use
// prefix DATEWHEEL_ (DATEWHEEL_OUTPUT_FORMAT for output.format).
func Load(path string) (Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("locale", d.Locale)
	v.SetDefault("year_span", d.YearSpan)
	v.SetDefault("theme", d.Theme)
	v.SetDefault("glyphs", d.Glyphs)
	v.SetDefault("debug_log", d.DebugLog)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.pretty", d.Output.Pretty)
	v.SetDefault("web.addr", d.Web.Addr)

	if path == "" {
		path = strings.TrimSpace(os.Getenv("DATEWHEEL_CONFIG"))
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(DefaultPath())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DATEWHEEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Source = v.ConfigFileUsed()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values no command could use.
func (c Config) Validate() error {
	switch strings.ToLower(c.Output.Format) {
	case "json", "edn":
	default:
		return fmt.Errorf("invalid output.format %q (expected json|edn)", c.Output.Format)
	}
	if c.YearSpan < 0 {
		return fmt.Errorf("invalid year_span %d (must be >= 0)", c.YearSpan)
	}
	switch strings.ToLower(c.Theme) {
	case "", "auto", "light", "dark":
	default:
		return fmt.Errorf("invalid theme %q (expected auto|light|dark)", c.Theme)
	}
	switch strings.ToLower(c.Glyphs) {
	case "", "unicode", "utf8", "ascii":
	default:
		return fmt.Errorf("invalid glyphs %q (expected unicode|ascii)", c.Glyphs)
	}
	return nil
}

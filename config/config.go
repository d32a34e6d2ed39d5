package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug               = "debug"
	ConfigSearchDepth         = "search-depth"
	ConfigTableMemoryFraction = "table-memory-fraction"
	ConfigSelfplayGames       = "selfplay-games"
	ConfigSelfplayThreads     = "selfplay-threads"
	ConfigSelfplayRandomPlies = "selfplay-random-plies"
	ConfigSelfplayDepthA      = "selfplay-depth-a"
	ConfigSelfplayDepthB      = "selfplay-depth-b"
	ConfigSelfplayLogStream   = "selfplay-log-stream"
	ConfigSelfplayDB          = "selfplay-db"
	ConfigConfigFile          = "config"
)

var defaults = map[string]any{
	ConfigDebug:               false,
	ConfigSearchDepth:         6,
	ConfigTableMemoryFraction: 0.25,
	ConfigSelfplayGames:       10,
	ConfigSelfplayThreads:     1,
	ConfigSelfplayRandomPlies: 2,
	ConfigSelfplayDepthA:      0,
	ConfigSelfplayDepthB:      0,
	ConfigSelfplayLogStream:   "",
	ConfigSelfplayDB:          "",
}

// Config wraps a viper instance. Values come from, in increasing priority:
// defaults, a config file, SCOREFOUR_* environment variables, and flags.
type Config struct {
	*viper.Viper
}

// DefaultConfig returns a config holding only the defaults. It does not
// read the environment.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	for k, v := range defaults {
		c.SetDefault(k, v)
	}
	return c
}

// Load builds the config from args (without the program name) and the
// environment.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	fs := pflag.NewFlagSet("scorefour", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Int(ConfigSearchDepth, 6, "plies searched for every AI move")
	fs.Float64(ConfigTableMemoryFraction, 0.25, "share of system memory the transposition table may use before warning")
	fs.Int(ConfigSelfplayGames, 10, "number of self-play games")
	fs.Int(ConfigSelfplayThreads, 1, "number of self-play games run at once")
	fs.Int(ConfigSelfplayRandomPlies, 2, "random opening plies per self-play game")
	fs.Int(ConfigSelfplayDepthA, 0, "search depth for player A in self-play; 0 means search-depth")
	fs.Int(ConfigSelfplayDepthB, 0, "search depth for player B in self-play; 0 means search-depth")
	fs.String(ConfigSelfplayLogStream, "", "file receiving the YAML search log")
	fs.String(ConfigSelfplayDB, "", "sqlite database receiving finished self-play games")
	fs.String(ConfigConfigFile, "", "path of a config file (yaml, toml or json)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	for k, v := range defaults {
		c.SetDefault(k, v)
	}
	c.SetEnvPrefix("scorefour")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	if path := c.GetString(ConfigConfigFile); path != "" {
		c.SetConfigFile(path)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", path, err)
		}
	}
	return c.validate()
}

var ErrBadDepth = errors.New("search depth must be at least 1")

func (c *Config) validate() error {
	if c.GetInt(ConfigSearchDepth) < 1 {
		return ErrBadDepth
	}
	for _, k := range []string{ConfigSelfplayDepthA, ConfigSelfplayDepthB} {
		if c.GetInt(k) < 0 {
			return fmt.Errorf("%s: %w", k, ErrBadDepth)
		}
	}
	return nil
}

// DepthFor returns the self-play depth configured under key, falling back
// to the general search depth.
func (c *Config) DepthFor(key string) int {
	if d := c.GetInt(key); d > 0 {
		return d
	}
	return c.GetInt(ConfigSearchDepth)
}

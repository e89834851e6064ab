// Package config wires defaults, an optional quadrille.yml, QUADRILLE_*
// environment variables and command-line flags into one settings object,
// in that order of increasing precedence.
package config

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/domino14/quadrille/solver"
)

type Config struct {
	v *viper.Viper
}

func New() *Config {
	v := viper.New()
	v.SetDefault("threads", 0)
	v.SetDefault("all-solutions", false)
	v.SetDefault("color", false)
	v.SetDefault("blocks", false)
	v.SetDefault("silent", false)
	v.SetDefault("flat", false)
	v.SetDefault("progress", false)
	v.SetDefault("debug", false)
	v.SetDefault("save", "")
	v.SetDefault("hsr-gate", solver.DefaultHSRGate)

	v.SetEnvPrefix("quadrille")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("quadrille")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// A broken config file should not stop a solve.
			log.Warn().Err(err).Msg("ignoring unreadable quadrille.yml")
		}
	}
	return &Config{v: v}
}

// Load parses command-line flags over the current settings and returns the
// positional arguments (the tile file path, if given).
func (c *Config) Load(args []string) ([]string, error) {
	fs := pflag.NewFlagSet("quadrille", pflag.ContinueOnError)
	fs.Bool("all-solutions", false, "enumerate every packing instead of stopping at the first")
	fs.Int("threads", 0, "worker threads; 0 or 1 searches sequentially")
	fs.Bool("color", false, "color piece letters with ANSI escapes")
	fs.Bool("blocks", false, "draw pieces as colored blocks (requires --color)")
	fs.Bool("silent", false, "suppress per-solution board output")
	fs.Bool("flat", false, "emit each board as a single 64-character line")
	fs.Bool("progress", false, "show a progress bar over the task queue")
	fs.Bool("debug", false, "debug logging")
	fs.String("save", "", "sqlite file to archive found solutions into")
	fs.Int("hsr-gate", solver.DefaultHSRGate, "region-check gate threshold; 0 checks at every node")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := c.v.BindPFlags(fs); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

func (c *Config) Threads() int       { return c.v.GetInt("threads") }
func (c *Config) AllSolutions() bool { return c.v.GetBool("all-solutions") }
func (c *Config) Color() bool        { return c.v.GetBool("color") }
func (c *Config) Blocks() bool       { return c.v.GetBool("blocks") }
func (c *Config) Silent() bool       { return c.v.GetBool("silent") }
func (c *Config) Flat() bool         { return c.v.GetBool("flat") }
func (c *Config) Progress() bool     { return c.v.GetBool("progress") }
func (c *Config) Debug() bool        { return c.v.GetBool("debug") }
func (c *Config) SavePath() string   { return c.v.GetString("save") }
func (c *Config) HSRGate() int       { return c.v.GetInt("hsr-gate") }

// Set overrides one setting by key, for the shell's set command.
func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}

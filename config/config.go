// Package config wraps viper for the solver's small set of knobs. Every
// key can come from a flag or from a SOLSOLVER_-prefixed environment
// variable.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	v *viper.Viper
}

func DefaultConfig() *Config {
	c := &Config{v: viper.New()}
	c.v.SetDefault("debug", false)
	c.v.SetDefault("memory-limit", uint64(0))
	c.v.SetDefault("race-log", "")
	c.v.SetDefault("require-empty-hold", false)
	c.v.SetDefault("early-exit", false)
	c.v.SetEnvPrefix("solsolver")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	return c
}

// Load parses command-line flags into the config.
func (c *Config) Load(args []string) error {
	fs := pflag.NewFlagSet("solsolver", pflag.ContinueOnError)
	fs.Bool("debug", false, "debug logging")
	fs.Uint64("memory-limit", 0, "heap ceiling in bytes; 0 means half of system memory")
	fs.String("race-log", "", "file to write per-variant YAML results to")
	fs.Bool("require-empty-hold", false, "a solved board must also have an empty holding slot")
	fs.Bool("early-exit", false, "stop all variants once one finds a solution")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return c.v.BindPFlags(fs)
}

func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *Config) GetUint64(key string) uint64 {
	return c.v.GetUint64(key)
}

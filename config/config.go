package config

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug               = "debug"
	ConfigMaxIterations       = "max-iterations"
	ConfigMaxDepth            = "max-depth"
	ConfigMazeWidth           = "maze-width"
	ConfigMazeHeight          = "maze-height"
	ConfigMazeWallProbability = "maze-wall-probability"
	ConfigMazeSeed            = "maze-seed"
	ConfigMiuInitial          = "miu-initial"
	ConfigMiuGoal             = "miu-goal"
	ConfigHTTPAddr            = "http-addr"
	ConfigHistoryFile         = "history-file"
	ConfigCPUProfile          = "cpu-profile"
	ConfigMemProfile          = "mem-profile"
	ConfigAPIMaxIterations    = "api-max-iterations"
	ConfigAPIMaxMazeCells     = "api-max-maze-cells"
)

type Config struct {
	sync.Mutex
	viper.Viper
}

// DefaultConfig returns a config with every default applied and no flags or
// environment consulted. Useful for tests.
func DefaultConfig() *Config {
	c := &Config{}
	c.Viper = *viper.New()
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigMaxIterations, 1000)
	c.SetDefault(ConfigMaxDepth, 50)
	c.SetDefault(ConfigMazeWidth, 10)
	c.SetDefault(ConfigMazeHeight, 10)
	c.SetDefault(ConfigMazeWallProbability, 0.3)
	c.SetDefault(ConfigMazeSeed, 42)
	c.SetDefault(ConfigMiuInitial, "MI")
	c.SetDefault(ConfigMiuGoal, "MU")
	c.SetDefault(ConfigHTTPAddr, "")
	c.SetDefault(ConfigHistoryFile, "/tmp/agentsearch_history.tmp")
	c.SetDefault(ConfigCPUProfile, "")
	c.SetDefault(ConfigMemProfile, "")
	c.SetDefault(ConfigAPIMaxIterations, 1000000)
	c.SetDefault(ConfigAPIMaxMazeCells, 1000000)
}

// Load reads flags from args, then environment variables prefixed with
// AGENTSEARCH_ (dashes become underscores). Everything from the first
// non-flag argument on is returned to the caller.
func (c *Config) Load(args []string) ([]string, error) {
	c.Viper = *viper.New()
	c.setDefaults()
	c.SetEnvPrefix("agentsearch")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	fs := pflag.NewFlagSet("agentsearch", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Int(ConfigMaxIterations, 1000, "iteration cap for every search")
	fs.Int(ConfigMaxDepth, 50, "depth ceiling for depth-first search")
	fs.Int(ConfigMazeWidth, 10, "default width of generated mazes")
	fs.Int(ConfigMazeHeight, 10, "default height of generated mazes")
	fs.Float64(ConfigMazeWallProbability, 0.3, "default probability that a maze cell is a wall")
	fs.Int64(ConfigMazeSeed, 42, "default maze seed")
	fs.String(ConfigMiuInitial, "MI", "default initial MIU string")
	fs.String(ConfigMiuGoal, "MU", "default goal MIU string")
	fs.String(ConfigHTTPAddr, "", "serve the JSON API on this address, e.g. :8088")
	fs.String(ConfigHistoryFile, "/tmp/agentsearch_history.tmp", "readline history file")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigMemProfile, "", "write a memory profile to this file")
	fs.Int(ConfigAPIMaxIterations, 1000000, "largest max_iterations the JSON API accepts")
	fs.Int(ConfigAPIMaxMazeCells, 1000000, "largest maze, in cells, the JSON API accepts")
	// Stop at the first non-flag so a trailing shell command keeps its own
	// options.
	fs.SetInterspersed(false)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := c.BindPFlags(fs); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

// SanitizedSettings returns the settings as a printable string.
func (c *Config) SanitizedSettings() string {
	settings := c.AllSettings()
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%s=%v", k, settings[k])
	}
	return sb.String()
}

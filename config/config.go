package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDataPath          = "data-path"
	ConfigWordList          = "word-list"
	ConfigWordListEncoding  = "word-list-encoding"
	ConfigOpeners           = "openers"
	ConfigPoolCap           = "pool-cap"
	ConfigCandidateBonus    = "candidate-bonus"
	ConfigMaxTurns          = "max-turns"
	ConfigAutoplayThreads   = "autoplay-threads"
	ConfigDebug             = "debug"
	ConfigConfigFile        = "config"
	ConfigCPUProfile        = "cpu-profile"
	defaultConfigFileName   = "config"
	defaultConfigFileFormat = "yaml"
)

// DefaultOpeners are tried in order on the first turn. They use mostly
// distinct, common letters.
var DefaultOpeners = []string{"ADIEU", "AUDIO", "AROSE", "RAISE", "STARE", "SLATE", "CRATE", "TEARS"}

// Config wraps a viper instance. Values come, in increasing priority, from
// defaults, a YAML config file, WORDLEBOT_* environment variables and
// command-line flags.
type Config struct {
	*viper.Viper
	args []string
}

// DefaultConfig returns a config holding only defaults. It does not look at
// the environment or the filesystem, which makes it suitable for tests.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDataPath, "./data")
	c.SetDefault(ConfigWordList, "")
	c.SetDefault(ConfigWordListEncoding, "utf-8")
	c.SetDefault(ConfigOpeners, DefaultOpeners)
	c.SetDefault(ConfigPoolCap, 1000)
	c.SetDefault(ConfigCandidateBonus, 0.1)
	c.SetDefault(ConfigMaxTurns, 0)
	c.SetDefault(ConfigAutoplayThreads, 4)
	c.SetDefault(ConfigDebug, false)
}

// Load parses args and reads the config file and environment.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	c.setDefaults()

	fs := pflag.NewFlagSet("wordlebot", pflag.ContinueOnError)
	fs.String(ConfigConfigFile, "", "path to a YAML config file")
	fs.String(ConfigDataPath, "./data", "directory holding word lists and the config file")
	fs.String(ConfigWordList, "", "word list to use instead of the built-in one")
	fs.String(ConfigWordListEncoding, "utf-8", "encoding of the word list: utf-8 or iso-8859-1")
	fs.StringSlice(ConfigOpeners, DefaultOpeners, "first-turn words, in priority order")
	fs.Int(ConfigPoolCap, 1000, "number of dictionary words, from the front, always scored as guesses")
	fs.Float64(ConfigCandidateBonus, 0.1, "score bonus for guesses that could still be the answer")
	fs.Int(ConfigMaxTurns, 0, "give up after this many turns; 0 means no limit")
	fs.Int(ConfigAutoplayThreads, 4, "games played in parallel by autoplay")
	fs.Bool(ConfigDebug, false, "debug logging")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix("wordlebot")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if cfgFile := c.GetString(ConfigConfigFile); cfgFile != "" {
		c.SetConfigFile(cfgFile)
	} else {
		c.SetConfigName(defaultConfigFileName)
		c.SetConfigType(defaultConfigFileFormat)
		c.AddConfigPath(c.GetString(ConfigDataPath))
	}
	err := c.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		log.Debug().Msg("no config file found; using defaults")
		return nil
	}
	return err
}

// Write saves the current settings to the config file in use, or to
// <data-path>/config.yaml if none was read.
func (c *Config) Write() error {
	if used := c.ConfigFileUsed(); used != "" {
		return c.WriteConfig()
	}
	dataPath := c.GetString(ConfigDataPath)
	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		return err
	}
	return c.WriteConfigAs(filepath.Join(dataPath, defaultConfigFileName+"."+defaultConfigFileFormat))
}

// AdjustRelativePaths resolves a relative data path against basePath,
// typically the directory of the running executable.
func (c *Config) AdjustRelativePaths(basePath string) {
	for _, key := range []string{ConfigDataPath, ConfigWordList} {
		p := c.GetString(key)
		if p == "" || filepath.IsAbs(p) {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			// Exists relative to the working directory.
			continue
		}
		c.Set(key, filepath.Join(basePath, p))
	}
}

// Args returns the command-line arguments left after flags were parsed.
func (c *Config) Args() []string {
	return c.args
}

// SanitizedSettings is AllSettings, for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}

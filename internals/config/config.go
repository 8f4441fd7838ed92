// Package config loads the global mclaunch settings from file, environment and flags
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/minepkg/mclaunch/internals/minecraft"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of all environment variables (like `MCLAUNCH_ROOT`)
const EnvPrefix = "MCLAUNCH"

// JavaAuto downloads the java runtime a version needs
const JavaAuto = "auto"

const (
	KindString = iota
	KindBool
	KindInt
)

// Entry is one known config key
type Entry struct {
	Key  string
	Kind int
	Help string
}

// Entries are all known config keys
var Entries = map[string]Entry{
	"repository":  {"repository", KindString, "maven repository for libraries without url"},
	"assets_base": {"assets_base", KindString, "where asset objects are downloaded from"},
	"root":        {"root", KindString, "directory containing libraries, versions & assets"},
	"concurrency": {"concurrency", KindInt, "maximum parallel downloads (0 is unlimited)"},
	"rate_limit":  {"rate_limit", KindInt, "maximum requests per second (0 is unlimited)"},
	"java":        {"java", KindString, "java executable used to launch (\"auto\" downloads the required runtime)"},
	"verbose":     {"verbose", KindBool, "show debug output"},
}

// Config are the resolved settings
type Config struct {
	Repository string `mapstructure:"repository"`
	AssetsBase string `mapstructure:"assets_base"`
	Root       string `mapstructure:"root"`
	// Concurrency limits parallel downloads. 0 is unlimited
	Concurrency int `mapstructure:"concurrency"`
	// RateLimit limits requests per second. 0 is unlimited
	RateLimit int    `mapstructure:"rate_limit"`
	Java      string `mapstructure:"java"`
	Verbose   bool   `mapstructure:"verbose"`
}

// DefaultRoot returns `~/.mclaunch`
func DefaultRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mclaunch"
	}
	return filepath.Join(home, ".mclaunch")
}

// SetDefaults registers the defaults of all keys on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("repository", minecraft.DefaultRepository)
	v.SetDefault("assets_base", minecraft.DefaultAssetsBase)
	v.SetDefault("root", DefaultRoot())
	v.SetDefault("concurrency", 16)
	v.SetDefault("rate_limit", 0)
	v.SetDefault("java", JavaAuto)
	v.SetDefault("verbose", false)
}

// Init prepares v to read cfgFile (or `config.{toml,yaml}` in the root directory)
// and `MCLAUNCH_` environment variables. A missing config file is not an error
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(v.GetString("root"))
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("could not read config: %w", err)
	}
	return nil
}

// Load returns the resolved config of v
func Load(v *viper.Viper) (*Config, error) {
	c := Config{}
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Set validates and sets a config key. It returns the parsed value
func Set(v *viper.Viper, key string, value string) (interface{}, error) {
	entry, ok := Entries[strings.ToLower(key)]
	if !ok {
		return nil, fmt.Errorf("config key \"%s\" does not exist", key)
	}

	var parsed interface{}
	switch entry.Kind {
	case KindBool:
		val, err := ParseBool(value)
		if err != nil {
			return nil, err
		}
		parsed = val
	case KindInt:
		num, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		if num < 0 {
			return nil, fmt.Errorf("%s can not be negative", entry.Key)
		}
		parsed = num
	default:
		parsed = value
	}

	v.Set(entry.Key, parsed)
	return parsed, nil
}

// Write saves all settings to the config file that was read or
// `config.toml` in the root directory
func Write(v *viper.Viper) (string, error) {
	if used := v.ConfigFileUsed(); used != "" {
		return used, v.WriteConfigAs(used)
	}
	root := v.GetString("root")
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		return "", err
	}
	path := filepath.Join(root, "config.toml")
	return path, v.WriteConfigAs(path)
}

// ParseBool parses human boolean values like "yes" or "off"
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value. Use \"true\" or \"false\"")
	}
}

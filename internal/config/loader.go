package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
	file    string
}

// NewLoader creates a loader that looks for .partials.yaml in rootDir. A
// non-empty file names the configuration file explicitly; it must exist.
func NewLoader(rootDir, file string) Loader {
	return &loader{rootDir: rootDir, file: file}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (PARTIALS_*)
// 2. Config file
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if l.file != "" {
		v.SetConfigFile(l.file)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, ".yaml"))
		v.AddConfigPath(l.rootDir)
	}

	// PARTIALS_SPLIT_MAX_MEMBERS and so on.
	v.SetEnvPrefix("PARTIALS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{
		"split.max_members",
		"format.indent",
		"format.line_ending",
		"format.max_blank_lines",
		"workspace.ignore",
		"workspace.workers",
		"server.addr",
		"log.level",
		"log.file",
		"log.format",
	} {
		_ = v.BindEnv(key)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("split.max_members", defaults.Split.MaxMembers)

	v.SetDefault("format.indent", defaults.Format.Indent)
	v.SetDefault("format.line_ending", defaults.Format.LineEnding)
	v.SetDefault("format.max_blank_lines", defaults.Format.MaxBlankLines)

	v.SetDefault("workspace.ignore", defaults.Workspace.Ignore)
	v.SetDefault("workspace.workers", defaults.Workspace.Workers)

	v.SetDefault("server.addr", defaults.Server.Addr)

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.format", defaults.Log.Format)
}

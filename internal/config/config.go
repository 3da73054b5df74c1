// Package config loads the settings shared by every command: split
// threshold, formatting, workspace scanning and logging.
package config

import (
	"runtime"
	"strings"

	"github.com/olehluchkiv/partials/internal/format"
	"github.com/olehluchkiv/partials/internal/split"
	"github.com/olehluchkiv/partials/internal/workspace"
)

// FileName is the configuration file looked up in the project directory.
const FileName = ".partials.yaml"

// Config represents the complete configuration.
// It can be loaded from .partials.yaml with environment variable overrides.
type Config struct {
	Split     SplitConfig     `yaml:"split" mapstructure:"split"`
	Format    FormatConfig    `yaml:"format" mapstructure:"format"`
	Workspace WorkspaceConfig `yaml:"workspace" mapstructure:"workspace"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// SplitConfig controls when and how types are broken into partials.
type SplitConfig struct {
	MaxMembers int `yaml:"max_members" mapstructure:"max_members"` // members per fragment
}

// FormatConfig controls the layout of edited documents.
type FormatConfig struct {
	Indent        string `yaml:"indent" mapstructure:"indent"`                   // one indentation level
	LineEnding    string `yaml:"line_ending" mapstructure:"line_ending"`         // "lf" or "crlf"
	MaxBlankLines int    `yaml:"max_blank_lines" mapstructure:"max_blank_lines"` // consecutive blank lines kept
}

// WorkspaceConfig controls how a project directory is scanned.
type WorkspaceConfig struct {
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns relative to the project
	Workers int      `yaml:"workers" mapstructure:"workers"` // documents analyzed concurrently
}

// ServerConfig controls the HTTP action server.
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"` // host:port to listen on
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn or error
	File   string `yaml:"file" mapstructure:"file"`     // also log to this file when set
	Format string `yaml:"format" mapstructure:"format"` // "json" or "text"
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Split: SplitConfig{
			MaxMembers: split.MaxMembersPerFragment,
		},
		Format: FormatConfig{
			Indent:        "    ",
			LineEnding:    "lf",
			MaxBlankLines: 1,
		},
		Workspace: WorkspaceConfig{
			Ignore:  append([]string(nil), workspace.DefaultIgnore...),
			Workers: runtime.NumCPU(),
		},
		Server: ServerConfig{
			Addr: "localhost:7420",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// SplitOptions returns the splitter settings.
func (c *Config) SplitOptions() split.Options {
	return split.Options{MaxMembers: c.Split.MaxMembers}
}

// FormatOptions returns the formatter settings.
func (c *Config) FormatOptions() format.Options {
	nl := "\n"
	if strings.EqualFold(c.Format.LineEnding, "crlf") {
		nl = "\r\n"
	}
	return format.Options{
		Indent:        c.Format.Indent,
		NewLine:       nl,
		MaxBlankLines: c.Format.MaxBlankLines,
	}
}

// WorkspaceOptions returns the settings for loading a project.
func (c *Config) WorkspaceOptions() workspace.Options {
	return workspace.Options{Ignore: c.Workspace.Ignore}
}

package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/gobwas/glob"

	"github.com/olehluchkiv/partials/internal/logging"
)

var (
	// ErrInvalidMaxMembers indicates a split threshold below one
	ErrInvalidMaxMembers = errors.New("invalid max members")

	// ErrInvalidIndent indicates an indent that is empty or not blank
	ErrInvalidIndent = errors.New("invalid indent")

	// ErrInvalidLineEnding indicates a line ending other than lf or crlf
	ErrInvalidLineEnding = errors.New("invalid line ending")

	// ErrInvalidBlankLines indicates a negative blank line limit
	ErrInvalidBlankLines = errors.New("invalid max blank lines")

	// ErrInvalidIgnore indicates an ignore pattern that does not compile
	ErrInvalidIgnore = errors.New("invalid ignore pattern")

	// ErrInvalidWorkers indicates a worker count below one
	ErrInvalidWorkers = errors.New("invalid workers")

	// ErrInvalidServerAddr indicates a listen address that is not host:port
	ErrInvalidServerAddr = errors.New("invalid server address")

	// ErrInvalidLogLevel indicates an unknown log level
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidLogFormat indicates a log format other than json or text
	ErrInvalidLogFormat = errors.New("invalid log format")
)

// Validate checks that the configuration is valid and complete. Every
// problem is reported, joined into one error.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Split.MaxMembers < 1 {
		errs = append(errs, fmt.Errorf("%w: must be at least 1, got %d", ErrInvalidMaxMembers, cfg.Split.MaxMembers))
	}

	if cfg.Format.Indent == "" || strings.Trim(cfg.Format.Indent, " \t") != "" {
		errs = append(errs, fmt.Errorf("%w: must be spaces or tabs, got %q", ErrInvalidIndent, cfg.Format.Indent))
	}
	switch strings.ToLower(cfg.Format.LineEnding) {
	case "lf", "crlf":
	default:
		errs = append(errs, fmt.Errorf("%w: must be 'lf' or 'crlf', got '%s'", ErrInvalidLineEnding, cfg.Format.LineEnding))
	}
	if cfg.Format.MaxBlankLines < 0 {
		errs = append(errs, fmt.Errorf("%w: must be non-negative, got %d", ErrInvalidBlankLines, cfg.Format.MaxBlankLines))
	}

	for _, pattern := range cfg.Workspace.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidIgnore, pattern, err))
		}
	}
	if cfg.Workspace.Workers < 1 {
		errs = append(errs, fmt.Errorf("%w: must be at least 1, got %d", ErrInvalidWorkers, cfg.Workspace.Workers))
	}

	if _, _, err := net.SplitHostPort(cfg.Server.Addr); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidServerAddr, err))
	}

	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidLogLevel, err))
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("%w: must be 'json' or 'text', got '%s'", ErrInvalidLogFormat, cfg.Log.Format))
	}

	return errors.Join(errs...)
}

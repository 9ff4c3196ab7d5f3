package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case OutputText, OutputJSON, OutputTable:
	default:
		return fmt.Errorf("invalid output format %q (must be one of: text, json, table)", c.OutputFormat)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.LargeInputThresholdMiB <= 0 {
		return fmt.Errorf("large_input_threshold_mib must be positive, got %g", c.LargeInputThresholdMiB)
	}
	if c.LinebreakPlaceholder == "" {
		return fmt.Errorf("linebreak_placeholder must not be empty")
	}
	return nil
}

// ParseLogLevel maps a level name (debug, info, warn, error) to a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

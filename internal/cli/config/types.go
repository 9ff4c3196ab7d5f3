// Package config provides configuration management for the bunkai CLI.
//
// Values are layered from defaults, a bunkai.yaml file, BUNKAI_* environment
// variables and explicitly set command-line flags, in increasing order of
// precedence.
package config

import "runtime"

// Config holds all CLI configuration options.
type Config struct {
	// Morph prints morphological analysis instead of joined sentences.
	Morph                  bool     `koanf:"ma"`
	Layers                 []string `koanf:"layers"`
	Workers                int      `koanf:"workers"`
	OutputFormat           string   `koanf:"output"`
	LogLevel               string   `koanf:"log_level"`
	LargeInputThresholdMiB float64  `koanf:"large_input_threshold_mib"`
	LinebreakPlaceholder   string   `koanf:"linebreak_placeholder"`
}

// Output formats.
const (
	OutputText  = "text"
	OutputJSON  = "json"
	OutputTable = "table"
)

// Default configuration values.
const (
	DefaultOutput                 = OutputText
	DefaultLogLevel               = "warn"
	DefaultLargeInputThresholdMiB = 10.0
	DefaultLinebreakPlaceholder   = "▁"
)

// DefaultWorkers is the default size of the segmentation worker pool.
func DefaultWorkers() int {
	return runtime.NumCPU()
}

// LargeInputThreshold returns the advisory threshold in bytes.
func (c *Config) LargeInputThreshold() int {
	return int(c.LargeInputThresholdMiB * 1024 * 1024)
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"ma":                        false,
		"layers":                    []string{},
		"workers":                   DefaultWorkers(),
		"output":                    DefaultOutput,
		"log_level":                 DefaultLogLevel,
		"large_input_threshold_mib": DefaultLargeInputThresholdMiB,
		"linebreak_placeholder":     DefaultLinebreakPlaceholder,
	}
}

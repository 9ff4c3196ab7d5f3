package commands

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/bunkai/internal/cli/config"
	"github.com/leapstack-labs/bunkai/pkg/bunkai"
	"github.com/leapstack-labs/bunkai/pkg/morph"
	"github.com/leapstack-labs/bunkai/pkg/segment"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg           *config.Config
	Logger        *slog.Logger
	Disambiguator *bunkai.Disambiguator
}

// NewCommandContext creates a CommandContext with a Disambiguator built from
// the current configuration.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg, err := getConfig()
	if err != nil {
		return nil, err
	}
	logger := config.GetLogger(cmd.Context())

	d, err := createDisambiguator(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Cfg:           cfg,
		Logger:        logger,
		Disambiguator: d,
	}, nil
}

// getConfig returns the current configuration, loading defaults and
// environment variables when no command has loaded one yet.
func getConfig() (*config.Config, error) {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg, nil
	}
	cfg, err := config.LoadConfig("", nil)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func createDisambiguator(cfg *config.Config, logger *slog.Logger) (*bunkai.Disambiguator, error) {
	return bunkai.New(bunkai.Config{
		Segmenter:           segment.NewPunctSegmenter(),
		Tokenizer:           morph.NewScriptTokenizer,
		Logger:              logger,
		LargeInputThreshold: cfg.LargeInputThreshold(),
	})
}

// layerOptions maps the configured layer filter to EOS options.
func layerOptions(cfg *config.Config) bunkai.Options {
	if len(cfg.Layers) == 0 {
		return bunkai.Options{}
	}
	return bunkai.Options{IncludeLayers: cfg.Layers}
}

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/bunkai/internal/cli/config"
	"github.com/leapstack-labs/bunkai/pkg/bunkai"
	"github.com/spf13/cobra"
)

// LineLayers is the annotation summary of one input line.
type LineLayers struct {
	Line   int          `json:"line"`
	Text   string       `json:"text"`
	Layers []LayerCount `json:"layers"`
}

// LayerCount is the number of spans in one annotation layer.
type LayerCount struct {
	Name  string `json:"name"`
	Spans int    `json:"spans"`
}

// NewLayersCommand creates the layers command.
func NewLayersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "layers",
		Short: "Show the annotation layers built for each input line",
		Long: `Read text from stdin, one document per line, build its annotation layers and
print the number of spans in each layer, in registration order.

Use --layers to restrict the layers that are built and --output to choose
between text, json and table output.`,
		Example: `  # Show all layers as a table
  echo 'はい。いいえ。' | bunkai layers --output table

  # Only the morphological layer, as JSON
  echo 'はい。' | bunkai layers --layers MorphAnnotatorJanome --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLayers(cmd)
		},
	}
}

func runLayers(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Cfg

	hintIfTerminal(cmd.InOrStdin(), cmd.ErrOrStderr())
	lines, err := readLines(cmd.InOrStdin())
	if err != nil {
		return err
	}

	opts := layerOptions(cfg)
	results := make([]LineLayers, len(lines))
	err = bunkai.RunPool(cmd.Context(), cmdCtx.Disambiguator, cfg.Workers, len(lines), func(_ context.Context, w *bunkai.Worker, i int) error {
		text := strings.ReplaceAll(lines[i], cfg.LinebreakPlaceholder, "\n")
		counts, err := countLayers(w, text, opts)
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		results[i] = LineLayers{Line: i + 1, Text: lines[i], Layers: counts}
		return nil
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch cfg.OutputFormat {
	case config.OutputJSON:
		return layersJSON(w, results)
	case config.OutputTable:
		return layersTable(w, results)
	default:
		return layersText(w, results)
	}
}

func countLayers(w *bunkai.Worker, text string, opts bunkai.Options) ([]LayerCount, error) {
	store, err := w.EOS(text, opts)
	if err != nil {
		return nil, err
	}
	names := store.AvailableLayers()
	counts := make([]LayerCount, 0, len(names))
	for _, name := range names {
		spans, err := store.AnnotationLayer(name)
		if err != nil {
			return nil, err
		}
		counts = append(counts, LayerCount{Name: name, Spans: len(spans)})
	}
	return counts, nil
}

func layersText(w io.Writer, results []LineLayers) error {
	for _, r := range results {
		for _, l := range r.Layers {
			if _, err := fmt.Fprintf(w, "%d\t%s\t%d\n", r.Line, l.Name, l.Spans); err != nil {
				return err
			}
		}
	}
	return nil
}

func layersJSON(w io.Writer, results []LineLayers) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func layersTable(w io.Writer, results []LineLayers) error {
	if len(results) == 0 {
		_, _ = fmt.Fprintln(w, "(0 lines)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Line", "Layer", "Spans"})

	for _, r := range results {
		for _, l := range r.Layers {
			t.AppendRow(table.Row{r.Line, l.Name, l.Spans})
		}
		t.AppendSeparator()
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d lines)\n", len(results))
	return nil
}

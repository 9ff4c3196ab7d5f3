package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/bunkai/pkg/annotation"
	"github.com/leapstack-labs/bunkai/pkg/bunkai"
	"github.com/spf13/cobra"
)

// SentenceSeparator joins the sentences of one input line.
const SentenceSeparator = "│"

// NewSplitCommand creates the split command.
func NewSplitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "split",
		Short: "Split each input line into sentences",
		Long: `Read text from stdin, one document per line, and print each line with its
sentences joined by "│".

A line break inside a document is written as the linebreak placeholder (▁ by
default) and is restored in the output. With --ma, every sentence is printed as
one line per morphological token followed by EOS.`,
		Example: `  # Split sentences
  echo 'こんにちは。ありがとう。' | bunkai split

  # Morphological analysis
  echo 'テストです。' | bunkai split --ma

  # Use 4 workers
  bunkai split --workers 4 < corpus.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunSplit(cmd)
		},
	}
}

// RunSplit runs sentence splitting over the command's stdin.
func RunSplit(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Cfg
	d := cmdCtx.Disambiguator

	hintIfTerminal(cmd.InOrStdin(), cmd.ErrOrStderr())
	lines, err := readLines(cmd.InOrStdin())
	if err != nil {
		return err
	}

	render := splitLine
	if cfg.Morph {
		render = analyzeLine
	}

	out := make([]string, len(lines))
	err = bunkai.RunPool(cmd.Context(), d, cfg.Workers, len(lines), func(_ context.Context, w *bunkai.Worker, i int) error {
		ph := cfg.LinebreakPlaceholder
		s, err := render(d, w, strings.ReplaceAll(lines[i], ph, "\n"), ph)
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		out[i] = s
		return nil
	})
	if err != nil {
		return err
	}

	cmdCtx.Logger.Debug("split input", "lines", len(lines), "workers", cfg.Workers, "morph", cfg.Morph)

	for _, s := range out {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), s); err != nil {
			return err
		}
	}
	return nil
}

func splitLine(d *bunkai.Disambiguator, _ *bunkai.Worker, text, placeholder string) (string, error) {
	seq, err := d.Sentences(text)
	if err != nil {
		return "", err
	}
	var sentences []string
	for s := range seq {
		sentences = append(sentences, strings.ReplaceAll(s, "\n", placeholder))
	}
	return strings.Join(sentences, SentenceSeparator), nil
}

// analyzeLine renders one "surface<TAB>pos,...,stem" row per token and an EOS
// row after each sentence.
func analyzeLine(_ *bunkai.Disambiguator, w *bunkai.Worker, text, placeholder string) (string, error) {
	store, err := w.EOS(text, bunkai.Options{})
	if err != nil {
		return "", err
	}
	final, err := store.FinalLayer()
	if err != nil {
		return "", err
	}
	tokens, err := store.AnnotationLayer(bunkai.MorphLayer)
	if err != nil {
		return "", err
	}

	ends := boundaryEnds(final)
	var rows []string
	next, open := 0, false
	for _, span := range tokens {
		tok, ok := span.Token()
		if !ok {
			continue
		}
		rows = append(rows, tokenRow(tok, placeholder))
		open = true
		for next < len(ends) && span.End >= ends[next] {
			next++
			if open {
				rows = append(rows, "EOS")
				open = false
			}
		}
	}
	if open || len(rows) == 0 {
		rows = append(rows, "EOS")
	}
	return strings.Join(rows, "\n"), nil
}

func tokenRow(tok annotation.TokenResult, placeholder string) string {
	features := append(slices.Clone(tok.POS), strings.ReplaceAll(tok.Stem, "\n", placeholder))
	return strings.ReplaceAll(tok.Surface, "\n", placeholder) + "\t" + strings.Join(features, ",")
}

func boundaryEnds(spans []annotation.SpanAnnotation) []int {
	ends := make([]int, 0, len(spans))
	for _, s := range spans {
		if s.End > 0 {
			ends = append(ends, s.End)
		}
	}
	slices.Sort(ends)
	return slices.Compact(ends)
}

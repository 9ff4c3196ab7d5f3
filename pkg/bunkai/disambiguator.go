// Package bunkai orchestrates sentence boundary disambiguation over a single
// text: it decides which annotation layers a request needs, calls the
// Segmenter at most once, and defers morphological tokenization until a
// consumer reads the morphological layer.
//
// A Disambiguator is immutable and safe for concurrent use. Tokenizers are
// not: each goroutine obtains its own Worker, which owns one Tokenizer for
// its whole life. Stores returned by a Worker belong to that Worker's
// goroutine.
package bunkai

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"unicode/utf8"

	"github.com/leapstack-labs/bunkai/pkg/morph"
	"github.com/leapstack-labs/bunkai/pkg/segment"
)

const (
	// MorphLayer is the name of the lazily built morphological layer.
	MorphLayer = "MorphAnnotatorJanome"
	// BasicRuleLayer is the layer after which the morphological layer is registered.
	BasicRuleLayer = segment.BasicRuleLayer

	// DefaultLargeInputThreshold is the estimated input size, in bytes, from
	// which a large-input advisory is emitted.
	DefaultLargeInputThreshold = 10 * 1024 * 1024
)

// Config holds Disambiguator configuration.
type Config struct {
	// Segmenter detects boundaries and produces rule layers (required).
	Segmenter segment.Segmenter
	// Tokenizer constructs one Tokenizer per Worker (required).
	Tokenizer morph.Factory
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
	// LargeInputThreshold overrides DefaultLargeInputThreshold when positive.
	LargeInputThreshold int
	// OnAdvisory, if set, receives every large-input advisory.
	OnAdvisory func(Advisory)
}

// Disambiguator splits text into sentences and builds annotation stores.
type Disambiguator struct {
	segmenter  segment.Segmenter
	tokenizer  morph.Factory
	logger     *slog.Logger
	threshold  int
	onAdvisory func(Advisory)
}

// New creates a Disambiguator.
func New(cfg Config) (*Disambiguator, error) {
	if cfg.Segmenter == nil {
		return nil, errors.New("segmenter is required")
	}
	if cfg.Tokenizer == nil {
		return nil, errors.New("tokenizer factory is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	threshold := cfg.LargeInputThreshold
	if threshold <= 0 {
		threshold = DefaultLargeInputThreshold
	}

	return &Disambiguator{
		segmenter:  cfg.Segmenter,
		tokenizer:  cfg.Tokenizer,
		logger:     logger,
		threshold:  threshold,
		onAdvisory: cfg.OnAdvisory,
	}, nil
}

// FindEOS returns the sentence boundaries of text as strictly increasing
// character offsets in (0, len].
func (d *Disambiguator) FindEOS(text string) ([]int, error) {
	length := utf8.RuneCountInString(text)
	d.adviseLargeInput(text, length)

	boundaries, err := d.segmenter.FindEOS(text)
	if err != nil {
		return nil, fmt.Errorf("failed to find sentence boundaries: %w", err)
	}
	if err := segment.ValidateBoundaries(boundaries, length); err != nil {
		return nil, err
	}
	return boundaries, nil
}

// Sentences splits text at the boundaries found by FindEOS. Text after the
// last boundary is yielded as a final fragment, so the fragments always
// concatenate back to text. Empty text yields nothing.
func (d *Disambiguator) Sentences(text string) (iter.Seq[string], error) {
	boundaries, err := d.FindEOS(text)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		start, offset, pos := 0, 0, 0
		for _, end := range boundaries {
			for pos < end {
				_, size := utf8.DecodeRuneInString(text[offset:])
				offset += size
				pos++
			}
			if !yield(text[start:offset]) {
				return
			}
			start = offset
		}
		if start < len(text) {
			yield(text[start:])
		}
	}, nil
}

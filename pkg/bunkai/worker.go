package bunkai

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/leapstack-labs/bunkai/pkg/annotation"
	"github.com/leapstack-labs/bunkai/pkg/morph"
	"github.com/leapstack-labs/bunkai/pkg/segment"
)

// Options selects the layers an EOS call produces.
type Options struct {
	// IncludeLayers restricts the eager layers to these names. Nil means all.
	IncludeLayers []string
	// IncludeMorph forces the morphological layer on or off. Nil derives it
	// from IncludeLayers.
	IncludeMorph *bool
}

func (o Options) wantMorph() bool {
	if o.IncludeMorph != nil {
		return *o.IncludeMorph
	}
	return o.IncludeLayers == nil || slices.Contains(o.IncludeLayers, MorphLayer)
}

// needSegmenter is false only for a non-empty filter naming nothing but the
// morphological layer.
func (o Options) needSegmenter() bool {
	if len(o.IncludeLayers) == 0 {
		return true
	}
	for _, name := range o.IncludeLayers {
		if name != MorphLayer {
			return true
		}
	}
	return false
}

func (o Options) accepts(name string) bool {
	return o.IncludeLayers == nil || slices.Contains(o.IncludeLayers, name)
}

// Worker owns the per-goroutine resources of a Disambiguator.
//
// A Worker must not be used by more than one goroutine at a time. Its
// Tokenizer is created on first use and kept for the Worker's lifetime.
type Worker struct {
	d         *Disambiguator
	tokenizer morph.Tokenizer
}

// NewWorker creates a Worker with an empty tokenizer slot.
func (d *Disambiguator) NewWorker() *Worker {
	return &Worker{d: d}
}

// Tokenizer returns the Worker's Tokenizer, constructing it on first use.
// A failed construction leaves the slot empty so the next call retries.
func (w *Worker) Tokenizer() (morph.Tokenizer, error) {
	if w.tokenizer != nil {
		return w.tokenizer, nil
	}
	tok, err := w.d.tokenizer()
	if err != nil {
		return nil, fmt.Errorf("failed to create tokenizer: %w", err)
	}
	w.tokenizer = tok
	return tok, nil
}

// FindEOS is Disambiguator.FindEOS.
func (w *Worker) FindEOS(text string) ([]int, error) {
	return w.d.FindEOS(text)
}

// EOS builds a fresh annotation store for text.
//
// The Segmenter runs once unless opts asks for the morphological layer only.
// When wanted, the morphological layer is registered as a pending layer right
// after the basic rule layer (or alone, if the Segmenter was skipped) and is
// only tokenized when read.
func (w *Worker) EOS(text string, opts Options) (*annotation.Store, error) {
	d := w.d
	length := utf8.RuneCountInString(text)
	wantMorph := opts.wantMorph()

	d.adviseLargeInput(text, length)

	store := annotation.NewStore()
	morphLayer := func() ([]annotation.SpanAnnotation, error) {
		return w.morphLayer(text, length)
	}

	if !opts.needSegmenter() {
		if wantMorph {
			store.AddLazyLayer(MorphLayer, morphLayer)
		}
		return store, nil
	}

	seg, err := d.segmenter.Segment(text)
	if err != nil {
		return nil, fmt.Errorf("failed to segment text: %w", err)
	}
	if err := segment.ValidateSegmentation(seg, length); err != nil {
		return nil, err
	}
	if err := segment.ValidateBoundaries(seg.Boundaries, length); err != nil {
		return nil, err
	}

	for _, layer := range seg.Layers {
		if !opts.accepts(layer.Name) {
			continue
		}
		store.AddLayer(layer.Name, toAnnotations(layer.Spans))
		if layer.Name == BasicRuleLayer && wantMorph {
			store.AddLazyLayer(MorphLayer, morphLayer)
		}
	}

	d.logger.Debug("built annotation store", "characters", length, "layers", store.AvailableLayers())
	return store, nil
}

func toAnnotations(spans []segment.Span) []annotation.SpanAnnotation {
	out := make([]annotation.SpanAnnotation, len(spans))
	for i, s := range spans {
		out[i] = annotation.SpanAnnotation{
			RuleName:   s.RuleName,
			Start:      s.Start,
			End:        s.End,
			SplitType:  s.SplitType,
			SplitValue: s.SplitValue,
		}
	}
	return out
}

package bunkai

import (
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/bunkai/internal/testutil"
	"github.com/leapstack-labs/bunkai/pkg/annotation"
	"github.com/leapstack-labs/bunkai/pkg/morph"
	"github.com/leapstack-labs/bunkai/pkg/segment"
)

// stubSegmenter returns fixed output and counts calls.
type stubSegmenter struct {
	boundaries []int
	seg        segment.Segmentation
	err        error

	findCalls    atomic.Int32
	segmentCalls atomic.Int32
}

func (s *stubSegmenter) FindEOS(string) ([]int, error) {
	s.findCalls.Add(1)
	return s.boundaries, s.err
}

func (s *stubSegmenter) Segment(string) (segment.Segmentation, error) {
	s.segmentCalls.Add(1)
	return s.seg, s.err
}

// stubTokenizer has a distinct identity per instance.
type stubTokenizer struct {
	id    int64
	inner morph.Tokenizer
}

func (s *stubTokenizer) Tokenize(text string) ([]morph.Token, error) {
	return s.inner.Tokenize(text)
}

// tokenizerFactory counts constructions and can be told to fail.
type tokenizerFactory struct {
	created atomic.Int64
	fail    atomic.Bool
	// tokenize overrides the script tokenizer when set.
	tokenize func(string) ([]morph.Token, error)
}

func (f *tokenizerFactory) New() (morph.Tokenizer, error) {
	if f.fail.Load() {
		return nil, errors.New("dictionary unavailable")
	}
	id := f.created.Add(1)
	var inner morph.Tokenizer
	if f.tokenize != nil {
		inner = tokenizeFunc(f.tokenize)
	} else {
		inner, _ = morph.NewScriptTokenizer()
	}
	return &stubTokenizer{id: id, inner: inner}, nil
}

type tokenizeFunc func(string) ([]morph.Token, error)

func (f tokenizeFunc) Tokenize(text string) ([]morph.Token, error) { return f(text) }

// fixedToken is a Token with a given surface.
type fixedToken string

func (t fixedToken) Surface() string        { return string(t) }
func (t fixedToken) BaseForm() string       { return string(t) }
func (t fixedToken) PartOfSpeech() []string { return []string{"名詞", "一般", "*", "*"} }

func tokens(surfaces ...string) func(string) ([]morph.Token, error) {
	return func(string) ([]morph.Token, error) {
		out := make([]morph.Token, len(surfaces))
		for i, s := range surfaces {
			out[i] = fixedToken(s)
		}
		return out, nil
	}
}

// advisoryCounter records advisories.
type advisoryCounter struct {
	mu  sync.Mutex
	got []Advisory
}

func (a *advisoryCounter) record(adv Advisory) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.got = append(a.got, adv)
}

func (a *advisoryCounter) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.got)
}

func newTestDisambiguator(t *testing.T, seg segment.Segmenter, factory *tokenizerFactory) (*Disambiguator, *advisoryCounter) {
	t.Helper()
	adv := &advisoryCounter{}
	d, err := New(Config{
		Segmenter:  seg,
		Tokenizer:  factory.New,
		Logger:     testutil.NewTestLogger(t),
		OnAdvisory: adv.record,
	})
	require.NoError(t, err)
	return d, adv
}

func collect(t *testing.T, d *Disambiguator, text string) []string {
	t.Helper()
	seq, err := d.Sentences(text)
	require.NoError(t, err)
	return slices.Collect(seq)
}

// requireTiles asserts spans cover [0, length) contiguously.
func requireTiles(t *testing.T, spans []annotation.SpanAnnotation, length int) {
	t.Helper()
	require.NotEmpty(t, spans)
	require.Equal(t, 0, spans[0].Start, "first span must start at 0")
	for i := 1; i < len(spans); i++ {
		require.Equal(t, spans[i-1].End, spans[i].Start, "span %d must start where span %d ends", i, i-1)
	}
	require.Equal(t, length, spans[len(spans)-1].End, "last span must end at the text length")
}

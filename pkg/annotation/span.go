package annotation

import (
	"strconv"
	"strings"
)

// TokenArg is the Args key under which the morphological layer stores its TokenResult.
const TokenArg = "token"

// absent is how a missing rule name or split value renders in a span signature.
const absent = "None"

// SpanAnnotation is one annotated half-open interval [Start, End) of a text.
type SpanAnnotation struct {
	// RuleName identifies the pass that produced the span. Empty means absent.
	RuleName string
	// Start is the 0-based character offset of the first covered character.
	Start int
	// End is the character offset just past the last covered character.
	End int
	// SplitType and SplitValue describe the rule that triggered the span.
	SplitType  string
	SplitValue string
	// Args carries opaque per-span data, e.g. a TokenResult under TokenArg.
	Args map[string]any
}

// String returns the canonical signature "{start}-{end}/{rule_name}/{split_value}".
// Two spans with the same signature are considered duplicates.
func (s SpanAnnotation) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(s.Start))
	b.WriteByte('-')
	b.WriteString(strconv.Itoa(s.End))
	b.WriteByte('/')
	b.WriteString(orAbsent(s.RuleName))
	b.WriteByte('/')
	b.WriteString(orAbsent(s.SplitValue))
	return b.String()
}

// Int projects the span onto its end offset, which is the boundary it marks.
func (s SpanAnnotation) Int() int {
	return s.End
}

// Len returns the number of characters covered by the span.
func (s SpanAnnotation) Len() int {
	return s.End - s.Start
}

// Token returns the TokenResult carried in Args, if any.
func (s SpanAnnotation) Token() (TokenResult, bool) {
	if s.Args == nil {
		return TokenResult{}, false
	}
	tok, ok := s.Args[TokenArg].(TokenResult)
	return tok, ok
}

func orAbsent(v string) string {
	if v == "" {
		return absent
	}
	return v
}

// TokenResult wraps one morphological unit.
type TokenResult struct {
	// Node is the tokenizer's own token handle. It is referenced, not owned.
	Node any
	// POS is the part-of-speech classification tuple.
	POS []string
	// Stem is the base form of the word.
	Stem string
	// Surface is the text as it appears in the input.
	Surface string

	IsFeature bool
	IsSurface bool
	Misc      any
}

// NewTokenResult creates a TokenResult with the default classification flags.
func NewTokenResult(node any, pos []string, stem, surface string) TokenResult {
	return TokenResult{
		Node:      node,
		POS:       pos,
		Stem:      stem,
		Surface:   surface,
		IsFeature: true,
	}
}

// String returns the surface form.
func (t TokenResult) String() string {
	return t.Surface
}

package bunkai

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/bunkai/pkg/annotation"
	"github.com/leapstack-labs/bunkai/pkg/segment"
)

const (
	morphSplitType  = "janome"
	morphSplitValue = "token"
)

// linebreakPOS classifies the synthetic span covering a trailing line feed.
var linebreakPOS = []string{"記号", "空白", "*", "*"}

// morphLayer tokenizes text with the Worker's tokenizer. Spans tile the text
// from offset 0 by surface length. A single uncovered trailing "\n" gets a
// synthetic whitespace span; any other uncovered tail is left as a gap.
func (w *Worker) morphLayer(text string, length int) ([]annotation.SpanAnnotation, error) {
	tok, err := w.Tokenizer()
	if err != nil {
		return nil, err
	}
	tokens, err := tok.Tokenize(text)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize text: %w", err)
	}

	spans := make([]annotation.SpanAnnotation, 0, len(tokens)+1)
	start, offset := 0, 0
	for i, t := range tokens {
		surface := t.Surface()
		if !strings.HasPrefix(text[offset:], surface) {
			return nil, fmt.Errorf("%w: token %d surface %q does not continue the text at offset %d",
				segment.ErrContractViolation, i, surface, start)
		}
		end := start + utf8.RuneCountInString(surface)
		spans = append(spans, morphSpan(start, end, annotation.NewTokenResult(t, t.PartOfSpeech(), t.BaseForm(), surface)))
		start = end
		offset += len(surface)
	}

	if start < length {
		if text[offset:] == "\n" {
			spans = append(spans, morphSpan(start, length, annotation.NewTokenResult(nil, linebreakPOS, "\n", "\n")))
		} else {
			w.d.logger.Debug("morphological layer leaves trailing text uncovered",
				"covered", start,
				"uncovered", length-start,
			)
		}
	}

	return spans, nil
}

func morphSpan(start, end int, tok annotation.TokenResult) annotation.SpanAnnotation {
	return annotation.SpanAnnotation{
		RuleName:   MorphLayer,
		Start:      start,
		End:        end,
		SplitType:  morphSplitType,
		SplitValue: morphSplitValue,
		Args:       map[string]any{annotation.TokenArg: tok},
	}
}
